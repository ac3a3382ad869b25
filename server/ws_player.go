package server

import (
	"net/http"
	"sync"
	"time"

	"EchoFM/core/player"
	"EchoFM/logger"

	"github.com/gorilla/websocket"
)

var wsUpgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// PlayerHub pushes playback state frames to every connected websocket client
// whenever the store or resolver commits a change.
type PlayerHub struct {
	handler *APIHandler

	mu      sync.Mutex
	clients map[*wsClient]struct{}
}

type wsClient struct {
	conn *websocket.Conn
	send chan playerStateView
}

// NewPlayerHub creates the hub and subscribes it to store and resolver
// changes. One hub per process.
func NewPlayerHub(h *APIHandler, store *player.Store, resolver *player.Resolver) *PlayerHub {
	hub := &PlayerHub{
		handler: h,
		clients: make(map[*wsClient]struct{}),
	}

	store.Subscribe(func(player.State) {
		hub.broadcast()
	})
	resolver.Subscribe(func(player.Resolved) {
		hub.broadcast()
	})

	return hub
}

func (hub *PlayerHub) broadcast() {
	view := hub.handler.playerView()

	hub.mu.Lock()
	defer hub.mu.Unlock()
	for client := range hub.clients {
		select {
		case client.send <- view:
		default:
			// Slow consumer: drop the frame, the next one carries full state.
		}
	}
}

// ServeWS upgrades the connection and streams state frames until the client
// disconnects. The current state is sent immediately on connect.
func (hub *PlayerHub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := wsUpgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Error("websocket upgrade failed", logger.ErrorField(err))
		return
	}

	client := &wsClient{
		conn: conn,
		send: make(chan playerStateView, 8),
	}

	hub.mu.Lock()
	hub.clients[client] = struct{}{}
	hub.mu.Unlock()

	logger.Debug("player websocket connected", logger.String("remoteAddr", r.RemoteAddr))

	// Initial frame so the client does not wait for the next change.
	client.send <- hub.handler.playerView()

	go hub.writeLoop(client)
	hub.readLoop(client)
}

func (hub *PlayerHub) writeLoop(client *wsClient) {
	for view := range client.send {
		client.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
		if err := client.conn.WriteJSON(view); err != nil {
			logger.Debug("player websocket write failed", logger.ErrorField(err))
			return
		}
	}
}

// readLoop drains client messages (none are expected) and tears the client
// down on disconnect.
func (hub *PlayerHub) readLoop(client *wsClient) {
	defer func() {
		hub.mu.Lock()
		delete(hub.clients, client)
		hub.mu.Unlock()
		close(client.send)
		client.conn.Close()
	}()

	for {
		if _, _, err := client.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Debug("player websocket read error", logger.ErrorField(err))
			}
			return
		}
	}
}
