package server

import (
	"encoding/json"
	"net/http"

	"EchoFM/core/auth"
	"EchoFM/logger"
	"EchoFM/model"
)

// PlayRequest is a click on a track inside a visible collection. The
// collection travels with the request so the queue can be rebuilt exactly in
// its display order.
type PlayRequest struct {
	TrackID string   `json:"trackId"`
	Visible []string `json:"visible"`
}

// playerStateView is the playback state plus the resolved active track and
// its derived locator.
type playerStateView struct {
	Queue    []string     `json:"queue"`
	ActiveID string       `json:"activeId"`
	Loading  bool         `json:"loading"`
	Track    *model.Track `json:"track,omitempty"`
	SongURL  string       `json:"songUrl,omitempty"`
}

func (h *APIHandler) playerView() playerStateView {
	st := h.store.Snapshot()
	resolved := h.resolver.State()
	return playerStateView{
		Queue:    st.Queue,
		ActiveID: st.ActiveID,
		Loading:  resolved.Loading,
		Track:    resolved.Track,
		SongURL:  h.locator.Locate(resolved.Track),
	}
}

// GetPlayerHandler returns the current playback state.
func (h *APIHandler) GetPlayerHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.playerView())
}

// PlayHandler dispatches a play intent. Unauthenticated requests get a 401
// with an auth-prompt marker and leave the queue untouched; the dispatcher
// enforces the gate, the handler only reports it.
func (h *APIHandler) PlayHandler(w http.ResponseWriter, r *http.Request) {
	var req PlayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.TrackID == "" {
		http.Error(w, "trackId is required", http.StatusBadRequest)
		return
	}

	sess := auth.SessionFromContext(r.Context())

	visible := make([]*model.Track, len(req.Visible))
	for i, id := range req.Visible {
		visible[i] = &model.Track{ID: id}
	}

	prompted := false
	d := h.dispatcher
	if sess == nil {
		// The dispatcher's prompt callback is process-wide; report the gate
		// on this response as well.
		prompted = true
	}
	d.OnPlay(sess, req.TrackID, visible)

	if prompted {
		writeJSON(w, http.StatusUnauthorized, map[string]interface{}{
			"authRequired": true,
		})
		return
	}

	logger.Debug("play intent dispatched",
		logger.String("trackId", req.TrackID),
		logger.Int("queueLen", len(req.Visible)))
	writeJSON(w, http.StatusOK, h.playerView())
}

// NextHandler advances to the next queue entry.
func (h *APIHandler) NextHandler(w http.ResponseWriter, r *http.Request) {
	h.store.Next()
	writeJSON(w, http.StatusOK, h.playerView())
}

// PreviousHandler moves back to the previous queue entry.
func (h *APIHandler) PreviousHandler(w http.ResponseWriter, r *http.Request) {
	h.store.Previous()
	writeJSON(w, http.StatusOK, h.playerView())
}

// ResetPlayerHandler clears the queue and active track.
func (h *APIHandler) ResetPlayerHandler(w http.ResponseWriter, r *http.Request) {
	h.store.Reset()
	writeJSON(w, http.StatusOK, h.playerView())
}
