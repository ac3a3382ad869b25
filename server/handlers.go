package server

import (
	"encoding/json"
	"net/http"
	"strings"

	"EchoFM/config"
	"EchoFM/core/auth"
	"EchoFM/core/catalog"
	"EchoFM/core/notify"
	"EchoFM/core/player"
	"EchoFM/logger"
	"EchoFM/repository"
	"EchoFM/storage"
)

// APIHandler 处理所有API请求
type APIHandler struct {
	trackRepo  repository.TrackRepository
	userRepo   repository.UserRepository
	likeRepo   repository.LikeRepository
	gateway    *catalog.Gateway
	store      *player.Store
	dispatcher *player.Dispatcher
	resolver   *player.Resolver
	locator    *player.Locator
	blobs      *storage.Store
	notifier   notify.Notifier
	cfg        *config.Config
}

// NewAPIHandler 创建新的API处理器
func NewAPIHandler(
	trackRepo repository.TrackRepository,
	userRepo repository.UserRepository,
	likeRepo repository.LikeRepository,
	gateway *catalog.Gateway,
	store *player.Store,
	dispatcher *player.Dispatcher,
	resolver *player.Resolver,
	locator *player.Locator,
	blobs *storage.Store,
	notifier notify.Notifier,
	cfg *config.Config,
) *APIHandler {
	return &APIHandler{
		trackRepo:  trackRepo,
		userRepo:   userRepo,
		likeRepo:   likeRepo,
		gateway:    gateway,
		store:      store,
		dispatcher: dispatcher,
		resolver:   resolver,
		locator:    locator,
		blobs:      blobs,
		notifier:   notifier,
		cfg:        cfg,
	}
}

// AuthMiddleware is a middleware function that checks for a valid JWT token
// and attaches the resulting session to the request context.
func (h *APIHandler) AuthMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			http.Error(w, "Authorization header is required", http.StatusUnauthorized)
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			http.Error(w, "Invalid authorization header format", http.StatusUnauthorized)
			return
		}

		claims, err := auth.ParseToken(parts[1])
		if err != nil {
			http.Error(w, "Invalid token", http.StatusUnauthorized)
			return
		}

		sess := &auth.Session{UserID: claims.UserID, Username: claims.Username}
		next.ServeHTTP(w, r.WithContext(auth.WithSession(r.Context(), sess)))
	}
}

// OptionalAuthMiddleware attaches a session when a valid token is present
// but lets unauthenticated requests straight through with a nil session.
// Used by endpoints that gate behavior, not access (play intent).
func (h *APIHandler) OptionalAuthMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		parts := strings.Split(authHeader, " ")
		if len(parts) == 2 && parts[0] == "Bearer" {
			if claims, err := auth.ParseToken(parts[1]); err == nil {
				sess := &auth.Session{UserID: claims.UserID, Username: claims.Username}
				r = r.WithContext(auth.WithSession(r.Context(), sess))
			}
		}
		next.ServeHTTP(w, r)
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("failed to encode response", logger.ErrorField(err))
	}
}
