package server

import (
	"errors"
	"net/http"

	"EchoFM/core/auth"
	"EchoFM/logger"
	"EchoFM/repository"

	"github.com/gorilla/mux"
)

// GetLikeHandler reports whether the session user has liked a track.
func (h *APIHandler) GetLikeHandler(w http.ResponseWriter, r *http.Request) {
	sess := auth.SessionFromContext(r.Context())
	trackID := mux.Vars(r)["track_id"]

	liked, err := h.likeRepo.Exists(r.Context(), sess.UserID, trackID)
	if err != nil {
		// Read path: degrade quietly to "not liked".
		logger.Warn("like existence check failed",
			logger.String("trackId", trackID),
			logger.ErrorField(err))
		liked = false
	}

	writeJSON(w, http.StatusOK, map[string]bool{"liked": liked})
}

// LikeTrackHandler inserts the like relation for the session user.
// Liking an already-liked track is a no-op success.
func (h *APIHandler) LikeTrackHandler(w http.ResponseWriter, r *http.Request) {
	sess := auth.SessionFromContext(r.Context())
	trackID := mux.Vars(r)["track_id"]

	err := h.likeRepo.Create(r.Context(), sess.UserID, trackID)
	if err != nil && !errors.Is(err, repository.ErrDuplicateLike) {
		logger.Error("like insert failed",
			logger.String("userId", sess.UserID),
			logger.String("trackId", trackID),
			logger.ErrorField(err))
		h.notifier.Error("Could not like track")
		http.Error(w, "Failed to like track", http.StatusInternalServerError)
		return
	}

	h.notifier.Success("Liked!")
	writeJSON(w, http.StatusOK, map[string]bool{"liked": true})
}

// UnlikeTrackHandler removes the like relation for the session user.
// Unliking a track that was never liked is a no-op success.
func (h *APIHandler) UnlikeTrackHandler(w http.ResponseWriter, r *http.Request) {
	sess := auth.SessionFromContext(r.Context())
	trackID := mux.Vars(r)["track_id"]

	if err := h.likeRepo.Delete(r.Context(), sess.UserID, trackID); err != nil {
		logger.Error("like delete failed",
			logger.String("userId", sess.UserID),
			logger.String("trackId", trackID),
			logger.ErrorField(err))
		h.notifier.Error("Could not remove like")
		http.Error(w, "Failed to remove like", http.StatusInternalServerError)
		return
	}

	h.notifier.Success("Like removed")
	writeJSON(w, http.StatusOK, map[string]bool{"liked": false})
}
