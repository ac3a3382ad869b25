package server

import (
	"fmt"
	"net/http"
	"regexp"
	"strings"

	"EchoFM/core/auth"
	"EchoFM/logger"
	"EchoFM/model"
	"EchoFM/storage"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

var nonAlphaNumeric = regexp.MustCompile(`[^a-zA-Z0-9_\-\.]`)
var multipleSpaces = regexp.MustCompile(`\s+`)

// safeObjectName turns a track title into a storage-safe object name part.
func safeObjectName(title string) string {
	base := strings.TrimSpace(title)
	if base == "" {
		base = "Untitled_Track"
	}
	base = multipleSpaces.ReplaceAllString(base, "_")
	base = nonAlphaNumeric.ReplaceAllString(base, "")

	maxLength := 100
	if len(base) > maxLength {
		base = base[:maxLength]
	}
	if base == "" {
		base = "untitled"
	}
	return base
}

// GetTracksHandler returns the newest tracks in the catalog.
func (h *APIHandler) GetTracksHandler(w http.ResponseWriter, r *http.Request) {
	tracks := h.gateway.ListNewest(r.Context())
	writeJSON(w, http.StatusOK, h.withLocators(tracks))
}

// SearchTracksHandler returns tracks whose title matches the q parameter.
// Debouncing happens client-side (see core/search); the endpoint itself is a
// plain read.
func (h *APIHandler) SearchTracksHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	tracks := h.gateway.Search(r.Context(), q)
	writeJSON(w, http.StatusOK, h.withLocators(tracks))
}

// GetMyTracksHandler returns the session user's uploaded tracks.
func (h *APIHandler) GetMyTracksHandler(w http.ResponseWriter, r *http.Request) {
	sess := auth.SessionFromContext(r.Context())
	tracks := h.gateway.ListByUser(r.Context(), sess)
	writeJSON(w, http.StatusOK, h.withLocators(tracks))
}

// GetLikedTracksHandler returns the tracks the session user has liked.
func (h *APIHandler) GetLikedTracksHandler(w http.ResponseWriter, r *http.Request) {
	sess := auth.SessionFromContext(r.Context())
	tracks := h.gateway.ListLiked(r.Context(), sess)
	writeJSON(w, http.StatusOK, h.withLocators(tracks))
}

// trackView is a track plus its derived locators.
type trackView struct {
	*model.Track
	SongURL  string `json:"songUrl"`
	ImageURL string `json:"imageUrl"`
}

func (h *APIHandler) withLocators(tracks []*model.Track) []trackView {
	views := make([]trackView, len(tracks))
	for i, track := range tracks {
		views[i] = trackView{
			Track:    track,
			SongURL:  h.locator.Locate(track),
			ImageURL: h.locator.LocateImage(track),
		}
	}
	return views
}

// GetTrackHandler returns one track with its derived locators, 404 when the
// ID resolves to nothing.
func (h *APIHandler) GetTrackHandler(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	track, err := h.trackRepo.GetTrackByID(r.Context(), id)
	if err != nil {
		logger.Warn("failed to get track", logger.String("trackId", id), logger.ErrorField(err))
		http.Error(w, "Failed to get track", http.StatusInternalServerError)
		return
	}
	if track == nil {
		http.Error(w, "Track not found", http.StatusNotFound)
		return
	}

	writeJSON(w, http.StatusOK, trackView{
		Track:    track,
		SongURL:  h.locator.Locate(track),
		ImageURL: h.locator.LocateImage(track),
	})
}

// UploadTrackHandler handles audio file uploads and metadata.
// Expected multipart form fields:
// - title: track title
// - author: track author
// - song: the audio file
// - image: cover art image
func (h *APIHandler) UploadTrackHandler(w http.ResponseWriter, r *http.Request) {
	sess := auth.SessionFromContext(r.Context())
	if sess == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	if err := r.ParseMultipartForm(32 << 20); err != nil { // 32MB max memory
		http.Error(w, fmt.Sprintf("Failed to parse multipart form: %v", err), http.StatusBadRequest)
		return
	}

	// All required fields are validated before anything touches storage or
	// the database: a missing field costs zero collaborator calls.
	title := strings.TrimSpace(r.FormValue("title"))
	author := strings.TrimSpace(r.FormValue("author"))

	songFile, songHeader, songErr := r.FormFile("song")
	if songErr == nil {
		defer songFile.Close()
	}
	imageFile, imageHeader, imageErr := r.FormFile("image")
	if imageErr == nil {
		defer imageFile.Close()
	}

	if title == "" || songErr != nil || imageErr != nil {
		logger.Warn("upload rejected: missing fields",
			logger.String("userId", sess.UserID),
			logger.Bool("hasTitle", title != ""),
			logger.Bool("hasSong", songErr == nil),
			logger.Bool("hasImage", imageErr == nil))
		h.notifier.Error("Missing fields")
		http.Error(w, "Missing fields", http.StatusBadRequest)
		return
	}

	uniqueID := uuid.NewString()
	name := safeObjectName(title)
	songKey := fmt.Sprintf("%ssong-%s-%s", storage.SongPrefix, name, uniqueID)
	imageKey := fmt.Sprintf("%simage-%s-%s", storage.ImagePrefix, name, uniqueID)

	ctx := r.Context()

	if err := h.blobs.Upload(ctx, songKey, songFile, songHeader.Size, songContentType(songHeader.Filename)); err != nil {
		logger.Error("song upload failed",
			logger.String("key", songKey),
			logger.ErrorField(err))
		h.notifier.Error("Failed song upload")
		http.Error(w, "Failed song upload", http.StatusInternalServerError)
		return
	}

	if err := h.blobs.Upload(ctx, imageKey, imageFile, imageHeader.Size, "image/jpeg"); err != nil {
		logger.Error("image upload failed",
			logger.String("key", imageKey),
			logger.ErrorField(err))
		// Roll the song object back so no orphaned audio is left behind.
		if rmErr := h.blobs.Remove(ctx, songKey); rmErr != nil {
			logger.Warn("failed to remove orphaned song object",
				logger.String("key", songKey),
				logger.ErrorField(rmErr))
		}
		h.notifier.Error("Failed image upload")
		http.Error(w, "Failed image upload", http.StatusInternalServerError)
		return
	}

	track := &model.Track{
		UserID:    sess.UserID,
		Title:     title,
		Author:    author,
		SongPath:  songKey,
		ImagePath: imageKey,
	}
	if _, err := h.trackRepo.CreateTrack(ctx, track); err != nil {
		logger.Error("track record insert failed",
			logger.String("title", title),
			logger.ErrorField(err))
		h.notifier.Error("Failed to create track")
		http.Error(w, "Failed to create track", http.StatusInternalServerError)
		return
	}

	logger.Info("track uploaded",
		logger.String("trackId", track.ID),
		logger.String("userId", sess.UserID),
		logger.String("title", title))
	h.notifier.Success("Song created successfully!")

	writeJSON(w, http.StatusCreated, trackView{
		Track:    track,
		SongURL:  h.locator.Locate(track),
		ImageURL: h.locator.LocateImage(track),
	})
}

func songContentType(filename string) string {
	switch {
	case strings.HasSuffix(filename, ".mp3"):
		return "audio/mpeg"
	case strings.HasSuffix(filename, ".wav"):
		return "audio/wav"
	case strings.HasSuffix(filename, ".flac"):
		return "audio/flac"
	default:
		return "application/octet-stream"
	}
}
