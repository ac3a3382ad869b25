package server

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"EchoFM/config"
	"EchoFM/core/auth"
	"EchoFM/core/notify"
	"EchoFM/core/player"
	"EchoFM/storage"
)

// newUploadTestHandler builds an APIHandler with no live collaborators.
// The repositories are nil and the blob store has no client, so any
// collaborator call panics or errors; tests relying on it prove the
// missing-field gate short-circuits before any call is made.
func newUploadTestHandler() (*APIHandler, *notify.Recorder) {
	rec := &notify.Recorder{}
	blobs := storage.NewStore(&config.Config{MinioBucket: "echofm"})
	h := NewAPIHandler(nil, nil, nil, nil, player.NewStore(), nil, nil, player.NewLocator(blobs), blobs, rec, &config.Config{})
	return h, rec
}

func multipartBody(t *testing.T, fields map[string]string, files map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			t.Fatalf("write field %s: %v", k, err)
		}
	}
	for name, content := range files {
		part, err := w.CreateFormFile(name, name+".bin")
		if err != nil {
			t.Fatalf("create file part %s: %v", name, err)
		}
		part.Write([]byte(content))
	}
	w.Close()
	return body, w.FormDataContentType()
}

func authedRequest(t *testing.T, method, target string, body *bytes.Buffer) *http.Request {
	t.Helper()
	req := httptest.NewRequest(method, target, body)
	sess := &auth.Session{UserID: "u1", Username: "alice"}
	return req.WithContext(auth.WithSession(req.Context(), sess))
}

func TestUploadMissingSongFileRejectedBeforeAnyCall(t *testing.T) {
	h, rec := newUploadTestHandler()

	body, contentType := multipartBody(t,
		map[string]string{"title": "My Song", "author": "Me"},
		nil, // no song, no image
	)
	req := authedRequest(t, http.MethodPost, "/api/upload", body)
	req.Header.Set("Content-Type", contentType)

	w := httptest.NewRecorder()
	h.UploadTrackHandler(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	if len(rec.Errors) != 1 {
		t.Fatalf("missing fields surfaced %d notifications, want 1", len(rec.Errors))
	}
	// Reaching here without a panic means neither the nil track repository
	// nor the clientless blob store was touched.
}

func TestUploadMissingTitleRejected(t *testing.T) {
	h, _ := newUploadTestHandler()

	body, contentType := multipartBody(t,
		map[string]string{"author": "Me"},
		map[string]string{"song": "audio-bytes", "image": "image-bytes"},
	)
	req := authedRequest(t, http.MethodPost, "/api/upload", body)
	req.Header.Set("Content-Type", contentType)

	w := httptest.NewRecorder()
	h.UploadTrackHandler(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestUploadUnauthenticatedRejected(t *testing.T) {
	h, _ := newUploadTestHandler()

	body, contentType := multipartBody(t, map[string]string{"title": "x"}, nil)
	req := httptest.NewRequest(http.MethodPost, "/api/upload", body)
	req.Header.Set("Content-Type", contentType)

	w := httptest.NewRecorder()
	h.UploadTrackHandler(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}

func TestSafeObjectName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"My   Song", "My_Song"},
		{"", "Untitled_Track"},
		{"Têtre & Avoir!", "Ttre__Avoir"},
	}
	for _, tt := range tests {
		if got := safeObjectName(tt.in); got != tt.want {
			t.Fatalf("safeObjectName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
