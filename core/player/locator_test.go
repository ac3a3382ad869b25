package player

import (
	"testing"

	"EchoFM/model"
)

type staticURLs struct{}

func (staticURLs) PublicURL(key string) string {
	if key == "" {
		return ""
	}
	return "http://127.0.0.1:9000/echofm/" + key
}

func TestLocateNilTrack(t *testing.T) {
	l := NewLocator(staticURLs{})
	if got := l.Locate(nil); got != "" {
		t.Fatalf("Locate(nil) = %q, want \"\"", got)
	}
	if got := l.LocateImage(nil); got != "" {
		t.Fatalf("LocateImage(nil) = %q, want \"\"", got)
	}
}

func TestLocateDerivesFromPaths(t *testing.T) {
	l := NewLocator(staticURLs{})
	track := &model.Track{
		ID:        "t1",
		SongPath:  "songs/song-t1",
		ImagePath: "images/image-t1",
	}

	if got, want := l.Locate(track), "http://127.0.0.1:9000/echofm/songs/song-t1"; got != want {
		t.Fatalf("Locate() = %q, want %q", got, want)
	}
	if got, want := l.LocateImage(track), "http://127.0.0.1:9000/echofm/images/image-t1"; got != want {
		t.Fatalf("LocateImage() = %q, want %q", got, want)
	}
}
