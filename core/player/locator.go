package player

import "EchoFM/model"

// URLProvider derives a public locator for a blob-store object key.
// *storage.Store satisfies this.
type URLProvider interface {
	PublicURL(key string) string
}

// Locator derives playable resource locators from resolved track records.
// Pure string derivation: no network round trip is involved because the
// blob store's public URL scheme is deterministic from the object key.
type Locator struct {
	urls URLProvider
}

// NewLocator creates a Locator over the given URL provider.
func NewLocator(urls URLProvider) *Locator {
	return &Locator{urls: urls}
}

// Locate returns the playable audio locator for a track, or "" for nil.
func (l *Locator) Locate(track *model.Track) string {
	if track == nil {
		return ""
	}
	return l.urls.PublicURL(track.SongPath)
}

// LocateImage returns the cover image locator for a track, or "" for nil.
func (l *Locator) LocateImage(track *model.Track) string {
	if track == nil {
		return ""
	}
	return l.urls.PublicURL(track.ImagePath)
}
