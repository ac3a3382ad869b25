package storage

import "testing"

func TestPublicURLDerivation(t *testing.T) {
	tests := []struct {
		name  string
		store Store
		key   string
		want  string
	}{
		{
			name:  "empty key yields empty locator",
			store: Store{bucket: "echofm", endpoint: "127.0.0.1:9000"},
			key:   "",
			want:  "",
		},
		{
			name:  "plain endpoint without ssl",
			store: Store{bucket: "echofm", endpoint: "127.0.0.1:9000"},
			key:   "songs/song-abc",
			want:  "http://127.0.0.1:9000/echofm/songs/song-abc",
		},
		{
			name:  "ssl endpoint",
			store: Store{bucket: "echofm", endpoint: "minio.example.com", useSSL: true},
			key:   "images/image-abc",
			want:  "https://minio.example.com/echofm/images/image-abc",
		},
		{
			name:  "public url overrides endpoint",
			store: Store{bucket: "echofm", endpoint: "127.0.0.1:9000", publicURL: "https://cdn.example.com"},
			key:   "songs/song-abc",
			want:  "https://cdn.example.com/echofm/songs/song-abc",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.store.PublicURL(tt.key); got != tt.want {
				t.Fatalf("PublicURL(%q) = %q, want %q", tt.key, got, tt.want)
			}
		})
	}
}
