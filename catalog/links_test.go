package catalog

import "testing"

func TestParseCatalogLink(t *testing.T) {
	tests := []struct {
		name     string
		link     string
		wantKind Kind
		wantOK   bool
	}{
		{
			name:     "song",
			link:     "https://www.jiosaavn.com/song/tum-hi-ho/QAEEdSZzZGM",
			wantKind: KindSong,
			wantOK:   true,
		},
		{
			name:     "album",
			link:     "https://www.jiosaavn.com/album/aashiqui-2/V8gQ9gtn1t0_",
			wantKind: KindAlbum,
			wantOK:   true,
		},
		{
			name:     "featured maps to playlist",
			link:     "https://www.jiosaavn.com/featured/romantic-hits/8QfZvpgMXyNfemJ68FuXsA__",
			wantKind: KindPlaylist,
			wantOK:   true,
		},
		{
			name:     "artist",
			link:     "https://www.jiosaavn.com/artist/arijit-singh-songs/LlRWpHzy3Hk_",
			wantKind: KindArtist,
			wantOK:   true,
		},
		{
			name:     "bare host",
			link:     "https://jiosaavn.com/song/tum-hi-ho/QAEEdSZzZGM",
			wantKind: KindSong,
			wantOK:   true,
		},
		{
			name:   "wrong host",
			link:   "https://open.spotify.com/track/0VjIjW4GlUZAMYd2vXMi3b",
			wantOK: false,
		},
		{
			name:   "unknown section",
			link:   "https://www.jiosaavn.com/radio/arijit-singh",
			wantOK: false,
		},
		{
			name:   "missing target segment",
			link:   "https://www.jiosaavn.com/song/",
			wantOK: false,
		},
		{
			name:   "plain text",
			link:   "tum hi ho",
			wantOK: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kind, ok := ParseCatalogLink(tt.link)
			if ok != tt.wantOK {
				t.Fatalf("ParseCatalogLink(%q) ok = %v, want %v", tt.link, ok, tt.wantOK)
			}
			if ok && kind != tt.wantKind {
				t.Errorf("ParseCatalogLink(%q) kind = %s, want %s", tt.link, kind, tt.wantKind)
			}
		})
	}
}
