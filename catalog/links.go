package catalog

import (
	"net/url"
	"strings"

	log "github.com/sirupsen/logrus"
)

// ParseCatalogLink classifies a catalog deep link by its first path
// segment. The "featured" segment is the catalog's name for playlists.
func ParseCatalogLink(raw string) (Kind, bool) {
	parsed, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return "", false
	}

	host := parsed.Host
	if host != "www.jiosaavn.com" && host != "jiosaavn.com" {
		return "", false
	}

	segments := strings.Split(strings.Trim(parsed.Path, "/"), "/")
	if len(segments) < 2 || segments[1] == "" {
		log.Tracef("catalog link with no target: %s", raw)
		return "", false
	}

	switch segments[0] {
	case "song":
		return KindSong, true
	case "album":
		return KindAlbum, true
	case "featured":
		return KindPlaylist, true
	case "artist":
		return KindArtist, true
	}

	return "", false
}
