package catalog

import "encoding/json"

// Kind identifies the catalog entity taxonomy.
type Kind string

const (
	KindSong     Kind = "song"
	KindAlbum    Kind = "album"
	KindPlaylist Kind = "playlist"
	KindArtist   Kind = "artist"
)

// Encoding is one downloadable rendition of a song. The API does not
// guarantee unique quality labels, order is preserved as returned.
type Encoding struct {
	Quality string
	URL     string
}

type Song struct {
	ID        string
	Name      string
	Duration  int // seconds
	Artist    string
	Album     string
	ImageURL  string
	Encodings []Encoding
}

type Album struct {
	ID        string
	Name      string
	Artist    string
	Year      string
	SongCount int
	ImageURL  string
	Songs     []Song
}

type Playlist struct {
	ID        string
	Name      string
	SongCount int
	ImageURL  string
	Songs     []Song
}

type Artist struct {
	ID            string
	Name          string
	FollowerCount int
	ImageURL      string
}

type SongPage struct {
	Total int
	Songs []Song
}

type AlbumPage struct {
	Total  int
	Albums []Album
}

type PlaylistPage struct {
	Total     int
	Playlists []Playlist
}

type ArtistPage struct {
	Total   int
	Artists []Artist
}

// Raw wire shapes of the catalog API.

type apiLink struct {
	Quality string `json:"quality"`
	URL     string `json:"url"`
}

type apiArtistRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type apiSong struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Duration int    `json:"duration"`
	Artists  struct {
		Primary []apiArtistRef `json:"primary"`
	} `json:"artists"`
	Album struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	} `json:"album"`
	Image       []apiLink `json:"image"`
	DownloadURL []apiLink `json:"downloadUrl"`
}

type apiAlbum struct {
	ID      string      `json:"id"`
	Name    string      `json:"name"`
	Year    json.Number `json:"year"`
	Artists struct {
		Primary []apiArtistRef `json:"primary"`
	} `json:"artists"`
	SongCount int       `json:"songCount"`
	Image     []apiLink `json:"image"`
	Songs     []apiSong `json:"songs"`
}

type apiPlaylist struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	SongCount int       `json:"songCount"`
	Image     []apiLink `json:"image"`
	Songs     []apiSong `json:"songs"`
}

type apiArtist struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	FollowerCount int       `json:"followerCount"`
	Image         []apiLink `json:"image"`
}

type apiSearchPage[T any] struct {
	Total   int `json:"total"`
	Start   int `json:"start"`
	Results []T `json:"results"`
}

func bestImage(links []apiLink) string {
	if len(links) == 0 {
		return ""
	}
	// the API orders images low to high quality
	return links[len(links)-1].URL
}

func joinArtists(refs []apiArtistRef) string {
	names := ""
	for i, ref := range refs {
		if i > 0 {
			names += ", "
		}
		names += ref.Name
	}
	return names
}

func normalizeSong(raw apiSong) Song {
	encodings := make([]Encoding, 0, len(raw.DownloadURL))
	for _, link := range raw.DownloadURL {
		encodings = append(encodings, Encoding{Quality: link.Quality, URL: link.URL})
	}
	return Song{
		ID:        raw.ID,
		Name:      raw.Name,
		Duration:  raw.Duration,
		Artist:    joinArtists(raw.Artists.Primary),
		Album:     raw.Album.Name,
		ImageURL:  bestImage(raw.Image),
		Encodings: encodings,
	}
}

func normalizeSongs(raw []apiSong) []Song {
	songs := make([]Song, 0, len(raw))
	for _, s := range raw {
		songs = append(songs, normalizeSong(s))
	}
	return songs
}

func normalizeAlbum(raw apiAlbum) Album {
	return Album{
		ID:        raw.ID,
		Name:      raw.Name,
		Artist:    joinArtists(raw.Artists.Primary),
		Year:      raw.Year.String(),
		SongCount: raw.SongCount,
		ImageURL:  bestImage(raw.Image),
		Songs:     normalizeSongs(raw.Songs),
	}
}

func normalizePlaylist(raw apiPlaylist) Playlist {
	return Playlist{
		ID:        raw.ID,
		Name:      raw.Name,
		SongCount: raw.SongCount,
		ImageURL:  bestImage(raw.Image),
		Songs:     normalizeSongs(raw.Songs),
	}
}

func normalizeArtist(raw apiArtist) Artist {
	return Artist{
		ID:            raw.ID,
		Name:          raw.Name,
		FollowerCount: raw.FollowerCount,
		ImageURL:      bestImage(raw.Image),
	}
}
