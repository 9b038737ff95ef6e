package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	sentry "github.com/getsentry/sentry-go"
	log "github.com/sirupsen/logrus"

	"grooviabot/sentryhelper"
	"grooviabot/stats"
)

// CatalogError is returned when the API answers with a non-2xx status
// or a success=false envelope.
type CatalogError struct {
	Status int
	Reason string
}

func (e *CatalogError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("catalog: %s (status %d)", e.Reason, e.Status)
	}
	return fmt.Sprintf("catalog: request failed with status %d", e.Status)
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	stats      *stats.Stats
}

func New(baseURL string, timeout time.Duration, st *stats.Stats) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		stats: st,
	}
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// get issues one API call and decodes the {success, data} envelope into
// out. Every call, successful or not, bumps the request counter.
func (c *Client) get(ctx context.Context, path string, params url.Values, out any) error {
	span := sentry.StartSpan(ctx, "catalog.get")
	span.Description = "Query catalog API"
	span.SetTag("path", path)
	defer span.Finish()

	sentryhelper.AddBreadcrumb(ctx, &sentry.Breadcrumb{
		Category: "catalog",
		Message:  path,
		Level:    sentry.LevelInfo,
	})

	c.stats.RecordRequest()

	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		span.Status = sentry.SpanStatusInternalError
		return fmt.Errorf("catalog: building request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Errorf("catalog request to %s failed: %v", path, err)
		sentry.CaptureException(err)
		span.Status = sentry.SpanStatusInternalError
		return &CatalogError{Reason: err.Error()}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		span.Status = sentry.SpanStatusInternalError
		return &CatalogError{Status: resp.StatusCode, Reason: "reading response body"}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Warnf("catalog returned status %d for %s", resp.StatusCode, path)
		span.Status = sentry.SpanStatusInternalError
		return &CatalogError{Status: resp.StatusCode}
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		span.Status = sentry.SpanStatusInternalError
		return &CatalogError{Status: resp.StatusCode, Reason: "malformed response"}
	}
	if !env.Success {
		log.Warnf("catalog reported failure for %s: %s", path, env.Message)
		span.Status = sentry.SpanStatusInternalError
		return &CatalogError{Status: resp.StatusCode, Reason: env.Message}
	}

	if err := json.Unmarshal(env.Data, out); err != nil {
		span.Status = sentry.SpanStatusInternalError
		return &CatalogError{Status: resp.StatusCode, Reason: "malformed response data"}
	}

	span.Status = sentry.SpanStatusOK
	return nil
}

func searchParams(query string, page, limit int) url.Values {
	return url.Values{
		"query": {query},
		"page":  {strconv.Itoa(page)},
		"limit": {strconv.Itoa(limit)},
	}
}

func (c *Client) SearchSongs(ctx context.Context, query string, page, limit int) (*SongPage, error) {
	var raw apiSearchPage[apiSong]
	if err := c.get(ctx, "/api/search/songs", searchParams(query, page, limit), &raw); err != nil {
		return nil, err
	}
	return &SongPage{Total: raw.Total, Songs: normalizeSongs(raw.Results)}, nil
}

func (c *Client) SearchAlbums(ctx context.Context, query string, page, limit int) (*AlbumPage, error) {
	var raw apiSearchPage[apiAlbum]
	if err := c.get(ctx, "/api/search/albums", searchParams(query, page, limit), &raw); err != nil {
		return nil, err
	}
	albums := make([]Album, 0, len(raw.Results))
	for _, a := range raw.Results {
		albums = append(albums, normalizeAlbum(a))
	}
	return &AlbumPage{Total: raw.Total, Albums: albums}, nil
}

func (c *Client) SearchPlaylists(ctx context.Context, query string, page, limit int) (*PlaylistPage, error) {
	var raw apiSearchPage[apiPlaylist]
	if err := c.get(ctx, "/api/search/playlists", searchParams(query, page, limit), &raw); err != nil {
		return nil, err
	}
	playlists := make([]Playlist, 0, len(raw.Results))
	for _, p := range raw.Results {
		playlists = append(playlists, normalizePlaylist(p))
	}
	return &PlaylistPage{Total: raw.Total, Playlists: playlists}, nil
}

func (c *Client) SearchArtists(ctx context.Context, query string, page, limit int) (*ArtistPage, error) {
	var raw apiSearchPage[apiArtist]
	if err := c.get(ctx, "/api/search/artists", searchParams(query, page, limit), &raw); err != nil {
		return nil, err
	}
	artists := make([]Artist, 0, len(raw.Results))
	for _, a := range raw.Results {
		artists = append(artists, normalizeArtist(a))
	}
	return &ArtistPage{Total: raw.Total, Artists: artists}, nil
}

// firstSong tolerates both answer shapes the API uses for song detail:
// a single object or a one-element collection.
func firstSong(data json.RawMessage) (*Song, error) {
	var list []apiSong
	if err := json.Unmarshal(data, &list); err == nil {
		if len(list) == 0 {
			return nil, nil
		}
		song := normalizeSong(list[0])
		return &song, nil
	}
	var single apiSong
	if err := json.Unmarshal(data, &single); err != nil {
		return nil, &CatalogError{Reason: "malformed song data"}
	}
	if single.ID == "" {
		return nil, nil
	}
	song := normalizeSong(single)
	return &song, nil
}

// GetSong fetches one song by catalog id. Returns (nil, nil) when the
// catalog has no such song.
func (c *Client) GetSong(ctx context.Context, id string) (*Song, error) {
	var raw json.RawMessage
	if err := c.get(ctx, "/api/songs/"+url.PathEscape(id), nil, &raw); err != nil {
		return nil, err
	}
	return firstSong(raw)
}

func (c *Client) GetSongByLink(ctx context.Context, link string) (*Song, error) {
	var raw json.RawMessage
	if err := c.get(ctx, "/api/songs", url.Values{"link": {link}}, &raw); err != nil {
		return nil, err
	}
	return firstSong(raw)
}

func (c *Client) GetAlbum(ctx context.Context, id string) (*Album, error) {
	return c.getAlbum(ctx, url.Values{"id": {id}})
}

func (c *Client) GetAlbumByLink(ctx context.Context, link string) (*Album, error) {
	return c.getAlbum(ctx, url.Values{"link": {link}})
}

func (c *Client) getAlbum(ctx context.Context, params url.Values) (*Album, error) {
	var raw apiAlbum
	if err := c.get(ctx, "/api/albums", params, &raw); err != nil {
		return nil, err
	}
	if raw.ID == "" {
		return nil, nil
	}
	album := normalizeAlbum(raw)
	return &album, nil
}

func (c *Client) GetPlaylist(ctx context.Context, id string, limit int) (*Playlist, error) {
	return c.getPlaylist(ctx, url.Values{"id": {id}, "limit": {strconv.Itoa(limit)}})
}

func (c *Client) GetPlaylistByLink(ctx context.Context, link string, limit int) (*Playlist, error) {
	return c.getPlaylist(ctx, url.Values{"link": {link}, "limit": {strconv.Itoa(limit)}})
}

func (c *Client) getPlaylist(ctx context.Context, params url.Values) (*Playlist, error) {
	var raw apiPlaylist
	if err := c.get(ctx, "/api/playlists", params, &raw); err != nil {
		return nil, err
	}
	if raw.ID == "" {
		return nil, nil
	}
	playlist := normalizePlaylist(raw)
	return &playlist, nil
}

func (c *Client) GetArtist(ctx context.Context, id string) (*Artist, error) {
	var raw apiArtist
	if err := c.get(ctx, "/api/artists/"+url.PathEscape(id), nil, &raw); err != nil {
		return nil, err
	}
	if raw.ID == "" {
		return nil, nil
	}
	artist := normalizeArtist(raw)
	return &artist, nil
}

func (c *Client) GetArtistByLink(ctx context.Context, link string) (*Artist, error) {
	var raw apiArtist
	if err := c.get(ctx, "/api/artists", url.Values{"link": {link}}, &raw); err != nil {
		return nil, err
	}
	if raw.ID == "" {
		return nil, nil
	}
	artist := normalizeArtist(raw)
	return &artist, nil
}

func (c *Client) GetArtistSongs(ctx context.Context, artistID string, page int) (*SongPage, error) {
	var raw struct {
		Total int       `json:"total"`
		Songs []apiSong `json:"songs"`
	}
	params := url.Values{"page": {strconv.Itoa(page)}}
	if err := c.get(ctx, "/api/artists/"+url.PathEscape(artistID)+"/songs", params, &raw); err != nil {
		return nil, err
	}
	return &SongPage{Total: raw.Total, Songs: normalizeSongs(raw.Songs)}, nil
}

func (c *Client) GetArtistAlbums(ctx context.Context, artistID string, page int) (*AlbumPage, error) {
	var raw struct {
		Total  int        `json:"total"`
		Albums []apiAlbum `json:"albums"`
	}
	params := url.Values{"page": {strconv.Itoa(page)}}
	if err := c.get(ctx, "/api/artists/"+url.PathEscape(artistID)+"/albums", params, &raw); err != nil {
		return nil, err
	}
	albums := make([]Album, 0, len(raw.Albums))
	for _, a := range raw.Albums {
		albums = append(albums, normalizeAlbum(a))
	}
	return &AlbumPage{Total: raw.Total, Albums: albums}, nil
}

func (c *Client) GetSuggestions(ctx context.Context, songID string, limit int) ([]Song, error) {
	var raw []apiSong
	params := url.Values{"limit": {strconv.Itoa(limit)}}
	if err := c.get(ctx, "/api/songs/"+url.PathEscape(songID)+"/suggestions", params, &raw); err != nil {
		return nil, err
	}
	return normalizeSongs(raw), nil
}
