// Package controller executes catalog queries on behalf of a user and
// keeps their session consistent with what they are looking at.
package controller

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"

	"grooviabot/catalog"
	"grooviabot/session"
	"grooviabot/stats"
	"grooviabot/telegram"
)

// SearchPageSize is the number of items per search result page.
const SearchPageSize = 10

// listingLimit caps how many songs a full album/playlist fetch returns.
const listingLimit = 50

const suggestionLimit = 10

// Transport is the slice of the chat transport the controller needs to
// deliver audio and per-item notices during downloads.
type Transport interface {
	SendText(chatID int64, text string) error
	SendAudio(chatID int64, audio telegram.Audio) error
	SendChatAction(chatID int64, action string)
}

type Controller struct {
	catalog    *catalog.Client
	sessions   *session.Store
	stats      *stats.Stats
	transport  Transport
	batchLimit int
}

func New(client *catalog.Client, sessions *session.Store, st *stats.Stats, transport Transport, batchLimit int) *Controller {
	return &Controller{
		catalog:    client,
		sessions:   sessions,
		stats:      st,
		transport:  transport,
		batchLimit: batchLimit,
	}
}

// Ref addresses an entity either by catalog id or by deep link.
type Ref struct {
	ID   string
	Link string
}

// SearchItem is one render-ready row of a result page. Index is
// 1-based and continuous across pages.
type SearchItem struct {
	Index    int
	Kind     catalog.Kind
	ID       string
	Title    string
	Subtitle string
}

type SearchResult struct {
	Kind       catalog.Kind
	Query      string
	Page       int
	TotalPages int
	Items      []SearchItem
}

func totalPages(total, pageSize int) int {
	pages := (total + pageSize - 1) / pageSize
	if pages < 1 {
		return 1
	}
	return pages
}

// Search runs a paginated catalog search. An empty result list is a
// normal outcome (Items empty), not an error. On a non-empty page the
// session's browsing state is overwritten in one step.
func (c *Controller) Search(ctx context.Context, userID int64, kind catalog.Kind, query string, page int) (*SearchResult, error) {
	offset := page * SearchPageSize

	var (
		total int
		items []SearchItem
	)

	switch kind {
	case catalog.KindSong:
		result, err := c.catalog.SearchSongs(ctx, query, page, SearchPageSize)
		if err != nil {
			return nil, err
		}
		total = result.Total
		for i, song := range result.Songs {
			items = append(items, SearchItem{
				Index:    offset + i + 1,
				Kind:     catalog.KindSong,
				ID:       song.ID,
				Title:    song.Name,
				Subtitle: song.Artist,
			})
		}
	case catalog.KindAlbum:
		result, err := c.catalog.SearchAlbums(ctx, query, page, SearchPageSize)
		if err != nil {
			return nil, err
		}
		total = result.Total
		for i, album := range result.Albums {
			items = append(items, SearchItem{
				Index:    offset + i + 1,
				Kind:     catalog.KindAlbum,
				ID:       album.ID,
				Title:    album.Name,
				Subtitle: album.Artist,
			})
		}
	case catalog.KindPlaylist:
		result, err := c.catalog.SearchPlaylists(ctx, query, page, SearchPageSize)
		if err != nil {
			return nil, err
		}
		total = result.Total
		for i, playlist := range result.Playlists {
			items = append(items, SearchItem{
				Index: offset + i + 1,
				Kind:  catalog.KindPlaylist,
				ID:    playlist.ID,
				Title: playlist.Name,
			})
		}
	case catalog.KindArtist:
		result, err := c.catalog.SearchArtists(ctx, query, page, SearchPageSize)
		if err != nil {
			return nil, err
		}
		total = result.Total
		for i, artist := range result.Artists {
			items = append(items, SearchItem{
				Index: offset + i + 1,
				Kind:  catalog.KindArtist,
				ID:    artist.ID,
				Title: artist.Name,
			})
		}
	}

	result := &SearchResult{
		Kind:       kind,
		Query:      query,
		Page:       page,
		TotalPages: totalPages(total, SearchPageSize),
		Items:      items,
	}

	if len(items) > 0 {
		sessionItems := make([]session.Item, 0, len(items))
		for _, item := range items {
			sessionItems = append(sessionItems, session.Item{
				Kind: item.Kind,
				ID:   item.ID,
				Name: item.Title,
			})
		}
		c.sessions.Get(userID).SetBrowsing(kind, query, page, sessionItems)
		log.Debugf("user %d browsing %s %q page %d (%d items)", userID, kind, query, page, len(items))
	}

	return result, nil
}

func (c *Controller) recordVisit(userID int64, kind catalog.Kind, id, name string) {
	c.sessions.Get(userID).AddHistory(session.HistoryEntry{
		Kind: kind,
		ID:   id,
		Name: name,
		At:   time.Now(),
	})
}

// SongDetail fetches one song by id or link. A nil song with nil error
// means the catalog has no such entity.
func (c *Controller) SongDetail(ctx context.Context, userID int64, ref Ref) (*catalog.Song, error) {
	var (
		song *catalog.Song
		err  error
	)
	if ref.Link != "" {
		song, err = c.catalog.GetSongByLink(ctx, ref.Link)
	} else {
		song, err = c.catalog.GetSong(ctx, ref.ID)
	}
	if err != nil || song == nil {
		return nil, err
	}
	c.recordVisit(userID, catalog.KindSong, song.ID, song.Name)
	return song, nil
}

func (c *Controller) AlbumDetail(ctx context.Context, userID int64, ref Ref) (*catalog.Album, error) {
	var (
		album *catalog.Album
		err   error
	)
	if ref.Link != "" {
		album, err = c.catalog.GetAlbumByLink(ctx, ref.Link)
	} else {
		album, err = c.catalog.GetAlbum(ctx, ref.ID)
	}
	if err != nil || album == nil {
		return nil, err
	}
	c.recordVisit(userID, catalog.KindAlbum, album.ID, album.Name)
	return album, nil
}

func (c *Controller) PlaylistDetail(ctx context.Context, userID int64, ref Ref) (*catalog.Playlist, error) {
	var (
		playlist *catalog.Playlist
		err      error
	)
	if ref.Link != "" {
		playlist, err = c.catalog.GetPlaylistByLink(ctx, ref.Link, listingLimit)
	} else {
		playlist, err = c.catalog.GetPlaylist(ctx, ref.ID, listingLimit)
	}
	if err != nil || playlist == nil {
		return nil, err
	}
	c.recordVisit(userID, catalog.KindPlaylist, playlist.ID, playlist.Name)
	return playlist, nil
}

func (c *Controller) ArtistDetail(ctx context.Context, userID int64, ref Ref) (*catalog.Artist, error) {
	var (
		artist *catalog.Artist
		err    error
	)
	if ref.Link != "" {
		artist, err = c.catalog.GetArtistByLink(ctx, ref.Link)
	} else {
		artist, err = c.catalog.GetArtist(ctx, ref.ID)
	}
	if err != nil || artist == nil {
		return nil, err
	}
	c.recordVisit(userID, catalog.KindArtist, artist.ID, artist.Name)
	return artist, nil
}

// Suggestions lists songs similar to the given one. Ranking is entirely
// the catalog's.
func (c *Controller) Suggestions(ctx context.Context, songID string) ([]SearchItem, error) {
	songs, err := c.catalog.GetSuggestions(ctx, songID, suggestionLimit)
	if err != nil {
		return nil, err
	}
	return songItems(songs), nil
}

func (c *Controller) ArtistSongs(ctx context.Context, artistID string, page int) ([]SearchItem, error) {
	result, err := c.catalog.GetArtistSongs(ctx, artistID, page)
	if err != nil {
		return nil, err
	}
	return songItems(result.Songs), nil
}

func (c *Controller) ArtistAlbums(ctx context.Context, artistID string, page int) ([]SearchItem, error) {
	result, err := c.catalog.GetArtistAlbums(ctx, artistID, page)
	if err != nil {
		return nil, err
	}
	items := make([]SearchItem, 0, len(result.Albums))
	for i, album := range result.Albums {
		items = append(items, SearchItem{
			Index:    i + 1,
			Kind:     catalog.KindAlbum,
			ID:       album.ID,
			Title:    album.Name,
			Subtitle: album.Artist,
		})
	}
	return items, nil
}

func songItems(songs []catalog.Song) []SearchItem {
	items := make([]SearchItem, 0, len(songs))
	for i, song := range songs {
		items = append(items, SearchItem{
			Index:    i + 1,
			Kind:     catalog.KindSong,
			ID:       song.ID,
			Title:    song.Name,
			Subtitle: song.Artist,
		})
	}
	return items
}
