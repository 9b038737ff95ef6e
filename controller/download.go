package controller

import (
	"context"
	"errors"
	"fmt"
	"html"

	log "github.com/sirupsen/logrus"

	"grooviabot/catalog"
	"grooviabot/sentry"
	"grooviabot/session"
	"grooviabot/telegram"
)

// ErrNoEncoding means a song carries no downloadable renditions at all.
var ErrNoEncoding = errors.New("no audio encoding available")

var qualityLabels = map[session.Quality]string{
	session.QualityLow:    "96kbps",
	session.QualityMedium: "160kbps",
	session.QualityHigh:   "320kbps",
}

// qualityFallback is tried in order when the preferred quality is
// missing from a song's encoding set.
var qualityFallback = []session.Quality{
	session.QualityHigh,
	session.QualityMedium,
	session.QualityLow,
}

// ResolveAudioURL picks the download URL matching the preference, falls
// back through qualityFallback, and as a last resort takes the final
// entry of the set (the catalog orders encodings low to high).
func ResolveAudioURL(song *catalog.Song, pref session.Quality) (string, error) {
	if len(song.Encodings) == 0 {
		return "", ErrNoEncoding
	}

	order := make([]session.Quality, 0, len(qualityFallback)+1)
	order = append(order, pref)
	for _, q := range qualityFallback {
		if q != pref {
			order = append(order, q)
		}
	}

	for _, q := range order {
		label := qualityLabels[q]
		for _, enc := range song.Encodings {
			if enc.Quality == label {
				return enc.URL, nil
			}
		}
	}

	return song.Encodings[len(song.Encodings)-1].URL, nil
}

// deliver resolves and sends one song. The returned error reports a
// skipped delivery to batch callers; it is never propagated further.
func (c *Controller) deliver(userID, chatID int64, song *catalog.Song) error {
	pref := c.sessions.Get(userID).Quality()

	url, err := ResolveAudioURL(song, pref)
	if err != nil {
		log.Warnf("song %s has no encodings", song.ID)
		c.transport.SendText(chatID, fmt.Sprintf("⚠️ <b>%s</b> has no downloadable audio, skipping.",
			html.EscapeString(song.Name)))
		return err
	}

	c.stats.RecordDownload()
	c.transport.SendChatAction(chatID, telegram.UploadAudioAction)

	if err := c.transport.SendAudio(chatID, telegram.Audio{
		URL:       url,
		Title:     song.Name,
		Performer: song.Artist,
		Duration:  song.Duration,
	}); err != nil {
		// delivery failures are reported and swallowed so batches continue
		sentry.ReportError(err)
		c.transport.SendText(chatID, fmt.Sprintf("⚠️ Couldn't deliver <b>%s</b>.",
			html.EscapeString(song.Name)))
		return err
	}

	return nil
}

// DownloadSong fetches and delivers a single song under the user's
// quality preference.
func (c *Controller) DownloadSong(ctx context.Context, userID, chatID int64, songID string) error {
	song, err := c.catalog.GetSong(ctx, songID)
	if err != nil {
		return err
	}
	if song == nil {
		c.transport.SendText(chatID, "😕 That song isn't in the catalog anymore.")
		return nil
	}
	c.deliver(userID, chatID, song)
	return nil
}

// DownloadAlbum delivers every song of an album sequentially, in
// listing order. Individual failures are skipped, not fatal.
func (c *Controller) DownloadAlbum(ctx context.Context, userID, chatID int64, albumID string) error {
	album, err := c.AlbumDetail(ctx, userID, Ref{ID: albumID})
	if err != nil {
		return err
	}
	if album == nil {
		c.transport.SendText(chatID, "😕 That album isn't in the catalog anymore.")
		return nil
	}
	c.downloadAll(userID, chatID, album.Name, album.Songs)
	return nil
}

// DownloadPlaylist delivers every song of a playlist sequentially.
func (c *Controller) DownloadPlaylist(ctx context.Context, userID, chatID int64, playlistID string) error {
	playlist, err := c.PlaylistDetail(ctx, userID, Ref{ID: playlistID})
	if err != nil {
		return err
	}
	if playlist == nil {
		c.transport.SendText(chatID, "😕 That playlist isn't in the catalog anymore.")
		return nil
	}
	c.downloadAll(userID, chatID, playlist.Name, playlist.Songs)
	return nil
}

func (c *Controller) downloadAll(userID, chatID int64, name string, songs []catalog.Song) {
	if len(songs) == 0 {
		c.transport.SendText(chatID, fmt.Sprintf("😕 <b>%s</b> has no songs to download.",
			html.EscapeString(name)))
		return
	}

	capped := false
	if len(songs) > c.batchLimit {
		songs = songs[:c.batchLimit]
		capped = true
	}

	ack := fmt.Sprintf("⬇️ Sending %d songs from <b>%s</b>…", len(songs), html.EscapeString(name))
	if capped {
		ack += fmt.Sprintf("\n(capped at %d per batch)", c.batchLimit)
	}
	c.transport.SendText(chatID, ack)

	// sequential on purpose: one outbound transfer at a time keeps us
	// inside the transport's rate limits
	skipped := 0
	for _, song := range songs {
		if err := c.deliver(userID, chatID, &song); err != nil {
			skipped++
		}
	}
	log.Infof("batch %q for user %d done: %d sent, %d skipped", name, userID, len(songs)-skipped, skipped)
}
