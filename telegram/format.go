package telegram

import (
	"fmt"
	"html"
	"strings"

	"grooviabot/catalog"
	"grooviabot/session"
	"grooviabot/stats"
)

// ResultLine is one rendered row of a paginated listing. Index is the
// 1-based display index, continuous across pages.
type ResultLine struct {
	Index    int
	Title    string
	Subtitle string
}

var kindHeadings = map[catalog.Kind]string{
	catalog.KindSong:     "🎵 Songs",
	catalog.KindAlbum:    "💿 Albums",
	catalog.KindPlaylist: "🎧 Playlists",
	catalog.KindArtist:   "🎤 Artists",
}

// FormatResults renders a result page as an HTML-mode message body.
func FormatResults(kind catalog.Kind, query string, page, totalPages int, lines []ResultLine) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s for <b>%s</b> — page %d/%d\n\n",
		kindHeadings[kind], html.EscapeString(query), page+1, totalPages)
	for _, line := range lines {
		if line.Subtitle != "" {
			fmt.Fprintf(&b, "%d. <b>%s</b> — %s\n", line.Index,
				html.EscapeString(line.Title), html.EscapeString(line.Subtitle))
		} else {
			fmt.Fprintf(&b, "%d. <b>%s</b>\n", line.Index, html.EscapeString(line.Title))
		}
	}
	b.WriteString("\nTap a number to open it.")
	return b.String()
}

// FormatItemList renders an unpaginated listing (suggestions, artist
// top songs) under a heading.
func FormatItemList(title string, lines []ResultLine) string {
	var b strings.Builder
	b.WriteString(title + "\n\n")
	for _, line := range lines {
		if line.Subtitle != "" {
			fmt.Fprintf(&b, "%d. <b>%s</b> — %s\n", line.Index,
				html.EscapeString(line.Title), html.EscapeString(line.Subtitle))
		} else {
			fmt.Fprintf(&b, "%d. <b>%s</b>\n", line.Index, html.EscapeString(line.Title))
		}
	}
	return b.String()
}

func SongCaption(song *catalog.Song) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🎵 <b>%s</b>\n", html.EscapeString(song.Name))
	if song.Artist != "" {
		fmt.Fprintf(&b, "🎤 %s\n", html.EscapeString(song.Artist))
	}
	if song.Album != "" {
		fmt.Fprintf(&b, "💿 %s\n", html.EscapeString(song.Album))
	}
	if song.Duration > 0 {
		fmt.Fprintf(&b, "⏱ %s", FormatDuration(song.Duration))
	}
	return strings.TrimRight(b.String(), "\n")
}

func AlbumCaption(album *catalog.Album) string {
	var b strings.Builder
	fmt.Fprintf(&b, "💿 <b>%s</b>\n", html.EscapeString(album.Name))
	if album.Artist != "" {
		fmt.Fprintf(&b, "🎤 %s\n", html.EscapeString(album.Artist))
	}
	if album.Year != "" && album.Year != "0" {
		fmt.Fprintf(&b, "📅 %s\n", html.EscapeString(album.Year))
	}
	fmt.Fprintf(&b, "🎵 %d songs", album.SongCount)
	return b.String()
}

func PlaylistCaption(playlist *catalog.Playlist) string {
	return fmt.Sprintf("🎧 <b>%s</b>\n🎵 %d songs",
		html.EscapeString(playlist.Name), playlist.SongCount)
}

func ArtistCaption(artist *catalog.Artist) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🎤 <b>%s</b>", html.EscapeString(artist.Name))
	if artist.FollowerCount > 0 {
		fmt.Fprintf(&b, "\n👥 %d followers", artist.FollowerCount)
	}
	return b.String()
}

var historyIcons = map[catalog.Kind]string{
	catalog.KindSong:     "🎵",
	catalog.KindAlbum:    "💿",
	catalog.KindPlaylist: "🎧",
	catalog.KindArtist:   "🎤",
}

func FormatHistory(entries []session.HistoryEntry) string {
	if len(entries) == 0 {
		return "🕘 Nothing here yet. Go find some music!"
	}
	var b strings.Builder
	b.WriteString("🕘 <b>Recently viewed</b>\n\n")
	for i, entry := range entries {
		fmt.Fprintf(&b, "%d. %s %s\n", i+1, historyIcons[entry.Kind], html.EscapeString(entry.Name))
	}
	return b.String()
}

func FormatStats(snap stats.Snapshot) string {
	return fmt.Sprintf("📊 <b>Bot stats</b>\n\n"+
		"👥 Users: %d\n"+
		"🔎 Catalog requests: %d\n"+
		"⬇️ Downloads: %d",
		snap.Users, snap.Requests, snap.Downloads)
}

// FormatDuration renders seconds as M:SS or H:MM:SS.
func FormatDuration(seconds int) string {
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}
