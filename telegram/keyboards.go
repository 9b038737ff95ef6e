package telegram

import (
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"grooviabot/catalog"
	"grooviabot/session"
)

// Fixed labels of the persistent menu keyboard. The intent router
// matches inbound text against these exactly.
const (
	MenuSearchSongs     = "🎵 Search Songs"
	MenuSearchAlbums    = "💿 Search Albums"
	MenuSearchPlaylists = "🎧 Search Playlists"
	MenuSearchArtists   = "🎤 Search Artists"
	MenuSettings        = "⚙️ Settings"
	MenuHistory         = "🕘 History"
	MenuTrending        = "🔥 Trending"
)

const resultButtonsPerRow = 5

// MainMenuKeyboard is the persistent reply keyboard shown on /start.
func MainMenuKeyboard() tgbotapi.ReplyKeyboardMarkup {
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(MenuSearchSongs),
			tgbotapi.NewKeyboardButton(MenuSearchAlbums),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(MenuSearchPlaylists),
			tgbotapi.NewKeyboardButton(MenuSearchArtists),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(MenuTrending),
			tgbotapi.NewKeyboardButton(MenuHistory),
			tgbotapi.NewKeyboardButton(MenuSettings),
		),
	)
	kb.ResizeKeyboard = true
	return kb
}

// ResultButton pairs a button label with its callback.
type ResultButton struct {
	Label string
	Data  Callback
}

// ResultsKeyboard lays out numbered item buttons in rows plus a
// pagination row. The Prev button is omitted on page 0 and the Next
// button on the last page.
func ResultsKeyboard(buttons []ResultButton, kind catalog.Kind, query string, page, totalPages int) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton

	var row []tgbotapi.InlineKeyboardButton
	for _, b := range buttons {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(b.Label, b.Data.Encode()))
		if len(row) == resultButtonsPerRow {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}

	var nav []tgbotapi.InlineKeyboardButton
	if page > 0 {
		nav = append(nav, tgbotapi.NewInlineKeyboardButtonData(
			"⬅️ Prev", NewPageCallback(kind, query, page-1).Encode()))
	}
	if totalPages > 1 {
		nav = append(nav, tgbotapi.NewInlineKeyboardButtonData(
			strconv.Itoa(page+1)+"/"+strconv.Itoa(totalPages),
			Callback{Action: ActionNoop}.Encode()))
	}
	if page < totalPages-1 {
		nav = append(nav, tgbotapi.NewInlineKeyboardButtonData(
			"Next ➡️", NewPageCallback(kind, query, page+1).Encode()))
	}
	if len(nav) > 0 {
		rows = append(rows, nav)
	}

	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func SongKeyboard(songID string) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("⬇️ Download", NewCallback(ActionDownload, songID).Encode()),
			tgbotapi.NewInlineKeyboardButtonData("🎶 Similar", NewCallback(ActionSimilar, songID).Encode()),
		),
	)
}

func AlbumKeyboard(albumID string) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("⬇️ Download All", NewCallback(ActionAlbumDownload, albumID).Encode()),
		),
	)
}

func PlaylistKeyboard(playlistID string) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("⬇️ Download All", NewCallback(ActionPlaylistDownload, playlistID).Encode()),
		),
	)
}

func ArtistKeyboard(artistID string) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🎵 Songs", NewCallback(ActionArtistSongs, artistID).Encode()),
			tgbotapi.NewInlineKeyboardButtonData("💿 Albums", NewCallback(ActionArtistAlbums, artistID).Encode()),
		),
	)
}

// QualityKeyboard marks the active preference with a check.
func QualityKeyboard(current session.Quality) tgbotapi.InlineKeyboardMarkup {
	label := func(q session.Quality, name string) string {
		if q == current {
			return "✅ " + name
		}
		return name
	}
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label(session.QualityLow, "Low (96kbps)"), NewCallback(ActionQuality, string(session.QualityLow)).Encode()),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label(session.QualityMedium, "Medium (160kbps)"), NewCallback(ActionQuality, string(session.QualityMedium)).Encode()),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label(session.QualityHigh, "High (320kbps)"), NewCallback(ActionQuality, string(session.QualityHigh)).Encode()),
		),
	)
}
