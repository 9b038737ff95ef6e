// Package handlers routes inbound chat events. Free-text messages go
// through the intent router, button presses through the callback
// dispatcher; both end in the controller.
package handlers

import (
	"context"
	"fmt"
	"html"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"grooviabot/catalog"
	appConfig "grooviabot/config"
	"grooviabot/controller"
	"grooviabot/sentryhelper"
	"grooviabot/session"
	"grooviabot/stats"
	"grooviabot/telegram"
)

// Messenger is the slice of the chat transport the dispatcher needs.
// telegram.Client implements it; tests substitute a recorder.
type Messenger interface {
	SendText(chatID int64, text string) error
	SendTextWithKeyboard(chatID int64, text string, keyboard interface{}) error
	SendPhoto(chatID int64, photo telegram.Photo) error
	SendAudio(chatID int64, audio telegram.Audio) error
	SendChatAction(chatID int64, action string)
	EditButtons(chatID int64, messageID int, keyboard tgbotapi.InlineKeyboardMarkup)
	AcknowledgeCallback(callbackID string, text string)
	DeleteMessage(chatID int64, messageID int)
}

type Manager struct {
	controller *controller.Controller
	sessions   *session.Store
	stats      *stats.Stats
	tg         Messenger
	admin      *appConfig.TelegramConfig
}

func NewManager(ctrl *controller.Controller, sessions *session.Store, st *stats.Stats, tg Messenger, admin *appConfig.TelegramConfig) *Manager {
	return &Manager{
		controller: ctrl,
		sessions:   sessions,
		stats:      st,
		tg:         tg,
		admin:      admin,
	}
}

var kindToAction = map[catalog.Kind]telegram.Action{
	catalog.KindSong:     telegram.ActionSong,
	catalog.KindAlbum:    telegram.ActionAlbum,
	catalog.KindPlaylist: telegram.ActionPlaylist,
	catalog.KindArtist:   telegram.ActionArtist,
}

// HandleUpdate is the failure boundary for one inbound event. Nothing
// below it may terminate the process.
func (m *Manager) HandleUpdate(update tgbotapi.Update) {
	eventID := uuid.NewString()
	logger := log.WithFields(log.Fields{"module": "handlers", "event_id": eventID})

	var chatID int64
	switch {
	case update.Message != nil && update.Message.Chat != nil:
		chatID = update.Message.Chat.ID
	case update.CallbackQuery != nil && update.CallbackQuery.Message != nil:
		chatID = update.CallbackQuery.Message.Chat.ID
	}

	defer func() {
		if r := recover(); r != nil {
			logger.Errorf("panic handling update: %v", r)
			sentryhelper.CaptureMessage(context.Background(), fmt.Sprintf("panic in update handler: %v", r))
			if chatID != 0 {
				m.tg.SendText(chatID, "🚧 Something went wrong while handling that. Please try again.")
			}
		}
	}()

	switch {
	case update.Message != nil && update.Message.From != nil:
		ctx, transaction := sentryhelper.StartEventTransaction(context.Background(), "message", update.Message.From.ID)
		defer transaction.Finish()
		m.handleMessage(ctx, update.Message)
	case update.CallbackQuery != nil && update.CallbackQuery.From != nil:
		ctx, transaction := sentryhelper.StartEventTransaction(context.Background(), "callback", update.CallbackQuery.From.ID)
		defer transaction.Finish()
		m.handleCallback(ctx, update.CallbackQuery)
	default:
		logger.Trace("ignoring update with no message or callback")
	}
}

// handleMessage is the intent router. Priority: deep link, menu label,
// pending query, default song search.
func (m *Manager) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	userID := msg.From.ID
	chatID := msg.Chat.ID
	m.stats.RecordUser(userID)
	sess := m.sessions.Get(userID)

	if msg.IsCommand() {
		m.handleCommand(ctx, msg)
		return
	}

	text := strings.TrimSpace(msg.Text)

	if kind, ok := catalog.ParseCatalogLink(text); ok {
		m.showDetail(ctx, userID, chatID, kind, controller.Ref{Link: text})
		return
	}

	switch text {
	case telegram.MenuSearchSongs:
		sess.AwaitQuery(catalog.KindSong)
		m.tg.SendText(chatID, "🎵 Send me a song name.")
		return
	case telegram.MenuSearchAlbums:
		sess.AwaitQuery(catalog.KindAlbum)
		m.tg.SendText(chatID, "💿 Send me an album name.")
		return
	case telegram.MenuSearchPlaylists:
		sess.AwaitQuery(catalog.KindPlaylist)
		m.tg.SendText(chatID, "🎧 Send me a playlist name.")
		return
	case telegram.MenuSearchArtists:
		sess.AwaitQuery(catalog.KindArtist)
		m.tg.SendText(chatID, "🎤 Send me an artist name.")
		return
	case telegram.MenuSettings:
		m.tg.SendTextWithKeyboard(chatID, "⚙️ Pick your audio quality:", telegram.QualityKeyboard(sess.Quality()))
		return
	case telegram.MenuHistory:
		m.tg.SendText(chatID, telegram.FormatHistory(sess.View().History))
		return
	case telegram.MenuTrending:
		m.runSearch(ctx, userID, chatID, catalog.KindPlaylist, "Trending", 0)
		return
	}

	if text == "" {
		m.tg.SendText(chatID, "🤔 There's nothing to search for. Send me a name!")
		return
	}

	kind := catalog.KindSong
	if view := sess.View(); view.State == session.StateAwaitingQuery && view.PendingKind != "" {
		kind = view.PendingKind
	}
	m.runSearch(ctx, userID, chatID, kind, text, 0)
}

func (m *Manager) handleCommand(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID

	switch msg.Command() {
	case "start":
		m.tg.SendTextWithKeyboard(chatID,
			"👋 Hey! I can find and send you songs, albums, playlists and artists.\n\n"+
				"Use the menu below, paste a catalog link, or just type a song name.",
			telegram.MainMenuKeyboard())
	case "help":
		m.tg.SendText(chatID,
			"<b>What I can do</b>\n\n"+
				"• Type any text — I'll search songs for it\n"+
				"• Paste a song/album/playlist/artist link — I'll open it\n"+
				"• "+telegram.MenuSearchSongs+" and friends — targeted search\n"+
				"• "+telegram.MenuSettings+" — pick your audio quality\n"+
				"• "+telegram.MenuHistory+" — what you looked at recently\n"+
				"• "+telegram.MenuTrending+" — what's hot right now")
	case "stats":
		if !m.admin.IsAdmin(msg.From.ID) {
			m.tg.SendText(chatID, "🚫 This command is for the bot admin.")
			return
		}
		m.tg.SendText(chatID, telegram.FormatStats(m.stats.Snapshot()))
	case "broadcast":
		if !m.admin.IsAdmin(msg.From.ID) {
			m.tg.SendText(chatID, "🚫 This command is for the bot admin.")
			return
		}
		m.broadcast(chatID, strings.TrimSpace(msg.CommandArguments()))
	default:
		m.tg.SendText(chatID, "🤷 Unknown command. Try /help.")
	}
}

// broadcast sends one message to every user ever seen, continuing past
// individual delivery failures.
func (m *Manager) broadcast(adminChatID int64, text string) {
	if text == "" {
		m.tg.SendText(adminChatID, "Usage: /broadcast <message>")
		return
	}

	delivered, failed := 0, 0
	for _, userID := range m.stats.UserIDs() {
		if err := m.tg.SendText(userID, text); err != nil {
			failed++
			continue
		}
		delivered++
	}
	m.tg.SendText(adminChatID, fmt.Sprintf("📣 Broadcast done: %d delivered, %d failed.", delivered, failed))
}

// runSearch renders one result page. Reports whether a page was
// actually shown, so page turns know the old message can go.
func (m *Manager) runSearch(ctx context.Context, userID, chatID int64, kind catalog.Kind, query string, page int) bool {
	result, err := m.controller.Search(ctx, userID, kind, query, page)
	if err != nil {
		m.reportFailure(chatID, err)
		return false
	}
	if len(result.Items) == 0 {
		m.tg.SendText(chatID, fmt.Sprintf("😕 No results for <b>%s</b>.", html.EscapeString(query)))
		return false
	}

	lines := make([]telegram.ResultLine, 0, len(result.Items))
	buttons := make([]telegram.ResultButton, 0, len(result.Items))
	for _, item := range result.Items {
		lines = append(lines, telegram.ResultLine{
			Index:    item.Index,
			Title:    item.Title,
			Subtitle: item.Subtitle,
		})
		buttons = append(buttons, telegram.ResultButton{
			Label: fmt.Sprintf("%d", item.Index),
			Data:  telegram.NewCallback(kindToAction[item.Kind], item.ID),
		})
	}

	m.tg.SendTextWithKeyboard(chatID,
		telegram.FormatResults(kind, query, page, result.TotalPages, lines),
		telegram.ResultsKeyboard(buttons, kind, query, page, result.TotalPages))
	return true
}

func (m *Manager) showDetail(ctx context.Context, userID, chatID int64, kind catalog.Kind, ref controller.Ref) {
	switch kind {
	case catalog.KindSong:
		song, err := m.controller.SongDetail(ctx, userID, ref)
		if err != nil {
			m.reportFailure(chatID, err)
			return
		}
		if song == nil {
			m.tg.SendText(chatID, "😕 Couldn't find that song.")
			return
		}
		m.sendCard(chatID, song.ImageURL, telegram.SongCaption(song), telegram.SongKeyboard(song.ID))
	case catalog.KindAlbum:
		album, err := m.controller.AlbumDetail(ctx, userID, ref)
		if err != nil {
			m.reportFailure(chatID, err)
			return
		}
		if album == nil {
			m.tg.SendText(chatID, "😕 Couldn't find that album.")
			return
		}
		m.sendCard(chatID, album.ImageURL, telegram.AlbumCaption(album), telegram.AlbumKeyboard(album.ID))
	case catalog.KindPlaylist:
		playlist, err := m.controller.PlaylistDetail(ctx, userID, ref)
		if err != nil {
			m.reportFailure(chatID, err)
			return
		}
		if playlist == nil {
			m.tg.SendText(chatID, "😕 Couldn't find that playlist.")
			return
		}
		m.sendCard(chatID, playlist.ImageURL, telegram.PlaylistCaption(playlist), telegram.PlaylistKeyboard(playlist.ID))
	case catalog.KindArtist:
		artist, err := m.controller.ArtistDetail(ctx, userID, ref)
		if err != nil {
			m.reportFailure(chatID, err)
			return
		}
		if artist == nil {
			m.tg.SendText(chatID, "😕 Couldn't find that artist.")
			return
		}
		m.sendCard(chatID, artist.ImageURL, telegram.ArtistCaption(artist), telegram.ArtistKeyboard(artist.ID))
	}
}

func (m *Manager) sendCard(chatID int64, imageURL, caption string, keyboard tgbotapi.InlineKeyboardMarkup) {
	if imageURL != "" {
		if err := m.tg.SendPhoto(chatID, telegram.Photo{
			URL:      imageURL,
			Caption:  caption,
			Keyboard: &keyboard,
		}); err == nil {
			return
		}
		// fall through to plain text when the image is rejected
	}
	m.tg.SendTextWithKeyboard(chatID, caption, keyboard)
}

// handleCallback dispatches one button press. The press is acknowledged
// exactly once, before any slow work.
func (m *Manager) handleCallback(ctx context.Context, cq *tgbotapi.CallbackQuery) {
	userID := cq.From.ID
	m.stats.RecordUser(userID)

	cb, err := telegram.DecodeCallback(cq.Data)
	m.tg.AcknowledgeCallback(cq.ID, "")
	if err != nil {
		log.Warnf("undecodable callback from user %d: %v", userID, err)
		return
	}
	if cq.Message == nil || cq.Message.Chat == nil {
		return
	}
	chatID := cq.Message.Chat.ID

	switch cb.Action {
	case telegram.ActionSong, telegram.ActionAlbum, telegram.ActionPlaylist, telegram.ActionArtist:
		m.showDetail(ctx, userID, chatID, catalog.Kind(cb.Action), controller.Ref{ID: cb.Payload})
	case telegram.ActionDownload:
		if err := m.controller.DownloadSong(ctx, userID, chatID, cb.Payload); err != nil {
			m.reportFailure(chatID, err)
		}
	case telegram.ActionAlbumDownload:
		if err := m.controller.DownloadAlbum(ctx, userID, chatID, cb.Payload); err != nil {
			m.reportFailure(chatID, err)
		}
	case telegram.ActionPlaylistDownload:
		if err := m.controller.DownloadPlaylist(ctx, userID, chatID, cb.Payload); err != nil {
			m.reportFailure(chatID, err)
		}
	case telegram.ActionSimilar:
		m.showListing(ctx, chatID, "🎶 <b>Similar songs</b>", func() ([]controller.SearchItem, error) {
			return m.controller.Suggestions(ctx, cb.Payload)
		})
	case telegram.ActionArtistSongs:
		m.showListing(ctx, chatID, "🎵 <b>Top songs</b>", func() ([]controller.SearchItem, error) {
			return m.controller.ArtistSongs(ctx, cb.Payload, 0)
		})
	case telegram.ActionArtistAlbums:
		m.showListing(ctx, chatID, "💿 <b>Albums</b>", func() ([]controller.SearchItem, error) {
			return m.controller.ArtistAlbums(ctx, cb.Payload, 0)
		})
	case telegram.ActionPage:
		// the payload carries its own kind/query/page so a turn stays
		// valid no matter what happened to the session since
		if m.runSearch(ctx, userID, chatID, cb.Kind, cb.Query, cb.Page) {
			m.tg.DeleteMessage(chatID, cq.Message.MessageID)
		}
	case telegram.ActionQuality:
		quality := session.Quality(cb.Payload)
		switch quality {
		case session.QualityLow, session.QualityMedium, session.QualityHigh:
			m.sessions.Get(userID).SetQuality(quality)
			m.tg.EditButtons(chatID, cq.Message.MessageID, telegram.QualityKeyboard(quality))
		default:
			log.Warnf("callback with unknown quality %q", cb.Payload)
		}
	case telegram.ActionNoop:
		// already acknowledged
	}
}

func (m *Manager) showListing(ctx context.Context, chatID int64, title string, fetch func() ([]controller.SearchItem, error)) {
	items, err := fetch()
	if err != nil {
		m.reportFailure(chatID, err)
		return
	}
	if len(items) == 0 {
		m.tg.SendText(chatID, "😕 Nothing found here.")
		return
	}

	lines := make([]telegram.ResultLine, 0, len(items))
	buttons := make([]telegram.ResultButton, 0, len(items))
	for _, item := range items {
		lines = append(lines, telegram.ResultLine{Index: item.Index, Title: item.Title, Subtitle: item.Subtitle})
		buttons = append(buttons, telegram.ResultButton{
			Label: fmt.Sprintf("%d", item.Index),
			Data:  telegram.NewCallback(kindToAction[item.Kind], item.ID),
		})
	}
	m.tg.SendTextWithKeyboard(chatID,
		telegram.FormatItemList(title, lines),
		telegram.ResultsKeyboard(buttons, "", "", 0, 1))
}

// reportFailure converts a catalog failure into a generic user-facing
// message. Nothing user-triggered crosses this boundary as an error.
func (m *Manager) reportFailure(chatID int64, err error) {
	log.Errorf("catalog operation failed: %v", err)
	sentryhelper.CaptureException(context.Background(), err)
	m.tg.SendText(chatID, "🚧 The music catalog isn't answering right now. Try again in a bit.")
}
