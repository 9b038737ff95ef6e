package telegram

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	log "github.com/sirupsen/logrus"

	"grooviabot/sentry"
)

// Client wraps the Telegram Bot API with the handful of sends the bot
// needs. Delivery failures are logged here; only SendAudio and the
// send-with-keyboard variants report them back for the caller to act on.
type Client struct {
	bot *tgbotapi.BotAPI
}

// Audio is a downloadable track handed to Telegram by URL.
type Audio struct {
	URL       string
	Title     string
	Performer string
	Caption   string
	Duration  int
}

// Photo is an image card with an optional inline keyboard.
type Photo struct {
	URL      string
	Caption  string
	Keyboard *tgbotapi.InlineKeyboardMarkup
}

func NewClient(token string) (*Client, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram: creating bot: %w", err)
	}
	log.Infof("authorized on telegram as @%s", bot.Self.UserName)
	return &Client{bot: bot}, nil
}

// Updates returns the long-polling update channel.
func (c *Client) Updates() tgbotapi.UpdatesChannel {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30
	return c.bot.GetUpdatesChan(u)
}

func (c *Client) StopPolling() {
	c.bot.StopReceivingUpdates()
}

func (c *Client) SendText(chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	if _, err := c.bot.Send(msg); err != nil {
		log.Errorf("sending text to %d: %v", chatID, err)
		return err
	}
	return nil
}

func (c *Client) SendTextWithKeyboard(chatID int64, text string, keyboard interface{}) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	msg.ReplyMarkup = keyboard
	if _, err := c.bot.Send(msg); err != nil {
		log.Errorf("sending keyboard message to %d: %v", chatID, err)
		return err
	}
	return nil
}

// SendAudio delivers a track by URL. Telegram fetches the file itself,
// so oversized or expired URLs surface here as send errors.
func (c *Client) SendAudio(chatID int64, audio Audio) error {
	msg := tgbotapi.NewAudio(chatID, tgbotapi.FileURL(audio.URL))
	msg.Title = audio.Title
	msg.Performer = audio.Performer
	msg.Caption = audio.Caption
	msg.Duration = audio.Duration
	if _, err := c.bot.Send(msg); err != nil {
		log.Errorf("sending audio %q to %d: %v", audio.Title, chatID, err)
		sentry.ReportError(err)
		return err
	}
	return nil
}

func (c *Client) SendPhoto(chatID int64, photo Photo) error {
	msg := tgbotapi.NewPhoto(chatID, tgbotapi.FileURL(photo.URL))
	msg.Caption = photo.Caption
	msg.ParseMode = tgbotapi.ModeHTML
	if photo.Keyboard != nil {
		msg.ReplyMarkup = photo.Keyboard
	}
	if _, err := c.bot.Send(msg); err != nil {
		log.Errorf("sending photo to %d: %v", chatID, err)
		return err
	}
	return nil
}

// EditButtons swaps the inline keyboard on an existing message.
func (c *Client) EditButtons(chatID int64, messageID int, keyboard tgbotapi.InlineKeyboardMarkup) {
	edit := tgbotapi.NewEditMessageReplyMarkup(chatID, messageID, keyboard)
	if _, err := c.bot.Send(edit); err != nil {
		log.Warnf("editing buttons on %d/%d: %v", chatID, messageID, err)
	}
}

// AcknowledgeCallback clears the client-side pending indicator for a
// button press. Must be called exactly once per callback.
func (c *Client) AcknowledgeCallback(callbackID string, text string) {
	ack := tgbotapi.NewCallback(callbackID, text)
	if _, err := c.bot.Request(ack); err != nil {
		log.Warnf("acknowledging callback %s: %v", callbackID, err)
	}
}

func (c *Client) DeleteMessage(chatID int64, messageID int) {
	del := tgbotapi.NewDeleteMessage(chatID, messageID)
	if _, err := c.bot.Request(del); err != nil {
		log.Warnf("deleting message %d/%d: %v", chatID, messageID, err)
	}
}

// SendChatAction shows a transient "uploading audio" style hint.
func (c *Client) SendChatAction(chatID int64, action string) {
	a := tgbotapi.NewChatAction(chatID, action)
	if _, err := c.bot.Request(a); err != nil {
		log.Tracef("sending chat action to %d: %v", chatID, err)
	}
}

// UploadAudioAction is the chat action shown while a download is prepared.
const UploadAudioAction = "upload_voice"
