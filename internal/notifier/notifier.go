package notifier

import (
	"context"
	"fmt"

	"github.com/pfrederiksen/tk8-stats/internal/config"
)

// Level distinguishes success messages from failures
type Level string

const (
	LevelInfo  Level = "info"
	LevelError Level = "error"
)

// Message is a single user-facing notification
type Message struct {
	Level Level
	Title string
	Body  string
}

// Text renders the message as "Title: Body"
func (m Message) Text() string {
	if m.Body == "" {
		return m.Title
	}
	return m.Title + ": " + m.Body
}

// Notifier defines the interface for delivering notifications
type Notifier interface {
	// Notify delivers msg
	Notify(ctx context.Context, msg Message) error
}

// New returns the notifier for channel. Console output goes to the provided console.
func New(channel string, creds config.Credentials, console *Console) (Notifier, error) {
	switch channel {
	case "", config.NotifyConsole:
		return console, nil
	case config.NotifyTelegram:
		return NewTelegram(creds.TelegramBotToken, creds.TelegramChatID)
	case config.NotifyTwitter:
		return NewTwitter(creds.TwitterAPIKey, creds.TwitterAPISecret, creds.TwitterAccessToken, creds.TwitterAccessSecret)
	default:
		return nil, fmt.Errorf("unknown notify channel: %s", channel)
	}
}
