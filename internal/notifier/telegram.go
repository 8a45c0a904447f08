package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"html"
	"io"
	"net/http"
	"time"
)

var telegramBaseURL = "https://api.telegram.org/bot"

const telegramTimeout = 10 * time.Second

// Telegram posts notifications through the Telegram Bot API
type Telegram struct {
	botToken   string
	chatID     string
	httpClient *http.Client
}

// NewTelegram creates a new Telegram notifier
func NewTelegram(botToken, chatID string) (*Telegram, error) {
	if botToken == "" {
		return nil, fmt.Errorf("telegram bot token is required (TELEGRAM_BOT_TOKEN)")
	}
	if chatID == "" {
		return nil, fmt.Errorf("telegram chat ID is required (TELEGRAM_CHAT_ID)")
	}

	return &Telegram{
		botToken: botToken,
		chatID:   chatID,
		httpClient: &http.Client{
			Timeout: telegramTimeout,
		},
	}, nil
}

// Notify sends msg to the configured chat
func (t *Telegram) Notify(ctx context.Context, msg Message) error {
	text := "<b>" + html.EscapeString(msg.Title) + "</b>"
	if msg.Body != "" {
		text += "\n" + html.EscapeString(msg.Body)
	}
	return t.sendMessage(ctx, text)
}

type sendMessageRequest struct {
	ChatID                string `json:"chat_id"`
	Text                  string `json:"text"`
	ParseMode             string `json:"parse_mode"`
	DisableWebPagePreview bool   `json:"disable_web_page_preview"`
}

func (t *Telegram) sendMessage(ctx context.Context, text string) error {
	url := fmt.Sprintf("%s%s/sendMessage", telegramBaseURL, t.botToken)

	payload, err := json.Marshal(sendMessageRequest{
		ChatID:                t.chatID,
		Text:                  text,
		ParseMode:             "HTML",
		DisableWebPagePreview: true,
	})
	if err != nil {
		return fmt.Errorf("marshaling payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("sending request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("telegram API error (status %d): %s", resp.StatusCode, string(body))
	}

	var result struct {
		OK          bool   `json:"ok"`
		Description string `json:"description"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return fmt.Errorf("parsing response: %w", err)
	}
	if !result.OK {
		return fmt.Errorf("telegram API error: %s", result.Description)
	}

	return nil
}
