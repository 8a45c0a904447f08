package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pfrederiksen/tk8-stats/internal/match"
	"gopkg.in/yaml.v3"
)

// DefaultSettingsFile is read when present and no settings path is given
const DefaultSettingsFile = "tk8-stats.yaml"

// Run modes
const (
	ModePerPage  = "per-page"
	ModeCombined = "combined"
)

// Notification channels
const (
	NotifyConsole  = "console"
	NotifyTelegram = "telegram"
	NotifyTwitter  = "twitter"
)

// Settings holds everything that shapes a run besides the input file
type Settings struct {
	Players        []string      `yaml:"players"`
	OutputDir      string        `yaml:"output_dir"`
	UserAgent      string        `yaml:"user_agent"`
	TitleSeparator string        `yaml:"title_separator"`
	Retries        int           `yaml:"retries"`
	Timeout        time.Duration `yaml:"timeout"`
	Mode           string        `yaml:"mode"`
	RawSheets      bool          `yaml:"raw_sheets"`
	Browser        bool          `yaml:"browser"`
	Notify         string        `yaml:"notify"`
	LogLevel       string        `yaml:"log_level"`
}

// DefaultSettings returns the built-in settings:
// one workbook per page in ./result, console notifications.
func DefaultSettings() Settings {
	return Settings{
		OutputDir:      "result",
		TitleSeparator: "•",
		Retries:        2,
		Timeout:        30 * time.Second,
		Mode:           ModePerPage,
		Notify:         NotifyConsole,
		LogLevel:       "info",
	}
}

// LoadSettings reads a YAML settings file over the defaults.
// When optional is true a missing file yields the defaults.
func LoadSettings(path string, optional bool) (Settings, error) {
	s := DefaultSettings()

	data, err := os.ReadFile(path)
	if err != nil {
		if optional && errors.Is(err, os.ErrNotExist) {
			return s, nil
		}
		return s, fmt.Errorf("reading settings: %w", err)
	}

	if err := yaml.Unmarshal(data, &s); err != nil {
		return s, fmt.Errorf("parsing settings: %w", err)
	}
	if err := s.Validate(); err != nil {
		return s, err
	}
	return s, nil
}

// Validate checks enumerated fields
func (s *Settings) Validate() error {
	s.Mode = strings.ToLower(strings.TrimSpace(s.Mode))
	switch s.Mode {
	case ModePerPage, ModeCombined:
	default:
		return fmt.Errorf("invalid mode: %s (must be '%s' or '%s')", s.Mode, ModePerPage, ModeCombined)
	}

	s.Notify = strings.ToLower(strings.TrimSpace(s.Notify))
	switch s.Notify {
	case NotifyConsole, NotifyTelegram, NotifyTwitter:
	default:
		return fmt.Errorf("invalid notify channel: %s", s.Notify)
	}

	if s.Retries < 0 {
		return fmt.Errorf("retries must not be negative: %d", s.Retries)
	}
	return nil
}

// Roster returns the configured roster, or the default one when none is set
func (s Settings) Roster() match.Roster {
	if len(s.Players) == 0 {
		return match.DefaultRoster()
	}
	return match.NewRoster(s.Players)
}

// LoadEnv loads KEY=VALUE pairs from a .env file without overriding variables
// that are already set. A missing file is not an error.
func LoadEnv(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("loading env file: %w", err)
	}
	return nil
}

// Credentials for notification channels, read from the environment
type Credentials struct {
	TelegramBotToken    string
	TelegramChatID      string
	TwitterAPIKey       string
	TwitterAPISecret    string
	TwitterAccessToken  string
	TwitterAccessSecret string
}

// CredentialsFromEnv reads notifier credentials from environment variables
func CredentialsFromEnv() Credentials {
	return Credentials{
		TelegramBotToken:    os.Getenv("TELEGRAM_BOT_TOKEN"),
		TelegramChatID:      os.Getenv("TELEGRAM_CHAT_ID"),
		TwitterAPIKey:       os.Getenv("TWITTER_API_KEY"),
		TwitterAPISecret:    os.Getenv("TWITTER_API_SECRET"),
		TwitterAccessToken:  os.Getenv("TWITTER_ACCESS_TOKEN"),
		TwitterAccessSecret: os.Getenv("TWITTER_ACCESS_SECRET"),
	}
}
