package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadSettings(t *testing.T) {
	path := writeFile(t, "settings.yaml", `
players: [Jin, Kazuya]
output_dir: /tmp/out
retries: 4
timeout: 45s
mode: Combined
raw_sheets: true
notify: telegram
`)

	s, err := LoadSettings(path, false)
	if err != nil {
		t.Fatalf("LoadSettings() error: %v", err)
	}

	if s.OutputDir != "/tmp/out" {
		t.Errorf("OutputDir = %q", s.OutputDir)
	}
	if s.Retries != 4 {
		t.Errorf("Retries = %d, want 4", s.Retries)
	}
	if s.Timeout != 45*time.Second {
		t.Errorf("Timeout = %v, want 45s", s.Timeout)
	}
	if s.Mode != ModeCombined {
		t.Errorf("Mode = %q, want %q", s.Mode, ModeCombined)
	}
	if !s.RawSheets {
		t.Error("RawSheets = false, want true")
	}
	if s.Notify != NotifyTelegram {
		t.Errorf("Notify = %q", s.Notify)
	}
	// Unset fields keep their defaults
	if s.TitleSeparator != "•" {
		t.Errorf("TitleSeparator = %q, want default", s.TitleSeparator)
	}

	roster := s.Roster()
	if roster.Len() != 2 || !roster.Contains("Kazuya") || roster.Contains("Nina") {
		t.Errorf("Roster() = %v", roster.Names())
	}
}

func TestLoadSettings_Missing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "none.yaml")

	s, err := LoadSettings(path, true)
	if err != nil {
		t.Fatalf("LoadSettings(optional) error: %v", err)
	}
	if s.Mode != ModePerPage || s.Roster().Len() == 0 {
		t.Errorf("expected defaults, got %+v", s)
	}

	if _, err := LoadSettings(path, false); err == nil {
		t.Error("LoadSettings(required) expected error for missing file")
	}
}

func TestLoadSettings_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad yaml", "players: [unclosed"},
		{"bad mode", "mode: streaming"},
		{"bad notify", "notify: pager"},
		{"negative retries", "retries: -1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadSettings(writeFile(t, "s.yaml", tt.content), false); err == nil {
				t.Error("LoadSettings() expected error")
			}
		})
	}
}

func TestLoadEnv(t *testing.T) {
	path := writeFile(t, ".env", "TELEGRAM_BOT_TOKEN=from-file\nTELEGRAM_CHAT_ID=42\n")
	t.Setenv("TELEGRAM_BOT_TOKEN", "from-env")
	t.Setenv("TELEGRAM_CHAT_ID", "")
	os.Unsetenv("TELEGRAM_CHAT_ID")

	if err := LoadEnv(path); err != nil {
		t.Fatalf("LoadEnv() error: %v", err)
	}

	creds := CredentialsFromEnv()
	if creds.TelegramBotToken != "from-env" {
		t.Errorf("TelegramBotToken = %q, existing env should win", creds.TelegramBotToken)
	}
	if creds.TelegramChatID != "42" {
		t.Errorf("TelegramChatID = %q, want 42", creds.TelegramChatID)
	}

	if err := LoadEnv(filepath.Join(t.TempDir(), "missing.env")); err != nil {
		t.Errorf("LoadEnv(missing) error = %v, want nil", err)
	}
}
