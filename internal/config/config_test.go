package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.SessionBackend != BackendSQLite || cfg.Port != "8080" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.LeaderboardTopSize != 5 || cfg.LeaderboardPageSize != 10 || cfg.LeaderboardCap != 25 {
		t.Fatalf("unexpected leaderboard defaults: %d/%d/%d", cfg.LeaderboardTopSize, cfg.LeaderboardPageSize, cfg.LeaderboardCap)
	}
	if cfg.GameLayer.Timeout != 30*time.Second || cfg.GameLayer.EventMonth != 12 {
		t.Fatalf("unexpected gateway defaults: %+v", cfg.GameLayer)
	}
	if !cfg.IsMockMode() {
		t.Fatal("no API key means mock mode")
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("GAMELAYER_API_KEY", "secret")
	t.Setenv("GAMELAYER_GAME_ID", "advent-2025")
	t.Setenv("SESSION_BACKEND", "redis")
	t.Setenv("GATEWAY_TIMEOUT", "5s")
	t.Setenv("LEADERBOARD_CAP", "50")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.IsMockMode() {
		t.Fatal("API key set, expected live mode")
	}
	if cfg.GameLayer.GameID != "advent-2025" || cfg.GameLayer.Timeout != 5*time.Second || cfg.LeaderboardCap != 50 {
		t.Fatalf("env not applied: %+v", cfg)
	}
	if !cfg.UsesRedis() {
		t.Fatal("redis session backend needs redis")
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	tests := []struct {
		key, value, want string
	}{
		{"SESSION_BACKEND", "floppy", "SESSION_BACKEND"},
		{"MOCK_RANKING", "sqlite", "MOCK_RANKING"},
		{"LEADERBOARD_PAGE_SIZE", "0", "leaderboard"},
		{"EVENT_MONTH", "13", "EVENT_MONTH"},
		{"GATEWAY_RPS", "fast", "parse env:"},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := Load()
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("expected error mentioning %q, got %v", tt.want, err)
			}
		})
	}
}

func TestLoadTheme(t *testing.T) {
	path := filepath.Join(t.TempDir(), "theme.yaml")
	data := `id: winter-co
name: Winter Co
primaryColor: "#0ea5e9"
socialLinks:
  website: https://winter.example
`
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}

	theme, err := LoadTheme(path)
	if err != nil {
		t.Fatalf("LoadTheme: %v", err)
	}
	if theme.ID != "winter-co" || theme.PrimaryColor != "#0ea5e9" || theme.SocialLinks.Website != "https://winter.example" {
		t.Fatalf("theme not applied: %+v", theme)
	}
	if theme.FontFamily == "" || theme.SocialLinks.Twitter == "" {
		t.Fatal("defaults should fill unset fields")
	}
}

func TestLoadThemeErrors(t *testing.T) {
	if _, err := LoadTheme(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected an error for a missing file")
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	_ = os.WriteFile(path, []byte("id: [unclosed"), 0o600)
	if _, err := LoadTheme(path); err == nil {
		t.Fatal("expected a parse error")
	}

	theme, err := LoadTheme("")
	if err != nil || theme.ID != "default" {
		t.Fatalf("empty path should return defaults, got %+v %v", theme, err)
	}
}
