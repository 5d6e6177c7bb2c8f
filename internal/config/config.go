package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Session backends
const (
	BackendMemory = "memory"
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
)

// GameLayerConfig holds the remote service settings
type GameLayerConfig struct {
	APIKey     string        `env:"GAMELAYER_API_KEY" json:"-"`
	BaseURL    string        `env:"GAMELAYER_BASE_URL" envDefault:"https://api.gamelayer.co/api/v0"`
	GameID     string        `env:"GAMELAYER_GAME_ID"`
	ClientID   string        `env:"CLIENT_ID" envDefault:"christmas-corp"`
	Account    string        `env:"GAMELAYER_ACCOUNT"`
	EventYear  int           `env:"EVENT_YEAR"`
	EventMonth int           `env:"EVENT_MONTH" envDefault:"12"`
	Timeout    time.Duration `env:"GATEWAY_TIMEOUT" envDefault:"30s"`
	MaxRetries int           `env:"GATEWAY_MAX_RETRIES" envDefault:"3"`
	RPS        float64       `env:"GATEWAY_RPS" envDefault:"10"`
	Burst      int           `env:"GATEWAY_BURST" envDefault:"5"`
}

// Config is the process configuration
type Config struct {
	GameLayer GameLayerConfig

	SessionBackend string `env:"SESSION_BACKEND" envDefault:"sqlite"`
	SQLitePath     string `env:"SESSION_SQLITE_PATH" envDefault:"advent.db"`
	RedisURI       string `env:"REDIS_URI" envDefault:"redis://localhost:6379"`
	MongoURI       string `env:"MONGO_URI"`
	MongoDB        string `env:"MONGO_DB" envDefault:"advent"`

	MockClient  string `env:"MOCK_CLIENT" envDefault:"christmas-corp"`
	MockRanking string `env:"MOCK_RANKING" envDefault:"memory"`

	LeaderboardTopSize  int `env:"LEADERBOARD_TOP_SIZE" envDefault:"5"`
	LeaderboardPageSize int `env:"LEADERBOARD_PAGE_SIZE" envDefault:"10"`
	LeaderboardCap      int `env:"LEADERBOARD_CAP" envDefault:"25"`

	Port            string        `env:"PORT" envDefault:"8080"`
	JWTSecret       string        `env:"JWT_SECRET" envDefault:"super-secret-key-change-in-production"`
	TokenTTL        time.Duration `env:"TOKEN_TTL" envDefault:"720h"`
	ClientThemeFile string        `env:"CLIENT_THEME_FILE"`
	CORSOrigins     string        `env:"CORS_ALLOWED_ORIGINS" envDefault:"*"`
}

// Load reads the configuration from the environment
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.SessionBackend {
	case BackendMemory, BackendSQLite, BackendRedis:
	default:
		return fmt.Errorf("unknown SESSION_BACKEND %q", c.SessionBackend)
	}
	switch c.MockRanking {
	case BackendMemory, BackendRedis:
	default:
		return fmt.Errorf("unknown MOCK_RANKING %q", c.MockRanking)
	}
	if c.LeaderboardCap <= 0 || c.LeaderboardPageSize <= 0 || c.LeaderboardTopSize <= 0 {
		return fmt.Errorf("leaderboard sizes must be positive")
	}
	if c.GameLayer.EventMonth < 1 || c.GameLayer.EventMonth > 12 {
		return fmt.Errorf("EVENT_MONTH must be between 1 and 12")
	}
	return nil
}

// IsMockMode returns true when no GameLayer API key is configured
func (c *Config) IsMockMode() bool {
	return c.GameLayer.APIKey == ""
}

// UsesRedis reports whether any component needs a Redis connection
func (c *Config) UsesRedis() bool {
	return c.SessionBackend == BackendRedis || (c.IsMockMode() && c.MockRanking == BackendRedis)
}
