package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`
	// Port serves the health and metrics endpoints, not bot traffic.
	Port string `env:"PORT, default=8080"`

	Telegram TelegramConfig
	Backend  BackendConfig
	Redis    RedisConfig
	Session  SessionConfig
	Spin     SpinConfig
	Referral ReferralConfig
}

type TelegramConfig struct {
	Token string `env:"TELEGRAM_TOKEN, required"`
}

type BackendConfig struct {
	BaseURL string        `env:"API_BASE_URL, default=https://club-back-production.up.railway.app/api"`
	Timeout time.Duration `env:"API_TIMEOUT,  default=15s"`
	// AuthCode is sent with login/register under the hood; the bot never
	// asks the user for it.
	AuthCode string `env:"AUTH_CODE, default=0000"`
}

type RedisConfig struct {
	// Addr is optional: when empty the bot runs without Redis (file-backed
	// sessions, no update dedup).
	Addr string `env:"REDIS_ADDR"`
	DB   int    `env:"REDIS_DB, default=0"`
}

type SessionConfig struct {
	File string `env:"SESSION_FILE, default=sessions.json"`
}

type SpinConfig struct {
	RateMax    int           `env:"SPIN_RATE_MAX,    default=5"`
	RateWindow time.Duration `env:"SPIN_RATE_WINDOW, default=10m"`
	GeoTTL     time.Duration `env:"GEO_TTL,          default=60m"`
	// ResultDelay is the pause before the deferred spin-result message.
	ResultDelay time.Duration `env:"SPIN_RESULT_DELAY, default=7s"`
	MinBalance  int           `env:"SPIN_MIN_BALANCE,  default=20"`
}

type ReferralConfig struct {
	// Prefix is an optional fixed prefix referral codes must carry.
	Prefix string `env:"REFERRAL_PREFIX"`
	// CodeLen is the alphanumeric length after the prefix.
	CodeLen int `env:"REFERRAL_CODE_LEN, default=8"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}
