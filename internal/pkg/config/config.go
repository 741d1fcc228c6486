package config

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

const EnvProduction = "production"

type Config struct {
	Port      string `env:"PORT,       default=8080"`
	Env       string `env:"ENV,        default=development"`
	LogLevel  string `env:"LOG_LEVEL,  default=info"`
	LogPretty bool   `env:"LOG_PRETTY, default=false"`

	CORSOrigins []string `env:"CORS_ORIGINS, default=http://localhost:5173"`

	Auth       AuthConfig
	Mongo      MongoConfig
	Redis      RedisConfig
	Cache      CacheConfig
	Summarizer SummarizerConfig
}

type AuthConfig struct {
	AccessSecret    string        `env:"ACCESS_TOKEN_SECRET, required"`
	RefreshSecret   string        `env:"REFRESH_TOKEN_SECRET, required"`
	AccessTTL       time.Duration `env:"ACCESS_TOKEN_TTL,       default=15m"`
	RefreshTTL      time.Duration `env:"REFRESH_TOKEN_TTL,      default=168h"`
	DenylistEnabled bool          `env:"TOKEN_DENYLIST_ENABLED, default=true"`
	RateLimitRPS    float64       `env:"AUTH_RATE_LIMIT_RPS,    default=1"`
	RateLimitBurst  int           `env:"AUTH_RATE_LIMIT_BURST,  default=5"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=newsgpt"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR,     default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,       default=0"`
}

type CacheConfig struct {
	Enabled bool          `env:"CACHE_ENABLED, default=true"`
	TTL     time.Duration `env:"CACHE_TTL,     default=600s"`
}

type SummarizerConfig struct {
	// Mode is "huggingface" or "mock".
	Mode    string        `env:"SUMMARIZER_MODE,    default=huggingface"`
	URL     string        `env:"SUMMARIZER_URL,     default=https://api-inference.huggingface.co"`
	Model   string        `env:"SUMMARIZER_MODEL,   default=facebook/bart-large-cnn"`
	Token   string        `env:"HF_TOKEN"`
	Timeout time.Duration `env:"SUMMARIZER_TIMEOUT, default=0s"`
}

func (c *Config) IsProduction() bool { return c.Env == EnvProduction }

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	return LoadWith(ctx, envconfig.OsLookuper())
}

// LoadWith reads configuration through an arbitrary lookuper and validates it.
func LoadWith(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Auth.AccessSecret == c.Auth.RefreshSecret {
		return errors.New("ACCESS_TOKEN_SECRET and REFRESH_TOKEN_SECRET must differ")
	}
	if c.Auth.AccessTTL <= 0 || c.Auth.RefreshTTL <= 0 {
		return errors.New("token TTLs must be positive")
	}
	if c.Auth.RateLimitRPS <= 0 || c.Auth.RateLimitBurst <= 0 {
		return errors.New("auth rate limit must be positive")
	}
	switch c.Summarizer.Mode {
	case "huggingface", "mock":
	default:
		return fmt.Errorf("unknown SUMMARIZER_MODE %q", c.Summarizer.Mode)
	}
	if c.Summarizer.Timeout < 0 {
		return errors.New("SUMMARIZER_TIMEOUT must not be negative")
	}
	return nil
}
