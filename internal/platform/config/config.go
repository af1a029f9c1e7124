// Package config loads server settings from defaults, an optional config.yaml
// and TEND_* environment variables, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

type HTTPConfig struct {
	Addr         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type DatabaseConfig struct {
	Driver        string // postgres or sqlite
	Host          string
	Port          int
	User          string
	Password      string
	Name          string
	SSLMode       string
	Path          string // sqlite file
	RunMigrations bool
	ConnectWithin time.Duration
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// Enabled reports whether a Redis server is configured.
func (r RedisConfig) Enabled() bool { return r.Host != "" }

// Addr returns host:port.
func (r RedisConfig) Addr() string { return fmt.Sprintf("%s:%d", r.Host, r.Port) }

type SessionConfig struct {
	TTL           time.Duration
	SweepSchedule string
}

type SecurityConfig struct {
	JWTSecret string
}

type LLMConfig struct {
	APIKey    string
	Model     string
	Timeout   time.Duration
	RateLimit int // calls per user per minute
}

type CORSConfig struct {
	AllowOrigins []string
}

type AppConfig struct {
	Environment string
	HTTP        HTTPConfig
	Database    DatabaseConfig
	Redis       RedisConfig
	Session     SessionConfig
	Security    SecurityConfig
	LLM         LLMConfig
	CORS        CORSConfig
}

// IsProduction reports whether cookies must be Secure and logs JSON.
func (c *AppConfig) IsProduction() bool { return c.Environment == "production" }

// Load reads the configuration. A missing config.yaml is not an error.
func Load() (*AppConfig, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	v.SetEnvPrefix("TEND")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("load config file: %w", err)
		}
	}

	var cfg AppConfig
	if err := v.Unmarshal(&cfg, func(dc *mapstructure.DecoderConfig) {
		dc.DecodeHook = mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		)
	}); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *AppConfig) validate() error {
	switch c.Database.Driver {
	case "postgres", "sqlite":
	default:
		return fmt.Errorf("database.driver must be postgres or sqlite, got %q", c.Database.Driver)
	}
	if c.Session.TTL <= 0 {
		return errors.New("session.ttl must be positive")
	}
	if c.LLM.RateLimit < 1 {
		return errors.New("llm.ratelimit must be at least 1")
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("environment", "development")

	v.SetDefault("http.addr", ":8080")
	v.SetDefault("http.readtimeout", "10s")
	v.SetDefault("http.writetimeout", "60s")

	v.SetDefault("database.driver", "postgres")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "")
	v.SetDefault("database.name", "tend")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.path", "tend.db")
	v.SetDefault("database.runmigrations", true)
	v.SetDefault("database.connectwithin", "60s")

	v.SetDefault("redis.host", "")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("session.ttl", "720h") // 30 days
	v.SetDefault("session.sweepschedule", "@every 1h")

	v.SetDefault("security.jwtsecret", "")

	v.SetDefault("llm.apikey", "")
	v.SetDefault("llm.model", "gemini-2.5-flash")
	v.SetDefault("llm.timeout", "60s")
	v.SetDefault("llm.ratelimit", 10)

	v.SetDefault("cors.alloworigins", []string{})
}
