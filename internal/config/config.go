// Package config loads service configuration from the environment, an optional
// .env file and an optional bookbrainz.yaml.
package config

import (
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	_ "github.com/joho/godotenv/autoload"
	"github.com/spf13/viper"
)

const envPrefix = "BOOKBRAINZ"

type Config struct {
	Env      string         `mapstructure:"env" validate:"oneof=development production test"`
	HTTP     HTTPConfig     `mapstructure:"http"`
	DB       DBConfig       `mapstructure:"db"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Cache    CacheConfig    `mapstructure:"cache"`
	Resolver ResolverConfig `mapstructure:"resolver"`
	Jobs     JobsConfig     `mapstructure:"jobs"`
	Log      LogConfig      `mapstructure:"log"`
}

type HTTPConfig struct {
	Port string `mapstructure:"port" validate:"required,numeric"`
}

type DBConfig struct {
	Driver string `mapstructure:"driver" validate:"oneof=postgres sqlite"`
	DSN    string `mapstructure:"dsn" validate:"required"`
}

type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Addr     string `mapstructure:"addr" validate:"required_if=Enabled true"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db" validate:"gte=0"`
}

type CacheConfig struct {
	TTL         time.Duration `mapstructure:"ttl" validate:"gte=0"`
	Compression string        `mapstructure:"compression" validate:"oneof=none gzip brotli lz4"`
}

type ResolverConfig struct {
	MaxRedirectHops int           `mapstructure:"max_redirect_hops" validate:"gte=1"`
	FanOut          int           `mapstructure:"fan_out" validate:"gte=1"`
	Timeout         time.Duration `mapstructure:"timeout" validate:"gte=0"`
}

type JobsConfig struct {
	// RedirectAudit is a cron schedule; empty disables the job.
	RedirectAudit string `mapstructure:"redirect_audit"`
}

type LogConfig struct {
	Level string `mapstructure:"level" validate:"oneof=trace debug info warn error fatal panic"`
	JSON  bool   `mapstructure:"json"`
}

func (c *Config) Development() bool {
	return c.Env == "development"
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("env", "development")
	v.SetDefault("http.port", "4001")
	v.SetDefault("db.driver", "sqlite")
	v.SetDefault("db.dsn", "bookbrainz.db")
	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("cache.ttl", 24*time.Hour)
	v.SetDefault("cache.compression", "gzip")
	v.SetDefault("resolver.max_redirect_hops", 32)
	v.SetDefault("resolver.fan_out", 8)
	v.SetDefault("resolver.timeout", 10*time.Second)
	v.SetDefault("jobs.redirect_audit", "@every 1h")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.json", false)
}

// LoadConfig reads the configuration. Environment variables such as
// BOOKBRAINZ_DB_DSN override bookbrainz.yaml, which overrides the defaults.
func LoadConfig() (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName("bookbrainz")
	v.AddConfigPath(".")
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	return decode(v)
}

func decode(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
