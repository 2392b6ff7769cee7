package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/mcoot/memorygame-go/internal/model"
)

// EnvPrefix is prepended to every environment variable, e.g. MEMGAME_PORT
const EnvPrefix = "MEMGAME"

// Storage backends
const (
	StorageMemory = "memory"
	StorageRedis  = "redis"
)

// Config holds all server settings
type Config struct {
	Host           string        `mapstructure:"host"`
	Port           int           `mapstructure:"port"`
	Storage        string        `mapstructure:"storage"`
	RedisURL       string        `mapstructure:"redis-url"`
	RevertDelay    time.Duration `mapstructure:"revert-delay"`
	BannerDuration time.Duration `mapstructure:"banner-duration"`
	TableTTL       time.Duration `mapstructure:"table-ttl"`
	LogLevel       string        `mapstructure:"log-level"`
	StaticDir      string        `mapstructure:"static-dir"`

	// Catalog can only be set from a config file
	Catalog model.Catalog `mapstructure:"catalog"`
}

// Default returns the built-in settings
func Default() Config {
	return Config{
		Host:           "0.0.0.0",
		Port:           8080,
		Storage:        StorageMemory,
		RedisURL:       "redis://localhost:6379",
		RevertDelay:    time.Second,
		BannerDuration: 3 * time.Second,
		TableTTL:       24 * time.Hour,
		LogLevel:       "info",
		StaticDir:      "",
		Catalog:        model.DefaultCatalog(),
	}
}

// RegisterFlags adds a flag for every setting to fs
func RegisterFlags(fs *pflag.FlagSet) {
	d := Default()

	fs.SetNormalizeFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
	})

	fs.String("config", "", "path to a YAML config file (env: MEMGAME_CONFIG)")
	fs.StringP("host", "b", d.Host, "address to bind to (env: MEMGAME_HOST)")
	fs.IntP("port", "p", d.Port, "port to listen on (env: MEMGAME_PORT)")
	fs.String("storage", d.Storage, "storage backend, memory or redis (env: MEMGAME_STORAGE)")
	fs.String("redis-url", d.RedisURL, "redis connection url (env: MEMGAME_REDIS_URL)")
	fs.Duration("revert-delay", d.RevertDelay, "how long a mismatched pair stays face up (env: MEMGAME_REVERT_DELAY)")
	fs.Duration("banner-duration", d.BannerDuration, "how long the completion banner is shown (env: MEMGAME_BANNER_DURATION)")
	fs.Duration("table-ttl", d.TableTTL, "time before an idle table and its ranking are dropped (env: MEMGAME_TABLE_TTL)")
	fs.String("log-level", d.LogLevel, "debug, info, warn or error (env: MEMGAME_LOG_LEVEL)")
	fs.String("static-dir", d.StaticDir, "serve static files from this directory instead of the embedded ones (env: MEMGAME_STATIC_DIR)")
}

// Load resolves settings from flags, environment and an optional config file.
// Explicit flags win over environment, which wins over the file.
func Load(fs *pflag.FlagSet) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	var bindErr error
	fs.VisitAll(func(f *pflag.Flag) {
		if err := v.BindPFlag(f.Name, f); err != nil {
			bindErr = errors.Join(bindErr, err)
		}
		if err := v.BindEnv(f.Name); err != nil {
			bindErr = errors.Join(bindErr, err)
		}
	})
	if bindErr != nil {
		return Config{}, fmt.Errorf("bind flags: %w", bindErr)
	}

	if path := v.GetString("config"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	}

	// Decoding into a populated slice would merge with it
	cfg := Default()
	cfg.Catalog = model.Catalog{}
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if len(cfg.Catalog.Symbols) == 0 && len(cfg.Catalog.Decorations) == 0 {
		cfg.Catalog = model.DefaultCatalog()
	}

	return cfg, nil
}

// Validate reports the first invalid setting
func (c Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid port (must be between 1-65535 inclusive): %d", c.Port)
	}
	switch c.Storage {
	case StorageMemory:
	case StorageRedis:
		if c.RedisURL == "" {
			return errors.New("redis-url is required when storage is redis")
		}
	default:
		return fmt.Errorf("unknown storage backend %q (must be memory or redis)", c.Storage)
	}
	if c.RevertDelay <= 0 {
		return fmt.Errorf("revert-delay must be positive: %s", c.RevertDelay)
	}
	if c.BannerDuration <= 0 {
		return fmt.Errorf("banner-duration must be positive: %s", c.BannerDuration)
	}
	if c.TableTTL <= 0 {
		return fmt.Errorf("table-ttl must be positive: %s", c.TableTTL)
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	if err := c.Catalog.Validate(); err != nil {
		return fmt.Errorf("catalog: %w", err)
	}
	return nil
}

// Addr returns the listen address
func (c Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// SlogLevel returns the configured log level, defaulting to info
func (c Config) SlogLevel() slog.Level {
	level, err := ParseLevel(c.LogLevel)
	if err != nil {
		return slog.LevelInfo
	}
	return level
}

// ParseLevel parses a log level name
func ParseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log-level %q: %w", s, err)
	}
	return level, nil
}
