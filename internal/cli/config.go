package cli

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/mcoot/memorygame-go/internal/config"
)

// Config holds CLI configuration
type Config struct {
	ServerURL string
	Token     string // table ID used as the bearer token
	TokenFile string
	Output    string
}

// DefaultConfig returns a Config seeded from MEMGAME_SERVER, MEMGAME_TOKEN
// and MEMGAME_TOKEN_FILE
func DefaultConfig() *Config {
	v := viper.New()
	v.SetEnvPrefix(config.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault("server", "http://localhost:8080")
	v.SetDefault("token-file", defaultTokenFile())

	return &Config{
		ServerURL: v.GetString("server"),
		Token:     v.GetString("token"),
		TokenFile: v.GetString("token-file"),
		Output:    "text",
	}
}

// LoadToken reads the token file unless a token was given directly
func (c *Config) LoadToken() error {
	if c.Token != "" {
		return nil
	}

	data, err := os.ReadFile(c.TokenFile)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}

	c.Token = strings.TrimSpace(string(data))
	return nil
}

// SaveToken stores the token so later commands pick it up
func (c *Config) SaveToken(token string) error {
	c.Token = token

	if err := os.MkdirAll(filepath.Dir(c.TokenFile), 0700); err != nil {
		return err
	}

	return os.WriteFile(c.TokenFile, []byte(token), 0600)
}

func defaultTokenFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".memgame", "token")
	}
	return filepath.Join(home, ".memgame", "token")
}
