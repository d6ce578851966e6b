// Package config loads module configuration from file, environment and
// defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the full module configuration.
type Config struct {
	// Method overrides adapter selection: auto, mpris, winmedia,
	// macmedia, scrobble or nightbot.
	Method string `mapstructure:"method"`

	// PollIntervalMs is the reconciliation tick for poll adapters.
	PollIntervalMs int `mapstructure:"poll_interval_ms"`

	Server struct {
		Addr string `mapstructure:"addr"`
	} `mapstructure:"server"`

	Playlists struct {
		Dir string `mapstructure:"dir"`
	} `mapstructure:"playlists"`

	Nightbot struct {
		ClientID     string `mapstructure:"client_id"`
		ClientSecret string `mapstructure:"client_secret"`
		RedirectURL  string `mapstructure:"redirect_url"`
		Token        string `mapstructure:"token"`
		PollSeconds  int    `mapstructure:"poll_seconds"`
	} `mapstructure:"nightbot"`

	Log struct {
		Level string `mapstructure:"level"`
	} `mapstructure:"log"`
}

// PollInterval returns the tick as a duration.
func (c Config) PollInterval() time.Duration {
	return time.Duration(c.PollIntervalMs) * time.Millisecond
}

// NightbotPollInterval returns the slower tick used for the remote
// queue adapter.
func (c Config) NightbotPollInterval() time.Duration {
	return time.Duration(c.Nightbot.PollSeconds) * time.Second
}

// SetDefaults registers every default value on viper.
func SetDefaults() {
	viper.SetDefault("method", "auto")
	viper.SetDefault("poll_interval_ms", 1000)
	viper.SetDefault("server.addr", "localhost:52846")
	viper.SetDefault("playlists.dir", "playlists")
	viper.SetDefault("nightbot.poll_seconds", 5)
	viper.SetDefault("log.level", "info")
}

// Load reads config.yaml from the XDG config dir or the working
// directory, layered under MEDIASTATE_* environment variables. A
// missing config file is fine; a malformed one is not.
func Load() (Config, error) {
	SetDefaults()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")

	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		if home, err := os.UserHomeDir(); err == nil {
			configHome = filepath.Join(home, ".config")
		}
	}
	if configHome != "" {
		viper.AddConfigPath(filepath.Join(configHome, "mediastate"))
	}

	viper.SetEnvPrefix("MEDIASTATE")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return Config{}, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}
