// Package config handles the configuration directory, file paths and settings.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	// AppName is the application directory name.
	AppName = "tasky"

	// MinTimeout is the shortest accepted request timeout.
	MinTimeout = 100 * time.Millisecond

	// TokenFile is the stored bearer token filename.
	TokenFile = "token.json"

	// SettingsName is the optional settings file (config.yaml) without extension.
	SettingsName = "config"

	// EnvPrefix prefixes environment overrides, e.g. TASKY_API_URL.
	EnvPrefix = "TASKY"

	// DefaultAPIURL is the base URL used when none is configured.
	DefaultAPIURL = "http://localhost:8080/api"

	// DefaultTimeout bounds a single HTTP request.
	DefaultTimeout = 10 * time.Second
)

// Config holds configuration paths and settings.
type Config struct {
	// Dir is the configuration directory path.
	Dir string

	// APIURL is the base URL every request path is appended to.
	APIURL string

	// Timeout is the per-request transport timeout.
	Timeout time.Duration

	// RateLimit caps requests per second. Zero means unlimited.
	RateLimit float64

	// Debug enables debug logging.
	Debug bool

	// Quiet suppresses informational output.
	Quiet bool
}

// New creates a Config for the default or specified config directory and
// loads settings from .env, config.yaml and TASKY_* variables, in increasing
// precedence.
func New(configDir string) (*Config, error) {
	dir := configDir
	if dir == "" {
		dir = DefaultConfigDir()
	}
	cfg := &Config{Dir: dir}
	if err := cfg.load(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) load() error {
	// A missing .env is normal. godotenv never overrides a variable that is
	// already set, so the working directory's file wins over the config dir's.
	_ = godotenv.Load()
	_ = godotenv.Load(filepath.Join(c.Dir, ".env"))

	v := viper.New()
	v.SetConfigName(SettingsName)
	v.SetConfigType("yaml")
	v.AddConfigPath(c.Dir)
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	v.SetDefault("api_url", DefaultAPIURL)
	v.SetDefault("timeout", DefaultTimeout.String())

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("invalid %s.yaml: %w", SettingsName, err)
		}
	}

	c.APIURL = strings.TrimRight(strings.TrimSpace(v.GetString("api_url")), "/")
	if c.APIURL == "" {
		return errors.New("api_url must not be empty")
	}
	c.Debug = v.GetBool("debug")
	c.RateLimit = v.GetFloat64("rate_limit")
	if c.RateLimit < 0 {
		return errors.New("rate_limit must not be negative")
	}
	timeout, err := parseTimeout(v.GetString("timeout"))
	if err != nil {
		return err
	}
	c.Timeout = timeout
	return nil
}

// parseTimeout reads a Go duration or a bare number of seconds.
// Empty means DefaultTimeout.
func parseTimeout(raw string) (time.Duration, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return DefaultTimeout, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		secs, numErr := strconv.ParseFloat(raw, 64)
		if numErr != nil {
			return 0, fmt.Errorf("invalid timeout: %s", raw)
		}
		d = time.Duration(secs * float64(time.Second))
	}
	if d < MinTimeout {
		return 0, fmt.Errorf("timeout must be at least %s: %s", MinTimeout, raw)
	}
	return d, nil
}

// DefaultConfigDir returns the default configuration directory.
// Uses XDG_CONFIG_HOME if set, otherwise $HOME/.config.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

// TokenPath returns the path to the stored token file.
func (c *Config) TokenPath() string {
	return filepath.Join(c.Dir, TokenFile)
}

// BaseURL returns APIURL, falling back to DefaultAPIURL for hand-built configs.
func (c *Config) BaseURL() string {
	if c.APIURL == "" {
		return DefaultAPIURL
	}
	return c.APIURL
}

// RequestTimeout returns Timeout, falling back to DefaultTimeout.
func (c *Config) RequestTimeout() time.Duration {
	if c.Timeout <= 0 {
		return DefaultTimeout
	}
	return c.Timeout
}
