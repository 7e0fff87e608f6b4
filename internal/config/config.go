// Package config loads settings from defaults, an optional YAML file and
// MATTEFLYT_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. MATTEFLYT_DB or
// MATTEFLYT_SERVER_ADDR.
const EnvPrefix = "MATTEFLYT"

// Config holds all configuration for the application.
type Config struct {
	// DB is the SQLite path. Empty means the XDG data default.
	DB string `mapstructure:"db"`
	// Locale selects the text prompt language ("nb" or "en").
	Locale string `mapstructure:"locale"`
	// Catalog points at a custom level table. Empty uses the built-in one.
	Catalog string       `mapstructure:"catalog"`
	Log     LogConfig    `mapstructure:"log"`
	Server  ServerConfig `mapstructure:"server"`
	Admin   AdminConfig  `mapstructure:"admin"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Mode string `mapstructure:"mode"`
	File string `mapstructure:"file"`
}

// ServerConfig holds the diploma server settings.
type ServerConfig struct {
	// Addr is the listen address for "serve".
	Addr string `mapstructure:"addr"`
	// URL is where the terminal app submits diplomas. Empty stores them
	// in the local database.
	URL     string        `mapstructure:"url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// AdminConfig holds the admin login settings.
type AdminConfig struct {
	PasswordHash string        `mapstructure:"password_hash"`
	JWTSecret    string        `mapstructure:"jwt_secret"`
	TokenTTL     time.Duration `mapstructure:"token_ttl"`
}

// Load reads configuration. When file is empty the default config path is
// tried and a missing file is not an error.
func Load(file string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		if dir, err := DefaultDir(); err == nil {
			v.AddConfigPath(dir)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("db", "")
	v.SetDefault("locale", "nb")
	v.SetDefault("catalog", "")

	v.SetDefault("log.mode", "dev")
	v.SetDefault("log.file", "")

	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.url", "")
	v.SetDefault("server.timeout", 10*time.Second)

	v.SetDefault("admin.password_hash", "")
	v.SetDefault("admin.jwt_secret", "")
	v.SetDefault("admin.token_ttl", 30*time.Minute)
}

// Validate checks values that would otherwise fail later and obscurely.
func (c *Config) Validate() error {
	var errs []string
	switch strings.ToLower(c.Log.Mode) {
	case "dev", "development", "prod", "production":
	default:
		errs = append(errs, fmt.Sprintf("log.mode %q must be dev or prod", c.Log.Mode))
	}
	if c.Admin.TokenTTL <= 0 {
		errs = append(errs, fmt.Sprintf("admin.token_ttl %s must be positive", c.Admin.TokenTTL))
	}
	if c.Server.Timeout <= 0 {
		errs = append(errs, fmt.Sprintf("server.timeout %s must be positive", c.Server.Timeout))
	}
	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}

// DefaultDir returns $XDG_CONFIG_HOME/matteflyt, falling back to
// ~/.config/matteflyt.
func DefaultDir() (string, error) {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "matteflyt"), nil
}
