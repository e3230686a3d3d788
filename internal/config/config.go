// Package config loads runtime settings from defaults, an optional YAML
// file, PHARMACY_* environment variables and bound command-line flags.
package config

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"pharmacy_inventory/internal/logger"

	"github.com/spf13/viper"
)

const envPrefix = "PHARMACY"

// Config holds application level configuration.
type Config struct {
	Port     string        `mapstructure:"port"`
	LogLevel string        `mapstructure:"log_level"`
	DB       DBConfig      `mapstructure:"db"`
	Session  SessionConfig `mapstructure:"session"`
	Seed     SeedConfig    `mapstructure:"seed"`
	Server   ServerConfig  `mapstructure:"server"`
}

type DBConfig struct {
	Path string `mapstructure:"path"`
}

// SessionConfig controls the session cookie and its server-side lifetime.
// An empty Secret is replaced by a random per-process key.
type SessionConfig struct {
	Secret     string        `mapstructure:"secret"`
	TTL        time.Duration `mapstructure:"ttl"`
	CookieName string        `mapstructure:"cookie_name"`
	Secure     bool          `mapstructure:"secure"`
}

type SeedConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

type ServerConfig struct {
	ReadHeaderTimeout time.Duration `mapstructure:"read_header_timeout"`
	WriteTimeout      time.Duration `mapstructure:"write_timeout"`
	IdleTimeout       time.Duration `mapstructure:"idle_timeout"`
}

// New returns a viper instance with defaults and environment binding applied.
func New() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("port", "8080")
	v.SetDefault("log_level", logger.InfoLevel)
	v.SetDefault("db.path", "pharmacy.db")
	v.SetDefault("session.secret", "")
	v.SetDefault("session.ttl", "24h")
	v.SetDefault("session.cookie_name", "pharmacy_session")
	v.SetDefault("session.secure", false)
	v.SetDefault("seed.enabled", false)
	v.SetDefault("server.read_header_timeout", "10s")
	v.SetDefault("server.write_timeout", "10s")
	v.SetDefault("server.idle_timeout", "60s")
	return v
}

// Load reads file (or configs/config.yml when file is empty and it exists)
// into v and decodes the result.
func Load(v *viper.Viper, file string) (Config, error) {
	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %q: %w", file, err)
		}
	} else {
		v.AddConfigPath("configs") // configs/config.yml
		v.SetConfigName("config")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return Config{}, fmt.Errorf("read config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks values that would otherwise fail later at runtime.
func (c Config) Validate() error {
	if err := logger.ValidateLevel(c.LogLevel); err != nil {
		return err
	}
	if strings.TrimSpace(c.DB.Path) == "" {
		return errors.New("db.path must not be empty")
	}
	if c.Session.TTL <= 0 {
		return fmt.Errorf("session.ttl must be positive, got %s", c.Session.TTL)
	}
	if strings.TrimSpace(c.Session.CookieName) == "" {
		return errors.New("session.cookie_name must not be empty")
	}
	return nil
}

// EnsureSecret fills an empty session secret with 32 random bytes and
// reports whether it did so. Sessions signed with a generated secret do not
// survive a restart.
func (c *Config) EnsureSecret() (bool, error) {
	if c.Session.Secret != "" {
		return false, nil
	}
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return false, fmt.Errorf("generate session secret: %w", err)
	}
	c.Session.Secret = hex.EncodeToString(buf)
	return true, nil
}
