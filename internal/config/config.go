// Package config loads server settings from .env, the environment and an
// optional YAML file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Port             string        `mapstructure:"port"`
	ContentPath      string        `mapstructure:"content_path"`
	DataDir          string        `mapstructure:"data_dir"`
	AdminUsername    string        `mapstructure:"admin_username"`
	AdminPassword    string        `mapstructure:"admin_password"`
	LogLevel         string        `mapstructure:"log_level"`
	GinMode          string        `mapstructure:"gin_mode"`
	VisitorRetention time.Duration `mapstructure:"visitor_retention"`
}

// Default credentials, used only when none are configured.
const (
	DefaultAdminUsername = "admin"
	DefaultAdminPassword = "admin123"
)

var defaults = map[string]any{
	"port":              "8080",
	"content_path":      "about_me.txt",
	"data_dir":          "data",
	"admin_username":    DefaultAdminUsername,
	"admin_password":    DefaultAdminPassword,
	"log_level":         "info",
	"gin_mode":          "release",
	"visitor_retention": "8760h",
}

// Load reads envFiles (missing files are ignored), then binds environment
// variables such as PORT or ADMIN_PASSWORD. A non-empty configFile is read
// as YAML; environment variables win over it.
func Load(configFile string, envFiles ...string) (Config, error) {
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("loading %s: %w", f, err)
		}
	}

	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
		if err := v.BindEnv(key, strings.ToUpper(key)); err != nil {
			return Config{}, fmt.Errorf("binding %s: %w", key, err)
		}
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects settings the server cannot start with.
func (c Config) Validate() error {
	var errs []error
	if c.Port == "" {
		errs = append(errs, errors.New("port is required"))
	}
	if c.DataDir == "" {
		errs = append(errs, errors.New("data_dir is required"))
	}
	if c.AdminUsername == "" || c.AdminPassword == "" {
		errs = append(errs, errors.New("admin credentials must not be empty"))
	}
	if c.VisitorRetention <= 0 {
		errs = append(errs, errors.New("visitor_retention must be positive"))
	}
	switch c.GinMode {
	case "debug", "release", "test":
	default:
		errs = append(errs, fmt.Errorf("unknown gin_mode %q", c.GinMode))
	}
	return errors.Join(errs...)
}

// UsesDefaultCredentials reports whether the admin login is still the
// built-in development pair.
func (c Config) UsesDefaultCredentials() bool {
	return c.AdminUsername == DefaultAdminUsername || c.AdminPassword == DefaultAdminPassword
}

// Addr is the listen address for the HTTP server.
func (c Config) Addr() string {
	return ":" + c.Port
}
