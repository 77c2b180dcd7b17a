// Package config resolves runtime settings from defaults, an optional
// YAML file, a .env file and HEALTHTAB_* environment variables, in
// increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"
	_ "time/tzdata" // HEALTHTAB_TIMEZONE must resolve on hosts without a zoneinfo database

	"github.com/alexanderramin/healthtab/internal/store"
	"github.com/gookit/validate"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Store           string `mapstructure:"store" validate:"required|in:json,sqlite"`
	Path            string `mapstructure:"path"`
	DataDir         string `mapstructure:"data_dir" validate:"required"`
	LogFile         string `mapstructure:"log_file"`
	LogLevel        string `mapstructure:"log_level" validate:"in:debug,info,warn,error"`
	MetricsTextfile string `mapstructure:"metrics_textfile"`
	Timezone        string `mapstructure:"timezone"`

	// ConfigFile is the YAML file that was read, if any.
	ConfigFile string `mapstructure:"-"`
}

// Options locates the inputs of Load. Zero values use the defaults under
// the user's home directory.
type Options struct {
	Home       string
	ConfigFile string
	EnvFile    string
}

var envBindings = map[string]string{
	"store":            "HEALTHTAB_STORE",
	"path":             "HEALTHTAB_PATH",
	"data_dir":         "HEALTHTAB_DATA_DIR",
	"log_file":         "HEALTHTAB_LOG_FILE",
	"log_level":        "HEALTHTAB_LOG_LEVEL",
	"metrics_textfile": "HEALTHTAB_METRICS_TEXTFILE",
	"timezone":         "HEALTHTAB_TIMEZONE",
}

// Load resolves the configuration. A missing default config or .env file
// is not an error; an explicitly named config file that is missing is.
func Load(opts Options) (*Config, error) {
	home := opts.Home
	if home == "" {
		h, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("finding home directory: %w", err)
		}
		home = h
	}
	defaultDir := filepath.Join(home, ".healthtab")

	envFile := opts.EnvFile
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("reading %s: %w", envFile, err)
	}

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetDefault("store", store.BackendJSON)
	v.SetDefault("data_dir", defaultDir)
	v.SetDefault("log_level", "info")

	keys := make([]string, 0, len(envBindings))
	for key := range envBindings {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		if err := v.BindEnv(key, envBindings[key]); err != nil {
			return nil, fmt.Errorf("binding %s: %w", envBindings[key], err)
		}
	}

	configFile := opts.ConfigFile
	explicit := configFile != ""
	if !explicit {
		configFile = filepath.Join(defaultDir, "config.yaml")
	}
	read := false
	if _, err := os.Stat(configFile); err == nil {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", configFile, err)
		}
		read = true
	} else if explicit {
		return nil, fmt.Errorf("config file %s: %w", configFile, err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode into config struct: %w", err)
	}
	if read {
		cfg.ConfigFile = configFile
	}
	if cfg.LogFile == "" {
		cfg.LogFile = filepath.Join(cfg.DataDir, "healthtab.log")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks field rules and that the time zone is known.
func (c *Config) Validate() error {
	v := validate.Struct(c)
	if !v.Validate() {
		return fmt.Errorf("invalid config: %s", v.Errors.One())
	}
	if _, err := c.Location(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// StatePath is Path, or the backend's default file inside DataDir.
func (c *Config) StatePath() string {
	if c.Path != "" {
		return c.Path
	}
	return store.DefaultPath(c.DataDir, c.Store)
}

// Location is the time zone that decides where a day begins. Empty means
// the system zone.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}
