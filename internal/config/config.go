package config

import (
	"errors"
	"fmt"
	"io/fs"
	"math"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Renamer RenamerConfig `mapstructure:"renamer"`
	Files   FilesConfig   `mapstructure:"files"`
	Logging LoggingConfig `mapstructure:"logging"`
	Watch   WatchSettings `mapstructure:"watch"`
	Report  ReportConfig  `mapstructure:"report"`
}

// RenamerConfig holds the settings of a renaming pass
type RenamerConfig struct {
	RenameChance float64 `mapstructure:"rename_chance"`
	MinDistance  int     `mapstructure:"min_distance"`
	Seed         int64   `mapstructure:"seed"` // 0 means seed from the clock
}

// FilesConfig holds input and output locations
type FilesConfig struct {
	Map          string `mapstructure:"map"`
	Namelist     string `mapstructure:"namelist"`
	OutputSuffix string `mapstructure:"output_suffix"`
}

// LoggingConfig holds logger settings
type LoggingConfig struct {
	Level   string   `mapstructure:"level"`
	Format  string   `mapstructure:"format"`
	DevMode bool     `mapstructure:"dev_mode"`
	Events  []string `mapstructure:"events"` // event types to log, empty logs all
}

// WatchSettings holds settings for rerunning on file changes
type WatchSettings struct {
	Enabled    bool `mapstructure:"enabled"`
	DebounceMs int  `mapstructure:"debounce_ms"`
}

// ReportConfig holds settings for the YAML run report
type ReportConfig struct {
	Path string `mapstructure:"path"` // empty disables the report
}

var (
	// Global config instance, swapped under mu by Set and config reloads
	mu  sync.RWMutex
	cfg *Config
	v   *viper.Viper
)

func current() *Config {
	mu.RLock()
	defer mu.RUnlock()
	return cfg
}

func store(c *Config) {
	mu.Lock()
	cfg = c
	mu.Unlock()
}

// setViperDefaults sets all default values using Viper's SetDefault
func setViperDefaults(v *viper.Viper) {
	v.SetDefault("renamer.rename_chance", 0.03)
	v.SetDefault("renamer.min_distance", 2)
	v.SetDefault("renamer.seed", 0)

	v.SetDefault("files.map", "")
	v.SetDefault("files.namelist", "namelist.txt")
	v.SetDefault("files.output_suffix", "_edit")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.dev_mode", false)
	v.SetDefault("logging.events", []string{})

	v.SetDefault("watch.enabled", false)
	v.SetDefault("watch.debounce_ms", 250)

	v.SetDefault("report.path", "")
}

// Init initializes the configuration
func Init(configPath string) error {
	v = viper.New()

	setViperDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("provincerenamer")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	// Values from a .env file in the working directory are visible to
	// AutomaticEnv; variables already set in the environment win.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("error loading .env file: %w", err)
	}

	v.SetEnvPrefix("PR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		switch {
		case configPath != "" && errors.Is(err, fs.ErrNotExist):
			// Specific file requested but not found - use defaults
		case configPath == "" && errors.As(err, &notFound):
			// No config in the default locations - use defaults
		default:
			return fmt.Errorf("error reading config file: %w", err)
		}
	}

	next := &Config{}
	if err := v.Unmarshal(next); err != nil {
		return fmt.Errorf("unable to decode config into struct: %w", err)
	}

	if err := Validate(next); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	store(next)
	return nil
}

// Get returns the global config instance
func Get() *Config {
	if c := current(); c != nil {
		return c
	}
	if err := Init(""); err != nil {
		panic("failed to initialize config with defaults: " + err.Error())
	}
	return current()
}

// LoadEnvironmentConfig merges provincerenamer.<env>.yaml over the loaded config
func LoadEnvironmentConfig(env string) error {
	if env == "" {
		return nil
	}

	envFile := fmt.Sprintf("provincerenamer.%s.yaml", env)

	v.SetConfigFile(envFile)
	if err := v.MergeInConfig(); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("error merging environment config %s: %w", envFile, err)
		}
	}

	next := &Config{}
	if err := v.Unmarshal(next); err != nil {
		return fmt.Errorf("unable to decode merged config into struct: %w", err)
	}
	if err := Validate(next); err != nil {
		return err
	}

	store(next)
	return nil
}

// Set overrides a key at runtime, e.g. from a command line flag. An invalid
// value is rolled back and the previous config stays in effect.
func Set(key string, value interface{}) error {
	prev := v.Get(key)
	v.Set(key, value)

	next := &Config{}
	err := v.Unmarshal(next)
	if err != nil {
		err = fmt.Errorf("unable to decode config into struct: %w", err)
	} else {
		err = Validate(next)
	}
	if err != nil {
		v.Set(key, prev)
		return err
	}

	store(next)
	return nil
}

// ConfigFilePath returns the path of the loaded config file
func ConfigFilePath() string {
	return v.ConfigFileUsed()
}

// WatchConfig enables hot-reloading of the config file. onChange receives
// the reloaded config, or the validation error if the new values are invalid;
// in that case the previous config stays in effect.
func WatchConfig(onChange func(*Config, error)) {
	watched := v
	watched.OnConfigChange(func(e fsnotify.Event) {
		next := &Config{}
		err := watched.Unmarshal(next)
		if err == nil {
			err = Validate(next)
		}
		if err != nil {
			if onChange != nil {
				onChange(current(), err)
			}
			return
		}
		store(next)
		if onChange != nil {
			onChange(next, nil)
		}
	})
	watched.WatchConfig()
}

var logLevels = map[string]bool{"trace": true, "debug": true, "info": true, "warn": true, "error": true}

// Validate validates the configuration values
func Validate(c *Config) error {
	if math.IsNaN(c.Renamer.RenameChance) || c.Renamer.RenameChance < 0 || c.Renamer.RenameChance > 1 {
		return fmt.Errorf("renamer.rename_chance must be between 0 and 1")
	}
	if c.Renamer.MinDistance < 0 {
		return fmt.Errorf("renamer.min_distance must be non-negative")
	}
	if c.Files.OutputSuffix == "" {
		return fmt.Errorf("files.output_suffix must not be empty")
	}
	if !logLevels[strings.ToLower(c.Logging.Level)] {
		return fmt.Errorf("logging.level must be one of trace, debug, info, warn, error")
	}
	if c.Logging.Format != "console" && c.Logging.Format != "json" {
		return fmt.Errorf("logging.format must be console or json")
	}
	if c.Watch.DebounceMs < 0 {
		return fmt.Errorf("watch.debounce_ms must be non-negative")
	}
	return nil
}
