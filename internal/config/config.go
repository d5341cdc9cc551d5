// Package config loads plugin settings with viper.
//
// Precedence (lowest → highest): defaults → config file → CLIPHIST_PLUGIN_* env vars → flags
//
// Config file search order (first found wins):
//
//	/etc/cliphist-plugin/cliphist-plugin.toml
//	$HOME/.config/cliphist-plugin/cliphist-plugin.toml
//
// An explicit path (the CLI's --config flag, or $CLIPHIST_PLUGIN_CONFIG for
// the shared library) replaces the search.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"go.klb.dev/cliphist-plugin/internal/clip"
	"go.klb.dev/cliphist-plugin/internal/history"
)

const (
	// Name is the config file base name and directory.
	Name = "cliphist-plugin"
	// EnvPrefix is prepended to every environment override.
	EnvPrefix = "CLIPHIST_PLUGIN"
	// EnvConfig names an explicit config file for the shared library.
	EnvConfig = EnvPrefix + "_CONFIG"
)

// Keys.
const (
	KeyCollector      = "collector"
	KeyApplier        = "applier"
	KeyApplierCommand = "applier_command"
	KeyLimit          = "limit"
	KeyRetain         = "retain"
	KeyTimeout        = "timeout"
	KeyLogFormat      = "log-format"
	KeyLogLevel       = "log-level"
)

// Config is the resolved plugin configuration.
type Config struct {
	Collector      string
	Applier        clip.Mode
	ApplierCommand []string
	// Limit caps listed entries; 0 means all.
	Limit int
	// Retain bounds how many entry lists stay allocated; 0 means all of them.
	Retain int
	// Timeout bounds each collaborator call; 0 means wait indefinitely.
	Timeout   time.Duration
	LogFormat string
	LogLevel  string
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyCollector, history.DefaultBinary)
	v.SetDefault(KeyApplier, string(clip.ModeAuto))
	v.SetDefault(KeyApplierCommand, []string{})
	v.SetDefault(KeyLimit, 0)
	v.SetDefault(KeyRetain, 0)
	v.SetDefault(KeyTimeout, time.Duration(0))
	v.SetDefault(KeyLogFormat, "auto")
	v.SetDefault(KeyLogLevel, "info")
}

// Read wires v to the standard config file search order and env prefix.
// A missing config file is not an error.
func Read(v *viper.Viper, configFile string) error {
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName(Name)
		v.SetConfigType("toml")
		v.AddConfigPath(filepath.Join("/etc", Name))
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", Name))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("config: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return nil
}

// FromViper extracts and validates a Config.
func FromViper(v *viper.Viper) (Config, error) {
	c := Config{
		Collector:      v.GetString(KeyCollector),
		Applier:        clip.Mode(v.GetString(KeyApplier)),
		ApplierCommand: v.GetStringSlice(KeyApplierCommand),
		Limit:          v.GetInt(KeyLimit),
		Retain:         v.GetInt(KeyRetain),
		Timeout:        v.GetDuration(KeyTimeout),
		LogFormat:      v.GetString(KeyLogFormat),
		LogLevel:       v.GetString(KeyLogLevel),
	}
	return c, c.Validate()
}

// Load resolves the configuration the shared library runs with.
func Load() (Config, error) {
	v := viper.New()
	SetDefaults(v)
	if err := Read(v, os.Getenv(EnvConfig)); err != nil {
		return Config{}, err
	}
	return FromViper(v)
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Collector) == "" {
		return fmt.Errorf("config: %s must not be empty", KeyCollector)
	}
	mode, err := clip.ParseMode(string(c.Applier))
	if err != nil {
		return fmt.Errorf("config: %s: %w", KeyApplier, err)
	}
	if mode == clip.ModeCommand && len(c.ApplierCommand) == 0 {
		return fmt.Errorf("config: %s=%s requires %s", KeyApplier, clip.ModeCommand, KeyApplierCommand)
	}
	if c.Limit < 0 {
		return fmt.Errorf("config: %s must be >= 0, got %d", KeyLimit, c.Limit)
	}
	if c.Retain < 0 {
		return fmt.Errorf("config: %s must be >= 0, got %d", KeyRetain, c.Retain)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("config: %s must be >= 0, got %s", KeyTimeout, c.Timeout)
	}
	return nil
}
