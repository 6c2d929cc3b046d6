// Package config provides configuration types, defaults and loading for
// ezhuthu.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"ezhuthu/internal/log"
	"ezhuthu/internal/terminal"
)

// EnvPrefix prefixes every environment override, e.g. EZHUTHU_DEBUG.
const EnvPrefix = "EZHUTHU"

// LocalConfigFile is looked up in the working directory.
const LocalConfigFile = ".ezhuthu.yaml"

// Config holds all configuration options for ezhuthu.
type Config struct {
	Debug      bool   `mapstructure:"debug" yaml:"debug"`
	LogFile    string `mapstructure:"log_file" yaml:"log_file"`
	LogLevel   string `mapstructure:"log_level" yaml:"log_level"`
	QuitKey    string `mapstructure:"quit_key" yaml:"quit_key"`      // e.g. "ctrl-q"
	StatusLine bool   `mapstructure:"status_line" yaml:"status_line"` // draw the reserved bottom row
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		Debug:      false,
		LogFile:    "ezhuthu.log",
		LogLevel:   "debug",
		QuitKey:    "ctrl-q",
		StatusLine: true,
	}
}

// SetDefaults registers Defaults with v so unset keys still unmarshal.
func SetDefaults(v *viper.Viper) {
	d := Defaults()
	v.SetDefault("debug", d.Debug)
	v.SetDefault("log_file", d.LogFile)
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("quit_key", d.QuitKey)
	v.SetDefault("status_line", d.StatusLine)
}

// Load reads configuration into v and unmarshals it. An explicit cfgFile
// must exist; otherwise the files listed by findConfigFile are tried and
// finding none is not an error.
func Load(v *viper.Viper, cfgFile string) (Config, error) {
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	path := cfgFile
	if path == "" {
		path = findConfigFile()
	}
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	log.Debug(log.CatConfig, "config loaded", "file", v.ConfigFileUsed(), "quit_key", cfg.QuitKey)
	return cfg, nil
}

// findConfigFile returns the first existing file of:
//  1. ./.ezhuthu.yaml
//  2. <user config dir>/ezhuthu/config.yaml
func findConfigFile() string {
	candidates := []string{LocalConfigFile}
	if dir, err := os.UserConfigDir(); err == nil {
		candidates = append(candidates, filepath.Join(dir, "ezhuthu", "config.yaml"))
	}
	for _, c := range candidates {
		if st, err := os.Stat(c); err == nil && st.Mode().IsRegular() {
			return c
		}
	}
	return ""
}

// Validate checks option values that cannot be expressed by types.
func (c Config) Validate() error {
	if _, err := ParseKey(c.QuitKey); err != nil {
		return fmt.Errorf("invalid quit_key: %w", err)
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log_level: %w", err)
	}
	if c.Debug && c.LogFile == "" {
		return errors.New("debug logging requires log_file")
	}
	return nil
}

// QuitKeyValue returns the parsed quit key. Validate must have passed.
func (c Config) QuitKeyValue() terminal.Key {
	k, err := ParseKey(c.QuitKey)
	if err != nil {
		return terminal.Ctrl('q')
	}
	return k
}

// ParseKey parses "ctrl-<letter>" key names. Only control combinations
// are accepted, since plain keys would shadow navigation.
func ParseKey(s string) (terminal.Key, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for _, prefix := range []string{"ctrl-", "ctrl+", "c-", "^"} {
		rest, ok := strings.CutPrefix(name, prefix)
		if !ok {
			continue
		}
		if len(rest) != 1 || rest[0] < 'a' || rest[0] > 'z' {
			return 0, fmt.Errorf("%q: expected a single letter after %q", s, prefix)
		}
		return terminal.Ctrl(rest[0]), nil
	}
	return 0, fmt.Errorf("%q: expected ctrl-<letter>", s)
}

// Marshal renders cfg as YAML.
func Marshal(cfg Config) ([]byte, error) {
	return yaml.Marshal(cfg)
}
