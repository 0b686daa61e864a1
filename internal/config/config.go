// SPDX-License-Identifier: Unlicense OR MIT

// Package config loads the configuration of the loom command.
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"
)

// Backends names the supported native event sources.
var Backends = []string{"x11", "headless"}

type Config struct {
	Backend             string        `mapstructure:"backend"`
	Script              string        `mapstructure:"script"`
	SnapshotDir         string        `mapstructure:"snapshot_dir"`
	Windows             int           `mapstructure:"windows"`
	DoubleClickTime     time.Duration `mapstructure:"double_click_time"`
	DoubleClickDistance float32       `mapstructure:"double_click_distance"`
	LogLevel            string        `mapstructure:"log_level"`
	LogDev              bool          `mapstructure:"log_dev"`
}

func DefaultConfig() *Config {
	return &Config{
		Backend:             "x11",
		Windows:             1,
		DoubleClickTime:     250 * time.Millisecond,
		DoubleClickDistance: 5,
		LogLevel:            "info",
	}
}

// Load reads the configuration file cfgFile, or loom.yaml from the
// user configuration directory or the working directory, into v.
// Environment variables prefixed with LOOM_ override the file, and
// flags bound to v override both.
func Load(v *viper.Viper, cfgFile string) (*Config, error) {
	cfg := DefaultConfig()
	setDefaults(v, cfg)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("loom")
		v.SetConfigType("yaml")
		if dir := configDir(); dir != "" {
			v.AddConfigPath(dir)
		}
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("LOOM")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, errors.Wrap(err, "config: read")
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.Wrap(err, "config: decode")
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("backend", cfg.Backend)
	v.SetDefault("script", cfg.Script)
	v.SetDefault("snapshot_dir", cfg.SnapshotDir)
	v.SetDefault("windows", cfg.Windows)
	v.SetDefault("double_click_time", cfg.DoubleClickTime)
	v.SetDefault("double_click_distance", cfg.DoubleClickDistance)
	v.SetDefault("log_level", cfg.LogLevel)
	v.SetDefault("log_dev", cfg.LogDev)
}

func configDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "loom")
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	known := false
	for _, b := range Backends {
		if c.Backend == b {
			known = true
		}
	}
	if !known {
		return errors.Errorf("config: unknown backend %q", c.Backend)
	}
	if c.Backend == "headless" && c.Script == "" {
		return errors.New("config: the headless backend needs a script")
	}
	if c.Windows < 0 {
		return errors.Errorf("config: windows is %d; must not be negative", c.Windows)
	}
	if c.DoubleClickTime < 0 || c.DoubleClickDistance < 0 {
		return errors.New("config: double click time and distance must not be negative")
	}
	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		return errors.Wrap(err, "config: log_level")
	}
	return nil
}
