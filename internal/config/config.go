// Package config loads the stickprofile settings from an optional YAML file,
// environment variables and command-line flags.
package config

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/soar/stickprofile/internal/graph"
	"github.com/soar/stickprofile/internal/router"
	"github.com/soar/stickprofile/internal/store"
)

// Config holds the application configuration.
type Config struct {
	Listen       string      `mapstructure:"listen"`
	ProfilesFile string      `mapstructure:"profiles_file"`
	LogLevel     string      `mapstructure:"log_level"`
	Tray         bool        `mapstructure:"tray"`
	ProfileTypes []string    `mapstructure:"profile_types"`
	Graph        GraphConfig `mapstructure:"graph"`
	Input        InputConfig `mapstructure:"input"`
}

// GraphConfig holds settings for the rendered response curve.
type GraphConfig struct {
	Resolution int     `mapstructure:"resolution"`
	Alpha      float64 `mapstructure:"alpha"`
	Width      float64 `mapstructure:"width"`
	Height     float64 `mapstructure:"height"`
}

// InputConfig holds navigation repeat timing and edit step sizes.
type InputConfig struct {
	RepeatDelayFrames    int     `mapstructure:"repeat_delay_frames"`
	RepeatIntervalFrames int     `mapstructure:"repeat_interval_frames"`
	DeadzoneStep         float64 `mapstructure:"deadzone_step"`
	ExponentStep         float64 `mapstructure:"exponent_step"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("listen", ":8080")
	v.SetDefault("profiles_file", "stick_profiles.yaml")
	v.SetDefault("log_level", "info")
	v.SetDefault("tray", true)
	v.SetDefault("profile_types", []string{string(store.Normal), string(store.Precision)})
	v.SetDefault("graph.resolution", graph.DefaultResolution)
	v.SetDefault("graph.alpha", 1.0)
	v.SetDefault("graph.width", 400.0)
	v.SetDefault("graph.height", 400.0)
	v.SetDefault("input.repeat_delay_frames", router.DefaultConfig.RepeatDelay)
	v.SetDefault("input.repeat_interval_frames", router.DefaultConfig.RepeatInterval)
	v.SetDefault("input.deadzone_step", router.DefaultConfig.DeadzoneStep)
	v.SetDefault("input.exponent_step", router.DefaultConfig.ExponentStep)
}

// Flags registers the command-line flags Load understands.
func Flags(fs *pflag.FlagSet) {
	fs.StringP("config", "c", "", "path to a YAML config file")
	fs.String("listen", ":8080", "address of the live view HTTP server")
	fs.StringP("profiles", "p", "stick_profiles.yaml", "file the stick profiles are saved to")
	fs.String("log-level", "info", "log level (trace, debug, info, warn, error)")
	fs.Bool("tray", true, "show the system tray icon (Windows only)")
}

// Load builds the configuration from defaults, the config file named by the
// --config flag, STICKPROFILE_* environment variables and explicitly set flags,
// in increasing priority.
func Load(fs *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("stickprofile")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if fs != nil {
		binds := map[string]string{
			"listen":        "listen",
			"profiles_file": "profiles",
			"log_level":     "log-level",
			"tray":          "tray",
		}
		for key, flag := range binds {
			if f := fs.Lookup(flag); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, errors.Wrapf(err, "binding flag %s", flag)
				}
			}
		}
		if path, err := fs.GetString("config"); err == nil && path != "" {
			v.SetConfigFile(path)
			if err := v.ReadInConfig(); err != nil {
				return nil, errors.Wrapf(err, "reading config file %s", path)
			}
			logrus.WithField("file", path).Debug("config file loaded")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "parsing config")
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Graph.Resolution <= 0 {
		return errors.Errorf("graph.resolution must be positive, got %d", c.Graph.Resolution)
	}
	if c.Input.RepeatDelayFrames < 0 || c.Input.RepeatIntervalFrames < 0 {
		return errors.New("input repeat frames must not be negative")
	}
	if c.Input.DeadzoneStep <= 0 || c.Input.ExponentStep <= 0 {
		return errors.New("input steps must be positive")
	}
	if len(c.ProfileTypes) == 0 {
		return errors.New("profile_types must list at least one type")
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return errors.Wrap(err, "log_level")
	}
	return nil
}

// Types returns the configured profile types.
func (c *Config) Types() []store.ProfileType {
	out := make([]store.ProfileType, 0, len(c.ProfileTypes))
	for _, t := range c.ProfileTypes {
		out = append(out, store.ProfileType(strings.ToLower(strings.TrimSpace(t))))
	}
	return out
}

// Router returns the router settings.
func (c *Config) Router() router.Config {
	return router.Config{
		RepeatDelay:    c.Input.RepeatDelayFrames,
		RepeatInterval: c.Input.RepeatIntervalFrames,
		DeadzoneStep:   c.Input.DeadzoneStep,
		ExponentStep:   c.Input.ExponentStep,
	}
}

// Level returns the parsed log level.
func (c *Config) Level() logrus.Level {
	lvl, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		return logrus.InfoLevel
	}
	return lvl
}
