// Package config loads showcase settings from defaults, an optional TOML file
// and SHOWCASE_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"aishowcase/internal/a11y"
)

// Config holds application configuration.
type Config struct {
	Carousel CarouselConfig `mapstructure:"carousel"`
	Modal    ModalConfig    `mapstructure:"modal"`
	Motion   MotionConfig   `mapstructure:"motion"`
	Content  ContentConfig  `mapstructure:"content"`
	Log      LogConfig      `mapstructure:"log"`
}

// CarouselConfig holds hero carousel settings.
type CarouselConfig struct {
	AutoPlay   bool          `mapstructure:"autoplay"`
	Interval   time.Duration `mapstructure:"interval"`
	Politeness string        `mapstructure:"politeness"`
}

// ModalConfig holds dialog settings.
type ModalConfig struct {
	Transition time.Duration `mapstructure:"transition"`
}

// MotionConfig holds the reduced-motion preference and the optional file it
// is watched from.
type MotionConfig struct {
	Reduced   bool   `mapstructure:"reduced"`
	PrefsFile string `mapstructure:"prefs_file"`
}

// ContentConfig points at a showcase YAML file replacing the built-in content.
type ContentConfig struct {
	File string `mapstructure:"file"`
}

// LogConfig holds logging settings. An empty File disables logging.
type LogConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// LivePoliteness parses the carousel announcement politeness.
func (c CarouselConfig) LivePoliteness() (a11y.Politeness, error) {
	return a11y.ParsePoliteness(c.Politeness)
}

// DefaultPath returns ~/.config/aishowcase/config.toml.
func DefaultPath() string {
	return filepath.Join(os.Getenv("HOME"), ".config", "aishowcase", "config.toml")
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("carousel.autoplay", true)
	v.SetDefault("carousel.interval", 5*time.Second)
	v.SetDefault("carousel.politeness", "polite")
	v.SetDefault("modal.transition", 200*time.Millisecond)
	v.SetDefault("motion.reduced", false)
	v.SetDefault("motion.prefs_file", "")
	v.SetDefault("content.file", "")
	v.SetDefault("log.file", "")
	v.SetDefault("log.level", "info")
}

// Load reads configuration into a Config. v may carry flag bindings; nil
// uses a fresh instance. path selects the config file; when empty,
// SHOWCASE_CONFIG and then the default location are tried. Only an
// explicitly named file has to exist.
func Load(v *viper.Viper, path string) (Config, error) {
	if v == nil {
		v = viper.New()
	}
	SetDefaults(v)

	v.SetConfigType("toml")
	if path == "" {
		path = os.Getenv("SHOWCASE_CONFIG")
	}
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(filepath.Dir(DefaultPath()))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("SHOWCASE")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate checks values viper cannot type-check.
func (c Config) Validate() error {
	if c.Carousel.Interval <= 0 {
		return fmt.Errorf("carousel.interval must be positive, got %v", c.Carousel.Interval)
	}
	if c.Modal.Transition < 0 {
		return fmt.Errorf("modal.transition must not be negative, got %v", c.Modal.Transition)
	}
	if _, err := c.Carousel.LivePoliteness(); err != nil {
		return fmt.Errorf("carousel.politeness: %w", err)
	}
	return nil
}
