// Package config loads runtime settings from .env, environment variables,
// an optional config file and command-line flags, in increasing precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/samdwyer/dungeoncrawl/internal/world"
)

// EnvPrefix is prepended to every environment variable, e.g. DUNGEONCRAWL_SEED.
const EnvPrefix = "DUNGEONCRAWL"

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// Config holds game configuration options.
type Config struct {
	// Seed for random number generation. Used for reproducible dungeon generation.
	// A seed of 0 means a random seed will be generated.
	Seed int64 `mapstructure:"seed"`

	Map       MapConfig       `mapstructure:"map"`
	Game      GameConfig      `mapstructure:"game"`
	Log       LogConfig       `mapstructure:"log"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
}

// MapConfig controls dungeon generation.
type MapConfig struct {
	Width    int `mapstructure:"width"`
	Height   int `mapstructure:"height"`
	MaxRooms int `mapstructure:"max_rooms"`
	MinRoom  int `mapstructure:"min_room"`
	MaxRoom  int `mapstructure:"max_room"`
}

// GameConfig controls the turn loop and message log.
type GameConfig struct {
	LogCapacity int `mapstructure:"log_capacity"`
	FrameMS     int `mapstructure:"frame_ms"`
}

// LogConfig controls the structured logger.
type LogConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
}

// TelemetryConfig controls OpenTelemetry export.
type TelemetryConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Endpoint string `mapstructure:"endpoint"`
	APIKey   string `mapstructure:"api_key"`
	Dataset  string `mapstructure:"dataset"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("seed", int64(0))

	v.SetDefault("map.width", world.DefaultWidth)
	v.SetDefault("map.height", world.DefaultHeight)
	v.SetDefault("map.max_rooms", world.DefaultMaxRooms)
	v.SetDefault("map.min_room", world.DefaultMinRoomSize)
	v.SetDefault("map.max_room", world.DefaultMaxRoomSize)

	v.SetDefault("game.log_capacity", 50)
	v.SetDefault("game.frame_ms", 33)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("log.file", "dungeoncrawl.log")
	v.SetDefault("log.max_size_mb", 10)
	v.SetDefault("log.max_backups", 3)

	v.SetDefault("telemetry.enabled", false)
	v.SetDefault("telemetry.endpoint", "https://api.honeycomb.io")
	v.SetDefault("telemetry.api_key", "")
	v.SetDefault("telemetry.dataset", "dungeoncrawl")
}

// newFlagSet declares the command-line overrides. Flag names map onto config
// keys through flagKeys.
func newFlagSet() *pflag.FlagSet {
	flags := pflag.NewFlagSet("dungeoncrawl", pflag.ContinueOnError)
	flags.Int64("seed", 0, "dungeon seed (0 for random)")
	flags.Int("width", world.DefaultWidth, "map width in tiles")
	flags.Int("height", world.DefaultHeight, "map height in tiles")
	flags.String("log-level", "info", "log level (debug, info, warn, error)")
	flags.String("log-file", "dungeoncrawl.log", "rotating log file path")
	flags.Bool("telemetry", false, "export traces over OTLP/HTTP")
	flags.String("config", "", "explicit config file path")
	return flags
}

var flagKeys = map[string]string{
	"seed":      "seed",
	"width":     "map.width",
	"height":    "map.height",
	"log-level": "log.level",
	"log-file":  "log.file",
	"telemetry": "telemetry.enabled",
}

// Load builds the configuration. envFiles are passed to godotenv; with none
// given it reads ./.env. Missing .env and config files are not errors.
func Load(args []string, envFiles ...string) (*Config, error) {
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("loading env file: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	flags := newFlagSet()
	if err := flags.Parse(args); err != nil {
		return nil, fmt.Errorf("parsing flags: %w", err)
	}
	for name, key := range flagKeys {
		if err := v.BindPFlag(key, flags.Lookup(name)); err != nil {
			return nil, fmt.Errorf("binding flag %s: %w", name, err)
		}
	}

	if path, _ := flags.GetString("config"); path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("dungeoncrawl")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/dungeoncrawl")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns the built-in configuration without consulting the environment.
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	var cfg Config
	// Defaults are plain scalars; decoding them cannot fail.
	_ = v.Unmarshal(&cfg)
	return &cfg
}

// Validate checks every section.
func (c *Config) Validate() error {
	if err := c.GenOptions().Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if c.Game.LogCapacity <= 0 {
		return fmt.Errorf("%w: game.log_capacity must be positive, got %d", ErrInvalidConfig, c.Game.LogCapacity)
	}
	if c.Game.FrameMS <= 0 {
		return fmt.Errorf("%w: game.frame_ms must be positive, got %d", ErrInvalidConfig, c.Game.FrameMS)
	}
	return nil
}

// GenOptions converts the map section into generator options.
func (c *Config) GenOptions() world.GenOptions {
	return world.GenOptions{
		Width:    c.Map.Width,
		Height:   c.Map.Height,
		MaxRooms: c.Map.MaxRooms,
		MinSize:  c.Map.MinRoom,
		MaxSize:  c.Map.MaxRoom,
	}
}

// ResolveSeed returns the configured seed, or a time-based one when it is 0.
func (c *Config) ResolveSeed() int64 {
	if c.Seed != 0 {
		return c.Seed
	}
	return time.Now().UnixNano()
}

// FrameInterval returns the host loop's tick period.
func (c *Config) FrameInterval() time.Duration {
	return time.Duration(c.Game.FrameMS) * time.Millisecond
}
