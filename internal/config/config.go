package config

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/echoverse/echoverse/internal/models"
	"github.com/echoverse/echoverse/internal/timeutil"
	"github.com/echoverse/echoverse/internal/visualizer"
)

type (
	// Config holds all configuration settings
	Config struct {
		Recording     RecordingConfig    `mapstructure:"recording"`
		Visualizer    VisualizerConfig   `mapstructure:"visualizer"`
		Device        DeviceConfig       `mapstructure:"device"`
		Storage       StorageConfig      `mapstructure:"storage"`
		User          UserConfig         `mapstructure:"user"`
		Notifications NotificationConfig `mapstructure:"notifications"`
		Playback      PlaybackConfig     `mapstructure:"playback"`
		Entries       EntriesConfig      `mapstructure:"entries"`
		Unlock        UnlockConfig       `mapstructure:"unlock"`
		Log           LogConfig          `mapstructure:"log"`
		System        SystemConfig       `mapstructure:"-"`
	}

	// RecordingConfig holds the recorder clock settings
	RecordingConfig struct {
		MaxDuration    time.Duration `mapstructure:"max_duration"`
		TickInterval   time.Duration `mapstructure:"tick_interval"`
		SampleInterval time.Duration `mapstructure:"sample_interval"`
	}

	// VisualizerConfig holds the bar count and scaling of the visualizer
	VisualizerConfig struct {
		visualizer.Scale `mapstructure:",squash"`
		Bars             int `mapstructure:"bars"`
	}

	// DeviceConfig selects and configures the capture device
	DeviceConfig struct {
		Kind       string `mapstructure:"kind"`
		Command    string `mapstructure:"command"`
		SampleRate int    `mapstructure:"sample_rate"`
		Window     int    `mapstructure:"window"`
	}

	// StorageConfig selects the entry store
	StorageConfig struct {
		Backend string `mapstructure:"backend"`
	}

	// UserConfig identifies the signed in user
	UserConfig struct {
		ID string `mapstructure:"id"`
	}

	// NotificationConfig holds notification settings
	NotificationConfig struct {
		Enabled bool `mapstructure:"enabled"`
	}

	// PlaybackConfig holds playback preferences
	PlaybackConfig struct {
		Ambience models.Ambience `mapstructure:"ambience"`
	}

	// EntriesConfig holds defaults for new entries
	EntriesConfig struct {
		DefaultUnlock string `mapstructure:"default_unlock"`
	}

	// UnlockConfig controls how unlock checks run
	UnlockConfig struct {
		WatchInterval time.Duration `mapstructure:"watch_interval"`
		Retries       int           `mapstructure:"retries"`
	}

	// LogConfig holds logging settings
	LogConfig struct {
		Level string `mapstructure:"level"`
	}

	// SystemConfig holds system-related settings
	SystemConfig struct {
		ConfigPath    string
		DBPath        string
		LogPath       string
		RecordingsDir string
	}

	// Option is a function that modifies Config
	Option func(*Config) error
)

const Version = "v0.3.0"

const (
	DeviceExec  = "exec"
	DeviceSynth = "synth"
)

var (
	Stdin  io.Reader = os.Stdin
	Stdout io.Writer = os.Stdout
	Stderr io.Writer = os.Stderr
)

// New creates a new Config and applies options in order.
func New(opts ...Option) (*Config, error) {
	cfg := &Config{}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, errConfigOption.Wrap(err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, errConfigValidation.Wrap(err)
	}

	return cfg, nil
}

// DefaultUnlockAt resolves entries.default_unlock relative to now.
func (c *Config) DefaultUnlockAt(now time.Time) (time.Time, error) {
	return timeutil.ParseDate(c.Entries.DefaultUnlock, now)
}

// LogLevel returns the configured slog level.
func (c *Config) LogLevel() slog.Level {
	var level slog.Level

	err := level.UnmarshalText([]byte(strings.ToUpper(c.Log.Level)))
	if err != nil {
		return slog.LevelInfo
	}

	return level
}
