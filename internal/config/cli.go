package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/echoverse/echoverse/internal/models"
	"github.com/echoverse/echoverse/internal/pathutil"
)

// CLIOptions represents command-line configuration options.
type CLIOptions struct {
	MaxDuration   string
	Device        string
	DeviceCmd     string
	Backend       string
	User          string
	Ambience      string
	LogLevel      string
	DisableNotify bool
}

// WithCLIConfig returns an Option that loads configuration from CLI flags.
func WithCLIConfig(ctx *cli.Context) Option {
	return func(c *Config) error {
		opts := CLIOptions{
			MaxDuration:   ctx.String("max-duration"),
			Device:        ctx.String("device"),
			DeviceCmd:     ctx.String("device-cmd"),
			Backend:       ctx.String("backend"),
			User:          ctx.String("user"),
			Ambience:      ctx.String("ambience"),
			LogLevel:      ctx.String("log-level"),
			DisableNotify: ctx.Bool("disable-notification"),
		}

		return applyCLIOptions(c, opts)
	}
}

// applyCLIOptions applies CLI options to the config.
func applyCLIOptions(c *Config, opts CLIOptions) error {
	if opts.MaxDuration != "" {
		dur, err := parseDuration(opts.MaxDuration)
		if err != nil {
			return fmt.Errorf("applying max duration: %w", err)
		}

		c.Recording.MaxDuration = dur
	}

	if opts.Device != "" {
		c.Device.Kind = opts.Device
	}

	if opts.DeviceCmd != "" {
		c.Device.Command = opts.DeviceCmd
	}

	if opts.Backend != "" {
		c.Storage.Backend = opts.Backend
	}

	if opts.User != "" {
		c.User.ID = strings.TrimSpace(opts.User)
	}

	if opts.Ambience != "" {
		c.Playback.Ambience = models.Ambience(opts.Ambience)
	}

	if opts.LogLevel != "" {
		c.Log.Level = opts.LogLevel
	}

	if opts.DisableNotify {
		c.Notifications.Enabled = false
	}

	return nil
}

// WithPaths fills in the system paths for the configured storage backend.
// It must run after the options that set the backend.
func WithPaths(p *pathutil.Paths) Option {
	return func(c *Config) error {
		c.System.ConfigPath = p.ConfigFilePath()
		c.System.DBPath = p.DBFilePath(c.Storage.Backend)
		c.System.LogPath = p.LogFilePath()
		c.System.RecordingsDir = p.RecordingsDir()

		return nil
	}
}

// parseDuration reads a duration string. A bare number is taken as seconds.
func parseDuration(s string) (time.Duration, error) {
	dur, err := time.ParseDuration(s)
	if err == nil {
		return dur, nil
	}

	secs, err := time.ParseDuration(s + "s")
	if err != nil {
		return 0, fmt.Errorf("invalid duration format: %s", s)
	}

	return secs, nil
}
