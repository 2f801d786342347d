package config

import (
	"slices"
	"strings"
	"time"

	"github.com/kballard/go-shellquote"
)

var (
	minMaxDuration = 1 * time.Second
	maxMaxDuration = 10 * time.Minute

	minInterval = 10 * time.Millisecond
	maxInterval = 5 * time.Second

	minWatchInterval = 1 * time.Second
	maxWatchInterval = 24 * time.Hour

	minBars = 1
	maxBars = 200

	minSampleRate = 8000
	maxSampleRate = 192000

	minWindow = 16
	maxWindow = 8192

	maxRetries = 10

	backends  = []string{"bolt", "sqlite"}
	logLevels = []string{"debug", "info", "warn", "error"}
)

// Validate performs validation checks on the Config struct and its fields.
func (c *Config) Validate() error {
	if err := c.validateRecording(); err != nil {
		return err
	}

	if err := c.validateVisualizer(); err != nil {
		return err
	}

	if err := c.validateDevice(); err != nil {
		return err
	}

	return c.validateSettings()
}

func (c *Config) validateRecording() error {
	r := c.Recording

	if r.MaxDuration < minMaxDuration || r.MaxDuration > maxMaxDuration {
		return errInvalidDuration.Fmt("maximum recording duration", minMaxDuration, maxMaxDuration)
	}

	if r.TickInterval < minInterval || r.TickInterval > maxInterval {
		return errInvalidDuration.Fmt("tick interval", minInterval, maxInterval)
	}

	if r.SampleInterval < minInterval || r.SampleInterval > maxInterval {
		return errInvalidDuration.Fmt("sample interval", minInterval, maxInterval)
	}

	if r.TickInterval >= r.MaxDuration {
		return errInvalidTickInterval.Fmt(r.TickInterval, r.MaxDuration)
	}

	return nil
}

func (c *Config) validateVisualizer() error {
	if c.Visualizer.Bars < minBars || c.Visualizer.Bars > maxBars {
		return errInvalidBars.Fmt(minBars, maxBars)
	}

	if c.Visualizer.Divisor < 1 || c.Visualizer.Floor < 0 {
		return errInvalidScale
	}

	return nil
}

func (c *Config) validateDevice() error {
	d := c.Device

	switch d.Kind {
	case DeviceSynth:
	case DeviceExec:
		args, err := shellquote.Split(d.Command)
		if err != nil || len(args) == 0 {
			return errInvalidDeviceCommand.Fmt(d.Command)
		}
	default:
		return errUnknownDevice.Fmt(d.Kind)
	}

	if d.SampleRate < minSampleRate || d.SampleRate > maxSampleRate {
		return errInvalidSampleRate.Fmt(minSampleRate, maxSampleRate)
	}

	if d.Window < minWindow || d.Window > maxWindow {
		return errInvalidWindow.Fmt(minWindow, maxWindow)
	}

	return nil
}

// validateSettings validates storage, playback, unlock and log settings.
func (c *Config) validateSettings() error {
	if !slices.Contains(backends, c.Storage.Backend) {
		return errUnknownBackend.Fmt(c.Storage.Backend)
	}

	if c.Playback.Ambience != "" && !c.Playback.Ambience.Valid() {
		return errUnknownAmbience.Fmt(c.Playback.Ambience)
	}

	now := time.Now()

	unlockAt, err := c.DefaultUnlockAt(now)
	if err != nil || !unlockAt.After(now) {
		return errInvalidDefaultUnlock.Fmt(c.Entries.DefaultUnlock)
	}

	if c.Unlock.WatchInterval < minWatchInterval ||
		c.Unlock.WatchInterval > maxWatchInterval {
		return errInvalidDuration.Fmt("unlock watch interval", minWatchInterval, maxWatchInterval)
	}

	if c.Unlock.Retries < 0 || c.Unlock.Retries > maxRetries {
		return errInvalidRetries.Fmt(maxRetries)
	}

	if !slices.Contains(logLevels, strings.ToLower(c.Log.Level)) {
		return errUnknownLogLevel.Fmt(c.Log.Level)
	}

	return nil
}
