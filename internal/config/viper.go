package config

import (
	"errors"
	"os"
	"strings"

	"github.com/spf13/viper"

	"github.com/echoverse/echoverse/internal/models"
	"github.com/echoverse/echoverse/internal/visualizer"
)

// viper keys
const (
	keyMaxDuration          = "recording.max_duration"
	keyTickInterval         = "recording.tick_interval"
	keySampleInterval       = "recording.sample_interval"
	keyVisualizerBars       = "visualizer.bars"
	keyVisualizerDivisor    = "visualizer.divisor"
	keyVisualizerFloor      = "visualizer.floor"
	keyDeviceKind           = "device.kind"
	keyDeviceCommand        = "device.command"
	keyDeviceSampleRate     = "device.sample_rate"
	keyDeviceWindow         = "device.window"
	keyStorageBackend       = "storage.backend"
	keyUserID               = "user.id"
	keyNotificationsEnabled = "notifications.enabled"
	keyPlaybackAmbience     = "playback.ambience"
	keyDefaultUnlock        = "entries.default_unlock"
	keyWatchInterval        = "unlock.watch_interval"
	keyUnlockRetries        = "unlock.retries"
	keyLogLevel             = "log.level"
)

const envPrefix = "ECHOVERSE"

// DefaultDeviceCommand captures mono 16 bit PCM at 16kHz with ALSA.
const DefaultDeviceCommand = "arecord -q -t raw -f S16_LE -c 1 -r 16000 -"

// WithViperConfig returns an Option that loads configuration from Viper.
// A config file with the default values is written when none exists.
func WithViperConfig(configPath string) Option {
	return func(c *Config) error {
		v := viper.New()

		v.SetConfigFile(configPath)
		v.SetConfigType("yaml")

		v.SetEnvPrefix(envPrefix)
		v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
		v.AutomaticEnv()

		setDefaults(v)

		err := v.ReadInConfig()
		if err == nil {
			return loadViperConfig(v, c, configPath)
		}

		if !errors.Is(err, os.ErrNotExist) {
			return errReadConfig.Wrap(err)
		}

		if err := v.WriteConfig(); err != nil {
			return errWriteConfig.Wrap(err)
		}

		return loadViperConfig(v, c, configPath)
	}
}

// setDefaults configures Viper with the default values.
func setDefaults(v *viper.Viper) {
	v.SetDefault(keyMaxDuration, "60s")
	v.SetDefault(keyTickInterval, "100ms")
	v.SetDefault(keySampleInterval, "50ms")
	v.SetDefault(keyVisualizerBars, visualizer.DefaultBars)
	v.SetDefault(keyVisualizerDivisor, visualizer.DefaultScale.Divisor)
	v.SetDefault(keyVisualizerFloor, visualizer.DefaultScale.Floor)
	v.SetDefault(keyDeviceKind, DeviceExec)
	v.SetDefault(keyDeviceCommand, DefaultDeviceCommand)
	v.SetDefault(keyDeviceSampleRate, 16000)
	v.SetDefault(keyDeviceWindow, 256)
	v.SetDefault(keyStorageBackend, "bolt")
	v.SetDefault(keyUserID, "")
	v.SetDefault(keyNotificationsEnabled, true)
	v.SetDefault(keyPlaybackAmbience, string(models.Silence))
	v.SetDefault(keyDefaultUnlock, "in 30 days")
	v.SetDefault(keyWatchInterval, "1m")
	v.SetDefault(keyUnlockRetries, 3)
	v.SetDefault(keyLogLevel, "info")
}

// loadViperConfig loads configuration from Viper into the Config struct.
func loadViperConfig(v *viper.Viper, c *Config, configPath string) error {
	if err := v.Unmarshal(c); err != nil {
		return errReadConfig.Wrap(err)
	}

	c.System.ConfigPath = configPath

	return nil
}
