package app

import (
	"errors"
	"io"
	"log/slog"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/echoverse/echoverse/internal/config"
	"github.com/echoverse/echoverse/internal/device"
	"github.com/echoverse/echoverse/internal/pathutil"
	"github.com/echoverse/echoverse/journal"
	"github.com/echoverse/echoverse/recorder"
	"github.com/echoverse/echoverse/store"
)

// env holds the services shared by the commands.
type env struct {
	cfg     *config.Config
	kv      store.KV
	journal *journal.Service
	logger  *slog.Logger
	logFile io.Closer
	out     io.Writer
}

func loadConfig(ctx *cli.Context) (*config.Config, error) {
	if err := pathutil.Initialize(); err != nil {
		return nil, err
	}

	p := pathutil.Must()

	return config.New(
		config.WithPromptConfig(p.ConfigFilePath()),
		config.WithViperConfig(p.ConfigFilePath()),
		config.WithCLIConfig(ctx),
		config.WithPaths(p),
	)
}

// newEnv loads the configuration, installs the file logger and opens the
// entry store.
func newEnv(ctx *cli.Context) (*env, error) {
	cfg, err := loadConfig(ctx)
	if err != nil {
		return nil, err
	}

	return openEnv(cfg, ctx.App.Writer)
}

func openEnv(cfg *config.Config, out io.Writer) (*env, error) {
	if out == nil {
		out = os.Stdout
	}

	logger, logFile := newLogger(cfg)
	slog.SetDefault(logger)

	kv, err := store.Open(cfg.Storage.Backend, cfg.System.DBPath)
	if err != nil {
		_ = logFile.Close()
		return nil, err
	}

	svc := journal.New(kv, journal.Options{
		Notifier: &desktopNotifier{
			out:     out,
			enabled: cfg.Notifications.Enabled,
		},
		UserID:  cfg.User.ID,
		Retries: cfg.Unlock.Retries,
	}, logger)

	logger.Debug(
		"environment ready",
		slog.String("backend", cfg.Storage.Backend),
		slog.String("db_path", cfg.System.DBPath),
		slog.String("user", cfg.User.ID),
	)

	return &env{
		cfg:     cfg,
		kv:      kv,
		journal: svc,
		logger:  logger,
		logFile: logFile,
		out:     out,
	}, nil
}

func (e *env) Close() error {
	return errors.Join(e.kv.Close(), e.logFile.Close())
}

// newDevice returns the configured capture device.
func (e *env) newDevice() device.Device {
	if e.cfg.Device.Kind == config.DeviceSynth {
		return &device.Synth{
			Bins: e.cfg.Device.Window / 2,
		}
	}

	return &device.Exec{
		Logger:  e.logger,
		Command: e.cfg.Device.Command,
		Format: device.Format{
			SampleRate:  e.cfg.Device.SampleRate,
			NumChannels: 1,
			Precision:   2,
		},
		Window: e.cfg.Device.Window,
	}
}

func (e *env) recorderOptions() recorder.Options {
	return recorder.Options{
		MaxDuration:    e.cfg.Recording.MaxDuration,
		TickInterval:   e.cfg.Recording.TickInterval,
		SampleInterval: e.cfg.Recording.SampleInterval,
		Bars:           e.cfg.Visualizer.Bars,
		Scale:          e.cfg.Visualizer.Scale,
	}
}
