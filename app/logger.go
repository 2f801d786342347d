package app

import (
	"io"
	"log/slog"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/echoverse/echoverse/internal/config"
)

const (
	logMaxSizeMB  = 10
	logMaxBackups = 3
	logMaxAgeDays = 28
)

// newLogger returns a JSON logger that writes to a rotating file at the
// configured log path.
func newLogger(cfg *config.Config) (*slog.Logger, io.Closer) {
	rotator := &lumberjack.Logger{
		Filename:   cfg.System.LogPath,
		MaxSize:    logMaxSizeMB,
		MaxBackups: logMaxBackups,
		MaxAge:     logMaxAgeDays,
	}

	logger := slog.New(
		slog.NewJSONHandler(rotator, &slog.HandlerOptions{
			Level: cfg.LogLevel(),
		}),
	).With(slog.String("version", config.Version))

	return logger, rotator
}
