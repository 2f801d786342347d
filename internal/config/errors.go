package config

import "github.com/echoverse/echoverse/internal/apperr"

var (
	errConfigOption = &apperr.Error{
		Message: "config option error",
	}

	errConfigValidation = &apperr.Error{
		Message: "config validation error",
	}

	errReadConfig = &apperr.Error{
		Message: "reading config file failed",
	}

	errWriteConfig = &apperr.Error{
		Message: "writing default config failed",
	}

	errInvalidDuration = &apperr.Error{
		Message: "%s must be between %v and %v",
	}

	errInvalidTickInterval = &apperr.Error{
		Message: "tick interval (%v) must be less than the maximum duration (%v)",
	}

	errInvalidBars = &apperr.Error{
		Message: "visualizer bars must be between %d and %d",
	}

	errInvalidScale = &apperr.Error{
		Message: "visualizer divisor must be at least 1 and floor cannot be negative",
	}

	errUnknownDevice = &apperr.Error{
		Message: "unknown capture device: %s (must be exec or synth)",
	}

	errInvalidDeviceCommand = &apperr.Error{
		Message: "invalid device command: %s",
	}

	errInvalidSampleRate = &apperr.Error{
		Message: "sample rate must be between %d and %d",
	}

	errInvalidWindow = &apperr.Error{
		Message: "analysis window must be between %d and %d samples",
	}

	errUnknownBackend = &apperr.Error{
		Message: "unknown storage backend: %s (must be bolt or sqlite)",
	}

	errUnknownAmbience = &apperr.Error{
		Message: "unknown background ambience: %s",
	}

	errInvalidDefaultUnlock = &apperr.Error{
		Message: "default unlock time %q must resolve to a future date",
	}

	errInvalidRetries = &apperr.Error{
		Message: "unlock retries must be between 0 and %d",
	}

	errUnknownLogLevel = &apperr.Error{
		Message: "unknown log level: %s",
	}
)
