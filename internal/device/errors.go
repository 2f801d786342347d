package device

import "github.com/echoverse/echoverse/internal/apperr"

var (
	ErrPermissionDenied = &apperr.Error{
		Message: "microphone access was denied: allow access and try again",
	}

	ErrDeviceUnavailable = &apperr.Error{
		Message: "no usable capture device",
	}

	errInvalidCommand = &apperr.Error{
		Message: "unable to parse device command %q",
	}

	errStreamReleased = &apperr.Error{
		Message: "stream has been released",
	}
)
