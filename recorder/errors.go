package recorder

import "github.com/echoverse/echoverse/internal/apperr"

var (
	// ErrEncoding means the captured audio could not be assembled into a
	// playable artifact. The chunks are discarded and the user must record
	// again.
	ErrEncoding = &apperr.Error{
		Message: "unable to assemble the recording",
	}

	errInvalidTransition = &apperr.Error{
		Message: "cannot %s while the recorder is %s",
	}

	errSessionDisposed = &apperr.Error{
		Message: "recording session has been disposed",
	}

	errAcquireAbandoned = &apperr.Error{
		Message: "recording was discarded before the microphone became available",
	}
)
