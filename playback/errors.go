package playback

import "github.com/echoverse/echoverse/internal/apperr"

var (
	// ErrLocked is returned when a locked entry is opened for playback.
	ErrLocked = &apperr.Error{
		Message: "this message is locked until %s",
	}

	errMissingAudio = &apperr.Error{
		Message: "the recording for %q could not be opened",
	}

	errDecode = &apperr.Error{
		Message: "the recording for %q is not a valid WAV file",
	}

	errUnknownAmbience = &apperr.Error{
		Message: "unknown background ambience: %s",
	}
)
