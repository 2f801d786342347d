package journal

import "github.com/echoverse/echoverse/internal/apperr"

var (
	// ErrPersistence means unlocked entries could not be written back. They
	// must not be reported as unlocked until a later write succeeds.
	ErrPersistence = &apperr.Error{
		Message: "unable to save entries",
	}

	// ErrReconcileInFlight is returned when an unlock check is requested while
	// another write is pending.
	ErrReconcileInFlight = &apperr.Error{
		Message: "an unlock check is already in progress",
	}

	ErrNotAuthenticated = &apperr.Error{
		Message: "no user is signed in: set user.id in the config file",
	}

	ErrEntryNotFound = &apperr.Error{
		Message: "no entry with id %q",
	}

	ErrEntryLocked = &apperr.Error{
		Message: "this message is locked until %s",
	}

	errUnlockInPast = &apperr.Error{
		Message: "unlock time must be in the future",
	}

	errEmptyTitle = &apperr.Error{
		Message: "title cannot be empty",
	}

	errInvalidMood = &apperr.Error{
		Message: "unknown mood: %s",
	}

	errInvalidAmbience = &apperr.Error{
		Message: "unknown background ambience: %s",
	}

	errMissingAudio = &apperr.Error{
		Message: "an audio recording is required",
	}

	errCorruptEntries = &apperr.Error{
		Message: "stored entries could not be read",
	}
)
