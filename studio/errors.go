package studio

import "github.com/echoverse/echoverse/internal/apperr"

var (
	errNothingToSave = &apperr.Error{
		Message: "there is no finished recording to save",
	}

	errUnlockNotFuture = &apperr.Error{
		Message: "the unlock date must be in the future",
	}
)
