package apperr_test

import (
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/echoverse/echoverse/internal/apperr"
)

var errSample = &apperr.Error{
	Message: "entry %s not found",
}

func TestFmtKeepsIdentity(t *testing.T) {
	err := errSample.Fmt("abc")

	assert.Equal(t, "entry abc not found", err.Error())
	assert.ErrorIs(t, err, errSample)
	assert.Equal(t, "entry %s not found", errSample.Message)
}

func TestWrap(t *testing.T) {
	err := errSample.Fmt("x").Wrap(io.EOF)

	assert.ErrorIs(t, err, errSample)
	assert.ErrorIs(t, err, io.EOF)
	assert.Equal(t, "entry x not found: EOF", err.Error())
	assert.Nil(t, errSample.Cause)
}

func TestDistinctSentinels(t *testing.T) {
	other := &apperr.Error{Message: "something else"}

	assert.False(t, errors.Is(errSample.Fmt("y"), other))
}
