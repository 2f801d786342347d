// Package apperr defines the application error type
package apperr

import "fmt"

// Error is an application error. Package level values act as sentinels:
// Fmt and Wrap return copies that still match the original under errors.Is.
type Error struct {
	Cause    error
	Context  any
	Message  string
	template string
}

func (e *Error) Error() string {
	if e.Cause == nil {
		return e.Message
	}

	return e.Message + ": " + e.Cause.Error()
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target is the sentinel e was derived from.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}

	return t == e || t.tmpl() == e.tmpl()
}

func (e *Error) tmpl() string {
	if e.template != "" {
		return e.template
	}

	return e.Message
}

func (e *Error) clone() *Error {
	c := *e
	c.template = e.tmpl()

	return &c
}

// Wrap attaches the underlying cause.
func (e *Error) Wrap(err error) *Error {
	c := e.clone()
	c.Cause = err

	return c
}

// Fmt formats the message with the provided arguments.
func (e *Error) Fmt(args ...any) *Error {
	c := e.clone()
	c.Message = fmt.Sprintf(c.template, args...)

	return c
}

// WithCtx attaches context to the error.
func (e *Error) WithCtx(ctx any) *Error {
	c := e.clone()
	c.Context = ctx

	return c
}
