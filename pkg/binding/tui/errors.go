package tui

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C).
	ErrAborted = errors.New("tui: aborted")
	// ErrTooManyAttempts is returned when a field stays invalid after the
	// configured number of prompts.
	ErrTooManyAttempts = errors.New("tui: too many invalid attempts")
	// ErrInvalidForm is returned when the form fails its submit pass.
	ErrInvalidForm = errors.New("tui: form is invalid")
)
