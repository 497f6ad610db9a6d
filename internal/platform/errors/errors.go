package apperrors

import "errors"

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
	// ErrMissingMode rejects entry into a session whose configuration has no mode.
	ErrMissingMode = errors.New("session mode is not set")
	// ErrNotReady is the completion gate refusal; the session stays in progress.
	ErrNotReady         = errors.New("progress below completion threshold")
	ErrSessionCompleted = errors.New("session already completed")
)
