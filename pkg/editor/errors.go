package editor

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C).
	ErrAborted = errors.New("editor: aborted")
	// ErrNoStore is returned by New when no store is supplied.
	ErrNoStore = errors.New("editor: store is required")
)
