package tui

import "errors"

// ErrMissingScene is returned when no scene is provided.
var ErrMissingScene = errors.New("tui: scene is required")
