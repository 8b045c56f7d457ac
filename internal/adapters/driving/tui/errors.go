package tui

import "errors"

// ErrMissingFactory is returned when no ports factory is provided.
var ErrMissingFactory = errors.New("tui: ports factory is required")

// ErrMissingNavigator is returned when the navigator is not provided.
var ErrMissingNavigator = errors.New("tui: navigator is required")

// ErrMissingLauncher is returned when the launcher is not provided.
var ErrMissingLauncher = errors.New("tui: launcher is required")
