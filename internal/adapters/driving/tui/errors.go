package tui

import "errors"

// ErrMissingTaskRegistry is returned when the task registry is not provided.
var ErrMissingTaskRegistry = errors.New("tui: task registry is required")

// ErrInvalidPorts is returned when ports validation fails.
var ErrInvalidPorts = errors.New("tui: invalid ports configuration")
