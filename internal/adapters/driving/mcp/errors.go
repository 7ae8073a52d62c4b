// Package mcp provides an MCP (Model Context Protocol) server adapter for chime.
// It lets AI assistants list, add and control sound tasks over stdio.
package mcp

import "errors"

// ErrMissingTaskRegistry is returned when the task registry is not provided.
var ErrMissingTaskRegistry = errors.New("mcp: task registry is required")

// ErrInvalidPorts is returned when the ports aggregate is nil.
var ErrInvalidPorts = errors.New("mcp: invalid ports configuration")
