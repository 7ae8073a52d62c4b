package mcp

import (
	"github.com/custodia-labs/chime/internal/core/ports/driving"
)

// Ports aggregates the driving ports used by the MCP server.
type Ports struct {
	// Registry manages sound tasks. Required.
	Registry driving.TaskRegistry

	// Scheduler reports live workers.
	Scheduler driving.TaskScheduler

	// History serves recent_playback.
	History driving.PlaybackHistory
}

// Validate ensures required ports are set.
func (p *Ports) Validate() error {
	if p == nil {
		return ErrInvalidPorts
	}
	if p.Registry == nil {
		return ErrMissingTaskRegistry
	}
	return nil
}
