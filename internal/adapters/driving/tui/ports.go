// Package tui provides an interactive terminal user interface for chime.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/chime/internal/core/ports/driving"
)

// Ports aggregates the driving ports used by the TUI.
type Ports struct {
	// Registry manages sound tasks. Required.
	Registry driving.TaskRegistry

	// Scheduler reports live workers for the status bar.
	Scheduler driving.TaskScheduler

	// History seeds the status bar with the latest playback.
	History driving.PlaybackHistory

	// Settings supplies the default interval for the add form.
	Settings driving.SettingsService
}

// NewPorts creates a Ports aggregate with the required services.
func NewPorts(registry driving.TaskRegistry, scheduler driving.TaskScheduler) *Ports {
	return &Ports{
		Registry:  registry,
		Scheduler: scheduler,
	}
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
