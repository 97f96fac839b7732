// Package tui provides an interactive terminal user interface for Inscript.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/inscript/internal/core/ports/driving"
)

// Ports aggregates the driving ports required by the TUI.
type Ports struct {
	// Notes provides note search and editing.
	Notes driving.NoteService

	// Settings supplies the search debounce. Optional.
	Settings driving.SettingsService
}

// NewPorts creates a new Ports aggregate with the given services.
func NewPorts(notes driving.NoteService, settings driving.SettingsService) *Ports {
	return &Ports{
		Notes:    notes,
		Settings: settings,
	}
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Notes == nil {
		return ErrMissingNoteService
	}
	return nil
}
