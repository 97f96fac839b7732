package mcp

import (
	"github.com/custodia-labs/inscript/internal/core/ports/driving"
)

// Ports aggregates the driving ports the MCP server needs.
type Ports struct {
	// Notes provides note search and editing.
	Notes driving.NoteService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Notes == nil {
		return ErrMissingNoteService
	}
	return nil
}
