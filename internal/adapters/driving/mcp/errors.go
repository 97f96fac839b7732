// Package mcp provides an MCP (Model Context Protocol) server adapter for Inscript.
// It lets AI assistants search, read and edit the user's notes.
package mcp

import "errors"

// ErrMissingNoteService is returned when the note service is not provided.
var ErrMissingNoteService = errors.New("mcp: note service is required")
