package domain

import "time"

const unknownDescription = "Unknown"

// StoreBackend identifies which note store implementation backs the app.
type StoreBackend string

// Available store backends.
const (
	// StoreBackendSQLite is the embedded SQLite database (default).
	StoreBackendSQLite StoreBackend = "sqlite"

	// StoreBackendMemory keeps notes in process memory only.
	StoreBackendMemory StoreBackend = "memory"

	// StoreBackendRemote talks to an inscript HTTP API server.
	StoreBackendRemote StoreBackend = "remote"
)

// IsValid returns true if the backend is recognised.
func (b StoreBackend) IsValid() bool {
	switch b {
	case StoreBackendSQLite, StoreBackendMemory, StoreBackendRemote:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (b StoreBackend) String() string {
	return string(b)
}

// Description returns a human-readable description of the backend.
func (b StoreBackend) Description() string {
	switch b {
	case StoreBackendSQLite:
		return "SQLite (local database file)"
	case StoreBackendMemory:
		return "Memory (lost on exit)"
	case StoreBackendRemote:
		return "Remote (inscript HTTP server)"
	default:
		return unknownDescription
	}
}

// StoreSettings configures where notes are persisted.
type StoreSettings struct {
	Backend StoreBackend
	// DataDir is the SQLite data directory. Empty means ~/.inscript/data.
	DataDir string
	// RemoteURL is the base URL of the HTTP API for the remote backend.
	RemoteURL string
}

// SearchSettings configures search-as-you-type behaviour.
type SearchSettings struct {
	// DebounceMS delays a search until typing pauses. Zero disables debouncing.
	DebounceMS int
	// RatePerSecond caps store searches per second. Zero means unlimited.
	RatePerSecond float64
	// Burst is the limiter bucket size.
	Burst int
}

// Debounce returns the debounce delay as a duration.
func (s SearchSettings) Debounce() time.Duration {
	if s.DebounceMS <= 0 {
		return 0
	}
	return time.Duration(s.DebounceMS) * time.Millisecond
}

// ServerSettings configures the HTTP API server.
type ServerSettings struct {
	Addr string
}

// AppSettings holds all user-configurable settings.
type AppSettings struct {
	Store  StoreSettings
	Search SearchSettings
	Server ServerSettings
}

// DefaultAppSettings returns settings with sensible defaults.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Store: StoreSettings{
			Backend: StoreBackendSQLite,
		},
		Search: SearchSettings{
			DebounceMS:    150,
			RatePerSecond: 0,
			Burst:         1,
		},
		Server: ServerSettings{
			Addr: "127.0.0.1:7077",
		},
	}
}

// AllStoreBackends returns all available store backends.
func AllStoreBackends() []StoreBackend {
	return []StoreBackend{
		StoreBackendSQLite,
		StoreBackendMemory,
		StoreBackendRemote,
	}
}
