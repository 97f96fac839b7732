package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// TestStoreBackend_IsValid tests all valid and invalid backends
func TestStoreBackend_IsValid(t *testing.T) {
	tests := []struct {
		name     string
		backend  StoreBackend
		expected bool
	}{
		{name: "sqlite is valid", backend: StoreBackendSQLite, expected: true},
		{name: "memory is valid", backend: StoreBackendMemory, expected: true},
		{name: "remote is valid", backend: StoreBackendRemote, expected: true},
		{name: "empty string is invalid", backend: StoreBackend(""), expected: false},
		{name: "unknown backend is invalid", backend: StoreBackend("postgres"), expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.backend.IsValid())
		})
	}
}

func TestStoreBackend_Description(t *testing.T) {
	for _, b := range AllStoreBackends() {
		assert.NotEqual(t, unknownDescription, b.Description(), b.String())
	}
	assert.Equal(t, unknownDescription, StoreBackend("nope").Description())
}

func TestDefaultAppSettings(t *testing.T) {
	s := DefaultAppSettings()

	assert.Equal(t, StoreBackendSQLite, s.Store.Backend)
	assert.Empty(t, s.Store.DataDir)
	assert.Equal(t, 150, s.Search.DebounceMS)
	assert.Equal(t, 1, s.Search.Burst)
	assert.Zero(t, s.Search.RatePerSecond)
	assert.Equal(t, "127.0.0.1:7077", s.Server.Addr)
}

func TestSearchSettings_Debounce(t *testing.T) {
	assert.Equal(t, 150*time.Millisecond, SearchSettings{DebounceMS: 150}.Debounce())
	assert.Zero(t, SearchSettings{DebounceMS: 0}.Debounce())
	assert.Zero(t, SearchSettings{DebounceMS: -5}.Debounce())
}
