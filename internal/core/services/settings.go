package services

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/custodia-labs/inscript/internal/core/domain"
	"github.com/custodia-labs/inscript/internal/core/ports/driven"
	"github.com/custodia-labs/inscript/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	keyStoreBackend     = "store.backend"
	keyStoreDataDir     = "store.data_dir"
	keyStoreRemoteURL   = "store.remote_url"
	keySearchDebounceMS = "search.debounce_ms"
	keySearchRatePerSec = "search.rate_per_second"
	keySearchBurst      = "search.burst"
	keyServerAddr       = "server.addr"
)

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{
		configStore: configStore,
	}
}

// Get retrieves current application settings.
// Missing or invalid values fall back to defaults.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		Store: domain.StoreSettings{
			Backend:   s.getBackend(defaults.Store.Backend),
			DataDir:   s.configStore.GetString(keyStoreDataDir),
			RemoteURL: s.configStore.GetString(keyStoreRemoteURL),
		},
		Search: domain.SearchSettings{
			DebounceMS:    s.getInt(keySearchDebounceMS, defaults.Search.DebounceMS),
			RatePerSecond: s.getFloat(keySearchRatePerSec, defaults.Search.RatePerSecond),
			Burst:         s.getInt(keySearchBurst, defaults.Search.Burst),
		},
		Server: domain.ServerSettings{
			Addr: s.getString(keyServerAddr, defaults.Server.Addr),
		},
	}

	if settings.Search.DebounceMS < 0 {
		settings.Search.DebounceMS = defaults.Search.DebounceMS
	}
	if settings.Search.RatePerSecond < 0 {
		settings.Search.RatePerSecond = defaults.Search.RatePerSecond
	}
	if settings.Search.Burst < 1 {
		settings.Search.Burst = defaults.Search.Burst
	}

	return settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	if settings == nil {
		return fmt.Errorf("save settings: %w: nil settings", domain.ErrInvalidInput)
	}
	if !settings.Store.Backend.IsValid() {
		return fmt.Errorf("%w: store backend %q", domain.ErrInvalidInput, settings.Store.Backend)
	}

	// Save store settings
	if err := s.configStore.Set(keyStoreBackend, settings.Store.Backend.String()); err != nil {
		return fmt.Errorf("save store backend: %w", err)
	}
	if err := s.configStore.Set(keyStoreDataDir, settings.Store.DataDir); err != nil {
		return fmt.Errorf("save store data_dir: %w", err)
	}
	if err := s.configStore.Set(keyStoreRemoteURL, settings.Store.RemoteURL); err != nil {
		return fmt.Errorf("save store remote_url: %w", err)
	}

	// Save search settings
	if err := s.configStore.Set(keySearchDebounceMS, settings.Search.DebounceMS); err != nil {
		return fmt.Errorf("save search debounce_ms: %w", err)
	}
	if err := s.configStore.Set(keySearchRatePerSec, settings.Search.RatePerSecond); err != nil {
		return fmt.Errorf("save search rate_per_second: %w", err)
	}
	if err := s.configStore.Set(keySearchBurst, settings.Search.Burst); err != nil {
		return fmt.Errorf("save search burst: %w", err)
	}

	// Save server settings
	if err := s.configStore.Set(keyServerAddr, settings.Server.Addr); err != nil {
		return fmt.Errorf("save server addr: %w", err)
	}

	return nil
}

// Set updates a single setting from its string form.
func (s *SettingsService) Set(key, value string) error {
	value = strings.TrimSpace(value)

	var parsed any
	switch key {
	case keyStoreBackend:
		backend := domain.StoreBackend(value)
		if !backend.IsValid() {
			return fmt.Errorf("%w: store backend %q", domain.ErrInvalidInput, value)
		}
		parsed = backend.String()
	case keyStoreDataDir, keyStoreRemoteURL, keyServerAddr:
		parsed = value
	case keySearchDebounceMS:
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return fmt.Errorf("%w: %s must be a non-negative integer", domain.ErrInvalidInput, key)
		}
		parsed = n
	case keySearchBurst:
		n, err := strconv.Atoi(value)
		if err != nil || n < 1 {
			return fmt.Errorf("%w: %s must be a positive integer", domain.ErrInvalidInput, key)
		}
		parsed = n
	case keySearchRatePerSec:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil || f < 0 {
			return fmt.Errorf("%w: %s must be a non-negative number", domain.ErrInvalidInput, key)
		}
		parsed = f
	default:
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}

	if err := s.configStore.Set(key, parsed); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// Keys returns the config keys accepted by Set, sorted.
func (s *SettingsService) Keys() []string {
	keys := []string{
		keyStoreBackend,
		keyStoreDataDir,
		keyStoreRemoteURL,
		keySearchDebounceMS,
		keySearchRatePerSec,
		keySearchBurst,
		keyServerAddr,
	}
	sort.Strings(keys)
	return keys
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

// getInt treats an explicit zero as a real value.
func (s *SettingsService) getInt(key string, defaultVal int) int {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetInt(key)
}

func (s *SettingsService) getFloat(key string, defaultVal float64) float64 {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetFloat(key)
}

func (s *SettingsService) getBackend(defaultVal domain.StoreBackend) domain.StoreBackend {
	val := s.configStore.GetString(keyStoreBackend)
	if val == "" {
		return defaultVal
	}
	backend := domain.StoreBackend(val)
	if !backend.IsValid() {
		return defaultVal
	}
	return backend
}
