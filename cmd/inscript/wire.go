package main

import (
	"fmt"

	"github.com/custodia-labs/inscript/internal/adapters/driven/config/file"
	"github.com/custodia-labs/inscript/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/inscript/internal/adapters/driven/storage/remote"
	"github.com/custodia-labs/inscript/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/inscript/internal/adapters/driven/watch"
	"github.com/custodia-labs/inscript/internal/adapters/driving/cli"
	"github.com/custodia-labs/inscript/internal/core/domain"
	"github.com/custodia-labs/inscript/internal/core/ports/driven"
	"github.com/custodia-labs/inscript/internal/core/services"
	"github.com/custodia-labs/inscript/internal/logger"
)

// build wires the configured note store into the core services.
func build(opts cli.BuildOptions) (*cli.Services, error) {
	configStore, err := file.NewConfigStore(opts.ConfigDir)
	if err != nil {
		return nil, fmt.Errorf("opening config: %w", err)
	}
	settingsService := services.NewSettingsService(configStore)

	out := &cli.Services{Settings: settingsService}
	if !opts.Notes {
		return out, nil
	}

	settings, err := settingsService.Get()
	if err != nil {
		return nil, fmt.Errorf("reading settings: %w", err)
	}

	store, watcher, closeStore, err := openStore(settings.Store)
	if err != nil {
		return nil, err
	}

	noteService := services.NewNoteService(store)
	noteService.SetSearchRateLimit(settings.Search.RatePerSecond, settings.Search.Burst)
	if watcher != nil {
		noteService.SetWatcher(watcher)
		out.Watch = noteService.Watch
	}

	out.Notes = noteService
	out.Close = func() error {
		if watcher != nil {
			_ = watcher.Close()
		}
		if closeStore != nil {
			return closeStore()
		}
		return nil
	}
	return out, nil
}

// openStore opens the backend named in settings. The watcher and close
// function are nil when the backend has none.
func openStore(cfg domain.StoreSettings) (driven.NoteStore, driven.ChangeWatcher, func() error, error) {
	logger.Debug("Opening %s note store", cfg.Backend)

	switch cfg.Backend {
	case domain.StoreBackendMemory:
		return memory.NewNoteStore(), nil, nil, nil

	case domain.StoreBackendRemote:
		if cfg.RemoteURL == "" {
			return nil, nil, nil, fmt.Errorf("%w: store.remote_url is required for the remote backend",
				domain.ErrInvalidInput)
		}
		store, err := remote.NewNoteStore(cfg.RemoteURL, nil)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("creating remote store: %w", err)
		}
		return store, nil, nil, nil

	case domain.StoreBackendSQLite:
		db, err := sqlite.NewStore(cfg.DataDir)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("opening store: %w", err)
		}
		watcher := watch.New(db.Dir(), watch.DefaultDebounce, sqlite.DBFileName, sqlite.DBFileName+"-wal")
		return db.NoteStore(), watcher, db.Close, nil

	default:
		return nil, nil, nil, fmt.Errorf("%w: store backend %q", domain.ErrInvalidInput, cfg.Backend)
	}
}
