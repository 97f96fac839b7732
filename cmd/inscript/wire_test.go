package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/inscript/internal/adapters/driving/cli"
	"github.com/custodia-labs/inscript/internal/core/domain"
)

func TestBuild_SettingsOnly(t *testing.T) {
	s, err := build(cli.BuildOptions{ConfigDir: t.TempDir()})

	require.NoError(t, err)
	assert.NotNil(t, s.Settings)
	assert.Nil(t, s.Notes)
	assert.Nil(t, s.Close)
}

func TestBuild_SQLiteDefault(t *testing.T) {
	dir := t.TempDir()
	settings, err := build(cli.BuildOptions{ConfigDir: dir})
	require.NoError(t, err)
	require.NoError(t, settings.Settings.Set("store.data_dir", t.TempDir()))

	s, err := build(cli.BuildOptions{ConfigDir: dir, Notes: true})
	require.NoError(t, err)
	defer func() { assert.NoError(t, s.Close()) }()

	require.NotNil(t, s.Notes)
	require.NotNil(t, s.Watch)

	note, err := s.Notes.Add(context.Background(), domain.NoteDraft{Title: "Groceries"})
	require.NoError(t, err)
	assert.NotEmpty(t, note.ID)
}

func TestBuild_Memory(t *testing.T) {
	dir := t.TempDir()
	settings, err := build(cli.BuildOptions{ConfigDir: dir})
	require.NoError(t, err)
	require.NoError(t, settings.Settings.Set("store.backend", "memory"))

	s, err := build(cli.BuildOptions{ConfigDir: dir, Notes: true})
	require.NoError(t, err)

	assert.NotNil(t, s.Notes)
	assert.Nil(t, s.Watch)
	assert.NoError(t, s.Close())
}

func TestOpenStore_RemoteNeedsURL(t *testing.T) {
	_, _, _, err := openStore(domain.StoreSettings{Backend: domain.StoreBackendRemote})

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestOpenStore_Remote(t *testing.T) {
	store, watcher, closeFn, err := openStore(domain.StoreSettings{
		Backend:   domain.StoreBackendRemote,
		RemoteURL: "http://127.0.0.1:7077",
	})

	require.NoError(t, err)
	assert.NotNil(t, store)
	assert.Nil(t, watcher)
	assert.Nil(t, closeFn)
}

func TestOpenStore_UnknownBackend(t *testing.T) {
	_, _, _, err := openStore(domain.StoreSettings{Backend: "floppy"})

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
