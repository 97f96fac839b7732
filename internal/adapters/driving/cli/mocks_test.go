package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/inscript/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/inscript/internal/core/domain"
	"github.com/custodia-labs/inscript/internal/core/services"
)

// mockNoteService implements driving.NoteService for testing.
type mockNoteService struct {
	SearchFunc func(ctx context.Context, query string) ([]domain.Note, error)
	AddFunc    func(ctx context.Context, draft domain.NoteDraft) (domain.Note, error)
	UpdateFunc func(ctx context.Context, note domain.Note) (domain.Note, error)
	DeleteFunc func(ctx context.Context, note domain.Note) error
	GetFunc    func(ctx context.Context, id string) (domain.Note, error)
}

func (m *mockNoteService) Search(ctx context.Context, query string) ([]domain.Note, error) {
	if m.SearchFunc != nil {
		return m.SearchFunc(ctx, query)
	}
	return []domain.Note{}, nil
}

func (m *mockNoteService) Add(ctx context.Context, draft domain.NoteDraft) (domain.Note, error) {
	if m.AddFunc != nil {
		return m.AddFunc(ctx, draft)
	}
	return draft.Note("1"), nil
}

func (m *mockNoteService) Update(ctx context.Context, note domain.Note) (domain.Note, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, note)
	}
	return note, nil
}

func (m *mockNoteService) Delete(ctx context.Context, note domain.Note) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, note)
	}
	return nil
}

func (m *mockNoteService) Get(ctx context.Context, id string) (domain.Note, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, id)
	}
	return domain.Note{ID: id}, nil
}

func (m *mockNoteService) Subscribe() (<-chan domain.ChangeEvent, func()) {
	return make(chan domain.ChangeEvent), func() {}
}

// setupTestServices installs memory-backed services and returns them.
func setupTestServices(t *testing.T) (*services.NoteService, *services.SettingsService) {
	t.Helper()

	notes := services.NewNoteService(memory.NewNoteStore())
	settings := services.NewSettingsService(memory.NewConfigStore())
	installServices(t, &Services{Notes: notes, Settings: settings})
	return notes, settings
}

// installServices sets s for the duration of the test.
func installServices(t *testing.T, s *Services) {
	t.Helper()

	oldServices, oldBuilder := services, builder
	SetServices(s)
	t.Cleanup(func() {
		SetServices(oldServices)
		builder = oldBuilder
	})
}

// execute runs the root command with args and returns what it printed.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	resetFlags(rootCmd)
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	defer rootCmd.SetArgs(nil)

	err := rootCmd.ExecuteContext(context.Background())
	return buf.String(), err
}

// resetFlags restores every flag to its default so runs do not leak into each other.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

func seedNotes(t *testing.T, notes *services.NoteService, drafts ...domain.NoteDraft) []domain.Note {
	t.Helper()

	out := make([]domain.Note, 0, len(drafts))
	for _, d := range drafts {
		n, err := notes.Add(context.Background(), d)
		require.NoError(t, err)
		out = append(out, n)
	}
	return out
}
