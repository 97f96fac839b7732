package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/inscript/internal/core/domain"
	"github.com/custodia-labs/inscript/internal/core/screens"
)

var (
	listJSON    bool
	searchJSON  bool
	searchLimit int
	showJSON    bool
	noteTitle   string
	noteContent string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all notes",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search notes",
	Long: `Lists the notes whose title or body contains the query.
Matching ignores case. An empty query lists every note.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Create a note",
	Long: `Creates a note and prints its ID.
Title and content default to empty, as when adding from the notes list.`,
	Args: cobra.NoArgs,
	RunE: runAdd,
}

var showCmd = &cobra.Command{
	Use:   "show [note-id]",
	Short: "Print a note",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

var editCmd = &cobra.Command{
	Use:   "edit [note-id]",
	Short: "Change the title or content of a note",
	Long: `Replaces the title and/or content of a note.
Fields whose flag is not given keep their current value.`,
	Args: cobra.ExactArgs(1),
	RunE: runEdit,
}

var deleteCmd = &cobra.Command{
	Use:   "delete [note-id]",
	Short: "Delete a note",
	Args:  cobra.ExactArgs(1),
	RunE:  runDelete,
}

func init() {
	listCmd.Flags().BoolVar(&listJSON, "json", false, "output notes as JSON")

	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output notes as JSON")
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 0, "maximum number of notes (0 = all)")

	showCmd.Flags().BoolVar(&showJSON, "json", false, "output the note as JSON")

	for _, c := range []*cobra.Command{addCmd, editCmd} {
		c.Flags().StringVarP(&noteTitle, "title", "t", "", "note title")
		c.Flags().StringVarP(&noteContent, "content", "c", "", "note content")
	}

	rootCmd.AddCommand(listCmd, searchCmd, addCmd, showCmd, editCmd, deleteCmd)
}

func runList(cmd *cobra.Command, _ []string) error {
	notes, err := requireNotes()
	if err != nil {
		return err
	}

	results, err := notes.Search(cmd.Context(), "")
	if err != nil {
		return fmt.Errorf("listing notes: %w", err)
	}

	if listJSON {
		return outputJSON(cmd, results)
	}
	return outputNotes(cmd, results, "No notes yet")
}

func runSearch(cmd *cobra.Command, args []string) error {
	notes, err := requireNotes()
	if err != nil {
		return err
	}

	results, err := notes.Search(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}
	if searchLimit > 0 && len(results) > searchLimit {
		results = results[:searchLimit]
	}

	if searchJSON {
		return outputJSON(cmd, results)
	}

	empty := "No notes yet"
	if q := strings.TrimSpace(args[0]); q != "" {
		empty = fmt.Sprintf("No notes match %q", q)
	}
	return outputNotes(cmd, results, empty)
}

func runAdd(cmd *cobra.Command, _ []string) error {
	notes, err := requireNotes()
	if err != nil {
		return err
	}

	note, err := notes.Add(cmd.Context(), domain.NoteDraft{Title: noteTitle, Content: noteContent})
	if err != nil {
		return fmt.Errorf("could not create note: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Created note %s\n", note.ID)
	return nil
}

func runShow(cmd *cobra.Command, args []string) error {
	notes, err := requireNotes()
	if err != nil {
		return err
	}

	note, err := notes.Get(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("getting note %s: %w", args[0], err)
	}

	if showJSON {
		return outputJSON(cmd, note)
	}

	fmt.Fprintln(cmd.OutOrStdout(), note.DisplayTitle())
	fmt.Fprintln(cmd.OutOrStdout(), strings.Repeat("=", len([]rune(note.DisplayTitle()))))
	if note.Content != "" {
		fmt.Fprintln(cmd.OutOrStdout())
		fmt.Fprintln(cmd.OutOrStdout(), note.Content)
	}
	return nil
}

func runEdit(cmd *cobra.Command, args []string) error {
	notes, err := requireNotes()
	if err != nil {
		return err
	}

	titleSet := cmd.Flags().Changed("title")
	contentSet := cmd.Flags().Changed("content")
	if !titleSet && !contentSet {
		return fmt.Errorf("%w: nothing to change, pass --title or --content", domain.ErrInvalidInput)
	}

	note, err := notes.Get(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("getting note %s: %w", args[0], err)
	}
	if titleSet {
		note.Title = noteTitle
	}
	if contentSet {
		note.Content = noteContent
	}

	if _, err := notes.Update(cmd.Context(), note); err != nil {
		return fmt.Errorf("could not save note: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), screens.SavedNotice)
	return nil
}

func runDelete(cmd *cobra.Command, args []string) error {
	notes, err := requireNotes()
	if err != nil {
		return err
	}

	if err := notes.Delete(cmd.Context(), domain.Note{ID: args[0]}); err != nil {
		return fmt.Errorf("could not delete note %s: %w", args[0], err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Deleted note %s\n", args[0])
	return nil
}

func outputJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}

func outputNotes(cmd *cobra.Command, notes []domain.Note, empty string) error {
	if len(notes) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), empty)
		return nil
	}

	for _, n := range notes {
		fmt.Fprintf(cmd.OutOrStdout(), "  [%s] %s\n", n.ID, n.DisplayTitle())
		if preview := firstLine(n.Content); preview != "" {
			fmt.Fprintf(cmd.OutOrStdout(), "      %s\n", preview)
		}
	}
	return nil
}

// firstLine returns the first line of s, shortened to fit a terminal row.
func firstLine(s string) string {
	line, _, _ := strings.Cut(s, "\n")
	r := []rune(strings.TrimSpace(line))
	if len(r) > 72 {
		return string(r[:69]) + "..."
	}
	return string(r)
}
