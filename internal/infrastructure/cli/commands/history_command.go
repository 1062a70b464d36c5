package commands

import (
	"fmt"
	"io"
	"sort"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/doeshing/vox-go/internal/app"
	"github.com/doeshing/vox-go/internal/domain"
)

// NewHistoryCommand creates the history command with all subcommands
func NewHistoryCommand(container *app.Container) *cobra.Command {
	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect and manage generation history",
	}

	historyCmd.AddCommand(
		newHistoryListCommand(container),
		newHistoryShowCommand(container),
		newHistorySearchCommand(container),
		newHistoryPlayCommand(container),
		newHistoryDeleteCommand(container),
		newHistoryClearCommand(container),
		newHistoryExportCommand(container),
	)

	return historyCmd
}

func newHistoryListCommand(container *app.Container) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent generations, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			entries := container.HistoryStore.Load()
			if len(entries) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No history yet.")
				return nil
			}
			if limit > 0 && len(entries) > limit {
				entries = entries[:limit]
			}
			for _, entry := range entries {
				printHistoryLine(cmd.OutOrStdout(), entry)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", DefaultHistoryLimit, "Maximum number of records to show")
	return cmd
}

func newHistoryShowCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one history record in full",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			entry, err := findHistoryEntry(container, args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "ID:      %s\n", entry.ID)
			fmt.Fprintf(out, "Created: %s\n", entry.CreatedAt.Format(TimestampFormat))
			fmt.Fprintf(out, "Backend: %s\n", entry.Backend)
			if entry.Model != "" {
				fmt.Fprintf(out, "Model:   %s\n", entry.Model)
			}
			fmt.Fprintf(out, "Voice:   %s\n", entry.Voice)
			if entry.AudioFile != "" {
				fmt.Fprintf(out, "Audio:   %s\n", entry.AudioFile)
			}
			if len(entry.Params) > 0 {
				keys := make([]string, 0, len(entry.Params))
				for key := range entry.Params {
					keys = append(keys, key)
				}
				sort.Strings(keys)
				fmt.Fprintln(out, "Params:")
				for _, key := range keys {
					fmt.Fprintf(out, "  %s: %s\n", key, entry.Params[key])
				}
			}
			fmt.Fprintf(out, "Text:    %s\n", entry.Text)
			return nil
		},
	}
}

func newHistorySearchCommand(container *app.Container) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search history by text or voice",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			matches, err := container.HistoryStore.Search(limit, args[0])
			if err != nil {
				return fmt.Errorf("search failed: %w", err)
			}
			if len(matches) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No matches.")
				return nil
			}
			for _, entry := range matches {
				printHistoryLine(cmd.OutOrStdout(), entry)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", DefaultHistorySearchLimit, "Maximum number of results")
	return cmd
}

func newHistoryPlayCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "play <id>",
		Short: "Play the saved audio of a history record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			entry, err := findHistoryEntry(container, args[0])
			if err != nil {
				return err
			}
			if entry.AudioFile == "" {
				return fmt.Errorf("record %s has no saved audio", entry.ID)
			}
			if !container.Player.Enabled() {
				return fmt.Errorf("no audio player found on this system")
			}
			return container.Player.Play(cmd.Context(), entry.AudioFile)
		},
	}
}

func newHistoryDeleteCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a history record and its audio file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := container.HistoryStore.Delete(args[0]); err != nil {
				return fmt.Errorf("failed to delete record: %w", err)
			}
			return nil
		},
	}
}

func newHistoryClearCommand(container *app.Container) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete all history records and their audio files",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return fmt.Errorf("refusing to clear history without --yes")
			}
			if err := container.HistoryStore.Clear(); err != nil {
				return fmt.Errorf("failed to clear history: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "History cleared.")
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Confirm deletion")
	return cmd
}

func newHistoryExportCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "export <path>",
		Short: "Export history as JSON lines",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := container.HistoryStore.ExportJSON(args[0]); err != nil {
				return fmt.Errorf("export failed: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported history to %s\n", args[0])
			return nil
		},
	}
}

func findHistoryEntry(container *app.Container, id string) (domain.HistoryEntry, error) {
	for _, entry := range container.HistoryStore.Load() {
		if entry.ID == id {
			return entry, nil
		}
	}
	return domain.HistoryEntry{}, fmt.Errorf("no history record with id %s", id)
}

func printHistoryLine(out io.Writer, entry domain.HistoryEntry) {
	fmt.Fprintf(out, "%s  %-12s %-10s %s\n", entry.ID, humanize.Time(entry.CreatedAt), entry.Backend, truncateText(entry.Text, 60))
}

// truncateText shortens long text on rune boundaries so multibyte input is
// never split mid-sequence.
func truncateText(text string, max int) string {
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	return string(runes[:max-3]) + "..."
}
