package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/howzue/internal/domain"
	"github.com/heartmarshall/howzue/internal/service/journal"
)

func addLog(topLevel *cobra.Command, e *env) {
	var mood string

	cmd := &cobra.Command{
		Use:   "log [text]",
		Short: "Record how you feel today",
		Example: `
howzue log --mood good slept well, long walk
howzue log -m awful
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := e.active(cmd); err != nil {
				return err
			}

			m, _ := domain.ParseMood(mood)
			entry, err := e.journal.AddEntry(commandContext(cmd), journal.AddEntryInput{
				Mood: m,
				Text: strings.Join(args, " "),
			})
			if err != nil {
				return err
			}

			success(cmd.OutOrStdout(), "Logged %s", moodLabel(entry.Mood))
			if st := e.journal.Stats(); st.Streak > 1 {
				faint(cmd.OutOrStdout(), "%d day streak", st.Streak)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&mood, "mood", "m", "", "one of great, good, okay, bad, awful")
	_ = cmd.MarkFlagRequired("mood")
	_ = cmd.RegisterFlagCompletionFunc("mood", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		var out []string
		for _, m := range domain.Moods() {
			out = append(out, m.String())
		}
		return out, cobra.ShellCompDirectiveNoFileComp
	})

	topLevel.AddCommand(cmd)
}

func addEntries(topLevel *cobra.Command, e *env) {
	var limit int

	cmd := &cobra.Command{
		Use:     "entries",
		Aliases: []string{"ls", "list"},
		Short:   "List journal entries, newest first",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if _, err := e.active(cmd); err != nil {
				return err
			}

			entries := e.journal.Entries()
			title(cmd.OutOrStdout(), "Entries", len(entries))
			if limit > 0 && len(entries) > limit {
				entries = entries[:limit]
			}
			printEntries(cmd.OutOrStdout(), entries, e.journal.Location())
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "show at most n entries")

	topLevel.AddCommand(cmd)
}

func addDeleteAll(topLevel *cobra.Command, e *env) {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete-all",
		Short: "Permanently delete every entry of the active identity",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if _, err := e.active(cmd); err != nil {
				return err
			}
			if !yes {
				return errors.New("refusing to delete without --yes")
			}

			n := len(e.journal.Entries())
			if err := e.journal.DeleteAll(commandContext(cmd)); err != nil {
				return err
			}
			success(cmd.OutOrStdout(), "Deleted %d entries.", n)
			return nil
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "confirm the deletion")

	topLevel.AddCommand(cmd)
}

func addExport(topLevel *cobra.Command, e *env) {
	var out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write all entries as JSON, oldest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if _, err := e.active(cmd); err != nil {
				return err
			}

			data, err := json.MarshalIndent(e.journal.Export(), "", "  ")
			if err != nil {
				return err
			}
			data = append(data, '\n')

			if out == "" || out == "-" {
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			if err := os.WriteFile(out, data, 0o600); err != nil {
				return fmt.Errorf("export: %w", err)
			}
			success(cmd.ErrOrStderr(), "Exported to %s.", out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "file to write, stdout when empty")

	topLevel.AddCommand(cmd)
}

func addImport(topLevel *cobra.Command, e *env) {
	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Replace all entries with the contents of an export file (- for stdin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := e.active(cmd); err != nil {
				return err
			}

			var (
				data []byte
				err  error
			)
			if args[0] == "-" {
				data, err = io.ReadAll(cmd.InOrStdin())
			} else {
				data, err = os.ReadFile(args[0])
			}
			if err != nil {
				return fmt.Errorf("import: %w", err)
			}

			var entries []domain.JournalEntry
			if err := json.Unmarshal(data, &entries); err != nil {
				return domain.NewValidationError("file", "not a journal export: "+err.Error())
			}

			n, err := e.journal.Import(commandContext(cmd), entries)
			if err != nil {
				return err
			}
			success(cmd.OutOrStdout(), "Imported %d entries.", n)
			return nil
		},
	}

	topLevel.AddCommand(cmd)
}
