package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/howzue/internal/service/companion"
)

func addAI(topLevel *cobra.Command, e *env) {
	topLevel.AddCommand(
		&cobra.Command{
			Use:   "insights",
			Short: "Ask for triggers and patterns in your recent entries",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				if _, err := e.active(cmd); err != nil {
					return err
				}
				text, err := e.companion.Insights(commandContext(cmd), e.settings.Get(), e.journal.Entries())
				if err != nil {
					return aiError(err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), text)
				return nil
			},
		},
		&cobra.Command{
			Use:   "summary",
			Short: "Summarize your recent entries",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				if _, err := e.active(cmd); err != nil {
					return err
				}
				text, err := e.companion.Summary(commandContext(cmd), e.settings.Get(), e.journal.Entries())
				if err != nil {
					return aiError(err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), text)
				return nil
			},
		},
		&cobra.Command{
			Use:   "prompts",
			Short: "Suggest reflection prompts for your next entry",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				if _, err := e.active(cmd); err != nil {
					return err
				}
				prompts, err := e.companion.ReflectionPrompts(commandContext(cmd), e.settings.Get(), e.journal.Entries())
				if err != nil {
					return aiError(err)
				}
				for i, p := range prompts {
					fmt.Fprintf(cmd.OutOrStdout(), "%d. %s\n", i+1, p)
				}
				return nil
			},
		},
		&cobra.Command{
			Use:   "chat <message>",
			Short: "Talk to the journaling companion",
			Args:  cobra.MinimumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				if _, err := e.active(cmd); err != nil {
					return err
				}
				reply, err := e.companion.Reply(commandContext(cmd), e.settings.Get(), nil, strings.Join(args, " "))
				if err != nil {
					return aiError(err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), reply)
				return nil
			},
		},
	)
}

func aiError(err error) error {
	switch {
	case errors.Is(err, companion.ErrDisabled):
		return fmt.Errorf("%w; turn them on with `howzue settings --ai`", err)
	case errors.Is(err, companion.ErrNotConfigured):
		return fmt.Errorf("%w; set AI_API_KEY or ai.api_key", err)
	}
	return err
}
