package cli

import (
	"fmt"

	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"

	"github.com/heartmarshall/howzue/internal/domain"
)

func addSettings(topLevel *cobra.Command, e *env) {
	var (
		theme string
		ai    bool
		reset bool
	)

	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change the settings of the active identity",
		Example: `
howzue settings
howzue settings --theme dark --ai=false
howzue settings --reset
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if _, err := e.active(cmd); err != nil {
				return err
			}
			ctx := commandContext(cmd)

			switch {
			case reset:
				if _, err := e.settings.Reset(ctx); err != nil {
					return err
				}
			case cmd.Flags().Changed("theme") || cmd.Flags().Changed("ai"):
				next := e.settings.Get()
				if cmd.Flags().Changed("theme") {
					next.Theme = domain.Theme(theme)
				}
				if cmd.Flags().Changed("ai") {
					next.EnableAIInsights = ai
				}
				if _, err := e.settings.Update(ctx, next); err != nil {
					return err
				}
			}

			s := e.settings.Get()
			tbl := uitable.New()
			tbl.Separator = "  "
			tbl.AddRow(bold.Sprint("Theme"), s.Theme)
			tbl.AddRow(bold.Sprint("AI insights"), onOff(s.EnableAIInsights))
			fmt.Fprintln(cmd.OutOrStdout(), tbl)
			return nil
		},
	}
	cmd.Flags().StringVar(&theme, "theme", "", "light, dark or system")
	cmd.Flags().BoolVar(&ai, "ai", true, "enable AI insights")
	cmd.Flags().BoolVar(&reset, "reset", false, "restore the defaults")
	cmd.MarkFlagsMutuallyExclusive("reset", "theme")
	cmd.MarkFlagsMutuallyExclusive("reset", "ai")

	topLevel.AddCommand(cmd)
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
