package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/howzue/internal/app"
)

func addVersion(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print the build version",
		Args:  cobra.NoArgs,
		// version needs no storage.
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), app.BuildVersion())
		},
	}

	topLevel.AddCommand(cmd)
}
