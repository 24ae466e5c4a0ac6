package cli

import (
	"errors"
	"fmt"
	"net/mail"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/howzue/internal/domain"
)

func addLogin(topLevel *cobra.Command, e *env) {
	var guest bool

	cmd := &cobra.Command{
		Use:   "login <email>",
		Short: "Switch the journal to the identity of an e-mail address",
		Example: `
howzue login ada@example.com
howzue login --guest
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if guest {
				return cobra.NoArgs(cmd, args)
			}
			if len(args) != 1 {
				return errors.New("requires an e-mail address or --guest")
			}
			if _, err := mail.ParseAddress(args[0]); err != nil {
				return domain.NewValidationError("email", "invalid address")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			id := domain.GuestIdentity
			if !guest {
				id = domain.IdentityFromEmail(args[0])
			}

			if err := e.session.Login(commandContext(cmd), id); err != nil {
				return err
			}
			if err := e.device.SaveSession(id); err != nil {
				return err
			}

			if guest {
				success(cmd.OutOrStdout(), "Journaling as guest.")
			} else {
				success(cmd.OutOrStdout(), "Logged in as %s.", args[0])
			}
			faint(cmd.OutOrStdout(), "identity %s, %d entries", id, len(e.journal.Entries()))
			return nil
		},
	}
	cmd.Flags().BoolVar(&guest, "guest", false, "use the shared guest journal")

	topLevel.AddCommand(cmd)
}

func addLogout(topLevel *cobra.Command, e *env) {
	cmd := &cobra.Command{
		Use:   "logout",
		Short: "Return to the guest journal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e.session.Logout(commandContext(cmd))
			if err := e.device.SaveSession(domain.GuestIdentity); err != nil {
				return err
			}
			success(cmd.OutOrStdout(), "Logged out, journaling as guest.")
			return nil
		},
	}

	topLevel.AddCommand(cmd)
}

func addWhoami(topLevel *cobra.Command, e *env) {
	cmd := &cobra.Command{
		Use:   "whoami",
		Short: "Show the active identity",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			id, ok := e.session.Current()
			if !ok {
				faint(cmd.OutOrStdout(), "nobody is logged in")
				return nil
			}
			if id == domain.GuestIdentity {
				fmt.Fprintln(cmd.OutOrStdout(), "guest")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), id)
			return nil
		},
	}

	topLevel.AddCommand(cmd)
}
