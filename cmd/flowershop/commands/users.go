package commands

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/talkincode/flowershop/internal/auth"
)

// usersCmd lists the accounts with their plain-text passwords
var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "List user logins, passwords and roles",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runUsers(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(usersCmd)
}

func runUsers(ctx context.Context) error {
	application, err := newApp(true, true)
	if err != nil {
		return err
	}
	defer application.Release()

	rows, err := auth.NewService(application.DB()).ListUsers(ctx)
	if err != nil {
		return err
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "LOGIN\tPASSWORD\tROLE")
	for _, r := range rows {
		fmt.Fprintf(w, "%s\t%s\t%s\n", r.Login, r.Password, r.Role)
	}
	return w.Flush()
}
