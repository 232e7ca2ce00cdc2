package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/teemow/classwatch/internal/google"
)

func newAuthCmd() *cobra.Command {
	var account string

	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Authorize classwatch against a Google account",
		Long: `Runs the one-time OAuth flow for the Google account whose calendar and
Meet spaces should be monitored. The resulting token is stored in the
user cache directory under the given account name.

GOOGLE_CLIENT_ID and GOOGLE_CLIENT_SECRET must be set in the
environment (a .env file next to the binary is also read).`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAuth(cmd.Context(), account)
		},
	}

	cmd.Flags().StringVar(&account, "account", "default", "Account name to store the token under")

	return cmd
}

func runAuth(ctx context.Context, account string) error {
	if ctx == nil {
		ctx = context.Background()
	}

	if google.HasTokenForAccount(account) {
		fmt.Printf("A token for account %q already exists and will be replaced.\n\n", account)
	}

	fmt.Printf("Open the following URL in a browser, grant read access, and paste\nthe authorization code below.\n\n%s\n\nCode: ", google.GetAuthURLForAccount(account))

	var code string
	if _, err := fmt.Scan(&code); err != nil {
		return fmt.Errorf("reading authorization code: %w", err)
	}

	if err := google.SaveTokenForAccount(ctx, account, code); err != nil {
		return fmt.Errorf("storing token: %w", err)
	}

	fmt.Printf("Token stored for account %q.\n", account)
	return nil
}
