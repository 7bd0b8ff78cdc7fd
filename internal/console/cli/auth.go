package cli

import (
	"fmt"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"adminconsole/adminclient"
)

func newLoginCommand(opts *RootOptions) *cobra.Command {
	var password string

	cmd := &cobra.Command{
		Use:   "login <username-or-email>",
		Short: "Authenticate and save the session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if password == "" {
				fmt.Fprint(cmd.OutOrStdout(), "Password: ")
				raw, err := term.ReadPassword(int(syscall.Stdin))
				fmt.Fprintln(cmd.OutOrStdout())
				if err != nil {
					return err
				}
				password = strings.TrimSpace(string(raw))
			}

			client, err := opts.newClient()
			if err != nil {
				return err
			}
			user, err := client.Auth().Login(cmd.Context(), args[0], password)
			if err != nil {
				return err
			}
			if err := saveSession(storedSession{BaseURL: client.BaseURL, Token: client.SessionToken}); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s\n", user.Username)
			return nil
		},
	}
	cmd.Flags().StringVarP(&password, "password", "p", "", "password (prompted when omitted)")
	return cmd
}

func newRegisterCommand(opts *RootOptions) *cobra.Command {
	var password string

	cmd := &cobra.Command{
		Use:   "register <username> <email>",
		Short: "Create an account and save the session",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if password == "" {
				fmt.Fprint(cmd.OutOrStdout(), "Password: ")
				raw, err := term.ReadPassword(int(syscall.Stdin))
				fmt.Fprintln(cmd.OutOrStdout())
				if err != nil {
					return err
				}
				password = strings.TrimSpace(string(raw))
			}

			client, err := opts.newClient()
			if err != nil {
				return err
			}
			user, err := client.Auth().Register(cmd.Context(), adminclient.RegisterRequest{
				Username: args[0],
				Email:    args[1],
				Password: password,
			})
			if err != nil {
				return err
			}
			if err := saveSession(storedSession{BaseURL: client.BaseURL, Token: client.SessionToken}); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Registered and logged in as %s\n", user.Username)
			return nil
		},
	}
	cmd.Flags().StringVarP(&password, "password", "p", "", "password (prompted when omitted)")
	return cmd
}

func newLogoutCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "End the session and forget the saved token",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := opts.newClient()
			if err != nil {
				return err
			}
			// Best effort server side; the local token goes regardless.
			_ = client.Auth().Logout(cmd.Context())
			if err := clearSession(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
			return nil
		},
	}
}

func newStatusCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show whether the saved session is still valid",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := opts.newClient()
			if err != nil {
				return err
			}
			status, err := client.Auth().Status(cmd.Context())
			if err != nil {
				return err
			}
			if status.LoggedIn && status.User != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s (%s)\n", status.User.Username, status.User.Email)
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Not logged in")
			return nil
		},
	}
}
