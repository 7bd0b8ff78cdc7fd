// Package cli implements the admctl terminal client.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"adminconsole/adminclient"
)

// RootOptions holds global flags shared by all commands.
type RootOptions struct {
	BaseURL string
	Verbose bool
}

// NewRootCommand creates the root command for admctl.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:           "admctl",
		Short:         "Terminal client for the admin console API",
		Long:          "admctl manages contacts, users, roles, permissions, categories, and the audit trail from the terminal.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return requireSession(cmd)
		},
	}

	cmd.PersistentFlags().StringVar(&opts.BaseURL, "base-url", "", "API origin (defaults to the saved session's origin or http://localhost:8080)")
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")

	cmd.AddCommand(newLoginCommand(opts))
	cmd.AddCommand(newRegisterCommand(opts))
	cmd.AddCommand(newLogoutCommand(opts))
	cmd.AddCommand(newStatusCommand(opts))
	cmd.AddCommand(newContactsCommand(opts))
	cmd.AddCommand(newUsersCommand(opts))
	cmd.AddCommand(newRolesCommand(opts))
	cmd.AddCommand(newPermissionsCommand(opts))
	cmd.AddCommand(newCategoriesCommand(opts))
	cmd.AddCommand(newAuditCommand(opts))

	return cmd
}

// requireSession gates every command except login and register (and
// cobra's built-ins) behind a saved session token.
func requireSession(cmd *cobra.Command) error {
	for c := cmd; c != nil; c = c.Parent() {
		switch c.Name() {
		case "login", "register", "help", "completion", "__complete":
			return nil
		}
	}
	sess, err := loadSession()
	if err != nil {
		return err
	}
	if sess.Token == "" {
		return fmt.Errorf("not logged in; run `admctl login <username-or-email>` first")
	}
	return nil
}

// newClient builds an API client from the saved session plus flags.
func (o *RootOptions) newClient() (*adminclient.Client, error) {
	sess, err := loadSession()
	if err != nil {
		return nil, err
	}
	base := o.BaseURL
	if base == "" {
		base = sess.BaseURL
	}
	if base == "" {
		base = "http://localhost:8080"
	}

	clientOpts := []adminclient.Option{}
	if sess.Token != "" {
		clientOpts = append(clientOpts, adminclient.WithSessionToken(sess.Token))
	}
	if o.Verbose {
		clientOpts = append(clientOpts, adminclient.WithLogger(func(event string, md map[string]any) {
			fmt.Printf("# %s %v\n", event, md)
		}))
	}
	return adminclient.New(base, clientOpts...), nil
}
