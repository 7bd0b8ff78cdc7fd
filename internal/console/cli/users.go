package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"adminconsole/adminclient"
	"adminconsole/internal/console/table"
	"adminconsole/internal/domain/models"
)

var userTable = table.Table[models.User]{
	Columns: []table.Column[models.User]{
		{Title: "ID", Cell: func(u models.User) string { return strconv.FormatInt(u.ID, 10) }},
		{Title: "Username", Cell: func(u models.User) string { return u.Username }},
		{Title: "Email", Cell: func(u models.User) string { return u.Email }},
		{Title: "Roles", Cell: func(u models.User) string {
			names := make([]string, 0, len(u.Roles))
			for _, r := range u.Roles {
				names = append(names, r.Name)
			}
			return strings.Join(names, ", ")
		}},
	},
	Actions: []table.Action[models.User]{
		{Label: "roles"},
	},
}

func newUsersCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "Manage accounts and their roles",
	}
	cmd.AddCommand(newUsersListCommand(opts))
	cmd.AddCommand(newUsersShowCommand(opts))
	cmd.AddCommand(newUsersAssignRolesCommand(opts))
	return cmd
}

func newUsersShowCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one account with its roles",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid user id %q", args[0])
			}
			client, err := opts.newClient()
			if err != nil {
				return err
			}
			user, err := client.Users().Get(cmd.Context(), id)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "User %d: %s <%s>\n", user.ID, user.Username, user.Email)
			for _, r := range user.Roles {
				fmt.Fprintf(cmd.OutOrStdout(), "  role [%d] %s\n", r.ID, r.Name)
			}
			return nil
		},
	}
}

func newUsersListCommand(opts *RootOptions) *cobra.Command {
	flags := &listFlags{}
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List accounts",
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := flags.state()
			if err != nil {
				return err
			}
			client, err := opts.newClient()
			if err != nil {
				return err
			}
			page, err := client.Users().List(cmd.Context(), q)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), userTable.Render(page.Items, page.Pagination))
			return nil
		},
	}
	flags.register(cmd)
	return cmd
}

func newUsersAssignRolesCommand(opts *RootOptions) *cobra.Command {
	var roleIDs []int64
	cmd := &cobra.Command{
		Use:   "assign-roles <user-id>",
		Short: "Replace an account's role set",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid user id %q", args[0])
			}
			client, err := opts.newClient()
			if err != nil {
				return err
			}
			user, err := client.Users().AssignRoles(cmd.Context(), adminclient.RoleAssignment{
				UserID:  id,
				RoleIDs: roleIDs,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated roles for %s\n", user.Username)
			return nil
		},
	}
	cmd.Flags().Int64SliceVar(&roleIDs, "role-ids", nil, "role ids to assign (replaces the current set)")
	_ = cmd.MarkFlagRequired("role-ids")
	return cmd
}
