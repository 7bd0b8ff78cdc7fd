package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"adminconsole/adminclient"
	"adminconsole/internal/console/table"
	"adminconsole/internal/domain/models"
	"adminconsole/internal/repositories"
)

var roleTable = table.Table[models.Role]{
	Columns: []table.Column[models.Role]{
		{Title: "ID", Cell: func(r models.Role) string { return strconv.FormatInt(r.ID, 10) }},
		{Title: "Name", Cell: func(r models.Role) string { return r.Name }},
		{Title: "Description", Cell: func(r models.Role) string {
			if r.Description == nil {
				return ""
			}
			return *r.Description
		}},
		{Title: "Permissions", Cell: func(r models.Role) string { return strconv.Itoa(len(r.Permissions)) }},
	},
	Actions: []table.Action[models.Role]{
		{Label: "edit"},
		{Label: "delete", Enabled: func(r models.Role) bool { return !repositories.ProtectedRoles[r.Name] }},
	},
}

func newRolesCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "roles",
		Short: "Manage roles and their permission sets",
	}
	cmd.AddCommand(newRolesListCommand(opts))
	cmd.AddCommand(newRolesShowCommand(opts))
	cmd.AddCommand(newRolesCreateCommand(opts))
	cmd.AddCommand(newRolesUpdateCommand(opts))
	cmd.AddCommand(newRolesDeleteCommand(opts))
	return cmd
}

func newRolesListCommand(opts *RootOptions) *cobra.Command {
	flags := &listFlags{}
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List roles",
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := flags.state()
			if err != nil {
				return err
			}
			client, err := opts.newClient()
			if err != nil {
				return err
			}
			page, err := client.Roles().List(cmd.Context(), q)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), roleTable.Render(page.Items, page.Pagination))
			return nil
		},
	}
	flags.register(cmd)
	return cmd
}

func newRolesShowCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one role and the permissions it grants",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid id %q", args[0])
			}
			client, err := opts.newClient()
			if err != nil {
				return err
			}
			role, err := client.Roles().Get(cmd.Context(), id)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Role %d: %s\n", role.ID, role.Name)
			if role.Description != nil && *role.Description != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", *role.Description)
			}
			for _, group := range adminclient.GroupPermissionsByCategory(role.Permissions) {
				fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", group.Category)
				for _, p := range group.Permissions {
					fmt.Fprintf(cmd.OutOrStdout(), "    [%d] %s\n", p.ID, p.Name)
				}
			}
			return nil
		},
	}
}

func newRolesCreateCommand(opts *RootOptions) *cobra.Command {
	var name, description string
	var permissionIDs []int64
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a role",
		RunE: func(cmd *cobra.Command, args []string) error {
			in := adminclient.RoleInput{Name: name, PermissionIDs: permissionIDs}
			if cmd.Flags().Changed("description") {
				in.Description = &description
			}
			client, err := opts.newClient()
			if err != nil {
				return err
			}
			role, err := client.Roles().Create(cmd.Context(), in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created role %d (%s)\n", role.ID, role.Name)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "role name")
	cmd.Flags().StringVar(&description, "description", "", "role description")
	cmd.Flags().Int64SliceVar(&permissionIDs, "permission-ids", nil, "permission ids granted to the role")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

// roleFields is the editable slice of a role, with the permission set
// flattened to ids the way the update endpoint takes it.
type roleFields struct {
	Name          string
	Description   *string
	PermissionIDs []int64
}

func roleFieldsOf(r models.Role) roleFields {
	f := roleFields{Name: r.Name, Description: r.Description}
	for _, p := range r.Permissions {
		f.PermissionIDs = append(f.PermissionIDs, p.ID)
	}
	return f
}

func newRolesUpdateCommand(opts *RootOptions) *cobra.Command {
	var name, description string
	var permissionIDs []int64
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a role; only the given flags change",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid id %q", args[0])
			}
			client, err := opts.newClient()
			if err != nil {
				return err
			}
			current, err := client.Roles().Get(cmd.Context(), id)
			if err != nil {
				return err
			}

			_, changed, err := submitEdit(roleFieldsOf(current), func(d *roleFields) {
				if cmd.Flags().Changed("name") {
					d.Name = name
				}
				if cmd.Flags().Changed("description") {
					d.Description = &description
				}
				if cmd.Flags().Changed("permission-ids") {
					d.PermissionIDs = permissionIDs
				}
			}, func(d roleFields) (roleFields, error) {
				role, err := client.Roles().Update(cmd.Context(), adminclient.RolePatch{
					ID:            id,
					Name:          &d.Name,
					Description:   d.Description,
					PermissionIDs: &d.PermissionIDs,
				})
				if err != nil {
					return d, err
				}
				return roleFieldsOf(role), nil
			})
			if err != nil {
				return err
			}
			if !changed {
				fmt.Fprintf(cmd.OutOrStdout(), "Role %d unchanged\n", id)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated role %d\n", id)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "role name")
	cmd.Flags().StringVar(&description, "description", "", "role description")
	cmd.Flags().Int64SliceVar(&permissionIDs, "permission-ids", nil, "permission ids (replaces the current set)")
	return cmd
}

func newRolesDeleteCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a role",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid id %q", args[0])
			}
			client, err := opts.newClient()
			if err != nil {
				return err
			}
			if err := client.Roles().Delete(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted role %d\n", id)
			return nil
		},
	}
}
