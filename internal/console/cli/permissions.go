package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"adminconsole/adminclient"
	"adminconsole/internal/console/table"
	"adminconsole/internal/domain/models"
	"adminconsole/internal/query"
)

var permissionTable = table.Table[models.Permission]{
	Columns: []table.Column[models.Permission]{
		{Title: "ID", Cell: func(p models.Permission) string { return strconv.FormatInt(p.ID, 10) }},
		{Title: "Name", Cell: func(p models.Permission) string { return p.Name }},
		{Title: "Category", Cell: func(p models.Permission) string {
			if p.Category == nil {
				return adminclient.UncategorizedGroup
			}
			return p.Category.Name
		}},
		{Title: "Status", Cell: func(p models.Permission) string { return p.Status }},
		{Title: "Used By", Cell: func(p models.Permission) string {
			if p.Usage == nil {
				return "-"
			}
			return fmt.Sprintf("%d roles", *p.Usage)
		}},
	},
	Actions: []table.Action[models.Permission]{
		{Label: "edit"},
		{Label: "delete", Enabled: func(p models.Permission) bool { return p.Usage == nil || *p.Usage == 0 }},
	},
}

func newPermissionsCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "permissions",
		Short: "Manage the permission catalog",
	}
	cmd.AddCommand(newPermissionsListCommand(opts))
	cmd.AddCommand(newPermissionsGroupedCommand(opts))
	cmd.AddCommand(newPermissionsCreateCommand(opts))
	cmd.AddCommand(newPermissionsUpdateCommand(opts))
	cmd.AddCommand(newPermissionsDeleteCommand(opts))
	return cmd
}

func newPermissionsListCommand(opts *RootOptions) *cobra.Command {
	flags := &listFlags{}
	var includeUsage bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List permissions",
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := flags.state()
			if err != nil {
				return err
			}
			client, err := opts.newClient()
			if err != nil {
				return err
			}
			page, err := client.Permissions().List(cmd.Context(), q, adminclient.PermissionListOptions{
				IncludeUsage: includeUsage,
			})
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), permissionTable.Render(page.Items, page.Pagination))
			return nil
		},
	}
	flags.register(cmd)
	cmd.Flags().BoolVar(&includeUsage, "usage", false, "show how many roles use each permission")
	return cmd
}

// newPermissionsGroupedCommand prints every permission bucketed under
// its category, the shape role editors pick from.
func newPermissionsGroupedCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "grouped",
		Short: "Show all permissions grouped by category",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := opts.newClient()
			if err != nil {
				return err
			}
			page, err := client.Permissions().List(cmd.Context(), query.New(), adminclient.PermissionListOptions{GetAll: true})
			if err != nil {
				return err
			}
			for _, group := range adminclient.GroupPermissionsByCategory(page.Items) {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\n", group.Category)
				for _, p := range group.Permissions {
					desc := ""
					if p.Description != nil {
						desc = " - " + *p.Description
					}
					fmt.Fprintf(cmd.OutOrStdout(), "  [%d] %s%s\n", p.ID, p.Name, desc)
				}
			}
			return nil
		},
	}
}

func newPermissionsCreateCommand(opts *RootOptions) *cobra.Command {
	var name, description, status string
	var categoryID int64
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a permission",
		RunE: func(cmd *cobra.Command, args []string) error {
			in := adminclient.PermissionInput{Name: name, Status: status}
			if cmd.Flags().Changed("description") {
				in.Description = &description
			}
			if cmd.Flags().Changed("category-id") {
				in.CategoryID = &categoryID
			}
			client, err := opts.newClient()
			if err != nil {
				return err
			}
			perm, err := client.Permissions().Create(cmd.Context(), in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created permission %d (%s)\n", perm.ID, perm.Name)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "permission name")
	cmd.Flags().StringVar(&description, "description", "", "description")
	cmd.Flags().StringVar(&status, "status", "", "status (active|inactive)")
	cmd.Flags().Int64Var(&categoryID, "category-id", 0, "category id")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

// permissionFields is the editable slice of a permission, with the
// category flattened to its id.
type permissionFields struct {
	Name        string
	Description *string
	Status      string
	CategoryID  *int64
}

func permissionFieldsOf(p models.Permission) permissionFields {
	f := permissionFields{Name: p.Name, Description: p.Description, Status: p.Status}
	if p.Category != nil {
		catID := p.Category.ID
		f.CategoryID = &catID
	}
	return f
}

func newPermissionsUpdateCommand(opts *RootOptions) *cobra.Command {
	var name, description, status string
	var categoryID int64
	var clearCategory bool
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a permission; only the given flags change",
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
			current, err := client.Permissions().Get(cmd.Context(), id)
			if err != nil {
				return err
			}

			_, changed, err := submitEdit(permissionFieldsOf(current), func(d *permissionFields) {
				if cmd.Flags().Changed("name") {
					d.Name = name
				}
				if cmd.Flags().Changed("description") {
					d.Description = &description
				}
				if cmd.Flags().Changed("status") {
					d.Status = status
				}
				if clearCategory {
					d.CategoryID = nil
				} else if cmd.Flags().Changed("category-id") {
					d.CategoryID = &categoryID
				}
			}, func(d permissionFields) (permissionFields, error) {
				patch := adminclient.PermissionPatch{
					ID:          id,
					Name:        &d.Name,
					Description: d.Description,
					Status:      &d.Status,
				}
				if d.CategoryID != nil {
					patch.CategoryID = d.CategoryID
				} else {
					patch.ClearCategory = true
				}
				perm, err := client.Permissions().Update(cmd.Context(), patch)
				if err != nil {
					return d, err
				}
				return permissionFieldsOf(perm), nil
			})
			if err != nil {
				return err
			}
			if !changed {
				fmt.Fprintf(cmd.OutOrStdout(), "Permission %d unchanged\n", id)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated permission %d\n", id)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "permission name")
	cmd.Flags().StringVar(&description, "description", "", "description")
	cmd.Flags().StringVar(&status, "status", "", "status (active|inactive)")
	cmd.Flags().Int64Var(&categoryID, "category-id", 0, "category id")
	cmd.Flags().BoolVar(&clearCategory, "clear-category", false, "detach the permission from its category")
	return cmd
}

func newPermissionsDeleteCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a permission",
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
			if err := client.Permissions().Delete(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted permission %d\n", id)
			return nil
		},
	}
}
