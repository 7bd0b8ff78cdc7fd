package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"adminconsole/adminclient"
	"adminconsole/internal/console/table"
	"adminconsole/internal/domain/models"
)

var categoryTable = table.Table[models.Category]{
	Columns: []table.Column[models.Category]{
		{Title: "ID", Cell: func(c models.Category) string { return strconv.FormatInt(c.ID, 10) }},
		{Title: "Name", Cell: func(c models.Category) string { return c.Name }},
		{Title: "Status", Cell: func(c models.Category) string { return c.Status }},
		{Title: "Permissions", Cell: func(c models.Category) string {
			if c.Usage == nil {
				return "-"
			}
			return strconv.Itoa(*c.Usage)
		}},
	},
	Actions: []table.Action[models.Category]{
		{Label: "edit"},
		{Label: "delete", Enabled: func(c models.Category) bool { return c.Usage == nil || *c.Usage == 0 }},
	},
}

func newCategoriesCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "categories",
		Short: "Manage permission categories",
	}
	cmd.AddCommand(newCategoriesListCommand(opts))
	cmd.AddCommand(newCategoriesCreateCommand(opts))
	cmd.AddCommand(newCategoriesUpdateCommand(opts))
	cmd.AddCommand(newCategoriesDeleteCommand(opts))
	return cmd
}

func newCategoriesListCommand(opts *RootOptions) *cobra.Command {
	flags := &listFlags{}
	var includeUsage bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List categories",
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := flags.state()
			if err != nil {
				return err
			}
			client, err := opts.newClient()
			if err != nil {
				return err
			}
			page, err := client.Categories().List(cmd.Context(), q, adminclient.CategoryListOptions{
				IncludeUsage: includeUsage,
			})
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), categoryTable.Render(page.Items, page.Pagination))
			return nil
		},
	}
	flags.register(cmd)
	cmd.Flags().BoolVar(&includeUsage, "usage", false, "show how many permissions each category holds")
	return cmd
}

func newCategoriesCreateCommand(opts *RootOptions) *cobra.Command {
	var name, description, status string
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a category",
		RunE: func(cmd *cobra.Command, args []string) error {
			in := adminclient.CategoryInput{Name: name, Status: status}
			if cmd.Flags().Changed("description") {
				in.Description = &description
			}
			client, err := opts.newClient()
			if err != nil {
				return err
			}
			cat, err := client.Categories().Create(cmd.Context(), in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created category %d (%s)\n", cat.ID, cat.Name)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "category name")
	cmd.Flags().StringVar(&description, "description", "", "description")
	cmd.Flags().StringVar(&status, "status", "", "status (active|inactive)")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func newCategoriesUpdateCommand(opts *RootOptions) *cobra.Command {
	var name, description, status string
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a category; only the given flags change",
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
			current, err := client.Categories().Get(cmd.Context(), id)
			if err != nil {
				return err
			}

			_, changed, err := submitEdit(current, func(d *models.Category) {
				if cmd.Flags().Changed("name") {
					d.Name = name
				}
				if cmd.Flags().Changed("description") {
					d.Description = &description
				}
				if cmd.Flags().Changed("status") {
					d.Status = status
				}
			}, func(d models.Category) (models.Category, error) {
				return client.Categories().Update(cmd.Context(), adminclient.CategoryPatch{
					ID:          id,
					Name:        &d.Name,
					Description: d.Description,
					Status:      &d.Status,
				})
			})
			if err != nil {
				return err
			}
			if !changed {
				fmt.Fprintf(cmd.OutOrStdout(), "Category %d unchanged\n", id)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated category %d\n", id)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "category name")
	cmd.Flags().StringVar(&description, "description", "", "description")
	cmd.Flags().StringVar(&status, "status", "", "status (active|inactive)")
	return cmd
}

func newCategoriesDeleteCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a category (refused while permissions still use it)",
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
			if err := client.Categories().Delete(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted category %d\n", id)
			return nil
		},
	}
}
