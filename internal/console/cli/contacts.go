package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"adminconsole/adminclient"
	"adminconsole/internal/console/table"
	"adminconsole/internal/domain/models"
)

var contactTable = table.Table[models.Contact]{
	Columns: []table.Column[models.Contact]{
		{Title: "ID", Cell: func(c models.Contact) string { return strconv.FormatInt(c.ID, 10) }},
		{Title: "First Name", Cell: func(c models.Contact) string { return c.FirstName }},
		{Title: "Last Name", Cell: func(c models.Contact) string { return c.LastName }},
		{Title: "Email", Cell: func(c models.Contact) string { return c.Email }},
	},
	Actions: []table.Action[models.Contact]{
		{Label: "edit"},
		{Label: "delete"},
	},
}

func newContactsCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "contacts",
		Short: "Manage your contacts",
	}
	cmd.AddCommand(newContactsListCommand(opts))
	cmd.AddCommand(newContactsCreateCommand(opts))
	cmd.AddCommand(newContactsUpdateCommand(opts))
	cmd.AddCommand(newContactsDeleteCommand(opts))
	return cmd
}

func newContactsListCommand(opts *RootOptions) *cobra.Command {
	flags := &listFlags{}
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List contacts",
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := flags.state()
			if err != nil {
				return err
			}
			client, err := opts.newClient()
			if err != nil {
				return err
			}
			page, err := client.Contacts().List(cmd.Context(), q)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), contactTable.Render(page.Items, page.Pagination))
			return nil
		},
	}
	flags.register(cmd)
	return cmd
}

func newContactsCreateCommand(opts *RootOptions) *cobra.Command {
	var in adminclient.ContactInput
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a contact",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := opts.newClient()
			if err != nil {
				return err
			}
			contact, err := client.Contacts().Create(cmd.Context(), in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created contact %d (%s %s)\n", contact.ID, contact.FirstName, contact.LastName)
			return nil
		},
	}
	cmd.Flags().StringVar(&in.FirstName, "first-name", "", "first name")
	cmd.Flags().StringVar(&in.LastName, "last-name", "", "last name")
	cmd.Flags().StringVar(&in.Email, "email", "", "email address")
	_ = cmd.MarkFlagRequired("first-name")
	_ = cmd.MarkFlagRequired("last-name")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func newContactsUpdateCommand(opts *RootOptions) *cobra.Command {
	var firstName, lastName, email string
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a contact; only the given flags change",
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
			current, err := client.Contacts().Get(cmd.Context(), id)
			if err != nil {
				return err
			}

			_, changed, err := submitEdit(current, func(d *models.Contact) {
				if cmd.Flags().Changed("first-name") {
					d.FirstName = firstName
				}
				if cmd.Flags().Changed("last-name") {
					d.LastName = lastName
				}
				if cmd.Flags().Changed("email") {
					d.Email = email
				}
			}, func(d models.Contact) (models.Contact, error) {
				return client.Contacts().Update(cmd.Context(), adminclient.ContactPatch{
					ID:        id,
					FirstName: &d.FirstName,
					LastName:  &d.LastName,
					Email:     &d.Email,
				})
			})
			if err != nil {
				return err
			}
			if !changed {
				fmt.Fprintf(cmd.OutOrStdout(), "Contact %d unchanged\n", id)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated contact %d\n", id)
			return nil
		},
	}
	cmd.Flags().StringVar(&firstName, "first-name", "", "first name")
	cmd.Flags().StringVar(&lastName, "last-name", "", "last name")
	cmd.Flags().StringVar(&email, "email", "", "email address")
	return cmd
}

func newContactsDeleteCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a contact",
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
			if err := client.Contacts().Delete(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted contact %d\n", id)
			return nil
		},
	}
}
