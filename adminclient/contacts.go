package adminclient

import (
	"context"
	"fmt"
	"net/http"

	"adminconsole/internal/domain/models"
	"adminconsole/internal/query"
)

const contactsEndpoint = "/app/contacts"

// ContactsService reads and writes the caller's contacts.
type ContactsService struct{ c *Client }

func (c *Client) Contacts() ContactsService { return ContactsService{c: c} }

func (s ContactsService) List(ctx context.Context, q query.State) (Page[models.Contact], error) {
	res, err := Fetch[Page[models.Contact]](ctx, s.c, contactsEndpoint, q, FetchOptions[Page[models.Contact]]{})
	return res.Data, err
}

func (s ContactsService) Get(ctx context.Context, id int64) (models.Contact, error) {
	var out models.Contact
	err := s.c.doJSON(ctx, http.MethodGet, fmt.Sprintf("%s/%d", contactsEndpoint, id), "", nil, &out, true)
	return out, err
}

// ContactInput is the create/update payload.
type ContactInput struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

func (s ContactsService) Create(ctx context.Context, in ContactInput) (models.Contact, error) {
	return Mutation[ContactInput, models.Contact]{
		Client:         s.c,
		Method:         http.MethodPost,
		Path:           func(ContactInput) string { return contactsEndpoint },
		InvalidateKeys: []string{contactsEndpoint},
	}.Do(ctx, in)
}

// ContactPatch updates only the fields whose pointers are non-nil.
type ContactPatch struct {
	ID        int64   `json:"-"`
	FirstName *string `json:"firstName,omitempty"`
	LastName  *string `json:"lastName,omitempty"`
	Email     *string `json:"email,omitempty"`
}

func (s ContactsService) Update(ctx context.Context, patch ContactPatch) (models.Contact, error) {
	return Mutation[ContactPatch, models.Contact]{
		Client:         s.c,
		Method:         http.MethodPatch,
		Path:           func(p ContactPatch) string { return fmt.Sprintf("%s/%d", contactsEndpoint, p.ID) },
		InvalidateKeys: []string{contactsEndpoint},
	}.Do(ctx, patch)
}

func (s ContactsService) Delete(ctx context.Context, id int64) error {
	_, err := Mutation[struct{}, struct{}]{
		Client:         s.c,
		Method:         http.MethodDelete,
		Path:           func(struct{}) string { return fmt.Sprintf("%s/%d", contactsEndpoint, id) },
		InvalidateKeys: []string{contactsEndpoint},
	}.Do(ctx, struct{}{})
	return err
}
