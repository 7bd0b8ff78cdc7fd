package adminclient

import (
	"context"
	"fmt"
	"net/http"

	"adminconsole/internal/domain/models"
	"adminconsole/internal/query"
)

const usersEndpoint = "/app/users"

// UsersService reads accounts and manages their role assignments.
type UsersService struct{ c *Client }

func (c *Client) Users() UsersService { return UsersService{c: c} }

func (s UsersService) List(ctx context.Context, q query.State) (Page[models.User], error) {
	res, err := Fetch[Page[models.User]](ctx, s.c, usersEndpoint, q, FetchOptions[Page[models.User]]{})
	return res.Data, err
}

func (s UsersService) Get(ctx context.Context, id int64) (models.User, error) {
	var out models.User
	err := s.c.doJSON(ctx, http.MethodGet, fmt.Sprintf("%s/%d", usersEndpoint, id), "", nil, &out, true)
	return out, err
}

// RoleAssignment replaces a user's role set.
type RoleAssignment struct {
	UserID  int64   `json:"-"`
	RoleIDs []int64 `json:"role_ids"`
}

// AssignRoles replaces the user's roles. User and role caches are both
// invalidated since role usage counts change.
func (s UsersService) AssignRoles(ctx context.Context, in RoleAssignment) (models.User, error) {
	return Mutation[RoleAssignment, models.User]{
		Client:         s.c,
		Method:         http.MethodPatch,
		Path:           func(a RoleAssignment) string { return fmt.Sprintf("%s/%d", usersEndpoint, a.UserID) },
		InvalidateKeys: []string{usersEndpoint, rolesEndpoint},
	}.Do(ctx, in)
}
