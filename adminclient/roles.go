package adminclient

import (
	"context"
	"fmt"
	"net/http"

	"adminconsole/internal/domain/models"
	"adminconsole/internal/query"
)

const rolesEndpoint = "/app/roles"

// RolesService manages roles and their permission sets.
type RolesService struct{ c *Client }

func (c *Client) Roles() RolesService { return RolesService{c: c} }

func (s RolesService) List(ctx context.Context, q query.State) (Page[models.Role], error) {
	res, err := Fetch[Page[models.Role]](ctx, s.c, rolesEndpoint, q, FetchOptions[Page[models.Role]]{})
	return res.Data, err
}

func (s RolesService) Get(ctx context.Context, id int64) (models.Role, error) {
	var out models.Role
	err := s.c.doJSON(ctx, http.MethodGet, fmt.Sprintf("%s/%d", rolesEndpoint, id), "", nil, &out, true)
	return out, err
}

// RoleInput creates a role.
type RoleInput struct {
	Name          string  `json:"name"`
	Description   *string `json:"description,omitempty"`
	PermissionIDs []int64 `json:"permission_ids"`
}

func (s RolesService) Create(ctx context.Context, in RoleInput) (models.Role, error) {
	return Mutation[RoleInput, models.Role]{
		Client:         s.c,
		Method:         http.MethodPost,
		Path:           func(RoleInput) string { return rolesEndpoint },
		InvalidateKeys: []string{rolesEndpoint},
	}.Do(ctx, in)
}

// RolePatch updates only the fields present. A non-nil PermissionIDs
// replaces the whole permission set.
type RolePatch struct {
	ID            int64    `json:"-"`
	Name          *string  `json:"name,omitempty"`
	Description   *string  `json:"description,omitempty"`
	PermissionIDs *[]int64 `json:"permission_ids,omitempty"`
}

// Update invalidates permission caches too: usage counts shown next to
// permissions change when a role's set is edited.
func (s RolesService) Update(ctx context.Context, patch RolePatch) (models.Role, error) {
	return Mutation[RolePatch, models.Role]{
		Client:         s.c,
		Method:         http.MethodPatch,
		Path:           func(p RolePatch) string { return fmt.Sprintf("%s/%d", rolesEndpoint, p.ID) },
		InvalidateKeys: []string{rolesEndpoint, permissionsEndpoint},
	}.Do(ctx, patch)
}

func (s RolesService) Delete(ctx context.Context, id int64) error {
	_, err := Mutation[struct{}, struct{}]{
		Client:         s.c,
		Method:         http.MethodDelete,
		Path:           func(struct{}) string { return fmt.Sprintf("%s/%d", rolesEndpoint, id) },
		InvalidateKeys: []string{rolesEndpoint, permissionsEndpoint, usersEndpoint},
	}.Do(ctx, struct{}{})
	return err
}
