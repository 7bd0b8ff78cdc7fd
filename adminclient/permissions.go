package adminclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"adminconsole/internal/domain/models"
	"adminconsole/internal/query"
)

const permissionsEndpoint = "/app/permissions"

// PermissionsService manages the permission catalog.
type PermissionsService struct{ c *Client }

func (c *Client) Permissions() PermissionsService { return PermissionsService{c: c} }

// PermissionListOptions tunes a permission listing.
type PermissionListOptions struct {
	// IncludeUsage attaches a role count to each permission.
	IncludeUsage bool
	// GetAll disables pagination and returns every row, for pickers.
	GetAll bool
}

func (s PermissionsService) List(ctx context.Context, q query.State, opts PermissionListOptions) (Page[models.Permission], error) {
	if opts.IncludeUsage {
		q = withFlag(q, "include_usage")
	}
	if opts.GetAll {
		q = withFlag(q, "get_all")
	}
	res, err := Fetch[Page[models.Permission]](ctx, s.c, permissionsEndpoint, q, FetchOptions[Page[models.Permission]]{})
	return res.Data, err
}

func (s PermissionsService) Get(ctx context.Context, id int64) (models.Permission, error) {
	var out models.Permission
	err := s.c.doJSON(ctx, http.MethodGet, fmt.Sprintf("%s/%d", permissionsEndpoint, id), "", nil, &out, true)
	return out, err
}

// PermissionInput creates a permission.
type PermissionInput struct {
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	CategoryID  *int64  `json:"category_id,omitempty"`
	Status      string  `json:"status,omitempty"`
}

func (s PermissionsService) Create(ctx context.Context, in PermissionInput) (models.Permission, error) {
	return Mutation[PermissionInput, models.Permission]{
		Client:         s.c,
		Method:         http.MethodPost,
		Path:           func(PermissionInput) string { return permissionsEndpoint },
		InvalidateKeys: []string{permissionsEndpoint, categoriesEndpoint},
	}.Do(ctx, in)
}

// PermissionPatch updates only the fields present. Setting ClearCategory
// sends an explicit null to detach the permission from its category.
type PermissionPatch struct {
	ID            int64   `json:"-"`
	Name          *string `json:"name,omitempty"`
	Description   *string `json:"description,omitempty"`
	Status        *string `json:"status,omitempty"`
	CategoryID    *int64  `json:"-"`
	ClearCategory bool    `json:"-"`
}

// MarshalJSON emits category_id only when set or explicitly cleared, so
// the server can tell "leave alone" apart from "detach".
func (p PermissionPatch) MarshalJSON() ([]byte, error) {
	body := map[string]any{}
	if p.Name != nil {
		body["name"] = *p.Name
	}
	if p.Description != nil {
		body["description"] = *p.Description
	}
	if p.Status != nil {
		body["status"] = *p.Status
	}
	if p.ClearCategory {
		body["category_id"] = nil
	} else if p.CategoryID != nil {
		body["category_id"] = *p.CategoryID
	}
	return json.Marshal(body)
}

func (s PermissionsService) Update(ctx context.Context, patch PermissionPatch) (models.Permission, error) {
	return Mutation[PermissionPatch, models.Permission]{
		Client:         s.c,
		Method:         http.MethodPatch,
		Path:           func(p PermissionPatch) string { return fmt.Sprintf("%s/%d", permissionsEndpoint, p.ID) },
		InvalidateKeys: []string{permissionsEndpoint, rolesEndpoint, categoriesEndpoint},
	}.Do(ctx, patch)
}

func (s PermissionsService) Delete(ctx context.Context, id int64) error {
	_, err := Mutation[struct{}, struct{}]{
		Client:         s.c,
		Method:         http.MethodDelete,
		Path:           func(struct{}) string { return fmt.Sprintf("%s/%d", permissionsEndpoint, id) },
		InvalidateKeys: []string{permissionsEndpoint, rolesEndpoint, categoriesEndpoint},
	}.Do(ctx, struct{}{})
	return err
}
