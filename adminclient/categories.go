package adminclient

import (
	"context"
	"fmt"
	"net/http"

	"adminconsole/internal/domain/models"
	"adminconsole/internal/query"
)

const categoriesEndpoint = "/app/categories"

// CategoriesService manages permission categories.
type CategoriesService struct{ c *Client }

func (c *Client) Categories() CategoriesService { return CategoriesService{c: c} }

// CategoryListOptions tunes a category listing.
type CategoryListOptions struct {
	// IncludeUsage attaches a permission count to each category.
	IncludeUsage bool
	// IncludeAffectedPermissions attaches the permissions that would be
	// orphaned by deleting the category.
	IncludeAffectedPermissions bool
}

func (s CategoriesService) List(ctx context.Context, q query.State, opts CategoryListOptions) (Page[models.Category], error) {
	if opts.IncludeUsage {
		q = withFlag(q, "include_usage")
	}
	if opts.IncludeAffectedPermissions {
		q = withFlag(q, "include_affected_permissions")
	}
	res, err := Fetch[Page[models.Category]](ctx, s.c, categoriesEndpoint, q, FetchOptions[Page[models.Category]]{})
	return res.Data, err
}

func (s CategoriesService) Get(ctx context.Context, id int64) (models.Category, error) {
	var out models.Category
	err := s.c.doJSON(ctx, http.MethodGet, fmt.Sprintf("%s/%d", categoriesEndpoint, id), "", nil, &out, true)
	return out, err
}

// CategoryInput creates a category.
type CategoryInput struct {
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	Status      string  `json:"status,omitempty"`
}

func (s CategoriesService) Create(ctx context.Context, in CategoryInput) (models.Category, error) {
	return Mutation[CategoryInput, models.Category]{
		Client:         s.c,
		Method:         http.MethodPost,
		Path:           func(CategoryInput) string { return categoriesEndpoint },
		InvalidateKeys: []string{categoriesEndpoint},
	}.Do(ctx, in)
}

// CategoryPatch updates only the fields present.
type CategoryPatch struct {
	ID          int64   `json:"-"`
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Status      *string `json:"status,omitempty"`
}

// Update invalidates permissions too: each permission embeds its
// category name.
func (s CategoriesService) Update(ctx context.Context, patch CategoryPatch) (models.Category, error) {
	return Mutation[CategoryPatch, models.Category]{
		Client:         s.c,
		Method:         http.MethodPatch,
		Path:           func(p CategoryPatch) string { return fmt.Sprintf("%s/%d", categoriesEndpoint, p.ID) },
		InvalidateKeys: []string{categoriesEndpoint, permissionsEndpoint},
	}.Do(ctx, patch)
}

func (s CategoriesService) Delete(ctx context.Context, id int64) error {
	_, err := Mutation[struct{}, struct{}]{
		Client:         s.c,
		Method:         http.MethodDelete,
		Path:           func(struct{}) string { return fmt.Sprintf("%s/%d", categoriesEndpoint, id) },
		InvalidateKeys: []string{categoriesEndpoint, permissionsEndpoint},
	}.Do(ctx, struct{}{})
	return err
}
