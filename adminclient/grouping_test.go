package adminclient

import (
	"testing"

	"adminconsole/internal/domain/models"
)

func TestGroupPermissionsByCategory(t *testing.T) {
	perms := []models.Permission{
		{ID: 1, Name: "b.perm", Category: &models.CategoryRef{ID: 9, Name: "X"}},
		{ID: 2, Name: "a.perm", Category: &models.CategoryRef{ID: 9, Name: "X"}},
		{ID: 3, Name: "z.perm"},
	}

	groups := GroupPermissionsByCategory(perms)
	if len(groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(groups))
	}
	if groups[0].Category != UncategorizedGroup || groups[1].Category != "X" {
		t.Fatalf("groups should sort alphabetically: %q, %q", groups[0].Category, groups[1].Category)
	}
	if len(groups[0].Permissions) != 1 || groups[0].Permissions[0].Name != "z.perm" {
		t.Fatalf("nil category should land in %s: %+v", UncategorizedGroup, groups[0].Permissions)
	}
	if groups[1].Permissions[0].Name != "a.perm" || groups[1].Permissions[1].Name != "b.perm" {
		t.Fatalf("members should sort alphabetically within the group: %+v", groups[1].Permissions)
	}
}

func TestGroupPermissionsByCategoryEmpty(t *testing.T) {
	if groups := GroupPermissionsByCategory(nil); len(groups) != 0 {
		t.Fatalf("expected no groups, got %+v", groups)
	}
}
