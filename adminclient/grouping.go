package adminclient

import (
	"sort"

	"adminconsole/internal/domain/models"
)

// UncategorizedGroup is the bucket for permissions without a category.
const UncategorizedGroup = "Uncategorized"

// PermissionGroup is one category's worth of permissions.
type PermissionGroup struct {
	Category    string
	Permissions []models.Permission
}

// GroupPermissionsByCategory buckets permissions by category name,
// placing uncategorized ones under UncategorizedGroup. Groups come back
// sorted alphabetically, as do the permissions within each group. The
// result depends only on the input set, never on its order.
func GroupPermissionsByCategory(perms []models.Permission) []PermissionGroup {
	buckets := map[string][]models.Permission{}
	for _, p := range perms {
		name := UncategorizedGroup
		if p.Category != nil && p.Category.Name != "" {
			name = p.Category.Name
		}
		buckets[name] = append(buckets[name], p)
	}

	names := make([]string, 0, len(buckets))
	for name := range buckets {
		names = append(names, name)
	}
	sort.Strings(names)

	groups := make([]PermissionGroup, 0, len(names))
	for _, name := range names {
		members := buckets[name]
		sort.Slice(members, func(i, j int) bool { return members[i].Name < members[j].Name })
		groups = append(groups, PermissionGroup{Category: name, Permissions: members})
	}
	return groups
}
