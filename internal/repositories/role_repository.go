package repositories

import (
	"database/sql"
	"errors"

	"adminconsole/internal/domain"
	"adminconsole/internal/domain/models"
	"adminconsole/internal/query"
)

// RoleRepository wraps DB access for roles and their permission sets.
type RoleRepository struct {
	DB *sql.DB
}

// ProtectedRoles cannot be deleted; the default accounts depend on them.
var ProtectedRoles = map[string]bool{
	"Admin": true,
	"User":  true,
	"Guest": true,
}

var roleSortColumns = map[string]string{
	"id":   "id",
	"name": "name",
}

// List returns one page of roles, each with its full permission set.
func (r RoleRepository) List(q query.State) ([]models.Role, query.Pagination, error) {
	where := ""
	args := []any{}
	if q.Search != "" {
		where = " WHERE name LIKE ?"
		args = append(args, likePattern(q.Search))
	}

	var total int64
	if err := r.DB.QueryRow(`SELECT COUNT(*) FROM roles`+where, args...).Scan(&total); err != nil {
		return nil, query.Pagination{}, err
	}

	pag := query.NewPagination(total, q.Page, q.PerPage)
	order := sortColumn(q.SortBy, roleSortColumns, "id")
	dir := sortDirection(q.SortOrder, "ASC")

	rows, err := r.DB.Query(`SELECT id, name, description FROM roles`+
		where+` ORDER BY `+order+` `+dir+` LIMIT ? OFFSET ?`,
		append(args, pag.PerPage, (pag.CurrentPage-1)*pag.PerPage)...)
	if err != nil {
		return nil, query.Pagination{}, err
	}
	defer rows.Close()

	roles := []models.Role{}
	for rows.Next() {
		var (
			role models.Role
			desc sql.NullString
		)
		if err := rows.Scan(&role.ID, &role.Name, &desc); err != nil {
			return nil, query.Pagination{}, err
		}
		role.Description = stringPtr(desc)
		roles = append(roles, role)
	}
	if err := rows.Err(); err != nil {
		return nil, query.Pagination{}, err
	}

	for i := range roles {
		perms, err := r.permissionsForRole(roles[i].ID)
		if err != nil {
			return nil, query.Pagination{}, err
		}
		roles[i].Permissions = perms
	}
	return roles, pag, nil
}

// Get loads one role with its permissions.
func (r RoleRepository) Get(id int64) (models.Role, error) {
	var (
		role models.Role
		desc sql.NullString
	)
	err := r.DB.QueryRow(`SELECT id, name, description FROM roles WHERE id = ?`, id).
		Scan(&role.ID, &role.Name, &desc)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Role{}, domain.NotFound("role")
	}
	if err != nil {
		return models.Role{}, err
	}
	role.Description = stringPtr(desc)
	role.Permissions, err = r.permissionsForRole(id)
	return role, err
}

func (r RoleRepository) permissionsForRole(roleID int64) ([]models.Permission, error) {
	rows, err := r.DB.Query(permissionSelect+`
JOIN role_permissions rp ON rp.permission_id = p.id
WHERE rp.role_id = ? ORDER BY p.name`, roleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	perms := []models.Permission{}
	for rows.Next() {
		p, err := scanPermission(rows.Scan)
		if err != nil {
			return nil, err
		}
		perms = append(perms, p)
	}
	return perms, rows.Err()
}

// verifyPermissionIDs fails when any id in the set does not exist.
func (r RoleRepository) verifyPermissionIDs(ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	var found int
	err := r.DB.QueryRow(`SELECT COUNT(*) FROM permissions WHERE id IN (`+placeholders(len(ids))+`)`,
		args...).Scan(&found)
	if err != nil {
		return err
	}
	if found != len(ids) {
		return domain.Invalid("permission_ids", "one or more permission ids are invalid")
	}
	return nil
}

// Create inserts a role and assigns the given permission set.
func (r RoleRepository) Create(name string, description *string, permissionIDs []int64) (models.Role, error) {
	var exists int
	if err := r.DB.QueryRow(`SELECT COUNT(*) FROM roles WHERE name = ?`, name).Scan(&exists); err != nil {
		return models.Role{}, err
	}
	if exists > 0 {
		return models.Role{}, domain.Conflict("role", "'"+name+"' already exists")
	}
	if err := r.verifyPermissionIDs(permissionIDs); err != nil {
		return models.Role{}, err
	}

	res, err := r.DB.Exec(`INSERT INTO roles (name, description) VALUES (?, ?)`,
		name, nullString(description))
	if err != nil {
		return models.Role{}, err
	}
	id, _ := res.LastInsertId()
	for _, pid := range permissionIDs {
		if _, err := r.DB.Exec(`INSERT INTO role_permissions (role_id, permission_id) VALUES (?, ?)`, id, pid); err != nil {
			return models.Role{}, err
		}
	}
	return r.Get(id)
}

// RolePatch carries PATCH body fields. A non-nil PermissionIDs replaces
// the role's entire permission set.
type RolePatch struct {
	Name          *string  `json:"name"`
	Description   *string  `json:"description"`
	PermissionIDs *[]int64 `json:"permission_ids"`
}

// Update applies a key-presence patch and returns the stored role.
func (r RoleRepository) Update(id int64, patch RolePatch) (models.Role, error) {
	role, err := r.Get(id)
	if err != nil {
		return models.Role{}, err
	}

	if patch.Name != nil && *patch.Name != role.Name {
		var exists int
		if err := r.DB.QueryRow(`SELECT COUNT(*) FROM roles WHERE name = ? AND id <> ?`,
			*patch.Name, id).Scan(&exists); err != nil {
			return models.Role{}, err
		}
		if exists > 0 {
			return models.Role{}, domain.Conflict("role", "'"+*patch.Name+"' already exists")
		}
		role.Name = *patch.Name
	}
	if patch.Description != nil {
		role.Description = patch.Description
	}

	_, err = r.DB.Exec(`UPDATE roles SET name = ?, description = ? WHERE id = ?`,
		role.Name, nullString(role.Description), id)
	if err != nil {
		return models.Role{}, err
	}

	if patch.PermissionIDs != nil {
		if err := r.verifyPermissionIDs(*patch.PermissionIDs); err != nil {
			return models.Role{}, err
		}
		if _, err := r.DB.Exec(`DELETE FROM role_permissions WHERE role_id = ?`, id); err != nil {
			return models.Role{}, err
		}
		for _, pid := range *patch.PermissionIDs {
			if _, err := r.DB.Exec(`INSERT INTO role_permissions (role_id, permission_id) VALUES (?, ?)`, id, pid); err != nil {
				return models.Role{}, err
			}
		}
	}
	return r.Get(id)
}

// UserCount reports how many users hold the role.
func (r RoleRepository) UserCount(id int64) (int, error) {
	var n int
	err := r.DB.QueryRow(`SELECT COUNT(*) FROM user_roles WHERE role_id = ?`, id).Scan(&n)
	return n, err
}

// Delete removes a role. Protected roles and roles still assigned to
// users are refused.
func (r RoleRepository) Delete(id int64) error {
	role, err := r.Get(id)
	if err != nil {
		return err
	}
	if ProtectedRoles[role.Name] {
		return domain.ForbiddenError{Msg: "role '" + role.Name + "' cannot be deleted"}
	}
	n, err := r.UserCount(id)
	if err != nil {
		return err
	}
	if n > 0 {
		return domain.Conflict("role", "'"+role.Name+"' is currently assigned to users")
	}

	if _, err := r.DB.Exec(`DELETE FROM role_permissions WHERE role_id = ?`, id); err != nil {
		return err
	}
	_, err = r.DB.Exec(`DELETE FROM roles WHERE id = ?`, id)
	return err
}

// FindByName loads a role by its unique name.
func (r RoleRepository) FindByName(name string) (models.Role, error) {
	var id int64
	err := r.DB.QueryRow(`SELECT id FROM roles WHERE name = ?`, name).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Role{}, domain.NotFound("role")
	}
	if err != nil {
		return models.Role{}, err
	}
	return r.Get(id)
}
