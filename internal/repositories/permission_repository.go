package repositories

import (
	"database/sql"
	"errors"

	"adminconsole/internal/domain"
	"adminconsole/internal/domain/models"
	"adminconsole/internal/query"
)

// PermissionRepository wraps DB access for permissions. Every read embeds
// the referenced category so callers can group by category name.
type PermissionRepository struct {
	DB *sql.DB
}

// PermissionListOptions control payload enrichment and paging behavior.
type PermissionListOptions struct {
	IncludeUsage bool
	// GetAll disables paging; used by the role editor to offer the full
	// permission catalog in one response.
	GetAll bool
}

var permissionSortColumns = map[string]string{
	"id":     "p.id",
	"name":   "p.name",
	"status": "p.status",
}

const permissionSelect = `SELECT p.id, p.name, p.description, p.status, c.id, c.name
FROM permissions p
LEFT JOIN categories c ON c.id = p.category_id`

func scanPermission(scan func(dest ...any) error) (models.Permission, error) {
	var (
		p      models.Permission
		desc   sql.NullString
		catID  sql.NullInt64
		catNam sql.NullString
	)
	if err := scan(&p.ID, &p.Name, &desc, &p.Status, &catID, &catNam); err != nil {
		return models.Permission{}, err
	}
	p.Description = stringPtr(desc)
	if catID.Valid {
		p.Category = &models.CategoryRef{ID: catID.Int64, Name: catNam.String}
	}
	return p, nil
}

// List returns permissions filtered by status, category name, and search
// term, paginated unless GetAll is set.
func (r PermissionRepository) List(q query.State, opts PermissionListOptions) ([]models.Permission, query.Pagination, error) {
	where := ""
	args := []any{}
	if status := q.Filter("status"); status != "" {
		where += " AND p.status = ?"
		args = append(args, status)
	}
	if cat := q.Filter("category"); cat != "" {
		where += " AND c.name = ?"
		args = append(args, cat)
	}
	if q.Search != "" {
		where += " AND p.name LIKE ?"
		args = append(args, likePattern(q.Search))
	}
	if where != "" {
		where = " WHERE" + where[4:]
	}

	var total int64
	if err := r.DB.QueryRow(`SELECT COUNT(*) FROM permissions p LEFT JOIN categories c ON c.id = p.category_id`+where,
		args...).Scan(&total); err != nil {
		return nil, query.Pagination{}, err
	}

	order := sortColumn(q.SortBy, permissionSortColumns, "p.id")
	dir := sortDirection(q.SortOrder, "ASC")

	var (
		pag  query.Pagination
		rows *sql.Rows
		err  error
	)
	if opts.GetAll {
		pag = query.NewPagination(total, 1, int(max64(total, 1)))
		rows, err = r.DB.Query(permissionSelect+where+` ORDER BY `+order+` `+dir, args...)
	} else {
		pag = query.NewPagination(total, q.Page, q.PerPage)
		rows, err = r.DB.Query(permissionSelect+where+` ORDER BY `+order+` `+dir+` LIMIT ? OFFSET ?`,
			append(args, pag.PerPage, (pag.CurrentPage-1)*pag.PerPage)...)
	}
	if err != nil {
		return nil, query.Pagination{}, err
	}
	defer rows.Close()

	permissions := []models.Permission{}
	for rows.Next() {
		p, err := scanPermission(rows.Scan)
		if err != nil {
			return nil, query.Pagination{}, err
		}
		permissions = append(permissions, p)
	}
	if err := rows.Err(); err != nil {
		return nil, query.Pagination{}, err
	}

	if opts.IncludeUsage {
		for i := range permissions {
			n, err := r.RoleCount(permissions[i].ID)
			if err != nil {
				return nil, query.Pagination{}, err
			}
			permissions[i].Usage = &n
		}
	}
	return permissions, pag, nil
}

// Get loads one permission by id.
func (r PermissionRepository) Get(id int64, includeUsage bool) (models.Permission, error) {
	p, err := scanPermission(r.DB.QueryRow(permissionSelect+` WHERE p.id = ?`, id).Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Permission{}, domain.NotFound("permission")
	}
	if err != nil {
		return models.Permission{}, err
	}
	if includeUsage {
		n, err := r.RoleCount(id)
		if err != nil {
			return models.Permission{}, err
		}
		p.Usage = &n
	}
	return p, nil
}

// RoleCount reports how many roles hold the permission.
func (r PermissionRepository) RoleCount(id int64) (int, error) {
	var n int
	err := r.DB.QueryRow(`SELECT COUNT(*) FROM role_permissions WHERE permission_id = ?`, id).Scan(&n)
	return n, err
}

// Create inserts a permission. Names are unique; a category id, when
// given, must exist.
func (r PermissionRepository) Create(name string, description *string, categoryID *int64, status string) (models.Permission, error) {
	var exists int
	if err := r.DB.QueryRow(`SELECT COUNT(*) FROM permissions WHERE name = ?`, name).Scan(&exists); err != nil {
		return models.Permission{}, err
	}
	if exists > 0 {
		return models.Permission{}, domain.Conflict("permission", "'"+name+"' already exists")
	}
	if categoryID != nil {
		var found int
		if err := r.DB.QueryRow(`SELECT COUNT(*) FROM categories WHERE id = ?`, *categoryID).Scan(&found); err != nil {
			return models.Permission{}, err
		}
		if found == 0 {
			return models.Permission{}, domain.Invalid("category_id", "no such category")
		}
	}

	res, err := r.DB.Exec(`INSERT INTO permissions (name, description, category_id, status) VALUES (?, ?, ?, ?)`,
		name, nullString(description), nullInt64(categoryID), status)
	if err != nil {
		return models.Permission{}, err
	}
	id, _ := res.LastInsertId()
	return r.Get(id, false)
}

// PermissionPatch carries PATCH body fields; nil keys are left untouched.
// CategoryID present-but-null clears the category.
type PermissionPatch struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
	CategoryID  *int64  `json:"category_id"`
	// CategorySet marks category_id as present in the raw body.
	CategorySet bool `json:"-"`
}

// Update applies a key-presence patch and returns the stored row.
func (r PermissionRepository) Update(id int64, patch PermissionPatch) (models.Permission, error) {
	p, err := r.Get(id, false)
	if err != nil {
		return models.Permission{}, err
	}

	if patch.Name != nil && *patch.Name != p.Name {
		var exists int
		if err := r.DB.QueryRow(`SELECT COUNT(*) FROM permissions WHERE name = ? AND id <> ?`,
			*patch.Name, id).Scan(&exists); err != nil {
			return models.Permission{}, err
		}
		if exists > 0 {
			return models.Permission{}, domain.Conflict("permission", "'"+*patch.Name+"' already exists")
		}
		p.Name = *patch.Name
	}
	if patch.Description != nil {
		p.Description = patch.Description
	}
	if patch.Status != nil {
		p.Status = *patch.Status
	}

	categoryID := nullInt64(nil)
	if p.Category != nil {
		categoryID = sql.NullInt64{Int64: p.Category.ID, Valid: true}
	}
	if patch.CategorySet {
		categoryID = nullInt64(patch.CategoryID)
		if patch.CategoryID != nil {
			var found int
			if err := r.DB.QueryRow(`SELECT COUNT(*) FROM categories WHERE id = ?`, *patch.CategoryID).Scan(&found); err != nil {
				return models.Permission{}, err
			}
			if found == 0 {
				return models.Permission{}, domain.Invalid("category_id", "no such category")
			}
		}
	}

	_, err = r.DB.Exec(`UPDATE permissions SET name = ?, description = ?, status = ?, category_id = ? WHERE id = ?`,
		p.Name, nullString(p.Description), p.Status, categoryID, id)
	if err != nil {
		return models.Permission{}, err
	}
	return r.Get(id, false)
}

// Delete removes a permission unless roles still hold it.
func (r PermissionRepository) Delete(id int64) error {
	p, err := r.Get(id, false)
	if err != nil {
		return err
	}
	n, err := r.RoleCount(id)
	if err != nil {
		return err
	}
	if n > 0 {
		return domain.Conflict("permission", "'"+p.Name+"' is assigned to roles")
	}
	_, err = r.DB.Exec(`DELETE FROM permissions WHERE id = ?`, id)
	return err
}

func max64(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}
