package repositories

import (
	"database/sql"
	"errors"

	"adminconsole/internal/domain"
	"adminconsole/internal/domain/models"
	"adminconsole/internal/query"
)

// CategoryRepository wraps DB access for permission categories.
type CategoryRepository struct {
	DB *sql.DB
}

// CategoryListOptions control the optional payload enrichments.
type CategoryListOptions struct {
	IncludeUsage               bool
	IncludeAffectedPermissions bool
}

var categorySortColumns = map[string]string{
	"id":     "id",
	"name":   "name",
	"status": "status",
}

// List returns one page of categories. The status filter and search term
// come from the caller's query state.
func (r CategoryRepository) List(q query.State, opts CategoryListOptions) ([]models.Category, query.Pagination, error) {
	where := ""
	args := []any{}
	if status := q.Filter("status"); status != "" {
		where += " AND status = ?"
		args = append(args, status)
	}
	if q.Search != "" {
		where += " AND name LIKE ?"
		args = append(args, likePattern(q.Search))
	}
	if where != "" {
		where = " WHERE" + where[4:]
	}

	var total int64
	if err := r.DB.QueryRow(`SELECT COUNT(*) FROM categories`+where, args...).Scan(&total); err != nil {
		return nil, query.Pagination{}, err
	}

	pag := query.NewPagination(total, q.Page, q.PerPage)
	order := sortColumn(q.SortBy, categorySortColumns, "id")
	dir := sortDirection(q.SortOrder, "ASC")

	rows, err := r.DB.Query(`SELECT id, name, description, status FROM categories`+
		where+` ORDER BY `+order+` `+dir+` LIMIT ? OFFSET ?`,
		append(args, pag.PerPage, (pag.CurrentPage-1)*pag.PerPage)...)
	if err != nil {
		return nil, query.Pagination{}, err
	}
	defer rows.Close()

	categories := []models.Category{}
	for rows.Next() {
		var (
			c    models.Category
			desc sql.NullString
		)
		if err := rows.Scan(&c.ID, &c.Name, &desc, &c.Status); err != nil {
			return nil, query.Pagination{}, err
		}
		c.Description = stringPtr(desc)
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, query.Pagination{}, err
	}

	for i := range categories {
		if err := r.enrich(&categories[i], opts); err != nil {
			return nil, query.Pagination{}, err
		}
	}
	return categories, pag, nil
}

// Get loads one category by id.
func (r CategoryRepository) Get(id int64, opts CategoryListOptions) (models.Category, error) {
	var (
		c    models.Category
		desc sql.NullString
	)
	err := r.DB.QueryRow(`SELECT id, name, description, status FROM categories WHERE id = ?`, id).
		Scan(&c.ID, &c.Name, &desc, &c.Status)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Category{}, domain.NotFound("category")
	}
	if err != nil {
		return models.Category{}, err
	}
	c.Description = stringPtr(desc)
	if err := r.enrich(&c, opts); err != nil {
		return models.Category{}, err
	}
	return c, nil
}

func (r CategoryRepository) enrich(c *models.Category, opts CategoryListOptions) error {
	if opts.IncludeUsage || opts.IncludeAffectedPermissions {
		n, err := r.PermissionCount(c.ID)
		if err != nil {
			return err
		}
		c.Usage = &n
	}
	if opts.IncludeAffectedPermissions {
		rows, err := r.DB.Query(`SELECT id, name, status FROM permissions WHERE category_id = ? ORDER BY name`, c.ID)
		if err != nil {
			return err
		}
		defer rows.Close()
		for rows.Next() {
			var p models.PermissionRef
			if err := rows.Scan(&p.ID, &p.Name, &p.Status); err != nil {
				return err
			}
			c.AffectedPermissions = append(c.AffectedPermissions, p)
		}
		return rows.Err()
	}
	return nil
}

// PermissionCount reports how many permissions reference the category.
func (r CategoryRepository) PermissionCount(id int64) (int, error) {
	var n int
	err := r.DB.QueryRow(`SELECT COUNT(*) FROM permissions WHERE category_id = ?`, id).Scan(&n)
	return n, err
}

// Create inserts a category. Names are unique.
func (r CategoryRepository) Create(name string, description *string, status string) (models.Category, error) {
	var exists int
	if err := r.DB.QueryRow(`SELECT COUNT(*) FROM categories WHERE name = ?`, name).Scan(&exists); err != nil {
		return models.Category{}, err
	}
	if exists > 0 {
		return models.Category{}, domain.Conflict("category", "'"+name+"' already exists")
	}

	res, err := r.DB.Exec(`INSERT INTO categories (name, description, status) VALUES (?, ?, ?)`,
		name, nullString(description), status)
	if err != nil {
		return models.Category{}, err
	}
	id, _ := res.LastInsertId()
	return models.Category{ID: id, Name: name, Description: description, Status: status}, nil
}

// CategoryPatch carries PATCH body fields; nil keys are left untouched.
type CategoryPatch struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
}

// Update applies a key-presence patch and returns the stored row.
func (r CategoryRepository) Update(id int64, patch CategoryPatch) (models.Category, error) {
	c, err := r.Get(id, CategoryListOptions{})
	if err != nil {
		return models.Category{}, err
	}

	if patch.Name != nil && *patch.Name != c.Name {
		var exists int
		if err := r.DB.QueryRow(`SELECT COUNT(*) FROM categories WHERE name = ? AND id <> ?`,
			*patch.Name, id).Scan(&exists); err != nil {
			return models.Category{}, err
		}
		if exists > 0 {
			return models.Category{}, domain.Conflict("category", "'"+*patch.Name+"' already exists")
		}
		c.Name = *patch.Name
	}
	if patch.Description != nil {
		c.Description = patch.Description
	}
	if patch.Status != nil {
		c.Status = *patch.Status
	}

	_, err = r.DB.Exec(`UPDATE categories SET name = ?, description = ?, status = ? WHERE id = ?`,
		c.Name, nullString(c.Description), c.Status, id)
	if err != nil {
		return models.Category{}, err
	}
	return c, nil
}

// Delete removes a category unless permissions still reference it.
func (r CategoryRepository) Delete(id int64) error {
	c, err := r.Get(id, CategoryListOptions{})
	if err != nil {
		return err
	}
	n, err := r.PermissionCount(id)
	if err != nil {
		return err
	}
	if n > 0 {
		return domain.Conflict("category",
			"'"+c.Name+"' is still associated with permissions; reassign or delete them first")
	}
	_, err = r.DB.Exec(`DELETE FROM categories WHERE id = ?`, id)
	return err
}
