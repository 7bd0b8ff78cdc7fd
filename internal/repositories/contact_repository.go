package repositories

import (
	"database/sql"
	"errors"

	"adminconsole/internal/domain"
	"adminconsole/internal/domain/models"
	"adminconsole/internal/query"
)

// ContactRepository wraps DB access for contacts. All operations are
// scoped to an owning user; pass ownerID 0 to operate across all users.
type ContactRepository struct {
	DB *sql.DB
}

var contactSortColumns = map[string]string{
	"id":        "id",
	"firstName": "first_name",
	"lastName":  "last_name",
	"email":     "email",
}

// List returns one page of the owner's contacts plus pagination metadata.
// Search matches first name, last name, and email.
func (r ContactRepository) List(q query.State, ownerID int64) ([]models.Contact, query.Pagination, error) {
	conds := []string{}
	args := []any{}
	if ownerID > 0 {
		conds = append(conds, "user_id = ?")
		args = append(args, ownerID)
	}
	if q.Search != "" {
		conds = append(conds, "(first_name LIKE ? OR last_name LIKE ? OR email LIKE ?)")
		p := likePattern(q.Search)
		args = append(args, p, p, p)
	}
	where := ""
	for i, cond := range conds {
		if i == 0 {
			where = " WHERE " + cond
		} else {
			where += " AND " + cond
		}
	}

	var total int64
	if err := r.DB.QueryRow(`SELECT COUNT(*) FROM contacts`+where, args...).Scan(&total); err != nil {
		return nil, query.Pagination{}, err
	}

	pag := query.NewPagination(total, q.Page, q.PerPage)
	order := sortColumn(q.SortBy, contactSortColumns, "id")
	dir := sortDirection(q.SortOrder, "ASC")

	rows, err := r.DB.Query(`SELECT id, first_name, last_name, email, user_id FROM contacts`+
		where+` ORDER BY `+order+` `+dir+` LIMIT ? OFFSET ?`,
		append(args, pag.PerPage, (pag.CurrentPage-1)*pag.PerPage)...)
	if err != nil {
		return nil, query.Pagination{}, err
	}
	defer rows.Close()

	contacts := []models.Contact{}
	for rows.Next() {
		var c models.Contact
		if err := rows.Scan(&c.ID, &c.FirstName, &c.LastName, &c.Email, &c.UserID); err != nil {
			return nil, query.Pagination{}, err
		}
		contacts = append(contacts, c)
	}
	return contacts, pag, rows.Err()
}

// Get loads one contact by id within the owner's scope.
func (r ContactRepository) Get(id, ownerID int64) (models.Contact, error) {
	q := `SELECT id, first_name, last_name, email, user_id FROM contacts WHERE id = ?`
	args := []any{id}
	if ownerID > 0 {
		q += ` AND user_id = ?`
		args = append(args, ownerID)
	}
	var c models.Contact
	err := r.DB.QueryRow(q, args...).Scan(&c.ID, &c.FirstName, &c.LastName, &c.Email, &c.UserID)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Contact{}, domain.NotFound("contact")
	}
	return c, err
}

// Create inserts a contact. Duplicate emails within the owner's contacts
// surface as a conflict.
func (r ContactRepository) Create(c models.Contact) (models.Contact, error) {
	var exists int
	if err := r.DB.QueryRow(`SELECT COUNT(*) FROM contacts WHERE email = ? AND user_id = ?`,
		c.Email, c.UserID).Scan(&exists); err != nil {
		return models.Contact{}, err
	}
	if exists > 0 {
		return models.Contact{}, domain.Conflict("contact", "email already in use")
	}

	res, err := r.DB.Exec(`INSERT INTO contacts (first_name, last_name, email, user_id) VALUES (?, ?, ?, ?)`,
		c.FirstName, c.LastName, c.Email, c.UserID)
	if err != nil {
		return models.Contact{}, err
	}
	c.ID, _ = res.LastInsertId()
	return c, nil
}

// ContactPatch carries the fields present in a PATCH body. Nil means the
// key was absent and the stored value is kept.
type ContactPatch struct {
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	Email     *string `json:"email"`
}

// Update applies a key-presence patch and returns the stored row.
func (r ContactRepository) Update(id, ownerID int64, patch ContactPatch) (models.Contact, error) {
	c, err := r.Get(id, ownerID)
	if err != nil {
		return models.Contact{}, err
	}
	if patch.FirstName != nil {
		c.FirstName = *patch.FirstName
	}
	if patch.LastName != nil {
		c.LastName = *patch.LastName
	}
	if patch.Email != nil {
		c.Email = *patch.Email
	}

	_, err = r.DB.Exec(`UPDATE contacts SET first_name = ?, last_name = ?, email = ? WHERE id = ?`,
		c.FirstName, c.LastName, c.Email, id)
	if err != nil {
		return models.Contact{}, err
	}
	return c, nil
}

// Delete removes a contact from the owner's scope.
func (r ContactRepository) Delete(id, ownerID int64) error {
	q := `DELETE FROM contacts WHERE id = ?`
	args := []any{id}
	if ownerID > 0 {
		q += ` AND user_id = ?`
		args = append(args, ownerID)
	}
	res, err := r.DB.Exec(q, args...)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFound("contact")
	}
	return nil
}
