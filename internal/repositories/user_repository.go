package repositories

import (
	"database/sql"
	"errors"

	"adminconsole/internal/domain"
	"adminconsole/internal/domain/models"
	"adminconsole/internal/query"
)

// UserRepository wraps DB access for operator accounts and their role
// assignments.
type UserRepository struct {
	DB *sql.DB
}

var userSortColumns = map[string]string{
	"id":       "id",
	"username": "username",
	"email":    "email",
}

// List returns one page of users, each with its roles loaded.
func (r UserRepository) List(q query.State) ([]models.User, query.Pagination, error) {
	where := ""
	args := []any{}
	if q.Search != "" {
		where = " WHERE (username LIKE ? OR email LIKE ?)"
		p := likePattern(q.Search)
		args = append(args, p, p)
	}

	var total int64
	if err := r.DB.QueryRow(`SELECT COUNT(*) FROM users`+where, args...).Scan(&total); err != nil {
		return nil, query.Pagination{}, err
	}

	pag := query.NewPagination(total, q.Page, q.PerPage)
	order := sortColumn(q.SortBy, userSortColumns, "id")
	dir := sortDirection(q.SortOrder, "ASC")

	rows, err := r.DB.Query(`SELECT id, username, email FROM users`+
		where+` ORDER BY `+order+` `+dir+` LIMIT ? OFFSET ?`,
		append(args, pag.PerPage, (pag.CurrentPage-1)*pag.PerPage)...)
	if err != nil {
		return nil, query.Pagination{}, err
	}
	defer rows.Close()

	users := []models.User{}
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Username, &u.Email); err != nil {
			return nil, query.Pagination{}, err
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, query.Pagination{}, err
	}

	roleRepo := RoleRepository{DB: r.DB}
	for i := range users {
		roles, err := r.rolesForUser(roleRepo, users[i].ID)
		if err != nil {
			return nil, query.Pagination{}, err
		}
		users[i].Roles = roles
	}
	return users, pag, nil
}

// Get loads one user with roles and their permissions.
func (r UserRepository) Get(id int64) (models.User, error) {
	var u models.User
	err := r.DB.QueryRow(`SELECT id, username, email FROM users WHERE id = ?`, id).
		Scan(&u.ID, &u.Username, &u.Email)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, domain.NotFound("user")
	}
	if err != nil {
		return models.User{}, err
	}
	u.Roles, err = r.rolesForUser(RoleRepository{DB: r.DB}, id)
	return u, err
}

func (r UserRepository) rolesForUser(roleRepo RoleRepository, userID int64) ([]models.Role, error) {
	rows, err := r.DB.Query(`SELECT role_id FROM user_roles WHERE user_id = ? ORDER BY role_id`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := []int64{}
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	roles := []models.Role{}
	for _, id := range ids {
		role, err := roleRepo.Get(id)
		if err != nil {
			return nil, err
		}
		roles = append(roles, role)
	}
	return roles, nil
}

// FindByIdentifier loads a user by username or email along with the
// stored password hash.
func (r UserRepository) FindByIdentifier(identifier string) (models.User, string, error) {
	var (
		u    models.User
		hash string
	)
	err := r.DB.QueryRow(`SELECT id, username, email, password_hash FROM users WHERE username = ? OR email = ?`,
		identifier, identifier).Scan(&u.ID, &u.Username, &u.Email, &hash)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, "", domain.NotFound("user")
	}
	if err != nil {
		return models.User{}, "", err
	}
	u.Roles, err = r.rolesForUser(RoleRepository{DB: r.DB}, u.ID)
	return u, hash, err
}

// Create inserts a user account. Username and email are unique.
func (r UserRepository) Create(username, email, passwordHash string) (models.User, error) {
	var exists int
	if err := r.DB.QueryRow(`SELECT COUNT(*) FROM users WHERE username = ?`, username).Scan(&exists); err != nil {
		return models.User{}, err
	}
	if exists > 0 {
		return models.User{}, domain.Conflict("user", "username already exists")
	}
	if err := r.DB.QueryRow(`SELECT COUNT(*) FROM users WHERE email = ?`, email).Scan(&exists); err != nil {
		return models.User{}, err
	}
	if exists > 0 {
		return models.User{}, domain.Conflict("user", "email already registered")
	}

	res, err := r.DB.Exec(`INSERT INTO users (username, email, password_hash) VALUES (?, ?, ?)`,
		username, email, passwordHash)
	if err != nil {
		return models.User{}, err
	}
	id, _ := res.LastInsertId()
	return models.User{ID: id, Username: username, Email: email, Roles: []models.Role{}}, nil
}

// AssignRoles replaces the user's role set with the given ids.
func (r UserRepository) AssignRoles(userID int64, roleIDs []int64) (models.User, error) {
	if _, err := r.Get(userID); err != nil {
		return models.User{}, err
	}
	if len(roleIDs) > 0 {
		args := make([]any, len(roleIDs))
		for i, id := range roleIDs {
			args[i] = id
		}
		var found int
		if err := r.DB.QueryRow(`SELECT COUNT(*) FROM roles WHERE id IN (`+placeholders(len(roleIDs))+`)`,
			args...).Scan(&found); err != nil {
			return models.User{}, err
		}
		if found != len(roleIDs) {
			return models.User{}, domain.Invalid("role_ids", "one or more role ids are invalid")
		}
	}

	if _, err := r.DB.Exec(`DELETE FROM user_roles WHERE user_id = ?`, userID); err != nil {
		return models.User{}, err
	}
	for _, id := range roleIDs {
		if _, err := r.DB.Exec(`INSERT INTO user_roles (user_id, role_id) VALUES (?, ?)`, userID, id); err != nil {
			return models.User{}, err
		}
	}
	return r.Get(userID)
}

// AddRole appends a single role to the user, ignoring duplicates.
func (r UserRepository) AddRole(userID, roleID int64) error {
	_, err := r.DB.Exec(`INSERT IGNORE INTO user_roles (user_id, role_id) VALUES (?, ?)`, userID, roleID)
	return err
}
