package repositories

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"adminconsole/internal/domain"
)

func TestUserFindByIdentifierMatchesEmailToo(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()
	repo := UserRepository{DB: db}

	mock.ExpectQuery("SELECT id, username, email, password_hash FROM users").
		WithArgs("ada@example.com", "ada@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "email", "password_hash"}).
			AddRow(3, "ada", "ada@example.com", "$2a$10$hash"))
	mock.ExpectQuery("SELECT role_id FROM user_roles").
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"role_id"}).AddRow(int64(2)))
	expectRoleGet(mock, 2, "User")

	user, hash, err := repo.FindByIdentifier("ada@example.com")
	if err != nil {
		t.Fatalf("find error: %v", err)
	}
	if user.Username != "ada" || hash != "$2a$10$hash" {
		t.Fatalf("unexpected result: %+v / %q", user, hash)
	}
	if len(user.Roles) != 1 || user.Roles[0].Name != "User" {
		t.Fatalf("roles should be loaded: %+v", user.Roles)
	}
}

func TestUserCreateDuplicateUsernameConflicts(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()
	repo := UserRepository{DB: db}

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM users WHERE username").
		WithArgs("ada").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	_, err = repo.Create("ada", "ada@example.com", "hash")
	if !domain.IsConflict(err) {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestUserAssignRolesRejectsUnknownIDs(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()
	repo := UserRepository{DB: db}

	mock.ExpectQuery("SELECT id, username, email FROM users").
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "email"}).
			AddRow(3, "ada", "ada@example.com"))
	mock.ExpectQuery("SELECT role_id FROM user_roles").
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"role_id"}))
	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM roles WHERE id IN").
		WithArgs(int64(1), int64(42)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	_, err = repo.AssignRoles(3, []int64{1, 42})
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}
