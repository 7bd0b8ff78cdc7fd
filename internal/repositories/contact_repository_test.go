package repositories

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"adminconsole/internal/domain"
	"adminconsole/internal/domain/models"
	"adminconsole/internal/query"
)

func newMock(t *testing.T) (sqlmock.Sqlmock, ContactRepository) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return mock, ContactRepository{DB: db}
}

func contactFixture(ownerID int64) models.Contact {
	return models.Contact{FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com", UserID: ownerID}
}

func TestContactListScopedAndPaginated(t *testing.T) {
	mock, repo := newMock(t)

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM contacts").
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(25))
	mock.ExpectQuery("SELECT id, first_name, last_name, email, user_id FROM contacts").
		WithArgs(int64(7), 10, 10).
		WillReturnRows(sqlmock.NewRows([]string{"id", "first_name", "last_name", "email", "user_id"}).
			AddRow(11, "Ada", "Lovelace", "ada@example.com", 7).
			AddRow(12, "Grace", "Hopper", "grace@example.com", 7))

	q := query.New()
	q.SetPage(2)
	contacts, pag, err := repo.List(q, 7)
	if err != nil {
		t.Fatalf("list error: %v", err)
	}
	if len(contacts) != 2 {
		t.Fatalf("expected 2 contacts, got %d", len(contacts))
	}
	if pag.TotalItems != 25 || pag.TotalPages != 3 || pag.CurrentPage != 2 {
		t.Fatalf("unexpected pagination: %+v", pag)
	}
	if !pag.HasPrev || !pag.HasNext {
		t.Fatalf("page 2 of 3 should have both neighbors: %+v", pag)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestContactListSearchEscapesWildcards(t *testing.T) {
	mock, repo := newMock(t)

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM contacts").
		WithArgs(int64(7), "%50\\%%", "%50\\%%", "%50\\%%").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery("SELECT id, first_name, last_name, email, user_id FROM contacts").
		WithArgs(int64(7), "%50\\%%", "%50\\%%", "%50\\%%", 10, 0).
		WillReturnRows(sqlmock.NewRows([]string{"id", "first_name", "last_name", "email", "user_id"}))

	q := query.New()
	q.SetSearch("50%")
	contacts, pag, err := repo.List(q, 7)
	if err != nil {
		t.Fatalf("list error: %v", err)
	}
	if len(contacts) != 0 || pag.TotalItems != 0 {
		t.Fatalf("expected an empty page, got %d rows, %+v", len(contacts), pag)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestContactGetMissingIsNotFound(t *testing.T) {
	mock, repo := newMock(t)

	mock.ExpectQuery("SELECT id, first_name, last_name, email, user_id FROM contacts").
		WithArgs(int64(99), int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "first_name", "last_name", "email", "user_id"}))

	_, err := repo.Get(99, 7)
	if !domain.IsNotFound(err) {
		t.Fatalf("expected not-found, got %v", err)
	}
}

func TestContactCreateDuplicateEmailConflicts(t *testing.T) {
	mock, repo := newMock(t)

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM contacts WHERE email").
		WithArgs("ada@example.com", int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	_, err := repo.Create(contactFixture(7))
	if !domain.IsConflict(err) {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestContactUpdateKeepsAbsentFields(t *testing.T) {
	mock, repo := newMock(t)

	mock.ExpectQuery("SELECT id, first_name, last_name, email, user_id FROM contacts").
		WithArgs(int64(11), int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "first_name", "last_name", "email", "user_id"}).
			AddRow(11, "Ada", "Lovelace", "ada@example.com", 7))
	mock.ExpectExec("UPDATE contacts SET").
		WithArgs("Ada", "Byron", "ada@example.com", int64(11)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	last := "Byron"
	updated, err := repo.Update(11, 7, ContactPatch{LastName: &last})
	if err != nil {
		t.Fatalf("update error: %v", err)
	}
	if updated.FirstName != "Ada" || updated.LastName != "Byron" {
		t.Fatalf("unexpected result: %+v", updated)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestContactDeleteMissingIsNotFound(t *testing.T) {
	mock, repo := newMock(t)

	mock.ExpectExec("DELETE FROM contacts").
		WithArgs(int64(99), int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.Delete(99, 7); !domain.IsNotFound(err) {
		t.Fatalf("expected not-found, got %v", err)
	}
}
