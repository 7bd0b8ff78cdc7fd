package repositories

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"adminconsole/internal/domain"
	"adminconsole/internal/query"
)

func expectPermissionGet(mock sqlmock.Sqlmock, id int64, name string, catID any, catName any) {
	mock.ExpectQuery("FROM permissions p").
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows(permissionColumns).
			AddRow(id, name, nil, "active", catID, catName))
}

func TestPermissionUpdateNullCategoryDetaches(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()
	repo := PermissionRepository{DB: db}

	expectPermissionGet(mock, 4, "report.read", int64(2), "Reporting")
	mock.ExpectExec("UPDATE permissions SET").
		WillReturnResult(sqlmock.NewResult(0, 1))
	expectPermissionGet(mock, 4, "report.read", nil, nil)

	// category_id present in the body as an explicit null.
	updated, err := repo.Update(4, PermissionPatch{CategorySet: true})
	if err != nil {
		t.Fatalf("update error: %v", err)
	}
	if updated.Category != nil {
		t.Fatalf("expected detached category, got %+v", updated.Category)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestPermissionUpdateAbsentCategoryKeepsIt(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()
	repo := PermissionRepository{DB: db}

	expectPermissionGet(mock, 4, "report.read", int64(2), "Reporting")
	mock.ExpectExec("UPDATE permissions SET").
		WillReturnResult(sqlmock.NewResult(0, 1))
	expectPermissionGet(mock, 4, "report.read", int64(2), "Reporting")

	status := "inactive"
	updated, err := repo.Update(4, PermissionPatch{Status: &status})
	if err != nil {
		t.Fatalf("update error: %v", err)
	}
	if updated.Category == nil || updated.Category.Name != "Reporting" {
		t.Fatalf("category should survive an unrelated patch: %+v", updated.Category)
	}
}

func TestPermissionDeleteInUseIsConflict(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()
	repo := PermissionRepository{DB: db}

	expectPermissionGet(mock, 4, "report.read", nil, nil)
	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM role_permissions").
		WithArgs(int64(4)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	if err := repo.Delete(4); !domain.IsConflict(err) {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestPermissionListGetAllIgnoresPaging(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()
	repo := PermissionRepository{DB: db}

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM permissions p").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
	// No LIMIT/OFFSET args on the row query.
	mock.ExpectQuery("FROM permissions p").
		WillReturnRows(sqlmock.NewRows(permissionColumns).
			AddRow(1, "user.read.all", nil, "active", int64(1), "User Management").
			AddRow(2, "report.read", nil, "active", nil, nil))

	q := query.New()
	q.SetPage(3)
	perms, pag, err := repo.List(q, PermissionListOptions{GetAll: true})
	if err != nil {
		t.Fatalf("list error: %v", err)
	}
	if len(perms) != 2 {
		t.Fatalf("expected every row, got %d", len(perms))
	}
	if pag.TotalPages != 1 || pag.HasNext {
		t.Fatalf("get_all should collapse to one page: %+v", pag)
	}
	if perms[1].Category != nil {
		t.Fatalf("row without category should stay nil, got %+v", perms[1].Category)
	}
}
