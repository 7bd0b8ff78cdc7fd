package services

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"adminconsole/internal/domain/models"
	"adminconsole/internal/repositories"
)

func TestFieldChangesDiffsTopLevelFields(t *testing.T) {
	type role struct {
		Name        string  `json:"name"`
		Description *string `json:"description"`
		Status      string  `json:"status"`
	}
	desc := "old"
	before := role{Name: "Editors", Description: &desc, Status: "active"}
	after := role{Name: "Writers", Description: &desc, Status: "active"}

	changes := FieldChanges(before, after)
	if len(changes) != 1 {
		t.Fatalf("expected 1 change, got %d: %+v", len(changes), changes)
	}
	if changes[0].Field != "name" || changes[0].Old != "Editors" || changes[0].New != "Writers" {
		t.Fatalf("unexpected change: %+v", changes[0])
	}
}

func TestFieldChangesSortedAndHandlesAddedFields(t *testing.T) {
	before := map[string]any{"status": "active"}
	after := map[string]any{"status": "inactive", "category_id": 3}

	changes := FieldChanges(before, after)
	if len(changes) != 2 {
		t.Fatalf("expected 2 changes, got %d", len(changes))
	}
	if changes[0].Field != "category_id" || changes[1].Field != "status" {
		t.Fatalf("changes should be sorted by field: %+v", changes)
	}
	if changes[0].Old != nil {
		t.Fatalf("added field should diff against nil, got %v", changes[0].Old)
	}
}

func TestFieldChangesEqualSnapshotsAreEmpty(t *testing.T) {
	snap := map[string]any{"name": "Editors", "status": "active"}
	if changes := FieldChanges(snap, snap); len(changes) != 0 {
		t.Fatalf("expected no changes, got %+v", changes)
	}
}

func TestRecordFillsGeneratedDescription(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	id := int64(7)
	mock.ExpectExec("INSERT INTO audit_logs").
		WithArgs(int64(1), sqlmock.AnyArg(), models.ActionCreate, "role", id, nil,
			nil, sqlmock.AnyArg(), "Created role (ID: 7)", "127.0.0.1", "test-agent").
		WillReturnResult(sqlmock.NewResult(1, 1))

	svc := AuditService{Repo: repositories.AuditRepository{DB: db}}
	svc.Record(AuditEvent{
		UserID:     1,
		ActionType: models.ActionCreate,
		EntityType: "role",
		EntityID:   &id,
		NewValue:   map[string]any{"name": "Editors"},
		IPAddress:  "127.0.0.1",
		UserAgent:  "test-agent",
	})
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestRecordUpdateWritesOneEntryPerChangedField(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	// Two changed fields, two inserts.
	mock.ExpectExec("INSERT INTO audit_logs").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO audit_logs").WillReturnResult(sqlmock.NewResult(2, 1))

	id := int64(4)
	svc := AuditService{Repo: repositories.AuditRepository{DB: db}}
	svc.RecordUpdate(AuditEvent{UserID: 1, EntityType: "permission", EntityID: &id},
		map[string]any{"name": "report.read", "status": "active"},
		map[string]any{"name": "report.view", "status": "inactive"})

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestRecordUpdateNoChangesWritesNothing(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	id := int64(4)
	svc := AuditService{Repo: repositories.AuditRepository{DB: db}}
	snap := map[string]any{"name": "report.read"}
	svc.RecordUpdate(AuditEvent{UserID: 1, EntityType: "permission", EntityID: &id}, snap, snap)

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unexpected writes: %v", err)
	}
}
