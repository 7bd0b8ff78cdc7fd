package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"

	"adminconsole/internal/config"
	"adminconsole/internal/domain/models"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// contactRouter registers the contact routes behind a middleware that
// injects a fixed signed-in user, the way the live router does after
// token verification.
func contactRouter(user models.User) *gin.Engine {
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("current_user", user)
		c.Next()
	})
	r.GET("/app/contacts", ListContacts)
	r.GET("/app/contacts/:id", GetContact)
	r.POST("/app/contacts", CreateContact)
	return r
}

func setMockDB(t *testing.T) sqlmock.Sqlmock {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	prev := config.DB
	config.DB = db
	t.Cleanup(func() {
		config.DB = prev
		db.Close()
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("unmet expectations: %v", err)
		}
	})
	return mock
}

func TestListContactsEnvelope(t *testing.T) {
	mock := setMockDB(t)
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM contacts`).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"COUNT(*)"}).AddRow(2))
	mock.ExpectQuery(`SELECT id, first_name, last_name, email, user_id FROM contacts`).
		WithArgs(int64(7), 10, 0).
		WillReturnRows(sqlmock.NewRows([]string{"id", "first_name", "last_name", "email", "user_id"}).
			AddRow(1, "Ada", "Lovelace", "ada@example.com", 7).
			AddRow(2, "Alan", "Turing", "alan@example.com", 7))

	r := contactRouter(models.User{ID: 7, Username: "ada"})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/app/contacts", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var body struct {
		Items      []models.Contact `json:"items"`
		Pagination struct {
			TotalItems  int64 `json:"total_items"`
			CurrentPage int   `json:"current_page"`
		} `json:"pagination"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(body.Items))
	}
	if body.Pagination.TotalItems != 2 || body.Pagination.CurrentPage != 1 {
		t.Fatalf("unexpected pagination: %+v", body.Pagination)
	}
}

func TestGetContactMissingIsNotFound(t *testing.T) {
	mock := setMockDB(t)
	mock.ExpectQuery(`SELECT id, first_name, last_name, email, user_id FROM contacts WHERE id = \? AND user_id = \?`).
		WithArgs(int64(99), int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "first_name", "last_name", "email", "user_id"}))

	r := contactRouter(models.User{ID: 7})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/app/contacts/99", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d: %s", w.Code, w.Body.String())
	}
	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["error"] != "contact not found" {
		t.Fatalf("unexpected error message: %q", body["error"])
	}
}

func TestCreateContactWritesAuditEntry(t *testing.T) {
	mock := setMockDB(t)
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM contacts WHERE email = \? AND user_id = \?`).
		WithArgs("ada@example.com", int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"COUNT(*)"}).AddRow(0))
	mock.ExpectExec(`INSERT INTO contacts`).
		WithArgs("Ada", "Lovelace", "ada@example.com", int64(7)).
		WillReturnResult(sqlmock.NewResult(5, 1))
	mock.ExpectExec(`INSERT INTO audit_logs`).
		WillReturnResult(sqlmock.NewResult(1, 1))

	r := contactRouter(models.User{ID: 7, Username: "ada"})
	payload := bytes.NewBufferString(`{"firstName":"Ada","lastName":"Lovelace","email":"ada@example.com"}`)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/app/contacts", payload)
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	var contact models.Contact
	if err := json.Unmarshal(w.Body.Bytes(), &contact); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if contact.ID != 5 || contact.UserID != 7 {
		t.Fatalf("unexpected contact: %+v", contact)
	}
}

func TestCreateContactDuplicateEmailIsConflict(t *testing.T) {
	mock := setMockDB(t)
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM contacts WHERE email = \? AND user_id = \?`).
		WithArgs("ada@example.com", int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"COUNT(*)"}).AddRow(1))

	r := contactRouter(models.User{ID: 7})
	payload := bytes.NewBufferString(`{"firstName":"Ada","lastName":"Lovelace","email":"ada@example.com"}`)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/app/contacts", payload)
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d: %s", w.Code, w.Body.String())
	}
}

func TestCreateContactRejectsBadPayload(t *testing.T) {
	setMockDB(t)

	r := contactRouter(models.User{ID: 7})
	payload := bytes.NewBufferString(`{"firstName":"Ada"}`)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/app/contacts", payload)
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}
}
