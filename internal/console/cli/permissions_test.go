package cli

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"adminconsole/internal/domain/models"
	"adminconsole/internal/query"
)

func TestPermissionsGroupedOutput(t *testing.T) {
	desc := "Read any user record"
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"items": []models.Permission{
				{ID: 3, Name: "user.read.all", Description: &desc, Category: &models.CategoryRef{ID: 1, Name: "Users"}},
				{ID: 9, Name: "audit.read.all"},
			},
			"pagination": query.NewPagination(2, 1, 10),
		})
	}))
	defer srv.Close()
	setupSession(t, srv.URL)

	out, err := runCommand(t, "permissions", "grouped")
	if err != nil {
		t.Fatalf("command error: %v", err)
	}
	wantLines := []string{
		"Uncategorized",
		"  [9] audit.read.all",
		"Users",
		"  [3] user.read.all - Read any user record",
	}
	got := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(got) != len(wantLines) {
		t.Fatalf("unexpected output:\n%s", out)
	}
	for i, want := range wantLines {
		if got[i] != want {
			t.Fatalf("line %d: got %q, want %q", i, got[i], want)
		}
	}
}
