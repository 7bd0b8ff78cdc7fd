package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"adminconsole/internal/console/form"
	"adminconsole/internal/domain/models"
)

// setupSession points the CLI at a fresh home directory holding a saved
// session for the given server.
func setupSession(t *testing.T, baseURL string) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	if err := saveSession(storedSession{BaseURL: baseURL, Token: "test-token"}); err != nil {
		t.Fatalf("save session: %v", err)
	}
}

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestSubmitEditSkipsSaveWhenUntouched(t *testing.T) {
	saves := 0
	sess, changed, err := submitEdit(models.Contact{ID: 1, Email: "ada@example.com"},
		func(d *models.Contact) {},
		func(d models.Contact) (models.Contact, error) {
			saves++
			return d, nil
		})
	if err != nil {
		t.Fatalf("edit error: %v", err)
	}
	if changed || saves != 0 {
		t.Fatalf("untouched draft must not save: changed=%v saves=%d", changed, saves)
	}
	if sess.Mode() != form.Viewing {
		t.Fatalf("expected viewing after a no-op edit, got %s", sess.Mode())
	}
}

func TestSubmitEditFailedSaveKeepsDraft(t *testing.T) {
	sess, changed, err := submitEdit(models.Contact{ID: 1, Email: "ada@example.com"},
		func(d *models.Contact) { d.Email = "countess@example.com" },
		func(d models.Contact) (models.Contact, error) {
			return models.Contact{}, errors.New("boom")
		})
	if err == nil {
		t.Fatal("expected the save error")
	}
	if !changed {
		t.Fatal("a diverged draft should report changed")
	}
	if sess.Mode() != form.Editing {
		t.Fatalf("failed save should stay in editing, got %s", sess.Mode())
	}
	if sess.Value().Email != "countess@example.com" {
		t.Fatalf("draft should survive the failed save: %+v", sess.Value())
	}
}

func TestSubmitEditSavedValueBecomesOriginal(t *testing.T) {
	sess, changed, err := submitEdit(models.Contact{ID: 1, FirstName: "Ada"},
		func(d *models.Contact) { d.FirstName = "Grace" },
		func(d models.Contact) (models.Contact, error) {
			d.LastName = "Hopper" // simulates server-side normalization
			return d, nil
		})
	if err != nil {
		t.Fatalf("edit error: %v", err)
	}
	if !changed {
		t.Fatal("diverged draft should save")
	}
	got := sess.Original()
	if got.FirstName != "Grace" || got.LastName != "Hopper" {
		t.Fatalf("saved record should become the new original: %+v", got)
	}
}

func TestContactsUpdateSubmitsFullDraft(t *testing.T) {
	var patchBody contactPatchBody
	patches := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			json.NewEncoder(w).Encode(models.Contact{ID: 4, FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com"})
		case http.MethodPatch:
			patches++
			if err := json.NewDecoder(r.Body).Decode(&patchBody); err != nil {
				t.Errorf("decode patch body: %v", err)
			}
			json.NewEncoder(w).Encode(models.Contact{ID: 4, FirstName: "Ada", LastName: "Lovelace", Email: "countess@example.com"})
		default:
			t.Errorf("unexpected %s %s", r.Method, r.URL.Path)
		}
	}))
	defer srv.Close()
	setupSession(t, srv.URL)

	out, err := runCommand(t, "contacts", "update", "4", "--email", "countess@example.com")
	if err != nil {
		t.Fatalf("command error: %v", err)
	}
	if patches != 1 {
		t.Fatalf("expected one write, got %d", patches)
	}
	// The whole draft goes out, not a merge of the changed field.
	if patchBody.FirstName != "Ada" || patchBody.LastName != "Lovelace" || patchBody.Email != "countess@example.com" {
		t.Fatalf("unexpected patch body: %+v", patchBody)
	}
	if !strings.Contains(out, "Updated contact 4") {
		t.Fatalf("unexpected output: %q", out)
	}
}

type contactPatchBody struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

func TestContactsUpdateUnchangedIssuesNoWrite(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("unexpected %s %s", r.Method, r.URL.Path)
			return
		}
		json.NewEncoder(w).Encode(models.Contact{ID: 4, FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com"})
	}))
	defer srv.Close()
	setupSession(t, srv.URL)

	out, err := runCommand(t, "contacts", "update", "4", "--email", "ada@example.com")
	if err != nil {
		t.Fatalf("command error: %v", err)
	}
	if !strings.Contains(out, "Contact 4 unchanged") {
		t.Fatalf("unexpected output: %q", out)
	}
}
