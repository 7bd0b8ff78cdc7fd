package cli

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"adminconsole/internal/domain/models"
)

func TestRegisterSavesSession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/auth/register" {
			t.Errorf("unexpected %s %s", r.Method, r.URL.Path)
			return
		}
		var req struct {
			Username string `json:"username"`
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode register body: %v", err)
		}
		if req.Username != "grace" || req.Email != "grace@example.com" || req.Password == "" {
			t.Errorf("unexpected register payload: %+v", req)
		}
		http.SetCookie(w, &http.Cookie{Name: "session", Value: "fresh-token"})
		json.NewEncoder(w).Encode(map[string]any{
			"user": models.User{ID: 1, Username: "grace", Email: "grace@example.com"},
		})
	}))
	defer srv.Close()
	t.Setenv("HOME", t.TempDir())

	out, err := runCommand(t, "register", "grace", "grace@example.com",
		"--password", "s3cret", "--base-url", srv.URL)
	if err != nil {
		t.Fatalf("command error: %v", err)
	}
	if !strings.Contains(out, "Registered and logged in as grace") {
		t.Fatalf("unexpected output: %q", out)
	}

	sess, err := loadSession()
	if err != nil {
		t.Fatalf("load session: %v", err)
	}
	if sess.Token != "fresh-token" || sess.BaseURL != srv.URL {
		t.Fatalf("session not saved: %+v", sess)
	}
}

func TestRegisterRunsWithoutSavedSession(t *testing.T) {
	// The session gate must not block account creation.
	t.Setenv("HOME", t.TempDir())
	root := NewRootCommand()
	cmd, _, err := root.Find([]string{"register"})
	if err != nil {
		t.Fatalf("find register: %v", err)
	}
	if err := requireSession(cmd); err != nil {
		t.Fatalf("register should be exempt from the session gate: %v", err)
	}
}
