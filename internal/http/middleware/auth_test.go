package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"adminconsole/internal/domain/models"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestSessionTokenRoundTrip(t *testing.T) {
	SetSessionSecret("test-secret")
	token, err := IssueSessionToken(42)
	if err != nil {
		t.Fatalf("issue error: %v", err)
	}
	userID, err := parseSessionToken(token)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if userID != 42 {
		t.Fatalf("expected user 42, got %d", userID)
	}
}

func TestSessionTokenWrongSecretRejected(t *testing.T) {
	SetSessionSecret("secret-one")
	token, err := IssueSessionToken(42)
	if err != nil {
		t.Fatalf("issue error: %v", err)
	}
	SetSessionSecret("secret-two")
	if _, err := parseSessionToken(token); err == nil {
		t.Fatal("token signed with another secret must not verify")
	}
}

func withUser(user models.User) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(currentUserKey, user)
		c.Next()
	}
}

func performRequest(r http.Handler) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequireAuthWithoutUser(t *testing.T) {
	r := gin.New()
	r.GET("/probe", RequireAuth(), func(c *gin.Context) { c.Status(http.StatusOK) })
	if w := performRequest(r); w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestRequirePermissionDeniedWithout(t *testing.T) {
	user := models.User{ID: 1, Username: "ada", Roles: []models.Role{{Name: "User"}}}
	r := gin.New()
	r.GET("/probe", withUser(user), RequirePermission("role.manage"), func(c *gin.Context) { c.Status(http.StatusOK) })
	if w := performRequest(r); w.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", w.Code)
	}
}

func TestRequirePermissionGrantedThroughRole(t *testing.T) {
	user := models.User{ID: 1, Username: "ada", Roles: []models.Role{{
		Name:        "Editors",
		Permissions: []models.Permission{{Name: "role.manage"}},
	}}}
	r := gin.New()
	r.GET("/probe", withUser(user), RequirePermission("role.manage"), func(c *gin.Context) { c.Status(http.StatusOK) })
	if w := performRequest(r); w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}

func TestAdminPassesEveryGate(t *testing.T) {
	user := models.User{ID: 1, Username: "root", Roles: []models.Role{{Name: "Admin"}}}
	r := gin.New()
	r.GET("/probe", withUser(user), RequirePermission("anything.at.all"), func(c *gin.Context) { c.Status(http.StatusOK) })
	if w := performRequest(r); w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}
