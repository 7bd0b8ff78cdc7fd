package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"adminconsole/internal/config"
	"adminconsole/internal/domain/models"
	"adminconsole/internal/repositories"
)

const (
	// SessionCookie is the HttpOnly cookie carrying the session token.
	SessionCookie = "session"

	currentUserKey = "current_user"

	sessionTTL = 24 * time.Hour
)

var sessionSecret = []byte("dev-session-secret")

// SetSessionSecret installs the HMAC key used to sign and verify session
// tokens. Call once at startup before the router begins serving.
func SetSessionSecret(secret string) {
	if secret != "" {
		sessionSecret = []byte(secret)
	}
}

type sessionClaims struct {
	UserID int64 `json:"user_id"`
	jwt.RegisteredClaims
}

// IssueSessionToken signs a session token for the given user.
func IssueSessionToken(userID int64) (string, error) {
	now := time.Now()
	claims := sessionClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(sessionTTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(sessionSecret)
}

// SessionTTLSeconds is the cookie max-age matching the token lifetime.
func SessionTTLSeconds() int {
	return int(sessionTTL / time.Second)
}

func parseSessionToken(token string) (int64, error) {
	claims := &sessionClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return sessionSecret, nil
	})
	if err != nil {
		return 0, err
	}
	return claims.UserID, nil
}

// Authenticate resolves the session token from the cookie (or a bearer
// header as fallback) and attaches the user to the request context. It
// never aborts; gating is left to RequireAuth and RequirePermission.
func Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := ""
		if cookie, err := c.Cookie(SessionCookie); err == nil {
			token = cookie
		} else if h := c.GetHeader("Authorization"); strings.HasPrefix(h, "Bearer ") {
			token = strings.TrimPrefix(h, "Bearer ")
		}
		if token == "" {
			c.Next()
			return
		}

		userID, err := parseSessionToken(token)
		if err != nil {
			c.Next()
			return
		}

		repo := repositories.UserRepository{DB: config.DB}
		user, err := repo.Get(userID)
		if err != nil {
			c.Next()
			return
		}

		c.Set(currentUserKey, user)
		c.Next()
	}
}

// CurrentUser returns the authenticated user attached by Authenticate.
func CurrentUser(c *gin.Context) (models.User, bool) {
	v, ok := c.Get(currentUserKey)
	if !ok {
		return models.User{}, false
	}
	user, ok := v.(models.User)
	return user, ok
}

// RequireAuth aborts with 401 when no authenticated user is present.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := CurrentUser(c); !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}
		c.Next()
	}
}

// RequirePermission aborts with 403 unless the authenticated user holds
// the named permission through one of their roles. Admins pass all gates.
func RequirePermission(name string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}
		if !user.IsAdmin() && !user.HasPermission(name) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "permission '" + name + "' required"})
			return
		}
		c.Next()
	}
}
