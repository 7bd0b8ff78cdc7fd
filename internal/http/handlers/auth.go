package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"adminconsole/internal/domain"
	"adminconsole/internal/domain/models"
	"adminconsole/internal/http/middleware"
	"adminconsole/internal/services"
)

type loginRequest struct {
	Identifier string `json:"identifier" binding:"required"`
	Password   string `json:"password" binding:"required"`
}

type registerRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// Login authenticates by username or email and sets the session cookie.
func Login(c *gin.Context) {
	var req loginRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	user, hash, err := userRepo().FindByIdentifier(req.Identifier)
	if err != nil {
		if domain.IsNotFound(err) {
			RespondError(c, http.StatusUnauthorized, "invalid credentials")
			return
		}
		RespondDomainError(c, err)
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(req.Password)) != nil {
		RespondError(c, http.StatusUnauthorized, "invalid credentials")
		return
	}

	token, err := middleware.IssueSessionToken(user.ID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	setSessionCookie(c, token, middleware.SessionTTLSeconds())

	auditService().Record(services.AuditEvent{
		UserID:     user.ID,
		ActionType: models.ActionLogin,
		EntityType: "user",
		EntityID:   &user.ID,
		IPAddress:  c.ClientIP(),
		UserAgent:  c.Request.UserAgent(),
	})

	c.JSON(http.StatusOK, gin.H{"logged_in": true, "user": user})
}

// Register creates a new account with the default role and logs it in.
func Register(c *gin.Context) {
	var req registerRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	user, err := userRepo().Create(req.Username, req.Email, string(hash))
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	if role, err := roleRepo().FindByName("User"); err == nil {
		if err := userRepo().AddRole(user.ID, role.ID); err == nil {
			user.Roles = append(user.Roles, role)
		}
	}

	token, err := middleware.IssueSessionToken(user.ID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	setSessionCookie(c, token, middleware.SessionTTLSeconds())

	auditService().Record(services.AuditEvent{
		UserID:     user.ID,
		ActionType: models.ActionCreate,
		EntityType: "user",
		EntityID:   &user.ID,
		NewValue:   user,
		IPAddress:  c.ClientIP(),
		UserAgent:  c.Request.UserAgent(),
	})

	c.JSON(http.StatusCreated, gin.H{"logged_in": true, "user": user})
}

// Logout clears the session cookie.
func Logout(c *gin.Context) {
	if user, ok := middleware.CurrentUser(c); ok {
		auditService().Record(services.AuditEvent{
			UserID:     user.ID,
			ActionType: models.ActionLogout,
			EntityType: "user",
			EntityID:   &user.ID,
			IPAddress:  c.ClientIP(),
			UserAgent:  c.Request.UserAgent(),
		})
	}
	setSessionCookie(c, "", -1)
	c.JSON(http.StatusOK, gin.H{"logged_in": false})
}

// Status reports whether a valid session is attached to the request.
func Status(c *gin.Context) {
	if user, ok := middleware.CurrentUser(c); ok {
		c.JSON(http.StatusOK, gin.H{"logged_in": true, "user": user})
		return
	}
	c.JSON(http.StatusOK, gin.H{"logged_in": false, "user": nil})
}

func setSessionCookie(c *gin.Context, token string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookie, token, maxAge, "/", "", false, true)
}
