package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"adminconsole/internal/domain/models"
	"adminconsole/internal/http/middleware"
	"adminconsole/internal/services"
)

// ListUsers returns all accounts with their roles, paginated.
func ListUsers(c *gin.Context) {
	items, p, err := userRepo().List(ListQuery(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondList(c, items, p)
}

func GetUser(c *gin.Context) {
	id, ok := PathID(c)
	if !ok {
		return
	}
	user, err := userRepo().Get(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

type assignRolesRequest struct {
	RoleIDs []int64 `json:"role_ids" binding:"required"`
}

// AssignUserRoles replaces a user's role set.
func AssignUserRoles(c *gin.Context) {
	id, ok := PathID(c)
	if !ok {
		return
	}
	var req assignRolesRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	repo := userRepo()
	before, err := repo.Get(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	user, err := repo.AssignRoles(id, req.RoleIDs)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	actor, _ := middleware.CurrentUser(c)
	auditService().RecordUpdate(services.AuditEvent{
		UserID:     actor.ID,
		ActionType: models.ActionUpdate,
		EntityType: "user",
		EntityID:   &user.ID,
		IPAddress:  c.ClientIP(),
		UserAgent:  c.Request.UserAgent(),
	}, before, user)

	c.JSON(http.StatusOK, user)
}
