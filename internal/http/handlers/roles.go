package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"adminconsole/internal/domain/models"
	"adminconsole/internal/http/middleware"
	"adminconsole/internal/repositories"
	"adminconsole/internal/services"
)

type roleCreateRequest struct {
	Name          string  `json:"name" binding:"required"`
	Description   *string `json:"description"`
	PermissionIDs []int64 `json:"permission_ids"`
}

// ListRoles returns roles with their permissions, paginated.
func ListRoles(c *gin.Context) {
	items, p, err := roleRepo().List(ListQuery(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondList(c, items, p)
}

func GetRole(c *gin.Context) {
	id, ok := PathID(c)
	if !ok {
		return
	}
	role, err := roleRepo().Get(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, role)
}

func CreateRole(c *gin.Context) {
	var req roleCreateRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	role, err := roleRepo().Create(req.Name, req.Description, req.PermissionIDs)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	actor, _ := middleware.CurrentUser(c)
	auditService().Record(services.AuditEvent{
		UserID:     actor.ID,
		ActionType: models.ActionCreate,
		EntityType: "role",
		EntityID:   &role.ID,
		NewValue:   role,
		IPAddress:  c.ClientIP(),
		UserAgent:  c.Request.UserAgent(),
	})

	c.JSON(http.StatusCreated, role)
}

func UpdateRole(c *gin.Context) {
	id, ok := PathID(c)
	if !ok {
		return
	}

	repo := roleRepo()
	before, err := repo.Get(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	var patch repositories.RolePatch
	if !BindJSONOrError(c, &patch) {
		return
	}

	role, err := repo.Update(id, patch)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	actor, _ := middleware.CurrentUser(c)
	auditService().RecordUpdate(services.AuditEvent{
		UserID:     actor.ID,
		ActionType: models.ActionUpdate,
		EntityType: "role",
		EntityID:   &role.ID,
		IPAddress:  c.ClientIP(),
		UserAgent:  c.Request.UserAgent(),
	}, before, role)

	c.JSON(http.StatusOK, role)
}

func DeleteRole(c *gin.Context) {
	id, ok := PathID(c)
	if !ok {
		return
	}

	repo := roleRepo()
	before, err := repo.Get(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if err := repo.Delete(id); err != nil {
		RespondDomainError(c, err)
		return
	}

	actor, _ := middleware.CurrentUser(c)
	auditService().Record(services.AuditEvent{
		UserID:     actor.ID,
		ActionType: models.ActionDelete,
		EntityType: "role",
		EntityID:   &id,
		OldValue:   before,
		IPAddress:  c.ClientIP(),
		UserAgent:  c.Request.UserAgent(),
	})

	c.Status(http.StatusNoContent)
}
