package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"adminconsole/internal/domain/models"
	"adminconsole/internal/http/middleware"
	"adminconsole/internal/repositories"
	"adminconsole/internal/services"
)

type permissionCreateRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description *string `json:"description"`
	CategoryID  *int64  `json:"category_id"`
	Status      string  `json:"status"`
}

func boolFlag(c *gin.Context, name string) bool {
	v, err := strconv.ParseBool(c.Query(name))
	return err == nil && v
}

// ListPermissions returns permissions with their category, paginated.
// Supports ?include_usage=true and ?get_all=true.
func ListPermissions(c *gin.Context) {
	opts := repositories.PermissionListOptions{
		IncludeUsage: boolFlag(c, "include_usage"),
		GetAll:       boolFlag(c, "get_all"),
	}
	items, p, err := permissionRepo().List(ListQuery(c), opts)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondList(c, items, p)
}

func GetPermission(c *gin.Context) {
	id, ok := PathID(c)
	if !ok {
		return
	}
	perm, err := permissionRepo().Get(id, boolFlag(c, "include_usage"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, perm)
}

func CreatePermission(c *gin.Context) {
	var req permissionCreateRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	status := req.Status
	if status == "" {
		status = models.StatusActive
	}

	perm, err := permissionRepo().Create(req.Name, req.Description, req.CategoryID, status)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	actor, _ := middleware.CurrentUser(c)
	auditService().Record(services.AuditEvent{
		UserID:     actor.ID,
		ActionType: models.ActionCreate,
		EntityType: "permission",
		EntityID:   &perm.ID,
		NewValue:   perm,
		IPAddress:  c.ClientIP(),
		UserAgent:  c.Request.UserAgent(),
	})

	c.JSON(http.StatusCreated, perm)
}

func UpdatePermission(c *gin.Context) {
	id, ok := PathID(c)
	if !ok {
		return
	}

	repo := permissionRepo()
	before, err := repo.Get(id, false)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	patch, ok := bindPermissionPatch(c)
	if !ok {
		return
	}

	perm, err := repo.Update(id, patch)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	actor, _ := middleware.CurrentUser(c)
	auditService().RecordUpdate(services.AuditEvent{
		UserID:     actor.ID,
		ActionType: models.ActionUpdate,
		EntityType: "permission",
		EntityID:   &perm.ID,
		IPAddress:  c.ClientIP(),
		UserAgent:  c.Request.UserAgent(),
	}, before, perm)

	c.JSON(http.StatusOK, perm)
}

// bindPermissionPatch binds a PATCH body, distinguishing an absent
// category_id key from an explicit null (which clears the category).
func bindPermissionPatch(c *gin.Context) (repositories.PermissionPatch, bool) {
	var raw map[string]json.RawMessage
	if !BindJSONOrError(c, &raw) {
		return repositories.PermissionPatch{}, false
	}

	var patch repositories.PermissionPatch
	decode := func(key string, dst any) bool {
		body, present := raw[key]
		if !present {
			return true
		}
		if err := json.Unmarshal(body, dst); err != nil {
			RespondError(c, http.StatusBadRequest, "invalid value for "+key)
			return false
		}
		return true
	}

	if !decode("name", &patch.Name) ||
		!decode("description", &patch.Description) ||
		!decode("status", &patch.Status) {
		return repositories.PermissionPatch{}, false
	}
	if body, present := raw["category_id"]; present {
		patch.CategorySet = true
		if err := json.Unmarshal(body, &patch.CategoryID); err != nil {
			RespondError(c, http.StatusBadRequest, "invalid value for category_id")
			return repositories.PermissionPatch{}, false
		}
	}
	return patch, true
}

func DeletePermission(c *gin.Context) {
	id, ok := PathID(c)
	if !ok {
		return
	}

	repo := permissionRepo()
	before, err := repo.Get(id, false)
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
		EntityType: "permission",
		EntityID:   &id,
		OldValue:   before,
		IPAddress:  c.ClientIP(),
		UserAgent:  c.Request.UserAgent(),
	})

	c.Status(http.StatusNoContent)
}
