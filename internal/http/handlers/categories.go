package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"adminconsole/internal/domain/models"
	"adminconsole/internal/http/middleware"
	"adminconsole/internal/repositories"
	"adminconsole/internal/services"
)

type categoryCreateRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description *string `json:"description"`
	Status      string  `json:"status"`
}

func categoryListOptions(c *gin.Context) repositories.CategoryListOptions {
	return repositories.CategoryListOptions{
		IncludeUsage:               boolFlag(c, "include_usage"),
		IncludeAffectedPermissions: boolFlag(c, "include_affected_permissions"),
	}
}

// ListCategories returns permission categories, paginated. Supports
// ?include_usage=true and ?include_affected_permissions=true.
func ListCategories(c *gin.Context) {
	items, p, err := categoryRepo().List(ListQuery(c), categoryListOptions(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondList(c, items, p)
}

func GetCategory(c *gin.Context) {
	id, ok := PathID(c)
	if !ok {
		return
	}
	cat, err := categoryRepo().Get(id, categoryListOptions(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, cat)
}

func CreateCategory(c *gin.Context) {
	var req categoryCreateRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	status := req.Status
	if status == "" {
		status = models.StatusActive
	}

	cat, err := categoryRepo().Create(req.Name, req.Description, status)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	actor, _ := middleware.CurrentUser(c)
	auditService().Record(services.AuditEvent{
		UserID:     actor.ID,
		ActionType: models.ActionCreate,
		EntityType: "category",
		EntityID:   &cat.ID,
		NewValue:   cat,
		IPAddress:  c.ClientIP(),
		UserAgent:  c.Request.UserAgent(),
	})

	c.JSON(http.StatusCreated, cat)
}

func UpdateCategory(c *gin.Context) {
	id, ok := PathID(c)
	if !ok {
		return
	}

	repo := categoryRepo()
	before, err := repo.Get(id, repositories.CategoryListOptions{})
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	var patch repositories.CategoryPatch
	if !BindJSONOrError(c, &patch) {
		return
	}

	cat, err := repo.Update(id, patch)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	actor, _ := middleware.CurrentUser(c)
	auditService().RecordUpdate(services.AuditEvent{
		UserID:     actor.ID,
		ActionType: models.ActionUpdate,
		EntityType: "category",
		EntityID:   &cat.ID,
		IPAddress:  c.ClientIP(),
		UserAgent:  c.Request.UserAgent(),
	}, before, cat)

	c.JSON(http.StatusOK, cat)
}

func DeleteCategory(c *gin.Context) {
	id, ok := PathID(c)
	if !ok {
		return
	}

	repo := categoryRepo()
	before, err := repo.Get(id, repositories.CategoryListOptions{})
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
		EntityType: "category",
		EntityID:   &id,
		OldValue:   before,
		IPAddress:  c.ClientIP(),
		UserAgent:  c.Request.UserAgent(),
	})

	c.Status(http.StatusNoContent)
}
