package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"adminconsole/internal/domain/models"
	"adminconsole/internal/http/middleware"
	"adminconsole/internal/repositories"
	"adminconsole/internal/services"
)

type contactRequest struct {
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
}

// ListContacts returns the caller's contacts, paginated.
func ListContacts(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)
	items, p, err := contactRepo().List(ListQuery(c), user.ID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondList(c, items, p)
}

func GetContact(c *gin.Context) {
	id, ok := PathID(c)
	if !ok {
		return
	}
	user, _ := middleware.CurrentUser(c)
	contact, err := contactRepo().Get(id, user.ID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, contact)
}

func CreateContact(c *gin.Context) {
	var req contactRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	user, _ := middleware.CurrentUser(c)

	contact, err := contactRepo().Create(models.Contact{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		UserID:    user.ID,
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	auditService().Record(services.AuditEvent{
		UserID:     user.ID,
		ActionType: models.ActionCreate,
		EntityType: "contact",
		EntityID:   &contact.ID,
		NewValue:   contact,
		IPAddress:  c.ClientIP(),
		UserAgent:  c.Request.UserAgent(),
	})

	c.JSON(http.StatusCreated, contact)
}

func UpdateContact(c *gin.Context) {
	id, ok := PathID(c)
	if !ok {
		return
	}
	user, _ := middleware.CurrentUser(c)

	repo := contactRepo()
	before, err := repo.Get(id, user.ID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	var patch repositories.ContactPatch
	if !BindJSONOrError(c, &patch) {
		return
	}

	contact, err := repo.Update(id, user.ID, patch)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	auditService().RecordUpdate(services.AuditEvent{
		UserID:     user.ID,
		ActionType: models.ActionUpdate,
		EntityType: "contact",
		EntityID:   &contact.ID,
		IPAddress:  c.ClientIP(),
		UserAgent:  c.Request.UserAgent(),
	}, before, contact)

	c.JSON(http.StatusOK, contact)
}

func DeleteContact(c *gin.Context) {
	id, ok := PathID(c)
	if !ok {
		return
	}
	user, _ := middleware.CurrentUser(c)

	repo := contactRepo()
	before, err := repo.Get(id, user.ID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if err := repo.Delete(id, user.ID); err != nil {
		RespondDomainError(c, err)
		return
	}

	auditService().Record(services.AuditEvent{
		UserID:     user.ID,
		ActionType: models.ActionDelete,
		EntityType: "contact",
		EntityID:   &id,
		OldValue:   before,
		IPAddress:  c.ClientIP(),
		UserAgent:  c.Request.UserAgent(),
	})

	c.Status(http.StatusNoContent)
}
