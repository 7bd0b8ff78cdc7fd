package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"adminconsole/internal/domain"
)

// RespondDomainError maps domain errors onto HTTP statuses. Anything
// unrecognized is a 500 with a generic message; the detail goes to the log
// only.
func RespondDomainError(c *gin.Context, err error) {
	switch {
	case domain.IsNotFound(err):
		RespondError(c, http.StatusNotFound, err.Error())
	case domain.IsValidation(err):
		RespondError(c, http.StatusBadRequest, err.Error())
	case domain.IsConflict(err):
		RespondError(c, http.StatusConflict, err.Error())
	case domain.IsForbidden(err):
		RespondError(c, http.StatusForbidden, err.Error())
	default:
		log.Printf("internal error: %v", err)
		RespondError(c, http.StatusInternalServerError, "internal server error")
	}
}
