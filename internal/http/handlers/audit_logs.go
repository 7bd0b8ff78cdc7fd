package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ListAuditLogs returns audit entries, newest first, with filters for
// entity_type, entity_id, action_type, user_id, from_date, and to_date.
func ListAuditLogs(c *gin.Context) {
	items, p, err := auditRepo().List(ListQuery(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondList(c, items, p)
}

// ExportAuditLogs renders the current filter selection as a PDF report.
func ExportAuditLogs(c *gin.Context) {
	pdf, filename, err := exportService().GenerateAuditReport(ListQuery(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}
