package adminclient

import (
	"context"
	"net/http"

	"adminconsole/internal/domain/models"
	"adminconsole/internal/query"
)

const auditEndpoint = "/app/audit-logs"

// AuditService reads and exports the audit trail.
type AuditService struct{ c *Client }

func (c *Client) Audit() AuditService { return AuditService{c: c} }

// List returns audit entries newest first. Filters go through the query
// state: entity_type, entity_id, action_type, user_id, from_date,
// to_date, plus free-text search.
func (s AuditService) List(ctx context.Context, q query.State) (Page[models.AuditLog], error) {
	res, err := Fetch[Page[models.AuditLog]](ctx, s.c, auditEndpoint, q, FetchOptions[Page[models.AuditLog]]{})
	return res.Data, err
}

// Export downloads the current filter selection as a PDF.
func (s AuditService) Export(ctx context.Context, q query.State) ([]byte, error) {
	return s.c.doRaw(ctx, http.MethodGet, auditEndpoint+"/export", q.Encode())
}
