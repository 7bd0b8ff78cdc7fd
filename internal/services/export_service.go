package services

import (
	"bytes"
	"fmt"
	"time"

	"adminconsole/internal/query"
	"adminconsole/internal/repositories"

	"github.com/phpdave11/gofpdf"
)

// exportPageSize caps how many entries one report carries.
const exportPageSize = 500

// ExportService renders the audit trail matching a filter set as a PDF
// report.
type ExportService struct {
	AuditRepo repositories.AuditRepository
}

// GenerateAuditReport builds the report for the given filter/sort state
// and returns the document plus a suggested filename.
func (s ExportService) GenerateAuditReport(q query.State) ([]byte, string, error) {
	q.Page = 1
	q.PerPage = exportPageSize
	entries, pag, err := s.AuditRepo.List(q)
	if err != nil {
		return nil, "", err
	}

	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetTitle("Audit Trail Report", false)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, "Audit Trail Report")
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Generated %s - %d of %d entries",
		time.Now().Format("2006-01-02 15:04"), len(entries), pag.TotalItems))
	pdf.Ln(10)

	widths := []float64{35, 30, 22, 30, 14, 146}
	headers := []string{"Timestamp", "User", "Action", "Entity", "ID", "Description"}
	pdf.SetFont("Helvetica", "B", 9)
	for i, h := range headers {
		pdf.CellFormat(widths[i], 7, h, "1", 0, "L", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 9)
	for _, e := range entries {
		actor := fmt.Sprintf("#%d", e.UserID)
		if e.User != nil {
			actor = e.User.Username
		}
		id := "-"
		if e.EntityID != nil {
			id = fmt.Sprintf("%d", *e.EntityID)
		}
		cells := []string{
			e.Timestamp.Format("2006-01-02 15:04:05"),
			actor,
			e.ActionType,
			e.EntityType,
			id,
			truncate(e.Description, 110),
		}
		for i, c := range cells {
			pdf.CellFormat(widths[i], 6, c, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	if len(entries) == 0 {
		pdf.Ln(4)
		pdf.SetFont("Helvetica", "I", 10)
		pdf.Cell(0, 6, "No audit entries match the selected filters.")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}
	filename := "audit-trail-" + time.Now().Format("20060102-150405") + ".pdf"
	return buf.Bytes(), filename, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}
