package repositories

import (
	"database/sql"
	"time"

	"adminconsole/internal/domain/models"
	"adminconsole/internal/query"
)

// AuditRepository wraps DB access for the audit trail.
type AuditRepository struct {
	DB *sql.DB
}

// Audit sort keys map UI names onto columns; anything else falls back to
// the timestamp.
var auditSortColumns = map[string]string{
	"date":   "a.timestamp",
	"user":   "u.username",
	"action": "a.action_type",
	"entity": "a.entity_type",
}

// Insert records one audit entry.
func (r AuditRepository) Insert(entry models.AuditLog) error {
	_, err := r.DB.Exec(`INSERT INTO audit_logs
(user_id, timestamp, action_type, entity_type, entity_id, field_name, old_value, new_value, description, ip_address, user_agent)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.UserID, entry.Timestamp, entry.ActionType, entry.EntityType,
		nullInt64(entry.EntityID), nullString(entry.FieldName),
		rawOrNull(entry.OldValue), rawOrNull(entry.NewValue),
		entry.Description, entry.IPAddress, entry.UserAgent)
	return err
}

func rawOrNull(raw []byte) any {
	if len(raw) == 0 {
		return nil
	}
	return string(raw)
}

// List returns one page of audit entries joined with the acting user.
// Supported filters: entity_type, entity_id, action_type, user_id,
// from_date, to_date (RFC 3339 or YYYY-MM-DD) and a free search across
// username, description, entity type, and field name.
func (r AuditRepository) List(q query.State) ([]models.AuditLog, query.Pagination, error) {
	where := ""
	args := []any{}
	addCond := func(cond string, vals ...any) {
		where += " AND " + cond
		args = append(args, vals...)
	}

	if v := q.Filter("entity_type"); v != "" {
		addCond("a.entity_type LIKE ?", likePattern(v))
	}
	if v := q.Filter("entity_id"); v != "" {
		addCond("a.entity_id = ?", v)
	}
	if v := q.Filter("action_type"); v != "" {
		addCond("a.action_type LIKE ?", likePattern(v))
	}
	if v := q.Filter("user_id"); v != "" {
		addCond("a.user_id = ?", v)
	}
	if t, ok := parseDate(q.Filter("from_date")); ok {
		addCond("a.timestamp >= ?", t)
	}
	if t, ok := parseDate(q.Filter("to_date")); ok {
		addCond("a.timestamp <= ?", t)
	}
	if q.Search != "" {
		p := likePattern(q.Search)
		addCond("(u.username LIKE ? OR a.description LIKE ? OR a.entity_type LIKE ? OR a.field_name LIKE ?)",
			p, p, p, p)
	}
	if where != "" {
		where = " WHERE" + where[4:]
	}

	var total int64
	if err := r.DB.QueryRow(`SELECT COUNT(*) FROM audit_logs a JOIN users u ON u.id = a.user_id`+where,
		args...).Scan(&total); err != nil {
		return nil, query.Pagination{}, err
	}

	pag := query.NewPagination(total, q.Page, q.PerPage)
	order := sortColumn(q.SortBy, auditSortColumns, "a.timestamp")
	dir := sortDirection(q.SortOrder, "DESC")

	rows, err := r.DB.Query(`SELECT a.id, a.user_id, a.timestamp, a.action_type, a.entity_type, a.entity_id,
a.field_name, a.old_value, a.new_value, a.description, a.ip_address, a.user_agent, u.id, u.username
FROM audit_logs a JOIN users u ON u.id = a.user_id`+
		where+` ORDER BY `+order+` `+dir+` LIMIT ? OFFSET ?`,
		append(args, pag.PerPage, (pag.CurrentPage-1)*pag.PerPage)...)
	if err != nil {
		return nil, query.Pagination{}, err
	}
	defer rows.Close()

	entries := []models.AuditLog{}
	for rows.Next() {
		var (
			e         models.AuditLog
			entityID  sql.NullInt64
			fieldName sql.NullString
			oldVal    sql.NullString
			newVal    sql.NullString
			actor     models.AuditUser
		)
		if err := rows.Scan(&e.ID, &e.UserID, &e.Timestamp, &e.ActionType, &e.EntityType, &entityID,
			&fieldName, &oldVal, &newVal, &e.Description, &e.IPAddress, &e.UserAgent,
			&actor.ID, &actor.Username); err != nil {
			return nil, query.Pagination{}, err
		}
		e.EntityID = int64Ptr(entityID)
		e.FieldName = stringPtr(fieldName)
		if oldVal.Valid {
			e.OldValue = []byte(oldVal.String)
		}
		if newVal.Valid {
			e.NewValue = []byte(newVal.String)
		}
		e.User = &actor
		entries = append(entries, e)
	}
	return entries, pag, rows.Err()
}

func parseDate(v string) (time.Time, bool) {
	if v == "" {
		return time.Time{}, false
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, v); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
