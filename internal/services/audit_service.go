// Package services holds the pieces of business logic shared by several
// handlers: audit trail recording and report generation.
package services

import (
	"encoding/json"
	"fmt"
	"log"
	"sort"
	"time"

	"adminconsole/internal/domain/models"
	"adminconsole/internal/repositories"
)

// AuditService records mutation events. A failed audit write is logged
// and swallowed; it must never fail the request that triggered it.
type AuditService struct {
	Repo repositories.AuditRepository
}

// AuditEvent describes one mutation to record.
type AuditEvent struct {
	UserID      int64
	ActionType  string
	EntityType  string
	EntityID    *int64
	FieldName   *string
	OldValue    any
	NewValue    any
	Description string
	IPAddress   string
	UserAgent   string
}

// Record writes one audit entry, filling in a generated description when
// the caller left it empty.
func (s AuditService) Record(ev AuditEvent) {
	entry := models.AuditLog{
		UserID:      ev.UserID,
		Timestamp:   time.Now().UTC(),
		ActionType:  ev.ActionType,
		EntityType:  ev.EntityType,
		EntityID:    ev.EntityID,
		FieldName:   ev.FieldName,
		Description: ev.Description,
		IPAddress:   ev.IPAddress,
		UserAgent:   ev.UserAgent,
	}
	if ev.OldValue != nil {
		entry.OldValue = marshalValue(ev.OldValue)
	}
	if ev.NewValue != nil {
		entry.NewValue = marshalValue(ev.NewValue)
	}
	if entry.Description == "" {
		entry.Description = defaultDescription(ev)
	}
	if err := s.Repo.Insert(entry); err != nil {
		log.Printf("audit: failed to record %s %s: %v", ev.ActionType, ev.EntityType, err)
	}
}

// RecordUpdate diffs two snapshots of the same entity and records one
// entry per changed field, mirroring how the audit viewer presents
// updates. Snapshots are compared through their JSON form.
func (s AuditService) RecordUpdate(base AuditEvent, oldSnapshot, newSnapshot any) {
	base.ActionType = models.ActionUpdate
	changes := FieldChanges(oldSnapshot, newSnapshot)
	if len(changes) == 0 {
		return
	}
	for _, ch := range changes {
		ev := base
		name := ch.Field
		ev.FieldName = &name
		ev.OldValue = ch.Old
		ev.NewValue = ch.New
		ev.Description = ""
		s.Record(ev)
	}
}

// FieldChange is one differing field between two entity snapshots.
type FieldChange struct {
	Field string
	Old   any
	New   any
}

// FieldChanges computes the changed top-level JSON fields between two
// snapshots, sorted by field name. It is pure: equal inputs in any
// order of invocation yield identical output.
func FieldChanges(oldSnapshot, newSnapshot any) []FieldChange {
	oldMap := toMap(oldSnapshot)
	newMap := toMap(newSnapshot)

	fields := map[string]bool{}
	for k := range oldMap {
		fields[k] = true
	}
	for k := range newMap {
		fields[k] = true
	}

	changes := []FieldChange{}
	for field := range fields {
		oldJSON := marshalValue(oldMap[field])
		newJSON := marshalValue(newMap[field])
		if string(oldJSON) != string(newJSON) {
			changes = append(changes, FieldChange{Field: field, Old: oldMap[field], New: newMap[field]})
		}
	}
	sort.Slice(changes, func(i, j int) bool { return changes[i].Field < changes[j].Field })
	return changes
}

func toMap(v any) map[string]any {
	if v == nil {
		return map[string]any{}
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return map[string]any{}
	}
	out := map[string]any{}
	if err := json.Unmarshal(raw, &out); err != nil {
		return map[string]any{}
	}
	return out
}

func marshalValue(v any) json.RawMessage {
	raw, err := json.Marshal(v)
	if err != nil {
		raw, _ = json.Marshal(fmt.Sprint(v))
	}
	return raw
}

func defaultDescription(ev AuditEvent) string {
	id := "?"
	if ev.EntityID != nil {
		id = fmt.Sprintf("%d", *ev.EntityID)
	}
	switch ev.ActionType {
	case models.ActionCreate:
		return fmt.Sprintf("Created %s (ID: %s)", ev.EntityType, id)
	case models.ActionUpdate:
		if ev.FieldName != nil {
			return fmt.Sprintf("Updated %s (ID: %s) - '%s' changed from '%s' to '%s'",
				ev.EntityType, id, *ev.FieldName, marshalValue(ev.OldValue), marshalValue(ev.NewValue))
		}
		return fmt.Sprintf("Updated %s (ID: %s)", ev.EntityType, id)
	case models.ActionDelete:
		return fmt.Sprintf("Deleted %s (ID: %s)", ev.EntityType, id)
	default:
		return fmt.Sprintf("%s action on %s", ev.ActionType, ev.EntityType)
	}
}
