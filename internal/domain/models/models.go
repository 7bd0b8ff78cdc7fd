// Package models holds the entity records exchanged between the REST API,
// the repositories, and the console client. JSON field names mirror the
// wire format of the admin API.
package models

import (
	"encoding/json"
	"time"
)

// Contact is an address-book record owned by a user.
type Contact struct {
	ID        int64  `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	UserID    int64  `json:"user_id"`
}

// CategoryRef is the category shape embedded in a permission.
type CategoryRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Permission is a single grantable capability, optionally categorized.
type Permission struct {
	ID          int64        `json:"id"`
	Name        string       `json:"name"`
	Description *string      `json:"description"`
	Status      string       `json:"status"`
	Category    *CategoryRef `json:"category"`
	// Usage is the number of roles holding this permission. Populated only
	// when the caller asked for include_usage.
	Usage *int `json:"usage,omitempty"`
}

// Category groups permissions for display.
type Category struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Status      string  `json:"status"`
	Usage       *int    `json:"usage,omitempty"`
	// AffectedPermissions is populated only for include_affected_permissions.
	AffectedPermissions []PermissionRef `json:"affected_permissions,omitempty"`
}

// PermissionRef is the compact permission shape embedded in a category.
type PermissionRef struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Status string `json:"status"`
}

// Role bundles permissions for assignment to users.
type Role struct {
	ID          int64        `json:"id"`
	Name        string       `json:"name"`
	Description *string      `json:"description"`
	Permissions []Permission `json:"permissions"`
}

// HasPermission reports whether the role carries the named permission.
func (r Role) HasPermission(name string) bool {
	for _, p := range r.Permissions {
		if p.Name == name {
			return true
		}
	}
	return false
}

// User is an operator account. Password hashes never leave the server.
type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Roles    []Role `json:"roles"`
}

// HasPermission reports whether any of the user's roles carries the
// named permission.
func (u User) HasPermission(name string) bool {
	for _, r := range u.Roles {
		if r.HasPermission(name) {
			return true
		}
	}
	return false
}

// IsAdmin reports whether the user holds the Admin role.
func (u User) IsAdmin() bool {
	for _, r := range u.Roles {
		if r.Name == "Admin" {
			return true
		}
	}
	return false
}

// Audit action types.
const (
	ActionCreate = "CREATE"
	ActionUpdate = "UPDATE"
	ActionDelete = "DELETE"
	ActionLogin  = "LOGIN"
	ActionLogout = "LOGOUT"
)

// AuditUser identifies the actor of an audit entry.
type AuditUser struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

// AuditLog is one recorded mutation event.
type AuditLog struct {
	ID          int64           `json:"id"`
	UserID      int64           `json:"user_id"`
	Timestamp   time.Time       `json:"timestamp"`
	ActionType  string          `json:"action_type"`
	EntityType  string          `json:"entity_type"`
	EntityID    *int64          `json:"entity_id"`
	FieldName   *string         `json:"field_name"`
	OldValue    json.RawMessage `json:"old_value"`
	NewValue    json.RawMessage `json:"new_value"`
	Description string          `json:"description"`
	IPAddress   string          `json:"ip_address"`
	UserAgent   string          `json:"user_agent"`
	User        *AuditUser      `json:"user_details,omitempty"`
}

// Entity statuses shared by permissions and categories.
const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

// ValidStatus reports whether s is an accepted entity status.
func ValidStatus(s string) bool {
	return s == StatusActive || s == StatusInactive
}
