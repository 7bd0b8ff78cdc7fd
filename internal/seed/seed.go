package seed

import (
	"database/sql"
	"fmt"
	"log"

	"golang.org/x/crypto/bcrypt"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		username VARCHAR(80) NOT NULL UNIQUE,
		email VARCHAR(255) NOT NULL UNIQUE,
		password_hash VARCHAR(255) NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS roles (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(80) NOT NULL UNIQUE,
		description TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS categories (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(120) NOT NULL UNIQUE,
		description TEXT,
		status VARCHAR(20) NOT NULL DEFAULT 'active'
	)`,
	`CREATE TABLE IF NOT EXISTS permissions (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(120) NOT NULL UNIQUE,
		description TEXT,
		status VARCHAR(20) NOT NULL DEFAULT 'active',
		category_id BIGINT NULL,
		CONSTRAINT fk_permissions_category FOREIGN KEY (category_id)
			REFERENCES categories(id) ON DELETE SET NULL
	)`,
	`CREATE TABLE IF NOT EXISTS user_roles (
		user_id BIGINT NOT NULL,
		role_id BIGINT NOT NULL,
		PRIMARY KEY (user_id, role_id),
		CONSTRAINT fk_user_roles_user FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE,
		CONSTRAINT fk_user_roles_role FOREIGN KEY (role_id) REFERENCES roles(id) ON DELETE CASCADE
	)`,
	`CREATE TABLE IF NOT EXISTS role_permissions (
		role_id BIGINT NOT NULL,
		permission_id BIGINT NOT NULL,
		PRIMARY KEY (role_id, permission_id),
		CONSTRAINT fk_role_permissions_role FOREIGN KEY (role_id) REFERENCES roles(id) ON DELETE CASCADE,
		CONSTRAINT fk_role_permissions_permission FOREIGN KEY (permission_id) REFERENCES permissions(id) ON DELETE CASCADE
	)`,
	`CREATE TABLE IF NOT EXISTS contacts (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		first_name VARCHAR(80) NOT NULL,
		last_name VARCHAR(80) NOT NULL,
		email VARCHAR(255) NOT NULL,
		user_id BIGINT NOT NULL,
		CONSTRAINT fk_contacts_user FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE,
		UNIQUE KEY uq_contacts_owner_email (user_id, email)
	)`,
	`CREATE TABLE IF NOT EXISTS audit_logs (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		user_id BIGINT NOT NULL,
		action_type VARCHAR(40) NOT NULL,
		entity_type VARCHAR(80) NOT NULL,
		entity_id BIGINT NULL,
		field_name VARCHAR(120) NULL,
		old_value JSON NULL,
		new_value JSON NULL,
		description TEXT,
		ip_address VARCHAR(64),
		user_agent VARCHAR(255),
		timestamp TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		KEY idx_audit_entity (entity_type, entity_id),
		KEY idx_audit_user (user_id),
		KEY idx_audit_timestamp (timestamp)
	)`,
}

type seedCategory struct {
	name        string
	description string
}

type seedPermission struct {
	name        string
	description string
	category    string
}

var defaultCategories = []seedCategory{
	{"User Management", "Permissions over user accounts and their roles"},
	{"Role Management", "Permissions over roles and their assignments"},
	{"Permission Management", "Permissions over the permission catalog"},
	{"Category Management", "Permissions over permission categories"},
	{"Audit", "Permissions over the audit trail"},
}

var defaultPermissions = []seedPermission{
	{"user.read.all", "View all user accounts", "User Management"},
	{"user.manage", "Modify user accounts and role assignments", "User Management"},
	{"role.read.all", "View all roles", "Role Management"},
	{"role.manage", "Create, update and delete roles", "Role Management"},
	{"permission.read.all", "View the permission catalog", "Permission Management"},
	{"permission.manage", "Create, update and delete permissions", "Permission Management"},
	{"category.read.all", "View permission categories", "Category Management"},
	{"category.manage", "Create, update and delete categories", "Category Management"},
	{"audit.read.all", "View and export the audit trail", "Audit"},
}

var defaultRoles = map[string][]string{
	"Admin": {
		"user.read.all", "user.manage",
		"role.read.all", "role.manage",
		"permission.read.all", "permission.manage",
		"category.read.all", "category.manage",
		"audit.read.all",
	},
	"User":  {},
	"Guest": {},
}

// Run creates the schema and inserts the default roles, permission
// catalog, and an initial admin account. Safe to call repeatedly.
func Run(db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("creating schema: %w", err)
		}
	}

	categoryIDs := map[string]int64{}
	for _, c := range defaultCategories {
		if _, err := db.Exec(
			`INSERT INTO categories (name, description, status) VALUES (?, ?, 'active')
			 ON DUPLICATE KEY UPDATE description = VALUES(description)`,
			c.name, c.description); err != nil {
			return fmt.Errorf("seeding category %q: %w", c.name, err)
		}
		var id int64
		if err := db.QueryRow(`SELECT id FROM categories WHERE name = ?`, c.name).Scan(&id); err != nil {
			return err
		}
		categoryIDs[c.name] = id
	}

	permissionIDs := map[string]int64{}
	for _, p := range defaultPermissions {
		if _, err := db.Exec(
			`INSERT INTO permissions (name, description, status, category_id) VALUES (?, ?, 'active', ?)
			 ON DUPLICATE KEY UPDATE description = VALUES(description), category_id = VALUES(category_id)`,
			p.name, p.description, categoryIDs[p.category]); err != nil {
			return fmt.Errorf("seeding permission %q: %w", p.name, err)
		}
		var id int64
		if err := db.QueryRow(`SELECT id FROM permissions WHERE name = ?`, p.name).Scan(&id); err != nil {
			return err
		}
		permissionIDs[p.name] = id
	}

	for name, perms := range defaultRoles {
		if _, err := db.Exec(
			`INSERT IGNORE INTO roles (name, description) VALUES (?, ?)`,
			name, name+" role"); err != nil {
			return fmt.Errorf("seeding role %q: %w", name, err)
		}
		var roleID int64
		if err := db.QueryRow(`SELECT id FROM roles WHERE name = ?`, name).Scan(&roleID); err != nil {
			return err
		}
		for _, pname := range perms {
			if _, err := db.Exec(
				`INSERT IGNORE INTO role_permissions (role_id, permission_id) VALUES (?, ?)`,
				roleID, permissionIDs[pname]); err != nil {
				return err
			}
		}
	}

	if err := seedAdmin(db); err != nil {
		return err
	}

	log.Println("seed complete")
	return nil
}

func seedAdmin(db *sql.DB) error {
	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM users WHERE username = 'admin'`).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("admin12345"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	res, err := db.Exec(
		`INSERT INTO users (username, email, password_hash) VALUES ('admin', 'admin@example.com', ?)`,
		string(hash))
	if err != nil {
		return err
	}
	userID, _ := res.LastInsertId()

	var roleID int64
	if err := db.QueryRow(`SELECT id FROM roles WHERE name = 'Admin'`).Scan(&roleID); err != nil {
		return err
	}
	_, err = db.Exec(`INSERT IGNORE INTO user_roles (user_id, role_id) VALUES (?, ?)`, userID, roleID)
	if err == nil {
		log.Println("seeded default admin account (change the password)")
	}
	return err
}
