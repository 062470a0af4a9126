package models

import "time"

// Role is the resolved access level of a visitor.
type Role string

const (
	RoleAnonymous     Role = "anonymous"
	RoleAuthenticated Role = "authenticated"
	RoleAdmin         Role = "admin"
)

// User represents a store account. IsAdmin is the single canonical role
// flag; there is no separate profile table.
type User struct {
	ID           string    `db:"id" json:"id"`
	Email        string    `db:"email" json:"email"`
	Name         string    `db:"name" json:"name"`
	PasswordHash string    `db:"password_hash" json:"-"`
	IsAdmin      bool      `db:"is_admin" json:"isAdmin"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
}

// RoleOf maps an admin flag to a role for an authenticated user.
func RoleOf(isAdmin bool) Role {
	if isAdmin {
		return RoleAdmin
	}
	return RoleAuthenticated
}
