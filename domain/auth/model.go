package auth

import (
	"time"
)

// Administrator roles. Role is assigned at registration and never changes
// afterwards; no endpoint mutates it.
const (
	RoleAdmin      = "admin"
	RoleSuperAdmin = "super-admin"
)

// ValidRole reports whether role is one of the known administrator roles.
func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleSuperAdmin
}

// Admin represents an administrator record. The password hash never leaves
// the server.
type Admin struct {
	ID           int64     `db:"id" json:"id"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	Role         string    `db:"role" json:"role"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// LoginRequest is the login payload
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse carries the issued session token
type LoginResponse struct {
	Token string `json:"token"`
}

// RegisterRequest is the payload for creating a new administrator
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role" validate:"omitempty,oneof=admin super-admin"`
}
