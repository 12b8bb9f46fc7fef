package user

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// Role represents user role (matches user_role enum)
type Role string

const (
	RoleCustomer Role = "customer"
	RoleOwner    Role = "owner"
	RoleAdmin    Role = "admin"
)

// User represents an account in the marketplace
type User struct {
	ID           uuid.UUID      `db:"id"`
	Email        string         `db:"email"`
	PasswordHash string         `db:"password_hash"`
	Role         Role           `db:"role"`
	FullName     string         `db:"full_name"`
	Phone        sql.NullString `db:"phone"`
	IsActive     bool           `db:"is_active"`
	LastLoginAt  sql.NullTime   `db:"last_login_at"`
	CreatedAt    time.Time      `db:"created_at"`
	UpdatedAt    time.Time      `db:"updated_at"`
}

// CanManageFacilities reports whether the user may own facilities
func (u *User) CanManageFacilities() bool {
	return u.Role == RoleOwner || u.Role == RoleAdmin
}

// IsAdmin reports whether the user is an administrator
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
