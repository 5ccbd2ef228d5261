package domain

import (
	"errors"
	"time"
)

// User represents a back-office user of the receivables service.
type User struct {
	ID             string
	Email          string
	Name           string
	HashedPassword string
	Role           Role
	Active         bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Role represents a user's access level
type Role string

const (
	// RoleAdmin has full access, including user management
	RoleAdmin Role = "admin"

	// RoleClerk can create invoices and record payments
	RoleClerk Role = "clerk"

	// RoleViewer can only read statements and reports
	RoleViewer Role = "viewer"
)

var validRoles = map[Role]bool{
	RoleAdmin:  true,
	RoleClerk:  true,
	RoleViewer: true,
}

// IsValid checks if the role is a known role.
func (r Role) IsValid() bool {
	return validRoles[r]
}

// CanWrite checks if the role can create invoices, notes and payments.
func (r Role) CanWrite() bool {
	return r == RoleAdmin || r == RoleClerk
}

// CanManageUsers checks if the role can manage other users.
func (r Role) CanManageUsers() bool {
	return r == RoleAdmin
}

// Authentication errors
var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
)
