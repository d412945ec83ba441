package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Role enumerates admin privilege levels.
type Role string

const (
	// RoleAdmin can manage forestry records.
	RoleAdmin Role = "admin"
	// RoleSuperAdmin can additionally manage admin accounts.
	RoleSuperAdmin Role = "super_admin"
)

// UserStore defines persistence operations for admin users.
type UserStore interface {
	GetByUsername(ctx context.Context, username string) (User, error)
	GetByID(ctx context.Context, id uuid.UUID) (User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Create(ctx context.Context, user User) (User, error)
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash []byte) error
}

// User represents a stored admin account.
type User struct {
	ID           uuid.UUID
	Username     string
	Email        string
	PasswordHash []byte
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
