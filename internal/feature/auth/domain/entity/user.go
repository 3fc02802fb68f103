// Package entity defines the domain entities for the auth feature.
package entity

import "time"

// User roles. Admins manage the registry; petugas (staff) have read access.
const (
	RoleAdmin   = "admin"
	RolePetugas = "petugas"
)

// User represents a registered account in the system.
type User struct {
	// ID is the unique identifier for the user.
	ID uint `gorm:"primaryKey"`

	// Name is the display name of the user.
	Name string `gorm:"size:255;not null"`

	// Email is the user's email address used for authentication.
	// It must be unique across all users.
	Email string `gorm:"uniqueIndex;size:255;not null"`

	// Password is the bcrypt hash of the user's password.
	// This never stores plaintext passwords.
	Password string `gorm:"size:255;not null"`

	// Role is either RoleAdmin or RolePetugas.
	Role string `gorm:"size:16;not null;default:petugas"`

	// CreatedAt is the timestamp when the user was created.
	CreatedAt time.Time

	// UpdatedAt is the timestamp when the user was last updated.
	UpdatedAt time.Time
}

// IsAdmin reports whether the user may manage resident records.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
