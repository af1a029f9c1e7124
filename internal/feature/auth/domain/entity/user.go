// Package entity defines the domain entities for the auth feature.
package entity

import "time"

// User represents an account identified by its email address.
// A user may exist without a password until they register one.
type User struct {
	// ID is a ksuid string assigned when the row is first written.
	ID string `gorm:"primaryKey;size:27"`

	// Email is stored trimmed and lower-cased. It must be unique across all users.
	Email string `gorm:"uniqueIndex;size:255;not null"`

	// PasswordHash is the bcrypt hash of the user's password, or nil if none was set.
	PasswordHash *string `gorm:"size:255"`

	// PasswordCreatedAt is when a password was first set. It survives password changes.
	PasswordCreatedAt *time.Time

	// PasswordUpdatedAt is when the password was last written.
	PasswordUpdatedAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasPassword reports whether the user has a password hash on record.
func (u *User) HasPassword() bool {
	return u.PasswordHash != nil && *u.PasswordHash != ""
}
