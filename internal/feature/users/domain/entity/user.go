// Package entity defines the domain entities for the users feature.
package entity

import "time"

// User represents a registered user in the system.
// It holds the authentication credentials and the profile fields
// exposed through the user-management API.
type User struct {
	// ID is the unique identifier for the user. It is assigned by the
	// store on creation and never changes afterwards.
	ID uint `gorm:"primaryKey" json:"id"`

	// Name is the user's display name.
	Name string `gorm:"size:255;not null" json:"name"`

	// Email is the user's email address used for authentication.
	// It must be unique across all users.
	Email string `gorm:"uniqueIndex;size:255;not null" json:"email"`

	// Password is the bcrypt hash of the user's password.
	// It is never serialized in API responses.
	Password string `gorm:"size:255;not null" json:"-"`

	// Age is the user's age in years. Zero is a valid value.
	Age int `gorm:"not null" json:"age"`

	// MembershipStatus is an optional membership label. A nil value
	// maps to a NULL column.
	MembershipStatus *string `gorm:"size:255" json:"membership_status"`

	// CreatedAt is the timestamp when the user was created.
	CreatedAt time.Time `json:"-"`

	// UpdatedAt is the timestamp when the user was last updated.
	UpdatedAt time.Time `json:"-"`
}
