// Package domain defines domain-level errors for the users feature.
package domain

import "errors"

// Domain errors for user operations.
// These errors represent business logic failures and should be handled appropriately by upper layers.
var (
	// ErrUserNotFound indicates that no user was found with the given criteria.
	ErrUserNotFound = errors.New("user not found")

	// ErrEmailAlreadyExists indicates that a user with the given email already exists.
	// It is returned by create and by updates that would collide with another user's email.
	ErrEmailAlreadyExists = errors.New("email already exists")

	// ErrInvalidCredentials indicates that the provided credentials are incorrect.
	// This is returned during login when email or password is invalid.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrTokenCreation indicates that a JWT token could not be issued for an
	// otherwise valid login.
	ErrTokenCreation = errors.New("could not create token")
)
