// Package user contains the domain model for hub members: regular users,
// event organizers, and administrators. Role is a pair of flags rather than
// a type hierarchy; an administrator is a user with IsAdmin set.
package user

import (
	"time"

	"github.com/google/uuid"
)

// User - a registered member of the hub.
type User struct {
	// ID - unique identifier, assigned at construction and immutable.
	// Identity equality, not structural equality, defines entity equality.
	ID uuid.UUID `json:"id"`

	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`

	// Email doubles as the login name.
	Email string `json:"email"`

	// PasswordHash - bcrypt hash of the password. Never the plain text.
	PasswordHash string `json:"password_hash"`

	Description string    `json:"description"`
	DateOfBirth time.Time `json:"date_of_birth"`

	// IsAdmin grants every permission check; admins bypass ownership checks
	// uniformly across all services.
	IsAdmin bool `json:"is_admin"`

	// IsOrganizer allows creating and managing events.
	IsOrganizer bool `json:"is_organizer"`

	// EmailNotification - whether the user opted into email notifications.
	EmailNotification bool `json:"email_notification"`

	CreatedAt time.Time `json:"created_at"`
}

// New creates a User with a fresh identifier.
func New(firstName, lastName, email, passwordHash string, now time.Time) User {
	return User{
		ID:           uuid.New(),
		FirstName:    firstName,
		LastName:     lastName,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    now,
	}
}

// EntityID returns the unique identifier.
func (u User) EntityID() uuid.UUID {
	return u.ID
}

// Clone returns an independent copy of the user.
func (u User) Clone() User {
	return u
}

// FullName returns "First Last" for display.
func (u User) FullName() string {
	return u.FirstName + " " + u.LastName
}
