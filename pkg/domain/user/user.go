package user

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrUserNotFound is returned when a user cannot be found in the
	// repository.
	ErrUserNotFound = errors.New("user not found")
	// ErrMissingEmail is returned when an operation needs the user's email and none is set.
	ErrMissingEmail = errors.New("user has no email address")
)

// User represents a user in the system.
type User struct {
	ID              uuid.UUID `json:"id"`
	Email           string    `json:"email"`
	FirstName       string    `json:"firstName"`
	LastName        string    `json:"lastName"`
	ProfileImageURL string    `json:"profileImageUrl"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// New creates a user with the given id and current timestamps.
func New(id uuid.UUID, email, firstName, lastName, profileImageURL string) *User {
	now := time.Now().UTC()
	return &User{
		ID:              id,
		Email:           strings.TrimSpace(email),
		FirstName:       firstName,
		LastName:        lastName,
		ProfileImageURL: profileImageURL,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

// Merge copies identity fields from other, keeping ID and CreatedAt.
// Empty fields in other do not overwrite existing values.
func (u *User) Merge(other User) {
	if other.Email != "" {
		u.Email = strings.TrimSpace(other.Email)
	}
	if other.FirstName != "" {
		u.FirstName = other.FirstName
	}
	if other.LastName != "" {
		u.LastName = other.LastName
	}
	if other.ProfileImageURL != "" {
		u.ProfileImageURL = other.ProfileImageURL
	}
	u.UpdatedAt = time.Now().UTC()
}

// DisplayName is the name used in greetings.
func (u *User) DisplayName() string {
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name == "" {
		return u.Email
	}
	return name
}
