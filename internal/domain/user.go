package domain

import (
	"time"

	"github.com/google/uuid"
)

// User represents an account created through social login
type User struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Image     string    `json:"image,omitempty"`
	Provider  string    `json:"provider"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Identity is the profile returned by an identity provider after login
type Identity struct {
	Provider string
	Email    string
	Name     string
	Image    string
}
