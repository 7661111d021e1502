// Package person manages cast & crew records.
package person

import (
	"errors"
	"time"
)

// ErrNotFound is returned when a person does not exist.
var ErrNotFound = errors.New("person not found")

// Person represents one cast or crew member.
type Person struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CreateRequest is the body for creating or updating a person.
type CreateRequest struct {
	Name string `json:"name" validate:"required"`
	Role string `json:"role"`
}
