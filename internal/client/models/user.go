// Package models defines the client-side account types.
package models

import (
	"github.com/google/uuid"
)

// User is the authenticated account record as the server reports it.
// It is a value type: holders replace it wholesale and never mutate a
// stored instance in place.
type User struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	Email    string    `json:"email"`
	Avatar   string    `json:"avatar,omitempty"`
}
