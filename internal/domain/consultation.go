package domain

import (
	"time"

	"github.com/google/uuid"
)

// Consultation is a session booking request submitted from the storefront.
type Consultation struct {
	ID      uuid.UUID
	Name    string
	Email   string
	Topic   string
	Message string

	CreatedAt time.Time
}

func (c Consultation) Validate() error {
	if c.Name == "" {
		return ErrNameRequired
	}
	if c.Email == "" {
		return ErrEmailRequired
	}
	return nil
}
