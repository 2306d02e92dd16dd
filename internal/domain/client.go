package domain

import (
	"time"

	"github.com/google/uuid"
)

// Client is a party that can supply or consume orders.
// Clients are never hard-deleted; deactivation is a soft state transition.
type Client struct {
	ID               uuid.UUID
	Name             string
	Email            string
	Address          string
	Active           bool
	DeactivationDate *time.Time
	CreatedAt        time.Time
}
