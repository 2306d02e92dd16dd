package app

import "github.com/google/uuid"

func newID() uuid.UUID {
	return uuid.New()
}
