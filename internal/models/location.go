package models

import (
	"time"

	"github.com/google/uuid"
)

type Location struct {
	ID           uuid.UUID
	CreatedAt    time.Time
	Country      string
	State        string
	City         string
	BucketItemID uuid.UUID
}
