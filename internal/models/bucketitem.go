package models

import (
	"time"

	"github.com/google/uuid"
)

type BucketItem struct {
	ID        uuid.UUID
	CreatedAt time.Time
	Title     string
	AuthorID  uuid.UUID
}

// BucketItemWithLocation is the item fetch shape: the item plus its
// location if one is attached already
type BucketItemWithLocation struct {
	BucketItem
	Location *Location
}
