package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/avolkhin/bucketlist/internal/models"
)

type CreateUserParams struct {
	Email          string
	Name           string
	HashedPassword string
}

// User repository interface
type UserRepo interface {
	// Create user
	// If user with the same email exists already has to return apperrors.ErrUserAlreadyExists
	CreateUser(ctx context.Context, arg CreateUserParams) (models.User, error)

	// Get user by id or email
	// If user not found must return apperrors.ErrUserNotFound
	GetUserByID(ctx context.Context, id uuid.UUID) (models.User, error)
	GetUserByEmail(ctx context.Context, email string) (models.User, error)

	ListUsers(ctx context.Context) ([]models.User, error)

	// Set the last successful login timestamp
	// Last write wins, nothing depends on ordering
	UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error
}

type CreateLocationParams struct {
	Country      string
	State        string
	City         string
	BucketItemID uuid.UUID
}

type LocationRepo interface {
	CreateLocation(ctx context.Context, arg CreateLocationParams) (models.Location, error)

	// If location not found must return apperrors.ErrLocationNotFound
	GetLocationByID(ctx context.Context, id uuid.UUID) (models.Location, error)

	ListLocations(ctx context.Context) ([]models.Location, error)
}

type BucketItemRepo interface {
	CreateBucketItem(ctx context.Context, title string, authorID uuid.UUID) (models.BucketItem, error)

	// If item not found must return apperrors.ErrBucketItemNotFound
	GetBucketItemByID(ctx context.Context, id uuid.UUID) (models.BucketItem, error)

	// Item together with its location (nil if no location attached yet)
	GetBucketItemWithLocation(ctx context.Context, id uuid.UUID) (models.BucketItemWithLocation, error)

	ListBucketItemsByAuthor(ctx context.Context, authorID uuid.UUID) ([]models.BucketItem, error)
}

// Storage aggregates every repository
type Storage interface {
	User() UserRepo
	Location() LocationRepo
	BucketItem() BucketItemRepo
}
