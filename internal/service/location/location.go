package location

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/avolkhin/bucketlist/internal/apperrors"
	"github.com/avolkhin/bucketlist/internal/models"
	"github.com/avolkhin/bucketlist/internal/repository"
)

type LocationService struct {
	locationRepo repository.LocationRepo
	itemRepo     repository.BucketItemRepo
}

func NewService(locationRepo repository.LocationRepo, itemRepo repository.BucketItemRepo) (*LocationService, error) {
	if locationRepo == nil || itemRepo == nil {
		return nil, errors.New("repos must not be nil")
	}

	return &LocationService{
		locationRepo: locationRepo,
		itemRepo:     itemRepo,
	}, nil
}

func (s *LocationService) ListLocations(ctx context.Context) ([]models.Location, error) {
	return s.locationRepo.ListLocations(ctx)
}

func (s *LocationService) GetLocation(ctx context.Context, id uuid.UUID) (models.Location, error) {
	return s.locationRepo.GetLocationByID(ctx, id)
}

// CreateLocation attaches a location to an existing bucket list item
func (s *LocationService) CreateLocation(ctx context.Context, arg repository.CreateLocationParams) (models.Location, error) {
	// Check the referenced item first to report a readable error
	// instead of a foreign key violation
	if _, err := s.itemRepo.GetBucketItemByID(ctx, arg.BucketItemID); err != nil {
		if errors.Is(err, apperrors.ErrBucketItemNotFound) {
			return models.Location{}, apperrors.ErrBucketItemNotFound
		}
		return models.Location{}, fmt.Errorf("can't check bucket list item. Err: %w", err)
	}

	return s.locationRepo.CreateLocation(ctx, arg)
}
