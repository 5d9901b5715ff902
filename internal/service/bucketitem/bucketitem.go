package bucketitem

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/avolkhin/bucketlist/internal/apperrors"
	"github.com/avolkhin/bucketlist/internal/models"
	"github.com/avolkhin/bucketlist/internal/repository"
)

// Bucket list item service. Items belong to their author: listing is
// scoped to one user and a fetch by id checks ownership
type BucketItemService struct {
	itemRepo repository.BucketItemRepo
}

func NewService(itemRepo repository.BucketItemRepo) (*BucketItemService, error) {
	if itemRepo == nil {
		return nil, errors.New("item repo must not be nil")
	}

	return &BucketItemService{itemRepo: itemRepo}, nil
}

func (s *BucketItemService) ListItems(ctx context.Context, user *models.User) ([]models.BucketItem, error) {
	return s.itemRepo.ListBucketItemsByAuthor(ctx, user.ID)
}

// GetItem returns the item with its location, but only to its author
func (s *BucketItemService) GetItem(ctx context.Context, id uuid.UUID, user *models.User) (models.BucketItemWithLocation, error) {
	item, err := s.itemRepo.GetBucketItemWithLocation(ctx, id)
	if err != nil {
		return models.BucketItemWithLocation{}, err
	}

	if item.AuthorID != user.ID {
		return models.BucketItemWithLocation{}, apperrors.ErrNotItemAuthor
	}

	return item, nil
}

func (s *BucketItemService) CreateItem(ctx context.Context, title string, user *models.User) (models.BucketItem, error) {
	return s.itemRepo.CreateBucketItem(ctx, title, user.ID)
}
