package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/avolkhin/bucketlist/internal/apperrors"
	"github.com/avolkhin/bucketlist/internal/models"
)

type BucketItemRepo struct {
	DB DBTX
}

const createBucketItem = `-- name: CreateBucketItem
INSERT INTO bucket_items (id, title, author_id)
VALUES ($1, $2, $3)
RETURNING id, created_at, title, author_id
`

func (r *BucketItemRepo) CreateBucketItem(ctx context.Context, title string, authorID uuid.UUID) (models.BucketItem, error) {
	rows, _ := r.DB.Query(ctx, createBucketItem, uuid.New(), title, authorID)
	item, err := pgx.CollectOneRow(rows, rowToBucketItem)
	if err != nil {
		return item, fmt.Errorf("db error: %w", err)
	}

	return item, nil
}

const getBucketItemByID = `-- name: getBucketItemByID
SELECT id, created_at, title, author_id
FROM bucket_items
WHERE id = $1
`

func (r *BucketItemRepo) GetBucketItemByID(ctx context.Context, id uuid.UUID) (models.BucketItem, error) {
	rows, _ := r.DB.Query(ctx, getBucketItemByID, id)
	item, err := pgx.CollectOneRow(rows, rowToBucketItem)

	switch {
	case err == nil:
		return item, nil
	case errors.Is(err, pgx.ErrNoRows):
		return item, apperrors.ErrBucketItemNotFound
	default:
		return item, fmt.Errorf("db error: %w", err)
	}
}

const getItemLocation = `-- name: getItemLocation
SELECT id, created_at, country, state, city, bucket_item_id
FROM locations
WHERE bucket_item_id = $1
ORDER BY created_at
LIMIT 1
`

func (r *BucketItemRepo) GetBucketItemWithLocation(ctx context.Context, id uuid.UUID) (models.BucketItemWithLocation, error) {
	item, err := r.GetBucketItemByID(ctx, id)
	if err != nil {
		return models.BucketItemWithLocation{}, err
	}

	rows, _ := r.DB.Query(ctx, getItemLocation, id)
	location, err := pgx.CollectOneRow(rows, rowToLocation)

	switch {
	case err == nil:
		return models.BucketItemWithLocation{BucketItem: item, Location: &location}, nil
	case errors.Is(err, pgx.ErrNoRows):
		return models.BucketItemWithLocation{BucketItem: item}, nil
	default:
		return models.BucketItemWithLocation{}, fmt.Errorf("db error: %w", err)
	}
}

const listBucketItemsByAuthor = `-- name: listBucketItemsByAuthor
SELECT id, created_at, title, author_id
FROM bucket_items
WHERE author_id = $1
ORDER BY created_at
`

func (r *BucketItemRepo) ListBucketItemsByAuthor(ctx context.Context, authorID uuid.UUID) ([]models.BucketItem, error) {
	rows, _ := r.DB.Query(ctx, listBucketItemsByAuthor, authorID)
	items, err := pgx.CollectRows(rows, rowToBucketItem)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return items, nil
}

func rowToBucketItem(row pgx.CollectableRow) (models.BucketItem, error) {
	var i models.BucketItem
	err := row.Scan(&i.ID, &i.CreatedAt, &i.Title, &i.AuthorID)
	return i, err
}
