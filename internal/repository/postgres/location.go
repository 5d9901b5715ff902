package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/avolkhin/bucketlist/internal/apperrors"
	"github.com/avolkhin/bucketlist/internal/models"
	"github.com/avolkhin/bucketlist/internal/repository"
)

type LocationRepo struct {
	DB DBTX
}

const createLocation = `-- name: CreateLocation
INSERT INTO locations (id, country, state, city, bucket_item_id)
VALUES ($1, $2, $3, $4, $5)
RETURNING id, created_at, country, state, city, bucket_item_id
`

func (r *LocationRepo) CreateLocation(ctx context.Context, arg repository.CreateLocationParams) (models.Location, error) {
	rows, _ := r.DB.Query(ctx, createLocation, uuid.New(), arg.Country, arg.State, arg.City, arg.BucketItemID)
	location, err := pgx.CollectOneRow(rows, rowToLocation)
	if err != nil {
		return location, fmt.Errorf("db error: %w", err)
	}

	return location, nil
}

const getLocationByID = `-- name: getLocationByID
SELECT id, created_at, country, state, city, bucket_item_id
FROM locations
WHERE id = $1
`

func (r *LocationRepo) GetLocationByID(ctx context.Context, id uuid.UUID) (models.Location, error) {
	rows, _ := r.DB.Query(ctx, getLocationByID, id)
	location, err := pgx.CollectOneRow(rows, rowToLocation)

	switch {
	case err == nil:
		return location, nil
	case errors.Is(err, pgx.ErrNoRows):
		return location, apperrors.ErrLocationNotFound
	default:
		return location, fmt.Errorf("db error: %w", err)
	}
}

const listLocations = `-- name: listLocations
SELECT id, created_at, country, state, city, bucket_item_id
FROM locations
ORDER BY created_at
`

func (r *LocationRepo) ListLocations(ctx context.Context) ([]models.Location, error) {
	rows, _ := r.DB.Query(ctx, listLocations)
	locations, err := pgx.CollectRows(rows, rowToLocation)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return locations, nil
}

func rowToLocation(row pgx.CollectableRow) (models.Location, error) {
	var l models.Location
	err := row.Scan(&l.ID, &l.CreatedAt, &l.Country, &l.State, &l.City, &l.BucketItemID)
	return l, err
}
