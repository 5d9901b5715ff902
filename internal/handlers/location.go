package handlers

import (
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/avolkhin/bucketlist/internal/apperrors"
	"github.com/avolkhin/bucketlist/internal/handlers/render"
	"github.com/avolkhin/bucketlist/internal/logger"
	"github.com/avolkhin/bucketlist/internal/models"
	"github.com/avolkhin/bucketlist/internal/repository"
)

type locationResponse struct {
	ID           uuid.UUID `json:"id"`
	Country      string    `json:"country"`
	State        string    `json:"state"`
	City         string    `json:"city"`
	BucketItemID uuid.UUID `json:"bucketListItemId"`
}

func toLocationResponse(l models.Location) locationResponse {
	return locationResponse{
		ID:           l.ID,
		Country:      l.Country,
		State:        l.State,
		City:         l.City,
		BucketItemID: l.BucketItemID,
	}
}

func handleListLocations(locations LocationService, l logger.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		list, err := locations.ListLocations(r.Context())
		if err != nil {
			l.Error("can't list locations", "error", err.Error())
			render.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		response := make([]locationResponse, 0, len(list))
		for _, location := range list {
			response = append(response, toLocationResponse(location))
		}

		render.JSON(w, response)
	})
}

func handleGetLocation(locations LocationService, l logger.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(r.PathValue("id"))
		if err != nil {
			render.Error(w, "Invalid id", http.StatusBadRequest)
			return
		}

		location, err := locations.GetLocation(r.Context(), id)
		if err != nil {
			switch {
			case errors.Is(err, apperrors.ErrLocationNotFound):
				render.Error(w, "Location not found", http.StatusNotFound)
			default:
				l.Error("can't get location", "error", err.Error())
				render.Error(w, "Internal server error", http.StatusInternalServerError)
			}
			return
		}

		render.JSON(w, toLocationResponse(location))
	})
}

func handleCreateLocation(locations LocationService, l logger.Logger) http.Handler {
	type request struct {
		Country      string    `json:"country" validate:"required"`
		State        string    `json:"state" validate:"required"`
		City         string    `json:"city" validate:"required"`
		BucketItemID uuid.UUID `json:"bucketListItemId" validate:"required"`
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, err := render.BindAndValidate[request](w, r)
		if err != nil {
			return
		}

		location, err := locations.CreateLocation(r.Context(), repository.CreateLocationParams{
			Country:      data.Country,
			State:        data.State,
			City:         data.City,
			BucketItemID: data.BucketItemID,
		})
		if err != nil {
			switch {
			case errors.Is(err, apperrors.ErrBucketItemNotFound):
				render.Error(w, "Bucket list item not found", http.StatusNotFound)
			default:
				l.Error("can't create location", "error", err.Error())
				render.Error(w, "Internal server error", http.StatusInternalServerError)
			}
			return
		}

		render.JSON(w, toLocationResponse(location))
	})
}
