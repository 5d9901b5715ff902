package handlers

import (
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/avolkhin/bucketlist/internal/apperrors"
	"github.com/avolkhin/bucketlist/internal/handlers/render"
	"github.com/avolkhin/bucketlist/internal/logger"
	"github.com/avolkhin/bucketlist/internal/models"
)

// Public user shape: no digests, no timestamps
type userResponse struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
	Name  string    `json:"name"`
}

func toUserResponse(u models.User) userResponse {
	return userResponse{ID: u.ID, Email: u.Email, Name: u.Name}
}

func handleListUsers(users UserService, l logger.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		list, err := users.ListUsers(r.Context())
		if err != nil {
			l.Error("can't list users", "error", err.Error())
			render.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		response := make([]userResponse, 0, len(list))
		for _, u := range list {
			response = append(response, toUserResponse(u))
		}

		render.JSON(w, response)
	})
}

func handleGetUser(users UserService, l logger.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(r.PathValue("id"))
		if err != nil {
			render.Error(w, "Invalid id", http.StatusBadRequest)
			return
		}

		user, err := users.GetUser(r.Context(), id)
		if err != nil {
			switch {
			case errors.Is(err, apperrors.ErrUserNotFound):
				render.Error(w, "User not found", http.StatusNotFound)
			default:
				l.Error("can't get user", "error", err.Error())
				render.Error(w, "Internal server error", http.StatusInternalServerError)
			}
			return
		}

		render.JSON(w, toUserResponse(user))
	})
}
