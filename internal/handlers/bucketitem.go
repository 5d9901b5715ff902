package handlers

import (
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/avolkhin/bucketlist/internal/apperrors"
	"github.com/avolkhin/bucketlist/internal/handlers/render"
	"github.com/avolkhin/bucketlist/internal/handlers/userctx"
	"github.com/avolkhin/bucketlist/internal/logger"
	"github.com/avolkhin/bucketlist/internal/models"
)

type bucketItemResponse struct {
	ID       uuid.UUID `json:"id"`
	Title    string    `json:"title"`
	AuthorID uuid.UUID `json:"authorId"`
}

func toBucketItemResponse(i models.BucketItem) bucketItemResponse {
	return bucketItemResponse{ID: i.ID, Title: i.Title, AuthorID: i.AuthorID}
}

// Items are listed for the authenticated user only
func handleListBucketItems(items BucketItemService, l logger.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, _ := userctx.FromContext(r.Context())

		list, err := items.ListItems(r.Context(), &user)
		if err != nil {
			l.Error("can't list bucket list items", "error", err.Error())
			render.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		response := make([]bucketItemResponse, 0, len(list))
		for _, item := range list {
			response = append(response, toBucketItemResponse(item))
		}

		render.JSON(w, response)
	})
}

// A single item with its location, visible to its author only.
// Foreign items are reported as not found so ids can't be probed
func handleGetBucketItem(items BucketItemService, l logger.Logger) http.Handler {
	type response struct {
		bucketItemResponse
		Location *locationResponse `json:"location"`
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, _ := userctx.FromContext(r.Context())

		id, err := uuid.Parse(r.PathValue("id"))
		if err != nil {
			render.Error(w, "Invalid id", http.StatusBadRequest)
			return
		}

		item, err := items.GetItem(r.Context(), id, &user)
		if err != nil {
			switch {
			case errors.Is(err, apperrors.ErrBucketItemNotFound), errors.Is(err, apperrors.ErrNotItemAuthor):
				render.Error(w, "Bucket list item not found", http.StatusNotFound)
			default:
				l.Error("can't get bucket list item", "error", err.Error())
				render.Error(w, "Internal server error", http.StatusInternalServerError)
			}
			return
		}

		resp := response{bucketItemResponse: toBucketItemResponse(item.BucketItem)}
		if item.Location != nil {
			location := toLocationResponse(*item.Location)
			resp.Location = &location
		}

		render.JSON(w, resp)
	})
}

func handleCreateBucketItem(items BucketItemService, l logger.Logger) http.Handler {
	type request struct {
		Title string `json:"title" validate:"required,min=1,max=200"`
	}
	type response struct {
		bucketItemResponse
		Author userResponse `json:"author"`
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, _ := userctx.FromContext(r.Context())

		data, err := render.BindAndValidate[request](w, r)
		if err != nil {
			return
		}

		item, err := items.CreateItem(r.Context(), data.Title, &user)
		if err != nil {
			l.Error("can't create bucket list item", "error", err.Error())
			render.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		render.JSON(w, response{
			bucketItemResponse: toBucketItemResponse(item),
			Author:             toUserResponse(user),
		})
	})
}
