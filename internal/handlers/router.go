package handlers

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/avolkhin/bucketlist/internal/handlers/middleware"
	"github.com/avolkhin/bucketlist/internal/handlers/render"
	"github.com/avolkhin/bucketlist/internal/logger"
	"github.com/avolkhin/bucketlist/internal/models"
	"github.com/avolkhin/bucketlist/internal/repository"
)

// chain applies middlewares in the given order: m1(m2(...(h)))
func chain(h http.Handler, mds ...func(next http.Handler) http.Handler) http.Handler {
	for i := len(mds) - 1; i >= 0; i-- {
		h = mds[i](h)
	}
	return h
}

func NewRouter(
	authService AuthService,
	userService UserService,
	locationService LocationService,
	itemService BucketItemService,
	logger logger.Logger,
) http.Handler {
	authMiddleware := middleware.AuthMiddleware(authService)
	withAuth := func(h http.Handler) http.Handler {
		return authMiddleware(h)
	}

	mux := http.NewServeMux()

	mux.Handle("GET /{$}", handleHello())

	mux.Handle("POST /users", handleRegister(authService, logger))
	mux.Handle("POST /login", handleLogin(authService, logger))
	mux.Handle("POST /refresh_token", handleTokenRefresh(authService, logger))

	mux.Handle("GET /users", withAuth(handleListUsers(userService, logger)))
	mux.Handle("GET /users/{id}", handleGetUser(userService, logger))

	mux.Handle("GET /locations", handleListLocations(locationService, logger))
	mux.Handle("GET /locations/{id}", handleGetLocation(locationService, logger))
	mux.Handle("POST /locations", handleCreateLocation(locationService, logger))

	mux.Handle("GET /bucketlistitems", withAuth(handleListBucketItems(itemService, logger)))
	mux.Handle("GET /bucketlistitems/{id}", withAuth(handleGetBucketItem(itemService, logger)))
	mux.Handle("POST /bucketlistitems", withAuth(handleCreateBucketItem(itemService, logger)))

	return chain(mux,
		middleware.LoggerMiddleware(logger),
	)
}

// The classic move, hello world
func handleHello() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		render.JSON(w, map[string]string{"test": "hello,world"})
	})
}

type AuthService interface {
	// Register user, has to return apperrors.ErrUserAlreadyExists if email is taken
	Register(ctx context.Context, name string, email string, password string) (models.User, error)

	// Login user with email and password
	// Has to return apperrors.ErrInvalidCredentials on any credential failure
	Login(ctx context.Context, email string, password string) (models.TokenPair, error)

	// Refresh tokens using refresh token (rotation)
	RefreshPair(ctx context.Context, refresh string) (models.TokenPair, error)

	// Get request and return user if it authenticated or error
	Auth(ctx context.Context, r *http.Request) (models.User, error)

	// Refresh token transport: http-only cookie
	SetRefreshCookie(w http.ResponseWriter, refresh models.IssuedToken)
	ReadRefreshToken(r *http.Request) (string, error)
}

type UserService interface {
	ListUsers(ctx context.Context) ([]models.User, error)
	GetUser(ctx context.Context, id uuid.UUID) (models.User, error)
}

type LocationService interface {
	ListLocations(ctx context.Context) ([]models.Location, error)
	GetLocation(ctx context.Context, id uuid.UUID) (models.Location, error)
	CreateLocation(ctx context.Context, arg repository.CreateLocationParams) (models.Location, error)
}

type BucketItemService interface {
	ListItems(ctx context.Context, user *models.User) ([]models.BucketItem, error)
	GetItem(ctx context.Context, id uuid.UUID, user *models.User) (models.BucketItemWithLocation, error)
	CreateItem(ctx context.Context, title string, user *models.User) (models.BucketItem, error)
}
