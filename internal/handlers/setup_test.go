package handlers

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"

	"github.com/avolkhin/bucketlist/internal/logger"
	"github.com/avolkhin/bucketlist/internal/repository/postgres"
	"github.com/avolkhin/bucketlist/internal/service/auth"
	"github.com/avolkhin/bucketlist/internal/service/bucketitem"
	"github.com/avolkhin/bucketlist/internal/service/location"
	"github.com/avolkhin/bucketlist/internal/service/user"
)

// Full production stack over a db transaction and a controllable clock.
// Advance *now to simulate token expiry
func newTestServer(t *testing.T, tx pgx.Tx, now *time.Time) (*httptest.Server, *auth.AuthService) {
	t.Helper()

	storage := postgres.NewStorage(tx)

	tokens, err := auth.NewTokenManager(auth.TokenConfig{
		AccessSecret:  "test-access-secret",
		RefreshSecret: "test-refresh-secret",
		TimeFunc:      func() time.Time { return *now },
	})
	require.NoError(t, err, "token manager should be created without errors")

	authService, err := auth.NewService(auth.Config{}, tokens, storage.User(), nil)
	require.NoError(t, err, "auth service should be created without errors")

	userService, err := user.NewService(storage.User())
	require.NoError(t, err)
	locationService, err := location.NewService(storage.Location(), storage.BucketItem())
	require.NoError(t, err)
	itemService, err := bucketitem.NewService(storage.BucketItem())
	require.NoError(t, err)

	router := NewRouter(authService, userService, locationService, itemService, logger.NewNoOpLogger())

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	return srv, authService
}
