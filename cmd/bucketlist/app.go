package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/avolkhin/bucketlist/internal/db"
	"github.com/avolkhin/bucketlist/internal/handlers"
	"github.com/avolkhin/bucketlist/internal/logger"
	"github.com/avolkhin/bucketlist/internal/repository/postgres"
	"github.com/avolkhin/bucketlist/internal/service/auth"
	"github.com/avolkhin/bucketlist/internal/service/bucketitem"
	"github.com/avolkhin/bucketlist/internal/service/location"
	"github.com/avolkhin/bucketlist/internal/service/user"
)

type ServerApp struct {
	ListenAddr string
	Handler    http.Handler
}

func NewServerApp(ctx context.Context, c *Config) (*ServerApp, error) {
	// Initialize logger
	logger, err := logger.New(c.Environment, c.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("error while initializing logger: %w", err)
	}

	// Connect to the database and run migrations
	pool, err := db.ConnectAndMigrate(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("error while connecting to db. Err: %w", err)
	}

	// Initialize repositories
	storage := postgres.NewStorage(pool)

	// Initialize services
	tokens, err := auth.NewTokenManager(auth.TokenConfig{
		AccessSecret:  c.AccessSecret,
		RefreshSecret: c.RefreshSecret,
	})
	if err != nil {
		return nil, fmt.Errorf("error while creating token manager. Err: %w", err)
	}
	authService, err := auth.NewService(auth.Config{}, tokens, storage.User(), logger)
	if err != nil {
		return nil, fmt.Errorf("error while creating auth service. Err: %w", err)
	}
	userService, err := user.NewService(storage.User())
	if err != nil {
		return nil, fmt.Errorf("error while creating user service. Err: %w", err)
	}
	locationService, err := location.NewService(storage.Location(), storage.BucketItem())
	if err != nil {
		return nil, fmt.Errorf("error while creating location service. Err: %w", err)
	}
	itemService, err := bucketitem.NewService(storage.BucketItem())
	if err != nil {
		return nil, fmt.Errorf("error while creating bucket item service. Err: %w", err)
	}

	mux := handlers.NewRouter(
		authService,
		userService,
		locationService,
		itemService,
		logger,
	)

	return &ServerApp{
		ListenAddr: c.ListenAddr,
		Handler:    mux,
	}, nil
}

// Run starts http server and closes gracefully on context cancellation
func (s *ServerApp) Run(ctx context.Context) error {
	httpServer := &http.Server{
		Addr:    s.ListenAddr,
		Handler: s.Handler,
	}

	idleConnsClosed := make(chan struct{})
	srvCtx, srvCtxCancel := context.WithCancel(ctx)
	defer srvCtxCancel()

	go func() {
		<-srvCtx.Done()

		timeoutCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := httpServer.Shutdown(timeoutCtx); err == context.DeadlineExceeded {
			slog.Error("HTTP server shutdown timeout exceeded, forcing shutdown...")
		}
		slog.Info("HTTP server stopped")
		close(idleConnsClosed)
	}()

	// Listen and serve until context is cancelled; then close gracefully connections
	slog.Info("Starting server", "address", s.ListenAddr)
	err := httpServer.ListenAndServe()
	srvCtxCancel()
	<-idleConnsClosed

	return err
}
