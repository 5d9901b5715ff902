package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/avolkhin/bucketlist/internal/apperrors"
	"github.com/avolkhin/bucketlist/internal/logger"
	"github.com/avolkhin/bucketlist/internal/models"
	"github.com/avolkhin/bucketlist/internal/repository"
)

const (
	defaultAccessHeaderName  = "Authorization"
	defaultAccessAuthScheme  = "Bearer"
	defaultRefreshCookieName = "rtok"
)

type Config struct {
	// Hasher to use during user registration or login process
	// Defaults to BcryptHasher
	Hasher PasswordHasher

	// Header and scheme the access token is expected in
	AccessHeaderName string
	AccessAuthScheme string

	// Cookie the refresh token travels in
	RefreshCookieName string
}

// Auth service: registration, login, token refresh and request authentication
type AuthService struct {
	// Manager to issue and verify token pairs (access and refresh)
	tokens *TokenManager

	// hasher to hash or compare user passwords
	hasher PasswordHasher

	// Repository to access long term data
	userRepo repository.UserRepo

	accessHeaderName  string
	accessAuthScheme  string
	refreshCookieName string

	logger logger.Logger
}

func NewService(cfg Config, tokens *TokenManager, userRepo repository.UserRepo, l logger.Logger) (*AuthService, error) {
	if tokens == nil {
		return nil, errors.New("token manager must not be nil")
	}
	if userRepo == nil {
		return nil, errors.New("user repo must not be nil")
	}

	// Set default bcrypt hasher if not provided by user
	hasher := cfg.Hasher
	if hasher == nil {
		hasher = BcryptHasher{}
	}

	setDefaultString := func(field *string, def string) {
		if *field == "" {
			*field = def
		}
	}
	setDefaultString(&cfg.AccessHeaderName, defaultAccessHeaderName)
	setDefaultString(&cfg.AccessAuthScheme, defaultAccessAuthScheme)
	setDefaultString(&cfg.RefreshCookieName, defaultRefreshCookieName)

	if l == nil {
		l = logger.NewNoOpLogger()
	}

	return &AuthService{
		tokens:            tokens,
		hasher:            hasher,
		userRepo:          userRepo,
		accessHeaderName:  cfg.AccessHeaderName,
		accessAuthScheme:  cfg.AccessAuthScheme,
		refreshCookieName: cfg.RefreshCookieName,
		logger:            l,
	}, nil
}

// Register creates a user with a hashed password.
// No tokens are issued: the client is expected to login afterwards
func (s *AuthService) Register(ctx context.Context, name string, email string, password string) (models.User, error) {
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return models.User{}, fmt.Errorf("can't use this as password, error=%w", err)
	}

	user, err := s.userRepo.CreateUser(ctx, repository.CreateUserParams{
		Email:          email,
		Name:           name,
		HashedPassword: hash,
	})
	if err != nil {
		return models.User{}, err
	}

	return user, nil
}

// Login verifies credentials and mints a fresh token pair.
// Unknown email and wrong password are reported the same way so the
// caller can't probe which emails are registered. The real cause is
// still logged for debugging
func (s *AuthService) Login(ctx context.Context, email string, password string) (models.TokenPair, error) {
	user, err := s.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			s.logger.Debug("login rejected", "reason", apperrors.ErrUserNotFound.Error())
			return models.TokenPair{}, apperrors.ErrInvalidCredentials
		}
		return models.TokenPair{}, err
	}

	if err := s.hasher.Compare(user.HashedPassword, password); err != nil {
		s.logger.Debug("login rejected", "reason", apperrors.ErrPasswordMismatch.Error())
		return models.TokenPair{}, apperrors.ErrInvalidCredentials
	}

	// Best effort: a failed timestamp write must not block the login
	if err := s.userRepo.UpdateLastLogin(ctx, user.ID, time.Now()); err != nil {
		s.logger.Warn("can't update last login", "user_id", user.ID, "error", err.Error())
	}

	pair, err := s.tokens.IssuePair(user.ID)
	if err != nil {
		return models.TokenPair{}, fmt.Errorf("token could not generated, sorry. %w", err)
	}

	return pair, nil
}

// RefreshPair exchanges a valid refresh token for a brand new pair (rotation).
// The superseded refresh token is not invalidated server side: any correctly
// signed unexpired token keeps verifying until its own expiry
func (s *AuthService) RefreshPair(ctx context.Context, refresh string) (models.TokenPair, error) {
	if refresh == "" {
		return models.TokenPair{}, apperrors.ErrTokenMissing
	}

	userID, err := s.tokens.ParseRefresh(refresh)
	if err != nil {
		return models.TokenPair{}, err
	}

	user, err := s.resolveSubject(ctx, userID)
	if err != nil {
		return models.TokenPair{}, err
	}

	pair, err := s.tokens.IssuePair(user.ID)
	if err != nil {
		return models.TokenPair{}, fmt.Errorf("token could not generated, sorry. %w", err)
	}

	return pair, nil
}

// Auth authenticates a request by its bearer access token and returns
// the resolved user. Any failure means the request is unauthenticated
func (s *AuthService) Auth(ctx context.Context, r *http.Request) (models.User, error) {
	access, err := s.readAccessToken(r)
	if err != nil {
		return models.User{}, err
	}

	userID, err := s.tokens.ParseAccess(access)
	if err != nil {
		return models.User{}, err
	}

	return s.resolveSubject(ctx, userID)
}

// Set auth tokens to response: access token in body is the handler's
// business, the refresh token travels in an http-only cookie
func (s *AuthService) SetRefreshCookie(w http.ResponseWriter, refresh models.IssuedToken) {
	http.SetCookie(w, &http.Cookie{
		Name:     s.refreshCookieName,
		Value:    refresh.Value,
		Path:     "/",
		MaxAge:   int(time.Until(refresh.ExpiresAt).Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
}

// Get refresh token from request cookie
func (s *AuthService) ReadRefreshToken(r *http.Request) (string, error) {
	cookie, err := r.Cookie(s.refreshCookieName)
	if err != nil {
		return "", apperrors.ErrTokenMissing
	}

	return cookie.Value, nil
}

// SetTokenPairToRequest attaches the pair to an outgoing request the same
// way a client would. Used by tests
func (s *AuthService) SetTokenPairToRequest(r *http.Request, pair models.TokenPair) {
	r.Header.Set(s.accessHeaderName, s.accessAuthScheme+" "+pair.Access.Value)
	r.AddCookie(&http.Cookie{Name: s.refreshCookieName, Value: pair.Refresh.Value})
}

// The token signature may verify fine while the user record is gone.
// Fail closed in that case
func (s *AuthService) resolveSubject(ctx context.Context, userID uuid.UUID) (models.User, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return models.User{}, apperrors.ErrUnknownSubject
		}
		return models.User{}, err
	}

	return user, nil
}

func (s *AuthService) readAccessToken(r *http.Request) (string, error) {
	header := r.Header.Get(s.accessHeaderName)
	if header == "" {
		return "", apperrors.ErrTokenMissing
	}

	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, s.accessAuthScheme) {
		return "", apperrors.ErrTokenMalformed
	}

	return token, nil
}
