package handlers

import (
	"errors"
	"net/http"

	"github.com/avolkhin/bucketlist/internal/apperrors"
	"github.com/avolkhin/bucketlist/internal/handlers/render"
	"github.com/avolkhin/bucketlist/internal/logger"
)

// Register new user. Tokens are not issued here, login afterwards
func handleRegister(auth AuthService, l logger.Logger) http.Handler {
	type request struct {
		Name     string `json:"name" validate:"required,min=2,max=100"`
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required,min=8"`
	}
	type response struct {
		OK bool `json:"ok"`
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, err := render.BindAndValidate[request](w, r)
		if err != nil {
			return
		}

		_, err = auth.Register(r.Context(), data.Name, data.Email, data.Password)
		if err != nil {
			switch {
			case errors.Is(err, apperrors.ErrUserAlreadyExists):
				render.Error(w, "Email taken", http.StatusUnauthorized)
			default:
				l.Error("can't register user", "error", err.Error())
				render.Error(w, "Internal server error", http.StatusInternalServerError)
			}
			return
		}

		render.JSON(w, response{OK: true})
	})
}

// Login with email and password.
// Access token goes to the body, refresh token to the rtok cookie
func handleLogin(auth AuthService, l logger.Logger) http.Handler {
	type request struct {
		Email    string `json:"email" validate:"required"`
		Password string `json:"password" validate:"required"`
	}
	type response struct {
		AccessToken string `json:"accessToken"`
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, err := render.BindAndValidate[request](w, r)
		if err != nil {
			return
		}

		pair, err := auth.Login(r.Context(), data.Email, data.Password)
		if err != nil {
			switch {
			case errors.Is(err, apperrors.ErrInvalidCredentials):
				render.Error(w, apperrors.ErrInvalidCredentials.Error(), http.StatusUnauthorized)
			default:
				l.Error("can't login user", "error", err.Error())
				render.Error(w, "Internal server error", http.StatusInternalServerError)
			}
			return
		}

		auth.SetRefreshCookie(w, pair.Refresh)
		render.JSON(w, response{AccessToken: pair.Access.Value})
	})
}

// Exchange the cookie held refresh token for a fresh pair.
// Every failure kind is a 401: callers should not learn why exactly
func handleTokenRefresh(auth AuthService, l logger.Logger) http.Handler {
	type response struct {
		AccessToken string `json:"accessToken"`
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		refresh, err := auth.ReadRefreshToken(r)
		if err != nil {
			render.Error(w, apperrors.ErrTokenMissing.Error(), http.StatusUnauthorized)
			return
		}

		pair, err := auth.RefreshPair(r.Context(), refresh)
		if err != nil {
			switch {
			case errors.Is(err, apperrors.ErrTokenExpired):
				render.Error(w, apperrors.ErrTokenExpired.Error(), http.StatusUnauthorized)
			case errors.Is(err, apperrors.ErrUnknownSubject):
				render.Error(w, apperrors.ErrUnknownSubject.Error(), http.StatusUnauthorized)
			case errors.Is(err, apperrors.ErrTokenMalformed), errors.Is(err, apperrors.ErrTokenInvalid):
				render.Error(w, apperrors.ErrTokenInvalid.Error(), http.StatusUnauthorized)
			default:
				l.Error("can't refresh tokens", "error", err.Error())
				render.Error(w, "Internal server error", http.StatusInternalServerError)
			}
			return
		}

		auth.SetRefreshCookie(w, pair.Refresh)
		render.JSON(w, response{AccessToken: pair.Access.Value})
	})
}
