package apperrors

import (
	"errors"
)

var (
	ErrUserAlreadyExists = errors.New("user already exists")
	ErrUserNotFound      = errors.New("user not found")

	// ErrInvalidCredentials is what login reports to the boundary no matter
	// which check failed. Internally ErrUserNotFound and ErrPasswordMismatch
	// stay distinguishable for logs and tests.
	ErrInvalidCredentials = errors.New("email or password invalid")
	ErrPasswordMismatch   = errors.New("password mismatch")

	ErrTokenMissing   = errors.New("token not provided")
	ErrTokenMalformed = errors.New("token is malformed")
	ErrTokenInvalid   = errors.New("token is invalid")
	ErrTokenExpired   = errors.New("token is expired")

	// Token verified fine but its subject no longer resolves to a stored user
	ErrUnknownSubject = errors.New("token subject not found")

	ErrLocationNotFound   = errors.New("location not found")
	ErrBucketItemNotFound = errors.New("bucket list item not found")
	ErrNotItemAuthor      = errors.New("bucket list item belongs to another user")
)
