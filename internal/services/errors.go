package services

import "errors"

// Sentinel errors shared across the service layer. Handlers map these to
// HTTP statuses: not-found errors become 404, validation errors 400, and
// anything else 500.
var (
	ErrUserNotFound  = errors.New("user not found")
	ErrFilmNotFound  = errors.New("film not found")
	ErrGenreNotFound = errors.New("genre not found")
	ErrMpaNotFound   = errors.New("mpa rating not found")

	// ErrValidation wraps all field-level validation failures.
	ErrValidation = errors.New("validation failed")

	// ErrSelfFriendship is returned when a user tries to befriend themselves.
	ErrSelfFriendship = errors.New("cannot add yourself as a friend")
)
