package services

import "errors"

// Service-level failures. Route handlers map these onto HTTP statuses; anything
// not in this list is treated as an internal error and not shown to clients.
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("a user with this email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")

	ErrBookingNotFound   = errors.New("booking not found")
	ErrTradesmanNotFound = errors.New("tradesman not found")
	ErrNotTradesman      = errors.New("selected user is not a tradesman")
	ErrIllegalTransition = errors.New("booking status transition not allowed")
	ErrStaleBooking      = errors.New("booking was modified concurrently, retry")

	ErrTokenNotFound = errors.New("refresh token not found")
	ErrTokenInvalid  = errors.New("refresh token is expired or revoked")
)
