package domain

import "errors"

var (
	// ErrMissingFields signals an incomplete registration or login payload.
	ErrMissingFields = errors.New("missing required fields")
	// ErrUserExists signals a registration against an already-taken email.
	ErrUserExists = errors.New("user already exists")
	// ErrUserNotFound signals a lookup for an unknown user id or email.
	ErrUserNotFound = errors.New("user not found")
	// ErrInvalidCredentials covers both unknown-email and wrong-password on
	// login; callers cannot distinguish the two.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidToken covers every token verification failure: bad signature,
	// malformed structure, wrong algorithm, expiry. Deliberately opaque.
	ErrInvalidToken = errors.New("invalid token")

	// ErrUpstream signals a non-success HTTP response from the prediction service.
	ErrUpstream = errors.New("prediction upstream error")
	// ErrUpstreamUnreachable signals a network failure or timeout reaching
	// the prediction service.
	ErrUpstreamUnreachable = errors.New("prediction service unreachable")
)
