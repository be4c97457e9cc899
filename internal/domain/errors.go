package domain

import "errors"

// Configuration errors

var (
	// ErrInvalidConfig indicates missing or invalid configuration
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrMissingCredentials indicates the Forkable email or password is not configured
	ErrMissingCredentials = errors.New("missing Forkable credentials")

	// ErrUnauthorized indicates the inbound bearer token is missing or wrong
	ErrUnauthorized = errors.New("unauthorized")
)

// Forkable login errors

var (
	// ErrLoginRejected indicates Forkable refused the credentials
	ErrLoginRejected = errors.New("login rejected")

	// ErrLoginUnreachable indicates the login call failed or returned a non-success status
	ErrLoginUnreachable = errors.New("login endpoint unreachable")

	// ErrLoginMalformedResponse indicates the session cookie was not found in the login response
	ErrLoginMalformedResponse = errors.New("login response malformed")
)

// Forkable delivery query errors

var (
	// ErrQueryUnauthenticated indicates the session was rejected by Forkable.
	// It is the only error that makes LunchService log in again.
	ErrQueryUnauthenticated = errors.New("session not authenticated")

	// ErrQueryUnreachable indicates the delivery call failed or returned a non-success status
	ErrQueryUnreachable = errors.New("delivery endpoint unreachable")

	// ErrQueryMalformedResponse indicates the delivery response could not be understood
	ErrQueryMalformedResponse = errors.New("unknown error")
)

// ErrStoreUnavailable indicates the session store has no usable backend
var ErrStoreUnavailable = errors.New("session store unavailable")
