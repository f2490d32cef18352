package models

import "errors"

// Domain error taxonomy. Handlers map these to HTTP statuses; nothing is
// retried internally.
var (
	ErrInvalidToken          = errors.New("invalid token")
	ErrUnauthorized          = errors.New("could not validate credentials")
	ErrSignatureInvalid      = errors.New("invalid signature")
	ErrMalformedPayload      = errors.New("invalid payload")
	ErrReferenceNotFound     = errors.New("cause or user not found")
	ErrDuplicateRegistration = errors.New("email already registered")
	ErrInvalidCredentials    = errors.New("invalid credentials")
	ErrInvalidEmail          = errors.New("invalid email address")
	ErrNotFound              = errors.New("not found")

	// ErrEventAlreadyProcessed signals a redelivered provider event. The
	// webhook handler acknowledges it without inserting a second donation.
	ErrEventAlreadyProcessed = errors.New("event already processed")
)
