package domain

import "errors"

var (
	ErrAccountNotFound   = errors.New("account not found")
	ErrAccountExists     = errors.New("account already exists")
	ErrAnalysisNotFound  = errors.New("analysis not found")
	ErrInvalidUserID     = errors.New("invalid user id")
	ErrRequestInProgress = errors.New("request with this idempotency key is still in progress")

	// ErrModelUnavailable means no creative-intent model credential is configured.
	ErrModelUnavailable = errors.New("creative model not configured")
	// ErrInvalidModelOutput means the model answered with something other than a JSON object.
	ErrInvalidModelOutput = errors.New("creative model returned an invalid document")
)

// ErrInvalidCredentials is returned when a login omits email or password.
var ErrInvalidCredentials = errors.New("email and password are required")
