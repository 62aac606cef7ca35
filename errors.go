package authcore

import "errors"

var (
	// ErrUnauthorized is the single outcome for every token rejection:
	// missing, malformed, tampered, or expired. The distinction is audited
	// server-side but never surfaced to the caller.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrForbidden is returned when a verified caller's role does not permit
	// the requested operation. Distinct from ErrUnauthorized.
	ErrForbidden = errors.New("forbidden")
	// ErrInvalidCredentials is the uniform login failure. It deliberately
	// does not reveal whether the email exists.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrEmailAlreadyRegistered is returned when registration targets an
	// email that already has an identity. Email existence is not secret.
	ErrEmailAlreadyRegistered = errors.New("email already registered")
	// ErrIdentityNotFound is returned by lookups that miss.
	ErrIdentityNotFound = errors.New("identity not found")
	// ErrMalformedSubject is returned when a token subject cannot name an
	// identity (empty or not a UUID).
	ErrMalformedSubject = errors.New("malformed subject")
	// ErrUnknownRole is returned when a role value is outside the closed set.
	ErrUnknownRole = errors.New("unknown role")
	// ErrLoginRateLimited is returned when the optional limiter denies a
	// login attempt.
	ErrLoginRateLimited = errors.New("login rate limited")
	// ErrEngineNotReady is returned when an Engine method runs before Build
	// wired its dependencies.
	ErrEngineNotReady = errors.New("engine not initialized")

	// ErrMissingFields is a validation failure: a required registration
	// field is empty.
	ErrMissingFields = errors.New("required fields missing")
	// ErrPasswordMismatch is a validation failure: password and confirmation
	// differ.
	ErrPasswordMismatch = errors.New("passwords do not match")
	// ErrPasswordTooShort is a validation failure: password under the
	// configured minimum length.
	ErrPasswordTooShort = errors.New("password too short")

	// ErrInternal covers hash and signing failures. Detail is logged and
	// audited server-side, never exposed to the caller.
	ErrInternal = errors.New("internal error")
)

// IsValidationError reports whether err belongs to the recoverable
// validation class that boundaries map to a 400-style outcome.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrMissingFields) ||
		errors.Is(err, ErrPasswordMismatch) ||
		errors.Is(err, ErrPasswordTooShort) ||
		errors.Is(err, ErrMalformedSubject)
}
