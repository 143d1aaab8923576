package identity

import (
	"errors"
	"net/http"
)

// Sign-in flow errors. All of them are terminal for the current attempt;
// the browser has to restart the flow with a fresh state token.
var (
	InvalidStateErr     = errors.New("invalid state token")
	ExchangeFailedErr   = errors.New("failed to exchange authorization code")
	TokenInvalidErr     = errors.New("invalid access token")
	SubjectMismatchErr  = errors.New("token subject does not match credential")
	AudienceMismatchErr = errors.New("token audience does not match client")
	NoActiveSessionErr  = errors.New("no active session")
	RevokeFailedErr     = errors.New("failed to revoke access token")
)

// HTTPStatus maps a sign-in flow error to its response status.
// A token-introspection failure is reported as a server error rather than a
// client error: a structurally broken token points at a provider-side
// anomaly, not a client mistake. Subject and audience mismatches stay 401.
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, TokenInvalidErr):
		return http.StatusInternalServerError
	case errors.Is(err, RevokeFailedErr):
		return http.StatusBadRequest
	case errors.Is(err, InvalidStateErr),
		errors.Is(err, ExchangeFailedErr),
		errors.Is(err, SubjectMismatchErr),
		errors.Is(err, AudienceMismatchErr),
		errors.Is(err, NoActiveSessionErr):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}
