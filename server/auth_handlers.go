package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/catalogworks/go-catalog-server/identity"
	"github.com/rs/zerolog/log"
)

// maxAuthCodeBytes bounds the raw authorization code posted to the callback.
const maxAuthCodeBytes = 4096

// LoginPageData contains data for rendering the login page
type LoginPageData struct {
	AppName  string
	State    string
	ClientID string
}

// LoginPageHandler serves the sign-in page with a freshly minted state
// token embedded in it (GET /login).
func (s *Server) LoginPageHandler() http.HandlerFunc {
	loginTmpl := MustParseTemplate("login.html")

	return func(w http.ResponseWriter, r *http.Request) {
		sessionID, err := s.sessionID(w, r)
		if err != nil {
			log.Err(err).Msg("failed to establish browser session")
			http.Error(w, "Failed to start session", http.StatusInternalServerError)
			return
		}

		state, err := s.identity.BeginLogin(sessionID)
		if err != nil {
			log.Err(err).Msg("failed to mint state token")
			http.Error(w, "Failed to start sign-in", http.StatusInternalServerError)
			return
		}

		data := LoginPageData{
			AppName:  s.config.GetAppName(),
			State:    state,
			ClientID: s.config.GetClientID(),
		}

		w.Header().Set("Content-Type", contentTypeHTML)
		if err := loginTmpl.Execute(w, data); err != nil {
			log.Err(err).Msg("failed to render login template")
			http.Error(w, "Failed to render login page", http.StatusInternalServerError)
		}
	}
}

// OAuthCallbackHandler completes the sign-in flow (POST /oauth/callback).
// The browser posts the provider-issued authorization code as the raw body,
// with the state token it was handed at login as a query parameter. On
// success the response is a plain-text welcome, by design.
func (s *Server) OAuthCallbackHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID, err := s.cookie.Decode(r)
		if err != nil {
			// No session means no stored state token to match against.
			http.Error(w, "Invalid state parameter", http.StatusUnauthorized)
			return
		}

		state := r.URL.Query().Get("state")
		code, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxAuthCodeBytes))
		if err != nil {
			http.Error(w, "Failed to read authorization code", http.StatusBadRequest)
			return
		}

		verified, err := s.identity.Authenticate(r.Context(), sessionID, state, string(code))
		if err != nil {
			log.Warn().Err(err).Msg("sign-in failed")
			http.Error(w, userFacingAuthError(err), identity.HTTPStatus(err))
			return
		}

		w.Header().Set("Content-Type", contentTypeText)
		if verified.Returning {
			fmt.Fprintf(w, "Welcome back %s, please wait...", verified.DisplayName)
			return
		}
		fmt.Fprintf(w, "Welcome %s, please wait...", verified.DisplayName)
	}
}

// LogoutHandler revokes the stored credential with the provider and clears
// the session identity record (GET /logout). A rejected revocation leaves
// the session in place; see identity.Service.Logout.
func (s *Server) LogoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID, err := s.cookie.Decode(r)
		if err != nil {
			http.Error(w, "No active session", http.StatusUnauthorized)
			return
		}

		if err := s.identity.Logout(r.Context(), sessionID); err != nil {
			log.Warn().Err(err).Msg("logout failed")
			http.Error(w, userFacingAuthError(err), identity.HTTPStatus(err))
			return
		}

		w.Header().Set("Content-Type", contentTypeJSON)
		_ = json.NewEncoder(w).Encode("Successfully disconnected")
	}
}

// userFacingAuthError maps a sign-in flow error to its client message.
// Nothing internal is echoed beyond the provider's own error string, which
// rides inside TokenInvalidErr.
func userFacingAuthError(err error) string {
	switch {
	case errors.Is(err, identity.InvalidStateErr):
		return "Invalid state parameter"
	case errors.Is(err, identity.ExchangeFailedErr):
		return "Failed to upgrade the authorization code"
	case errors.Is(err, identity.TokenInvalidErr):
		return err.Error()
	case errors.Is(err, identity.SubjectMismatchErr), errors.Is(err, identity.AudienceMismatchErr):
		return "Invalid token."
	case errors.Is(err, identity.NoActiveSessionErr):
		return "No active session"
	case errors.Is(err, identity.RevokeFailedErr):
		return "Failed to revoke token"
	default:
		return "Authentication failed"
	}
}
