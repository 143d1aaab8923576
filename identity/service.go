package identity

import (
	"context"
	"errors"
	"fmt"

	"github.com/catalogworks/go-catalog-server/sessions"
	"github.com/rs/zerolog/log"
)

// Service orchestrates the sign-in flow for a browser session: state token
// minting, code exchange, credential verification and session establishment.
// A session identity record exists if and only if a credential passed every
// verification check; nothing partial survives a failed attempt.
type Service struct {
	exchanger *Exchanger
	verifier  *Verifier
	provider  *Provider
	sessions  sessions.Repo
}

func NewService(provider *Provider, sessionRepo sessions.Repo) (*Service, error) {
	if provider == nil {
		return nil, errors.New("[NewService] provider is required")
	}
	if sessionRepo == nil {
		return nil, errors.New("[NewService] session repo is required")
	}
	return &Service{
		exchanger: NewExchanger(provider),
		verifier:  NewVerifier(provider),
		provider:  provider,
		sessions:  sessionRepo,
	}, nil
}

// BeginLogin mints a fresh state token and stores it in the browser session,
// overwriting any unconsumed predecessor.
func (s *Service) BeginLogin(sessionID string) (string, error) {
	state, err := GenerateStateToken()
	if err != nil {
		return "", err
	}

	sess, err := s.sessions.Get(sessionID)
	if err != nil && !errors.Is(err, sessions.ErrNotFound) {
		return "", fmt.Errorf("[BeginLogin] loading session: %w", err)
	}
	sess.StateToken = state
	if err := s.sessions.Put(sessionID, sess); err != nil {
		return "", fmt.Errorf("[BeginLogin] storing state token: %w", err)
	}
	return state, nil
}

// Authenticate completes the sign-in flow: state check, code exchange,
// credential verification, then an all-or-nothing commit of the session
// identity record. The stored state token is consumed by the attempt
// whether or not the exchange succeeds; only a state mismatch leaves it in
// place untouched.
func (s *Service) Authenticate(ctx context.Context, sessionID, requestState, code string) (VerifiedIdentity, error) {
	sess, err := s.sessions.Get(sessionID)
	if err != nil && !errors.Is(err, sessions.ErrNotFound) {
		return VerifiedIdentity{}, fmt.Errorf("[Authenticate] loading session: %w", err)
	}

	cred, err := s.exchanger.Exchange(ctx, requestState, sess.StateToken, code)
	if err != nil {
		if !errors.Is(err, InvalidStateErr) {
			s.consumeState(sessionID, sess)
		}
		return VerifiedIdentity{}, err
	}
	sess.StateToken = ""

	verified, err := s.verifier.Verify(ctx, sess, cred)
	if err != nil {
		// State consumed, nothing else committed.
		if putErr := s.sessions.Put(sessionID, sess); putErr != nil {
			log.Err(putErr).Msg("failed to store session after verification failure")
		}
		return VerifiedIdentity{}, err
	}

	sess.AccessToken = verified.AccessToken
	sess.SubjectID = verified.SubjectID
	sess.DisplayName = verified.DisplayName
	sess.Email = verified.Email
	sess.AvatarURL = verified.AvatarURL
	if err := s.sessions.Put(sessionID, sess); err != nil {
		return VerifiedIdentity{}, fmt.Errorf("[Authenticate] committing session: %w", err)
	}

	log.Info().
		Str("subject", verified.SubjectID).
		Bool("returning", verified.Returning).
		Msg("sign-in verified")
	return verified, nil
}

// Logout revokes the stored access token with the provider and clears the
// session identity record. If the provider rejects the revocation the
// record is left fully intact: the remote token may still be live, so
// silently de-authenticating would be worse than reporting the failure.
func (s *Service) Logout(ctx context.Context, sessionID string) error {
	sess, err := s.sessions.Get(sessionID)
	if err != nil || sess.AccessToken == "" {
		return NoActiveSessionErr
	}

	if err := s.provider.Revoke(ctx, sess.AccessToken); err != nil {
		return fmt.Errorf("%w: %v", RevokeFailedErr, err)
	}

	sess.AccessToken = ""
	sess.SubjectID = ""
	sess.DisplayName = ""
	sess.Email = ""
	sess.AvatarURL = ""
	if err := s.sessions.Put(sessionID, sess); err != nil {
		return fmt.Errorf("[Logout] clearing session: %w", err)
	}

	log.Info().Msg("session disconnected")
	return nil
}

func (s *Service) consumeState(sessionID string, sess sessions.Session) {
	sess.StateToken = ""
	if err := s.sessions.Put(sessionID, sess); err != nil {
		log.Err(err).Msg("failed to clear consumed state token")
	}
}
