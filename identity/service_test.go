package identity_test

import (
	"context"
	"testing"

	"github.com/catalogworks/go-catalog-server/identity"
	"github.com/catalogworks/go-catalog-server/identity/providerfakes"
	"github.com/catalogworks/go-catalog-server/sessions"
	"github.com/stretchr/testify/require"
)

const testSessionID = "session-1"

func newTestService(t *testing.T) (*identity.Service, *providerfakes.FakeProvider, *sessions.InMemoryRepo) {
	t.Helper()

	fake, err := providerfakes.New()
	require.NoError(t, err)
	t.Cleanup(fake.Close)

	provider, err := identity.NewProvider(context.Background(), fake.Config())
	require.NoError(t, err)

	repo := sessions.NewInMemoryRepo()
	service, err := identity.NewService(provider, repo)
	require.NoError(t, err)

	return service, fake, repo
}

func TestBeginLoginStoresStateToken(t *testing.T) {
	service, _, repo := newTestService(t)

	state, err := service.BeginLogin(testSessionID)
	require.NoError(t, err)
	require.Len(t, state, identity.StateTokenLength)

	sess, err := repo.Get(testSessionID)
	require.NoError(t, err)
	require.Equal(t, state, sess.StateToken)
}

func TestBeginLoginOverwritesPreviousState(t *testing.T) {
	service, _, repo := newTestService(t)

	first, err := service.BeginLogin(testSessionID)
	require.NoError(t, err)
	second, err := service.BeginLogin(testSessionID)
	require.NoError(t, err)
	require.NotEqual(t, first, second)

	sess, err := repo.Get(testSessionID)
	require.NoError(t, err)
	require.Equal(t, second, sess.StateToken)
}

func TestAuthenticateStateMismatch(t *testing.T) {
	service, fake, repo := newTestService(t)

	state, err := service.BeginLogin(testSessionID)
	require.NoError(t, err)

	_, err = service.Authenticate(context.Background(), testSessionID, "WRONG"+state[5:], fake.Code)
	require.ErrorIs(t, err, identity.InvalidStateErr)
	require.Zero(t, fake.TokenCalls(), "state mismatch must abort before any provider contact")

	// A mismatch does not consume the stored state.
	sess, err := repo.Get(testSessionID)
	require.NoError(t, err)
	require.Equal(t, state, sess.StateToken)
}

func TestAuthenticateWithoutBeginLogin(t *testing.T) {
	service, fake, _ := newTestService(t)

	_, err := service.Authenticate(context.Background(), testSessionID, "", fake.Code)
	require.ErrorIs(t, err, identity.InvalidStateErr)
	require.Zero(t, fake.TokenCalls())
}

func TestAuthenticateExchangeRejected(t *testing.T) {
	service, fake, repo := newTestService(t)
	fake.RejectExchange = true

	state, err := service.BeginLogin(testSessionID)
	require.NoError(t, err)

	_, err = service.Authenticate(context.Background(), testSessionID, state, fake.Code)
	require.ErrorIs(t, err, identity.ExchangeFailedErr)

	// The attempt consumed the state token.
	sess, err := repo.Get(testSessionID)
	require.NoError(t, err)
	require.Empty(t, sess.StateToken)
	require.Empty(t, sess.AccessToken)
}

func TestAuthenticateTokenInvalid(t *testing.T) {
	service, fake, repo := newTestService(t)
	fake.TokenInfoError = "invalid_token"

	state, err := service.BeginLogin(testSessionID)
	require.NoError(t, err)

	_, err = service.Authenticate(context.Background(), testSessionID, state, fake.Code)
	require.ErrorIs(t, err, identity.TokenInvalidErr)
	require.Zero(t, fake.UserInfoCalls(), "a failed introspection must not reach userinfo")

	sess, err := repo.Get(testSessionID)
	require.NoError(t, err)
	require.Empty(t, sess.AccessToken)
}

func TestAuthenticateSubjectMismatch(t *testing.T) {
	service, fake, repo := newTestService(t)
	fake.UserID = "someone-else"

	state, err := service.BeginLogin(testSessionID)
	require.NoError(t, err)

	_, err = service.Authenticate(context.Background(), testSessionID, state, fake.Code)
	require.ErrorIs(t, err, identity.SubjectMismatchErr)

	sess, err := repo.Get(testSessionID)
	require.NoError(t, err)
	require.Empty(t, sess.AccessToken)
}

func TestAuthenticateAudienceMismatch(t *testing.T) {
	service, fake, repo := newTestService(t)
	fake.IssuedTo = "other-client"

	state, err := service.BeginLogin(testSessionID)
	require.NoError(t, err)

	_, err = service.Authenticate(context.Background(), testSessionID, state, fake.Code)
	require.ErrorIs(t, err, identity.AudienceMismatchErr)

	sess, err := repo.Get(testSessionID)
	require.NoError(t, err)
	require.Empty(t, sess.AccessToken)
}

func TestAuthenticateSuccess(t *testing.T) {
	service, fake, repo := newTestService(t)

	state, err := service.BeginLogin(testSessionID)
	require.NoError(t, err)

	verified, err := service.Authenticate(context.Background(), testSessionID, state, fake.Code)
	require.NoError(t, err)
	require.False(t, verified.Returning)
	require.Equal(t, fake.Subject, verified.SubjectID)
	require.Equal(t, fake.AccessToken, verified.AccessToken)
	require.Equal(t, fake.Name, verified.DisplayName)
	require.Equal(t, fake.Email, verified.Email)
	require.Equal(t, fake.Picture, verified.AvatarURL)

	sess, err := repo.Get(testSessionID)
	require.NoError(t, err)
	require.Empty(t, sess.StateToken)
	require.Equal(t, fake.AccessToken, sess.AccessToken)
	require.Equal(t, fake.Subject, sess.SubjectID)
	require.Equal(t, fake.Name, sess.DisplayName)
	require.Equal(t, fake.Email, sess.Email)
	require.Equal(t, fake.Picture, sess.AvatarURL)
}

func TestAuthenticateReturningUser(t *testing.T) {
	service, fake, repo := newTestService(t)

	state, err := service.BeginLogin(testSessionID)
	require.NoError(t, err)
	_, err = service.Authenticate(context.Background(), testSessionID, state, fake.Code)
	require.NoError(t, err)

	// The provider issues a different access token for the second exchange.
	firstToken := fake.AccessToken
	fake.AccessToken = "access-token-2"

	state, err = service.BeginLogin(testSessionID)
	require.NoError(t, err)
	verified, err := service.Authenticate(context.Background(), testSessionID, state, fake.Code)
	require.NoError(t, err)

	require.True(t, verified.Returning)
	require.Equal(t, firstToken, verified.AccessToken, "a returning login keeps the session's original token")
	require.Equal(t, 1, fake.UserInfoCalls(), "a returning login must not re-fetch user info")

	sess, err := repo.Get(testSessionID)
	require.NoError(t, err)
	require.Equal(t, firstToken, sess.AccessToken)
}

func TestLogoutWithoutSession(t *testing.T) {
	service, fake, _ := newTestService(t)

	err := service.Logout(context.Background(), testSessionID)
	require.ErrorIs(t, err, identity.NoActiveSessionErr)
	require.Zero(t, fake.RevokeCalls())
}

func TestLogoutRevokeRejectedKeepsSession(t *testing.T) {
	service, fake, repo := newTestService(t)

	state, err := service.BeginLogin(testSessionID)
	require.NoError(t, err)
	_, err = service.Authenticate(context.Background(), testSessionID, state, fake.Code)
	require.NoError(t, err)

	fake.RevokeStatus = 400
	err = service.Logout(context.Background(), testSessionID)
	require.ErrorIs(t, err, identity.RevokeFailedErr)

	// The remote token may still be live, so the session stays intact.
	sess, err := repo.Get(testSessionID)
	require.NoError(t, err)
	require.Equal(t, fake.AccessToken, sess.AccessToken)
	require.Equal(t, fake.Subject, sess.SubjectID)
}

func TestLogoutSuccess(t *testing.T) {
	service, fake, repo := newTestService(t)

	state, err := service.BeginLogin(testSessionID)
	require.NoError(t, err)
	_, err = service.Authenticate(context.Background(), testSessionID, state, fake.Code)
	require.NoError(t, err)

	require.NoError(t, service.Logout(context.Background(), testSessionID))
	require.Equal(t, 1, fake.RevokeCalls())

	sess, err := repo.Get(testSessionID)
	require.NoError(t, err)
	require.Empty(t, sess.AccessToken)
	require.Empty(t, sess.SubjectID)
	require.Empty(t, sess.DisplayName)
	require.Empty(t, sess.Email)
	require.Empty(t, sess.AvatarURL)
}
