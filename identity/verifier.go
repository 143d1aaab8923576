package identity

import (
	"context"
	"fmt"

	"github.com/catalogworks/go-catalog-server/sessions"
)

// Verifier runs the verification checks on an exchanged credential. The
// checks are independent on purpose: each defends against a distinct threat
// (a garbled token, a token valid for another user, a token issued to
// another application), so none of them can stand in for the others.
type Verifier struct {
	provider *Provider
}

func NewVerifier(provider *Provider) *Verifier {
	return &Verifier{provider: provider}
}

// Verify cross-checks the credential against the provider's introspection
// endpoint, short-circuiting on the first failed check:
//
//  1. introspection reports an error      -> TokenInvalidErr
//  2. introspected user_id != subject     -> SubjectMismatchErr
//  3. introspected issued_to != client id -> AudienceMismatchErr
//
// If the session already holds an access token for the same subject, the
// login is idempotent: the stored attributes are returned without another
// user-info fetch. Otherwise the display attributes are fetched fresh.
func (v *Verifier) Verify(ctx context.Context, sess sessions.Session, cred Credential) (VerifiedIdentity, error) {
	info, err := v.provider.TokenInfo(ctx, cred.AccessToken)
	if err != nil {
		return VerifiedIdentity{}, fmt.Errorf("%w: %v", TokenInvalidErr, err)
	}
	if info.Error != "" {
		return VerifiedIdentity{}, fmt.Errorf("%w: %s", TokenInvalidErr, info.Error)
	}

	if info.UserID != cred.Subject {
		return VerifiedIdentity{}, SubjectMismatchErr
	}

	if info.IssuedTo != v.provider.ClientID() {
		return VerifiedIdentity{}, AudienceMismatchErr
	}

	if sess.AccessToken != "" && sess.SubjectID == cred.Subject {
		return VerifiedIdentity{
			SubjectID:   sess.SubjectID,
			AccessToken: sess.AccessToken,
			DisplayName: sess.DisplayName,
			Email:       sess.Email,
			AvatarURL:   sess.AvatarURL,
			Returning:   true,
		}, nil
	}

	user, err := v.provider.UserInfo(ctx, cred.AccessToken)
	if err != nil {
		return VerifiedIdentity{}, fmt.Errorf("%w: %v", TokenInvalidErr, err)
	}

	return VerifiedIdentity{
		SubjectID:   cred.Subject,
		AccessToken: cred.AccessToken,
		DisplayName: user.Name,
		Email:       user.Email,
		AvatarURL:   user.Picture,
	}, nil
}
