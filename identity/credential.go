package identity

// Credential is the result of a server-side authorization-code exchange:
// an opaque access token plus the subject extracted from the provider's
// signed identity assertion. It is never persisted; the verifier is its
// only consumer.
type Credential struct {
	AccessToken string
	Subject     string
}

// TokenInfo is the provider's token-introspection response. It is untrusted
// input used only for cross-checking the credential, never taken at face
// value on its own.
type TokenInfo struct {
	UserID   string `json:"user_id"`
	IssuedTo string `json:"issued_to"`
	Error    string `json:"error,omitempty"`
}

// UserInfo holds the display attributes fetched from the provider's
// user-info endpoint with a verified access token.
type UserInfo struct {
	Name    string `json:"name"`
	Picture string `json:"picture"`
	Email   string `json:"email"`
}

// VerifiedIdentity is a credential that passed every verification check,
// bundled with the display attributes to commit into the session.
// Returning is set when the session was already authenticated as the same
// subject and the attributes were reused instead of re-fetched.
type VerifiedIdentity struct {
	SubjectID   string
	AccessToken string
	DisplayName string
	Email       string
	AvatarURL   string
	Returning   bool
}
