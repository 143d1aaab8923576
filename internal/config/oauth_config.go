package config

import "time"

type OAuthConfig interface {
	GetClientID() string
	GetClientSecret() string
	GetIssuer() string
	GetRedirectURL() string
	GetTokenInfoURL() string
	GetUserInfoURL() string
	GetRevokeURL() string
	GetProviderTimeout() time.Duration
}

type OAuth struct{}

var _ OAuthConfig = OAuth{}

func (OAuth) GetClientID() string {
	return GetEnv("OAUTH_CLIENT_ID", "")
}

func (OAuth) GetClientSecret() string {
	return GetEnv("OAUTH_CLIENT_SECRET", "")
}

// GetIssuer returns the provider's OIDC issuer. Overridable so tests can
// point the flow at a local fake provider.
func (OAuth) GetIssuer() string {
	return GetEnv("OAUTH_ISSUER", "https://accounts.google.com")
}

// GetRedirectURL returns the registered redirect target. The authorization
// code comes back to us via the login page posting it, not via a browser
// redirect, hence the fixed non-browser value.
func (OAuth) GetRedirectURL() string {
	return GetEnv("OAUTH_REDIRECT_URL", "postmessage")
}

func (OAuth) GetTokenInfoURL() string {
	return GetEnv("OAUTH_TOKENINFO_URL", "https://www.googleapis.com/oauth2/v1/tokeninfo")
}

func (OAuth) GetUserInfoURL() string {
	return GetEnv("OAUTH_USERINFO_URL", "https://www.googleapis.com/oauth2/v1/userinfo")
}

func (OAuth) GetRevokeURL() string {
	return GetEnv("OAUTH_REVOKE_URL", "https://accounts.google.com/o/oauth2/revoke")
}

func (OAuth) GetProviderTimeout() time.Duration {
	return 10 * time.Second
}
