package identity

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/coreos/go-oidc/v3/oidc"
	"golang.org/x/oauth2"
)

// Default Google endpoints. The tokeninfo/userinfo/revoke endpoints sit
// outside OIDC discovery, so they are configured explicitly and can be
// pointed at a fake provider in tests.
const (
	DefaultIssuer       = "https://accounts.google.com"
	DefaultTokenInfoURL = "https://www.googleapis.com/oauth2/v1/tokeninfo"
	DefaultUserInfoURL  = "https://www.googleapis.com/oauth2/v1/userinfo"
	DefaultRevokeURL    = "https://accounts.google.com/o/oauth2/revoke"
)

// defaultProviderTimeout bounds every provider call. A timeout surfaces as
// the failure of whichever step issued the call.
const defaultProviderTimeout = 10 * time.Second

// ProviderConfig configures the connection to the identity provider.
// Zero-valued fields fall back to the Google defaults above.
type ProviderConfig struct {
	Issuer       string
	ClientID     string
	ClientSecret string
	RedirectURL  string
	Scopes       []string
	TokenInfoURL string
	UserInfoURL  string
	RevokeURL    string
	Timeout      time.Duration
}

// Provider is the server-side client for the identity provider: code
// exchange via the token endpoint, token introspection, user-info fetch and
// token revocation.
type Provider struct {
	config       *oauth2.Config
	verifier     *oidc.IDTokenVerifier
	tokenInfoURL string
	userInfoURL  string
	revokeURL    string
	client       *http.Client
}

// NewProvider runs OIDC discovery against the issuer and builds the provider
// client. Makes an outbound HTTP request at startup; fails if the issuer is
// unreachable.
func NewProvider(ctx context.Context, cfg ProviderConfig) (*Provider, error) {
	if cfg.ClientID == "" {
		return nil, errors.New("[NewProvider] client id is required")
	}

	issuer := cfg.Issuer
	if issuer == "" {
		issuer = DefaultIssuer
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultProviderTimeout
	}
	client := &http.Client{Timeout: timeout}

	p, err := oidc.NewProvider(oidc.ClientContext(ctx, client), issuer)
	if err != nil {
		return nil, fmt.Errorf("[NewProvider] provider discovery: %w", err)
	}

	scopes := cfg.Scopes
	if len(scopes) == 0 {
		scopes = []string{oidc.ScopeOpenID, "profile", "email"}
	}
	redirectURL := cfg.RedirectURL
	if redirectURL == "" {
		// Fixed non-browser redirect target: the code is posted back to us
		// by the login page, not delivered via a redirect.
		redirectURL = "postmessage"
	}
	tokenInfoURL := cfg.TokenInfoURL
	if tokenInfoURL == "" {
		tokenInfoURL = DefaultTokenInfoURL
	}
	userInfoURL := cfg.UserInfoURL
	if userInfoURL == "" {
		userInfoURL = DefaultUserInfoURL
	}
	revokeURL := cfg.RevokeURL
	if revokeURL == "" {
		revokeURL = DefaultRevokeURL
	}

	return &Provider{
		config: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			Endpoint:     p.Endpoint(),
			RedirectURL:  redirectURL,
			Scopes:       scopes,
		},
		verifier:     p.Verifier(&oidc.Config{ClientID: cfg.ClientID}),
		tokenInfoURL: tokenInfoURL,
		userInfoURL:  userInfoURL,
		revokeURL:    revokeURL,
		client:       client,
	}, nil
}

// ClientID returns this application's registered client identifier.
func (p *Provider) ClientID() string {
	return p.config.ClientID
}

// Exchange submits the one-time authorization code to the token endpoint and
// returns the resulting credential. The subject comes from the ID token,
// verified against the provider's signing keys before use.
func (p *Provider) Exchange(ctx context.Context, code string) (Credential, error) {
	token, err := p.config.Exchange(oidc.ClientContext(ctx, p.client), code)
	if err != nil {
		return Credential{}, fmt.Errorf("exchanging code: %w", err)
	}

	rawIDToken, ok := token.Extra("id_token").(string)
	if !ok {
		return Credential{}, errors.New("no id_token in token response")
	}
	idToken, err := p.verifier.Verify(ctx, rawIDToken)
	if err != nil {
		return Credential{}, fmt.Errorf("verifying id token: %w", err)
	}

	return Credential{AccessToken: token.AccessToken, Subject: idToken.Subject}, nil
}

// TokenInfo queries the token-introspection endpoint for metadata about an
// access token. The endpoint reports problems in the body rather than the
// status code, so the body is decoded regardless of status.
func (p *Provider) TokenInfo(ctx context.Context, accessToken string) (TokenInfo, error) {
	var info TokenInfo
	params := url.Values{"access_token": {accessToken}}
	if err := p.getJSON(ctx, p.tokenInfoURL, params, &info); err != nil {
		return TokenInfo{}, fmt.Errorf("fetching token info: %w", err)
	}
	return info, nil
}

// UserInfo fetches the display attributes for a verified access token.
func (p *Provider) UserInfo(ctx context.Context, accessToken string) (UserInfo, error) {
	var user UserInfo
	params := url.Values{"access_token": {accessToken}, "alt": {"json"}}
	if err := p.getJSON(ctx, p.userInfoURL, params, &user); err != nil {
		return UserInfo{}, fmt.Errorf("fetching user info: %w", err)
	}
	return user, nil
}

// Revoke asks the provider to revoke an access token. Success is signalled
// purely by the response status.
func (p *Provider) Revoke(ctx context.Context, accessToken string) error {
	params := url.Values{"token": {accessToken}}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.revokeURL+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("building revoke request: %w", err)
	}
	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("calling revoke endpoint: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("revoke endpoint returned status %d", resp.StatusCode)
	}
	return nil
}

func (p *Provider) getJSON(ctx context.Context, endpoint string, params url.Values, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return err
	}
	resp, err := p.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}
