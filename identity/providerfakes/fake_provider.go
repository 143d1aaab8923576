// Package providerfakes provides an in-process identity provider for tests:
// OIDC discovery, JWKS, token, introspection, userinfo and revoke endpoints
// backed by a throwaway RSA key.
package providerfakes

import (
	"crypto/rand"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"math/big"
	"net/http"
	"net/http/httptest"
	"sync"
	"time"

	"github.com/catalogworks/go-catalog-server/identity"
	"github.com/golang-jwt/jwt/v5"
)

const keyID = "test-key"

// FakeProvider serves a complete provider surface over httptest. Tests adjust
// the exported fields between requests to shape the provider's answers; the
// call counters record which endpoints each flow actually touched.
type FakeProvider struct {
	ClientID    string
	Subject     string
	Code        string
	AccessToken string

	// Introspection answers, independent of the token response so tests can
	// make the provider contradict itself.
	UserID         string
	IssuedTo       string
	TokenInfoError string

	Name    string
	Picture string
	Email   string

	RejectExchange bool
	RevokeStatus   int

	mu             sync.Mutex
	tokenCalls     int
	tokenInfoCalls int
	userInfoCalls  int
	revokeCalls    int

	key    *rsa.PrivateKey
	server *httptest.Server
}

// New starts a fake provider with a self-consistent happy-path configuration:
// the code exchanges cleanly and introspection agrees with the ID token.
func New() (*FakeProvider, error) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		return nil, err
	}

	f := &FakeProvider{
		ClientID:     "catalog-client",
		Subject:      "subject-1",
		Code:         "valid-code",
		AccessToken:  "access-token-1",
		UserID:       "subject-1",
		IssuedTo:     "catalog-client",
		Name:         "Ada",
		Picture:      "https://example.com/ada.png",
		Email:        "ada@example.com",
		RevokeStatus: http.StatusOK,
		key:          key,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /.well-known/openid-configuration", f.discoveryHandler)
	mux.HandleFunc("GET /keys", f.keysHandler)
	mux.HandleFunc("POST /token", f.tokenHandler)
	mux.HandleFunc("GET /tokeninfo", f.tokenInfoHandler)
	mux.HandleFunc("GET /userinfo", f.userInfoHandler)
	mux.HandleFunc("GET /revoke", f.revokeHandler)
	f.server = httptest.NewServer(mux)
	return f, nil
}

func (f *FakeProvider) Close() {
	f.server.Close()
}

// URL is the provider's issuer, the base for every endpoint.
func (f *FakeProvider) URL() string {
	return f.server.URL
}

// Config returns a provider configuration pointing every endpoint at this
// fake.
func (f *FakeProvider) Config() identity.ProviderConfig {
	return identity.ProviderConfig{
		Issuer:       f.server.URL,
		ClientID:     f.ClientID,
		ClientSecret: "catalog-secret",
		TokenInfoURL: f.server.URL + "/tokeninfo",
		UserInfoURL:  f.server.URL + "/userinfo",
		RevokeURL:    f.server.URL + "/revoke",
		Timeout:      5 * time.Second,
	}
}

func (f *FakeProvider) TokenCalls() int     { f.mu.Lock(); defer f.mu.Unlock(); return f.tokenCalls }
func (f *FakeProvider) TokenInfoCalls() int { f.mu.Lock(); defer f.mu.Unlock(); return f.tokenInfoCalls }
func (f *FakeProvider) UserInfoCalls() int  { f.mu.Lock(); defer f.mu.Unlock(); return f.userInfoCalls }
func (f *FakeProvider) RevokeCalls() int    { f.mu.Lock(); defer f.mu.Unlock(); return f.revokeCalls }

func (f *FakeProvider) discoveryHandler(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"issuer":                                f.server.URL,
		"authorization_endpoint":                f.server.URL + "/auth",
		"token_endpoint":                        f.server.URL + "/token",
		"jwks_uri":                              f.server.URL + "/keys",
		"userinfo_endpoint":                     f.server.URL + "/userinfo",
		"id_token_signing_alg_values_supported": []string{"RS256"},
	})
}

func (f *FakeProvider) keysHandler(w http.ResponseWriter, _ *http.Request) {
	pub := f.key.Public().(*rsa.PublicKey)
	writeJSON(w, http.StatusOK, map[string]any{
		"keys": []map[string]any{{
			"kty": "RSA",
			"alg": "RS256",
			"use": "sig",
			"kid": keyID,
			"n":   base64.RawURLEncoding.EncodeToString(pub.N.Bytes()),
			"e":   base64.RawURLEncoding.EncodeToString(big.NewInt(int64(pub.E)).Bytes()),
		}},
	})
}

func (f *FakeProvider) tokenHandler(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	f.tokenCalls++
	reject := f.RejectExchange
	code := f.Code
	accessToken := f.AccessToken
	f.mu.Unlock()

	if err := r.ParseForm(); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid_request"})
		return
	}
	if reject || r.PostFormValue("code") != code {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid_grant"})
		return
	}

	idToken, err := f.signIDToken()
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "server_error"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"access_token": accessToken,
		"token_type":   "Bearer",
		"expires_in":   3600,
		"id_token":     idToken,
	})
}

func (f *FakeProvider) signIDToken() (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodRS256, jwt.MapClaims{
		"iss": f.server.URL,
		"aud": f.ClientID,
		"sub": f.Subject,
		"iat": now.Unix(),
		"exp": now.Add(time.Hour).Unix(),
	})
	token.Header["kid"] = keyID
	return token.SignedString(f.key)
}

func (f *FakeProvider) tokenInfoHandler(w http.ResponseWriter, _ *http.Request) {
	f.mu.Lock()
	f.tokenInfoCalls++
	info := identity.TokenInfo{UserID: f.UserID, IssuedTo: f.IssuedTo, Error: f.TokenInfoError}
	f.mu.Unlock()

	status := http.StatusOK
	if info.Error != "" {
		status = http.StatusBadRequest
	}
	writeJSON(w, status, info)
}

func (f *FakeProvider) userInfoHandler(w http.ResponseWriter, _ *http.Request) {
	f.mu.Lock()
	f.userInfoCalls++
	user := identity.UserInfo{Name: f.Name, Picture: f.Picture, Email: f.Email}
	f.mu.Unlock()

	writeJSON(w, http.StatusOK, user)
}

func (f *FakeProvider) revokeHandler(w http.ResponseWriter, _ *http.Request) {
	f.mu.Lock()
	f.revokeCalls++
	status := f.RevokeStatus
	f.mu.Unlock()

	w.WriteHeader(status)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
