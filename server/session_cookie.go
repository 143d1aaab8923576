package server

import (
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/fxamacker/cbor/v2"
	"golang.org/x/crypto/chacha20poly1305"
)

var (
	errCookieFormat  = errors.New("invalid session cookie format")
	errCookieInvalid = errors.New("invalid session cookie")
)

// sessionKeyID versions the sealing key so a future rotation can tell old
// cookies apart.
const sessionKeyID = "v1"

// maxCookieLen bounds the amount of client-controlled data we will decode.
const maxCookieLen = 8192

// sessionCookiePayload is the sealed cookie contents. Only the session ID
// crosses the wire; identity fields stay server-side.
type sessionCookiePayload struct {
	ID string `cbor:"1,keyasint"`
}

// sessionCookieCodec seals and unseals the browser session cookie with an
// XChaCha20-Poly1305 AEAD over a CBOR payload.
type sessionCookieCodec struct {
	name   string
	maxAge int
	aead   cipher.AEAD
}

func newSessionCookieCodec(name string, key []byte, maxAge int) (*sessionCookieCodec, error) {
	if name == "" {
		return nil, errors.New("cookie name must not be empty")
	}
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, fmt.Errorf("invalid session key: %w", err)
	}
	return &sessionCookieCodec{name: name, maxAge: maxAge, aead: aead}, nil
}

// Encode seals the session ID into a cookie.
func (c *sessionCookieCodec) Encode(sessionID string) (*http.Cookie, error) {
	plain, err := cbor.Marshal(sessionCookiePayload{ID: sessionID})
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, c.aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return nil, err
	}
	sealed := c.aead.Seal(nonce, nonce, plain, []byte(c.name))

	return &http.Cookie{
		Name:     c.name,
		Value:    sessionKeyID + "." + base64.RawURLEncoding.EncodeToString(sealed),
		Path:     "/",
		MaxAge:   c.maxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}, nil
}

// Decode unseals the session ID from the request's cookie.
func (c *sessionCookieCodec) Decode(r *http.Request) (string, error) {
	cookie, err := r.Cookie(c.name)
	if err != nil {
		return "", err
	}
	value := cookie.Value
	if len(value) == 0 || len(value) > maxCookieLen {
		return "", errCookieFormat
	}

	keyID, encoded, ok := strings.Cut(value, ".")
	if !ok || keyID != sessionKeyID {
		return "", errCookieFormat
	}
	sealed, err := base64.RawURLEncoding.DecodeString(encoded)
	if err != nil {
		return "", errCookieFormat
	}
	if len(sealed) < c.aead.NonceSize() {
		return "", errCookieFormat
	}

	nonce, ciphertext := sealed[:c.aead.NonceSize()], sealed[c.aead.NonceSize():]
	plain, err := c.aead.Open(nil, nonce, ciphertext, []byte(c.name))
	if err != nil {
		return "", errCookieInvalid
	}

	var payload sessionCookiePayload
	if err := cbor.Unmarshal(plain, &payload); err != nil {
		return "", errCookieFormat
	}
	if payload.ID == "" {
		return "", errCookieInvalid
	}
	return payload.ID, nil
}

// Clear returns a cookie that removes the session cookie in the client.
func (c *sessionCookieCodec) Clear() *http.Cookie {
	return &http.Cookie{
		Name:     c.name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}
