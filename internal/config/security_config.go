package config

import (
	"crypto/rand"
	"encoding/base64"
	"log"
	"sync"
	"time"
)

type SecurityConfig interface {
	GetSessionCookieName() string
	GetSessionKey() []byte
	GetMaxSessionAge() time.Duration
}

// sessionKeySize matches the XChaCha20-Poly1305 key size used by the
// session cookie codec.
const sessionKeySize = 32

type Security struct{}

var _ SecurityConfig = Security{}

func (Security) GetSessionCookieName() string {
	return GetEnv("SESSION_COOKIE_NAME", "catalog_session")
}

// GetSessionKey returns the cookie sealing key from SESSION_KEY (base64,
// 32 bytes). Without a valid key a random per-process key is used, which
// invalidates existing sessions on restart.
func (Security) GetSessionKey() []byte {
	if v := GetEnv("SESSION_KEY", ""); v != "" {
		key, err := base64.StdEncoding.DecodeString(v)
		if err == nil && len(key) == sessionKeySize {
			return key
		}
		log.Printf("SESSION_KEY is not a valid base64-encoded %d-byte key, falling back to a per-process key", sessionKeySize)
	}
	return processSessionKey()
}

var processSessionKey = sync.OnceValue(func() []byte {
	key := make([]byte, sessionKeySize)
	if _, err := rand.Read(key); err != nil {
		panic("failed to generate session key: " + err.Error())
	}
	return key
})

func (Security) GetMaxSessionAge() time.Duration {
	return 30 * time.Minute
}
