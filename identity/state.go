package identity

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// stateTokenAlphabet is the 36-symbol alphabet state tokens are drawn from.
const stateTokenAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// StateTokenLength is the fixed length of a state token.
const StateTokenLength = 32

// GenerateStateToken mints the anti-forgery token that binds a login attempt
// to a browser session. Each character is drawn uniformly via crypto/rand.
// Tokens are single use: the callback consumes them.
func GenerateStateToken() (string, error) {
	alphabetSize := big.NewInt(int64(len(stateTokenAlphabet)))
	token := make([]byte, StateTokenLength)
	for i := range token {
		n, err := rand.Int(rand.Reader, alphabetSize)
		if err != nil {
			return "", fmt.Errorf("[GenerateStateToken] entropy unavailable: %w", err)
		}
		token[i] = stateTokenAlphabet[n.Int64()]
	}
	return string(token), nil
}
