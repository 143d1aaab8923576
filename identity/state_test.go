package identity_test

import (
	"strings"
	"testing"

	"github.com/catalogworks/go-catalog-server/identity"
	"github.com/stretchr/testify/require"
)

func TestGenerateStateToken(t *testing.T) {
	token, err := identity.GenerateStateToken()
	require.NoError(t, err)
	require.Len(t, token, identity.StateTokenLength)

	const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	for _, c := range token {
		require.True(t, strings.ContainsRune(alphabet, c), "unexpected character %q in state token", c)
	}
}

func TestGenerateStateTokenUnique(t *testing.T) {
	first, err := identity.GenerateStateToken()
	require.NoError(t, err)
	second, err := identity.GenerateStateToken()
	require.NoError(t, err)
	require.NotEqual(t, first, second)
}
