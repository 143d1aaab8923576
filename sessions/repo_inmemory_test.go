package sessions_test

import (
	"testing"

	"github.com/catalogworks/go-catalog-server/sessions"
	"github.com/stretchr/testify/require"
)

func TestInMemoryRepoGetMissing(t *testing.T) {
	repo := sessions.NewInMemoryRepo()

	_, err := repo.Get("nope")
	require.ErrorIs(t, err, sessions.ErrNotFound)
}

func TestInMemoryRepoPutGet(t *testing.T) {
	repo := sessions.NewInMemoryRepo()

	stored := sessions.Session{StateToken: "STATE", AccessToken: "token", SubjectID: "subject"}
	require.NoError(t, repo.Put("s1", stored))

	got, err := repo.Get("s1")
	require.NoError(t, err)
	require.Equal(t, stored, got)
	require.True(t, got.Authenticated())
}

func TestInMemoryRepoPutReplaces(t *testing.T) {
	repo := sessions.NewInMemoryRepo()

	require.NoError(t, repo.Put("s1", sessions.Session{StateToken: "FIRST"}))
	require.NoError(t, repo.Put("s1", sessions.Session{StateToken: "SECOND"}))

	got, err := repo.Get("s1")
	require.NoError(t, err)
	require.Equal(t, "SECOND", got.StateToken)
	require.False(t, got.Authenticated())
}

func TestInMemoryRepoDelete(t *testing.T) {
	repo := sessions.NewInMemoryRepo()

	require.NoError(t, repo.Put("s1", sessions.Session{StateToken: "STATE"}))
	require.NoError(t, repo.Delete("s1"))

	_, err := repo.Get("s1")
	require.ErrorIs(t, err, sessions.ErrNotFound)

	// Deleting again is not an error.
	require.NoError(t, repo.Delete("s1"))
}

func TestInMemoryRepoEmptyID(t *testing.T) {
	repo := sessions.NewInMemoryRepo()

	_, err := repo.Get("")
	require.Error(t, err)
	require.Error(t, repo.Put("", sessions.Session{}))
	require.Error(t, repo.Delete(""))
}
