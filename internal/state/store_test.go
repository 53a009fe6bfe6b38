package state

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenMissingFileStartsEmpty(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "state.json"))
	require.NoError(t, err)

	_, ok := s.Remote("/some/repo")
	assert.False(t, ok)
}

func TestSetRemoteRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "state.json")

	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.SetRemote("/repo/a", "git@github.com:acme/a.git"))
	require.NoError(t, s.SetRemote("/repo/b", "https://github.com/acme/b.git"))
	require.NoError(t, s.SetRemote("/repo/a", "git@github.com:acme/a2.git"))

	reopened, err := Open(path)
	require.NoError(t, err)

	remote, ok := reopened.Remote("/repo/a")
	require.True(t, ok)
	assert.Equal(t, "git@github.com:acme/a2.git", remote)

	remote, ok = reopened.Remote("/repo/b")
	require.True(t, ok)
	assert.Equal(t, "https://github.com/acme/b.git", remote)
}

func TestSetRemoteKeepsMemoryOnWriteFailure(t *testing.T) {
	if os.Getuid() == 0 {
		t.Skip("directory permissions are not enforced for root")
	}
	dir := t.TempDir()
	require.NoError(t, os.Chmod(dir, 0o500))
	t.Cleanup(func() { _ = os.Chmod(dir, 0o700) })

	s, err := Open(filepath.Join(dir, "ro", "state.json"))
	require.NoError(t, err)

	err = s.SetRemote("/repo/a", "git@github.com:acme/a.git")
	assert.Error(t, err)

	remote, ok := s.Remote("/repo/a")
	require.True(t, ok, "in-memory value survives persist failure")
	assert.Equal(t, "git@github.com:acme/a.git", remote)
}

func TestOpenRejectsCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0o644))

	_, err := Open(path)
	assert.Error(t, err)
}
