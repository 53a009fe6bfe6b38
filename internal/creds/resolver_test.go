package creds

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zalando/go-keyring"

	"github.com/hugo-lorenzo-mato/lazyissues/internal/config"
	"github.com/hugo-lorenzo-mato/lazyissues/internal/logging"
)

func testResolver(t *testing.T) *Resolver {
	t.Helper()
	keyring.MockInit()
	t.Setenv("GITHUB_TOKEN", "")
	t.Setenv("GITLAB_TOKEN", "")
	t.Setenv("GITEA_TOKEN", "")
	return &Resolver{
		Attempts:      4,
		Timeout:       50 * time.Millisecond,
		HelperCommand: nil,
		TokenPaths:    map[string]string{},
		logger:        logging.NewNop(),
	}
}

func TestResolveFromEnvironment(t *testing.T) {
	r := testResolver(t)
	t.Setenv("GITHUB_TOKEN", "  env-token\n")

	token, err := r.Resolve(context.Background(), config.BackendGitHub, "github.com")
	require.NoError(t, err)
	assert.Equal(t, "env-token", token)
}

func TestResolveFromKeyring(t *testing.T) {
	r := testResolver(t)
	require.NoError(t, keyring.Set(keyringService, config.BackendGitea, "ring-token"))

	token, err := r.Resolve(context.Background(), config.BackendGitea, "gitea.com")
	require.NoError(t, err)
	assert.Equal(t, "ring-token", token)
}

func TestResolveFromHelper(t *testing.T) {
	r := testResolver(t)
	r.HelperCommand = []string{"sh", "-c", "printf 'username=x\npassword=helper-token\n'"}

	token, err := r.Resolve(context.Background(), config.BackendGitHub, "github.com")
	require.NoError(t, err)
	assert.Equal(t, "helper-token", token)
}

func TestResolveKillsSlowHelper(t *testing.T) {
	r := testResolver(t)
	r.Attempts = 2
	r.Timeout = 20 * time.Millisecond
	r.HelperCommand = []string{"sleep", "10"}

	start := time.Now()
	_, err := r.Resolve(context.Background(), config.BackendGitHub, "github.com")
	require.Error(t, err)
	assert.Less(t, time.Since(start), 2*time.Second, "slow helper must be killed, not waited out")
}

func TestResolveFromTokenFile(t *testing.T) {
	r := testResolver(t)
	path := filepath.Join(t.TempDir(), "token")
	require.NoError(t, os.WriteFile(path, []byte("  file-token \n"), 0o600))
	r.TokenPaths[config.BackendGitLab] = path

	token, err := r.Resolve(context.Background(), config.BackendGitLab, "gitlab.com")
	require.NoError(t, err)
	assert.Equal(t, "file-token", token)
}

func TestResolveExhaustedSources(t *testing.T) {
	r := testResolver(t)

	_, err := r.Resolve(context.Background(), config.BackendGitHub, "github.com")
	assert.Error(t, err)
}

func TestResolveSourceOrder(t *testing.T) {
	r := testResolver(t)
	t.Setenv("GITHUB_TOKEN", "env-wins")
	require.NoError(t, keyring.Set(keyringService, config.BackendGitHub, "ring-loses"))

	token, err := r.Resolve(context.Background(), config.BackendGitHub, "github.com")
	require.NoError(t, err)
	assert.Equal(t, "env-wins", token)
}

func TestResolveAllCollectsPerBackend(t *testing.T) {
	r := testResolver(t)
	t.Setenv("GITHUB_TOKEN", "gh")
	require.NoError(t, keyring.Set(keyringService, config.BackendGitea, "tea"))

	cfg := config.Default()
	r.ResolveAll(context.Background(), cfg, "github.com")

	token, ok := cfg.Token(config.BackendGitHub)
	require.True(t, ok)
	assert.Equal(t, "gh", token)

	token, ok = cfg.Token(config.BackendGitea)
	require.True(t, ok)
	assert.Equal(t, "tea", token)

	_, ok = cfg.Token(config.BackendGitLab)
	assert.False(t, ok, "backend with no sources resolves nothing")
}
