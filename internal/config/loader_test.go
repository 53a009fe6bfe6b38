package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hugo-lorenzo-mato/lazyissues/internal/logging"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadDefaultsWithoutFile(t *testing.T) {
	loader := NewLoader(filepath.Join(t.TempDir(), "missing.yaml"), logging.NewNop())

	cfg, err := loader.Load()
	require.NoError(t, err)

	assert.Equal(t, 4, cfg.CredentialAttempts)
	assert.Equal(t, 50*time.Millisecond, cfg.CredentialTimeout)
	assert.Equal(t, []string{"git", "credential", "fill"}, cfg.HelperCommand)
	assert.Equal(t, "15:04 02.01.2006", cfg.TimeFormat)
	assert.Equal(t, "red", cfg.TagColor("bug"))
	assert.Equal(t, "white", cfg.TagColor("no-such-label"))

	a, ok := cfg.ActionFor(KeyStroke{Key: tcell.KeyRune, Rune: 'q'})
	require.True(t, ok)
	assert.Equal(t, ActionQuit, a)
}

func TestLoadOverridesFromFile(t *testing.T) {
	path := writeConfig(t, `
credentials:
  attempts: 7
  timeout_ms: 120
  token_path:
    github: /tmp/gh-token
ui:
  time_format: "2006-01-02 15:04"
  tag_colors:
    bug: green
keys:
  - bind: "x"
    action: "quit"
`)
	loader := NewLoader(path, logging.NewNop())

	cfg, err := loader.Load()
	require.NoError(t, err)

	assert.Equal(t, 7, cfg.CredentialAttempts)
	assert.Equal(t, 120*time.Millisecond, cfg.CredentialTimeout)
	assert.Equal(t, "/tmp/gh-token", cfg.TokenPaths[BackendGitHub])
	assert.Equal(t, "2006-01-02 15:04", cfg.TimeFormat)
	assert.Equal(t, "green", cfg.TagColor("bug"))
	assert.Equal(t, "blue", cfg.TagColor("documentation"), "untouched defaults survive")

	a, ok := cfg.ActionFor(KeyStroke{Key: tcell.KeyRune, Rune: 'x'})
	require.True(t, ok)
	assert.Equal(t, ActionQuit, a)

	a, ok = cfg.ActionFor(KeyStroke{Key: tcell.KeyRune, Rune: 'q'})
	require.True(t, ok, "default binds survive user additions")
	assert.Equal(t, ActionQuit, a)
}

func TestLoadSkipsMalformedBinds(t *testing.T) {
	path := writeConfig(t, `
keys:
  - bind: "<hyper>z"
    action: "quit"
  - bind: "z"
    action: "no_such_action"
  - bind: "w"
    action: "quit"
`)
	loader := NewLoader(path, logging.NewNop())

	cfg, err := loader.Load()
	require.NoError(t, err)

	_, ok := cfg.ActionFor(KeyStroke{Key: tcell.KeyRune, Rune: 'z'})
	assert.False(t, ok, "bind with unknown action must be skipped")

	a, ok := cfg.ActionFor(KeyStroke{Key: tcell.KeyRune, Rune: 'w'})
	require.True(t, ok, "valid binds after malformed ones still load")
	assert.Equal(t, ActionQuit, a)
}

func TestLoadMalformedYAMLFails(t *testing.T) {
	path := writeConfig(t, "credentials: [broken\n")
	loader := NewLoader(path, logging.NewNop())

	_, err := loader.Load()
	assert.Error(t, err)
}

func TestLoadSanitizesAttemptFloor(t *testing.T) {
	path := writeConfig(t, "credentials:\n  attempts: 0\n")
	loader := NewLoader(path, logging.NewNop())

	cfg, err := loader.Load()
	require.NoError(t, err)
	assert.Equal(t, 1, cfg.CredentialAttempts)
}
