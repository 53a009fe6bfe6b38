// Package config loads and validates the lazyissues configuration.
package config

import (
	"time"
)

// Backend names understood by the credential resolver and the forge
// clients. They double as the env var prefix (GITHUB_TOKEN etc.) and
// the keyring account name.
const (
	BackendGitHub = "github"
	BackendGitLab = "gitlab"
	BackendGitea  = "gitea"
)

// Backends lists every supported forge backend in a stable order.
var Backends = []string{BackendGitHub, BackendGitLab, BackendGitea}

// Config is the fully resolved runtime configuration.
type Config struct {
	// TokenPaths maps a backend name to an optional token file path,
	// consulted as the last step of credential resolution.
	TokenPaths map[string]string

	// Tokens holds the credentials resolved at startup, keyed by
	// backend name. A missing entry means resolution failed for that
	// backend; requests against it become no-ops.
	Tokens map[string]string

	// CredentialAttempts is how many times the helper subprocess is
	// polled for completion before being killed.
	CredentialAttempts int

	// CredentialTimeout is the wait between helper polls.
	CredentialTimeout time.Duration

	// HelperCommand is the credential helper invocation, argv style.
	HelperCommand []string

	// TimeFormat renders item timestamps in list and detail views.
	TimeFormat string

	// TagColors maps a label name to a display color name.
	TagColors map[string]string

	// Keys maps a keystroke to the action it triggers.
	Keys map[KeyStroke]Action
}

// Default returns a configuration with every field at its built-in
// default. Loaders start from this and overlay file and env values.
func Default() *Config {
	return &Config{
		TokenPaths:         map[string]string{},
		Tokens:             map[string]string{},
		CredentialAttempts: 4,
		CredentialTimeout:  50 * time.Millisecond,
		HelperCommand:      []string{"git", "credential", "fill"},
		TimeFormat:         "15:04 02.01.2006",
		TagColors:          defaultTagColors(),
		Keys:               DefaultKeys(),
	}
}

func defaultTagColors() map[string]string {
	return map[string]string{
		"bug":              "red",
		"documentation":    "blue",
		"duplicate":        "gray",
		"enhancement":      "lightcyan",
		"good first issue": "lightmagenta",
		"help wanted":      "green",
		"invalid":          "yellow",
		"question":         "magenta",
		"wontfix":          "white",
	}
}

// TagColor returns the display color name for a label, falling back
// to white for labels without a configured color.
func (c *Config) TagColor(tag string) string {
	if col, ok := c.TagColors[tag]; ok {
		return col
	}
	return "white"
}

// ActionFor looks up the action bound to a keystroke.
func (c *Config) ActionFor(ks KeyStroke) (Action, bool) {
	a, ok := c.Keys[ks]
	return a, ok
}

// Token returns the resolved credential for a backend, if any.
func (c *Config) Token(backend string) (string, bool) {
	t, ok := c.Tokens[backend]
	return t, ok && t != ""
}
