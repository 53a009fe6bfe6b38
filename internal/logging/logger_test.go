package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWritesJSONToNonTerminal(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: "info", Format: "auto", Output: &buf})

	logger.Info("hello", "key", "value")

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "hello", record["msg"])
	assert.Equal(t, "value", record["key"])
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: "warn", Format: "text", Output: &buf})

	logger.Debug("dropped")
	logger.Info("dropped too")
	logger.Warn("kept")

	out := buf.String()
	assert.NotContains(t, out, "dropped")
	assert.Contains(t, out, "kept")
}

func TestSanitizerRedactsTokens(t *testing.T) {
	s := NewSanitizer()

	cases := map[string]string{
		"ghp_" + repeat36("a"):             "[REDACTED]",
		"fetch failed: Bearer " + repeat36("b") + "xyz": "fetch failed: [REDACTED]",
		"password=hunter2secret":           "[REDACTED]",
		"plain message":                    "plain message",
	}

	for input, want := range cases {
		assert.Equal(t, want, s.Sanitize(input), "input %q", input)
	}
}

func TestSanitizingHandlerRedactsAttrs(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: "debug", Format: "text", Output: &buf})

	logger.Info("resolved credential", "token", "ghp_"+repeat36("c"))

	assert.NotContains(t, buf.String(), "ghp_")
	assert.Contains(t, buf.String(), "[REDACTED]")
}

func TestNopLoggerDiscards(t *testing.T) {
	logger := NewNop()
	// Must not panic and must accept context helpers.
	logger.WithPanel("issues_view").WithBackend("github").Info("ignored")
}

func repeat36(s string) string {
	out := ""
	for range 36 {
		out += s
	}
	return out
}
