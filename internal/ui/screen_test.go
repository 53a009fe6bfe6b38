package ui

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrapTextBreaksOnSpaces(t *testing.T) {
	lines := wrapText("the quick brown fox", 9)
	assert.Equal(t, []string{"the quick", "brown fox"}, lines)
}

func TestWrapTextKeepsParagraphs(t *testing.T) {
	lines := wrapText("one\n\ntwo", 10)
	assert.Equal(t, []string{"one", "", "two"}, lines)
}

func TestWrapTextSplitsLongWords(t *testing.T) {
	lines := wrapText("abcdefgh", 3)
	assert.Equal(t, []string{"abc", "def", "gh"}, lines)
}

func TestWrapTextWideRunes(t *testing.T) {
	// double-width runes must terminate even when the pane is
	// narrower than a single rune
	done := make(chan []string, 1)
	go func() { done <- wrapText("你好", 1) }()

	var lines []string
	select {
	case lines = <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("wrapText did not return for wide runes at width 1")
	}
	assert.Equal(t, []string{"你", "好"}, lines)

	lines = wrapText("你好世界", 2)
	assert.Equal(t, []string{"你", "好", "世", "界"}, lines)

	lines = wrapText("ab 你好", 4)
	require.NotEmpty(t, lines)
	assert.Equal(t, "ab", lines[0][:2])
}

func TestWrapTextZeroWidth(t *testing.T) {
	assert.Nil(t, wrapText("anything", 0))
}
