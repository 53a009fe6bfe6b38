package ui

import (
	"errors"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hugo-lorenzo-mato/lazyissues/internal/config"
	"github.com/hugo-lorenzo-mato/lazyissues/internal/forge"
)

func keyRune(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func issuesView(t *testing.T, inspect func(forge.ViewKind, int)) *ListView {
	t.Helper()
	v := NewListView(forge.ViewIssues, config.Default(), inspect)
	require.True(t, v.SetFocus(true))
	return v
}

func threeItems() forge.ItemsResult {
	return forge.ItemsResult{View: forge.ViewIssues, Items: []forge.Item{
		{Number: 1, Title: "first", URL: "https://example.com/1"},
		{Number: 2, Title: "second", URL: "https://example.com/2"},
		{Number: 3, Title: "third", URL: "https://example.com/3"},
	}}
}

func TestListViewSelectionWrapsAround(t *testing.T) {
	v := issuesView(t, nil)
	require.True(t, v.Update(threeItems()))

	require.True(t, v.HandleInput(keyRune('k')))
	entry, ok := v.Selected()
	require.True(t, ok)
	assert.Equal(t, 3, entry.Number, "moving up from the first entry wraps to the last")

	require.True(t, v.HandleInput(keyRune('j')))
	entry, _ = v.Selected()
	assert.Equal(t, 1, entry.Number)
}

func TestListViewClampsSelectionOnShrink(t *testing.T) {
	v := issuesView(t, nil)
	require.True(t, v.Update(threeItems()))
	v.HandleInput(keyRune('j'))
	v.HandleInput(keyRune('j'))

	require.True(t, v.Update(forge.ItemsResult{View: forge.ViewIssues, Items: []forge.Item{
		{Number: 9, Title: "only one"},
	}}))

	entry, ok := v.Selected()
	require.True(t, ok)
	assert.Equal(t, 9, entry.Number)
}

func TestListViewIgnoresOtherViews(t *testing.T) {
	v := issuesView(t, nil)

	assert.False(t, v.Update(forge.ItemsResult{View: forge.ViewPullRequests}))
	assert.False(t, v.Update(forge.ProjectsResult{}))
}

func TestListViewInspectDispatches(t *testing.T) {
	var gotView forge.ViewKind
	gotNumber := -1
	v := issuesView(t, func(view forge.ViewKind, number int) {
		gotView = view
		gotNumber = number
	})
	require.True(t, v.Update(threeItems()))
	v.HandleInput(keyRune('j'))

	require.True(t, v.HandleInput(tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone)))

	assert.Equal(t, forge.ViewIssues, gotView)
	assert.Equal(t, 2, gotNumber)
}

func TestListViewProjectsDoNotInspect(t *testing.T) {
	called := false
	v := NewListView(forge.ViewProjects, config.Default(), func(forge.ViewKind, int) { called = true })
	v.SetFocus(true)
	require.True(t, v.Update(forge.ProjectsResult{Projects: []forge.Project{{Number: 1, Title: "board"}}}))

	v.HandleInput(tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone))

	assert.False(t, called, "projects have no detail view")
}

func TestListViewCopyURL(t *testing.T) {
	v := issuesView(t, nil)
	var copied string
	v.copyURL = func(url string) error {
		copied = url
		return nil
	}
	require.True(t, v.Update(threeItems()))

	require.True(t, v.HandleInput(keyRune('y')))
	assert.Equal(t, "https://example.com/1", copied)
}

func TestListViewUnfocusedIgnoresInput(t *testing.T) {
	v := issuesView(t, nil)
	require.True(t, v.Update(threeItems()))
	v.SetFocus(false)

	assert.False(t, v.HandleInput(keyRune('j')))
	entry, _ := v.Selected()
	assert.Equal(t, 1, entry.Number)
}

func TestListViewErrorResult(t *testing.T) {
	v := issuesView(t, nil)

	require.True(t, v.Update(forge.ErrorResult{View: forge.ViewIssues, Err: errors.New("rate limited")}))
	assert.Equal(t, "Issues: error", v.statusLine())

	require.True(t, v.Update(threeItems()))
	assert.Equal(t, "Issues: 3 (3 open)", v.statusLine(), "a later success clears the error")
}

func TestListViewRenderSmoke(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	defer screen.Fini()
	screen.SetSize(80, 24)

	v := issuesView(t, nil)
	require.True(t, v.Update(forge.ItemsResult{View: forge.ViewIssues, Items: []forge.Item{
		{Number: 42, Title: "render me", Labels: []string{"bug"}, Closed: true},
	}}))

	v.Render(screen, ScreenRect(screen))
	screen.Show()
}
