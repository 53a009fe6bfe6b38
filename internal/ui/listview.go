package ui

import (
	"fmt"
	"time"

	"github.com/atotto/clipboard"
	"github.com/gdamore/tcell/v2"

	"github.com/hugo-lorenzo-mato/lazyissues/internal/config"
	"github.com/hugo-lorenzo-mato/lazyissues/internal/forge"
)

// cardHeight is the vertical footprint of one list entry, border
// included.
const cardHeight = 5

// ListEntry is one row of a list view, generic over issues, pull
// requests and projects.
type ListEntry struct {
	Number    int
	Title     string
	URL       string
	Author    string
	Closed    bool
	CreatedAt time.Time
	Labels    []string
}

// ListView renders one of the three item lists as a stack of cards.
type ListView struct {
	view    forge.ViewKind
	cfg     *config.Config
	inspect func(view forge.ViewKind, number int)
	copyURL func(url string) error

	focused  bool
	loaded   bool
	items    []ListEntry
	selected int
	offset   int
	err      error
}

// NewListView creates a list view for the given kind. inspect is
// called when the user opens an item.
func NewListView(view forge.ViewKind, cfg *config.Config, inspect func(forge.ViewKind, int)) *ListView {
	return &ListView{
		view:    view,
		cfg:     cfg,
		inspect: inspect,
		copyURL: clipboard.WriteAll,
	}
}

// Title returns the view's display name.
func (v *ListView) Title() string {
	switch v.view {
	case forge.ViewIssues:
		return "Issues"
	case forge.ViewPullRequests:
		return "Pull Requests"
	case forge.ViewProjects:
		return "Projects"
	default:
		return "?"
	}
}

// Name returns the routing key results are matched on.
func (v *ListView) Name() string { return v.view.String() }

// Selected returns the entry under the cursor.
func (v *ListView) Selected() (ListEntry, bool) {
	if len(v.items) == 0 {
		return ListEntry{}, false
	}
	return v.items[v.selected], true
}

func (v *ListView) HandleInput(ev *tcell.EventKey) bool {
	if !v.focused {
		return false
	}
	action, ok := v.cfg.ActionFor(config.KeyFromEvent(ev))
	if !ok {
		return false
	}

	switch action {
	case config.ActionNextItem:
		v.move(1)
	case config.ActionPreviousItem:
		v.move(-1)
	case config.ActionInspectItem:
		if entry, ok := v.Selected(); ok && v.inspect != nil && v.view != forge.ViewProjects {
			v.inspect(v.view, entry.Number)
		}
	case config.ActionCopyURL:
		if entry, ok := v.Selected(); ok && v.copyURL != nil {
			_ = v.copyURL(entry.URL)
		}
	default:
		return false
	}
	return true
}

// move shifts the selection with wraparound.
func (v *ListView) move(delta int) {
	if len(v.items) == 0 {
		return
	}
	v.selected = (v.selected + delta + len(v.items)) % len(v.items)
}

func (v *ListView) Tick() {}

func (v *ListView) Update(res forge.Result) bool {
	switch r := res.(type) {
	case forge.ItemsResult:
		if r.View != v.view {
			return false
		}
		v.items = itemsToEntries(r.Items)
	case forge.ProjectsResult:
		if v.view != forge.ViewProjects {
			return false
		}
		v.items = projectsToEntries(r.Projects)
	case forge.ErrorResult:
		if r.View != v.view {
			return false
		}
		v.err = r.Err
		v.loaded = true
		return true
	default:
		return false
	}

	v.err = nil
	v.loaded = true
	if v.selected >= len(v.items) {
		v.selected = len(v.items) - 1
	}
	if v.selected < 0 {
		v.selected = 0
	}
	return true
}

func itemsToEntries(items []forge.Item) []ListEntry {
	entries := make([]ListEntry, len(items))
	for i, it := range items {
		entries[i] = ListEntry{
			Number:    it.Number,
			Title:     it.Title,
			URL:       it.URL,
			Author:    it.Author,
			Closed:    it.Closed,
			CreatedAt: it.CreatedAt,
			Labels:    it.Labels,
		}
	}
	return entries
}

func projectsToEntries(projects []forge.Project) []ListEntry {
	entries := make([]ListEntry, len(projects))
	for i, p := range projects {
		entries[i] = ListEntry{
			Number:    p.Number,
			Title:     p.Title,
			URL:       p.URL,
			Closed:    p.Closed,
			CreatedAt: p.CreatedAt,
		}
	}
	return entries
}

func (v *ListView) WantsToQuit() bool { return false }

func (v *ListView) SetFocus(focused bool) bool {
	v.focused = focused
	return true
}

func (v *ListView) Render(screen tcell.Screen, area Rect) {
	style := styleDefault
	if v.focused {
		style = styleFocused
	}
	fillRect(screen, area, styleDefault)
	inner := drawBox(screen, area, style, v.Title())

	switch {
	case v.err != nil:
		for i, line := range wrapText("error: "+v.err.Error(), inner.W) {
			drawText(screen, inner, 0, i, styleError, line)
		}
		return
	case !v.loaded:
		drawText(screen, inner, 0, 0, styleDim, "loading…")
		return
	case len(v.items) == 0:
		drawText(screen, inner, 0, 0, styleDim, "nothing here")
		return
	}

	v.scrollIntoView(inner.H)
	y := 0
	for i := v.offset; i < len(v.items) && y+cardHeight <= inner.H; i++ {
		v.renderCard(screen, Rect{X: inner.X, Y: inner.Y + y, W: inner.W, H: cardHeight}, v.items[i], i == v.selected)
		y += cardHeight
	}
}

// scrollIntoView adjusts the first visible card so the selection
// stays on screen.
func (v *ListView) scrollIntoView(height int) {
	visible := height / cardHeight
	if visible < 1 {
		visible = 1
	}
	if v.selected < v.offset {
		v.offset = v.selected
	}
	if v.selected >= v.offset+visible {
		v.offset = v.selected - visible + 1
	}
}

func (v *ListView) renderCard(screen tcell.Screen, area Rect, entry ListEntry, selected bool) {
	borderStyle := styleDim
	if selected && v.focused {
		borderStyle = styleFocused
	} else if selected {
		borderStyle = styleDefault
	}
	inner := drawBox(screen, area, borderStyle, "")

	state := styleOpen
	marker := "open"
	if entry.Closed {
		state = styleClosed
		marker = "closed"
	}
	x := drawText(screen, inner, 0, 0, styleTitle, fmt.Sprintf("#%d ", entry.Number))
	drawText(screen, inner, x, 0, styleDefault, entry.Title)

	meta := entry.CreatedAt.Format(v.cfg.TimeFormat)
	if entry.Author != "" {
		meta = "@" + entry.Author + "  " + meta
	}
	x = drawText(screen, inner, 0, 1, state, marker)
	drawText(screen, inner, x+2, 1, styleDim, meta)

	x = 0
	for _, label := range entry.Labels {
		chip := "[" + label + "]"
		if x+len(chip)+1 > inner.W {
			break
		}
		x += drawText(screen, inner, x, 2, tagStyle(v.cfg.TagColor(label)), chip)
		x++
	}
}

// statusLine summarizes the view for the bottom bar.
func (v *ListView) statusLine() string {
	if v.err != nil {
		return v.Title() + ": error"
	}
	if !v.loaded {
		return v.Title() + ": loading"
	}
	open := 0
	for _, it := range v.items {
		if !it.Closed {
			open++
		}
	}
	return fmt.Sprintf("%s: %d (%d open)", v.Title(), len(v.items), open)
}
