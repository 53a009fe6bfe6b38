package ui

import (
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/gdamore/tcell/v2"

	"github.com/hugo-lorenzo-mato/lazyissues/internal/config"
	"github.com/hugo-lorenzo-mato/lazyissues/internal/forge"
)

// DetailView shows the body and comments of the last inspected item.
type DetailView struct {
	cfg     *config.Config
	copyURL func(url string) error

	focused bool
	detail  *forge.Detail
	scroll  int
}

// NewDetailView creates an empty detail view.
func NewDetailView(cfg *config.Config) *DetailView {
	return &DetailView{cfg: cfg, copyURL: clipboard.WriteAll}
}

// Name returns the routing key detail results are matched on.
func (v *DetailView) Name() string { return "detail" }

func (v *DetailView) HandleInput(ev *tcell.EventKey) bool {
	if !v.focused || v.detail == nil {
		return false
	}
	action, ok := v.cfg.ActionFor(config.KeyFromEvent(ev))
	if !ok {
		return false
	}

	switch action {
	case config.ActionNextItem:
		v.scroll++
	case config.ActionPreviousItem:
		if v.scroll > 0 {
			v.scroll--
		}
	case config.ActionCopyURL:
		if v.copyURL != nil {
			_ = v.copyURL(v.detail.URL)
		}
	default:
		return false
	}
	return true
}

func (v *DetailView) Tick() {}

func (v *DetailView) Update(res forge.Result) bool {
	r, ok := res.(forge.DetailResult)
	if !ok {
		return false
	}
	detail := r.Detail
	v.detail = &detail
	v.scroll = 0
	return true
}

func (v *DetailView) WantsToQuit() bool { return false }

func (v *DetailView) SetFocus(focused bool) bool {
	v.focused = focused
	return true
}

func (v *DetailView) Render(screen tcell.Screen, area Rect) {
	style := styleDefault
	if v.focused {
		style = styleFocused
	}
	fillRect(screen, area, styleDefault)

	title := "Detail"
	if v.detail != nil {
		title = fmt.Sprintf("#%d %s", v.detail.Number, v.detail.Title)
	}
	inner := drawBox(screen, area, style, title)

	if v.detail == nil {
		drawText(screen, inner, 0, 0, styleDim, "press enter on an item to inspect it")
		return
	}

	lines := v.lines(inner.W)
	if v.scroll > len(lines)-1 {
		v.scroll = max(len(lines)-1, 0)
	}
	y := 0
	for i := v.scroll; i < len(lines) && y < inner.H; i++ {
		drawText(screen, inner, 0, y, lines[i].style, lines[i].text)
		y++
	}
}

type styledLine struct {
	text  string
	style tcell.Style
}

// lines flattens the detail into wrapped, styled text.
func (v *DetailView) lines(width int) []styledLine {
	d := v.detail

	state := "open"
	stateStyle := styleOpen
	if d.Closed {
		state = "closed"
		stateStyle = styleClosed
	}

	out := []styledLine{
		{fmt.Sprintf("%s  @%s  %s", state, d.Author, d.CreatedAt.Format(v.cfg.TimeFormat)), stateStyle},
		{"", styleDefault},
	}
	for _, line := range wrapText(d.Body, width) {
		out = append(out, styledLine{line, styleDefault})
	}

	for _, c := range d.Comments {
		out = append(out,
			styledLine{"", styleDefault},
			styledLine{fmt.Sprintf("── @%s  %s", c.Author, c.CreatedAt.Format(v.cfg.TimeFormat)), styleDim},
		)
		for _, line := range wrapText(c.Body, width) {
			out = append(out, styledLine{line, styleDefault})
		}
	}
	return out
}
