package ui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/sahilm/fuzzy"

	"github.com/hugo-lorenzo-mato/lazyissues/internal/forge"
)

// RemotePicker is a modal that lets the user fuzzy-pick one of the
// repository's remotes. It swallows all input while stacked. Picking
// a remote delivers a RemoteChangedResult and removes the panel.
type RemotePicker struct {
	remotes  []string
	deliver  func(forge.Result)
	input    []rune
	filtered []string
	selected int
	focused  bool
	quit     bool
	blink    bool
}

// NewRemotePicker creates a picker over the given remote URLs.
// deliver receives the selection result.
func NewRemotePicker(remotes []string, deliver func(forge.Result)) *RemotePicker {
	p := &RemotePicker{remotes: remotes, deliver: deliver}
	p.filter()
	return p
}

// Name returns the routing key of the picker.
func (p *RemotePicker) Name() string { return "remote_picker" }

// HandleInput always consumes the event: the picker is modal.
func (p *RemotePicker) HandleInput(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape:
		p.quit = true
	case tcell.KeyEnter:
		if len(p.filtered) > 0 {
			if p.deliver != nil {
				p.deliver(forge.RemoteChangedResult{URL: p.filtered[p.selected]})
			}
			p.quit = true
		}
	case tcell.KeyDown, tcell.KeyTab:
		p.move(1)
	case tcell.KeyUp, tcell.KeyBacktab:
		p.move(-1)
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if len(p.input) > 0 {
			p.input = p.input[:len(p.input)-1]
			p.filter()
		}
	case tcell.KeyRune:
		p.input = append(p.input, ev.Rune())
		p.filter()
	}
	return true
}

func (p *RemotePicker) move(delta int) {
	if len(p.filtered) == 0 {
		return
	}
	p.selected = (p.selected + delta + len(p.filtered)) % len(p.filtered)
}

// filter rebuilds the match list from the current input.
func (p *RemotePicker) filter() {
	if len(p.input) == 0 {
		p.filtered = append([]string(nil), p.remotes...)
	} else {
		matches := fuzzy.Find(string(p.input), p.remotes)
		p.filtered = make([]string, len(matches))
		for i, m := range matches {
			p.filtered[i] = m.Str
		}
	}
	if p.selected >= len(p.filtered) {
		p.selected = 0
	}
}

// Tick toggles the cursor blink.
func (p *RemotePicker) Tick() { p.blink = !p.blink }

func (p *RemotePicker) Update(forge.Result) bool { return false }

func (p *RemotePicker) WantsToQuit() bool { return p.quit }

func (p *RemotePicker) SetFocus(focused bool) bool {
	p.focused = focused
	return true
}

func (p *RemotePicker) Render(screen tcell.Screen, area Rect) {
	box := area.Centered(min(60, area.W-2), min(len(p.remotes)+4, area.H-2))
	fillRect(screen, box, styleDefault)
	inner := drawBox(screen, box, styleFocused, "Pick a remote")

	cursor := " "
	if p.blink {
		cursor = "█"
	}
	drawText(screen, inner, 0, 0, styleDefault, "> "+string(p.input)+cursor)

	for i, remote := range p.filtered {
		if i+1 >= inner.H {
			break
		}
		style := styleDefault
		if i == p.selected {
			style = styleFocused
		}
		drawText(screen, inner, 1, i+1, style, remote)
	}
	if len(p.filtered) == 0 {
		drawText(screen, inner, 1, 1, styleDim, "no matches")
	}
}
