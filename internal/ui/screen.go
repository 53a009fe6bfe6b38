package ui

import (
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// Rect is a screen region in cell coordinates.
type Rect struct {
	X, Y, W, H int
}

// Inner returns the region inside a one-cell border.
func (r Rect) Inner() Rect {
	if r.W < 2 || r.H < 2 {
		return Rect{X: r.X, Y: r.Y}
	}
	return Rect{X: r.X + 1, Y: r.Y + 1, W: r.W - 2, H: r.H - 2}
}

// SplitH cuts the region into a left part of the given width and the
// remainder.
func (r Rect) SplitH(leftWidth int) (Rect, Rect) {
	if leftWidth > r.W {
		leftWidth = r.W
	}
	left := Rect{X: r.X, Y: r.Y, W: leftWidth, H: r.H}
	right := Rect{X: r.X + leftWidth, Y: r.Y, W: r.W - leftWidth, H: r.H}
	return left, right
}

// SplitV cuts the region into a top part of the given height and the
// remainder.
func (r Rect) SplitV(topHeight int) (Rect, Rect) {
	if topHeight > r.H {
		topHeight = r.H
	}
	top := Rect{X: r.X, Y: r.Y, W: r.W, H: topHeight}
	bottom := Rect{X: r.X, Y: r.Y + topHeight, W: r.W, H: r.H - topHeight}
	return top, bottom
}

// Centered returns a w-by-h region centered inside r, clamped to fit.
func (r Rect) Centered(w, h int) Rect {
	if w > r.W {
		w = r.W
	}
	if h > r.H {
		h = r.H
	}
	return Rect{
		X: r.X + (r.W-w)/2,
		Y: r.Y + (r.H-h)/2,
		W: w,
		H: h,
	}
}

// ScreenRect returns the full screen as a Rect.
func ScreenRect(screen tcell.Screen) Rect {
	w, h := screen.Size()
	return Rect{W: w, H: h}
}

// drawText writes a single line clipped to the region width and
// returns the cells consumed. Wide runes are measured with runewidth.
func drawText(screen tcell.Screen, area Rect, x, y int, style tcell.Style, text string) int {
	if y >= area.H {
		return 0
	}
	col := x
	for _, r := range text {
		w := runewidth.RuneWidth(r)
		if col+w > area.W {
			break
		}
		screen.SetContent(area.X+col, area.Y+y, r, nil, style)
		col += w
	}
	return col - x
}

// fillRect paints the region with spaces, erasing whatever was below.
func fillRect(screen tcell.Screen, area Rect, style tcell.Style) {
	for y := 0; y < area.H; y++ {
		for x := 0; x < area.W; x++ {
			screen.SetContent(area.X+x, area.Y+y, ' ', nil, style)
		}
	}
}

// drawBox draws a border with an optional title and returns the
// inner region.
func drawBox(screen tcell.Screen, area Rect, style tcell.Style, title string) Rect {
	if area.W < 2 || area.H < 2 {
		return area.Inner()
	}

	for x := area.X + 1; x < area.X+area.W-1; x++ {
		screen.SetContent(x, area.Y, tcell.RuneHLine, nil, style)
		screen.SetContent(x, area.Y+area.H-1, tcell.RuneHLine, nil, style)
	}
	for y := area.Y + 1; y < area.Y+area.H-1; y++ {
		screen.SetContent(area.X, y, tcell.RuneVLine, nil, style)
		screen.SetContent(area.X+area.W-1, y, tcell.RuneVLine, nil, style)
	}
	screen.SetContent(area.X, area.Y, tcell.RuneULCorner, nil, style)
	screen.SetContent(area.X+area.W-1, area.Y, tcell.RuneURCorner, nil, style)
	screen.SetContent(area.X, area.Y+area.H-1, tcell.RuneLLCorner, nil, style)
	screen.SetContent(area.X+area.W-1, area.Y+area.H-1, tcell.RuneLRCorner, nil, style)

	if title != "" && area.W > 4 {
		label := " " + runewidth.Truncate(title, area.W-4, "…") + " "
		drawText(screen, Rect{X: area.X + 1, Y: area.Y, W: area.W - 2, H: 1}, 0, 0, style, label)
	}

	return area.Inner()
}

// wrapText breaks text into lines at most width cells wide, breaking
// on spaces where possible.
func wrapText(text string, width int) []string {
	if width <= 0 {
		return nil
	}

	var lines []string
	for _, paragraph := range splitLines(text) {
		if paragraph == "" {
			lines = append(lines, "")
			continue
		}
		line := ""
		lineW := 0
		for _, word := range splitWords(paragraph) {
			wordW := runewidth.StringWidth(word)
			switch {
			case lineW == 0:
			case lineW+1+wordW <= width:
				line += " "
				lineW++
			default:
				lines = append(lines, line)
				line = ""
				lineW = 0
			}
			for wordW > width {
				head := runewidth.Truncate(word, width, "")
				if head == "" {
					// rune wider than the pane, emit it alone so the
					// loop always makes progress
					_, size := utf8.DecodeRuneInString(word)
					head = word[:size]
				}
				lines = append(lines, head)
				word = word[len(head):]
				wordW = runewidth.StringWidth(word)
			}
			line += word
			lineW += wordW
		}
		if lineW > 0 {
			lines = append(lines, line)
		}
	}
	return lines
}

func splitLines(text string) []string {
	var out []string
	start := 0
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			line := text[start:i]
			if len(line) > 0 && line[len(line)-1] == '\r' {
				line = line[:len(line)-1]
			}
			out = append(out, line)
			start = i + 1
		}
	}
	out = append(out, text[start:])
	return out
}

func splitWords(line string) []string {
	var out []string
	start := -1
	for i := 0; i < len(line); i++ {
		if line[i] == ' ' || line[i] == '\t' {
			if start >= 0 {
				out = append(out, line[start:i])
				start = -1
			}
		} else if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		out = append(out, line[start:])
	}
	return out
}
