// Package ui implements the terminal interface: the panel stack, the
// input scheduler, the views and the orchestrating tab menu.
package ui

import (
	"github.com/gdamore/tcell/v2"

	"github.com/hugo-lorenzo-mato/lazyissues/internal/forge"
)

// Panel is one layer of the interface. Panels are stacked by
// priority; input walks the stack top-down, painting walks it
// bottom-up.
type Panel interface {
	// HandleInput reacts to a key press. Returning true consumes the
	// event and stops propagation to panels below.
	HandleInput(ev *tcell.EventKey) bool

	// Render paints the panel into its region of the screen.
	Render(screen tcell.Screen, area Rect)

	// Tick advances time-based state such as cursor blinking.
	Tick()

	// Update applies a routed result. Returning true means the panel
	// accepted it.
	Update(res forge.Result) bool

	// WantsToQuit reports that the panel asks to be removed from the
	// stack at the end of the current pass.
	WantsToQuit() bool

	// SetFocus grants or revokes focus. Returning false refuses the
	// change; the caller must leave the stack untouched.
	SetFocus(focused bool) bool
}

// Event is a scheduler message: KeyEvent, TickEvent or ResizeEvent.
type Event any

// KeyEvent wraps a key press for the main loop.
type KeyEvent struct {
	Key *tcell.EventKey
}

// TickEvent fires at the tick rate when no input arrived in time.
type TickEvent struct{}

// ResizeEvent reports a terminal size change.
type ResizeEvent struct{}
