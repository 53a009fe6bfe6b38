package config

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"
)

// Action identifies an operation a keystroke can trigger.
type Action string

const (
	ActionQuit             Action = "quit"
	ActionNextView         Action = "next_view"
	ActionPreviousView     Action = "previous_view"
	ActionSelectIssues     Action = "select_issues"
	ActionSelectPulls      Action = "select_pull_requests"
	ActionSelectProjects   Action = "select_projects"
	ActionOpenRemotePicker Action = "open_remote_picker"
	ActionNextItem         Action = "next_item"
	ActionPreviousItem     Action = "previous_item"
	ActionInspectItem      Action = "inspect_item"
	ActionCopyURL          Action = "copy_url"
)

var knownActions = map[Action]struct{}{
	ActionQuit:             {},
	ActionNextView:         {},
	ActionPreviousView:     {},
	ActionSelectIssues:     {},
	ActionSelectPulls:      {},
	ActionSelectProjects:   {},
	ActionOpenRemotePicker: {},
	ActionNextItem:         {},
	ActionPreviousItem:     {},
	ActionInspectItem:      {},
	ActionCopyURL:          {},
}

// ParseAction validates a user-supplied action name.
func ParseAction(s string) (Action, bool) {
	a := Action(strings.TrimSpace(strings.ToLower(s)))
	_, ok := knownActions[a]
	return a, ok
}

// KeyStroke is a normalized key press usable as a map key. Special
// keys carry a tcell key code and a zero rune; printable keys carry
// tcell.KeyRune and the rune itself.
type KeyStroke struct {
	Mod  tcell.ModMask
	Key  tcell.Key
	Rune rune
}

// KeyFromEvent normalizes a tcell key event into a KeyStroke.
// Shift is dropped for printable runes because the rune already
// reflects it ('I' arrives as 'I', not shift+'i'). Ctrl-letter
// combinations arrive as control key codes and keep that form.
func KeyFromEvent(ev *tcell.EventKey) KeyStroke {
	mod := ev.Modifiers()
	if ev.Key() == tcell.KeyRune {
		mod &^= tcell.ModShift
		return KeyStroke{Mod: mod, Key: tcell.KeyRune, Rune: ev.Rune()}
	}
	return KeyStroke{Mod: mod, Key: ev.Key()}
}

// ctrlKey maps a lowercase letter to its terminal control key code,
// matching how tcell reports ctrl-letter presses.
func ctrlKey(r rune) (tcell.Key, bool) {
	if r < 'a' || r > 'z' {
		return 0, false
	}
	return tcell.KeyCtrlA + tcell.Key(r-'a'), true
}

var modifierRe = regexp.MustCompile(`^<([a-z]+)>`)

var namedKeys = map[string]tcell.Key{
	"tab":       tcell.KeyTab,
	"backtab":   tcell.KeyBacktab,
	"enter":     tcell.KeyEnter,
	"esc":       tcell.KeyEscape,
	"escape":    tcell.KeyEscape,
	"space":     tcell.KeyRune,
	"backspace": tcell.KeyBackspace2,
	"up":        tcell.KeyUp,
	"down":      tcell.KeyDown,
	"left":      tcell.KeyLeft,
	"right":     tcell.KeyRight,
	"home":      tcell.KeyHome,
	"end":       tcell.KeyEnd,
	"pgup":      tcell.KeyPgUp,
	"pgdown":    tcell.KeyPgDn,
}

// ParseKeyStroke parses a bind expression such as "j", "<ctrl>n",
// "<shft><alt>x" or "<ctrl>tab". Modifiers come first, each wrapped
// in angle brackets; the remainder is a single rune or a named key.
func ParseKeyStroke(s string) (KeyStroke, error) {
	rest := strings.TrimSpace(s)
	if rest == "" {
		return KeyStroke{}, fmt.Errorf("empty key bind")
	}

	var mod tcell.ModMask
	for {
		m := modifierRe.FindStringSubmatch(rest)
		if m == nil {
			break
		}
		switch m[1] {
		case "ctrl":
			mod |= tcell.ModCtrl
		case "shft", "shift":
			mod |= tcell.ModShift
		case "alt":
			mod |= tcell.ModAlt
		case "meta":
			mod |= tcell.ModMeta
		case "super":
			mod |= tcell.ModMeta
		default:
			return KeyStroke{}, fmt.Errorf("unknown modifier %q in bind %q", m[1], s)
		}
		rest = rest[len(m[0]):]
	}

	if key, ok := namedKeys[strings.ToLower(rest)]; ok {
		if strings.ToLower(rest) == "space" {
			return KeyStroke{Mod: mod, Key: tcell.KeyRune, Rune: ' '}, nil
		}
		// shift+tab is its own key code in terminals
		if key == tcell.KeyTab && mod&tcell.ModShift != 0 {
			return KeyStroke{Mod: mod &^ tcell.ModShift, Key: tcell.KeyBacktab}, nil
		}
		return KeyStroke{Mod: mod, Key: key}, nil
	}

	if utf8.RuneCountInString(rest) != 1 {
		return KeyStroke{}, fmt.Errorf("unrecognized key %q in bind %q", rest, s)
	}
	r, _ := utf8.DecodeRuneInString(rest)
	if mod&tcell.ModCtrl != 0 {
		if key, ok := ctrlKey(r); ok {
			return KeyStroke{Mod: mod, Key: key}, nil
		}
	}
	// printable runes carry shift in the rune itself
	mod &^= tcell.ModShift
	return KeyStroke{Mod: mod, Key: tcell.KeyRune, Rune: r}, nil
}

// DefaultKeys returns the built-in keybinding table.
func DefaultKeys() map[KeyStroke]Action {
	return map[KeyStroke]Action{
		{Key: tcell.KeyRune, Rune: 'q'}:           ActionQuit,
		{Key: tcell.KeyTab}:                       ActionNextView,
		{Key: tcell.KeyBacktab}:                   ActionPreviousView,
		{Key: tcell.KeyRune, Rune: 'I'}:           ActionSelectIssues,
		{Key: tcell.KeyRune, Rune: 'P'}:           ActionSelectPulls,
		{Key: tcell.KeyRune, Rune: 'R'}:           ActionSelectProjects,
		{Mod: tcell.ModCtrl, Key: tcell.KeyCtrlN}: ActionOpenRemotePicker,
		{Key: tcell.KeyRune, Rune: 'j'}:           ActionNextItem,
		{Key: tcell.KeyRune, Rune: 'k'}:           ActionPreviousItem,
		{Key: tcell.KeyDown}:                      ActionNextItem,
		{Key: tcell.KeyUp}:                        ActionPreviousItem,
		{Key: tcell.KeyEnter}:                     ActionInspectItem,
		{Key: tcell.KeyRune, Rune: 'y'}:           ActionCopyURL,
	}
}
