package ui

import (
	"sort"
)

// Entry pairs a panel with its name and stacking priority.
type Entry struct {
	Priority int
	Name     string
	Panel    Panel
}

// PanelStack keeps panels ordered by priority. Priorities are unique;
// higher means closer to the user. Names are unique routing keys.
type PanelStack struct {
	entries []Entry
	byName  map[string]int
}

// NewPanelStack returns an empty stack.
func NewPanelStack() *PanelStack {
	return &PanelStack{byName: map[string]int{}}
}

// Len returns the number of stacked panels.
func (s *PanelStack) Len() int { return len(s.entries) }

// Add inserts a panel. A panel already stacked under the same name is
// replaced, as is a panel holding the same priority.
func (s *PanelStack) Add(priority int, name string, panel Panel) {
	if idx, ok := s.byName[name]; ok {
		s.removeAt(idx)
	}
	for i, e := range s.entries {
		if e.Priority == priority {
			s.removeAt(i)
			break
		}
	}

	idx := sort.Search(len(s.entries), func(i int) bool {
		return s.entries[i].Priority >= priority
	})
	s.entries = append(s.entries, Entry{})
	copy(s.entries[idx+1:], s.entries[idx:])
	s.entries[idx] = Entry{Priority: priority, Name: name, Panel: panel}
	s.reindex()
}

func (s *PanelStack) removeAt(idx int) Entry {
	e := s.entries[idx]
	s.entries = append(s.entries[:idx], s.entries[idx+1:]...)
	s.reindex()
	return e
}

func (s *PanelStack) reindex() {
	clear(s.byName)
	for i, e := range s.entries {
		s.byName[e.Name] = i
	}
}

// Remove drops the panel with the given name.
func (s *PanelStack) Remove(name string) (Panel, bool) {
	idx, ok := s.byName[name]
	if !ok {
		return nil, false
	}
	return s.removeAt(idx).Panel, true
}

// RemoveByPriority drops the panel holding the given priority.
func (s *PanelStack) RemoveByPriority(priority int) (Entry, bool) {
	for i, e := range s.entries {
		if e.Priority == priority {
			return s.removeAt(i), true
		}
	}
	return Entry{}, false
}

// RemoveHighest drops the top panel.
func (s *PanelStack) RemoveHighest() (Entry, bool) {
	if len(s.entries) == 0 {
		return Entry{}, false
	}
	return s.removeAt(len(s.entries) - 1), true
}

// RemoveLowest drops the bottom panel.
func (s *PanelStack) RemoveLowest() (Entry, bool) {
	if len(s.entries) == 0 {
		return Entry{}, false
	}
	return s.removeAt(0), true
}

// SetPriority moves the named panel to the given priority. A panel
// already holding that priority is replaced, same as Add.
func (s *PanelStack) SetPriority(name string, priority int) bool {
	idx, ok := s.byName[name]
	if !ok {
		return false
	}
	e := s.removeAt(idx)
	s.Add(priority, e.Name, e.Panel)
	return true
}

// ByName returns the panel stacked under name.
func (s *PanelStack) ByName(name string) (Panel, bool) {
	idx, ok := s.byName[name]
	if !ok {
		return nil, false
	}
	return s.entries[idx].Panel, true
}

// Top returns the highest-priority entry.
func (s *PanelStack) Top() (Entry, bool) {
	if len(s.entries) == 0 {
		return Entry{}, false
	}
	return s.entries[len(s.entries)-1], true
}

// MaxPriority returns the highest priority in use, or -1 when empty.
func (s *PanelStack) MaxPriority() int {
	if len(s.entries) == 0 {
		return -1
	}
	return s.entries[len(s.entries)-1].Priority
}

// Select focuses the named panel and raises it to the top of the
// stack. If the panel refuses focus the stack is left untouched. The
// previous top panel is defocused first. Priorities are normalized
// afterwards.
func (s *PanelStack) Select(name string) bool {
	idx, ok := s.byName[name]
	if !ok {
		return false
	}

	target := s.entries[idx]
	if idx == len(s.entries)-1 {
		// already on top, still make sure it has focus
		return target.Panel.SetFocus(true)
	}

	if !target.Panel.SetFocus(true) {
		return false
	}

	if top, ok := s.Top(); ok {
		top.Panel.SetFocus(false)
	}

	s.removeAt(idx)
	target.Priority = s.MaxPriority() + 1
	s.entries = append(s.entries, target)
	s.reindex()
	s.Normalize()
	return true
}

// Normalize rewrites priorities to a dense 0..N-1 range, preserving
// order.
func (s *PanelStack) Normalize() {
	for i := range s.entries {
		s.entries[i].Priority = i
	}
}

// Ascending returns the entries from lowest to highest priority, the
// paint order.
func (s *PanelStack) Ascending() []Entry {
	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Descending returns the entries from highest to lowest priority, the
// input order.
func (s *PanelStack) Descending() []Entry {
	out := make([]Entry, len(s.entries))
	for i, e := range s.entries {
		out[len(s.entries)-1-i] = e
	}
	return out
}

// Reap removes every panel that wants to quit and returns the removed
// entries.
func (s *PanelStack) Reap() []Entry {
	var reaped []Entry
	for i := len(s.entries) - 1; i >= 0; i-- {
		if s.entries[i].Panel.WantsToQuit() {
			reaped = append(reaped, s.removeAt(i))
		}
	}
	if len(reaped) > 0 {
		s.Normalize()
	}
	return reaped
}
