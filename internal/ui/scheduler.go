package ui

import (
	"time"

	"github.com/gdamore/tcell/v2"
)

// DefaultTickRate is the interval between ticks when no input
// arrives.
const DefaultTickRate = 200 * time.Millisecond

// Scheduler turns raw terminal events into the single event stream
// the main loop blocks on. Input is forwarded immediately; a tick is
// emitted when at least a tick rate elapsed since the previous one.
// Late ticks do not accumulate: after a stall, one tick fires and the
// clock restarts.
type Scheduler struct {
	tickRate time.Duration
	source   <-chan tcell.Event
	events   chan Event
	done     chan struct{}
}

// NewScheduler wires a scheduler to a raw tcell event source, usually
// Screen.ChannelEvents.
func NewScheduler(tickRate time.Duration, source <-chan tcell.Event) *Scheduler {
	if tickRate <= 0 {
		tickRate = DefaultTickRate
	}
	return &Scheduler{
		tickRate: tickRate,
		source:   source,
		events:   make(chan Event),
		done:     make(chan struct{}),
	}
}

// Events is the stream the main loop receives from. It is closed
// when the raw source closes or Stop is called.
func (s *Scheduler) Events() <-chan Event { return s.events }

// Stop terminates the scheduler goroutine.
func (s *Scheduler) Stop() {
	select {
	case <-s.done:
	default:
		close(s.done)
	}
}

// Run converts raw events until the source closes or Stop is called.
// It is meant to run on its own goroutine.
func (s *Scheduler) Run() {
	defer close(s.events)

	lastTick := time.Now()
	for {
		timeout := s.tickRate - time.Since(lastTick)
		if timeout < 0 {
			timeout = 0
		}

		select {
		case <-s.done:
			return
		case raw, ok := <-s.source:
			if !ok {
				return
			}
			var ev Event
			switch e := raw.(type) {
			case *tcell.EventKey:
				ev = KeyEvent{Key: e}
			case *tcell.EventResize:
				ev = ResizeEvent{}
			default:
				continue
			}
			select {
			case s.events <- ev:
			case <-s.done:
				return
			}
		case <-time.After(timeout):
			if time.Since(lastTick) < s.tickRate {
				continue
			}
			select {
			case s.events <- TickEvent{}:
				lastTick = time.Now()
			case <-s.done:
				return
			}
		}
	}
}
