package ui

import (
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startScheduler(t *testing.T, tickRate time.Duration) (*Scheduler, chan tcell.Event) {
	t.Helper()
	source := make(chan tcell.Event)
	s := NewScheduler(tickRate, source)
	go s.Run()
	t.Cleanup(s.Stop)
	return s, source
}

func TestSchedulerEmitsTicksWithoutInput(t *testing.T) {
	s, _ := startScheduler(t, 50*time.Millisecond)

	ticks := 0
	deadline := time.After(375 * time.Millisecond)
	for done := false; !done; {
		select {
		case ev := <-s.Events():
			if _, ok := ev.(TickEvent); ok {
				ticks++
			}
		case <-deadline:
			done = true
		}
	}

	assert.GreaterOrEqual(t, ticks, 4, "scheduler stalled")
	assert.LessOrEqual(t, ticks, 9, "scheduler ticked too fast")
}

func TestSchedulerForwardsInputImmediately(t *testing.T) {
	s, source := startScheduler(t, time.Hour)

	key := tcell.NewEventKey(tcell.KeyRune, 'j', tcell.ModNone)
	go func() { source <- key }()

	select {
	case ev := <-s.Events():
		ke, ok := ev.(KeyEvent)
		require.True(t, ok, "got %T", ev)
		assert.Equal(t, 'j', ke.Key.Rune())
	case <-time.After(time.Second):
		t.Fatal("input was not forwarded")
	}
}

func TestSchedulerForwardsResize(t *testing.T) {
	s, source := startScheduler(t, time.Hour)

	go func() { source <- tcell.NewEventResize(80, 24) }()

	select {
	case ev := <-s.Events():
		_, ok := ev.(ResizeEvent)
		assert.True(t, ok, "got %T", ev)
	case <-time.After(time.Second):
		t.Fatal("resize was not forwarded")
	}
}

func TestSchedulerDoesNotBurstAfterStall(t *testing.T) {
	s, _ := startScheduler(t, 30*time.Millisecond)

	// let several tick periods pass without consuming
	time.Sleep(150 * time.Millisecond)

	// drain for a moment; an accumulating scheduler would deliver a
	// burst of back-to-back ticks here
	ticks := 0
	deadline := time.After(35 * time.Millisecond)
	for done := false; !done; {
		select {
		case <-s.Events():
			ticks++
		case <-deadline:
			done = true
		}
	}

	assert.LessOrEqual(t, ticks, 3, "ticks accumulated during the stall")
}

func TestSchedulerClosesOnSourceClose(t *testing.T) {
	s, source := startScheduler(t, time.Hour)

	close(source)

	select {
	case _, ok := <-s.Events():
		assert.False(t, ok, "events channel should close")
	case <-time.After(time.Second):
		t.Fatal("events channel did not close")
	}
}
