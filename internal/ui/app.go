package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/hugo-lorenzo-mato/lazyissues/internal/logging"
)

// App owns the terminal screen and runs the main loop: tick the root
// panel, paint, then block until the scheduler delivers the next
// event.
type App struct {
	root   Panel
	screen tcell.Screen
	logger *logging.Logger
}

// NewApp creates the application around a root panel. screen may be
// nil; the terminal screen is allocated in Run.
func NewApp(root Panel, screen tcell.Screen, logger *logging.Logger) *App {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &App{root: root, screen: screen, logger: logger}
}

// Run drives the interface until the root panel wants to quit or the
// event stream ends. The screen is always restored on the way out.
func (a *App) Run() error {
	if a.screen == nil {
		screen, err := tcell.NewScreen()
		if err != nil {
			return fmt.Errorf("allocating screen: %w", err)
		}
		a.screen = screen
	}
	if err := a.screen.Init(); err != nil {
		return fmt.Errorf("initializing screen: %w", err)
	}
	defer a.screen.Fini()

	rawEvents := make(chan tcell.Event, 16)
	quitScreen := make(chan struct{})
	go a.screen.ChannelEvents(rawEvents, quitScreen)
	defer close(quitScreen)

	scheduler := NewScheduler(DefaultTickRate, rawEvents)
	go scheduler.Run()
	defer scheduler.Stop()

	a.root.SetFocus(true)
	a.root.Tick()

	for {
		a.root.Render(a.screen, ScreenRect(a.screen))
		a.screen.Show()

		ev, ok := <-scheduler.Events()
		if !ok {
			return fmt.Errorf("event stream closed")
		}

		switch e := ev.(type) {
		case KeyEvent:
			a.root.HandleInput(e.Key)
		case TickEvent:
			a.root.Tick()
		case ResizeEvent:
			a.screen.Sync()
		}

		if a.root.WantsToQuit() {
			a.logger.Debug("quit requested")
			return nil
		}
	}
}
