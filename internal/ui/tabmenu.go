package ui

import (
	"github.com/gdamore/tcell/v2"

	"github.com/hugo-lorenzo-mato/lazyissues/internal/config"
	"github.com/hugo-lorenzo-mato/lazyissues/internal/forge"
	"github.com/hugo-lorenzo-mato/lazyissues/internal/logging"
	"github.com/hugo-lorenzo-mato/lazyissues/internal/state"
)

// requestDispatcher is the slice of the forge dispatcher the tab menu
// needs. Tests substitute a recorder.
type requestDispatcher interface {
	Dispatch(req forge.Request)
	Deliver(res forge.Result)
	Results() <-chan forge.Result
}

// viewOrder is the tab cycling order.
var viewOrder = []forge.ViewKind{forge.ViewIssues, forge.ViewPullRequests, forge.ViewProjects}

// TabMenu is the root panel: it owns the panel stack, routes results,
// reaps finished panels and handles global keys.
type TabMenu struct {
	cfg        *config.Config
	dispatcher requestDispatcher
	store      *state.Store
	logger     *logging.Logger

	repoRoot string
	remotes  []string
	remote   string

	stack   *PanelStack
	views   map[forge.ViewKind]*ListView
	detail  *DetailView
	current int
	focused bool
	quit    bool
}

// NewTabMenu builds the root panel. When the store already knows a
// remote for repoRoot the three views refresh immediately; otherwise
// the remote picker opens on top.
func NewTabMenu(cfg *config.Config, dispatcher requestDispatcher, store *state.Store, repoRoot string, remotes []string, logger *logging.Logger) *TabMenu {
	if logger == nil {
		logger = logging.NewNop()
	}
	m := &TabMenu{
		cfg:        cfg,
		dispatcher: dispatcher,
		store:      store,
		logger:     logger,
		repoRoot:   repoRoot,
		remotes:    remotes,
		stack:      NewPanelStack(),
		views:      map[forge.ViewKind]*ListView{},
	}

	for i, view := range viewOrder {
		lv := NewListView(view, cfg, m.inspect)
		m.views[view] = lv
		m.stack.Add(i, lv.Name(), lv)
	}

	m.stack.Select(forge.ViewIssues.String())
	m.current = 0

	if remote, ok := store.Remote(repoRoot); ok {
		m.remote = remote
		m.refreshAll()
	} else {
		m.openRemotePicker()
	}

	return m
}

// inspect dispatches a detail query for the selected item.
func (m *TabMenu) inspect(view forge.ViewKind, number int) {
	m.dispatcher.Dispatch(forge.Request{
		Kind:   forge.RequestDetail,
		Remote: m.remote,
		View:   view,
		Number: number,
	})
}

// refreshAll re-queries the three views against the current remote.
func (m *TabMenu) refreshAll() {
	for _, kind := range []forge.RequestKind{forge.RequestIssues, forge.RequestPullRequests, forge.RequestProjects} {
		m.dispatcher.Dispatch(forge.Request{Kind: kind, Remote: m.remote})
	}
}

func (m *TabMenu) openRemotePicker() {
	picker := NewRemotePicker(m.remotes, m.dispatcher.Deliver)
	m.stack.Add(m.stack.MaxPriority()+1, picker.Name(), picker)
	m.stack.Select(picker.Name())
}

// Tick drains every pending result, routes it, forwards the tick to
// the stacked panels and reaps the ones that want to leave.
func (m *TabMenu) Tick() {
drain:
	for {
		select {
		case res, ok := <-m.dispatcher.Results():
			if !ok {
				break drain
			}
			m.route(res)
		default:
			break drain
		}
	}

	for _, e := range m.stack.Ascending() {
		e.Panel.Tick()
	}

	for _, e := range m.stack.Reap() {
		m.logger.Debug("panel closed", "panel", e.Name)
		m.focusCurrentView()
	}
}

// route applies one result. Remote changes are handled here; anything
// else goes to the panel carrying the result's name. The detail panel
// does not exist until the first detail result arrives; it is created
// on top of the stack at that point.
func (m *TabMenu) route(res forge.Result) {
	if changed, ok := res.(forge.RemoteChangedResult); ok {
		m.setRemote(changed.URL)
		return
	}

	panel, ok := m.stack.ByName(res.PanelName())
	if !ok {
		if detail, isDetail := res.(forge.DetailResult); isDetail {
			m.detail = NewDetailView(m.cfg)
			m.stack.Add(m.stack.MaxPriority()+1, m.detail.Name(), m.detail)
			m.detail.Update(detail)
			return
		}
		m.logger.Debug("dropping result for unknown panel", "panel", res.PanelName())
		return
	}
	if !panel.Update(res) {
		m.logger.Debug("panel rejected result", "panel", res.PanelName())
	}
}

// setRemote persists the picked remote and refreshes every view. The
// in-memory remote applies even when persisting fails.
func (m *TabMenu) setRemote(url string) {
	m.remote = url
	if err := m.store.SetRemote(m.repoRoot, url); err != nil {
		m.logger.Warn("persisting remote selection failed", "error", err)
	}
	m.refreshAll()
}

// HandleInput walks the stack top-down, then falls back to the
// global keybindings.
func (m *TabMenu) HandleInput(ev *tcell.EventKey) bool {
	for _, e := range m.stack.Descending() {
		if e.Panel.HandleInput(ev) {
			return true
		}
	}

	action, ok := m.cfg.ActionFor(config.KeyFromEvent(ev))
	if !ok {
		return false
	}

	switch action {
	case config.ActionQuit:
		m.quit = true
	case config.ActionNextView:
		m.cycleView(1)
	case config.ActionPreviousView:
		m.cycleView(-1)
	case config.ActionSelectIssues:
		m.selectView(forge.ViewIssues)
	case config.ActionSelectPulls:
		m.selectView(forge.ViewPullRequests)
	case config.ActionSelectProjects:
		m.selectView(forge.ViewProjects)
	case config.ActionOpenRemotePicker:
		m.openRemotePicker()
	default:
		return false
	}
	return true
}

func (m *TabMenu) cycleView(delta int) {
	m.current = (m.current + delta + len(viewOrder)) % len(viewOrder)
	m.showCurrentView()
}

func (m *TabMenu) selectView(view forge.ViewKind) {
	for i, v := range viewOrder {
		if v == view {
			m.current = i
			break
		}
	}
	m.showCurrentView()
}

// showCurrentView raises the active view and dispatches a fresh fetch
// for it. Switching views is the retry path after a failed query.
func (m *TabMenu) showCurrentView() {
	view := viewOrder[m.current]
	m.stack.Select(view.String())
	m.dispatcher.Dispatch(forge.Request{Kind: requestKindFor(view), Remote: m.remote})
}

func requestKindFor(view forge.ViewKind) forge.RequestKind {
	switch view {
	case forge.ViewPullRequests:
		return forge.RequestPullRequests
	case forge.ViewProjects:
		return forge.RequestProjects
	default:
		return forge.RequestIssues
	}
}

// focusCurrentView restores focus to the active view, typically after
// a modal closed.
func (m *TabMenu) focusCurrentView() {
	m.stack.Select(viewOrder[m.current].String())
}

func (m *TabMenu) Update(res forge.Result) bool {
	m.route(res)
	return true
}

func (m *TabMenu) WantsToQuit() bool { return m.quit }

func (m *TabMenu) SetFocus(focused bool) bool {
	m.focused = focused
	return true
}

// Render lays out the three views in a left column and the detail
// view plus status line on the right.
func (m *TabMenu) Render(screen tcell.Screen, area Rect) {
	screen.Clear()

	body, status := area.SplitV(area.H - 1)
	left, right := body.SplitH(body.W * 2 / 5)

	viewH := left.H / len(viewOrder)
	rest := left
	for i, view := range viewOrder {
		var slot Rect
		if i == len(viewOrder)-1 {
			slot = rest
		} else {
			slot, rest = rest.SplitV(viewH)
		}
		m.views[view].Render(screen, slot)
	}

	if detail, ok := m.stack.ByName("detail"); ok {
		detail.Render(screen, right)
	} else {
		inner := drawBox(screen, right, styleDefault, "Detail")
		drawText(screen, inner, 0, 0, styleDim, "press enter on an item to inspect it")
	}

	m.renderStatus(screen, status)

	// modals paint last, on top of everything
	for _, e := range m.stack.Ascending() {
		if _, isModal := e.Panel.(*RemotePicker); isModal {
			e.Panel.Render(screen, body)
		}
	}
}

func (m *TabMenu) renderStatus(screen tcell.Screen, area Rect) {
	remote := m.remote
	if remote == "" {
		remote = "no remote selected"
	}
	line := m.views[viewOrder[m.current]].statusLine() + "  |  " + remote
	fillRect(screen, area, styleDim)
	drawText(screen, area, 0, 0, styleDim, line)
}
