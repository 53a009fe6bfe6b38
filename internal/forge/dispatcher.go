package forge

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/hugo-lorenzo-mato/lazyissues/internal/logging"
)

// Querier is the backend query surface the dispatcher fans out to.
// GitHubClient implements it; tests substitute fakes.
type Querier interface {
	Issues(ctx context.Context, owner, name string) ([]Item, error)
	PullRequests(ctx context.Context, owner, name string) ([]Item, error)
	Projects(ctx context.Context, owner, name string) ([]Project, error)
	Detail(ctx context.Context, owner, name string, view ViewKind, number int) (*Detail, error)
}

// RequestKind selects the query a Request runs.
type RequestKind int

const (
	RequestIssues RequestKind = iota
	RequestPullRequests
	RequestProjects
	RequestDetail
)

// Request describes one backend query.
type Request struct {
	Kind   RequestKind
	Remote string
	// View and Number apply to detail requests only.
	View   ViewKind
	Number int
}

// Dispatcher runs backend queries on their own goroutines and
// delivers results on a shared channel. Each request produces at
// most one result; there is no retry, dedup or cancellation. When
// the preconditions fail (no credential, no remote) the request is
// logged and silently dropped before any goroutine starts.
type Dispatcher struct {
	querier Querier
	results chan Result
	timeout time.Duration
	logger  *logging.Logger
}

// NewDispatcher creates a dispatcher. querier may be nil when no
// credential resolved; every request then becomes a logged no-op.
func NewDispatcher(querier Querier, logger *logging.Logger) *Dispatcher {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Dispatcher{
		querier: querier,
		results: make(chan Result, 64),
		timeout: 30 * time.Second,
		logger:  logger,
	}
}

// Results is the channel query results arrive on. The orchestrator
// drains it on every tick.
func (d *Dispatcher) Results() <-chan Result { return d.results }

// Deliver queues a result produced outside a query goroutine, such
// as a remote change from the picker. Full channel drops the result
// with a log entry, same as query results.
func (d *Dispatcher) Deliver(res Result) {
	d.send("local", res)
}

// Dispatch checks preconditions synchronously, then runs the query
// on its own goroutine.
func (d *Dispatcher) Dispatch(req Request) {
	if d.querier == nil {
		d.logger.Info("dropping request, no credential resolved", "kind", req.Kind)
		return
	}
	if req.Remote == "" {
		d.logger.Info("dropping request, no remote selected", "kind", req.Kind)
		return
	}
	remote, ok := ParseRemote(req.Remote)
	if !ok {
		d.logger.Info("dropping request, unparseable remote", "remote", d.logger.Sanitize(req.Remote))
		return
	}

	id := uuid.NewString()
	d.logger.Debug("dispatching request", "id", id, "kind", req.Kind, "repo", remote.Owner+"/"+remote.Name)

	go d.execute(id, req, remote)
}

func (d *Dispatcher) execute(id string, req Request, remote Remote) {
	ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
	defer cancel()

	var (
		res Result
		err error
	)
	switch req.Kind {
	case RequestIssues:
		var items []Item
		items, err = d.querier.Issues(ctx, remote.Owner, remote.Name)
		res = ItemsResult{View: ViewIssues, Items: items}
	case RequestPullRequests:
		var items []Item
		items, err = d.querier.PullRequests(ctx, remote.Owner, remote.Name)
		res = ItemsResult{View: ViewPullRequests, Items: items}
	case RequestProjects:
		var projects []Project
		projects, err = d.querier.Projects(ctx, remote.Owner, remote.Name)
		res = ProjectsResult{Projects: projects}
	case RequestDetail:
		var detail *Detail
		detail, err = d.querier.Detail(ctx, remote.Owner, remote.Name, req.View, req.Number)
		if err == nil {
			res = DetailResult{Detail: *detail}
		}
	default:
		d.logger.Warn("unknown request kind", "id", id, "kind", req.Kind)
		return
	}

	if err != nil {
		d.logger.Warn("query failed", "id", id, "kind", req.Kind, "error", err)
		view := req.View
		if req.Kind != RequestDetail {
			view = viewForKind(req.Kind)
		}
		res = ErrorResult{View: view, Err: err}
	}

	d.send(id, res)
}

func viewForKind(kind RequestKind) ViewKind {
	switch kind {
	case RequestPullRequests:
		return ViewPullRequests
	case RequestProjects:
		return ViewProjects
	default:
		return ViewIssues
	}
}

// send delivers exactly one result or logs the drop.
func (d *Dispatcher) send(id string, res Result) {
	select {
	case d.results <- res:
	default:
		d.logger.Warn("dropping result, channel full", "id", id, "panel", res.PanelName())
	}
}
