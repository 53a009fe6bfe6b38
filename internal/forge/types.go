// Package forge talks to the issue-tracking backend of a git remote
// and dispatches queries for the UI.
package forge

import "time"

// ViewKind identifies one of the three browsable views.
type ViewKind int

const (
	ViewIssues ViewKind = iota
	ViewPullRequests
	ViewProjects
)

// String returns the panel name used for result routing.
func (v ViewKind) String() string {
	switch v {
	case ViewIssues:
		return "issues"
	case ViewPullRequests:
		return "pull_requests"
	case ViewProjects:
		return "projects"
	default:
		return "unknown"
	}
}

// Item is an issue or pull request in a list view.
type Item struct {
	Number    int
	Title     string
	URL       string
	Author    string
	Closed    bool
	CreatedAt time.Time
	Labels    []string
}

// Project is an entry of the projects view.
type Project struct {
	Number    int
	Title     string
	URL       string
	Closed    bool
	CreatedAt time.Time
}

// Comment is a single discussion entry on an issue or pull request.
type Comment struct {
	Author    string
	Body      string
	CreatedAt time.Time
}

// Detail is the expanded form of a single item.
type Detail struct {
	View      ViewKind
	Number    int
	Title     string
	Body      string
	URL       string
	Author    string
	Closed    bool
	CreatedAt time.Time
	Comments  []Comment
}

// Result is a message produced by a background query or by a panel
// and routed to panels by name. Exactly one concrete type applies.
type Result interface {
	// PanelName is the routing key: the panel this result belongs to.
	PanelName() string
}

// ItemsResult carries a refreshed issue or pull request list.
type ItemsResult struct {
	View  ViewKind
	Items []Item
}

func (r ItemsResult) PanelName() string { return r.View.String() }

// ProjectsResult carries a refreshed project list.
type ProjectsResult struct {
	Projects []Project
}

func (ProjectsResult) PanelName() string { return ViewProjects.String() }

// DetailResult carries the expanded form of one item.
type DetailResult struct {
	Detail Detail
}

func (r DetailResult) PanelName() string { return "detail" }

// RemoteChangedResult announces that the user picked a new remote.
// The orchestrator persists it and re-dispatches every view.
type RemoteChangedResult struct {
	URL string
}

func (RemoteChangedResult) PanelName() string { return "remote_picker" }

// ErrorResult reports a failed query so the owning view can show it.
type ErrorResult struct {
	View ViewKind
	Err  error
}

func (r ErrorResult) PanelName() string { return r.View.String() }
