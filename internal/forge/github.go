package forge

import (
	"context"
	"fmt"

	"github.com/shurcooL/githubv4"
	"golang.org/x/oauth2"
)

// pageSize bounds every list query. There is no pagination beyond the
// first page; the views show the most recent items.
const pageSize = 100

// commentPageSize bounds the comment list of a detail query.
const commentPageSize = 50

// GitHubClient queries the GitHub GraphQL API for one repository.
type GitHubClient struct {
	gql *githubv4.Client
}

// NewGitHubClient builds a client authenticated with token.
func NewGitHubClient(ctx context.Context, token string) *GitHubClient {
	src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	return &GitHubClient{gql: githubv4.NewClient(oauth2.NewClient(ctx, src))}
}

type labelNodes struct {
	Nodes []struct {
		Name githubv4.String
	}
}

type itemFields struct {
	Number    githubv4.Int
	Title     githubv4.String
	URL       githubv4.URI `graphql:"url"`
	Closed    githubv4.Boolean
	CreatedAt githubv4.DateTime
	Author    struct {
		Login githubv4.String
	}
	Labels labelNodes `graphql:"labels(first: 20)"`
}

func (f itemFields) toItem() Item {
	labels := make([]string, 0, len(f.Labels.Nodes))
	for _, l := range f.Labels.Nodes {
		labels = append(labels, string(l.Name))
	}
	return Item{
		Number:    int(f.Number),
		Title:     string(f.Title),
		URL:       f.URL.String(),
		Author:    string(f.Author.Login),
		Closed:    bool(f.Closed),
		CreatedAt: f.CreatedAt.Time,
		Labels:    labels,
	}
}

// Issues returns the most recently created issues of the repository.
func (c *GitHubClient) Issues(ctx context.Context, owner, name string) ([]Item, error) {
	var q struct {
		Repository struct {
			Issues struct {
				Nodes []itemFields
			} `graphql:"issues(first: $first, orderBy: {field: CREATED_AT, direction: DESC})"`
		} `graphql:"repository(owner: $owner, name: $name)"`
	}
	vars := map[string]any{
		"owner": githubv4.String(owner),
		"name":  githubv4.String(name),
		"first": githubv4.Int(pageSize),
	}
	if err := c.gql.Query(ctx, &q, vars); err != nil {
		return nil, fmt.Errorf("querying issues for %s/%s: %w", owner, name, err)
	}

	items := make([]Item, 0, len(q.Repository.Issues.Nodes))
	for _, n := range q.Repository.Issues.Nodes {
		items = append(items, n.toItem())
	}
	return items, nil
}

// PullRequests returns the most recently created pull requests.
func (c *GitHubClient) PullRequests(ctx context.Context, owner, name string) ([]Item, error) {
	var q struct {
		Repository struct {
			PullRequests struct {
				Nodes []itemFields
			} `graphql:"pullRequests(first: $first, orderBy: {field: CREATED_AT, direction: DESC})"`
		} `graphql:"repository(owner: $owner, name: $name)"`
	}
	vars := map[string]any{
		"owner": githubv4.String(owner),
		"name":  githubv4.String(name),
		"first": githubv4.Int(pageSize),
	}
	if err := c.gql.Query(ctx, &q, vars); err != nil {
		return nil, fmt.Errorf("querying pull requests for %s/%s: %w", owner, name, err)
	}

	items := make([]Item, 0, len(q.Repository.PullRequests.Nodes))
	for _, n := range q.Repository.PullRequests.Nodes {
		items = append(items, n.toItem())
	}
	return items, nil
}

// Projects returns the repository's projects.
func (c *GitHubClient) Projects(ctx context.Context, owner, name string) ([]Project, error) {
	var q struct {
		Repository struct {
			ProjectsV2 struct {
				Nodes []struct {
					Number    githubv4.Int
					Title     githubv4.String
					URL       githubv4.URI `graphql:"url"`
					Closed    githubv4.Boolean
					CreatedAt githubv4.DateTime
				}
			} `graphql:"projectsV2(first: $first, orderBy: {field: CREATED_AT, direction: DESC})"`
		} `graphql:"repository(owner: $owner, name: $name)"`
	}
	vars := map[string]any{
		"owner": githubv4.String(owner),
		"name":  githubv4.String(name),
		"first": githubv4.Int(pageSize),
	}
	if err := c.gql.Query(ctx, &q, vars); err != nil {
		return nil, fmt.Errorf("querying projects for %s/%s: %w", owner, name, err)
	}

	projects := make([]Project, 0, len(q.Repository.ProjectsV2.Nodes))
	for _, n := range q.Repository.ProjectsV2.Nodes {
		projects = append(projects, Project{
			Number:    int(n.Number),
			Title:     string(n.Title),
			URL:       n.URL.String(),
			Closed:    bool(n.Closed),
			CreatedAt: n.CreatedAt.Time,
		})
	}
	return projects, nil
}

type commentNodes struct {
	Nodes []struct {
		Author struct {
			Login githubv4.String
		}
		Body      githubv4.String
		CreatedAt githubv4.DateTime
	}
}

func (n commentNodes) toComments() []Comment {
	comments := make([]Comment, 0, len(n.Nodes))
	for _, c := range n.Nodes {
		comments = append(comments, Comment{
			Author:    string(c.Author.Login),
			Body:      string(c.Body),
			CreatedAt: c.CreatedAt.Time,
		})
	}
	return comments
}

// Detail fetches the body and comments of a single issue or pull
// request.
func (c *GitHubClient) Detail(ctx context.Context, owner, name string, view ViewKind, number int) (*Detail, error) {
	switch view {
	case ViewIssues:
		return c.issueDetail(ctx, owner, name, number)
	case ViewPullRequests:
		return c.pullRequestDetail(ctx, owner, name, number)
	default:
		return nil, fmt.Errorf("no detail query for view %s", view)
	}
}

func (c *GitHubClient) issueDetail(ctx context.Context, owner, name string, number int) (*Detail, error) {
	var q struct {
		Repository struct {
			Issue struct {
				Number    githubv4.Int
				Title     githubv4.String
				Body      githubv4.String
				URL       githubv4.URI `graphql:"url"`
				Closed    githubv4.Boolean
				CreatedAt githubv4.DateTime
				Author    struct {
					Login githubv4.String
				}
				Comments commentNodes `graphql:"comments(first: $comments)"`
			} `graphql:"issue(number: $number)"`
		} `graphql:"repository(owner: $owner, name: $name)"`
	}
	vars := map[string]any{
		"owner":    githubv4.String(owner),
		"name":     githubv4.String(name),
		"number":   githubv4.Int(number),
		"comments": githubv4.Int(commentPageSize),
	}
	if err := c.gql.Query(ctx, &q, vars); err != nil {
		return nil, fmt.Errorf("querying issue %s/%s#%d: %w", owner, name, number, err)
	}

	issue := q.Repository.Issue
	return &Detail{
		View:      ViewIssues,
		Number:    int(issue.Number),
		Title:     string(issue.Title),
		Body:      string(issue.Body),
		URL:       issue.URL.String(),
		Author:    string(issue.Author.Login),
		Closed:    bool(issue.Closed),
		CreatedAt: issue.CreatedAt.Time,
		Comments:  issue.Comments.toComments(),
	}, nil
}

func (c *GitHubClient) pullRequestDetail(ctx context.Context, owner, name string, number int) (*Detail, error) {
	var q struct {
		Repository struct {
			PullRequest struct {
				Number    githubv4.Int
				Title     githubv4.String
				Body      githubv4.String
				URL       githubv4.URI `graphql:"url"`
				Closed    githubv4.Boolean
				CreatedAt githubv4.DateTime
				Author    struct {
					Login githubv4.String
				}
				Comments commentNodes `graphql:"comments(first: $comments)"`
			} `graphql:"pullRequest(number: $number)"`
		} `graphql:"repository(owner: $owner, name: $name)"`
	}
	vars := map[string]any{
		"owner":    githubv4.String(owner),
		"name":     githubv4.String(name),
		"number":   githubv4.Int(number),
		"comments": githubv4.Int(commentPageSize),
	}
	if err := c.gql.Query(ctx, &q, vars); err != nil {
		return nil, fmt.Errorf("querying pull request %s/%s#%d: %w", owner, name, number, err)
	}

	pr := q.Repository.PullRequest
	return &Detail{
		View:      ViewPullRequests,
		Number:    int(pr.Number),
		Title:     string(pr.Title),
		Body:      string(pr.Body),
		URL:       pr.URL.String(),
		Author:    string(pr.Author.Login),
		Closed:    bool(pr.Closed),
		CreatedAt: pr.CreatedAt.Time,
		Comments:  pr.Comments.toComments(),
	}, nil
}
