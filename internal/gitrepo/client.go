// Package gitrepo wraps the git CLI for repository and remote
// introspection.
package gitrepo

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// Client wraps git CLI operations for a single repository.
type Client struct {
	repoPath string
	timeout  time.Duration
}

// NewClient creates a client rooted at repoPath, which must be inside
// a git working tree.
func NewClient(repoPath string) (*Client, error) {
	absPath, err := filepath.Abs(repoPath)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}

	client := &Client{
		repoPath: absPath,
		timeout:  30 * time.Second,
	}

	if _, err := client.run(context.Background(), "rev-parse", "--git-dir"); err != nil {
		return nil, fmt.Errorf("%s is not a git repository", absPath)
	}

	return client, nil
}

// run executes a git command in the repository.
func (c *Client) run(ctx context.Context, args ...string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = c.repoPath

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return "", fmt.Errorf("git %s timed out", strings.Join(args, " "))
		}
		return "", fmt.Errorf("git %s: %s: %w", strings.Join(args, " "), strings.TrimSpace(stderr.String()), err)
	}

	return strings.TrimSpace(stdout.String()), nil
}

// Root returns the repository's top-level directory. It identifies
// the repository in the persisted remote-selection state.
func (c *Client) Root(ctx context.Context) (string, error) {
	return c.run(ctx, "rev-parse", "--show-toplevel")
}

// Remotes lists the configured remote names.
func (c *Client) Remotes(ctx context.Context) ([]string, error) {
	output, err := c.run(ctx, "remote")
	if err != nil {
		return nil, err
	}
	if output == "" {
		return nil, nil
	}
	return strings.Split(output, "\n"), nil
}

// RemoteURL returns the fetch URL of a named remote.
func (c *Client) RemoteURL(ctx context.Context, name string) (string, error) {
	return c.run(ctx, "remote", "get-url", name)
}

// RemoteURLs returns the fetch URLs of every configured remote.
func (c *Client) RemoteURLs(ctx context.Context) ([]string, error) {
	names, err := c.Remotes(ctx)
	if err != nil {
		return nil, err
	}
	urls := make([]string, 0, len(names))
	for _, name := range names {
		url, err := c.RemoteURL(ctx, name)
		if err != nil {
			return nil, err
		}
		urls = append(urls, url)
	}
	return urls, nil
}

// ActiveRemoteURL returns the URL of the remote the checked-out
// branch tracks, falling back to origin and then to the first
// configured remote when there is no upstream.
func (c *Client) ActiveRemoteURL(ctx context.Context) (string, error) {
	if upstream, err := c.run(ctx, "rev-parse", "--abbrev-ref", "--symbolic-full-name", "@{u}"); err == nil {
		if remote, _, ok := strings.Cut(upstream, "/"); ok {
			if url, err := c.RemoteURL(ctx, remote); err == nil {
				return url, nil
			}
		}
	}

	if url, err := c.RemoteURL(ctx, "origin"); err == nil {
		return url, nil
	}

	names, err := c.Remotes(ctx)
	if err != nil {
		return "", err
	}
	if len(names) == 0 {
		return "", fmt.Errorf("repository has no remotes")
	}
	return c.RemoteURL(ctx, names[0])
}
