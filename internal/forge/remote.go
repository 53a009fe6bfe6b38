package forge

import (
	"regexp"
	"strings"
)

// Remote is a parsed git remote URL.
type Remote struct {
	URL     string
	Host    string
	Owner   string
	Name    string
	Backend string
}

var (
	sshRemoteRe   = regexp.MustCompile(`^(?:ssh://)?(?:[^@]+@)?([^:/]+)[:/]([^/]+)/(.+?)(?:\.git)?/?$`)
	httpsRemoteRe = regexp.MustCompile(`^https?://([^/]+)/([^/]+)/(.+?)(?:\.git)?/?$`)
)

// ParseRemote extracts host, owner and repository name from a remote
// URL in either scp-like ssh or https form.
func ParseRemote(url string) (Remote, bool) {
	url = strings.TrimSpace(url)
	if url == "" {
		return Remote{}, false
	}

	var m []string
	if strings.HasPrefix(url, "http://") || strings.HasPrefix(url, "https://") {
		m = httpsRemoteRe.FindStringSubmatch(url)
	} else {
		m = sshRemoteRe.FindStringSubmatch(url)
	}
	if m == nil {
		return Remote{}, false
	}

	return Remote{
		URL:     url,
		Host:    m[1],
		Owner:   m[2],
		Name:    m[3],
		Backend: backendForHost(m[1]),
	}, true
}

func backendForHost(host string) string {
	switch {
	case strings.Contains(host, "gitlab"):
		return "gitlab"
	case strings.Contains(host, "gitea"):
		return "gitea"
	default:
		return "github"
	}
}
