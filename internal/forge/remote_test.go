package forge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRemote(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want Remote
		ok   bool
	}{
		{
			name: "scp style ssh",
			url:  "git@github.com:acme/widgets.git",
			want: Remote{URL: "git@github.com:acme/widgets.git", Host: "github.com", Owner: "acme", Name: "widgets", Backend: "github"},
			ok:   true,
		},
		{
			name: "https with suffix",
			url:  "https://github.com/acme/widgets.git",
			want: Remote{URL: "https://github.com/acme/widgets.git", Host: "github.com", Owner: "acme", Name: "widgets", Backend: "github"},
			ok:   true,
		},
		{
			name: "https without suffix",
			url:  "https://gitlab.com/acme/widgets",
			want: Remote{URL: "https://gitlab.com/acme/widgets", Host: "gitlab.com", Owner: "acme", Name: "widgets", Backend: "gitlab"},
			ok:   true,
		},
		{
			name: "ssh scheme",
			url:  "ssh://git@gitea.example.org/acme/widgets.git",
			want: Remote{URL: "ssh://git@gitea.example.org/acme/widgets.git", Host: "gitea.example.org", Owner: "acme", Name: "widgets", Backend: "gitea"},
			ok:   true,
		},
		{
			name: "dotted repo name keeps inner dots",
			url:  "git@github.com:acme/widgets.js.git",
			want: Remote{URL: "git@github.com:acme/widgets.js.git", Host: "github.com", Owner: "acme", Name: "widgets.js", Backend: "github"},
			ok:   true,
		},
		{
			name: "empty",
			url:  "",
			ok:   false,
		},
		{
			name: "garbage",
			url:  "not a remote",
			ok:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseRemote(tt.url)
			require.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}
