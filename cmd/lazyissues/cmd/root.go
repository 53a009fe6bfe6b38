// Package cmd wires the CLI entrypoint to the dashboard.
package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/hugo-lorenzo-mato/lazyissues/internal/config"
	"github.com/hugo-lorenzo-mato/lazyissues/internal/creds"
	"github.com/hugo-lorenzo-mato/lazyissues/internal/forge"
	"github.com/hugo-lorenzo-mato/lazyissues/internal/gitrepo"
	"github.com/hugo-lorenzo-mato/lazyissues/internal/logging"
	"github.com/hugo-lorenzo-mato/lazyissues/internal/state"
	"github.com/hugo-lorenzo-mato/lazyissues/internal/ui"
)

var (
	cfgFile  string
	logLevel string
	logFile  string
	repoPath string

	// Version info - set via SetVersion()
	appVersion string
	appCommit  string
	appDate    string
)

var rootCmd = &cobra.Command{
	Use:   "lazyissues",
	Short: "Terminal dashboard for the issues, pull requests and projects of a git remote",
	Long: `lazyissues opens a terminal dashboard on the repository in the
current directory and browses the issues, pull requests and projects
of one of its remotes.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runDashboard,
}

func Execute() error {
	return rootCmd.Execute()
}

func SetVersion(version, commit, date string) {
	appVersion = version
	appCommit = commit
	appDate = date
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default: ~/.config/lazyissues/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info",
		"log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "",
		"log file (default: under the user cache dir)")
	rootCmd.PersistentFlags().StringVar(&repoPath, "repo", ".",
		"path inside the git repository to open")
}

// openLogSink opens the log file, creating its directory. The TUI
// owns the terminal, so logs never go to stderr.
func openLogSink() (io.WriteCloser, error) {
	path := logFile
	if path == "" {
		dir, err := os.UserCacheDir()
		if err != nil {
			return nil, fmt.Errorf("locating cache dir: %w", err)
		}
		path = filepath.Join(dir, "lazyissues", "lazyissues.log")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}
	return f, nil
}

func runDashboard(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	sink, err := openLogSink()
	if err != nil {
		return err
	}
	defer sink.Close()

	logger := logging.New(logging.Config{Level: logLevel, Format: "json", Output: sink})
	logger.Info("starting", "version", appVersion)

	cfg, err := config.NewLoader(cfgFile, logger).Load()
	if err != nil {
		return err
	}

	repo, err := gitrepo.NewClient(repoPath)
	if err != nil {
		return err
	}
	root, err := repo.Root(ctx)
	if err != nil {
		return err
	}
	remotes, err := repo.RemoteURLs(ctx)
	if err != nil {
		return err
	}

	host := "github.com"
	if url, err := repo.ActiveRemoteURL(ctx); err == nil {
		if remote, ok := forge.ParseRemote(url); ok {
			host = remote.Host
		}
	}

	creds.NewResolver(cfg, logger).ResolveAll(ctx, cfg, host)

	var querier forge.Querier
	if token, ok := cfg.Token(config.BackendGitHub); ok {
		querier = forge.NewGitHubClient(ctx, token)
	} else {
		logger.Info("no github credential, queries disabled")
	}
	dispatcher := forge.NewDispatcher(querier, logger)

	statePath, err := state.DefaultPath()
	if err != nil {
		return err
	}
	store, err := state.Open(statePath)
	if err != nil {
		return err
	}

	menu := ui.NewTabMenu(cfg, dispatcher, store, root, remotes, logger)
	if err := ui.NewApp(menu, nil, logger).Run(); err != nil {
		return err
	}
	logger.Info("bye")
	return nil
}
