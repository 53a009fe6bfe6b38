// Package creds resolves forge API tokens from the environment, the
// OS keyring, a credential helper subprocess, and token files.
package creds

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/zalando/go-keyring"
	"golang.org/x/sync/errgroup"

	"github.com/hugo-lorenzo-mato/lazyissues/internal/config"
	"github.com/hugo-lorenzo-mato/lazyissues/internal/logging"
)

// keyringService is the service name tokens are stored under in the
// OS keyring, with the backend name as the account.
const keyringService = "lazyissues"

// Resolver walks the credential sources for a backend in order:
// environment variable, OS keyring, helper subprocess, token file.
// Every miss is logged and the next source is tried; only exhausting
// all sources is a failure, and even that is non-fatal to the caller.
type Resolver struct {
	// Attempts is how many times the helper subprocess is polled
	// before being killed.
	Attempts int

	// Timeout is the wait between helper polls.
	Timeout time.Duration

	// HelperCommand is the helper invocation, argv style.
	HelperCommand []string

	// TokenPaths maps backend names to optional token file paths.
	TokenPaths map[string]string

	logger *logging.Logger
}

// NewResolver builds a resolver from the loaded configuration.
func NewResolver(cfg *config.Config, logger *logging.Logger) *Resolver {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Resolver{
		Attempts:      cfg.CredentialAttempts,
		Timeout:       cfg.CredentialTimeout,
		HelperCommand: cfg.HelperCommand,
		TokenPaths:    cfg.TokenPaths,
		logger:        logger,
	}
}

// Resolve returns the token for a backend, or an error when every
// source comes up empty. host is the forge host the helper is asked
// about, e.g. "github.com".
func (r *Resolver) Resolve(ctx context.Context, backend, host string) (string, error) {
	log := r.logger.WithBackend(backend)

	envVar := strings.ToUpper(backend) + "_TOKEN"
	if token := strings.TrimSpace(os.Getenv(envVar)); token != "" {
		log.Debug("credential resolved from environment", "var", envVar)
		return token, nil
	}
	log.Debug("no credential in environment", "var", envVar)

	if token, err := keyring.Get(keyringService, backend); err == nil && strings.TrimSpace(token) != "" {
		log.Debug("credential resolved from keyring")
		return strings.TrimSpace(token), nil
	} else if err != nil {
		log.Debug("keyring lookup failed", "error", err)
	}

	if token, err := r.runHelper(ctx, host); err == nil && token != "" {
		log.Debug("credential resolved from helper", "helper", r.HelperCommand[0])
		return token, nil
	} else if err != nil {
		log.Info("credential helper failed", "error", err)
	}

	if path := r.TokenPaths[backend]; path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			log.Info("token file unreadable", "path", path, "error", err)
		} else if token := strings.TrimSpace(string(data)); token != "" {
			log.Debug("credential resolved from token file", "path", path)
			return token, nil
		}
	}

	return "", fmt.Errorf("no credential found for %s", backend)
}

// runHelper starts the helper subprocess, feeds it a credential query
// for host, and polls for completion. If the helper has not exited
// after Attempts polls of Timeout each, it is killed.
func (r *Resolver) runHelper(ctx context.Context, host string) (string, error) {
	if len(r.HelperCommand) == 0 {
		return "", nil
	}

	cmd := exec.CommandContext(ctx, r.HelperCommand[0], r.HelperCommand[1:]...)
	cmd.Stdin = strings.NewReader(fmt.Sprintf("protocol=https\nhost=%s\n\n", host))
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Start(); err != nil {
		return "", fmt.Errorf("starting helper: %w", err)
	}

	done := make(chan error, 1)
	go func() { done <- cmd.Wait() }()

	for attempt := 0; attempt < r.Attempts; attempt++ {
		select {
		case err := <-done:
			if err != nil {
				return "", fmt.Errorf("helper exited: %w (stderr: %s)", err, strings.TrimSpace(stderr.String()))
			}
			return parsePassword(stdout.String()), nil
		case <-ctx.Done():
			_ = cmd.Process.Kill()
			<-done
			return "", ctx.Err()
		case <-time.After(r.Timeout):
		}
	}

	_ = cmd.Process.Kill()
	<-done
	return "", fmt.Errorf("helper did not finish within %d attempts of %s", r.Attempts, r.Timeout)
}

// parsePassword extracts the password field from git-credential
// key=value output.
func parsePassword(out string) string {
	for _, line := range strings.Split(out, "\n") {
		if value, ok := strings.CutPrefix(strings.TrimSpace(line), "password="); ok {
			return strings.TrimSpace(value)
		}
	}
	return ""
}

// ResolveAll resolves credentials for every backend concurrently and
// stores the hits in cfg.Tokens. Failures are logged per backend and
// never abort the others.
func (r *Resolver) ResolveAll(ctx context.Context, cfg *config.Config, host string) {
	tokens := make([]string, len(config.Backends))

	g, ctx := errgroup.WithContext(ctx)
	for i, backend := range config.Backends {
		g.Go(func() error {
			token, err := r.Resolve(ctx, backend, host)
			if err != nil {
				r.logger.WithBackend(backend).Info("credential resolution failed", "error", err)
				return nil
			}
			tokens[i] = token
			return nil
		})
	}
	_ = g.Wait()

	for i, backend := range config.Backends {
		if tokens[i] != "" {
			cfg.Tokens[backend] = tokens[i]
		}
	}
}
