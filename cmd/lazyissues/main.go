package main

import (
	"fmt"
	"os"

	"github.com/hugo-lorenzo-mato/lazyissues/cmd/lazyissues/cmd"
)

// Version information - set by goreleaser at build time
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	cmd.SetVersion(version, commit, date)

	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "lazyissues:", err)
		os.Exit(1)
	}
}
