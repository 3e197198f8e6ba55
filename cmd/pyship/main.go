package main

import (
	"fmt"
	"os"
)

// Build metadata injected at release time via ldflags.
var (
	buildVersion = "dev"
	buildCommit  = "unknown"
)

func main() {
	cmd := newRootCmd()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
