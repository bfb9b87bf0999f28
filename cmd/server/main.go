// Package main implements the admin-api command: the HTTP server for the
// single administrator account and its database maintenance commands.
package main

import (
	"fmt"
	"os"
)

// Set via -ldflags at build time
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := newRootCmd(version, commit, date).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
