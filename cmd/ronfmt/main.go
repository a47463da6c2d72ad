// Command ronfmt formats RON documents.
package main

import (
	"os"

	"github.com/KimNorgaard/go-ronfmt/internal/cli"
)

// Set via -ldflags at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	cli.SetVersion(version, commit, date)
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
