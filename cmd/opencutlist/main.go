// OpenCutList packs rectangular parts onto sheet and board stock with
// guillotine cuts and exports the layouts.
//
// Build:
//
//	go build -o opencutlist ./cmd/opencutlist
//
// Version information is injected with ldflags:
//
//	go build -ldflags "-X main.version=1.0.0 -X main.commit=$(git rev-parse --short HEAD)" ./cmd/opencutlist
package main

import (
	"github.com/piwi3910/OpenCutList/internal/cli"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	cli.Version = version
	cli.Commit = commit
	cli.Date = date

	cli.Execute(cli.NewRootCommand())
}
