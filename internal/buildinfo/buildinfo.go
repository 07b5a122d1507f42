// Package buildinfo carries version data injected at link time:
//
//	go build -ldflags "-X github.com/cpower013/quickjobs-site-1/internal/buildinfo.Version=v1.0.0 \
//	  -X github.com/cpower013/quickjobs-site-1/internal/buildinfo.Date=$(date -u +%Y-%m-%d) \
//	  -X github.com/cpower013/quickjobs-site-1/internal/buildinfo.Commit=$(git rev-parse --short HEAD)" \
//	  ./cmd/quickjobs
package buildinfo

import (
	"fmt"
	"io"
)

var (
	Version = "N/A"
	Date    = "N/A"
	Commit  = "N/A"
)

// PrintBuildData writes the build version, date and commit to w.
func PrintBuildData(w io.Writer) {
	fmt.Fprintf(w, "Build version: %s\n", Version)
	fmt.Fprintf(w, "Build date: %s\n", Date)
	fmt.Fprintf(w, "Build commit: %s\n", Commit)
}
