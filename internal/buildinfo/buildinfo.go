// Package buildinfo carries version data injected at link time:
//
//	go build -ldflags "-X github.com/dmitrijs2005/useray/internal/buildinfo.Version=0.2.0"
package buildinfo

import (
	"fmt"
	"io"
)

var (
	Version   = "0.1"
	BuildDate = "N/A"
	Commit    = "N/A"
)

// PrintBuildData writes the version banner to w.
func PrintBuildData(w io.Writer) {
	fmt.Fprintf(w, "useray version: %s\n", Version)
	fmt.Fprintf(w, "Build date: %s\n", BuildDate)
	fmt.Fprintf(w, "Build commit: %s\n", Commit)
}
