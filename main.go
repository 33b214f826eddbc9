package main

import (
	"os"

	"venicesync/cmd"
	"venicesync/internal/system"
)

// Set via -ldflags at release time
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	cmd.SetVersionInfo(version, commit, date)

	if err := cmd.Execute(); err != nil {
		system.Logger.Error(err.Error())
		os.Exit(1)
	}
}
