package system

import (
	"io"
	"os"

	clog "github.com/charmbracelet/log"
)

// Logger is the shared application logger for diagnostics.
// It writes to stderr so command output on stdout stays clean.
var Logger = clog.NewWithOptions(os.Stderr, clog.Options{
	ReportTimestamp: false,
	Prefix:          "venicesync",
})

// SetOutput redirects the shared logger, mainly for tests.
func SetOutput(w io.Writer) {
	Logger.SetOutput(w)
}

// SetVerbose toggles debug-level logging.
func SetVerbose(verbose bool) {
	if verbose {
		Logger.SetLevel(clog.DebugLevel)
		return
	}
	Logger.SetLevel(clog.InfoLevel)
}
