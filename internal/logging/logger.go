package logging

import (
	"os"

	clog "github.com/charmbracelet/log"
)

// Logger is the shared application logger. It writes to stderr so that
// command output on stdout stays clean.
var Logger = clog.NewWithOptions(os.Stderr, clog.Options{
	ReportTimestamp: true,
	Prefix:          "fluidmesh",
})

// SetVerbose switches between debug and info output.
func SetVerbose(v bool) {
	if v {
		Logger.SetLevel(clog.DebugLevel)
		return
	}
	Logger.SetLevel(clog.InfoLevel)
}
