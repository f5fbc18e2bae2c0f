package studyquiz

import "log"

// The engine stays quiet by default. Callers that want generation
// tracing (the CLI -verbose flag, the web server config) flip this on
// for the whole package.
var verbose bool

// SetVerbose toggles package-wide generation tracing.
func SetVerbose(on bool) {
	verbose = on
}

// VerboseLog writes through the standard logger only while tracing is
// on.
func VerboseLog(format string, v ...interface{}) {
	if verbose {
		log.Printf(format, v...)
	}
}
