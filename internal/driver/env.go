package driver

import (
	"os"
	"strings"
)

// LogLevel returns the driver verbosity requested via N2T_LOG_LEVEL
// ("quiet", "info", or "debug"), defaulting to "info" when the variable is
// unset or holds an unrecognized value.
func LogLevel() string {
	switch strings.ToLower(os.Getenv("N2T_LOG_LEVEL")) {
	case "quiet":
		return "quiet"
	case "debug":
		return "debug"
	default:
		return "info"
	}
}

// TraceEnabled reports whether N2T_TRACE requests a per-instruction trace
// of compiled output, mirroring the -trace flag each driver also accepts.
func TraceEnabled() bool {
	switch strings.ToLower(os.Getenv("N2T_TRACE")) {
	case "1", "true", "yes":
		return true
	default:
		return false
	}
}
