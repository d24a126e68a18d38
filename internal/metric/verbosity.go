package metric

import (
	"fmt"
	"strings"
	"sync/atomic"
)

// Verbosity is the ordered importance level of a metric. Exporters drop
// metrics whose verbosity is above their configured threshold.
type Verbosity int32

const (
	VerbosityProd Verbosity = iota
	VerbosityInfo
	VerbosityDebug
)

var defaultVerbosity atomic.Int32

func init() {
	defaultVerbosity.Store(int32(VerbosityInfo))
}

// SetDefaultVerbosity sets the verbosity assigned to metrics constructed
// afterwards without WithVerbosity. Metrics that already exist keep theirs.
//
// The store is atomic: a call happens-before any construction that observes
// the new level.
func SetDefaultVerbosity(v Verbosity) {
	defaultVerbosity.Store(int32(v))
}

// DefaultVerbosity returns the current process-wide default.
func DefaultVerbosity() Verbosity {
	return Verbosity(defaultVerbosity.Load())
}

// String returns the lowercase level name.
func (v Verbosity) String() string {
	switch v {
	case VerbosityProd:
		return "prod"
	case VerbosityInfo:
		return "info"
	case VerbosityDebug:
		return "debug"
	default:
		return fmt.Sprintf("verbosity(%d)", int32(v))
	}
}

// ParseVerbosity parses a level name, case-insensitively.
func ParseVerbosity(s string) (Verbosity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "prod":
		return VerbosityProd, nil
	case "info":
		return VerbosityInfo, nil
	case "debug":
		return VerbosityDebug, nil
	default:
		return 0, fmt.Errorf("unknown verbosity %q (must be prod, info, or debug)", s)
	}
}
