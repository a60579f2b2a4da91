package scene

import (
	"errors"
	"fmt"
	"strings"
)

var (
	errParamMismatch = errors.New("param mismatch")

	// ErrInvalidTransform is returned for a transform list which
	// must be discarded as a whole.
	ErrInvalidTransform = errors.New("invalid transform list")
	// ErrInvalidLength is returned when no number can be read from a length.
	ErrInvalidLength = errors.New("invalid length")
	// ErrUnknownUnit is a soft error: the numeric part is still usable.
	ErrUnknownUnit = errors.New("unknown unit")
	// ErrDegenerateViewBox is returned when fitting an empty content rectangle.
	ErrDegenerateViewBox = errors.New("degenerate viewBox")
	// ErrPatternDepth is returned when nested patterns exceed the configured depth.
	ErrPatternDepth = errors.New("pattern nesting too deep")
)

// ErrorMode is the for setting how the builder reports
// the soft failures encountered while resolving a document.
type ErrorMode uint8

const (
	// IgnoreErrorMode only collects diagnostics.
	IgnoreErrorMode ErrorMode = iota
	// WarnErrorMode also logs each diagnostic.
	WarnErrorMode
	// StrictErrorMode makes Build return a non nil error
	// (along with the usable document) when a diagnostic was recorded.
	StrictErrorMode
)

func (m ErrorMode) String() string {
	switch m {
	case IgnoreErrorMode:
		return "ignore"
	case WarnErrorMode:
		return "warn"
	case StrictErrorMode:
		return "strict"
	default:
		return "<unknown ErrorMode>"
	}
}

// Diagnostic records a non fatal failure, located
// by the path of the offending element in the document.
type Diagnostic struct {
	Path    string // like /svg/g[1]/rect#id
	Message string
}

func (d Diagnostic) Error() string { return d.Path + ": " + d.Message }

// Diagnostics is an ordered list of soft failures.
type Diagnostics []Diagnostic

// Err returns nil for an empty list, or all the diagnostics joined.
func (ds Diagnostics) Err() error {
	if len(ds) == 0 {
		return nil
	}
	errs := make([]error, len(ds))
	for i, d := range ds {
		errs[i] = d
	}
	return errors.Join(errs...)
}

func (ds Diagnostics) String() string {
	lines := make([]string, len(ds))
	for i, d := range ds {
		lines[i] = d.Error()
	}
	return strings.Join(lines, "\n")
}

// diagnosticf is a shortcut to build a Diagnostic.
func diagnosticf(path string, format string, args ...interface{}) Diagnostic {
	return Diagnostic{Path: path, Message: fmt.Sprintf(format, args...)}
}
