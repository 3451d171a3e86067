package reader

import (
	"errors"
	"fmt"
)

// ErrNotObjExtension is returned when a path does not carry the .obj
// suffix. The check happens before the file is opened and before any
// buffer is allocated.
var ErrNotObjExtension = errors.New("not a .obj file")

// MalformedLineError reports a line the decode pass could not parse.
// Decoding aborts on the first malformed line; the partially filled mesh
// returned alongside this error must be discarded, not used.
type MalformedLineError struct {
	// Line is the 1-based source line number.
	Line int

	// Text is the offending line as read from the file.
	Text string

	// Reason describes what failed to parse.
	Reason string
}

func (e *MalformedLineError) Error() string {
	return fmt.Sprintf("malformed line %d (%s): %q", e.Line, e.Reason, e.Text)
}

// DiagnosticKind identifies a non-fatal condition noticed while parsing.
type DiagnosticKind int

const (
	// DiagnosticUnrecognizedDirective marks a line whose prefix matches
	// no known directive. The line is skipped by both passes.
	DiagnosticUnrecognizedDirective DiagnosticKind = iota

	// DiagnosticDegenerateFace marks a face with fewer than 3 vertices.
	// The face is stored as provided.
	DiagnosticDegenerateFace
)

// Diagnostic is a non-fatal parse finding surfaced to the caller through
// the reader's diagnostic handler. It never aborts parsing; process-level
// handling is the caller's decision.
type Diagnostic struct {
	// Kind is the category of the finding.
	Kind DiagnosticKind

	// Line is the 1-based source line number.
	Line int

	// Text is the line that triggered the finding.
	Text string
}

func (d Diagnostic) String() string {
	switch d.Kind {
	case DiagnosticDegenerateFace:
		return fmt.Sprintf("degenerate face at line %d: %q", d.Line, d.Text)
	default:
		return fmt.Sprintf("unrecognized directive at line %d: %q", d.Line, d.Text)
	}
}
