// Copyright © 2024 The ELPS authors

// Package diagnostic renders lisp errors as annotated messages for lispy CLI
// output.  It does not depend on the lisp package; callers convert their
// errors into Diagnostic values.
package diagnostic

// Severity indicates the severity level of a diagnostic.
type Severity int

const (
	SeverityError Severity = iota
	SeverityNote
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityNote:
		return "note"
	default:
		return "unknown"
	}
}

// Span identifies a region of source code to highlight in the diagnostic.
type Span struct {
	File   string // source name; looked up in Renderer.Sources, then on disk
	Line   int    // 1-based line number
	Col    int    // 1-based start column
	EndCol int    // 1-based end column (0 = end of the token at Col)
	Label  string // text shown under the underline
}

// Diagnostic is a single error or note with optional source annotations.
//
// Code is the condition of a lisp error, rendered in the header as
// "error[code]".  Frames are the call stack frames active when the error
// occurred, innermost first.
type Diagnostic struct {
	Severity Severity
	Code     string
	Message  string
	Spans    []Span
	Notes    []string
	Frames   []string
}

// Errorf returns an error diagnostic with the given condition code.
func Errorf(code string, message string) Diagnostic {
	return Diagnostic{Severity: SeverityError, Code: code, Message: message}
}

// header returns the severity label, qualified by the code when present.
func (d Diagnostic) header() string {
	if d.Code == "" {
		return d.Severity.String()
	}
	return d.Severity.String() + "[" + d.Code + "]"
}
