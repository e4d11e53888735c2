package diagnostic

import (
	"errors"
	"fmt"
	"strings"

	"mock-generator/internal/common"
)

// Stable diagnostic codes.
const (
	// CodeNameConflict is reported when one mock name is requested for two different targets.
	CodeNameConflict = "SI0107"
	// CodeUnresolvedTarget is reported when a candidate's target reference does not resolve.
	CodeUnresolvedTarget = "unresolved_target"
	// CodeInvalidDescriptor is reported when a candidate reaches a malformed descriptor.
	CodeInvalidDescriptor = "invalid_descriptor"
	// CodeUnmockableTarget is reported when a target has members a mock cannot implement.
	CodeUnmockableTarget = "unmockable_target"
	// CodeMockNamePostfix is reported for requested names not ending in "Mock".
	CodeMockNamePostfix = "mock_name_postfix"
	// CodeInvalidManifest is reported for manifest schema violations.
	CodeInvalidManifest = "invalid_manifest"
)

// Diagnostics holds all diagnostic information from a generation pass.
type Diagnostics struct {
	Errors   []Diagnostic
	Warnings []Diagnostic
	Infos    []Diagnostic
}

// Diagnostic represents a single diagnostic message.
type Diagnostic struct {
	// Severity of the diagnostic.
	Severity DiagnosticSeverity
	// Code is a unique identifier for this type of diagnostic.
	Code string
	// Message is the human-readable description.
	Message string
	// Mock is the requested full mock name this relates to (if any).
	Mock string
	// Member identifies which member or manifest path this relates to (if any).
	Member string
	// Suggestions are potential fixes or alternatives.
	Suggestions []string
}

// DiagnosticSeverity represents the severity level of a diagnostic.
type DiagnosticSeverity int

const (
	DiagnosticInfo DiagnosticSeverity = iota
	DiagnosticWarning
	DiagnosticError
)

// String returns a human-readable severity name.
func (s DiagnosticSeverity) String() string {
	switch s {
	case DiagnosticInfo:
		return "info"
	case DiagnosticWarning:
		return "warning"
	case DiagnosticError:
		return "error"
	default:
		return common.UnknownStr
	}
}

// AddError adds an error diagnostic.
func (d *Diagnostics) AddError(code, message, mock, member string, suggestions ...string) {
	d.Errors = append(d.Errors, Diagnostic{
		Severity:    DiagnosticError,
		Code:        code,
		Message:     message,
		Mock:        mock,
		Member:      member,
		Suggestions: suggestions,
	})
}

// AddWarning adds a warning diagnostic.
func (d *Diagnostics) AddWarning(code, message, mock, member string) {
	d.Warnings = append(d.Warnings, Diagnostic{
		Severity: DiagnosticWarning,
		Code:     code,
		Message:  message,
		Mock:     mock,
		Member:   member,
	})
}

// AddInfo adds an info diagnostic.
func (d *Diagnostics) AddInfo(code, message, mock, member string, suggestions ...string) {
	d.Infos = append(d.Infos, Diagnostic{
		Severity:    DiagnosticInfo,
		Code:        code,
		Message:     message,
		Mock:        mock,
		Member:      member,
		Suggestions: suggestions,
	})
}

// HasErrors returns true if there are any error diagnostics.
func (d *Diagnostics) HasErrors() bool {
	return len(d.Errors) > 0
}

// Merge merges another Diagnostics instance into this one.
func (d *Diagnostics) Merge(other Diagnostics) {
	d.Errors = append(d.Errors, other.Errors...)
	d.Warnings = append(d.Warnings, other.Warnings...)
	d.Infos = append(d.Infos, other.Infos...)
}

// IsValid returns true if there are no errors.
func (d *Diagnostics) IsValid() bool {
	return len(d.Errors) == 0
}

// Len returns the total number of diagnostics.
func (d *Diagnostics) Len() int {
	return len(d.Errors) + len(d.Warnings) + len(d.Infos)
}

// ByCode returns every diagnostic with the given code, errors first.
func (d *Diagnostics) ByCode(code string) []Diagnostic {
	var out []Diagnostic

	for _, bucket := range [][]Diagnostic{d.Errors, d.Warnings, d.Infos} {
		for _, diag := range bucket {
			if diag.Code == code {
				out = append(out, diag)
			}
		}
	}

	return out
}

// Error returns a combined error from all error diagnostics, or nil if valid.
func (d *Diagnostics) Error() error {
	if d.IsValid() {
		return nil
	}

	var parts []string
	for _, e := range d.Errors {
		parts = append(parts, e.String())
	}

	return errors.New(strings.Join(parts, "; "))
}

// String returns a formatted diagnostic string.
func (d Diagnostic) String() string {
	var prefix []string
	if d.Mock != "" {
		prefix = append(prefix, "["+d.Mock+"]")
	}

	if d.Member != "" {
		prefix = append(prefix, d.Member)
	}

	msg := d.Message
	if d.Code != "" {
		msg = fmt.Sprintf("[%s] %s", d.Code, msg)
	}

	if len(d.Suggestions) > 0 {
		msg += " (did you mean " + strings.Join(d.Suggestions, ", ") + "?)"
	}

	if len(prefix) > 0 {
		return strings.Join(prefix, " ") + ": " + msg
	}

	return msg
}
