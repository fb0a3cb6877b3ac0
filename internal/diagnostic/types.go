package diagnostic

import (
	"errors"
	"fmt"
	"strings"

	"mapforge/internal/common"
)

// Diagnostic codes emitted by the resolver.
const (
	CodeNoConversionPath   = "no_conversion_path"
	CodeAmbiguousMethod    = "ambiguous_method"
	CodeUnresolvedElement  = "unresolved_container_element"
	CodeCyclicForgeAttempt = "cyclic_forge_attempt"
)

// Diagnostics holds all diagnostic information from a resolution session.
type Diagnostics struct {
	Errors   []Diagnostic
	Warnings []Diagnostic
	Infos    []Diagnostic
}

// Diagnostic represents a single diagnostic message.
type Diagnostic struct {
	// Severity of the diagnostic.
	Severity Severity
	// Code is a unique identifier for this kind of diagnostic.
	Code string
	// Message is the human-readable description.
	Message string
	// Pair identifies the source->target type pair this relates to (if any).
	Pair string
	// Property identifies the target property this relates to (if any).
	Property string
	// Candidates names the competing methods for ambiguity reports.
	Candidates []string
}

// Severity represents the severity level of a diagnostic.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
)

// String returns a human-readable severity name.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return common.UnknownStr
	}
}

// AddError adds an error diagnostic.
func (d *Diagnostics) AddError(code, message, pair, property string) {
	d.Errors = append(d.Errors, Diagnostic{
		Severity: SeverityError,
		Code:     code,
		Message:  message,
		Pair:     pair,
		Property: property,
	})
}

// AddAmbiguity adds an error diagnostic naming all competing candidates.
func (d *Diagnostics) AddAmbiguity(message, pair, property string, candidates []string) {
	d.Errors = append(d.Errors, Diagnostic{
		Severity:   SeverityError,
		Code:       CodeAmbiguousMethod,
		Message:    message,
		Pair:       pair,
		Property:   property,
		Candidates: candidates,
	})
}

// AddWarning adds a warning diagnostic.
func (d *Diagnostics) AddWarning(code, message, pair, property string) {
	d.Warnings = append(d.Warnings, Diagnostic{
		Severity: SeverityWarning,
		Code:     code,
		Message:  message,
		Pair:     pair,
		Property: property,
	})
}

// AddInfo adds an info diagnostic.
func (d *Diagnostics) AddInfo(code, message, pair, property string) {
	d.Infos = append(d.Infos, Diagnostic{
		Severity: SeverityInfo,
		Code:     code,
		Message:  message,
		Pair:     pair,
		Property: property,
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

// Error returns a combined error from all error diagnostics, or nil if clean.
func (d *Diagnostics) Error() error {
	if !d.HasErrors() {
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
	if d.Pair != "" {
		prefix = append(prefix, "["+d.Pair+"]")
	}

	if d.Property != "" {
		prefix = append(prefix, d.Property)
	}

	msg := d.Message
	if d.Code != "" {
		msg = fmt.Sprintf("[%s] %s", d.Code, msg)
	}

	if len(d.Candidates) > 0 {
		msg += " (candidates: " + strings.Join(d.Candidates, ", ") + ")"
	}

	if len(prefix) > 0 {
		return strings.Join(prefix, " ") + ": " + msg
	}

	return msg
}
