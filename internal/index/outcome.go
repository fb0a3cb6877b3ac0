package index

import (
	"mapforge/internal/common"
	"mapforge/internal/descriptor"
)

// OutcomeKind tags the result of a candidate lookup.
type OutcomeKind int

const (
	// NoMatch - no candidate method fits the type pair.
	NoMatch OutcomeKind = iota
	// Unique - exactly one candidate won.
	Unique
	// Ambiguous - several equally-qualified candidates remain.
	Ambiguous
)

// String returns a human-readable outcome name.
func (k OutcomeKind) String() string {
	switch k {
	case NoMatch:
		return "no_match"
	case Unique:
		return "unique"
	case Ambiguous:
		return "ambiguous"
	default:
		return common.UnknownStr
	}
}

// Outcome is the result of a candidate lookup.
type Outcome struct {
	Kind OutcomeKind
	// Method is set for Unique outcomes.
	Method *descriptor.Method
	// Candidates lists the competing methods for Ambiguous outcomes.
	Candidates []*descriptor.Method
}

// CandidateNames returns the names of the competing methods, for diagnostics.
func (o Outcome) CandidateNames() []string {
	names := make([]string, 0, len(o.Candidates))
	for _, m := range o.Candidates {
		names = append(names, m.Name)
	}

	return names
}
