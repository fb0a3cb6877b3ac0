// Package index holds the candidate method index: declared and forged
// mapping methods, queryable by (source, target) type pair with qualifier
// and name-similarity disambiguation.
package index

import (
	"fmt"

	"mapforge/internal/common"
	"mapforge/internal/descriptor"
	"mapforge/internal/match"
)

// Query narrows a candidate lookup.
type Query struct {
	// Qualifiers filters candidates to methods tagged with a matching
	// qualifier; an exactly-one survivor wins outright.
	Qualifiers []string
	// TargetProperty is the property name used for the name-similarity
	// tie-break among remaining candidates.
	TargetProperty string
	// Exclude drops one specific method from consideration; used so a
	// method body never resolves to a call to the method being built.
	Exclude *descriptor.Method
}

// Index is the candidate method registry for one resolution session.
// Type discovery populates it with declared methods; the resolver extends
// it with forged ones. It is not safe for concurrent mutation.
type Index struct {
	methods []*descriptor.Method
	bySig   map[string]*descriptor.Method
	names   map[string]int
	scorer  match.Scorer
}

// New creates an empty index using the default name-similarity scorer.
func New() *Index {
	return NewWithScorer(match.Score)
}

// NewWithScorer creates an empty index with a custom tie-break scorer.
func NewWithScorer(scorer match.Scorer) *Index {
	return &Index{
		bySig:  make(map[string]*descriptor.Method),
		names:  make(map[string]int),
		scorer: scorer,
	}
}

// Register inserts a method. For forged methods insertion is idempotent by
// signature: when an identical forged signature is already present, the
// existing descriptor is returned and the argument is discarded. This is the
// de-duplication guarantee forging relies on. Declared methods always insert;
// same-signature duplicates among them surface later as ambiguity.
func (ix *Index) Register(m *descriptor.Method) *descriptor.Method {
	sig := m.SignatureKey()
	if existing, ok := ix.bySig[sig]; ok {
		if existing.Forged && m.Forged {
			return existing
		}
	} else {
		ix.bySig[sig] = m
	}

	ix.methods = append(ix.methods, m)
	ix.names[m.Name]++

	return m
}

// Registered reports whether an identical signature is already present.
func (ix *Index) Registered(m *descriptor.Method) bool {
	_, ok := ix.bySig[m.SignatureKey()]

	return ok
}

// Methods returns all registered methods in registration order.
func (ix *Index) Methods() []*descriptor.Method {
	return ix.methods
}

// UniqueName returns base, or base with a numeric suffix when the name is
// already taken by another registered method.
func (ix *Index) UniqueName(base string) string {
	if ix.names[base] == 0 {
		return base
	}

	for i := 2; ; i++ {
		name := fmt.Sprintf("%s%d", base, i)
		if ix.names[name] == 0 {
			return name
		}
	}
}

// Find looks up candidate methods mapping source to target.
//
// Matching order: assignability filter, qualifier filter (an exactly-one
// qualified survivor wins outright), then a name-similarity tie-break
// against the query's target property. Anything still tied is Ambiguous.
func (ix *Index) Find(source, target *descriptor.Type, q Query) Outcome {
	var candidates []*descriptor.Method

	for _, m := range ix.methods {
		if !eligible(m) || m == q.Exclude {
			continue
		}

		if m.Source().AssignableFrom(source) && target.AssignableFrom(m.Result) {
			candidates = append(candidates, m)
		}
	}

	if len(q.Qualifiers) > 0 {
		qualified := filterQualified(candidates, q.Qualifiers)

		switch {
		case common.IsSingle(qualified):
			return Outcome{Kind: Unique, Method: qualified[0]}
		case common.IsEmpty(qualified):
			// no qualified survivor: fall back to the full candidate set
		default:
			candidates = qualified
		}
	}

	switch {
	case common.IsEmpty(candidates):
		return Outcome{Kind: NoMatch}
	case common.IsSingle(candidates):
		return Outcome{Kind: Unique, Method: candidates[0]}
	}

	if q.TargetProperty != "" {
		names := make([]string, len(candidates))
		for i, m := range candidates {
			names[i] = m.Name
		}

		if best := match.BestUnique(names, q.TargetProperty, ix.scorer); best >= 0 {
			return Outcome{Kind: Unique, Method: candidates[best]}
		}
	}

	return Outcome{Kind: Ambiguous, Candidates: candidates}
}

// FindFactory returns a zero-source construction method for the exact result
// type, or nil. Factories supply the construction expression when a fresh
// instance of an abstract or specially-constructed type is required.
func (ix *Index) FindFactory(result *descriptor.Type) *descriptor.Method {
	for _, m := range ix.methods {
		if m.Callback != descriptor.CallbackNone || len(m.Sources) > 0 {
			continue
		}

		if m.Result.Equal(result) {
			return m
		}
	}

	return nil
}

// Callbacks returns the lifecycle callback methods of the given kind that
// apply to a method mapping source to result: the callback's parameter must
// match the source or result type, or the callback takes no parameters.
func (ix *Index) Callbacks(kind descriptor.CallbackKind, source, result *descriptor.Type) []*descriptor.Method {
	var out []*descriptor.Method

	for _, m := range ix.methods {
		if m.Callback != kind {
			continue
		}

		if common.IsEmpty(m.Sources) {
			out = append(out, m)

			continue
		}

		param := m.Source()
		if param.AssignableFrom(source) || param.AssignableFrom(result) {
			out = append(out, m)
		}
	}

	return out
}

// eligible filters methods that can serve as a mapping candidate: single
// source parameter, not a factory, not a lifecycle callback, not an
// update-style method.
func eligible(m *descriptor.Method) bool {
	return common.IsSingle(m.Sources) &&
		m.Result != nil &&
		!m.Update &&
		m.Callback == descriptor.CallbackNone
}

func filterQualified(candidates []*descriptor.Method, qualifiers []string) []*descriptor.Method {
	var out []*descriptor.Method

	for _, m := range candidates {
		for _, q := range qualifiers {
			if m.HasQualifier(q) {
				out = append(out, m)

				break
			}
		}
	}

	return out
}
