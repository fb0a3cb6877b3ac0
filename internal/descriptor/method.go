package descriptor

import (
	"sort"
	"strings"

	"mapforge/internal/common"
)

// CallbackKind marks a declared method as a lifecycle callback.
type CallbackKind int

const (
	CallbackNone CallbackKind = iota
	CallbackBefore
	CallbackAfter
)

// String returns a human-readable callback kind name.
func (k CallbackKind) String() string {
	switch k {
	case CallbackNone:
		return "none"
	case CallbackBefore:
		return "before"
	case CallbackAfter:
		return "after"
	default:
		return common.UnknownStr
	}
}

// Method describes a mapping method signature. Declared methods exist from the
// start of a resolution session; forged ones are created by the resolver and
// registered immediately so later lookups find them.
type Method struct {
	// Name is the method name in generated or declared source.
	Name string
	// Sources are the input parameter types, in order.
	Sources []*Type
	// Result is the output type.
	Result *Type
	// Update is true when the method mutates an existing target value
	// instead of constructing a fresh one.
	Update bool
	// Forged is true when the method was synthesized by the resolver.
	Forged bool
	// Qualifiers are selection tags narrowing candidate lookup.
	Qualifiers []string
	// Callback marks lifecycle callback methods; they never participate in
	// candidate selection.
	Callback CallbackKind

	// thrown is the set of error kinds the method body can raise.
	thrown map[string]struct{}
}

// Source returns the first (primary) source type, or nil.
func (m *Method) Source() *Type {
	s, ok := common.First(m.Sources)
	if !ok {
		return nil
	}

	return s
}

// SignatureKey returns the name-independent identity of the signature:
// source types, result type, and update flag. Registration de-duplicates on
// this key.
func (m *Method) SignatureKey() string {
	var sb strings.Builder

	for i, s := range m.Sources {
		if i > 0 {
			sb.WriteByte(',')
		}

		sb.WriteString(s.Key())
	}

	sb.WriteString("->")
	sb.WriteString(m.Result.Key())

	if m.Update {
		sb.WriteString("!update")
	}

	return sb.String()
}

// HasQualifier reports whether the method carries the given qualifier tag.
func (m *Method) HasQualifier(tag string) bool {
	for _, q := range m.Qualifiers {
		if q == tag {
			return true
		}
	}

	return false
}

// AddThrown unions error kinds into the method's thrown set. Used while a
// forged method is in progress to aggregate callee error kinds.
func (m *Method) AddThrown(kinds ...string) {
	if m.thrown == nil {
		m.thrown = make(map[string]struct{})
	}

	for _, k := range kinds {
		m.thrown[k] = struct{}{}
	}
}

// Thrown returns the sorted set of error kinds the method can raise.
func (m *Method) Thrown() []string {
	if len(m.thrown) == 0 {
		return nil
	}

	kinds := make([]string, 0, len(m.thrown))
	for k := range m.thrown {
		kinds = append(kinds, k)
	}

	sort.Strings(kinds)

	return kinds
}
