package resolve

import (
	"mapforge/internal/common"
	"mapforge/internal/descriptor"
)

// NullStrategy selects what a null (nil) source value resolves to.
type NullStrategy int

const (
	// NullPropagate leaves the null decision to the caller's wrapping
	// nil check; the assignment itself is unaffected.
	NullPropagate NullStrategy = iota
	// NullMapToDefault resolves a nil source to the target type's default
	// value. Read once per container/method build and baked into the
	// result, not re-evaluated per element.
	NullMapToDefault
)

// String returns a human-readable strategy name.
func (s NullStrategy) String() string {
	switch s {
	case NullPropagate:
		return "propagate"
	case NullMapToDefault:
		return "map_to_default"
	default:
		return common.UnknownStr
	}
}

// Context is the read-only per-call configuration bundle of a resolution.
// It is never mutated during resolution; nested resolutions receive a fresh,
// narrowed copy.
type Context struct {
	// Qualifiers are selection tags narrowing candidate methods.
	Qualifiers []string
	// TargetProperty is the target property name used for the
	// name-similarity tie-break; empty when not mapping a property.
	TargetProperty string
	// Null is the null-value strategy in effect.
	Null NullStrategy
	// Format is an optional date/number pattern for conversions.
	Format string
	// Enclosing is the method whose body is being resolved, for thrown-error
	// aggregation and name-collision avoidance.
	Enclosing *descriptor.Method
}

// ForElement narrows the context for a nested element/key/value resolution:
// qualifiers and the property name do not propagate into elements, the null
// strategy and formatting hints do.
func (c Context) ForElement(enclosing *descriptor.Method) Context {
	return Context{
		Null:      c.Null,
		Format:    c.Format,
		Enclosing: enclosing,
	}
}
