package config

import (
	"fmt"

	"mapforge/internal/descriptor"
)

// Build translates a method declaration into a method descriptor, resolving
// its type expressions through lookup.
func (d MethodDef) Build(lookup TypeLookup) (*descriptor.Method, error) {
	target, err := ParseTypeExpr(d.Target, lookup)
	if err != nil {
		return nil, fmt.Errorf("method %s: target: %w", d.Name, err)
	}

	m := &descriptor.Method{
		Name:       d.Name,
		Result:     target,
		Update:     d.Update,
		Qualifiers: d.Qualifiers,
		Callback:   callbackKind(d.Callback),
	}

	// Factories are zero-source construction methods.
	if !d.Factory {
		source, err := ParseTypeExpr(d.Source, lookup)
		if err != nil {
			return nil, fmt.Errorf("method %s: source: %w", d.Name, err)
		}

		m.Sources = []*descriptor.Type{source}
	}

	m.AddThrown(d.Errors...)

	return m, nil
}

func callbackKind(s string) descriptor.CallbackKind {
	switch s {
	case "before":
		return descriptor.CallbackBefore
	case "after":
		return descriptor.CallbackAfter
	default:
		return descriptor.CallbackNone
	}
}
