package discover

import (
	"strings"

	"mapforge/internal/descriptor"
)

// World holds every discovered type descriptor, keyed by qualified name.
type World struct {
	types map[string]*descriptor.Type
}

// NewWorld creates an empty world.
func NewWorld() *World {
	return &World{types: make(map[string]*descriptor.Type)}
}

func (w *World) add(t *descriptor.Type) {
	if t == nil || t.Name == "" {
		return
	}

	w.types[t.QualifiedName()] = t
}

// Len returns the number of discovered types.
func (w *World) Len() int {
	return len(w.types)
}

// Lookup resolves a type reference string:
//   - "example.com/mod/store.Order" (fully qualified)
//   - "store.Order" (package alias)
//   - "Order" (bare name, first match wins)
func (w *World) Lookup(ref string) *descriptor.Type {
	if ref == "" {
		return nil
	}

	if t, ok := w.types[ref]; ok {
		return t
	}

	lastDot := strings.LastIndex(ref, ".")
	if lastDot < 0 {
		for _, t := range w.types {
			if t.Name == ref {
				return t
			}
		}

		return nil
	}

	pkg, name := ref[:lastDot], ref[lastDot+1:]

	for _, t := range w.types {
		if t.Name != name {
			continue
		}

		if t.PkgPath == pkg || strings.HasSuffix(t.PkgPath, "/"+pkg) {
			return t
		}
	}

	return nil
}
