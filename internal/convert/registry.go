package convert

import (
	"mapforge/internal/descriptor"
)

// Pair is the ordered (source, target) key of a registered conversion.
type Pair struct {
	From, To string
}

// Registry maps ordered type pairs to conversion providers. It is populated
// once by NewRegistry and read-only afterwards, so lookups are safe for
// concurrent callers.
type Registry struct {
	providers map[Pair]Provider
}

// NewRegistry builds a registry pre-loaded with the builtin conversions.
func NewRegistry() *Registry {
	r := &Registry{providers: make(map[Pair]Provider)}
	r.registerBuiltins()

	return r
}

// Register associates a provider with the ordered (source, target) pair.
// Later registrations for the same pair win; this only happens during
// registry construction.
func (r *Registry) Register(source, target *descriptor.Type, p Provider) {
	r.providers[Pair{From: source.Key(), To: target.Key()}] = p
}

// Lookup returns the provider for the ordered pair, if any. Matching is by
// exact descriptor equality after alias folding; container and user-defined
// types never match.
func (r *Registry) Lookup(source, target *descriptor.Type) (Provider, bool) {
	if source == nil || target == nil {
		return nil, false
	}

	if source.Kind != descriptor.ContainerNone || target.Kind != descriptor.ContainerNone {
		return nil, false
	}

	p, ok := r.providers[Pair{From: lookupKey(source), To: lookupKey(target)}]

	return p, ok
}

// lookupKey folds alias spellings (byte, rune) into the canonical key the
// builtins are registered under. Descriptors come from both session files
// and go/types, and both surfaces allow the alias names.
func lookupKey(t *descriptor.Type) string {
	if k := KindOf(t); k != 0 {
		return k.Descriptor().Key()
	}

	return t.Key()
}

// Len returns the number of registered pairs.
func (r *Registry) Len() int {
	return len(r.providers)
}
