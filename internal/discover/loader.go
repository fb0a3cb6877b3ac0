// Package discover loads Go packages and translates their exported types
// into resolution descriptors. It runs once before resolution starts; the
// resulting world is immutable for the session.
package discover

import (
	"fmt"
	"go/types"

	"golang.org/x/tools/go/packages"

	"mapforge/internal/descriptor"
)

// LoadMode specifies what information to load from packages.
const LoadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedTypes |
	packages.NeedTypesInfo |
	packages.NeedImports

// Loader loads Go packages and builds descriptor worlds.
type Loader struct {
	world *World
	cache map[types.Type]*descriptor.Type
}

// NewLoader creates a new Loader.
func NewLoader() *Loader {
	return &Loader{
		world: NewWorld(),
		cache: make(map[types.Type]*descriptor.Type),
	}
}

// Load loads the given Go package patterns and converts every exported
// named type to a descriptor.
func (l *Loader) Load(patterns ...string) (*World, error) {
	cfg := &packages.Config{Mode: LoadMode}

	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, fmt.Errorf("failed to load packages: %w", err)
	}

	var errs []error

	for _, pkg := range pkgs {
		for _, e := range pkg.Errors {
			errs = append(errs, e)
		}
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("package errors: %v", errs)
	}

	for _, pkg := range pkgs {
		l.processPackage(pkg)
	}

	return l.world, nil
}

func (l *Loader) processPackage(pkg *packages.Package) {
	scope := pkg.Types.Scope()
	for _, name := range scope.Names() {
		obj := scope.Lookup(name)

		typeName, ok := obj.(*types.TypeName)
		if !ok || !typeName.Exported() {
			continue
		}

		l.world.add(l.translate(typeName.Type()))
	}
}

// translate converts a go/types.Type into a descriptor. Results are cached
// by identity to keep translation of recursive types terminating.
func (l *Loader) translate(t types.Type) *descriptor.Type {
	if cached, ok := l.cache[t]; ok {
		return cached
	}

	d := &descriptor.Type{}
	// pre-cache so self-referential types close over the same descriptor
	l.cache[t] = d

	switch tt := t.(type) {
	case *types.Basic:
		d.Name = tt.Name()

	case *types.Named:
		l.translateNamed(tt, d)

	case *types.Alias:
		*d = *l.translate(types.Unalias(tt))

	case *types.Slice:
		d.Kind = descriptor.ContainerList
		d.Params = []descriptor.TypeParam{{Type: l.translate(tt.Elem())}}

	case *types.Array:
		d.Kind = descriptor.ContainerArray
		d.Params = []descriptor.TypeParam{{Type: l.translate(tt.Elem())}}

	case *types.Map:
		d.Kind = descriptor.ContainerMap
		d.Params = []descriptor.TypeParam{
			{Type: l.translate(tt.Key())},
			{Type: l.translate(tt.Elem())},
		}

	case *types.Pointer:
		// Pointers are stepped through: the mapping engine resolves the
		// pointee and leaves nil handling to the caller's null policy.
		*d = *l.translate(tt.Elem())

	case *types.TypeParam:
		d.Name = tt.Obj().Name()

		if bound := tt.Constraint(); bound != nil {
			if under, ok := bound.Underlying().(*types.Interface); ok && under.NumEmbeddeds() == 1 {
				d.Impl = l.translate(under.EmbeddedType(0))
			}
		}

	default:
		d.Name = t.String()
	}

	return d
}

func (l *Loader) translateNamed(named *types.Named, d *descriptor.Type) {
	obj := named.Obj()
	if obj.Pkg() != nil {
		d.PkgPath = obj.Pkg().Path()
	}

	d.Name = obj.Name()

	// iter.Seq[E] is the canonical iterable form
	if d.PkgPath == "iter" && (d.Name == "Seq" || d.Name == "Seq2") {
		d.Kind = descriptor.ContainerIterable
	}

	if args := named.TypeArgs(); args != nil {
		for i := 0; i < args.Len(); i++ {
			d.Params = append(d.Params, descriptor.TypeParam{Type: l.translate(args.At(i))})
		}
	}

	switch ut := named.Underlying().(type) {
	case *types.Slice:
		d.Kind = descriptor.ContainerList

		if len(d.Params) == 0 {
			d.Params = []descriptor.TypeParam{{Type: l.translate(ut.Elem())}}
		}

	case *types.Array:
		d.Kind = descriptor.ContainerArray

		if len(d.Params) == 0 {
			d.Params = []descriptor.TypeParam{{Type: l.translate(ut.Elem())}}
		}

	case *types.Map:
		d.Kind = descriptor.ContainerMap

		if len(d.Params) == 0 {
			d.Params = []descriptor.TypeParam{
				{Type: l.translate(ut.Key())},
				{Type: l.translate(ut.Elem())},
			}
		}
	}
}
