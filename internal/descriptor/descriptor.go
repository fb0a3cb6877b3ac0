package descriptor

import (
	"strings"

	"mapforge/internal/common"
)

// ContainerKind classifies the shape of a type for element-wise mapping.
type ContainerKind int

const (
	ContainerNone ContainerKind = iota
	ContainerList
	ContainerSet
	ContainerArray
	ContainerMap
	ContainerIterable
)

// String returns a human-readable kind name.
func (k ContainerKind) String() string {
	switch k {
	case ContainerNone:
		return "none"
	case ContainerList:
		return "list"
	case ContainerSet:
		return "set"
	case ContainerArray:
		return "array"
	case ContainerMap:
		return "map"
	case ContainerIterable:
		return "iterable"
	default:
		return common.UnknownStr
	}
}

// IsCollection reports whether the kind holds a sequence of elements
// (everything except none and map).
func (k ContainerKind) IsCollection() bool {
	switch k {
	case ContainerList, ContainerSet, ContainerArray, ContainerIterable:
		return true
	default:
		return false
	}
}

// Type describes a type's identity for resolution purposes. Descriptors are
// produced once by type discovery (or by hand in tests) and treated as
// interned, immutable values for the lifetime of a resolution session.
type Type struct {
	// PkgPath is the import path of the declaring package; empty for builtins.
	PkgPath string
	// Name is the type name within its package, or the builtin name.
	Name string
	// Kind is the container classification.
	Kind ContainerKind
	// Params are the ordered type parameters (element for collections,
	// key and value for maps, declared arguments for generic named types).
	Params []TypeParam
	// Impl is the concrete substitute to instantiate when the type itself
	// is abstract (an interface); nil when the type is concrete.
	Impl *Type
}

// TypeParam is a single type parameter of a generic type.
type TypeParam struct {
	// Type is the parameter as written (a concrete argument, or the
	// parameter descriptor itself when still generic).
	Type *Type
	// Bound is the declared upper bound; nil when unbounded or concrete.
	Bound *Type
}

// TypeBound returns the most specific type usable for resolution: the
// declared bound when one exists, otherwise the parameter itself.
func (p TypeParam) TypeBound() *Type {
	if p.Bound != nil {
		return p.Bound
	}

	return p.Type
}

// QualifiedName returns "pkgpath.Name", or just the name for builtins.
func (t *Type) QualifiedName() string {
	if t.PkgPath == "" {
		return t.Name
	}

	return t.PkgPath + "." + t.Name
}

// Key returns the canonical identity string. Two descriptors are equal iff
// their keys are equal; this drives de-duplication in the candidate index
// and the forge queue.
func (t *Type) Key() string {
	if t == nil {
		return ""
	}

	return t.key(make(map[*Type]struct{}))
}

func (t *Type) key(seen map[*Type]struct{}) string {
	// A container type may directly contain itself; mark the back edge
	// instead of unfolding it forever.
	if _, ok := seen[t]; ok {
		return "^" + t.QualifiedName()
	}

	seen[t] = struct{}{}

	var sb strings.Builder

	sb.WriteString(t.Kind.String())
	sb.WriteByte(':')
	sb.WriteString(t.QualifiedName())

	if len(t.Params) > 0 {
		sb.WriteByte('[')

		for i, p := range t.Params {
			if i > 0 {
				sb.WriteByte(',')
			}

			sb.WriteString(p.TypeBound().key(seen))
		}

		sb.WriteByte(']')
	}

	delete(seen, t)

	return sb.String()
}

// Equal reports structural equality of qualified name and type parameters.
func (t *Type) Equal(other *Type) bool {
	if t == nil || other == nil {
		return t == other
	}

	return t.Key() == other.Key()
}

// AssignableFrom reports whether a value of source can be used where t is
// expected: exact structural equality, or a match through the implementation
// type substitute on either side.
func (t *Type) AssignableFrom(source *Type) bool {
	if t.Equal(source) {
		return true
	}

	if t.Impl != nil && t.Impl.Equal(source) {
		return true
	}

	if source.Impl != nil && t.Equal(source.Impl) {
		return true
	}

	return false
}

// Elem returns the element descriptor of a collection kind, or nil.
func (t *Type) Elem() *Type {
	if !t.Kind.IsCollection() || len(t.Params) == 0 {
		return nil
	}

	return t.Params[0].TypeBound()
}

// MapKey returns the key descriptor of a map kind, or nil.
func (t *Type) MapKey() *Type {
	if t.Kind != ContainerMap || len(t.Params) < 2 {
		return nil
	}

	return t.Params[0].TypeBound()
}

// MapValue returns the value descriptor of a map kind, or nil.
func (t *Type) MapValue() *Type {
	if t.Kind != ContainerMap || len(t.Params) < 2 {
		return nil
	}

	return t.Params[1].TypeBound()
}

// GoString renders the descriptor as Go source for the target type.
// Arrays are rendered as slices; mapping treats both element-wise.
// Named container types (type IDs []int) render by name, which also keeps
// rendering total for self-referential types.
func (t *Type) GoString() string {
	if t.Name != "" && t.Kind != ContainerNone && t.Kind != ContainerIterable {
		if t.PkgPath == "" {
			return t.Name
		}

		return common.PkgAlias(t.PkgPath) + "." + t.Name
	}

	switch t.Kind {
	case ContainerIterable:
		if t.Name != "" {
			return common.PkgAlias(t.PkgPath) + "." + t.Name + "[" + t.Elem().GoString() + "]"
		}

		return "[]" + t.Elem().GoString()
	case ContainerList, ContainerArray:
		return "[]" + t.Elem().GoString()
	case ContainerSet:
		return "map[" + t.Elem().GoString() + "]struct{}"
	case ContainerMap:
		return "map[" + t.MapKey().GoString() + "]" + t.MapValue().GoString()
	default:
		if t.PkgPath == "" {
			return t.Name
		}

		return common.PkgAlias(t.PkgPath) + "." + t.Name
	}
}

// DefaultValue returns the Go expression yielding the type's default value.
// Containers default to empty (not nil) instances, which is what the
// map-null-to-default policy requires.
func (t *Type) DefaultValue() string {
	switch t.Kind {
	case ContainerList, ContainerArray, ContainerSet, ContainerMap:
		return t.GoString() + "{}"
	case ContainerIterable:
		return "nil"
	}

	switch t.Name {
	case "string":
		return `""`
	case "bool":
		return "false"
	case "int", "int8", "int16", "int32", "int64",
		"uint", "uint8", "uint16", "uint32", "uint64",
		"float32", "float64", "byte", "rune":
		return "0"
	}

	return t.GoString() + "{}"
}
