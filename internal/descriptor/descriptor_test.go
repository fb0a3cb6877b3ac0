package descriptor

import (
	"testing"
)

func TestKeyDistinguishesShapes(t *testing.T) {
	intT := Builtin("int")

	cases := []struct {
		name string
		a, b *Type
	}{
		{"builtin vs named", intT, Named("example.com/pkg", "int")},
		{"list vs set", List(intT), Set(intT)},
		{"list vs array", List(intT), Array(intT)},
		{"element types", List(intT), List(Builtin("string"))},
		{"map key/value order", Map(intT, Builtin("string")), Map(Builtin("string"), intT)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if tc.a.Key() == tc.b.Key() {
				t.Errorf("keys collide: %q", tc.a.Key())
			}
		})
	}
}

func TestEqualIsStructural(t *testing.T) {
	a := Map(Builtin("string"), List(Builtin("int")))
	b := Map(Builtin("string"), List(Builtin("int")))

	if !a.Equal(b) {
		t.Errorf("structurally identical maps not equal: %q vs %q", a.Key(), b.Key())
	}

	if a.Equal(Map(Builtin("string"), Set(Builtin("int")))) {
		t.Error("map over list equals map over set")
	}
}

func TestAssignableFrom(t *testing.T) {
	concrete := Named("example.com/pkg", "ArrayList")
	iface := &Type{PkgPath: "example.com/pkg", Name: "Collection", Impl: concrete}

	if !iface.AssignableFrom(concrete) {
		t.Error("interface not assignable from its implementation type")
	}

	if !iface.AssignableFrom(iface) {
		t.Error("type not assignable from itself")
	}

	if concrete.AssignableFrom(Builtin("int")) {
		t.Error("unrelated types assignable")
	}
}

func TestKeyTerminatesOnSelfReference(t *testing.T) {
	// A named container type whose element is the type itself.
	rec := Named("example.com/pkg", "Tree")
	rec.Kind = ContainerList
	rec.Params = []TypeParam{{Type: rec}}

	key := rec.Key()
	if key == "" {
		t.Fatal("empty key for self-referential type")
	}

	// Same structure, same key.
	if key != rec.Key() {
		t.Error("key not stable for self-referential type")
	}
}

func TestGoString(t *testing.T) {
	cases := []struct {
		name string
		typ  *Type
		want string
	}{
		{"builtin", Builtin("int"), "int"},
		{"named", Named("example.com/store", "Order"), "store.Order"},
		{"list", List(Builtin("string")), "[]string"},
		{"array renders as slice", Array(Builtin("int")), "[]int"},
		{"set", Set(Builtin("string")), "map[string]struct{}"},
		{"map", Map(Builtin("string"), Builtin("int")), "map[string]int"},
		{"anonymous iterable", Iterable(Builtin("int")), "[]int"},
		{"nested", Map(Builtin("string"), List(Named("example.com/store", "Order"))), "map[string][]store.Order"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.typ.GoString(); got != tc.want {
				t.Errorf("GoString() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestNamedIterableGoString(t *testing.T) {
	seq := &Type{
		PkgPath: "iter",
		Name:    "Seq",
		Kind:    ContainerIterable,
		Params:  []TypeParam{{Type: Builtin("int")}},
	}

	if got := seq.GoString(); got != "iter.Seq[int]" {
		t.Errorf("GoString() = %q, want %q", got, "iter.Seq[int]")
	}
}

func TestDefaultValue(t *testing.T) {
	cases := []struct {
		name string
		typ  *Type
		want string
	}{
		{"string", Builtin("string"), `""`},
		{"int", Builtin("int"), "0"},
		{"bool", Builtin("bool"), "false"},
		{"list", List(Builtin("int")), "[]int{}"},
		{"map", Map(Builtin("string"), Builtin("int")), "map[string]int{}"},
		{"named", Named("time", "Time"), "time.Time{}"},
		{"iterable", &Type{PkgPath: "iter", Name: "Seq", Kind: ContainerIterable, Params: []TypeParam{{Type: Builtin("int")}}}, "nil"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.typ.DefaultValue(); got != tc.want {
				t.Errorf("DefaultValue() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestElemAndMapAccessors(t *testing.T) {
	elem := Builtin("int")
	lst := List(elem)

	if lst.Elem() != elem {
		t.Error("Elem() did not return the element type")
	}

	m := Map(Builtin("string"), elem)
	if m.MapKey().Name != "string" || m.MapValue() != elem {
		t.Error("map accessors returned wrong types")
	}
}

func TestTypeParamBound(t *testing.T) {
	bound := Named("example.com/pkg", "Number")
	p := TypeParam{Type: Builtin("T"), Bound: bound}

	if p.TypeBound() != bound {
		t.Error("TypeBound() ignored the declared bound")
	}

	q := TypeParam{Type: Builtin("int")}
	if q.TypeBound().Name != "int" {
		t.Error("TypeBound() without bound should return the parameter type")
	}
}
