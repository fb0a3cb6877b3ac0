package index

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mapforge/internal/descriptor"
)

func method(name string, source, result *descriptor.Type) *descriptor.Method {
	return &descriptor.Method{
		Name:    name,
		Sources: []*descriptor.Type{source},
		Result:  result,
	}
}

func TestRegisterForgedIsIdempotentBySignature(t *testing.T) {
	ix := New()

	a := method("intListToStringList", descriptor.List(descriptor.Builtin("int")), descriptor.List(descriptor.Builtin("string")))
	a.Forged = true
	b := method("intListToStringList2", descriptor.List(descriptor.Builtin("int")), descriptor.List(descriptor.Builtin("string")))
	b.Forged = true

	assert.Same(t, a, ix.Register(a))
	assert.Same(t, a, ix.Register(b), "identical forged signature returns the existing descriptor")
	assert.Len(t, ix.Methods(), 1)
}

func TestRegisterDeclaredDuplicatesCoexist(t *testing.T) {
	ix := New()

	a := method("format", descriptor.Builtin("int"), descriptor.Builtin("string"))
	b := method("pretty", descriptor.Builtin("int"), descriptor.Builtin("string"))
	b.Qualifiers = []string{"pretty"}

	assert.Same(t, a, ix.Register(a))
	assert.Same(t, b, ix.Register(b), "declared methods with equal signatures both stay registered")
	assert.Len(t, ix.Methods(), 2)
}

func TestRegisterKeepsDistinctSignatures(t *testing.T) {
	ix := New()

	ix.Register(method("a", descriptor.Builtin("int"), descriptor.Builtin("string")))
	ix.Register(method("b", descriptor.Builtin("int64"), descriptor.Builtin("string")))

	update := method("c", descriptor.Builtin("int"), descriptor.Builtin("string"))
	update.Update = true
	ix.Register(update)

	assert.Len(t, ix.Methods(), 3, "update flag is part of the signature")
}

func TestUniqueName(t *testing.T) {
	ix := New()
	ix.Register(method("intListToStringList", descriptor.List(descriptor.Builtin("int")), descriptor.List(descriptor.Builtin("string"))))

	assert.Equal(t, "intListToStringList2", ix.UniqueName("intListToStringList"))
	assert.Equal(t, "fresh", ix.UniqueName("fresh"))
}

func TestFindUnique(t *testing.T) {
	ix := New()
	m := method("intToString", descriptor.Builtin("int"), descriptor.Builtin("string"))
	ix.Register(m)

	out := ix.Find(descriptor.Builtin("int"), descriptor.Builtin("string"), Query{})
	require.Equal(t, Unique, out.Kind)
	assert.Same(t, m, out.Method)
}

func TestFindNoMatch(t *testing.T) {
	ix := New()
	ix.Register(method("intToString", descriptor.Builtin("int"), descriptor.Builtin("string")))

	out := ix.Find(descriptor.Builtin("bool"), descriptor.Builtin("string"), Query{})
	assert.Equal(t, NoMatch, out.Kind)
}

func TestFindSkipsIneligible(t *testing.T) {
	ix := New()

	update := method("updateString", descriptor.Builtin("int"), descriptor.Builtin("string"))
	update.Update = true
	ix.Register(update)

	callback := method("beforeMapping", descriptor.Builtin("int"), descriptor.Builtin("string"))
	callback.Callback = descriptor.CallbackBefore
	ix.Register(callback)

	out := ix.Find(descriptor.Builtin("int"), descriptor.Builtin("string"), Query{})
	assert.Equal(t, NoMatch, out.Kind, "update methods and callbacks are not candidates")
}

func TestFindExclude(t *testing.T) {
	ix := New()
	m := method("intToString", descriptor.Builtin("int"), descriptor.Builtin("string"))
	ix.Register(m)

	out := ix.Find(descriptor.Builtin("int"), descriptor.Builtin("string"), Query{Exclude: m})
	assert.Equal(t, NoMatch, out.Kind)
}

func TestFindAmbiguous(t *testing.T) {
	ix := New()
	ix.Register(method("a", descriptor.Builtin("int"), descriptor.Builtin("string")))
	ix.Register(method("b", descriptor.Builtin("int"), descriptor.Builtin("string")))

	out := ix.Find(descriptor.Builtin("int"), descriptor.Builtin("string"), Query{})
	require.Equal(t, Ambiguous, out.Kind)
	assert.ElementsMatch(t, []string{"a", "b"}, out.CandidateNames())
}

func TestFindQualifierWinsOutright(t *testing.T) {
	ix := New()
	ix.Register(method("plain", descriptor.Builtin("int"), descriptor.Builtin("string")))

	tagged := method("tagged", descriptor.Builtin("int"), descriptor.Builtin("string"))
	tagged.Qualifiers = []string{"pretty"}
	ix.Register(tagged)

	out := ix.Find(descriptor.Builtin("int"), descriptor.Builtin("string"), Query{Qualifiers: []string{"pretty"}})
	require.Equal(t, Unique, out.Kind)
	assert.Equal(t, "tagged", out.Method.Name)
}

func TestFindQualifierBeatsNameMatch(t *testing.T) {
	ix := New()

	// stockCount is a perfect name match for the target property, but only
	// displayCount carries the requested qualifier.
	ix.Register(method("stockCount", descriptor.Builtin("int"), descriptor.Builtin("string")))

	tagged := method("displayCount", descriptor.Builtin("int"), descriptor.Builtin("string"))
	tagged.Qualifiers = []string{"pretty"}
	ix.Register(tagged)

	out := ix.Find(descriptor.Builtin("int"), descriptor.Builtin("string"), Query{
		Qualifiers:     []string{"pretty"},
		TargetProperty: "stockCount",
	})
	require.Equal(t, Unique, out.Kind)
	assert.Equal(t, "displayCount", out.Method.Name)
}

func TestFindQualifierNoSurvivorFallsBack(t *testing.T) {
	ix := New()
	m := method("plain", descriptor.Builtin("int"), descriptor.Builtin("string"))
	ix.Register(m)

	out := ix.Find(descriptor.Builtin("int"), descriptor.Builtin("string"), Query{Qualifiers: []string{"missing"}})
	require.Equal(t, Unique, out.Kind)
	assert.Same(t, m, out.Method, "a qualifier matching nothing falls back to the full candidate set")
}

func TestFindPropertyTieBreak(t *testing.T) {
	ix := New()

	ix.Register(method("customerToDisplay", descriptor.Builtin("int"), descriptor.Builtin("string")))
	ix.Register(method("orderLineToDisplay", descriptor.Builtin("int"), descriptor.Builtin("string")))

	out := ix.Find(descriptor.Builtin("int"), descriptor.Builtin("string"), Query{TargetProperty: "orderLine"})
	require.Equal(t, Unique, out.Kind)
	assert.Equal(t, "orderLineToDisplay", out.Method.Name)
}

func TestFindFactory(t *testing.T) {
	ix := New()

	factory := &descriptor.Method{
		Name:   "newLabels",
		Result: descriptor.Set(descriptor.Builtin("string")),
	}
	ix.Register(factory)

	assert.Same(t, factory, ix.FindFactory(descriptor.Set(descriptor.Builtin("string"))))
	assert.Nil(t, ix.FindFactory(descriptor.List(descriptor.Builtin("string"))))
}

func TestCallbacks(t *testing.T) {
	ix := New()

	before := method("logSource", descriptor.Builtin("int"), nil)
	before.Callback = descriptor.CallbackBefore
	ix.Register(before)

	after := &descriptor.Method{Name: "auditAll", Callback: descriptor.CallbackAfter}
	ix.Register(after)

	got := ix.Callbacks(descriptor.CallbackBefore, descriptor.Builtin("int"), descriptor.Builtin("string"))
	require.Len(t, got, 1)
	assert.Equal(t, "logSource", got[0].Name)

	got = ix.Callbacks(descriptor.CallbackAfter, descriptor.Builtin("int"), descriptor.Builtin("string"))
	require.Len(t, got, 1)
	assert.Equal(t, "auditAll", got[0].Name, "parameterless callbacks always apply")

	got = ix.Callbacks(descriptor.CallbackBefore, descriptor.Builtin("bool"), descriptor.Builtin("string"))
	assert.Empty(t, got, "callback parameter must match source or result")
}
