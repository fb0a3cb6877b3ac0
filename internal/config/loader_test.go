package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mapforge/internal/descriptor"
)

const sessionYAML = `
version: "1"
packages:
  - mapforge/examples/orders
mappers:
  - name: orders
    null_value_strategy: map_to_default
    date_format: "2006-01-02"
    methods:
      - name: QuantityToStockCount
        source: int32
        target: int64
      - name: TagsToLabels
        source: "[]string"
        target: set[string]
        qualifiers: [pretty]
      - name: NewLabels
        target: set[string]
        factory: true
      - name: AuditResult
        source: set[string]
        target: set[string]
        callback: after
`

func TestParseSession(t *testing.T) {
	sf, err := Parse([]byte(sessionYAML))
	require.NoError(t, err)

	require.Len(t, sf.Mappers, 1)
	mp := sf.Mappers[0]

	assert.Equal(t, "orders", mp.Name)
	assert.Equal(t, "map_to_default", mp.NullValueStrategy)
	assert.Equal(t, "2006-01-02", mp.DateFormat)
	require.Len(t, mp.Methods, 4)
	assert.Equal(t, []string{"pretty"}, mp.Methods[1].Qualifiers)
	assert.True(t, mp.Methods[2].Factory)
	assert.Equal(t, "after", mp.Methods[3].Callback)
}

func TestParseAppliesDefaults(t *testing.T) {
	sf, err := Parse([]byte("mappers:\n  - name: m\n"))
	require.NoError(t, err)

	assert.Equal(t, "1", sf.Version)
	assert.Equal(t, "propagate", sf.Mappers[0].NullValueStrategy)
	assert.Equal(t, "mappers", sf.Mappers[0].Package)
}

func TestParseRejectsBadYAML(t *testing.T) {
	_, err := Parse([]byte("mappers: [unclosed"))
	assert.Error(t, err)
}

func TestParseTypeExpr(t *testing.T) {
	cases := []struct {
		expr string
		want string // descriptor key
	}{
		{"int", descriptor.Builtin("int").Key()},
		{" string ", descriptor.Builtin("string").Key()},
		{"[]int", descriptor.List(descriptor.Builtin("int")).Key()},
		{"set[string]", descriptor.Set(descriptor.Builtin("string")).Key()},
		{"array[byte]", descriptor.Array(descriptor.Builtin("byte")).Key()},
		{"seq[int]", descriptor.Iterable(descriptor.Builtin("int")).Key()},
		{"map[string]int", descriptor.Map(descriptor.Builtin("string"), descriptor.Builtin("int")).Key()},
		{
			"map[string][]int",
			descriptor.Map(descriptor.Builtin("string"), descriptor.List(descriptor.Builtin("int"))).Key(),
		},
		{"time.Time", descriptor.Named("time", "Time").Key()},
		{"time.Duration", descriptor.Named("time", "Duration").Key()},
	}

	for _, tc := range cases {
		t.Run(tc.expr, func(t *testing.T) {
			got, err := ParseTypeExpr(tc.expr, nil)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got.Key())
		})
	}
}

func TestParseTypeExprLookup(t *testing.T) {
	order := descriptor.Named("mapforge/examples/orders", "Order")
	lookup := func(name string) *descriptor.Type {
		if name == "orders.Order" {
			return order
		}

		return nil
	}

	got, err := ParseTypeExpr("orders.Order", lookup)
	require.NoError(t, err)
	assert.Same(t, order, got)

	_, err = ParseTypeExpr("orders.Missing", lookup)
	assert.Error(t, err)
}

func TestParseTypeExprErrors(t *testing.T) {
	for _, expr := range []string{"", "map[string", "[]", "chan int"} {
		_, err := ParseTypeExpr(expr, nil)
		assert.Error(t, err, "expr %q", expr)
	}
}

func TestBuildMethod(t *testing.T) {
	def := MethodDef{
		Name:       "tagsToLabels",
		Source:     "[]string",
		Target:     "set[string]",
		Qualifiers: []string{"pretty"},
		Errors:     []string{"conversion"},
	}

	m, err := def.Build(nil)
	require.NoError(t, err)

	assert.Equal(t, "tagsToLabels", m.Name)
	require.Len(t, m.Sources, 1)
	assert.Equal(t, descriptor.ContainerList, m.Sources[0].Kind)
	assert.Equal(t, descriptor.ContainerSet, m.Result.Kind)
	assert.Equal(t, []string{"pretty"}, m.Qualifiers)
	assert.Equal(t, []string{"conversion"}, m.Thrown())
	assert.Equal(t, descriptor.CallbackNone, m.Callback)
}

func TestBuildFactoryMethod(t *testing.T) {
	def := MethodDef{Name: "newLabels", Target: "set[string]", Factory: true}

	m, err := def.Build(nil)
	require.NoError(t, err)
	assert.Empty(t, m.Sources)
	assert.Equal(t, descriptor.ContainerSet, m.Result.Kind)
}

func TestBuildCallbackMethod(t *testing.T) {
	def := MethodDef{Name: "audit", Source: "int", Target: "int", Callback: "before"}

	m, err := def.Build(nil)
	require.NoError(t, err)
	assert.Equal(t, descriptor.CallbackBefore, m.Callback)
}

func TestBuildUnknownTypeFails(t *testing.T) {
	def := MethodDef{Name: "m", Source: "mystery.Type", Target: "int"}

	_, err := def.Build(nil)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	sf := &SessionFile{Mappers: []Mapper{{
		Name:              "orders",
		NullValueStrategy: "sometimes",
		Methods: []MethodDef{
			{Name: "a", Source: "int", Target: "string"},
			{Name: "a", Source: "int", Target: "string"},
			{Name: "b", Target: "string"},
			{Name: "c", Source: "int", Target: "string", Callback: "around"},
			{Name: "d", Target: "string", Factory: true, Update: true},
			{Name: "e", Source: "int"},
		},
	}}}

	res := Validate(sf)
	require.True(t, res.HasErrors())

	codes := make([]string, 0, len(res.Errors))
	for _, d := range res.Errors {
		codes = append(codes, d.Code)
	}

	assert.Contains(t, codes, "bad_null_strategy")
	assert.Contains(t, codes, "duplicate_method")
	assert.Contains(t, codes, "method_no_source")
	assert.Contains(t, codes, "bad_callback")
	assert.Contains(t, codes, "factory_update_conflict")
	assert.Contains(t, codes, "method_no_target")
}

func TestValidateNilSession(t *testing.T) {
	res := Validate(nil)
	assert.True(t, res.HasErrors())
}

func TestValidateEmptySessionWarns(t *testing.T) {
	res := Validate(&SessionFile{})
	assert.False(t, res.HasErrors())
	assert.Len(t, res.Warnings, 1)
}
