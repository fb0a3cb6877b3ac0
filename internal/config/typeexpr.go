package config

import (
	"fmt"
	"strings"

	"mapforge/internal/descriptor"
)

// TypeLookup resolves a named type expression ("pkg.Name" or "Name") to a
// discovered descriptor; nil when unknown.
type TypeLookup func(name string) *descriptor.Type

// ParseTypeExpr parses a session-file type expression into a descriptor.
// Supported forms: builtins ("int", "string", ...), named types resolved
// through lookup, "[]T", "map[K]V", "set[T]", "array[T]", "seq[T]".
func ParseTypeExpr(expr string, lookup TypeLookup) (*descriptor.Type, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return nil, fmt.Errorf("empty type expression")
	}

	if inner, ok := strings.CutPrefix(expr, "[]"); ok {
		elem, err := ParseTypeExpr(inner, lookup)
		if err != nil {
			return nil, err
		}

		return descriptor.List(elem), nil
	}

	if strings.HasPrefix(expr, "map[") {
		keyExpr, valExpr, err := splitMapExpr(expr)
		if err != nil {
			return nil, err
		}

		key, err := ParseTypeExpr(keyExpr, lookup)
		if err != nil {
			return nil, err
		}

		val, err := ParseTypeExpr(valExpr, lookup)
		if err != nil {
			return nil, err
		}

		return descriptor.Map(key, val), nil
	}

	for prefix, build := range containerForms {
		if strings.HasPrefix(expr, prefix+"[") && strings.HasSuffix(expr, "]") {
			inner := expr[len(prefix)+1 : len(expr)-1]

			elem, err := ParseTypeExpr(inner, lookup)
			if err != nil {
				return nil, err
			}

			return build(elem), nil
		}
	}

	if isBuiltinName(expr) {
		return descriptor.Builtin(expr), nil
	}

	if expr == "time.Time" || expr == "time.Duration" {
		return descriptor.Named("time", strings.TrimPrefix(expr, "time.")), nil
	}

	if lookup != nil {
		if t := lookup(expr); t != nil {
			return t, nil
		}
	}

	return nil, fmt.Errorf("unknown type %q", expr)
}

var containerForms = map[string]func(*descriptor.Type) *descriptor.Type{
	"set":   descriptor.Set,
	"array": descriptor.Array,
	"seq":   descriptor.Iterable,
}

// splitMapExpr splits "map[K]V" into K and V, honoring nested brackets in
// the key expression.
func splitMapExpr(expr string) (key, value string, err error) {
	rest := strings.TrimPrefix(expr, "map[")
	depth := 1

	for i := 0; i < len(rest); i++ {
		switch rest[i] {
		case '[':
			depth++
		case ']':
			depth--
			if depth == 0 {
				return rest[:i], rest[i+1:], nil
			}
		}
	}

	return "", "", fmt.Errorf("unbalanced brackets in type %q", expr)
}

var builtinNames = map[string]struct{}{
	"string": {}, "bool": {},
	"int": {}, "int8": {}, "int16": {}, "int32": {}, "int64": {},
	"uint": {}, "uint8": {}, "uint16": {}, "uint32": {}, "uint64": {},
	"float32": {}, "float64": {}, "byte": {}, "rune": {},
}

func isBuiltinName(name string) bool {
	_, ok := builtinNames[name]

	return ok
}
