package resolve

import (
	"strings"
	"unicode"

	"mapforge/internal/descriptor"
)

// forgeName derives the generated name of a forged container method, e.g.
// []int -> []string becomes "intListToStringList".
func forgeName(source, target *descriptor.Type) string {
	return lowerFirst(typePhrase(source)) + "To" + typePhrase(target)
}

func typePhrase(t *descriptor.Type) string {
	if t.Name != "" {
		return upperFirst(t.Name)
	}

	switch t.Kind {
	case descriptor.ContainerList:
		return typePhrase(t.Elem()) + "List"
	case descriptor.ContainerSet:
		return typePhrase(t.Elem()) + "Set"
	case descriptor.ContainerArray:
		return typePhrase(t.Elem()) + "Array"
	case descriptor.ContainerIterable:
		return typePhrase(t.Elem()) + "Seq"
	case descriptor.ContainerMap:
		return typePhrase(t.MapKey()) + typePhrase(t.MapValue()) + "Map"
	default:
		return upperFirst(t.Name)
	}
}

func upperFirst(s string) string {
	if s == "" {
		return s
	}

	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])

	return string(r)
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}

	r := []rune(s)
	r[0] = unicode.ToLower(r[0])

	return string(r)
}

// pairString renders a source->target pair for diagnostics.
func pairString(source, target *descriptor.Type) string {
	var sb strings.Builder

	sb.WriteString(source.GoString())
	sb.WriteString("->")
	sb.WriteString(target.GoString())

	return sb.String()
}
