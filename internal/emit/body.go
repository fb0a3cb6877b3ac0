package emit

import (
	"fmt"
	"strings"

	"mapforge/internal/descriptor"
	"mapforge/internal/resolve"
)

// bodyWriter accumulates the statements of one method body, indented one
// level inside the function braces.
type bodyWriter struct {
	sb  strings.Builder
	tmp int

	// throws means the enclosing method returns an error.
	throws bool
	// update means the enclosing method fills a pointer target.
	update bool

	imports map[string]struct{}
}

func newBodyWriter(throws, update bool, imports map[string]struct{}) *bodyWriter {
	return &bodyWriter{throws: throws, update: update, imports: imports}
}

func (w *bodyWriter) line(depth int, s string) {
	if s != "" {
		w.sb.WriteString(strings.Repeat("\t", depth+1))
		w.sb.WriteString(s)
	}

	w.sb.WriteString("\n")
}

func (w *bodyWriter) temp() string {
	w.tmp++

	return fmt.Sprintf("v%d", w.tmp)
}

func (w *bodyWriter) String() string {
	return w.sb.String()
}

// value renders the expression producing the assignment's result from ref,
// emitting supporting statements at the given depth when the assignment
// cannot stay a pure expression.
func (w *bodyWriter) value(a *resolve.Assignment, ref string, depth int) string {
	switch a.Kind {
	case resolve.AssignDirect:
		return ref

	case resolve.AssignConverted:
		for _, imp := range a.Imports {
			w.imports[imp] = struct{}{}
		}

		return a.Open + ref + a.Close

	case resolve.AssignMethodCall:
		return w.call(a.Method, ref, depth)

	case resolve.AssignLocalVar:
		expr := w.value(a.Inner, ref, depth)
		w.line(depth, a.Var+" := "+expr)

		return a.Var

	case resolve.AssignContainer:
		// Containers are always reached through a forged method call, never
		// as an inline value.
		return ref

	default:
		return ref
	}
}

// call renders a mapping method invocation. Throwing callees need statement
// form; inside a non-throwing method their error is discarded.
func (w *bodyWriter) call(m *descriptor.Method, ref string, depth int) string {
	callExpr := m.Name + "(" + ref + ")"
	if len(m.Thrown()) == 0 {
		return callExpr
	}

	v := w.temp()

	if !w.throws {
		w.line(depth, v+", _ := "+callExpr)

		return v
	}

	w.line(depth, v+", err := "+callExpr)
	w.line(depth, "if err != nil {")

	if w.update {
		w.line(depth+1, "return err")
	} else {
		w.line(depth+1, "return out, err")
	}

	w.line(depth, "}")

	return v
}
