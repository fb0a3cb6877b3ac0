package emit

import (
	"bytes"
	"fmt"
	"go/format"
	"sort"
	"text/template"

	"mapforge/internal/descriptor"
	"mapforge/internal/resolve"
)

// Config holds configuration for code generation.
type Config struct {
	// PackageName is the name of the generated package.
	PackageName string
	// OutputDir is the directory where generated files are written.
	OutputDir string
	// Comments enables generation of explanatory comments.
	Comments bool
}

// DefaultConfig returns the default emitter configuration.
func DefaultConfig() Config {
	return Config{
		PackageName: "mappers",
		OutputDir:   "./generated",
		Comments:    true,
	}
}

// Emitter renders resolved mapping method bodies into Go source files.
type Emitter struct {
	config Config
}

// New creates a new Emitter with the given configuration.
func New(config Config) *Emitter {
	return &Emitter{config: config}
}

// GeneratedFile represents a generated Go source file.
type GeneratedFile struct {
	// Filename is the name of the file (e.g., "orders_mapper.go").
	Filename string
	// Content is the formatted Go source code.
	Content []byte
}

// Emit renders the given method bodies into one Go source file. Incomplete
// bodies are skipped; the resolver has already reported them.
func (e *Emitter) Emit(filename string, bodies []*resolve.MethodBody) (*GeneratedFile, error) {
	data := &fileData{PackageName: e.config.PackageName}
	imports := make(map[string]struct{})

	for _, body := range bodies {
		if !body.Complete || body.Assignment == nil {
			continue
		}

		data.Methods = append(data.Methods, e.buildMethod(body, imports))
	}

	for imp := range imports {
		data.Imports = append(data.Imports, imp)
	}

	sort.Strings(data.Imports)

	var buf bytes.Buffer
	if err := mapperTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("executing template: %w", err)
	}

	formatted, err := format.Source(buf.Bytes())
	if err != nil {
		// Best-effort: write unformatted code to a sidecar file to aid
		// debugging, and return the unformatted content alongside the error.
		if e.config.OutputDir != "" {
			_ = writeDebugUnformatted(e.config.OutputDir, filename, buf.Bytes())
		}

		return &GeneratedFile{
			Filename: filename,
			Content:  buf.Bytes(),
		}, fmt.Errorf("formatting code: %w", err)
	}

	return &GeneratedFile{
		Filename: filename,
		Content:  formatted,
	}, nil
}

// fileData holds all data needed for the mapper file template.
type fileData struct {
	PackageName string
	Imports     []string
	Methods     []methodData
}

// methodData is one rendered mapping method.
type methodData struct {
	Comment string
	Name    string
	Params  string
	Results string
	Body    string
}

// buildMethod renders a single method body, recording the imports it needs.
func (e *Emitter) buildMethod(body *resolve.MethodBody, imports map[string]struct{}) methodData {
	m := body.Method
	src, tgt := m.Source(), m.Result
	throws := len(m.Thrown()) > 0

	collectTypeImports(src, imports)
	collectTypeImports(tgt, imports)

	params := "in " + src.GoString()
	if m.Update {
		params += ", out *" + tgt.GoString()
	}

	md := methodData{
		Name:    m.Name,
		Params:  params,
		Results: resultClause(m, tgt, throws),
	}

	if e.config.Comments {
		verb := "maps"
		if m.Forged {
			verb = "is a generated helper mapping"
		}

		md.Comment = fmt.Sprintf("%s %s %s to %s.", m.Name, verb, src.GoString(), tgt.GoString())
	}

	w := newBodyWriter(throws, m.Update, imports)

	for _, cb := range body.Before {
		if stmt := callbackStmt(cb, src, tgt, "in", ""); stmt != "" {
			w.line(0, stmt)
		}
	}

	if body.Assignment.Kind == resolve.AssignContainer {
		e.writeContainerBody(w, body)
	} else {
		e.writeValueBody(w, body)
	}

	outRef := "out"
	if m.Update {
		outRef = "*out"
	}

	for _, cb := range body.After {
		if stmt := callbackStmt(cb, src, tgt, "in", outRef); stmt != "" {
			w.line(0, stmt)
		}
	}

	switch {
	case m.Update && throws:
		w.line(0, "")
		w.line(0, "return nil")
	case m.Update:
		// assigns through the pointer, nothing to return
	case throws:
		w.line(0, "")
		w.line(0, "return out, nil")
	default:
		w.line(0, "")
		w.line(0, "return out")
	}

	md.Body = w.String()

	return md
}

// writeValueBody renders a single-value method body. The only assignment
// shape needing statement form here is a call to a throwing method, because
// single-value resolution yields direct, converted or method-call nodes.
func (e *Emitter) writeValueBody(w *bodyWriter, body *resolve.MethodBody) {
	m, a := body.Method, body.Assignment

	if a.Kind == resolve.AssignMethodCall && len(a.Method.Thrown()) > 0 {
		call := a.Method.Name + "(in)"

		switch {
		case m.Update && w.throws:
			w.line(0, "res, err := "+call)
			w.line(0, "if err != nil {")
			w.line(1, "return err")
			w.line(0, "}")
			w.line(0, "")
			w.line(0, "*out = res")
		case m.Update:
			w.line(0, "res, _ := "+call)
			w.line(0, "*out = res")
		case w.throws:
			w.line(0, "out, err := "+call)
			w.line(0, "if err != nil {")
			w.line(1, "return out, err")
			w.line(0, "}")
		default:
			w.line(0, "out, _ := "+call)
		}

		return
	}

	expr := w.value(a, "in", 0)

	if m.Update {
		w.line(0, "*out = "+expr)

		return
	}

	w.line(0, "out := "+expr)
}

// writeContainerBody renders a container mapping method body: nil handling,
// construction, the element loop, and for update methods the final writeback.
func (e *Emitter) writeContainerBody(w *bodyWriter, body *resolve.MethodBody) {
	m, a := body.Method, body.Assignment
	src, tgt := m.Source(), m.Result

	outVar := "out"
	if m.Update {
		outVar = "res"
	}

	w.line(0, "if in == nil {")

	nilResult := "nil"
	if a.MapNullToDefault {
		nilResult = tgt.DefaultValue()
	}

	switch {
	case m.Update:
		w.line(1, "*out = "+nilResult)

		if w.throws {
			w.line(1, "return nil")
		} else {
			w.line(1, "return")
		}
	case w.throws:
		w.line(1, "return "+nilResult+", nil")
	default:
		w.line(1, "return "+nilResult)
	}

	w.line(0, "}")
	w.line(0, "")

	if a.Factory != nil {
		w.line(0, outVar+" := "+a.Factory.Name+"()")
	} else {
		w.line(0, constructionStmt(outVar, src, tgt))
	}

	w.line(0, "")

	if tgt.Kind == descriptor.ContainerMap {
		w.line(0, "for k, v := range in {")

		key := w.value(a.KeyAsg, "k", 1)
		val := w.value(a.ValueAsg, "v", 1)

		w.line(1, outVar+"["+key+"] = "+val)
		w.line(0, "}")
	} else {
		w.line(0, rangeHeader(src)+" {")

		elem := w.value(a.Elem, "e", 1)

		if tgt.Kind == descriptor.ContainerSet {
			w.line(1, outVar+"["+elem+"] = struct{}{}")
		} else {
			w.line(1, outVar+" = append("+outVar+", "+elem+")")
		}

		w.line(0, "}")
	}

	if m.Update {
		w.line(0, "")
		w.line(0, "*out = "+outVar)
	}
}

// constructionStmt builds the make statement for the target container.
// Sequence sources without a cheap length skip the capacity hint.
func constructionStmt(outVar string, src, tgt *descriptor.Type) string {
	switch tgt.Kind {
	case descriptor.ContainerSet, descriptor.ContainerMap:
		return fmt.Sprintf("%s := make(%s, len(in))", outVar, tgt.GoString())
	default:
		if src.Kind == descriptor.ContainerIterable && src.Name != "" {
			return fmt.Sprintf("%s := make(%s, 0)", outVar, tgt.GoString())
		}

		return fmt.Sprintf("%s := make(%s, 0, len(in))", outVar, tgt.GoString())
	}
}

// rangeHeader picks the loop form matching how the source container yields
// its elements.
func rangeHeader(src *descriptor.Type) string {
	switch {
	case src.Kind == descriptor.ContainerSet:
		return "for e := range in"
	case src.Kind == descriptor.ContainerIterable && src.Name != "":
		return "for e := range in"
	default:
		return "for _, e := range in"
	}
}

// resultClause renders the method's return types.
func resultClause(m *descriptor.Method, tgt *descriptor.Type, throws bool) string {
	if m.Update {
		if throws {
			return "error"
		}

		return ""
	}

	if throws {
		return "(" + tgt.GoString() + ", error)"
	}

	return tgt.GoString()
}

// callbackStmt renders a lifecycle callback invocation, choosing the argument
// by which side of the mapping the callback's parameter accepts. Returns ""
// when no argument can be supplied (e.g. a result-typed callback before the
// result exists).
func callbackStmt(cb *descriptor.Method, src, tgt *descriptor.Type, inRef, outRef string) string {
	if len(cb.Sources) == 0 {
		return cb.Name + "()"
	}

	p := cb.Sources[0]

	if p.AssignableFrom(src) {
		return cb.Name + "(" + inRef + ")"
	}

	if p.AssignableFrom(tgt) && outRef != "" {
		return cb.Name + "(" + outRef + ")"
	}

	return ""
}

// collectTypeImports records the packages a type reference needs. Guarded
// against self-referential container descriptors.
func collectTypeImports(t *descriptor.Type, imports map[string]struct{}) {
	seen := make(map[*descriptor.Type]struct{})
	collectImports(t, imports, seen)
}

func collectImports(t *descriptor.Type, imports map[string]struct{}, seen map[*descriptor.Type]struct{}) {
	if t == nil {
		return
	}

	if _, ok := seen[t]; ok {
		return
	}

	seen[t] = struct{}{}

	if t.PkgPath != "" {
		imports[t.PkgPath] = struct{}{}
	}

	for _, p := range t.Params {
		collectImports(p.TypeBound(), imports, seen)
	}
}

// Template for the mapper file.

var mapperTemplate = template.Must(template.New("mapper").Parse(`// Code generated by mapforge. DO NOT EDIT.

package {{.PackageName}}

{{if .Imports}}
import (
{{range .Imports}}	"{{.}}"
{{end}})
{{end}}
{{range .Methods}}
{{if .Comment}}// {{.Comment}}
{{end}}func {{.Name}}({{.Params}}) {{.Results}} {
{{.Body}}}
{{end}}
`))
