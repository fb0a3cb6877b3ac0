package resolve

import (
	"mapforge/internal/common"
	"mapforge/internal/convert"
	"mapforge/internal/descriptor"
)

// AssignmentKind tags the closed set of resolved transformation shapes.
// The emitter switches exhaustively over it, so every new strategy must be
// handled everywhere it is consumed.
type AssignmentKind int

const (
	// AssignDirect - the source reference is used as-is.
	AssignDirect AssignmentKind = iota
	// AssignConverted - the reference is wrapped by a conversion's
	// open/close expression fragments.
	AssignConverted
	// AssignMethodCall - a declared or forged mapping method is invoked.
	AssignMethodCall
	// AssignContainer - per-element delegation to nested assignments,
	// wrapped with construction and iteration semantics.
	AssignContainer
	// AssignLocalVar - the inner assignment's result is materialized into
	// a named temporary before reuse.
	AssignLocalVar
)

// String returns a human-readable kind name.
func (k AssignmentKind) String() string {
	switch k {
	case AssignDirect:
		return "direct"
	case AssignConverted:
		return "converted"
	case AssignMethodCall:
		return "method_call"
	case AssignContainer:
		return "container"
	case AssignLocalVar:
		return "local_var"
	default:
		return common.UnknownStr
	}
}

// Assignment is the resolved description of how one value transforms from
// source type to target type. Assignments are immutable once built, own
// their children exclusively, and are consumed exactly once by the emitter.
type Assignment struct {
	Kind   AssignmentKind
	Source *descriptor.Type
	Target *descriptor.Type

	// Open and Close wrap the reference for AssignConverted; Imports lists
	// the packages the wrapped expression needs.
	Open    string
	Close   string
	Imports []string

	// Method is the callee for AssignMethodCall.
	Method *descriptor.Method

	// Container children: Elem for collections, KeyAsg/ValueAsg for maps.
	Elem     *Assignment
	KeyAsg   *Assignment
	ValueAsg *Assignment
	// MapNullToDefault is baked in from the context at build time.
	MapNullToDefault bool
	// Factory is the zero-argument construction method for the container
	// result, when one was declared; nil means default construction.
	Factory *descriptor.Method

	// LocalVar: the temporary name and the materialized inner assignment.
	Var   string
	Inner *Assignment
}

// Direct builds an identity assignment.
func Direct(source, target *descriptor.Type) *Assignment {
	return &Assignment{Kind: AssignDirect, Source: source, Target: target}
}

// Converted builds an assignment wrapping the reference with a conversion.
func Converted(source, target *descriptor.Type, c convert.Conversion) *Assignment {
	return &Assignment{
		Kind:    AssignConverted,
		Source:  source,
		Target:  target,
		Open:    c.Open,
		Close:   c.Close,
		Imports: c.Imports,
	}
}

// MethodCall builds an assignment invoking the given method.
func MethodCall(m *descriptor.Method) *Assignment {
	return &Assignment{
		Kind:   AssignMethodCall,
		Source: m.Source(),
		Target: m.Result,
		Method: m,
	}
}

// LocalVar materializes inner into a named temporary.
func LocalVar(name string, inner *Assignment) *Assignment {
	return &Assignment{
		Kind:   AssignLocalVar,
		Source: inner.Source,
		Target: inner.Target,
		Var:    name,
		Inner:  inner,
	}
}

// ThrownKinds returns the union of error kinds this assignment tree can
// raise, i.e. the declared thrown kinds of every method it calls.
func (a *Assignment) ThrownKinds() []string {
	set := make(map[string]struct{})
	a.collectThrown(set)

	if len(set) == 0 {
		return nil
	}

	agg := &descriptor.Method{}
	for k := range set {
		agg.AddThrown(k)
	}

	return agg.Thrown()
}

func (a *Assignment) collectThrown(set map[string]struct{}) {
	if a == nil {
		return
	}

	if a.Kind == AssignMethodCall && a.Method != nil {
		for _, k := range a.Method.Thrown() {
			set[k] = struct{}{}
		}
	}

	a.Elem.collectThrown(set)
	a.KeyAsg.collectThrown(set)
	a.ValueAsg.collectThrown(set)
	a.Inner.collectThrown(set)
}

// ForgedCallees returns the forged methods this assignment tree calls.
func (a *Assignment) ForgedCallees() []*descriptor.Method {
	var out []*descriptor.Method

	a.walk(func(n *Assignment) {
		if n.Kind == AssignMethodCall && n.Method != nil && n.Method.Forged {
			out = append(out, n.Method)
		}
	})

	return out
}

func (a *Assignment) walk(fn func(*Assignment)) {
	if a == nil {
		return
	}

	fn(a)
	a.Elem.walk(fn)
	a.KeyAsg.walk(fn)
	a.ValueAsg.walk(fn)
	a.Inner.walk(fn)
}
