// Package resolve implements the mapping resolution engine: given a source
// and a target type plus a binding context, it decides how a value converts
// between them and produces an Assignment tree for the emitter. Container
// pairs without a declared method get a forged helper method, generated
// exactly once and scheduled on a work queue.
package resolve

import (
	"fmt"

	"mapforge/internal/convert"
	"mapforge/internal/descriptor"
	"mapforge/internal/diagnostic"
	"mapforge/internal/index"
)

// Resolver is the resolution session: it owns the read-only conversion
// registry, the read-and-extend candidate index, the forge work queue, and
// the diagnostics collected along the way. A session runs single-threaded;
// later resolutions depend on registrations made by earlier ones.
type Resolver struct {
	conversions *convert.Registry
	index       *index.Index

	// Diags collects everything the session has to report. The resolver
	// never aborts the session on one failure.
	Diags diagnostic.Diagnostics

	queue     *ForgeQueue
	inFlight  map[string]struct{}
	bodies    []*MethodBody
	bodyBySig map[string]*MethodBody
}

// NewResolver creates a resolution session over the given registries.
func NewResolver(conversions *convert.Registry, ix *index.Index) *Resolver {
	return &Resolver{
		conversions: conversions,
		index:       ix,
		queue:       NewForgeQueue(),
		inFlight:    make(map[string]struct{}),
		bodyBySig:   make(map[string]*MethodBody),
	}
}

// Index returns the session's candidate method index.
func (r *Resolver) Index() *index.Index {
	return r.index
}

// Resolve decides how a source value becomes a target value. Strategies are
// tried in order: identity, built-in conversion, declared or forged method,
// container mapping. The boolean is false when no path exists; failure is a
// value, not a fault, and the diagnostic (if any) is owned by the caller.
func (r *Resolver) Resolve(source, target *descriptor.Type, ctx Context) (*Assignment, bool) {
	if source == nil || target == nil {
		return nil, false
	}

	// identity
	if target.AssignableFrom(source) {
		return Direct(source, target), true
	}

	// built-in conversion
	if p, ok := r.conversions.Lookup(source, target); ok {
		return Converted(source, target, p.Apply(convert.Context{Format: ctx.Format})), true
	}

	// declared or previously forged method
	if asg, ok, done := r.resolveViaMethod(source, target, ctx); done {
		return asg, ok
	}

	// container mapping (forges a helper method)
	if containerPair(source, target) {
		return r.forgeContainer(source, target, ctx)
	}

	return nil, false
}

// resolveViaMethod consults the candidate index. done is false only for a
// clean NoMatch, which lets the caller fall through to container mapping.
func (r *Resolver) resolveViaMethod(source, target *descriptor.Type, ctx Context) (*Assignment, bool, bool) {
	q := index.Query{
		Qualifiers:     ctx.Qualifiers,
		TargetProperty: ctx.TargetProperty,
	}

	// A method body must never resolve to a call to itself. Forged methods
	// stay findable while pending; the in-flight check below turns such a
	// self-reference into the cycle diagnostic instead.
	if ctx.Enclosing != nil && !ctx.Enclosing.Forged {
		q.Exclude = ctx.Enclosing
	}

	out := r.index.Find(source, target, q)

	switch out.Kind {
	case index.Unique:
		m := out.Method

		if r.pendingForge(m) {
			r.reportCycle(m, source, target, ctx)

			return nil, false, true
		}

		r.aggregateThrown(ctx, m)

		return MethodCall(m), true, true

	case index.Ambiguous:
		// A pending forged candidate among the tied methods means the pair
		// requires its own in-progress helper; the cycle diagnostic takes
		// precedence over ambiguity.
		for _, c := range out.Candidates {
			if r.pendingForge(c) {
				r.reportCycle(c, source, target, ctx)

				return nil, false, true
			}
		}

		r.Diags.AddAmbiguity(
			fmt.Sprintf("multiple mapping methods match %s", pairString(source, target)),
			pairString(source, target), ctx.TargetProperty, out.CandidateNames())

		return nil, false, true

	default:
		return nil, false, false
	}
}

// pendingForge reports whether m is a forged method whose own body
// generation is in flight. Requesting such a signature means a container
// type directly contains itself.
func (r *Resolver) pendingForge(m *descriptor.Method) bool {
	if !m.Forged {
		return false
	}

	_, pending := r.inFlight[m.SignatureKey()]

	return pending
}

func (r *Resolver) reportCycle(m *descriptor.Method, source, target *descriptor.Type, ctx Context) {
	r.Diags.AddError(diagnostic.CodeCyclicForgeAttempt,
		fmt.Sprintf("mapping %s requires itself; the container type contains itself", m.Name),
		pairString(source, target), ctx.TargetProperty)
}

// forgeContainer synthesizes a helper method for a container pair, registers
// it so later identical needs reuse it, and schedules its body generation.
// The caller gets a MethodCall as if the method had pre-existed.
func (r *Resolver) forgeContainer(source, target *descriptor.Type, ctx Context) (*Assignment, bool) {
	m := &descriptor.Method{
		Name:    r.index.UniqueName(forgeName(source, target)),
		Sources: []*descriptor.Type{source},
		Result:  target,
		Forged:  true,
	}

	registered := r.index.Register(m)
	if registered != m {
		// identical signature already forged
		r.aggregateThrown(ctx, registered)

		return MethodCall(registered), true
	}

	r.queue.Enqueue(Task{Method: m, Ctx: ctx.ForElement(m)})
	r.aggregateThrown(ctx, m)

	return MethodCall(m), true
}

// aggregateThrown unions the callee's declared error kinds into the
// enclosing method when that method is a forged one still in progress.
func (r *Resolver) aggregateThrown(ctx Context, callee *descriptor.Method) {
	if ctx.Enclosing != nil && ctx.Enclosing.Forged {
		ctx.Enclosing.AddThrown(callee.Thrown()...)
	}
}

// containerPair reports whether the pair is mappable element-wise: an
// iterable source into a list/set/array target, or map into map.
func containerPair(source, target *descriptor.Type) bool {
	switch target.Kind {
	case descriptor.ContainerList, descriptor.ContainerSet, descriptor.ContainerArray:
		return source.Kind.IsCollection()
	case descriptor.ContainerMap:
		return source.Kind == descriptor.ContainerMap
	default:
		return false
	}
}

// BuildMethod resolves the body of a declared mapping method and records it.
// Diagnostics for unresolvable bodies are emitted here, because declared
// methods are the user-visible surface.
func (r *Resolver) BuildMethod(m *descriptor.Method, ctx Context) *MethodBody {
	ctx.Enclosing = m

	var body *MethodBody
	if containerPair(m.Source(), m.Result) {
		body = r.buildContainerBody(m, ctx)
	} else {
		asg, ok := r.Resolve(m.Source(), m.Result, ctx)
		if !ok && !m.Forged {
			r.Diags.AddError(diagnostic.CodeNoConversionPath,
				fmt.Sprintf("no conversion path from %s to %s", m.Source().GoString(), m.Result.GoString()),
				pairString(m.Source(), m.Result), ctx.TargetProperty)
		}

		body = &MethodBody{Method: m, Assignment: asg, Complete: ok}
	}

	body.Before, body.After = BindCallbacks(r.index, m)

	r.record(body)

	return body
}

// buildContainerBody resolves the element (or key/value) assignments of a
// container mapping method. Forged methods fail silently here; their
// diagnostic belongs to the outermost mapping that needed them.
func (r *Resolver) buildContainerBody(m *descriptor.Method, ctx Context) *MethodBody {
	source, target := m.Source(), m.Result
	elemCtx := ctx.ForElement(m)

	asg := &Assignment{
		Kind:             AssignContainer,
		Source:           source,
		Target:           target,
		MapNullToDefault: ctx.Null == NullMapToDefault,
	}

	complete := true

	if target.Kind == descriptor.ContainerMap {
		keyAsg, ok := r.Resolve(source.MapKey(), target.MapKey(), elemCtx)
		if !ok {
			complete = false

			r.reportElement(m, "map key", source.MapKey(), target.MapKey())
		} else {
			asg.KeyAsg = LocalVar("mappedKey", keyAsg)
		}

		valAsg, ok := r.Resolve(source.MapValue(), target.MapValue(), elemCtx)
		if !ok {
			complete = false

			r.reportElement(m, "map value", source.MapValue(), target.MapValue())
		} else {
			asg.ValueAsg = LocalVar("mappedValue", valAsg)
		}
	} else {
		elemAsg, ok := r.Resolve(source.Elem(), target.Elem(), elemCtx)
		if !ok {
			complete = false

			r.reportElement(m, "element", source.Elem(), target.Elem())
		} else {
			asg.Elem = elemAsg
		}
	}

	// Update methods fill an existing target; never synthesize whole-target
	// construction for them.
	if !m.Update {
		asg.Factory = r.index.FindFactory(target)
	}

	return &MethodBody{Method: m, Assignment: asg, Complete: complete}
}

// reportElement emits the unresolved-element diagnostic for declared
// methods only; forged bodies defer to the top-level mapping.
func (r *Resolver) reportElement(m *descriptor.Method, what string, source, target *descriptor.Type) {
	if m.Forged {
		return
	}

	r.Diags.AddError(diagnostic.CodeUnresolvedElement,
		fmt.Sprintf("no conversion path for %s (%s)", what, pairString(source, target)),
		pairString(m.Source(), m.Result), "")
}

// Drain generates the bodies of all scheduled forged methods, one at a
// time. Body generation may enqueue further forged methods for deeper
// nesting levels; the process terminates because each level strictly
// reduces structural depth and identical signatures are shared.
func (r *Resolver) Drain() {
	for {
		task, ok := r.queue.Pop()
		if !ok {
			break
		}

		r.generateBody(task)
	}

	r.propagateThrown()
}

func (r *Resolver) generateBody(task Task) {
	sig := task.Method.SignatureKey()
	r.inFlight[sig] = struct{}{}

	body := r.buildContainerBody(task.Method, task.Ctx)
	body.Before, body.After = BindCallbacks(r.index, task.Method)

	delete(r.inFlight, sig)

	r.record(body)
}

func (r *Resolver) record(body *MethodBody) {
	r.bodies = append(r.bodies, body)
	r.bodyBySig[body.Method.SignatureKey()] = body
}

// propagateThrown re-aggregates thrown error kinds across forged bodies to
// a fixed point, so a forged method advertises every kind its body can
// raise even when callee bodies were generated after it.
func (r *Resolver) propagateThrown() {
	for changed := true; changed; {
		changed = false

		for _, body := range r.bodies {
			if !body.Method.Forged || body.Assignment == nil {
				continue
			}

			before := len(body.Method.Thrown())
			body.Method.AddThrown(body.Assignment.ThrownKinds()...)

			if len(body.Method.Thrown()) != before {
				changed = true
			}
		}
	}
}

// Bodies returns every generated method body, declared and forged, in
// generation order.
func (r *Resolver) Bodies() []*MethodBody {
	return r.bodies
}

// BodyFor returns the generated body for a method signature, or nil.
func (r *Resolver) BodyFor(m *descriptor.Method) *MethodBody {
	return r.bodyBySig[m.SignatureKey()]
}

// Finish verifies that every forged method reachable from a declared
// mapping method was completed, and reports unresolved ones against the
// declared method that needed them. Unreachable incomplete forged bodies
// stay silent; their existence turned out to be unused.
func (r *Resolver) Finish() {
	for _, body := range r.bodies {
		if body.Method.Forged {
			continue
		}

		visited := make(map[string]struct{})
		r.checkForged(body, body, visited)
	}
}

func (r *Resolver) checkForged(top, body *MethodBody, visited map[string]struct{}) {
	if body == nil || body.Assignment == nil {
		return
	}

	for _, callee := range body.Assignment.ForgedCallees() {
		sig := callee.SignatureKey()
		if _, seen := visited[sig]; seen {
			continue
		}

		visited[sig] = struct{}{}

		calleeBody := r.bodyBySig[sig]
		if calleeBody == nil || !calleeBody.Complete {
			r.Diags.AddError(diagnostic.CodeUnresolvedElement,
				fmt.Sprintf("helper %s could not be completed", callee.Name),
				pairString(top.Method.Source(), top.Method.Result), "")

			continue
		}

		r.checkForged(top, calleeBody, visited)
	}
}
