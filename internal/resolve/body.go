package resolve

import (
	"mapforge/internal/descriptor"
)

// MethodBody is the generated body of a declared or forged mapping method:
// the resolved assignment tree plus the bound lifecycle callbacks. The
// emitter consumes it together with the method descriptor.
type MethodBody struct {
	Method *descriptor.Method
	// Assignment is the body's transformation; for container methods it is
	// an AssignContainer node, otherwise the single value assignment.
	Assignment *Assignment
	// Before and After are the bound lifecycle callback methods.
	Before []*descriptor.Method
	After  []*descriptor.Method
	// Complete is false when a nested element/key/value could not be
	// resolved. Incomplete forged bodies defer their diagnostic to whichever
	// top-level mapping method actually needed them.
	Complete bool
}
