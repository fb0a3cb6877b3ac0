package resolve

import (
	"mapforge/internal/descriptor"
	"mapforge/internal/index"
)

// BindCallbacks selects the declared lifecycle callback methods applicable
// to a mapping method: before-mapping callbacks run on the source before the
// body, after-mapping callbacks run on the result after it. Callers
// assembling generated bodies consume the two lists in order.
func BindCallbacks(ix *index.Index, m *descriptor.Method) (before, after []*descriptor.Method) {
	before = ix.Callbacks(descriptor.CallbackBefore, m.Source(), m.Result)
	after = ix.Callbacks(descriptor.CallbackAfter, m.Source(), m.Result)

	return before, after
}
