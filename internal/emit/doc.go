// Package emit renders resolved method bodies into Go source.
//
// Generation approach uses text/template + go/format for readable,
// allocation-light Go code.
//
// Codegen patterns:
//   - Direct assignment
//   - Open/close conversion wrapping
//   - Mapping method calls, with error plumbing for throwing callees
//   - Container loops (make or factory, per-element conversion, append
//     or keyed insert)
//   - Lifecycle callback invocations around the body
package emit
