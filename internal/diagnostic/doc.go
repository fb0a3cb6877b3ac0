// Package diagnostic provides structured warnings, errors, and
// "why this resolved" explanations for the mapping resolution engine.
//
// Key capabilities:
//   - No-conversion-path errors with the offending type pair
//   - Ambiguous method reports naming all candidates
//   - Cyclic forge rejections
//   - Unresolved container element reports
package diagnostic
