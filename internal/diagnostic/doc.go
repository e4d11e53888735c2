// Package diagnostic provides structured errors, warnings and notes
// collected during a mock generation pass.
//
// Key capabilities:
//   - Name conflict errors (one requested mock name, two target types)
//   - Unresolved target notes with near-miss suggestions
//   - Manifest validation errors
//   - Stable codes so hosts can filter or escalate diagnostics
package diagnostic
