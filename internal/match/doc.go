// Package match provides name normalization, Levenshtein distance and
// near-miss ranking used to suggest type names for unresolved mock targets.
//
// Key functions:
//   - NormalizeIdent: normalizes identifiers for fuzzy matching
//   - TokenizeIdent: splits CamelCase identifiers, used for file names
//   - Levenshtein: computes edit distance between strings
//   - Suggest: ranks known names against an unresolved reference
package match
