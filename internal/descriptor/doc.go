// Package descriptor provides the read-only type model the mock engine
// plans against.
//
// Descriptors are snapshots handed over by a semantic resolver (a YAML
// manifest or the Go package analyzer). The engine never mutates them.
//
// Key types:
//   - TypeID: namespace + type name
//   - Type: kind (interface/class), accessibility, assembly, base, interfaces, members
//   - Member: tagged union of a method or a property
//   - TypeRef: a referenced value type (qualified display + short metadata name)
//   - Snapshot: an ordered, immutable set of Types that resolves references
package descriptor
