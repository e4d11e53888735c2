// Package analyze provides package loading and descriptor extraction.
//
// It uses golang.org/x/tools/go/packages with go/types to turn the named
// interfaces and structs of Go packages into a descriptor.Snapshot the
// mock engine can plan against.
//
// Go types map onto descriptors as follows:
//   - interface: an interface descriptor; embedded interfaces are its
//     Interfaces, explicitly declared methods its members
//   - struct: a class descriptor; the first embedded struct is its Base,
//     embedded interfaces are its Interfaces, exported fields are
//     non-overridable properties, and exported methods are overridable
//     (an embedding mock shadows them)
//   - func NewX(...) X or *X: a constructor of X
//   - exported identifiers are public, unexported ones internal; the
//     package path is both namespace and assembly
//
// Generic types are skipped.
package analyze
