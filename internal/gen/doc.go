// Package gen renders mock plans as Go source and plan documents.
//
// Generation uses text/template + go/format. Each plan becomes one file
// holding:
//   - a struct embedding mockrt.Mock (and the target struct for class targets)
//   - one func-typed Mock<Slot> field per method slot
//   - one mockrt.Property field per property slot
//   - methods that record the call, dispatch to the field when set and fall
//     back to mockrt.Unmocked otherwise
//   - constructors forwarding to the target's New<Type> function
//
// The emitted code refers to types by their package name, so generated
// files must live in a package other than the targets'.
package gen
