package plan

import (
	"slices"

	"mock-generator/internal/descriptor"
)

// Collect flattens the ancestry of target into a deduplicated sequence:
// target first, then its base chain, then its interfaces in declaration
// order, depth-first. Builtin root types are never entered.
//
// The order is precedence: a member declared closer to the front wins.
func Collect(target *descriptor.Type) []*descriptor.Type {
	var result []*descriptor.Type

	collectInto(&result, target)

	return result
}

func collectInto(result *[]*descriptor.Type, t *descriptor.Type) {
	if t == nil || t.Builtin || slices.Contains(*result, t) {
		return
	}

	*result = append(*result, t)

	collectInto(result, t.Base)

	for _, iface := range t.Interfaces {
		collectInto(result, iface)
	}
}
