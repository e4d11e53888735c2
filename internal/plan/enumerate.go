package plan

import (
	"strings"

	"mock-generator/internal/descriptor"
)

// Members are the candidate members of an ancestor sequence.
type Members struct {
	Methods      []*descriptor.Member
	Properties   []*descriptor.Member
	Constructors []*descriptor.Member
}

type memberKey struct {
	kind descriptor.MemberKind
	name string
}

// Enumerate extracts the implementable members of an ancestor sequence
// (as returned by Collect) in precedence order.
//
// Static and compiler-synthesized members are skipped, and constructors
// are only taken from the target itself (ancestors[0]). Interface members
// are always implementable; class members only when abstract, virtual or
// a non-sealed override.
//
// When the nearest declaration of a name is a class member that cannot be
// overridden, the whole name is excluded: no overload of it gets a slot,
// even if an overridable declaration exists further up.
func Enumerate(ancestors []*descriptor.Type) Members {
	var out Members

	if len(ancestors) == 0 {
		return out
	}

	target := ancestors[0]
	seen := make(map[memberKey]bool)
	blocked := make(map[memberKey]bool)

	for _, t := range ancestors {
		for _, m := range t.Members {
			if m == nil || m.Static || m.Implicit {
				continue
			}

			if m.Kind == descriptor.MemberKindMethod && m.Constructor {
				if t == target {
					out.Constructors = append(out.Constructors, m)
				}

				continue
			}

			if isAccessorMethod(m) {
				continue
			}

			key := memberKey{kind: m.Kind, name: m.Name}
			if !seen[key] {
				seen[key] = true
				blocked[key] = !overridable(t, m)
			}

			if blocked[key] || !overridable(t, m) {
				continue
			}

			switch m.Kind {
			case descriptor.MemberKindMethod:
				out.Methods = append(out.Methods, m)
			case descriptor.MemberKindProperty:
				out.Properties = append(out.Properties, m)
			}
		}
	}

	return out
}

// overridable reports whether m, declared on t, can be implemented by a
// synthetic subtype. Interface members always can.
func overridable(t *descriptor.Type, m *descriptor.Member) bool {
	if t.IsInterface() {
		return true
	}

	return m.Abstract || m.Virtual || (m.Override && !m.Sealed)
}

// isAccessorMethod reports whether m is a property accessor surfaced as a method.
func isAccessorMethod(m *descriptor.Member) bool {
	return m.Kind == descriptor.MemberKindMethod &&
		(strings.HasPrefix(m.Name, "get_") || strings.HasPrefix(m.Name, "set_"))
}
