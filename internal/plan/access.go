package plan

import (
	"mock-generator/internal/descriptor"
)

// ResolveAccess maps a member's declared accessibility to the one its
// synthetic override must declare. sameAssembly tells whether the request
// site lives in the member's assembly; assembly-limited members requested
// from outside are widened.
//
//	public, not-applicable  → public
//	private                 → private
//	protected-and-internal  → protected-and-internal (same assembly) / protected
//	protected-or-internal   → protected-and-internal (same assembly) / protected
//	protected               → protected
//	internal                → internal (same assembly) / public
func ResolveAccess(declared descriptor.Accessibility, sameAssembly bool) descriptor.Accessibility {
	switch declared {
	case descriptor.AccessPrivate:
		return descriptor.AccessPrivate
	case descriptor.AccessProtectedAndInternal, descriptor.AccessProtectedOrInternal:
		if sameAssembly {
			return descriptor.AccessProtectedAndInternal
		}

		return descriptor.AccessProtected
	case descriptor.AccessProtected:
		return descriptor.AccessProtected
	case descriptor.AccessInternal:
		if sameAssembly {
			return descriptor.AccessInternal
		}

		return descriptor.AccessPublic
	default:
		return descriptor.AccessPublic
	}
}

// ResolveAccessors resolves a property's getter and setter independently.
// An accessor without its own accessibility inherits the property's.
// Missing and private accessors come back nil.
func ResolveAccessors(prop *descriptor.Member, sameAssembly bool) (getter, setter *Accessor) {
	return resolveAccessor(prop, prop.Getter, sameAssembly), resolveAccessor(prop, prop.Setter, sameAssembly)
}

func resolveAccessor(prop *descriptor.Member, acc *descriptor.Accessor, sameAssembly bool) *Accessor {
	if acc == nil {
		return nil
	}

	declared := acc.Access
	if declared == descriptor.AccessNotApplicable {
		declared = prop.Access
	}

	resolved := ResolveAccess(declared, sameAssembly)
	if resolved == descriptor.AccessPrivate {
		return nil
	}

	return &Accessor{Access: resolved}
}
