package plan

import (
	"fmt"

	"mock-generator/internal/common"
	"mock-generator/internal/descriptor"
)

// Candidate is one synthesis request.
type Candidate struct {
	// Name is the requested synthetic type name, e.g. "MyMock".
	Name string
	// Target is a type reference resolvable by a Resolver.
	Target string
	// Unit identifies the compilation unit (assembly) of the request site.
	Unit string
}

// SlotKind tags a Slot.
type SlotKind int

const (
	SlotMethod SlotKind = iota
	SlotProperty
)

// String returns a human-readable slot kind.
func (k SlotKind) String() string {
	switch k {
	case SlotMethod:
		return "method"
	case SlotProperty:
		return "property"
	default:
		return common.UnknownStr
	}
}

// Delegate is the callback signature backing a method slot.
type Delegate struct {
	Params []descriptor.Param
	// Returns is the effective return type; nil for void. For async
	// members it is the awaited type.
	Returns *descriptor.TypeRef
	// Declared is the member's declared return type (nil for void).
	Declared *descriptor.TypeRef
	// Async records that the override must complete asynchronously.
	Async bool
}

// Accessor is a property accessor kept in the plan.
type Accessor struct {
	Access descriptor.Accessibility
}

// Slot is one generated implementation unit for a member or overload.
type Slot struct {
	// Name is unique within a plan.
	Name string
	// Field is the backing delegate (method) or value (property) field.
	Field string
	Kind  SlotKind
	// Members are the members this slot realizes, nearest first.
	Members []*descriptor.Member
	// Access is the accessibility the synthetic member declares.
	Access descriptor.Accessibility
	// Override is true when the realized member is a class member and
	// must be declared with an override keyword.
	Override bool

	// Delegate is set for method slots.
	Delegate *Delegate
	// RecordsHistory is true for method slots; properties do not record.
	RecordsHistory bool

	// Value, Getter and Setter are set for property slots. A nil accessor
	// is omitted from the synthetic type.
	Value  *descriptor.TypeRef
	Getter *Accessor
	Setter *Accessor
}

// Member returns the nearest member the slot realizes.
func (s *Slot) Member() *descriptor.Member {
	if m, ok := common.First(s.Members); ok {
		return m
	}

	return nil
}

// Constructor forwards its arguments unchanged to a base constructor.
type Constructor struct {
	Base   *descriptor.Member
	Params []descriptor.Param
	Access descriptor.Accessibility
}

// Runtime is the runtime contract every instance of the plan satisfies.
type Runtime struct {
	// ReturnDefaultIfNotMocked is the initial value of the fallback flag.
	ReturnDefaultIfNotMocked bool
	// FallbackField names the fallback flag on the synthetic type.
	FallbackField string
	// HistoryField names the history accessor on the synthetic type.
	HistoryField string
}

// MockPlan is the complete, deterministic plan for one synthetic type.
type MockPlan struct {
	Candidate Candidate
	// Name is the synthetic type name, Namespace the target's namespace.
	Name      string
	Namespace string
	// FullName is Namespace.Name, the Registry key.
	FullName string
	Target   *descriptor.Type
	// Access is the accessibility of the synthetic type.
	Access    descriptor.Accessibility
	Ancestors []*descriptor.Type
	// Slots lists property slots first, then method slots, each in
	// ancestor precedence order.
	Slots        []*Slot
	Constructors []Constructor
	// ImplicitDefaultConstructor is true when the target declares no
	// constructors, so the synthetic type gets the implicit default one.
	ImplicitDefaultConstructor bool
	Runtime                    Runtime
	// DroppedOverloads are methods whose disambiguated slot name collided
	// with an earlier slot. They are dropped without a diagnostic.
	DroppedOverloads []*descriptor.Member
}

// Slot returns the slot with the given name, or nil.
func (p *MockPlan) Slot(name string) *Slot {
	for _, s := range p.Slots {
		if s.Name == name {
			return s
		}
	}

	return nil
}

// SlotNames returns the slot names in plan order.
func (p *MockPlan) SlotNames() []string {
	names := make([]string, 0, len(p.Slots))
	for _, s := range p.Slots {
		names = append(names, s.Name)
	}

	return names
}

// ConflictRecord reports a full name requested for a second target type.
type ConflictRecord struct {
	FullName string
	// Target is the rejected (later) target.
	Target *descriptor.Type
	// ClaimedBy is the target that claimed FullName first.
	ClaimedBy *descriptor.Type
}

// Message returns the human-readable conflict message.
func (c ConflictRecord) Message() string {
	return fmt.Sprintf("The type '%s' cannot be used for mocking '%s', as it was already used to mock '%s'",
		c.FullName, c.Target, c.ClaimedBy)
}
