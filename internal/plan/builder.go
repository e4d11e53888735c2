package plan

import (
	"errors"
	"fmt"

	"mock-generator/internal/common"
	"mock-generator/internal/descriptor"
)

var (
	// ErrInvalidDescriptor is returned when a candidate reaches a malformed descriptor.
	ErrInvalidDescriptor = errors.New("invalid descriptor")
	// ErrUnmockableTarget is returned when a target declares interface
	// members the synthetic type is not allowed to implement.
	ErrUnmockableTarget = errors.New("unmockable target")
)

// Runtime field names on every synthetic type.
const (
	FallbackField = "ReturnDefaultIfNotMocked"
	HistoryField  = "HistoryEntries"
)

// Locality tells whether a type lives in the request site's assembly.
type Locality func(t *descriptor.Type) bool

// Builder composes collection, enumeration, naming and accessibility
// into a MockPlan.
type Builder struct {
	config Config
	// ancestors defaults to Collect; the Generator swaps in its cache.
	ancestors func(*descriptor.Type) []*descriptor.Type
}

// NewBuilder creates a new Builder.
func NewBuilder(config Config) *Builder {
	return &Builder{
		config:    config,
		ancestors: Collect,
	}
}

// Build builds the plan for candidate c mocking target.
func (b *Builder) Build(c Candidate, target *descriptor.Type, local Locality) (*MockPlan, error) {
	if target == nil {
		return nil, fmt.Errorf("%w: nil target for %q", ErrInvalidDescriptor, c.Name)
	}

	if local == nil {
		local = func(*descriptor.Type) bool { return false }
	}

	ancestors := b.ancestors(target)
	if err := validateAncestors(ancestors); err != nil {
		return nil, err
	}

	p := &MockPlan{
		Candidate: c,
		Name:      c.Name,
		Namespace: target.ID.Namespace,
		FullName:  common.QualifiedName(target.ID.Namespace, c.Name),
		Target:    target,
		Access:    ResolveAccess(target.Access, local(target)),
		Ancestors: ancestors,
		Runtime: Runtime{
			ReturnDefaultIfNotMocked: b.config.ReturnDefaultIfNotMocked,
			FallbackField:            FallbackField,
			HistoryField:             HistoryField,
		},
	}

	members := Enumerate(ancestors)
	if m := privateInterfaceMember(members, local); m != nil {
		return nil, fmt.Errorf("%w: %s cannot implement private member %s", ErrUnmockableTarget, c.Name, m)
	}

	namer := NewSlotNamer()

	b.addPropertySlots(p, namer, members.Properties, local)
	b.addMethodSlots(p, namer, members.Methods, local)
	addConstructors(p, members.Constructors, local)

	return p, nil
}

func (b *Builder) addPropertySlots(p *MockPlan, namer *SlotNamer, props []*descriptor.Member, local Locality) {
	var kept []*descriptor.Member

	accessors := make(map[*descriptor.Member][2]*Accessor)

	for _, prop := range props {
		getter, setter := ResolveAccessors(prop, local(prop.Owner))
		if getter == nil && setter == nil {
			continue
		}

		accessors[prop] = [2]*Accessor{getter, setter}
		kept = append(kept, prop)
	}

	groups, dropped := namer.NameProperties(kept)
	p.DroppedOverloads = append(p.DroppedOverloads, dropped...)

	for _, g := range groups {
		prop := g.Members[0]
		acc := accessors[prop]
		value := prop.Value

		p.Slots = append(p.Slots, &Slot{
			Name:     g.Name,
			Field:    b.config.FieldPrefix + g.Name,
			Kind:     SlotProperty,
			Members:  g.Members,
			Access:   ResolveAccess(prop.Access, local(prop.Owner)),
			Override: prop.Owner.IsClass(),
			Value:    &value,
			Getter:   acc[0],
			Setter:   acc[1],
		})
	}
}

func (b *Builder) addMethodSlots(p *MockPlan, namer *SlotNamer, methods []*descriptor.Member, local Locality) {
	var kept []*descriptor.Member

	for _, m := range methods {
		// private members cannot be overridden
		if ResolveAccess(m.Access, local(m.Owner)) == descriptor.AccessPrivate {
			continue
		}

		kept = append(kept, m)
	}

	groups, dropped := namer.NameMethods(kept)
	p.DroppedOverloads = append(p.DroppedOverloads, dropped...)

	for _, g := range groups {
		m := g.Members[0]

		p.Slots = append(p.Slots, &Slot{
			Name:     g.Name,
			Field:    b.config.FieldPrefix + g.Name,
			Kind:     SlotMethod,
			Members:  g.Members,
			Access:   ResolveAccess(m.Access, local(m.Owner)),
			Override: m.Owner.IsClass(),
			Delegate: &Delegate{
				Params:   m.Params,
				Returns:  m.EffectiveReturn(),
				Declared: m.Returns,
				Async:    m.Async,
			},
			RecordsHistory: true,
		})
	}
}

func addConstructors(p *MockPlan, ctors []*descriptor.Member, local Locality) {
	p.ImplicitDefaultConstructor = len(ctors) == 0

	for _, ctor := range ctors {
		access := ResolveAccess(ctor.Access, local(p.Target))
		if access == descriptor.AccessPrivate {
			continue
		}

		p.Constructors = append(p.Constructors, Constructor{
			Base:   ctor,
			Params: ctor.Params,
			Access: access,
		})
	}
}

// privateInterfaceMember returns the first interface member that resolves
// to private, or nil.
func privateInterfaceMember(members Members, local Locality) *descriptor.Member {
	for _, list := range [][]*descriptor.Member{members.Properties, members.Methods} {
		for _, m := range list {
			if m.Owner.IsInterface() && ResolveAccess(m.Access, local(m.Owner)) == descriptor.AccessPrivate {
				return m
			}
		}
	}

	return nil
}

// validateAncestors rejects descriptors the pipeline cannot plan against.
func validateAncestors(ancestors []*descriptor.Type) error {
	for _, t := range ancestors {
		for i, m := range t.Members {
			switch {
			case m == nil:
				return fmt.Errorf("%w: %s member %d is nil", ErrInvalidDescriptor, t, i)
			case m.Name == "" && !m.Constructor:
				return fmt.Errorf("%w: %s member %d has no name", ErrInvalidDescriptor, t, i)
			case m.Owner == nil:
				return fmt.Errorf("%w: %s.%s has no owner", ErrInvalidDescriptor, t, m.Name)
			case m.Async && m.Returns == nil:
				return fmt.Errorf("%w: async %s has no return type", ErrInvalidDescriptor, m)
			}
		}
	}

	return nil
}
