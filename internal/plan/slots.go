package plan

import (
	"strings"

	"mock-generator/internal/descriptor"
)

// NamedGroup is a set of members realized by one slot, nearest first.
type NamedGroup struct {
	Name    string
	Members []*descriptor.Member
}

// SlotNamer assigns slot names that are unique across one plan.
type SlotNamer struct {
	used map[string]bool
}

// NewSlotNamer creates a SlotNamer with no names taken.
func NewSlotNamer() *SlotNamer {
	return &SlotNamer{used: make(map[string]bool)}
}

// Taken reports whether name was already assigned.
func (n *SlotNamer) Taken(name string) bool {
	return n.used[name]
}

func (n *SlotNamer) take(name string) bool {
	if n.used[name] {
		return false
	}

	n.used[name] = true

	return true
}

// NameProperties assigns one slot per distinct property name, named after
// the property. Later declarations of the same name join the first slot.
func (n *SlotNamer) NameProperties(props []*descriptor.Member) (groups []NamedGroup, dropped []*descriptor.Member) {
	index := make(map[string]int)

	for _, p := range props {
		if i, ok := index[p.Name]; ok {
			groups[i].Members = append(groups[i].Members, p)
			continue
		}

		if !n.take(p.Name) {
			dropped = append(dropped, p)
			continue
		}

		index[p.Name] = len(groups)
		groups = append(groups, NamedGroup{Name: p.Name, Members: []*descriptor.Member{p}})
	}

	return groups, dropped
}

// NameMethods groups methods by name in first-seen order and names each
// slot. A group with a single parameter signature uses the member name; a
// group of overloads appends the short names of the parameter types
// (Add(int,int) → AddInt32Int32). Members sharing a signature join the
// first slot. A signature whose slot name is already taken is dropped.
func (n *SlotNamer) NameMethods(methods []*descriptor.Member) (groups []NamedGroup, dropped []*descriptor.Member) {
	var order []string

	byName := make(map[string][]*descriptor.Member)

	for _, m := range methods {
		if _, ok := byName[m.Name]; !ok {
			order = append(order, m.Name)
		}

		byName[m.Name] = append(byName[m.Name], m)
	}

	for _, name := range order {
		sigs, bySig := splitSignatures(byName[name])
		overloaded := len(sigs) > 1

		for _, sig := range sigs {
			members := bySig[sig]

			slotName := name
			if overloaded {
				slotName = OverloadName(members[0])
			}

			if !n.take(slotName) {
				dropped = append(dropped, members...)
				continue
			}

			groups = append(groups, NamedGroup{Name: slotName, Members: members})
		}
	}

	return groups, dropped
}

// splitSignatures partitions same-named members by parameter signature,
// keeping first-seen order.
func splitSignatures(members []*descriptor.Member) ([]string, map[string][]*descriptor.Member) {
	var sigs []string

	bySig := make(map[string][]*descriptor.Member)

	for _, m := range members {
		sig := m.Signature()
		if _, ok := bySig[sig]; !ok {
			sigs = append(sigs, sig)
		}

		bySig[sig] = append(bySig[sig], m)
	}

	return sigs, bySig
}

// OverloadName returns the disambiguated slot name of an overload: the
// member name followed by the short names of its parameter types.
func OverloadName(m *descriptor.Member) string {
	var sb strings.Builder

	sb.WriteString(m.Name)

	for _, p := range m.Params {
		sb.WriteString(p.Type.ShortName())
	}

	return sb.String()
}
