package descriptor

import (
	"errors"
	"fmt"
	"strings"
)

// ErrDuplicateType is returned when a snapshot already holds a type with the same ID.
var ErrDuplicateType = errors.New("duplicate type")

// Snapshot is an ordered set of type descriptors for one generation pass.
// It is populated once and then only read.
type Snapshot struct {
	order []*Type
	byID  map[TypeID]*Type
}

// NewSnapshot creates an empty Snapshot.
func NewSnapshot() *Snapshot {
	return &Snapshot{
		byID: make(map[TypeID]*Type),
	}
}

// Add registers a type. Types keep their insertion order.
func (s *Snapshot) Add(t *Type) error {
	if t == nil {
		return errors.New("nil type")
	}

	if _, ok := s.byID[t.ID]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateType, t.ID)
	}

	s.byID[t.ID] = t
	s.order = append(s.order, t)

	return nil
}

// Lookup returns the type with the given ID, or nil.
func (s *Snapshot) Lookup(id TypeID) *Type {
	return s.byID[id]
}

// Types returns all types in insertion order.
func (s *Snapshot) Types() []*Type {
	return s.order
}

// Len returns the number of types in the snapshot.
func (s *Snapshot) Len() int {
	return len(s.order)
}

// Resolve resolves a type reference like:
// - "Example.IExternalSystemService" (qualified)
// - "mock-generator/examples/calculator.Calculator" (import path qualified)
// - "calculator.Calculator" (package name or last import path element)
// - "IExternalSystemService" or "Outer.Inner" (name only).
//
// Unresolved references return nil without error; the first match in
// insertion order wins.
func (s *Snapshot) Resolve(ref string) (*Type, error) {
	ref = strings.TrimPrefix(strings.TrimSpace(ref), "global::")
	if ref == "" {
		return nil, nil
	}

	for _, t := range s.order {
		if t.ID.String() == ref {
			return t, nil
		}
	}

	for _, t := range s.order {
		if t.ID.Name == ref {
			return t, nil
		}
	}

	for _, t := range s.order {
		if !strings.HasSuffix(ref, "."+t.ID.Name) {
			continue
		}

		ns := strings.TrimSuffix(ref, "."+t.ID.Name)
		if t.ID.Namespace == ns || (t.Package != "" && t.Package == ns) || strings.HasSuffix(t.ID.Namespace, "/"+ns) || strings.HasSuffix(t.ID.Namespace, "."+ns) {
			return t, nil
		}
	}

	return nil, nil
}

// IsSameAssembly reports whether t is declared in the given compilation unit.
func (s *Snapshot) IsSameAssembly(unit string, t *Type) bool {
	return t != nil && t.Assembly == unit
}

// Names returns the qualified names of all types in insertion order.
func (s *Snapshot) Names() []string {
	names := make([]string, 0, len(s.order))
	for _, t := range s.order {
		names = append(names, t.ID.String())
	}

	return names
}
