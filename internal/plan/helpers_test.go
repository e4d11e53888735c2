package plan

import (
	"fmt"

	"mock-generator/internal/descriptor"
)

const (
	testNamespace = "Example"
	testAssembly  = "TestImplementation"
)

func iface(name string, members ...*descriptor.Member) *descriptor.Type {
	return newType(descriptor.TypeKindInterface, name, members...)
}

func class(name string, members ...*descriptor.Member) *descriptor.Type {
	return newType(descriptor.TypeKindClass, name, members...)
}

func abstractClass(name string, members ...*descriptor.Member) *descriptor.Type {
	t := newType(descriptor.TypeKindClass, name, members...)
	t.Abstract = true

	return t
}

func newType(kind descriptor.TypeKind, name string, members ...*descriptor.Member) *descriptor.Type {
	t := &descriptor.Type{
		ID:       descriptor.TypeID{Namespace: testNamespace, Name: name},
		Kind:     kind,
		Access:   descriptor.AccessInternal,
		Assembly: testAssembly,
	}

	for _, m := range members {
		m.Owner = t
	}

	t.Members = members

	return t
}

func ref(name string) descriptor.TypeRef {
	return descriptor.TypeRef{Name: name}
}

// method builds a public method; an empty returns means void.
func method(name, returns string, params ...string) *descriptor.Member {
	m := &descriptor.Member{
		Kind:   descriptor.MemberKindMethod,
		Name:   name,
		Access: descriptor.AccessPublic,
	}

	for i, p := range params {
		m.Params = append(m.Params, descriptor.Param{Name: fmt.Sprintf("operand%d", i+1), Type: ref(p)})
	}

	if returns != "" {
		r := ref(returns)
		m.Returns = &r
	}

	return m
}

func asyncMethod(name, awaited string, params ...string) *descriptor.Member {
	m := method(name, "System.Threading.Tasks.Task<"+awaited+">", params...)
	a := ref(awaited)
	m.Returns.Awaited = &a
	m.Async = true

	return m
}

func ctor(params ...string) *descriptor.Member {
	m := method("", "", params...)
	m.Constructor = true

	return m
}

func prop(name, typ string, getter, setter bool) *descriptor.Member {
	m := &descriptor.Member{
		Kind:   descriptor.MemberKindProperty,
		Name:   name,
		Access: descriptor.AccessPublic,
		Value:  ref(typ),
	}

	if getter {
		m.Getter = &descriptor.Accessor{}
	}

	if setter {
		m.Setter = &descriptor.Accessor{}
	}

	return m
}

func virtual(m *descriptor.Member) *descriptor.Member {
	m.Virtual = true
	return m
}

func abstract(m *descriptor.Member) *descriptor.Member {
	m.Abstract = true
	return m
}

func static(m *descriptor.Member) *descriptor.Member {
	m.Static = true
	return m
}

func withAccess(a descriptor.Accessibility, m *descriptor.Member) *descriptor.Member {
	m.Access = a
	return m
}

// objectType is the builtin root all classes derive from.
func objectType() *descriptor.Type {
	t := class("Object", virtual(method("ToString", "string")))
	t.ID.Namespace = "System"
	t.Builtin = true

	return t
}

func sameAssembly(t *descriptor.Type) bool {
	return t.Assembly == testAssembly
}

func otherAssembly(*descriptor.Type) bool {
	return false
}

func memberNames(ms []*descriptor.Member) []string {
	names := make([]string, 0, len(ms))
	for _, m := range ms {
		names = append(names, m.Owner.ID.Name+"."+m.Name)
	}

	return names
}

func typeNames(ts []*descriptor.Type) []string {
	names := make([]string, 0, len(ts))
	for _, t := range ts {
		names = append(names, t.ID.Name)
	}

	return names
}
