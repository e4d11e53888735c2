package plan

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"mock-generator/internal/descriptor"
)

func TestCollect_Singleton(t *testing.T) {
	svc := iface("IExternalSystemService", method("Add", "int", "int", "int"))

	got := Collect(svc)
	require.Len(t, got, 1)
	assert.Same(t, svc, got[0])
}

func TestCollect_Nil(t *testing.T) {
	assert.Empty(t, Collect(nil))
}

func TestCollect_DepthFirstOrder(t *testing.T) {
	root := iface("IRoot")
	left := iface("ILeft")
	left.Interfaces = []*descriptor.Type{root}
	right := iface("IRight")
	right.Interfaces = []*descriptor.Type{root}

	base := abstractClass("ServiceBase")
	base.Base = objectType()
	base.Interfaces = []*descriptor.Type{right}

	svc := class("Service")
	svc.Base = base
	svc.Interfaces = []*descriptor.Type{left, right}

	got := Collect(svc)
	assert.Equal(t, []string{"Service", "ServiceBase", "IRight", "IRoot", "ILeft"}, typeNames(got))
}

func TestCollect_SkipsBuiltinRoot(t *testing.T) {
	svc := class("ExternalSystemService")
	svc.Base = objectType()

	assert.Equal(t, []string{"ExternalSystemService"}, typeNames(Collect(svc)))
}

// genHierarchy draws a random acyclic hierarchy; edges only point to
// types with a lower index.
func genHierarchy(rt *rapid.T) []*descriptor.Type {
	n := rapid.IntRange(1, 12).Draw(rt, "types")
	types := make([]*descriptor.Type, n)

	for i := range n {
		if rapid.Bool().Draw(rt, fmt.Sprintf("class%d", i)) {
			types[i] = class(fmt.Sprintf("T%d", i))
		} else {
			types[i] = iface(fmt.Sprintf("T%d", i))
		}

		if i == 0 {
			continue
		}

		if types[i].IsClass() && rapid.Bool().Draw(rt, fmt.Sprintf("hasBase%d", i)) {
			types[i].Base = types[rapid.IntRange(0, i-1).Draw(rt, fmt.Sprintf("base%d", i))]
		}

		k := rapid.IntRange(0, 3).Draw(rt, fmt.Sprintf("ifaces%d", i))
		for j := range k {
			types[i].Interfaces = append(types[i].Interfaces,
				types[rapid.IntRange(0, i-1).Draw(rt, fmt.Sprintf("iface%d_%d", i, j))])
		}
	}

	return types
}

func reachable(t *descriptor.Type, into map[*descriptor.Type]bool) {
	if t == nil || into[t] {
		return
	}

	into[t] = true
	reachable(t.Base, into)

	for _, i := range t.Interfaces {
		reachable(i, into)
	}
}

func TestCollect_Properties(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		types := genHierarchy(rt)
		target := types[len(types)-1]

		got := Collect(target)
		if len(got) == 0 || got[0] != target {
			rt.Fatalf("target must come first, got %v", typeNames(got))
		}

		seen := make(map[*descriptor.Type]bool)
		for _, tp := range got {
			if seen[tp] {
				rt.Fatalf("%s collected twice", tp.ID.Name)
			}

			seen[tp] = true
		}

		want := make(map[*descriptor.Type]bool)
		reachable(target, want)

		if len(want) != len(got) {
			rt.Fatalf("collected %d types, %d reachable", len(got), len(want))
		}

		again := Collect(target)
		if fmt.Sprint(typeNames(again)) != fmt.Sprint(typeNames(got)) {
			rt.Fatalf("re-collection changed order: %v vs %v", typeNames(got), typeNames(again))
		}
	})
}
