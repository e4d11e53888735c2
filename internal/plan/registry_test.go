package plan

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"mock-generator/internal/descriptor"
)

func planFor(name string, target *descriptor.Type) func() (*MockPlan, error) {
	return func() (*MockPlan, error) {
		return &MockPlan{Name: name, FullName: "Example." + name, Target: target}, nil
	}
}

func TestRegistry_BuildThenReuse(t *testing.T) {
	r := NewRegistry()
	svc := iface("IExternalSystemService")

	first, err := r.Claim("Example.MyMock", svc, planFor("MyMock", svc))
	require.NoError(t, err)
	assert.Equal(t, ClaimBuilt, first.State)
	require.NotNil(t, first.Plan)

	calls := 0
	second, err := r.Claim("Example.MyMock", svc, func() (*MockPlan, error) {
		calls++
		return nil, nil
	})
	require.NoError(t, err)
	assert.Equal(t, ClaimReused, second.State)
	assert.Same(t, first.Plan, second.Plan)
	assert.Zero(t, calls)
	assert.Equal(t, 1, r.Len())
}

func TestRegistry_ReuseByTypeID(t *testing.T) {
	r := NewRegistry()

	_, err := r.Claim("Example.MyMock", iface("IExternalSystemService"), planFor("MyMock", nil))
	require.NoError(t, err)

	// another compilation unit hands out its own descriptor of the same type
	out, err := r.Claim("Example.MyMock", iface("IExternalSystemService"), planFor("MyMock", nil))
	require.NoError(t, err)
	assert.Equal(t, ClaimReused, out.State)
}

func TestRegistry_Conflict(t *testing.T) {
	r := NewRegistry()
	svc1 := iface("IExternalSystemService")
	svc2 := iface("IExternalSystemService2")

	_, err := r.Claim("Example.MyMock", svc1, planFor("MyMock", svc1))
	require.NoError(t, err)

	built := false
	out, err := r.Claim("Example.MyMock", svc2, func() (*MockPlan, error) {
		built = true
		return nil, nil
	})
	require.NoError(t, err)
	assert.False(t, built)
	assert.Equal(t, ClaimConflict, out.State)
	assert.Nil(t, out.Plan)
	require.NotNil(t, out.Conflict)
	assert.Same(t, svc2, out.Conflict.Target)
	assert.Same(t, svc1, out.Conflict.ClaimedBy)
	assert.Equal(t,
		"The type 'Example.MyMock' cannot be used for mocking 'Example.IExternalSystemService2', "+
			"as it was already used to mock 'Example.IExternalSystemService'",
		out.Conflict.Message())

	// the first claim is untouched
	assert.Same(t, svc1, r.Lookup("Example.MyMock").Target)
}

func TestRegistry_BuildErrorLeavesNameUnclaimed(t *testing.T) {
	r := NewRegistry()
	svc := iface("IService")
	boom := errors.New("boom")

	_, err := r.Claim("Example.ServiceMock", svc, func() (*MockPlan, error) { return nil, boom })
	require.ErrorIs(t, err, boom)
	assert.Nil(t, r.Lookup("Example.ServiceMock"))
	assert.Zero(t, r.Len())

	out, err := r.Claim("Example.ServiceMock", svc, planFor("ServiceMock", svc))
	require.NoError(t, err)
	assert.Equal(t, ClaimBuilt, out.State)
}

func TestRegistry_PlansInClaimOrder(t *testing.T) {
	r := NewRegistry()

	for _, name := range []string{"CMock", "AMock", "BMock"} {
		_, err := r.Claim("Example."+name, iface("I"+name), planFor(name, nil))
		require.NoError(t, err)
	}

	var names []string
	for _, p := range r.Plans() {
		names = append(names, p.Name)
	}

	assert.Equal(t, []string{"CMock", "AMock", "BMock"}, names)
}

// TestRegistry_FirstClaimWins checks that every name ends up bound to the
// first target that claimed it, and that build runs once per name.
func TestRegistry_FirstClaimWins(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		targets := []*descriptor.Type{iface("IA"), iface("IB"), iface("IC")}
		names := []string{"Example.AMock", "Example.BMock"}

		r := NewRegistry()
		first := make(map[string]*descriptor.Type)
		builds := make(map[string]int)

		steps := rapid.IntRange(1, 20).Draw(t, "steps")
		for i := 0; i < steps; i++ {
			name := rapid.SampledFrom(names).Draw(t, "name")
			target := rapid.SampledFrom(targets).Draw(t, "target")

			out, err := r.Claim(name, target, func() (*MockPlan, error) {
				builds[name]++
				return &MockPlan{FullName: name, Target: target}, nil
			})
			if err != nil {
				t.Fatalf("claim: %v", err)
			}

			owner, claimed := first[name]
			switch {
			case !claimed:
				first[name] = target
				if out.State != ClaimBuilt {
					t.Fatalf("first claim of %s: got %s", name, out.State)
				}
			case owner == target:
				if out.State != ClaimReused {
					t.Fatalf("same-target claim of %s: got %s", name, out.State)
				}
			default:
				if out.State != ClaimConflict {
					t.Fatalf("other-target claim of %s: got %s", name, out.State)
				}
			}

			if builds[name] > 1 {
				t.Fatalf("%s built %d times", name, builds[name])
			}
		}

		for name, owner := range first {
			if r.Lookup(name).Target != owner {
				t.Fatalf("%s bound to %s, want %s", name, r.Lookup(name).Target, owner)
			}
		}
	})
}

func TestClaimState_String(t *testing.T) {
	assert.Equal(t, "Built", ClaimBuilt.String())
	assert.Equal(t, "Reused", ClaimReused.String())
	assert.Equal(t, "Conflict", ClaimConflict.String())
	assert.Equal(t, "ClaimState(7)", ClaimState(7).String())
}
