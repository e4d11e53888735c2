package plan

import (
	"mock-generator/internal/descriptor"
)

//go:generate go tool stringer -type=ClaimState -trimprefix=Claim -output=claim_state_string.go

// ClaimState is the outcome of a Registry claim.
type ClaimState int

const (
	// ClaimBuilt means the name was unclaimed and its plan was built.
	ClaimBuilt ClaimState = iota
	// ClaimReused means the name was claimed for the same target.
	ClaimReused
	// ClaimConflict means the name was claimed for a different target.
	ClaimConflict
)

// Outcome is the result of Registry.Claim.
type Outcome struct {
	State ClaimState
	// Plan is the claimed plan; nil on conflict.
	Plan *MockPlan
	// Conflict is set on ClaimConflict.
	Conflict *ConflictRecord
}

type claim struct {
	target *descriptor.Type
	plan   *MockPlan
}

// Registry tracks one plan per requested full name for one generation
// pass. It is a flat map and is not safe for concurrent use; the
// Generator serializes access.
type Registry struct {
	claims map[string]*claim
	order  []string
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{claims: make(map[string]*claim)}
}

// Claim claims fullName for target. An unclaimed name calls build and
// records its plan; a name claimed by the same target returns the
// recorded plan without building; a name claimed by another target
// returns a ConflictRecord and never calls build.
//
// A build error leaves the name unclaimed.
func (r *Registry) Claim(fullName string, target *descriptor.Type, build func() (*MockPlan, error)) (Outcome, error) {
	if existing, ok := r.claims[fullName]; ok {
		if sameTarget(existing.target, target) {
			return Outcome{State: ClaimReused, Plan: existing.plan}, nil
		}

		return Outcome{
			State: ClaimConflict,
			Conflict: &ConflictRecord{
				FullName:  fullName,
				Target:    target,
				ClaimedBy: existing.target,
			},
		}, nil
	}

	p, err := build()
	if err != nil {
		return Outcome{}, err
	}

	r.claims[fullName] = &claim{target: target, plan: p}
	r.order = append(r.order, fullName)

	return Outcome{State: ClaimBuilt, Plan: p}, nil
}

// Lookup returns the plan claimed under fullName, or nil.
func (r *Registry) Lookup(fullName string) *MockPlan {
	if c, ok := r.claims[fullName]; ok {
		return c.plan
	}

	return nil
}

// Plans returns all claimed plans in claim order.
func (r *Registry) Plans() []*MockPlan {
	plans := make([]*MockPlan, 0, len(r.order))
	for _, name := range r.order {
		plans = append(plans, r.claims[name].plan)
	}

	return plans
}

// Len returns the number of claimed names.
func (r *Registry) Len() int {
	return len(r.order)
}

// sameTarget compares by identity, then by TypeID, since separate
// compilation units may hand out distinct descriptors of one type.
func sameTarget(a, b *descriptor.Type) bool {
	if a == b {
		return true
	}

	return a != nil && b != nil && a.ID == b.ID
}
