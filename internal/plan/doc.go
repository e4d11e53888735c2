// Package plan provides the synthesis pipeline that produces the MockPlans
// consumed by code emitters.
//
// Synthesis pipeline, per candidate:
//  1. Resolve the target reference → descriptor.Type (unresolved candidates are skipped)
//  2. Collect the ancestor sequence (target first, depth-first, deduplicated)
//  3. Enumerate overridable members, honoring the nearest-declaration rule
//  4. Group overloads and assign unique slot names
//  5. Resolve the accessibility each synthetic member must declare
//  6. Build the MockPlan and claim its full name in the Registry
//
// A name claimed for one target and requested again for the same target
// reuses the plan; requested for a different target it raises a
// name conflict diagnostic and no plan is built.
package plan
