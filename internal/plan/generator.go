package plan

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"mock-generator/internal/common"
	"mock-generator/internal/descriptor"
	"mock-generator/internal/diagnostic"
	"mock-generator/internal/match"
)

// Resolver is the semantic resolver the engine consumes.
type Resolver interface {
	// Resolve resolves a type reference. An unresolved reference returns
	// nil without error; an error aborts the pass.
	Resolve(ref string) (*descriptor.Type, error)
	// IsSameAssembly reports whether t is declared in compilation unit unit.
	IsSameAssembly(unit string, t *descriptor.Type) bool
}

// NameLister is optionally implemented by a Resolver to power
// suggestions for unresolved targets.
type NameLister interface {
	Names() []string
}

// Result is the output of a generation pass.
type Result struct {
	// Plans holds one plan per accepted full name, in claim order.
	Plans       []*MockPlan
	Conflicts   []ConflictRecord
	Diagnostics diagnostic.Diagnostics
}

// Option configures a Generator.
type Option func(*Generator)

// WithLogger sets the logger used for pass events.
func WithLogger(logger *slog.Logger) Option {
	return func(g *Generator) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// Generator runs one generation pass. Generate may be called
// concurrently for different compilation units; the registry, the
// ancestor cache and the collected diagnostics sit behind one lock.
type Generator struct {
	resolver Resolver
	config   Config
	builder  *Builder
	logger   *slog.Logger

	mu        sync.Mutex
	registry  *Registry
	ancestors map[*descriptor.Type][]*descriptor.Type
	conflicts []ConflictRecord
	diags     diagnostic.Diagnostics
}

// NewGenerator creates a Generator for one pass over resolver's types.
func NewGenerator(resolver Resolver, config Config, opts ...Option) *Generator {
	g := &Generator{
		resolver:  resolver,
		config:    config,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		registry:  NewRegistry(),
		ancestors: make(map[*descriptor.Type][]*descriptor.Type),
	}

	g.builder = NewBuilder(config)
	g.builder.ancestors = g.cachedAncestors

	for _, opt := range opts {
		opt(g)
	}

	return g
}

// Generate processes the candidates of one compilation unit in order.
// Per-candidate problems become diagnostics; only resolver failures are
// returned.
func (g *Generator) Generate(candidates []Candidate) error {
	for _, c := range candidates {
		if err := g.generateOne(c); err != nil {
			return err
		}
	}

	return nil
}

// GenerateUnits processes several compilation units concurrently and
// returns the first error. Within a unit candidates keep their order.
func (g *Generator) GenerateUnits(units ...[]Candidate) error {
	var eg errgroup.Group

	for _, unit := range units {
		eg.Go(func() error {
			return g.Generate(unit)
		})
	}

	return eg.Wait()
}

// Result returns the plans and diagnostics collected so far. In strict
// mode an error is returned alongside when error diagnostics exist.
func (g *Generator) Result() (*Result, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	res := &Result{
		Plans:     g.registry.Plans(),
		Conflicts: append([]ConflictRecord(nil), g.conflicts...),
	}
	res.Diagnostics.Merge(g.diags)

	if g.config.StrictMode && res.Diagnostics.HasErrors() {
		return res, errors.New("strict mode: generation failed with errors")
	}

	return res, nil
}

func (g *Generator) generateOne(c Candidate) error {
	target, err := g.resolver.Resolve(c.Target)
	if err != nil {
		return fmt.Errorf("resolving target %q of %s: %w", c.Target, c.Name, err)
	}

	if target == nil {
		g.unresolved(c)
		return nil
	}

	fullName := common.QualifiedName(target.ID.Namespace, c.Name)
	local := func(t *descriptor.Type) bool {
		return g.resolver.IsSameAssembly(c.Unit, t)
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	outcome, err := g.registry.Claim(fullName, target, func() (*MockPlan, error) {
		return g.builder.Build(c, target, local)
	})
	if err != nil {
		g.logger.Warn("plan failed", "mock", fullName, "target", target.String(), "error", err)

		code := diagnostic.CodeInvalidDescriptor
		if errors.Is(err, ErrUnmockableTarget) {
			code = diagnostic.CodeUnmockableTarget
		}

		g.diags.AddError(code, err.Error(), fullName, "")

		return nil
	}

	switch outcome.State {
	case ClaimBuilt:
		g.logger.Debug("plan built", "mock", fullName, "target", target.String(),
			"slots", len(outcome.Plan.Slots), "dropped", len(outcome.Plan.DroppedOverloads))

		if g.config.NamePostfix != "" && !strings.HasSuffix(c.Name, g.config.NamePostfix) {
			g.diags.AddWarning(diagnostic.CodeMockNamePostfix,
				fmt.Sprintf("mock name %q does not end in %q", c.Name, g.config.NamePostfix), fullName, "")
		}

		for _, m := range outcome.Plan.DroppedOverloads {
			g.logger.Debug("overload dropped", "mock", fullName, "member", m.String())
		}
	case ClaimReused:
		g.logger.Debug("plan reused", "mock", fullName)
	case ClaimConflict:
		g.logger.Warn("mock name conflict", "mock", fullName,
			"target", target.String(), "claimed_by", outcome.Conflict.ClaimedBy.String())
		g.conflicts = append(g.conflicts, *outcome.Conflict)
		g.diags.AddError(diagnostic.CodeNameConflict, outcome.Conflict.Message(), fullName, "")
	}

	return nil
}

func (g *Generator) unresolved(c Candidate) {
	var suggestions []string
	if lister, ok := g.resolver.(NameLister); ok {
		suggestions = match.Suggest(c.Target, lister.Names(), g.config.MaxSuggestions)
	}

	g.logger.Debug("target unresolved, skipping", "mock", c.Name, "target", c.Target)

	g.mu.Lock()
	defer g.mu.Unlock()

	g.diags.AddInfo(diagnostic.CodeUnresolvedTarget,
		fmt.Sprintf("target %q of %s could not be resolved", c.Target, c.Name), c.Name, "", suggestions...)
}

// cachedAncestors memoizes Collect per target. Callers hold g.mu.
func (g *Generator) cachedAncestors(t *descriptor.Type) []*descriptor.Type {
	if cached, ok := g.ancestors[t]; ok {
		return cached
	}

	ancestors := Collect(t)
	g.ancestors[t] = ancestors

	return ancestors
}
