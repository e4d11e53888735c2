package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"mock-generator/internal/analyze"
	"mock-generator/internal/descriptor"
	"mock-generator/internal/gen"
	"mock-generator/internal/manifest"
	"mock-generator/internal/plan"
)

// CheckCmd validates a manifest.
type CheckCmd struct {
	Manifest string `arg:"" help:"Manifest file." type:"existingfile"`
}

func (c *CheckCmd) Run(g *Globals) error {
	f, err := manifest.LoadFile(c.Manifest)
	if err != nil {
		return err
	}

	diags := manifest.Validate(f)
	g.report(diags)

	if diags.HasErrors() {
		return fmt.Errorf("%s: %d error(s)", c.Manifest, len(diags.Errors))
	}

	_, err = fmt.Fprintf(g.stdout, "%s: ok (%d types, %d mocks)\n", c.Manifest, len(f.Types), len(f.Mocks))

	return err
}

// PlanCmd plans the mocks a manifest requests.
type PlanCmd struct {
	Manifest      string `arg:"" help:"Manifest file." type:"existingfile"`
	Out           string `help:"Write the plan document to this file instead of stdout." short:"o" type:"path"`
	Strict        bool   `help:"Fail when any error diagnostic is reported."`
	ReturnDefault bool   `help:"Make unmocked members return defaults instead of failing." name:"return-default"`
	Parallel      bool   `help:"Plan compilation units concurrently. Claim order between units is then unspecified."`
}

func (c *PlanCmd) Run(g *Globals) error {
	f, err := manifest.LoadFile(c.Manifest)
	if err != nil {
		return err
	}

	snap, diags, err := manifest.Link(f)
	g.report(diags)

	if err != nil {
		return err
	}

	config := manifest.PlanConfig(f, plan.DefaultConfig())
	config.StrictMode = config.StrictMode || c.Strict
	config.ReturnDefaultIfNotMocked = config.ReturnDefaultIfNotMocked || c.ReturnDefault

	res, err := runPlanner(g, snap, config, manifest.Candidates(f), c.Parallel)
	if err != nil {
		return err
	}

	doc, err := plan.ExportYAML(res)
	if err != nil {
		return fmt.Errorf("failed to export plan: %w", err)
	}

	if c.Out == "" {
		_, err = g.stdout.Write(doc)
		return err
	}

	if err := os.WriteFile(c.Out, doc, 0o644); err != nil {
		return fmt.Errorf("failed to write plan: %w", err)
	}

	g.logger.Info("plan written", "path", c.Out, "mocks", len(res.Plans))

	return nil
}

// GenCmd generates Go mocks for types in Go packages.
type GenCmd struct {
	Patterns      []string `arg:"" optional:"" help:"Go package patterns to load (default ./...)."`
	Mocks         []string `help:"Mock to generate as Name=Target; repeatable." name:"mock" short:"m" required:""`
	Out           string   `help:"Output directory." short:"o" default:"./mocks" type:"path"`
	Package       string   `help:"Package name of generated files." default:"mocks"`
	Dir           string   `help:"Directory packages are resolved from." type:"path"`
	WritePlan     bool     `help:"Also write the plan document." name:"plan"`
	NoComments    bool     `help:"Omit doc comments from generated code."`
	ReturnDefault bool     `help:"Make unmocked members return defaults instead of failing." name:"return-default"`
	Strict        bool     `help:"Fail when any error diagnostic is reported."`
	DryRun        bool     `help:"Print generated files instead of writing them." name:"dry-run"`
}

func (c *GenCmd) Run(g *Globals) error {
	candidates, err := parseMocks(c.Mocks)
	if err != nil {
		return err
	}

	patterns := c.Patterns
	if len(patterns) == 0 {
		patterns = []string{"./..."}
	}

	a := analyze.NewAnalyzer(analyze.WithDir(c.Dir), analyze.WithLogger(g.logger))

	snap, err := a.LoadPackages(context.Background(), patterns...)
	if err != nil {
		return err
	}

	config := plan.DefaultConfig()
	config.StrictMode = c.Strict
	config.ReturnDefaultIfNotMocked = c.ReturnDefault

	res, err := runPlanner(g, snap, config, candidates, false)
	if err != nil {
		return err
	}

	genConfig := gen.DefaultGeneratorConfig()
	genConfig.PackageName = c.Package
	genConfig.OutputDir = c.Out
	genConfig.GenerateComments = !c.NoComments

	files, err := gen.NewGenerator(genConfig).Generate(res.Plans)
	if err != nil {
		return err
	}

	if c.WritePlan {
		planFile, err := gen.PlanFile(res)
		if err != nil {
			return err
		}

		files = append(files, planFile)
	}

	if c.DryRun {
		for _, f := range files {
			if _, err := fmt.Fprintf(g.stdout, "// file: %s\n%s\n", f.Filename, f.Content); err != nil {
				return err
			}
		}

		return nil
	}

	if err := gen.WriteFiles(files, c.Out); err != nil {
		return err
	}

	g.logger.Info("mocks written", "dir", c.Out, "files", len(files))

	return nil
}

// runPlanner plans candidates unit by unit and reports the pass
// diagnostics.
func runPlanner(g *Globals, snap *descriptor.Snapshot, config plan.Config, candidates []plan.Candidate, parallel bool) (*plan.Result, error) {
	planner := plan.NewGenerator(snap, config, plan.WithLogger(g.logger))
	units := groupByUnit(candidates)

	if parallel {
		if err := planner.GenerateUnits(units...); err != nil {
			return nil, err
		}
	} else {
		for _, unit := range units {
			if err := planner.Generate(unit); err != nil {
				return nil, err
			}
		}
	}

	res, err := planner.Result()
	if res != nil {
		g.report(&res.Diagnostics)
	}

	return res, err
}

// groupByUnit splits candidates by compilation unit, keeping the order in
// which units first appear and the order within each unit.
func groupByUnit(candidates []plan.Candidate) [][]plan.Candidate {
	index := make(map[string]int)

	var units [][]plan.Candidate

	for _, c := range candidates {
		i, ok := index[c.Unit]
		if !ok {
			i = len(units)
			index[c.Unit] = i
			units = append(units, nil)
		}

		units[i] = append(units[i], c)
	}

	return units
}

// parseMocks parses Name=Target flags.
func parseMocks(specs []string) ([]plan.Candidate, error) {
	out := make([]plan.Candidate, 0, len(specs))

	for _, spec := range specs {
		name, target, ok := strings.Cut(spec, "=")
		name, target = strings.TrimSpace(name), strings.TrimSpace(target)

		if !ok || name == "" || target == "" {
			return nil, fmt.Errorf("invalid mock %q: expected Name=Target", spec)
		}

		out = append(out, plan.Candidate{Name: name, Target: target})
	}

	if len(out) == 0 {
		return nil, errors.New("no mocks requested")
	}

	return out, nil
}
