package gen

import (
	"bytes"
	"fmt"
	"go/format"
	"strings"

	"mock-generator/internal/common"
	"mock-generator/internal/match"
	"mock-generator/internal/plan"
)

// DefaultRuntimeImport is the import path of the mock runtime package.
const DefaultRuntimeImport = "mock-generator/mockrt"

// GeneratorConfig holds configuration for code generation.
type GeneratorConfig struct {
	// PackageName is the name of the generated package.
	PackageName string
	// OutputDir is where unformatted sources are dumped when formatting fails.
	OutputDir string
	// RuntimeImport is the import path of the mockrt package.
	RuntimeImport string
	// GenerateComments enables doc comments on generated declarations.
	GenerateComments bool
}

// DefaultGeneratorConfig returns the default generator configuration.
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		PackageName:      "mocks",
		OutputDir:        "./mocks",
		RuntimeImport:    DefaultRuntimeImport,
		GenerateComments: true,
	}
}

// Generator generates Go mock sources from plans.
type Generator struct {
	config GeneratorConfig
}

// NewGenerator creates a new Generator with the given configuration.
func NewGenerator(config GeneratorConfig) *Generator {
	if config.PackageName == "" {
		config.PackageName = "mocks"
	}

	if config.RuntimeImport == "" {
		config.RuntimeImport = DefaultRuntimeImport
	}

	return &Generator{config: config}
}

// GeneratedFile represents a generated file.
type GeneratedFile struct {
	// Filename is the name of the file (e.g., "calculator_mock.go").
	Filename string
	// Content is the file content; formatted Go source for mocks.
	Content []byte
}

// Generate renders one file per plan, in plan order.
func (g *Generator) Generate(plans []*plan.MockPlan) ([]GeneratedFile, error) {
	files := make([]GeneratedFile, 0, len(plans))
	taken := make(map[string]bool, len(plans))

	for _, p := range plans {
		name := g.filename(p, taken)

		file, err := g.generatePlan(p, name)
		if err != nil {
			return nil, fmt.Errorf("generating %s: %w", p.FullName, err)
		}

		files = append(files, *file)
	}

	return files, nil
}

func (g *Generator) generatePlan(p *plan.MockPlan, filename string) (*GeneratedFile, error) {
	data := g.buildTemplateData(p)

	var buf bytes.Buffer
	if err := mockTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("executing template: %w", err)
	}

	formatted, err := format.Source(buf.Bytes())
	if err != nil {
		if g.config.OutputDir != "" {
			_ = writeDebugUnformatted(g.config.OutputDir, filename, buf.Bytes())
		}

		return &GeneratedFile{
			Filename: filename,
			Content:  buf.Bytes(),
		}, fmt.Errorf("formatting code: %w", err)
	}

	return &GeneratedFile{
		Filename: filename,
		Content:  formatted,
	}, nil
}

// filename returns a unique file name for p. Plans sharing a type name
// across namespaces are told apart by the namespace's last element.
func (g *Generator) filename(p *plan.MockPlan, taken map[string]bool) string {
	name := snakeCase(p.Name) + ".go"
	if taken[name] {
		if alias := common.PkgAlias(p.Namespace); alias != "" {
			name = snakeCase(alias) + "_" + name
		}
	}

	for i := 2; taken[name]; i++ {
		name = fmt.Sprintf("%s_%d.go", snakeCase(p.Name), i)
	}

	taken[name] = true

	return name
}

// snakeCase converts an identifier to snake case:
//   - "CalculatorMock" -> "calculator_mock"
//   - "HTTPClientMock" -> "http_client_mock"
func snakeCase(s string) string {
	return strings.Join(match.TokenizeIdent(s), "_")
}
