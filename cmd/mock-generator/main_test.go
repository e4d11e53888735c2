package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"mock-generator/internal/plan"
)

var servicesManifest = filepath.Join("..", "..", "internal", "manifest", "testdata", "services.yaml")

// run parses args and runs the selected command, capturing its output.
func run(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("mock-generator"),
		kong.Exit(func(code int) { t.Fatalf("unexpected exit %d", code) }),
	)
	require.NoError(t, err)

	ctx, err := parser.Parse(args)
	if err != nil {
		return "", "", err
	}

	var out, errOut bytes.Buffer

	cleanup, err := cli.setup(&out, &errOut)
	require.NoError(t, err)

	err = ctx.Run(&cli.Globals)
	cleanup()

	return out.String(), errOut.String(), err
}

func TestVersion(t *testing.T) {
	out, _, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "0.1.0")
}

func TestCheck(t *testing.T) {
	out, _, err := run(t, "check", servicesManifest)
	require.NoError(t, err)
	assert.Contains(t, out, "ok (3 types, 2 mocks)")
}

func TestCheck_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`version: "1"
types:
  - name: Broken
    kind: struct
`), 0o644))

	_, stderr, err := run(t, "check", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 error(s)")
	assert.Contains(t, stderr, "error: ")
	assert.Contains(t, stderr, "types[0].kind")
}

func TestPlan(t *testing.T) {
	out, _, err := run(t, "plan", servicesManifest)
	require.NoError(t, err)

	var doc plan.Document
	require.NoError(t, yaml.Unmarshal([]byte(out), &doc))
	require.Len(t, doc.Mocks, 2)
	assert.Equal(t, "MyMock", doc.Mocks[0].Name)
	assert.Equal(t, "InterfaceMock", doc.Mocks[1].Name)
	assert.True(t, doc.Mocks[0].ReturnDefaultIfNotMocked)
}

func TestPlan_OutFileAndParallel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plan.yaml")

	out, _, err := run(t, "plan", servicesManifest, "-o", path, "--parallel")
	require.NoError(t, err)
	assert.Empty(t, out)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var doc plan.Document
	require.NoError(t, yaml.Unmarshal(data, &doc))
	assert.Len(t, doc.Mocks, 2)
}

func TestPlan_StrictConflict(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conflict.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`version: "1"
types:
  - {namespace: Example, name: IFirst, kind: interface}
  - {namespace: Example, name: ISecond, kind: interface}
mocks:
  - {name: MyMock, target: IFirst}
  - {name: MyMock, target: ISecond}
`), 0o644))

	_, stderr, err := run(t, "plan", path)
	require.NoError(t, err)
	assert.Contains(t, stderr, "SI0107")

	_, _, err = run(t, "plan", path, "--strict")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "strict mode")
}

func TestGen_DryRun(t *testing.T) {
	out, _, err := run(t, "gen", "mock-generator/examples/calculator",
		"-m", "CalculatorMock=calculator.Calculator",
		"--dry-run", "--plan")
	require.NoError(t, err)

	assert.Contains(t, out, "// file: calculator_mock.go")
	assert.Contains(t, out, "type CalculatorMock struct")
	assert.Contains(t, out, "// file: "+"mocks.plan.yaml")
}

func TestGen_Write(t *testing.T) {
	dir := t.TempDir()

	_, _, err := run(t, "gen", "mock-generator/examples/calculator",
		"-m", "ServiceMock=calculator.Service",
		"-o", dir, "--package", "fakes", "--return-default")
	require.NoError(t, err)

	content, err := os.ReadFile(filepath.Join(dir, "service_mock.go"))
	require.NoError(t, err)
	assert.Contains(t, string(content), "package fakes")
	assert.Contains(t, string(content), "mockrt.New(true)")
}

func TestGen_PackageNameDiffersFromPath(t *testing.T) {
	out, stderr, err := run(t, "gen", "mock-generator/examples/calc-v2",
		"-m", "AdderMock=calc.Adder",
		"-m", "StoreMock=calc.Store",
		"--dry-run")
	require.NoError(t, err)

	assert.Contains(t, out, "// file: adder_mock.go")
	assert.Contains(t, out, `calc "mock-generator/examples/calc-v2"`)
	assert.NotContains(t, out, "store_mock.go")
	assert.Contains(t, stderr, "unmockable_target")
}

func TestGen_BadMockFlag(t *testing.T) {
	_, _, err := run(t, "gen", "mock-generator/examples/calculator", "-m", "CalculatorMock")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected Name=Target")
}

func TestGroupByUnit(t *testing.T) {
	units := groupByUnit([]plan.Candidate{
		{Name: "A", Unit: "one"},
		{Name: "B", Unit: "two"},
		{Name: "C", Unit: "one"},
	})

	require.Len(t, units, 2)
	assert.Equal(t, []plan.Candidate{{Name: "A", Unit: "one"}, {Name: "C", Unit: "one"}}, units[0])
	assert.Equal(t, []plan.Candidate{{Name: "B", Unit: "two"}}, units[1])
}
