// Package main provides the CLI entrypoint for mock-generator.
//
// mock-generator plans mock types for interfaces and classes:
//   - check validates a YAML type manifest
//   - plan prints the plan document for the mocks a manifest requests
//   - gen loads Go packages and writes Go mocks backed by mockrt
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"mock-generator/internal/diagnostic"
	"mock-generator/internal/logging"
)

// Globals are flags shared by every command.
type Globals struct {
	LogLevel  string `help:"Log level." default:"warn" enum:"debug,info,warn,error"`
	LogFormat string `help:"Log format." default:"text" enum:"text,json"`
	LogFile   string `help:"Also append JSON logs to this file." type:"path"`

	logger *slog.Logger
	stdout io.Writer
	stderr io.Writer
}

// CLI is the command tree.
type CLI struct {
	Globals

	Version VersionCmd `cmd:"" help:"Print version information."`
	Check   CheckCmd   `cmd:"" help:"Validate a manifest without planning."`
	Plan    PlanCmd    `cmd:"" help:"Print the plan document for the mocks a manifest requests."`
	Gen     GenCmd     `cmd:"" help:"Generate Go mocks for types in Go packages."`
}

// VersionCmd prints the version.
type VersionCmd struct{}

func (c *VersionCmd) Run(g *Globals) error {
	_, err := fmt.Fprintln(g.stdout, Version())
	return err
}

// setup wires the logger and output streams. The returned cleanup closes
// the log file, if any.
func (g *Globals) setup(stdout, stderr io.Writer) (func(), error) {
	g.stdout = stdout
	g.stderr = stderr

	level, err := logging.ParseLevel(g.LogLevel)
	if err != nil {
		return nil, err
	}

	if g.LogFile == "" {
		g.logger, err = logging.New(stderr, level, g.LogFormat)
		return func() {}, err
	}

	logger, cleanup, err := logging.Setup(g.LogFile, level, g.LogFormat)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	g.logger = logger

	return cleanup, nil
}

// report prints diagnostics to stderr, errors first.
func (g *Globals) report(d *diagnostic.Diagnostics) {
	if d == nil {
		return
	}

	for _, bucket := range [][]diagnostic.Diagnostic{d.Errors, d.Warnings, d.Infos} {
		for _, diag := range bucket {
			fmt.Fprintf(g.stderr, "%s: %s\n", diag.Severity, diag)
		}
	}
}

func main() {
	cli := &CLI{}
	ctx := kong.Parse(cli,
		kong.Name("mock-generator"),
		kong.Description("Plan and generate mock types for interfaces and classes."),
		kong.UsageOnError(),
	)

	cleanup, err := cli.setup(os.Stdout, os.Stderr)
	ctx.FatalIfErrorf(err)

	err = ctx.Run(&cli.Globals)
	cleanup()
	ctx.FatalIfErrorf(err)
}
