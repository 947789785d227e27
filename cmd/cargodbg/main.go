// cargodbg builds a cargo target and runs the resulting executable under a
// debugger, resolving the artifact path from cargo's JSON message stream.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/cargodbg/internal/cargo"
	"git.home.luguber.info/inful/cargodbg/internal/config"
	"git.home.luguber.info/inful/cargodbg/internal/debugger"
)

var CLI struct {
	Config  string `short:"c" help:"Configuration file path" default:"cargodbg.yaml"`
	Verbose bool   `short:"v" help:"Enable verbose logging"`

	Package string `short:"p" help:"Package to build" placeholder:"SPEC"`
	Bin     string `help:"Build and debug the specified binary" placeholder:"NAME"`
	Example string `help:"Build and debug the specified example" placeholder:"NAME"`
	Tests   bool   `help:"Build and debug tests"`
	Test    string `help:"Build and debug the specified integration test" placeholder:"NAME"`
	Bench   string `help:"Build and debug the specified bench" placeholder:"NAME"`

	Features          []string `short:"F" help:"Comma-separated list of features to activate"`
	AllFeatures       bool     `help:"Activate all available features"`
	NoDefaultFeatures bool     `help:"Do not activate the default feature"`

	Breakpoint debugger.Breakpoint `short:"b" help:"Set a breakpoint (file:line); if not set, the debugger stops at program entry" placeholder:"FILE:LINE"`

	Args []string `arg:"" optional:"" passthrough:"" help:"Extra arguments passed to the debugged program"`
}

func main() {
	kong.Parse(&CLI,
		kong.Name("cargodbg"),
		kong.Description("Build a cargo target and debug it."))

	// Set up logging
	logLevel := slog.LevelInfo
	if CLI.Verbose {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	if err := run(); err != nil {
		slog.Error("cargodbg failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(CLI.Config)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	builder := &cargo.Builder{
		Binary:     cfg.Cargo.Binary,
		Invocation: buildInvocation(),
	}
	executable, err := builder.ResolveExecutable()
	if err != nil {
		return err
	}

	dbg := debugger.Debugger{
		Binary:    cfg.Debugger.Binary,
		ExtraArgs: cfg.Debugger.Args,
	}
	return dbg.Launch(debugger.LaunchSpec{
		Executable: executable,
		Breakpoint: breakpoint(),
		Args:       CLI.Args,
	})
}

func buildInvocation() cargo.Invocation {
	return cargo.Invocation{
		Package:           CLI.Package,
		Bin:               CLI.Bin,
		Example:           CLI.Example,
		Tests:             CLI.Tests,
		Test:              CLI.Test,
		Bench:             CLI.Bench,
		Features:          CLI.Features,
		AllFeatures:       CLI.AllFeatures,
		NoDefaultFeatures: CLI.NoDefaultFeatures,
	}
}

// breakpoint returns the parsed -b flag, or nil when the flag was not given.
func breakpoint() *debugger.Breakpoint {
	if CLI.Breakpoint.File == "" && CLI.Breakpoint.Line == 0 {
		return nil
	}
	return &CLI.Breakpoint
}
