// Package debugger forms the debugger command line for a resolved executable
// and hands the process over to it.
package debugger

import (
	"fmt"
	"log/slog"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"git.home.luguber.info/inful/cargodbg/internal/proc"
)

// Breakpoint is a file:line location where the debugger should stop the
// debuggee on launch.
type Breakpoint struct {
	File string
	Line int
}

// UnmarshalText parses the `file:line` form used on the command line. Kong
// calls this during flag parsing, so a bad value is rejected before any
// build starts.
func (b *Breakpoint) UnmarshalText(text []byte) error {
	value := string(text)
	file, lineText, ok := strings.Cut(value, ":")
	if !ok {
		return fmt.Errorf("invalid breakpoint %q, expected file:line", value)
	}
	line, err := strconv.Atoi(lineText)
	if err != nil || line < 0 {
		return fmt.Errorf("invalid breakpoint line %q in %q", lineText, value)
	}
	b.File = file
	b.Line = line
	return nil
}

func (b Breakpoint) String() string {
	return fmt.Sprintf("%s:%d", b.File, b.Line)
}

// LaunchSpec is the read-only launch configuration built once artifact
// resolution succeeds. A nil Breakpoint means stop at program entry.
type LaunchSpec struct {
	Executable string
	Breakpoint *Breakpoint
	Args       []string
}

// Debugger invokes a debugger binary on a launch spec.
type Debugger struct {
	Binary    string   // "nnd" if empty
	ExtraArgs []string // inserted before the breakpoint flags
}

// command builds the debugger argv. The breakpoint file is canonicalized so
// the debugger sees an absolute path regardless of the working directory it
// inherits; a missing file fails here rather than inside the debugger.
func (d Debugger) command(spec LaunchSpec) (*exec.Cmd, error) {
	binary := d.Binary
	if binary == "" {
		binary = "nnd"
	}

	args := append([]string{}, d.ExtraArgs...)
	if spec.Breakpoint != nil {
		file, err := canonicalize(spec.Breakpoint.File)
		if err != nil {
			return nil, fmt.Errorf("resolve breakpoint file: %w", err)
		}
		args = append(args, "--breakpoint", fmt.Sprintf("%s:%d", file, spec.Breakpoint.Line))
	} else {
		args = append(args, "-s")
	}
	args = append(args, spec.Executable)
	args = append(args, spec.Args...)

	return exec.Command(binary, args...), nil
}

func canonicalize(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	return filepath.EvalSymlinks(abs)
}

// Launch replaces the current process with the debugger. The debugger's exit
// status becomes this tool's. Launch only returns on failure.
func (d Debugger) Launch(spec LaunchSpec) error {
	cmd, err := d.command(spec)
	if err != nil {
		return err
	}
	slog.Debug("Launching debugger", "command", cmd.String())
	return proc.Replace(cmd)
}
