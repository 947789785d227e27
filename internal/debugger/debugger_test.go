package debugger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBreakpointUnmarshalText(t *testing.T) {
	var bp Breakpoint
	require.NoError(t, bp.UnmarshalText([]byte("src/main.rs:42")))
	require.Equal(t, Breakpoint{File: "src/main.rs", Line: 42}, bp)
}

func TestBreakpointUnmarshalText_MissingSeparator(t *testing.T) {
	var bp Breakpoint
	err := bp.UnmarshalText([]byte("main.rs"))
	require.Error(t, err)
	require.Contains(t, err.Error(), `"main.rs"`)
	require.Contains(t, err.Error(), "file:line")
}

func TestBreakpointUnmarshalText_NonNumericLine(t *testing.T) {
	var bp Breakpoint
	err := bp.UnmarshalText([]byte("main.rs:abc"))
	require.Error(t, err)
	require.Contains(t, err.Error(), `"abc"`)
}

func TestBreakpointUnmarshalText_NegativeLine(t *testing.T) {
	var bp Breakpoint
	require.Error(t, bp.UnmarshalText([]byte("main.rs:-3")))
}

func TestBreakpointString(t *testing.T) {
	require.Equal(t, "main.rs:7", Breakpoint{File: "main.rs", Line: 7}.String())
}

func TestCommand_DefaultsToEntryBreakpoint(t *testing.T) {
	cmd, err := Debugger{}.command(LaunchSpec{
		Executable: "/target/debug/app",
		Args:       []string{"--flag", "value"},
	})
	require.NoError(t, err)
	require.Equal(t, []string{"nnd", "-s", "/target/debug/app", "--flag", "value"}, cmd.Args)
}

func TestCommand_WithBreakpoint(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "main.rs")
	require.NoError(t, os.WriteFile(source, []byte("fn main() {}\n"), 0o644))
	resolved, err := canonicalize(source)
	require.NoError(t, err)

	cmd, err := Debugger{}.command(LaunchSpec{
		Executable: "/target/debug/app",
		Breakpoint: &Breakpoint{File: source, Line: 3},
	})
	require.NoError(t, err)
	require.Equal(t, []string{"nnd", "--breakpoint", resolved + ":3", "/target/debug/app"}, cmd.Args)
}

func TestCommand_BreakpointFileMustExist(t *testing.T) {
	_, err := Debugger{}.command(LaunchSpec{
		Executable: "/target/debug/app",
		Breakpoint: &Breakpoint{File: filepath.Join(t.TempDir(), "missing.rs"), Line: 1},
	})
	require.Error(t, err)
	require.Contains(t, err.Error(), "resolve breakpoint file")
}

func TestCommand_ConfiguredBinaryAndExtraArgs(t *testing.T) {
	cmd, err := Debugger{Binary: "lldb-wrapper", ExtraArgs: []string{"--batch"}}.command(LaunchSpec{
		Executable: "app",
	})
	require.NoError(t, err)
	require.Equal(t, []string{"lldb-wrapper", "--batch", "-s", "app"}, cmd.Args)
}
