package cargo

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/cargodbg/internal/proc"
)

// Builder runs cargo for one invocation and resolves the debuggable
// executable it produces. There is at most one cargo subprocess alive at a
// time: the JSON resolution run is fully torn down before the diagnostic
// re-run starts.
type Builder struct {
	Binary     string // cargo binary, "cargo" if empty
	Invocation Invocation
}

func (b *Builder) command(jsonOutput bool) *exec.Cmd {
	binary := b.Binary
	if binary == "" {
		binary = "cargo"
	}
	return exec.Command(binary, b.Invocation.buildArgs(jsonOutput)...)
}

// ResolveExecutable builds the invocation with JSON message output and
// returns the path of the single debuggable executable. Cargo's stderr
// passes through live so the user sees compiler diagnostics as they happen.
//
// If cargo reports a failed build, the current process is replaced with a
// human-readable re-run of the same build, so the user gets cargo's own
// diagnostics and exit status; in that case ResolveExecutable never returns.
func (b *Builder) ResolveExecutable() (string, error) {
	runID := uuid.NewString()

	cmd := b.command(true)
	cmd.Stderr = os.Stderr
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return "", fmt.Errorf("capture cargo stdout: %w", err)
	}

	slog.Debug("Running cargo", "command", cmd.String(), "run_id", runID)
	if err := cmd.Start(); err != nil {
		return "", fmt.Errorf("start cargo: %w", err)
	}

	executable, err := resolveStream(stdout)
	if err != nil {
		kill(cmd)
		if errors.Is(err, ErrBuildFailed) {
			rerun := b.command(false)
			slog.Debug("Build failed, re-running cargo for diagnostics",
				"command", rerun.String(), "run_id", runID)
			return "", proc.Replace(rerun)
		}
		return "", err
	}

	// Drain whatever cargo printed after build-finished before reaping it.
	_, _ = io.Copy(io.Discard, stdout)
	if err := cmd.Wait(); err != nil {
		return "", fmt.Errorf("cargo exited abnormally: %w", err)
	}

	slog.Info("Resolved executable", "path", executable, "run_id", runID)
	return executable, nil
}

func kill(cmd *exec.Cmd) {
	if cmd.Process == nil {
		return
	}
	_ = cmd.Process.Kill()
	_ = cmd.Wait()
}
