package cargo

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
)

var (
	// ErrMultipleExecutables means the build produced more than one
	// executable, so there is no single artifact to debug. The user must
	// narrow the target with --bin, --example, --test, or --bench.
	ErrMultipleExecutables = errors.New("build produced more than one executable")

	// ErrNoArtifact means the build finished successfully without producing
	// an executable, e.g. a pure library build.
	ErrNoArtifact = errors.New("cargo did not report a compiler artifact with an executable")

	// ErrMalformedStream means cargo's message stream ended without a
	// build-finished message.
	ErrMalformedStream = errors.New("cargo output ended without a build-finished message")

	// ErrBuildFailed means cargo itself reported a failed build. The
	// orchestrator responds by re-running the build in human-readable mode;
	// this error is never shown to the user directly.
	ErrBuildFailed = errors.New("cargo reported a failed build")
)

// InsufficientDebugInfoError means the build succeeded but the profile does
// not carry enough debug info for a debugger to map instructions to source.
type InsufficientDebugInfoError struct {
	DebugInfo DebugInfo
}

func (e *InsufficientDebugInfoError) Error() string {
	return fmt.Sprintf("compiling without enough debug info (got %s); use at least `debug=1`", e.DebugInfo)
}

// resolution accumulates messages for a single build invocation. It is owned
// and mutated by exactly one stream-consuming loop.
type resolution struct {
	executable string
	finished   bool
}

// apply folds one message into the resolution. A returned error is terminal
// for the whole attempt; no message is ever retried.
func (r *resolution) apply(msg Message) error {
	switch m := msg.(type) {
	case CompilerArtifact:
		if m.Executable == "" {
			return nil
		}
		// Reject under-instrumented builds before the debugger ever starts;
		// a debugger-side failure here would be late and confusing.
		if !m.DebugInfo.Sufficient() {
			return &InsufficientDebugInfoError{DebugInfo: m.DebugInfo}
		}
		if r.executable != "" {
			return fmt.Errorf("%w: %s and %s", ErrMultipleExecutables, r.executable, m.Executable)
		}
		r.executable = m.Executable
	case BuildFinished:
		if !m.Success {
			return ErrBuildFailed
		}
		r.finished = true
	case Unknown:
		slog.Debug("Skipping unrecognized cargo message", "reason", m.Reason)
	}
	return nil
}

// cargo emits one JSON object per line; artifact messages routinely run far
// past bufio.Scanner's default 64K token limit.
const maxMessageLine = 4 * 1024 * 1024

// resolveStream drives cargo's message stream through the resolution state
// machine and returns the path of the single debuggable executable.
func resolveStream(stream io.Reader) (string, error) {
	var res resolution

	scanner := bufio.NewScanner(stream)
	scanner.Buffer(make([]byte, 64*1024), maxMessageLine)
	for scanner.Scan() {
		msg, err := ParseMessage(scanner.Bytes())
		if err != nil {
			return "", err
		}
		if err := res.apply(msg); err != nil {
			return "", err
		}
		if res.finished {
			break
		}
	}
	if err := scanner.Err(); err != nil {
		return "", fmt.Errorf("read cargo output: %w", err)
	}

	if !res.finished {
		return "", ErrMalformedStream
	}
	if res.executable == "" {
		return "", ErrNoArtifact
	}
	return res.executable, nil
}
