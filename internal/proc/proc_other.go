//go:build !unix

package proc

import (
	"errors"
	"os"
	"os/exec"
)

// Replace approximates process replacement on platforms without execve(2):
// it runs cmd with inherited standard streams, then exits with the child's
// exit code. Replace only returns on failure to start.
func Replace(cmd *exec.Cmd) error {
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.ExitCode())
		}
		return err
	}
	os.Exit(0)
	return nil
}
