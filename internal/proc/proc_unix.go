//go:build unix

// Package proc hands the current process over to another command.
package proc

import (
	"os"
	"os/exec"
	"syscall"
)

// Replace replaces the current process image with cmd via execve(2). File
// descriptors are inherited and the child's exit status becomes this
// process's. Replace only returns on failure.
func Replace(cmd *exec.Cmd) error {
	if cmd.Err != nil {
		return cmd.Err
	}
	env := cmd.Env
	if env == nil {
		env = os.Environ()
	}
	return syscall.Exec(cmd.Path, cmd.Args, env)
}
