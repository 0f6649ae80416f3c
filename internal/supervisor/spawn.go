// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package supervisor

import (
	"errors"
	"os"
	"syscall"

	"github.com/aibor/tinyinit/internal/argblob"
	"golang.org/x/sys/unix"
)

// Spawner creates a new process running the given [argblob.Invocation].
//
// It returns the process ID of the child. It must not wait for the child
// beyond the point where the program has been executed. If the child
// could not execute the program, an [*ExecError] is returned.
type Spawner interface {
	Spawn(inv *argblob.Invocation) (int, error)
}

// ForkExec is a [Spawner] that creates processes by fork and exec in a
// single step.
//
// The children inherit the standard streams and the environment of the
// init.
type ForkExec struct {
	// Env is the environment of the children. If nil, the environment of the
	// current process is used.
	Env []string
}

var _ Spawner = (*ForkExec)(nil)

// Spawn implements [Spawner].
func (f *ForkExec) Spawn(inv *argblob.Invocation) (int, error) {
	env := f.Env
	if env == nil {
		env = os.Environ()
	}

	attr := &syscall.ProcAttr{
		Env:   env,
		Files: []uintptr{0, 1, 2},
	}

	pid, err := syscall.ForkExec(inv.Path(), inv.Argv(), attr)
	if err != nil {
		if isResourceError(err) {
			return 0, &os.SyscallError{Syscall: "forkexec", Err: err}
		}

		return 0, &ExecError{Path: inv.Path(), Err: err}
	}

	return pid, nil
}

// isResourceError returns true for errors that are treated as failures of the
// init itself rather than of the single child.
//
// [syscall.ForkExec] returns a bare errno for three different steps: creating
// the status pipe (EMFILE, ENFILE), cloning the process (EAGAIN, ENOMEM,
// ENOSYS) and everything the child does up to and including execve. The
// errnos above may come from execve in the child as well. They are classified
// as resource errors anyway, since they would hit the following items just
// the same. All other errors are reported by a child that could not execute
// the program. That child has terminated and been reaped already.
func isResourceError(err error) bool {
	return errors.Is(err, unix.EAGAIN) ||
		errors.Is(err, unix.ENOMEM) ||
		errors.Is(err, unix.ENOSYS) ||
		errors.Is(err, unix.EMFILE) ||
		errors.Is(err, unix.ENFILE)
}
