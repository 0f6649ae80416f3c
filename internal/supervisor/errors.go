// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package supervisor

import (
	"errors"
	"fmt"
)

var (
	// ErrNoStartupItems is returned if discovery did not find anything to run.
	ErrNoStartupItems = errors.New("no startup items found")

	// ErrNoChildren is returned by [Supervisor.Reap] once all children have
	// been reaped and none are left.
	ErrNoChildren = errors.New("no children left")

	// ErrUnknownPolicy is returned for an invalid [Policy].
	ErrUnknownPolicy = errors.New("unknown policy")
)

// ExecError is returned by a [Spawner] if the new process could not execute
// the program. It only affects the single child. The child process never ran
// any code of the init.
//
// The child has been reaped by the [Spawner] already, so it never shows up in
// [Supervisor.Reap] and its process ID is not known.
type ExecError struct {
	Path string
	Err  error
}

// Error implements the [error] interface.
func (e *ExecError) Error() string {
	return fmt.Sprintf("exec %s: %v", e.Path, e.Err)
}

// Is implements the [errors.Is] interface.
func (*ExecError) Is(other error) bool {
	_, ok := other.(*ExecError)
	return ok
}

// Unwrap implements the [errors.Unwrap] interface.
func (e *ExecError) Unwrap() error {
	return e.Err
}
