// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package sysinit

import (
	"errors"
	"fmt"
)

var (
	// ErrNotPidOne is returned if the process is expected to be run as PID 1
	// but is not.
	ErrNotPidOne = errors.New("process does not have ID 1")
	// ErrPanic is returned if a [Func] panicked.
	ErrPanic = errors.New("function panicked")
	// ErrUnknownExitAction is returned for an invalid [ExitAction].
	ErrUnknownExitAction = errors.New("unknown exit action")
)

// SetupError is a collection of errors of single setup steps, like creating a
// directory or mounting a file system. None of them is fatal for the boot.
type SetupError []error

func (e SetupError) Error() string {
	return fmt.Sprintf("setup errors: %q", []error(e))
}

func (SetupError) Is(other error) bool {
	_, ok := other.(SetupError)
	return ok
}

func (e SetupError) Unwrap() []error {
	return e
}

// errOrNil returns nil for an empty collection, so callers can compare with
// nil.
func (e SetupError) errOrNil() error {
	if len(e) == 0 {
		return nil
	}

	return e
}
