// SPDX-FileCopyrightText: 2024 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package sysinit

import (
	"fmt"
)

// Func is a function run by [Run].
type Func func() error

// Run is the entry point for an actual init system.
//
// It runs the given functions in the given order and stops at the first one
// that returns an error. Panics are recovered from and returned as [ErrPanic].
// The given [ExitHandler] is called with the result in any case. If the
// process is not PID 1, no function is run and the handler is called with
// [ErrNotPidOne].
//
// A typical init looks like this:
//
//	Run(
//		exitHandler,
//		[WithEnvironment]([DefaultEnvironment]()),
//		func() error {
//			// Launch and supervise the actual programs.
//		},
//	)
func Run(exitHandler ExitHandler, funcs ...Func) {
	if !IsPidOne() {
		exitHandler(ErrNotPidOne)
		return
	}

	run(exitHandler, funcs)
}

func run(exitHandler ExitHandler, funcs []Func) {
	exitHandler(runFuncs(funcs))
}

func runFuncs(funcs []Func) (err error) {
	defer func() {
		rec := recover()
		if rec == nil {
			return
		}

		if recoveredErr, ok := rec.(error); ok {
			err = fmt.Errorf("%w: %w", ErrPanic, recoveredErr)
		} else {
			err = fmt.Errorf("%w: %v", ErrPanic, rec)
		}
	}()

	for _, fn := range funcs {
		if err = fn(); err != nil {
			return err
		}
	}

	return nil
}
