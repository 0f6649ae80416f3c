// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package sysinit

import (
	"errors"
	"slices"
)

// DefaultConsole is the console device the kernel provides.
const DefaultConsole = "/dev/console"

// Standard stream file descriptors.
const (
	Stdin  = 0
	Stdout = 1
	Stderr = 2
)

// RedirectToConsole opens the console device at the given path read-write and
// duplicates it onto the given file descriptors.
//
// If the console can not be opened, the file descriptors are left untouched.
// The device node must exist, so /dev must be mounted before.
func RedirectToConsole(path string, fds ...int) error {
	consoleFD, err := openConsole(path)
	if err != nil {
		return err
	}

	var errs []error

	for _, fd := range fds {
		// dup3(2) fails for equal descriptors. The console might already
		// be at the right place if the descriptor was closed before.
		if fd == consoleFD {
			continue
		}

		if err := dup3(consoleFD, fd); err != nil {
			errs = append(errs, err)
		}
	}

	if !slices.Contains(fds, consoleFD) {
		if err := closeFD(consoleFD); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}
