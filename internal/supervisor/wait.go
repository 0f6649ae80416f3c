// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package supervisor

import (
	"errors"
	"fmt"

	"golang.org/x/sys/unix"
)

// Waiter blocks until any child process terminates and returns its process ID
// and raw wait status.
//
// If there are no children, the returned error matches [unix.ECHILD].
type Waiter interface {
	Wait() (int, unix.WaitStatus, error)
}

// Wait4 is a [Waiter] that uses wait4(2) for any child.
type Wait4 struct{}

var _ Waiter = Wait4{}

// Wait implements [Waiter]. Interrupted calls are retried.
func (Wait4) Wait() (int, unix.WaitStatus, error) {
	var status unix.WaitStatus

	for {
		pid, err := unix.Wait4(-1, &status, 0, nil)
		if errors.Is(err, unix.EINTR) {
			continue
		}

		if err != nil {
			return 0, 0, fmt.Errorf("wait4: %w", err)
		}

		return pid, status, nil
	}
}
