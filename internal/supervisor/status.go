// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package supervisor

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// DescribeStatus returns a human readable description of a raw wait status.
func DescribeStatus(status unix.WaitStatus) string {
	switch {
	case status.Exited():
		return fmt.Sprintf("exit code %d", status.ExitStatus())
	case status.Signaled():
		desc := fmt.Sprintf("signal %d (%v)", int(status.Signal()), status.Signal())
		if status.CoreDump() {
			desc += ", core dumped"
		}

		return desc
	case status.Stopped():
		return fmt.Sprintf("stopped by signal %d", int(status.StopSignal()))
	case status.Continued():
		return "continued"
	default:
		return "unknown"
	}
}
