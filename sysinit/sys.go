// SPDX-FileCopyrightText: 2024 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package sysinit

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

func getpid() int {
	return unix.Getpid()
}

func mkdir(path string, mode os.FileMode) error {
	if err := unix.Mkdir(path, uint32(mode.Perm())); err != nil {
		return &os.PathError{Op: "mkdir", Path: path, Err: err}
	}

	return nil
}

func mount(path, source, fsType string, flags MountFlags, data string) error {
	if source == "" {
		source = fsType
	}

	if err := unix.Mount(source, path, fsType, uintptr(flags), data); err != nil {
		return fmt.Errorf("mount %s: %w", path, err)
	}

	return nil
}

func openConsole(path string) (int, error) {
	fd, err := unix.Open(path, unix.O_RDWR|unix.O_NOCTTY, 0)
	if err != nil {
		return -1, fmt.Errorf("open %s: %w", path, err)
	}

	return fd, nil
}

func dup3(oldFD, newFD int) error {
	if err := unix.Dup3(oldFD, newFD, 0); err != nil {
		return fmt.Errorf("dup3 %d: %w", newFD, err)
	}

	return nil
}

func closeFD(fd int) error {
	if err := unix.Close(fd); err != nil {
		return fmt.Errorf("close %d: %w", fd, err)
	}

	return nil
}

func reboot(cmd int) error {
	// Flush file system buffers, since the kernel does not do it on reboot(2).
	unix.Sync()

	if err := unix.Reboot(cmd); err != nil {
		return fmt.Errorf("reboot: %w", err)
	}

	return nil
}
