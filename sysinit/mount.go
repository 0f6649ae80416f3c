// SPDX-FileCopyrightText: 2024 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package sysinit

import (
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"
)

// FSType is a file system type.
type FSType string

// Special file system types.
const (
	FSTypeDevTmp   FSType = "devtmpfs"
	FSTypeProc     FSType = "proc"
	FSTypeSecurity FSType = "securityfs"
	FSTypeSys      FSType = "sysfs"
	FSTypeTmp      FSType = "tmpfs"

	defaultDirMode = 0o755
)

// MountFlags are flags as defined by mount(2).
type MountFlags uintptr

// SystemMountPoints returns the pseudo file systems the kernel interfaces
// require: process information, device nodes, kernel objects and security
// policy.
//
// The root file system is never remounted read-only, since this breaks writes
// anywhere else in the tree.
func SystemMountPoints() MountPoints {
	return MountPoints{
		"/dev":                 {FSType: FSTypeDevTmp},
		"/proc":                {FSType: FSTypeProc},
		"/sys":                 {FSType: FSTypeSys},
		"/sys/kernel/security": {FSType: FSTypeSecurity},
	}
}

// MountOptions contains parameters for a mount point.
type MountOptions struct {
	// FSType is the files system type. It must be set to an available [FSType].
	FSType FSType

	// Source is the source device to mount. Can be empty for all the special
	// file system types [FSType]s. If empty it is set to the string of the
	// type.
	Source string

	// Flags are optional mount flags as defined by mount(2).
	Flags MountFlags

	// Data are optional additional parameters that depend of the [FSType] used.
	Data string
}

// MountPoints is a collection of MountPoints.
type MountPoints map[string]MountOptions

// Paths returns the mount points in the order they are mounted.
//
// Lexicographic order puts every parent before its children, like /sys before
// /sys/kernel/security.
func (m MountPoints) Paths() []string {
	return slices.Sorted(maps.Keys(m))
}

// Mount mounts the system file system of [FSType] at the given path.
//
// If path does not exist, it is created. An error is returned if this or the
// mount syscall fails.
func Mount(path string, opts MountOptions) error {
	err := os.MkdirAll(path, defaultDirMode)
	if err != nil {
		return fmt.Errorf("mkdir %s: %w", path, err)
	}

	return mount(path, opts.Source, string(opts.FSType), opts.Flags, opts.Data)
}

// MountAll mounts the given set of system file systems below root.
//
// The mounts are executed in lexicographic order of the paths, so /dev is
// mounted before /sys and parents before their children. A failing mount
// does not stop the others. All failures are returned as [SetupError].
func MountAll(root string, mountPoints MountPoints) error {
	var errs SetupError

	for _, path := range mountPoints.Paths() {
		if err := Mount(filepath.Join(root, path), mountPoints[path]); err != nil {
			errs = append(errs, err)
		}
	}

	return errs.errOrNil()
}
