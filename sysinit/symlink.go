// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package sysinit

import (
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"os"
	"path/filepath"
	"slices"
)

// DevSymlinks returns a map with well-known symlinks for /dev.
func DevSymlinks() Symlinks {
	return Symlinks{
		"/dev/core":   "/proc/kcore",
		"/dev/fd":     "/proc/self/fd/",
		"/dev/stdin":  "/proc/self/fd/0",
		"/dev/stdout": "/proc/self/fd/1",
		"/dev/stderr": "/proc/self/fd/2",
	}
}

// Symlinks is a collection of symbolic links. Keys are symbolic links to
// create with the value being the target to link to.
type Symlinks map[string]string

// Links returns the link paths in lexicographic order.
func (s Symlinks) Links() []string {
	return slices.Sorted(maps.Keys(s))
}

// CreateSymlinks creates the given symbolic links below root. Targets are
// used as is.
//
// This must be run after all file systems have been mounted. Links that exist
// already are left untouched. All failures are returned as [SetupError].
func CreateSymlinks(root string, symlinks Symlinks) error {
	var errs SetupError

	for _, link := range symlinks.Links() {
		err := os.Symlink(symlinks[link], filepath.Join(root, link))
		if err != nil && !errors.Is(err, fs.ErrExist) {
			errs = append(errs, fmt.Errorf("create symlink %s: %w", link, err))
		}
	}

	return errs.errOrNil()
}
