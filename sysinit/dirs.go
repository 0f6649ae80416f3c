// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package sysinit

import (
	"errors"
	"io/fs"
	"path/filepath"
)

// StandardDirectories returns the top-level directories an init creates, in
// order.
func StandardDirectories() []string {
	return []string{
		"/root",
		"/proc",
		"/sys",
		"/tmp",
		"/dev",
		"/run",
		"/var",
	}
}

// CreateDirectories creates the given directories below root with the given
// mode.
//
// Directories that exist already are fine. Parents are not created. Any other
// failure does not stop the remaining directories from being created. All
// failures are returned as [SetupError].
func CreateDirectories(root string, dirs []string, mode fs.FileMode) error {
	var errs SetupError

	for _, dir := range dirs {
		err := mkdir(filepath.Join(root, dir), mode)
		if err != nil && !errors.Is(err, fs.ErrExist) {
			errs = append(errs, err)
		}
	}

	return errs.errOrNil()
}
