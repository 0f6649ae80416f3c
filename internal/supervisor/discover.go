// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package supervisor

import (
	"fmt"
	"path/filepath"
)

// DefaultPattern is the glob pattern matching the startup items.
const DefaultPattern = "/init.d/*"

// Discover returns the startup items matching the given glob pattern in
// lexical order.
//
// A pattern without meta characters matches the single file it names, if it
// exists. If nothing matches, [ErrNoStartupItems] is returned. See
// [filepath.Match] for the pattern format.
func Discover(pattern string) ([]string, error) {
	paths, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("glob %s: %w", pattern, err)
	}

	if len(paths) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoStartupItems, pattern)
	}

	return paths, nil
}
