// SPDX-FileCopyrightText: 2024 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package sys

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"
)

// CollectLibs resolves the dynamically linked shared objects of all given
// files, including the program interpreter.
//
// Files that are not ELF files or statically linked are skipped. The result
// is deduplicated and sorted. The dynamic linker consumes LD_LIBRARY_PATH
// from the environment.
func CollectLibs(ctx context.Context, files ...string) ([]string, error) {
	libs := make(map[string]struct{})

	for _, name := range files {
		err := collectLibsFor(ctx, libs, name)
		if err != nil {
			return nil, fmt.Errorf("[%s]: %w", name, err)
		}
	}

	return slices.Sorted(maps.Keys(libs)), nil
}

func collectLibsFor(
	ctx context.Context,
	libs map[string]struct{},
	name string,
) error {
	interpreter, err := Interpreter(name)
	if errors.Is(err, ErrNotELFFile) || errors.Is(err, ErrNoInterpreter) {
		return nil
	} else if err != nil {
		return err
	}

	deps, err := Ldd(ctx, name)
	if err != nil {
		return err
	}

	// The kernel loads the interpreter by the path in PT_INTERP, which may
	// differ from the one ldd prints.
	for _, p := range append(deps.Paths(), interpreter) {
		absPath, err := AbsolutePath(p)
		if err != nil {
			return err
		}

		libs[absPath] = struct{}{}
	}

	return nil
}
