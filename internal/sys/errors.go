// SPDX-FileCopyrightText: 2024 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package sys

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNoInterpreter is returned if no interpreter is found in an ELF file.
	ErrNoInterpreter = errors.New("no interpreter in ELF file")

	// ErrNotELFFile is returned if the file does not have an ELF magic number.
	ErrNotELFFile = errors.New("is not an ELF file")

	// ErrLibraryNotFound is returned if the dynamic linker cannot resolve a
	// needed shared object.
	ErrLibraryNotFound = errors.New("shared object not found")

	// ErrEmptyPath is returned if an empty path is given.
	ErrEmptyPath = errors.New("path must not be empty")
)

// LDDExecError is returned if "ldd" could not be run or failed.
type LDDExecError struct {
	Err    error
	Stderr string
}

func (e *LDDExecError) Error() string {
	msg := "ldd: " + e.Err.Error()

	stderr := strings.TrimSpace(e.Stderr)
	if stderr != "" {
		msg = fmt.Sprintf("%s: %s", msg, stderr)
	}

	return msg
}

func (e *LDDExecError) Is(other error) bool {
	_, ok := other.(*LDDExecError)
	return ok
}

func (e *LDDExecError) Unwrap() error {
	return e.Err
}
