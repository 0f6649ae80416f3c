// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package argblob

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned if a startup item can not be opened.
	ErrNotFound = errors.New("startup item not found")

	// ErrReadFailed is returned if reading a startup item fails.
	ErrReadFailed = errors.New("read failed")

	// ErrTooManyTokens is returned if a blob has more than [MaxArgs] strings.
	ErrTooManyTokens = errors.New("too many arguments")

	// ErrTooLarge is returned if a blob exceeds [MaxSize] bytes.
	ErrTooLarge = errors.New("blob too large")

	// ErrEmpty is returned if a blob has no program path.
	ErrEmpty = errors.New("empty program path")

	// ErrInvalidArgument is returned by [Encode] for arguments that can not
	// be represented in a blob.
	ErrInvalidArgument = errors.New("invalid argument")
)

// LoadError wraps any error occurring while loading a startup item.
type LoadError struct {
	Path string
	Err  error
}

// Error implements the [error] interface.
func (e *LoadError) Error() string {
	return fmt.Sprintf("load %s: %v", e.Path, e.Err)
}

// Is implements the [errors.Is] interface.
func (*LoadError) Is(other error) bool {
	_, ok := other.(*LoadError)
	return ok
}

// Unwrap implements the [errors.Unwrap] interface.
func (e *LoadError) Unwrap() error {
	return e.Err
}
