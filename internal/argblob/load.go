// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package argblob

import (
	"errors"
	"fmt"
	"io"
	"os"
)

// Load reads the startup item at the given path and decodes it into an
// [Invocation].
//
// All errors are of type [*LoadError].
func Load(path string) (*Invocation, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, &LoadError{
			Path: path,
			Err:  fmt.Errorf("%w: %w", ErrNotFound, err),
		}
	}
	defer file.Close()

	buf, err := read(file)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}

	inv, err := Decode(buf)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}

	inv.Source = path

	return inv, nil
}

// read reads up to [MaxSize] bytes. One more byte is requested, so oversized
// blobs are detected instead of silently truncated.
func read(reader io.Reader) ([]byte, error) {
	buf := make([]byte, MaxSize+1)

	n, err := io.ReadFull(reader, buf)
	if err != nil &&
		!errors.Is(err, io.EOF) &&
		!errors.Is(err, io.ErrUnexpectedEOF) {
		return nil, fmt.Errorf("%w: %w", ErrReadFailed, err)
	}

	if n > MaxSize {
		return nil, fmt.Errorf("%w: exceeds %d bytes", ErrTooLarge, MaxSize)
	}

	return buf[:n:n], nil
}
