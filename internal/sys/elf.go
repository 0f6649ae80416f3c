// SPDX-FileCopyrightText: 2024 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package sys

import (
	"debug/elf"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Interpreter returns the program interpreter of the ELF file with the given
// path.
//
// It returns [ErrNotELFFile] if the file is not an ELF file and
// [ErrNoInterpreter] if it is statically linked.
func Interpreter(path string) (string, error) {
	file, err := elf.Open(path)
	if err != nil {
		var formatErr *elf.FormatError
		if errors.As(err, &formatErr) ||
			errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return "", fmt.Errorf("%w: %s", ErrNotELFFile, path)
		}

		return "", fmt.Errorf("open: %w", err)
	}
	defer file.Close()

	for _, prog := range file.Progs {
		if prog.Type != elf.PT_INTERP {
			continue
		}

		data, err := io.ReadAll(prog.Open())
		if err != nil {
			return "", fmt.Errorf("read interpreter: %w", err)
		}

		return strings.TrimRight(string(data), "\x00"), nil
	}

	return "", fmt.Errorf("%w: %s", ErrNoInterpreter, path)
}
