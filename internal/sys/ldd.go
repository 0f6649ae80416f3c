// SPDX-FileCopyrightText: 2024 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package sys

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

const lddTimeout = 5 * time.Second

// Dependencies are the shared objects an ELF file needs at runtime, as
// reported by the dynamic linker.
type Dependencies struct {
	// Interpreter is the dynamic linker itself.
	Interpreter string

	// Libraries are the resolved paths of all needed shared objects, in the
	// order the linker reported them.
	Libraries []string
}

// Paths returns the interpreter, if any, followed by the libraries.
func (d Dependencies) Paths() []string {
	if d.Interpreter == "" {
		return d.Libraries
	}

	return append([]string{d.Interpreter}, d.Libraries...)
}

// Ldd asks the dynamic linker for the [Dependencies] of the ELF file with
// the given path.
//
// It runs the "ldd" executable of the host. An [LDDExecError] is returned if
// it is not available or fails, which is also the case for statically linked
// files. [ErrLibraryNotFound] is returned if the linker cannot resolve all
// libraries.
func Ldd(ctx context.Context, path string) (Dependencies, error) {
	var output bytes.Buffer

	err := runLdd(ctx, path, &output)
	if err != nil {
		return Dependencies{}, err
	}

	return parseLddOutput(&output)
}

func runLdd(ctx context.Context, path string, stdout io.Writer) error {
	ctx, cancel := context.WithTimeout(ctx, lddTimeout)
	defer cancel()

	var stderr bytes.Buffer

	cmd := exec.CommandContext(ctx, "ldd", path)
	cmd.Stdout = stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return &LDDExecError{Err: err, Stderr: stderr.String()}
	}

	return nil
}

// parseLddOutput reads the lines printed by glibc's or musl's ldd. Lines are
// one of:
//
//	name => /resolved/path (0xaddr)
//	name => not found
//	/absolute/interpreter (0xaddr)
//	linux-vdso.so.1 (0xaddr)
//
// Anything else is ignored.
func parseLddOutput(output io.Reader) (Dependencies, error) {
	var (
		deps    Dependencies
		missing []string
	)

	scanner := bufio.NewScanner(output)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())

		switch {
		case len(fields) >= 3 && fields[1] == "=>" && fields[2] == "not":
			missing = append(missing, fields[0])
		case len(fields) >= 3 && fields[1] == "=>":
			if filepath.IsAbs(fields[2]) {
				deps.Libraries = append(deps.Libraries, fields[2])
			}
		case len(fields) == 2 && filepath.IsAbs(fields[0]):
			deps.Interpreter = fields[0]
		}
	}

	if err := scanner.Err(); err != nil {
		return Dependencies{}, fmt.Errorf("read ldd output: %w", err)
	}

	if len(missing) > 0 {
		return Dependencies{}, fmt.Errorf("%w: %s",
			ErrLibraryNotFound, strings.Join(missing, ", "))
	}

	return deps, nil
}
