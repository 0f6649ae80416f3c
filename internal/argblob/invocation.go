// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package argblob

import (
	"fmt"
	"strings"
)

const (
	// MaxSize is the maximum size of a blob in bytes.
	MaxSize = 4096

	// MaxArgs is the maximum number of strings in a blob, including the
	// program path.
	MaxArgs = 64
)

// Invocation is a decoded blob: the program path and its arguments.
//
// The arguments are slices into the buffer the Invocation was decoded from.
// The buffer must not be modified as long as the Invocation is in use.
type Invocation struct {
	// Source is the path of the startup item the Invocation was loaded from.
	// It is empty for Invocations created by [Decode].
	Source string

	buf  []byte
	args [][]byte
}

// Decode parses the given buffer into an [Invocation] without copying the
// argument bytes.
//
// A new argument starts after each NUL byte found before the last byte of the
// buffer. A NUL as last byte terminates the last argument and does not start
// another empty one.
func Decode(buf []byte) (*Invocation, error) {
	if len(buf) > MaxSize {
		return nil, fmt.Errorf("%w: %d bytes", ErrTooLarge, len(buf))
	}

	if len(buf) == 0 {
		return nil, ErrEmpty
	}

	args := make([][]byte, 0, 8)
	start := 0

	// Stop before the last byte, so a trailing NUL does not start a new
	// argument.
	for offset := 0; offset < len(buf)-1; offset++ {
		if buf[offset] != 0 {
			continue
		}

		// There is at least one more argument following this one.
		if len(args)+1 >= MaxArgs {
			return nil, fmt.Errorf("%w: more than %d", ErrTooManyTokens, MaxArgs)
		}

		args = append(args, buf[start:offset])
		start = offset + 1
	}

	end := len(buf)
	if buf[end-1] == 0 {
		end--
	}

	args = append(args, buf[start:end])

	if len(args[0]) == 0 {
		return nil, ErrEmpty
	}

	return &Invocation{buf: buf, args: args}, nil
}

// Path returns the executable path.
func (i *Invocation) Path() string {
	return string(i.args[0])
}

// Args returns the arguments including the program path as slices into the
// decoded buffer.
func (i *Invocation) Args() [][]byte {
	return i.args
}

// Argv returns the argument vector including the program path as argv[0].
func (i *Invocation) Argv() []string {
	argv := make([]string, len(i.args))
	for idx, arg := range i.args {
		argv[idx] = string(arg)
	}

	return argv
}

// String returns the human readable trace of the command line.
func (i *Invocation) String() string {
	var builder strings.Builder

	if i.Source != "" {
		builder.WriteString(i.Source)
		builder.WriteString(": ")
	}

	builder.WriteString("execv(")

	for idx, arg := range i.args {
		if idx > 0 {
			builder.WriteByte(',')
		}

		fmt.Fprintf(&builder, "'%s'", arg)
	}

	builder.WriteByte(')')

	return builder.String()
}
