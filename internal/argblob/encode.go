// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package argblob

import (
	"bytes"
	"fmt"
	"strings"
)

// Encode creates a blob from the given argument vector. The first element is
// the program path.
//
// Every argument is NUL terminated, so empty trailing arguments survive a
// [Decode] round trip.
func Encode(argv []string) ([]byte, error) {
	if len(argv) == 0 || argv[0] == "" {
		return nil, ErrEmpty
	}

	if len(argv) > MaxArgs {
		return nil, fmt.Errorf("%w: %d > %d", ErrTooManyTokens, len(argv), MaxArgs)
	}

	var buf bytes.Buffer

	for idx, arg := range argv {
		if strings.IndexByte(arg, 0) >= 0 {
			return nil, fmt.Errorf("%w: NUL byte in argument %d", ErrInvalidArgument, idx)
		}

		buf.WriteString(arg)
		buf.WriteByte(0)
	}

	if buf.Len() > MaxSize {
		return nil, fmt.Errorf("%w: %d bytes", ErrTooLarge, buf.Len())
	}

	return buf.Bytes(), nil
}
