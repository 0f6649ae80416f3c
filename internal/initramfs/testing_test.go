// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package initramfs_test

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/cavaliergopher/cpio"
	"github.com/stretchr/testify/require"
)

type archiveEntry struct {
	Mode     cpio.FileMode
	Linkname string
	Body     string
}

// readArchive reads an uncompressed CPIO archive and returns all entries by
// name in archive order.
func readArchive(t *testing.T, data []byte) ([]string, map[string]archiveEntry) {
	t.Helper()

	var names []string

	entries := make(map[string]archiveEntry)
	reader := cpio.NewReader(bytes.NewReader(data))

	for {
		hdr, err := reader.Next()
		if errors.Is(err, io.EOF) {
			break
		}

		require.NoError(t, err)

		body, err := io.ReadAll(reader)
		require.NoError(t, err)

		names = append(names, hdr.Name)
		entries[hdr.Name] = archiveEntry{
			Mode:     hdr.Mode,
			Linkname: hdr.Linkname,
			Body:     string(body),
		}
	}

	return names, entries
}
