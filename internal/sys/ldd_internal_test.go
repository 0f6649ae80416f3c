// SPDX-FileCopyrightText: 2024 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package sys

import (
	"io"
	"os/exec"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunLdd(t *testing.T) {
	t.Run("no ldd", func(t *testing.T) {
		t.Setenv("PATH", "")

		err := runLdd(t.Context(), "/bin/sh", io.Discard)
		require.ErrorIs(t, err, &LDDExecError{})
		require.ErrorIs(t, err, exec.ErrNotFound)
	})
}

func TestParseLddOutput(t *testing.T) {
	tests := []struct {
		name        string
		output      string
		expected    Dependencies
		expectedErr error
	}{
		{
			name: "glibc",
			output: "" +
				"\tlinux-vdso.so.1 (0x00007ffd3d5f8000)\n" +
				"\tlibc.so.6 => /lib/x86_64-linux-gnu/libc.so.6 (0x00007f5d3b200000)\n" +
				"\t/lib64/ld-linux-x86-64.so.2 (0x00007f5d3b4a6000)\n",
			expected: Dependencies{
				Interpreter: "/lib64/ld-linux-x86-64.so.2",
				Libraries:   []string{"/lib/x86_64-linux-gnu/libc.so.6"},
			},
		},
		{
			name: "musl",
			output: "" +
				"\t/lib/ld-musl-x86_64.so.1 (0x7f1a2b3c4000)\n" +
				"\tlibc.musl-x86_64.so.1 => /lib/ld-musl-x86_64.so.1 (0x7f1a2b3c4000)\n",
			expected: Dependencies{
				Interpreter: "/lib/ld-musl-x86_64.so.1",
				Libraries:   []string{"/lib/ld-musl-x86_64.so.1"},
			},
		},
		{
			name:   "vdso without path",
			output: "\tlinux-gate.so.1 =>  (0xb7f1e000)\n",
		},
		{
			name: "unknown lines",
			output: "" +
				"\tstatically linked\n" +
				"\tnot a valid line\n",
		},
		{
			name: "missing libraries",
			output: "" +
				"\tlibfoo.so.1 => not found\n" +
				"\tlibc.so.6 => /lib/libc.so.6 (0x00007f5d3b200000)\n" +
				"\tlibbar.so.2 => not found\n",
			expectedErr: ErrLibraryNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			deps, err := parseLddOutput(strings.NewReader(tt.output))
			require.ErrorIs(t, err, tt.expectedErr)

			if tt.expectedErr != nil {
				assert.ErrorContains(t, err, "libfoo.so.1, libbar.so.2")
				return
			}

			assert.Equal(t, tt.expected, deps)
		})
	}
}

func TestDependencies_Paths(t *testing.T) {
	tests := []struct {
		name     string
		deps     Dependencies
		expected []string
	}{
		{
			name: "empty",
		},
		{
			name:     "libraries only",
			deps:     Dependencies{Libraries: []string{"/lib/libc.so.6"}},
			expected: []string{"/lib/libc.so.6"},
		},
		{
			name: "interpreter first",
			deps: Dependencies{
				Interpreter: "/lib/ld.so",
				Libraries:   []string{"/lib/libc.so.6"},
			},
			expected: []string{"/lib/ld.so", "/lib/libc.so.6"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.deps.Paths())
		})
	}
}
