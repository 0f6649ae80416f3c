// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package initramfs_test

import (
	"testing"

	"github.com/aibor/tinyinit/internal/initramfs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompression_Set(t *testing.T) {
	tests := []struct {
		value       string
		expected    initramfs.Compression
		expectedErr error
	}{
		{value: "none", expected: initramfs.CompressionNone},
		{value: "gzip", expected: initramfs.CompressionGzip},
		{value: "zstd", expected: initramfs.CompressionZstd},
		{
			value:       "lz4",
			expected:    initramfs.CompressionNone,
			expectedErr: initramfs.ErrUnknownCompression,
		},
		{
			value:       "",
			expected:    initramfs.CompressionNone,
			expectedErr: initramfs.ErrUnknownCompression,
		},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			compression := initramfs.CompressionNone

			err := compression.Set(tt.value)
			require.ErrorIs(t, err, tt.expectedErr)

			assert.Equal(t, tt.expected, compression)
			assert.Equal(t, string(tt.expected), compression.String())
			assert.Equal(t, "compression", compression.Type())
		})
	}
}
