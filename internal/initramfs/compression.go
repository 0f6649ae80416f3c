// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package initramfs

import (
	"fmt"
	"io"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"gopkg.in/yaml.v3"
)

// Compression is the compression format of an archive. All of them are
// supported by the kernel's initramfs unpacker, if enabled in the kernel
// config.
type Compression string

const (
	CompressionNone Compression = "none"
	CompressionGzip Compression = "gzip"
	CompressionZstd Compression = "zstd"
)

// Compressions returns all supported [Compression]s.
func Compressions() []Compression {
	return []Compression{CompressionNone, CompressionGzip, CompressionZstd}
}

// String implements [fmt.Stringer].
func (c *Compression) String() string {
	return string(*c)
}

// Set implements [flag.Value].
func (c *Compression) Set(value string) error {
	switch Compression(value) {
	case CompressionNone, CompressionGzip, CompressionZstd:
		*c = Compression(value)
		return nil
	default:
		return fmt.Errorf("%w: %q (one of: %s)",
			ErrUnknownCompression, value, Compressions())
	}
}

// Type implements the pflag.Value interface.
func (*Compression) Type() string {
	return "compression"
}

// UnmarshalYAML implements [yaml.Unmarshaler].
func (c *Compression) UnmarshalYAML(node *yaml.Node) error {
	return c.Set(node.Value)
}

// NewWriter returns an [io.WriteCloser] that writes compressed data into the
// given writer. Closing it flushes all pending data but does not close the
// given writer. The empty [Compression] is the same as [CompressionNone].
func (c Compression) NewWriter(w io.Writer) (io.WriteCloser, error) {
	switch c {
	case "", CompressionNone:
		return nopCloser{w}, nil
	case CompressionGzip:
		writer, err := gzip.NewWriterLevel(w, gzip.BestCompression)
		if err != nil {
			return nil, fmt.Errorf("gzip: %w", err)
		}

		return writer, nil
	case CompressionZstd:
		writer, err := zstd.NewWriter(w,
			zstd.WithEncoderLevel(zstd.SpeedBestCompression),
			zstd.WithEncoderConcurrency(1),
		)
		if err != nil {
			return nil, fmt.Errorf("zstd: %w", err)
		}

		return writer, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownCompression, string(c))
	}
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error {
	return nil
}
