// SPDX-FileCopyrightText: 2024 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package initramfs

import (
	"bytes"
	"fmt"
	"io"
	"io/fs"
	"time"

	"github.com/cavaliergopher/cpio"
)

const (
	dirLinks  = 2
	fileLinks = 1

	newcMagic      = "070701"
	newcHeaderSize = 110
	newcRdevMajor  = 78
	newcRdevMinor  = 86
	newcFieldSize  = 8
)

// All entries get the same modification time, so archives of the same content
// are identical.
var modTime = time.Unix(0, 0)

// CPIOWriter implements [Writer] for newc CPIO archives.
type CPIOWriter struct {
	cpioWriter *cpio.Writer
	rdev       *rdevWriter
}

var _ Writer = (*CPIOWriter)(nil)

// NewCPIOWriter creates a new archive writer.
func NewCPIOWriter(w io.Writer) *CPIOWriter {
	rdev := &rdevWriter{writer: w}

	return &CPIOWriter{
		cpioWriter: cpio.NewWriter(rdev),
		rdev:       rdev,
	}
}

// rdevWriter sets the rdevmajor and rdevminor fields of the next newc header
// written through it. [cpio.Header] has no fields for them.
type rdevWriter struct {
	writer  io.Writer
	pending *Device
}

func (w *rdevWriter) Write(p []byte) (int, error) {
	if w.pending == nil ||
		len(p) < newcHeaderSize ||
		!bytes.HasPrefix(p, []byte(newcMagic)) {
		return w.writer.Write(p) //nolint:wrapcheck
	}

	header := bytes.Clone(p)
	putHex(header[newcRdevMajor:], w.pending.Major)
	putHex(header[newcRdevMinor:], w.pending.Minor)

	w.pending = nil

	return w.writer.Write(header) //nolint:wrapcheck
}

func putHex(field []byte, value uint32) {
	copy(field[:newcFieldSize], fmt.Sprintf("%08X", value))
}

// Close writes the archive trailer and flushes the [CPIOWriter]. It does not
// close the underlying [io.Writer].
func (w *CPIOWriter) Close() error {
	err := w.cpioWriter.Close()
	if err != nil {
		return fmt.Errorf("close: %w", err)
	}

	return nil
}

func (w *CPIOWriter) writeHeader(hdr *cpio.Header) error {
	hdr.ModTime = modTime

	err := w.cpioWriter.WriteHeader(hdr)
	if err != nil {
		return fmt.Errorf("write header for %s: %w", hdr.Name, err)
	}

	return nil
}

func (w *CPIOWriter) writeBody(path string, body []byte) error {
	_, err := w.cpioWriter.Write(body)
	if err != nil {
		return fmt.Errorf("write body for %s: %w", path, err)
	}

	return nil
}

// WriteDirectory adds a directory entry for the given path to the archive.
func (w *CPIOWriter) WriteDirectory(path string) error {
	header := &cpio.Header{
		Name:  path,
		Mode:  cpio.TypeDir | cpio.ModePerm,
		Links: dirLinks,
	}

	return w.writeHeader(header)
}

// WriteLink adds a symbolic link for the given path pointing to the given
// target.
func (w *CPIOWriter) WriteLink(path, target string) error {
	header := &cpio.Header{
		Name:  path,
		Mode:  cpio.TypeSymlink | cpio.ModePerm,
		Size:  int64(len(target)),
		Links: fileLinks,
	}

	err := w.writeHeader(header)
	if err != nil {
		return err
	}

	// Body of a link is the path of the target file.
	return w.writeBody(path, []byte(target))
}

// WriteRegular copies the existing file from source into the archive.
func (w *CPIOWriter) WriteRegular(
	path string,
	source fs.File,
	mode fs.FileMode,
) error {
	info, err := source.Stat()
	if err != nil {
		return fmt.Errorf("read info for %s: %w", path, err)
	}

	if !info.Mode().IsRegular() {
		return fmt.Errorf("%w: %s", ErrNotRegularFile, path)
	}

	if mode == 0 {
		mode = info.Mode()
	}

	header := &cpio.Header{
		Name:  path,
		Mode:  cpio.TypeReg | cpio.FileMode(mode.Perm()),
		Size:  info.Size(),
		Links: fileLinks,
	}

	err = w.writeHeader(header)
	if err != nil {
		return err
	}

	_, err = io.Copy(w.cpioWriter, source)
	if err != nil {
		return fmt.Errorf("write body for %s: %w", path, err)
	}

	return nil
}

// WriteData adds a regular file with the given content.
func (w *CPIOWriter) WriteData(path string, data []byte, mode fs.FileMode) error {
	header := &cpio.Header{
		Name:  path,
		Mode:  cpio.TypeReg | cpio.FileMode(mode.Perm()),
		Size:  int64(len(data)),
		Links: fileLinks,
	}

	err := w.writeHeader(header)
	if err != nil {
		return err
	}

	return w.writeBody(path, data)
}

// WriteDevice adds a device node for the given path.
func (w *CPIOWriter) WriteDevice(
	path string,
	device Device,
	mode fs.FileMode,
) error {
	if err := device.Validate(); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	fileType := cpio.FileMode(cpio.TypeChar)
	if device.Type == DeviceTypeBlock {
		fileType = cpio.TypeBlock
	}

	header := &cpio.Header{
		Name:  path,
		Mode:  fileType | cpio.FileMode(mode.Perm()),
		Links: fileLinks,
	}

	w.rdev.pending = &device
	defer func() { w.rdev.pending = nil }()

	err := w.writeHeader(header)
	if err != nil {
		return err
	}

	if w.rdev.pending != nil {
		return fmt.Errorf("%w: %s", ErrDeviceNumbers, path)
	}

	return nil
}
