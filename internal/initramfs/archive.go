// SPDX-FileCopyrightText: 2024 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package initramfs

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/renameio/v2"
)

const archiveFileMode = 0o644

// Archive represents a file tree that can be used as an initramfs for the
// Linux kernel.
//
// Create a new instance using [NewArchive] and add files to its [Tree]. Once
// ready, write it with [Archive.WriteInto] or [Archive.WriteFile].
type Archive struct {
	tree     Tree
	sourceFS fs.FS
}

// NewArchive creates a new empty [Archive]. The sources of regular files are
// read from the given [fs.FS]. If it is nil, the host root file system is
// used.
func NewArchive(sourceFS fs.FS) *Archive {
	if sourceFS == nil {
		sourceFS = os.DirFS("/")
	}

	return &Archive{
		sourceFS: sourceFS,
	}
}

// Tree returns the file [Tree] of the archive.
func (a *Archive) Tree() *Tree {
	return &a.tree
}

// WriteInto writes the [Archive] as CPIO archive with the given [Compression]
// to the given writer.
func (a *Archive) WriteInto(w io.Writer, compression Compression) error {
	compressor, err := compression.NewWriter(w)
	if err != nil {
		return err
	}

	writer := NewCPIOWriter(compressor)

	err = a.writeTo(writer)
	if err != nil {
		return errors.Join(err, compressor.Close())
	}

	err = writer.Close()
	if err != nil {
		return errors.Join(err, compressor.Close())
	}

	err = compressor.Close()
	if err != nil {
		return fmt.Errorf("close %s compressor: %w", compression, err)
	}

	return nil
}

// WriteFile writes the [Archive] as CPIO archive with the given [Compression]
// into the file at the given path. The file is replaced atomically, so it is
// either not touched or complete.
func (a *Archive) WriteFile(path string, compression Compression) error {
	pending, err := renameio.NewPendingFile(path,
		renameio.WithTempDir(filepath.Dir(path)),
		renameio.WithPermissions(archiveFileMode),
	)
	if err != nil {
		return fmt.Errorf("create pending file: %w", err)
	}
	defer pending.Cleanup() //nolint:errcheck

	err = a.WriteInto(pending, compression)
	if err != nil {
		return err
	}

	err = pending.CloseAtomicallyReplace()
	if err != nil {
		return fmt.Errorf("replace %s: %w", path, err)
	}

	return nil
}

// writeTo writes all collected files into the given writer. Regular files are
// copied from the source FS of the [Archive].
func (a *Archive) writeTo(writer Writer) error {
	for path, node := range a.tree.All() {
		if isRoot(path) {
			continue
		}

		// Archive paths are relative to the root the kernel unpacks into.
		err := node.WriteTo(writer, strings.TrimPrefix(path, "/"), a.sourceFS)
		if err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
	}

	return nil
}
