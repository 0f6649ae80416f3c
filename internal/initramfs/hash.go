// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package initramfs

import (
	"bytes"
	"context"
	"crypto/sha256"
	"fmt"
	"io"
	"runtime"
	"strings"

	"github.com/google/renameio/v2"
	"golang.org/x/sync/errgroup"
)

// FileHash is the SHA-256 checksum of a regular file in an [Archive].
type FileHash struct {
	Path string
	Sum  [sha256.Size]byte
}

// String returns the hash in the format of sha256sum(1).
func (h FileHash) String() string {
	return fmt.Sprintf("%x  %s", h.Sum, h.Path)
}

// Hashes computes the [FileHash]es of all regular files of the [Archive].
//
// The files are hashed concurrently. The result is in the same order as the
// files are written into the archive.
func (a *Archive) Hashes(ctx context.Context) ([]FileHash, error) {
	var nodes []*TreeNode

	hashes := []FileHash{}

	for path, node := range a.tree.All() {
		if node.IsRegular() {
			nodes = append(nodes, node)
			hashes = append(hashes, FileHash{Path: path})
		}
	}

	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(runtime.GOMAXPROCS(0))

	for idx, node := range nodes {
		group.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err //nolint:wrapcheck
			}

			sum, err := a.hash(node)
			if err != nil {
				return fmt.Errorf("hash %s: %w", hashes[idx].Path, err)
			}

			hashes[idx].Sum = sum

			return nil
		})
	}

	err := group.Wait()
	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	return hashes, nil
}

func (a *Archive) hash(node *TreeNode) ([sha256.Size]byte, error) {
	if node.Type == TreeNodeTypeData {
		return sha256.Sum256(node.Data), nil
	}

	var sum [sha256.Size]byte

	source, err := a.sourceFS.Open(strings.TrimLeft(node.RelatedPath, "/"))
	if err != nil {
		return sum, fmt.Errorf("open source: %w", err)
	}
	defer source.Close()

	hash := sha256.New()

	_, err = io.Copy(hash, source)
	if err != nil {
		return sum, fmt.Errorf("read source: %w", err)
	}

	copy(sum[:], hash.Sum(nil))

	return sum, nil
}

// WriteHashes writes the given [FileHash]es line by line.
func WriteHashes(w io.Writer, hashes []FileHash) error {
	for _, hash := range hashes {
		_, err := fmt.Fprintln(w, hash.String())
		if err != nil {
			return fmt.Errorf("write hash: %w", err)
		}
	}

	return nil
}

// WriteHashFile writes the given [FileHash]es into the file at the given path.
// The file is replaced atomically.
func WriteHashFile(path string, hashes []FileHash) error {
	var buf bytes.Buffer

	err := WriteHashes(&buf, hashes)
	if err != nil {
		return err
	}

	err = renameio.WriteFile(path, buf.Bytes(), archiveFileMode)
	if err != nil {
		return fmt.Errorf("write hash file: %w", err)
	}

	return nil
}
