// SPDX-FileCopyrightText: 2024 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package initramfs

import (
	"errors"
	"io/fs"
)

var (
	// ErrTreeNodeExists is returned if a tree node exists that was not
	// expected.
	ErrTreeNodeExists = fs.ErrExist

	// ErrTreeNodeNotExists is returned if a tree node that is looked up does
	// not exist.
	ErrTreeNodeNotExists = fs.ErrNotExist

	// ErrTreeNodeNotDir is returned if a tree node exists but is not a
	// directory.
	ErrTreeNodeNotDir = errors.New("not a directory")

	// ErrTreeNodeTypeUnknown is returned if a tree node has an invalid type.
	ErrTreeNodeTypeUnknown = errors.New("unknown tree node type")

	// ErrNotRegularFile is returned if the source of a regular file is not a
	// regular file.
	ErrNotRegularFile = errors.New("not a regular file")

	// ErrUnknownDeviceType is returned for an invalid [DeviceType].
	ErrUnknownDeviceType = errors.New("unknown device type")

	// ErrDeviceNumbers is returned if the device numbers of a device node
	// could not be written into the archive.
	ErrDeviceNumbers = errors.New("device numbers not written")

	// ErrUnknownCompression is returned for an invalid [Compression].
	ErrUnknownCompression = errors.New("unknown compression")

	// ErrInvalidManifest is returned if a [Manifest] can not be built.
	ErrInvalidManifest = errors.New("invalid manifest")
)
