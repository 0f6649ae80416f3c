// SPDX-FileCopyrightText: 2024 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package initramfs

// TreeNodeType defines the type of a [TreeNode].
type TreeNodeType int

const (
	// TreeNodeTypeRegular is a regular file. It is copied completely from its
	// source into the archive.
	TreeNodeTypeRegular TreeNodeType = iota

	// TreeNodeTypeDirectory is a directory that is created in the archive.
	TreeNodeTypeDirectory

	// TreeNodeTypeLink is a symbolic link in the archive.
	TreeNodeTypeLink

	// TreeNodeTypeData is a regular file with in-memory content, like the
	// argument blob of a startup item.
	TreeNodeTypeData

	// TreeNodeTypeDevice is a character or block device node.
	TreeNodeTypeDevice
)
