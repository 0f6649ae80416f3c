// SPDX-FileCopyrightText: 2024 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package initramfs

import (
	"fmt"
	"io/fs"
	"iter"
	"maps"
	"path"
	"slices"
	"strings"
)

// TreeNode is a single file tree node.
type TreeNode struct {
	// Type of this node.
	Type TreeNodeType

	// Mode holds the permission bits of regular and data files.
	Mode fs.FileMode

	// RelatedPath is the source path of a regular file or the target of a
	// link.
	RelatedPath string

	// Data is the content of a data file.
	Data []byte

	// Device is the device a device node refers to.
	Device Device

	children map[string]*TreeNode
}

// String returns a string representation of the TreeNode.
func (e *TreeNode) String() string {
	switch e.Type {
	case TreeNodeTypeRegular:
		return "regular file (" + e.RelatedPath + ")"
	case TreeNodeTypeDirectory:
		return fmt.Sprintf("directory (% s)", slices.Sorted(maps.Keys(e.children)))
	case TreeNodeTypeLink:
		return "link (" + e.RelatedPath + ")"
	case TreeNodeTypeData:
		return fmt.Sprintf("data (%d bytes)", len(e.Data))
	case TreeNodeTypeDevice:
		return "device (" + e.Device.String() + ")"
	default:
		return "invalid type"
	}
}

// IsDir returns true if the [TreeNode] is a directory.
func (e *TreeNode) IsDir() bool {
	return e.Type == TreeNodeTypeDirectory
}

// IsLink returns true if the [TreeNode] is a link.
func (e *TreeNode) IsLink() bool {
	return e.Type == TreeNodeTypeLink
}

// IsRegular returns true if the [TreeNode] is a regular or data file.
func (e *TreeNode) IsRegular() bool {
	return e.Type == TreeNodeTypeRegular || e.Type == TreeNodeTypeData
}

// AddRegular adds a new regular file [TreeNode] children that is copied from
// the given source path.
func (e *TreeNode) AddRegular(
	name string,
	source string,
	mode fs.FileMode,
) (*TreeNode, error) {
	node := &TreeNode{
		Type:        TreeNodeTypeRegular,
		Mode:        mode,
		RelatedPath: source,
	}

	return e.AddNode(name, node)
}

// AddData adds a new data file [TreeNode] children with the given content.
func (e *TreeNode) AddData(
	name string,
	data []byte,
	mode fs.FileMode,
) (*TreeNode, error) {
	node := &TreeNode{
		Type: TreeNodeTypeData,
		Mode: mode,
		Data: data,
	}

	return e.AddNode(name, node)
}

// AddDevice adds a new device node [TreeNode] children.
func (e *TreeNode) AddDevice(
	name string,
	device Device,
	mode fs.FileMode,
) (*TreeNode, error) {
	node := &TreeNode{
		Type:   TreeNodeTypeDevice,
		Mode:   mode,
		Device: device,
	}

	return e.AddNode(name, node)
}

// AddDirectory adds a new directory [TreeNode] children.
func (e *TreeNode) AddDirectory(name string) (*TreeNode, error) {
	node := &TreeNode{
		Type: TreeNodeTypeDirectory,
	}

	return e.AddNode(name, node)
}

// AddLink adds a new link [TreeNode] children.
func (e *TreeNode) AddLink(name, target string) (*TreeNode, error) {
	node := &TreeNode{
		Type:        TreeNodeTypeLink,
		RelatedPath: target,
	}

	return e.AddNode(name, node)
}

// AddNode adds an arbitrary [TreeNode] as children. The caller is responsible
// for using only valid [TreeNodeType]s and according fields.
func (e *TreeNode) AddNode(name string, node *TreeNode) (*TreeNode, error) {
	if !e.IsDir() {
		return nil, ErrTreeNodeNotDir
	}

	if ee, exists := e.children[name]; exists {
		return ee, ErrTreeNodeExists
	}

	if e.children == nil {
		e.children = make(map[string]*TreeNode)
	}

	e.children[name] = node

	return node, nil
}

// GetNode gets an [TreeNode] for the given name. Returns
// [ErrTreeNodeNotExists] if it doesn't exist.
func (e *TreeNode) GetNode(name string) (*TreeNode, error) {
	if !e.IsDir() {
		return nil, ErrTreeNodeNotDir
	}

	node, exists := e.children[name]
	if !exists {
		return nil, ErrTreeNodeNotExists
	}

	return node, nil
}

// WriteTo writes the [TreeNode] into the given [Writer] with the given path.
//
// If the [TreeNode] is a regular file, it is read from the given source
// [fs.FS]. Leading slashes of the source path are removed, as [fs.FS] does not
// accept them.
func (e *TreeNode) WriteTo(writer Writer, path string, sourceFS fs.FS) error {
	switch e.Type {
	case TreeNodeTypeRegular:
		source, err := sourceFS.Open(strings.TrimLeft(e.RelatedPath, "/"))
		if err != nil {
			return fmt.Errorf("open source: %w", err)
		}
		defer source.Close()

		//nolint:wrapcheck
		return writer.WriteRegular(path, source, e.Mode)
	case TreeNodeTypeData:
		//nolint:wrapcheck
		return writer.WriteData(path, e.Data, e.Mode)
	case TreeNodeTypeDirectory:
		//nolint:wrapcheck
		return writer.WriteDirectory(path)
	case TreeNodeTypeLink:
		//nolint:wrapcheck
		return writer.WriteLink(path, e.RelatedPath)
	case TreeNodeTypeDevice:
		//nolint:wrapcheck
		return writer.WriteDevice(path, e.Device, e.Mode)
	default:
		return fmt.Errorf("%w: %d", ErrTreeNodeTypeUnknown, e.Type)
	}
}

// prefixedPaths creates an iterator over all children in lexical order.
func (e *TreeNode) prefixedPaths(base string) iter.Seq2[string, *TreeNode] {
	return func(yield func(path string, node *TreeNode) bool) {
		for _, name := range slices.Sorted(maps.Keys(e.children)) {
			if !yield(path.Join(base, name), e.children[name]) {
				return
			}
		}
	}
}
