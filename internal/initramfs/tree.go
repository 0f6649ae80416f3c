// SPDX-FileCopyrightText: 2024 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package initramfs

import (
	"errors"
	"io/fs"
	"iter"
	"path"
)

// Tree represents a simple file tree.
//
// Paths are slash separated and always relative to the root of the tree.
type Tree struct {
	// Do not access directly! Always use [Tree.GetRoot] to access the root
	// node to ensure it exists.
	root *TreeNode
}

func isRoot(p string) bool {
	switch path.Clean("/" + p) {
	case "/":
		return true
	default:
		return false
	}
}

func split(p string) (string, string) {
	return path.Split(path.Clean("/" + p))
}

// GetRoot returns the root node of the tree.
func (t *Tree) GetRoot() *TreeNode {
	if t.root == nil {
		t.root = &TreeNode{
			Type: TreeNodeTypeDirectory,
		}
	}

	return t.root
}

// GetNode returns the node for the given path. Returns [ErrTreeNodeNotExists]
// if the node does not exist.
func (t *Tree) GetNode(p string) (*TreeNode, error) {
	if isRoot(p) {
		return t.GetRoot(), nil
	}

	dir, name := split(p)

	parent, err := t.GetNode(dir)
	if err != nil {
		return nil, err
	}

	return parent.GetNode(name)
}

// Mkdir adds a directory node for the given path. Non existing parents
// are created recursively. If the path or any of the parents exists but is not
// a directory [ErrTreeNodeNotDir] is returned.
func (t *Tree) Mkdir(p string) (*TreeNode, error) {
	if isRoot(p) {
		return t.GetRoot(), nil
	}

	dir, name := split(p)

	parent, err := t.Mkdir(dir)
	if err != nil {
		return nil, err
	}

	node, err := parent.AddDirectory(name)
	if errors.Is(err, ErrTreeNodeExists) {
		if !node.IsDir() {
			return nil, ErrTreeNodeNotDir
		}

		err = nil
	}

	return node, err
}

// Ln adds a link to target for the given path. Parent directories are
// created. An existing link is not an error.
func (t *Tree) Ln(target string, p string) error {
	return t.withParent(p, func(dirNode *TreeNode, name string) error {
		node, err := dirNode.AddLink(name, target)
		if errors.Is(err, ErrTreeNodeExists) && node.IsLink() {
			err = nil
		}

		return err
	})
}

// AddRegular adds a regular file for the given path that is copied from the
// given source path. Parent directories are created. If mode is 0, the mode
// of the source is used.
func (t *Tree) AddRegular(p string, source string, mode fs.FileMode) error {
	return t.withParent(p, func(dirNode *TreeNode, name string) error {
		_, err := dirNode.AddRegular(name, source, mode)
		return err
	})
}

// AddData adds a file with the given content for the given path. Parent
// directories are created.
func (t *Tree) AddData(p string, data []byte, mode fs.FileMode) error {
	return t.withParent(p, func(dirNode *TreeNode, name string) error {
		_, err := dirNode.AddData(name, data, mode)
		return err
	})
}

// AddDevice adds a device node at the given path. Missing parent directories
// are created.
func (t *Tree) AddDevice(p string, device Device, mode fs.FileMode) error {
	return t.withParent(p, func(dirNode *TreeNode, name string) error {
		_, err := dirNode.AddDevice(name, device, mode)
		return err
	})
}

func (t *Tree) withParent(
	p string,
	fn func(dirNode *TreeNode, name string) error,
) error {
	if isRoot(p) {
		return ErrTreeNodeExists
	}

	dir, name := split(p)

	dirNode, err := t.Mkdir(dir)
	if err != nil {
		return err
	}

	return fn(dirNode, name)
}

// All returns an iterator that iterates all [TreeNode]s recursively.
//
// The root is yielded first. Directories are always yielded before their
// children and children are yielded in lexical order, so the result is
// stable for the same tree.
func (t *Tree) All() iter.Seq2[string, *TreeNode] {
	return func(yield func(string, *TreeNode) bool) {
		base := "/"
		root := t.GetRoot()

		if !yield(base, root) {
			return
		}

		iterators := []iter.Seq2[string, *TreeNode]{
			root.prefixedPaths(base),
		}

		for len(iterators) > 0 {
			for p, node := range iterators[0] {
				if !yield(p, node) {
					return
				}

				if node.IsDir() {
					iterators = append(iterators, node.prefixedPaths(p))
				}
			}

			iterators = iterators[1:]
		}
	}
}
