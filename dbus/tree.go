// SPDX-License-Identifier: MIT
package dbus

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

type (
	// ObjectTree is an n-ary tree of object path segments rooted at "/".
	//
	// Synchronization is unnecessary, the type is designed for single write multiple read.
	ObjectTree struct {
		// parent contains a reference to the upper ObjectTree.
		parent *ObjectTree

		// segment is the node's path element, empty for the root.
		segment string

		// children holds references to nodes at a lower level.
		children map[string]*ObjectTree
	}

	// TraverseComm communicates walked nodes to the caller of ObjectTree.Walk.
	TraverseComm struct {
		node     *ObjectTree
		newPeers bool
	}
)

const traverseBufferSize = 10

// ObjectTree errors.
var (
	ErrNotFound     = errors.New("not found")
	ErrAlreadyChild = errors.New("is a child of")
	ErrInvalidPath  = errors.New("invalid object path")
)

// NewObjectTree instantiates the root of an ObjectTree.
func NewObjectTree() *ObjectTree { return &ObjectTree{children: make(map[string]*ObjectTree)} }

// Segment retrieves the ObjectTree's path element.
func (t *ObjectTree) Segment() string { return t.segment }

// Parent retrieves a reference to the ObjectTree's parent.
//
// Value is nil for the root node.
func (t *ObjectTree) Parent() *ObjectTree { return t.parent }

// Path assembles the object path of the ObjectTree.
func (t *ObjectTree) Path() string {
	if t.parent == nil {
		return "/"
	}

	segments := []string{}
	for node := t; node.parent != nil; node = node.parent {
		segments = slices.Insert(segments, 0, node.segment)
	}

	return "/" + strings.Join(segments, "/")
}

// Child retrieves an immediate child.
func (t *ObjectTree) Child(segment string) (child *ObjectTree, ok bool) {
	child, ok = t.children[segment]
	return
}

// AddChild creates an immediate child.
//
// Throws an error on existing child.
func (t *ObjectTree) AddChild(segment string) (child *ObjectTree, err error) {
	if segment == "" || strings.Contains(segment, "/") {
		return nil, fmt.Errorf("%w: segment %q", ErrInvalidPath, segment)
	}
	if _, ok := t.Child(segment); ok {
		return nil, fmt.Errorf("(%s) %w (%s)", segment, ErrAlreadyChild, t.Path())
	}

	child = &ObjectTree{parent: t, segment: segment, children: make(map[string]*ObjectTree)}
	t.children[segment] = child

	return
}

// Insert adds an absolute object path, creating missing intermediate nodes.
func (t *ObjectTree) Insert(path string) (node *ObjectTree, err error) {
	segments, err := splitPath(path)
	if err != nil {
		return
	}

	node = t
	for _, segment := range segments {
		child, ok := node.Child(segment)
		if !ok {
			if child, err = node.AddChild(segment); err != nil {
				return nil, err
			}
		}
		node = child
	}

	return
}

// Locate searches for an absolute object path.
func (t *ObjectTree) Locate(path string) (node *ObjectTree, err error) {
	segments, err := splitPath(path)
	if err != nil {
		return
	}

	node = t
	for _, segment := range segments {
		var ok bool
		if node, ok = node.Child(segment); !ok {
			return nil, fmt.Errorf("(%s) %w", path, ErrNotFound)
		}
	}

	return
}

// Walk performs breadth-first traversal on an ObjectTree, pushing its nodes to its channel
// argument.
//
// Siblings are visited in lexical order. A context.Context is used to terminate the walk
// operation.
func (t *ObjectTree) Walk(ctx context.Context, traverseChan chan TraverseComm) {
	defer close(traverseChan)

	if t == nil {
		return
	}

	// Level order traversal.
	queue := []*ObjectTree{t}

	var front *ObjectTree
	for len(queue) > 0 {
		queueLen := len(queue)

		newPeers := true
		for ; queueLen > 0; queueLen-- {
			front, queue = queue[0], queue[1:]

			select {
			case <-ctx.Done():
				return
			case traverseChan <- TraverseComm{node: front, newPeers: newPeers}:
			}
			newPeers = false

			keys := maps.Keys(front.children)
			slices.Sort(keys)
			for _, key := range keys {
				queue = append(queue, front.children[key])
			}
		}
	}
}

// Paths lists the object paths of the ObjectTree, level by level.
func (t *ObjectTree) Paths(ctx context.Context) (paths []string, err error) {
	traverseChan := make(chan TraverseComm, traverseBufferSize)

	walkCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	go t.Walk(walkCtx, traverseChan)

	for resl := range traverseChan {
		paths = append(paths, resl.node.Path())
	}

	err = ctx.Err()

	return
}

// Levels lists the object paths of the ObjectTree grouped by depth.
func (t *ObjectTree) Levels(ctx context.Context) (levels [][]string, err error) {
	traverseChan := make(chan TraverseComm, traverseBufferSize)

	walkCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	go t.Walk(walkCtx, traverseChan)

	var peers []string
	for resl := range traverseChan {
		if resl.newPeers && len(peers) > 0 {
			levels = append(levels, peers)
			peers = nil
		}
		peers = append(peers, resl.node.Path())
	}
	if len(peers) > 0 {
		levels = append(levels, peers)
	}

	err = ctx.Err()

	return
}

// splitPath validates an absolute object path & splits it into segments.
func splitPath(path string) (segments []string, err error) {
	if !strings.HasPrefix(path, "/") || (len(path) > 1 && strings.HasSuffix(path, "/")) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPath, path)
	}
	if path == "/" {
		return
	}

	segments = strings.Split(path[1:], "/")
	for _, segment := range segments {
		if segment == "" {
			return nil, fmt.Errorf("%w: %q", ErrInvalidPath, path)
		}
	}

	return
}
