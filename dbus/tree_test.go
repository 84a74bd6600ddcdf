// SPDX-License-Identifier: MIT
package dbus

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestObjectTree(t *testing.T) {
	ctx := context.Background()
	tree := NewObjectTree()

	for _, path := range []string{"/org/freedesktop/DBus", "/org/a", "/test", "/org/freedesktop/Notifications"} {
		if _, err := tree.Insert(path); err != nil {
			t.Fatalf("ObjectTree.Insert(%q) error = %v", path, err)
		}
	}

	gotPaths, err := tree.Paths(ctx)
	if err != nil {
		t.Fatalf("ObjectTree.Paths() error = %v", err)
	}
	wantPaths := []string{
		"/",
		"/org",
		"/test",
		"/org/a",
		"/org/freedesktop",
		"/org/freedesktop/DBus",
		"/org/freedesktop/Notifications",
	}
	if diff := cmp.Diff(wantPaths, gotPaths); diff != "" {
		t.Errorf("ObjectTree.Paths() mismatch (-want +got):\n%s", diff)
	}

	gotLevels, err := tree.Levels(ctx)
	if err != nil {
		t.Fatalf("ObjectTree.Levels() error = %v", err)
	}
	wantLevels := [][]string{
		{"/"},
		{"/org", "/test"},
		{"/org/a", "/org/freedesktop"},
		{"/org/freedesktop/DBus", "/org/freedesktop/Notifications"},
	}
	if diff := cmp.Diff(wantLevels, gotLevels); diff != "" {
		t.Errorf("ObjectTree.Levels() mismatch (-want +got):\n%s", diff)
	}

	node, err := tree.Locate("/org/freedesktop")
	if err != nil {
		t.Fatalf("ObjectTree.Locate() error = %v", err)
	}
	if node.Segment() != "freedesktop" || node.Parent().Path() != "/org" {
		t.Errorf("ObjectTree.Locate() = %s, parent %s", node.Path(), node.Parent().Path())
	}

	if _, err = tree.Locate("/org/missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("ObjectTree.Locate() error = %v, want %v", err, ErrNotFound)
	}
	if _, err = node.AddChild("DBus"); !errors.Is(err, ErrAlreadyChild) {
		t.Errorf("ObjectTree.AddChild() error = %v, want %v", err, ErrAlreadyChild)
	}
}

func TestObjectTree_invalidPaths(t *testing.T) {
	tree := NewObjectTree()

	for _, path := range []string{"", "org", "/org/", "//", "/a//b"} {
		if _, err := tree.Insert(path); !errors.Is(err, ErrInvalidPath) {
			t.Errorf("ObjectTree.Insert(%q) error = %v, want %v", path, err, ErrInvalidPath)
		}
	}

	if _, err := tree.AddChild("a/b"); !errors.Is(err, ErrInvalidPath) {
		t.Errorf("ObjectTree.AddChild() error = %v, want %v", err, ErrInvalidPath)
	}

	root, err := tree.Locate("/")
	if err != nil || root != tree {
		t.Errorf("ObjectTree.Locate(/) = %v, %v, want root", root, err)
	}
}

func TestObjectTree_cancelledWalk(t *testing.T) {
	tree := NewObjectTree()
	_, _ = tree.Insert("/a/b/c")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := tree.Paths(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("ObjectTree.Paths() error = %v, want %v", err, context.Canceled)
	}
}
