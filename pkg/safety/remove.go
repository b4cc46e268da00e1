// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package safety guards deletions inside the launchpad home directory.
package safety

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

var ErrUnsafePath = errors.New("refusing to delete")

// RemoveEntry deletes parent/name, where name must be a single path element
// naming a direct child of parent. parent itself is never removed.
func RemoveEntry(parent, name string) error {
	if name == "" || name == "." || name == ".." {
		return fmt.Errorf("%w: invalid name %q", ErrUnsafePath, name)
	}
	if filepath.Base(name) != name {
		return fmt.Errorf("%w: name cannot contain path separators: %s", ErrUnsafePath, name)
	}

	absParent, err := filepath.Abs(parent)
	if err != nil {
		return fmt.Errorf("failed to resolve %s: %w", parent, err)
	}
	absTarget := filepath.Join(absParent, name)
	if absTarget == absParent || filepath.Dir(absTarget) != absParent {
		return fmt.Errorf("%w: %s is not inside %s", ErrUnsafePath, absTarget, absParent)
	}

	// a symlinked entry is unlinked, never followed
	fi, err := os.Lstat(absTarget)
	if err != nil {
		return err
	}
	if fi.Mode()&os.ModeSymlink != 0 {
		return os.Remove(absTarget)
	}
	return os.RemoveAll(absTarget)
}
