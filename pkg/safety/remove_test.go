// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package safety

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRemoveEntry(t *testing.T) {
	keys := filepath.Join(t.TempDir(), "keys")
	alice := filepath.Join(keys, "alice")
	require.NoError(t, os.MkdirAll(alice, 0o700))
	require.NoError(t, os.WriteFile(filepath.Join(alice, "info.json"), []byte("{}"), 0o600))
	require.NoError(t, os.MkdirAll(filepath.Join(keys, "bob"), 0o700))

	require.NoError(t, RemoveEntry(keys, "alice"))
	require.NoDirExists(t, alice)
	require.DirExists(t, filepath.Join(keys, "bob"))
	require.DirExists(t, keys)

	require.ErrorIs(t, RemoveEntry(keys, "alice"), os.ErrNotExist)
}

func TestRemoveEntryRejectsEscapes(t *testing.T) {
	base := t.TempDir()
	keys := filepath.Join(base, "keys")
	require.NoError(t, os.MkdirAll(keys, 0o700))
	require.NoError(t, os.WriteFile(filepath.Join(base, "config.yaml"), []byte("a: b"), 0o600))

	for _, name := range []string{"", ".", "..", "../config.yaml", "a/b", filepath.Join("..", "keys")} {
		require.ErrorIs(t, RemoveEntry(keys, name), ErrUnsafePath, name)
	}
	require.FileExists(t, filepath.Join(base, "config.yaml"))
	require.DirExists(t, keys)
}

func TestRemoveEntryUnlinksSymlink(t *testing.T) {
	base := t.TempDir()
	keys := filepath.Join(base, "keys")
	outside := filepath.Join(base, "outside")
	require.NoError(t, os.MkdirAll(keys, 0o700))
	require.NoError(t, os.MkdirAll(outside, 0o700))
	require.NoError(t, os.WriteFile(filepath.Join(outside, "keep"), []byte("x"), 0o600))
	require.NoError(t, os.Symlink(outside, filepath.Join(keys, "link")))

	require.NoError(t, RemoveEntry(keys, "link"))
	require.FileExists(t, filepath.Join(outside, "keep"))
	_, err := os.Lstat(filepath.Join(keys, "link"))
	require.ErrorIs(t, err, os.ErrNotExist)
}
