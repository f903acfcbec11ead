package engine_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhishekk2305/ai-safety-sandbox/internal/engine"
)

func TestClone_FullTree(t *testing.T) {
	base := t.TempDir()
	src := filepath.Join(base, "src")
	dst := filepath.Join(base, "dst")

	require.NoError(t, os.MkdirAll(filepath.Join(src, "sub", "deep"), 0755))
	require.NoError(t, os.MkdirAll(filepath.Join(src, "empty"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(src, "top.txt"), []byte("top"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(src, "sub", "deep", "nested.txt"), []byte("nested"), 0600))
	require.NoError(t, os.Symlink("top.txt", filepath.Join(src, "link")))

	eng := engine.NewCopyEngine()
	require.NoError(t, eng.Clone(src, dst))

	data, err := os.ReadFile(filepath.Join(dst, "top.txt"))
	require.NoError(t, err)
	assert.Equal(t, "top", string(data))

	data, err = os.ReadFile(filepath.Join(dst, "sub", "deep", "nested.txt"))
	require.NoError(t, err)
	assert.Equal(t, "nested", string(data))

	info, err := os.Stat(filepath.Join(dst, "empty"))
	require.NoError(t, err)
	assert.True(t, info.IsDir(), "empty directories are preserved")

	target, err := os.Readlink(filepath.Join(dst, "link"))
	require.NoError(t, err)
	assert.Equal(t, "top.txt", target, "symlinks are copied as links, not followed")
}

func TestClone_PreservesFileMode(t *testing.T) {
	base := t.TempDir()
	src := filepath.Join(base, "src")
	dst := filepath.Join(base, "dst")
	require.NoError(t, os.MkdirAll(src, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(src, "script.sh"), []byte("#!/bin/sh\n"), 0755))

	require.NoError(t, engine.NewCopyEngine().Clone(src, dst))

	info, err := os.Stat(filepath.Join(dst, "script.sh"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0755), info.Mode().Perm())
}

func TestClone_MissingSource(t *testing.T) {
	base := t.TempDir()
	err := engine.NewCopyEngine().Clone(filepath.Join(base, "nope"), filepath.Join(base, "dst"))
	assert.Error(t, err)
}

func TestName(t *testing.T) {
	assert.Equal(t, "copy", engine.NewCopyEngine().Name())
}
