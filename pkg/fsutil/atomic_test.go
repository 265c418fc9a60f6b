package fsutil_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdtree/pkg/fsutil"
)

func TestWriteAtomic(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "out.md")
	require.NoError(t, fsutil.WriteAtomic(context.Background(), path, []byte("content\n"), 0o600))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "content\n", string(data))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestWriteAtomicIfChanged(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "out.md")
	ctx := context.Background()

	wrote, err := fsutil.WriteAtomicIfChanged(ctx, path, []byte("a"), 0)
	require.NoError(t, err)
	assert.True(t, wrote, "first write creates the file")

	wrote, err = fsutil.WriteAtomicIfChanged(ctx, path, []byte("a"), 0)
	require.NoError(t, err)
	assert.False(t, wrote, "identical content skips the write")

	wrote, err = fsutil.WriteAtomicIfChanged(ctx, path, []byte("b"), 0)
	require.NoError(t, err)
	assert.True(t, wrote, "changed content rewrites")
}

func TestWriteAtomicCancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := fsutil.WriteAtomic(ctx, filepath.Join(t.TempDir(), "x"), []byte("y"), 0)
	assert.Error(t, err)
}
