package fsutil_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gostarstyle/pkg/fsutil"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestReadFile(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("returns content and snapshot", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, t.TempDir(), "a.js", "foo();\n")

		content, info, err := fsutil.ReadFile(ctx, path)
		require.NoError(t, err)
		assert.Equal(t, "foo();\n", string(content))
		assert.Equal(t, path, info.Path)
		assert.Equal(t, int64(7), info.Size)
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		_, _, err := fsutil.ReadFile(ctx, filepath.Join(t.TempDir(), "nope.js"))
		require.ErrorIs(t, err, fsutil.ErrNotFound)
	})

	t.Run("directory", func(t *testing.T) {
		t.Parallel()

		_, _, err := fsutil.ReadFile(ctx, t.TempDir())
		require.ErrorIs(t, err, fsutil.ErrIsDirectory)
	})

	t.Run("cancelled context", func(t *testing.T) {
		t.Parallel()

		cctx, cancel := context.WithCancel(ctx)
		cancel()

		_, _, err := fsutil.ReadFile(cctx, "irrelevant.js")
		require.ErrorIs(t, err, context.Canceled)
	})
}

func TestCheckModified(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("unchanged", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, t.TempDir(), "a.js", "a();")
		_, info, err := fsutil.ReadFile(ctx, path)
		require.NoError(t, err)

		modified, err := fsutil.CheckModified(ctx, info)
		require.NoError(t, err)
		assert.False(t, modified)
	})

	t.Run("content changed", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, t.TempDir(), "a.js", "a();")
		_, info, err := fsutil.ReadFile(ctx, path)
		require.NoError(t, err)

		require.NoError(t, os.WriteFile(path, []byte("b();"), 0o600))
		// Same size and mtime, so only the hash differs.
		require.NoError(t, os.Chtimes(path, info.ModTime, info.ModTime))

		modified, err := fsutil.CheckModified(ctx, info)
		require.NoError(t, err)
		assert.True(t, modified)
	})

	t.Run("deleted", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, t.TempDir(), "a.js", "a();")
		_, info, err := fsutil.ReadFile(ctx, path)
		require.NoError(t, err)
		require.NoError(t, os.Remove(path))

		modified, err := fsutil.CheckModified(ctx, info)
		require.NoError(t, err)
		assert.True(t, modified)
	})

	t.Run("nil info", func(t *testing.T) {
		t.Parallel()

		_, err := fsutil.CheckModified(ctx, nil)
		require.ErrorIs(t, err, fsutil.ErrNilFileInfo)
	})
}

func TestWriteAtomic(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	dir := t.TempDir()
	path := writeFile(t, dir, "a.ts", "old")

	require.NoError(t, fsutil.WriteAtomic(ctx, path, []byte("new"), 0o640))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "new", string(got))

	stat, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o640), stat.Mode().Perm())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp file must not be left behind")
}

func TestSafeWrite(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("writes with backup", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, t.TempDir(), "a.js", "if(x){y();}")
		_, info, err := fsutil.ReadFile(ctx, path)
		require.NoError(t, err)

		backup := fsutil.BackupConfig{Enabled: true, Mode: fsutil.BackupModeSidecar}
		res, err := fsutil.SafeWrite(ctx, info, []byte("if(x)\n{\n    y();\n}"), backup)
		require.NoError(t, err)
		assert.True(t, res.BackupCreated)
		assert.Equal(t, path+".bak", res.BackupPath)

		orig, err := os.ReadFile(res.BackupPath)
		require.NoError(t, err)
		assert.Equal(t, "if(x){y();}", string(orig))
	})

	t.Run("refuses when changed on disk", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, t.TempDir(), "a.js", "a();")
		_, info, err := fsutil.ReadFile(ctx, path)
		require.NoError(t, err)

		later := info.ModTime.Add(2 * time.Second)
		require.NoError(t, os.WriteFile(path, []byte("edited();"), 0o600))
		require.NoError(t, os.Chtimes(path, later, later))

		_, err = fsutil.SafeWrite(ctx, info, []byte("x"), fsutil.DefaultBackupConfig())
		require.ErrorIs(t, err, fsutil.ErrFileModified)

		got, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "edited();", string(got))
	})
}

func TestCreateBackup(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("disabled", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, t.TempDir(), "a.js", "a")
		created, err := fsutil.CreateBackup(ctx, path, fsutil.DefaultBackupConfig())
		require.NoError(t, err)
		assert.False(t, created)
	})

	t.Run("existing backup is kept", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path := writeFile(t, dir, "a.js", "second")
		writeFile(t, dir, "a.js.orig", "first")

		cfg := fsutil.BackupConfig{Enabled: true, Mode: fsutil.BackupModeSidecar, Suffix: ".orig"}
		created, err := fsutil.CreateBackup(ctx, path, cfg)
		require.NoError(t, err)
		assert.False(t, created)

		got, err := os.ReadFile(path + ".orig")
		require.NoError(t, err)
		assert.Equal(t, "first", string(got))
	})

	t.Run("none mode", func(t *testing.T) {
		t.Parallel()

		cfg := fsutil.BackupConfig{Enabled: true, Mode: fsutil.BackupModeNone}
		assert.False(t, cfg.Active())
		assert.Empty(t, cfg.Path("a.js"))
	})
}
