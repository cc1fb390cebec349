package runner_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gostarstyle/pkg/config"
	"github.com/yaklabco/gostarstyle/pkg/pipeline"
	"github.com/yaklabco/gostarstyle/pkg/runner"
	"github.com/yaklabco/gostarstyle/pkg/style"
)

const (
	messy     = "if(x){y();}\n"
	formatted = "if(x)\n{\n    y();\n}\n"
)

func newRunner() *runner.Runner {
	return runner.New(pipeline.New(style.New(style.DefaultSpacing())))
}

func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()

	dir := t.TempDir()
	for rel, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return dir
}

func TestRunner_Run_NoFiles(t *testing.T) {
	t.Parallel()

	result, err := newRunner().Run(context.Background(), runner.Options{WorkingDir: t.TempDir()})
	require.NoError(t, err)
	assert.Empty(t, result.Files)
	assert.False(t, result.HasChanges())
}

func TestRunner_Run_Check(t *testing.T) {
	t.Parallel()

	dir := writeTree(t, map[string]string{
		"a.js":      messy,
		"b.js":      formatted,
		"c.ts":      messy,
		"dist/d.js": messy,
	})

	result, err := newRunner().Run(context.Background(), runner.Options{
		WorkingDir:     dir,
		ExcludeFolders: []string{"dist"},
	})
	require.NoError(t, err)

	assert.Equal(t, runner.Stats{
		FilesDiscovered: 3,
		FilesExcluded:   1,
		FilesProcessed:  3,
		FilesChanged:    2,
	}, result.Stats)
	assert.True(t, result.HasChanges())
	assert.True(t, result.HasPendingChanges())
	assert.False(t, result.HasErrors())

	require.Len(t, result.Files, 3)
	assert.Equal(t, filepath.Join(dir, "a.js"), result.Files[0].Path)
	assert.Equal(t, filepath.Join(dir, "c.ts"), result.Files[2].Path)
	assert.Equal(t, style.ModeTypeScript, result.Files[2].Result.Mode)

	data, err := os.ReadFile(filepath.Join(dir, "a.js"))
	require.NoError(t, err)
	assert.Equal(t, messy, string(data), "check mode must not write")
}

func TestRunner_Run_Write(t *testing.T) {
	t.Parallel()

	dir := writeTree(t, map[string]string{"a.js": messy, "b.js": formatted})

	result, err := newRunner().Run(context.Background(), runner.Options{
		WorkingDir: dir,
		Pipeline:   pipeline.Options{Write: true},
	})
	require.NoError(t, err)

	assert.Equal(t, 1, result.Stats.FilesWritten)
	assert.False(t, result.HasPendingChanges())

	data, err := os.ReadFile(filepath.Join(dir, "a.js"))
	require.NoError(t, err)
	assert.Equal(t, formatted, string(data))
}

func TestRunner_Run_SerialVsParallel(t *testing.T) {
	t.Parallel()

	files := make(map[string]string)
	for _, name := range []string{"a", "b", "c", "d", "e", "f", "g", "h"} {
		files["src/"+name+".js"] = messy
	}
	dir := writeTree(t, files)

	serial, err := newRunner().Run(context.Background(), runner.Options{WorkingDir: dir, Jobs: 1})
	require.NoError(t, err)
	parallel, err := newRunner().Run(context.Background(), runner.Options{WorkingDir: dir, Jobs: 8})
	require.NoError(t, err)

	require.Len(t, parallel.Files, len(serial.Files))
	for i := range serial.Files {
		assert.Equal(t, serial.Files[i].Path, parallel.Files[i].Path)
		assert.Equal(t, serial.Files[i].Result.Formatted, parallel.Files[i].Result.Formatted)
	}
	assert.Equal(t, serial.Stats, parallel.Stats)
}

func TestRunner_Process_ErrorsAndUnsupported(t *testing.T) {
	t.Parallel()

	dir := writeTree(t, map[string]string{"a.js": messy, "notes.txt": "hello\n"})
	files := []string{
		filepath.Join(dir, "a.js"),
		filepath.Join(dir, "missing.js"),
		filepath.Join(dir, "notes.txt"),
	}

	result, err := newRunner().Process(context.Background(), files, runner.Options{})
	require.NoError(t, err)

	assert.Equal(t, 1, result.Stats.FilesProcessed)
	assert.Equal(t, 1, result.Stats.FilesErrored)
	assert.Equal(t, 1, result.Stats.FilesUnsupported)
	assert.True(t, result.HasErrors())
	require.Error(t, result.Files[1].Error)
}

func TestRunner_Run_ContextCancellation(t *testing.T) {
	t.Parallel()

	dir := writeTree(t, map[string]string{"a.js": messy})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newRunner().Run(ctx, runner.Options{WorkingDir: dir})
	require.ErrorIs(t, err, context.Canceled)
}

func TestOptionsFromConfig(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	cfg.Ignore = []string{"dist/**"}
	cfg.ExcludeFiles = []string{"*.min.js"}
	cfg.Write = true
	cfg.Jobs = 3
	cfg.Lang = "ts"
	cfg.OutputFormat = config.FormatDiff

	opts := runner.OptionsFromConfig(cfg, []string{"src"})

	assert.Equal(t, []string{"src"}, opts.Paths)
	assert.Equal(t, []string{config.DefaultIgnore, "dist/**"}, opts.IgnoreGlobs)
	assert.Equal(t, []string{"*.min.js"}, opts.ExcludeFiles)
	assert.Equal(t, 3, opts.Jobs)
	assert.True(t, opts.Pipeline.Write)
	assert.True(t, opts.Pipeline.Diff)
	assert.Equal(t, style.ModeTypeScript, opts.Pipeline.Mode)
}
