package fsutil

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// DefaultFileMode is used for new files when no mode is known.
const DefaultFileMode os.FileMode = 0o644

// WriteAtomic replaces path with content. The data goes to a hidden temp
// file in the same directory, which is synced, given mode and renamed
// over the target. On failure the target is left untouched.
func WriteAtomic(ctx context.Context, path string, content []byte, mode os.FileMode) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("write atomic: %w", err)
	}

	if mode == 0 {
		mode = DefaultFileMode
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	success := false
	defer func() {
		if !success {
			_ = tmp.Close()
			_ = os.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(content); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmpPath, mode.Perm()); err != nil {
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("rename temp file: %w", err)
	}

	success = true
	return nil
}

// WriteResult describes what SafeWrite did.
type WriteResult struct {
	BackupPath    string
	BackupCreated bool
}

// SafeWrite writes content over the file described by info. It refuses to
// write when the file changed since it was read, and creates a backup
// first when backups are enabled.
func SafeWrite(ctx context.Context, info *FileInfo, content []byte, backup BackupConfig) (WriteResult, error) {
	var res WriteResult

	modified, err := CheckModified(ctx, info)
	if err != nil {
		return res, err
	}
	if modified {
		return res, fmt.Errorf("%w: %s", ErrFileModified, info.Path)
	}

	created, err := CreateBackup(ctx, info.Path, backup)
	if err != nil {
		return res, err
	}
	if created {
		res.BackupCreated = true
		res.BackupPath = backup.Path(info.Path)
	}

	if err := WriteAtomic(ctx, info.Path, content, info.Mode); err != nil {
		return res, err
	}

	return res, nil
}
