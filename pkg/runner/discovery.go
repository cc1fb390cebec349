package runner

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/samber/lo"

	"github.com/yaklabco/gostarstyle/pkg/exclude"
)

// Discovery is the outcome of walking the input paths.
type Discovery struct {
	// Files are the absolute paths to format, sorted.
	Files []string

	// Excluded are candidate files dropped by the exclude settings, sorted.
	Excluded []string
}

// walker carries the state shared by one discovery run.
type walker struct {
	ctx        context.Context
	workDir    string
	extensions []string
	ignore     *IgnoreSet
	excludes   *exclude.Matcher
	follow     bool
	files      []string
	excluded   []string
}

// Discover finds JavaScript and TypeScript files matching opts under the
// given working directory. Explicitly named files skip the extension
// filter but not the ignore and exclude settings.
func Discover(ctx context.Context, opts Options) (*Discovery, error) {
	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}

	ignore, err := CompileIgnore(opts.IgnoreGlobs)
	if err != nil {
		return nil, err
	}

	w := &walker{
		ctx:        ctx,
		workDir:    workDir,
		extensions: opts.effectiveExtensions(),
		ignore:     ignore,
		excludes:   exclude.New(opts.ExcludeFiles, opts.ExcludeFolders),
		follow:     opts.FollowSymlinks,
	}

	for _, inputPath := range opts.effectivePaths() {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("discovery cancelled: %w", err)
		}

		absPath := inputPath
		if !filepath.IsAbs(inputPath) {
			absPath = filepath.Join(workDir, inputPath)
		}
		absPath = filepath.Clean(absPath)

		info, err := os.Stat(absPath)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", inputPath, err)
		}

		if info.IsDir() {
			if err := w.walk(absPath); err != nil {
				return nil, err
			}
			continue
		}

		w.consider(absPath, false)
	}

	files := lo.Uniq(w.files)
	slices.Sort(files)
	excluded := lo.Uniq(w.excluded)
	slices.Sort(excluded)

	return &Discovery{Files: files, Excluded: excluded}, nil
}

// resolveWorkDir resolves the working directory, defaulting to os.Getwd().
func resolveWorkDir(workDir string) (string, error) {
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		return wd, nil
	}
	absPath, err := filepath.Abs(workDir)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}
	return absPath, nil
}

// rel returns the slash separated path of p relative to the working
// directory, or p itself when it lies outside.
func (w *walker) rel(p string) string {
	relPath, err := filepath.Rel(w.workDir, p)
	if err != nil || strings.HasPrefix(relPath, "..") {
		return filepath.ToSlash(p)
	}
	return filepath.ToSlash(relPath)
}

// walk recursively walks a directory.
func (w *walker) walk(root string) error {
	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
		if err := w.ctx.Err(); err != nil {
			return err
		}

		if walkErr != nil {
			if os.IsPermission(walkErr) {
				return nil
			}
			return walkErr
		}

		if entry.IsDir() {
			if path == root {
				return nil
			}
			if strings.HasPrefix(entry.Name(), ".") || w.ignore.MatchDir(w.rel(path)) {
				return filepath.SkipDir
			}
			return nil
		}

		if entry.Type()&fs.ModeSymlink != 0 {
			realPath, evalErr := filepath.EvalSymlinks(path)
			if evalErr != nil {
				return nil //nolint:nilerr // Broken symlinks are skipped
			}
			info, statErr := os.Stat(realPath)
			if statErr != nil {
				return nil //nolint:nilerr // Inaccessible symlink targets are skipped
			}
			if info.IsDir() {
				if !w.follow || strings.HasPrefix(entry.Name(), ".") || w.ignore.MatchDir(w.rel(path)) {
					return nil
				}
				// Walk the target; WalkDir does not descend into symlinks.
				return w.walk(realPath)
			}
		}

		if strings.HasPrefix(entry.Name(), ".") {
			return nil
		}

		w.consider(path, true)
		return nil
	})
	if err != nil {
		return fmt.Errorf("walk directory %s: %w", root, err)
	}

	return nil
}

// consider applies the file filters. The extension filter only applies
// to files found by walking.
func (w *walker) consider(path string, walked bool) {
	if walked && !hasMatchingExtension(path, w.extensions) {
		return
	}

	relPath := w.rel(path)
	if w.ignore.MatchFile(relPath) {
		return
	}

	if w.excludes.Match(relPath) {
		w.excluded = append(w.excluded, path)
		return
	}

	w.files = append(w.files, path)
}

// hasMatchingExtension checks if the file has a matching extension.
func hasMatchingExtension(path string, extensions []string) bool {
	ext := filepath.Ext(path)
	for _, e := range extensions {
		if strings.EqualFold(e, ext) {
			return true
		}
	}
	return false
}
