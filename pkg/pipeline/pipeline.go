// Package pipeline runs a single file through read, format, diff and
// write with the safety checks of package fsutil.
package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/yaklabco/gostarstyle/internal/logging"
	"github.com/yaklabco/gostarstyle/pkg/diff"
	"github.com/yaklabco/gostarstyle/pkg/fsutil"
	"github.com/yaklabco/gostarstyle/pkg/langdetect"
	"github.com/yaklabco/gostarstyle/pkg/style"
)

// StdinPath names content read from standard input.
const StdinPath = "-"

// ErrWriteFailure indicates the formatted file could not be written.
var ErrWriteFailure = errors.New("write failure")

// Options controls pipeline behavior.
type Options struct {
	// Write replaces changed files on disk.
	Write bool

	// DryRun computes diffs and never writes, even with Write set.
	DryRun bool

	// Diff computes a unified diff for changed files.
	Diff bool

	// DiffContext is the number of context lines; 0 uses diff.DefaultContext.
	DiffContext int

	// Mode forces a language mode. Empty means detect from the path and
	// content.
	Mode style.Mode

	// Backup configures backups taken before a write.
	Backup fsutil.BackupConfig
}

// Result describes what happened to one file.
type Result struct {
	// Path is the file path that was processed.
	Path string

	// Mode is the language mode used for formatting.
	Mode style.Mode

	// Changed is true if formatting altered the content.
	Changed bool

	// Formatted is the new content; nil when unchanged.
	Formatted []byte

	// Diff is set when Options.Diff or Options.DryRun is on and the file
	// changed.
	Diff *diff.Diff

	// Written is true if the file was replaced on disk.
	Written bool

	// BackupCreated is true if a backup was written before replacing.
	BackupCreated bool

	// BackupPath is the backup location when BackupCreated is set.
	BackupPath string

	// Unsupported is true when the file is neither JavaScript nor
	// TypeScript.
	Unsupported bool

	// Skipped is true if the file was left alone, e.g. after a concurrent
	// modification.
	Skipped bool

	// SkipReason explains why the file was skipped.
	SkipReason string
}

// Summary returns a short human-readable status.
func (r *Result) Summary() string {
	switch {
	case r.Unsupported:
		return "unsupported"
	case r.Skipped:
		return "skipped: " + r.SkipReason
	case r.Written && r.BackupCreated:
		return "formatted (backup created)"
	case r.Written:
		return "formatted"
	case r.Changed:
		return "would reformat"
	default:
		return "unchanged"
	}
}

// Pipeline formats files with a fixed Formatter.
type Pipeline struct {
	Formatter *style.Formatter
}

// New creates a pipeline around formatter.
func New(formatter *style.Formatter) *Pipeline {
	return &Pipeline{Formatter: formatter}
}

// ProcessFile runs the full pipeline for a file on disk:
//  1. Read and hash the file.
//  2. Detect the language mode unless one is forced.
//  3. Format and compare.
//  4. Generate a diff if requested.
//  5. Check for concurrent modification, back up and write atomically.
func (p *Pipeline) ProcessFile(ctx context.Context, path string, opts Options) (*Result, error) {
	content, info, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		return nil, err
	}

	result, err := p.ProcessContent(ctx, path, content, opts)
	if err != nil {
		return nil, err
	}

	if !result.Changed || !opts.Write || opts.DryRun {
		return result, nil
	}

	written, err := fsutil.SafeWrite(ctx, info, result.Formatted, opts.Backup)
	if err != nil {
		if errors.Is(err, fsutil.ErrFileModified) {
			logging.FromContext(ctx).Warn("file changed while formatting; left as is")
			result.Skipped = true
			result.SkipReason = "file modified during processing"
			return result, nil
		}
		return nil, fmt.Errorf("%w: %w", ErrWriteFailure, err)
	}

	result.Written = true
	result.BackupCreated = written.BackupCreated
	result.BackupPath = written.BackupPath

	return result, nil
}

// ProcessContent formats in-memory content without touching the disk.
// Content from StdinPath or an empty path is detected by content alone.
func (p *Pipeline) ProcessContent(ctx context.Context, path string, content []byte, opts Options) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("processing cancelled: %w", err)
	}

	result := &Result{Path: path}

	mode, ok := p.resolveMode(path, content, opts.Mode)
	if !ok {
		result.Unsupported = true
		result.Skipped = true
		result.SkipReason = "not a JavaScript or TypeScript file"
		return result, nil
	}
	result.Mode = mode

	formatted := p.format(content, mode)
	if bytes.Equal(formatted, content) {
		return result, nil
	}
	result.Changed = true
	result.Formatted = formatted

	if opts.Diff || opts.DryRun {
		contextLines := opts.DiffContext
		if contextLines == 0 {
			contextLines = diff.DefaultContext
		}
		d, err := diff.Unified(path, content, formatted, contextLines)
		if err != nil {
			return nil, err
		}
		result.Diff = d
	}

	return result, nil
}

func (p *Pipeline) resolveMode(path string, content []byte, forced style.Mode) (style.Mode, bool) {
	if forced != "" {
		return forced, true
	}
	if path == "" || path == StdinPath {
		return langdetect.DetectContent(content), true
	}
	return langdetect.Detect(path, content)
}

// format applies the formatter, keeping CRLF line endings when the input
// used them.
func (p *Pipeline) format(content []byte, mode style.Mode) []byte {
	out := p.Formatter.Format(string(content), mode)

	if bytes.Contains(content, []byte("\r\n")) {
		return bytes.ReplaceAll([]byte(out), []byte("\n"), []byte("\r\n"))
	}
	return []byte(out)
}
