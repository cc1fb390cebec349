package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"

	"github.com/yaklabco/gostarstyle/pkg/runner"
)

// jsonSchemaVersion is bumped when the JSON layout changes incompatibly.
const jsonSchemaVersion = "1.0.0"

// JSONOutput is the top-level JSON structure.
type JSONOutput struct {
	Version  string           `json:"version"`
	Files    []JSONFileResult `json:"files"`
	Excluded []string         `json:"excluded"`
	Summary  JSONSummary      `json:"summary"`
}

// JSONFileResult represents a single file's outcome.
type JSONFileResult struct {
	Path       string `json:"path"`
	Mode       string `json:"mode,omitempty"`
	Status     string `json:"status"`
	Changed    bool   `json:"changed"`
	Written    bool   `json:"written"`
	BackupPath string `json:"backupPath,omitempty"`
	Additions  int    `json:"additions,omitempty"`
	Deletions  int    `json:"deletions,omitempty"`
	Error      string `json:"error,omitempty"`
}

// JSONSummary contains aggregate statistics.
type JSONSummary struct {
	FilesDiscovered  int `json:"filesDiscovered"`
	FilesChecked     int `json:"filesChecked"`
	FilesChanged     int `json:"filesChanged"`
	FilesWritten     int `json:"filesWritten"`
	FilesExcluded    int `json:"filesExcluded"`
	FilesUnsupported int `json:"filesUnsupported"`
	FilesSkipped     int `json:"filesSkipped"`
	FilesErrored     int `json:"filesErrored"`
}

// JSONReporter formats results as JSON.
type JSONReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewJSONReporter creates a new JSON reporter.
func NewJSONReporter(opts Options) *JSONReporter {
	return &JSONReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *JSONReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	output := r.buildOutput(result)

	encoder := json.NewEncoder(r.bw)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}

	if err := encoder.Encode(output); err != nil {
		return 0, fmt.Errorf("encode JSON: %w", err)
	}

	return changedFiles(result), nil
}

func (r *JSONReporter) buildOutput(result *runner.Result) *JSONOutput {
	output := &JSONOutput{
		Version:  jsonSchemaVersion,
		Files:    make([]JSONFileResult, 0),
		Excluded: make([]string, 0),
	}

	if result == nil {
		return output
	}

	stats := result.Stats
	output.Summary = JSONSummary{
		FilesDiscovered:  stats.FilesDiscovered,
		FilesChecked:     stats.FilesProcessed,
		FilesChanged:     stats.FilesChanged,
		FilesWritten:     stats.FilesWritten,
		FilesExcluded:    stats.FilesExcluded,
		FilesUnsupported: stats.FilesUnsupported,
		FilesSkipped:     stats.FilesSkipped,
		FilesErrored:     stats.FilesErrored,
	}

	for _, path := range result.Excluded {
		output.Excluded = append(output.Excluded, displayPath(r.opts.WorkingDir, path))
	}

	if len(result.Files) > 0 {
		output.Files = make([]JSONFileResult, 0, len(result.Files))
	}

	for _, file := range result.Files {
		fileResult := JSONFileResult{
			Path: displayPath(r.opts.WorkingDir, file.Path),
		}

		if file.Error != nil {
			fileResult.Status = "error"
			fileResult.Error = file.Error.Error()
		}

		if res := file.Result; res != nil {
			fileResult.Mode = res.Mode.String()
			fileResult.Changed = res.Changed
			fileResult.Written = res.Written
			fileResult.BackupPath = res.BackupPath
			if file.Error == nil {
				fileResult.Status = res.Summary()
			}
			if res.Diff != nil {
				fileResult.Additions = res.Diff.Additions
				fileResult.Deletions = res.Diff.Deletions
			}
		}

		output.Files = append(output.Files, fileResult)
	}

	return output
}
