package runner

import "github.com/yaklabco/gostarstyle/pkg/pipeline"

// FileOutcome wraps a pipeline result with its path.
type FileOutcome struct {
	// Path is the file path that was processed.
	Path string

	// Result contains the pipeline result for this file.
	// Nil if the file encountered an error during processing.
	Result *pipeline.Result

	// Error is set if the file could not be processed.
	Error error
}

// Stats captures aggregate information about a run.
type Stats struct {
	// FilesDiscovered is the number of files selected for formatting.
	FilesDiscovered int

	// FilesExcluded is the number of candidates dropped by exclude settings.
	FilesExcluded int

	// FilesProcessed is the number of files formatted without error.
	FilesProcessed int

	// FilesChanged is the number of files whose formatting differs.
	FilesChanged int

	// FilesWritten is the number of files replaced on disk.
	FilesWritten int

	// FilesUnsupported is the number of files that are not JS or TS.
	FilesUnsupported int

	// FilesSkipped is the number of files skipped for another reason,
	// such as a concurrent modification.
	FilesSkipped int

	// FilesErrored is the number of files that encountered errors.
	FilesErrored int
}

// Result is the overall runner result.
type Result struct {
	// Files contains the outcome for each processed file, in discovery
	// order.
	Files []FileOutcome

	// Excluded lists files dropped by the exclude settings.
	Excluded []string

	// Stats contains aggregate statistics for the run.
	Stats Stats
}

// HasChanges reports whether any file needs (or received) formatting.
func (r *Result) HasChanges() bool {
	return r != nil && r.Stats.FilesChanged > 0
}

// HasPendingChanges reports whether any changed file was not written.
func (r *Result) HasPendingChanges() bool {
	return r != nil && r.Stats.FilesChanged > r.Stats.FilesWritten
}

// HasErrors reports whether any file failed.
func (r *Result) HasErrors() bool {
	return r != nil && r.Stats.FilesErrored > 0
}

// accumulate updates the result with a file outcome.
func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	if outcome.Error != nil {
		r.Stats.FilesErrored++
		return
	}

	res := outcome.Result
	if res == nil {
		return
	}

	switch {
	case res.Unsupported:
		r.Stats.FilesUnsupported++
		return
	case res.Skipped:
		r.Stats.FilesSkipped++
	}

	r.Stats.FilesProcessed++

	if res.Changed {
		r.Stats.FilesChanged++
	}
	if res.Written {
		r.Stats.FilesWritten++
	}
}
