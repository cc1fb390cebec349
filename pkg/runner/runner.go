package runner

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/yaklabco/gostarstyle/internal/logging"
	"github.com/yaklabco/gostarstyle/pkg/pipeline"
)

// Runner orchestrates multi-file formatting using a pipeline.Pipeline.
type Runner struct {
	// Pipeline handles per-file processing with safety guarantees.
	Pipeline *pipeline.Pipeline
}

// New creates a new Runner with the given pipeline.
func New(p *pipeline.Pipeline) *Runner {
	return &Runner{Pipeline: p}
}

// Run discovers files under opts.Paths and processes them concurrently.
//
// The runner:
//   - Discovers files matching the options criteria
//   - Processes files with at most opts.Jobs workers
//   - Aggregates results in discovery order
//   - Stops scheduling new files once ctx is cancelled
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	discovery, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}

	result, err := r.Process(ctx, discovery.Files, opts)
	if result != nil {
		result.Excluded = discovery.Excluded
		result.Stats.FilesExcluded = len(discovery.Excluded)
	}
	return result, err
}

// Process formats the given files concurrently.
func (r *Runner) Process(ctx context.Context, files []string, opts Options) (*Result, error) {
	result := &Result{Files: make([]FileOutcome, 0, len(files))}
	result.Stats.FilesDiscovered = len(files)

	if len(files) == 0 {
		return result, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// Each worker owns its slot, so no locking is needed.
	outcomes := make([]*FileOutcome, len(files))

	var g errgroup.Group
	g.SetLimit(jobs)

	for i, path := range files {
		if ctx.Err() != nil {
			break
		}

		g.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}

			fileCtx := logging.WithFields(ctx, logging.FieldPath, path)

			outcome := &FileOutcome{Path: path}
			res, err := r.Pipeline.ProcessFile(fileCtx, path, opts.Pipeline)
			if err != nil {
				logging.FromContext(fileCtx).Debug("format failed", logging.FieldError, err)
				outcome.Error = err
			} else {
				outcome.Result = res
			}
			outcomes[i] = outcome
			return nil
		})
	}

	_ = g.Wait() // Workers record failures in their outcome.

	for _, outcome := range outcomes {
		if outcome != nil {
			result.accumulate(*outcome)
		}
	}

	if err := ctx.Err(); err != nil {
		return result, fmt.Errorf("run cancelled: %w", err)
	}

	return result, nil
}
