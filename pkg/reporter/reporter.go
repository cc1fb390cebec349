// Package reporter writes the outcome of a formatting run.
package reporter

import (
	"context"

	"github.com/yaklabco/gostarstyle/pkg/config"
	"github.com/yaklabco/gostarstyle/pkg/runner"
)

// Reporter formats and writes run results.
type Reporter interface {
	// Report writes formatted output for the given result.
	// It returns the number of files that differ from their formatted form
	// and any write errors.
	Report(ctx context.Context, result *runner.Result) (int, error)
}

// New creates a Reporter for the specified options.
func New(opts Options) (Reporter, error) {
	if opts.Writer == nil {
		opts.Writer = DefaultOptions().Writer
	}

	format, err := config.ParseOutputFormat(string(opts.Format))
	if err != nil {
		return nil, err
	}

	switch format {
	case config.FormatJSON:
		return NewJSONReporter(opts), nil
	case config.FormatDiff:
		return NewDiffReporter(opts), nil
	default:
		return NewTextReporter(opts), nil
	}
}

// changedFiles counts outcomes whose content differs from the formatted form.
func changedFiles(result *runner.Result) int {
	if result == nil {
		return 0
	}

	var n int
	for _, file := range result.Files {
		if file.Result != nil && file.Result.Changed {
			n++
		}
	}
	return n
}
