package reporter

import (
	"bufio"
	"context"
	"fmt"

	"github.com/yaklabco/gostarstyle/internal/ui/pretty"
	"github.com/yaklabco/gostarstyle/pkg/runner"
)

// TextReporter formats results as styled terminal output.
type TextReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewTextReporter creates a new text reporter.
func NewTextReporter(opts Options) *TextReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &TextReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *TextReporter) Report(ctx context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil {
		result = &runner.Result{}
	}

	for _, file := range result.Files {
		if ctx.Err() != nil {
			return 0, fmt.Errorf("report: %w", ctx.Err())
		}
		r.writeFile(file)
	}

	if r.opts.Verbose {
		for _, path := range result.Excluded {
			fmt.Fprint(r.bw, r.styles.FormatExcluded(displayPath(r.opts.WorkingDir, path)))
		}
	}

	if r.opts.ShowSummary {
		if r.opts.Verbose {
			fmt.Fprint(r.bw, r.styles.FormatSummary(result.Stats))
		} else {
			fmt.Fprint(r.bw, r.styles.FormatSummaryOneLine(result.Stats))
		}
	}

	return changedFiles(result), nil
}

func (r *TextReporter) writeFile(file runner.FileOutcome) {
	path := displayPath(r.opts.WorkingDir, file.Path)

	if file.Error != nil {
		fmt.Fprint(r.bw, r.styles.FormatFileError(path, file.Error))
		return
	}

	res := file.Result
	quiet := res == nil || (!res.Changed && !res.Skipped)
	if quiet && !r.opts.Verbose {
		return
	}

	fmt.Fprint(r.bw, r.styles.FormatFileStatus(path, res))
}
