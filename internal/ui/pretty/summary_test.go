package pretty_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/gostarstyle/internal/ui/pretty"
	"github.com/yaklabco/gostarstyle/pkg/pipeline"
	"github.com/yaklabco/gostarstyle/pkg/runner"
)

func TestFormatSummary_Basic(t *testing.T) {
	styles := pretty.NewStyles(false)

	stats := runner.Stats{
		FilesDiscovered: 10,
		FilesProcessed:  10,
		FilesChanged:    3,
		FilesExcluded:   2,
	}

	result := styles.FormatSummary(stats)

	assert.Contains(t, result, "Summary")
	assert.Contains(t, result, "Files checked:")
	assert.Contains(t, result, "10")
	assert.Contains(t, result, "Files changed:")
	assert.Contains(t, result, "Files excluded:")
	assert.Contains(t, result, "Formatting needed")
	assert.NotContains(t, result, "Files written:")
}

func TestFormatSummary_AllWritten(t *testing.T) {
	styles := pretty.NewStyles(false)

	stats := runner.Stats{
		FilesDiscovered: 4,
		FilesProcessed:  4,
		FilesChanged:    2,
		FilesWritten:    2,
	}

	result := styles.FormatSummary(stats)

	assert.Contains(t, result, "Files written:")
	assert.Contains(t, result, "Formatting complete")
}

func TestFormatSummary_WithErrors(t *testing.T) {
	styles := pretty.NewStyles(false)

	stats := runner.Stats{
		FilesDiscovered: 3,
		FilesProcessed:  2,
		FilesErrored:    1,
	}

	result := styles.FormatSummary(stats)

	assert.Contains(t, result, "Files failed:")
	assert.Contains(t, result, "Formatting failed")
}

func TestFormatSummaryOneLine(t *testing.T) {
	styles := pretty.NewStyles(false)

	tests := []struct {
		name     string
		stats    runner.Stats
		expected string
	}{
		{
			name:     "no files",
			stats:    runner.Stats{},
			expected: "No files to format\n",
		},
		{
			name:     "clean",
			stats:    runner.Stats{FilesDiscovered: 5, FilesProcessed: 5},
			expected: "All files formatted (5 files checked)\n",
		},
		{
			name:     "single pending",
			stats:    runner.Stats{FilesDiscovered: 1, FilesProcessed: 1, FilesChanged: 1},
			expected: "1 file would be reformatted (1 file checked)\n",
		},
		{
			name:     "written",
			stats:    runner.Stats{FilesDiscovered: 3, FilesProcessed: 3, FilesChanged: 2, FilesWritten: 2},
			expected: "2 files formatted (3 files checked)\n",
		},
		{
			name: "partially written",
			stats: runner.Stats{
				FilesDiscovered: 3, FilesProcessed: 3, FilesChanged: 3, FilesWritten: 2, FilesSkipped: 1,
			},
			expected: "2 files formatted, 1 not written, 1 skipped (3 files checked)\n",
		},
		{
			name: "extras",
			stats: runner.Stats{
				FilesDiscovered: 4, FilesProcessed: 2, FilesExcluded: 1, FilesUnsupported: 1, FilesErrored: 1,
			},
			expected: "All files formatted, 1 excluded, 1 unsupported, 1 failed (2 files checked)\n",
		},
		{
			name:     "everything excluded",
			stats:    runner.Stats{FilesExcluded: 2},
			expected: "All files formatted, 2 excluded (0 files checked)\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, styles.FormatSummaryOneLine(tt.stats))
		})
	}
}

func TestFormatFileStatus(t *testing.T) {
	styles := pretty.NewStyles(false)

	tests := []struct {
		name     string
		result   *pipeline.Result
		expected string
	}{
		{"nil result", nil, "a.js  unchanged\n"},
		{"unchanged", &pipeline.Result{Path: "a.js"}, "a.js  unchanged\n"},
		{"pending", &pipeline.Result{Path: "a.js", Changed: true}, "a.js  would reformat\n"},
		{"written", &pipeline.Result{Path: "a.js", Changed: true, Written: true}, "a.js  formatted\n"},
		{"unsupported", &pipeline.Result{Path: "a.js", Unsupported: true}, "a.js  unsupported\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, styles.FormatFileStatus("a.js", tt.result))
		})
	}
}

func TestFormatFileError(t *testing.T) {
	styles := pretty.NewStyles(false)

	got := styles.FormatFileError("b.ts", errors.New("permission denied"))
	assert.Equal(t, "b.ts  error: permission denied\n", got)
	assert.Equal(t, "c.js  excluded\n", styles.FormatExcluded("c.js"))
}
