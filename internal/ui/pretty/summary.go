package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yaklabco/gostarstyle/pkg/runner"
)

const (
	summaryDividerWidth = 40
	wordFile            = "file"
	wordFiles           = "files"
)

func files(n int) string {
	if n == 1 {
		return wordFile
	}
	return wordFiles
}

// FormatSummaryOneLine formats run statistics as a single line.
// Example: "2 files would be reformatted, 1 excluded (5 files checked)".
func (s *Styles) FormatSummaryOneLine(stats runner.Stats) string {
	if stats.FilesDiscovered == 0 && stats.FilesExcluded == 0 {
		return s.Dim.Render("No files to format") + "\n"
	}

	var parts []string

	pending := stats.FilesChanged - stats.FilesWritten
	switch {
	case stats.FilesWritten > 0:
		parts = append(parts, s.Success.Render(fmt.Sprintf("%d %s formatted", stats.FilesWritten, files(stats.FilesWritten))))
		if pending > 0 {
			parts = append(parts, s.Warning.Render(fmt.Sprintf("%d not written", pending)))
		}
	case stats.FilesChanged > 0:
		parts = append(parts, s.Warning.Render(
			fmt.Sprintf("%d %s would be reformatted", stats.FilesChanged, files(stats.FilesChanged))))
	default:
		parts = append(parts, s.Success.Render("All files formatted"))
	}

	if stats.FilesExcluded > 0 {
		parts = append(parts, s.Dim.Render(fmt.Sprintf("%d excluded", stats.FilesExcluded)))
	}
	if stats.FilesUnsupported > 0 {
		parts = append(parts, s.Dim.Render(fmt.Sprintf("%d unsupported", stats.FilesUnsupported)))
	}
	if stats.FilesSkipped > 0 {
		parts = append(parts, s.Dim.Render(fmt.Sprintf("%d skipped", stats.FilesSkipped)))
	}
	if stats.FilesErrored > 0 {
		parts = append(parts, s.Error.Render(fmt.Sprintf("%d failed", stats.FilesErrored)))
	}

	return strings.Join(parts, ", ") +
		s.Dim.Render(fmt.Sprintf(" (%d %s checked)", stats.FilesProcessed, files(stats.FilesProcessed))) + "\n"
}

// FormatSummary formats run statistics as a summary block.
func (s *Styles) FormatSummary(stats runner.Stats) string {
	var builder strings.Builder

	builder.WriteString("\n")
	builder.WriteString(s.SummaryTitle.Render("Summary"))
	builder.WriteString("\n")
	builder.WriteString(strings.Repeat("-", summaryDividerWidth))
	builder.WriteString("\n")

	row := func(label string, value int, style func(...string) string) {
		builder.WriteString(fmt.Sprintf("  %-19s%s\n", label+":", style(strconv.Itoa(value))))
	}

	row("Files checked", stats.FilesProcessed, s.SummaryValue.Render)
	if stats.FilesChanged > 0 {
		row("Files changed", stats.FilesChanged, s.Warning.Render)
	}
	if stats.FilesWritten > 0 {
		row("Files written", stats.FilesWritten, s.Success.Render)
	}
	if stats.FilesExcluded > 0 {
		row("Files excluded", stats.FilesExcluded, s.Dim.Render)
	}
	if stats.FilesUnsupported > 0 {
		row("Files unsupported", stats.FilesUnsupported, s.Dim.Render)
	}
	if stats.FilesErrored > 0 {
		row("Files failed", stats.FilesErrored, s.Failure.Render)
	}

	builder.WriteString("\n")

	switch {
	case stats.FilesErrored > 0:
		builder.WriteString(s.Failure.Render("Formatting failed"))
	case stats.FilesChanged > stats.FilesWritten:
		builder.WriteString(s.Warning.Render("Formatting needed"))
	default:
		builder.WriteString(s.Success.Render("Formatting complete"))
	}
	builder.WriteString("\n")

	return builder.String()
}
