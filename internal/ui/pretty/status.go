package pretty

import (
	"fmt"

	"github.com/yaklabco/gostarstyle/pkg/pipeline"
)

// FormatFileStatus formats one line describing what happened to a file.
func (s *Styles) FormatFileStatus(path string, res *pipeline.Result) string {
	return fmt.Sprintf("%s  %s\n", s.FilePath.Render(path), s.FormatStatus(res))
}

// FormatFileError formats a file that could not be processed.
func (s *Styles) FormatFileError(path string, err error) string {
	return fmt.Sprintf("%s  %s\n", s.FilePath.Render(path), s.Error.Render(fmt.Sprintf("error: %v", err)))
}

// FormatExcluded formats a file dropped by the exclude settings.
func (s *Styles) FormatExcluded(path string) string {
	return fmt.Sprintf("%s  %s\n", s.FilePath.Render(path), s.Skipped.Render("excluded"))
}

// FormatStatus returns the styled status word for a result.
func (s *Styles) FormatStatus(res *pipeline.Result) string {
	if res == nil {
		return s.Unchanged.Render("unchanged")
	}

	summary := res.Summary()
	switch {
	case res.Unsupported, res.Skipped:
		return s.Skipped.Render(summary)
	case res.Written:
		return s.Formatted.Render(summary)
	case res.Changed:
		return s.Changed.Render(summary)
	default:
		return s.Unchanged.Render(summary)
	}
}
