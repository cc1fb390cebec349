package config

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
)

// OutputFormat specifies how results are reported.
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
	FormatDiff OutputFormat = "diff"
)

// IsValid returns true if the output format is known.
func (f OutputFormat) IsValid() bool {
	return lo.Contains(OutputFormats(), f)
}

// OutputFormats lists the supported output formats.
func OutputFormats() []OutputFormat {
	return []OutputFormat{FormatText, FormatJSON, FormatDiff}
}

// ParseOutputFormat resolves a --format value. The empty string means text.
func ParseOutputFormat(s string) (OutputFormat, error) {
	if s == "" {
		return FormatText, nil
	}
	if f := OutputFormat(s); f.IsValid() {
		return f, nil
	}

	names := lo.Map(OutputFormats(), func(f OutputFormat, _ int) string { return string(f) })
	return "", fmt.Errorf("unknown format %q; valid formats: %s", s, strings.Join(names, ", "))
}
