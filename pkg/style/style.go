// Package style implements the gostarstyle house style for JavaScript and
// TypeScript source text.
//
// Formatting is line oriented. A preprocessing pass normalizes the input
// into logical lines (one brace, statement, import or comment per line),
// and an indentation pass computes depth from structural braces and
// inserts blank-line separators before declarations. No syntax tree is
// built; structure is inferred from trimmed text and quote tracking.
package style

import (
	"errors"
	"fmt"
	"strings"
)

// Mode selects language-specific preprocessing.
type Mode string

const (
	// ModeJavaScript formats plain JavaScript.
	ModeJavaScript Mode = "javascript"

	// ModeTypeScript additionally spaces return type annotations.
	ModeTypeScript Mode = "typescript"
)

// ErrUnknownMode is returned by ParseMode for unrecognized names.
var ErrUnknownMode = errors.New("unknown language mode")

// ParseMode converts a user supplied name into a Mode.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "js", "javascript":
		return ModeJavaScript, nil
	case "ts", "typescript":
		return ModeTypeScript, nil
	default:
		return "", fmt.Errorf("%w: %q (expected javascript or typescript)", ErrUnknownMode, s)
	}
}

// String returns the mode name.
func (m Mode) String() string {
	return string(m)
}

// Spacing holds the number of blank lines inserted around declarations.
// Negative counts behave as zero.
type Spacing struct {
	BeforeFunctions   int
	BeforeConstructor int
	BeforeClasses     int
	AfterImports      int
}

// DefaultSpacing returns the stock blank-line counts.
func DefaultSpacing() Spacing {
	return Spacing{
		BeforeFunctions:   2,
		BeforeConstructor: 1,
		BeforeClasses:     2,
		AfterImports:      2,
	}
}

// Formatter applies the house style with a fixed Spacing.
// A Formatter holds no per-call state and is safe for concurrent use.
type Formatter struct {
	spacing Spacing
}

// New creates a Formatter using the given spacing.
func New(spacing Spacing) *Formatter {
	return &Formatter{spacing: spacing}
}

// Spacing returns the formatter's blank-line configuration.
func (f *Formatter) Spacing() Spacing {
	return f.spacing
}

// Format reformats text. It never fails: unbalanced braces clamp the
// indentation at zero and unterminated strings only affect the physical
// line they start on. A trailing newline in the input is preserved.
func (f *Formatter) Format(text string, mode Mode) string {
	out := f.Indent(Preprocess(text, mode))
	if out != "" && strings.HasSuffix(text, "\n") {
		out += "\n"
	}

	return out
}

// Format reformats text with DefaultSpacing.
func Format(text string, mode Mode) string {
	return New(DefaultSpacing()).Format(text, mode)
}
