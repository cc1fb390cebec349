// Package diff renders unified diffs between a file and its formatted form.
package diff

import (
	"fmt"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// DefaultContext is the number of unchanged lines shown around a change.
const DefaultContext = 3

// Diff is a unified diff of one file.
type Diff struct {
	Path      string
	Text      string
	Additions int
	Deletions int
}

// Unified compares before and after. It returns nil when they are equal.
func Unified(path string, before, after []byte, context int) (*Diff, error) {
	if string(before) == string(after) {
		return nil, nil //nolint:nilnil // no diff for identical input
	}

	if context < 0 {
		context = DefaultContext
	}

	a := difflib.SplitLines(string(before))
	b := difflib.SplitLines(string(after))

	text, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        a,
		B:        b,
		FromFile: "a/" + path,
		ToFile:   "b/" + path,
		Context:  context,
	})
	if err != nil {
		return nil, fmt.Errorf("diff %s: %w", path, err)
	}

	d := &Diff{Path: path, Text: text}
	for _, op := range difflib.NewMatcher(a, b).GetOpCodes() {
		switch op.Tag {
		case 'r':
			d.Deletions += op.I2 - op.I1
			d.Additions += op.J2 - op.J1
		case 'd':
			d.Deletions += op.I2 - op.I1
		case 'i':
			d.Additions += op.J2 - op.J1
		}
	}

	return d, nil
}

// HasChanges reports whether d describes any change.
func (d *Diff) HasChanges() bool {
	return d != nil && (d.Additions > 0 || d.Deletions > 0)
}

// String returns the diff with a git style header.
func (d *Diff) String() string {
	if d == nil {
		return ""
	}

	var b strings.Builder
	fmt.Fprintf(&b, "diff --git a/%s b/%s\n", d.Path, d.Path)
	b.WriteString(d.Text)
	return b.String()
}
