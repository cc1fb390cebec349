package style

import (
	"slices"
	"strings"
)

const indentUnit = "    "

// indenter is the per-call state of the indentation pass.
type indenter struct {
	spacing Spacing
	lines   []string
	out     []string

	level              int
	lastWasDeclaration bool
	lastWasImport      bool
	inCommentBlock     bool

	// commentRun is the index in out where the trailing run of comment
	// lines starts, or -1 when the last emitted line is not a comment.
	commentRun int
}

// Indent renders logical lines produced by Preprocess. The input slice is
// not modified.
func (f *Formatter) Indent(lines []string) string {
	in := &indenter{
		spacing:    f.spacing,
		lines:      slices.Clone(lines),
		commentRun: -1,
	}

	return in.run()
}

func (in *indenter) run() string {
	for i := 0; i < len(in.lines); i++ {
		line := in.lines[i]
		if line == "" {
			continue
		}

		if IsComment(line) {
			in.comment(i, line)
			continue
		}

		line, body := in.anonymousObject(i, line)

		if ShouldSkipIndentation(line) {
			in.emit(line, false)
			in.lastWasImport = true
			continue
		}

		in.separateImports()

		isDeclaration := IsFunctionOrExportDeclaration(line)
		if isDeclaration && len(in.out) > 0 && !in.lastWasDeclaration && in.commentRun < 0 {
			in.ensureBlankLines(len(in.out), in.blankLinesBefore(line))
		}

		if isClosingBrace(line) {
			in.level = max(0, in.level-1)
			body = false
		}

		in.emit(strings.Repeat(indentUnit, in.level)+line, false)

		if line == "{" || body {
			in.level++
		}

		in.lastWasDeclaration = isDeclaration
	}

	return strings.Join(in.out, "\n")
}

// comment emits a comment line at the current depth. A block comment that
// documents a declaration gets the declaration's spacing in front of it.
func (in *indenter) comment(i int, line string) {
	if IsCommentBlockStart(line) {
		if !in.inCommentBlock && len(in.out) > 0 && !in.lastWasDeclaration {
			if decl, ok := in.declarationAfterComment(i); ok {
				in.ensureBlankLines(len(in.out), in.blankLinesBefore(decl))
			}
		}
		in.inCommentBlock = true
	}
	if IsCommentBlockEnd(line) {
		in.inCommentBlock = false
	}

	in.emit(strings.Repeat(indentUnit, in.level)+line, true)
}

// declarationAfterComment finds the end of the block comment starting at
// lines[start] and returns the declaration that follows it, looking only
// past further comment lines.
func (in *indenter) declarationAfterComment(start int) (string, bool) {
	end := -1
	for j := start; j < len(in.lines); j++ {
		if IsCommentBlockEnd(in.lines[j]) {
			end = j
			break
		}
	}
	if end < 0 {
		return "", false
	}

	for k := end + 1; k < len(in.lines); k++ {
		next := strings.TrimSpace(in.lines[k])
		if IsFunctionOrExportDeclaration(next) {
			return next, true
		}
		if !strings.HasPrefix(next, "*") && !strings.HasPrefix(next, "//") {
			break
		}
	}

	return "", false
}

// anonymousObject reports whether line opens an object body that needs an
// extra level. A bare return whose brace landed on the next line gets the
// brace moved back onto it.
func (in *indenter) anonymousObject(i int, line string) (string, bool) {
	if i+1 < len(in.lines) && IsCollapsedAnonymousObject(line, in.lines[i+1]) {
		if strings.HasSuffix(line, " ") {
			line += "{"
		} else {
			line += " {"
		}
		in.lines[i+1] = strings.TrimSpace(strings.TrimSpace(in.lines[i+1])[1:])
		return line, true
	}

	return line, IsReturnAnonymousObject(line) && !IsAnonymousObjectOneLiner(line)
}

// separateImports puts AfterImports blank lines between an import section
// and the first line of code. Comments directly after the imports stay
// attached to the code they precede.
func (in *indenter) separateImports() {
	if !in.lastWasImport {
		return
	}
	in.lastWasImport = false

	pos := len(in.out)
	if in.commentRun >= 0 {
		pos = in.commentRun
	}
	in.ensureBlankLines(pos, in.spacing.AfterImports)
}

func (in *indenter) blankLinesBefore(decl string) int {
	t := strings.TrimSpace(decl)
	switch {
	case strings.HasPrefix(t, "constructor"):
		return in.spacing.BeforeConstructor
	case isClassDeclaration(t):
		return in.spacing.BeforeClasses
	default:
		return in.spacing.BeforeFunctions
	}
}

// ensureBlankLines makes sure at least n blank lines precede out[pos]. Blank
// lines already there count towards n, so adjacent rules do not add up.
func (in *indenter) ensureBlankLines(pos, n int) {
	if pos == 0 || n <= 0 {
		return
	}

	have := 0
	for j := pos - 1; j >= 0 && in.out[j] == ""; j-- {
		have++
	}

	missing := n - have
	if missing <= 0 {
		return
	}

	in.out = slices.Insert(in.out, pos, make([]string, missing)...)
	if in.commentRun >= pos {
		in.commentRun += missing
	}
}

func (in *indenter) emit(line string, isComment bool) {
	switch {
	case !isComment:
		in.commentRun = -1
	case in.commentRun < 0:
		in.commentRun = len(in.out)
	}

	in.out = append(in.out, line)
}
