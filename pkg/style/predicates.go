package style

import (
	"regexp"
	"strings"
)

//nolint:gochecknoglobals // compiled once, read-only
var (
	methodHeaderPattern = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*\s*\(\)\s*$`)
	classPattern        = regexp.MustCompile(`^(export\s+)?(default\s+)?(declare\s+)?(abstract\s+)?class\b`)
)

// IsComment reports whether line is a line comment, a block comment
// boundary or a block comment continuation.
func IsComment(line string) bool {
	t := strings.TrimSpace(line)
	return strings.HasPrefix(t, "//") ||
		strings.HasPrefix(t, "/*") ||
		strings.HasPrefix(t, "*") ||
		strings.HasSuffix(t, "*/")
}

// IsCommentBlockStart reports whether line opens a block comment.
func IsCommentBlockStart(line string) bool {
	return strings.HasPrefix(strings.TrimSpace(line), "/*")
}

// IsCommentBlockEnd reports whether line closes a block comment, either
// ending with "*/" or starting with it ahead of trailing text.
func IsCommentBlockEnd(line string) bool {
	t := strings.TrimSpace(line)
	return strings.HasPrefix(t, "*/") || strings.HasSuffix(t, "*/")
}

// IsFunctionOrExportDeclaration reports whether line looks like the header
// of a function, class, constructor, method or export.
func IsFunctionOrExportDeclaration(line string) bool {
	t := strings.TrimSpace(line)

	if hasAnyPrefix(t, "function", "class", "constructor") {
		return true
	}
	if strings.HasPrefix(t, "export") && !strings.Contains(t, "from") {
		return true
	}
	if hasAnyPrefix(t, "const", "let", "var") && strings.Contains(t, "function") {
		return true
	}

	return methodHeaderPattern.MatchString(t) && !strings.Contains(t, "function")
}

// ShouldSkipIndentation reports whether line is emitted without computed
// indentation: imports, re-exports and comments.
func ShouldSkipIndentation(line string) bool {
	return isImportSection(line) || IsComment(line)
}

// IsReturnAnonymousObject reports whether line returns an object literal.
func IsReturnAnonymousObject(line string) bool {
	t := strings.TrimSpace(line)
	return strings.HasPrefix(t, "return{") || strings.HasPrefix(t, "return {")
}

// IsAnonymousObjectOneLiner reports whether line returns an object literal
// that is closed on the same line.
func IsAnonymousObjectOneLiner(line string) bool {
	return IsReturnAnonymousObject(line) && braceDepth(strings.TrimSpace(line)) == 0
}

// IsCollapsedAnonymousObject reports whether line is a bare return whose
// object literal brace was pushed onto next.
func IsCollapsedAnonymousObject(line, next string) bool {
	return strings.Contains(line, "return") &&
		!strings.Contains(line, ";") &&
		!strings.Contains(line, "{") &&
		strings.HasPrefix(strings.TrimSpace(next), "{")
}

// isImportSection reports whether line is an import or a re-export.
func isImportSection(line string) bool {
	t := strings.TrimSpace(line)
	return strings.HasPrefix(t, "import") ||
		(strings.HasPrefix(t, "export") && strings.Contains(t, "from"))
}

func isClassDeclaration(line string) bool {
	return classPattern.MatchString(strings.TrimSpace(line))
}

func isClosingBrace(line string) bool {
	return line == "}" || line == "};" || line == "},"
}

func hasAnyPrefix(s string, prefixes ...string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}
