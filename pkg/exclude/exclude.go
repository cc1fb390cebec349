// Package exclude decides whether a file is left alone by the formatter.
//
// File patterns are matched against the base name and support a single
// wildcard, '*', which matches any run of characters. Folder entries are
// plain substrings of the path relative to the project root.
//
// File patterns must match the whole base name, so "legacy" does not
// exclude "mylegacy.js". This differs on purpose from the editor
// extension, which matched patterns anywhere in the name.
package exclude

import (
	"path/filepath"
	"regexp"
	"strings"
)

// IsExcluded reports whether filePath is excluded by excludeFiles or
// excludeFolders. Neither list has built-in entries; node_modules is only
// excluded when a caller adds it.
func IsExcluded(filePath string, excludeFiles, excludeFolders []string) bool {
	return New(excludeFiles, excludeFolders).Match(filePath)
}

// Matcher is a precompiled exclusion list. The zero value and nil exclude
// nothing.
type Matcher struct {
	files   []filePattern
	folders []string
}

type filePattern struct {
	literal string
	re      *regexp.Regexp
}

// New compiles file patterns and folder substrings. Empty entries are
// ignored.
func New(excludeFiles, excludeFolders []string) *Matcher {
	m := &Matcher{}

	for _, p := range excludeFiles {
		if p = strings.TrimSpace(p); p == "" {
			continue
		}
		m.files = append(m.files, filePattern{literal: p, re: compileWildcard(p)})
	}

	for _, f := range excludeFolders {
		if f = strings.TrimSpace(f); f == "" {
			continue
		}
		m.folders = append(m.folders, filepath.ToSlash(f))
	}

	return m
}

// Empty reports whether the matcher has no entries.
func (m *Matcher) Empty() bool {
	return m == nil || (len(m.files) == 0 && len(m.folders) == 0)
}

// Match reports whether filePath is excluded.
func (m *Matcher) Match(filePath string) bool {
	if m.Empty() {
		return false
	}

	base := filepath.Base(filePath)
	for _, p := range m.files {
		if base == p.literal || p.re.MatchString(base) {
			return true
		}
	}

	slashed := filepath.ToSlash(filePath)
	for _, f := range m.folders {
		if strings.Contains(slashed, f) {
			return true
		}
	}

	return false
}

// compileWildcard turns a '*' pattern into an anchored expression. Every
// other character matches itself.
func compileWildcard(pattern string) *regexp.Regexp {
	parts := strings.Split(pattern, "*")
	for i, part := range parts {
		parts[i] = regexp.QuoteMeta(part)
	}

	return regexp.MustCompile("^" + strings.Join(parts, ".*") + "$")
}
