package runner

import (
	"fmt"
	"path"

	"github.com/gobwas/glob"
)

// IgnoreSet matches slash separated relative paths against glob patterns.
// A pattern matches when it matches the path, the path with a leading
// slash (so "**/x/**" also covers a top-level x), or the base name.
type IgnoreSet struct {
	globs []glob.Glob
}

// CompileIgnore compiles patterns with '/' as the separator.
func CompileIgnore(patterns []string) (*IgnoreSet, error) {
	set := &IgnoreSet{globs: make([]glob.Glob, 0, len(patterns))}

	for _, pattern := range patterns {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, fmt.Errorf("compile ignore pattern %q: %w", pattern, err)
		}
		set.globs = append(set.globs, g)
	}

	return set, nil
}

// MatchFile reports whether the file at rel is ignored.
func (s *IgnoreSet) MatchFile(rel string) bool {
	return s.matchAny(rel, "/"+rel, path.Base(rel))
}

// MatchDir reports whether the directory at rel and everything below it
// is ignored.
func (s *IgnoreSet) MatchDir(rel string) bool {
	return s.matchAny(rel, rel+"/", "/"+rel+"/", path.Base(rel))
}

func (s *IgnoreSet) matchAny(candidates ...string) bool {
	if s == nil {
		return false
	}
	for _, g := range s.globs {
		for _, c := range candidates {
			if g.Match(c) {
				return true
			}
		}
	}
	return false
}
