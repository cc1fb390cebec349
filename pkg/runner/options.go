// Package runner provides multi-file formatting orchestration.
package runner

import (
	"github.com/yaklabco/gostarstyle/pkg/config"
	"github.com/yaklabco/gostarstyle/pkg/pipeline"
	"github.com/yaklabco/gostarstyle/pkg/style"
)

// Options controls multi-file formatting behavior.
type Options struct {
	// Paths are the user-specified paths (files or directories) to process.
	// If empty, defaults to the current working directory.
	Paths []string

	// WorkingDir is the base directory used to resolve relative Paths.
	// If empty, the current process working directory is used.
	WorkingDir string

	// Extensions is the set of file extensions (with leading dot) picked up
	// when walking directories. Defaults to config.DefaultExtensions().
	Extensions []string

	// IgnoreGlobs are glob patterns used to skip files or directories,
	// relative to WorkingDir.
	IgnoreGlobs []string

	// ExcludeFiles and ExcludeFolders follow exclude.IsExcluded semantics.
	ExcludeFiles   []string
	ExcludeFolders []string

	// FollowSymlinks controls whether directory symlinks are traversed.
	FollowSymlinks bool

	// Jobs controls the maximum number of concurrent workers.
	// 0 or negative means "auto" (runtime.GOMAXPROCS).
	Jobs int

	// Pipeline holds the per-file options.
	Pipeline pipeline.Options
}

// OptionsFromConfig builds run options from a resolved configuration.
func OptionsFromConfig(cfg *config.Config, paths []string) Options {
	return Options{
		Paths:          paths,
		Extensions:     cfg.EffectiveExtensions(),
		IgnoreGlobs:    cfg.EffectiveIgnore(),
		ExcludeFiles:   cfg.ExcludeFiles,
		ExcludeFolders: cfg.ExcludeFolders,
		FollowSymlinks: cfg.FollowSymlinksEnabled(),
		Jobs:           cfg.Jobs,
		Pipeline: pipeline.Options{
			Write:  cfg.Write,
			DryRun: cfg.DryRun,
			Diff:   cfg.DryRun || cfg.OutputFormat == config.FormatDiff,
			Mode:   style.Mode(normalizeLang(cfg.Lang)),
			Backup: cfg.BackupConfig(),
		},
	}
}

func normalizeLang(lang string) string {
	if lang == "" {
		return ""
	}
	mode, err := style.ParseMode(lang)
	if err != nil {
		return ""
	}
	return string(mode)
}

// effectiveExtensions returns the extensions to use, defaulting if empty.
func (o Options) effectiveExtensions() []string {
	if len(o.Extensions) == 0 {
		return config.DefaultExtensions()
	}
	return o.Extensions
}

// effectivePaths returns the paths to process, defaulting to "." if empty.
func (o Options) effectivePaths() []string {
	if len(o.Paths) == 0 {
		return []string{"."}
	}
	return o.Paths
}
