// Package config defines the gostarstyle settings schema.
// These types are plain data; loading and layering lives in
// internal/configloader.
package config

import (
	"slices"

	"github.com/samber/lo"

	"github.com/yaklabco/gostarstyle/pkg/fsutil"
	"github.com/yaklabco/gostarstyle/pkg/style"
)

// Default values for settings.
const (
	DefaultStyleKey              = "ctrl+shift+s"
	DefaultStyleKeyEntireProject = "ctrl+shift+a"

	// DefaultIgnore is always part of the effective ignore list.
	DefaultIgnore = "**/node_modules/**"
)

// Color modes.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// DefaultExtensions returns the file extensions formatted by default.
func DefaultExtensions() []string {
	return []string{".js", ".ts"}
}

// BackupsConfig controls backups written before a file is replaced.
type BackupsConfig struct {
	Enabled *bool  `yaml:"enabled,omitempty" toml:"enabled,omitempty"`
	Mode    string `yaml:"mode,omitempty" toml:"mode,omitempty"`
	Suffix  string `yaml:"suffix,omitempty" toml:"suffix,omitempty"`
}

// Config is the root configuration structure.
//
// Pointer fields distinguish "not set in this layer" from an explicit zero
// so that a project file can turn a count down to 0.
type Config struct {
	// ExcludeFiles holds base-name patterns; '*' is the only wildcard.
	ExcludeFiles []string `yaml:"exclude_files,omitempty" toml:"exclude_files,omitempty"`

	// ExcludeFolders holds substrings matched against relative paths.
	ExcludeFolders []string `yaml:"exclude_folders,omitempty" toml:"exclude_folders,omitempty"`

	// FormatOnSave enables formatting from the watch command.
	FormatOnSave *bool `yaml:"format_on_save,omitempty" toml:"format_on_save,omitempty"`

	LinesBeforeFunctions   *int `yaml:"lines_before_functions,omitempty" toml:"lines_before_functions,omitempty"`
	LinesBeforeConstructor *int `yaml:"lines_before_constructor,omitempty" toml:"lines_before_constructor,omitempty"`
	LinesAfterImports      *int `yaml:"lines_after_imports,omitempty" toml:"lines_after_imports,omitempty"`
	LinesBeforeClasses     *int `yaml:"lines_before_classes,omitempty" toml:"lines_before_classes,omitempty"`

	// StyleKey and StyleKeyEntireProject are editor key bindings. They are
	// validated and carried for editor integrations.
	StyleKey              string `yaml:"style_key,omitempty" toml:"style_key,omitempty"`
	StyleKeyEntireProject string `yaml:"style_key_entire_project,omitempty" toml:"style_key_entire_project,omitempty"`

	// Extensions lists the file extensions picked up by discovery.
	Extensions []string `yaml:"extensions,omitempty" toml:"extensions,omitempty"`

	// Ignore contains glob patterns for paths skipped by discovery.
	Ignore []string `yaml:"ignore,omitempty" toml:"ignore,omitempty"`

	FollowSymlinks *bool `yaml:"follow_symlinks,omitempty" toml:"follow_symlinks,omitempty"`

	Backups BackupsConfig `yaml:"backups,omitempty" toml:"backups,omitempty"`

	// Color is auto, always or never.
	Color string `yaml:"color,omitempty" toml:"color,omitempty"`

	// OutputFormat is the default report format.
	OutputFormat OutputFormat `yaml:"output_format,omitempty" toml:"output_format,omitempty"`

	// CLI-level options (not persisted to config files).

	// Write applies formatting to files instead of only reporting.
	Write bool `yaml:"-" toml:"-"`

	// DryRun prints diffs without writing.
	DryRun bool `yaml:"-" toml:"-"`

	// Jobs is the number of parallel workers. 0 means GOMAXPROCS.
	Jobs int `yaml:"-" toml:"-"`

	// Lang forces a language mode instead of detecting it.
	Lang string `yaml:"-" toml:"-"`

	// NoBackups disables backups regardless of file settings.
	NoBackups bool `yaml:"-" toml:"-"`
}

// NewConfig returns a Config with every setting at its default.
func NewConfig() *Config {
	spacing := style.DefaultSpacing()

	return &Config{
		FormatOnSave:           Ptr(false),
		LinesBeforeFunctions:   Ptr(spacing.BeforeFunctions),
		LinesBeforeConstructor: Ptr(spacing.BeforeConstructor),
		LinesAfterImports:      Ptr(spacing.AfterImports),
		LinesBeforeClasses:     Ptr(spacing.BeforeClasses),
		StyleKey:               DefaultStyleKey,
		StyleKeyEntireProject:  DefaultStyleKeyEntireProject,
		Extensions:             DefaultExtensions(),
		FollowSymlinks:         Ptr(false),
		Backups: BackupsConfig{
			Enabled: Ptr(false),
			Mode:    string(fsutil.BackupModeSidecar),
			Suffix:  fsutil.DefaultBackupSuffix,
		},
		Color:        ColorAuto,
		OutputFormat: FormatText,
	}
}

// Ptr returns a pointer to v.
func Ptr[T any](v T) *T {
	return &v
}

func deref[T any](p *T, fallback T) T {
	if p == nil {
		return fallback
	}
	return *p
}

// Spacing returns the blank-line settings for the formatter.
func (c *Config) Spacing() style.Spacing {
	def := style.DefaultSpacing()

	return style.Spacing{
		BeforeFunctions:   deref(c.LinesBeforeFunctions, def.BeforeFunctions),
		BeforeConstructor: deref(c.LinesBeforeConstructor, def.BeforeConstructor),
		BeforeClasses:     deref(c.LinesBeforeClasses, def.BeforeClasses),
		AfterImports:      deref(c.LinesAfterImports, def.AfterImports),
	}
}

// FormatOnSaveEnabled reports whether watch mode should format files.
func (c *Config) FormatOnSaveEnabled() bool {
	return deref(c.FormatOnSave, false)
}

// FollowSymlinksEnabled reports whether discovery follows symlinks.
func (c *Config) FollowSymlinksEnabled() bool {
	return deref(c.FollowSymlinks, false)
}

// BackupConfig converts the backup settings for fsutil.
func (c *Config) BackupConfig() fsutil.BackupConfig {
	cfg := fsutil.DefaultBackupConfig()
	cfg.Enabled = deref(c.Backups.Enabled, false) && !c.NoBackups
	if c.Backups.Mode != "" {
		cfg.Mode = fsutil.BackupMode(c.Backups.Mode)
	}
	if c.Backups.Suffix != "" {
		cfg.Suffix = c.Backups.Suffix
	}
	return cfg
}

// EffectiveIgnore returns the ignore globs with DefaultIgnore first and
// duplicates removed.
func (c *Config) EffectiveIgnore() []string {
	return lo.Uniq(append([]string{DefaultIgnore}, c.Ignore...))
}

// EffectiveExtensions returns the configured extensions or the defaults.
func (c *Config) EffectiveExtensions() []string {
	if len(c.Extensions) == 0 {
		return DefaultExtensions()
	}
	return lo.Uniq(c.Extensions)
}

// Clone returns a deep copy of c.
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}

	clone := *c
	clone.ExcludeFiles = slices.Clone(c.ExcludeFiles)
	clone.ExcludeFolders = slices.Clone(c.ExcludeFolders)
	clone.Extensions = slices.Clone(c.Extensions)
	clone.Ignore = slices.Clone(c.Ignore)
	clone.FormatOnSave = clonePtr(c.FormatOnSave)
	clone.LinesBeforeFunctions = clonePtr(c.LinesBeforeFunctions)
	clone.LinesBeforeConstructor = clonePtr(c.LinesBeforeConstructor)
	clone.LinesAfterImports = clonePtr(c.LinesAfterImports)
	clone.LinesBeforeClasses = clonePtr(c.LinesBeforeClasses)
	clone.FollowSymlinks = clonePtr(c.FollowSymlinks)
	clone.Backups.Enabled = clonePtr(c.Backups.Enabled)

	return &clone
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
