package configloader

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gobwas/glob"

	"github.com/yaklabco/gostarstyle/pkg/config"
	"github.com/yaklabco/gostarstyle/pkg/fsutil"
	"github.com/yaklabco/gostarstyle/pkg/langdetect"
	"github.com/yaklabco/gostarstyle/pkg/style"
)

// ErrInvalidConfig wraps every validation failure returned by Load.
var ErrInvalidConfig = errors.New("invalid configuration")

// maxSpacing is the largest blank-line count accepted without a warning.
const maxSpacing = 10

// ValidationError represents a configuration validation error.
type ValidationError struct {
	// Field is the path to the invalid field (e.g., "backups.mode").
	Field string

	// Value is the invalid value.
	Value any

	// Message describes the validation error.
	Message string

	// FilePath is the config file containing the error (if known).
	FilePath string

	// Line is the line number in the config file (if known).
	Line int
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var parts []string

	if e.FilePath != "" {
		if e.Line > 0 {
			parts = append(parts, fmt.Sprintf("%s:%d", e.FilePath, e.Line))
		} else {
			parts = append(parts, e.FilePath)
		}
	}

	if e.Field != "" {
		parts = append(parts, e.Field)
	}

	parts = append(parts, e.Message)

	return strings.Join(parts, ": ")
}

// ValidationResult contains all validation findings.
type ValidationResult struct {
	// Errors are validation failures that prevent loading.
	Errors []ValidationError

	// Warnings are non-fatal issues (e.g., unsupported extensions).
	Warnings []ValidationError
}

// Valid returns true if there are no errors.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// HasWarnings returns true if there are any warnings.
func (r *ValidationResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// AllMessages returns all error and warning messages combined.
func (r *ValidationResult) AllMessages() []string {
	messages := make([]string, 0, len(r.Errors)+len(r.Warnings))
	for _, e := range r.Errors {
		messages = append(messages, "error: "+e.Error())
	}
	for _, w := range r.Warnings {
		messages = append(messages, "warning: "+w.Error())
	}
	return messages
}

// Err joins all errors into one error wrapping ErrInvalidConfig, or
// returns nil when the result is valid.
func (r *ValidationResult) Err() error {
	if r.Valid() {
		return nil
	}

	errs := make([]error, len(r.Errors))
	for i := range r.Errors {
		errs[i] = &r.Errors[i]
	}
	return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
}

func (r *ValidationResult) addError(field string, value any, format string, args ...any) {
	r.Errors = append(r.Errors, ValidationError{
		Field:   field,
		Value:   value,
		Message: fmt.Sprintf(format, args...),
	})
}

func (r *ValidationResult) addWarning(field string, value any, format string, args ...any) {
	r.Warnings = append(r.Warnings, ValidationError{
		Field:   field,
		Value:   value,
		Message: fmt.Sprintf(format, args...),
	})
}

// knownColors lists valid color values.
//
//nolint:gochecknoglobals // Read-only lookup table.
var knownColors = map[string]bool{
	config.ColorAuto:   true,
	config.ColorAlways: true,
	config.ColorNever:  true,
}

// knownBackupModes lists valid backup mode values.
//
//nolint:gochecknoglobals // Read-only lookup table.
var knownBackupModes = map[string]bool{
	string(fsutil.BackupModeSidecar): true,
	string(fsutil.BackupModeNone):    true,
}

// keyModifiers lists the modifiers accepted in a key binding.
//
//nolint:gochecknoglobals // Read-only lookup table.
var keyModifiers = map[string]bool{
	"ctrl":  true,
	"shift": true,
	"alt":   true,
	"cmd":   true,
	"meta":  true,
	"win":   true,
}

// Validate checks a configuration for errors and warnings.
func Validate(cfg *config.Config) *ValidationResult {
	result := &ValidationResult{}
	if cfg == nil {
		return result
	}

	validateSpacing(cfg, result)

	if cfg.Color != "" && !knownColors[cfg.Color] {
		result.addError("color", cfg.Color,
			"invalid color %q; must be one of: auto, always, never", cfg.Color)
	}

	if cfg.OutputFormat != "" && !cfg.OutputFormat.IsValid() {
		result.addError("output_format", cfg.OutputFormat,
			"invalid output format %q; must be one of: text, json, diff", cfg.OutputFormat)
	}

	if cfg.Jobs < 0 {
		result.addError("jobs", cfg.Jobs, "jobs must be >= 0 (0 means auto)")
	}

	if cfg.Lang != "" {
		if _, err := style.ParseMode(cfg.Lang); err != nil {
			result.addError("lang", cfg.Lang, "%v", err)
		}
	}

	validateBackups(cfg, result)
	validateExtensions(cfg, result)
	validateIgnorePatterns(cfg, result)
	validateExcludes(cfg, result)
	validateKeyBinding("style_key", cfg.StyleKey, result)
	validateKeyBinding("style_key_entire_project", cfg.StyleKeyEntireProject, result)

	return result
}

func validateSpacing(cfg *config.Config, result *ValidationResult) {
	fields := []struct {
		name  string
		value *int
	}{
		{"lines_before_functions", cfg.LinesBeforeFunctions},
		{"lines_before_constructor", cfg.LinesBeforeConstructor},
		{"lines_after_imports", cfg.LinesAfterImports},
		{"lines_before_classes", cfg.LinesBeforeClasses},
	}

	for _, f := range fields {
		if f.value == nil {
			continue
		}
		switch {
		case *f.value < 0:
			result.addError(f.name, *f.value, "must be >= 0")
		case *f.value > maxSpacing:
			result.addWarning(f.name, *f.value, "%d blank lines is unusually large", *f.value)
		}
	}
}

func validateBackups(cfg *config.Config, result *ValidationResult) {
	if cfg.Backups.Mode != "" && !knownBackupModes[cfg.Backups.Mode] {
		result.addError("backups.mode", cfg.Backups.Mode,
			"invalid backup mode %q; must be one of: sidecar, none", cfg.Backups.Mode)
	}

	if strings.ContainsAny(cfg.Backups.Suffix, `/\`) {
		result.addError("backups.suffix", cfg.Backups.Suffix, "suffix must not contain path separators")
	}
}

func validateExtensions(cfg *config.Config, result *ValidationResult) {
	for i, ext := range cfg.Extensions {
		field := fmt.Sprintf("extensions[%d]", i)
		if !strings.HasPrefix(ext, ".") || len(ext) < 2 {
			result.addError(field, ext, "extension %q must start with a dot", ext)
			continue
		}
		if !langdetect.IsSupported("file" + ext) {
			result.addWarning(field, ext,
				"extension %q is not JavaScript or TypeScript; matching files will be skipped", ext)
		}
	}
}

// validateIgnorePatterns checks that ignore patterns compile as globs.
func validateIgnorePatterns(cfg *config.Config, result *ValidationResult) {
	for i, pattern := range cfg.Ignore {
		if _, err := glob.Compile(pattern, '/'); err != nil {
			result.addError(fmt.Sprintf("ignore[%d]", i), pattern, "invalid glob pattern: %v", err)
		}
	}
}

func validateExcludes(cfg *config.Config, result *ValidationResult) {
	for i, pattern := range cfg.ExcludeFiles {
		if strings.TrimSpace(pattern) == "" {
			result.addWarning(fmt.Sprintf("exclude_files[%d]", i), pattern, "empty pattern is ignored")
		}
	}
	for i, folder := range cfg.ExcludeFolders {
		if strings.TrimSpace(folder) == "" {
			result.addWarning(fmt.Sprintf("exclude_folders[%d]", i), folder, "empty folder is ignored")
		}
	}
}

// validateKeyBinding accepts chords such as "ctrl+shift+s", optionally
// followed by further chords separated by spaces ("ctrl+k ctrl+f").
func validateKeyBinding(field, binding string, result *ValidationResult) {
	if binding == "" {
		return
	}

	for _, chord := range strings.Fields(strings.ToLower(binding)) {
		if err := checkChord(chord); err != nil {
			result.addError(field, binding, "invalid key binding %q: %v", binding, err)
			return
		}
	}
}

func checkChord(chord string) error {
	parts := strings.Split(chord, "+")
	key := parts[len(parts)-1]

	for _, mod := range parts[:len(parts)-1] {
		if !keyModifiers[mod] {
			return fmt.Errorf("unknown modifier %q", mod)
		}
	}

	if key == "" {
		return errors.New("missing key")
	}
	if keyModifiers[key] {
		return fmt.Errorf("chord ends with modifier %q", key)
	}
	return nil
}

// ValidateWithFile validates configuration and includes file path in errors.
func ValidateWithFile(cfg *config.Config, filePath string) *ValidationResult {
	result := Validate(cfg)

	for i := range result.Errors {
		result.Errors[i].FilePath = filePath
	}
	for i := range result.Warnings {
		result.Warnings[i].FilePath = filePath
	}

	return result
}

// IsValidFormat returns true if the format is valid.
func IsValidFormat(f config.OutputFormat) bool {
	return f.IsValid()
}

// IsValidBackupMode returns true if the backup mode is valid.
func IsValidBackupMode(mode string) bool {
	return knownBackupModes[mode]
}
