package configloader

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/samber/lo"

	"github.com/yaklabco/gostarstyle/pkg/config"
)

// vscodeSection is the settings namespace of the editor extension.
const vscodeSection = "starstyling"

// legacyLinesKey is the single spacing setting of older extension versions.
const legacyLinesKey = "howManyLinesToAdd"

// MigrationResult contains the result of converting editor settings.
type MigrationResult struct {
	// Config is the converted gostarstyle configuration.
	Config *config.Config

	// Warnings contains non-fatal issues encountered during conversion.
	Warnings []string

	// SourcePath is the path to the settings file.
	SourcePath string

	// Keys lists the converted setting names, sorted.
	Keys []string
}

// Empty reports whether no starstyling settings were found.
func (r *MigrationResult) Empty() bool {
	return r == nil || len(r.Keys) == 0
}

// DetectVSCodeSettings returns the settings file in dir if it holds any
// starstyling settings, or "".
func DetectVSCodeSettings(dir string) string {
	path := FindVSCodeSettings(dir)
	if path == "" {
		return ""
	}

	result, err := ConvertVSCodeSettings(path)
	if err != nil || result.Empty() {
		return ""
	}
	return path
}

// ConvertVSCodeSettings converts the starstyling.* keys of a VS Code
// settings file to a gostarstyle configuration.
func ConvertVSCodeSettings(path string) (*MigrationResult, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	var raw map[string]any
	if err := parseJSONC(content, &raw); err != nil {
		return nil, fmt.Errorf("parse JSON: %w", err)
	}

	result := &MigrationResult{SourcePath: path}
	settings := collectSettings(raw)

	// Only the settings present are set, so the result can be layered.
	cfg := &config.Config{}

	// The legacy key seeds every declaration count; granular keys win.
	if value, ok := settings[legacyLinesKey]; ok {
		if n, ok := toCount(value); ok {
			cfg.LinesBeforeFunctions = config.Ptr(n)
			cfg.LinesBeforeClasses = config.Ptr(n)
			cfg.LinesBeforeConstructor = config.Ptr(n)
			result.Warnings = append(result.Warnings, fmt.Sprintf(
				"%s.%s is deprecated; converted to lines_before_functions, lines_before_classes and lines_before_constructor",
				vscodeSection, legacyLinesKey))
		} else {
			result.Warnings = append(result.Warnings, invalidValue(legacyLinesKey, value))
		}
		result.Keys = append(result.Keys, legacyLinesKey)
		delete(settings, legacyLinesKey)
	}

	for _, key := range lo.Keys(settings) {
		if applySetting(cfg, key, settings[key], result) {
			result.Keys = append(result.Keys, key)
		}
	}

	slices.Sort(result.Keys)
	slices.Sort(result.Warnings)
	result.Config = cfg
	return result, nil
}

// collectSettings gathers both the dotted ("starstyling.excludeFiles") and
// the nested ({"starstyling": {...}}) spellings.
func collectSettings(raw map[string]any) map[string]any {
	settings := make(map[string]any)

	if nested, ok := raw[vscodeSection].(map[string]any); ok {
		for k, v := range nested {
			settings[k] = v
		}
	}

	prefix := vscodeSection + "."
	for k, v := range raw {
		if name, ok := strings.CutPrefix(k, prefix); ok {
			settings[name] = v
		}
	}

	return settings
}

// applySetting converts one setting. It returns false when the key is
// unknown or its value has the wrong type.
func applySetting(cfg *config.Config, key string, value any, result *MigrationResult) bool {
	var ok bool

	switch key {
	case "excludeFiles":
		cfg.ExcludeFiles, ok = toStrings(value)
	case "excludeFolders":
		cfg.ExcludeFolders, ok = toStrings(value)
	case "isFormatOnSave":
		var b bool
		if b, ok = value.(bool); ok {
			cfg.FormatOnSave = config.Ptr(b)
		}
	case "howManyLinesToAddBeforeFunctions":
		ok = setCount(&cfg.LinesBeforeFunctions, value)
	case "howManyLinesToAddBeforeConstructor":
		ok = setCount(&cfg.LinesBeforeConstructor, value)
	case "howManyLinesToAddAfterImports":
		ok = setCount(&cfg.LinesAfterImports, value)
	case "howManyLinesToAddBeforeClasses":
		ok = setCount(&cfg.LinesBeforeClasses, value)
	case "styleKey":
		cfg.StyleKey, ok = value.(string)
	case "styleKeyEntireProject":
		cfg.StyleKeyEntireProject, ok = value.(string)
	default:
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("unknown setting %s.%s; skipping", vscodeSection, key))
		return false
	}

	if !ok {
		result.Warnings = append(result.Warnings, invalidValue(key, value))
	}
	return ok
}

func invalidValue(key string, value any) string {
	return fmt.Sprintf("invalid value %v for %s.%s; skipping", value, vscodeSection, key)
}

func setCount(dst **int, value any) bool {
	n, ok := toCount(value)
	if ok {
		*dst = config.Ptr(n)
	}
	return ok
}

// toCount accepts non-negative whole JSON numbers.
func toCount(value any) (int, bool) {
	f, ok := value.(float64)
	if !ok || f < 0 || f != math.Trunc(f) || f > math.MaxInt32 {
		return 0, false
	}
	return int(f), true
}

func toStrings(value any) ([]string, bool) {
	items, ok := value.([]any)
	if !ok {
		return nil, false
	}

	out := make([]string, 0, len(items))
	for _, item := range items {
		s, ok := item.(string)
		if !ok {
			return nil, false
		}
		out = append(out, s)
	}
	return out, true
}

// parseJSONC parses JSON with comments and trailing commas, as written by
// VS Code.
func parseJSONC(content []byte, target any) error {
	if err := json.Unmarshal(content, target); err == nil {
		return nil
	}

	stripped := stripTrailingCommas(stripJSONComments(content))
	if err := json.Unmarshal(stripped, target); err != nil {
		return fmt.Errorf("unmarshal stripped JSON: %w", err)
	}
	return nil
}

// stripJSONComments removes JavaScript-style comments from JSON content.
func stripJSONComments(content []byte) []byte {
	var result []byte
	inString := false
	inSingleComment := false
	inMultiComment := false

	for idx := 0; idx < len(content); idx++ {
		char := content[idx]

		if inSingleComment {
			if char == '\n' {
				inSingleComment = false
				result = append(result, char)
			}
			continue
		}

		if inMultiComment {
			if char == '*' && idx+1 < len(content) && content[idx+1] == '/' {
				inMultiComment = false
				idx++
			}
			continue
		}

		if inString {
			result = append(result, char)
			if char == '\\' && idx+1 < len(content) {
				idx++
				result = append(result, content[idx])
			} else if char == '"' {
				inString = false
			}
			continue
		}

		if char == '"' {
			inString = true
			result = append(result, char)
			continue
		}

		if char == '/' && idx+1 < len(content) {
			switch content[idx+1] {
			case '/':
				inSingleComment = true
				idx++
				continue
			case '*':
				inMultiComment = true
				idx++
				continue
			}
		}

		result = append(result, char)
	}

	return result
}

// stripTrailingCommas drops commas that directly precede a closing bracket
// or brace. Input must already be free of comments.
func stripTrailingCommas(content []byte) []byte {
	result := make([]byte, 0, len(content))
	inString := false

	for idx := 0; idx < len(content); idx++ {
		char := content[idx]

		if inString {
			result = append(result, char)
			if char == '\\' && idx+1 < len(content) {
				idx++
				result = append(result, content[idx])
			} else if char == '"' {
				inString = false
			}
			continue
		}

		if char == '"' {
			inString = true
		}

		if char == ',' {
			next := idx + 1
			for next < len(content) && strings.IndexByte(" \t\r\n", content[next]) >= 0 {
				next++
			}
			if next < len(content) && (content[next] == '}' || content[next] == ']') {
				continue
			}
		}

		result = append(result, char)
	}

	return result
}

// GenerateMigrationHeader returns a header comment for migrated configs.
func GenerateMigrationHeader(sourcePath string) string {
	return fmt.Sprintf(`# gostarstyle configuration
# Migrated from: %s
`, filepath.ToSlash(sourcePath))
}
