// Package langdetect maps files to the formatter's language modes.
// It uses go-enry, the linguist port, so extension aliases and shebang
// interpreters follow GitHub's language data.
package langdetect

import (
	"bytes"
	"path/filepath"
	"slices"
	"strings"

	"github.com/go-enry/go-enry/v2"

	"github.com/yaklabco/gostarstyle/pkg/style"
)

// Linguist language names.
const (
	langJavaScript = "JavaScript"
	langTypeScript = "TypeScript"
	langTSX        = "TSX"
)

// fallbackExtensions covers module extensions missing from older linguist
// data.
//
//nolint:gochecknoglobals // read-only lookup table
var fallbackExtensions = map[string]style.Mode{
	".js":  style.ModeJavaScript,
	".mjs": style.ModeJavaScript,
	".cjs": style.ModeJavaScript,
	".jsx": style.ModeJavaScript,
	".ts":  style.ModeTypeScript,
	".mts": style.ModeTypeScript,
	".cts": style.ModeTypeScript,
	".tsx": style.ModeTypeScript,
}

// Detect returns the language mode for a file. The extension is tried
// first, then the shebang line. The second result is false when the file
// is neither JavaScript nor TypeScript.
func Detect(path string, content []byte) (style.Mode, bool) {
	if path != "" {
		if mode, ok := fromLanguages(enry.GetLanguagesByExtension(filepath.Base(path), content, nil)); ok {
			return mode, true
		}
		if mode, ok := fallbackExtensions[strings.ToLower(filepath.Ext(path))]; ok {
			return mode, true
		}
	}

	if lang, safe := enry.GetLanguageByShebang(content); safe {
		return fromLanguages([]string{lang})
	}

	return "", false
}

// DetectContent guesses the mode of anonymous content such as stdin.
// JavaScript is assumed when the classifier is not confident.
func DetectContent(content []byte) style.Mode {
	if len(bytes.TrimSpace(content)) == 0 {
		return style.ModeJavaScript
	}

	if lang, safe := enry.GetLanguageByShebang(content); safe {
		if mode, ok := fromLanguages([]string{lang}); ok {
			return mode
		}
	}

	lang, _ := enry.GetLanguageByClassifier(content, []string{langJavaScript, langTypeScript})
	if lang == langTypeScript {
		return style.ModeTypeScript
	}

	return style.ModeJavaScript
}

// IsSupported reports whether path has an extension this tool formats,
// without reading the file.
func IsSupported(path string) bool {
	_, ok := Detect(path, nil)
	return ok && path != ""
}

func fromLanguages(langs []string) (style.Mode, bool) {
	switch {
	case slices.Contains(langs, langTypeScript), slices.Contains(langs, langTSX):
		return style.ModeTypeScript, true
	case slices.Contains(langs, langJavaScript):
		return style.ModeJavaScript, true
	default:
		return "", false
	}
}
