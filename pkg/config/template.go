package config

import (
	"fmt"
	"strings"
)

// TemplateFormat selects the syntax of a generated config file.
type TemplateFormat string

const (
	TemplateYAML TemplateFormat = "yaml"
	TemplateTOML TemplateFormat = "toml"
)

// GenerateTemplate returns a commented starter configuration holding the
// default values.
func GenerateTemplate(format TemplateFormat) ([]byte, error) {
	def := NewConfig()

	switch format {
	case TemplateYAML, "":
		return []byte(yamlTemplate(def)), nil
	case TemplateTOML:
		return []byte(tomlTemplate(def)), nil
	default:
		return nil, fmt.Errorf("unsupported template format %q (expected yaml or toml)", format)
	}
}

func yamlTemplate(def *Config) string {
	var b strings.Builder

	b.WriteString("# gostarstyle configuration\n\n")
	b.WriteString("# Base-name patterns to skip. '*' matches any characters.\n")
	b.WriteString("exclude_files: []\n\n")
	b.WriteString("# Path substrings to skip, e.g. dist or vendor.\n")
	b.WriteString("exclude_folders: []\n\n")
	b.WriteString("# Format files when they are saved while `gostarstyle watch` runs.\n")
	fmt.Fprintf(&b, "format_on_save: %t\n\n", *def.FormatOnSave)
	b.WriteString("# Blank lines inserted around declarations.\n")
	fmt.Fprintf(&b, "lines_before_functions: %d\n", *def.LinesBeforeFunctions)
	fmt.Fprintf(&b, "lines_before_constructor: %d\n", *def.LinesBeforeConstructor)
	fmt.Fprintf(&b, "lines_after_imports: %d\n", *def.LinesAfterImports)
	fmt.Fprintf(&b, "lines_before_classes: %d\n\n", *def.LinesBeforeClasses)
	b.WriteString("# Editor key bindings.\n")
	fmt.Fprintf(&b, "style_key: %s\n", def.StyleKey)
	fmt.Fprintf(&b, "style_key_entire_project: %s\n\n", def.StyleKeyEntireProject)
	b.WriteString("# File extensions picked up when formatting a directory.\n")
	fmt.Fprintf(&b, "extensions: [%s]\n\n", strings.Join(def.Extensions, ", "))
	fmt.Fprintf(&b, "# Globs to skip. %s is always included.\n", DefaultIgnore)
	b.WriteString("ignore: []\n\n")
	b.WriteString("backups:\n")
	fmt.Fprintf(&b, "  enabled: %t\n", *def.Backups.Enabled)
	fmt.Fprintf(&b, "  mode: %s\n", def.Backups.Mode)
	fmt.Fprintf(&b, "  suffix: %s\n", def.Backups.Suffix)

	return b.String()
}

func tomlTemplate(def *Config) string {
	var b strings.Builder

	b.WriteString("# gostarstyle configuration\n\n")
	b.WriteString("# Base-name patterns to skip. '*' matches any characters.\n")
	b.WriteString("exclude_files = []\n")
	b.WriteString("# Path substrings to skip, e.g. dist or vendor.\n")
	b.WriteString("exclude_folders = []\n")
	fmt.Fprintf(&b, "format_on_save = %t\n\n", *def.FormatOnSave)
	fmt.Fprintf(&b, "lines_before_functions = %d\n", *def.LinesBeforeFunctions)
	fmt.Fprintf(&b, "lines_before_constructor = %d\n", *def.LinesBeforeConstructor)
	fmt.Fprintf(&b, "lines_after_imports = %d\n", *def.LinesAfterImports)
	fmt.Fprintf(&b, "lines_before_classes = %d\n\n", *def.LinesBeforeClasses)
	fmt.Fprintf(&b, "style_key = %q\n", def.StyleKey)
	fmt.Fprintf(&b, "style_key_entire_project = %q\n\n", def.StyleKeyEntireProject)

	quoted := make([]string, len(def.Extensions))
	for i, ext := range def.Extensions {
		quoted[i] = fmt.Sprintf("%q", ext)
	}
	fmt.Fprintf(&b, "extensions = [%s]\n", strings.Join(quoted, ", "))
	fmt.Fprintf(&b, "# %s is always included.\n", DefaultIgnore)
	b.WriteString("ignore = []\n\n")
	b.WriteString("[backups]\n")
	fmt.Fprintf(&b, "enabled = %t\n", *def.Backups.Enabled)
	fmt.Fprintf(&b, "mode = %q\n", def.Backups.Mode)
	fmt.Fprintf(&b, "suffix = %q\n", def.Backups.Suffix)

	return b.String()
}
