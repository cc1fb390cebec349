package cli

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"text/template"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/yaklabco/gostarstyle/internal/ui/pretty"
)

// helpStyles holds the Lipgloss styles used by help output.
type helpStyles struct {
	command lipgloss.Style
	heading lipgloss.Style
	name    lipgloss.Style
	flag    lipgloss.Style
	dim     lipgloss.Style
}

func newHelpStyles(colorEnabled bool) helpStyles {
	if !colorEnabled {
		plain := lipgloss.NewStyle()
		return helpStyles{command: plain, heading: plain, name: plain, flag: plain, dim: plain}
	}

	return helpStyles{
		command: lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true),
		heading: lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
		name:    lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		flag:    lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		dim:     lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
	}
}

// flagLinePattern splits a pflag usage line into indent, flag spec and
// description. The description starts after the first run of two or more
// spaces.
//
//nolint:gochecknoglobals // compiled once, read-only
var flagLinePattern = regexp.MustCompile(`^(\s*)(\S.*?)\s{2,}(\S.*)$`)

// exitCodeHelp documents the process exit codes in help output.
//
//nolint:gochecknoglobals // read-only lookup table
var exitCodeHelp = []struct {
	code int
	desc string
}{
	{ExitSuccess, "success"},
	{ExitUnformatted, "files need formatting (check mode)"},
	{ExitUsageError, "invalid usage or configuration"},
	{ExitIOError, "files could not be read or written"},
	{ExitInternalError, "internal error"},
}

const usageTemplate = `{{ heading "Usage:" }}
  {{if .Runnable}}{{ command .UseLine }}{{end}}
  {{if .HasAvailableSubCommands}}{{ command .CommandPath }} [command]{{end}}

{{- if gt (len .Aliases) 0}}

{{ heading "Aliases:" }}
  {{ dim (join .Aliases ", ") }}
{{- end}}

{{- if .HasExample}}

{{ heading "Examples:" }}
{{ dim .Example }}
{{- end}}

{{- if .HasAvailableSubCommands}}

{{ heading "Available Commands:" }}{{range .Commands}}{{if (or .IsAvailableCommand (eq .Name "help"))}}
  {{ name (rpad .Name .NamePadding) }} {{ .Short }}{{end}}{{end}}
{{- end}}

{{- if .HasAvailableLocalFlags}}

{{ heading "Flags:" }}
{{ flags .LocalFlags.FlagUsages }}
{{- end}}

{{- if .HasAvailableInheritedFlags}}

{{ heading "Global Flags:" }}
{{ flags .InheritedFlags.FlagUsages }}
{{- end}}

{{- if showExitCodes .}}

{{ heading "Exit Codes:" }}
{{ exitCodes }}
{{- end}}

{{- if .HasAvailableSubCommands}}

Use "{{ command (print .CommandPath " [command] --help") }}" for more information about a command.
{{- end}}
`

const helpTemplate = `{{if or .Runnable .HasSubCommands}}{{ command .CommandPath }}{{if .Version}} {{ dim .Version }}{{end}}

{{end}}{{with (or .Long .Short)}}{{ . | trimTrailingWhitespaces }}

{{end}}` + usageTemplate

// applyHelp installs styled help and usage output on cmd and its
// subcommands. colorMode is consulted when help is rendered, after flags
// such as --no-color have been parsed.
func applyHelp(cmd *cobra.Command, colorMode func() string) {
	render := func(command *cobra.Command, name, text string) error {
		styles := newHelpStyles(pretty.IsColorEnabled(colorMode(), command.OutOrStdout()))

		tmpl, err := template.New(name).Funcs(helpFuncs(styles)).Parse(text)
		if err != nil {
			return fmt.Errorf("parse %s template: %w", name, err)
		}
		return tmpl.Execute(command.OutOrStdout(), command)
	}

	cmd.SetUsageFunc(func(command *cobra.Command) error {
		return render(command, "usage", usageTemplate)
	})
	cmd.SetHelpFunc(func(command *cobra.Command, _ []string) {
		if err := render(command, "help", helpTemplate); err != nil {
			command.PrintErrln(err)
		}
	})
}

func helpFuncs(s helpStyles) template.FuncMap {
	return template.FuncMap{
		"command":                 s.command.Render,
		"heading":                 s.heading.Render,
		"name":                    s.name.Render,
		"dim":                     s.dim.Render,
		"flags":                   func(usages string) string { return styleFlagUsages(s, usages) },
		"exitCodes":               func() string { return exitCodesUsage(s) },
		"showExitCodes":           showExitCodes,
		"join":                    strings.Join,
		"rpad":                    rpad,
		"trimTrailingWhitespaces": trimTrailingWhitespaces,
	}
}

// styleFlagUsages colors flag names and dims their value types, keeping
// pflag's column layout.
func styleFlagUsages(s helpStyles, usages string) string {
	lines := strings.Split(strings.TrimSuffix(usages, "\n"), "\n")

	for i, line := range lines {
		m := flagLinePattern.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		spec, desc := m[2], m[3]
		pad := len(line) - len(m[1]) - len(spec) - len(desc)

		tokens := strings.Fields(spec)
		for j, tok := range tokens {
			if name, ok := strings.CutSuffix(tok, ","); ok && strings.HasPrefix(name, "-") {
				tokens[j] = s.flag.Render(name) + ","
			} else if strings.HasPrefix(tok, "-") {
				tokens[j] = s.flag.Render(tok)
			} else {
				tokens[j] = s.dim.Render(tok)
			}
		}

		// Padding is recomputed from the unstyled widths so columns line up.
		lines[i] = m[1] + strings.Join(tokens, " ") + strings.Repeat(" ", pad) + desc
	}

	return strings.Join(lines, "\n")
}

// showExitCodes reports whether cmd's help lists exit codes: the root
// command and format, whose status signals unformatted files.
func showExitCodes(cmd *cobra.Command) bool {
	return !cmd.HasParent() || cmd.Name() == "format"
}

func exitCodesUsage(s helpStyles) string {
	lines := make([]string, len(exitCodeHelp))
	for i, e := range exitCodeHelp {
		lines[i] = "  " + s.flag.Render(strconv.Itoa(e.code)) + "   " + e.desc
	}
	return strings.Join(lines, "\n")
}

func rpad(str string, padding int) string {
	if len(str) >= padding {
		return str
	}
	return str + strings.Repeat(" ", padding-len(str))
}

func trimTrailingWhitespaces(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.Join(lines, "\n")
}
