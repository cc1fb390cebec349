// Package configloader provides configuration loading and resolution.
// It implements XDG-compliant configuration discovery, hierarchical merging,
// environment variable support, validation, and migration of VS Code
// extension settings.
package configloader

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/term"

	"github.com/yaklabco/gostarstyle/pkg/config"
)

// configFilePermissions is the file mode for configuration files (world-readable).
const configFilePermissions = 0o644

// MigratedConfigName is the file written by a migration.
const MigratedConfigName = ".gostarstyle.yml"

// LoadOptions controls configuration loading behavior.
type LoadOptions struct {
	// WorkingDir is the directory to search from for project config.
	// Defaults to current working directory if empty.
	WorkingDir string

	// ExplicitPath is an explicit config file path (from --config flag).
	ExplicitPath string

	// IgnoreSystemConfig skips loading system-level configuration.
	IgnoreSystemConfig bool

	// IgnoreUserConfig skips loading user-level configuration.
	IgnoreUserConfig bool

	// IgnoreProjectConfig skips loading project-level configuration.
	IgnoreProjectConfig bool

	// IgnoreEnv skips loading environment variables.
	IgnoreEnv bool

	// IgnoreVSCode skips VS Code settings detection and migration.
	IgnoreVSCode bool

	// MigratePrompt asks before migrating VS Code settings when stdin is
	// a terminal.
	MigratePrompt bool

	// NonInteractive disables interactive prompts (e.g., in CI or watch).
	NonInteractive bool

	// CLIConfig contains configuration from CLI flags.
	// These take highest precedence.
	CLIConfig *config.Config

	// Prompt overrides the terminal used for the migration prompt.
	Prompt *Prompter
}

// Prompter reads a yes/no answer.
type Prompter struct {
	In  io.Reader
	Out io.Writer
}

// configLayer is one configuration source; cfg is set when the layer was
// already parsed.
type configLayer struct {
	name   string
	path   string
	cfg    *config.Config
	ignore bool
}

// LoadResult contains the resolved configuration and metadata.
type LoadResult struct {
	// Config is the final merged configuration.
	Config *config.Config

	// Paths contains the discovered configuration file paths.
	Paths *ConfigPaths

	// LoadedFrom lists the files that were actually loaded (in order).
	LoadedFrom []string

	// Warnings contains non-fatal issues encountered during loading.
	Warnings []string

	// MigrationPerformed is true if VS Code settings were converted.
	MigrationPerformed bool
}

// Load resolves the final configuration by merging all sources.
// Precedence (highest to lowest):
//  1. CLI flags (opts.CLIConfig)
//  2. Environment variables (GOSTARSTYLE_*)
//  3. Explicit config file (opts.ExplicitPath)
//  4. Project config (.gostarstyle.yml upward search)
//  5. VS Code settings, only when no project config exists
//  6. User config ($XDG_CONFIG_HOME/gostarstyle/config.yml)
//  7. System config (/etc/gostarstyle/config.yml)
//  8. Defaults
func Load(ctx context.Context, opts LoadOptions) (*LoadResult, error) {
	workDir := opts.WorkingDir
	if workDir == "" {
		var err error
		workDir, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("get working directory: %w", err)
		}
	}

	cfg := config.NewConfig()

	paths, err := DiscoverPaths(ctx, workDir)
	if err != nil {
		return nil, fmt.Errorf("discover paths: %w", err)
	}
	paths.Explicit = opts.ExplicitPath

	result := &LoadResult{Paths: paths}

	var vscodeCfg *config.Config
	if !opts.IgnoreVSCode {
		vscodeCfg, err = handleVSCodeSettings(result, opts, workDir)
		if err != nil {
			return nil, err
		}
	}

	layers := []configLayer{
		{name: "system", path: paths.System, ignore: opts.IgnoreSystemConfig},
		{name: "user", path: paths.User, ignore: opts.IgnoreUserConfig},
		{name: "vscode", path: paths.VSCode, cfg: vscodeCfg, ignore: vscodeCfg == nil},
		{name: "project", path: paths.Project, ignore: opts.IgnoreProjectConfig},
		{name: "explicit", path: paths.Explicit},
	}

	for _, layer := range layers {
		if layer.ignore || layer.path == "" {
			continue
		}

		layerCfg := layer.cfg
		if layerCfg == nil {
			layerCfg, err = loadConfigFile(layer.path)
			if err != nil {
				return nil, fmt.Errorf("load %s config: %w", layer.name, err)
			}
		}
		cfg = merge(cfg, layerCfg)
		result.LoadedFrom = append(result.LoadedFrom, layer.path)
	}

	if !opts.IgnoreEnv {
		if err := LoadFromEnv(cfg); err != nil {
			return nil, fmt.Errorf("load environment: %w", err)
		}
	}

	if opts.CLIConfig != nil {
		cfg = merge(cfg, opts.CLIConfig)
	}

	validation := Validate(cfg)
	if err := validation.Err(); err != nil {
		return nil, err
	}

	for _, w := range validation.Warnings {
		result.Warnings = append(result.Warnings, w.Error())
	}

	result.Config = cfg
	return result, nil
}

// loadConfigFile loads a configuration from a YAML or TOML file.
func loadConfigFile(path string) (*config.Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	cfg, err := config.ParseFile(path, content)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return cfg, nil
}

// handleVSCodeSettings decides what to do with VS Code extension settings.
// It returns a config layer when the settings should be applied as-is.
func handleVSCodeSettings(result *LoadResult, opts LoadOptions, workDir string) (*config.Config, error) {
	paths := result.Paths
	if paths.VSCode == "" {
		return nil, nil
	}

	migration, err := ConvertVSCodeSettings(paths.VSCode)
	if err != nil {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("cannot read %s: %v", paths.VSCode, err))
		return nil, nil
	}
	if migration.Empty() {
		return nil, nil
	}

	if paths.Project != "" && !opts.IgnoreProjectConfig {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("both %s and %s exist; using %s", paths.Project, paths.VSCode, paths.Project))
		return nil, nil
	}

	if opts.MigratePrompt && !opts.NonInteractive && (opts.Prompt != nil || isInteractive()) {
		prompt := opts.Prompt
		if prompt == nil {
			prompt = &Prompter{In: os.Stdin, Out: os.Stderr}
		}

		accepted, err := prompt.confirm(paths.VSCode)
		if err != nil {
			return nil, err
		}
		if accepted {
			outputPath := filepath.Join(workDir, MigratedConfigName)
			if err := WriteConfig(migration.Config, outputPath, GenerateMigrationHeader(paths.VSCode)); err != nil {
				return nil, fmt.Errorf("write migrated config: %w", err)
			}

			result.MigrationPerformed = true
			result.Warnings = append(result.Warnings, migration.Warnings...)
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("migrated %s to %s", paths.VSCode, outputPath))
			paths.Project = outputPath
			return nil, nil
		}
	}

	result.Warnings = append(result.Warnings, migration.Warnings...)
	result.Warnings = append(result.Warnings,
		fmt.Sprintf("using settings from %s; run 'gostarstyle migrate' to convert them to %s",
			paths.VSCode, MigratedConfigName))

	return migration.Config, nil
}

// confirm asks the user whether to migrate.
func (p *Prompter) confirm(settingsPath string) (bool, error) {
	if _, err := fmt.Fprintf(p.Out, "Found starstyling settings in %s but no %s\n", settingsPath, MigratedConfigName); err != nil {
		return false, fmt.Errorf("write prompt: %w", err)
	}
	if _, err := io.WriteString(p.Out, "Convert to gostarstyle format? [Y/n] "); err != nil {
		return false, fmt.Errorf("write prompt: %w", err)
	}

	reader := bufio.NewReader(p.In)
	response, err := reader.ReadString('\n')
	if err != nil && (err != io.EOF || response == "") {
		return false, fmt.Errorf("read response: %w", err)
	}

	response = strings.TrimSpace(strings.ToLower(response))
	return response == "" || response == "y" || response == "yes", nil
}

// isInteractive returns true if stdin is a terminal.
func isInteractive() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// WriteConfig writes a configuration to a YAML file with a header comment.
func WriteConfig(cfg *config.Config, path, header string) error {
	content, err := cfg.ToYAMLWithHeader(header)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, content, configFilePermissions); err != nil {
		return fmt.Errorf("write file: %w", err)
	}

	return nil
}
