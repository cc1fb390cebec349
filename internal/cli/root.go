// Package cli provides the Cobra command structure for gostarstyle.
package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gostarstyle/internal/configloader"
	"github.com/yaklabco/gostarstyle/internal/logging"
	"github.com/yaklabco/gostarstyle/pkg/config"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// globalFlags holds the persistent flags shared by all subcommands.
type globalFlags struct {
	configPath     string
	chdir          string
	debug          bool
	color          string
	noColor        bool
	nonInteractive bool
	migratePrompt  bool
}

// NewRootCommand creates the root gostarstyle command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	flags := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:   "gostarstyle",
		Short: "An opinionated formatter for JavaScript and TypeScript",
		Long: `gostarstyle reformats JavaScript and TypeScript sources into a fixed house
style: opening braces on their own line, four-space indentation, one
statement per line and configurable blank lines around imports, classes,
constructors and functions.

It works line by line without parsing, so it is fast and tolerant of
incomplete code. Files can be checked, rewritten in place, streamed through
stdin, or formatted on save with the watch command.`,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if flags.debug {
				logging.SetLevel("debug")
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return newUsageError(err)
	})

	// Global flags.
	rootCmd.PersistentFlags().StringVar(&flags.configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVarP(&flags.chdir, "chdir", "C", "", "run as if started in this directory")
	rootCmd.PersistentFlags().BoolVar(&flags.debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&flags.color, "color", config.ColorAuto,
		"colorize output: auto, always, never")
	rootCmd.PersistentFlags().BoolVar(&flags.noColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().BoolVar(&flags.nonInteractive, "non-interactive", false,
		"never prompt, even on a terminal")
	rootCmd.PersistentFlags().BoolVar(&flags.migratePrompt, "migrate-prompt", false,
		"offer to convert VS Code starstyling settings when no config file exists")

	// Add subcommands.
	rootCmd.AddCommand(newFormatCommand(flags))
	rootCmd.AddCommand(newWatchCommand(flags))
	rootCmd.AddCommand(newInitCommand(flags))
	rootCmd.AddCommand(newMigrateCommand(flags))
	rootCmd.AddCommand(newConfigCommand(flags))
	rootCmd.AddCommand(newVersionCommand(info))

	applyHelp(rootCmd, flags.colorMode)

	return rootCmd
}

// colorMode returns the color setting requested on the command line.
func (g *globalFlags) colorMode() string {
	if g.noColor {
		return config.ColorNever
	}
	return g.color
}

// workDir returns the directory the command operates in.
func (g *globalFlags) workDir() (string, error) {
	if g.chdir != "" {
		abs, err := filepath.Abs(g.chdir)
		if err != nil {
			return "", fmt.Errorf("resolve --chdir: %w", err)
		}
		info, err := os.Stat(abs)
		if err != nil {
			return "", newUsageError(fmt.Errorf("--chdir: %w", err))
		}
		if !info.IsDir() {
			return "", newUsageError(fmt.Errorf("--chdir: %s is not a directory", g.chdir))
		}
		return abs, nil
	}

	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}
	return wd, nil
}

// resolvePath makes path absolute against the command's working directory.
func resolvePath(workDir, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(workDir, path)
}

// relativeTo returns path relative to workDir when possible.
func relativeTo(workDir, path string) string {
	rel, err := filepath.Rel(workDir, path)
	if err != nil {
		return path
	}
	return rel
}

// loadConfig resolves the configuration for a command. cliCfg carries the
// values of flags the user set explicitly.
func (g *globalFlags) loadConfig(ctx context.Context, cmd *cobra.Command, workDir string, cliCfg *config.Config,
) (*configloader.LoadResult, error) {
	logger := logging.Default()

	if cliCfg == nil {
		cliCfg = &config.Config{}
	}
	if g.noColor {
		cliCfg.Color = config.ColorNever
	} else if cmd.Flags().Changed("color") {
		cliCfg.Color = g.color
	}

	configPath := g.configPath
	if configPath != "" {
		configPath = resolvePath(workDir, configPath)
	}

	loadResult, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:     workDir,
		ExplicitPath:   configPath,
		CLIConfig:      cliCfg,
		MigratePrompt:  g.migratePrompt,
		NonInteractive: g.nonInteractive,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfig, err)
	}

	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}

	if len(loadResult.LoadedFrom) > 0 {
		logger.Debug("loaded configuration from", logging.FieldSources, loadResult.LoadedFrom)
	}

	return loadResult, nil
}

// commandContext returns the command's context, or a background context.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
