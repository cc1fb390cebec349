package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gostarstyle/internal/logging"
	"github.com/yaklabco/gostarstyle/pkg/config"
)

// configFilePermissions is the file mode for configuration files (world-readable).
const configFilePermissions = 0o644

// initFlags holds the flags for the init command.
type initFlags struct {
	force  bool
	format string
	output string
}

func newInitCommand(global *globalFlags) *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new gostarstyle configuration file",
		Long: `Create a new .gostarstyle.yml configuration file in the current directory
holding the default settings, each one documented.

Examples:
  gostarstyle init                      Create .gostarstyle.yml
  gostarstyle init --format toml        Create .gostarstyle.toml instead
  gostarstyle init --output custom.yml  Write to a custom file path`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd, global, flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "Overwrite existing configuration file")
	cmd.Flags().StringVar(&flags.format, "format", "yaml", "Output format: yaml or toml")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "",
		"Output file path (default: .gostarstyle.yml or .gostarstyle.toml)")

	return cmd
}

func runInit(cmd *cobra.Command, global *globalFlags, flags *initFlags) error {
	logger := logging.NewInteractive()

	format := config.TemplateFormat(flags.format)
	if format != config.TemplateYAML && format != config.TemplateTOML {
		return newUsageError(fmt.Errorf("invalid format %q: must be yaml or toml", flags.format))
	}

	outputPath := flags.output
	if outputPath == "" {
		outputPath = ".gostarstyle.yml"
		if format == config.TemplateTOML {
			outputPath = ".gostarstyle.toml"
		}
	}

	workDir, err := global.workDir()
	if err != nil {
		return err
	}
	absPath := resolvePath(workDir, outputPath)

	if _, err := os.Stat(absPath); err == nil {
		if !flags.force {
			return newUsageError(fmt.Errorf("file %q already exists; use --force to overwrite", outputPath))
		}
		logger.Warn("overwriting existing file", logging.FieldPath, outputPath)
	}

	content, err := config.GenerateTemplate(format)
	if err != nil {
		return fmt.Errorf("generate template: %w", err)
	}

	if err := os.WriteFile(absPath, content, configFilePermissions); err != nil {
		return fmt.Errorf("write file: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", outputPath)
	logger.Info("customize your configuration by editing the file", logging.FieldConfig, outputPath)

	return nil
}
