package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gostarstyle/internal/configloader"
	"github.com/yaklabco/gostarstyle/internal/logging"
)

// migrateFlags holds the flags for the migrate command.
type migrateFlags struct {
	force  bool
	output string
	input  string
}

func newMigrateCommand(global *globalFlags) *cobra.Command {
	flags := &migrateFlags{}

	cmd := &cobra.Command{
		Use:   "migrate [settings.json]",
		Short: "Convert VS Code starstyling settings to gostarstyle format",
		Long: `Convert the starstyling.* settings of a VS Code settings file
(.vscode/settings.json) to a gostarstyle configuration (.gostarstyle.yml).

If no input file is specified, .vscode/settings.json in the current
directory is used. Comments and trailing commas in the settings file are
accepted. The legacy starstyling.howManyLinesToAdd setting seeds the blank
line counts before functions, classes and constructors.

Examples:
  gostarstyle migrate                          Convert .vscode/settings.json
  gostarstyle migrate path/to/settings.json    Convert a specific file
  gostarstyle migrate --output config.yml      Write to a custom output path`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				flags.input = args[0]
			}
			return runMigrate(cmd, global, flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "Overwrite existing output file")
	cmd.Flags().StringVarP(&flags.output, "output", "o", configloader.MigratedConfigName, "Output file path")

	return cmd
}

func runMigrate(cmd *cobra.Command, global *globalFlags, flags *migrateFlags) error {
	logger := logging.NewInteractive()

	workDir, err := global.workDir()
	if err != nil {
		return err
	}

	inputPath := flags.input
	if inputPath == "" {
		inputPath = configloader.DetectVSCodeSettings(workDir)
		if inputPath == "" {
			return newUsageError(errors.New("no .vscode/settings.json with starstyling settings found in current directory"))
		}
		logger.Info("found VS Code settings", logging.FieldPath, inputPath)
	} else {
		inputPath = resolvePath(workDir, inputPath)
	}

	if _, err := os.Stat(inputPath); err != nil {
		return fmt.Errorf("input file: %w", err)
	}

	absOutput := resolvePath(workDir, flags.output)
	if _, err := os.Stat(absOutput); err == nil {
		if !flags.force {
			return newUsageError(fmt.Errorf("output file %q already exists; use --force to overwrite", flags.output))
		}
		logger.Warn("overwriting existing file", logging.FieldPath, flags.output)
	}

	result, err := configloader.ConvertVSCodeSettings(inputPath)
	if err != nil {
		return fmt.Errorf("%w: convert settings: %w", ErrConfig, err)
	}
	if result.Empty() {
		return newUsageError(fmt.Errorf("no starstyling settings found in %s", inputPath))
	}

	for _, warning := range result.Warnings {
		logger.Warn(warning)
	}

	header := configloader.GenerateMigrationHeader(inputPath)
	if err := configloader.WriteConfig(result.Config, absOutput, header); err != nil {
		return fmt.Errorf("write output file: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Migrated %d settings from %s to %s\n",
		len(result.Keys), relativeTo(workDir, inputPath), flags.output)
	logger.Info("migration complete", logging.FieldInput, inputPath, logging.FieldOutput, flags.output)

	if len(result.Warnings) > 0 {
		logger.Warn("review warnings above and verify the migrated configuration")
	}

	return nil
}
