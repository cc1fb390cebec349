package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gostarstyle/internal/configloader"
)

func newConfigCommand(global *globalFlags) *cobra.Command {
	var sources bool

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the resolved configuration",
		Long: `Print the configuration gostarstyle would use in the current directory,
after merging defaults, system, user and project files, the --config file
and GOSTARSTYLE_* environment variables.

Examples:
  gostarstyle config            Print the merged settings as YAML
  gostarstyle config --sources  Also list the files that were read`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			workDir, err := global.workDir()
			if err != nil {
				return err
			}

			loaded, err := global.loadConfig(commandContext(cmd), cmd, workDir, nil)
			if err != nil {
				return err
			}

			return printConfig(cmd.OutOrStdout(), loaded, sources)
		},
	}

	cmd.Flags().BoolVar(&sources, "sources", false, "list the configuration files that were loaded")

	return cmd
}

func printConfig(w io.Writer, loaded *configloader.LoadResult, sources bool) error {
	if sources {
		if len(loaded.LoadedFrom) == 0 {
			fmt.Fprintln(w, "# sources: defaults only")
		}
		for _, path := range loaded.LoadedFrom {
			fmt.Fprintf(w, "# source: %s\n", path)
		}
	}

	out, err := loaded.Config.ToYAML()
	if err != nil {
		return fmt.Errorf("serialize configuration: %w", err)
	}
	if _, err := w.Write(out); err != nil {
		return fmt.Errorf("write configuration: %w", err)
	}
	return nil
}
