package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gostarstyle/internal/logging"
	"github.com/yaklabco/gostarstyle/pkg/config"
	"github.com/yaklabco/gostarstyle/pkg/exclude"
	"github.com/yaklabco/gostarstyle/pkg/pipeline"
	"github.com/yaklabco/gostarstyle/pkg/reporter"
	"github.com/yaklabco/gostarstyle/pkg/runner"
	"github.com/yaklabco/gostarstyle/pkg/style"
)

type formatFlags struct {
	format         string
	lang           string
	stdinFilepath  string
	ignore         []string
	excludeFiles   []string
	excludeFolders []string
	extensions     []string
	backup         bool
	followSymlinks bool
	verbose        bool
	compact        bool

	linesBeforeFunctions   int
	linesBeforeConstructor int
	linesAfterImports      int
	linesBeforeClasses     int
}

func newFormatCommand(global *globalFlags) *cobra.Command {
	var cfg config.Config
	flags := &formatFlags{}

	cmd := &cobra.Command{
		Use:     "format [paths...]",
		Aliases: []string{"fmt"},
		Short:   "Format JavaScript and TypeScript files",
		Long:    formatLongDescription,
		Args:    cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFormat(cmd, args, global, &cfg, flags)
		},
	}

	addFormatFlags(cmd, &cfg, flags)

	return cmd
}

const formatLongDescription = `Format JavaScript and TypeScript files.

By default, checks every .js and .ts file under the current directory and
exits with status 1 when any of them needs formatting. Pass --write to
rewrite the files in place. node_modules is always skipped.

The path "-" reads a single document from stdin and writes the formatted
text to stdout.

Examples:
  gostarstyle format                      # Check the current directory
  gostarstyle format --write src/         # Format files under src
  gostarstyle format --dry-run app.ts     # Show the changes as a diff
  gostarstyle format --format json        # Machine readable report
  gostarstyle format - < app.js           # Format stdin
  gostarstyle format --lines-before-functions 1 --write .`

func runFormat(cmd *cobra.Command, args []string, global *globalFlags, cliCfg *config.Config, flags *formatFlags) error {
	logger := logging.Default()
	ctx := logging.WithLogger(commandContext(cmd), logger)

	applyFormatFlags(cmd, cliCfg, flags)

	workDir, err := global.workDir()
	if err != nil {
		return err
	}

	loadResult, err := global.loadConfig(ctx, cmd, workDir, cliCfg)
	if err != nil {
		return err
	}
	cfg := loadResult.Config

	logger.Debug("configuration loaded",
		logging.FieldWrite, cfg.Write,
		logging.FieldDryRun, cfg.DryRun,
		logging.FieldJobs, cfg.Jobs,
		logging.FieldFormat, cfg.OutputFormat,
	)

	if len(args) == 1 && args[0] == pipeline.StdinPath {
		return formatStdin(cmd, cfg, workDir, flags)
	}
	for _, arg := range args {
		if arg == pipeline.StdinPath {
			return newUsageError(errors.New(`"-" cannot be combined with other paths`))
		}
	}

	format, err := config.ParseOutputFormat(string(cfg.OutputFormat))
	if err != nil {
		return newUsageError(fmt.Errorf("invalid format: %w", err))
	}
	if cfg.DryRun && format == config.FormatText {
		format = config.FormatDiff
	}

	runOpts := runner.OptionsFromConfig(cfg, args)
	runOpts.WorkingDir = workDir

	logger.Debug("starting format run",
		logging.FieldPaths, runOpts.Paths,
		logging.FieldWorkingDir, runOpts.WorkingDir,
		logging.FieldJobs, runOpts.Jobs,
	)

	formatRunner := runner.New(pipeline.New(style.New(cfg.Spacing())))
	result, err := formatRunner.Run(ctx, runOpts)
	if err != nil {
		return fmt.Errorf("format run failed: %w", err)
	}

	logger.Debug("format run complete",
		logging.FieldFilesDiscovered, result.Stats.FilesDiscovered,
		logging.FieldFilesExcluded, result.Stats.FilesExcluded,
		logging.FieldFilesProcessed, result.Stats.FilesProcessed,
		logging.FieldFilesChanged, result.Stats.FilesChanged,
		logging.FieldFilesWritten, result.Stats.FilesWritten,
		logging.FieldFilesErrored, result.Stats.FilesErrored,
	)

	rep, err := reporter.New(reporter.Options{
		Writer:      cmd.OutOrStdout(),
		Format:      format,
		Color:       cfg.Color,
		ShowSummary: true,
		Verbose:     flags.verbose,
		Compact:     flags.compact,
		WorkingDir:  workDir,
	})
	if err != nil {
		return fmt.Errorf("create reporter: %w", err)
	}

	if _, err := rep.Report(ctx, result); err != nil {
		logger.Error("report failed", logging.FieldError, err)
		return fmt.Errorf("report results: %w", err)
	}

	switch {
	case result.HasErrors():
		return fmt.Errorf("%w: %d failed", ErrFormatFailed, result.Stats.FilesErrored)
	case result.HasPendingChanges():
		return ErrUnformattedFiles
	default:
		return nil
	}
}

// formatStdin formats one document from stdin. The formatted text goes to
// stdout, or a diff with --dry-run or --format diff. An excluded
// --stdin-filepath passes the input through unchanged.
func formatStdin(cmd *cobra.Command, cfg *config.Config, workDir string, flags *formatFlags) error {
	ctx := commandContext(cmd)
	out := cmd.OutOrStdout()

	content, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return fmt.Errorf("read stdin: %w", err)
	}

	path := pipeline.StdinPath
	if flags.stdinFilepath != "" {
		path = relativeTo(workDir, resolvePath(workDir, flags.stdinFilepath))
		if exclude.IsExcluded(path, cfg.ExcludeFiles, cfg.ExcludeFolders) {
			logging.Default().Debug("excluded", logging.FieldPath, flags.stdinFilepath)
			return writeAll(out, content)
		}
	}

	opts := runner.OptionsFromConfig(cfg, nil).Pipeline
	opts.Write = false
	showDiff := cfg.DryRun || cfg.OutputFormat == config.FormatDiff
	opts.Diff = showDiff

	res, err := pipeline.New(style.New(cfg.Spacing())).ProcessContent(ctx, path, content, opts)
	if err != nil {
		return fmt.Errorf("format stdin: %w", err)
	}

	switch {
	case res.Unsupported:
		return writeAll(out, content)
	case showDiff:
		if res.Diff == nil {
			return nil
		}
		return writeAll(out, []byte(res.Diff.String()))
	case res.Changed:
		return writeAll(out, res.Formatted)
	default:
		return writeAll(out, content)
	}
}

func writeAll(w io.Writer, data []byte) error {
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}

// applyFormatFlags copies explicitly set flags into cfg so that unset flags
// leave file settings alone.
func applyFormatFlags(cmd *cobra.Command, cfg *config.Config, flags *formatFlags) {
	changed := cmd.Flags().Changed

	if changed("format") {
		cfg.OutputFormat = config.OutputFormat(flags.format)
	}
	if changed("lang") {
		cfg.Lang = flags.lang
	}
	if changed("ignore") {
		cfg.Ignore = flags.ignore
	}
	if changed("exclude-file") {
		cfg.ExcludeFiles = flags.excludeFiles
	}
	if changed("exclude-folder") {
		cfg.ExcludeFolders = flags.excludeFolders
	}
	if changed("extensions") {
		cfg.Extensions = flags.extensions
	}
	if changed("backup") {
		cfg.Backups.Enabled = config.Ptr(flags.backup)
	}
	if changed("follow-symlinks") {
		cfg.FollowSymlinks = config.Ptr(flags.followSymlinks)
	}
	if changed("lines-before-functions") {
		cfg.LinesBeforeFunctions = config.Ptr(flags.linesBeforeFunctions)
	}
	if changed("lines-before-constructor") {
		cfg.LinesBeforeConstructor = config.Ptr(flags.linesBeforeConstructor)
	}
	if changed("lines-after-imports") {
		cfg.LinesAfterImports = config.Ptr(flags.linesAfterImports)
	}
	if changed("lines-before-classes") {
		cfg.LinesBeforeClasses = config.Ptr(flags.linesBeforeClasses)
	}
}

func addFormatFlags(cmd *cobra.Command, cfg *config.Config, flags *formatFlags) {
	cmd.Flags().BoolVarP(&cfg.Write, "write", "w", false, "write formatted output back to the files")
	cmd.Flags().BoolVar(&cfg.DryRun, "dry-run", false, "show changes as a diff without writing")
	cmd.Flags().StringVar(&flags.format, "format", "text", "output format: text, json, diff")
	cmd.Flags().IntVar(&cfg.Jobs, "jobs", 0, "number of parallel workers (0 = auto)")
	cmd.Flags().StringVar(&flags.lang, "lang", "", "force the language: javascript or typescript")
	cmd.Flags().StringVar(&flags.stdinFilepath, "stdin-filepath", "",
		"path used for language detection and excludes when formatting stdin")
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns to ignore")
	cmd.Flags().StringSliceVar(&flags.excludeFiles, "exclude-file", nil, "file name patterns to skip ('*' wildcard)")
	cmd.Flags().StringSliceVar(&flags.excludeFolders, "exclude-folder", nil, "folder names to skip")
	cmd.Flags().StringSliceVar(&flags.extensions, "extensions", nil, "file extensions to format (default .js,.ts)")
	cmd.Flags().BoolVar(&flags.backup, "backup", false, "keep a .bak copy of each rewritten file")
	cmd.Flags().BoolVar(&cfg.NoBackups, "no-backups", false, "never create backups")
	cmd.Flags().BoolVar(&flags.followSymlinks, "follow-symlinks", false, "follow directory symlinks")
	cmd.Flags().BoolVarP(&flags.verbose, "verbose", "v", false, "also list unchanged and excluded files")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "use compact JSON output")

	cmd.Flags().IntVar(&flags.linesBeforeFunctions, "lines-before-functions", 0,
		"blank lines before function declarations")
	cmd.Flags().IntVar(&flags.linesBeforeConstructor, "lines-before-constructor", 0,
		"blank lines before constructors")
	cmd.Flags().IntVar(&flags.linesAfterImports, "lines-after-imports", 0,
		"blank lines after the import section")
	cmd.Flags().IntVar(&flags.linesBeforeClasses, "lines-before-classes", 0,
		"blank lines before class declarations")
}
