package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/yaklabco/gostarstyle/internal/logging"
	"github.com/yaklabco/gostarstyle/pkg/config"
	"github.com/yaklabco/gostarstyle/pkg/watch"
)

type watchFlags struct {
	formatOnSave bool
	debounce     time.Duration
}

func newWatchCommand(global *globalFlags) *cobra.Command {
	flags := &watchFlags{}

	cmd := &cobra.Command{
		Use:   "watch [paths...]",
		Short: "Format files as they are saved",
		Long: `Watch files and directories and format JavaScript and TypeScript files
each time they are saved.

Settings are read again for every save, so edits to the configuration take
effect immediately. Nothing is formatted while format_on_save is disabled;
pass --format-on-save to enable it for this session.

Examples:
  gostarstyle watch                       Watch the current directory
  gostarstyle watch src --format-on-save  Watch src regardless of settings`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd, args, global, flags)
		},
	}

	cmd.Flags().BoolVar(&flags.formatOnSave, "format-on-save", false,
		"format on save even when format_on_save is disabled in the settings")
	cmd.Flags().DurationVar(&flags.debounce, "debounce", watch.DefaultDebounce,
		"how long a file must stay quiet before it is formatted")

	return cmd
}

func runWatch(cmd *cobra.Command, args []string, global *globalFlags, flags *watchFlags) error {
	logger := logging.NewInteractive()
	if global.debug {
		logger.SetLevel(log.DebugLevel)
	}

	workDir, err := global.workDir()
	if err != nil {
		return err
	}

	cliCfg := func() *config.Config {
		cfg := &config.Config{}
		if flags.formatOnSave {
			cfg.FormatOnSave = config.Ptr(true)
		}
		return cfg
	}

	// The watch loop must never block on a prompt.
	loader := *global
	loader.nonInteractive = true

	initial, err := loader.loadConfig(commandContext(cmd), cmd, workDir, cliCfg())
	if err != nil {
		return err
	}
	if !initial.Config.FormatOnSaveEnabled() {
		logger.Warn("format_on_save is disabled; files will not be formatted until it is enabled")
	}

	settings := func(ctx context.Context) (*config.Config, error) {
		loaded, err := loader.loadConfig(ctx, cmd, workDir, cliCfg())
		if err != nil {
			return nil, err
		}
		return loaded.Config, nil
	}

	watcher, err := watch.New(watch.Options{
		Paths:      args,
		WorkingDir: workDir,
		Settings:   settings,
		Debounce:   flags.debounce,
		Logger:     logger,
	})
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}

	if err := watcher.Run(commandContext(cmd)); err != nil {
		return fmt.Errorf("watch: %w", err)
	}

	logger.Info("stopped watching")
	return nil
}
