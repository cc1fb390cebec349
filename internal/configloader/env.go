package configloader

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/samber/lo"

	"github.com/yaklabco/gostarstyle/pkg/config"
)

// envVarPrefix is the prefix for all gostarstyle environment variables.
const envVarPrefix = "GOSTARSTYLE_"

// envBinding maps one environment variable (without prefix) to a setter.
type envBinding struct {
	name  string
	apply func(cfg *config.Config, envVar, value string) error
}

// envBindings lists the supported environment variables.
//
//nolint:gochecknoglobals // Read-only lookup table.
var envBindings = []envBinding{
	{"EXCLUDE_FILES", sliceSetter(func(c *config.Config, v []string) { c.ExcludeFiles = v })},
	{"EXCLUDE_FOLDERS", sliceSetter(func(c *config.Config, v []string) { c.ExcludeFolders = v })},
	{"FORMAT_ON_SAVE", boolSetter(func(c *config.Config, v bool) { c.FormatOnSave = config.Ptr(v) })},
	{"LINES_BEFORE_FUNCTIONS", intSetter(func(c *config.Config, v int) { c.LinesBeforeFunctions = config.Ptr(v) })},
	{"LINES_BEFORE_CONSTRUCTOR", intSetter(func(c *config.Config, v int) { c.LinesBeforeConstructor = config.Ptr(v) })},
	{"LINES_AFTER_IMPORTS", intSetter(func(c *config.Config, v int) { c.LinesAfterImports = config.Ptr(v) })},
	{"LINES_BEFORE_CLASSES", intSetter(func(c *config.Config, v int) { c.LinesBeforeClasses = config.Ptr(v) })},
	{"EXTENSIONS", sliceSetter(func(c *config.Config, v []string) { c.Extensions = v })},
	{"IGNORE", sliceSetter(func(c *config.Config, v []string) { c.Ignore = v })},
	{"FOLLOW_SYMLINKS", boolSetter(func(c *config.Config, v bool) { c.FollowSymlinks = config.Ptr(v) })},
	{"BACKUPS_ENABLED", boolSetter(func(c *config.Config, v bool) { c.Backups.Enabled = config.Ptr(v) })},
	{"BACKUPS_MODE", stringSetter(func(c *config.Config, v string) { c.Backups.Mode = v })},
	{"COLOR", stringSetter(func(c *config.Config, v string) { c.Color = v })},
	{"OUTPUT_FORMAT", stringSetter(func(c *config.Config, v string) { c.OutputFormat = config.OutputFormat(v) })},
	{"JOBS", intSetter(func(c *config.Config, v int) { c.Jobs = v })},
	{"NO_BACKUPS", boolSetter(func(c *config.Config, v bool) { c.NoBackups = v })},
}

// LoadFromEnv applies GOSTARSTYLE_* environment variables to cfg.
func LoadFromEnv(cfg *config.Config) error {
	return loadFromEnv(cfg, os.Getenv)
}

func loadFromEnv(cfg *config.Config, getenv func(string) string) error {
	if cfg == nil {
		return nil
	}

	for _, b := range envBindings {
		envVar := envVarPrefix + b.name
		value := strings.TrimSpace(getenv(envVar))
		if value == "" {
			continue
		}
		if err := b.apply(cfg, envVar, value); err != nil {
			return err
		}
	}

	return nil
}

func stringSetter(set func(*config.Config, string)) func(*config.Config, string, string) error {
	return func(cfg *config.Config, _, value string) error {
		set(cfg, value)
		return nil
	}
}

func boolSetter(set func(*config.Config, bool)) func(*config.Config, string, string) error {
	return func(cfg *config.Config, envVar, value string) error {
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean for %s: %q (expected true/false/1/0)", envVar, value)
		}
		set(cfg, b)
		return nil
	}
}

func intSetter(set func(*config.Config, int)) func(*config.Config, string, string) error {
	return func(cfg *config.Config, envVar, value string) error {
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid integer for %s: %q", envVar, value)
		}
		set(cfg, n)
		return nil
	}
}

// sliceSetter parses comma separated lists.
func sliceSetter(set func(*config.Config, []string)) func(*config.Config, string, string) error {
	return func(cfg *config.Config, _, value string) error {
		items := lo.Map(strings.Split(value, ","), func(s string, _ int) string {
			return strings.TrimSpace(s)
		})
		set(cfg, lo.Compact(items))
		return nil
	}
}
