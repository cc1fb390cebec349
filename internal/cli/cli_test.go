package cli_test

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gostarstyle/internal/cli"
	"github.com/yaklabco/gostarstyle/internal/configloader"
	"github.com/yaklabco/gostarstyle/pkg/pipeline"
)

func testInfo() cli.BuildInfo {
	return cli.BuildInfo{
		Version: "test",
		Commit:  "test",
		Date:    "test",
	}
}

func TestNewRootCommand(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())
	require.NotNil(t, cmd)

	assert.Equal(t, "gostarstyle", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.NotEmpty(t, cmd.Long)
}

func TestRootCommandHasSubcommands(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())

	for _, name := range []string{"format", "watch", "init", "migrate", "config", "version"} {
		subCmd, _, err := cmd.Find([]string{name})
		if assert.NoError(t, err, "subcommand %q", name) {
			assert.Equal(t, name, subCmd.Name())
		}
	}

	fmtCmd, _, err := cmd.Find([]string{"fmt"})
	require.NoError(t, err)
	assert.Equal(t, "format", fmtCmd.Name(), "fmt is an alias of format")
}

func TestFormatCommandFlags(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())
	formatCmd, _, err := cmd.Find([]string{"format"})
	require.NoError(t, err)

	expectedFlags := []string{
		"write",
		"dry-run",
		"format",
		"jobs",
		"lang",
		"stdin-filepath",
		"ignore",
		"exclude-file",
		"exclude-folder",
		"extensions",
		"backup",
		"no-backups",
		"follow-symlinks",
		"verbose",
		"lines-before-functions",
		"lines-before-constructor",
		"lines-after-imports",
		"lines-before-classes",
	}

	for _, flagName := range expectedFlags {
		assert.NotNil(t, formatCmd.Flags().Lookup(flagName), "expected flag %q on format", flagName)
	}

	assert.Equal(t, "w", formatCmd.Flags().Lookup("write").Shorthand)
}

func TestWatchCommandFlags(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())
	watchCmd, _, err := cmd.Find([]string{"watch"})
	require.NoError(t, err)

	assert.NotNil(t, watchCmd.Flags().Lookup("format-on-save"))
	debounce := watchCmd.Flags().Lookup("debounce")
	require.NotNil(t, debounce)
	assert.Equal(t, "100ms", debounce.DefValue)
}

func TestGlobalFlags(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())

	for _, flagName := range []string{"config", "chdir", "debug", "color", "no-color", "non-interactive", "migrate-prompt"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(flagName), "expected global flag %q", flagName)
	}
}

func TestVersionCommand(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(cli.BuildInfo{
		Version: "1.2.3",
		Commit:  "abc123",
		Date:    "2024-01-01",
	})
	cmd.SetArgs([]string{"version"})

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)

	require.NoError(t, cmd.Execute())

	assert.Contains(t, out.String(), "gostarstyle")
	assert.Contains(t, out.String(), "1.2.3")
	assert.Contains(t, out.String(), "abc123")
}

func TestFormatCommandAcceptsArbitraryArgs(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())
	formatCmd, _, err := cmd.Find([]string{"format"})
	require.NoError(t, err)

	assert.NoError(t, formatCmd.Args(formatCmd, []string{"a.js", "b.ts", "src/"}))
}

func TestHelpListsExitCodes(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())
	cmd.SetArgs([]string{"--help"})

	var out bytes.Buffer
	cmd.SetOut(&out)

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "Exit Codes:")
	assert.Contains(t, out.String(), "files need formatting")
}

func TestExitCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, cli.ExitSuccess},
		{"unformatted", cli.ErrUnformattedFiles, cli.ExitUnformatted},
		{"config", fmt.Errorf("%w: bad", cli.ErrConfig), cli.ExitUsageError},
		{"invalid config", fmt.Errorf("load: %w", configloader.ErrInvalidConfig), cli.ExitUsageError},
		{"unknown command", errors.New(`unknown command "lint" for "gostarstyle"`), cli.ExitUsageError},
		{"format failed", fmt.Errorf("%w: 2 failed", cli.ErrFormatFailed), cli.ExitIOError},
		{"write failure", fmt.Errorf("a.js: %w", pipeline.ErrWriteFailure), cli.ExitIOError},
		{"missing path", fmt.Errorf("stat x: %w", fs.ErrNotExist), cli.ExitIOError},
		{"other", errors.New("boom"), cli.ExitInternalError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, cli.ExitCode(tt.err))
		})
	}
}
