package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gostarstyle/pkg/config"
	"github.com/yaklabco/gostarstyle/pkg/fsutil"
	"github.com/yaklabco/gostarstyle/pkg/style"
)

func TestNewConfig_Defaults(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()

	assert.Equal(t, style.DefaultSpacing(), cfg.Spacing())
	assert.False(t, cfg.FormatOnSaveEnabled())
	assert.Equal(t, "ctrl+shift+s", cfg.StyleKey)
	assert.Equal(t, "ctrl+shift+a", cfg.StyleKeyEntireProject)
	assert.Equal(t, []string{".js", ".ts"}, cfg.EffectiveExtensions())
	assert.Equal(t, []string{"**/node_modules/**"}, cfg.EffectiveIgnore())
	assert.Equal(t, config.FormatText, cfg.OutputFormat)
	assert.False(t, cfg.BackupConfig().Enabled)
}

func TestConfig_Spacing(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{
		LinesBeforeFunctions: config.Ptr(0),
		LinesBeforeClasses:   config.Ptr(4),
	}

	assert.Equal(t, style.Spacing{
		BeforeFunctions:   0,
		BeforeConstructor: 1,
		BeforeClasses:     4,
		AfterImports:      2,
	}, cfg.Spacing())
}

func TestConfig_EffectiveIgnore(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{Ignore: []string{"dist/**", config.DefaultIgnore, "dist/**"}}
	assert.Equal(t, []string{config.DefaultIgnore, "dist/**"}, cfg.EffectiveIgnore())
}

func TestConfig_BackupConfig(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	cfg.Backups.Enabled = config.Ptr(true)
	cfg.Backups.Suffix = ".orig"

	got := cfg.BackupConfig()
	assert.True(t, got.Enabled)
	assert.Equal(t, fsutil.BackupModeSidecar, got.Mode)
	assert.Equal(t, ".orig", got.Suffix)

	cfg.NoBackups = true
	assert.False(t, cfg.BackupConfig().Enabled)
}

func TestConfig_Clone(t *testing.T) {
	t.Parallel()

	orig := config.NewConfig()
	orig.ExcludeFiles = []string{"*.min.js"}
	orig.Jobs = 3

	clone := orig.Clone()
	require.NotNil(t, clone)
	assert.Equal(t, orig, clone)

	clone.ExcludeFiles[0] = "changed"
	*clone.LinesBeforeFunctions = 9

	assert.Equal(t, "*.min.js", orig.ExcludeFiles[0])
	assert.Equal(t, 2, *orig.LinesBeforeFunctions)

	var nilCfg *config.Config
	assert.Nil(t, nilCfg.Clone())
}

func TestFromYAML(t *testing.T) {
	t.Parallel()

	t.Run("parses settings", func(t *testing.T) {
		t.Parallel()

		cfg, err := config.FromYAML([]byte(`
exclude_files: ["*.min.js"]
exclude_folders: [dist]
format_on_save: true
lines_before_functions: 0
backups:
  enabled: true
`))
		require.NoError(t, err)

		assert.Equal(t, []string{"*.min.js"}, cfg.ExcludeFiles)
		assert.Equal(t, []string{"dist"}, cfg.ExcludeFolders)
		assert.True(t, cfg.FormatOnSaveEnabled())
		require.NotNil(t, cfg.LinesBeforeFunctions)
		assert.Equal(t, 0, *cfg.LinesBeforeFunctions)
		assert.Nil(t, cfg.LinesBeforeClasses)
		assert.True(t, cfg.BackupConfig().Enabled)
	})

	t.Run("empty document", func(t *testing.T) {
		t.Parallel()

		cfg, err := config.FromYAML(nil)
		require.NoError(t, err)
		assert.Equal(t, &config.Config{}, cfg)
	})

	t.Run("unknown key", func(t *testing.T) {
		t.Parallel()

		_, err := config.FromYAML([]byte("lines_before_function: 3\n"))
		require.Error(t, err)
	})
}

func TestFromTOML(t *testing.T) {
	t.Parallel()

	t.Run("parses settings", func(t *testing.T) {
		t.Parallel()

		cfg, err := config.FromTOML([]byte(`
exclude_folders = ["vendor"]
lines_after_imports = 1
style_key = "ctrl+alt+f"

[backups]
enabled = true
mode = "sidecar"
`))
		require.NoError(t, err)

		assert.Equal(t, []string{"vendor"}, cfg.ExcludeFolders)
		assert.Equal(t, 1, cfg.Spacing().AfterImports)
		assert.Equal(t, "ctrl+alt+f", cfg.StyleKey)
		assert.True(t, cfg.BackupConfig().Enabled)
	})

	t.Run("unknown key", func(t *testing.T) {
		t.Parallel()

		_, err := config.FromTOML([]byte("format_on_saves = true\n"))
		require.ErrorIs(t, err, config.ErrUnknownKeys)
	})
}

func TestParseFile(t *testing.T) {
	t.Parallel()

	cfg, err := config.ParseFile("cfg.TOML", []byte("format_on_save = true\n"))
	require.NoError(t, err)
	assert.True(t, cfg.FormatOnSaveEnabled())

	cfg, err = config.ParseFile(".gostarstyle.yml", []byte("format_on_save: true\n"))
	require.NoError(t, err)
	assert.True(t, cfg.FormatOnSaveEnabled())
}

func TestYAMLRoundTrip(t *testing.T) {
	t.Parallel()

	orig := config.NewConfig()
	orig.ExcludeFolders = []string{"dist"}
	orig.Write = true

	data, err := orig.ToYAML()
	require.NoError(t, err)
	assert.NotContains(t, string(data), "write")

	parsed, err := config.FromYAML(data)
	require.NoError(t, err)

	orig.Write = false
	assert.Equal(t, orig, parsed)
}

func TestGenerateTemplate(t *testing.T) {
	t.Parallel()

	for _, format := range []config.TemplateFormat{config.TemplateYAML, config.TemplateTOML} {
		data, err := config.GenerateTemplate(format)
		require.NoError(t, err)

		cfg, err := config.ParseFile("x."+string(format), data)
		require.NoError(t, err, "template for %s must parse", format)
		assert.Equal(t, style.DefaultSpacing(), cfg.Spacing())
		assert.Equal(t, config.DefaultStyleKey, cfg.StyleKey)
		assert.False(t, cfg.FormatOnSaveEnabled())
	}

	_, err := config.GenerateTemplate("ini")
	require.Error(t, err)
}

func TestOutputFormat_IsValid(t *testing.T) {
	t.Parallel()

	for _, f := range config.OutputFormats() {
		assert.True(t, f.IsValid())
	}
	assert.False(t, config.OutputFormat("sarif").IsValid())
}

func TestParseOutputFormat(t *testing.T) {
	t.Parallel()

	got, err := config.ParseOutputFormat("")
	require.NoError(t, err)
	assert.Equal(t, config.FormatText, got)

	got, err = config.ParseOutputFormat("diff")
	require.NoError(t, err)
	assert.Equal(t, config.FormatDiff, got)

	_, err = config.ParseOutputFormat("xml")
	require.ErrorContains(t, err, "valid formats: text, json, diff")
}
