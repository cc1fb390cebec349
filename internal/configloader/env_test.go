package configloader

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gostarstyle/pkg/config"
)

func envMap(values map[string]string) func(string) string {
	return func(key string) string { return values[key] }
}

func TestLoadFromEnv(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	err := loadFromEnv(cfg, envMap(map[string]string{
		"GOSTARSTYLE_EXCLUDE_FILES":          "*.min.js, vendor.js,,",
		"GOSTARSTYLE_EXCLUDE_FOLDERS":        "dist",
		"GOSTARSTYLE_FORMAT_ON_SAVE":         "true",
		"GOSTARSTYLE_LINES_BEFORE_FUNCTIONS": "0",
		"GOSTARSTYLE_LINES_AFTER_IMPORTS":    " 3 ",
		"GOSTARSTYLE_BACKUPS_ENABLED":        "1",
		"GOSTARSTYLE_COLOR":                  "never",
		"GOSTARSTYLE_OUTPUT_FORMAT":          "json",
		"GOSTARSTYLE_JOBS":                   "4",
	}))
	require.NoError(t, err)

	assert.Equal(t, []string{"*.min.js", "vendor.js"}, cfg.ExcludeFiles)
	assert.Equal(t, []string{"dist"}, cfg.ExcludeFolders)
	assert.True(t, cfg.FormatOnSaveEnabled())
	assert.Equal(t, 0, cfg.Spacing().BeforeFunctions)
	assert.Equal(t, 3, cfg.Spacing().AfterImports)
	assert.Equal(t, 1, cfg.Spacing().BeforeConstructor, "unset variables leave defaults")
	assert.True(t, cfg.BackupConfig().Enabled)
	assert.Equal(t, config.ColorNever, cfg.Color)
	assert.Equal(t, config.FormatJSON, cfg.OutputFormat)
	assert.Equal(t, 4, cfg.Jobs)
}

func TestLoadFromEnv_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		key   string
		value string
	}{
		{name: "bool", key: "GOSTARSTYLE_FORMAT_ON_SAVE", value: "maybe"},
		{name: "int", key: "GOSTARSTYLE_LINES_BEFORE_CLASSES", value: "two"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := loadFromEnv(config.NewConfig(), envMap(map[string]string{tt.key: tt.value}))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.key)
		})
	}
}

func TestLoadFromEnv_Nil(t *testing.T) {
	t.Parallel()

	assert.NoError(t, loadFromEnv(nil, envMap(nil)))
}
