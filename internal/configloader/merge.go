package configloader

import (
	"slices"

	"github.com/yaklabco/gostarstyle/pkg/config"
)

// merge combines two configurations, with override taking precedence.
//   - Pointer fields: a non-nil override wins, so explicit zeros survive
//   - Strings: a non-empty override wins
//   - Slices: a non-nil override replaces base entirely
//   - CLI-only booleans can only be switched on
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	result := base.Clone()

	mergeSlice(&result.ExcludeFiles, override.ExcludeFiles)
	mergeSlice(&result.ExcludeFolders, override.ExcludeFolders)
	mergeSlice(&result.Extensions, override.Extensions)
	mergeSlice(&result.Ignore, override.Ignore)

	mergePtr(&result.FormatOnSave, override.FormatOnSave)
	mergePtr(&result.LinesBeforeFunctions, override.LinesBeforeFunctions)
	mergePtr(&result.LinesBeforeConstructor, override.LinesBeforeConstructor)
	mergePtr(&result.LinesAfterImports, override.LinesAfterImports)
	mergePtr(&result.LinesBeforeClasses, override.LinesBeforeClasses)
	mergePtr(&result.FollowSymlinks, override.FollowSymlinks)
	mergePtr(&result.Backups.Enabled, override.Backups.Enabled)

	mergeString(&result.StyleKey, override.StyleKey)
	mergeString(&result.StyleKeyEntireProject, override.StyleKeyEntireProject)
	mergeString(&result.Backups.Mode, override.Backups.Mode)
	mergeString(&result.Backups.Suffix, override.Backups.Suffix)
	mergeString(&result.Color, override.Color)
	mergeString(&result.OutputFormat, override.OutputFormat)
	mergeString(&result.Lang, override.Lang)

	if override.Jobs != 0 {
		result.Jobs = override.Jobs
	}
	result.Write = result.Write || override.Write
	result.DryRun = result.DryRun || override.DryRun
	result.NoBackups = result.NoBackups || override.NoBackups

	return result
}

func mergePtr[T any](dst **T, src *T) {
	if src != nil {
		v := *src
		*dst = &v
	}
}

func mergeSlice(dst *[]string, src []string) {
	if src != nil {
		*dst = slices.Clone(src)
	}
}

func mergeString[T ~string](dst *T, src T) {
	if src != "" {
		*dst = src
	}
}

// MergeAll merges configurations in order, later ones taking precedence.
func MergeAll(configs ...*config.Config) *config.Config {
	if len(configs) == 0 {
		return nil
	}

	result := configs[0]
	for _, c := range configs[1:] {
		result = merge(result, c)
	}
	return result
}
