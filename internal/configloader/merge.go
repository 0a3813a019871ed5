package configloader

import "github.com/yaklabco/tsxflat/pkg/config"

// merge layers override on top of base. A non-zero scalar or non-nil slice
// in override wins; Check only ever switches on. The result shares no
// slices with either input, so later layers cannot edit earlier ones.
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override.Clone()
	}
	out := base.Clone()
	if override == nil {
		return out
	}
	over := override.Clone()

	setIfSet(&out.Language, over.Language)
	setIfSet(&out.Format, over.Format)
	setIfSet(&out.Jobs, over.Jobs)
	setIfSet(&out.MaxDepth, over.MaxDepth)
	setIfSet(&out.Output, over.Output)
	out.Check = out.Check || over.Check

	replaceIfSet(&out.Ignore, over.Ignore)
	replaceIfSet(&out.Extensions, over.Extensions)

	replaceIfSet(&out.Deps.SourceRoots, over.Deps.SourceRoots)
	replaceIfSet(&out.Deps.Extensions, over.Deps.Extensions)
	setIfSet(&out.Deps.StripPrefix, over.Deps.StripPrefix)
	setIfSet(&out.Deps.Title, over.Deps.Title)

	return out
}

func setIfSet[T comparable](dst *T, v T) {
	var zero T
	if v != zero {
		*dst = v
	}
}

func replaceIfSet[T any](dst *[]T, v []T) {
	if v != nil {
		*dst = v
	}
}

// MergeAll folds configs left to right, later entries taking precedence.
func MergeAll(configs ...*config.Config) *config.Config {
	var out *config.Config
	for _, c := range configs {
		out = merge(out, c)
	}
	return out
}
