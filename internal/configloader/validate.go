package configloader

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/gobwas/glob"

	"github.com/yaklabco/tsxflat/pkg/config"
)

// ValidationError describes one invalid or suspicious setting.
type ValidationError struct {
	// Field is the setting's path, e.g. "deps.extensions[1]".
	Field string

	Value any

	Message string

	// FilePath is the config file the setting came from, when known.
	FilePath string
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, 3)
	for _, p := range []string{e.FilePath, e.Field} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(append(parts, e.Message), ": ")
}

// ValidationResult separates settings that stop loading from those that
// are only reported.
type ValidationResult struct {
	Errors   []ValidationError
	Warnings []ValidationError
}

// Valid reports whether no setting was rejected.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

func (r *ValidationResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}

//nolint:gochecknoglobals // Read-only lookup table.
var knownLanguages = []string{
	config.LanguageAuto,
	config.LanguageTSX,
	config.LanguageTypeScript,
	config.LanguageJavaScript,
}

// Validate checks a configuration. Zero values pass because merging fills
// them from defaults.
func Validate(cfg *config.Config) *ValidationResult {
	return ValidateWithFile(cfg, "")
}

// ValidateWithFile is Validate with every finding attributed to filePath.
func ValidateWithFile(cfg *config.Config, filePath string) *ValidationResult {
	v := &validator{file: filePath, result: &ValidationResult{}}
	if cfg == nil {
		return v.result
	}

	if cfg.Language != "" && !slices.Contains(knownLanguages, cfg.Language) {
		v.reject("language", cfg.Language, "invalid language %q; must be one of: %s",
			cfg.Language, strings.Join(knownLanguages, ", "))
	}
	if cfg.Format != "" && !cfg.Format.IsValid() {
		v.reject("format", cfg.Format, "invalid format %q; must be one of: text, json", cfg.Format)
	}
	v.nonNegative("jobs", cfg.Jobs, "0 means auto")
	v.nonNegative("max_depth", cfg.MaxDepth, "0 means default")

	v.globs("ignore", cfg.Ignore)
	v.extensions("extensions", cfg.Extensions, false)
	v.extensions("deps.extensions", cfg.Deps.Extensions, true)

	for i, root := range cfg.Deps.SourceRoots {
		if strings.TrimSpace(root) == "" {
			v.reject(fmt.Sprintf("deps.source_roots[%d]", i), root, "source root is empty")
		}
	}

	return v.result
}

type validator struct {
	file   string
	result *ValidationResult
}

func (v *validator) reject(field string, value any, format string, args ...any) {
	v.result.Errors = append(v.result.Errors, v.finding(field, value, format, args...))
}

func (v *validator) warn(field string, value any, format string, args ...any) {
	v.result.Warnings = append(v.result.Warnings, v.finding(field, value, format, args...))
}

func (v *validator) finding(field string, value any, format string, args ...any) ValidationError {
	return ValidationError{
		Field:    field,
		Value:    value,
		Message:  fmt.Sprintf(format, args...),
		FilePath: v.file,
	}
}

func (v *validator) nonNegative(field string, n int, zero string) {
	if n < 0 {
		v.reject(field, n, "%s must be >= 0 (%s)", field, zero)
	}
}

// globs compiles patterns the same way file discovery does.
func (v *validator) globs(field string, patterns []string) {
	for i, pattern := range patterns {
		if _, err := glob.Compile(filepath.ToSlash(pattern), '/'); err != nil {
			v.reject(fmt.Sprintf("%s[%d]", field, i), pattern, "invalid glob pattern: %v", err)
		}
	}
}

// extensions warns about entries missing their leading dot. The empty
// string is meaningful in resolver lists, where it means "as written".
func (v *validator) extensions(field string, exts []string, allowEmpty bool) {
	for i, ext := range exts {
		if ext == "" && allowEmpty {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			v.warn(fmt.Sprintf("%s[%d]", field, i), ext, "extension %q does not start with a dot", ext)
		}
	}
}
