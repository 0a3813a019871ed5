package configloader

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/yaklabco/tsxflat/pkg/config"
)

// envVarPrefix is the prefix for all tsxflat environment variables.
const envVarPrefix = "TSXFLAT_"

// envVar describes one supported environment variable.
type envVar struct {
	description string
	apply       func(cfg *config.Config, value string) error
}

func stringVar(description string, set func(*config.Config, string)) envVar {
	return envVar{description: description, apply: func(cfg *config.Config, value string) error {
		set(cfg, value)
		return nil
	}}
}

func intVar(description string, set func(*config.Config, int)) envVar {
	return envVar{description: description, apply: func(cfg *config.Config, value string) error {
		i, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid integer %q", value)
		}
		set(cfg, i)
		return nil
	}}
}

func sliceVar(description string, set func(*config.Config, []string)) envVar {
	return envVar{description: description, apply: func(cfg *config.Config, value string) error {
		set(cfg, parseSliceValue(value))
		return nil
	}}
}

// envVars maps environment variable names (without prefix) to setters.
//
//nolint:gochecknoglobals // Read-only lookup table.
var envVars = map[string]envVar{
	"LANGUAGE": stringVar("Grammar: auto, tsx, typescript or javascript",
		func(c *config.Config, v string) { c.Language = v }),
	"FORMAT": stringVar("Output format: text or json",
		func(c *config.Config, v string) { c.Format = config.OutputFormat(v) }),
	"JOBS": intVar("Number of parallel workers (0 = auto)",
		func(c *config.Config, v int) { c.Jobs = v }),
	"MAX_DEPTH": intVar("Deepest syntax nesting accepted",
		func(c *config.Config, v int) { c.MaxDepth = v }),
	"IGNORE": sliceVar("Comma-separated list of ignore patterns",
		func(c *config.Config, v []string) { c.Ignore = v }),
	"EXTENSIONS": sliceVar("Comma-separated list of discovered extensions",
		func(c *config.Config, v []string) { c.Extensions = v }),
	"DEPS_SOURCE_ROOTS": sliceVar("Comma-separated list of import source roots",
		func(c *config.Config, v []string) { c.Deps.SourceRoots = v }),
	"DEPS_STRIP_PREFIX": stringVar("Prefix removed from diagram labels",
		func(c *config.Config, v string) { c.Deps.StripPrefix = v }),
	"DEPS_TITLE": stringVar("Dependency diagram title",
		func(c *config.Config, v string) { c.Deps.Title = v }),
}

// LoadFromEnv applies environment variable overrides to the configuration.
// Environment variables are prefixed with TSXFLAT_ (e.g., TSXFLAT_LANGUAGE).
// Unset or empty variables are ignored.
func LoadFromEnv(cfg *config.Config) error {
	if cfg == nil {
		return nil
	}

	for _, suffix := range sortedEnvSuffixes() {
		name := envVarPrefix + suffix
		value := os.Getenv(name)
		if value == "" {
			continue
		}
		if err := envVars[suffix].apply(cfg, value); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}

	return nil
}

// parseSliceValue parses a comma-separated string into a slice.
// Each element is trimmed of whitespace.
func parseSliceValue(value string) []string {
	if value == "" {
		return nil
	}

	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func sortedEnvSuffixes() []string {
	suffixes := make([]string, 0, len(envVars))
	for suffix := range envVars {
		suffixes = append(suffixes, suffix)
	}
	sort.Strings(suffixes)
	return suffixes
}

// ListEnvVars returns all supported environment variables with their descriptions.
func ListEnvVars() map[string]string {
	out := make(map[string]string, len(envVars))
	for suffix, v := range envVars {
		out[envVarPrefix+suffix] = v.description
	}
	return out
}
