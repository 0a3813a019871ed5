// Package configloader resolves tsxflat's effective configuration from
// defaults, system, user and project files, TSXFLAT_* environment variables
// and command-line flags.
package configloader

import (
	"context"
	"fmt"
	"os"

	"github.com/yaklabco/tsxflat/pkg/config"
	"github.com/yaklabco/tsxflat/pkg/fsutil"
)

// LoadOptions controls configuration loading behavior.
type LoadOptions struct {
	// WorkingDir is where the project config search starts. Defaults to the
	// process working directory.
	WorkingDir string

	// ExplicitPath is the file named by --config.
	ExplicitPath string

	IgnoreSystemConfig  bool
	IgnoreUserConfig    bool
	IgnoreProjectConfig bool
	IgnoreEnv           bool

	// CLIConfig holds values set by flags. They take highest precedence.
	CLIConfig *config.Config
}

// LoadResult contains the resolved configuration and metadata.
type LoadResult struct {
	Config *config.Config

	// Paths are the files found for each layer, loaded or not.
	Paths *ConfigPaths

	// LoadedFrom lists the files actually merged, lowest precedence first.
	LoadedFrom []string

	// Warnings are rendered findings that did not stop loading.
	Warnings []string
}

// Load merges, lowest precedence first: defaults, the system file, the user
// file, the project file, the --config file, TSXFLAT_* variables and flags.
// Each file is validated on its own so errors name the file they came from;
// the merged result is validated again.
func Load(ctx context.Context, opts LoadOptions) (*LoadResult, error) {
	workDir := opts.WorkingDir
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("get working directory: %w", err)
		}
		workDir = wd
	}

	paths, err := DiscoverPaths(ctx, workDir)
	if err != nil {
		return nil, fmt.Errorf("discover paths: %w", err)
	}
	paths.Explicit = opts.ExplicitPath

	result := &LoadResult{Paths: paths}
	warned := make(map[string]struct{})
	addWarnings := func(findings []ValidationError) {
		for _, w := range findings {
			key := w.Field + "\x00" + w.Message
			if _, dup := warned[key]; dup {
				continue
			}
			warned[key] = struct{}{}
			result.Warnings = append(result.Warnings, w.Error())
		}
	}

	cfg := config.NewConfig()
	for _, layer := range paths.layers(opts) {
		if layer.skipped || layer.path == "" {
			continue
		}
		fileCfg, err := loadConfigFile(ctx, layer.path)
		if err != nil {
			return nil, fmt.Errorf("load %s config: %w", layer.name, err)
		}

		validation := ValidateWithFile(fileCfg, layer.path)
		if !validation.Valid() {
			return nil, &validation.Errors[0]
		}
		addWarnings(validation.Warnings)

		cfg = merge(cfg, fileCfg)
		result.LoadedFrom = append(result.LoadedFrom, layer.path)
	}

	if !opts.IgnoreEnv {
		if err := LoadFromEnv(cfg); err != nil {
			return nil, fmt.Errorf("load environment: %w", err)
		}
	}
	cfg = merge(cfg, opts.CLIConfig)

	validation := Validate(cfg)
	if !validation.Valid() {
		return nil, &validation.Errors[0]
	}
	addWarnings(validation.Warnings)

	result.Config = cfg
	return result, nil
}

func loadConfigFile(ctx context.Context, path string) (*config.Config, error) {
	content, _, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		return nil, err
	}
	return config.FromYAML(content)
}
