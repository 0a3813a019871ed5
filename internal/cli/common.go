package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/tsxflat/internal/configloader"
	"github.com/yaklabco/tsxflat/internal/logging"
	"github.com/yaklabco/tsxflat/pkg/config"
	"github.com/yaklabco/tsxflat/pkg/fsutil"
)

// errUsage marks flag values that are rejected before any work starts.
var errUsage = errors.New("invalid usage")

// commandContext returns the command's context carrying the default logger
// tagged with the command name.
func commandContext(cmd *cobra.Command) context.Context {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = logging.WithLogger(ctx, logging.Default())
	return logging.WithFields(ctx, logging.FieldCommand, cmd.Name())
}

// loadConfig merges every configuration layer with the values set on the
// command line and returns the result with the working directory.
func loadConfig(ctx context.Context, cmd *cobra.Command, cli *config.Config) (*config.Config, string, error) {
	logger := logging.FromContext(ctx)

	// Get the explicit config path from the root command's persistent flag.
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, "", fmt.Errorf("get config flag: %w", err)
	}

	workDir, err := os.Getwd()
	if err != nil {
		return nil, "", fmt.Errorf("get working directory: %w", err)
	}

	loadResult, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
		CLIConfig:    cli,
	})
	if err != nil {
		return nil, "", errors.Join(ErrConfigLoad, err)
	}

	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}
	if len(loadResult.LoadedFrom) > 0 {
		logger.Debug("loaded configuration from", logging.FieldConfig, loadResult.LoadedFrom)
	}

	cfg := loadResult.Config
	logger.Debug("configuration loaded",
		logging.FieldLanguage, cfg.Language,
		logging.FieldFormat, cfg.Format,
		logging.FieldJobs, cfg.Jobs,
		logging.FieldMaxDepth, cfg.MaxDepth,
	)

	return cfg, workDir, nil
}

// colorMode reads the persistent --color flag.
func colorMode(cmd *cobra.Command) string {
	mode, err := cmd.Flags().GetString("color")
	if err != nil {
		return "auto"
	}
	return mode
}

// outputTarget is stdout, or a buffer that Commit writes atomically to a
// file when --output is set.
type outputTarget struct {
	path   string
	stdout io.Writer
	buf    bytes.Buffer
}

func newOutputTarget(cmd *cobra.Command, path string) *outputTarget {
	return &outputTarget{path: path, stdout: cmd.OutOrStdout()}
}

func (o *outputTarget) Writer() io.Writer {
	if o.path == "" {
		return o.stdout
	}
	return &o.buf
}

// Commit writes the buffered output. Files whose content is unchanged are
// left alone.
func (o *outputTarget) Commit(ctx context.Context) error {
	if o.path == "" {
		return nil
	}

	changed, err := fsutil.WriteAtomicIfChanged(ctx, o.path, o.buf.Bytes(), 0)
	if err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	logging.FromContext(ctx).Debug("output written",
		logging.FieldOutput, o.path,
		logging.FieldBytes, o.buf.Len(),
		"changed", changed,
	)
	return nil
}
