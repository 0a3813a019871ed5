package cli

import (
	"cmp"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yaklabco/tsxflat/internal/logging"
	"github.com/yaklabco/tsxflat/pkg/config"
	"github.com/yaklabco/tsxflat/pkg/fsutil"
)

// initFileNames maps each --format value to the file init writes by
// default. Both names are found by project config discovery.
//
//nolint:gochecknoglobals // Read-only lookup table.
var initFileNames = map[string]string{
	"yaml": ".tsxflat.yml",
	"json": ".tsxflat.json",
}

type initFlags struct {
	force  bool
	format string
	output string
}

func newInitCommand() *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a tsxflat configuration file",
		Long: `Write a project configuration file holding the default language, discovered
extensions and dependency graph settings. The YAML form comments every
setting. Either form is picked up by later runs in this directory or below.`,
		Example: `  tsxflat init                      Create .tsxflat.yml
  tsxflat init --format json        Create .tsxflat.json instead
  tsxflat init --output custom.yml  Write to a custom file path`,
		GroupID: groupProject,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd, flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "overwrite an existing file")
	cmd.Flags().StringVar(&flags.format, "format", "yaml", "file format: yaml or json")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "file to write (default .tsxflat.yml or .tsxflat.json)")

	return cmd
}

func runInit(cmd *cobra.Command, flags *initFlags) error {
	ctx := commandContext(cmd)
	logger := logging.NewInteractive()

	defaultName, ok := initFileNames[flags.format]
	if !ok {
		return fmt.Errorf("%w: format %q must be yaml or json", errUsage, flags.format)
	}
	target, err := filepath.Abs(cmp.Or(flags.output, defaultName))
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	switch _, err := os.Stat(target); {
	case err == nil && !flags.force:
		return fmt.Errorf("%w: %s already exists; use --force to overwrite", errUsage, target)
	case err == nil:
		logger.Warn("overwriting existing file", logging.FieldPath, target)
	case !errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("stat %s: %w", target, err)
	}

	content, err := config.GenerateTemplate(config.TemplateOptions{Format: flags.format})
	if err != nil {
		return fmt.Errorf("generate template: %w", err)
	}
	// The loader reads both formats with the YAML decoder.
	if _, err := config.FromYAML(content); err != nil {
		return fmt.Errorf("generated template does not load: %w", err)
	}

	if err := fsutil.WriteAtomic(ctx, target, content, fsutil.DefaultFileMode); err != nil {
		return fmt.Errorf("write %s: %w", target, err)
	}

	logger.Info("created configuration file", logging.FieldPath, target)
	logger.Info("run 'tsxflat src --check' to verify your sources round-trip")
	return nil
}
