package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/tsxflat/internal/logging"
	"github.com/yaklabco/tsxflat/pkg/config"
	"github.com/yaklabco/tsxflat/pkg/reporter"
	"github.com/yaklabco/tsxflat/pkg/runner"
)

// viewCommand describes one command that renders a linearized file.
type viewCommand struct {
	view    reporter.View
	short   string
	long    string
	example string

	// checkable adds --check, which diffs regenerated text against the input.
	checkable bool
}

type viewFlags struct {
	format   string
	language string
	ignore   []string
	summary  bool
	compact  bool
}

func viewCommands() []viewCommand {
	return []viewCommand{
		{
			view:  reporter.ViewSource,
			short: "Regenerate source text from the record sequence",
			long: `Linearize each file and print the text regenerated from its records.
Regeneration joins the leading trivia and text of every leaf, so the output
reproduces the input. With --check nothing is printed for files that
round-trip; other files get a unified diff and the command fails.`,
			example: `  tsxflat src src/App.tsx
  tsxflat src --check src/`,
			checkable: true,
		},
		{
			view:  reporter.ViewRecords,
			short: "Print the flat record sequence as JSON",
			long: `Print every record of each file's sequence in order. Each record has the
fields isLeaf, level, kind, startLine, endLine, startOffset, endOffset, text
and hasChildren. Text is the record's full source span and is present on
every record. Comments appear as their own leaf records ahead of the node
they lead. The output is JSON in both formats; --compact removes
indentation.`,
			example: `  tsxflat records src/App.tsx
  tsxflat records --compact src/App.tsx > app.json`,
		},
		{
			view:  reporter.ViewTree,
			short: "Print the syntax tree as an indented listing",
			long: `Print one line per record, indented by nesting level. Leaves show their
text and comment newlines are escaped. Long lines are cut to the terminal
width when writing to a terminal.`,
			example: `  tsxflat tree src/App.tsx`,
		},
		{
			view:  reporter.ViewComponents,
			short: "List components declared in each file",
			long: `List functions and variables whose body returns markup, prefixed with
"export" when they are exported.`,
			example: `  tsxflat components src/
  tsxflat components --format json src/`,
		},
		{
			view:  reporter.ViewOutline,
			short: "Print the component and markup outline",
			long: `Print declarations and markup elements in document order, indented by
their depth in the outline.`,
			example: `  tsxflat outline src/App.tsx`,
		},
		{
			view:    reporter.ViewTokens,
			short:   "Print the leaf tokens of each file",
			long:    `Print each leaf as its kind, byte offset and quoted text.`,
			example: `  tsxflat tokens src/App.tsx`,
		},
	}
}

func newViewCommand(spec viewCommand) *cobra.Command {
	var cfg config.Config
	flags := &viewFlags{}

	cmd := &cobra.Command{
		Use:     string(spec.view) + " [paths...]",
		Short:   spec.short,
		Long:    spec.long,
		Example: spec.example,
		GroupID: groupViews,
		Args:    cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runView(cmd, args, spec, &cfg, flags)
		},
	}

	addViewFlags(cmd, spec, &cfg, flags)

	return cmd
}

func addViewFlags(cmd *cobra.Command, spec viewCommand, cfg *config.Config, flags *viewFlags) {
	cmd.Flags().StringVar(&flags.format, "format", "text", "output format: text, json")
	cmd.Flags().StringVar(&flags.language, "language", "auto",
		"grammar: auto, tsx, typescript, javascript")
	cmd.Flags().IntVar(&cfg.Jobs, "jobs", 0, "number of parallel workers (0 = auto)")
	cmd.Flags().IntVar(&cfg.MaxDepth, "max-depth", 0, "deepest syntax nesting accepted (0 = config or default)")
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns to ignore")
	cmd.Flags().StringVarP(&cfg.Output, "output", "o", "", "write output to a file instead of stdout")
	cmd.Flags().BoolVar(&flags.summary, "summary", false, "print run statistics to stderr")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "emit JSON without indentation")
	if spec.checkable {
		cmd.Flags().BoolVar(&cfg.Check, "check", false, "diff regenerated text against the input and fail on changes")
	}
}

func runView(cmd *cobra.Command, args []string, spec viewCommand, cfg *config.Config, flags *viewFlags) error {
	ctx := commandContext(cmd)
	logger := logging.FromContext(ctx)

	// Only set values that were explicitly provided via CLI flags.
	if cmd.Flags().Changed("format") {
		cfg.Format = config.OutputFormat(flags.format)
	}
	if cmd.Flags().Changed("language") {
		cfg.Language = flags.language
	}
	cfg.Ignore = flags.ignore

	finalCfg, workDir, err := loadConfig(ctx, cmd, cfg)
	if err != nil {
		return err
	}

	format, err := reporter.ParseFormat(string(finalCfg.Format))
	if err != nil {
		return fmt.Errorf("%w: %w", errUsage, err)
	}
	if spec.checkable && finalCfg.Check {
		format = reporter.FormatDiff
	}

	runOpts := runner.OptionsFromConfig(finalCfg, args)
	runOpts.WorkingDir = workDir

	logger.Debug("starting run",
		logging.FieldPaths, runOpts.Paths,
		logging.FieldWorkingDir, runOpts.WorkingDir,
	)

	result, err := runner.New().Run(ctx, runOpts)
	if err != nil {
		return fmt.Errorf("%s run failed: %w", spec.view, err)
	}

	out := newOutputTarget(cmd, finalCfg.Output)
	rep, err := reporter.New(reporter.Options{
		Writer:      out.Writer(),
		ErrorWriter: cmd.ErrOrStderr(),
		Format:      format,
		View:        spec.view,
		Color:       colorMode(cmd),
		ShowSummary: flags.summary || format == reporter.FormatDiff,
		Compact:     flags.compact,
	})
	if err != nil {
		return fmt.Errorf("create reporter: %w", err)
	}

	problems, err := rep.Report(ctx, result)
	if err != nil {
		return fmt.Errorf("report results: %w", err)
	}
	if err := out.Commit(ctx); err != nil {
		return err
	}

	logger.Debug("run complete",
		logging.FieldFilesDiscovered, result.Stats.FilesDiscovered,
		logging.FieldFilesProcessed, result.Stats.FilesProcessed,
		logging.FieldFilesFailed, result.Stats.FilesErrored,
	)

	if ExitCodeFromResult(result) != ExitSuccess {
		return ErrFilesFailed
	}
	if format == reporter.FormatDiff && problems > result.Stats.FilesErrored {
		return ErrRoundTripMismatch
	}
	return nil
}
