// Package reporter renders linearized files: regenerated source, record
// dumps, trees, components, outlines and token lists, as text or JSON, and
// round-trip diffs.
package reporter

import (
	"context"
	"fmt"

	"github.com/yaklabco/tsxflat/internal/ui/pretty"
	"github.com/yaklabco/tsxflat/pkg/runner"
)

// Reporter formats and writes run results.
type Reporter interface {
	// Report writes formatted output for the given result.
	// It returns the number of problems reported (failed files, plus
	// mismatches for the diff format) and any write errors.
	Report(ctx context.Context, result *runner.Result) (int, error)
}

// New creates a Reporter for the specified options.
func New(opts Options) (Reporter, error) {
	defaults := DefaultOptions()
	if opts.Writer == nil {
		opts.Writer = defaults.Writer
	}
	if opts.ErrorWriter == nil {
		opts.ErrorWriter = defaults.ErrorWriter
	}

	format := opts.Format
	if format == "" {
		format = FormatText
	}
	if !format.IsValid() {
		return nil, fmt.Errorf("unsupported format: %s", format)
	}

	if opts.View == "" {
		opts.View = defaults.View
	}
	if !opts.View.IsValid() {
		return nil, fmt.Errorf("unsupported view: %s", opts.View)
	}

	switch format {
	case FormatJSON:
		return NewJSONReporter(opts), nil
	case FormatDiff:
		return NewDiffReporter(opts), nil
	case FormatText:
		if opts.TermWidth == 0 && opts.View == ViewTree {
			opts.TermWidth = pretty.TerminalWidth(opts.Writer)
		}
		return NewTextReporter(opts), nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

// reportErrors writes per-file failures and returns how many there were.
func reportErrors(styles *pretty.Styles, opts Options, result *runner.Result) int {
	var failed int
	for _, file := range result.Files {
		if file.Error == nil {
			continue
		}
		failed++
		fmt.Fprint(opts.ErrorWriter, styles.FormatFileError(file.Path, file.Error))
	}
	return failed
}
