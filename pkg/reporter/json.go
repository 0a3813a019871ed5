package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"

	"github.com/yaklabco/tsxflat/internal/ui/pretty"
	"github.com/yaklabco/tsxflat/pkg/detect"
	"github.com/yaklabco/tsxflat/pkg/flat"
	"github.com/yaklabco/tsxflat/pkg/regen"
	"github.com/yaklabco/tsxflat/pkg/runner"
)

// JSONFile is the per-file envelope used when several files are reported.
// Exactly one product field is set, matching the view.
type JSONFile struct {
	Path       string             `json:"path"`
	Language   string             `json:"language,omitempty"`
	Error      string             `json:"error,omitempty"`
	Source     *string            `json:"source,omitempty"`
	Records    flat.Sequence      `json:"records,omitempty"`
	Components []detect.Component `json:"components,omitempty"`
	Outline    []detect.Entry     `json:"outline,omitempty"`
	Tokens     []Token            `json:"tokens,omitempty"`
}

// JSONReporter formats results as JSON. A single file is written as its
// bare product (for records, the plain record array); several files are
// written as an array of JSONFile envelopes.
type JSONReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewJSONReporter creates a new JSON reporter.
func NewJSONReporter(opts Options) *JSONReporter {
	return &JSONReporter{
		opts:   opts,
		styles: pretty.NewStyles(pretty.IsColorEnabled(opts.Color, opts.ErrorWriter)),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *JSONReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil {
		return 0, nil
	}

	failed := reportErrors(r.styles, r.opts, result)

	var output any
	if len(result.Files) == 1 && result.Files[0].Error == nil {
		output = r.product(result.Files[0])
	} else {
		files := make([]JSONFile, 0, len(result.Files))
		for _, file := range result.Files {
			files = append(files, r.envelope(file))
		}
		output = files
	}

	encoder := json.NewEncoder(r.bw)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}
	if err := encoder.Encode(output); err != nil {
		return failed, fmt.Errorf("encode JSON: %w", err)
	}

	if r.opts.ShowSummary {
		fmt.Fprint(r.opts.ErrorWriter, r.styles.FormatSummaryOneLine(result.Stats))
	}

	return failed, nil
}

// product returns the view's value for one file. Empty results encode as
// [] rather than null.
func (r *JSONReporter) product(file runner.FileOutcome) any {
	seq := file.Sequence

	switch r.opts.View {
	case ViewSource:
		return regen.Regenerate(seq)
	case ViewComponents:
		return nonNil(detect.Components(seq))
	case ViewOutline:
		return nonNil(detect.Outline(seq))
	case ViewTokens:
		return Tokens(seq)
	default:
		return seq
	}
}

func (r *JSONReporter) envelope(file runner.FileOutcome) JSONFile {
	out := JSONFile{Path: file.Path, Language: file.Language}
	if file.Error != nil {
		out.Error = file.Error.Error()
		return out
	}

	switch r.opts.View {
	case ViewSource:
		src := regen.Regenerate(file.Sequence)
		out.Source = &src
	case ViewComponents:
		out.Components = detect.Components(file.Sequence)
	case ViewOutline:
		out.Outline = detect.Outline(file.Sequence)
	case ViewTokens:
		out.Tokens = Tokens(file.Sequence)
	default:
		out.Records = file.Sequence
	}
	return out
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
