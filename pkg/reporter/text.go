package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/yaklabco/tsxflat/internal/ui/pretty"
	"github.com/yaklabco/tsxflat/pkg/detect"
	"github.com/yaklabco/tsxflat/pkg/regen"
	"github.com/yaklabco/tsxflat/pkg/runner"
)

// TextReporter writes each file's product as plain or styled text.
type TextReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewTextReporter creates a new text reporter.
func NewTextReporter(opts Options) *TextReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &TextReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *TextReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil {
		return 0, nil
	}

	failed := reportErrors(r.styles, r.opts, result)

	headers := len(result.Files) > 1 && r.opts.View != ViewSource
	for _, file := range result.Files {
		if file.Error != nil {
			continue
		}
		if headers {
			fmt.Fprintln(r.bw, r.styles.FormatFileHeader(file.Path))
		}
		if err := r.render(r.bw, file); err != nil {
			return failed, err
		}
	}

	if r.opts.ShowSummary {
		fmt.Fprint(r.opts.ErrorWriter, r.styles.FormatSummaryOneLine(result.Stats))
	}

	return failed, nil
}

func (r *TextReporter) render(w io.Writer, file runner.FileOutcome) error {
	seq := file.Sequence

	switch r.opts.View {
	case ViewSource:
		_, err := io.WriteString(w, regen.Regenerate(seq))
		return err
	case ViewRecords:
		encoder := json.NewEncoder(w)
		if !r.opts.Compact {
			encoder.SetIndent("", "  ")
		}
		if err := encoder.Encode(seq); err != nil {
			return fmt.Errorf("encode records: %w", err)
		}
	case ViewTree:
		writeTree(w, r.styles, seq, r.opts.TermWidth)
	case ViewComponents:
		writeComponents(w, r.styles, detect.Components(seq))
	case ViewOutline:
		writeOutline(w, r.styles, detect.Outline(seq))
	case ViewTokens:
		writeTokens(w, r.styles, Tokens(seq))
	}
	return nil
}
