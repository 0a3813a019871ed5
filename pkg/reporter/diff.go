package reporter

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/yaklabco/tsxflat/internal/ui/pretty"
	"github.com/yaklabco/tsxflat/pkg/regen"
	"github.com/yaklabco/tsxflat/pkg/runner"
)

// DiffReporter regenerates every file and prints a unified diff for each
// one that does not reproduce its source byte for byte.
type DiffReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewDiffReporter creates a new diff reporter.
func NewDiffReporter(opts Options) *DiffReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &DiffReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter. The count includes failed files and
// mismatching files.
func (r *DiffReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil {
		return 0, nil
	}

	problems := reportErrors(r.styles, r.opts, result)

	cwd, _ := os.Getwd() //nolint:errcheck // without a cwd headers use base names

	var mismatched int
	for _, file := range result.Files {
		if file.Error != nil {
			continue
		}

		mismatch, ok := regen.Check(displayPath(cwd, file.Path), file.Content(), file.Sequence)
		if ok {
			continue
		}

		mismatched++
		fmt.Fprint(r.bw, r.styles.FormatDiff(mismatch.Diff))
		fmt.Fprintln(r.bw)
	}

	if r.opts.ShowSummary {
		r.writeSummary(len(result.Files)-problems, mismatched)
	}

	return problems + mismatched, nil
}

// displayPath shortens path for diff headers. It is relative to cwd when
// that takes at most two parent hops, and the base name otherwise.
func displayPath(cwd, path string) string {
	if !filepath.IsAbs(path) {
		return filepath.ToSlash(path)
	}
	if cwd == "" {
		return filepath.Base(path)
	}
	rel, err := filepath.Rel(cwd, path)
	if err != nil {
		return filepath.Base(path)
	}
	rel = filepath.ToSlash(rel)
	ups := 0
	for _, seg := range strings.Split(rel, "/") {
		if seg == ".." {
			ups++
		}
	}
	if ups > 2 {
		return filepath.Base(path)
	}
	return rel
}

func (r *DiffReporter) writeSummary(checked, mismatched int) {
	noun := "files"
	if checked == 1 {
		noun = "file"
	}

	line, style := fmt.Sprintf("%d %s round-trip exactly", checked, noun), r.styles.Success
	if mismatched > 0 {
		line, style = fmt.Sprintf("%d of %d %s differ after regeneration", mismatched, checked, noun), r.styles.Failure
	}
	fmt.Fprintln(r.opts.ErrorWriter, style.Render(line))
}
