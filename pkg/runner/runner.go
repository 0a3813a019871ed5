package runner

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/yaklabco/tsxflat/internal/logging"
	"github.com/yaklabco/tsxflat/pkg/flat"
	"github.com/yaklabco/tsxflat/pkg/fsutil"
	"github.com/yaklabco/tsxflat/pkg/langdetect"
	"github.com/yaklabco/tsxflat/pkg/parser/treesitter"
	"github.com/yaklabco/tsxflat/pkg/syntax"
)

// Parser turns file content into a syntax tree.
type Parser interface {
	Parse(ctx context.Context, path string, content []byte) (*syntax.Tree, error)
}

// ParserFactory returns a parser for a grammar name.
type ParserFactory func(language string) (Parser, error)

// TreeSitter returns a factory for tree-sitter parsers.
func TreeSitter(opts ...treesitter.Option) ParserFactory {
	return func(language string) (Parser, error) {
		return treesitter.New(language, opts...)
	}
}

// Runner orchestrates multi-file parsing and linearization.
type Runner struct {
	// NewParser creates the parser for each file's grammar.
	NewParser ParserFactory
}

// New creates a Runner backed by the tree-sitter grammars.
func New() *Runner {
	return &Runner{NewParser: TreeSitter()}
}

// Run discovers files under opts.Paths and processes them concurrently.
// Per-file failures are recorded in the outcome; the returned error is
// reserved for discovery failures and cancellation.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}
	return r.RunFiles(ctx, files, opts)
}

// RunFiles processes an explicit list of files, preserving its order.
func (r *Runner) RunFiles(ctx context.Context, files []string, opts Options) (*Result, error) {
	logger := logging.FromContext(ctx)

	result := &Result{
		Files: make([]FileOutcome, 0, len(files)),
	}
	result.Stats.FilesDiscovered = len(files)

	if len(files) == 0 {
		return result, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	if jobs > len(files) {
		jobs = len(files)
	}

	logger.Debug("processing files", logging.FieldFiles, len(files), logging.FieldJobs, jobs)

	// Workers write to their own slot, so no collection channel is needed.
	outcomes := make([]FileOutcome, len(files))

	group, gctx := errgroup.WithContext(ctx)
	group.SetLimit(jobs)

	for idx, path := range files {
		group.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			outcomes[idx] = r.process(gctx, path, opts)
			return nil
		})
	}

	waitErr := group.Wait()

	for idx := range outcomes {
		if outcomes[idx].Path == "" {
			continue
		}
		result.accumulate(outcomes[idx])
	}

	if waitErr != nil || ctx.Err() != nil {
		cause := ctx.Err()
		if cause == nil {
			cause = waitErr
		}
		return result, fmt.Errorf("run cancelled: %w", cause)
	}

	return result, nil
}

// process reads, parses and linearizes a single file.
func (r *Runner) process(ctx context.Context, path string, opts Options) FileOutcome {
	ctx = logging.WithFields(ctx, logging.FieldPath, path)
	logger := logging.FromContext(ctx)
	outcome := FileOutcome{Path: path}

	content, _, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		outcome.Error = err
		return outcome
	}

	outcome.Language = langdetect.Resolve(opts.Language, path, content)

	parser, err := r.NewParser(outcome.Language)
	if err != nil {
		outcome.Error = err
		return outcome
	}

	tree, err := parser.Parse(ctx, path, content)
	if err != nil {
		outcome.Error = err
		return outcome
	}

	seq, err := flat.Linearize(tree, opts.flatOptions())
	if err != nil {
		outcome.Error = fmt.Errorf("linearize %s: %w", path, err)
		return outcome
	}

	outcome.Tree = tree
	outcome.Sequence = seq

	logger.Debug("file linearized",
		logging.FieldLanguage, outcome.Language,
		logging.FieldBytes, len(content),
		logging.FieldRecords, len(seq),
	)

	return outcome
}
