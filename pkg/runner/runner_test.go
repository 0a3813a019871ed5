package runner_test

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/tsxflat/pkg/config"
	"github.com/yaklabco/tsxflat/pkg/flat"
	"github.com/yaklabco/tsxflat/pkg/parser/treesitter"
	"github.com/yaklabco/tsxflat/pkg/runner"
	"github.com/yaklabco/tsxflat/pkg/syntax"
	"github.com/yaklabco/tsxflat/pkg/syntax/syntaxtest"
)

var errBroken = errors.New("broken input")

// stubParser returns a fixed one-identifier tree, failing for paths
// containing "broken" and adding an ERROR node for paths containing "error".
type stubParser struct {
	calls *atomic.Int32
}

func (p stubParser) Parse(_ context.Context, path string, _ []byte) (*syntax.Tree, error) {
	if p.calls != nil {
		p.calls.Add(1)
	}
	if strings.Contains(path, "broken") {
		return nil, errBroken
	}
	b := syntaxtest.New().Ident("x")
	if strings.Contains(path, "error") {
		b.Open(syntaxtest.Named("ERROR")).Tok("@").Close()
	}
	return b.Tree(), nil
}

func stubRunner(calls *atomic.Int32) *runner.Runner {
	return &runner.Runner{
		NewParser: func(string) (runner.Parser, error) {
			return stubParser{calls: calls}, nil
		},
	}
}

func TestNew(t *testing.T) {
	t.Parallel()

	r := runner.New()
	require.NotNil(t, r.NewParser)

	p, err := r.NewParser("tsx")
	require.NoError(t, err)
	assert.NotNil(t, p)

	_, err = r.NewParser("cobol")
	assert.ErrorIs(t, err, treesitter.ErrUnsupportedLanguage)
}

func TestRunner_Run_NoFiles(t *testing.T) {
	t.Parallel()

	result, err := stubRunner(nil).Run(context.Background(), runner.Options{
		Paths:      []string{"."},
		WorkingDir: t.TempDir(),
	})
	require.NoError(t, err)

	assert.Equal(t, 0, result.Stats.FilesDiscovered)
	assert.Empty(t, result.Files)
	assert.False(t, result.HasFailures())
}

func TestRunner_Run_MultipleFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFiles(t, dir, "c.tsx", "a.ts", "b.js")

	result, err := stubRunner(nil).Run(context.Background(), runner.Options{
		Paths:      []string{"."},
		WorkingDir: dir,
		Jobs:       2,
	})
	require.NoError(t, err)

	require.Len(t, result.Files, 3)
	assert.Equal(t, []string{"a.ts", "b.js", "c.tsx"}, relAll(t, dir, paths(result)))
	assert.Equal(t, "typescript", result.Files[0].Language)
	assert.Equal(t, "javascript", result.Files[1].Language)
	assert.Equal(t, "tsx", result.Files[2].Language)

	assert.Equal(t, 3, result.Stats.FilesProcessed)
	// Each stub sequence is root, identifier and end of file.
	assert.Equal(t, 9, result.Stats.Records)
}

func TestRunner_Run_LanguageOverride(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFiles(t, dir, "a.js")

	var seen atomic.Value
	r := &runner.Runner{
		NewParser: func(language string) (runner.Parser, error) {
			seen.Store(language)
			return stubParser{}, nil
		},
	}

	result, err := r.Run(context.Background(), runner.Options{
		Paths:      []string{"."},
		WorkingDir: dir,
		Language:   config.LanguageTSX,
	})
	require.NoError(t, err)

	assert.Equal(t, "tsx", result.Files[0].Language)
	assert.Equal(t, "tsx", seen.Load())
}

func TestRunner_Run_FileErrors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFiles(t, dir, "good.ts", "broken.ts")

	result, err := stubRunner(nil).Run(context.Background(), runner.Options{
		Paths:      []string{"."},
		WorkingDir: dir,
	})
	require.NoError(t, err)

	require.Len(t, result.Files, 2)
	assert.ErrorIs(t, result.Files[0].Error, errBroken)
	assert.Nil(t, result.Files[0].Sequence)
	assert.Nil(t, result.Files[0].Content())
	assert.NoError(t, result.Files[1].Error)

	assert.Equal(t, 1, result.Stats.FilesErrored)
	assert.Equal(t, 1, result.Stats.FilesProcessed)
	assert.True(t, result.HasFailures())
}

func TestRunner_Run_SyntaxErrors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFiles(t, dir, "error.ts", "fine.ts")

	result, err := stubRunner(nil).Run(context.Background(), runner.Options{
		Paths:      []string{"."},
		WorkingDir: dir,
	})
	require.NoError(t, err)

	assert.Equal(t, 1, result.Stats.SyntaxErrors)
	assert.Equal(t, 1, result.Stats.FilesWithSyntaxErrors)
	assert.True(t, result.HasSyntaxErrors())
	assert.False(t, result.HasFailures())
}

func TestRunner_Run_DepthLimit(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFiles(t, dir, "error.ts")

	result, err := stubRunner(nil).Run(context.Background(), runner.Options{
		Paths:      []string{"."},
		WorkingDir: dir,
		MaxDepth:   1,
	})
	require.NoError(t, err)

	require.Len(t, result.Files, 1)
	assert.ErrorIs(t, result.Files[0].Error, flat.ErrDepthExceeded)
}

func TestRunner_Run_SerialVsParallelConsistency(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFiles(t, dir, "a.ts", "b.ts", "c.ts", "d.ts", "e.ts", "error.ts", "broken.ts")

	run := func(jobs int) *runner.Result {
		result, err := stubRunner(nil).Run(context.Background(), runner.Options{
			Paths:      []string{"."},
			WorkingDir: dir,
			Jobs:       jobs,
		})
		require.NoError(t, err)
		return result
	}

	serial := run(1)
	parallel := run(8)

	assert.Equal(t, paths(serial), paths(parallel))
	assert.Equal(t, serial.Stats, parallel.Stats)
}

func TestRunner_Run_ConcurrentProcessing(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	names := make([]string, 0, 20)
	for idx := range 20 {
		names = append(names, filepath.Join("src", string(rune('a'+idx))+".ts"))
	}
	writeFiles(t, dir, names...)

	var calls atomic.Int32
	result, err := stubRunner(&calls).Run(context.Background(), runner.Options{
		Paths:      []string{"."},
		WorkingDir: dir,
		Jobs:       4,
	})
	require.NoError(t, err)

	assert.Equal(t, int32(20), calls.Load())
	assert.Equal(t, 20, result.Stats.FilesProcessed)
}

func TestRunner_RunFiles_Cancelled(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFiles(t, dir, "a.ts", "b.ts")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := stubRunner(nil).RunFiles(ctx, []string{
		filepath.Join(dir, "a.ts"),
		filepath.Join(dir, "b.ts"),
	}, runner.Options{})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRunner_Run_TreeSitter(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFiles(t, dir, "App.tsx")

	result, err := runner.New().Run(context.Background(), runner.Options{
		Paths:      []string{"."},
		WorkingDir: dir,
	})
	require.NoError(t, err)

	require.Len(t, result.Files, 1)
	outcome := result.Files[0]
	require.NoError(t, outcome.Error)
	assert.Equal(t, "export const x = 1;\n", string(outcome.Content()))
	assert.Equal(t, syntax.FamilyRoot, outcome.Sequence[0].Kind.Family)
	assert.Equal(t, syntax.FamilyEndOfFile, outcome.Sequence[len(outcome.Sequence)-1].Kind.Family)
}

func TestOptionsFromConfig(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	cfg.Jobs = 3
	cfg.Ignore = []string{"dist/**"}

	opts := runner.OptionsFromConfig(cfg, []string{"src"})
	assert.Equal(t, []string{"src"}, opts.Paths)
	assert.Equal(t, 3, opts.Jobs)
	assert.Equal(t, []string{"dist/**"}, opts.ExcludeGlobs)
	assert.Equal(t, config.LanguageAuto, opts.Language)
	assert.Equal(t, config.DefaultMaxDepth, opts.MaxDepth)

	assert.Equal(t, config.DefaultExtensions(), runner.OptionsFromConfig(nil, nil).Extensions)
}

func paths(r *runner.Result) []string {
	out := make([]string, 0, len(r.Files))
	for _, f := range r.Files {
		out = append(out, f.Path)
	}
	return out
}
