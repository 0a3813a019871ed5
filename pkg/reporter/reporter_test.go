package reporter_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/tsxflat/pkg/flat"
	"github.com/yaklabco/tsxflat/pkg/reporter"
	"github.com/yaklabco/tsxflat/pkg/runner"
	"github.com/yaklabco/tsxflat/pkg/syntax"
	"github.com/yaklabco/tsxflat/pkg/syntax/syntaxtest"
)

var named = syntaxtest.Named

const barSource = "export const Bar = () => <div/>;"

// export const Bar = () => <div/>;
func barTree() *syntax.Tree {
	return syntaxtest.New().
		Open(named("export_statement")).
		Tok("export").Space(" ").
		Open(named("lexical_declaration")).
		Tok("const").Space(" ").
		Open(named("variable_declarator")).
		Ident("Bar").Space(" ").Tok("=").Space(" ").
		Open(named("arrow_function")).
		Open(named("formal_parameters")).Tok("(").Tok(")").Close().
		Space(" ").Tok("=>").Space(" ").
		Open(named("jsx_self_closing_element")).Tok("<").Ident("div").Tok("/").Tok(">").Close().
		Close().
		Close().
		Tok(";").
		Close().
		Close().
		Tree()
}

func outcome(t *testing.T, path string, tree *syntax.Tree) runner.FileOutcome {
	t.Helper()
	seq, err := flat.Linearize(tree, flat.DefaultOptions())
	require.NoError(t, err)
	return runner.FileOutcome{Path: path, Language: tree.Language, Tree: tree, Sequence: seq}
}

func result(files ...runner.FileOutcome) *runner.Result {
	r := &runner.Result{Files: files}
	for _, f := range files {
		if f.Error != nil {
			r.Stats.FilesErrored++
			continue
		}
		r.Stats.FilesProcessed++
		r.Stats.Records += len(f.Sequence)
	}
	return r
}

func report(t *testing.T, opts reporter.Options, res *runner.Result) (string, string, int) {
	t.Helper()
	var out, errOut bytes.Buffer
	opts.Writer = &out
	opts.ErrorWriter = &errOut
	opts.Color = "never"

	rep, err := reporter.New(opts)
	require.NoError(t, err)

	count, err := rep.Report(context.Background(), res)
	require.NoError(t, err)
	return out.String(), errOut.String(), count
}

func TestParseFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    reporter.Format
		wantErr bool
	}{
		{name: "empty defaults to text", input: "", want: reporter.FormatText},
		{name: "text", input: "text", want: reporter.FormatText},
		{name: "json", input: "json", want: reporter.FormatJSON},
		{name: "diff", input: "diff", want: reporter.FormatDiff},
		{name: "unknown format", input: "sarif", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := reporter.ParseFormat(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNew(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		format  reporter.Format
		view    reporter.View
		wantErr bool
	}{
		{name: "text reporter", format: reporter.FormatText, view: reporter.ViewTree},
		{name: "json reporter", format: reporter.FormatJSON, view: reporter.ViewRecords},
		{name: "diff reporter", format: reporter.FormatDiff, view: reporter.ViewSource},
		{name: "empty defaults", format: "", view: ""},
		{name: "unknown format", format: "xml", wantErr: true},
		{name: "unknown view", format: reporter.FormatText, view: "ast", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			rep, err := reporter.New(reporter.Options{Writer: &buf, Format: tt.format, View: tt.view})
			if tt.wantErr {
				require.Error(t, err)
				require.Nil(t, rep)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, rep)
		})
	}
}

func TestTextReporter_Views(t *testing.T) {
	t.Parallel()

	tests := []struct {
		view reporter.View
		want string
	}{
		{view: reporter.ViewSource, want: barSource},
		{view: reporter.ViewComponents, want: "export Bar\n"},
		{view: reporter.ViewOutline, want: "arrow_function \"Bar\"\n  jsx_self_closing_element \"div\"\n"},
	}

	for _, tc := range tests {
		t.Run(string(tc.view), func(t *testing.T) {
			t.Parallel()

			out, _, count := report(t, reporter.Options{View: tc.view}, result(outcome(t, "bar.tsx", barTree())))
			assert.Equal(t, tc.want, out)
			assert.Equal(t, 0, count)
		})
	}
}

func TestTextReporter_Tree(t *testing.T) {
	t.Parallel()

	out, _, _ := report(t, reporter.Options{View: reporter.ViewTree}, result(outcome(t, "bar.tsx", barTree())))

	assert.Contains(t, out, "program\n  export_statement\n    export export\n")
	assert.Contains(t, out, "        identifier Bar\n")
	assert.Contains(t, out, "end_of_file\n")
}

func TestTextReporter_TreeEscapesComments(t *testing.T) {
	t.Parallel()

	tree := syntaxtest.New().
		Comment("/* a\nb */").Space("\n").Ident("x").
		Tree()

	out, _, _ := report(t, reporter.Options{View: reporter.ViewTree}, result(outcome(t, "c.ts", tree)))
	assert.Contains(t, out, `block_comment /* a\nb */`)
}

func TestTextReporter_TreeTruncates(t *testing.T) {
	t.Parallel()

	tree := syntaxtest.New().Ident("averyveryverylongidentifier").Tree()

	out, _, _ := report(t, reporter.Options{View: reporter.ViewTree, TermWidth: 20}, result(outcome(t, "c.ts", tree)))
	// "  identifier " takes 13 cells; the text gets the remaining 7.
	assert.Contains(t, out, "  identifier averyv…\n")
}

func TestTextReporter_Tokens(t *testing.T) {
	t.Parallel()

	out, _, _ := report(t, reporter.Options{View: reporter.ViewTokens}, result(outcome(t, "bar.tsx", barTree())))

	assert.Contains(t, out, "export 0 \"export\"\n")
	assert.Contains(t, out, "identifier 13 \"Bar\"\n")
	assert.Contains(t, out, "end_of_file 32 \"\"\n")
}

func TestTextReporter_FileErrors(t *testing.T) {
	t.Parallel()

	res := result(
		runner.FileOutcome{Path: "broken.ts", Error: errors.New("read failed")},
		outcome(t, "bar.tsx", barTree()),
	)

	out, errOut, count := report(t, reporter.Options{View: reporter.ViewComponents, ShowSummary: true}, res)

	assert.Equal(t, 1, count)
	assert.Contains(t, errOut, "broken.ts: error: read failed")
	assert.Contains(t, errOut, "1 failed")
	assert.Contains(t, out, "==> bar.tsx <==\nexport Bar\n")
	assert.NotContains(t, out, "broken.ts")
}

func TestTextReporter_NilResult(t *testing.T) {
	t.Parallel()

	rep := reporter.NewTextReporter(reporter.Options{Writer: &bytes.Buffer{}, Color: "never"})
	count, err := rep.Report(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestJSONReporter_SingleFileRecords(t *testing.T) {
	t.Parallel()

	out, _, _ := report(t, reporter.Options{Format: reporter.FormatJSON, View: reporter.ViewRecords},
		result(outcome(t, "bar.tsx", barTree())))

	var records []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &records))
	require.NotEmpty(t, records)
	assert.Equal(t, "program", records[0]["kind"])
	assert.Equal(t, "end_of_file", records[len(records)-1]["kind"])
}

func TestJSONReporter_Components(t *testing.T) {
	t.Parallel()

	out, _, _ := report(t, reporter.Options{Format: reporter.FormatJSON, View: reporter.ViewComponents, Compact: true},
		result(outcome(t, "bar.tsx", barTree())))
	assert.JSONEq(t, `[{"exported":true,"name":"Bar"}]`, out)

	empty := syntaxtest.New().Ident("x").Tree()
	out, _, _ = report(t, reporter.Options{Format: reporter.FormatJSON, View: reporter.ViewComponents},
		result(outcome(t, "x.ts", empty)))
	assert.JSONEq(t, `[]`, out)
}

func TestJSONReporter_MultipleFiles(t *testing.T) {
	t.Parallel()

	res := result(
		outcome(t, "bar.tsx", barTree()),
		runner.FileOutcome{Path: "broken.ts", Error: errors.New("boom")},
	)

	out, _, count := report(t, reporter.Options{Format: reporter.FormatJSON, View: reporter.ViewSource}, res)
	assert.Equal(t, 1, count)

	var files []reporter.JSONFile
	require.NoError(t, json.Unmarshal([]byte(out), &files))
	require.Len(t, files, 2)
	require.NotNil(t, files[0].Source)
	assert.Equal(t, barSource, *files[0].Source)
	assert.Equal(t, "boom", files[1].Error)
}

func TestDiffReporter(t *testing.T) {
	t.Parallel()

	tabbed := syntaxtest.New().Ident("a").Space("\t").Ident("b").Tree()

	out, errOut, count := report(t, reporter.Options{Format: reporter.FormatDiff, ShowSummary: true},
		result(outcome(t, "ok.tsx", barTree()), outcome(t, "tabs.ts", tabbed)))

	assert.Equal(t, 1, count)
	assert.Contains(t, out, "--- a/tabs.ts")
	assert.Contains(t, out, "+++ b/tabs.ts")
	assert.Contains(t, out, "-a\tb")
	assert.Contains(t, out, "+a b")
	assert.NotContains(t, out, "ok.tsx")
	assert.Contains(t, errOut, "1 of 2 files differ after regeneration")
}

func TestDiffReporter_NoDiffs(t *testing.T) {
	t.Parallel()

	out, errOut, count := report(t, reporter.Options{Format: reporter.FormatDiff, ShowSummary: true},
		result(outcome(t, "ok.tsx", barTree())))

	assert.Equal(t, 0, count)
	assert.Empty(t, out)
	assert.Contains(t, errOut, "1 file round-trip exactly")
}

func TestDefaultOptions(t *testing.T) {
	t.Parallel()

	opts := reporter.DefaultOptions()
	assert.Equal(t, reporter.FormatText, opts.Format)
	assert.Equal(t, reporter.ViewSource, opts.View)
	assert.Equal(t, "auto", opts.Color)
}
