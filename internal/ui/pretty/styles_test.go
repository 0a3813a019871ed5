package pretty_test

import (
	"bytes"
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/tsxflat/internal/ui/pretty"
	"github.com/yaklabco/tsxflat/pkg/syntax"
)

func TestNewStyles_ColorDisabled(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)
	require.NotNil(t, styles)

	// With color disabled, styles should return unmodified text
	for _, style := range []string{
		styles.Bold.Render("test"),
		styles.Error.Render("test"),
		styles.Comment.Render("test"),
		styles.DiffAdd.Render("test"),
	} {
		assert.Equal(t, "test", style)
	}
}

func TestIsColorEnabled_AlwaysMode(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	assert.True(t, pretty.IsColorEnabled("always", &buf))
}

func TestIsColorEnabled_NeverMode(t *testing.T) {
	t.Parallel()

	assert.False(t, pretty.IsColorEnabled("never", os.Stdout))
}

func TestIsColorEnabled_AutoMode_NonTTY(t *testing.T) {
	t.Parallel()

	// bytes.Buffer is not a TTY
	var buf bytes.Buffer
	assert.False(t, pretty.IsColorEnabled("auto", &buf))
	assert.False(t, pretty.IsColorEnabled("", &buf))
}

func TestIsColorEnabled_AutoMode_NoColorEnv(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	// Even with a TTY, NO_COLOR should disable colors
	assert.False(t, pretty.IsColorEnabled("auto", os.Stdout))
}

func TestKindStyle(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(true)

	tests := []struct {
		kind syntax.Kind
		want string
	}{
		{syntax.Classify("identifier", true), styles.Identifier.Render("x")},
		{syntax.ClassifyComment("// c"), styles.Comment.Render("x")},
		{syntax.Classify("jsx_element", true), styles.Markup.Render("x")},
		{syntax.Classify("=>", false), styles.Token.Render("x")},
		{syntax.Classify("ERROR", true), styles.SyntaxErr.Render("x")},
		{syntax.Classify("statement_block", true), styles.Kind.Render("x")},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.want, styles.KindStyle(tc.kind).Render("x"), tc.kind.String())
	}
}

func TestTerminalWidth_NotATerminal(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	assert.Equal(t, 0, pretty.TerminalWidth(&buf))
}

func TestTruncate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		text  string
		width int
		want  string
	}{
		{name: "fits", text: "hello", width: 10, want: "hello"},
		{name: "disabled", text: "hello world", width: 0, want: "hello world"},
		{name: "cut", text: "hello world", width: 6, want: "hello…"},
		{name: "wide runes", text: "日本語テキスト", width: 7, want: "日本語…"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, pretty.Truncate(tc.text, tc.width))
		})
	}
}

func TestFormatDiff(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)
	diff := "--- a/x.ts\n+++ b/x.ts\n@@ -1 +1 @@\n-a\n+b\n"
	assert.Equal(t, diff, styles.FormatDiff(diff))
}

func TestFormatFileError(t *testing.T) {
	t.Parallel()

	got := pretty.NewStyles(false).FormatFileError("a.ts", errors.New("boom"))
	assert.Equal(t, "a.ts: error: boom\n", got)
}
