package reporter

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/yaklabco/tsxflat/internal/ui/pretty"
	"github.com/yaklabco/tsxflat/pkg/detect"
	"github.com/yaklabco/tsxflat/pkg/flat"
	"github.com/yaklabco/tsxflat/pkg/syntax"
)

// Token is one leaf of the token dump.
type Token struct {
	Kind   syntax.Kind `json:"kind"`
	Offset int         `json:"offset"`
	Line   int         `json:"line"`
	Text   string      `json:"text"`
}

// Tokens lists the leaf records of seq in document order.
func Tokens(seq flat.Sequence) []Token {
	leaves := seq.Leaves()
	out := make([]Token, 0, len(leaves))
	for _, i := range leaves {
		rec := seq[i]
		out = append(out, Token{
			Kind:   rec.Kind,
			Offset: rec.StartOffset,
			Line:   rec.StartLine,
			Text:   rec.Text,
		})
	}
	return out
}

func indent(level int) string {
	return strings.Repeat("  ", level)
}

// writeTree prints one record per line, indented by level. Leaves carry
// their text; comment newlines are escaped so each record stays on a line.
func writeTree(w io.Writer, styles *pretty.Styles, seq flat.Sequence, width int) {
	for i := range seq {
		rec := seq[i]
		prefix := indent(rec.Level) + rec.Kind.String()
		line := indent(rec.Level) + styles.KindStyle(rec.Kind).Render(rec.Kind.String())

		if !rec.HasChildren && rec.Text != "" {
			text := rec.Text
			if rec.Kind.IsComment() {
				text = strings.ReplaceAll(text, "\n", `\n`)
			}
			if width > 0 {
				text = pretty.Truncate(text, width-len(prefix)-1)
			}
			line += " " + styles.LeafText.Render(text)
		}

		fmt.Fprintln(w, line)
	}
}

func writeComponents(w io.Writer, styles *pretty.Styles, components []detect.Component) {
	for _, c := range components {
		if c.Exported {
			fmt.Fprintln(w, styles.Dim.Render("export ")+styles.Declared.Render(c.Name))
			continue
		}
		fmt.Fprintln(w, styles.Declared.Render(c.Name))
	}
}

func writeOutline(w io.Writer, styles *pretty.Styles, entries []detect.Entry) {
	for _, e := range entries {
		line := indent(e.Depth) + styles.KindStyle(e.Kind).Render(e.Kind.String())
		if e.Name != "" {
			line += " " + styles.Identifier.Render(strconv.Quote(e.Name))
		}
		fmt.Fprintln(w, line)
	}
}

func writeTokens(w io.Writer, styles *pretty.Styles, tokens []Token) {
	for _, tok := range tokens {
		fmt.Fprintf(w, "%s %s %s\n",
			styles.KindStyle(tok.Kind).Render(tok.Kind.String()),
			styles.Location.Render(strconv.Itoa(tok.Offset)),
			strconv.Quote(tok.Text),
		)
	}
}
