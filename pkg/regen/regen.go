// Package regen rebuilds source text from the leaf records of a
// flat.Sequence. It is the round-trip oracle for the linearizer.
package regen

import (
	"fmt"
	"strings"

	difflib "github.com/pmezard/go-difflib/difflib"

	"github.com/yaklabco/tsxflat/pkg/flat"
)

// diffContext is the number of unchanged lines around each diff hunk.
const diffContext = 3

// Regenerate replays leaves in order. A leaf on a later line is preceded by
// one newline per line crossed and then spaces for the rest of the gap; a
// leaf on the same line is preceded by spaces for the whole gap.
//
// Whitespace is normalized: tabs become spaces and trailing spaces on a
// line are moved to the next line's indentation.
func Regenerate(seq flat.Sequence) string {
	var sb strings.Builder

	line, offset := 0, 0
	for i := range seq {
		rec := &seq[i]
		if !rec.IsLeaf {
			continue
		}

		gap := rec.StartOffset - offset
		if rec.StartLine > line {
			newlines := rec.StartLine - line
			sb.WriteString(strings.Repeat("\n", newlines))
			gap -= newlines
		}
		if gap > 0 {
			sb.WriteString(strings.Repeat(" ", gap))
		}

		sb.WriteString(rec.Text)
		line, offset = rec.EndLine, rec.EndOffset
	}

	return sb.String()
}

// Mismatch describes a regeneration that differs from its source.
type Mismatch struct {
	Path   string
	Offset int    // first differing byte
	Diff   string // unified diff, source to regenerated
}

func (m *Mismatch) Error() string {
	return fmt.Sprintf("%s: regenerated source differs at offset %d", m.Path, m.Offset)
}

// Check regenerates seq and compares it to source. It returns (nil, true)
// on an exact match.
func Check(path string, source []byte, seq flat.Sequence) (*Mismatch, bool) {
	got := Regenerate(seq)
	want := string(source)
	if got == want {
		return nil, true
	}

	return &Mismatch{
		Path:   path,
		Offset: firstDifference(want, got),
		Diff:   unified(path, want, got),
	}, false
}

func firstDifference(a, b string) int {
	n := min(len(a), len(b))
	for i := range n {
		if a[i] != b[i] {
			return i
		}
	}
	return n
}

func unified(path, want, got string) string {
	diff := difflib.UnifiedDiff{
		A:        difflib.SplitLines(want),
		B:        difflib.SplitLines(got),
		FromFile: "a/" + path,
		ToFile:   "b/" + path,
		Context:  diffContext,
	}
	text, err := difflib.GetUnifiedDiffString(diff)
	if err != nil || text == "" {
		return fmt.Sprintf("--- a/%s\n+++ b/%s\n@@ whitespace-only difference @@\n", path, path)
	}
	return text
}
