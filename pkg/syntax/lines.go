package syntax

import "sort"

// BuildLines constructs line metadata from file content.
// It handles both LF (\n) and CRLF (\r\n) line endings.
func BuildLines(content []byte) []LineInfo {
	if len(content) == 0 {
		return []LineInfo{}
	}

	var lines []LineInfo
	lineStart := 0

	for idx, char := range content {
		if char == '\n' {
			newlineStart := idx
			if idx > 0 && content[idx-1] == '\r' {
				newlineStart = idx - 1
			}

			lines = append(lines, LineInfo{
				StartOffset:  lineStart,
				NewlineStart: newlineStart,
				EndOffset:    idx + 1,
			})
			lineStart = idx + 1
		}
	}

	// Last line (may not have trailing newline).
	lines = append(lines, LineInfo{
		StartOffset:  lineStart,
		NewlineStart: len(content),
		EndOffset:    len(content),
	})

	return lines
}

// LineCount returns the number of lines in the file.
func (t *Tree) LineCount() int {
	return len(t.Lines)
}

// LineAt converts a byte offset to a zero-based line number.
// Offsets at or past the end of content map to the last line.
// Negative offsets and empty files map to line 0.
func (t *Tree) LineAt(offset int) int {
	if offset <= 0 || len(t.Lines) == 0 {
		return 0
	}

	if offset >= len(t.Content) {
		return len(t.Lines) - 1
	}

	// First line whose end lies past the offset.
	lineIdx := sort.Search(len(t.Lines), func(i int) bool {
		return t.Lines[i].EndOffset > offset
	})

	if lineIdx >= len(t.Lines) {
		lineIdx = len(t.Lines) - 1
	}

	return lineIdx
}

// ColumnAt returns the zero-based byte column of an offset within its line.
func (t *Tree) ColumnAt(offset int) int {
	if len(t.Lines) == 0 || offset <= 0 {
		return 0
	}
	line := t.Lines[t.LineAt(offset)]
	return offset - line.StartOffset
}
