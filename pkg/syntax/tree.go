// Package syntax defines the boundary between an external parser and the
// flattening core. It holds a lossless, read-only view of one source file:
//   - Tree: path, raw content, line index and the root node
//   - Node: kinded, offset-bounded nodes with leading comment trivia
//   - Kind: a closed family enum plus the grammar variant name
//
// Parsers build a Tree once; nothing downstream mutates it.
package syntax

// Tree is an immutable view of a parsed source file.
type Tree struct {
	// Path is the file path (may be empty for in-memory content).
	Path string

	// Language is the grammar the tree was parsed with ("tsx", "typescript", "javascript").
	Language string

	// Content is the full file bytes.
	Content []byte

	// Lines contains metadata for each line in the file.
	Lines []LineInfo

	// Root is the root node (the program).
	Root *Node
}

// LineInfo holds metadata for a single line in a file.
type LineInfo struct {
	// StartOffset is the byte index of the line start.
	StartOffset int

	// NewlineStart is the byte index where newline characters begin.
	// For lines without a trailing newline (e.g., last line), this equals EndOffset.
	NewlineStart int

	// EndOffset is the byte index just after the newline (or end of file).
	EndOffset int
}

// NewTree creates a Tree from content and a root node, building the line index.
func NewTree(path, language string, content []byte, root *Node) *Tree {
	return &Tree{
		Path:     path,
		Language: language,
		Content:  content,
		Lines:    BuildLines(content),
		Root:     root,
	}
}

// Text returns the source text between two offsets, or "" when out of range.
func (t *Tree) Text(start, end int) string {
	if start < 0 || end > len(t.Content) || start > end {
		return ""
	}
	return string(t.Content[start:end])
}
