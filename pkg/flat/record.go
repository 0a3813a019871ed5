// Package flat linearizes a syntax tree into an append-only sequence of
// records. Each record carries a nesting level in place of parent pointers,
// so every later consumer works on integer indices into one slice.
package flat

import "github.com/yaklabco/tsxflat/pkg/syntax"

// Record is one flattened node or leading comment.
type Record struct {
	// IsLeaf is true for comments and nodes whose children are not recorded.
	IsLeaf bool `json:"isLeaf"`

	// Level is the nesting depth. Descendants always sit at a higher level
	// than the record that encloses them.
	Level int `json:"level"`

	// Kind is the syntax category. It serializes as its name.
	Kind syntax.Kind `json:"kind"`

	// StartLine and EndLine are zero-based lines of the record's own text.
	StartLine int `json:"startLine"`
	EndLine   int `json:"endLine"`

	// StartOffset and EndOffset bound the record's text, excluding any
	// leading trivia recorded separately.
	StartOffset int `json:"startOffset"`
	EndOffset   int `json:"endOffset"`

	// Text is the exact source slice.
	Text string `json:"text"`

	// HasChildren is true when descendant records follow.
	HasChildren bool `json:"hasChildren"`
}

// Sequence is the linearized form of one file. It is never reordered or
// shrunk after Linearize returns.
type Sequence []Record

// Leaves returns the indices of all leaf records in order.
func (s Sequence) Leaves() []int {
	var out []int
	for i := range s {
		if s[i].IsLeaf {
			out = append(out, i)
		}
	}
	return out
}

// Valid reports whether i indexes a record.
func (s Sequence) Valid(i int) bool {
	return i >= 0 && i < len(s)
}
