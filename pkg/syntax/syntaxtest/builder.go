// Package syntaxtest builds syntax trees by hand for tests that should not
// depend on a real grammar.
package syntaxtest

import (
	"bytes"

	"github.com/yaklabco/tsxflat/pkg/syntax"
)

// Builder appends source text while opening and closing nodes around it.
type Builder struct {
	buf      bytes.Buffer
	stack    []*syntax.Node
	comments []syntax.Trivia
}

// New returns a builder with an open program node.
func New() *Builder {
	root := syntax.NewNode(syntax.Classify("program", true), 0, 0, 0)
	return &Builder{stack: []*syntax.Node{root}}
}

// Named returns the kind of a named grammar node.
func Named(nodeType string) syntax.Kind {
	return syntax.Classify(nodeType, true)
}

// Anon returns the kind of an anonymous token.
func Anon(text string) syntax.Kind {
	return syntax.Classify(text, false)
}

// Open starts a composite node of the given kind.
func (b *Builder) Open(kind syntax.Kind) *Builder {
	n := syntax.NewNode(kind, 0, 0, 0)
	syntax.AppendChild(b.stack[len(b.stack)-1], n)
	b.stack = append(b.stack, n)
	return b
}

// Close ends the innermost open node.
func (b *Builder) Close() *Builder {
	if len(b.stack) > 1 {
		b.stack = b.stack[:len(b.stack)-1]
	}
	return b
}

// Leaf appends a leaf with the given kind and text.
func (b *Builder) Leaf(kind syntax.Kind, text string) *Builder {
	start := b.buf.Len()
	b.buf.WriteString(text)
	n := syntax.NewNode(kind, start, start, b.buf.Len())
	syntax.AppendChild(b.stack[len(b.stack)-1], n)
	return b
}

// Tok appends an anonymous token whose kind is its own text.
func (b *Builder) Tok(text string) *Builder {
	return b.Leaf(Anon(text), text)
}

// Ident appends an identifier leaf.
func (b *Builder) Ident(name string) *Builder {
	return b.Leaf(Named("identifier"), name)
}

// Space appends raw whitespace that belongs to no node.
func (b *Builder) Space(ws string) *Builder {
	b.buf.WriteString(ws)
	return b
}

// Comment appends a comment that becomes trivia of the next token.
func (b *Builder) Comment(text string) *Builder {
	start := b.buf.Len()
	b.buf.WriteString(text)
	b.comments = append(b.comments, syntax.Trivia{
		Kind:  syntax.ClassifyComment(text),
		Start: start,
		End:   b.buf.Len(),
	})
	return b
}

// Tree finalizes offsets and trivia and returns the tree.
func (b *Builder) Tree() *syntax.Tree {
	root := b.stack[0]
	content := bytes.Clone(b.buf.Bytes())
	syntax.Assemble(root, b.comments, len(content))
	return syntax.NewTree("test.tsx", "tsx", content, root)
}
