package treesitter

import (
	"bytes"
	"sort"
	"unicode"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/yaklabco/tsxflat/pkg/syntax"
)

type pending struct {
	src *sitter.Node
	dst *syntax.Node
}

// convert copies the tree-sitter tree into syntax nodes. Comments are
// returned separately, sorted, for syntax.Assemble to attach as trivia.
//
// A node whose children leave source text uncovered (grammars hide some
// tokens) becomes an opaque leaf so that regeneration keeps every byte.
func convert(root *sitter.Node, content []byte) (*syntax.Node, []syntax.Trivia) {
	out := syntax.NewNode(syntax.Classify(root.Type(), root.IsNamed()), 0, 0, 0)

	var comments []syntax.Trivia
	stack := []pending{{src: root, dst: out}}

	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		count := int(top.src.ChildCount())
		for i := range count {
			child := top.src.Child(i)
			if child == nil {
				continue
			}

			if isComment(child) {
				comments = append(comments, trivia(child, content))
				continue
			}

			kind := syntax.Classify(child.Type(), child.IsNamed())
			if child.ChildCount() == 0 || hasHiddenText(child, content) {
				syntax.AppendChild(top.dst, leaf(kind, child))
				continue
			}
			if onlyComments(child) {
				for j := range int(child.ChildCount()) {
					comments = append(comments, trivia(child.Child(j), content))
				}
				end := int(child.EndByte())
				syntax.AppendChild(top.dst, syntax.NewNode(kind, end, end, end))
				continue
			}

			node := syntax.NewNode(kind, 0, 0, 0)
			syntax.AppendChild(top.dst, node)
			stack = append(stack, pending{src: child, dst: node})
		}
	}

	sort.Slice(comments, func(i, j int) bool {
		return comments[i].Start < comments[j].Start
	})

	return out, comments
}

func isComment(n *sitter.Node) bool {
	switch n.Type() {
	case "comment", "html_comment":
		return n.IsNamed()
	default:
		return false
	}
}

func onlyComments(n *sitter.Node) bool {
	for i := range int(n.ChildCount()) {
		if c := n.Child(i); c == nil || !isComment(c) {
			return false
		}
	}
	return true
}

func leaf(kind syntax.Kind, n *sitter.Node) *syntax.Node {
	start, end := int(n.StartByte()), int(n.EndByte())
	return syntax.NewNode(kind, start, start, end)
}

func trivia(n *sitter.Node, content []byte) syntax.Trivia {
	start, end := int(n.StartByte()), int(n.EndByte())
	return syntax.Trivia{
		Kind:  syntax.ClassifyComment(string(content[start:end])),
		Start: start,
		End:   end,
	}
}

// hasHiddenText reports whether n's span contains non-space bytes that no
// child covers.
func hasHiddenText(n *sitter.Node, content []byte) bool {
	pos := int(n.StartByte())
	for i := range int(n.ChildCount()) {
		c := n.Child(i)
		if c == nil {
			continue
		}
		start := int(c.StartByte())
		if start > pos && !blank(content[pos:start]) {
			return true
		}
		pos = max(pos, int(c.EndByte()))
	}
	end := int(n.EndByte())
	return end > pos && !blank(content[pos:end])
}

func blank(b []byte) bool {
	return len(bytes.TrimFunc(b, unicode.IsSpace)) == 0
}
