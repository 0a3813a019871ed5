package flat

import (
	"fmt"

	"github.com/yaklabco/tsxflat/pkg/syntax"
)

// noTrivia is the inherited full start for the root's children. No real
// offset equals it, so the first top-level statement emits the file's
// leading comments.
const noTrivia = -1

type frame struct {
	node            *syntax.Node
	depth           int
	parentFullStart int
}

// Linearize flattens tree in preorder. Leading comments precede the node
// that owns them at the same level. A node sharing its full start with its
// parent has had its comments emitted by an ancestor already.
//
// The walk uses an explicit stack bounded by opts.MaxDepth.
func Linearize(tree *syntax.Tree, opts Options) (Sequence, error) {
	if tree == nil || tree.Root == nil {
		return nil, integrityf(0, "tree has no root")
	}

	lin := &linearizer{tree: tree, size: len(tree.Content)}
	maxDepth := opts.maxDepth()

	stack := []frame{{node: tree.Root, parentFullStart: noTrivia}}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		node := top.node
		if err := lin.check(node); err != nil {
			return nil, err
		}
		if top.depth > maxDepth {
			return nil, fmt.Errorf("%w: level %d at offset %d (limit %d)",
				ErrDepthExceeded, top.depth, node.Start, maxDepth)
		}

		isRoot := top.depth == 0
		if !isRoot && len(node.Leading) > 0 && node.FullStart != top.parentFullStart {
			for _, tr := range node.Leading {
				lin.appendTrivia(tr, top.depth)
			}
		}

		descend := node.HasChildren() && !node.Kind.IsDoc()
		lin.appendNode(node, top.depth, descend)
		if !descend {
			continue
		}

		inherited := node.FullStart
		if isRoot {
			inherited = noTrivia
		}
		for i := len(node.Children) - 1; i >= 0; i-- {
			stack = append(stack, frame{
				node:            node.Children[i],
				depth:           top.depth + 1,
				parentFullStart: inherited,
			})
		}
	}

	return lin.seq, nil
}

type linearizer struct {
	tree *syntax.Tree
	size int
	seq  Sequence
}

func (l *linearizer) appendTrivia(tr syntax.Trivia, depth int) {
	l.seq = append(l.seq, Record{
		IsLeaf:      true,
		Level:       depth,
		Kind:        tr.Kind,
		StartLine:   l.tree.LineAt(tr.Start),
		EndLine:     l.tree.LineAt(tr.End),
		StartOffset: tr.Start,
		EndOffset:   tr.End,
		Text:        l.tree.Text(tr.Start, tr.End),
	})
}

func (l *linearizer) appendNode(node *syntax.Node, depth int, descend bool) {
	l.seq = append(l.seq, Record{
		IsLeaf:      !descend,
		Level:       depth,
		Kind:        node.Kind,
		StartLine:   l.tree.LineAt(node.Start),
		EndLine:     l.tree.LineAt(node.End),
		StartOffset: node.Start,
		EndOffset:   node.End,
		Text:        l.tree.Text(node.Start, node.End),
		HasChildren: descend,
	})
}

// check validates one node against the content and its own children.
func (l *linearizer) check(node *syntax.Node) error {
	if node == nil {
		return integrityf(0, "nil node")
	}
	if node.FullStart < 0 || node.FullStart > node.Start ||
		node.Start > node.End || node.End > l.size {
		return integrityf(node.Start, "%s spans [%d,%d,%d) in %d bytes",
			node.Kind, node.FullStart, node.Start, node.End, l.size)
	}

	prev := node.FullStart
	for _, tr := range node.Leading {
		if tr.Start < prev || tr.Start > tr.End || tr.End > node.Start {
			return integrityf(tr.Start, "comment [%d,%d) outside leading trivia [%d,%d) of %s",
				tr.Start, tr.End, node.FullStart, node.Start, node.Kind)
		}
		prev = tr.End
	}

	prev = node.Start
	for _, child := range node.Children {
		if child == nil {
			return integrityf(node.Start, "%s has a nil child", node.Kind)
		}
		if child.FullStart < node.FullStart || child.Start < prev || child.End > node.End {
			return integrityf(child.Start, "%s [%d,%d) escapes parent %s [%d,%d)",
				child.Kind, child.Start, child.End, node.Kind, node.Start, node.End)
		}
		prev = child.End
	}

	return nil
}
