package syntax

import "sort"

// Assemble finalizes a tree whose leaves carry their own Start/End offsets.
//
// It appends a zero-width end-of-file token to root, derives Start/End of
// every composite node from its first and last child, sets FullStart to the
// end of the preceding token, and attaches each comment to the nodes whose
// leading trivia window [FullStart, Start) contains it. comments must be
// sorted by offset and must not overlap any token.
func Assemble(root *Node, comments []Trivia, contentLen int) {
	if root == nil {
		return
	}

	eof := NewNode(EndOfFileKind(), contentLen, contentLen, contentLen)
	AppendChild(root, eof)

	var order []*Node
	//nolint:errcheck,revive // Walk only returns nil errors in this usage
	Walk(root, func(n *Node, _ int) error {
		order = append(order, n)
		return nil
	})

	// Children precede their parent in reverse pre-order.
	for i := len(order) - 1; i >= 0; i-- {
		n := order[i]
		if n.IsLeaf() {
			continue
		}
		n.Start = n.Children[0].Start
		n.End = n.Children[len(n.Children)-1].End
	}
	root.End = contentLen

	prevTokenEnd := 0
	for _, n := range order {
		n.FullStart = prevTokenEnd
		n.Leading = triviaWithin(comments, n.FullStart, n.Start)
		if n.IsLeaf() {
			prevTokenEnd = n.End
		}
	}
}

// triviaWithin returns the comments lying entirely inside [start, end).
func triviaWithin(comments []Trivia, start, end int) []Trivia {
	if start >= end || len(comments) == 0 {
		return nil
	}
	lo := sort.Search(len(comments), func(i int) bool {
		return comments[i].Start >= start
	})
	hi := lo
	for hi < len(comments) && comments[hi].End <= end {
		hi++
	}
	if lo == hi {
		return nil
	}
	return comments[lo:hi:hi]
}
