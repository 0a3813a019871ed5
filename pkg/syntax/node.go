package syntax

// Trivia is one contiguous comment range found in a node's leading trivia.
type Trivia struct {
	Kind  Kind
	Start int
	End   int
}

// Node is a unit of the parse tree handed to the linearizer.
//
// FullStart is the offset where the node's leading trivia begins (the end of
// the preceding token). Start and End bound the node's own text. A node and
// its first descendant share FullStart, which is how the linearizer avoids
// emitting the same trivia twice.
type Node struct {
	Kind      Kind
	FullStart int
	Start     int
	End       int
	Leading   []Trivia
	Children  []*Node
}

// NewNode creates a node with no trivia and no children.
func NewNode(kind Kind, fullStart, start, end int) *Node {
	return &Node{
		Kind:      kind,
		FullStart: fullStart,
		Start:     start,
		End:       end,
	}
}

// AppendChild appends child to parent's ordered child list.
func AppendChild(parent, child *Node) {
	if parent == nil || child == nil {
		return
	}
	parent.Children = append(parent.Children, child)
}

// HasChildren returns true if this node has any children.
func (n *Node) HasChildren() bool {
	return len(n.Children) > 0
}

// IsLeaf returns true if this node has no children.
func (n *Node) IsLeaf() bool {
	return len(n.Children) == 0
}

// LeadingTriviaWidth is the number of bytes between FullStart and Start.
func (n *Node) LeadingTriviaWidth() int {
	return n.Start - n.FullStart
}
