package syntax

// WalkFunc is the function signature for Walk callbacks.
// Return a non-nil error to stop the walk.
type WalkFunc func(n *Node, depth int) error

// Walk performs a pre-order traversal of the tree starting at root.
// It uses an explicit stack, so deeply nested input cannot exhaust the
// goroutine stack. If walkFunc returns a non-nil error, the walk stops
// immediately and returns that error.
func Walk(root *Node, walkFunc WalkFunc) error {
	if root == nil {
		return nil
	}

	type frame struct {
		node  *Node
		depth int
	}
	stack := []frame{{node: root}}

	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if err := walkFunc(top.node, top.depth); err != nil {
			return err
		}

		for i := len(top.node.Children) - 1; i >= 0; i-- {
			stack = append(stack, frame{node: top.node.Children[i], depth: top.depth + 1})
		}
	}

	return nil
}

// FindAll returns all nodes matching the predicate in pre-order.
func FindAll(root *Node, predicate func(n *Node) bool) []*Node {
	var result []*Node

	//nolint:errcheck,revive // Walk only returns nil errors in this usage
	Walk(root, func(node *Node, _ int) error {
		if predicate(node) {
			result = append(result, node)
		}
		return nil
	})

	return result
}

// FindByFamily returns all nodes of the specified family.
func FindByFamily(root *Node, family Family) []*Node {
	return FindAll(root, func(n *Node) bool {
		return n.Kind.Family == family
	})
}
