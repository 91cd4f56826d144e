package ast

// Walk visits the subtree rooted at root in pre-order (document order).
// Returning false from visit skips the node's children. The walk uses an
// explicit stack, so deeply nested trees cannot exhaust the goroutine stack.
func Walk(root NodeRef, visit func(NodeRef) bool) {
	if !root.Valid() {
		return
	}
	t := root.tree
	stack := make([]NodeID, 0, 32)
	stack = append(stack, root.id)
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if !visit(NodeRef{tree: t, id: id}) {
			continue
		}
		children := t.Get(id).Children
		// кладём в обратном порядке, чтобы первый ребёнок вышел первым
		for i := len(children) - 1; i >= 0; i-- {
			stack = append(stack, children[i])
		}
	}
}
