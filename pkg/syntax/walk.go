package syntax

// Text returns the source text covered by n.
func Text(n Node, source string) string {
	if n == nil {
		return ""
	}
	start, end := n.StartByte(), n.EndByte()
	if start < 0 || end > len(source) || start > end {
		return ""
	}
	return source[start:end]
}

// Walk visits root and all of its descendants in pre-order, document order.
// Returning false from fn skips the children of the current node.
// The walk is iterative, so deep trees do not grow the goroutine stack.
func Walk(root Node, fn func(Node) bool) {
	if root == nil {
		return
	}
	stack := []Node{root}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !fn(n) {
			continue
		}
		for i := n.ChildCount() - 1; i >= 0; i-- {
			if c := n.Child(i); c != nil {
				stack = append(stack, c)
			}
		}
	}
}

// FindChild returns the first named child of n with the given kind.
func FindChild(n Node, kind string) Node {
	if n == nil {
		return nil
	}
	for i := 0; i < n.NamedChildCount(); i++ {
		if c := n.NamedChild(i); c != nil && c.Kind() == kind {
			return c
		}
	}
	return nil
}

// HasChild reports whether n has a named child of the given kind.
func HasChild(n Node, kind string) bool {
	return FindChild(n, kind) != nil
}

// FindAncestor returns the nearest strict ancestor of n whose kind is one
// of kinds.
func FindAncestor(n Node, kinds ...string) Node {
	if n == nil {
		return nil
	}
	for p := n.Parent(); p != nil; p = p.Parent() {
		k := p.Kind()
		for _, want := range kinds {
			if k == want {
				return p
			}
		}
	}
	return nil
}

// HasAncestor reports whether any strict ancestor of n has the given kind.
func HasAncestor(n Node, kind string) bool {
	return FindAncestor(n, kind) != nil
}
