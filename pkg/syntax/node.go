// Package syntax defines the read-only concrete syntax tree consumed by the
// lint rules.
//
// The Node interface mirrors the navigation surface of a tree-sitter node:
// a kind tag, byte and row/column ranges, parent and child links, named-only
// children and field lookup. Two implementations are provided:
//
//   - Tree, an arena-backed tree produced by the parser package;
//   - FromSitter, an adapter over github.com/smacker/go-tree-sitter nodes so
//     that any tree-sitter SQL grammar can feed the rules.
//
// Node text is never stored: callers slice it out of the source with Text.
//
// # Usage
//
//	tree, err := parser.Parse(sql)
//	syntax.Walk(tree.Root(), func(n syntax.Node) bool {
//	    if n.Kind() == "cte" {
//	        fmt.Println(syntax.Text(n, tree.Source()))
//	    }
//	    return true
//	})
package syntax

import "fmt"

// Point is a 0-based row/column location. Columns count bytes.
type Point struct {
	Row    int
	Column int
}

// String renders the point as row:column (0-based).
func (p Point) String() string {
	return fmt.Sprintf("%d:%d", p.Row, p.Column)
}

// Node is a non-owning handle to a node of an immutable syntax tree.
//
// Navigation methods return nil when the requested node does not exist.
// Handles are only valid while the tree they came from is alive.
type Node interface {
	// Kind returns the grammar kind, e.g. "select_list" or "identifier".
	// Anonymous tokens report their literal text.
	Kind() string

	// IsNamed reports whether the node is a named grammar node rather than
	// an anonymous token.
	IsNamed() bool

	StartByte() int
	EndByte() int
	StartPoint() Point
	EndPoint() Point

	Parent() Node
	ChildCount() int
	Child(i int) Node
	NamedChildCount() int
	NamedChild(i int) Node

	// ChildByFieldName returns the first child attached under the given
	// grammar field.
	ChildByFieldName(name string) Node

	// NextNamedSibling returns the next named node sharing this node's parent.
	NextNamedSibling() Node

	// Equal reports whether both handles refer to the same node.
	Equal(other Node) bool
}
