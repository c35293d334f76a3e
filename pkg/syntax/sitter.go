package syntax

import (
	"context"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
)

// SitterTree owns a tree-sitter parse tree and its source.
// Nodes obtained from Root are invalid after Close.
type SitterTree struct {
	tree   *sitter.Tree
	source []byte
}

// ParseSitter parses source with the given tree-sitter language.
func ParseSitter(ctx context.Context, lang *sitter.Language, source []byte) (*SitterTree, error) {
	if lang == nil {
		return nil, fmt.Errorf("tree-sitter language is required")
	}
	p := sitter.NewParser()
	defer p.Close()
	p.SetLanguage(lang)

	tree, err := p.ParseCtx(ctx, nil, source)
	if err != nil {
		return nil, fmt.Errorf("tree-sitter parse: %w", err)
	}
	return &SitterTree{tree: tree, source: source}, nil
}

// Root returns the root node of the tree.
func (t *SitterTree) Root() Node {
	return FromSitter(t.tree.RootNode())
}

// Source returns the parsed source as a string.
func (t *SitterTree) Source() string {
	return string(t.source)
}

// HasError reports whether tree-sitter recovered from syntax errors.
func (t *SitterTree) HasError() bool {
	return t.tree.RootNode().HasError()
}

// Close releases the underlying tree-sitter tree.
func (t *SitterTree) Close() {
	t.tree.Close()
}

// FromSitter wraps a tree-sitter node. A nil or null node yields nil.
func FromSitter(n *sitter.Node) Node {
	if n == nil || n.IsNull() {
		return nil
	}
	return sitterNode{n: n}
}

type sitterNode struct {
	n *sitter.Node
}

func (s sitterNode) Kind() string     { return s.n.Type() }
func (s sitterNode) IsNamed() bool    { return s.n.IsNamed() }
func (s sitterNode) StartByte() int   { return int(s.n.StartByte()) }
func (s sitterNode) EndByte() int     { return int(s.n.EndByte()) }
func (s sitterNode) Parent() Node     { return FromSitter(s.n.Parent()) }
func (s sitterNode) ChildCount() int  { return int(s.n.ChildCount()) }
func (s sitterNode) Child(i int) Node { return FromSitter(s.n.Child(i)) }

func (s sitterNode) StartPoint() Point { return convertPoint(s.n.StartPoint()) }
func (s sitterNode) EndPoint() Point   { return convertPoint(s.n.EndPoint()) }

func (s sitterNode) NamedChildCount() int  { return int(s.n.NamedChildCount()) }
func (s sitterNode) NamedChild(i int) Node { return FromSitter(s.n.NamedChild(i)) }

func (s sitterNode) ChildByFieldName(name string) Node {
	return FromSitter(s.n.ChildByFieldName(name))
}

func (s sitterNode) NextNamedSibling() Node {
	return FromSitter(s.n.NextNamedSibling())
}

func (s sitterNode) Equal(other Node) bool {
	o, ok := other.(sitterNode)
	return ok && s.n.Equal(o.n)
}

func convertPoint(p sitter.Point) Point {
	return Point{Row: int(p.Row), Column: int(p.Column)}
}
