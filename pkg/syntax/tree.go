package syntax

import "sort"

// KindError is the kind of nodes wrapping input the parser could not match.
const KindError = "ERROR"

// NodeID indexes a node inside a Builder or Tree arena.
type NodeID int32

// noNode marks a missing parent.
const noNode NodeID = -1

type nodeData struct {
	kind  string
	named bool
	field string // field name under the parent, "" if none
	start int
	end   int

	parent      NodeID
	childIdx    int // position in parent's children
	children    []NodeID
	namedChilds []NodeID
}

// Tree is an immutable, arena-backed syntax tree over a source string.
// It is safe for concurrent readers.
type Tree struct {
	source string
	lines  []int // byte offset of each line start
	nodes  []nodeData
	root   NodeID
}

// Root returns the root node.
func (t *Tree) Root() Node {
	return arenaNode{t: t, id: t.root}
}

// Source returns the text the tree was built from.
func (t *Tree) Source() string {
	return t.source
}

// Len returns the number of nodes in the tree.
func (t *Tree) Len() int {
	return len(t.nodes)
}

// HasError reports whether any ERROR node is present.
func (t *Tree) HasError() bool {
	for i := range t.nodes {
		if t.nodes[i].kind == KindError {
			return true
		}
	}
	return false
}

func (t *Tree) point(offset int) Point {
	line := sort.Search(len(t.lines), func(i int) bool { return t.lines[i] > offset }) - 1
	if line < 0 {
		line = 0
	}
	return Point{Row: line, Column: offset - t.lines[line]}
}

func (t *Tree) node(id NodeID) Node {
	if id == noNode {
		return nil
	}
	return arenaNode{t: t, id: id}
}

// ---------- Builder ----------

// Builder assembles a Tree bottom-up. Children must be added to their
// parent in document order, and every node gets at most one parent.
type Builder struct {
	source string
	nodes  []nodeData
}

// NewBuilder creates a builder for the given source.
func NewBuilder(source string) *Builder {
	return &Builder{source: source}
}

// Leaf adds a childless node spanning source[start:end].
func (b *Builder) Leaf(kind string, named bool, start, end int) NodeID {
	b.nodes = append(b.nodes, nodeData{
		kind:   kind,
		named:  named,
		start:  start,
		end:    end,
		parent: noNode,
	})
	return NodeID(len(b.nodes) - 1)
}

// Node adds a named interior node over children. Its range spans from the
// first child's start to the last child's end. Without children, the node
// is empty and positioned at the end of the source.
func (b *Builder) Node(kind string, children ...NodeID) NodeID {
	id := NodeID(len(b.nodes))
	n := nodeData{
		kind:     kind,
		named:    true,
		start:    len(b.source),
		end:      len(b.source),
		parent:   noNode,
		children: children,
	}
	if len(children) > 0 {
		n.start = b.nodes[children[0]].start
		n.end = b.nodes[children[len(children)-1]].end
	}
	for i, c := range children {
		child := &b.nodes[c]
		child.parent = id
		child.childIdx = i
		if child.named {
			n.namedChilds = append(n.namedChilds, c)
		}
	}
	b.nodes = append(b.nodes, n)
	return id
}

// SetField attaches a field name to a node under its (future) parent.
func (b *Builder) SetField(id NodeID, field string) NodeID {
	b.nodes[id].field = field
	return id
}

// Kind returns the kind of a node already added to the builder.
func (b *Builder) Kind(id NodeID) string {
	return b.nodes[id].kind
}

// Build finalizes the tree with the given root. The builder must not be
// used afterwards.
func (b *Builder) Build(root NodeID) *Tree {
	lines := []int{0}
	for i := 0; i < len(b.source); i++ {
		if b.source[i] == '\n' {
			lines = append(lines, i+1)
		}
	}
	t := &Tree{
		source: b.source,
		lines:  lines,
		nodes:  b.nodes,
		root:   root,
	}
	b.nodes = nil
	return t
}

// ---------- arenaNode ----------

type arenaNode struct {
	t  *Tree
	id NodeID
}

func (n arenaNode) data() *nodeData { return &n.t.nodes[n.id] }

func (n arenaNode) Kind() string      { return n.data().kind }
func (n arenaNode) IsNamed() bool     { return n.data().named }
func (n arenaNode) StartByte() int    { return n.data().start }
func (n arenaNode) EndByte() int      { return n.data().end }
func (n arenaNode) StartPoint() Point { return n.t.point(n.data().start) }
func (n arenaNode) EndPoint() Point   { return n.t.point(n.data().end) }
func (n arenaNode) Parent() Node      { return n.t.node(n.data().parent) }
func (n arenaNode) ChildCount() int   { return len(n.data().children) }

func (n arenaNode) NamedChildCount() int { return len(n.data().namedChilds) }

func (n arenaNode) Child(i int) Node {
	children := n.data().children
	if i < 0 || i >= len(children) {
		return nil
	}
	return n.t.node(children[i])
}

func (n arenaNode) NamedChild(i int) Node {
	named := n.data().namedChilds
	if i < 0 || i >= len(named) {
		return nil
	}
	return n.t.node(named[i])
}

func (n arenaNode) ChildByFieldName(name string) Node {
	for _, c := range n.data().children {
		if n.t.nodes[c].field == name {
			return n.t.node(c)
		}
	}
	return nil
}

func (n arenaNode) NextNamedSibling() Node {
	d := n.data()
	if d.parent == noNode {
		return nil
	}
	siblings := n.t.nodes[d.parent].children
	for i := d.childIdx + 1; i < len(siblings); i++ {
		if n.t.nodes[siblings[i]].named {
			return n.t.node(siblings[i])
		}
	}
	return nil
}

func (n arenaNode) Equal(other Node) bool {
	o, ok := other.(arenaNode)
	return ok && o.t == n.t && o.id == n.id
}
