package unusedcolumn

import "slices"

// CTENode holds the columns a CTE defines and the names marked used.
type CTENode struct {
	Columns []ColumnInfo
	used    map[string]struct{}
}

// IsUsed reports whether name was marked exactly as given.
func (n *CTENode) IsUsed(name string) bool {
	_, ok := n.used[name]
	return ok
}

// UsedNames returns the marked names in sorted order.
func (n *CTENode) UsedNames() []string {
	names := make([]string, 0, len(n.used))
	for name := range n.used {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// isColumnUsed applies the usage rule: the exact name is marked, or a
// marked entry has the same base name.
func (n *CTENode) isColumnUsed(col ColumnInfo) bool {
	if n.IsUsed(col.ColumnName) {
		return true
	}
	base := ExtractColumnName(col.ColumnName)
	for name := range n.used {
		if ExtractColumnName(name) == base {
			return true
		}
	}
	return false
}

// DependencyGraph maps CTE names to their column usage. CTEs iterate in
// insertion order.
type DependencyGraph struct {
	order []string
	nodes map[string]*CTENode
}

// NewDependencyGraph creates an empty graph.
func NewDependencyGraph() *DependencyGraph {
	return &DependencyGraph{nodes: make(map[string]*CTENode)}
}

// AddCTE inserts a CTE with its columns. The first definition of a name
// wins; AddCTE reports whether name was new.
func (g *DependencyGraph) AddCTE(name string, columns []ColumnInfo) bool {
	if _, exists := g.nodes[name]; exists {
		return false
	}
	g.nodes[name] = &CTENode{
		Columns: slices.Clone(columns),
		used:    make(map[string]struct{}),
	}
	g.order = append(g.order, name)
	return true
}

// MarkColumnUsed marks column as used in table. Unknown tables are ignored.
func (g *DependencyGraph) MarkColumnUsed(table, column string) {
	if n, ok := g.nodes[table]; ok {
		n.used[column] = struct{}{}
	}
}

// IsColumnUsed reports whether column was marked exactly in table.
func (g *DependencyGraph) IsColumnUsed(table, column string) bool {
	n, ok := g.nodes[table]
	return ok && n.IsUsed(column)
}

// Node returns the state of one CTE.
func (g *DependencyGraph) Node(name string) (*CTENode, bool) {
	n, ok := g.nodes[name]
	return n, ok
}

// Names returns the CTE names in insertion order.
func (g *DependencyGraph) Names() []string {
	return slices.Clone(g.order)
}

// Len returns the number of CTEs.
func (g *DependencyGraph) Len() int {
	return len(g.order)
}

// CollectUnused returns every unused column across all CTEs ordered by
// position.
func (g *DependencyGraph) CollectUnused() []ColumnInfo {
	var unused []ColumnInfo
	for _, name := range g.order {
		n := g.nodes[name]
		for _, col := range n.Columns {
			if !n.isColumnUsed(col) {
				unused = append(unused, col)
			}
		}
	}
	slices.SortStableFunc(unused, ColumnInfo.Compare)
	return unused
}
