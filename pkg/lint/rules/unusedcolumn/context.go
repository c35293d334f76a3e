package unusedcolumn

import "github.com/leapstack-labs/bqlint/pkg/syntax"

// Context is the mutable state of one statement's analysis. Visitors read
// CTE schemas from it and record usage through it.
type Context struct {
	source     string
	graph      *DependencyGraph
	cteColumns map[string][]ColumnInfo
	scopes     map[int]scope // by FROM clause start byte
}

// NewContext creates an empty context over source.
func NewContext(source string) *Context {
	return &Context{
		source:     source,
		graph:      NewDependencyGraph(),
		cteColumns: make(map[string][]ColumnInfo),
		scopes:     make(map[int]scope),
	}
}

// Source returns the analyzed text.
func (c *Context) Source() string { return c.source }

// Graph returns the dependency graph.
func (c *Context) Graph() *DependencyGraph { return c.graph }

// Text returns the source text of n.
func (c *Context) Text(n syntax.Node) string {
	return syntax.Text(n, c.source)
}

// AddCTE registers a CTE's columns. A name already registered keeps its
// first definition.
func (c *Context) AddCTE(name string, columns []ColumnInfo) {
	if c.graph.AddCTE(name, columns) {
		c.cteColumns[name] = columns
	}
}

// HasCTE reports whether name is a registered CTE.
func (c *Context) HasCTE(name string) bool {
	_, ok := c.cteColumns[name]
	return ok
}

// CTEColumns returns the columns of a registered CTE.
func (c *Context) CTEColumns(name string) ([]ColumnInfo, bool) {
	cols, ok := c.cteColumns[name]
	return cols, ok
}

// MarkUsed marks column as used in table.
func (c *Context) MarkUsed(table, column string) {
	c.graph.MarkColumnUsed(table, column)
}

// CollectUnused returns the unused columns ordered by position.
func (c *Context) CollectUnused() []ColumnInfo {
	return c.graph.CollectUnused()
}
