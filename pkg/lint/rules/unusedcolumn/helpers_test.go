package unusedcolumn

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/bqlint/pkg/parser"
	"github.com/leapstack-labs/bqlint/pkg/syntax"
)

func parse(t *testing.T, sql string) syntax.Node {
	t.Helper()
	tree, err := parser.Parse(sql)
	require.NoError(t, err)
	return tree.Root()
}

// findAll returns every node of kind in pre-order.
func findAll(root syntax.Node, kind string) []syntax.Node {
	var found []syntax.Node
	syntax.Walk(root, func(n syntax.Node) bool {
		if n.Kind() == kind {
			found = append(found, n)
		}
		return true
	})
	return found
}

func findFirst(t *testing.T, root syntax.Node, kind string) syntax.Node {
	t.Helper()
	found := findAll(root, kind)
	require.NotEmpty(t, found, "no %s node", kind)
	return found[0]
}

// runVisitors walks sql with the given visitors and returns the context.
func runVisitors(t *testing.T, sql string, visits ...visitFunc) *Context {
	t.Helper()
	root := parse(t, sql)
	ctx := NewContext(sql)
	syntax.Walk(root, func(n syntax.Node) bool {
		for _, visit := range visits {
			visit(n, ctx)
		}
		return true
	})
	return ctx
}
