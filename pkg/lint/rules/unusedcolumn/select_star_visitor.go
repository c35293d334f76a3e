package unusedcolumn

import "github.com/leapstack-labs/bqlint/pkg/syntax"

// markFinalSelectStar marks every column a star in a select list outside
// any CTE expands to.
func markFinalSelectStar(n syntax.Node, ctx *Context) {
	if n.Kind() != syntax.KindSelectList || inCTE(n) {
		return
	}
	var s *scope
	for i := 0; i < n.NamedChildCount(); i++ {
		star := n.NamedChild(i)
		if star.Kind() != syntax.KindSelectAll {
			continue
		}
		if s == nil {
			from := ctx.scopeOf(n.NextNamedSibling())
			s = &from
		}
		starColumns(star, *s, ctx, func(table string, col ColumnInfo) {
			ctx.MarkUsed(table, col.ColumnName)
		})
	}
}
