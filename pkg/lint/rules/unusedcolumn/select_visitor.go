package unusedcolumn

import "github.com/leapstack-labs/bqlint/pkg/syntax"

// columnRef is one (table, column) pair of the reachability worklist.
type columnRef struct {
	table  string
	column string
}

// markSelectList marks the columns a select list consumes.
//
// Outside any CTE, the references of every output expression are roots
// of a backward walk that follows each column to the CTE it came from.
// Inside a CTE the references are marked directly; the walk continues
// when that CTE is itself consumed.
func markSelectList(n syntax.Node, ctx *Context) {
	if n.Kind() != syntax.KindSelect {
		return
	}
	list := syntax.FindChild(n, syntax.KindSelectList)
	if list == nil {
		return
	}
	s := ctx.scopeOf(list.NextNamedSibling())

	cte := syntax.FindAncestor(n, syntax.KindCTE)
	if cte == nil {
		markReachable(ctx, finalRoots(list, s, ctx))
		return
	}
	if cteName(cte, ctx.source) == "" {
		return
	}
	for i := 0; i < list.NamedChildCount(); i++ {
		item := list.NamedChild(i)
		switch item.Kind() {
		case syntax.KindSelectExpression:
			markReferences(item, s, ctx, scope.resolve, columnKinds...)
		case syntax.KindSelectAll:
			starColumns(item, s, ctx, func(table string, col ColumnInfo) {
				ctx.MarkUsed(table, col.ColumnName)
			})
		}
	}
}

// finalRoots collects the references of a final select list: every
// non-function column reference inside each output expression, and every
// column a star expands to.
func finalRoots(list syntax.Node, s scope, ctx *Context) []columnRef {
	var roots []columnRef
	for i := 0; i < list.NamedChildCount(); i++ {
		item := list.NamedChild(i)
		switch item.Kind() {
		case syntax.KindSelectExpression:
			forEachReference(item, columnKinds, func(ref syntax.Node) {
				text := ctx.Text(ref)
				if table := s.resolve(text, ctx); table != "" {
					roots = append(roots, columnRef{table: table, column: ExtractColumnName(text)})
				}
			})
		case syntax.KindSelectAll:
			starColumns(item, s, ctx, func(table string, col ColumnInfo) {
				roots = append(roots, columnRef{table: table, column: col.ColumnName})
			})
		}
	}
	return roots
}

// markReachable marks the roots and everything they derive from. The
// marked set doubles as the visited set, so each pair is expanded once.
func markReachable(ctx *Context, roots []columnRef) {
	queue := roots
	for len(queue) > 0 {
		ref := queue[0]
		queue = queue[1:]
		if ctx.graph.IsColumnUsed(ref.table, ref.column) {
			continue
		}
		ctx.MarkUsed(ref.table, ref.column)

		cols, _ := ctx.CTEColumns(ref.table)
		base := ExtractColumnName(ref.column)
		for _, col := range cols {
			if col.ColumnName != ref.column && ExtractColumnName(col.ColumnName) != base {
				continue
			}
			if col.TableName == "" {
				continue
			}
			if source := ExtractTableName(col.TableName); ctx.HasCTE(source) {
				queue = append(queue, columnRef{table: source, column: col.SourceName()})
			}
		}
	}
}
