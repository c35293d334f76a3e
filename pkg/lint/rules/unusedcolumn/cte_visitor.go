package unusedcolumn

import "github.com/leapstack-labs/bqlint/pkg/syntax"

// collectCTE registers the output columns of a cte node. CTEs are visited
// in document order, so every CTE a definition reads from is known already.
func collectCTE(n syntax.Node, ctx *Context) {
	if n.Kind() != syntax.KindCTE {
		return
	}
	name := cteName(n, ctx.source)
	if name == "" {
		return
	}
	list := cteSelectList(n)
	if list == nil {
		return
	}
	ctx.AddCTE(name, extractColumns(list, ctx))
}

// cteSelectList finds the select list of the SELECT defining a CTE: a
// select child, or the first select of a query_expr child.
func cteSelectList(cte syntax.Node) syntax.Node {
	for i := 0; i < cte.NamedChildCount(); i++ {
		child := cte.NamedChild(i)
		switch child.Kind() {
		case syntax.KindSelect:
			return syntax.FindChild(child, syntax.KindSelectList)
		case syntax.KindQueryExpr:
			return syntax.FindChild(syntax.FindChild(child, syntax.KindSelect), syntax.KindSelectList)
		}
	}
	return nil
}

// extractColumns builds the columns a select list defines, resolving each
// against the FROM clause that follows it.
func extractColumns(list syntax.Node, ctx *Context) []ColumnInfo {
	s := ctx.scopeOf(list.NextNamedSibling())

	var columns []ColumnInfo
	for i := 0; i < list.NamedChildCount(); i++ {
		item := list.NamedChild(i)
		switch item.Kind() {
		case syntax.KindSelectExpression:
			columns = append(columns, expressionColumn(item, s, ctx))
		case syntax.KindSelectAll:
			at := item.StartPoint()
			starColumns(item, s, ctx, func(table string, col ColumnInfo) {
				col.TableName = table
				col.Row = at.Row + 1
				col.Col = at.Column + 1
				columns = append(columns, col)
			})
		}
	}
	return columns
}

// expressionColumn builds the column of one select_expression.
//
// Without an alias the output name is the base column name of the
// expression, and the original name is recorded when the two differ. With
// an alias the output name is the alias and the original name is the base
// column name of the aliased expression.
func expressionColumn(item syntax.Node, s scope, ctx *Context) ColumnInfo {
	var name, ref, original string
	if alias := syntax.FindChild(item, syntax.KindAsAlias); alias != nil {
		if count := alias.NamedChildCount(); count > 0 {
			name = ctx.Text(alias.NamedChild(count - 1))
		}
		ref = name
		if expr := item.NamedChild(0); expr != nil && !expr.Equal(alias) {
			ref = ctx.Text(expr)
		}
		original = ExtractColumnName(ref)
	} else {
		ref = ctx.Text(item)
		name = ExtractColumnName(ref)
		if name != ref {
			original = name
		}
	}
	return NewColumnInfo(s.resolve(ref, ctx), name, original, item.StartPoint())
}
