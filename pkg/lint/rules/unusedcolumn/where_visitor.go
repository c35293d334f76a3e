package unusedcolumn

import "github.com/leapstack-labs/bqlint/pkg/syntax"

// conditionKinds are the SELECT clauses whose column references count as
// usage of the SELECT's tables.
var conditionKinds = []string{
	syntax.KindWhereClause,
	syntax.KindGroupByClause,
	syntax.KindHavingClause,
	syntax.KindWindowClause,
}

// markConditions marks columns referenced in filter, grouping, named
// window and ORDER BY clauses, and in the join conditions and UNNEST
// arguments of a FROM clause.
func markConditions(n syntax.Node, ctx *Context) {
	switch {
	case isReferenceKind(n.Kind(), conditionKinds):
		markReferences(n, enclosingSelectScope(n, ctx), ctx, scope.resolvePrefix, columnKinds...)
	case n.Kind() == syntax.KindOrderByClause:
		markReferences(n, orderByScope(n, ctx), ctx, scope.resolvePrefix, columnKinds...)
	case n.Kind() == syntax.KindFromClause:
		markFromClause(n, ctx)
	}
}

// markFromClause marks the join conditions and UNNEST arguments of one
// FROM clause against its scope. Subqueries are handled by their own FROM
// clauses.
func markFromClause(from syntax.Node, ctx *Context) {
	s := ctx.scopeOf(from)
	syntax.Walk(from, func(c syntax.Node) bool {
		switch c.Kind() {
		case syntax.KindSubquery:
			return false
		case syntax.KindJoinCondition, syntax.KindUnnestClause, syntax.KindUnnestOperator:
			markReferences(c, s, ctx, scope.resolvePrefix, columnKinds...)
			return false
		}
		return true
	})
}

// orderByScope is the scope of the first SELECT for a query-level ORDER
// BY, and of the enclosing SELECT for a window or aggregate ORDER BY.
func orderByScope(n syntax.Node, ctx *Context) scope {
	if parent := n.Parent(); parent != nil && parent.Kind() == syntax.KindQueryExpr {
		sel := syntax.FindChild(parent, syntax.KindSelect)
		if sel == nil {
			return scope{}
		}
		return ctx.scopeOf(syntax.FindChild(sel, syntax.KindFromClause))
	}
	return enclosingSelectScope(n, ctx)
}
