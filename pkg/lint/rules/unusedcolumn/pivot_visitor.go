package unusedcolumn

import "github.com/leapstack-labs/bqlint/pkg/syntax"

var pivotKinds = []string{syntax.KindField, syntax.KindIdentifier, syntax.KindInputColumn}

// markPivot marks the columns a PIVOT aggregates and pivots on, and the
// columns an UNPIVOT folds.
func markPivot(n syntax.Node, ctx *Context) {
	if n.Kind() != syntax.KindPivotOperator && n.Kind() != syntax.KindUnpivotOperator {
		return
	}
	markReferences(n, pivotScope(n, ctx), ctx, scope.resolve, pivotKinds...)
}

// pivotScope returns the scope of the nearest FROM clause around n, or of
// the FROM clause of the nearest SELECT that has one.
func pivotScope(n syntax.Node, ctx *Context) scope {
	for p := n.Parent(); p != nil; p = p.Parent() {
		switch p.Kind() {
		case syntax.KindFromClause:
			return ctx.scopeOf(p)
		case syntax.KindSelect:
			if from := syntax.FindChild(p, syntax.KindFromClause); from != nil {
				return ctx.scopeOf(from)
			}
		}
	}
	return scope{}
}
