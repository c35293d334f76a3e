package unusedcolumn

import "github.com/leapstack-labs/bqlint/pkg/syntax"

// markQualify marks columns referenced in a QUALIFY clause. QUALIFY sits
// beside the select list, so its scope is the parent SELECT's FROM clause.
func markQualify(n syntax.Node, ctx *Context) {
	if n.Kind() != syntax.KindQualifyClause {
		return
	}
	sel := syntax.FindAncestor(n, syntax.KindSelect)
	if sel == nil {
		return
	}
	s := ctx.scopeOf(syntax.FindChild(sel, syntax.KindFromClause))
	markReferences(n, s, ctx, scope.resolve, columnKinds...)
}
