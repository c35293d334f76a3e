package unusedcolumn

import (
	"strings"

	"github.com/leapstack-labs/bqlint/pkg/syntax"
)

// visitFunc inspects one node of the walk and updates the context.
type visitFunc func(n syntax.Node, ctx *Context)

// visitors run in this order on every node. The CTE collector must come
// first so a CTE's schema is known before anything consumes it.
var visitors = []visitFunc{
	collectCTE,
	markFinalSelectStar,
	markSelectList,
	markConditions,
	markQualify,
	markPivot,
}

// analyze walks one statement and returns its unused CTE columns.
func analyze(root syntax.Node, source string) []ColumnInfo {
	ctx := NewContext(source)
	syntax.Walk(root, func(n syntax.Node) bool {
		for _, visit := range visitors {
			visit(n, ctx)
		}
		return true
	})
	return ctx.CollectUnused()
}

// scope is the set of tables visible to a clause.
type scope struct {
	tables  []string
	aliases map[string]string
}

// scopeOf returns the scope of a FROM clause. Each clause is extracted
// once per statement; any other node yields an empty scope.
func (c *Context) scopeOf(from syntax.Node) scope {
	if from == nil || from.Kind() != syntax.KindFromClause {
		return scope{}
	}
	key := from.StartByte()
	if s, ok := c.scopes[key]; ok {
		return s
	}
	tables, aliases := ExtractTables(from, c.source)
	s := scope{tables: tables, aliases: aliases}
	c.scopes[key] = s
	return s
}

// resolve maps a reference to its owning table with FindOriginalTable.
func (s scope) resolve(ref string, ctx *Context) string {
	return FindOriginalTable(ref, s.tables, s.aliases, ctx.cteColumns)
}

// resolvePrefix is resolve, except that a qualified reference always
// resolves to its alias-expanded prefix.
func (s scope) resolvePrefix(ref string, ctx *Context) string {
	if strings.Contains(ref, ".") {
		prefix := ExtractTableName(ref)
		if table, ok := s.aliases[prefix]; ok {
			return table
		}
		return prefix
	}
	return s.resolve(ref, ctx)
}

// resolver is scope.resolve or scope.resolvePrefix.
type resolver func(s scope, ref string, ctx *Context) string

// markReferences marks every column reference below n whose kind is one of
// kinds. Function names are skipped.
func markReferences(n syntax.Node, s scope, ctx *Context, resolve resolver, kinds ...string) {
	forEachReference(n, kinds, func(ref syntax.Node) {
		text := ctx.Text(ref)
		if table := resolve(s, text, ctx); table != "" {
			ctx.MarkUsed(table, ExtractColumnName(text))
		}
	})
}

func forEachReference(n syntax.Node, kinds []string, fn func(ref syntax.Node)) {
	syntax.Walk(n, func(c syntax.Node) bool {
		if isReferenceKind(c.Kind(), kinds) && !isFunctionName(c) {
			fn(c)
		}
		return true
	})
}

var columnKinds = []string{syntax.KindField, syntax.KindIdentifier}

func isReferenceKind(kind string, kinds []string) bool {
	for _, k := range kinds {
		if k == kind {
			return true
		}
	}
	return false
}

// inCTE reports whether n is nested in a CTE definition.
func inCTE(n syntax.Node) bool {
	return syntax.HasAncestor(n, syntax.KindCTE)
}

// cteName returns the name a cte node defines.
func cteName(cte syntax.Node, source string) string {
	name := cte.ChildByFieldName(syntax.FieldAliasName)
	if name == nil {
		name = syntax.FindChild(cte, syntax.KindIdentifier)
	}
	return syntax.Text(name, source)
}

// enclosingSelectScope returns the scope of the nearest enclosing select
// that has a FROM clause.
func enclosingSelectScope(n syntax.Node, ctx *Context) scope {
	for p := syntax.FindAncestor(n, syntax.KindSelect); p != nil; p = syntax.FindAncestor(p, syntax.KindSelect) {
		if from := syntax.FindChild(p, syntax.KindFromClause); from != nil {
			return ctx.scopeOf(from)
		}
	}
	return scope{}
}

// starTables returns the tables a select_all expands over: the qualifier's
// table for "t.*", otherwise every table in scope.
func starTables(star syntax.Node, s scope, ctx *Context) []string {
	if q := star.NamedChild(0); q != nil && (q.Kind() == syntax.KindIdentifier || q.Kind() == syntax.KindField) {
		table := ctx.Text(q)
		if actual, ok := s.aliases[table]; ok {
			table = actual
		}
		if ctx.HasCTE(table) {
			return []string{table}
		}
	}
	return s.tables
}

// starExcept returns the column names removed by "* EXCEPT (...)".
func starExcept(star syntax.Node, source string) map[string]bool {
	except := syntax.FindChild(star, syntax.KindSelectExcept)
	if except == nil {
		return nil
	}
	names := make(map[string]bool)
	for i := 0; i < except.NamedChildCount(); i++ {
		names[syntax.Text(except.NamedChild(i), source)] = true
	}
	return names
}

// starColumns calls fn for every known column a select_all consumes.
func starColumns(star syntax.Node, s scope, ctx *Context, fn func(table string, col ColumnInfo)) {
	except := starExcept(star, ctx.source)
	for _, table := range starTables(star, s, ctx) {
		cols, _ := ctx.CTEColumns(table)
		for _, col := range cols {
			if except[col.ColumnName] {
				continue
			}
			fn(table, col)
		}
	}
}
