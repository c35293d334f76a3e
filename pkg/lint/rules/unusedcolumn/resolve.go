package unusedcolumn

import (
	"slices"
	"strings"

	"github.com/leapstack-labs/bqlint/pkg/syntax"
)

// ExtractColumnName strips qualification: "t.col" becomes "col".
func ExtractColumnName(ref string) string {
	if i := strings.LastIndexByte(ref, '.'); i >= 0 {
		return ref[i+1:]
	}
	return ref
}

// ExtractTableName returns the first segment: "t.col" becomes "t".
func ExtractTableName(ref string) string {
	if i := strings.IndexByte(ref, '.'); i >= 0 {
		return ref[:i]
	}
	return ref
}

// ExtractTables lists the tables of a FROM clause in order, plus an alias
// to table map. Any node other than a from_clause yields empty results.
func ExtractTables(from syntax.Node, source string) (tables []string, aliases map[string]string) {
	aliases = make(map[string]string)
	if from == nil || from.Kind() != syntax.KindFromClause {
		return nil, aliases
	}

	syntax.Walk(from, func(n syntax.Node) bool {
		if n.Kind() != syntax.KindFromItem {
			return true
		}
		first := n.NamedChild(0)
		if first == nil || first.Kind() != syntax.KindIdentifier {
			return true
		}
		table := syntax.Text(first, source)
		tables = append(tables, table)

		if alias := syntax.FindChild(n, syntax.KindAsAlias); alias != nil {
			if count := alias.NamedChildCount(); count > 0 {
				aliases[syntax.Text(alias.NamedChild(count-1), source)] = table
			}
		}
		return true
	})
	return tables, aliases
}

// FindOriginalTable resolves a column reference to the table that owns it,
// or "" when it cannot be traced.
//
// A qualified reference resolves its prefix through aliases and is accepted
// when it names an in-scope table or a known CTE. Otherwise tables are
// scanned in FROM order: the first CTE defining the base name wins, and a
// table without a known schema is taken as soon as it is reached.
func FindOriginalTable(ref string, tables []string, aliases map[string]string, cteColumns map[string][]ColumnInfo) string {
	if strings.Contains(ref, ".") {
		table := ExtractTableName(ref)
		if actual, ok := aliases[table]; ok {
			table = actual
		}
		if _, isCTE := cteColumns[table]; isCTE || slices.Contains(tables, table) {
			return table
		}
	}

	base := ExtractColumnName(ref)
	for _, table := range tables {
		cols, ok := cteColumns[table]
		if !ok {
			return table
		}
		for _, col := range cols {
			if ExtractColumnName(col.ColumnName) == base {
				return table
			}
		}
	}
	return ""
}

// isFunctionName reports whether n names the callee of a function call.
func isFunctionName(n syntax.Node) bool {
	parent := n.Parent()
	if parent == nil || parent.Kind() != syntax.KindFunctionCall {
		return false
	}
	for _, field := range []string{syntax.FieldFunction, syntax.FieldName} {
		if callee := parent.ChildByFieldName(field); callee != nil {
			return callee.Equal(n)
		}
	}
	first := parent.Child(0)
	return first != nil && first.Equal(n)
}
