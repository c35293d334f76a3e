// Package unusedcolumn implements ST11 (structure.unused_cte_column), which
// flags columns a CTE defines but no later query stage consumes.
//
// # How it works
//
// A single pre-order walk over the statement drives a fixed list of
// visitors. The CTE collector records each CTE's output columns together
// with the table each column came from. The marking visitors resolve every
// column reference they find (SELECT lists, WHERE, JOIN conditions, ORDER BY,
// GROUP BY, HAVING, QUALIFY, PIVOT, UNNEST) against the enclosing FROM
// clause and mark the owning CTE column as used. References in the final
// SELECT are traced backwards through the chain of CTEs with a worklist,
// so a column is used as soon as any output depends on it.
//
// Columns that remain unmarked after the walk are reported as
// "Unused column: <name>", ordered by position.
//
// # Resolution
//
// Qualified references (t.col) resolve through the FROM clause's aliases.
// Unqualified references resolve to the first FROM table that is either a
// CTE defining the column or a table without a known schema. When two FROM
// tables define the same column, the first one listed wins.
//
// # Usage
//
// The rule registers itself with the lint registry on import:
//
//	import _ "github.com/leapstack-labs/bqlint/pkg/lint/rules/unusedcolumn"
//
// Check can also be called directly on any syntax tree:
//
//	tree, _ := parser.Parse(sql)
//	for _, d := range unusedcolumn.Check(tree.Root(), sql) {
//		fmt.Println(d)
//	}
package unusedcolumn
