package parser_test

import (
	"strings"
	"testing"

	"github.com/leapstack-labs/bqlint/pkg/parser"
	"github.com/leapstack-labs/bqlint/pkg/syntax"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sexp renders the named structure of n in tree-sitter test notation.
func sexp(n syntax.Node) string {
	var sb strings.Builder
	sb.WriteString("(")
	sb.WriteString(n.Kind())
	for i := 0; i < n.NamedChildCount(); i++ {
		sb.WriteString(" ")
		sb.WriteString(sexp(n.NamedChild(i)))
	}
	sb.WriteString(")")
	return sb.String()
}

// findKind returns the first node of kind in pre-order.
func findKind(root syntax.Node, kind string) syntax.Node {
	var found syntax.Node
	syntax.Walk(root, func(n syntax.Node) bool {
		if found != nil {
			return false
		}
		if n.Kind() == kind {
			found = n
			return false
		}
		return true
	})
	return found
}

func mustParse(t *testing.T, sql string) *syntax.Tree {
	t.Helper()
	tree, err := parser.Parse(sql)
	require.NoError(t, err)
	require.NotNil(t, tree)
	require.False(t, tree.HasError())
	return tree
}

// ---------- Structure Tests ----------

func TestParse_Structure(t *testing.T) {
	tests := []struct {
		name string
		sql  string
		kind string // node rendered
		want string
	}{
		{
			name: "aliases",
			sql:  "SELECT a, t.b AS c FROM t",
			kind: syntax.KindSelect,
			want: "(select (select_list (select_expression (identifier)) (select_expression (field) (as_alias (identifier)))) (from_clause (from_item (identifier))))",
		},
		{
			name: "implicit alias",
			sql:  "SELECT a x FROM t",
			kind: syntax.KindSelect,
			want: "(select (select_list (select_expression (identifier) (as_alias (identifier)))) (from_clause (from_item (identifier))))",
		},
		{
			name: "trailing comma",
			sql:  "SELECT a, FROM t",
			kind: syntax.KindSelect,
			want: "(select (select_list (select_expression (identifier))) (from_clause (from_item (identifier))))",
		},
		{
			name: "star except",
			sql:  "SELECT * EXCEPT (a) FROM t",
			kind: syntax.KindSelect,
			want: "(select (select_list (select_all (select_except (identifier)))) (from_clause (from_item (identifier))))",
		},
		{
			name: "qualified star",
			sql:  "SELECT t.* FROM t",
			kind: syntax.KindSelect,
			want: "(select (select_list (select_all (identifier))) (from_clause (from_item (identifier))))",
		},
		{
			name: "where",
			sql:  "SELECT a FROM t WHERE b = 1",
			kind: syntax.KindSelect,
			want: "(select (select_list (select_expression (identifier))) (from_clause (from_item (identifier))) (where_clause (binary_expression (identifier) (number))))",
		},
		{
			name: "group by and having",
			sql:  "SELECT a, COUNT(*) FROM t GROUP BY a HAVING COUNT(*) > 1",
			kind: syntax.KindSelect,
			want: "(select (select_list (select_expression (identifier)) (select_expression (function_call (identifier)))) (from_clause (from_item (identifier))) (group_by_clause (identifier)) (having_clause (binary_expression (function_call (identifier)) (number))))",
		},
		{
			name: "left join on",
			sql:  "SELECT a FROM t1 AS x LEFT JOIN t2 y ON x.id = y.id",
			kind: syntax.KindFromClause,
			want: "(from_clause (from_item (join_operation (from_item (identifier) (as_alias (identifier))) (join_type) (from_item (identifier) (as_alias (identifier))) (join_condition (binary_expression (field) (field))))))",
		},
		{
			name: "join using",
			sql:  "SELECT a FROM t1 JOIN t2 USING (id)",
			kind: syntax.KindFromClause,
			want: "(from_clause (from_item (join_operation (from_item (identifier)) (from_item (identifier)) (join_condition (identifier)))))",
		},
		{
			name: "unnest with offset",
			sql:  "SELECT x FROM t, UNNEST(t.arr) AS x WITH OFFSET off",
			kind: syntax.KindFromClause,
			want: "(from_clause (from_item (identifier)) (from_item (unnest_clause (field) (as_alias (identifier)) (as_alias (identifier)))))",
		},
		{
			name: "subquery",
			sql:  "SELECT a FROM (SELECT a FROM t) s",
			kind: syntax.KindFromClause,
			want: "(from_clause (from_item (subquery (query_expr (select (select_list (select_expression (identifier))) (from_clause (from_item (identifier)))))) (as_alias (identifier))))",
		},
		{
			name: "pivot",
			sql:  "SELECT * FROM t PIVOT(SUM(v) FOR m IN ('Jan' AS jan, 'Feb'))",
			kind: syntax.KindFromItem,
			want: "(from_item (identifier) (pivot_operator (function_call (identifier) (identifier)) (input_column) (pivot_value (string) (as_alias (identifier))) (pivot_value (string))))",
		},
		{
			name: "unpivot",
			sql:  "SELECT * FROM t UNPIVOT(sales FOR quarter IN (q1, q2 AS 'Q2'))",
			kind: syntax.KindFromItem,
			want: "(from_item (identifier) (unpivot_operator (identifier) (identifier) (unpivot_value (identifier)) (unpivot_value (identifier) (string))))",
		},
		{
			name: "tablesample",
			sql:  "SELECT a FROM t AS x TABLESAMPLE SYSTEM (10 PERCENT) WHERE a > 1",
			kind: syntax.KindFromItem,
			want: "(from_item (identifier) (as_alias (identifier)) (tablesample_clause (number)))",
		},
		{
			name: "cte",
			sql:  "WITH a AS (SELECT x FROM t) SELECT x FROM a",
			kind: syntax.KindQueryExpr,
			want: "(query_expr (with_clause (cte (identifier) (query_expr (select (select_list (select_expression (identifier))) (from_clause (from_item (identifier))))))) (select (select_list (select_expression (identifier))) (from_clause (from_item (identifier)))))",
		},
		{
			name: "set operation with order and limit",
			sql:  "SELECT a FROM t UNION ALL SELECT a FROM u ORDER BY a LIMIT 10",
			kind: syntax.KindQueryExpr,
			want: "(query_expr (select (select_list (select_expression (identifier))) (from_clause (from_item (identifier)))) (select (select_list (select_expression (identifier))) (from_clause (from_item (identifier)))) (order_by_clause (order_by_item (identifier))) (limit_clause (number)))",
		},
		{
			name: "window function",
			sql:  "SELECT ROW_NUMBER() OVER (PARTITION BY a ORDER BY b DESC) AS rn FROM t",
			kind: syntax.KindSelectExpression,
			want: "(select_expression (function_call (identifier) (over_clause (window_specification (partition_by_clause (identifier)) (order_by_clause (order_by_item (identifier)))))) (as_alias (identifier)))",
		},
		{
			name: "qualify",
			sql:  "SELECT a FROM t QUALIFY ROW_NUMBER() OVER (PARTITION BY a) = 1",
			kind: syntax.KindQualifyClause,
			want: "(qualify_clause (binary_expression (function_call (identifier) (over_clause (window_specification (partition_by_clause (identifier))))) (number)))",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree := mustParse(t, tt.sql)
			n := findKind(tree.Root(), tt.kind)
			require.NotNil(t, n, "no %s node", tt.kind)
			assert.Equal(t, tt.want, sexp(n))
		})
	}
}

func TestParse_Expressions(t *testing.T) {
	tests := []struct {
		name string
		sql  string
		kind string
		want string
	}{
		{
			name: "in and between",
			sql:  "SELECT 1 FROM t WHERE a IN (1, 2) AND b NOT BETWEEN 1 AND 2",
			kind: syntax.KindWhereClause,
			want: "(where_clause (binary_expression (in_expression (identifier) (number) (number)) (between_expression (identifier) (number) (number))))",
		},
		{
			name: "is null and in unnest",
			sql:  "SELECT 1 FROM t WHERE x IS NOT NULL OR y IN UNNEST(arr)",
			kind: syntax.KindWhereClause,
			want: "(where_clause (binary_expression (is_expression (identifier) (null)) (in_expression (identifier) (unnest_operator (identifier)))))",
		},
		{
			name: "precedence",
			sql:  "SELECT a + b * c FROM t",
			kind: syntax.KindSelectExpression,
			want: "(select_expression (binary_expression (identifier) (binary_expression (identifier) (identifier))))",
		},
		{
			name: "case",
			sql:  "SELECT CASE WHEN a > 1 THEN 'x' ELSE 'y' END FROM t",
			kind: syntax.KindSelectExpression,
			want: "(select_expression (case_expression (binary_expression (identifier) (number)) (string) (string)))",
		},
		{
			name: "casts",
			sql:  "SELECT CAST(a AS INT64), SAFE_CAST(b AS ARRAY<STRUCT<c INT64>>) FROM t",
			kind: syntax.KindSelectList,
			want: "(select_list (select_expression (cast_expression (identifier) (type))) (select_expression (cast_expression (identifier) (type))))",
		},
		{
			name: "typed literal and interval",
			sql:  "SELECT DATE_ADD(DATE '2024-01-01', INTERVAL 1 DAY) FROM t",
			kind: syntax.KindSelectExpression,
			want: "(select_expression (function_call (identifier) (typed_literal (string)) (interval_expression (number) (datetime_part))))",
		},
		{
			name: "access paths",
			sql:  "SELECT arr[OFFSET(0)], s.x.y, STRUCT(1 AS a).a FROM t",
			kind: syntax.KindSelectList,
			want: "(select_list (select_expression (array_element_access (identifier) (function_call (identifier) (number)))) (select_expression (field)) (select_expression (field_access (struct_expression (number) (as_alias (identifier))) (field_name))))",
		},
		{
			name: "exists subquery",
			sql:  "SELECT 1 FROM t WHERE EXISTS (SELECT 1 FROM u)",
			kind: syntax.KindWhereClause,
			want: "(where_clause (exists_expression (subquery (query_expr (select (select_list (select_expression (number))) (from_clause (from_item (identifier))))))))",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree := mustParse(t, tt.sql)
			n := findKind(tree.Root(), tt.kind)
			require.NotNil(t, n, "no %s node", tt.kind)
			assert.Equal(t, tt.want, sexp(n))
		})
	}
}

func TestParse_Text(t *testing.T) {
	tests := []struct {
		name string
		sql  string
		kind string
		want string
	}{
		{"backtick table", "SELECT a FROM `proj.ds.t`", syntax.KindFromItem, "`proj.ds.t`"},
		{"hyphenated project", "SELECT a FROM my-project.dataset.tbl", syntax.KindFromItem, "my-project.dataset.tbl"},
		{"nested type", "SELECT CAST(b AS ARRAY<STRUCT<c INT64>>) FROM t", syntax.KindType, "ARRAY<STRUCT<c INT64>>"},
		{"qualified column", "SELECT t.a.b FROM t", syntax.KindField, "t.a.b"},
		{"pivot column", "SELECT * FROM t PIVOT(SUM(v) FOR t.m IN ('a'))", syntax.KindInputColumn, "t.m"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree := mustParse(t, tt.sql)
			n := findKind(tree.Root(), tt.kind)
			require.NotNil(t, n)
			if tt.kind == syntax.KindFromItem {
				n = n.NamedChild(0)
			}
			assert.Equal(t, tt.want, syntax.Text(n, tree.Source()))
		})
	}
}

func TestParse_Fields(t *testing.T) {
	tree := mustParse(t, "WITH base AS (SELECT 1 AS x) SELECT COUNT(x) FROM base")
	src := tree.Source()

	cte := findKind(tree.Root(), syntax.KindCTE)
	require.NotNil(t, cte)
	name := cte.ChildByFieldName(syntax.FieldAliasName)
	require.NotNil(t, name)
	assert.Equal(t, "base", syntax.Text(name, src))

	call := findKind(tree.Root(), syntax.KindFunctionCall)
	require.NotNil(t, call)
	fn := call.ChildByFieldName(syntax.FieldFunction)
	require.NotNil(t, fn)
	assert.Equal(t, "COUNT", syntax.Text(fn, src))
	assert.True(t, fn.Equal(call.Child(0)))
}

func TestParse_Positions(t *testing.T) {
	tree := mustParse(t, "SELECT\n  a FROM t")
	id := findKind(tree.Root(), syntax.KindIdentifier)
	require.NotNil(t, id)
	assert.Equal(t, syntax.Point{Row: 1, Column: 2}, id.StartPoint())
	assert.Equal(t, syntax.Point{Row: 1, Column: 3}, id.EndPoint())
}

// ---------- Statement Tests ----------

func TestParse_Statements(t *testing.T) {
	tests := []struct {
		name  string
		sql   string
		kinds []string
	}{
		{"multiple queries", "SELECT 1; SELECT 2;", []string{syntax.KindQueryStatement, syntax.KindQueryStatement}},
		{"script statement", "DECLARE x INT64 DEFAULT 1; SELECT x", []string{syntax.KindUnsupported, syntax.KindQueryStatement}},
		{"create table", "CREATE OR REPLACE TABLE ds.t AS SELECT 1 AS x", []string{syntax.KindCreateTableStatement}},
		{"insert", "INSERT INTO ds.t (a, b) SELECT a, b FROM s", []string{syntax.KindInsertStatement}},
		{"empty", "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree := mustParse(t, tt.sql)
			root := tree.Root()
			assert.Equal(t, syntax.KindSourceFile, root.Kind())

			var kinds []string
			for i := 0; i < root.NamedChildCount(); i++ {
				kinds = append(kinds, root.NamedChild(i).Kind())
			}
			assert.Equal(t, tt.kinds, kinds)
		})
	}
}

func TestParse_CreateTable(t *testing.T) {
	tree := mustParse(t, "CREATE OR REPLACE TABLE ds.t AS WITH a AS (SELECT 1 AS x) SELECT x FROM a")
	stmt := tree.Root().NamedChild(0)
	require.Equal(t, syntax.KindCreateTableStatement, stmt.Kind())

	name := stmt.ChildByFieldName(syntax.FieldName)
	require.NotNil(t, name)
	assert.Equal(t, "ds.t", syntax.Text(name, tree.Source()))
	assert.Equal(t,
		"(create_table_statement (identifier) (query_expr (with_clause (cte (identifier) (query_expr (select (select_list (select_expression (number) (as_alias (identifier)))))))) (select (select_list (select_expression (identifier))) (from_clause (from_item (identifier))))))",
		sexp(stmt))
}

func TestParse_Insert(t *testing.T) {
	tree := mustParse(t, "INSERT INTO ds.t (a, b) SELECT a, b FROM s")
	stmt := tree.Root().NamedChild(0)
	assert.Equal(t,
		"(insert_statement (identifier) (identifier) (identifier) (query_expr (select (select_list (select_expression (identifier)) (select_expression (identifier))) (from_clause (from_item (identifier))))))",
		sexp(stmt))
	table := stmt.ChildByFieldName(syntax.FieldTable)
	require.NotNil(t, table)
	assert.Equal(t, "ds.t", syntax.Text(table, tree.Source()))
}

// ---------- Error Tests ----------

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name      string
		sql       string
		wantErr   string
		wantError bool // ERROR node expected in the tree
	}{
		{"missing where expression", "SELECT a FROM t WHERE", "expected expression", false},
		{"unclosed paren", "SELECT (a FROM t", "unexpected token", true},
		{"missing cte body", "WITH a AS SELECT 1", "expected (", false},
		{"unterminated string", "SELECT 'abc", parser.ErrUnterminatedString, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree, err := parser.Parse(tt.sql)
			require.NotNil(t, tree)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
			assert.Equal(t, tt.wantError, tree.HasError())
		})
	}
}

func TestParse_DeepNesting(t *testing.T) {
	sql := "SELECT " + strings.Repeat("(", 2000) + "1" + strings.Repeat(")", 2000)
	tree, err := parser.Parse(sql)
	require.NotNil(t, tree)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nesting exceeds")
}
