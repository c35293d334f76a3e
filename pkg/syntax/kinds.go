package syntax

// Node kinds of the BigQuery grammar. The names match the tree-sitter
// BigQuery grammar so that either tree source satisfies the rules.
const (
	KindSourceFile = "source_file"

	// Statements
	KindQueryStatement       = "query_statement"
	KindCreateTableStatement = "create_table_statement"
	KindInsertStatement      = "insert_statement"
	KindUnsupported          = "unsupported_statement"

	// Query structure
	KindQueryExpr        = "query_expr"
	KindWithClause       = "with_clause"
	KindCTE              = "cte"
	KindSelect           = "select"
	KindSelectList       = "select_list"
	KindSelectExpression = "select_expression"
	KindSelectAll        = "select_all"
	KindSelectExcept     = "select_except"
	KindSelectReplace    = "select_replace"
	KindAsAlias          = "as_alias"

	// Clauses
	KindFromClause    = "from_clause"
	KindFromItem      = "from_item"
	KindJoinOperation = "join_operation"
	KindJoinType      = "join_type"
	KindJoinCondition = "join_condition"
	KindWhereClause   = "where_clause"
	KindGroupByClause = "group_by_clause"
	KindHavingClause  = "having_clause"
	KindQualifyClause = "qualify_clause"
	KindWindowClause  = "window_clause"
	KindNamedWindow   = "named_window"
	KindOrderByClause = "order_by_clause"
	KindOrderByItem   = "order_by_item"
	KindLimitClause   = "limit_clause"

	// FROM extensions
	KindUnnestClause    = "unnest_clause"
	KindUnnestOperator  = "unnest_operator"
	KindPivotOperator   = "pivot_operator"
	KindPivotValue      = "pivot_value"
	KindUnpivotOperator = "unpivot_operator"
	KindUnpivotValue    = "unpivot_value"
	KindInputColumn     = "input_column"
	KindTableSample     = "tablesample_clause"

	// Windows
	KindOverClause          = "over_clause"
	KindWindowSpecification = "window_specification"
	KindPartitionByClause   = "partition_by_clause"
	KindWindowFrameClause   = "window_frame_clause"

	// Expressions
	KindIdentifier         = "identifier"
	KindField              = "field"
	KindFieldName          = "field_name"
	KindFunctionCall       = "function_call"
	KindBinaryExpression   = "binary_expression"
	KindUnaryExpression    = "unary_expression"
	KindBetweenExpression  = "between_expression"
	KindInExpression       = "in_expression"
	KindIsExpression       = "is_expression"
	KindCaseExpression     = "case_expression"
	KindCastExpression     = "cast_expression"
	KindExtractExpression  = "extract_expression"
	KindIntervalExpression = "interval_expression"
	KindExistsExpression   = "exists_expression"
	KindParenthesized      = "parenthesized_expression"
	KindTupleExpression    = "tuple_expression"
	KindArrayExpression    = "array_expression"
	KindStructExpression   = "struct_expression"
	KindElementAccess      = "array_element_access"
	KindFieldAccess        = "field_access"
	KindSubquery           = "subquery"
	KindType               = "type"
	KindDatetimePart       = "datetime_part"

	// Literals
	KindNumber       = "number"
	KindString       = "string"
	KindBytes        = "bytes"
	KindBoolean      = "boolean"
	KindNull         = "null"
	KindParameter    = "parameter"
	KindTypedLiteral = "typed_literal"
)

// Field names attached to children.
const (
	FieldAliasName = "alias_name"
	FieldFunction  = "function"
	FieldName      = "name"
	FieldTable     = "table"
)
