// Package token defines the lexical tokens of the BigQuery SQL subset
// understood by the parser.
//
// Reserved words of the core grammar are constants for switch performance.
// Dialect keywords that are only meaningful in some positions (QUALIFY,
// PIVOT, UNNEST, ...) are registered dynamically via Register().
package token

import "fmt"

// TokenType represents the type of a lexical token.
//
//nolint:revive // Accept stutter as token.TokenType is clear and widely used
type TokenType int32

//nolint:revive // TOKEN_* names are intentionally ALL_CAPS for SQL token conventions
const (
	// Special tokens
	EOF TokenType = iota
	ILLEGAL

	// Literals
	IDENT        // identifier
	QUOTED_IDENT // `identifier`
	NUMBER       // 123, 45.67, 1e10, 0x1F
	STRING       // 'hello', "hello", '''hello''', r'raw'
	BYTES        // b'bytes'
	PARAM        // @name, @@system_var, ?

	// Operators
	PLUS      // +
	MINUS     // -
	STAR      // *
	SLASH     // /
	PERCENT   // %
	DPIPE     // ||
	PIPE      // |
	AMP       // &
	CARET     // ^
	TILDE     // ~
	LSHIFT    // <<
	RSHIFT    // >>
	EQ        // =
	NE        // != or <>
	LT        // <
	GT        // >
	LE        // <=
	GE        // >=
	DOT       // .
	COMMA     // ,
	SEMICOLON // ;
	LPAREN    // (
	RPAREN    // )
	LBRACKET  // [
	RBRACKET  // ]

	// Reserved keywords (alphabetical)
	ALL
	AND
	AS
	ASC
	AT
	BETWEEN
	BY
	CASE
	CAST
	CREATE
	CROSS
	CURRENT
	DESC
	DISTINCT
	ELSE
	END
	EXCEPT
	EXCLUDE
	EXISTS
	EXTRACT
	FALSE
	FOLLOWING
	FOR
	FROM
	FULL
	GROUP
	HAVING
	IGNORE
	IN
	INNER
	INSERT
	INTERSECT
	INTERVAL
	INTO
	IS
	JOIN
	LEFT
	LIKE
	LIMIT
	NOT
	NULL
	NULLS
	OF
	OFFSET
	ON
	OR
	ORDER
	OUTER
	OVER
	PARTITION
	PRECEDING
	RANGE
	RECURSIVE
	RESPECT
	RIGHT
	ROLLUP
	ROWS
	SELECT
	TABLESAMPLE
	THEN
	TO
	TRUE
	UNBOUNDED
	UNION
	USING
	WHEN
	WHERE
	WINDOW // Named window definitions
	WITH

	// Sentinel - dynamic tokens start after this
	maxBuiltin TokenType = 999
)

// String returns a human-readable representation of the token type.
func (t TokenType) String() string {
	// Check dynamic tokens first
	if name, ok := getDynamicName(t); ok {
		return name
	}
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return fmt.Sprintf("TOKEN(%d)", t)
}

// tokenNames maps builtin token types to their string representations.
var tokenNames = map[TokenType]string{
	EOF:     "EOF",
	ILLEGAL: "ILLEGAL",

	IDENT:        "IDENT",
	QUOTED_IDENT: "QUOTED_IDENT",
	NUMBER:       "NUMBER",
	STRING:       "STRING",
	BYTES:        "BYTES",
	PARAM:        "PARAM",

	PLUS:      "+",
	MINUS:     "-",
	STAR:      "*",
	SLASH:     "/",
	PERCENT:   "%",
	DPIPE:     "||",
	PIPE:      "|",
	AMP:       "&",
	CARET:     "^",
	TILDE:     "~",
	LSHIFT:    "<<",
	RSHIFT:    ">>",
	EQ:        "=",
	NE:        "!=",
	LT:        "<",
	GT:        ">",
	LE:        "<=",
	GE:        ">=",
	DOT:       ".",
	COMMA:     ",",
	SEMICOLON: ";",
	LPAREN:    "(",
	RPAREN:    ")",
	LBRACKET:  "[",
	RBRACKET:  "]",

	ALL:         "ALL",
	AND:         "AND",
	AS:          "AS",
	ASC:         "ASC",
	AT:          "AT",
	BETWEEN:     "BETWEEN",
	BY:          "BY",
	CASE:        "CASE",
	CAST:        "CAST",
	CREATE:      "CREATE",
	CROSS:       "CROSS",
	CURRENT:     "CURRENT",
	DESC:        "DESC",
	DISTINCT:    "DISTINCT",
	ELSE:        "ELSE",
	END:         "END",
	EXCEPT:      "EXCEPT",
	EXCLUDE:     "EXCLUDE",
	EXISTS:      "EXISTS",
	EXTRACT:     "EXTRACT",
	FALSE:       "FALSE",
	FOLLOWING:   "FOLLOWING",
	FOR:         "FOR",
	FROM:        "FROM",
	FULL:        "FULL",
	GROUP:       "GROUP",
	HAVING:      "HAVING",
	IGNORE:      "IGNORE",
	IN:          "IN",
	INNER:       "INNER",
	INSERT:      "INSERT",
	INTERSECT:   "INTERSECT",
	INTERVAL:    "INTERVAL",
	INTO:        "INTO",
	IS:          "IS",
	JOIN:        "JOIN",
	LEFT:        "LEFT",
	LIKE:        "LIKE",
	LIMIT:       "LIMIT",
	NOT:         "NOT",
	NULL:        "NULL",
	NULLS:       "NULLS",
	OF:          "OF",
	OFFSET:      "OFFSET",
	ON:          "ON",
	OR:          "OR",
	ORDER:       "ORDER",
	OUTER:       "OUTER",
	OVER:        "OVER",
	PARTITION:   "PARTITION",
	PRECEDING:   "PRECEDING",
	RANGE:       "RANGE",
	RECURSIVE:   "RECURSIVE",
	RESPECT:     "RESPECT",
	RIGHT:       "RIGHT",
	ROLLUP:      "ROLLUP",
	ROWS:        "ROWS",
	SELECT:      "SELECT",
	TABLESAMPLE: "TABLESAMPLE",
	THEN:        "THEN",
	TO:          "TO",
	TRUE:        "TRUE",
	UNBOUNDED:   "UNBOUNDED",
	UNION:       "UNION",
	USING:       "USING",
	WHEN:        "WHEN",
	WHERE:       "WHERE",
	WINDOW:      "WINDOW",
	WITH:        "WITH",
}

// keywords maps lowercase keyword strings to their token types.
var keywords = map[string]TokenType{
	"all":         ALL,
	"and":         AND,
	"as":          AS,
	"asc":         ASC,
	"at":          AT,
	"between":     BETWEEN,
	"by":          BY,
	"case":        CASE,
	"cast":        CAST,
	"create":      CREATE,
	"cross":       CROSS,
	"current":     CURRENT,
	"desc":        DESC,
	"distinct":    DISTINCT,
	"else":        ELSE,
	"end":         END,
	"except":      EXCEPT,
	"exclude":     EXCLUDE,
	"exists":      EXISTS,
	"extract":     EXTRACT,
	"false":       FALSE,
	"following":   FOLLOWING,
	"for":         FOR,
	"from":        FROM,
	"full":        FULL,
	"group":       GROUP,
	"having":      HAVING,
	"ignore":      IGNORE,
	"in":          IN,
	"inner":       INNER,
	"insert":      INSERT,
	"intersect":   INTERSECT,
	"interval":    INTERVAL,
	"into":        INTO,
	"is":          IS,
	"join":        JOIN,
	"left":        LEFT,
	"like":        LIKE,
	"limit":       LIMIT,
	"not":         NOT,
	"null":        NULL,
	"nulls":       NULLS,
	"of":          OF,
	"offset":      OFFSET,
	"on":          ON,
	"or":          OR,
	"order":       ORDER,
	"outer":       OUTER,
	"over":        OVER,
	"partition":   PARTITION,
	"preceding":   PRECEDING,
	"range":       RANGE,
	"recursive":   RECURSIVE,
	"respect":     RESPECT,
	"right":       RIGHT,
	"rollup":      ROLLUP,
	"rows":        ROWS,
	"select":      SELECT,
	"tablesample": TABLESAMPLE,
	"then":        THEN,
	"to":          TO,
	"true":        TRUE,
	"unbounded":   UNBOUNDED,
	"union":       UNION,
	"using":       USING,
	"when":        WHEN,
	"where":       WHERE,
	"window":      WINDOW,
	"with":        WITH,
}

// LookupIdent returns the token type for the given lowercase identifier.
// If the identifier is a builtin keyword, the keyword token type is returned.
// Otherwise, IDENT is returned. Dynamic keywords are resolved separately
// through LookupDynamicKeyword.
func LookupIdent(ident string) TokenType {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return IDENT
}

// IsKeyword returns true if the token type is a builtin or dynamic keyword.
func IsKeyword(t TokenType) bool {
	return (t >= ALL && t <= WITH) || IsDynamic(t)
}

// IsOperator returns true if the token type is an operator or punctuation.
func IsOperator(t TokenType) bool {
	return t >= PLUS && t <= RBRACKET
}

// Token represents a lexical token with position information.
// Literal holds the raw source text of the token, quotes included.
type Token struct {
	Type    TokenType
	Literal string
	Pos     Position
}

// End returns the byte offset just past the token.
func (t Token) End() int {
	return t.Pos.Offset + len(t.Literal)
}
