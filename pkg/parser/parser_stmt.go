package parser

import (
	"fmt"

	"github.com/leapstack-labs/bqlint/pkg/syntax"
)

// Statement grammar:
//
//	source_file            → statement (";" statement)* [";"]
//	create_table_statement → CREATE ... (TABLE|VIEW) ... path ... [AS query_expr]
//	insert_statement       → INSERT [INTO] path ["(" identifier, ... ")"] query_expr
//	unsupported_statement  → any tokens up to ";"

// parseSourceFile parses all statements of the input.
func (p *Parser) parseSourceFile() syntax.NodeID {
	var l list
	for !p.check(TOKEN_EOF) {
		if p.check(TOKEN_SEMICOLON) {
			l.add(p.anon())
			continue
		}
		l.add(p.parseStatement())
		for !p.checkAny(TOKEN_SEMICOLON, TOKEN_EOF) {
			l.add(p.errorNode())
		}
	}
	return p.b.Node(syntax.KindSourceFile, l...)
}

// parseStatement dispatches on the leading keyword.
func (p *Parser) parseStatement() syntax.NodeID {
	switch {
	case startsQuery(p.token) || p.check(TOKEN_LPAREN):
		return p.build(syntax.KindQueryStatement, p.parseQueryExpr())
	case p.check(TOKEN_CREATE):
		return p.parseCreateTable()
	case p.check(TOKEN_INSERT):
		return p.parseInsert()
	default:
		return p.parseUnsupported()
	}
}

// parseCreateTable parses CREATE TABLE and CREATE VIEW statements. Column
// definitions and options are kept as anonymous tokens.
func (p *Parser) parseCreateTable() syntax.NodeID {
	var l list
	l.add(p.anon()) // CREATE

	for !p.checkAny(TOKEN_SEMICOLON, TOKEN_EOF) && !p.checkWord("TABLE") && !p.checkWord("VIEW") {
		l.add(p.anon())
	}
	if p.checkAny(TOKEN_SEMICOLON, TOKEN_EOF) {
		return p.node(syntax.KindUnsupported, l)
	}
	l.add(p.anon()) // TABLE or VIEW

	// IF NOT EXISTS
	if p.checkWord("IF") && p.checkPeek(TOKEN_NOT) {
		l.add(p.anon(), p.anon(), p.matchAnon(TOKEN_EXISTS))
	}
	if isName(p.token) {
		l.add(p.b.SetField(p.parseTablePath(), syntax.FieldName))
	}

	depth := 0
	for !p.checkAny(TOKEN_SEMICOLON, TOKEN_EOF) {
		if depth == 0 && p.check(TOKEN_AS) && (startsQuery(p.peek) || p.checkPeek(TOKEN_LPAREN)) {
			l.add(p.anon())
			l.add(p.parseQueryExpr())
			break
		}
		switch {
		case p.check(TOKEN_LPAREN):
			depth++
		case p.check(TOKEN_RPAREN) && depth > 0:
			depth--
		}
		l.add(p.anon())
	}
	return p.node(syntax.KindCreateTableStatement, l)
}

// parseInsert parses INSERT ... SELECT. VALUES lists are kept as
// anonymous tokens.
func (p *Parser) parseInsert() syntax.NodeID {
	var l list
	l.add(p.anon()) // INSERT
	l.add(p.matchAnon(TOKEN_INTO))
	if isName(p.token) {
		l.add(p.b.SetField(p.parseTablePath(), syntax.FieldTable))
	}
	if p.check(TOKEN_LPAREN) && !startsQuery(p.peek) {
		l.add(p.anon())
		for isWord(p.token) {
			l.add(p.leaf(syntax.KindIdentifier))
			if !p.check(TOKEN_COMMA) {
				break
			}
			l.add(p.anon())
		}
		l.add(p.expectAnon(TOKEN_RPAREN))
	}
	if startsQuery(p.token) || p.check(TOKEN_LPAREN) {
		l.add(p.parseQueryExpr())
	}
	for !p.checkAny(TOKEN_SEMICOLON, TOKEN_EOF) {
		l.add(p.anon())
	}
	return p.node(syntax.KindInsertStatement, l)
}

// parseUnsupported keeps a statement the linter does not analyze as a flat
// run of anonymous tokens.
func (p *Parser) parseUnsupported() syntax.NodeID {
	var l list
	for !p.checkAny(TOKEN_SEMICOLON, TOKEN_EOF) {
		l.add(p.anon())
	}
	return p.node(syntax.KindUnsupported, l)
}

// ---------- Query Expressions ----------

// Query grammar:
//
//	query_expr  → [with_clause] query_term (set_op query_term)*
//	              [order_by_clause] [limit_clause]
//	set_op      → (UNION | INTERSECT | EXCEPT) (ALL | DISTINCT)
//	with_clause → WITH [RECURSIVE] cte ("," cte)*
//	cte         → identifier AS "(" query_expr ")"

// parseQueryExpr parses a full query expression.
func (p *Parser) parseQueryExpr() syntax.NodeID {
	defer p.leave()
	if !p.enter() {
		return p.errorNode()
	}

	var l list
	if p.check(TOKEN_WITH) {
		l.add(p.parseWithClause())
	}
	p.parseQueryTerm(&l)
	for p.isSetOperator() {
		l.add(p.anon())
		if p.checkAny(TOKEN_ALL, TOKEN_DISTINCT) {
			l.add(p.anon())
		}
		p.parseQueryTerm(&l)
	}
	if p.check(TOKEN_ORDER) && p.checkPeek(TOKEN_BY) {
		l.add(p.parseOrderByClause())
	}
	if p.check(TOKEN_LIMIT) {
		l.add(p.parseLimitClause())
	}
	return p.node(syntax.KindQueryExpr, l)
}

// parseQueryTerm appends a SELECT or a parenthesized query to l.
func (p *Parser) parseQueryTerm(l *list) {
	switch {
	case p.check(TOKEN_SELECT):
		l.add(p.parseSelect())
	case p.check(TOKEN_LPAREN):
		l.add(p.anon())
		l.add(p.parseQueryExpr())
		p.closeParen(l)
	default:
		p.addError(fmt.Sprintf(ErrUnexpectedToken, describe(p.token), "SELECT"))
	}
}

func (p *Parser) isSetOperator() bool {
	switch {
	case p.checkAny(TOKEN_UNION, TOKEN_INTERSECT):
		return true
	case p.check(TOKEN_EXCEPT):
		return p.checkPeek(TOKEN_DISTINCT) || p.checkPeek(TOKEN_ALL)
	}
	return false
}

// parseWithClause parses WITH [RECURSIVE] cte, ...
func (p *Parser) parseWithClause() syntax.NodeID {
	var l list
	l.add(p.anon()) // WITH
	l.add(p.matchAnon(TOKEN_RECURSIVE))
	for {
		l.add(p.parseCTE())
		if !p.check(TOKEN_COMMA) {
			break
		}
		l.add(p.anon())
	}
	return p.node(syntax.KindWithClause, l)
}

// parseCTE parses name AS (query).
func (p *Parser) parseCTE() syntax.NodeID {
	if !isName(p.token) {
		p.addError(fmt.Sprintf(ErrUnexpectedToken, describe(p.token), "CTE name"))
		return none
	}
	var l list
	l.add(p.b.SetField(p.leaf(syntax.KindIdentifier), syntax.FieldAliasName))
	l.add(p.expectAnon(TOKEN_AS))
	if p.check(TOKEN_LPAREN) {
		l.add(p.anon())
		l.add(p.parseQueryExpr())
		p.closeParen(&l)
	} else {
		p.addError(fmt.Sprintf(ErrUnexpectedToken, describe(p.token), "("))
	}
	return p.node(syntax.KindCTE, l)
}

// closeParen appends the closing parenthesis, wrapping anything before it
// in ERROR nodes.
func (p *Parser) closeParen(l *list) {
	for !p.checkAny(TOKEN_RPAREN, TOKEN_SEMICOLON, TOKEN_EOF) {
		l.add(p.errorNode())
	}
	l.add(p.expectAnon(TOKEN_RPAREN))
}

// ---------- SELECT ----------

// SELECT grammar:
//
//	select            → SELECT [AS (STRUCT|VALUE)] [DISTINCT|ALL] select_list clause*
//	select_list       → select_item ("," select_item)* [","]
//	select_item       → select_all | select_expression
//	select_all        → [expr "."] "*" [select_except] [select_replace]
//	select_expression → expr [as_alias]
//	as_alias          → [AS] identifier

// parseSelect parses a SELECT and its clauses.
func (p *Parser) parseSelect() syntax.NodeID {
	var l list
	l.add(p.anon()) // SELECT
	if p.check(TOKEN_AS) && (p.peekWord("STRUCT") || p.peekWord("VALUE")) {
		l.add(p.anon(), p.anon())
	}
	if p.checkAny(TOKEN_DISTINCT, TOKEN_ALL) {
		l.add(p.anon())
	}
	l.add(p.parseSelectList())

	for {
		var clause syntax.NodeID
		switch {
		case p.check(TOKEN_FROM):
			clause = p.parseFromClause()
		case p.check(TOKEN_WHERE):
			clause = p.parseKeywordClause(syntax.KindWhereClause)
		case p.check(TOKEN_GROUP) && p.checkPeek(TOKEN_BY):
			clause = p.parseGroupByClause()
		case p.check(TOKEN_HAVING):
			clause = p.parseKeywordClause(syntax.KindHavingClause)
		case p.check(TOKEN_QUALIFY):
			clause = p.parseKeywordClause(syntax.KindQualifyClause)
		case p.check(TOKEN_WINDOW):
			clause = p.parseWindowClause()
		default:
			return p.node(syntax.KindSelect, l)
		}
		l.add(clause)
	}
}

// parseSelectList parses the comma-separated select items.
func (p *Parser) parseSelectList() syntax.NodeID {
	var l list
	for {
		item := p.parseSelectItem()
		if item == none {
			break
		}
		l.add(item)
		if !p.check(TOKEN_COMMA) {
			break
		}
		l.add(p.anon())
		if p.atClauseEnd() {
			break
		}
	}
	if len(l) == 0 {
		p.addError(fmt.Sprintf(ErrExpectedExpression, describe(p.token)))
	}
	return p.node(syntax.KindSelectList, l)
}

// atClauseEnd reports whether the current token ends a select list.
func (p *Parser) atClauseEnd() bool {
	switch p.token.Type {
	case TOKEN_FROM, TOKEN_WHERE, TOKEN_GROUP, TOKEN_HAVING, TOKEN_QUALIFY, TOKEN_WINDOW,
		TOKEN_ORDER, TOKEN_LIMIT, TOKEN_UNION, TOKEN_INTERSECT, TOKEN_RPAREN, TOKEN_SEMICOLON, TOKEN_EOF:
		return true
	}
	return p.isSetOperator()
}

// parseSelectItem parses one select item, or returns none without
// consuming input when no expression starts here.
func (p *Parser) parseSelectItem() syntax.NodeID {
	if p.check(TOKEN_STAR) {
		var l list
		l.add(p.anon())
		p.parseStarModifiers(&l)
		return p.node(syntax.KindSelectAll, l)
	}

	expr := p.parseExpr()
	if expr == none {
		return none
	}
	if p.check(TOKEN_DOT) && p.checkPeek(TOKEN_STAR) {
		var l list
		l.add(expr, p.anon(), p.anon())
		p.parseStarModifiers(&l)
		return p.node(syntax.KindSelectAll, l)
	}

	var l list
	l.add(expr, p.parseAlias())
	return p.node(syntax.KindSelectExpression, l)
}

// parseStarModifiers parses EXCEPT (...) and REPLACE (...) after a star.
func (p *Parser) parseStarModifiers(l *list) {
	if p.check(TOKEN_EXCEPT) && p.checkPeek(TOKEN_LPAREN) {
		var ex list
		ex.add(p.anon(), p.anon())
		for isWord(p.token) {
			ex.add(p.leaf(syntax.KindIdentifier))
			if !p.check(TOKEN_COMMA) {
				break
			}
			ex.add(p.anon())
		}
		p.closeParen(&ex)
		l.add(p.node(syntax.KindSelectExcept, ex))
	}
	if p.checkWord("REPLACE") && p.checkPeek(TOKEN_LPAREN) {
		var rep list
		rep.add(p.anon(), p.anon())
		for {
			expr := p.parseExpr()
			if expr == none {
				break
			}
			var item list
			item.add(expr, p.parseAlias())
			rep.add(p.node(syntax.KindSelectExpression, item))
			if !p.check(TOKEN_COMMA) {
				break
			}
			rep.add(p.anon())
		}
		p.closeParen(&rep)
		l.add(p.node(syntax.KindSelectReplace, rep))
	}
}

// parseAlias parses an optional [AS] alias. After AS any word is accepted;
// without it only plain or quoted identifiers are.
func (p *Parser) parseAlias() syntax.NodeID {
	var l list
	switch {
	case p.check(TOKEN_AS) && (isWord(p.peek) || p.peek.Type == TOKEN_STRING):
		l.add(p.anon(), p.leaf(syntax.KindIdentifier))
	case isName(p.token):
		l.add(p.leaf(syntax.KindIdentifier))
	default:
		return none
	}
	return p.node(syntax.KindAsAlias, l)
}

// ---------- Clauses ----------

// parseKeywordClause parses a single-keyword clause followed by an
// expression: WHERE, HAVING and QUALIFY.
func (p *Parser) parseKeywordClause(kind string) syntax.NodeID {
	var l list
	l.add(p.anon())
	l.add(p.expectExpr())
	return p.node(kind, l)
}

// parseGroupByClause parses GROUP BY (ALL | ROLLUP(...) | expr, ...).
func (p *Parser) parseGroupByClause() syntax.NodeID {
	var l list
	l.add(p.anon(), p.anon()) // GROUP BY
	switch {
	case p.check(TOKEN_ALL):
		l.add(p.anon())
	case p.check(TOKEN_ROLLUP) && p.checkPeek(TOKEN_LPAREN):
		l.add(p.anon(), p.anon())
		p.parseExprList(&l)
		p.closeParen(&l)
	default:
		p.parseExprList(&l)
	}
	return p.node(syntax.KindGroupByClause, l)
}

// parseOrderByClause parses ORDER BY item, ...
func (p *Parser) parseOrderByClause() syntax.NodeID {
	var l list
	l.add(p.anon(), p.anon()) // ORDER BY
	for {
		expr := p.parseExpr()
		if expr == none {
			break
		}
		var item list
		item.add(expr)
		if p.checkAny(TOKEN_ASC, TOKEN_DESC) {
			item.add(p.anon())
		}
		if p.check(TOKEN_NULLS) {
			item.add(p.anon())
			if p.checkWord("FIRST") || p.checkWord("LAST") {
				item.add(p.anon())
			}
		}
		l.add(p.node(syntax.KindOrderByItem, item))
		if !p.check(TOKEN_COMMA) {
			break
		}
		l.add(p.anon())
	}
	return p.node(syntax.KindOrderByClause, l)
}

// parseLimitClause parses LIMIT expr [OFFSET expr].
func (p *Parser) parseLimitClause() syntax.NodeID {
	var l list
	l.add(p.anon()) // LIMIT
	l.add(p.expectExpr())
	if p.check(TOKEN_OFFSET) {
		l.add(p.anon())
		l.add(p.expectExpr())
	}
	return p.node(syntax.KindLimitClause, l)
}

// parseExprList appends expr ("," expr)* to l.
func (p *Parser) parseExprList(l *list) {
	for {
		expr := p.parseExpr()
		if expr == none {
			return
		}
		l.add(expr)
		if !p.check(TOKEN_COMMA) {
			return
		}
		l.add(p.anon())
	}
}

// build creates an interior node over the present ids.
func (p *Parser) build(kind string, ids ...syntax.NodeID) syntax.NodeID {
	var l list
	l.add(ids...)
	return p.node(kind, l)
}
