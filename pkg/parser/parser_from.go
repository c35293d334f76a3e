package parser

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/bqlint/pkg/syntax"
)

// FROM grammar:
//
//	from_clause    → FROM join_expr ("," join_expr)*
//	join_expr      → from_item (join_operation)*
//	join_operation → from_item [join_type] JOIN from_item [join_condition]
//	join_condition → ON expr | USING "(" identifier, ... ")"
//	from_item      → table_path [as_alias] [pivot_operator | unpivot_operator]
//	                 [tablesample_clause]
//	               | subquery [as_alias]
//	               | unnest_clause
//	               | "(" join_expr ")"
//
// A join is wrapped in a from_item so that joins nest to the left:
// a JOIN b JOIN c is from_item(join_operation(from_item(join_operation(a, b)), c)).

// parseFromClause parses FROM join_expr, ...
func (p *Parser) parseFromClause() syntax.NodeID {
	var l list
	l.add(p.anon()) // FROM
	for {
		l.add(p.parseJoinExpr())
		if !p.check(TOKEN_COMMA) {
			break
		}
		l.add(p.anon())
	}
	return p.node(syntax.KindFromClause, l)
}

// parseJoinExpr parses a from_item followed by any number of joins.
func (p *Parser) parseJoinExpr() syntax.NodeID {
	left := p.parseFromItem()
	for p.isJoinStart() {
		var l list
		l.add(left)
		l.add(p.parseJoinType())
		l.add(p.expectAnon(TOKEN_JOIN))
		l.add(p.parseFromItem())
		l.add(p.parseJoinCondition())
		left = p.build(syntax.KindFromItem, p.node(syntax.KindJoinOperation, l))
	}
	return left
}

func (p *Parser) isJoinStart() bool {
	switch p.token.Type {
	case TOKEN_JOIN, TOKEN_INNER, TOKEN_CROSS:
		return true
	case TOKEN_LEFT, TOKEN_RIGHT, TOKEN_FULL:
		return p.checkPeek(TOKEN_OUTER) || p.checkPeek(TOKEN_JOIN)
	}
	return false
}

// parseJoinType parses INNER, CROSS, LEFT [OUTER], RIGHT [OUTER] and
// FULL [OUTER].
func (p *Parser) parseJoinType() syntax.NodeID {
	var l list
	switch p.token.Type {
	case TOKEN_INNER, TOKEN_CROSS:
		l.add(p.anon())
	case TOKEN_LEFT, TOKEN_RIGHT, TOKEN_FULL:
		l.add(p.anon())
		l.add(p.matchAnon(TOKEN_OUTER))
	}
	return p.node(syntax.KindJoinType, l)
}

// parseJoinCondition parses ON expr or USING (col, ...).
func (p *Parser) parseJoinCondition() syntax.NodeID {
	var l list
	switch {
	case p.check(TOKEN_ON):
		l.add(p.anon())
		l.add(p.expectExpr())
	case p.check(TOKEN_USING):
		l.add(p.anon())
		l.add(p.expectAnon(TOKEN_LPAREN))
		for isWord(p.token) {
			l.add(p.leaf(syntax.KindIdentifier))
			if !p.check(TOKEN_COMMA) {
				break
			}
			l.add(p.anon())
		}
		p.closeParen(&l)
	}
	return p.node(syntax.KindJoinCondition, l)
}

// parseFromItem parses a single table reference.
func (p *Parser) parseFromItem() syntax.NodeID {
	defer p.leave()
	if !p.enter() {
		return p.errorNode()
	}

	var l list
	switch {
	case p.check(TOKEN_LPAREN) && (startsQuery(p.peek) || p.checkPeek(TOKEN_LPAREN) && startsQuery(p.peek2)):
		l.add(p.parseSubquery())
		l.add(p.parseAlias())
	case p.check(TOKEN_LPAREN):
		l.add(p.anon())
		l.add(p.parseJoinExpr())
		p.closeParen(&l)
		l.add(p.parseAlias())
	case p.check(TOKEN_UNNEST):
		l.add(p.parseUnnest(syntax.KindUnnestClause))
	case isName(p.token):
		l.add(p.parseTablePath())
		l.add(p.parseSystemTime())
		l.add(p.parseAlias())
		switch {
		case p.check(TOKEN_PIVOT) && p.checkPeek(TOKEN_LPAREN):
			l.add(p.parsePivot())
		case p.check(TOKEN_UNPIVOT):
			l.add(p.parseUnpivot())
		}
		l.add(p.parseTableSample())
	default:
		p.addError(fmt.Sprintf(ErrUnexpectedToken, describe(p.token), "table"))
		return none
	}
	return p.node(syntax.KindFromItem, l)
}

// parseSubquery parses "(" query_expr ")".
func (p *Parser) parseSubquery() syntax.NodeID {
	var l list
	l.add(p.anon())
	l.add(p.parseQueryExpr())
	p.closeParen(&l)
	return p.node(syntax.KindSubquery, l)
}

// parseUnnest parses UNNEST(expr) with its alias and WITH OFFSET. As an
// IN operand only UNNEST(expr) is parsed.
func (p *Parser) parseUnnest(kind string) syntax.NodeID {
	var l list
	l.add(p.anon()) // UNNEST
	l.add(p.expectAnon(TOKEN_LPAREN))
	l.add(p.expectExpr())
	p.closeParen(&l)
	if kind == syntax.KindUnnestClause {
		l.add(p.parseAlias())
		if p.check(TOKEN_WITH) && p.checkPeek(TOKEN_OFFSET) {
			l.add(p.anon(), p.anon())
			l.add(p.parseAlias())
		}
	}
	return p.node(kind, l)
}

// parseTablePath parses a table path into a single identifier leaf. Paths
// may mix dotted segments, backtick quoting and hyphenated project names
// such as my-project.dataset.table.
func (p *Parser) parseTablePath() syntax.NodeID {
	start := p.token.Pos.Offset
	end := p.token.End()
	p.nextToken()

	for {
		switch {
		case p.check(TOKEN_DOT) && isWord(p.peek):
			p.nextToken()
			end = p.token.End()
			p.nextToken()
		case p.check(TOKEN_MINUS) && p.token.Pos.Offset == end &&
			p.peek.Pos.Offset == p.token.End() && (isName(p.peek) || p.peek.Type == TOKEN_NUMBER):
			p.nextToken()
			end = p.token.End()
			trailingDot := p.check(TOKEN_NUMBER) && strings.HasSuffix(p.token.Literal, ".")
			p.nextToken()
			// "my-project-123.ds" lexes the dot into the number.
			if trailingDot && p.token.Pos.Offset == end && isWord(p.token) {
				end = p.token.End()
				p.nextToken()
			}
		default:
			return p.b.Leaf(syntax.KindIdentifier, true, start, end)
		}
	}
}

// parseSystemTime parses FOR SYSTEM_TIME AS OF expr.
func (p *Parser) parseSystemTime() syntax.NodeID {
	if !p.check(TOKEN_FOR) || !p.peekWord("SYSTEM_TIME") {
		return none
	}
	var l list
	l.add(p.anon(), p.anon())
	l.add(p.expectAnon(TOKEN_AS))
	l.add(p.expectAnon(TOKEN_OF))
	l.add(p.expectExpr())
	return p.node(syntax.KindUnsupported, l)
}

// parseTableSample parses TABLESAMPLE SYSTEM (n PERCENT).
func (p *Parser) parseTableSample() syntax.NodeID {
	if !p.check(TOKEN_TABLESAMPLE) {
		return none
	}
	var l list
	l.add(p.anon())
	for !p.checkAny(TOKEN_LPAREN, TOKEN_SEMICOLON, TOKEN_EOF) && isWord(p.token) {
		l.add(p.anon()) // SYSTEM
	}
	l.add(p.expectAnon(TOKEN_LPAREN))
	l.add(p.expectExpr())
	for isWord(p.token) {
		l.add(p.anon()) // PERCENT or ROWS
	}
	p.closeParen(&l)
	return p.node(syntax.KindTableSample, l)
}

// ---------- PIVOT / UNPIVOT ----------

// PIVOT grammar:
//
//	pivot_operator   → PIVOT "(" expr [as_alias] ("," expr [as_alias])*
//	                   FOR input_column IN "(" pivot_value ("," pivot_value)* ")" ")"
//	                   [as_alias]
//	unpivot_operator → UNPIVOT [(INCLUDE|EXCLUDE) NULLS]
//	                   "(" columns FOR identifier IN "(" unpivot_value, ... ")" ")"
//	                   [as_alias]

func (p *Parser) parsePivot() syntax.NodeID {
	var l list
	l.add(p.anon(), p.anon()) // PIVOT (
	for {
		expr := p.parseExpr()
		if expr == none {
			break
		}
		l.add(expr, p.parseAlias())
		if !p.check(TOKEN_COMMA) {
			break
		}
		l.add(p.anon())
	}
	l.add(p.expectAnon(TOKEN_FOR))
	l.add(p.parseInputColumn())
	l.add(p.expectAnon(TOKEN_IN))
	if p.check(TOKEN_LPAREN) {
		l.add(p.anon())
		for {
			expr := p.parseExpr()
			if expr == none {
				break
			}
			var v list
			v.add(expr, p.parseAlias())
			l.add(p.node(syntax.KindPivotValue, v))
			if !p.check(TOKEN_COMMA) {
				break
			}
			l.add(p.anon())
		}
		p.closeParen(&l)
	}
	p.closeParen(&l)
	l.add(p.parseAlias())
	return p.node(syntax.KindPivotOperator, l)
}

// parseInputColumn parses the pivot column path as a single leaf.
func (p *Parser) parseInputColumn() syntax.NodeID {
	if !isWord(p.token) {
		p.addError(fmt.Sprintf(ErrUnexpectedToken, describe(p.token), "column"))
		return none
	}
	start := p.token.Pos.Offset
	end := p.token.End()
	p.nextToken()
	for p.check(TOKEN_DOT) && isWord(p.peek) {
		p.nextToken()
		end = p.token.End()
		p.nextToken()
	}
	return p.b.Leaf(syntax.KindInputColumn, true, start, end)
}

func (p *Parser) parseUnpivot() syntax.NodeID {
	var l list
	l.add(p.anon()) // UNPIVOT
	if (p.checkWord("INCLUDE") || p.check(TOKEN_EXCLUDE)) && p.checkPeek(TOKEN_NULLS) {
		l.add(p.anon(), p.anon())
	}
	l.add(p.expectAnon(TOKEN_LPAREN))
	p.parseUnpivotColumns(&l)
	l.add(p.expectAnon(TOKEN_FOR))
	p.parseUnpivotColumns(&l)
	l.add(p.expectAnon(TOKEN_IN))
	if p.check(TOKEN_LPAREN) {
		l.add(p.anon())
		for p.check(TOKEN_LPAREN) || isWord(p.token) {
			var v list
			p.parseUnpivotColumns(&v)
			if p.check(TOKEN_AS) || p.checkAny(TOKEN_STRING, TOKEN_NUMBER) {
				v.add(p.matchAnon(TOKEN_AS))
				v.add(p.parsePrimary())
			}
			l.add(p.node(syntax.KindUnpivotValue, v))
			if !p.check(TOKEN_COMMA) {
				break
			}
			l.add(p.anon())
		}
		p.closeParen(&l)
	}
	p.closeParen(&l)
	l.add(p.parseAlias())
	return p.node(syntax.KindUnpivotOperator, l)
}

// parseUnpivotColumns parses a column or a parenthesized column list.
func (p *Parser) parseUnpivotColumns(l *list) {
	if p.check(TOKEN_LPAREN) {
		l.add(p.anon())
		for isWord(p.token) {
			l.add(p.leaf(syntax.KindIdentifier))
			if !p.check(TOKEN_COMMA) {
				break
			}
			l.add(p.anon())
		}
		p.closeParen(l)
		return
	}
	if isWord(p.token) && !p.checkAny(TOKEN_FOR, TOKEN_IN) {
		l.add(p.leaf(syntax.KindIdentifier))
	}
}
