package parser

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/bqlint/pkg/syntax"
)

// Primary grammar:
//
//	primary → literal | parameter | column_ref | function_call
//	        | "(" expr ")" | "(" expr, ... ")" | "(" query_expr ")"
//	        | CASE ... END | CAST(expr AS type) | EXTRACT(part FROM expr)
//	        | INTERVAL expr part | EXISTS "(" query_expr ")"
//	        | [ARRAY[<type>]] "[" expr, ... "]" | STRUCT[<...>] "(" expr [AS name], ... ")"
//	        | typed_literal
//
//	column_ref    → word ("." word)*           identifier for one word, field otherwise
//	function_call → column_ref "(" args ")" [over_clause]

// typedLiteralWords are type names that form a literal with a following string.
var typedLiteralWords = map[string]bool{
	"DATE":       true,
	"DATETIME":   true,
	"TIME":       true,
	"TIMESTAMP":  true,
	"NUMERIC":    true,
	"BIGNUMERIC": true,
	"JSON":       true,
}

// parsePrimary parses a primary expression, or returns none without
// consuming input.
func (p *Parser) parsePrimary() syntax.NodeID {
	switch p.token.Type {
	case TOKEN_NUMBER:
		return p.leaf(syntax.KindNumber)
	case TOKEN_STRING:
		return p.leaf(syntax.KindString)
	case TOKEN_BYTES:
		return p.leaf(syntax.KindBytes)
	case TOKEN_TRUE, TOKEN_FALSE:
		return p.leaf(syntax.KindBoolean)
	case TOKEN_NULL:
		return p.leaf(syntax.KindNull)
	case TOKEN_PARAM:
		return p.leaf(syntax.KindParameter)
	case TOKEN_LPAREN:
		if startsQuery(p.peek) {
			return p.parseSubquery()
		}
		return p.parseParenthesized()
	case TOKEN_LBRACKET:
		var l list
		p.parseArrayElements(&l)
		return p.node(syntax.KindArrayExpression, l)
	case TOKEN_CASE:
		return p.parseCase()
	case TOKEN_CAST:
		return p.parseCast()
	case TOKEN_EXTRACT:
		return p.parseExtract()
	case TOKEN_INTERVAL:
		return p.parseInterval()
	case TOKEN_EXISTS:
		if p.checkPeek(TOKEN_LPAREN) {
			var l list
			l.add(p.anon(), p.parseSubquery())
			return p.node(syntax.KindExistsExpression, l)
		}
	case TOKEN_LEFT, TOKEN_RIGHT, TOKEN_OFFSET, TOKEN_RANGE:
		if p.checkPeek(TOKEN_LPAREN) {
			return p.parseFunctionCall(p.b.SetField(p.leaf(syntax.KindIdentifier), syntax.FieldFunction))
		}
	case TOKEN_IDENT:
		switch word := strings.ToUpper(p.token.Literal); {
		case word == "SAFE_CAST" && p.checkPeek(TOKEN_LPAREN):
			return p.parseCast()
		case word == "ARRAY" && (p.checkPeek(TOKEN_LT) || p.checkPeek(TOKEN_LBRACKET)):
			return p.parseArray()
		case word == "STRUCT" && (p.checkPeek(TOKEN_LT) || p.checkPeek(TOKEN_LPAREN)):
			return p.parseStruct()
		case typedLiteralWords[word] && p.peek.Type == TOKEN_STRING:
			var l list
			l.add(p.anon(), p.leaf(syntax.KindString))
			return p.node(syntax.KindTypedLiteral, l)
		}
		return p.parseColumnRef()
	case TOKEN_QUOTED_IDENT:
		return p.parseColumnRef()
	}
	return none
}

// parseColumnRef parses a dotted name, and the call when "(" follows it.
func (p *Parser) parseColumnRef() syntax.NodeID {
	start := p.token.Pos.Offset
	end := p.token.End()
	p.nextToken()
	qualified := false
	for p.check(TOKEN_DOT) && isWord(p.peek) {
		p.nextToken()
		end = p.token.End()
		p.nextToken()
		qualified = true
	}

	kind := syntax.KindIdentifier
	if qualified {
		kind = syntax.KindField
	}
	ref := p.b.Leaf(kind, true, start, end)
	if p.check(TOKEN_LPAREN) {
		return p.parseFunctionCall(p.b.SetField(ref, syntax.FieldFunction))
	}
	return ref
}

// parseFunctionCall parses the argument list after the callee and an
// optional OVER clause.
//
//	args → "*" | [DISTINCT] arg ("," arg)* [(IGNORE|RESPECT) NULLS]
//	       [ORDER BY ...] [LIMIT n] [HAVING (MAX|MIN) expr]
//	arg  → query_expr | expr
func (p *Parser) parseFunctionCall(callee syntax.NodeID) syntax.NodeID {
	var l list
	l.add(callee, p.anon()) // (

	switch {
	case p.check(TOKEN_STAR):
		l.add(p.anon())
	case p.check(TOKEN_RPAREN):
	default:
		l.add(p.matchAnon(TOKEN_DISTINCT))
		for {
			var arg syntax.NodeID
			if startsQuery(p.token) {
				arg = p.parseQueryExpr()
			} else {
				arg = p.parseExpr()
			}
			if arg == none {
				break
			}
			l.add(arg)
			if !p.check(TOKEN_COMMA) {
				break
			}
			l.add(p.anon())
		}
	}

	if p.checkAny(TOKEN_IGNORE, TOKEN_RESPECT) && p.checkPeek(TOKEN_NULLS) {
		l.add(p.anon(), p.anon())
	}
	if p.check(TOKEN_ORDER) && p.checkPeek(TOKEN_BY) {
		l.add(p.parseOrderByClause())
	}
	if p.check(TOKEN_LIMIT) {
		l.add(p.parseLimitClause())
	}
	if p.check(TOKEN_HAVING) && (p.peekWord("MAX") || p.peekWord("MIN")) {
		l.add(p.anon(), p.anon(), p.expectExpr())
	}
	p.closeParen(&l)

	if p.check(TOKEN_OVER) {
		l.add(p.parseOverClause())
	}
	return p.node(syntax.KindFunctionCall, l)
}

// parseParenthesized parses (expr) or the tuple (expr, expr, ...).
func (p *Parser) parseParenthesized() syntax.NodeID {
	var l list
	l.add(p.anon())
	l.add(p.expectExpr())
	kind := syntax.KindParenthesized
	for p.check(TOKEN_COMMA) {
		kind = syntax.KindTupleExpression
		l.add(p.anon(), p.expectExpr())
	}
	p.closeParen(&l)
	return p.node(kind, l)
}

// parseCase parses CASE [operand] WHEN ... THEN ... [ELSE ...] END.
func (p *Parser) parseCase() syntax.NodeID {
	var l list
	l.add(p.anon()) // CASE
	if !p.check(TOKEN_WHEN) {
		l.add(p.expectExpr())
	}
	for p.check(TOKEN_WHEN) {
		l.add(p.anon(), p.expectExpr())
		l.add(p.expectAnon(TOKEN_THEN), p.expectExpr())
	}
	if p.check(TOKEN_ELSE) {
		l.add(p.anon(), p.expectExpr())
	}
	l.add(p.expectAnon(TOKEN_END))
	return p.node(syntax.KindCaseExpression, l)
}

// parseCast parses CAST and SAFE_CAST.
func (p *Parser) parseCast() syntax.NodeID {
	var l list
	l.add(p.anon())
	l.add(p.expectAnon(TOKEN_LPAREN))
	l.add(p.expectExpr())
	l.add(p.expectAnon(TOKEN_AS))
	l.add(p.parseType())
	if p.checkWord("FORMAT") {
		l.add(p.anon(), p.expectExpr())
	}
	p.closeParen(&l)
	return p.node(syntax.KindCastExpression, l)
}

// parseExtract parses EXTRACT(part FROM expr [AT TIME ZONE tz]).
func (p *Parser) parseExtract() syntax.NodeID {
	var l list
	l.add(p.anon())
	l.add(p.expectAnon(TOKEN_LPAREN))
	l.add(p.parseDatetimePart())
	l.add(p.expectAnon(TOKEN_FROM))
	l.add(p.expectExpr())
	if p.check(TOKEN_AT) && p.peekWord("TIME") {
		l.add(p.anon(), p.anon())
		if p.checkWord("ZONE") {
			l.add(p.anon())
		}
		l.add(p.expectExpr())
	}
	p.closeParen(&l)
	return p.node(syntax.KindExtractExpression, l)
}

// parseInterval parses INTERVAL value part [TO part].
func (p *Parser) parseInterval() syntax.NodeID {
	var l list
	l.add(p.anon())
	l.add(p.operand(p.parseUnary))
	l.add(p.parseDatetimePart())
	if p.check(TOKEN_TO) {
		l.add(p.anon(), p.parseDatetimePart())
	}
	return p.node(syntax.KindIntervalExpression, l)
}

// parseDatetimePart parses a part such as DAY or WEEK(MONDAY).
func (p *Parser) parseDatetimePart() syntax.NodeID {
	if !isWord(p.token) {
		p.addError(fmt.Sprintf(ErrUnexpectedToken, describe(p.token), "date part"))
		return none
	}
	start := p.token.Pos.Offset
	end := p.token.End()
	p.nextToken()
	if p.check(TOKEN_LPAREN) && isWord(p.peek) && p.peek2.Type == TOKEN_RPAREN {
		p.nextToken()
		p.nextToken()
		end = p.token.End()
		p.nextToken()
	}
	return p.b.Leaf(syntax.KindDatetimePart, true, start, end)
}

// parseType parses a type name into a single leaf, including parameters
// such as ARRAY<STRUCT<a INT64>> and NUMERIC(10, 2).
func (p *Parser) parseType() syntax.NodeID {
	if !isWord(p.token) {
		p.addError(fmt.Sprintf(ErrUnexpectedToken, describe(p.token), "type"))
		return none
	}
	start := p.token.Pos.Offset
	end := p.token.End()
	p.nextToken()

	if p.check(TOKEN_LT) {
		depth := 0
		for !p.checkAny(TOKEN_EOF, TOKEN_SEMICOLON) {
			switch p.token.Type {
			case TOKEN_LT:
				depth++
			case TOKEN_GT:
				depth--
			case TOKEN_RSHIFT:
				depth -= 2
			}
			end = p.token.End()
			p.nextToken()
			if depth <= 0 {
				break
			}
		}
	}
	if p.check(TOKEN_LPAREN) && p.checkPeek(TOKEN_NUMBER) {
		for !p.checkAny(TOKEN_RPAREN, TOKEN_EOF, TOKEN_SEMICOLON) {
			p.nextToken()
		}
		if p.check(TOKEN_RPAREN) {
			end = p.token.End()
			p.nextToken()
		}
	}
	return p.b.Leaf(syntax.KindType, true, start, end)
}

// parseArray parses ARRAY<T>[...] and ARRAY[...].
func (p *Parser) parseArray() syntax.NodeID {
	var l list
	if p.checkPeek(TOKEN_LT) {
		l.add(p.parseType())
	} else {
		l.add(p.anon())
	}
	if p.check(TOKEN_LBRACKET) {
		p.parseArrayElements(&l)
	}
	return p.node(syntax.KindArrayExpression, l)
}

// parseArrayElements appends "[" expr, ... "]" to l.
func (p *Parser) parseArrayElements(l *list) {
	l.add(p.anon()) // [
	p.parseExprList(l)
	p.closeBracket(l)
}

// parseStruct parses STRUCT[<...>](expr [AS name], ...).
func (p *Parser) parseStruct() syntax.NodeID {
	var l list
	if p.checkPeek(TOKEN_LT) {
		l.add(p.parseType())
	} else {
		l.add(p.anon())
	}
	if p.check(TOKEN_LPAREN) {
		l.add(p.anon())
		for {
			expr := p.parseExpr()
			if expr == none {
				break
			}
			l.add(expr)
			if p.check(TOKEN_AS) {
				l.add(p.parseAlias())
			}
			if !p.check(TOKEN_COMMA) {
				break
			}
			l.add(p.anon())
		}
		p.closeParen(&l)
	}
	return p.node(syntax.KindStructExpression, l)
}
