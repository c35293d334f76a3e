package parser

import "github.com/leapstack-labs/bqlint/pkg/syntax"

// Window grammar:
//
//	over_clause          → OVER (identifier | "(" [window_specification] ")")
//	window_specification → [identifier] [partition_by_clause] [order_by_clause]
//	                       [window_frame_clause]
//	partition_by_clause  → PARTITION BY expr ("," expr)*
//	window_frame_clause  → (ROWS | RANGE) (frame_bound | BETWEEN frame_bound AND frame_bound)
//	frame_bound          → UNBOUNDED (PRECEDING | FOLLOWING) | CURRENT ROW
//	                     | expr (PRECEDING | FOLLOWING)
//	window_clause        → WINDOW named_window ("," named_window)*
//	named_window         → identifier AS "(" window_specification ")"

// parseOverClause parses OVER name or OVER (window_specification).
func (p *Parser) parseOverClause() syntax.NodeID {
	var l list
	l.add(p.anon()) // OVER
	switch {
	case isName(p.token):
		l.add(p.leaf(syntax.KindIdentifier))
	case p.check(TOKEN_LPAREN):
		l.add(p.anon())
		l.add(p.parseWindowSpecification())
		p.closeParen(&l)
	default:
		p.addError("expected window name or specification after OVER")
	}
	return p.node(syntax.KindOverClause, l)
}

// parseWindowSpecification parses the body of a window. It returns none
// for an empty specification.
func (p *Parser) parseWindowSpecification() syntax.NodeID {
	var l list
	if isName(p.token) {
		l.add(p.leaf(syntax.KindIdentifier))
	}
	if p.check(TOKEN_PARTITION) && p.checkPeek(TOKEN_BY) {
		var part list
		part.add(p.anon(), p.anon())
		p.parseExprList(&part)
		l.add(p.node(syntax.KindPartitionByClause, part))
	}
	if p.check(TOKEN_ORDER) && p.checkPeek(TOKEN_BY) {
		l.add(p.parseOrderByClause())
	}
	if p.checkAny(TOKEN_ROWS, TOKEN_RANGE) {
		l.add(p.parseWindowFrame())
	}
	return p.node(syntax.KindWindowSpecification, l)
}

// parseWindowFrame parses ROWS/RANGE frame bounds.
func (p *Parser) parseWindowFrame() syntax.NodeID {
	var l list
	l.add(p.anon()) // ROWS or RANGE
	if p.check(TOKEN_BETWEEN) {
		l.add(p.anon())
		p.parseFrameBound(&l)
		l.add(p.expectAnon(TOKEN_AND))
	}
	p.parseFrameBound(&l)
	return p.node(syntax.KindWindowFrameClause, l)
}

func (p *Parser) parseFrameBound(l *list) {
	switch {
	case p.check(TOKEN_UNBOUNDED):
		l.add(p.anon())
	case p.check(TOKEN_CURRENT):
		l.add(p.anon())
		if p.checkWord("ROW") {
			l.add(p.anon())
		}
		return
	default:
		l.add(p.operand(p.parseBitOr))
	}
	if p.checkAny(TOKEN_PRECEDING, TOKEN_FOLLOWING) {
		l.add(p.anon())
	} else {
		p.addError("expected PRECEDING or FOLLOWING")
	}
}

// parseWindowClause parses WINDOW name AS (window_specification), ...
func (p *Parser) parseWindowClause() syntax.NodeID {
	var l list
	l.add(p.anon()) // WINDOW
	for isName(p.token) {
		var w list
		w.add(p.leaf(syntax.KindIdentifier))
		w.add(p.expectAnon(TOKEN_AS))
		if p.check(TOKEN_LPAREN) {
			w.add(p.anon())
			w.add(p.parseWindowSpecification())
			p.closeParen(&w)
		}
		l.add(p.node(syntax.KindNamedWindow, w))
		if !p.check(TOKEN_COMMA) {
			break
		}
		l.add(p.anon())
	}
	return p.node(syntax.KindWindowClause, l)
}
