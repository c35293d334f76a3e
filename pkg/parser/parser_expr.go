package parser

import (
	"fmt"

	"github.com/leapstack-labs/bqlint/pkg/syntax"
)

// Expression grammar (precedence from lowest to highest):
//
//	expr           → or_expr
//	or_expr        → and_expr (OR and_expr)*
//	and_expr       → not_expr (AND not_expr)*
//	not_expr       → NOT not_expr | comparison
//	comparison     → bit_or [(compare_op bit_or | [NOT] IN ... | [NOT] LIKE bit_or |
//	                         [NOT] BETWEEN bit_or AND bit_or | IS [NOT] ...)]*
//	bit_or         → bit_xor ("|" bit_xor)*
//	bit_xor        → bit_and ("^" bit_and)*
//	bit_and        → shift ("&" shift)*
//	shift          → additive (("<<" | ">>") additive)*
//	additive       → multiplicative (("+" | "-") multiplicative)*
//	multiplicative → unary (("*" | "/" | "||" | "%") unary)*
//	unary          → ("-" | "+" | "~") unary | postfix
//	postfix        → primary ("[" expr "]" | "." field_name)*

// parseExpr parses an expression. It returns none without consuming input
// when the current token cannot start an expression.
func (p *Parser) parseExpr() syntax.NodeID {
	defer p.leave()
	if !p.enter() {
		return p.errorNode()
	}
	return p.parseOr()
}

// expectExpr parses an expression and reports an error if none is found.
func (p *Parser) expectExpr() syntax.NodeID {
	expr := p.parseExpr()
	if expr == none {
		p.addError(fmt.Sprintf(ErrExpectedExpression, describe(p.token)))
	}
	return expr
}

// binaryLevel parses a left-associative run of next separated by ops.
func (p *Parser) binaryLevel(next func() syntax.NodeID, ops ...TokenType) syntax.NodeID {
	left := next()
	for left != none && p.checkAny(ops...) {
		var l list
		l.add(left, p.anon(), p.operand(next))
		left = p.node(syntax.KindBinaryExpression, l)
	}
	return left
}

// operand parses the right side of an operator.
func (p *Parser) operand(next func() syntax.NodeID) syntax.NodeID {
	expr := next()
	if expr == none {
		p.addError(fmt.Sprintf(ErrExpectedExpression, describe(p.token)))
	}
	return expr
}

func (p *Parser) parseOr() syntax.NodeID {
	return p.binaryLevel(p.parseAnd, TOKEN_OR)
}

func (p *Parser) parseAnd() syntax.NodeID {
	return p.binaryLevel(p.parseNot, TOKEN_AND)
}

func (p *Parser) parseNot() syntax.NodeID {
	if !p.check(TOKEN_NOT) {
		return p.parseComparison()
	}
	defer p.leave()
	if !p.enter() {
		return p.errorNode()
	}
	var l list
	l.add(p.anon(), p.operand(p.parseNot))
	return p.node(syntax.KindUnaryExpression, l)
}

func (p *Parser) parseComparison() syntax.NodeID {
	left := p.parseBitOr()
	for left != none {
		negated := p.check(TOKEN_NOT) && (p.checkPeek(TOKEN_IN) || p.checkPeek(TOKEN_LIKE) || p.checkPeek(TOKEN_BETWEEN))
		var l list
		l.add(left)

		switch {
		case p.checkAny(TOKEN_EQ, TOKEN_NE, TOKEN_LT, TOKEN_GT, TOKEN_LE, TOKEN_GE):
			l.add(p.anon(), p.operand(p.parseBitOr))
			left = p.node(syntax.KindBinaryExpression, l)
		case p.check(TOKEN_LIKE) || negated && p.checkPeek(TOKEN_LIKE):
			if negated {
				l.add(p.anon())
			}
			l.add(p.anon(), p.operand(p.parseBitOr))
			left = p.node(syntax.KindBinaryExpression, l)
		case p.check(TOKEN_IN) || negated && p.checkPeek(TOKEN_IN):
			if negated {
				l.add(p.anon())
			}
			l.add(p.anon())
			p.parseInOperand(&l)
			left = p.node(syntax.KindInExpression, l)
		case p.check(TOKEN_BETWEEN) || negated && p.checkPeek(TOKEN_BETWEEN):
			if negated {
				l.add(p.anon())
			}
			l.add(p.anon(), p.operand(p.parseBitOr))
			l.add(p.expectAnon(TOKEN_AND), p.operand(p.parseBitOr))
			left = p.node(syntax.KindBetweenExpression, l)
		case p.check(TOKEN_IS):
			l.add(p.anon())
			l.add(p.matchAnon(TOKEN_NOT))
			switch {
			case p.checkAny(TOKEN_NULL, TOKEN_TRUE, TOKEN_FALSE):
				l.add(p.parsePrimary())
			case p.check(TOKEN_DISTINCT) && p.checkPeek(TOKEN_FROM):
				l.add(p.anon(), p.anon(), p.operand(p.parseBitOr))
			case p.checkWord("UNKNOWN"):
				l.add(p.anon())
			default:
				p.addError(fmt.Sprintf(ErrUnexpectedToken, describe(p.token), "NULL, TRUE or FALSE"))
			}
			left = p.node(syntax.KindIsExpression, l)
		default:
			return left
		}
	}
	return left
}

// parseInOperand parses the right side of IN: a value list, a subquery or
// UNNEST(array).
func (p *Parser) parseInOperand(l *list) {
	switch {
	case p.check(TOKEN_UNNEST):
		l.add(p.parseUnnest(syntax.KindUnnestOperator))
	case p.check(TOKEN_LPAREN) && startsQuery(p.peek):
		l.add(p.parseSubquery())
	case p.check(TOKEN_LPAREN):
		l.add(p.anon())
		p.parseExprList(l)
		p.closeParen(l)
	default:
		l.add(p.operand(p.parseBitOr))
	}
}

func (p *Parser) parseBitOr() syntax.NodeID {
	return p.binaryLevel(p.parseBitXor, TOKEN_PIPE)
}

func (p *Parser) parseBitXor() syntax.NodeID {
	return p.binaryLevel(p.parseBitAnd, TOKEN_CARET)
}

func (p *Parser) parseBitAnd() syntax.NodeID {
	return p.binaryLevel(p.parseShift, TOKEN_AMP)
}

func (p *Parser) parseShift() syntax.NodeID {
	return p.binaryLevel(p.parseAdditive, TOKEN_LSHIFT, TOKEN_RSHIFT)
}

func (p *Parser) parseAdditive() syntax.NodeID {
	return p.binaryLevel(p.parseMultiplicative, TOKEN_PLUS, TOKEN_MINUS)
}

func (p *Parser) parseMultiplicative() syntax.NodeID {
	return p.binaryLevel(p.parseUnary, TOKEN_STAR, TOKEN_SLASH, TOKEN_DPIPE, TOKEN_PERCENT)
}

func (p *Parser) parseUnary() syntax.NodeID {
	if !p.checkAny(TOKEN_MINUS, TOKEN_PLUS, TOKEN_TILDE) {
		return p.parsePostfix()
	}
	defer p.leave()
	if !p.enter() {
		return p.errorNode()
	}
	var l list
	l.add(p.anon(), p.operand(p.parseUnary))
	return p.node(syntax.KindUnaryExpression, l)
}

// parsePostfix parses array subscripts and field access after a primary.
func (p *Parser) parsePostfix() syntax.NodeID {
	expr := p.parsePrimary()
	for expr != none {
		var l list
		switch {
		case p.check(TOKEN_LBRACKET):
			l.add(expr, p.anon(), p.expectExpr())
			p.closeBracket(&l)
			expr = p.node(syntax.KindElementAccess, l)
		case p.check(TOKEN_DOT) && isWord(p.peek):
			l.add(expr, p.anon(), p.leaf(syntax.KindFieldName))
			expr = p.node(syntax.KindFieldAccess, l)
		default:
			return expr
		}
	}
	return expr
}

// closeBracket appends the closing bracket, wrapping anything before it in
// ERROR nodes.
func (p *Parser) closeBracket(l *list) {
	for !p.checkAny(TOKEN_RBRACKET, TOKEN_RPAREN, TOKEN_SEMICOLON, TOKEN_EOF) {
		l.add(p.errorNode())
	}
	l.add(p.expectAnon(TOKEN_RBRACKET))
}
