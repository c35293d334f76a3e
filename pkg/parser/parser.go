// Package parser builds concrete syntax trees for the BigQuery SQL subset
// analyzed by the lint rules.
//
// # Usage
//
//	tree, err := parser.Parse("WITH a AS (SELECT x FROM t) SELECT x FROM a")
//	if err != nil {
//	    // the tree is still usable; err is the first syntax error
//	}
//	root := tree.Root()
//
// The parser is tolerant in the manner of tree-sitter: it never gives up.
// Input it cannot match is wrapped in ERROR nodes and reported through the
// returned error, and parsing resumes at the next token.
//
// # Grammar Overview
//
// The parser implements a recursive descent parser producing the node kinds
// declared in package syntax:
//
//	source_file → statement (";" statement)* [";"]
//	statement   → query_expr | create_table_statement | insert_statement
//	query_expr  → [with_clause] query_term (set_op query_term)*
//	              [order_by_clause] [limit_clause]
//	query_term  → select | "(" query_expr ")"
//	select      → SELECT [AS (STRUCT|VALUE)] [DISTINCT|ALL] select_list
//	              [from_clause] [where_clause] [group_by_clause]
//	              [having_clause] [qualify_clause] [window_clause]
//
// Column references are "identifier" leaves when unqualified and "field"
// leaves when qualified. Table paths are a single "identifier" spanning all
// of their segments.
//
// See each file for detailed grammar rules for that section.
package parser

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/bqlint/pkg/syntax"
	"github.com/leapstack-labs/bqlint/pkg/token"
)

// maxNestingDepth bounds recursion on deeply nested expressions and queries.
const maxNestingDepth = 1000

// none is the absent node.
const none syntax.NodeID = -1

// Parser parses BigQuery SQL into a syntax tree.
type Parser struct {
	lexer  *Lexer
	b      *syntax.Builder
	token  Token // current token
	peek   Token // lookahead token
	peek2  Token // second lookahead token
	errors []error
	depth  int
}

// NewParser creates a new parser for the given SQL input.
func NewParser(sql string) *Parser {
	p := &Parser{
		lexer: NewLexer(sql),
		b:     syntax.NewBuilder(sql),
	}
	// Read three tokens to initialize current, peek, and peek2
	p.nextToken()
	p.nextToken()
	p.nextToken()
	return p
}

// Parse parses sql and returns its tree. The tree is never nil; the error
// is the first lexical or syntax error encountered, if any.
func Parse(sql string) (*syntax.Tree, error) {
	p := NewParser(sql)
	tree := p.ParseTree()
	if errs := p.Errors(); len(errs) > 0 {
		return tree, errs[0]
	}
	return tree, nil
}

// ParseTree parses the whole input. It must be called at most once.
func (p *Parser) ParseTree() *syntax.Tree {
	root := p.parseSourceFile()
	return p.b.Build(root)
}

// Errors returns lexical errors followed by syntax errors, each group in
// source order.
func (p *Parser) Errors() []error {
	errs := make([]error, 0, len(p.lexer.Errors)+len(p.errors))
	errs = append(errs, p.lexer.Errors...)
	errs = append(errs, p.errors...)
	return errs
}

// ---------- Token Helpers ----------

// nextToken advances to the next token.
func (p *Parser) nextToken() {
	p.token = p.peek
	p.peek = p.peek2
	p.peek2 = p.lexer.NextToken()
}

// check returns true if the current token is of the given type.
func (p *Parser) check(t TokenType) bool {
	return p.token.Type == t
}

// checkPeek returns true if the peek token is of the given type.
func (p *Parser) checkPeek(t TokenType) bool {
	return p.peek.Type == t
}

// checkAny returns true if the current token is any of the given types.
func (p *Parser) checkAny(types ...TokenType) bool {
	for _, t := range types {
		if p.token.Type == t {
			return true
		}
	}
	return false
}

// checkWord reports whether the current token is an identifier whose text
// equals word, ignoring case. Used for soft keywords such as STRUCT.
func (p *Parser) checkWord(word string) bool {
	return p.token.Type == TOKEN_IDENT && strings.EqualFold(p.token.Literal, word)
}

// peekWord reports whether the peek token is the identifier word.
func (p *Parser) peekWord(word string) bool {
	return p.peek.Type == TOKEN_IDENT && strings.EqualFold(p.peek.Literal, word)
}

// addError adds a parse error at the current token.
func (p *Parser) addError(msg string) {
	p.errors = append(p.errors, &ParseError{
		Pos:     p.token.Pos,
		Message: msg,
	})
}

// ---------- Node Helpers ----------

// list accumulates child nodes, dropping absent ones.
type list []syntax.NodeID

func (l *list) add(ids ...syntax.NodeID) {
	for _, id := range ids {
		if id != none {
			*l = append(*l, id)
		}
	}
}

// node creates an interior node; an empty child list yields none.
func (p *Parser) node(kind string, children list) syntax.NodeID {
	if len(children) == 0 {
		return none
	}
	return p.b.Node(kind, children...)
}

// anon consumes the current token as an anonymous leaf.
func (p *Parser) anon() syntax.NodeID {
	if p.check(TOKEN_EOF) {
		return none
	}
	id := p.b.Leaf(strings.ToUpper(p.token.Literal), false, p.token.Pos.Offset, p.token.End())
	p.nextToken()
	return id
}

// leaf consumes the current token as a named leaf of the given kind.
func (p *Parser) leaf(kind string) syntax.NodeID {
	if p.check(TOKEN_EOF) {
		return none
	}
	id := p.b.Leaf(kind, true, p.token.Pos.Offset, p.token.End())
	p.nextToken()
	return id
}

// matchAnon consumes the current token as an anonymous leaf if it matches.
func (p *Parser) matchAnon(t TokenType) syntax.NodeID {
	if !p.check(t) {
		return none
	}
	return p.anon()
}

// expectAnon consumes the current token if it matches, otherwise adds an
// error and consumes nothing.
func (p *Parser) expectAnon(t TokenType) syntax.NodeID {
	if p.check(t) {
		return p.anon()
	}
	p.addError(fmt.Sprintf(ErrUnexpectedToken, describe(p.token), t))
	return none
}

// errorNode wraps the current token in an ERROR node and reports it.
func (p *Parser) errorNode() syntax.NodeID {
	if p.check(TOKEN_EOF) {
		return none
	}
	p.addError(fmt.Sprintf(ErrUnexpectedInput, "token", p.token.Literal))
	var l list
	l.add(p.anon())
	return p.node(syntax.KindError, l)
}

// enter increments the nesting depth; it reports false when the limit is hit.
func (p *Parser) enter() bool {
	p.depth++
	if p.depth > maxNestingDepth {
		p.addError(fmt.Sprintf(ErrTooDeep, maxNestingDepth))
		return false
	}
	return true
}

func (p *Parser) leave() {
	p.depth--
}

// describe renders a token for error messages.
func describe(tok Token) string {
	if tok.Type == TOKEN_EOF {
		return "EOF"
	}
	return fmt.Sprintf("%q", tok.Literal)
}

// ---------- Keyword Helpers ----------

// isWord reports whether tok can name something: an identifier, a quoted
// identifier, or any keyword (keywords are accepted after AS and after a dot).
func isWord(tok Token) bool {
	return tok.Type == TOKEN_IDENT || tok.Type == TOKEN_QUOTED_IDENT || token.IsKeyword(tok.Type)
}

// isName reports whether tok is an identifier usable without AS.
func isName(tok Token) bool {
	return tok.Type == TOKEN_IDENT || tok.Type == TOKEN_QUOTED_IDENT
}

// startsQuery reports whether tok can begin a query expression.
func startsQuery(tok Token) bool {
	return tok.Type == TOKEN_SELECT || tok.Type == TOKEN_WITH
}
