package parser

import (
	"strings"

	"github.com/leapstack-labs/bqlint/pkg/token"
)

// Lexer tokenizes BigQuery SQL input.
//
// Token literals are raw slices of the input (quotes and prefixes included),
// so a token always covers input[Pos.Offset:Pos.Offset+len(Literal)].
type Lexer struct {
	input   string
	pos     int  // current position in input
	readPos int  // reading position (after current char)
	ch      byte // current char under examination
	line    int  // current line number (1-based)
	col     int  // current column number (1-based)

	last TokenType // type of the previously returned token

	// Errors collected during lexing
	Errors []error
}

// NewLexer creates a new Lexer for the given input.
func NewLexer(input string) *Lexer {
	l := &Lexer{
		input: input,
		line:  1,
		col:   0,
		last:  TOKEN_ILLEGAL,
	}
	l.readChar()
	return l
}

// readChar advances to the next character.
func (l *Lexer) readChar() {
	if l.ch == '\n' {
		l.line++
		l.col = 0
	}
	if l.readPos >= len(l.input) {
		l.ch = 0 // ASCII NUL = EOF
	} else {
		l.ch = l.input[l.readPos]
	}
	l.pos = l.readPos
	l.readPos++
	l.col++
}

// peekChar returns the next character without advancing.
func (l *Lexer) peekChar() byte {
	if l.readPos >= len(l.input) {
		return 0
	}
	return l.input[l.readPos]
}

// peekCharAt returns the character n bytes after the current one.
func (l *Lexer) peekCharAt(n int) byte {
	if l.pos+n >= len(l.input) {
		return 0
	}
	return l.input[l.pos+n]
}

// currentPos returns the current position.
func (l *Lexer) currentPos() Position {
	return Position{
		Line:   l.line,
		Column: l.col,
		Offset: l.pos,
	}
}

// atEOF reports whether the whole input has been consumed.
func (l *Lexer) atEOF() bool {
	return l.pos >= len(l.input)
}

// NextToken returns the next token.
func (l *Lexer) NextToken() Token {
	tok := l.nextToken()
	l.last = tok.Type
	return tok
}

func (l *Lexer) nextToken() Token {
	l.skipWhitespaceAndComments()

	pos := l.currentPos()
	if l.atEOF() {
		return Token{Type: TOKEN_EOF, Pos: pos}
	}

	switch l.ch {
	case '+':
		return l.single(TOKEN_PLUS, pos)
	case '-':
		return l.single(TOKEN_MINUS, pos)
	case '*':
		return l.single(TOKEN_STAR, pos)
	case '/':
		return l.single(TOKEN_SLASH, pos)
	case '%':
		return l.single(TOKEN_PERCENT, pos)
	case '=':
		return l.single(TOKEN_EQ, pos)
	case '&':
		return l.single(TOKEN_AMP, pos)
	case '^':
		return l.single(TOKEN_CARET, pos)
	case '~':
		return l.single(TOKEN_TILDE, pos)
	case ',':
		return l.single(TOKEN_COMMA, pos)
	case ';':
		return l.single(TOKEN_SEMICOLON, pos)
	case '(':
		return l.single(TOKEN_LPAREN, pos)
	case ')':
		return l.single(TOKEN_RPAREN, pos)
	case '[':
		return l.single(TOKEN_LBRACKET, pos)
	case ']':
		return l.single(TOKEN_RBRACKET, pos)
	case '?':
		return l.single(TOKEN_PARAM, pos)
	case '<':
		switch l.peekChar() {
		case '=':
			return l.double(TOKEN_LE, pos)
		case '>':
			return l.double(TOKEN_NE, pos)
		case '<':
			return l.double(TOKEN_LSHIFT, pos)
		}
		return l.single(TOKEN_LT, pos)
	case '>':
		switch l.peekChar() {
		case '=':
			return l.double(TOKEN_GE, pos)
		case '>':
			return l.double(TOKEN_RSHIFT, pos)
		}
		return l.single(TOKEN_GT, pos)
	case '!':
		if l.peekChar() == '=' {
			return l.double(TOKEN_NE, pos)
		}
		l.addError(pos, "unexpected character '!'")
		return l.single(TOKEN_ILLEGAL, pos)
	case '|':
		if l.peekChar() == '|' {
			return l.double(TOKEN_DPIPE, pos)
		}
		return l.single(TOKEN_PIPE, pos)
	case '.':
		if isDigit(l.peekChar()) && !l.followsName() {
			return l.readNumber(pos)
		}
		return l.single(TOKEN_DOT, pos)
	case '\'', '"':
		return l.readString(pos, l.pos, TOKEN_STRING, false)
	case '`':
		return l.readQuotedIdentifier(pos)
	case '@':
		return l.readParam(pos)
	}

	switch {
	case isLetter(l.ch) || l.ch == '_':
		if tok, ok := l.readPrefixedString(pos); ok {
			return tok
		}
		return l.readWord(pos)
	case isDigit(l.ch):
		return l.readNumber(pos)
	}

	l.addError(pos, "unexpected character "+string(l.ch))
	return l.single(TOKEN_ILLEGAL, pos)
}

// single consumes one character as a token.
func (l *Lexer) single(t TokenType, pos Position) Token {
	start := l.pos
	l.readChar()
	return Token{Type: t, Literal: l.input[start:l.pos], Pos: pos}
}

// double consumes two characters as a token.
func (l *Lexer) double(t TokenType, pos Position) Token {
	start := l.pos
	l.readChar()
	l.readChar()
	return Token{Type: t, Literal: l.input[start:l.pos], Pos: pos}
}

// followsName reports whether the previous token can be followed by a
// field access, in which case ".5" is a dot and not a number.
func (l *Lexer) followsName() bool {
	switch l.last {
	case TOKEN_IDENT, TOKEN_QUOTED_IDENT, TOKEN_RPAREN, TOKEN_RBRACKET:
		return true
	}
	return false
}

func (l *Lexer) addError(pos Position, msg string) {
	l.Errors = append(l.Errors, &LexError{Pos: pos, Message: msg})
}

// skipWhitespaceAndComments skips whitespace and --, # and /* */ comments.
func (l *Lexer) skipWhitespaceAndComments() {
	for {
		for l.ch == ' ' || l.ch == '\t' || l.ch == '\n' || l.ch == '\r' || l.ch == '\f' {
			l.readChar()
		}

		if (l.ch == '-' && l.peekChar() == '-') || l.ch == '#' {
			for l.ch != '\n' && !l.atEOF() {
				l.readChar()
			}
			continue
		}

		if l.ch == '/' && l.peekChar() == '*' {
			pos := l.currentPos()
			l.readChar() // skip '/'
			l.readChar() // skip '*'
			closed := false
			for !l.atEOF() {
				if l.ch == '*' && l.peekChar() == '/' {
					l.readChar()
					l.readChar()
					closed = true
					break
				}
				l.readChar()
			}
			if !closed {
				l.addError(pos, ErrUnterminatedComment)
			}
			continue
		}

		break
	}
}

// readPrefixedString reads r'..', b'..', rb'..' and br'..' literals.
func (l *Lexer) readPrefixedString(pos Position) (Token, bool) {
	start := l.pos
	n := 0
	raw, isBytes := false, false
scan:
	for n < 2 {
		switch l.peekCharAt(n) {
		case 'r', 'R':
			if raw {
				return Token{}, false
			}
			raw = true
		case 'b', 'B':
			if isBytes {
				return Token{}, false
			}
			isBytes = true
		default:
			break scan
		}
		n++
	}
	if n == 0 {
		return Token{}, false
	}
	if q := l.peekCharAt(n); q != '\'' && q != '"' {
		return Token{}, false
	}
	for i := 0; i < n; i++ {
		l.readChar()
	}
	t := TOKEN_STRING
	if isBytes {
		t = TOKEN_BYTES
	}
	return l.readString(pos, start, t, raw), true
}

// readString reads a single, double or triple quoted string starting at the
// current quote character. start is the offset of the literal including any
// prefix.
func (l *Lexer) readString(pos Position, start int, t TokenType, raw bool) Token {
	quote := l.ch
	triple := l.peekChar() == quote && l.peekCharAt(2) == quote
	if triple {
		l.readChar()
		l.readChar()
	}
	l.readChar() // opening quote

	for {
		if l.atEOF() {
			l.addError(pos, ErrUnterminatedString)
			return Token{Type: TOKEN_ILLEGAL, Literal: l.input[start:l.pos], Pos: pos}
		}
		if l.ch == '\\' && !raw {
			l.readChar()
			if !l.atEOF() {
				l.readChar()
			}
			continue
		}
		if l.ch == '\n' && !triple {
			l.addError(pos, ErrUnterminatedString)
			return Token{Type: TOKEN_ILLEGAL, Literal: l.input[start:l.pos], Pos: pos}
		}
		if l.ch == quote {
			if !triple {
				l.readChar()
				break
			}
			if l.peekChar() == quote && l.peekCharAt(2) == quote {
				l.readChar()
				l.readChar()
				l.readChar()
				break
			}
		}
		l.readChar()
	}
	return Token{Type: t, Literal: l.input[start:l.pos], Pos: pos}
}

// readQuotedIdentifier reads a backtick-quoted identifier or path,
// e.g. `project.dataset.table`.
func (l *Lexer) readQuotedIdentifier(pos Position) Token {
	start := l.pos
	l.readChar() // opening backtick
	for {
		if l.atEOF() || l.ch == '\n' {
			l.addError(pos, ErrUnterminatedIdentifier)
			return Token{Type: TOKEN_ILLEGAL, Literal: l.input[start:l.pos], Pos: pos}
		}
		if l.ch == '\\' {
			l.readChar()
			if !l.atEOF() {
				l.readChar()
			}
			continue
		}
		if l.ch == '`' {
			l.readChar()
			break
		}
		l.readChar()
	}
	return Token{Type: TOKEN_QUOTED_IDENT, Literal: l.input[start:l.pos], Pos: pos}
}

// readParam reads @name query parameters and @@name system variables.
func (l *Lexer) readParam(pos Position) Token {
	start := l.pos
	l.readChar() // '@'
	if l.ch == '@' {
		l.readChar()
	}
	if !isLetter(l.ch) && l.ch != '_' {
		l.addError(pos, "expected parameter name after '@'")
		return Token{Type: TOKEN_ILLEGAL, Literal: l.input[start:l.pos], Pos: pos}
	}
	for isLetter(l.ch) || isDigit(l.ch) || l.ch == '_' {
		l.readChar()
	}
	return Token{Type: TOKEN_PARAM, Literal: l.input[start:l.pos], Pos: pos}
}

// readWord reads an unquoted identifier or keyword.
func (l *Lexer) readWord(pos Position) Token {
	start := l.pos
	for isLetter(l.ch) || isDigit(l.ch) || l.ch == '_' {
		l.readChar()
	}
	lit := l.input[start:l.pos]
	lower := strings.ToLower(lit)

	t := LookupIdent(lower)
	if t == TOKEN_IDENT {
		if dyn, ok := token.LookupDynamicKeyword(lower); ok {
			t = dyn
		}
	}
	return Token{Type: t, Literal: lit, Pos: pos}
}

// readNumber reads integer, decimal, exponent and hexadecimal literals.
func (l *Lexer) readNumber(pos Position) Token {
	start := l.pos

	if l.ch == '0' && (l.peekChar() == 'x' || l.peekChar() == 'X') {
		l.readChar()
		l.readChar()
		for isHexDigit(l.ch) {
			l.readChar()
		}
		return Token{Type: TOKEN_NUMBER, Literal: l.input[start:l.pos], Pos: pos}
	}

	for isDigit(l.ch) {
		l.readChar()
	}
	if l.ch == '.' && l.peekChar() != '.' {
		l.readChar()
		for isDigit(l.ch) {
			l.readChar()
		}
	}
	if l.ch == 'e' || l.ch == 'E' {
		next := l.peekChar()
		if isDigit(next) || ((next == '+' || next == '-') && isDigit(l.peekCharAt(2))) {
			l.readChar()
			if l.ch == '+' || l.ch == '-' {
				l.readChar()
			}
			for isDigit(l.ch) {
				l.readChar()
			}
		}
	}
	return Token{Type: TOKEN_NUMBER, Literal: l.input[start:l.pos], Pos: pos}
}

func isLetter(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || ch >= 0x80
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isHexDigit(ch byte) bool {
	return isDigit(ch) || (ch >= 'a' && ch <= 'f') || (ch >= 'A' && ch <= 'F')
}
