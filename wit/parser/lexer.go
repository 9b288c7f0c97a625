package parser

import "unicode/utf8"

// Lexer converts a source byte buffer into tokens. Whitespace and comments
// are skipped and never emitted; bytes the grammar has no use for come out
// as TokenInvalid tokens rather than errors, and the stream always ends
// with a single TokenEOF.
type Lexer struct {
	input []byte
	pos   int
}

func NewLexer(input []byte) *Lexer {
	return &Lexer{input: input}
}

func (l *Lexer) peek() byte {
	if l.pos >= len(l.input) {
		return 0
	}
	return l.input[l.pos]
}

func (l *Lexer) peekN(n int) byte {
	if l.pos+n >= len(l.input) {
		return 0
	}
	return l.input[l.pos+n]
}

func (l *Lexer) advance() byte {
	if l.pos >= len(l.input) {
		return 0
	}
	ch := l.input[l.pos]
	l.pos++
	return ch
}

func (l *Lexer) advanceN(n int) {
	l.pos += n
	if l.pos > len(l.input) {
		l.pos = len(l.input)
	}
}

// Next returns the next token. Calling Next after EOF keeps returning EOF.
func (l *Lexer) Next() Token {
	l.skipTrivia()

	start := l.pos
	if l.pos >= len(l.input) {
		return Token{Tag: TokenEOF, Start: uint32(start)}
	}

	ch := l.peek()

	if isLetter(ch) || ch == '_' {
		return l.scanIdentOrKeyword(start)
	}
	if isDigit(ch) {
		return l.scanInteger(start)
	}

	switch ch {
	case '=':
		l.advance()
		return l.token(TokenEquals, start)
	case ',':
		l.advance()
		return l.token(TokenComma, start)
	case ':':
		l.advance()
		return l.token(TokenColon, start)
	case ';':
		l.advance()
		return l.token(TokenSemicolon, start)
	case '(':
		l.advance()
		return l.token(TokenLParen, start)
	case ')':
		l.advance()
		return l.token(TokenRParen, start)
	case '{':
		l.advance()
		return l.token(TokenLBrace, start)
	case '}':
		l.advance()
		return l.token(TokenRBrace, start)
	case '<':
		l.advance()
		return l.token(TokenLT, start)
	case '>':
		l.advance()
		return l.token(TokenGT, start)
	case '*':
		l.advance()
		return l.token(TokenStar, start)
	case '/':
		l.advance()
		return l.token(TokenSlash, start)
	case '.':
		l.advance()
		return l.token(TokenDot, start)
	case '@':
		l.advance()
		return l.token(TokenAt, start)
	case '+':
		l.advance()
		return l.token(TokenPlus, start)
	case '-':
		if l.peekN(1) == '>' {
			l.advanceN(2)
			return l.token(TokenArrow, start)
		}
		l.advance()
		return l.token(TokenMinus, start)
	}

	return l.scanInvalid(start)
}

// skipTrivia consumes whitespace, line comments, and nested block comments.
// A comment never produces a token; the next token's span starts after it.
func (l *Lexer) skipTrivia() {
	for {
		switch l.peek() {
		case ' ', '\t', '\r', '\n':
			l.advance()
		case '/':
			if l.peekN(1) == '/' {
				l.advanceN(2)
				for l.peek() != 0 && l.peek() != '\n' {
					l.advance()
				}
				continue
			}
			if l.peekN(1) == '*' {
				l.advanceN(2)
				depth := 1
				for depth > 0 && l.pos < len(l.input) {
					if l.peek() == '/' && l.peekN(1) == '*' {
						depth++
						l.advanceN(2)
					} else if l.peek() == '*' && l.peekN(1) == '/' {
						depth--
						l.advanceN(2)
					} else {
						l.advance()
					}
				}
				continue
			}
			return
		default:
			return
		}
	}
}

func (l *Lexer) scanIdentOrKeyword(start int) Token {
	l.advance() // leading letter or '_'
	for isLetter(l.peek()) || isDigit(l.peek()) || l.peek() == '-' {
		// "->" terminates an identifier; a lone "-" extends a kebab name.
		if l.peek() == '-' && l.peekN(1) == '>' {
			break
		}
		l.advance()
	}
	tag := LookupKeyword(string(l.input[start:l.pos]))
	return l.token(tag, start)
}

func (l *Lexer) scanInteger(start int) Token {
	for isDigit(l.peek()) {
		l.advance()
	}
	return l.token(TokenInteger, start)
}

// scanInvalid handles any byte no other rule claims. The grammar itself is
// ASCII, so any non-ASCII rune is unsupported; the token spans the whole
// encoded sequence when it decodes, or a single byte when it does not.
func (l *Lexer) scanInvalid(start int) Token {
	r, size := utf8.DecodeRune(l.input[l.pos:])
	if r == utf8.RuneError && size <= 1 {
		size = 1
	}
	l.advanceN(size)
	return l.token(TokenInvalid, start)
}

func (l *Lexer) token(tag TokenTag, start int) Token {
	return Token{Tag: tag, Start: uint32(start), Len: uint32(l.pos - start)}
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isLetter(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}
