package parser

import "testing"

func collectTags(input string) []TokenTag {
	lexer := NewLexer([]byte(input))
	var got []TokenTag
	for {
		tok := lexer.Next()
		got = append(got, tok.Tag)
		if tok.Tag == TokenEOF {
			return got
		}
	}
}

func TestLexer(t *testing.T) {
	tests := []struct {
		input    string
		expected []TokenTag
	}{
		{"", []TokenTag{TokenEOF}},
		{"   \t\n  ", []TokenTag{TokenEOF}},
		{"package", []TokenTag{TokenKwPackage, TokenEOF}},
		{"world interface resource", []TokenTag{TokenKwWorld, TokenKwInterface, TokenKwResource, TokenEOF}},
		{"foo", []TokenTag{TokenIdent, TokenEOF}},
		{"kebab-case-name", []TokenTag{TokenIdent, TokenEOF}},
		{"foo123", []TokenTag{TokenIdent, TokenEOF}},
		{"123", []TokenTag{TokenInteger, TokenEOF}},
		{"_", []TokenTag{TokenUnderscore, TokenEOF}},
		{"_foo", []TokenTag{TokenIdent, TokenEOF}},
		{"u8 u16 u32 u64", []TokenTag{TokenKwU8, TokenKwU16, TokenKwU32, TokenKwU64, TokenEOF}},
		{"s8 s16 s32 s64", []TokenTag{TokenKwS8, TokenKwS16, TokenKwS32, TokenKwS64, TokenEOF}},
		{"float32 float64 char bool string", []TokenTag{TokenKwFloat32, TokenKwFloat64, TokenKwChar, TokenKwBool, TokenKwString, TokenEOF}},
		{"tuple list option result borrow", []TokenTag{TokenKwTuple, TokenKwList, TokenKwOption, TokenKwResult, TokenKwBorrow, TokenEOF}},
		{"= , : ; ( ) { } < > *", []TokenTag{TokenEquals, TokenComma, TokenColon, TokenSemicolon, TokenLParen, TokenRParen, TokenLBrace, TokenRBrace, TokenLT, TokenGT, TokenStar, TokenEOF}},
		{"/ . @ + -", []TokenTag{TokenSlash, TokenDot, TokenAt, TokenPlus, TokenMinus, TokenEOF}},
		{"->", []TokenTag{TokenArrow, TokenEOF}},
		{"- >", []TokenTag{TokenMinus, TokenGT, TokenEOF}},
		{"a->b", []TokenTag{TokenIdent, TokenArrow, TokenIdent, TokenEOF}},
		{"// comment\nworld", []TokenTag{TokenKwWorld, TokenEOF}},
		{"// comment only", []TokenTag{TokenEOF}},
		{"/* block */ world", []TokenTag{TokenKwWorld, TokenEOF}},
		{"/* unterminated", []TokenTag{TokenEOF}},
		{"func()", []TokenTag{TokenKwFunc, TokenLParen, TokenRParen, TokenEOF}},
		{"ns:pkg/name@1.0.0", []TokenTag{TokenIdent, TokenColon, TokenIdent, TokenSlash, TokenIdent, TokenAt, TokenInteger, TokenDot, TokenInteger, TokenDot, TokenInteger, TokenEOF}},
		{"#", []TokenTag{TokenInvalid, TokenEOF}},
		{"\"", []TokenTag{TokenInvalid, TokenEOF}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := collectTags(tt.input)
			if len(got) != len(tt.expected) {
				t.Fatalf("got %d tokens, want %d: %v", len(got), len(tt.expected), got)
			}
			for i := range got {
				if got[i] != tt.expected[i] {
					t.Errorf("token %d: got %v, want %v", i, got[i], tt.expected[i])
				}
			}
		})
	}
}

func TestLexerNestedBlockComment(t *testing.T) {
	with := collectTags("/* a /* b */ c */ record")
	without := collectTags("record")
	if len(with) != len(without) {
		t.Fatalf("got %d tokens with comment, %d without", len(with), len(without))
	}
	for i := range with {
		if with[i] != without[i] {
			t.Errorf("token %d: got %v, want %v", i, with[i], without[i])
		}
	}
}

func TestLexerSpans(t *testing.T) {
	input := "world  greeter"
	lexer := NewLexer([]byte(input))

	tok := lexer.Next()
	if tok.Tag != TokenKwWorld || tok.Start != 0 || tok.Len != 5 {
		t.Errorf("first token: got %v at (%d,%d)", tok.Tag, tok.Start, tok.Len)
	}
	tok = lexer.Next()
	if tok.Tag != TokenIdent || tok.Start != 7 || tok.Len != 7 {
		t.Errorf("second token: got %v at (%d,%d)", tok.Tag, tok.Start, tok.Len)
	}
	if got := input[tok.Start : tok.Start+tok.Len]; got != "greeter" {
		t.Errorf("second token text: got %q", got)
	}
}

func TestLexerInvalidUTF8(t *testing.T) {
	tests := []struct {
		name  string
		input []byte
		len   uint32
	}{
		{"two-byte rune", []byte("é"), 2},
		{"three-byte rune", []byte("€"), 3},
		{"bare continuation byte", []byte{0x80}, 1},
		{"truncated sequence", []byte{0xE2, 0x82}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lexer := NewLexer(tt.input)
			tok := lexer.Next()
			if tok.Tag != TokenInvalid {
				t.Fatalf("got %v, want invalid", tok.Tag)
			}
			if tok.Len != tt.len {
				t.Errorf("invalid token length: got %d, want %d", tok.Len, tt.len)
			}
		})
	}
}
