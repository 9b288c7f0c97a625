package parser

// TokenIndex refers to a token in a Tree's token table.
type TokenIndex uint32

// NilToken marks an absent optional token reference.
const NilToken TokenIndex = ^TokenIndex(0)

type TokenTag int

const (
	TokenEOF TokenTag = iota
	TokenInvalid

	// Literals
	TokenIdent
	TokenInteger

	// Keywords
	TokenKwPackage
	TokenKwUse
	TokenKwType
	TokenKwResource
	TokenKwFunc
	TokenKwRecord
	TokenKwEnum
	TokenKwFlags
	TokenKwVariant
	TokenKwStatic
	TokenKwInterface
	TokenKwWorld
	TokenKwImport
	TokenKwExport
	TokenKwInclude
	TokenKwAs
	TokenKwConstructor
	TokenKwWith
	TokenKwBorrow
	TokenKwOption
	TokenKwResult
	TokenKwList
	TokenKwTuple

	// Primitive type keywords
	TokenKwU8
	TokenKwU16
	TokenKwU32
	TokenKwU64
	TokenKwS8
	TokenKwS16
	TokenKwS32
	TokenKwS64
	TokenKwFloat32
	TokenKwFloat64
	TokenKwChar
	TokenKwBool
	TokenKwString

	// Punctuation
	TokenEquals
	TokenComma
	TokenColon
	TokenSemicolon
	TokenLParen
	TokenRParen
	TokenLBrace
	TokenRBrace
	TokenLT
	TokenGT
	TokenStar
	TokenArrow
	TokenSlash
	TokenDot
	TokenAt
	TokenMinus
	TokenPlus
	TokenUnderscore
)

var tokenTagNames = map[TokenTag]string{
	TokenEOF:           "EOF",
	TokenInvalid:       "invalid bytes",
	TokenIdent:         "identifier",
	TokenInteger:       "integer",
	TokenKwPackage:     "package",
	TokenKwUse:         "use",
	TokenKwType:        "type",
	TokenKwResource:    "resource",
	TokenKwFunc:        "func",
	TokenKwRecord:      "record",
	TokenKwEnum:        "enum",
	TokenKwFlags:       "flags",
	TokenKwVariant:     "variant",
	TokenKwStatic:      "static",
	TokenKwInterface:   "interface",
	TokenKwWorld:       "world",
	TokenKwImport:      "import",
	TokenKwExport:      "export",
	TokenKwInclude:     "include",
	TokenKwAs:          "as",
	TokenKwConstructor: "constructor",
	TokenKwWith:        "with",
	TokenKwBorrow:      "borrow",
	TokenKwOption:      "option",
	TokenKwResult:      "result",
	TokenKwList:        "list",
	TokenKwTuple:       "tuple",
	TokenKwU8:          "u8",
	TokenKwU16:         "u16",
	TokenKwU32:         "u32",
	TokenKwU64:         "u64",
	TokenKwS8:          "s8",
	TokenKwS16:         "s16",
	TokenKwS32:         "s32",
	TokenKwS64:         "s64",
	TokenKwFloat32:     "float32",
	TokenKwFloat64:     "float64",
	TokenKwChar:        "char",
	TokenKwBool:        "bool",
	TokenKwString:      "string",
	TokenEquals:        "=",
	TokenComma:         ",",
	TokenColon:         ":",
	TokenSemicolon:     ";",
	TokenLParen:        "(",
	TokenRParen:        ")",
	TokenLBrace:        "{",
	TokenRBrace:        "}",
	TokenLT:            "<",
	TokenGT:            ">",
	TokenStar:          "*",
	TokenArrow:         "->",
	TokenSlash:         "/",
	TokenDot:           ".",
	TokenAt:            "@",
	TokenMinus:         "-",
	TokenPlus:          "+",
	TokenUnderscore:    "_",
}

func (t TokenTag) String() string {
	if name, ok := tokenTagNames[t]; ok {
		return name
	}
	return "Unknown"
}

// Token is a tag plus a byte span into the source buffer. Tokens are
// produced once by the lexer and never mutated.
type Token struct {
	Tag   TokenTag
	Start uint32
	Len   uint32
}

var keywords = map[string]TokenTag{
	"package":     TokenKwPackage,
	"use":         TokenKwUse,
	"type":        TokenKwType,
	"resource":    TokenKwResource,
	"func":        TokenKwFunc,
	"record":      TokenKwRecord,
	"enum":        TokenKwEnum,
	"flags":       TokenKwFlags,
	"variant":     TokenKwVariant,
	"static":      TokenKwStatic,
	"interface":   TokenKwInterface,
	"world":       TokenKwWorld,
	"import":      TokenKwImport,
	"export":      TokenKwExport,
	"include":     TokenKwInclude,
	"as":          TokenKwAs,
	"constructor": TokenKwConstructor,
	"with":        TokenKwWith,
	"borrow":      TokenKwBorrow,
	"option":      TokenKwOption,
	"result":      TokenKwResult,
	"list":        TokenKwList,
	"tuple":       TokenKwTuple,
	"u8":          TokenKwU8,
	"u16":         TokenKwU16,
	"u32":         TokenKwU32,
	"u64":         TokenKwU64,
	"s8":          TokenKwS8,
	"s16":         TokenKwS16,
	"s32":         TokenKwS32,
	"s64":         TokenKwS64,
	"float32":     TokenKwFloat32,
	"float64":     TokenKwFloat64,
	"char":        TokenKwChar,
	"bool":        TokenKwBool,
	"string":      TokenKwString,
	"_":           TokenUnderscore,
}

// LookupKeyword resolves an identifier-shaped span to its keyword tag, or
// TokenIdent when the span is not a keyword.
func LookupKeyword(ident string) TokenTag {
	if tag, ok := keywords[ident]; ok {
		return tag
	}
	return TokenIdent
}

// IsPrimitiveType reports whether the tag names one of the built-in
// primitive types.
func (t TokenTag) IsPrimitiveType() bool {
	switch t {
	case TokenKwU8, TokenKwU16, TokenKwU32, TokenKwU64,
		TokenKwS8, TokenKwS16, TokenKwS32, TokenKwS64,
		TokenKwFloat32, TokenKwFloat64, TokenKwChar, TokenKwBool, TokenKwString:
		return true
	}
	return false
}
