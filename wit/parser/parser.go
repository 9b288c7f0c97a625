package parser

import "errors"

// errParse unwinds the whole parse after the first structural error. The
// diagnostic has already been recorded by then; the error itself carries no
// information.
var errParse = errors.New("parse error")

// Parse tokenizes the whole input eagerly, then builds the tree by
// recursive descent. It always returns a tree; callers must check
// Tree.Valid (or the Diagnostics list) before walking it, because a failed
// parse leaves the root's item list unfinished.
func Parse(src []byte) *Tree {
	p := &Parser{
		source: src,
		tokens: tokenize(src),
	}
	_ = p.parseRoot() // the failure is already recorded as a diagnostic
	return &Tree{
		Source:      src,
		tokens:      p.tokens,
		nodeTags:    p.nodeTags,
		nodeTokens:  p.nodeTokens,
		nodeData:    p.nodeData,
		extra:       p.extra,
		Diagnostics: p.diags,
	}
}

func tokenize(src []byte) []Token {
	lexer := NewLexer(src)
	var tokens []Token
	for {
		tok := lexer.Next()
		tokens = append(tokens, tok)
		if tok.Tag == TokenEOF {
			return tokens
		}
	}
}

// Parser holds the working state of one parse invocation. Nothing here is
// shared across invocations; the node table and extra array transfer into
// the Tree on return and the scratch stack is discarded.
type Parser struct {
	source []byte
	tokens []Token
	tok    TokenIndex

	nodeTags   []NodeTag
	nodeTokens []TokenIndex
	nodeData   []NodeData
	extra      []uint32

	// scratch collects in-progress child lists. Each collector records the
	// current height, appends as children complete, flushes its slice into
	// extra, and truncates back to its mark on every exit path.
	scratch []NodeIndex

	diags []Diagnostic
}

// --- cursor ---

func (p *Parser) peek() TokenTag {
	return p.tokens[p.tok].Tag
}

func (p *Parser) next() TokenIndex {
	i := p.tok
	if p.tokens[p.tok].Tag != TokenEOF {
		p.tok++
	}
	return i
}

func (p *Parser) retreat() {
	p.tok--
}

func (p *Parser) expect(tag TokenTag) (TokenIndex, error) {
	if p.peek() != tag {
		return 0, p.failExpected(tag)
	}
	return p.next(), nil
}

// --- diagnostics ---

func (p *Parser) fail(tag DiagTag) error {
	return p.failAt(tag, p.tok)
}

func (p *Parser) failAt(tag DiagTag, tok TokenIndex) error {
	p.diags = append(p.diags, Diagnostic{Tag: tag, Token: tok})
	return errParse
}

func (p *Parser) failExpected(tag TokenTag) error {
	p.diags = append(p.diags, Diagnostic{Tag: DiagExpectedToken, Token: p.tok, Expected: tag})
	return errParse
}

// --- node table and extra data ---

func (p *Parser) addNode(tag NodeTag, mainToken TokenIndex, data NodeData) NodeIndex {
	i := NodeIndex(len(p.nodeTags))
	p.nodeTags = append(p.nodeTags, tag)
	p.nodeTokens = append(p.nodeTokens, mainToken)
	p.nodeData = append(p.nodeData, data)
	return i
}

// addExtra writes a fixed-shape record's fields as consecutive words and
// returns the starting offset.
func (p *Parser) addExtra(fields ...uint32) ExtraIndex {
	off := ExtraIndex(len(p.extra))
	p.extra = append(p.extra, fields...)
	return off
}

// addScratch copies scratch[mark:] into extra and returns the run's
// (offset, count). The caller still owns the truncation back to mark.
func (p *Parser) addScratch(mark int) (ExtraIndex, uint32) {
	off := ExtraIndex(len(p.extra))
	for _, n := range p.scratch[mark:] {
		p.extra = append(p.extra, uint32(n))
	}
	return off, uint32(len(p.scratch) - mark)
}

func (p *Parser) truncateScratch(mark int) {
	p.scratch = p.scratch[:mark]
}

// --- grammar ---

// parseRoot appends the root node first with a placeholder payload and
// patches it once the top-level items are known. This is the only in-place
// mutation of the node table.
func (p *Parser) parseRoot() error {
	root := p.addNode(NodeRoot, 0, NodeData{})
	mark := len(p.scratch)
	defer p.truncateScratch(mark)

	for p.peek() != TokenEOF {
		var item NodeIndex
		var err error
		switch p.peek() {
		case TokenKwPackage:
			item, err = p.parsePackageDecl()
		case TokenKwUse:
			item, err = p.parseTopLevelUse()
		case TokenKwWorld:
			item, err = p.parseWorld()
		case TokenKwInterface:
			item, err = p.parseInterfaceDecl()
		default:
			return p.fail(DiagExpectedTopLevelItem)
		}
		if err != nil {
			return err
		}
		p.scratch = append(p.scratch, item)
	}

	start, count := p.addScratch(mark)
	p.nodeData[root] = NodeData{LHS: uint32(start), RHS: count}
	return nil
}

// package ns:name[@version];
func (p *Parser) parsePackageDecl() (NodeIndex, error) {
	kw := p.next()
	ns, err := p.expect(TokenIdent)
	if err != nil {
		return 0, err
	}
	if _, err := p.expect(TokenColon); err != nil {
		return 0, err
	}
	name, err := p.expect(TokenIdent)
	if err != nil {
		return 0, err
	}
	version, versionLen := NilToken, uint32(0)
	if p.peek() == TokenAt {
		version, versionLen, err = p.parseVersionSuffix()
		if err != nil {
			return 0, err
		}
	}
	if _, err := p.expect(TokenSemicolon); err != nil {
		return 0, err
	}
	off := p.addExtra(uint32(ns), uint32(name), uint32(version), versionLen)
	return p.addNode(NodePackageDecl, kw, NodeData{LHS: uint32(off)}), nil
}

// parseVersionSuffix is called with the cursor on '@'. It greedily consumes
// identifier/integer/'-'/'+'/'.' tokens with one exception: a '.' whose
// following token is '{' is given back, because it introduces a use
// statement's name list rather than continuing the version. The captured
// source text is then validated holistically against strict semver.
func (p *Parser) parseVersionSuffix() (TokenIndex, uint32, error) {
	p.next() // '@'
	first := p.tok
	count := uint32(0)
scan:
	for {
		switch p.peek() {
		case TokenIdent, TokenInteger, TokenMinus, TokenPlus:
			p.next()
			count++
		case TokenDot:
			p.next()
			if p.peek() == TokenLBrace {
				p.retreat()
				break scan
			}
			count++
		default:
			break scan
		}
	}

	text := ""
	if count > 0 {
		start := p.tokens[first].Start
		last := p.tokens[uint32(first)+count-1]
		text = string(p.source[start : last.Start+last.Len])
	}
	if !isValidSemver(text) {
		return 0, 0, p.failAt(DiagInvalidVersion, first)
	}
	return first, count, nil
}

// use path [as name]; or use path.{ names };
func (p *Parser) parseTopLevelUse() (NodeIndex, error) {
	kw := p.next()
	path, err := p.parseUsePath()
	if err != nil {
		return 0, err
	}
	if p.peek() == TokenDot {
		p.next()
		return p.parseUseNameList(kw, path)
	}
	alias := NilToken
	if p.peek() == TokenKwAs {
		p.next()
		alias, err = p.expect(TokenIdent)
		if err != nil {
			return 0, err
		}
	}
	if _, err := p.expect(TokenSemicolon); err != nil {
		return 0, err
	}
	return p.addNode(NodeTopLevelUse, kw, NodeData{LHS: uint32(path), RHS: uint32(alias)}), nil
}

// [ns:pkg/]name[@version]
func (p *Parser) parseUsePath() (NodeIndex, error) {
	first, err := p.expect(TokenIdent)
	if err != nil {
		return 0, err
	}
	ns, pkg, name := NilToken, NilToken, first
	if p.peek() == TokenColon {
		p.next()
		pkgTok, err := p.expect(TokenIdent)
		if err != nil {
			return 0, err
		}
		if _, err := p.expect(TokenSlash); err != nil {
			return 0, err
		}
		name, err = p.expect(TokenIdent)
		if err != nil {
			return 0, err
		}
		ns, pkg = first, pkgTok
	}
	version, versionLen := NilToken, uint32(0)
	if p.peek() == TokenAt {
		version, versionLen, err = p.parseVersionSuffix()
		if err != nil {
			return 0, err
		}
	}
	off := p.addExtra(uint32(ns), uint32(pkg), uint32(name), uint32(version), versionLen)
	return p.addNode(NodeUsePath, first, NodeData{LHS: uint32(off)}), nil
}

// world name { items }
func (p *Parser) parseWorld() (NodeIndex, error) {
	p.next() // 'world'
	name, err := p.expect(TokenIdent)
	if err != nil {
		return 0, err
	}
	if _, err := p.expect(TokenLBrace); err != nil {
		return 0, err
	}
	mark := len(p.scratch)
	defer p.truncateScratch(mark)
	for p.peek() != TokenRBrace {
		item, err := p.parseWorldItem()
		if err != nil {
			return 0, err
		}
		p.scratch = append(p.scratch, item)
	}
	p.next() // '}'
	start, count := p.addScratch(mark)
	return p.addNode(NodeWorldDecl, name, NodeData{LHS: uint32(start), RHS: count}), nil
}

// interface name { items }
func (p *Parser) parseInterfaceDecl() (NodeIndex, error) {
	p.next() // 'interface'
	name, err := p.expect(TokenIdent)
	if err != nil {
		return 0, err
	}
	start, count, err := p.parseInterfaceBody()
	if err != nil {
		return 0, err
	}
	return p.addNode(NodeInterfaceDecl, name, NodeData{LHS: uint32(start), RHS: count}), nil
}

// parseInterfaceBody parses '{' items '}' and returns the item run.
func (p *Parser) parseInterfaceBody() (ExtraIndex, uint32, error) {
	if _, err := p.expect(TokenLBrace); err != nil {
		return 0, 0, err
	}
	mark := len(p.scratch)
	defer p.truncateScratch(mark)
	for p.peek() != TokenRBrace {
		item, err := p.parseInterfaceItem()
		if err != nil {
			return 0, 0, err
		}
		p.scratch = append(p.scratch, item)
	}
	p.next() // '}'
	start, count := p.addScratch(mark)
	return start, count, nil
}

func (p *Parser) parseWorldItem() (NodeIndex, error) {
	switch p.peek() {
	case TokenKwExport:
		return p.parseExternItem(true)
	case TokenKwImport:
		return p.parseExternItem(false)
	case TokenKwInclude:
		return p.parseInclude()
	case TokenKwType:
		return p.parseTypeAlias()
	case TokenKwRecord:
		return p.parseRecord()
	case TokenKwFlags:
		return p.parseFlags()
	case TokenKwEnum:
		return p.parseEnum()
	case TokenKwVariant:
		return p.parseVariant()
	case TokenKwResource:
		return p.parseResource()
	case TokenKwUse:
		return p.parseUseDecl()
	}
	return 0, p.fail(DiagExpectedWorldItem)
}

func (p *Parser) parseInterfaceItem() (NodeIndex, error) {
	switch p.peek() {
	case TokenKwType:
		return p.parseTypeAlias()
	case TokenKwRecord:
		return p.parseRecord()
	case TokenKwFlags:
		return p.parseFlags()
	case TokenKwEnum:
		return p.parseEnum()
	case TokenKwVariant:
		return p.parseVariant()
	case TokenKwResource:
		return p.parseResource()
	case TokenKwUse:
		return p.parseUseDecl()
	case TokenIdent:
		name := p.next()
		if _, err := p.expect(TokenColon); err != nil {
			return 0, err
		}
		fn, err := p.parseFuncType()
		if err != nil {
			return 0, err
		}
		if _, err := p.expect(TokenSemicolon); err != nil {
			return 0, err
		}
		return p.addNode(NodeFuncItem, name, NodeData{LHS: uint32(fn)}), nil
	}
	return 0, p.fail(DiagExpectedInterfaceItem)
}

// parseExternItem handles the grammar's one backtracking point. An export
// or import is either "name ':' func-type ';'", "name ':' 'interface'
// '{'...'}'", or a bare "use-path ';'". The first two share a two-token
// prefix with a namespaced use-path, so the identifier and colon are
// consumed speculatively; when neither 'func' nor 'interface' follows, the
// cursor snaps back to before the identifier and the whole construct
// re-parses as a use-path.
func (p *Parser) parseExternItem(isExport bool) (NodeIndex, error) {
	kw := p.next() // 'export' or 'import'

	if p.peek() == TokenIdent {
		save := p.tok
		name := p.next()
		if p.peek() == TokenColon {
			p.next()
			switch p.peek() {
			case TokenKwFunc:
				fn, err := p.parseFuncType()
				if err != nil {
					return 0, err
				}
				if _, err := p.expect(TokenSemicolon); err != nil {
					return 0, err
				}
				tag := NodeImportFunc
				if isExport {
					tag = NodeExportFunc
				}
				return p.addNode(tag, name, NodeData{LHS: uint32(fn)}), nil
			case TokenKwInterface:
				p.next()
				start, count, err := p.parseInterfaceBody()
				if err != nil {
					return 0, err
				}
				tag := NodeImportInterface
				if isExport {
					tag = NodeExportInterface
				}
				return p.addNode(tag, name, NodeData{LHS: uint32(start), RHS: count}), nil
			}
		}
		p.tok = save
	}

	path, err := p.parseUsePath()
	if err != nil {
		return 0, err
	}
	if _, err := p.expect(TokenSemicolon); err != nil {
		return 0, err
	}
	tag := NodeImportPath
	if isExport {
		tag = NodeExportPath
	}
	return p.addNode(tag, kw, NodeData{LHS: uint32(path)}), nil
}

// include path [with { a as b, ... }];
func (p *Parser) parseInclude() (NodeIndex, error) {
	kw := p.next()
	path, err := p.parseUsePath()
	if err != nil {
		return 0, err
	}
	withOff := NilExtra
	if p.peek() == TokenKwWith {
		p.next()
		if _, err := p.expect(TokenLBrace); err != nil {
			return 0, err
		}
		mark := len(p.scratch)
		defer p.truncateScratch(mark)
		for p.peek() != TokenRBrace {
			name, err := p.expect(TokenIdent)
			if err != nil {
				return 0, err
			}
			if _, err := p.expect(TokenKwAs); err != nil {
				return 0, err
			}
			alias, err := p.expect(TokenIdent)
			if err != nil {
				return 0, err
			}
			p.scratch = append(p.scratch, p.addNode(NodeIncludeName, name, NodeData{LHS: uint32(alias)}))
			if p.peek() != TokenComma {
				break
			}
			p.next()
		}
		if _, err := p.expect(TokenRBrace); err != nil {
			return 0, err
		}
		start, count := p.addScratch(mark)
		withOff = p.addExtra(uint32(start), count)
	}
	if _, err := p.expect(TokenSemicolon); err != nil {
		return 0, err
	}
	return p.addNode(NodeInclude, kw, NodeData{LHS: uint32(path), RHS: uint32(withOff)}), nil
}

// type name = ty;
func (p *Parser) parseTypeAlias() (NodeIndex, error) {
	p.next() // 'type'
	name, err := p.expect(TokenIdent)
	if err != nil {
		return 0, err
	}
	if _, err := p.expect(TokenEquals); err != nil {
		return 0, err
	}
	ty, err := p.parseType()
	if err != nil {
		return 0, err
	}
	if _, err := p.expect(TokenSemicolon); err != nil {
		return 0, err
	}
	return p.addNode(NodeTypeAlias, name, NodeData{LHS: uint32(ty)}), nil
}

// record name { name: ty, ... }
func (p *Parser) parseRecord() (NodeIndex, error) {
	p.next() // 'record'
	name, err := p.expect(TokenIdent)
	if err != nil {
		return 0, err
	}
	if _, err := p.expect(TokenLBrace); err != nil {
		return 0, err
	}
	mark := len(p.scratch)
	defer p.truncateScratch(mark)
	for p.peek() != TokenRBrace {
		if p.peek() != TokenIdent {
			return 0, p.fail(DiagExpectedRecordField)
		}
		fieldName := p.next()
		if _, err := p.expect(TokenColon); err != nil {
			return 0, err
		}
		ty, err := p.parseType()
		if err != nil {
			return 0, err
		}
		p.scratch = append(p.scratch, p.addNode(NodeRecordField, fieldName, NodeData{LHS: uint32(ty)}))
		if p.peek() != TokenComma {
			break
		}
		p.next()
	}
	if _, err := p.expect(TokenRBrace); err != nil {
		return 0, err
	}
	start, count := p.addScratch(mark)
	return p.addNode(NodeRecordDecl, name, NodeData{LHS: uint32(start), RHS: count}), nil
}

// flags name { a, b, ... }
func (p *Parser) parseFlags() (NodeIndex, error) {
	p.next() // 'flags'
	name, err := p.expect(TokenIdent)
	if err != nil {
		return 0, err
	}
	start, count, err := p.parseBareNameList(NodeFlagsField, DiagExpectedFlagsField)
	if err != nil {
		return 0, err
	}
	return p.addNode(NodeFlagsDecl, name, NodeData{LHS: uint32(start), RHS: count}), nil
}

// enum name { a, b, ... }
func (p *Parser) parseEnum() (NodeIndex, error) {
	p.next() // 'enum'
	name, err := p.expect(TokenIdent)
	if err != nil {
		return 0, err
	}
	start, count, err := p.parseBareNameList(NodeEnumCase, DiagExpectedEnumCase)
	if err != nil {
		return 0, err
	}
	return p.addNode(NodeEnumDecl, name, NodeData{LHS: uint32(start), RHS: count}), nil
}

// parseBareNameList parses '{' name, name, ... '}' where each entry is a
// bare identifier, producing one node of the given tag per name.
func (p *Parser) parseBareNameList(tag NodeTag, diag DiagTag) (ExtraIndex, uint32, error) {
	if _, err := p.expect(TokenLBrace); err != nil {
		return 0, 0, err
	}
	mark := len(p.scratch)
	defer p.truncateScratch(mark)
	for p.peek() != TokenRBrace {
		if p.peek() != TokenIdent {
			return 0, 0, p.fail(diag)
		}
		name := p.next()
		p.scratch = append(p.scratch, p.addNode(tag, name, NodeData{}))
		if p.peek() != TokenComma {
			break
		}
		p.next()
	}
	if _, err := p.expect(TokenRBrace); err != nil {
		return 0, 0, err
	}
	start, count := p.addScratch(mark)
	return start, count, nil
}

// variant name { case, case(ty), ... }
func (p *Parser) parseVariant() (NodeIndex, error) {
	p.next() // 'variant'
	name, err := p.expect(TokenIdent)
	if err != nil {
		return 0, err
	}
	if _, err := p.expect(TokenLBrace); err != nil {
		return 0, err
	}
	mark := len(p.scratch)
	defer p.truncateScratch(mark)
	for p.peek() != TokenRBrace {
		if p.peek() != TokenIdent {
			return 0, p.fail(DiagExpectedVariantCase)
		}
		caseName := p.next()
		payload := NilNode
		if p.peek() == TokenLParen {
			p.next()
			payload, err = p.parseType()
			if err != nil {
				return 0, err
			}
			if _, err := p.expect(TokenRParen); err != nil {
				return 0, err
			}
		}
		p.scratch = append(p.scratch, p.addNode(NodeVariantCase, caseName, NodeData{LHS: uint32(payload)}))
		if p.peek() != TokenComma {
			break
		}
		p.next()
	}
	if _, err := p.expect(TokenRBrace); err != nil {
		return 0, err
	}
	start, count := p.addScratch(mark)
	return p.addNode(NodeVariantDecl, name, NodeData{LHS: uint32(start), RHS: count}), nil
}

// resource name; or resource name { members }
func (p *Parser) parseResource() (NodeIndex, error) {
	p.next() // 'resource'
	name, err := p.expect(TokenIdent)
	if err != nil {
		return 0, err
	}
	if p.peek() == TokenSemicolon {
		p.next()
		start, count := p.addScratch(len(p.scratch))
		return p.addNode(NodeResourceDecl, name, NodeData{LHS: uint32(start), RHS: count}), nil
	}
	if _, err := p.expect(TokenLBrace); err != nil {
		return 0, err
	}
	mark := len(p.scratch)
	defer p.truncateScratch(mark)
	for p.peek() != TokenRBrace {
		member, err := p.parseResourceMember()
		if err != nil {
			return 0, err
		}
		p.scratch = append(p.scratch, member)
	}
	p.next() // '}'
	start, count := p.addScratch(mark)
	return p.addNode(NodeResourceDecl, name, NodeData{LHS: uint32(start), RHS: count}), nil
}

func (p *Parser) parseResourceMember() (NodeIndex, error) {
	switch p.peek() {
	case TokenKwConstructor:
		ctor := p.next()
		if _, err := p.expect(TokenLParen); err != nil {
			return 0, err
		}
		start, count, err := p.parseParams()
		if err != nil {
			return 0, err
		}
		if _, err := p.expect(TokenSemicolon); err != nil {
			return 0, err
		}
		return p.addNode(NodeResourceConstructor, ctor, NodeData{LHS: uint32(start), RHS: count}), nil
	case TokenIdent:
		name := p.next()
		if _, err := p.expect(TokenColon); err != nil {
			return 0, err
		}
		tag := NodeResourceMethod
		if p.peek() == TokenKwStatic {
			p.next()
			tag = NodeResourceStaticMethod
		}
		fn, err := p.parseFuncType()
		if err != nil {
			return 0, err
		}
		if _, err := p.expect(TokenSemicolon); err != nil {
			return 0, err
		}
		return p.addNode(tag, name, NodeData{LHS: uint32(fn)}), nil
	}
	return 0, p.fail(DiagExpectedResourceMethod)
}

// func(params) [-> ty]
func (p *Parser) parseFuncType() (NodeIndex, error) {
	kw, err := p.expect(TokenKwFunc)
	if err != nil {
		return 0, err
	}
	if _, err := p.expect(TokenLParen); err != nil {
		return 0, err
	}
	start, count, err := p.parseParams()
	if err != nil {
		return 0, err
	}
	result := NilNode
	if p.peek() == TokenArrow {
		p.next()
		result, err = p.parseType()
		if err != nil {
			return 0, err
		}
	}
	off := p.addExtra(uint32(start), count, uint32(result))
	return p.addNode(NodeFuncType, kw, NodeData{LHS: uint32(off)}), nil
}

// parseParams is called with '(' already consumed; it parses
// "name: ty, ..." up to and including the closing ')'.
func (p *Parser) parseParams() (ExtraIndex, uint32, error) {
	mark := len(p.scratch)
	defer p.truncateScratch(mark)
	for p.peek() != TokenRParen {
		name, err := p.expect(TokenIdent)
		if err != nil {
			return 0, 0, err
		}
		if _, err := p.expect(TokenColon); err != nil {
			return 0, 0, err
		}
		ty, err := p.parseType()
		if err != nil {
			return 0, 0, err
		}
		p.scratch = append(p.scratch, p.addNode(NodeParam, name, NodeData{LHS: uint32(ty)}))
		if p.peek() != TokenComma {
			break
		}
		p.next()
	}
	if _, err := p.expect(TokenRParen); err != nil {
		return 0, 0, err
	}
	start, count := p.addScratch(mark)
	return start, count, nil
}

// use path.{ a, b as c, ... };
func (p *Parser) parseUseDecl() (NodeIndex, error) {
	kw := p.next() // 'use'
	path, err := p.parseUsePath()
	if err != nil {
		return 0, err
	}
	if _, err := p.expect(TokenDot); err != nil {
		return 0, err
	}
	return p.parseUseNameList(kw, path)
}

// parseUseNameList parses the "{ name [as alias], ... };" tail shared by
// the two renaming use forms.
func (p *Parser) parseUseNameList(kw TokenIndex, path NodeIndex) (NodeIndex, error) {
	if _, err := p.expect(TokenLBrace); err != nil {
		return 0, err
	}
	mark := len(p.scratch)
	defer p.truncateScratch(mark)
	for p.peek() != TokenRBrace {
		name, err := p.expect(TokenIdent)
		if err != nil {
			return 0, err
		}
		alias := NilToken
		if p.peek() == TokenKwAs {
			p.next()
			alias, err = p.expect(TokenIdent)
			if err != nil {
				return 0, err
			}
		}
		p.scratch = append(p.scratch, p.addNode(NodeUseName, name, NodeData{LHS: uint32(alias)}))
		if p.peek() != TokenComma {
			break
		}
		p.next()
	}
	if _, err := p.expect(TokenRBrace); err != nil {
		return 0, err
	}
	if _, err := p.expect(TokenSemicolon); err != nil {
		return 0, err
	}
	start, count := p.addScratch(mark)
	runOff := p.addExtra(uint32(start), count)
	return p.addNode(NodeUseDecl, kw, NodeData{LHS: uint32(path), RHS: uint32(runOff)}), nil
}

// parseType parses one type expression.
func (p *Parser) parseType() (NodeIndex, error) {
	switch tag := p.peek(); {
	case tag.IsPrimitiveType():
		return p.addNode(NodeTypePrimitive, p.next(), NodeData{}), nil
	case tag == TokenIdent:
		return p.addNode(NodeTypeNamed, p.next(), NodeData{}), nil
	case tag == TokenKwList:
		return p.parseWrapperType(NodeTypeList)
	case tag == TokenKwOption:
		return p.parseWrapperType(NodeTypeOption)
	case tag == TokenKwBorrow:
		return p.parseWrapperType(NodeTypeBorrow)
	case tag == TokenKwTuple:
		return p.parseTupleType()
	case tag == TokenKwResult:
		return p.parseResultType()
	}
	return 0, p.fail(DiagExpectedType)
}

// list<T>, option<T>, borrow<T>
func (p *Parser) parseWrapperType(tag NodeTag) (NodeIndex, error) {
	kw := p.next()
	if _, err := p.expect(TokenLT); err != nil {
		return 0, err
	}
	elem, err := p.parseType()
	if err != nil {
		return 0, err
	}
	if _, err := p.expect(TokenGT); err != nil {
		return 0, err
	}
	return p.addNode(tag, kw, NodeData{LHS: uint32(elem)}), nil
}

// tuple<T, ...>
func (p *Parser) parseTupleType() (NodeIndex, error) {
	kw := p.next()
	if _, err := p.expect(TokenLT); err != nil {
		return 0, err
	}
	mark := len(p.scratch)
	defer p.truncateScratch(mark)
	for p.peek() != TokenGT {
		elem, err := p.parseType()
		if err != nil {
			return 0, err
		}
		p.scratch = append(p.scratch, elem)
		if p.peek() != TokenComma {
			break
		}
		p.next()
	}
	if _, err := p.expect(TokenGT); err != nil {
		return 0, err
	}
	start, count := p.addScratch(mark)
	return p.addNode(NodeTypeTuple, kw, NodeData{LHS: uint32(start), RHS: count}), nil
}

// result, result<T>, result<_, E>, result<T, E>
func (p *Parser) parseResultType() (NodeIndex, error) {
	kw := p.next()
	if p.peek() != TokenLT {
		return p.addNode(NodeTypeResult, kw, NodeData{LHS: uint32(NilNode), RHS: uint32(NilNode)}), nil
	}
	p.next()
	ok, errNode := NilNode, NilNode
	if p.peek() == TokenUnderscore {
		p.next()
	} else {
		var err error
		ok, err = p.parseType()
		if err != nil {
			return 0, err
		}
	}
	if p.peek() == TokenComma {
		p.next()
		var err error
		errNode, err = p.parseType()
		if err != nil {
			return 0, err
		}
	}
	if _, err := p.expect(TokenGT); err != nil {
		return 0, err
	}
	return p.addNode(NodeTypeResult, kw, NodeData{LHS: uint32(ok), RHS: uint32(errNode)}), nil
}
