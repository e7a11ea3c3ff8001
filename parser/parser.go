package parser

import (
	"github.com/solidity-analyzer/solidity-analyzer/diag"
	"github.com/solidity-analyzer/solidity-analyzer/span"
)

// Parse lexes and parses Solidity source text, returning the resulting tree
// together with any syntax diagnostics. Parse never panics: on malformed
// input it records a diagnostic and recovers at the next statement or item
// boundary, so callers always get a usable (if partial) tree.
func Parse(text string) (*Tree, []diag.Diagnostic) {
	all := Lex(text)
	toks := make([]Token, 0, len(all))
	for _, t := range all {
		if t.Kind != TokComment {
			toks = append(toks, t)
		}
	}
	p := &parser{toks: toks, tree: newTree(), diags: diag.NewCollector(), textLen: uint32(len(text))}
	p.parseSourceUnit()
	return p.tree, p.diags.Diagnostics()
}

type parser struct {
	toks    []Token
	pos     int
	tree    *Tree
	diags   *diag.Collector
	textLen uint32
}

func (p *parser) cur() Token {
	if p.pos >= len(p.toks) {
		return Token{Kind: TokEOF, Span: span.Point(p.textLen)}
	}
	return p.toks[p.pos]
}

func (p *parser) advance() Token {
	t := p.cur()
	if p.pos < len(p.toks) {
		p.pos++
	}
	return t
}

func (p *parser) atEOF() bool { return p.cur().Kind == TokEOF }

func (p *parser) isPunct(s string) bool {
	t := p.cur()
	return t.Kind == TokPunct && t.Text == s
}

func (p *parser) isIdent(s string) bool {
	t := p.cur()
	return t.Kind == TokIdent && t.Text == s
}

func (p *parser) errorf(sp span.Span, code, msg string) {
	p.diags.Add(diag.New(sp, diag.Error, code, msg))
}

func (p *parser) alloc(n node) NodeId { return p.tree.alloc(n) }

func (p *parser) addChild(parent, child NodeId) { p.tree.appendChild(parent, child) }

// --- top level -------------------------------------------------------

func (p *parser) parseSourceUnit() {
	root := p.alloc(node{kind: KindSourceUnit})
	for !p.atEOF() {
		before := p.pos
		child := p.parseTopLevelItem(root)
		if !child.IsZero() {
			p.addChild(root, child)
		}
		if p.pos == before {
			// Guaranteed forward progress on unrecognized input.
			p.advance()
		}
	}
	p.tree.nodes[root].fullSpan = span.New(0, p.textLen)
}

func (p *parser) parseTopLevelItem(parent NodeId) NodeId {
	tok := p.cur()
	if tok.Kind != TokIdent {
		if tok.Kind == TokEOF {
			return 0
		}
		p.errorf(tok.Span, "unexpected-token", "unexpected token at file scope")
		return 0
	}

	switch tok.Text {
	case "pragma":
		return p.parsePragma(parent)
	case "import":
		return p.parseImportDirective(parent)
	case "abstract":
		start := p.advance()
		if p.isIdent("contract") {
			p.advance()
			return p.parseContractLike(parent, KindContractDef, start.Span.Start)
		}
		p.errorf(start.Span, "expected-contract", "expected 'contract' after 'abstract'")
		return 0
	case "contract":
		p.advance()
		return p.parseContractLike(parent, KindContractDef, tok.Span.Start)
	case "library":
		p.advance()
		return p.parseContractLike(parent, KindLibraryDef, tok.Span.Start)
	case "interface":
		p.advance()
		return p.parseContractLike(parent, KindInterfaceDef, tok.Span.Start)
	case "struct":
		return p.parseStructDef(parent)
	case "enum":
		return p.parseEnumDef(parent)
	case "event":
		return p.parseEventOrErrorDef(parent, KindEventDef)
	case "error":
		return p.parseEventOrErrorDef(parent, KindErrorDef)
	case "function":
		return p.parseFunctionLike(parent, KindFunctionDef)
	case "modifier":
		return p.parseModifierDef(parent)
	case "type":
		return p.parseUdvt(parent)
	case "using":
		return p.parseUsingFor(parent)
	default:
		return p.parseStateVarOrConstant(parent)
	}
}

// --- pragma / import ---------------------------------------------------

func (p *parser) parsePragma(parent NodeId) NodeId {
	start := p.advance().Span.Start
	end := p.skipToSemicolon()
	return p.alloc(node{kind: KindPragma, fullSpan: span.New(start, end), parent: parent})
}

func (p *parser) parseImportDirective(parent NodeId) NodeId {
	start := p.advance().Span.Start // "import"
	info := &ImportInfo{}

	switch {
	case p.cur().Kind == TokString:
		// import "path"; | import "path" as X;
		info.ImportPath = unquote(p.cur().Text)
		info.PathSpan = p.cur().Span
		p.advance()
		if p.isIdent("as") {
			p.advance()
			if p.cur().Kind == TokIdent {
				info.Variant = ImportSourceAlias
				info.Alias = p.cur().Text
				info.AliasSpan = p.cur().Span
				p.advance()
			}
		} else {
			info.Variant = ImportPlain
		}
	case p.isPunct("*"):
		// import * as X from "path";
		p.advance()
		if p.isIdent("as") {
			p.advance()
		}
		if p.cur().Kind == TokIdent {
			info.Alias = p.cur().Text
			info.AliasSpan = p.cur().Span
			p.advance()
		}
		info.Variant = ImportGlob
		if p.isIdent("from") {
			p.advance()
		}
		if p.cur().Kind == TokString {
			info.ImportPath = unquote(p.cur().Text)
			info.PathSpan = p.cur().Span
			p.advance()
		}
	case p.isPunct("{"):
		// import {A, B as C} from "path";
		p.advance()
		info.Variant = ImportAliases
		for !p.isPunct("}") && !p.atEOF() {
			if p.cur().Kind != TokIdent {
				p.advance()
				continue
			}
			item := AliasItem{OriginalName: p.cur().Text, LocalName: p.cur().Text, LocalSpan: p.cur().Span}
			p.advance()
			if p.isIdent("as") {
				p.advance()
				if p.cur().Kind == TokIdent {
					item.LocalName = p.cur().Text
					item.LocalSpan = p.cur().Span
					p.advance()
				}
			}
			info.Aliases = append(info.Aliases, item)
			if p.isPunct(",") {
				p.advance()
			}
		}
		if p.isPunct("}") {
			p.advance()
		}
		if p.isIdent("from") {
			p.advance()
		}
		if p.cur().Kind == TokString {
			info.ImportPath = unquote(p.cur().Text)
			info.PathSpan = p.cur().Span
			p.advance()
		}
	}

	end := p.skipToSemicolon()
	return p.alloc(node{kind: KindImportDirective, fullSpan: span.New(start, end), parent: parent, importInfo: info})
}

func unquote(s string) string {
	if len(s) >= 2 {
		return s[1 : len(s)-1]
	}
	return s
}

// --- contract-like (contract/library/interface) ------------------------

func (p *parser) parseContractLike(parent NodeId, kind NodeKind, start uint32) NodeId {
	var name string
	var nameSpan span.Span
	if p.cur().Kind == TokIdent {
		name = p.cur().Text
		nameSpan = p.cur().Span
		p.advance()
	}
	var bases []string
	var baseSpans []span.Span
	if p.isIdent("is") {
		p.advance()
		bases, baseSpans = p.parseInheritanceList()
	} else {
		p.skipBalancedUntilPunct("{")
	}
	self := p.alloc(node{kind: kind, name: name, nameSpan: nameSpan, parent: parent, names: bases, nameSpans: baseSpans})

	if p.isPunct("{") {
		p.advance()
		for !p.isPunct("}") && !p.atEOF() {
			before := p.pos
			child := p.parseContractMember(self)
			if !child.IsZero() {
				p.addChild(self, child)
			}
			if p.pos == before {
				p.advance()
			}
		}
		if p.isPunct("}") {
			p.advance()
		}
	}
	p.tree.nodes[self].fullSpan = span.New(start, p.lastEnd())
	return self
}

// parseInheritanceList parses the comma-separated base list of a "contract
// X is Base1(args), Base2 { ... }" declaration, stopping before "{". Only
// the leading identifier of each comma-group is recorded as a base name;
// constructor argument tokens (inside the base's own parens) are skipped,
// the same declarator-vs-expression tradeoff parseParameterList makes.
func (p *parser) parseInheritanceList() ([]string, []span.Span) {
	var names []string
	var spans []span.Span
	depth := 0
	atGroupStart := true
	for !p.atEOF() {
		if depth == 0 && p.isPunct("{") {
			break
		}
		if depth == 0 && atGroupStart && p.cur().Kind == TokIdent {
			names = append(names, p.cur().Text)
			spans = append(spans, p.cur().Span)
			atGroupStart = false
		}
		t := p.cur()
		if t.Kind == TokPunct {
			switch t.Text {
			case "(", "[":
				depth++
			case ")", "]":
				depth--
			case ",":
				if depth == 0 {
					atGroupStart = true
				}
			}
		}
		p.advance()
	}
	return names, spans
}

func (p *parser) parseContractMember(parent NodeId) NodeId {
	tok := p.cur()
	if tok.Kind != TokIdent {
		if p.isPunct("}") || tok.Kind == TokEOF {
			return 0
		}
		p.advance()
		return 0
	}
	switch tok.Text {
	case "constructor":
		return p.parseFunctionLike(parent, KindConstructorDef)
	case "fallback":
		return p.parseFunctionLike(parent, KindFallbackDef)
	case "receive":
		return p.parseFunctionLike(parent, KindReceiveDef)
	case "function":
		return p.parseFunctionLike(parent, KindFunctionDef)
	case "modifier":
		return p.parseModifierDef(parent)
	case "struct":
		return p.parseStructDef(parent)
	case "enum":
		return p.parseEnumDef(parent)
	case "event":
		return p.parseEventOrErrorDef(parent, KindEventDef)
	case "error":
		return p.parseEventOrErrorDef(parent, KindErrorDef)
	case "type":
		return p.parseUdvt(parent)
	case "using":
		return p.parseUsingFor(parent)
	default:
		return p.parseStateVarOrConstant(parent)
	}
}

// --- function / constructor / fallback / receive / modifier ------------

func (p *parser) parseFunctionLike(parent NodeId, kind NodeKind) NodeId {
	start := p.advance().Span.Start // the keyword
	var name string
	var nameSpan span.Span
	if kind == KindFunctionDef && p.cur().Kind == TokIdent {
		name = p.cur().Text
		nameSpan = p.cur().Span
		p.advance()
	}
	self := p.alloc(node{kind: kind, name: name, nameSpan: nameSpan, parent: parent})

	if p.isPunct("(") {
		params := p.parseParameterList(self)
		p.addChild(self, params)
	}
	headerStart := p.lastEnd()
	p.skipUntilReturnsBodyOrSemi()
	if p.isIdent("returns") {
		p.advance()
		if p.isPunct("(") {
			rets := p.parseParameterList(self)
			p.addChild(self, rets)
		}
		p.skipBalancedUntilAny("{", ";")
	}
	headerEnd := p.cur().Span.Start

	if p.isPunct("{") {
		body := p.parseBlock(self, KindBlock)
		p.addChild(self, body)
	} else if p.isPunct(";") {
		p.advance()
	}
	p.tree.nodes[self].headerSpan = span.New(headerStart, headerEnd)
	p.tree.nodes[self].fullSpan = span.New(start, p.lastEnd())
	return self
}

// skipUntilReturnsBodyOrSemi skips function-header modifiers (visibility,
// mutability, override(...), user modifiers) until it reaches the
// "returns" keyword, a body, or a trailing ";", all at bracket depth 0.
func (p *parser) skipUntilReturnsBodyOrSemi() {
	depth := 0
	for !p.atEOF() {
		if depth == 0 && (p.isPunct("{") || p.isPunct(";") || p.isIdent("returns")) {
			return
		}
		t := p.cur()
		if t.Kind == TokPunct {
			switch t.Text {
			case "(", "[":
				depth++
			case ")", "]":
				depth--
			}
		}
		p.advance()
	}
}

func (p *parser) parseModifierDef(parent NodeId) NodeId {
	start := p.advance().Span.Start // "modifier"
	var name string
	var nameSpan span.Span
	if p.cur().Kind == TokIdent {
		name = p.cur().Text
		nameSpan = p.cur().Span
		p.advance()
	}
	self := p.alloc(node{kind: KindModifierDef, name: name, nameSpan: nameSpan, parent: parent})
	if p.isPunct("(") {
		params := p.parseParameterList(self)
		p.addChild(self, params)
	}
	headerStart := p.lastEnd()
	p.skipBalancedUntilAny("{", ";")
	headerEnd := p.cur().Span.Start
	if p.isPunct("{") {
		body := p.parseBlock(self, KindBlock)
		p.addChild(self, body)
	} else if p.isPunct(";") {
		p.advance()
	}
	p.tree.nodes[self].headerSpan = span.New(headerStart, headerEnd)
	p.tree.nodes[self].fullSpan = span.New(start, p.lastEnd())
	return self
}

// parseParameterList parses a balanced "(...)" parameter list into a
// KindParameterList node with one KindParameter child per comma-separated
// group.
func (p *parser) parseParameterList(parent NodeId) NodeId {
	start := p.cur().Span.Start
	p.advance() // "("
	list := p.alloc(node{kind: KindParameterList, parent: parent})

	var group []Token
	depth := 0
	flush := func() {
		if len(group) == 0 {
			return
		}
		name, nameSpan := lastDeclaratorName(group)
		gs := span.New(group[0].Span.Start, group[len(group)-1].Span.End)
		param := p.alloc(node{kind: KindParameter, name: name, nameSpan: nameSpan, fullSpan: gs, parent: list})
		p.addChild(list, param)
		group = nil
	}
	for !p.atEOF() {
		t := p.cur()
		if t.Kind == TokPunct {
			switch t.Text {
			case "(", "[", "{":
				depth++
			case ")":
				if depth == 0 {
					flush()
					p.advance()
					p.tree.nodes[list].fullSpan = span.New(start, p.lastEnd())
					return list
				}
				depth--
			case "]", "}":
				depth--
			case ",":
				if depth == 0 {
					flush()
					p.advance()
					continue
				}
			}
		}
		group = append(group, t)
		p.advance()
	}
	flush()
	p.tree.nodes[list].fullSpan = span.New(start, p.lastEnd())
	return list
}

// lastDeclaratorName implements the heuristic: the parameter's name is its
// last identifier token, provided at least two identifier-like tokens are
// present (a bare type with no name yields zero).
func lastDeclaratorName(toks []Token) (string, span.Span) {
	idents := 0
	var last Token
	for _, t := range toks {
		if t.Kind == TokIdent {
			idents++
			last = t
		}
	}
	if idents >= 2 {
		return last.Text, last.Span
	}
	return "", span.Span{}
}

// --- struct / enum / event / error / udvt / using -----------------------

func (p *parser) parseStructDef(parent NodeId) NodeId {
	start := p.advance().Span.Start // "struct"
	var name string
	var nameSpan span.Span
	if p.cur().Kind == TokIdent {
		name = p.cur().Text
		nameSpan = p.cur().Span
		p.advance()
	}
	self := p.alloc(node{kind: KindStructDef, name: name, nameSpan: nameSpan, parent: parent})
	if p.isPunct("{") {
		p.advance()
		for !p.isPunct("}") && !p.atEOF() {
			fieldStart := p.cur().Span.Start
			var group []Token
			for !p.isPunct(";") && !p.isPunct("}") && !p.atEOF() {
				group = append(group, p.cur())
				p.advance()
			}
			if p.isPunct(";") {
				p.advance()
			}
			if len(group) > 0 {
				fname, fspan := lastDeclaratorName(group)
				field := p.alloc(node{kind: KindStructField, name: fname, nameSpan: fspan,
					fullSpan: span.New(fieldStart, p.lastEnd()), parent: self})
				p.addChild(self, field)
			}
		}
		if p.isPunct("}") {
			p.advance()
		}
	}
	p.tree.nodes[self].fullSpan = span.New(start, p.lastEnd())
	return self
}

func (p *parser) parseEnumDef(parent NodeId) NodeId {
	start := p.advance().Span.Start // "enum"
	var name string
	var nameSpan span.Span
	if p.cur().Kind == TokIdent {
		name = p.cur().Text
		nameSpan = p.cur().Span
		p.advance()
	}
	self := p.alloc(node{kind: KindEnumDef, name: name, nameSpan: nameSpan, parent: parent})
	var names []string
	var spans []span.Span
	if p.isPunct("{") {
		p.advance()
		for !p.isPunct("}") && !p.atEOF() {
			if p.cur().Kind == TokIdent {
				names = append(names, p.cur().Text)
				spans = append(spans, p.cur().Span)
				p.advance()
			} else if p.isPunct(",") {
				p.advance()
			} else {
				p.advance()
			}
		}
		if p.isPunct("}") {
			p.advance()
		}
	}
	p.tree.nodes[self].names = names
	p.tree.nodes[self].nameSpans = spans
	p.tree.nodes[self].fullSpan = span.New(start, p.lastEnd())
	return self
}

func (p *parser) parseEventOrErrorDef(parent NodeId, kind NodeKind) NodeId {
	start := p.advance().Span.Start // "event" | "error"
	var name string
	var nameSpan span.Span
	if p.cur().Kind == TokIdent {
		name = p.cur().Text
		nameSpan = p.cur().Span
		p.advance()
	}
	self := p.alloc(node{kind: kind, name: name, nameSpan: nameSpan, parent: parent})
	if p.isPunct("(") {
		params := p.parseParameterList(self)
		p.addChild(self, params)
	}
	end := p.skipToSemicolon()
	p.tree.nodes[self].fullSpan = span.New(start, end)
	return self
}

func (p *parser) parseUdvt(parent NodeId) NodeId {
	start := p.advance().Span.Start // "type"
	var name string
	var nameSpan span.Span
	if p.cur().Kind == TokIdent {
		name = p.cur().Text
		nameSpan = p.cur().Span
		p.advance()
	}
	end := p.skipToSemicolon()
	return p.alloc(node{kind: KindUdvtDef, name: name, nameSpan: nameSpan, fullSpan: span.New(start, end), parent: parent})
}

func (p *parser) parseUsingFor(parent NodeId) NodeId {
	start := p.advance().Span.Start // "using"
	end := p.skipToSemicolon()
	return p.alloc(node{kind: KindUsingFor, fullSpan: span.New(start, end), parent: parent})
}

func (p *parser) parseStateVarOrConstant(parent NodeId) NodeId {
	start := p.cur().Span.Start
	var group []Token
	isConstant := false
	depth := 0
	for !p.atEOF() {
		t := p.cur()
		if t.Kind == TokPunct {
			switch t.Text {
			case "(", "[", "{":
				depth++
			case ")", "]", "}":
				if depth == 0 {
					// Stray close at file/contract scope — bail out, the
					// caller (parseContractLike/parseSourceUnit) handles it.
					goto done
				}
				depth--
			case ";":
				if depth == 0 {
					goto done
				}
			}
		}
		if t.Kind == TokIdent && t.Text == "constant" {
			isConstant = true
		}
		group = append(group, t)
		p.advance()
	}
done:
	end := p.skipToSemicolon()
	if len(group) == 0 {
		return 0
	}
	name, nameSpan := lastDeclaratorName(group)
	if name == "" {
		// Not a recognizable declaration; treat as a recovered parse error
		// rather than silently dropping the tokens.
		p.errorf(span.New(start, end), "unrecognized-declaration", "could not parse declaration")
		return 0
	}
	return p.alloc(node{kind: KindStateVarDecl, name: name, nameSpan: nameSpan,
		fullSpan: span.New(start, end), parent: parent, isConstant: isConstant})
}

// --- statements / scopes -------------------------------------------------

func (p *parser) parseBlock(parent NodeId, kind NodeKind) NodeId {
	start := p.advance().Span.Start // "{"
	self := p.alloc(node{kind: kind, parent: parent})
	for !p.isPunct("}") && !p.atEOF() {
		before := p.pos
		stmt := p.parseStatement(self)
		if !stmt.IsZero() {
			p.addChild(self, stmt)
		}
		if p.pos == before {
			p.advance()
		}
	}
	end := p.cur().Span.End
	if p.isPunct("}") {
		p.advance()
	}
	p.tree.nodes[self].fullSpan = span.New(start, end)
	return self
}

func (p *parser) parseStatement(parent NodeId) NodeId {
	if p.isPunct("{") {
		return p.parseBlock(parent, KindBlock)
	}
	if p.isPunct("(") {
		return p.parseParenLeadStmt(parent)
	}
	if p.cur().Kind == TokIdent {
		switch p.cur().Text {
		case "unchecked":
			return p.parseUncheckedBlock(parent)
		case "if":
			return p.parseIfStmt(parent)
		case "for":
			return p.parseForStmt(parent)
		case "while":
			return p.parseWhileStmt(parent)
		case "do":
			return p.parseDoWhileStmt(parent)
		case "try":
			return p.parseTryStmt(parent)
		}
	}
	return p.parseVarDeclOrExprStmt(parent)
}

func (p *parser) parseUncheckedBlock(parent NodeId) NodeId {
	start := p.advance().Span.Start // "unchecked"
	self := p.alloc(node{kind: KindUncheckedBlock, parent: parent})
	if p.isPunct("{") {
		p.advance()
		for !p.isPunct("}") && !p.atEOF() {
			before := p.pos
			stmt := p.parseStatement(self)
			if !stmt.IsZero() {
				p.addChild(self, stmt)
			}
			if p.pos == before {
				p.advance()
			}
		}
		if p.isPunct("}") {
			p.advance()
		}
	}
	p.tree.nodes[self].fullSpan = span.New(start, p.lastEnd())
	return self
}

func (p *parser) parseIfStmt(parent NodeId) NodeId {
	start := p.advance().Span.Start // "if"
	self := p.alloc(node{kind: KindOtherStmt, parent: parent})
	p.skipBalancedParenGroup()

	thenStart := p.cur().Span.Start
	thenScope := p.alloc(node{kind: KindIfThenScope, parent: self})
	thenStmt := p.parseStatement(thenScope)
	if !thenStmt.IsZero() {
		p.addChild(thenScope, thenStmt)
	}
	p.tree.nodes[thenScope].fullSpan = span.New(thenStart, p.lastEnd())
	p.addChild(self, thenScope)

	if p.isIdent("else") {
		p.advance()
		elseStart := p.cur().Span.Start
		elseScope := p.alloc(node{kind: KindIfElseScope, parent: self})
		elseStmt := p.parseStatement(elseScope)
		if !elseStmt.IsZero() {
			p.addChild(elseScope, elseStmt)
		}
		p.tree.nodes[elseScope].fullSpan = span.New(elseStart, p.lastEnd())
		p.addChild(self, elseScope)
	}
	p.tree.nodes[self].fullSpan = span.New(start, p.lastEnd())
	return self
}

func (p *parser) parseForStmt(parent NodeId) NodeId {
	start := p.advance().Span.Start // "for"
	self := p.alloc(node{kind: KindOtherStmt, parent: parent})

	forScope := p.alloc(node{kind: KindForScope, parent: self})
	scopeStart := p.cur().Span.Start
	if p.isPunct("(") {
		p.advance()
		if !p.isPunct(";") {
			initStmt := p.parseVarDeclOrExprStmt(forScope)
			if !initStmt.IsZero() {
				p.addChild(forScope, initStmt)
			}
		} else {
			p.advance() // bare ';'
		}
		p.skipBalancedUntilPunct(")")
		if p.isPunct(")") {
			p.advance()
		}
	}
	bodyStmt := p.parseStatement(forScope)
	if !bodyStmt.IsZero() {
		p.addChild(forScope, bodyStmt)
	}
	p.tree.nodes[forScope].fullSpan = span.New(scopeStart, p.lastEnd())
	p.addChild(self, forScope)
	p.tree.nodes[self].fullSpan = span.New(start, p.lastEnd())
	return self
}

func (p *parser) parseWhileStmt(parent NodeId) NodeId {
	start := p.advance().Span.Start // "while"
	self := p.alloc(node{kind: KindOtherStmt, parent: parent})
	p.skipBalancedParenGroup()
	bodyStart := p.cur().Span.Start
	whileScope := p.alloc(node{kind: KindWhileScope, parent: self})
	bodyStmt := p.parseStatement(whileScope)
	if !bodyStmt.IsZero() {
		p.addChild(whileScope, bodyStmt)
	}
	p.tree.nodes[whileScope].fullSpan = span.New(bodyStart, p.lastEnd())
	p.addChild(self, whileScope)
	p.tree.nodes[self].fullSpan = span.New(start, p.lastEnd())
	return self
}

func (p *parser) parseDoWhileStmt(parent NodeId) NodeId {
	start := p.advance().Span.Start // "do"
	self := p.alloc(node{kind: KindOtherStmt, parent: parent})
	bodyStart := p.cur().Span.Start
	doScope := p.alloc(node{kind: KindDoWhileScope, parent: self})
	bodyStmt := p.parseStatement(doScope)
	if !bodyStmt.IsZero() {
		p.addChild(doScope, bodyStmt)
	}
	p.tree.nodes[doScope].fullSpan = span.New(bodyStart, p.lastEnd())
	p.addChild(self, doScope)
	if p.isIdent("while") {
		p.advance()
		p.skipBalancedParenGroup()
	}
	end := p.skipToSemicolon()
	p.tree.nodes[self].fullSpan = span.New(start, end)
	return self
}

func (p *parser) parseTryStmt(parent NodeId) NodeId {
	start := p.advance().Span.Start // "try"
	self := p.alloc(node{kind: KindOtherStmt, parent: parent})

	// Skip the attempted expression up to "returns" or "{".
	for !p.atEOF() && !p.isPunct("{") && !p.isIdent("returns") {
		p.advance()
	}
	tryScope := p.alloc(node{kind: KindTryScope, parent: self})
	tryStart := p.cur().Span.Start
	if p.isIdent("returns") {
		p.advance()
		if p.isPunct("(") {
			params := p.parseParameterList(0)
			for _, c := range p.tree.Children(params) {
				if name := p.tree.Name(c); name != "" {
					p.tree.nodes[tryScope].names = append(p.tree.nodes[tryScope].names, name)
					p.tree.nodes[tryScope].nameSpans = append(p.tree.nodes[tryScope].nameSpans, p.tree.NameSpan(c))
				}
			}
		}
	}
	if p.isPunct("{") {
		body := p.parseBlock(tryScope, KindBlock)
		p.addChild(tryScope, body)
	}
	p.tree.nodes[tryScope].fullSpan = span.New(tryStart, p.lastEnd())
	p.addChild(self, tryScope)

	for p.isIdent("catch") {
		p.advance()
		catchScope := p.alloc(node{kind: KindCatchScope, parent: self})
		catchStart := p.lastEnd()
		if p.cur().Kind == TokIdent && !p.isPunct("(") {
			p.advance() // Error | Panic
		}
		if p.isPunct("(") {
			params := p.parseParameterList(0)
			for _, c := range p.tree.Children(params) {
				if name := p.tree.Name(c); name != "" {
					p.tree.nodes[catchScope].names = append(p.tree.nodes[catchScope].names, name)
					p.tree.nodes[catchScope].nameSpans = append(p.tree.nodes[catchScope].nameSpans, p.tree.NameSpan(c))
				}
			}
		}
		if p.isPunct("{") {
			body := p.parseBlock(catchScope, KindBlock)
			p.addChild(catchScope, body)
		}
		p.tree.nodes[catchScope].fullSpan = span.New(catchStart, p.lastEnd())
		p.addChild(self, catchScope)
	}
	p.tree.nodes[self].fullSpan = span.New(start, p.lastEnd())
	return self
}

// parseParenLeadStmt handles a statement starting with "(": either a tuple
// variable declaration/assignment "(a, b) = ...;" or a parenthesized
// expression statement.
func (p *parser) parseParenLeadStmt(parent NodeId) NodeId {
	start := p.cur().Span.Start
	p.advance() // "("

	type slot struct {
		toks []Token
	}
	var slots []slot
	var cur slot
	depth := 0
	for !p.atEOF() {
		t := p.cur()
		if t.Kind == TokPunct {
			switch t.Text {
			case "(", "[", "{":
				depth++
			case ")":
				if depth == 0 {
					slots = append(slots, cur)
					p.advance()
					goto closed
				}
				depth--
			case "]", "}":
				depth--
			case ",":
				if depth == 0 {
					slots = append(slots, cur)
					cur = slot{}
					p.advance()
					continue
				}
			}
		}
		cur.toks = append(cur.toks, t)
		p.advance()
	}
closed:
	var names []string
	var spans []span.Span
	for _, s := range slots {
		if name, sp := lastDeclaratorName(s.toks); name != "" && len(s.toks) >= 2 {
			names = append(names, name)
			spans = append(spans, sp)
		}
	}
	if len(names) > 0 {
		self := p.alloc(node{kind: KindTupleVarDeclStmt, names: names, nameSpans: spans, parent: parent})
		end := p.skipToSemicolon()
		p.tree.nodes[self].fullSpan = span.New(start, end)
		return self
	}
	// Not a declaration: a parenthesized expression statement.
	end := p.skipToSemicolon()
	return p.alloc(node{kind: KindOtherStmt, fullSpan: span.New(start, end), parent: parent})
}

func (p *parser) parseVarDeclOrExprStmt(parent NodeId) NodeId {
	start := p.cur().Span.Start
	var group []Token
	depth := 0
	for !p.atEOF() {
		t := p.cur()
		if t.Kind == TokPunct {
			switch t.Text {
			case "(", "[", "{":
				depth++
			case ")", "]", "}":
				if depth == 0 {
					goto done
				}
				depth--
			case ";":
				if depth == 0 {
					goto done
				}
			}
		}
		group = append(group, t)
		p.advance()
	}
done:
	end := p.skipToSemicolon()
	if len(group) == 0 {
		return 0
	}
	isDecl, name, nameSpan := analyzeDeclarator(group)
	if isDecl {
		return p.alloc(node{kind: KindVarDeclStmt, name: name, nameSpan: nameSpan,
			fullSpan: span.New(start, end), parent: parent})
	}
	return p.alloc(node{kind: KindOtherStmt, fullSpan: span.New(start, end), parent: parent})
}

// analyzeDeclarator implements the heuristic described in scope's design
// notes: the declarator part (tokens before a top-level "=", or the whole
// statement if there is none) is a local variable declaration iff its last
// token is an identifier and the token before that is an identifier, "]",
// or ")".
func analyzeDeclarator(toks []Token) (bool, string, span.Span) {
	declarator := toks
	depth := 0
	for i, t := range toks {
		if t.Kind == TokPunct {
			switch t.Text {
			case "(", "[", "{":
				depth++
			case ")", "]", "}":
				depth--
			case "=":
				if depth == 0 {
					declarator = toks[:i]
				}
			}
		}
	}
	if len(declarator) < 2 {
		return false, "", span.Span{}
	}
	last := declarator[len(declarator)-1]
	if last.Kind != TokIdent {
		return false, "", span.Span{}
	}
	prev := declarator[len(declarator)-2]
	ok := prev.Kind == TokIdent || (prev.Kind == TokPunct && (prev.Text == "]" || prev.Text == ")"))
	if !ok {
		return false, "", span.Span{}
	}
	return true, last.Text, last.Span
}

// --- low-level cursor helpers --------------------------------------------

func (p *parser) lastEnd() uint32 {
	if p.pos == 0 {
		return 0
	}
	return p.toks[p.pos-1].Span.End
}

func (p *parser) skipToSemicolon() uint32 {
	depth := 0
	for !p.atEOF() {
		t := p.cur()
		if t.Kind == TokPunct {
			switch t.Text {
			case "(", "[", "{":
				depth++
			case ")", "]", "}":
				if depth == 0 {
					return p.lastEnd()
				}
				depth--
			case ";":
				end := t.Span.End
				p.advance()
				return end
			}
		}
		p.advance()
	}
	return p.lastEnd()
}

// skipBalancedUntilPunct advances past tokens, tracking nesting, until it
// reaches (but does not consume) a top-level token with text stop.
func (p *parser) skipBalancedUntilPunct(stop string) {
	depth := 0
	for !p.atEOF() {
		if depth == 0 && p.isPunct(stop) {
			return
		}
		t := p.cur()
		if t.Kind == TokPunct {
			switch t.Text {
			case "(", "[", "{":
				depth++
			case ")", "]", "}":
				if depth == 0 {
					return
				}
				depth--
			}
		}
		p.advance()
	}
}

// skipBalancedUntilAny is like skipBalancedUntilPunct but stops at the
// first of several candidate tokens.
func (p *parser) skipBalancedUntilAny(stops ...string) {
	depth := 0
	for !p.atEOF() {
		if depth == 0 {
			for _, s := range stops {
				if p.isPunct(s) {
					return
				}
			}
		}
		t := p.cur()
		if t.Kind == TokPunct {
			switch t.Text {
			case "(", "[", "{":
				depth++
			case ")", "]", "}":
				if depth == 0 {
					return
				}
				depth--
			}
		}
		p.advance()
	}
}

// skipBalancedParenGroup consumes a "(...)" group such as an if/while
// condition, discarding its contents.
func (p *parser) skipBalancedParenGroup() {
	if !p.isPunct("(") {
		return
	}
	depth := 0
	for !p.atEOF() {
		t := p.advance()
		if t.Kind == TokPunct {
			switch t.Text {
			case "(":
				depth++
			case ")":
				depth--
				if depth == 0 {
					return
				}
			}
		}
	}
}
