package parser

import (
	"strings"

	"github.com/solidity-analyzer/solidity-analyzer/span"
)

// Lex tokenizes text into a slice of Tokens, always ending with a TokEOF.
// Comments and string literals are tokens in their own right — callers
// that need "code only" iteration (e.g. the parser) filter them out, which
// is what keeps identifier scans from ever matching inside a comment or a
// string (see token enumeration in the identscan package).
func Lex(text string) []Token {
	l := &lexer{text: text}
	var out []Token
	for {
		tok := l.next()
		out = append(out, tok)
		if tok.Kind == TokEOF {
			return out
		}
	}
}

type lexer struct {
	text string
	pos  int
}

func (l *lexer) next() Token {
	l.skipWhitespace()
	start := l.pos
	if l.pos >= len(l.text) {
		return Token{Kind: TokEOF, Span: span.Point(uint32(start))}
	}

	c := l.text[l.pos]

	switch {
	case c == '/' && l.peekAt(1) == '/':
		return l.lexLineComment(start)
	case c == '/' && l.peekAt(1) == '*':
		return l.lexBlockComment(start)
	case c == '"' || c == '\'':
		return l.lexString(start, c)
	case isIdentStart(c):
		return l.lexIdent(start)
	case isDigit(c):
		return l.lexNumber(start)
	default:
		return l.lexPunct(start)
	}
}

func (l *lexer) peekAt(n int) byte {
	if l.pos+n >= len(l.text) {
		return 0
	}
	return l.text[l.pos+n]
}

func (l *lexer) skipWhitespace() {
	for l.pos < len(l.text) {
		switch l.text[l.pos] {
		case ' ', '\t', '\r', '\n':
			l.pos++
		default:
			return
		}
	}
}

func (l *lexer) lexLineComment(start int) Token {
	isDoc := strings.HasPrefix(l.text[start:], "///")
	for l.pos < len(l.text) && l.text[l.pos] != '\n' {
		l.pos++
	}
	return Token{Kind: TokComment, Span: span.New(uint32(start), uint32(l.pos)), Text: l.text[start:l.pos], IsDoc: isDoc}
}

func (l *lexer) lexBlockComment(start int) Token {
	isDoc := strings.HasPrefix(l.text[start:], "/**") && !strings.HasPrefix(l.text[start:], "/**/")
	l.pos += 2
	for l.pos < len(l.text) {
		if l.text[l.pos] == '*' && l.peekAt(1) == '/' {
			l.pos += 2
			break
		}
		l.pos++
	}
	if l.pos > len(l.text) {
		l.pos = len(l.text)
	}
	return Token{Kind: TokComment, Span: span.New(uint32(start), uint32(l.pos)), Text: l.text[start:l.pos], IsDoc: isDoc}
}

func (l *lexer) lexString(start int, quote byte) Token {
	l.pos++ // consume opening quote
	for l.pos < len(l.text) {
		c := l.text[l.pos]
		if c == '\\' {
			l.pos += 2
			continue
		}
		if c == quote {
			l.pos++
			break
		}
		l.pos++
	}
	if l.pos > len(l.text) {
		l.pos = len(l.text)
	}
	return Token{Kind: TokString, Span: span.New(uint32(start), uint32(l.pos)), Text: l.text[start:l.pos]}
}

func (l *lexer) lexIdent(start int) Token {
	for l.pos < len(l.text) && isIdentCont(l.text[l.pos]) {
		l.pos++
	}
	return Token{Kind: TokIdent, Span: span.New(uint32(start), uint32(l.pos)), Text: l.text[start:l.pos]}
}

func (l *lexer) lexNumber(start int) Token {
	for l.pos < len(l.text) && (isDigit(l.text[l.pos]) || l.text[l.pos] == '.' || isIdentCont(l.text[l.pos])) {
		l.pos++
	}
	return Token{Kind: TokNumber, Span: span.New(uint32(start), uint32(l.pos)), Text: l.text[start:l.pos]}
}

func (l *lexer) lexPunct(start int) Token {
	rest := l.text[start:]
	for _, p := range puncts {
		if strings.HasPrefix(rest, p) {
			l.pos += len(p)
			return Token{Kind: TokPunct, Span: span.New(uint32(start), uint32(l.pos)), Text: p}
		}
	}
	// Unknown byte: consume one byte so the scanner always makes progress.
	l.pos++
	return Token{Kind: TokPunct, Span: span.New(uint32(start), uint32(l.pos)), Text: l.text[start:l.pos]}
}

func isIdentStart(c byte) bool {
	return c == '_' || c == '$' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentCont(c byte) bool {
	return isIdentStart(c) || isDigit(c)
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
