package parser

import "github.com/solidity-analyzer/solidity-analyzer/span"

// TokenKind classifies a lexical token.
type TokenKind uint8

const (
	TokEOF TokenKind = iota
	TokIdent
	TokNumber
	TokString
	TokComment
	TokPunct
)

// Token is one lexical unit with its byte span into the source text.
type Token struct {
	Kind  TokenKind
	Span  span.Span
	Text  string
	IsDoc bool // only meaningful for TokComment: "///" or "/**" style
}

// puncts lists every multi-character punctuation sequence the lexer
// recognizes, longest first so the scanner greedily matches "=>" before "=".
var puncts = []string{
	"=>", "==", "!=", "<=", ">=", "&&", "||", "++", "--", "+=", "-=", "*=",
	"/=", "%=", "&=", "|=", "^=", "**", "<<", ">>", "->",
	"{", "}", "(", ")", "[", "]", ";", ",", ".", ":", "=", "+", "-", "*",
	"/", "%", "<", ">", "!", "&", "|", "^", "~", "?", "@",
}
