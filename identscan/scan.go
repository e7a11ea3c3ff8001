package identscan

import (
	"strings"

	"github.com/solidity-analyzer/solidity-analyzer/parser"
	"github.com/solidity-analyzer/solidity-analyzer/span"
)

// Chain is one `Q1.Q2.….Name` dotted identifier chain found in source
// text. Qualifiers holds every segment before the last; Name is the final
// segment. QualifierStart is the byte offset of the first qualifier
// segment, used by callers that need to check whether the qualifier
// itself is locally shadowed.
type Chain struct {
	Qualifiers     []string
	QualifierSpans []span.Span
	Name           string
	NameSpan       span.Span
	QualifierStart uint32
}

// ImmediateQualifier returns the single segment immediately before Name
// (e.g. "B" for "A.B.Name"), which is all spec.md §4.7's qualifier pass
// needs — it never resolves through multi-level chains.
func (c Chain) ImmediateQualifier() (string, bool) {
	if len(c.Qualifiers) == 0 {
		return "", false
	}
	return c.Qualifiers[len(c.Qualifiers)-1], true
}

func codeTokens(text string) []parser.Token {
	all := parser.Lex(text)
	out := make([]parser.Token, 0, len(all))
	for _, t := range all {
		if t.Kind != parser.TokComment {
			out = append(out, t)
		}
	}
	return out
}

func isDot(t parser.Token) bool { return t.Kind == parser.TokPunct && t.Text == "." }

// IdentifierRanges returns the byte ranges of every identifier token in
// text whose text equals name. Comments and string literals never
// contribute a match, since the scan runs over the lexer's token stream.
func IdentifierRanges(text, name string) []span.Span {
	var out []span.Span
	for _, t := range codeTokens(text) {
		if t.Kind == parser.TokIdent && t.Text == name {
			out = append(out, t.Span)
		}
	}
	return out
}

// DotQualifiedRanges returns the set of identifier ranges in text that are
// immediately preceded by a "." token — i.e. the member-name position of
// some qualified chain, which spec.md §4.7's per-name reference pass must
// skip (qualified uses are handled by the separate qualifier pass).
func DotQualifiedRanges(text string) map[span.Span]bool {
	toks := codeTokens(text)
	out := make(map[span.Span]bool)
	for i, t := range toks {
		if t.Kind != parser.TokIdent {
			continue
		}
		if i > 0 && isDot(toks[i-1]) {
			out[t.Span] = true
		}
	}
	return out
}

// Chains returns every maximal dotted identifier chain (two or more
// segments) found in text, in source order.
func Chains(text string) []Chain {
	toks := codeTokens(text)
	var out []Chain
	i := 0
	for i < len(toks) {
		t := toks[i]
		if t.Kind != parser.TokIdent || (i > 0 && isDot(toks[i-1])) {
			i++
			continue
		}
		segs := []string{t.Text}
		spans := []span.Span{t.Span}
		j := i + 1
		for j+1 < len(toks) && isDot(toks[j]) && toks[j+1].Kind == parser.TokIdent {
			segs = append(segs, toks[j+1].Text)
			spans = append(spans, toks[j+1].Span)
			j += 2
		}
		if len(segs) >= 2 {
			out = append(out, Chain{
				Qualifiers:     segs[:len(segs)-1],
				QualifierSpans: spans[:len(spans)-1],
				Name:           segs[len(segs)-1],
				NameSpan:       spans[len(spans)-1],
				QualifierStart: spans[0].Start,
			})
		}
		i = j
	}
	return out
}

// IdentifierAt returns the identifier token range containing offset,
// accepting an offset one byte past the end of the identifier (a cursor
// sitting immediately after it). If offset falls inside a UTF-8
// continuation byte, it snaps backward to the start of that rune before
// matching, per spec.md §8's boundary-behavior requirement.
func IdentifierAt(text string, offset uint32) (span.Span, bool) {
	offset = snapToRuneStart(text, offset)
	for _, t := range codeTokens(text) {
		if t.Kind == parser.TokIdent && t.Span.ContainsInclusive(offset) {
			return t.Span, true
		}
	}
	return span.Span{}, false
}

// ChainAt returns the qualified-name chain ending at offset: the dotted
// qualifier prefix (joined with "."), the byte offset its first segment
// starts at, and the final name segment. If offset lands on a bare
// (unqualified) identifier, qualifier is "" and ok reflects whether any
// identifier was found at all.
func ChainAt(text string, offset uint32) (qualifier string, qualifierStart uint32, name string, nameSpan span.Span, ok bool) {
	offset = snapToRuneStart(text, offset)
	for _, c := range Chains(text) {
		if c.NameSpan.ContainsInclusive(offset) {
			return strings.Join(c.Qualifiers, "."), c.QualifierStart, c.Name, c.NameSpan, true
		}
	}
	if sp, found := IdentifierAt(text, offset); found {
		return "", sp.Start, text[sp.Start:sp.End], sp, true
	}
	return "", 0, "", span.Span{}, false
}

func snapToRuneStart(text string, offset uint32) uint32 {
	for int(offset) > 0 && int(offset) <= len(text) && isUTF8Continuation(text, int(offset)) {
		offset--
	}
	return offset
}

func isUTF8Continuation(text string, pos int) bool {
	if pos <= 0 || pos > len(text) {
		return false
	}
	if pos == len(text) {
		return false
	}
	b := text[pos]
	return b&0xC0 == 0x80
}
