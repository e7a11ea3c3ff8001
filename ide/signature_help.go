package ide

import (
	"strings"

	"github.com/solidity-analyzer/solidity-analyzer/db"
	"github.com/solidity-analyzer/solidity-analyzer/hir"
	"github.com/solidity-analyzer/solidity-analyzer/parser"
	"github.com/solidity-analyzer/solidity-analyzer/vfs"
)

// SignatureHelp returns the candidate signatures for the call containing
// offset, per spec.md §6.2's signature_help. There is no call-expression
// node in the parse tree (see the `parser`/`sema` DESIGN.md entries), so
// the call site is recovered the same way overload resolution recovers
// argument text: by scanning raw source backward from offset for the
// nearest unmatched "(".
func SignatureHelp(snap *db.Snapshot, project db.ProjectId, file vfs.FileId, offset uint32) ([]Signature, bool) {
	text, ok := snap.VFS().Text(file)
	if !ok || int(offset) > len(text) {
		return nil, false
	}

	callOpen, ok := findEnclosingCallOpenParen(text, offset)
	if !ok {
		return nil, false
	}
	calleeName, ok := precedingIdentifier(text, callOpen)
	if !ok {
		return nil, false
	}

	prog, ok := snap.HIRProgram(project)
	if !ok {
		return nil, false
	}
	candidates := prog.ResolveSymbolKindCandidates(file, hir.Function, calleeName)
	if len(candidates) == 0 {
		return nil, false
	}

	active := topLevelCommaCount(text[callOpen+1 : offset])

	var out []Signature
	for _, c := range candidates {
		tree, _ := snap.Parse(c.File)
		if tree == nil {
			continue
		}
		ctext, _ := snap.VFS().Text(c.File)
		out = append(out, signatureOf(tree, ctext, c, active))
	}
	if len(out) == 0 {
		return nil, false
	}
	return out, true
}

func signatureOf(tree *parser.Tree, text string, fn hir.DefEntry, active int) Signature {
	node, ok := tree.FindBySelection(parser.KindFunctionDef, fn.SelectionRange)
	if !ok {
		return Signature{Label: fn.Name + "()", ActiveParameter: active}
	}
	var params []string
	for _, c := range tree.Children(node) {
		if tree.Kind(c) != parser.KindParameterList {
			continue
		}
		for _, p := range tree.Children(c) {
			sp := tree.Span(p)
			lo, hi := sp.Start, sp.End
			if int(hi) > len(text) {
				hi = uint32(len(text))
			}
			if int(lo) <= len(text) && lo <= hi {
				params = append(params, strings.TrimSpace(text[lo:hi]))
			}
		}
		break // first parameter list only; the second (if any) is "returns"
	}
	return Signature{
		Label:           fn.Name + "(" + strings.Join(params, ", ") + ")",
		Parameters:      params,
		ActiveParameter: active,
	}
}

// findEnclosingCallOpenParen scans text backward from offset for the
// nearest "(" not yet closed by a matching ")" between it and offset.
func findEnclosingCallOpenParen(text string, offset uint32) (int, bool) {
	depth := 0
	for i := int(offset) - 1; i >= 0; i-- {
		switch text[i] {
		case ')':
			depth++
		case '(':
			if depth == 0 {
				return i, true
			}
			depth--
		}
	}
	return 0, false
}

// precedingIdentifier returns the identifier token immediately before
// byte offset pos (skipping whitespace), the callee name of a call whose
// "(" is at pos.
func precedingIdentifier(text string, pos int) (string, bool) {
	i := pos - 1
	for i >= 0 && (text[i] == ' ' || text[i] == '\t' || text[i] == '\n' || text[i] == '\r') {
		i--
	}
	end := i + 1
	for i >= 0 && isIdentByte(text[i]) {
		i--
	}
	start := i + 1
	if start >= end {
		return "", false
	}
	return text[start:end], true
}

func isIdentByte(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}

func topLevelCommaCount(argsText string) int {
	depth := 0
	count := 0
	for _, r := range argsText {
		switch r {
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			depth--
		case ',':
			if depth == 0 {
				count++
			}
		}
	}
	return count
}
