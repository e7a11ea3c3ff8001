package lspserver

import (
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/solidity-analyzer/solidity-analyzer/db"
	"github.com/solidity-analyzer/solidity-analyzer/span"
	"github.com/solidity-analyzer/solidity-analyzer/vfs"
)

// toUInteger narrows a byte/line count to the LSP wire's uinteger type.
func toUInteger(n uint32) protocol.UInteger { return protocol.UInteger(n) }

// offsetAt converts an LSP position on file to a byte offset, building a
// fresh span.LineIndex over the file's current text. The core does not
// memoize LineIndex itself (spec.md §6.2 treats UTF-16 conversion as a
// boundary concern, not a derived query), so the transport owns this cost.
func offsetAt(snap *db.Snapshot, file vfs.FileId, pos protocol.Position) (uint32, bool) {
	text, ok := snap.VFS().Text(file)
	if !ok {
		return 0, false
	}
	li := span.NewLineIndex(text)
	return li.ToByteOffset(span.Position{Line: uint32(pos.Line), Character: uint32(pos.Character)}), true
}

// toLSPRange converts a byte-offset span into an LSP Range, scanning file's
// current text once.
func toLSPRange(snap *db.Snapshot, file vfs.FileId, sp span.Span) protocol.Range {
	text, _ := snap.VFS().Text(file)
	li := span.NewLineIndex(text)
	start := li.ToUTF16(sp.Start)
	end := li.ToUTF16(sp.End)
	return protocol.Range{
		Start: protocol.Position{Line: toUInteger(start.Line), Character: toUInteger(start.Character)},
		End:   protocol.Position{Line: toUInteger(end.Line), Character: toUInteger(end.Character)},
	}
}
