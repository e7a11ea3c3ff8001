package span

import "testing"

func TestLineIndex_ToUTF16_ASCII(t *testing.T) {
	text := "line0\nline1\nline2"
	li := NewLineIndex(text)

	tests := []struct {
		offset uint32
		want   Position
	}{
		{0, Position{0, 0}},
		{5, Position{0, 5}},  // just before '\n'
		{6, Position{1, 0}},  // just after '\n'
		{11, Position{1, 5}},
		{12, Position{2, 0}},
		{17, Position{2, 5}}, // end of text
		{100, Position{2, 5}}, // past end, clamps
	}
	for _, tt := range tests {
		got := li.ToUTF16(tt.offset)
		if got != tt.want {
			t.Errorf("ToUTF16(%d) = %+v; want %+v", tt.offset, got, tt.want)
		}
	}
}

func TestLineIndex_RoundTrip_ASCII(t *testing.T) {
	text := "alpha\nbeta\ngamma"
	li := NewLineIndex(text)

	for offset := 0; offset <= len(text); offset++ {
		pos := li.ToUTF16(uint32(offset))
		back := li.ToByteOffset(pos)
		if back != uint32(offset) {
			t.Errorf("round trip offset %d -> %+v -> %d", offset, pos, back)
		}
	}
}

func TestLineIndex_SurrogatePair(t *testing.T) {
	// U+1F600 (grinning face) requires a UTF-16 surrogate pair (2 code units)
	// but is 4 bytes in UTF-8.
	text := "a\U0001F600b"
	li := NewLineIndex(text)

	// offset 0: 'a' -> character 0
	if got := li.ToUTF16(0); got.Character != 0 {
		t.Errorf("ToUTF16(0).Character = %d; want 0", got.Character)
	}
	// offset 1: just after 'a', before the emoji -> character 1
	if got := li.ToUTF16(1); got.Character != 1 {
		t.Errorf("ToUTF16(1).Character = %d; want 1", got.Character)
	}
	// offset 5: just after the 4-byte emoji -> character 3 (1 + 2 surrogate units)
	if got := li.ToUTF16(5); got.Character != 3 {
		t.Errorf("ToUTF16(5).Character = %d; want 3", got.Character)
	}

	back := li.ToByteOffset(Position{Line: 0, Character: 3})
	if back != 5 {
		t.Errorf("ToByteOffset({0,3}) = %d; want 5", back)
	}
}

func TestLineIndex_CRLF(t *testing.T) {
	text := "a\r\nb"
	li := NewLineIndex(text)
	// '\n' is the sole line separator; '\r' stays part of line 0's content
	// for ToUTF16 purposes, but ToByteOffset trims a trailing '\r' from the
	// clamped line end.
	pos := li.ToUTF16(3) // offset of 'b'
	if pos.Line != 1 || pos.Character != 0 {
		t.Errorf("ToUTF16(3) = %+v; want {1 0}", pos)
	}
}

func TestLineIndex_EmptyText(t *testing.T) {
	li := NewLineIndex("")
	pos := li.ToUTF16(0)
	if pos != (Position{0, 0}) {
		t.Errorf("ToUTF16(0) on empty text = %+v; want {0 0}", pos)
	}
	if off := li.ToByteOffset(Position{0, 0}); off != 0 {
		t.Errorf("ToByteOffset({0,0}) on empty text = %d; want 0", off)
	}
}

func TestLineIndex_ToByteOffset_ClampsPastLineEnd(t *testing.T) {
	text := "ab\ncd"
	li := NewLineIndex(text)
	// line 0 is "ab" (2 chars); asking for character 10 clamps to line end (2)
	off := li.ToByteOffset(Position{Line: 0, Character: 10})
	if off != 2 {
		t.Errorf("ToByteOffset({0,10}) = %d; want 2 (clamped to line end)", off)
	}
}

func TestLineIndex_ToByteOffset_PastLastLine(t *testing.T) {
	text := "ab\ncd"
	li := NewLineIndex(text)
	off := li.ToByteOffset(Position{Line: 99, Character: 0})
	if off != uint32(len(text)) {
		t.Errorf("ToByteOffset({99,0}) = %d; want %d", off, len(text))
	}
}
