package span

import "fmt"

// Span is a half-open byte range [Start, End) into a specific file's text.
//
// Span is a value type; always pass by value. The zero value represents
// "no location".
type Span struct {
	Start uint32
	End   uint32
}

// New creates a Span, panicking if end < start (geometric soundness).
func New(start, end uint32) Span {
	if end < start {
		panic(fmt.Sprintf("span.New: end %d before start %d", end, start))
	}
	return Span{Start: start, End: end}
}

// Point creates a zero-width Span at offset.
func Point(offset uint32) Span { return Span{Start: offset, End: offset} }

// IsZero reports whether s is the zero value.
func (s Span) IsZero() bool { return s.Start == 0 && s.End == 0 }

// Len returns the number of bytes covered by the span.
func (s Span) Len() uint32 { return s.End - s.Start }

// IsEmpty reports whether the span covers zero bytes.
func (s Span) IsEmpty() bool { return s.Start == s.End }

// Contains reports whether offset lies within [Start, End). A zero-width
// span never contains any offset via this method; use ContainsInclusive for
// cursor-style "at or touching" queries.
func (s Span) Contains(offset uint32) bool {
	return offset >= s.Start && offset < s.End
}

// ContainsInclusive reports whether offset lies within [Start, End], which
// additionally matches the offset one past the end — useful for cursor
// positions sitting immediately after an identifier.
func (s Span) ContainsInclusive(offset uint32) bool {
	return offset >= s.Start && offset <= s.End
}

// Covers reports whether s fully contains other.
func (s Span) Covers(other Span) bool {
	return s.Start <= other.Start && other.End <= s.End
}

// Intersects reports whether s and other share any byte.
func (s Span) Intersects(other Span) bool {
	return s.Start < other.End && other.Start < s.End
}

// String renders the span as "[start,end)".
func (s Span) String() string {
	return fmt.Sprintf("[%d,%d)", s.Start, s.End)
}
