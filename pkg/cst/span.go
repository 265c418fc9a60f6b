package cst

// Span is an absolute [Start, End) byte range into the source that produced
// a node.
type Span struct {
	// Start is the byte index where the span begins (inclusive).
	Start int

	// End is the byte index where the span ends (exclusive).
	End int
}

// Len returns the length of the span in bytes.
func (s Span) Len() int { return s.End - s.Start }

// IsEmpty returns true if the span has zero length.
func (s Span) IsEmpty() bool { return s.Start == s.End }

// Contains returns true if the given offset is within this span.
func (s Span) Contains(offset int) bool {
	return offset >= s.Start && offset < s.End
}

// Shifted returns the span moved by delta bytes.
func (s Span) Shifted(delta int) Span {
	return Span{Start: s.Start + delta, End: s.End + delta}
}
