package cst

// CoversSource reports whether the document's top-level block spans tile
// [0, len(Source)) exactly: contiguous, ordered, no gaps or overlaps.
// This is the invariant the incremental driver checks after splicing.
func (d *Document) CoversSource() bool {
	return SpansTile(d.Root.Children(), len(d.Source))
}

// SpansTile reports whether the given nodes' spans tile [0, length) exactly.
func SpansTile(nodes []*Node, length int) bool {
	if len(nodes) == 0 {
		return length == 0
	}

	if nodes[0].Span.Start != 0 {
		return false
	}
	if nodes[len(nodes)-1].Span.End != length {
		return false
	}

	for i := 1; i < len(nodes); i++ {
		if nodes[i].Span.Start != nodes[i-1].Span.End {
			return false
		}
	}

	return true
}

// CheckSpans verifies span invariants for the whole tree: every node has
// start <= end, children lie within their parent, and sibling spans are
// ordered and non-overlapping. Returns false on the first violation.
func CheckSpans(root *Node) bool {
	if root == nil {
		return true
	}
	if root.Span.Start > root.Span.End {
		return false
	}

	prevEnd := root.Span.Start
	for child := root.FirstChild; child != nil; child = child.Next {
		if child.Span.Start < prevEnd || child.Span.End > root.Span.End {
			return false
		}
		if !CheckSpans(child) {
			return false
		}
		prevEnd = child.Span.End
	}

	return true
}
