// Package incremental maps a text edit onto a minimal block-level reparse
// window, reusing the previous tree's unchanged prefix verbatim and
// span-shifting its suffix. Pathological edits fall back to a full reparse;
// the result is always structurally equal to parsing the new source from
// scratch for edits that keep block boundaries outside the window intact.
package incremental

// EditInfo describes a text edit: the new source equals the old source with
// [Start, OldEnd) replaced by the new bytes at [Start, NewEnd).
type EditInfo struct {
	// Start is the byte offset where the edit begins in both sources.
	Start int

	// OldEnd is the exclusive end of the replaced range in the old source.
	OldEnd int

	// NewEnd is the exclusive end of the inserted range in the new source.
	NewEnd int
}

// Delta returns the length change the edit causes.
func (e EditInfo) Delta() int { return e.NewEnd - e.OldEnd }

// Insert describes inserting length bytes at position.
func Insert(position, length int) EditInfo {
	return EditInfo{Start: position, OldEnd: position, NewEnd: position + length}
}

// Delete describes deleting the bytes in [start, end).
func Delete(start, end int) EditInfo {
	return EditInfo{Start: start, OldEnd: end, NewEnd: start}
}

// Replace describes replacing [start, oldEnd) with newLength bytes.
func Replace(start, oldEnd, newLength int) EditInfo {
	return EditInfo{Start: start, OldEnd: oldEnd, NewEnd: start + newLength}
}

// Apply materializes the edit: it returns old with [Start, OldEnd) replaced
// by replacement, whose length must equal NewEnd-Start.
func Apply(old []byte, edit EditInfo, replacement []byte) []byte {
	out := make([]byte, 0, len(old)+edit.Delta())
	out = append(out, old[:edit.Start]...)
	out = append(out, replacement...)
	out = append(out, old[edit.OldEnd:]...)
	return out
}
