// Package source provides an indexed, immutable view of Markdown source text.
// It owns a copy of the bytes, exposes O(1) offset access, and maintains line
// metadata for LF, CRLF, and lone-CR line endings. All offsets are byte
// offsets into the original content.
package source

import "sort"

// Source is an immutable view of a piece of Markdown text.
type Source struct {
	content []byte
	lines   []Line
}

// Line holds metadata for a single line.
type Line struct {
	// Start is the byte index of the line start.
	Start int

	// NewlineStart is the byte index where the line terminator begins.
	// For lines without a trailing terminator (e.g., last line), this
	// equals End.
	NewlineStart int

	// End is the byte index just after the terminator (or end of content).
	End int
}

// Len returns the line length in bytes, terminator included.
func (l Line) Len() int { return l.End - l.Start }

// IsBlank reports whether the line contains only spaces and tabs.
func (l Line) IsBlank(content []byte) bool {
	for i := l.Start; i < l.NewlineStart; i++ {
		if content[i] != ' ' && content[i] != '\t' {
			return false
		}
	}
	return true
}

// New builds a Source from content. The bytes are copied; later mutation of
// the caller's buffer does not affect the Source.
func New(content []byte) *Source {
	owned := make([]byte, len(content))
	copy(owned, content)
	return &Source{
		content: owned,
		lines:   SplitLines(owned),
	}
}

// SplitLines constructs line metadata from content.
// It handles LF (\n), CRLF (\r\n), and lone CR (\r) line endings.
func SplitLines(content []byte) []Line {
	if len(content) == 0 {
		return []Line{}
	}

	var lines []Line
	lineStart := 0

	for idx := 0; idx < len(content); idx++ {
		switch content[idx] {
		case '\n':
			lines = append(lines, Line{
				Start:        lineStart,
				NewlineStart: idx,
				End:          idx + 1,
			})
			lineStart = idx + 1
		case '\r':
			end := idx + 1
			if idx+1 < len(content) && content[idx+1] == '\n' {
				end = idx + 2
			}
			lines = append(lines, Line{
				Start:        lineStart,
				NewlineStart: idx,
				End:          end,
			})
			lineStart = end
			idx = end - 1
		}
	}

	// Last line without a trailing terminator.
	if lineStart < len(content) {
		lines = append(lines, Line{
			Start:        lineStart,
			NewlineStart: len(content),
			End:          len(content),
		})
	}

	return lines
}

// Len returns the total content length in bytes.
func (s *Source) Len() int { return len(s.content) }

// Bytes returns the full content. Callers must not mutate it.
func (s *Source) Bytes() []byte { return s.content }

// At returns the byte at offset.
func (s *Source) At(offset int) byte { return s.content[offset] }

// Slice returns the content in [start, end). Out-of-range bounds are clamped.
func (s *Source) Slice(start, end int) []byte {
	if start < 0 {
		start = 0
	}
	if end > len(s.content) {
		end = len(s.content)
	}
	if start >= end {
		return nil
	}
	return s.content[start:end]
}

// LineCount returns the number of lines.
func (s *Source) LineCount() int { return len(s.lines) }

// Lines returns the line metadata slice. Callers must not mutate it.
func (s *Source) Lines() []Line { return s.lines }

// LineIndexAt returns the zero-based index of the line containing offset,
// or -1 if the offset is out of range.
func (s *Source) LineIndexAt(offset int) int {
	if offset < 0 || offset >= len(s.content) || len(s.lines) == 0 {
		return -1
	}
	idx := sort.Search(len(s.lines), func(i int) bool {
		return s.lines[i].End > offset
	})
	if idx >= len(s.lines) {
		return -1
	}
	return idx
}

// LineBoundsAt returns the [start, end) bounds of the line containing offset,
// terminator included. Offsets at or past the end of content report the last
// line's bounds; an empty source reports [0, 0).
func (s *Source) LineBoundsAt(offset int) (int, int) {
	if len(s.lines) == 0 {
		return 0, 0
	}
	idx := s.LineIndexAt(offset)
	if idx < 0 {
		last := s.lines[len(s.lines)-1]
		return last.Start, last.End
	}
	return s.lines[idx].Start, s.lines[idx].End
}

// LineText returns the content of the zero-based line index, terminator
// excluded. Returns nil if the index is out of range.
func (s *Source) LineText(idx int) []byte {
	if idx < 0 || idx >= len(s.lines) {
		return nil
	}
	line := s.lines[idx]
	return s.content[line.Start:line.NewlineStart]
}
