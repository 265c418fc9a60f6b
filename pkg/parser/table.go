package parser

import "github.com/yaklabco/mdtree/pkg/cst"

// isTableStart reports whether the line at idx opens a table: a pipe-bearing
// header directly followed by a matching delimiter row.
func (p *parser) isTableStart(lines []line, idx int) bool {
	if idx+1 >= len(lines) {
		return false
	}
	header := p.splitRow(lines[idx])
	if header == nil {
		return false
	}
	aligns := p.delimiterRow(lines[idx+1])
	return aligns != nil && len(aligns) == len(header)
}

// tryTable recognizes a GFM table: a header line containing a pipe followed
// by a delimiter row whose column count matches. Without a matching
// delimiter row the would-be header stays a paragraph.
func (p *parser) tryTable(lines []line, start int) (*cst.Node, int, bool) {
	if start+1 >= len(lines) {
		return nil, 0, false
	}
	header := p.splitRow(lines[start])
	if header == nil {
		return nil, 0, false
	}
	aligns := p.delimiterRow(lines[start+1])
	if aligns == nil || len(aligns) != len(header) {
		return nil, 0, false
	}

	node := cst.NewNode(cst.KindTable, cst.Span{
		Start: lines[start].start,
		End:   lines[start+1].end,
	})
	node.Block = &cst.BlockAttrs{Table: &cst.TableAttrs{Alignments: aligns}}
	node.AppendChild(p.rowNode(lines[start], header, aligns, true))

	end := start + 2
	for end < len(lines) {
		l := lines[end]
		if p.isBlank(l) || p.startsBlock(l) {
			break
		}
		cells := p.splitRowLoose(l)
		node.AppendChild(p.rowNode(l, cells, aligns, false))
		node.Span.End = l.end
		end++
	}

	return node, end, true
}

// cellSpan is the trimmed extent of one table cell.
type cellSpan struct {
	start, end int
}

// splitRow splits a line on unescaped pipes. Returns nil when the line
// contains no pipe at all (not a table row).
func (p *parser) splitRow(l line) []cellSpan {
	_, ns := p.indent(l)
	ne := l.nl
	for ne > ns && (p.src[ne-1] == ' ' || p.src[ne-1] == '\t') {
		ne--
	}
	if ns >= ne {
		return nil
	}

	hasPipe := false
	var bounds []int
	for i := ns; i < ne; i++ {
		switch p.src[i] {
		case '\\':
			i++
		case '|':
			hasPipe = true
			bounds = append(bounds, i)
		}
	}
	if !hasPipe {
		return nil
	}

	// Leading and trailing pipes delimit, not separate.
	cellStart := ns
	if p.src[ns] == '|' {
		cellStart = ns + 1
		bounds = bounds[1:]
	}
	var cells []cellSpan
	for _, b := range bounds {
		cells = append(cells, p.trimCell(cellStart, b))
		cellStart = b + 1
	}
	if cellStart < ne || p.src[ne-1] != '|' {
		cells = append(cells, p.trimCell(cellStart, ne))
	}
	return cells
}

// splitRowLoose is splitRow for body rows, where a line without any pipe is
// still a single-cell row.
func (p *parser) splitRowLoose(l line) []cellSpan {
	if cells := p.splitRow(l); cells != nil {
		return cells
	}
	_, ns := p.indent(l)
	return []cellSpan{p.trimCell(ns, l.nl)}
}

func (p *parser) trimCell(start, end int) cellSpan {
	for start < end && (p.src[start] == ' ' || p.src[start] == '\t') {
		start++
	}
	for end > start && (p.src[end-1] == ' ' || p.src[end-1] == '\t') {
		end--
	}
	return cellSpan{start: start, end: end}
}

// delimiterRow parses the alignment row: each column must match :?-+:?.
// Returns one alignment per column, or nil if the line is not a valid
// delimiter row.
func (p *parser) delimiterRow(l line) []cst.Alignment {
	cells := p.splitRow(l)
	if cells == nil {
		return nil
	}
	aligns := make([]cst.Alignment, 0, len(cells))
	for _, c := range cells {
		left, right := false, false
		i, e := c.start, c.end
		if i < e && p.src[i] == ':' {
			left = true
			i++
		}
		dashes := 0
		for i < e && p.src[i] == '-' {
			dashes++
			i++
		}
		if i < e && p.src[i] == ':' {
			right = true
			i++
		}
		if dashes == 0 || i != e {
			return nil
		}
		switch {
		case left && right:
			aligns = append(aligns, cst.AlignCenter)
		case left:
			aligns = append(aligns, cst.AlignLeft)
		case right:
			aligns = append(aligns, cst.AlignRight)
		default:
			aligns = append(aligns, cst.AlignNone)
		}
	}
	return aligns
}

// rowNode builds a TableRow with one TableCell per column. Body rows are
// padded with empty cells or truncated to the header's column count.
func (p *parser) rowNode(l line, cells []cellSpan, aligns []cst.Alignment, header bool) *cst.Node {
	row := cst.NewNode(cst.KindTableRow, cst.Span{Start: l.start, End: l.end})
	for col := range aligns {
		cell := cellSpan{start: l.nl, end: l.nl}
		if col < len(cells) {
			cell = cells[col]
		}
		cellNode := cst.NewNode(cst.KindTableCell, cst.Span{Start: cell.start, End: cell.end})
		cellNode.Block = &cst.BlockAttrs{Cell: &cst.CellAttrs{Header: header, Align: aligns[col]}}
		if cell.start < cell.end {
			segs := []segment{{start: cell.start, end: cell.end, brkEnd: cell.end, last: true}}
			for _, child := range p.parseInlines(segs) {
				cellNode.AppendChild(child)
			}
		}
		row.AppendChild(cellNode)
	}
	return row
}
