package parser

import "github.com/yaklabco/mdtree/pkg/cst"

// parseBlockQuote collects '>'-prefixed lines plus lazy paragraph
// continuations, strips the markers, and parses the stripped region
// recursively. A blank line ends the quote.
func (p *parser) parseBlockQuote(lines []line, start int) (*cst.Node, int) {
	var inner []line
	lazyOK := false

	end := start
	for end < len(lines) {
		l := lines[end]
		if p.isBlank(l) {
			break
		}
		width, ns := p.indent(l)
		if width <= 3 && ns < l.nl && p.src[ns] == '>' {
			cs := ns + 1
			if cs < l.nl && (p.src[cs] == ' ' || p.src[cs] == '\t') {
				cs++
			}
			stripped := line{start: cs, nl: l.nl, end: l.end}
			inner = append(inner, stripped)
			lazyOK = p.looksLikeParagraphLine(stripped)
			end++
			continue
		}
		if lazyOK && p.looksLikeParagraphLine(l) {
			inner = append(inner, line{start: ns, nl: l.nl, end: l.end})
			end++
			continue
		}
		break
	}

	node := cst.NewNode(cst.KindBlockQuote, cst.Span{
		Start: lines[start].start,
		End:   lines[end-1].end,
	})
	for _, child := range p.parseBlocks(inner) {
		node.AppendChild(child)
	}
	return node, end
}

// marker describes a recognized list item marker.
type marker struct {
	ordered bool
	start   int
	char    byte // bullet char, or '.' / ')' for ordered items
	width   int  // columns from line start through post-marker spacing
	content int  // absolute offset of the item's first content byte
	empty   bool
}

// listMarker recognizes a bullet or ordered list marker at the line start.
// The first line fixes the marker character and the content width;
// continuation lines belong to the item only if indented at least as much.
func (p *parser) listMarker(l line) *marker {
	width, ns := p.indent(l)
	if width > 3 || ns >= l.nl {
		return nil
	}

	m := &marker{}
	after := ns
	switch c := p.src[ns]; {
	case c == '-' || c == '+' || c == '*':
		m.char = c
		after = ns + 1
	case c >= '0' && c <= '9':
		digits := 0
		num := 0
		for after < l.nl && p.src[after] >= '0' && p.src[after] <= '9' {
			num = num*10 + int(p.src[after]-'0')
			digits++
			after++
		}
		if digits > 9 || after >= l.nl {
			return nil
		}
		if p.src[after] != '.' && p.src[after] != ')' {
			return nil
		}
		m.ordered = true
		m.start = num
		m.char = p.src[after]
		after++
	default:
		return nil
	}

	markerCols := width + (after - ns)

	if after >= l.nl {
		m.empty = true
		m.width = markerCols + 1
		m.content = l.nl
		return m
	}
	if p.src[after] != ' ' && p.src[after] != '\t' {
		return nil
	}

	// Count spacing after the marker. More than four columns means the
	// item starts an indented code block; only one column then counts.
	spacing := 0
	content := after
	for content < l.nl && (p.src[content] == ' ' || p.src[content] == '\t') {
		if p.src[content] == '\t' {
			spacing += 4 - (markerCols+spacing)%4
		} else {
			spacing++
		}
		content++
	}
	if content >= l.nl {
		// Marker followed only by whitespace: empty item.
		m.empty = true
		m.width = markerCols + 1
		m.content = l.nl
		return m
	}
	if spacing > 4 {
		m.width = markerCols + 1
		m.content = after + 1
	} else {
		m.width = markerCols + spacing
		m.content = content
	}
	return m
}

func compatibleMarker(a, b *marker) bool {
	return b != nil && a.ordered == b.ordered && a.char == b.char
}

// parseList gathers consecutive items sharing the first item's marker
// character. Blank lines between two items make the list loose; blank lines
// inside a single item's content do not.
func (p *parser) parseList(lines []line, start int) (*cst.Node, int) {
	first := p.listMarker(lines[start])

	node := cst.NewNode(cst.KindList, cst.Span{Start: lines[start].start, End: lines[start].end})
	attrs := &cst.ListAttrs{
		Ordered: first.ordered,
		Start:   first.start,
		Marker:  first.char,
		Tight:   true,
	}
	node.Block = &cst.BlockAttrs{List: attrs}

	i := start
	for i < len(lines) {
		m := p.listMarker(lines[i])
		if !compatibleMarker(first, m) {
			break
		}

		itemLines := []line{{start: m.content, nl: lines[i].nl, end: lines[i].end}}
		var pending []line

		j := i + 1
		for j < len(lines) {
			l := lines[j]
			if p.isBlank(l) {
				pending = append(pending, l)
				j++
				continue
			}
			width, ns := p.indent(l)
			if width >= m.width {
				// Continuation content; any held blanks are interior.
				for _, b := range pending {
					bs := p.advanceColumns(b, m.width)
					itemLines = append(itemLines, line{start: bs, nl: b.nl, end: b.end})
				}
				pending = nil
				itemLines = append(itemLines, line{start: p.advanceColumns(l, m.width), nl: l.nl, end: l.end})
				j++
				continue
			}
			if len(pending) > 0 {
				break
			}
			if p.listMarker(l) != nil {
				break
			}
			if p.looksLikeParagraphLine(l) && !p.isBlank(itemLines[len(itemLines)-1]) {
				itemLines = append(itemLines, line{start: ns, nl: l.nl, end: l.end})
				j++
				continue
			}
			break
		}

		item := p.buildListItem(lines[i], itemLines, m)
		node.AppendChild(item)
		node.Span.End = item.Span.End

		i = j
		if len(pending) > 0 {
			var next *marker
			if i < len(lines) {
				next = p.listMarker(lines[i])
			}
			if compatibleMarker(first, next) {
				// Blank lines separate two items: the list is loose
				// and the blanks belong to the finished item.
				item.AppendChild(p.blankNode(pending))
				item.Span.End = pending[len(pending)-1].end
				node.Span.End = item.Span.End
				attrs.Tight = false
				continue
			}
			// List ends here; the blanks return to the outer region.
			i -= len(pending)
			break
		}
		if i >= len(lines) || !compatibleMarker(first, p.listMarker(lines[i])) {
			break
		}
	}

	return node, i
}

func (p *parser) buildListItem(markerLine line, itemLines []line, m *marker) *cst.Node {
	task := cst.TaskNone
	if len(itemLines) > 0 {
		task, itemLines[0] = p.liftTaskMarker(itemLines[0])
	}

	spanEnd := markerLine.end
	if len(itemLines) > 0 {
		spanEnd = itemLines[len(itemLines)-1].end
	}
	item := cst.NewNode(cst.KindListItem, cst.Span{Start: markerLine.start, End: spanEnd})
	item.Block = &cst.BlockAttrs{Item: &cst.ItemAttrs{Task: task, Width: m.width}}
	for _, child := range p.parseBlocks(itemLines) {
		item.AppendChild(child)
	}
	return item
}

// liftTaskMarker recognizes "[ ]", "[x]", or "[X]" followed by whitespace at
// the start of an item's first line and lifts it onto the item, advancing
// the line's content start past the marker.
func (p *parser) liftTaskMarker(first line) (cst.TaskState, line) {
	s := first.start
	if s+3 >= first.nl || p.src[s] != '[' || p.src[s+2] != ']' {
		return cst.TaskNone, first
	}
	var state cst.TaskState
	switch p.src[s+1] {
	case ' ':
		state = cst.TaskUnchecked
	case 'x', 'X':
		state = cst.TaskChecked
	default:
		return cst.TaskNone, first
	}
	if p.src[s+3] != ' ' && p.src[s+3] != '\t' {
		return cst.TaskNone, first
	}
	cs := s + 3
	for cs < first.nl && (p.src[cs] == ' ' || p.src[cs] == '\t') {
		cs++
	}
	return state, line{start: cs, nl: first.nl, end: first.end}
}

func (p *parser) isFootnoteDefStart(l line) bool {
	_, ns := p.indent(l)
	if ns+1 >= l.nl || p.src[ns] != '[' || p.src[ns+1] != '^' {
		return false
	}
	_, _, ok := p.footnoteLabel(ns, l.nl)
	return ok
}

// footnoteLabel parses "[^label]:" starting at ns, returning the label and
// the offset just past the colon.
func (p *parser) footnoteLabel(ns, nl int) (string, int, bool) {
	i := ns + 2
	labelStart := i
	for i < nl && p.src[i] != ']' {
		if p.src[i] == '[' || p.src[i] == '^' {
			return "", 0, false
		}
		i++
	}
	if i >= nl || i == labelStart || i+1 >= nl || p.src[i+1] != ':' {
		return "", 0, false
	}
	return string(p.src[labelStart:i]), i + 2, true
}

// parseFootnoteDef parses "[^label]: content" with continuation lines
// indented by four columns (or lazy paragraph continuations).
func (p *parser) parseFootnoteDef(lines []line, start int) (*cst.Node, int) {
	l := lines[start]
	_, ns := p.indent(l)
	label, after, _ := p.footnoteLabel(ns, l.nl)

	cs := after
	for cs < l.nl && (p.src[cs] == ' ' || p.src[cs] == '\t') {
		cs++
	}
	inner := []line{{start: cs, nl: l.nl, end: l.end}}

	end := start + 1
	var pending []line
	for end < len(lines) {
		ll := lines[end]
		if p.isBlank(ll) {
			pending = append(pending, ll)
			end++
			continue
		}
		width, lns := p.indent(ll)
		if width >= 4 {
			for _, b := range pending {
				bs := p.advanceColumns(b, 4)
				inner = append(inner, line{start: bs, nl: b.nl, end: b.end})
			}
			pending = nil
			inner = append(inner, line{start: p.advanceColumns(ll, 4), nl: ll.nl, end: ll.end})
			end++
			continue
		}
		if len(pending) > 0 {
			break
		}
		if p.looksLikeParagraphLine(ll) && !p.isBlank(inner[len(inner)-1]) && !p.isFootnoteDefStart(ll) {
			inner = append(inner, line{start: lns, nl: ll.nl, end: ll.end})
			end++
			continue
		}
		break
	}
	end -= len(pending)

	node := cst.NewNode(cst.KindFootnoteDef, cst.Span{
		Start: lines[start].start,
		End:   lines[end-1].end,
	})
	node.Block = &cst.BlockAttrs{FootnoteLabel: label}
	for _, child := range p.parseBlocks(inner) {
		node.AppendChild(child)
	}
	return node, end
}
