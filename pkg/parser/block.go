package parser

import "github.com/yaklabco/mdtree/pkg/cst"

// parseBlocks segments a region of lines into block nodes. Recognition
// order per line: thematic break, ATX heading, fenced code, blockquote,
// list, HTML block, footnote definition, link reference definition, table,
// then paragraph (which owns setext promotion). Indented code wins when the
// line is indented four or more columns and no paragraph is open.
func (p *parser) parseBlocks(lines []line) []*cst.Node {
	var blocks []*cst.Node

	i := 0
	for i < len(lines) {
		l := lines[i]

		if p.isBlank(l) {
			j := i
			for j < len(lines) && p.isBlank(lines[j]) {
				j++
			}
			blocks = append(blocks, p.blankNode(lines[i:j]))
			i = j
			continue
		}

		width, ns := p.indent(l)

		if width >= 4 {
			node, next := p.parseIndentedCode(lines, i)
			blocks = append(blocks, node)
			i = next
			continue
		}

		switch {
		case p.isThematicBreak(ns, l.nl):
			blocks = append(blocks, p.thematicBreakNode(l, ns))
			i++

		case p.atxLevel(ns, l.nl) > 0:
			blocks = append(blocks, p.atxHeadingNode(l, ns))
			i++

		case p.fenceRun(ns, l.nl) >= 3 && p.validFenceInfo(ns, l.nl):
			node, next := p.parseFencedCode(lines, i, width, ns)
			blocks = append(blocks, node)
			i = next

		case p.src[ns] == '>':
			node, next := p.parseBlockQuote(lines, i)
			blocks = append(blocks, node)
			i = next

		case p.listMarker(l) != nil:
			node, next := p.parseList(lines, i)
			blocks = append(blocks, node)
			i = next

		case p.htmlBlockKind(ns, l.nl, false) > 0:
			node, next := p.parseHTMLBlock(lines, i, p.htmlBlockKind(ns, l.nl, false))
			blocks = append(blocks, node)
			i = next

		case p.isFootnoteDefStart(l):
			node, next := p.parseFootnoteDef(lines, i)
			blocks = append(blocks, node)
			i = next

		default:
			if defs := p.parseLinkRefDefs(lines, i); len(defs) > 0 {
				blocks = append(blocks, defs...)
				i += len(defs)
				continue
			}
			if table, next, ok := p.tryTable(lines, i); ok {
				blocks = append(blocks, table)
				i = next
				continue
			}
			node, next := p.parseParagraph(lines, i)
			blocks = append(blocks, node)
			i = next
		}
	}

	return blocks
}

// startsBlock reports whether the line begins a block construct that
// interrupts an open paragraph. Indented code and setext underlines do not
// count; ordered lists count only when starting at 1.
func (p *parser) startsBlock(l line) bool {
	width, ns := p.indent(l)
	if width >= 4 || ns >= l.nl {
		return false
	}
	if p.isThematicBreak(ns, l.nl) {
		return true
	}
	if p.atxLevel(ns, l.nl) > 0 {
		return true
	}
	if p.fenceRun(ns, l.nl) >= 3 && p.validFenceInfo(ns, l.nl) {
		return true
	}
	if p.src[ns] == '>' {
		return true
	}
	if m := p.listMarker(l); m != nil && !m.empty && (!m.ordered || m.start == 1) {
		return true
	}
	if k := p.htmlBlockKind(ns, l.nl, true); k > 0 {
		return true
	}
	return false
}

// looksLikeParagraphLine reports whether the line, in isolation, would be
// paragraph text. Used to decide lazy continuation of containers.
func (p *parser) looksLikeParagraphLine(l line) bool {
	if p.isBlank(l) {
		return false
	}
	width, _ := p.indent(l)
	if width >= 4 {
		return false
	}
	return !p.startsBlock(l)
}

// parseParagraph collects continuation lines until a blank line or an
// interrupting block. A setext underline promotes the accumulated lines to
// a heading; this takes precedence over reading the underline as a thematic
// break.
func (p *parser) parseParagraph(lines []line, start int) (*cst.Node, int) {
	end := start + 1
	for end < len(lines) {
		l := lines[end]
		if p.isBlank(l) {
			break
		}
		width, ns := p.indent(l)
		if width <= 3 {
			if c := p.setextChar(ns, l.nl); c != 0 {
				return p.setextHeadingNode(lines[start:end], l, c), end + 1
			}
			if p.startsBlock(l) {
				break
			}
		}
		if p.isTableStart(lines, end) {
			break
		}
		end++
	}

	content := lines[start:end]
	node := cst.NewNode(cst.KindParagraph, cst.Span{
		Start: content[0].start,
		End:   content[len(content)-1].end,
	})
	for _, child := range p.parseInlines(p.segments(content)) {
		node.AppendChild(child)
	}
	return node, end
}

// setextChar returns '=' or '-' if the line is a setext underline, else 0.
func (p *parser) setextChar(ns, nl int) byte {
	if ns >= nl {
		return 0
	}
	c := p.src[ns]
	if c != '=' && c != '-' {
		return 0
	}
	i := ns
	for i < nl && p.src[i] == c {
		i++
	}
	for i < nl {
		if p.src[i] != ' ' && p.src[i] != '\t' {
			return 0
		}
		i++
	}
	return c
}

func (p *parser) setextHeadingNode(content []line, underline line, marker byte) *cst.Node {
	level := 1
	if marker == '-' {
		level = 2
	}
	node := cst.NewNode(cst.KindHeading, cst.Span{
		Start: content[0].start,
		End:   underline.end,
	})
	node.Block = &cst.BlockAttrs{Heading: &cst.HeadingAttrs{
		Level:        level,
		Style:        cst.HeadingSetext,
		SetextMarker: marker,
	}}
	for _, child := range p.parseInlines(p.segments(content)) {
		node.AppendChild(child)
	}
	return node
}

// segments builds the inline input for a run of paragraph-style lines:
// per-line content bounds with leading and trailing whitespace trimmed,
// plus the hard-break flag for lines ending in two or more spaces.
func (p *parser) segments(content []line) []segment {
	segs := make([]segment, 0, len(content))
	for idx, l := range content {
		_, cs := p.indent(l)
		ce := l.nl
		for ce > cs && (p.src[ce-1] == ' ' || p.src[ce-1] == '\t') {
			ce--
		}
		var next int
		if idx+1 < len(content) {
			_, next = p.indent(content[idx+1])
		} else {
			next = l.end
		}
		segs = append(segs, segment{
			start:    cs,
			end:      ce,
			brkEnd:   next,
			hardTail: l.nl-ce >= 2,
			last:     idx == len(content)-1,
		})
	}
	return segs
}
