package parser

import (
	"bytes"

	"github.com/yaklabco/mdtree/pkg/cst"
)

func (p *parser) blankNode(run []line) *cst.Node {
	node := cst.NewNode(cst.KindBlankLines, cst.Span{
		Start: run[0].start,
		End:   run[len(run)-1].end,
	})
	node.Block = &cst.BlockAttrs{BlankCount: len(run)}
	return node
}

// isThematicBreak matches three or more of the same '-', '_', or '*',
// optionally interleaved with spaces and tabs.
func (p *parser) isThematicBreak(ns, nl int) bool {
	if ns >= nl {
		return false
	}
	c := p.src[ns]
	if c != '-' && c != '_' && c != '*' {
		return false
	}
	count := 0
	for i := ns; i < nl; i++ {
		switch p.src[i] {
		case c:
			count++
		case ' ', '\t':
		default:
			return false
		}
	}
	return count >= 3
}

func (p *parser) thematicBreakNode(l line, ns int) *cst.Node {
	node := cst.NewNode(cst.KindThematicBreak, cst.Span{Start: l.start, End: l.end})
	node.Block = &cst.BlockAttrs{BreakMarker: p.src[ns]}
	return node
}

// atxLevel returns the heading level (1-6) if the line opens an ATX heading:
// a '#' run followed by a space, tab, or end of line. Returns 0 otherwise.
func (p *parser) atxLevel(ns, nl int) int {
	level := 0
	i := ns
	for i < nl && p.src[i] == '#' {
		level++
		i++
	}
	if level == 0 || level > 6 {
		return 0
	}
	if i < nl && p.src[i] != ' ' && p.src[i] != '\t' {
		return 0
	}
	return level
}

func (p *parser) atxHeadingNode(l line, ns int) *cst.Node {
	level := p.atxLevel(ns, l.nl)

	// Content starts after the marker run and following whitespace.
	cs := ns + level
	for cs < l.nl && (p.src[cs] == ' ' || p.src[cs] == '\t') {
		cs++
	}

	// Strip an optional closing sequence: trailing '#' run preceded by
	// whitespace (or forming the entire content).
	ce := l.nl
	for ce > cs && (p.src[ce-1] == ' ' || p.src[ce-1] == '\t') {
		ce--
	}
	he := ce
	for he > cs && p.src[he-1] == '#' {
		he--
	}
	if he < ce && (he == cs || p.src[he-1] == ' ' || p.src[he-1] == '\t') {
		ce = he
		for ce > cs && (p.src[ce-1] == ' ' || p.src[ce-1] == '\t') {
			ce--
		}
	}

	node := cst.NewNode(cst.KindHeading, cst.Span{Start: l.start, End: l.end})
	node.Block = &cst.BlockAttrs{Heading: &cst.HeadingAttrs{
		Level: level,
		Style: cst.HeadingATX,
	}}
	if cs < ce {
		segs := []segment{{start: cs, end: ce, brkEnd: l.end, last: true}}
		for _, child := range p.parseInlines(segs) {
			node.AppendChild(child)
		}
	}
	return node
}

// fenceRun returns the length of the fence character run at ns, or 0 if the
// line does not start with '`' or '~'.
func (p *parser) fenceRun(ns, nl int) int {
	if ns >= nl {
		return 0
	}
	c := p.src[ns]
	if c != '`' && c != '~' {
		return 0
	}
	run := 0
	for i := ns; i < nl && p.src[i] == c; i++ {
		run++
	}
	return run
}

// validFenceInfo rejects backtick fences whose info string contains a
// backtick (which would read as an inline code span instead).
func (p *parser) validFenceInfo(ns, nl int) bool {
	run := p.fenceRun(ns, nl)
	if run < 3 {
		return false
	}
	if p.src[ns] == '~' {
		return true
	}
	return !bytes.ContainsRune(p.src[ns+run:nl], '`')
}

func (p *parser) parseFencedCode(lines []line, start, indentWidth, ns int) (*cst.Node, int) {
	open := lines[start]
	fenceChar := p.src[ns]
	fenceLen := p.fenceRun(ns, open.nl)
	info := unescape(string(bytes.TrimSpace(p.src[ns+fenceLen : open.nl])))

	closed := false
	end := start + 1
	for end < len(lines) {
		l := lines[end]
		width, lns := p.indent(l)
		if width <= 3 && lns < l.nl && p.src[lns] == fenceChar {
			run := p.fenceRun(lns, l.nl)
			rest := p.src[lns+run : l.nl]
			if run >= fenceLen && len(bytes.TrimSpace(rest)) == 0 {
				closed = true
				end++
				break
			}
		}
		end++
	}

	bodyStart, bodyEnd := start+1, end
	if closed {
		bodyEnd = end - 1
	}

	var literal bytes.Buffer
	body := cst.Span{Start: open.end, End: open.end}
	if bodyStart < bodyEnd {
		body = cst.Span{Start: lines[bodyStart].start, End: lines[bodyEnd-1].end}
		for _, l := range lines[bodyStart:bodyEnd] {
			cs := p.advanceColumns(l, indentWidth)
			literal.Write(p.src[cs:l.nl])
			literal.WriteByte('\n')
		}
	}

	node := cst.NewNode(cst.KindFencedCode, cst.Span{
		Start: open.start,
		End:   lines[end-1].end,
	})
	node.Block = &cst.BlockAttrs{Code: &cst.CodeAttrs{
		FenceChar:   fenceChar,
		FenceLength: fenceLen,
		Info:        info,
		Body:        body,
		Literal:     literal.Bytes(),
		Closed:      closed,
	}}
	return node, end
}

func (p *parser) parseIndentedCode(lines []line, start int) (*cst.Node, int) {
	lastContent := start
	end := start
	for end < len(lines) {
		l := lines[end]
		if p.isBlank(l) {
			end++
			continue
		}
		width, _ := p.indent(l)
		if width < 4 {
			break
		}
		lastContent = end
		end++
	}
	end = lastContent + 1

	var literal bytes.Buffer
	for _, l := range lines[start:end] {
		if p.isBlank(l) {
			literal.WriteByte('\n')
			continue
		}
		cs := p.advanceColumns(l, 4)
		literal.Write(p.src[cs:l.nl])
		literal.WriteByte('\n')
	}

	node := cst.NewNode(cst.KindIndentedCode, cst.Span{
		Start: lines[start].start,
		End:   lines[end-1].end,
	})
	node.Block = &cst.BlockAttrs{Code: &cst.CodeAttrs{
		Body:    cst.Span{Start: lines[start].start, End: lines[end-1].end},
		Literal: literal.Bytes(),
		Closed:  true,
	}}
	return node, end
}
