// Package parser turns Markdown source into a lossless CST. The block parser
// is line-oriented with an open-container model; the inline parser is a
// single left-to-right scan with a delimiter stack. Parsing never fails:
// malformed constructs degrade to paragraphs or raw HTML, and every byte of
// input is attributed to some node.
package parser

import (
	"github.com/yaklabco/mdtree/pkg/cst"
	"github.com/yaklabco/mdtree/pkg/source"
)

// Parse builds the CST for src. The returned document owns a copy of the
// bytes; the caller's buffer may be reused afterwards.
func Parse(src []byte) *cst.Document {
	view := source.New(src)
	owned := view.Bytes()

	p := &parser{src: owned}
	root := cst.NewNode(cst.KindDocument, cst.Span{Start: 0, End: len(owned)})
	for _, block := range p.parseBlocks(toLines(view.Lines())) {
		root.AppendChild(block)
	}

	return &cst.Document{Root: root, Source: owned}
}

// parser carries the source bytes through block and inline parsing.
type parser struct {
	src []byte
}

// line is one logical line within the region currently being parsed.
// start is the content start after container prefixes have been stripped;
// nl and end delimit the line terminator. All offsets are absolute.
type line struct {
	start int
	nl    int
	end   int
}

func toLines(srcLines []source.Line) []line {
	lines := make([]line, len(srcLines))
	for i, l := range srcLines {
		lines[i] = line{start: l.Start, nl: l.NewlineStart, end: l.End}
	}
	return lines
}

func (p *parser) isBlank(l line) bool {
	for i := l.start; i < l.nl; i++ {
		if p.src[i] != ' ' && p.src[i] != '\t' {
			return false
		}
	}
	return true
}

// indent returns the indentation width of the line in columns (tab stop 4)
// and the offset of the first non-whitespace byte (l.nl if blank).
func (p *parser) indent(l line) (int, int) {
	width := 0
	i := l.start
	for i < l.nl {
		switch p.src[i] {
		case ' ':
			width++
		case '\t':
			width += 4 - width%4
		default:
			return width, i
		}
		i++
	}
	return width, l.nl
}

// advanceColumns returns the offset after consuming up to width columns of
// leading whitespace, for stripping container indentation from continuation
// lines. A tab straddling the boundary is consumed whole.
func (p *parser) advanceColumns(l line, width int) int {
	consumed := 0
	i := l.start
	for i < l.nl && consumed < width {
		switch p.src[i] {
		case ' ':
			consumed++
		case '\t':
			consumed += 4 - consumed%4
		default:
			return i
		}
		i++
	}
	return i
}
