package serialize

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yaklabco/mdtree/pkg/cst"
)

// Normalize renders the document in canonical form: ATX headings, a single
// blank line between blocks, list and fence markers as parsed, and a
// trailing newline. Unlike Serialize it re-derives layout from semantics,
// so round-trip identity is not guaranteed; semantics are.
func Normalize(doc *cst.Document) []byte {
	var out bytes.Buffer
	writeBlocks(&out, doc.Root, doc.Source, "")
	return out.Bytes()
}

// writeBlocks emits the children of a container, joined by single blank
// lines. BlankLines nodes collapse into that separator.
func writeBlocks(out *bytes.Buffer, parent *cst.Node, src []byte, prefix string) {
	first := true
	for block := parent.FirstChild; block != nil; block = block.Next {
		if block.Kind == cst.KindBlankLines {
			continue
		}
		if !first {
			out.WriteString(strings.TrimRight(prefix, " "))
			out.WriteByte('\n')
		}
		first = false
		writeBlock(out, block, src, prefix)
	}
}

//nolint:cyclop // closed dispatch over every block kind
func writeBlock(out *bytes.Buffer, n *cst.Node, src []byte, prefix string) {
	switch n.Kind {
	case cst.KindParagraph:
		writePrefixedLines(out, inlineMarkdown(n, src), prefix)

	case cst.KindHeading:
		out.WriteString(prefix)
		out.WriteString(strings.Repeat("#", n.Block.Heading.Level))
		out.WriteByte(' ')
		out.WriteString(strings.ReplaceAll(inlineMarkdown(n, src), "\n", " "))
		out.WriteByte('\n')

	case cst.KindFencedCode:
		attrs := n.Block.Code
		fence := strings.Repeat(string(attrs.FenceChar), attrs.FenceLength)
		out.WriteString(prefix)
		out.WriteString(fence)
		out.WriteString(attrs.Info)
		out.WriteByte('\n')
		writePrefixedLines(out, string(attrs.Literal), prefix)
		out.WriteString(prefix)
		out.WriteString(fence)
		out.WriteByte('\n')

	case cst.KindIndentedCode:
		writePrefixedLines(out, string(n.Block.Code.Literal), prefix+"    ")

	case cst.KindThematicBreak:
		out.WriteString(prefix)
		out.WriteString(strings.Repeat(string(n.Block.BreakMarker), 3))
		out.WriteByte('\n')

	case cst.KindBlockQuote:
		writeBlocks(out, n, src, prefix+"> ")

	case cst.KindList:
		writeList(out, n, src, prefix)

	case cst.KindHTMLBlock:
		writePrefixedLines(out, string(src[n.Span.Start:n.Span.End]), prefix)

	case cst.KindLinkRefDef:
		ref := n.Block.LinkRef
		out.WriteString(prefix)
		fmt.Fprintf(out, "[%s]: %s", ref.Label, ref.Destination)
		if ref.Title != "" {
			fmt.Fprintf(out, " %q", ref.Title)
		}
		out.WriteByte('\n')

	case cst.KindTable:
		writeTable(out, n, src, prefix)

	case cst.KindFootnoteDef:
		out.WriteString(prefix)
		fmt.Fprintf(out, "[^%s]:", n.Block.FootnoteLabel)
		var body bytes.Buffer
		writeBlocks(&body, n, src, "")
		content := strings.TrimRight(body.String(), "\n")
		if content != "" {
			out.WriteByte(' ')
			out.WriteString(strings.ReplaceAll(content, "\n", "\n"+prefix+"    "))
		}
		out.WriteByte('\n')

	default:
		// Fall back to the preserved source slice.
		writePrefixedLines(out, string(src[n.Span.Start:n.Span.End]), prefix)
	}
}

func writeList(out *bytes.Buffer, list *cst.Node, src []byte, prefix string) {
	attrs := list.Block.List
	num := attrs.Start
	first := true
	for item := list.FirstChild; item != nil; item = item.Next {
		if !first && !attrs.Tight {
			out.WriteString(strings.TrimRight(prefix, " "))
			out.WriteByte('\n')
		}
		first = false

		var markerText string
		if attrs.Ordered {
			markerText = fmt.Sprintf("%d%c ", num, attrs.Marker)
			num++
		} else {
			markerText = string(attrs.Marker) + " "
		}
		if task := item.Block.Item.Task; task != cst.TaskNone {
			if task == cst.TaskChecked {
				markerText += "[x] "
			} else {
				markerText += "[ ] "
			}
		}

		var body bytes.Buffer
		writeBlocks(&body, item, src, "")
		content := strings.TrimRight(body.String(), "\n")

		cont := strings.Repeat(" ", len(markerText))
		lines := strings.Split(content, "\n")
		for li, ln := range lines {
			out.WriteString(prefix)
			if li == 0 {
				out.WriteString(markerText)
			} else if ln != "" {
				out.WriteString(cont)
			}
			out.WriteString(ln)
			out.WriteByte('\n')
		}
	}
}

func writeTable(out *bytes.Buffer, table *cst.Node, src []byte, prefix string) {
	aligns := table.Block.Table.Alignments
	rows := table.Children()

	for ri, row := range rows {
		out.WriteString(prefix)
		out.WriteByte('|')
		for cell := row.FirstChild; cell != nil; cell = cell.Next {
			out.WriteByte(' ')
			out.WriteString(strings.ReplaceAll(inlineMarkdown(cell, src), "\n", " "))
			out.WriteString(" |")
		}
		out.WriteByte('\n')

		if ri == 0 {
			out.WriteString(prefix)
			out.WriteByte('|')
			for _, a := range aligns {
				switch a {
				case cst.AlignLeft:
					out.WriteString(":---|")
				case cst.AlignCenter:
					out.WriteString(":---:|")
				case cst.AlignRight:
					out.WriteString("---:|")
				default:
					out.WriteString("---|")
				}
			}
			out.WriteByte('\n')
		}
	}
}

// writePrefixedLines writes text (newline-terminated lines) with the given
// prefix, trimming prefix-only lines.
func writePrefixedLines(out *bytes.Buffer, text, prefix string) {
	text = strings.TrimRight(text, "\n")
	if text == "" {
		return
	}
	for _, ln := range strings.Split(text, "\n") {
		if ln == "" {
			out.WriteString(strings.TrimRight(prefix, " "))
		} else {
			out.WriteString(prefix)
			out.WriteString(ln)
		}
		out.WriteByte('\n')
	}
}

// inlineMarkdown renders a block's inline children back to Markdown.
//
//nolint:cyclop // closed dispatch over every inline kind
func inlineMarkdown(parent *cst.Node, src []byte) string {
	var b strings.Builder
	for n := parent.FirstChild; n != nil; n = n.Next {
		switch n.Kind {
		case cst.KindText:
			// Replay the covered bytes so backslash escapes survive.
			b.Write(src[n.Span.Start:n.Span.End])
		case cst.KindSoftBreak:
			b.WriteByte('\n')
		case cst.KindHardBreak:
			b.WriteString("\\\n")
		case cst.KindCodeSpan:
			ticks := strings.Repeat("`", n.Inline.Ticks)
			b.WriteString(ticks)
			b.Write(n.Inline.Literal)
			b.WriteString(ticks)
		case cst.KindEmphasis:
			m := string(n.Inline.Marker)
			b.WriteString(m + inlineMarkdown(n, src) + m)
		case cst.KindStrong:
			m := strings.Repeat(string(n.Inline.Marker), 2)
			b.WriteString(m + inlineMarkdown(n, src) + m)
		case cst.KindStrikethrough:
			b.WriteString("~~" + inlineMarkdown(n, src) + "~~")
		case cst.KindLink:
			writeLinkMarkdown(&b, "", inlineMarkdown(n, src), n.Inline.Link)
		case cst.KindImage:
			writeLinkMarkdown(&b, "!", inlineMarkdown(n, src), n.Inline.Link)
		case cst.KindRefLink, cst.KindRefImage:
			bang := ""
			if n.Kind == cst.KindRefImage {
				bang = "!"
			}
			link := n.Inline.Link
			switch link.Style {
			case cst.RefFull:
				fmt.Fprintf(&b, "%s[%s][%s]", bang, inlineMarkdown(n, src), link.Label)
			case cst.RefCollapsed:
				fmt.Fprintf(&b, "%s[%s][]", bang, link.Label)
			default:
				fmt.Fprintf(&b, "%s[%s]", bang, link.Label)
			}
		case cst.KindAutolink:
			fmt.Fprintf(&b, "<%s>", n.Inline.Autolink.URL)
		case cst.KindHTMLInline:
			b.Write(n.Text(src))
		case cst.KindFootnoteRef:
			fmt.Fprintf(&b, "[^%s]", n.Inline.FootnoteLabel)
		}
	}
	return b.String()
}

func writeLinkMarkdown(b *strings.Builder, bang, text string, link *cst.LinkAttrs) {
	b.WriteString(bang)
	b.WriteByte('[')
	b.WriteString(text)
	b.WriteString("](")
	b.WriteString(link.Destination)
	if link.Title != "" {
		fmt.Fprintf(b, " %q", link.Title)
	}
	b.WriteByte(')')
}
