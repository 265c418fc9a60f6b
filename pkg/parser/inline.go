package parser

import (
	"bytes"

	"github.com/yaklabco/mdtree/pkg/cst"
)

// segment is one line's worth of inline input: trimmed content bounds plus
// the hard-break flag for lines ending in two or more spaces. brkEnd is the
// absolute start of the next segment's content, so a break node's span
// covers the trailing whitespace, the terminator, and any stripped prefix.
type segment struct {
	start, end int
	brkEnd     int
	hardTail   bool
	last       bool
}

// joint records the line break sitting at a given virtual index.
type joint struct {
	hard     bool
	absStart int
	absEnd   int
}

// inlineParser scans a block's inline region. Multi-line regions (paragraph
// lines, possibly stripped of container prefixes) are concatenated into a
// virtual buffer joined with '\n'; pos maps every virtual index back to an
// absolute source offset so nodes carry real spans.
type inlineParser struct {
	p      *parser
	buf    []byte
	pos    []int
	joints map[int]joint

	items   []*inlineItem
	emitted int
	openers []int // indices into items of pending '[' / '![' delimiters
}

// inlineItem is either a materialized node or a pending delimiter run.
type inlineItem struct {
	node *cst.Node

	typ                byte // '*', '_', '~', '[', '!'
	n                  int  // remaining run length
	origN              int  // original run length (mod-3 rule)
	vstart             int  // virtual start of the remaining run
	canOpen, canClose  bool
	active             bool
	di                 int // index in the rebuild list during emphasis
}

// parseInlines builds the inline children for one block's content segments.
func (p *parser) parseInlines(segs []segment) []*cst.Node {
	if len(segs) == 0 {
		return nil
	}
	ip := &inlineParser{p: p, joints: make(map[int]joint)}
	for _, s := range segs {
		for a := s.start; a < s.end; a++ {
			ip.buf = append(ip.buf, p.src[a])
			ip.pos = append(ip.pos, a)
		}
		if !s.last {
			ip.joints[len(ip.buf)] = joint{hard: s.hardTail, absStart: s.end, absEnd: s.brkEnd}
			ip.buf = append(ip.buf, '\n')
			ip.pos = append(ip.pos, s.end)
		}
	}
	ip.pos = append(ip.pos, segs[len(segs)-1].end)
	return ip.run()
}

// abs maps a virtual index to its absolute source offset.
func (ip *inlineParser) abs(v int) int { return ip.pos[v] }

// absEnd maps an exclusive virtual end index to an absolute offset.
func (ip *inlineParser) absEnd(v int) int {
	if v == 0 {
		return ip.pos[0]
	}
	return ip.pos[v-1] + 1
}

// flush emits accumulated literal text up to virtual index v. The range
// never crosses a line joint (every '\n' is handled eagerly), so a single
// contiguous Text node suffices.
func (ip *inlineParser) flush(v int) {
	if ip.emitted >= v {
		return
	}
	node := cst.NewNode(cst.KindText, cst.Span{
		Start: ip.abs(ip.emitted),
		End:   ip.absEnd(v),
	})
	ip.items = append(ip.items, &inlineItem{node: node})
	ip.emitted = v
}

func (ip *inlineParser) push(node *cst.Node, next int) {
	ip.items = append(ip.items, &inlineItem{node: node})
	ip.emitted = next
}

func (ip *inlineParser) run() []*cst.Node {
	buf := ip.buf
	i := 0
	for i < len(buf) {
		switch buf[i] {
		case '\\':
			i = ip.scanEscape(i)
		case '\n':
			ip.flush(i)
			j := ip.joints[i]
			kind := cst.KindSoftBreak
			if j.hard {
				kind = cst.KindHardBreak
			}
			ip.push(cst.NewNode(kind, cst.Span{Start: j.absStart, End: j.absEnd}), i+1)
			i++
		case '`':
			i = ip.scanCodeSpan(i)
		case '<':
			i = ip.scanAngle(i)
		case '[':
			i = ip.scanBracketOpen(i)
		case '!':
			if i+1 < len(buf) && buf[i+1] == '[' {
				ip.flush(i)
				ip.pushDelimiter(&inlineItem{typ: '!', n: 2, origN: 2, vstart: i, active: true})
				ip.openers = append(ip.openers, len(ip.items)-1)
				ip.emitted = i + 2
				i += 2
			} else {
				i++
			}
		case ']':
			i = ip.scanBracketClose(i)
		case '*', '_', '~':
			i = ip.scanDelimiterRun(i)
		default:
			i++
		}
	}
	ip.flush(len(buf))

	items := ip.processEmphasis(ip.items)
	return ip.materialize(items)
}

func (ip *inlineParser) pushDelimiter(it *inlineItem) {
	ip.items = append(ip.items, it)
}

func (ip *inlineParser) scanEscape(i int) int {
	buf := ip.buf
	if i+1 < len(buf) && buf[i+1] == '\n' {
		// Backslash before a line ending is a hard break.
		ip.flush(i)
		j := ip.joints[i+1]
		node := cst.NewNode(cst.KindHardBreak, cst.Span{Start: ip.abs(i), End: j.absEnd})
		ip.push(node, i+2)
		return i + 2
	}
	if i+1 < len(buf) && isPunct(buf[i+1]) {
		ip.flush(i)
		node := cst.NewNode(cst.KindText, cst.Span{Start: ip.abs(i), End: ip.absEnd(i + 2)})
		node.Inline = &cst.InlineAttrs{Literal: buf[i+1 : i+2]}
		ip.push(node, i+2)
		return i + 2
	}
	return i + 1
}

// scanCodeSpan matches a backtick run against the closest following run of
// the same length. Content is raw; line endings become spaces, and one
// space is stripped from both ends when the content has a non-space byte.
func (ip *inlineParser) scanCodeSpan(i int) int {
	buf := ip.buf
	ticks := 0
	for i+ticks < len(buf) && buf[i+ticks] == '`' {
		ticks++
	}

	j := i + ticks
	for j < len(buf) {
		if buf[j] != '`' {
			j++
			continue
		}
		run := 0
		for j+run < len(buf) && buf[j+run] == '`' {
			run++
		}
		if run == ticks {
			content := bytes.ReplaceAll(buf[i+ticks:j], []byte("\n"), []byte(" "))
			if len(content) >= 2 && content[0] == ' ' && content[len(content)-1] == ' ' &&
				len(bytes.Trim(content, " ")) > 0 {
				content = content[1 : len(content)-1]
			}
			ip.flush(i)
			node := cst.NewNode(cst.KindCodeSpan, cst.Span{
				Start: ip.abs(i),
				End:   ip.absEnd(j + run),
			})
			node.Inline = &cst.InlineAttrs{Literal: content, Ticks: ticks}
			ip.push(node, j+run)
			return j + run
		}
		j += run
	}

	// No closer: the run is literal text.
	return i + ticks
}

// scanAngle recognizes an autolink or inline HTML at '<'; anything else
// stays literal text.
func (ip *inlineParser) scanAngle(i int) int {
	buf := ip.buf

	if url, email, end, ok := scanAutolink(buf, i); ok {
		ip.flush(i)
		node := cst.NewNode(cst.KindAutolink, cst.Span{Start: ip.abs(i), End: ip.absEnd(end)})
		node.Inline = &cst.InlineAttrs{Autolink: &cst.AutolinkAttrs{URL: url, Email: email}}
		ip.push(node, end)
		return end
	}

	if end, ok := scanInlineHTML(buf, i); ok {
		ip.flush(i)
		node := cst.NewNode(cst.KindHTMLInline, cst.Span{Start: ip.abs(i), End: ip.absEnd(end)})
		node.Inline = &cst.InlineAttrs{Literal: buf[i:end]}
		ip.push(node, end)
		return end
	}

	return i + 1
}

// scanBracketOpen handles '[': a footnote reference if it matches
// "[^label]", otherwise a potential link opener.
func (ip *inlineParser) scanBracketOpen(i int) int {
	buf := ip.buf
	if i+1 < len(buf) && buf[i+1] == '^' {
		j := i + 2
		for j < len(buf) && buf[j] != ']' && buf[j] != '[' && buf[j] != '^' && buf[j] != '\n' {
			j++
		}
		if j < len(buf) && buf[j] == ']' && j > i+2 {
			ip.flush(i)
			node := cst.NewNode(cst.KindFootnoteRef, cst.Span{Start: ip.abs(i), End: ip.absEnd(j + 1)})
			node.Inline = &cst.InlineAttrs{FootnoteLabel: string(buf[i+2 : j])}
			ip.push(node, j+1)
			return j + 1
		}
	}
	ip.flush(i)
	ip.pushDelimiter(&inlineItem{typ: '[', n: 1, origN: 1, vstart: i, active: true})
	ip.openers = append(ip.openers, len(ip.items)-1)
	ip.emitted = i + 1
	return i + 1
}

// scanBracketClose handles ']': pop the nearest opener and try the inline,
// full, collapsed, and shortcut closure forms in that order. On failure the
// opener is demoted to text and the ']' stays literal.
func (ip *inlineParser) scanBracketClose(i int) int {
	if len(ip.openers) == 0 {
		return i + 1
	}
	oi := ip.openers[len(ip.openers)-1]
	ip.openers = ip.openers[:len(ip.openers)-1]
	opener := ip.items[oi]
	if !opener.active {
		return i + 1
	}

	ip.flush(i)
	node, end, ok := ip.parseLinkClose(i, opener)
	if !ok {
		return i + 1
	}

	for _, child := range ip.materialize(ip.processEmphasis(ip.items[oi+1:])) {
		node.AppendChild(child)
	}
	ip.items = ip.items[:oi]
	ip.items = append(ip.items, &inlineItem{node: node})
	ip.emitted = end

	if opener.typ == '[' {
		// No links inside links: deactivate enclosing openers of '['.
		for _, idx := range ip.openers {
			if ip.items[idx].typ == '[' {
				ip.items[idx].active = false
			}
		}
	}
	return end
}

// parseLinkClose builds the node for a bracket closure at virtual index i.
func (ip *inlineParser) parseLinkClose(i int, opener *inlineItem) (*cst.Node, int, bool) {
	buf := ip.buf
	image := opener.typ == '!'
	contentStart := opener.vstart + opener.n

	newNode := func(kind cst.NodeKind, end int) *cst.Node {
		return cst.NewNode(kind, cst.Span{Start: ip.abs(opener.vstart), End: ip.absEnd(end)})
	}

	if i+1 < len(buf) && buf[i+1] == '(' {
		j := skipInlineSpace(buf, i+2)
		dest := ""
		var ok bool
		if j < len(buf) && buf[j] != ')' {
			dest, j, ok = scanLinkDestination(buf, j, len(buf))
			if !ok {
				return nil, 0, false
			}
		}
		k := skipInlineSpace(buf, j)
		title := ""
		if k > j && k < len(buf) && buf[k] != ')' {
			title, k, ok = scanLinkTitle(buf, k, len(buf))
			if !ok {
				return nil, 0, false
			}
			k = skipInlineSpace(buf, k)
		}
		if k >= len(buf) || buf[k] != ')' {
			return nil, 0, false
		}
		kind := cst.KindLink
		if image {
			kind = cst.KindImage
		}
		node := newNode(kind, k+1)
		node.Inline = &cst.InlineAttrs{Link: &cst.LinkAttrs{Destination: dest, Title: title}}
		return node, k + 1, true
	}

	refKind := cst.KindRefLink
	if image {
		refKind = cst.KindRefImage
	}

	if i+1 < len(buf) && buf[i+1] == '[' {
		j := i + 2
		for j < len(buf) && buf[j] != ']' && buf[j] != '[' {
			if buf[j] == '\\' {
				j++
			}
			j++
		}
		if j >= len(buf) || buf[j] != ']' {
			return nil, 0, false
		}
		label := string(buf[i+2 : j])
		style := cst.RefFull
		if label == "" {
			label = string(buf[contentStart:i])
			style = cst.RefCollapsed
		}
		node := newNode(refKind, j+1)
		node.Inline = &cst.InlineAttrs{Link: &cst.LinkAttrs{Label: label, Style: style}}
		return node, j + 1, true
	}

	// Shortcut reference: the bracketed text is its own label.
	label := string(buf[contentStart:i])
	if len(bytes.TrimSpace([]byte(label))) == 0 {
		return nil, 0, false
	}
	node := newNode(refKind, i+1)
	node.Inline = &cst.InlineAttrs{Link: &cst.LinkAttrs{Label: label, Style: cst.RefShortcut}}
	return node, i + 1, true
}

// scanDelimiterRun classifies a '*', '_', or '~' run as left/right flanking
// per the CommonMark rules and pushes it on the delimiter list.
func (ip *inlineParser) scanDelimiterRun(i int) int {
	buf := ip.buf
	c := buf[i]
	n := 0
	for i+n < len(buf) && buf[i+n] == c {
		n++
	}

	if c == '~' && n < 2 {
		return i + n
	}

	var before, after byte = '\n', '\n'
	if i > 0 {
		before = buf[i-1]
	}
	if i+n < len(buf) {
		after = buf[i+n]
	}

	wsBefore, puBefore := isInlineSpace(before), isPunct(before)
	wsAfter, puAfter := isInlineSpace(after), isPunct(after)

	leftFlanking := !wsAfter && (!puAfter || wsBefore || puBefore)
	rightFlanking := !wsBefore && (!puBefore || wsAfter || puAfter)

	var canOpen, canClose bool
	if c == '_' {
		canOpen = leftFlanking && (!rightFlanking || puBefore)
		canClose = rightFlanking && (!leftFlanking || puAfter)
	} else {
		canOpen = leftFlanking
		canClose = rightFlanking
	}

	if !canOpen && !canClose {
		return i + n
	}

	ip.flush(i)
	ip.pushDelimiter(&inlineItem{
		typ: c, n: n, origN: n, vstart: i,
		canOpen: canOpen, canClose: canClose,
	})
	ip.emitted = i + n
	return i + n
}

func typIndex(c byte) int {
	switch c {
	case '*':
		return 0
	case '_':
		return 1
	default:
		return 2
	}
}

// processEmphasis resolves delimiter runs innermost-first, rebuilding the
// item list. A closer walks back through the opener stack for a compatible
// run; the mod-3 rule rejects pairs where either side can both open and
// close, the summed lengths divide by three, and neither does individually.
// Unmatched delimiters survive as pending items and materialize to text.
func (ip *inlineParser) processEmphasis(src []*inlineItem) []*inlineItem {
	var dst []*inlineItem
	var stacks [3][]*inlineItem

	trim := func() {
		for t := range stacks {
			stk := &stacks[t]
			for len(*stk) > 0 && (*stk)[len(*stk)-1].di >= len(dst) {
				*stk = (*stk)[:len(*stk)-1]
			}
		}
	}

	for _, it := range src {
		if it.node != nil || it.typ == '[' || it.typ == '!' {
			dst = append(dst, it)
			continue
		}

		if it.canClose {
			stk := &stacks[typIndex(it.typ)]
			for it.n > 0 {
				matched := false
				for k := len(*stk) - 1; k >= 0; k-- {
					op := (*stk)[k]
					if it.typ != '~' &&
						(op.canOpen && op.canClose || it.canOpen && it.canClose) &&
						(op.origN+it.origN)%3 == 0 &&
						(op.origN%3 != 0 || it.origN%3 != 0) {
						continue
					}

					d := 1
					switch {
					case it.typ == '~':
						if op.n < 2 || it.n < 2 {
							continue
						}
						d = 2
					case op.n >= 2 && it.n >= 2:
						d = 2
					}

					var kind cst.NodeKind
					switch {
					case it.typ == '~':
						kind = cst.KindStrikethrough
					case d == 2:
						kind = cst.KindStrong
					default:
						kind = cst.KindEmphasis
					}

					node := cst.NewNode(kind, cst.Span{
						Start: ip.abs(op.vstart + op.n - d),
						End:   ip.absEnd(it.vstart + d),
					})
					node.Inline = &cst.InlineAttrs{Marker: it.typ}
					for _, child := range ip.materialize(dst[op.di+1:]) {
						node.AppendChild(child)
					}

					dst = dst[:op.di+1]
					op.n -= d
					if op.n == 0 {
						dst = dst[:op.di]
					}
					trim()

					it.vstart += d
					it.n -= d
					dst = append(dst, &inlineItem{node: node})
					matched = true
					break
				}
				if !matched {
					break
				}
			}
		}

		if it.n > 0 {
			it.di = len(dst)
			dst = append(dst, it)
			if it.canOpen {
				stk := &stacks[typIndex(it.typ)]
				*stk = append(*stk, it)
			}
		}
	}

	return dst
}

// materialize converts the final item list to nodes; leftover delimiters
// become literal text.
func (ip *inlineParser) materialize(items []*inlineItem) []*cst.Node {
	var nodes []*cst.Node
	for _, it := range items {
		if it.node != nil {
			nodes = append(nodes, it.node)
			continue
		}
		node := cst.NewNode(cst.KindText, cst.Span{
			Start: ip.abs(it.vstart),
			End:   ip.absEnd(it.vstart + it.n),
		})
		nodes = append(nodes, node)
	}
	return nodes
}

func isInlineSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n'
}

// skipInlineSpace advances past spaces, tabs, and line endings.
func skipInlineSpace(buf []byte, i int) int {
	for i < len(buf) && isInlineSpace(buf[i]) {
		i++
	}
	return i
}
