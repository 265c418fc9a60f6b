package parser

import (
	"strings"

	"github.com/yaklabco/mdtree/pkg/cst"
)

// parseLinkRefDefs consumes consecutive single-line link reference
// definitions ("[label]: dest" with an optional title) at a position where a
// paragraph would otherwise start. A line that does not match cleanly stays
// paragraph text.
func (p *parser) parseLinkRefDefs(lines []line, start int) []*cst.Node {
	var defs []*cst.Node
	for i := start; i < len(lines); i++ {
		node := p.linkRefDef(lines[i])
		if node == nil {
			break
		}
		defs = append(defs, node)
	}
	return defs
}

func (p *parser) linkRefDef(l line) *cst.Node {
	width, ns := p.indent(l)
	if width > 3 || ns >= l.nl || p.src[ns] != '[' {
		return nil
	}

	// Label: up to the matching unescaped ']', no nested brackets.
	i := ns + 1
	labelStart := i
	for i < l.nl && p.src[i] != ']' {
		if p.src[i] == '[' {
			return nil
		}
		if p.src[i] == '\\' {
			i++
		}
		i++
	}
	if i >= l.nl || i == labelStart || i-labelStart > 999 {
		return nil
	}
	label := string(p.src[labelStart:i])
	if strings.TrimSpace(label) == "" {
		return nil
	}
	i++
	if i >= l.nl || p.src[i] != ':' {
		return nil
	}
	i++
	for i < l.nl && (p.src[i] == ' ' || p.src[i] == '\t') {
		i++
	}

	dest, i, ok := scanLinkDestination(p.src, i, l.nl)
	if !ok || dest == "" {
		return nil
	}

	// Optional title, separated by whitespace.
	title := ""
	j := i
	for j < l.nl && (p.src[j] == ' ' || p.src[j] == '\t') {
		j++
	}
	if j > i && j < l.nl {
		t, k, ok := scanLinkTitle(p.src, j, l.nl)
		if !ok {
			return nil
		}
		title = t
		j = k
	}
	for j < l.nl {
		if p.src[j] != ' ' && p.src[j] != '\t' {
			return nil
		}
		j++
	}

	node := cst.NewNode(cst.KindLinkRefDef, cst.Span{Start: l.start, End: l.end})
	node.Block = &cst.BlockAttrs{LinkRef: &cst.LinkRefAttrs{
		Label:       label,
		Destination: dest,
		Title:       title,
	}}
	return node
}

// scanLinkDestination parses a link destination in s[i:end]: either <...>
// with no raw '<', '>', or newline inside, or a bare run of non-whitespace
// with balanced parentheses.
func scanLinkDestination(s []byte, i, end int) (string, int, bool) {
	if i >= end {
		return "", i, false
	}
	if s[i] == '<' {
		j := i + 1
		for j < end {
			switch s[j] {
			case '>':
				return unescape(string(s[i+1 : j])), j + 1, true
			case '<', '\n':
				return "", i, false
			case '\\':
				j++
			}
			j++
		}
		return "", i, false
	}

	depth := 0
	j := i
	for j < end {
		c := s[j]
		if c == ' ' || c == '\t' || c == '\n' {
			break
		}
		switch c {
		case '\\':
			j++
		case '(':
			depth++
		case ')':
			if depth == 0 {
				// Unbalanced close ends the destination.
				goto done
			}
			depth--
		}
		j++
	}
done:
	if j == i || depth != 0 {
		return "", i, false
	}
	return unescape(string(s[i:j])), j, true
}

// scanLinkTitle parses a title in double quotes, single quotes, or
// parentheses.
func scanLinkTitle(s []byte, i, end int) (string, int, bool) {
	if i >= end {
		return "", i, false
	}
	var closer byte
	switch s[i] {
	case '"':
		closer = '"'
	case '\'':
		closer = '\''
	case '(':
		closer = ')'
	default:
		return "", i, false
	}
	j := i + 1
	for j < end {
		switch s[j] {
		case closer:
			return unescape(string(s[i+1 : j])), j + 1, true
		case '\\':
			j++
		}
		j++
	}
	return "", i, false
}

// unescape removes backslashes before ASCII punctuation.
func unescape(s string) string {
	if !strings.ContainsRune(s, '\\') {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) && isPunct(s[i+1]) {
			i++
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

// isPunct reports whether c is ASCII punctuation (the set backslash
// escapes apply to).
func isPunct(c byte) bool {
	return c >= '!' && c <= '/' || c >= ':' && c <= '@' || c >= '[' && c <= '`' || c >= '{' && c <= '~'
}
