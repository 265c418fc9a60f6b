package parser

import (
	"bytes"

	"github.com/yaklabco/mdtree/pkg/cst"
)

// blockTags are the HTML element names that open a kind-6 HTML block.
var blockTags = map[string]bool{
	"address": true, "article": true, "aside": true, "base": true,
	"basefont": true, "blockquote": true, "body": true, "caption": true,
	"center": true, "col": true, "colgroup": true, "dd": true,
	"details": true, "dialog": true, "dir": true, "div": true, "dl": true,
	"dt": true, "fieldset": true, "figcaption": true, "figure": true,
	"footer": true, "form": true, "frame": true, "frameset": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"head": true, "header": true, "hr": true, "html": true, "iframe": true,
	"legend": true, "li": true, "link": true, "main": true, "menu": true,
	"menuitem": true, "nav": true, "noframes": true, "ol": true,
	"optgroup": true, "option": true, "p": true, "param": true,
	"section": true, "summary": true, "table": true, "tbody": true,
	"td": true, "tfoot": true, "th": true, "thead": true, "title": true,
	"tr": true, "track": true, "ul": true,
}

// rawTextTags open a kind-1 block that runs until its close tag appears.
var rawTextTags = []string{"pre", "script", "style", "textarea"}

// htmlBlockKind classifies an HTML block opener per the CommonMark kinds:
// 1 raw-text elements, 2 comments, 3 processing instructions,
// 4 declarations, 5 CDATA, 6 known block tags, 7 any complete tag on its
// own line (which may not interrupt a paragraph). Returns 0 for none.
func (p *parser) htmlBlockKind(ns, nl int, interrupting bool) int {
	if ns >= nl || p.src[ns] != '<' {
		return 0
	}
	rest := p.src[ns:nl]

	lower := bytes.ToLower(rest)
	for _, tag := range rawTextTags {
		prefix := "<" + tag
		if bytes.HasPrefix(lower, []byte(prefix)) {
			if len(lower) == len(prefix) {
				return 1
			}
			switch lower[len(prefix)] {
			case ' ', '\t', '>':
				return 1
			}
		}
	}
	if bytes.HasPrefix(rest, []byte("<!--")) {
		return 2
	}
	if bytes.HasPrefix(rest, []byte("<?")) {
		return 3
	}
	if bytes.HasPrefix(rest, []byte("<![CDATA[")) {
		return 5
	}
	if len(rest) >= 2 && rest[1] == '!' && len(rest) >= 3 && isASCIILetter(rest[2]) {
		return 4
	}

	// Kinds 6 and 7 need a tag name.
	i := 1
	closing := false
	if i < len(rest) && rest[i] == '/' {
		closing = true
		i++
	}
	nameStart := i
	for i < len(rest) && (isASCIILetter(rest[i]) || isDigit(rest[i]) || rest[i] == '-') {
		i++
	}
	if i == nameStart {
		return 0
	}
	name := string(bytes.ToLower(rest[nameStart:i]))
	if blockTags[name] {
		if i == len(rest) {
			return 6
		}
		switch rest[i] {
		case ' ', '\t', '>':
			return 6
		case '/':
			if i+1 < len(rest) && rest[i+1] == '>' {
				return 6
			}
		}
	}
	if interrupting {
		return 0
	}
	// Kind 7: a single complete open or close tag with only whitespace
	// after it.
	if end, ok := scanTag(rest, 0, closing); ok {
		if len(bytes.TrimSpace(rest[end:])) == 0 {
			return 7
		}
	}
	return 0
}

// parseHTMLBlock consumes lines according to the block kind's terminator.
// Kinds 1-5 end on a line containing their close marker (inclusive);
// kinds 6-7 end at the next blank line (exclusive).
func (p *parser) parseHTMLBlock(lines []line, start, kind int) (*cst.Node, int) {
	end := start
	switch kind {
	case 1:
		for end < len(lines) {
			lower := bytes.ToLower(p.src[lines[end].start:lines[end].nl])
			done := false
			for _, tag := range rawTextTags {
				if bytes.Contains(lower, []byte("</"+tag+">")) {
					done = true
					break
				}
			}
			end++
			if done {
				break
			}
		}
	case 2, 3, 4, 5:
		marker := map[int]string{2: "-->", 3: "?>", 4: ">", 5: "]]>"}[kind]
		for end < len(lines) {
			found := bytes.Contains(p.src[lines[end].start:lines[end].nl], []byte(marker))
			end++
			if found {
				break
			}
		}
	default:
		for end < len(lines) && !p.isBlank(lines[end]) {
			end++
		}
	}

	node := cst.NewNode(cst.KindHTMLBlock, cst.Span{
		Start: lines[start].start,
		End:   lines[end-1].end,
	})
	return node, end
}

// scanTag scans a complete HTML open or close tag starting at '<'.
// Returns the offset just past '>' on success.
func scanTag(s []byte, i int, closing bool) (int, bool) {
	if i >= len(s) || s[i] != '<' {
		return 0, false
	}
	i++
	if closing {
		i++
	}
	nameStart := i
	for i < len(s) && (isASCIILetter(s[i]) || isDigit(s[i]) || s[i] == '-') {
		i++
	}
	if i == nameStart {
		return 0, false
	}
	if closing {
		for i < len(s) && (s[i] == ' ' || s[i] == '\t') {
			i++
		}
		if i < len(s) && s[i] == '>' {
			return i + 1, true
		}
		return 0, false
	}
	// Attributes.
	for {
		j := i
		for j < len(s) && (s[j] == ' ' || s[j] == '\t') {
			j++
		}
		if j < len(s) && s[j] == '>' {
			return j + 1, true
		}
		if j+1 < len(s) && s[j] == '/' && s[j+1] == '>' {
			return j + 2, true
		}
		if j == i || j >= len(s) {
			return 0, false
		}
		// Attribute name.
		nameStart := j
		for j < len(s) && (isASCIILetter(s[j]) || isDigit(s[j]) || s[j] == '_' || s[j] == ':' || s[j] == '-' || s[j] == '.') {
			j++
		}
		if j == nameStart {
			return 0, false
		}
		// Optional value.
		k := j
		for k < len(s) && (s[k] == ' ' || s[k] == '\t') {
			k++
		}
		if k < len(s) && s[k] == '=' {
			k++
			for k < len(s) && (s[k] == ' ' || s[k] == '\t') {
				k++
			}
			if k >= len(s) {
				return 0, false
			}
			switch s[k] {
			case '"', '\'':
				quote := s[k]
				k++
				for k < len(s) && s[k] != quote {
					k++
				}
				if k >= len(s) {
					return 0, false
				}
				k++
			default:
				vs := k
				for k < len(s) && !isSpaceByte(s[k]) && s[k] != '"' && s[k] != '\'' && s[k] != '=' && s[k] != '<' && s[k] != '>' && s[k] != '`' {
					k++
				}
				if k == vs {
					return 0, false
				}
			}
			j = k
		}
		i = j
	}
}

func isASCIILetter(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isSpaceByte(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}
