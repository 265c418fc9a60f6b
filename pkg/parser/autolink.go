package parser

import "bytes"

// scanAutolink recognizes <scheme:...> URI autolinks and <addr@host> email
// autolinks starting at '<'. Extended autolinks (bare URLs, www. prefixes)
// are not supported.
func scanAutolink(buf []byte, i int) (string, bool, int, bool) {
	if i >= len(buf) || buf[i] != '<' {
		return "", false, 0, false
	}
	j := i + 1
	for j < len(buf) && buf[j] != '>' {
		c := buf[j]
		if c == '<' || c == ' ' || c == '\t' || c == '\n' || c < 0x20 {
			return "", false, 0, false
		}
		j++
	}
	if j >= len(buf) {
		return "", false, 0, false
	}
	inner := buf[i+1 : j]

	if isAbsoluteURI(inner) {
		return string(inner), false, j + 1, true
	}
	if isEmailAddress(inner) {
		return string(inner), true, j + 1, true
	}
	return "", false, 0, false
}

// isAbsoluteURI matches scheme ':' rest, where the scheme is 2-32 bytes of
// letters, digits, '+', '.', or '-' starting with a letter.
func isAbsoluteURI(s []byte) bool {
	colon := bytes.IndexByte(s, ':')
	if colon < 2 || colon > 32 {
		return false
	}
	if !isASCIILetter(s[0]) {
		return false
	}
	for _, c := range s[1:colon] {
		if !isASCIILetter(c) && !isDigit(c) && c != '+' && c != '.' && c != '-' {
			return false
		}
	}
	return true
}

func isEmailAddress(s []byte) bool {
	at := bytes.IndexByte(s, '@')
	if at <= 0 || at == len(s)-1 {
		return false
	}
	for _, c := range s[:at] {
		if !isASCIILetter(c) && !isDigit(c) && !bytes.ContainsRune([]byte(".!#$%&'*+/=?^_`{|}~-"), rune(c)) {
			return false
		}
	}
	for _, part := range bytes.Split(s[at+1:], []byte(".")) {
		if len(part) == 0 || len(part) > 63 {
			return false
		}
		for k, c := range part {
			if isASCIILetter(c) || isDigit(c) {
				continue
			}
			if c == '-' && k != 0 && k != len(part)-1 {
				continue
			}
			return false
		}
	}
	return true
}

// scanInlineHTML recognizes a raw HTML construct at '<': an open or close
// tag, a comment, a processing instruction, a declaration, or a CDATA
// section. Returns the exclusive end on success.
func scanInlineHTML(buf []byte, i int) (int, bool) {
	if i >= len(buf) || buf[i] != '<' {
		return 0, false
	}
	rest := buf[i:]

	if bytes.HasPrefix(rest, []byte("<!--")) {
		if end := bytes.Index(rest[4:], []byte("-->")); end >= 0 {
			return i + 4 + end + 3, true
		}
		return 0, false
	}
	if bytes.HasPrefix(rest, []byte("<?")) {
		if end := bytes.Index(rest[2:], []byte("?>")); end >= 0 {
			return i + 2 + end + 2, true
		}
		return 0, false
	}
	if bytes.HasPrefix(rest, []byte("<![CDATA[")) {
		if end := bytes.Index(rest[9:], []byte("]]>")); end >= 0 {
			return i + 9 + end + 3, true
		}
		return 0, false
	}
	if len(rest) >= 3 && rest[1] == '!' && isASCIILetter(rest[2]) {
		if end := bytes.IndexByte(rest, '>'); end >= 0 {
			return i + end + 1, true
		}
		return 0, false
	}

	closing := len(rest) >= 2 && rest[1] == '/'
	if end, ok := scanTag(rest, 0, closing); ok {
		return i + end, true
	}
	return 0, false
}
