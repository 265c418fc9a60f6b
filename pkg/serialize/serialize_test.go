package serialize_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/mdtree/pkg/parser"
	"github.com/yaklabco/mdtree/pkg/serialize"
)

// roundTripInputs covers every block construct plus the byte-level details
// the lossless contract protects: marker choices, fence lengths, ragged
// indentation, blank-line runs, CRLF endings, and missing trailing newlines.
var roundTripInputs = []string{
	"",
	"\n",
	"plain",
	"plain\n",
	"# Hello\n",
	"### spaced out   ###\n",
	"Title\n=====\n",
	"# Hello\n\n\n\nWorld",
	"para one\npara one continued\n\npara two\n",
	"- a\n- b\n",
	"* a\n* b\n\n",
	"1. one\n2. two\n",
	"7) seven\n",
	"- loose\n\n- items\n",
	"- [x] done\n- [ ] todo\n",
	"- top\n  - nested\n    - deeper\n",
	"> quote\n> more\n",
	"> lazy\ncontinuation\n",
	"```go\ncode\n```\n",
	"~~~~\nlong fence\n~~~~\n",
	"```\nunclosed",
	"    indented\n    code\n",
	"---\n",
	"___\n",
	"* * *\n",
	"| a | b |\n|---|---|\n| 1 | 2 |",
	"| x |\n|:-:|\n",
	"[ref]: /url \"title\"\n",
	"[^fn]: note text\n",
	"<div>\nraw html\n</div>\n",
	"<!-- comment -->\n",
	"text with *emph* and **strong** and `code`\n",
	"[link](/url) and ![img](/pic) and <https://a.bc>\n",
	"escaped \\* star\n",
	"hard break  \nline two\n",
	"crlf\r\nlines\r\n",
	"mixed\nand\r\nendings\r\n",
	"no trailing newline",
	"\n\n\nleading blanks\n\n\n",
	"   three space indent paragraph\n",
	"tabs\tin\ttext\n",
}

func TestRoundTripIdentity(t *testing.T) {
	t.Parallel()

	for _, input := range roundTripInputs {
		doc := parser.Parse([]byte(input))
		got := serialize.Serialize(doc)
		assert.Equal(t, input, string(got), "round trip broken for %q", input)
	}
}

func TestNormalizeCollapsesBlankRuns(t *testing.T) {
	t.Parallel()

	doc := parser.Parse([]byte("# Hello\n\n\n\nWorld"))

	assert.Equal(t, "# Hello\n\nWorld\n", string(serialize.Normalize(doc)))
}

func TestNormalizeSetextBecomesATX(t *testing.T) {
	t.Parallel()

	doc := parser.Parse([]byte("Title\n=====\n"))

	assert.Equal(t, "# Title\n", string(serialize.Normalize(doc)))
}

func TestNormalizeKeepsListMarker(t *testing.T) {
	t.Parallel()

	doc := parser.Parse([]byte("* one\n* two\n"))

	assert.Equal(t, "* one\n* two\n", string(serialize.Normalize(doc)))
}

func TestNormalizeLooseList(t *testing.T) {
	t.Parallel()

	doc := parser.Parse([]byte("- one\n\n\n- two\n"))

	assert.Equal(t, "- one\n\n- two\n", string(serialize.Normalize(doc)))
}

func TestNormalizePreservesEscapes(t *testing.T) {
	t.Parallel()

	doc := parser.Parse([]byte("not \\*emphasis\\*\n"))

	assert.Equal(t, "not \\*emphasis\\*\n", string(serialize.Normalize(doc)))
}

func TestNormalizeIsStable(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"# a\n\n\nb\n",
		"- x\n- y\n",
		"> q\n",
		"```\nc\n```\n",
	}

	for _, input := range inputs {
		once := serialize.Normalize(parser.Parse([]byte(input)))
		twice := serialize.Normalize(parser.Parse(once))
		assert.Equal(t, string(once), string(twice), "normalize not stable for %q", input)
	}
}
