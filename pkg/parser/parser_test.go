package parser_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdtree/pkg/cst"
	"github.com/yaklabco/mdtree/pkg/parser"
)

func TestParseEmptySource(t *testing.T) {
	t.Parallel()

	doc := parser.Parse(nil)

	assert.Equal(t, cst.Span{Start: 0, End: 0}, doc.Root.Span)
	assert.Empty(t, doc.Blocks())
	assert.True(t, doc.CoversSource())
}

func TestParseATXHeading(t *testing.T) {
	t.Parallel()

	doc := parser.Parse([]byte("# Hello\n"))

	blocks := doc.Blocks()
	require.Len(t, blocks, 1)

	h := blocks[0]
	assert.Equal(t, cst.KindHeading, h.Kind)
	assert.Equal(t, cst.Span{Start: 0, End: 8}, h.Span)
	assert.Equal(t, 1, h.Block.Heading.Level)
	assert.Equal(t, cst.HeadingATX, h.Block.Heading.Style)

	require.Equal(t, 1, h.ChildCount())
	text := h.FirstChild
	assert.Equal(t, cst.KindText, text.Kind)
	assert.Equal(t, "Hello", string(text.Text(doc.Source)))
	assert.Equal(t, cst.Span{Start: 2, End: 7}, text.Span)
}

func TestParseATXHeadingClosingSequence(t *testing.T) {
	t.Parallel()

	doc := parser.Parse([]byte("## Title ##\n"))

	h := doc.Blocks()[0]
	require.Equal(t, cst.KindHeading, h.Kind)
	assert.Equal(t, 2, h.Block.Heading.Level)
	assert.Equal(t, "Title", string(h.FirstChild.Text(doc.Source)))
}

func TestParseSetextHeading(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		level int
	}{
		{"equals underline", "Title\n=====\n", 1},
		{"dash underline", "Title\n-----\n", 2},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			doc := parser.Parse([]byte(testCase.input))
			blocks := doc.Blocks()
			require.Len(t, blocks, 1)

			h := blocks[0]
			assert.Equal(t, cst.KindHeading, h.Kind)
			assert.Equal(t, testCase.level, h.Block.Heading.Level)
			assert.Equal(t, cst.HeadingSetext, h.Block.Heading.Style)
			assert.Equal(t, len(testCase.input), h.Span.End)
		})
	}
}

func TestSetextTakesPrecedenceOverThematicBreak(t *testing.T) {
	t.Parallel()

	// "---" after a paragraph is an underline, not a thematic break.
	doc := parser.Parse([]byte("Title\n---\n"))

	blocks := doc.Blocks()
	require.Len(t, blocks, 1)
	assert.Equal(t, cst.KindHeading, blocks[0].Kind)
	assert.Equal(t, 2, blocks[0].Block.Heading.Level)
}

func TestParseThematicBreak(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input  string
		marker byte
	}{
		{"---\n", '-'},
		{"***\n", '*'},
		{"___\n", '_'},
		{"- - -\n", '-'},
	}

	for _, testCase := range tests {
		doc := parser.Parse([]byte(testCase.input))
		blocks := doc.Blocks()
		require.Len(t, blocks, 1, "input %q", testCase.input)
		assert.Equal(t, cst.KindThematicBreak, blocks[0].Kind, "input %q", testCase.input)
		assert.Equal(t, testCase.marker, blocks[0].Block.BreakMarker, "input %q", testCase.input)
	}
}

func TestParseParagraphJoinsLines(t *testing.T) {
	t.Parallel()

	doc := parser.Parse([]byte("first\nsecond\n"))

	blocks := doc.Blocks()
	require.Len(t, blocks, 1)
	p := blocks[0]
	assert.Equal(t, cst.KindParagraph, p.Kind)

	children := p.Children()
	require.Len(t, children, 3)
	assert.Equal(t, cst.KindText, children[0].Kind)
	assert.Equal(t, cst.KindSoftBreak, children[1].Kind)
	assert.Equal(t, cst.KindText, children[2].Kind)
	assert.Equal(t, "second", string(children[2].Text(doc.Source)))
}

func TestParseBlankLineRuns(t *testing.T) {
	t.Parallel()

	doc := parser.Parse([]byte("# Hello\n\n\n\nWorld"))

	blocks := doc.Blocks()
	require.Len(t, blocks, 3)
	assert.Equal(t, cst.KindHeading, blocks[0].Kind)
	assert.Equal(t, cst.KindBlankLines, blocks[1].Kind)
	assert.Equal(t, 3, blocks[1].Block.BlankCount)
	assert.Equal(t, cst.KindParagraph, blocks[2].Kind)
}

func TestParseFencedCode(t *testing.T) {
	t.Parallel()

	doc := parser.Parse([]byte("```go\nfmt.Println()\n```\n"))

	blocks := doc.Blocks()
	require.Len(t, blocks, 1)

	code := blocks[0]
	require.Equal(t, cst.KindFencedCode, code.Kind)
	attrs := code.Block.Code
	assert.Equal(t, byte('`'), attrs.FenceChar)
	assert.Equal(t, 3, attrs.FenceLength)
	assert.Equal(t, "go", attrs.Info)
	assert.Equal(t, "fmt.Println()\n", string(attrs.Literal))
	assert.True(t, attrs.Closed)
	assert.Equal(t, cst.Span{Start: 0, End: 24}, code.Span)
}

func TestParseUnclosedFence(t *testing.T) {
	t.Parallel()

	doc := parser.Parse([]byte("~~~\ncode"))

	blocks := doc.Blocks()
	require.Len(t, blocks, 1)
	attrs := blocks[0].Block.Code
	assert.False(t, attrs.Closed)
	assert.Equal(t, "code\n", string(attrs.Literal))
	assert.Equal(t, len("~~~\ncode"), blocks[0].Span.End)
}

func TestParseIndentedCode(t *testing.T) {
	t.Parallel()

	doc := parser.Parse([]byte("    x := 1\n    y := 2\n"))

	blocks := doc.Blocks()
	require.Len(t, blocks, 1)
	assert.Equal(t, cst.KindIndentedCode, blocks[0].Kind)
	assert.Equal(t, "x := 1\ny := 2\n", string(blocks[0].Block.Code.Literal))
}

func TestIndentedLineContinuesParagraph(t *testing.T) {
	t.Parallel()

	// Indented code cannot interrupt a paragraph.
	doc := parser.Parse([]byte("text\n    more\n"))

	blocks := doc.Blocks()
	require.Len(t, blocks, 1)
	assert.Equal(t, cst.KindParagraph, blocks[0].Kind)
}

func TestParseBlockQuote(t *testing.T) {
	t.Parallel()

	doc := parser.Parse([]byte("> quoted\n> text\n"))

	blocks := doc.Blocks()
	require.Len(t, blocks, 1)

	quote := blocks[0]
	assert.Equal(t, cst.KindBlockQuote, quote.Kind)
	require.Equal(t, 1, quote.ChildCount())
	assert.Equal(t, cst.KindParagraph, quote.FirstChild.Kind)
}

func TestBlockQuoteLazyContinuation(t *testing.T) {
	t.Parallel()

	doc := parser.Parse([]byte("> quoted\nlazy\n"))

	blocks := doc.Blocks()
	require.Len(t, blocks, 1)
	quote := blocks[0]
	assert.Equal(t, cst.KindBlockQuote, quote.Kind)
	require.Equal(t, 1, quote.ChildCount())

	para := quote.FirstChild
	children := para.Children()
	require.Len(t, children, 3)
	assert.Equal(t, "lazy", string(children[2].Text(doc.Source)))
}

func TestNestedBlockQuote(t *testing.T) {
	t.Parallel()

	doc := parser.Parse([]byte("> > deep\n"))

	blocks := doc.Blocks()
	require.Len(t, blocks, 1)
	outer := blocks[0]
	require.Equal(t, cst.KindBlockQuote, outer.Kind)
	inner := outer.FirstChild
	require.Equal(t, cst.KindBlockQuote, inner.Kind)
	assert.Equal(t, cst.KindParagraph, inner.FirstChild.Kind)
}

func TestParseTightList(t *testing.T) {
	t.Parallel()

	doc := parser.Parse([]byte("- one\n- two\n"))

	blocks := doc.Blocks()
	require.Len(t, blocks, 1)

	list := blocks[0]
	require.Equal(t, cst.KindList, list.Kind)
	attrs := list.Block.List
	assert.False(t, attrs.Ordered)
	assert.Equal(t, byte('-'), attrs.Marker)
	assert.True(t, attrs.Tight)
	assert.Equal(t, 2, list.ChildCount())

	for _, item := range list.Children() {
		assert.Equal(t, cst.KindListItem, item.Kind)
		assert.Equal(t, cst.KindParagraph, item.FirstChild.Kind)
	}
}

func TestParseLooseList(t *testing.T) {
	t.Parallel()

	doc := parser.Parse([]byte("- one\n\n- two\n"))

	blocks := doc.Blocks()
	require.Len(t, blocks, 1)
	assert.False(t, blocks[0].Block.List.Tight)
	assert.Equal(t, 2, blocks[0].ChildCount())
}

func TestBlankInsideItemKeepsListTight(t *testing.T) {
	t.Parallel()

	// The blank line sits inside the first item's content, not between
	// two items, so the list stays tight.
	doc := parser.Parse([]byte("- one\n\n  still one\n- two\n"))

	blocks := doc.Blocks()
	require.Len(t, blocks, 1)
	list := blocks[0]
	assert.True(t, list.Block.List.Tight)
	assert.Equal(t, 2, list.ChildCount())

	first := list.FirstChild
	var kinds []cst.NodeKind
	for _, child := range first.Children() {
		kinds = append(kinds, child.Kind)
	}
	assert.Equal(t, []cst.NodeKind{cst.KindParagraph, cst.KindBlankLines, cst.KindParagraph}, kinds)
}

func TestParseOrderedList(t *testing.T) {
	t.Parallel()

	doc := parser.Parse([]byte("3. three\n4. four\n"))

	list := doc.Blocks()[0]
	require.Equal(t, cst.KindList, list.Kind)
	attrs := list.Block.List
	assert.True(t, attrs.Ordered)
	assert.Equal(t, 3, attrs.Start)
	assert.Equal(t, byte('.'), attrs.Marker)
	assert.Equal(t, 2, list.ChildCount())
}

func TestDifferentBulletEndsList(t *testing.T) {
	t.Parallel()

	doc := parser.Parse([]byte("- a\n+ b\n"))

	blocks := doc.Blocks()
	require.Len(t, blocks, 2)
	assert.Equal(t, byte('-'), blocks[0].Block.List.Marker)
	assert.Equal(t, byte('+'), blocks[1].Block.List.Marker)
}

func TestNestedList(t *testing.T) {
	t.Parallel()

	doc := parser.Parse([]byte("- top\n  - nested\n"))

	list := doc.Blocks()[0]
	require.Equal(t, 1, list.ChildCount())

	item := list.FirstChild
	children := item.Children()
	require.Len(t, children, 2)
	assert.Equal(t, cst.KindParagraph, children[0].Kind)
	assert.Equal(t, cst.KindList, children[1].Kind)
}

func TestTaskListMarkers(t *testing.T) {
	t.Parallel()

	doc := parser.Parse([]byte("- [ ] todo\n- [x] done\n- plain\n"))

	list := doc.Blocks()[0]
	items := list.Children()
	require.Len(t, items, 3)

	assert.Equal(t, cst.TaskUnchecked, items[0].Block.Item.Task)
	assert.Equal(t, cst.TaskChecked, items[1].Block.Item.Task)
	assert.Equal(t, cst.TaskNone, items[2].Block.Item.Task)

	// The marker is lifted off the paragraph content.
	para := items[1].FirstChild
	require.Equal(t, cst.KindParagraph, para.Kind)
	assert.Equal(t, "done", string(para.FirstChild.Text(doc.Source)))
}

func TestParseLinkRefDef(t *testing.T) {
	t.Parallel()

	doc := parser.Parse([]byte("[foo]: /url \"a title\"\n"))

	blocks := doc.Blocks()
	require.Len(t, blocks, 1)
	require.Equal(t, cst.KindLinkRefDef, blocks[0].Kind)

	ref := blocks[0].Block.LinkRef
	assert.Equal(t, "foo", ref.Label)
	assert.Equal(t, "/url", ref.Destination)
	assert.Equal(t, "a title", ref.Title)
}

func TestLinkRefDefRequiresCleanLine(t *testing.T) {
	t.Parallel()

	// Trailing garbage after the title keeps the line a paragraph.
	doc := parser.Parse([]byte("[foo]: /url \"title\" extra\n"))

	blocks := doc.Blocks()
	require.Len(t, blocks, 1)
	assert.Equal(t, cst.KindParagraph, blocks[0].Kind)
}

func TestParseTable(t *testing.T) {
	t.Parallel()

	doc := parser.Parse([]byte("| a | b |\n|---|---|\n| 1 | 2 |"))

	blocks := doc.Blocks()
	require.Len(t, blocks, 1)

	table := blocks[0]
	require.Equal(t, cst.KindTable, table.Kind)
	assert.Equal(t, []cst.Alignment{cst.AlignNone, cst.AlignNone}, table.Block.Table.Alignments)

	rows := table.Children()
	require.Len(t, rows, 2)
	header := rows[0]
	assert.True(t, header.FirstChild.Block.Cell.Header)
	assert.Equal(t, 2, header.ChildCount())

	body := rows[1]
	assert.False(t, body.FirstChild.Block.Cell.Header)
	assert.Equal(t, "1", string(body.FirstChild.FirstChild.Text(doc.Source)))
}

func TestTableAlignments(t *testing.T) {
	t.Parallel()

	doc := parser.Parse([]byte("| a | b | c | d |\n|:--|:-:|--:|---|\n"))

	table := doc.Blocks()[0]
	require.Equal(t, cst.KindTable, table.Kind)
	assert.Equal(t, []cst.Alignment{
		cst.AlignLeft, cst.AlignCenter, cst.AlignRight, cst.AlignNone,
	}, table.Block.Table.Alignments)
}

func TestTableWithoutDelimiterRowIsParagraph(t *testing.T) {
	t.Parallel()

	doc := parser.Parse([]byte("| a | b |\nnot a delimiter\n"))

	blocks := doc.Blocks()
	require.Len(t, blocks, 1)
	assert.Equal(t, cst.KindParagraph, blocks[0].Kind)
}

func TestTableColumnCountMismatchIsParagraph(t *testing.T) {
	t.Parallel()

	doc := parser.Parse([]byte("| a | b |\n|---|\n"))

	blocks := doc.Blocks()
	require.Len(t, blocks, 1)
	assert.Equal(t, cst.KindParagraph, blocks[0].Kind)
}

func TestParseHTMLBlock(t *testing.T) {
	t.Parallel()

	doc := parser.Parse([]byte("<div>\ncontent\n</div>\n\nafter\n"))

	blocks := doc.Blocks()
	require.Len(t, blocks, 3)
	assert.Equal(t, cst.KindHTMLBlock, blocks[0].Kind)
	assert.Equal(t, "<div>\ncontent\n</div>\n", string(doc.Source[blocks[0].Span.Start:blocks[0].Span.End]))
	assert.Equal(t, cst.KindBlankLines, blocks[1].Kind)
	assert.Equal(t, cst.KindParagraph, blocks[2].Kind)
}

func TestParseHTMLComment(t *testing.T) {
	t.Parallel()

	doc := parser.Parse([]byte("<!-- note -->\npara\n"))

	blocks := doc.Blocks()
	require.Len(t, blocks, 2)
	assert.Equal(t, cst.KindHTMLBlock, blocks[0].Kind)
	assert.Equal(t, cst.KindParagraph, blocks[1].Kind)
}

func TestParseFootnoteDefinition(t *testing.T) {
	t.Parallel()

	doc := parser.Parse([]byte("[^note]: the footnote text\n"))

	blocks := doc.Blocks()
	require.Len(t, blocks, 1)
	require.Equal(t, cst.KindFootnoteDef, blocks[0].Kind)
	assert.Equal(t, "note", blocks[0].Block.FootnoteLabel)
	assert.Equal(t, cst.KindParagraph, blocks[0].FirstChild.Kind)
}

func TestCoverageInvariant(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"",
		"plain paragraph",
		"# h\n\npara\n",
		"- a\n- b\n\ntext",
		"> quote\n\n    code\n",
		"```\nfence\n```\n",
		"| a |\n|---|\n| b |\n",
		"a\r\nb\r\n\r\nc",
		"\n\n\n",
		"text\n=====\n\n---\n\n1. x\n2. y\n",
		"[ref]: /url\n\n[use][ref]\n",
		"<div>\nhtml\n</div>\n",
		"trailing spaces  \nnext\n",
		"- [x] task\n  continued\n",
	}

	for _, input := range inputs {
		doc := parser.Parse([]byte(input))
		assert.True(t, doc.CoversSource(), "coverage broken for %q", input)
		assert.True(t, cst.CheckSpans(doc.Root), "span invariants broken for %q", input)
	}
}
