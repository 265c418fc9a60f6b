package incremental_test

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdtree/pkg/cst"
	"github.com/yaklabco/mdtree/pkg/incremental"
	"github.com/yaklabco/mdtree/pkg/parser"
	"github.com/yaklabco/mdtree/pkg/serialize"
)

func TestEditConstructors(t *testing.T) {
	t.Parallel()

	assert.Equal(t, incremental.EditInfo{Start: 7, OldEnd: 7, NewEnd: 13}, incremental.Insert(7, 6))
	assert.Equal(t, incremental.EditInfo{Start: 3, OldEnd: 8, NewEnd: 3}, incremental.Delete(3, 8))
	assert.Equal(t, incremental.EditInfo{Start: 2, OldEnd: 5, NewEnd: 6}, incremental.Replace(2, 5, 4))
	assert.Equal(t, 6, incremental.Insert(0, 6).Delta())
	assert.Equal(t, -5, incremental.Delete(3, 8).Delta())
}

func TestApply(t *testing.T) {
	t.Parallel()

	old := []byte("# Hello")
	edit := incremental.Insert(7, 6)
	got := incremental.Apply(old, edit, []byte(" World"))
	assert.Equal(t, "# Hello World", string(got))

	edit = incremental.Delete(1, 3)
	assert.Equal(t, "#ello", string(incremental.Apply(old, edit, nil)))
}

func TestInsertIntoHeading(t *testing.T) {
	t.Parallel()

	oldSrc := []byte("# Hello")
	newSrc := []byte("# Hello World")
	prev := parser.Parse(oldSrc)

	doc := incremental.Parse(prev, oldSrc, newSrc, incremental.Insert(7, 6))

	blocks := doc.Blocks()
	require.Len(t, blocks, 1)
	assert.Equal(t, cst.KindHeading, blocks[0].Kind)
	assert.Equal(t, cst.Span{Start: 0, End: 13}, blocks[0].Span)
	assert.True(t, doc.CoversSource())
}

// structurally compares two trees by kind, span, and child shape.
func structurally(t *testing.T, want, got *cst.Node, path string) {
	t.Helper()
	require.Equal(t, want.Kind, got.Kind, "kind mismatch at %s", path)
	require.Equal(t, want.Span, got.Span, "span mismatch at %s (%v)", path, want.Kind)
	wantKids, gotKids := want.Children(), got.Children()
	require.Len(t, gotKids, len(wantKids), "child count mismatch at %s (%v)", path, want.Kind)
	for i := range wantKids {
		structurally(t, wantKids[i], gotKids[i], fmt.Sprintf("%s/%d", path, i))
	}
}

func TestIncrementalAgreesWithFullParse(t *testing.T) {
	t.Parallel()

	base := "# Title\n\nfirst paragraph\nstill first\n\n- a\n- b\n\n> quote\n\nlast\n"

	tests := []struct {
		name     string
		edit     incremental.EditInfo
		inserted string
	}{
		{"replace char in paragraph", incremental.Replace(12, 13, 1), "X"},
		{"insert text mid paragraph", incremental.Insert(15, 5), "extra"},
		{"delete within a word", incremental.Delete(10, 14), ""},
		{"insert blank line inside paragraph", incremental.Insert(25, 1), "\n"},
		{"delete blank line between blocks", incremental.Delete(8, 9), ""},
		{"promote paragraph to heading", incremental.Insert(9, 2), "# "},
		{"edit list item", incremental.Replace(44, 45, 3), "abc"},
		{"append at end", incremental.Insert(len(base), 6), "\nmore\n"},
		{"insert at start", incremental.Insert(0, 4), "pre\n"},
		{"delete first block", incremental.Delete(0, 8), ""},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			oldSrc := []byte(base)
			require.Len(t, testCase.inserted, testCase.edit.NewEnd-testCase.edit.Start)
			newSrc := incremental.Apply(oldSrc, testCase.edit, []byte(testCase.inserted))

			prev := parser.Parse(oldSrc)
			got := incremental.Parse(prev, oldSrc, newSrc, testCase.edit)
			want := parser.Parse(newSrc)

			structurally(t, want.Root, got.Root, "root")
			assert.True(t, got.CoversSource())
			assert.Equal(t, string(newSrc), string(serialize.Serialize(got)))
		})
	}
}

func TestIncrementalReusesBlocksOutsideWindow(t *testing.T) {
	t.Parallel()

	// Fifty paragraphs separated by blank lines; edit one character in
	// paragraph 25 and require every other paragraph node to be reused
	// or span-equivalent.
	var buf bytes.Buffer
	for i := range 50 {
		fmt.Fprintf(&buf, "paragraph %02d text\n", i)
		if i != 49 {
			buf.WriteByte('\n')
		}
	}
	oldSrc := buf.Bytes()
	prev := parser.Parse(oldSrc)
	prevBlocks := prev.Blocks()

	// Locate paragraph 25 (blocks alternate paragraph/blank).
	target := prevBlocks[25*2]
	require.Equal(t, cst.KindParagraph, target.Kind)

	editPos := target.Span.Start + 3
	edit := incremental.Replace(editPos, editPos+1, 1)
	newSrc := incremental.Apply(oldSrc, edit, []byte("X"))

	doc := incremental.Parse(prev, oldSrc, newSrc, edit)
	blocks := doc.Blocks()
	require.Len(t, blocks, len(prevBlocks))

	for i, b := range blocks {
		if i == 25*2 {
			continue
		}
		assert.Equal(t, prevBlocks[i].Span, b.Span, "block %d span changed", i)
	}

	// Blocks before the window share their subtrees with the old tree;
	// only the top-level node is copied for its sibling link.
	assert.Same(t, prevBlocks[0].FirstChild, blocks[0].FirstChild)
	assert.Same(t, prevBlocks[25*2-2].FirstChild, blocks[25*2-2].FirstChild)

	// The old document's own sibling chain is untouched by the splice.
	assert.Len(t, prev.Blocks(), len(prevBlocks))
	assert.Same(t, prevBlocks[len(prevBlocks)-1], prev.Blocks()[len(prevBlocks)-1])
}

func TestIncrementalShiftsSuffixSpans(t *testing.T) {
	t.Parallel()

	oldSrc := []byte("aaa\n\nbbb\n\nccc\n")
	prev := parser.Parse(oldSrc)

	edit := incremental.Insert(6, 4) // inside "bbb"
	newSrc := incremental.Apply(oldSrc, edit, []byte("XXXX"))

	doc := incremental.Parse(prev, oldSrc, newSrc, edit)
	want := parser.Parse(newSrc)
	structurally(t, want.Root, doc.Root, "root")

	prevLast := prev.Blocks()[len(prev.Blocks())-1]
	last := doc.Blocks()[len(doc.Blocks())-1]
	assert.Equal(t, prevLast.Span.Shifted(4), last.Span)

	// The previous tree is untouched: same blocks, same spans, and it
	// still serializes to the old source.
	assert.Len(t, prev.Blocks(), 5)
	assert.Equal(t, cst.Span{Start: 10, End: 14}, prevLast.Span)
	assert.Equal(t, string(oldSrc), string(serialize.Serialize(prev)))
}

func TestIncrementalFallsBackOnBadEdit(t *testing.T) {
	t.Parallel()

	oldSrc := []byte("one\n\ntwo\n")
	newSrc := []byte("one\n\ntwo!\n")
	prev := parser.Parse(oldSrc)

	// Lengths do not reconcile with the claimed edit.
	doc := incremental.Parse(prev, oldSrc, newSrc, incremental.Insert(0, 0))
	want := parser.Parse(newSrc)
	structurally(t, want.Root, doc.Root, "root")
}

func TestIncrementalNilPrevious(t *testing.T) {
	t.Parallel()

	newSrc := []byte("# fresh\n")
	doc := incremental.Parse(nil, nil, newSrc, incremental.Insert(0, len(newSrc)))
	require.Len(t, doc.Blocks(), 1)
	assert.Equal(t, cst.KindHeading, doc.Blocks()[0].Kind)
}

func TestIncrementalUnclosedFenceFallsBack(t *testing.T) {
	t.Parallel()

	// Typing an opening fence above existing blocks must swallow them,
	// which only the fallback full parse can see.
	oldSrc := []byte("text\n\nmore\n")
	edit := incremental.Insert(0, 4)
	newSrc := incremental.Apply(oldSrc, edit, []byte("```\n"))

	prev := parser.Parse(oldSrc)
	doc := incremental.Parse(prev, oldSrc, newSrc, edit)
	want := parser.Parse(newSrc)
	structurally(t, want.Root, doc.Root, "root")

	require.Len(t, doc.Blocks(), 1)
	assert.Equal(t, cst.KindFencedCode, doc.Blocks()[0].Kind)
}
