package mdtree_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdtree/pkg/cst"
	"github.com/yaklabco/mdtree/pkg/mdtree"
)

func TestPublicOperations(t *testing.T) {
	t.Parallel()

	src := []byte("# Hello\n\n- [x] ship it\n")

	document := mdtree.Parse(src)
	assert.Equal(t, string(src), string(mdtree.Serialize(document)))
	assert.Contains(t, mdtree.RenderHTML(document), "<h1>Hello</h1>")

	edit := mdtree.Replace(2, 7, 3)
	newSrc := append([]byte("# Bye"), src[7:]...)
	updated := mdtree.ParseIncremental(document, src, newSrc, edit)
	assert.Equal(t, string(newSrc), string(mdtree.Serialize(updated)))
	assert.True(t, updated.CoversSource())
}

func TestSeedScenarioInsert(t *testing.T) {
	t.Parallel()

	oldSrc := []byte("# Hello")
	newSrc := []byte("# Hello World")

	document := mdtree.ParseIncremental(mdtree.Parse(oldSrc), oldSrc, newSrc, mdtree.Insert(7, 6))

	blocks := document.Blocks()
	require.Len(t, blocks, 1)
	assert.Equal(t, cst.KindHeading, blocks[0].Kind)
	assert.Equal(t, cst.Span{Start: 0, End: 13}, blocks[0].Span)
	assert.Equal(t, "<h1>Hello World</h1>\n", mdtree.RenderHTML(document))
}

func TestNormalizeFacade(t *testing.T) {
	t.Parallel()

	document := mdtree.Parse([]byte("Title\n=====\n\n\n\nbody\n"))
	assert.Equal(t, "# Title\n\nbody\n", string(mdtree.Normalize(document)))
}
