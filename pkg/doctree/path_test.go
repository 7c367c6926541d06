package doctree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func nestedForest() []*Document {
	leaf := &Document{Title: "leaf", Position: 1, Content: []ContentBlock{NewTextBlock("")}}
	child := &Document{Title: "child", Position: 1, Content: []ContentBlock{NewTextBlock("")}, Children: []*Document{leaf}}
	return []*Document{
		{Title: "first", Position: 1, Content: []ContentBlock{NewTextBlock("")}, Children: []*Document{child}},
		{Title: "second", Position: 2, Content: []ContentBlock{NewTextBlock("")}},
	}
}

func TestResolveNode(t *testing.T) {
	forest := nestedForest()

	tests := []struct {
		name  string
		path  Path
		title string
	}{
		{"top level", Path{0}, "first"},
		{"second top level", Path{1}, "second"},
		{"child", Path{0, 0}, "child"},
		{"grandchild", Path{0, 0, 0}, "leaf"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := ResolveNode(forest, tt.path)
			require.NoError(t, err)
			assert.Equal(t, tt.title, doc.Title)
		})
	}
}

func TestResolveNode_NotFound(t *testing.T) {
	forest := nestedForest()

	paths := []Path{
		{2},
		{-1},
		{1, 0},
		{0, 1},
		{0, 0, 0, 0},
		{99, 99, 99},
	}
	for _, path := range paths {
		doc, err := ResolveNode(forest, path)
		assert.ErrorIs(t, err, ErrPathNotFound, "path %v", path)
		assert.Nil(t, doc)
	}

	_, err := ResolveNode(nil, Path{0})
	assert.ErrorIs(t, err, ErrPathNotFound)
}

func TestResolveNode_EmptyPath(t *testing.T) {
	_, err := ResolveNode(nestedForest(), nil)
	assert.ErrorIs(t, err, ErrEmptyPath)

	_, err = ResolveNode(nestedForest(), Path{})
	assert.ErrorIs(t, err, ErrEmptyPath)
}

func TestResolveParentSiblings(t *testing.T) {
	forest := nestedForest()

	top, err := ResolveParentSiblings(&forest, Path{1})
	require.NoError(t, err)
	assert.Len(t, *top, 2)
	assert.Same(t, forest[0], (*top)[0])

	nested, err := ResolveParentSiblings(&forest, Path{0, 0, 0})
	require.NoError(t, err)
	require.Len(t, *nested, 1)
	assert.Equal(t, "leaf", (*nested)[0].Title)

	_, err = ResolveParentSiblings(&forest, Path{5, 0})
	assert.ErrorIs(t, err, ErrPathNotFound)

	_, err = ResolveParentSiblings(&forest, nil)
	assert.ErrorIs(t, err, ErrEmptyPath)
}

func TestPathHelpers(t *testing.T) {
	p := Path{0, 2}

	assert.Equal(t, Path{0, 2, 1}, p.Child(1))
	assert.Equal(t, Path{0, 2}, p, "Child must not alias the receiver")
	assert.Equal(t, Path{0}, p.Parent())
	assert.Equal(t, 2, p.Last())
	assert.Equal(t, -1, Path{}.Last())
	assert.True(t, Path{0, 2, 5}.HasPrefix(p))
	assert.False(t, Path{0}.HasPrefix(p))
	assert.True(t, p.Equal(Path{0, 2}))
	assert.False(t, p.Equal(Path{0, 2, 0}))
	assert.Equal(t, "0.2", p.String())
}

func TestParsePath(t *testing.T) {
	p, err := ParsePath("0.3.1")
	require.NoError(t, err)
	assert.Equal(t, Path{0, 3, 1}, p)

	_, err = ParsePath("")
	assert.ErrorIs(t, err, ErrEmptyPath)

	_, err = ParsePath("0.x")
	assert.ErrorIs(t, err, ErrPathNotFound)

	_, err = ParsePath("-1")
	assert.ErrorIs(t, err, ErrPathNotFound)
}

func TestReindex(t *testing.T) {
	docs := []*Document{{Position: 7}, {Position: 3}, {Position: 3}}
	Reindex(docs)
	for i, d := range docs {
		assert.Equal(t, i+1, d.Position)
	}

	sections := []*Section{{Position: 0}, {Position: 9}}
	Reindex(sections)
	assert.Equal(t, 1, sections[0].Position)
	assert.Equal(t, 2, sections[1].Position)
}
