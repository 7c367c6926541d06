package doctree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	p := &Project{Sections: []*Section{
		{Position: 4},
		{Position: 4, Docs: []*Document{
			{Position: 0, Children: []*Document{{Position: 9}, {Position: 9}}},
			{Position: 0, Content: []ContentBlock{NewTextBlock("keep")}},
		}},
	}}

	require.NoError(t, Normalize(p))

	assert.Equal(t, 1, p.Sections[0].Position)
	assert.Equal(t, 2, p.Sections[1].Position)
	assert.NotNil(t, p.Sections[0].Docs)

	docs := p.Sections[1].Docs
	assert.Equal(t, 1, docs[0].Position)
	assert.Equal(t, 2, docs[1].Position)
	assert.Equal(t, 2, docs[0].Children[1].Position)
	assert.Equal(t, []ContentBlock{NewTextBlock("")}, docs[0].Content)
	assert.Equal(t, "keep", docs[1].Content[0].Value)
	assert.NotNil(t, docs[1].Children)
}

func TestNormalize_Rejects(t *testing.T) {
	tests := []struct {
		name string
		p    *Project
		want error
	}{
		{"no project", nil, ErrMalformedTree},
		{"null section", &Project{Sections: []*Section{{Position: 1}, nil}}, ErrMalformedTree},
		{"null document", &Project{Sections: []*Section{{Docs: []*Document{nil}}}}, ErrMalformedTree},
		{"null child", &Project{Sections: []*Section{{Docs: []*Document{
			{Children: []*Document{{}, nil}},
		}}}}, ErrMalformedTree},
		{"unknown block kind", &Project{Sections: []*Section{{Docs: []*Document{
			{Content: []ContentBlock{{Kind: "drawing"}}},
		}}}}, ErrBlockKind},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := tt.p.Clone()
			assert.ErrorIs(t, Normalize(tt.p), tt.want)
			assert.Equal(t, before, tt.p.Clone(), "rejected tree must be left as is")
		})
	}
}

func TestNormalize_ErrorNamesLocation(t *testing.T) {
	p := &Project{Sections: []*Section{{}, {Docs: []*Document{
		{}, {Children: []*Document{nil}},
	}}}}

	err := Normalize(p)
	require.ErrorIs(t, err, ErrMalformedTree)
	assert.Contains(t, err.Error(), "section 1 document 1.0")
}
