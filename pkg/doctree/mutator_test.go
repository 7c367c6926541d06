package doctree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMutator() *Mutator {
	return NewMutator(NewSequenceGenerator("id"))
}

func singleDocProject(text string) *Project {
	return &Project{
		ProjectID: "p",
		Sections: []*Section{{
			SectionID: StringPtr("s"),
			Title:     "Section",
			Slug:      "section",
			Position:  1,
			Docs: []*Document{{
				DocumentationID: StringPtr("d"),
				Title:           "Doc",
				Position:        1,
				Content:         []ContentBlock{NewTextBlock(text)},
				Children:        []*Document{},
			}},
		}},
	}
}

func textValues(t *testing.T, p *Project, path Path) []string {
	t.Helper()
	doc, err := p.Document(0, path)
	require.NoError(t, err)
	var out []string
	for _, b := range doc.Content {
		out = append(out, b.Value)
	}
	return out
}

func assertPositions(t *testing.T, docs []*Document) {
	t.Helper()
	for i, d := range docs {
		assert.Equal(t, i+1, d.Position, "doc %q", d.Title)
	}
}

func TestAddSection(t *testing.T) {
	m := newTestMutator()
	p0 := &Project{ProjectID: "p"}

	p1 := m.AddSection(p0)
	p2 := m.AddSection(p1)

	assert.Empty(t, p0.Sections, "input must not be modified")
	require.Len(t, p2.Sections, 2)
	assert.Equal(t, "id-1", *p2.Sections[0].SectionID)
	assert.Equal(t, "id-2", *p2.Sections[1].SectionID)
	assert.Equal(t, NewSectionTitle, p2.Sections[1].Title)
	assert.Equal(t, NewSectionSlug, p2.Sections[1].Slug)
	assert.Equal(t, 1, p2.Sections[0].Position)
	assert.Equal(t, 2, p2.Sections[1].Position)
	assert.NotNil(t, p2.Sections[1].Docs)
}

func TestRenameSection(t *testing.T) {
	m := newTestMutator()
	p := singleDocProject("A")

	next, err := m.RenameSection(p, 0, "Guides")
	require.NoError(t, err)
	assert.Equal(t, "Guides", next.Sections[0].Title)
	assert.Equal(t, "Section", p.Sections[0].Title)

	same, err := m.RenameSection(p, 3, "x")
	assert.ErrorIs(t, err, ErrSectionNotFound)
	assert.Same(t, p, same)
}

func TestRemoveSection_Reindexes(t *testing.T) {
	m := newTestMutator()
	p := m.AddSection(m.AddSection(m.AddSection(&Project{})))

	next, err := m.RemoveSection(p, 0)
	require.NoError(t, err)
	require.Len(t, next.Sections, 2)
	assert.Equal(t, "id-2", *next.Sections[0].SectionID)
	assert.Equal(t, 1, next.Sections[0].Position)
	assert.Equal(t, 2, next.Sections[1].Position)
	assert.Len(t, p.Sections, 3)

	_, err = m.RemoveSection(next, -1)
	assert.ErrorIs(t, err, ErrSectionNotFound)
}

func TestAddDocument_TopLevel(t *testing.T) {
	m := newTestMutator()
	p := m.AddSection(&Project{})

	p, path, err := m.AddDocument(p, 0, nil)
	require.NoError(t, err)
	assert.Equal(t, Path{0}, path)

	doc := p.Sections[0].Docs[0]
	assert.Equal(t, 1, doc.Position)
	assert.Equal(t, NewDocumentTitle, doc.Title)
	assert.Nil(t, doc.Slug)
	assert.Equal(t, []ContentBlock{NewTextBlock("")}, doc.Content)
	assert.NotNil(t, doc.Children)

	p, path, err = m.AddDocument(p, 0, nil)
	require.NoError(t, err)
	assert.Equal(t, Path{1}, path)
	assert.Equal(t, 2, p.Sections[0].Docs[1].Position)

	p, err = m.RemoveDocument(p, 0, Path{0})
	require.NoError(t, err)
	require.Len(t, p.Sections[0].Docs, 1)
	assert.Equal(t, 1, p.Sections[0].Docs[0].Position)
}

func TestAddDocument_Child(t *testing.T) {
	m := newTestMutator()
	p := singleDocProject("A")
	p.Sections[0].Docs[0].Children = nil

	next, path, err := m.AddDocument(p, 0, Path{0})
	require.NoError(t, err)
	assert.Equal(t, Path{0, 0}, path)

	child, err := next.Document(0, path)
	require.NoError(t, err)
	assert.Equal(t, 1, child.Position)
	assert.Nil(t, p.Sections[0].Docs[0].Children, "input must not be modified")

	next, path, err = m.AddDocument(next, 0, Path{0})
	require.NoError(t, err)
	assert.Equal(t, Path{0, 1}, path)
	assertPositions(t, next.Sections[0].Docs[0].Children)
}

func TestAddDocument_InvalidTarget(t *testing.T) {
	m := newTestMutator()
	p := singleDocProject("A")

	same, path, err := m.AddDocument(p, 0, Path{4})
	assert.ErrorIs(t, err, ErrPathNotFound)
	assert.Nil(t, path)
	assert.Same(t, p, same)

	_, _, err = m.AddDocument(p, 2, nil)
	assert.ErrorIs(t, err, ErrSectionNotFound)
}

func TestRenameDocument(t *testing.T) {
	m := newTestMutator()
	p := singleDocProject("A")

	next, err := m.RenameDocument(p, 0, Path{0}, "Renamed")
	require.NoError(t, err)
	assert.Equal(t, "Renamed", next.Sections[0].Docs[0].Title)
	assert.Equal(t, "Doc", p.Sections[0].Docs[0].Title)

	same, err := m.RenameDocument(p, 0, Path{0, 3}, "x")
	assert.ErrorIs(t, err, ErrPathNotFound)
	assert.Same(t, p, same)
	assert.Equal(t, singleDocProject("A"), p)
}

func TestRemoveDocument_SubtreeAndScopedReindex(t *testing.T) {
	m := newTestMutator()
	p := m.AddSection(&Project{})
	p, _, _ = m.AddDocument(p, 0, nil)        // [0]
	p, _, _ = m.AddDocument(p, 0, nil)        // [1]
	p, _, _ = m.AddDocument(p, 0, Path{1})    // [1,0]
	p, _, _ = m.AddDocument(p, 0, Path{1})    // [1,1]
	p, _, _ = m.AddDocument(p, 0, Path{1})    // [1,2]
	p, _, _ = m.AddDocument(p, 0, Path{1, 0}) // [1,0,0]

	next, err := m.RemoveDocument(p, 0, Path{1, 0})
	require.NoError(t, err)

	children := next.Sections[0].Docs[1].Children
	require.Len(t, children, 2)
	assertPositions(t, children)
	assertPositions(t, next.Sections[0].Docs)

	next, err = m.RemoveDocument(next, 0, Path{1})
	require.NoError(t, err)
	require.Len(t, next.Sections[0].Docs, 1)
	assertPositions(t, next.Sections[0].Docs)

	_, err = m.RemoveDocument(next, 0, Path{1, 0})
	assert.ErrorIs(t, err, ErrPathNotFound)
	_, err = m.RemoveDocument(next, 0, Path{3})
	assert.ErrorIs(t, err, ErrPathNotFound)
	_, err = m.RemoveDocument(next, 0, nil)
	assert.ErrorIs(t, err, ErrEmptyPath)
}

func TestContentBlocks_Scenario(t *testing.T) {
	m := newTestMutator()
	p := singleDocProject("A")

	p, err := m.AddTextBlock(p, 0, Path{0})
	require.NoError(t, err)
	assert.Equal(t, []string{"A", ""}, textValues(t, p, Path{0}))

	p, err = m.RemoveBlock(p, 0, Path{0}, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{""}, textValues(t, p, Path{0}))

	same, err := m.RemoveBlock(p, 0, Path{0}, 0)
	require.NoError(t, err)
	assert.Same(t, p, same)
	assert.Equal(t, []string{""}, textValues(t, p, Path{0}))
}

func TestRemoveBlock_NeverEmpties(t *testing.T) {
	m := newTestMutator()
	p := singleDocProject("A")
	for i := 0; i < 3; i++ {
		p, _ = m.AddCodeGroupBlock(p, 0, Path{0})
	}

	for i := 0; i < 10; i++ {
		p, _ = m.RemoveBlock(p, 0, Path{0}, 0)
		doc, err := p.Document(0, Path{0})
		require.NoError(t, err)
		assert.GreaterOrEqual(t, len(doc.Content), 1)
	}

	_, err := m.RemoveBlock(singleDocProject("A"), 0, Path{2}, 0)
	assert.ErrorIs(t, err, ErrPathNotFound)
}

func TestRemoveBlock_OutOfRange(t *testing.T) {
	m := newTestMutator()
	p, _ := m.AddTextBlock(singleDocProject("A"), 0, Path{0})

	same, err := m.RemoveBlock(p, 0, Path{0}, 2)
	assert.ErrorIs(t, err, ErrBlockNotFound)
	assert.Same(t, p, same)
}

func TestAddCodeGroupBlock(t *testing.T) {
	m := newTestMutator()
	p, err := m.AddCodeGroupBlock(singleDocProject("A"), 0, Path{0})
	require.NoError(t, err)

	block := p.Sections[0].Docs[0].Content[1]
	assert.Equal(t, KindCodeGroup, block.Kind)
	require.Len(t, block.Entries, 2)
	assert.NotEqual(t, block.Entries[0].Language, block.Entries[1].Language)
	assert.Empty(t, block.Entries[0].Code)
}

func TestUpdateTextBlock(t *testing.T) {
	m := newTestMutator()
	p, _ := m.AddCodeGroupBlock(singleDocProject("A"), 0, Path{0})

	next, err := m.UpdateTextBlock(p, 0, Path{0}, 0, "# Title")
	require.NoError(t, err)
	assert.Equal(t, "# Title", next.Sections[0].Docs[0].Content[0].Value)
	assert.Equal(t, "A", p.Sections[0].Docs[0].Content[0].Value)

	same, err := m.UpdateTextBlock(p, 0, Path{0}, 1, "x")
	assert.ErrorIs(t, err, ErrBlockKind)
	assert.Same(t, p, same)

	_, err = m.UpdateTextBlock(p, 0, Path{0}, 5, "x")
	assert.ErrorIs(t, err, ErrBlockNotFound)
}

func TestUpdateCodeGroupBlock(t *testing.T) {
	m := newTestMutator()
	p, _ := m.AddCodeGroupBlock(singleDocProject("A"), 0, Path{0})

	entries := []CodeEntry{{Language: "go", Code: "fmt.Println()"}}
	next, err := m.UpdateCodeGroupBlock(p, 0, Path{0}, 1, entries)
	require.NoError(t, err)
	assert.Equal(t, entries, next.Sections[0].Docs[0].Content[1].Entries)

	entries[0].Code = "changed"
	assert.Equal(t, "fmt.Println()", next.Sections[0].Docs[0].Content[1].Entries[0].Code)

	_, err = m.UpdateCodeGroupBlock(p, 0, Path{0}, 0, entries)
	assert.ErrorIs(t, err, ErrBlockKind)
}

func TestSequenceGenerator(t *testing.T) {
	g := NewSequenceGenerator("doc")
	assert.Equal(t, "doc-1", g.NewID())
	assert.Equal(t, "doc-2", g.NewID())
}

func TestNewIDGenerator(t *testing.T) {
	g, err := NewIDGenerator("ulid")
	require.NoError(t, err)
	assert.Len(t, g.NewID(), 26)

	g, err = NewIDGenerator("")
	require.NoError(t, err)
	assert.Len(t, g.NewID(), 36)

	_, err = NewIDGenerator("snowflake")
	assert.Error(t, err)
}
