package doctree

import "fmt"

// Placeholder values given to newly created nodes and blocks.
const (
	NewSectionTitle  = "New Section"
	NewSectionSlug   = "new-section"
	NewDocumentTitle = "New Doc"
)

// DefaultCodeGroup returns the entries a new code group starts with
func DefaultCodeGroup() []CodeEntry {
	return []CodeEntry{
		{Language: "js", Code: ""},
		{Language: "python", Code: ""},
	}
}

// Mutator applies structural and content operations to a project. Every
// operation works on a deep copy and returns it; the input project is never
// modified. Failed operations return the input project unchanged together
// with an error. Operations that succeed without changing anything return
// the input project itself, so callers can detect a no-op by identity.
type Mutator struct {
	ids IDGenerator
}

// NewMutator returns a mutator issuing ids from ids (UUIDs when nil).
func NewMutator(ids IDGenerator) *Mutator {
	if ids == nil {
		ids = UUIDGenerator{}
	}
	return &Mutator{ids: ids}
}

// AddSection appends a placeholder section at the end of the project.
func (m *Mutator) AddSection(p *Project) *Project {
	next := p.Clone()
	if next == nil {
		next = &Project{}
	}
	next.Sections = append(next.Sections, &Section{
		SectionID: StringPtr(m.ids.NewID()),
		Title:     NewSectionTitle,
		Slug:      NewSectionSlug,
		Position:  len(next.Sections) + 1,
		Docs:      []*Document{},
	})
	return next
}

// RenameSection sets the title of section s.
func (m *Mutator) RenameSection(p *Project, s int, title string) (*Project, error) {
	next := p.Clone()
	section, err := next.Section(s)
	if err != nil {
		return p, err
	}
	section.Title = title
	return next, nil
}

// RemoveSection drops section s and renumbers the remaining sections.
func (m *Mutator) RemoveSection(p *Project, s int) (*Project, error) {
	next := p.Clone()
	if _, err := next.Section(s); err != nil {
		return p, err
	}
	next.Sections = append(next.Sections[:s], next.Sections[s+1:]...)
	Reindex(next.Sections)
	return next, nil
}

// AddDocument appends a placeholder document to section s, either at the
// top level (empty parent) or as the last child of the document at parent.
// It returns the path of the new document.
func (m *Mutator) AddDocument(p *Project, s int, parent Path) (*Project, Path, error) {
	next := p.Clone()
	section, err := next.Section(s)
	if err != nil {
		return p, nil, err
	}

	siblings := &section.Docs
	if len(parent) > 0 {
		node, err := ResolveNode(section.Docs, parent)
		if err != nil {
			return p, nil, fmt.Errorf("add document: %w", err)
		}
		if node.Children == nil {
			node.Children = []*Document{}
		}
		siblings = &node.Children
	}

	*siblings = append(*siblings, &Document{
		DocumentationID: StringPtr(m.ids.NewID()),
		Title:           NewDocumentTitle,
		Position:        len(*siblings) + 1,
		Content:         []ContentBlock{NewTextBlock("")},
		Children:        []*Document{},
	})
	Reindex(*siblings)

	return next, parent.Child(len(*siblings) - 1), nil
}

// RenameDocument sets the title of the document at path.
func (m *Mutator) RenameDocument(p *Project, s int, path Path, title string) (*Project, error) {
	next := p.Clone()
	doc, err := next.Document(s, path)
	if err != nil {
		return p, err
	}
	doc.Title = title
	return next, nil
}

// RemoveDocument removes the document at path together with its subtree and
// renumbers the siblings at that level only.
func (m *Mutator) RemoveDocument(p *Project, s int, path Path) (*Project, error) {
	next := p.Clone()
	section, err := next.Section(s)
	if err != nil {
		return p, err
	}
	siblings, err := ResolveParentSiblings(&section.Docs, path)
	if err != nil {
		return p, err
	}

	idx := path.Last()
	if idx < 0 || idx >= len(*siblings) {
		return p, fmt.Errorf("remove document %v: %w", path, ErrPathNotFound)
	}
	*siblings = append((*siblings)[:idx], (*siblings)[idx+1:]...)
	Reindex(*siblings)
	return next, nil
}

// AddTextBlock appends an empty text block to the document at path.
func (m *Mutator) AddTextBlock(p *Project, s int, path Path) (*Project, error) {
	return m.appendBlock(p, s, path, NewTextBlock(""))
}

// AddCodeGroupBlock appends a code group seeded with DefaultCodeGroup.
func (m *Mutator) AddCodeGroupBlock(p *Project, s int, path Path) (*Project, error) {
	return m.appendBlock(p, s, path, NewCodeGroupBlock(DefaultCodeGroup()...))
}

func (m *Mutator) appendBlock(p *Project, s int, path Path, block ContentBlock) (*Project, error) {
	next := p.Clone()
	doc, err := next.Document(s, path)
	if err != nil {
		return p, err
	}
	doc.Content = append(doc.Content, block)
	return next, nil
}

// UpdateTextBlock replaces the value of text block i.
func (m *Mutator) UpdateTextBlock(p *Project, s int, path Path, i int, value string) (*Project, error) {
	next := p.Clone()
	block, err := blockAt(next, s, path, i, KindText)
	if err != nil {
		return p, err
	}
	block.Value = value
	return next, nil
}

// UpdateCodeGroupBlock replaces the whole entry list of code group i.
func (m *Mutator) UpdateCodeGroupBlock(p *Project, s int, path Path, i int, entries []CodeEntry) (*Project, error) {
	next := p.Clone()
	block, err := blockAt(next, s, path, i, KindCodeGroup)
	if err != nil {
		return p, err
	}
	block.Entries = cloneEntries(entries)
	if block.Entries == nil {
		block.Entries = []CodeEntry{}
	}
	return next, nil
}

// RemoveBlock removes content block i. A document always keeps at least one
// block: when only one remains, p is returned as is.
func (m *Mutator) RemoveBlock(p *Project, s int, path Path, i int) (*Project, error) {
	doc, err := p.Document(s, path)
	if err != nil {
		return p, err
	}
	if len(doc.Content) <= 1 {
		return p, nil
	}
	if i < 0 || i >= len(doc.Content) {
		return p, fmt.Errorf("block %d of %v: %w", i, path, ErrBlockNotFound)
	}

	next := p.Clone()
	doc, _ = next.Document(s, path)
	doc.Content = append(doc.Content[:i], doc.Content[i+1:]...)
	return next, nil
}

func blockAt(p *Project, s int, path Path, i int, kind BlockKind) (*ContentBlock, error) {
	doc, err := p.Document(s, path)
	if err != nil {
		return nil, err
	}
	if i < 0 || i >= len(doc.Content) {
		return nil, fmt.Errorf("block %d of %v: %w", i, path, ErrBlockNotFound)
	}
	block := &doc.Content[i]
	if block.Kind != kind {
		return nil, fmt.Errorf("block %d is %q, not %q: %w", i, block.Kind, kind, ErrBlockKind)
	}
	return block, nil
}
