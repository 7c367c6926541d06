package doctree

import "fmt"

// Normalize checks and repairs a tree loaded from outside the editor. Null
// sections or documents and unknown block kinds are rejected without touching
// p. Otherwise positions are recomputed at every level, missing lists become
// empty and documents without content get one empty text block.
func Normalize(p *Project) error {
	if p == nil {
		return fmt.Errorf("%w: no project", ErrMalformedTree)
	}
	if err := validate(p); err != nil {
		return err
	}

	if p.Sections == nil {
		p.Sections = []*Section{}
	}
	Reindex(p.Sections)
	for _, s := range p.Sections {
		if s.Docs == nil {
			s.Docs = []*Document{}
		}
		normalizeDocs(s.Docs)
	}
	return nil
}

func normalizeDocs(docs []*Document) {
	Reindex(docs)
	for _, d := range docs {
		if len(d.Content) == 0 {
			d.Content = []ContentBlock{NewTextBlock("")}
		}
		if d.Children == nil {
			d.Children = []*Document{}
		}
		normalizeDocs(d.Children)
	}
}

func validate(p *Project) error {
	for i, s := range p.Sections {
		if s == nil {
			return fmt.Errorf("%w: section %d is null", ErrMalformedTree, i)
		}
		if err := validateDocs(i, nil, s.Docs); err != nil {
			return err
		}
	}
	return nil
}

func validateDocs(section int, parent Path, docs []*Document) error {
	for i, d := range docs {
		path := parent.Child(i)
		if d == nil {
			return fmt.Errorf("%w: section %d document %s is null", ErrMalformedTree, section, path)
		}
		for j, b := range d.Content {
			if b.Kind != KindText && b.Kind != KindCodeGroup {
				return fmt.Errorf("section %d document %s block %d: %w: %q", section, path, j, ErrBlockKind, b.Kind)
			}
		}
		if err := validateDocs(section, path, d.Children); err != nil {
			return err
		}
	}
	return nil
}
