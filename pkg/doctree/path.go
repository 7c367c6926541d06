package doctree

import (
	"fmt"
	"strconv"
	"strings"
)

// Path addresses a document by 0-based sibling indices, starting at a
// section's top-level list. Paths are positional and must be recomputed
// after any structural change.
type Path []int

// Clone returns an independent copy of the path
func (p Path) Clone() Path {
	if p == nil {
		return nil
	}
	out := make(Path, len(p))
	copy(out, p)
	return out
}

// Child returns the path of the child at index i under p.
func (p Path) Child(i int) Path {
	out := make(Path, len(p), len(p)+1)
	copy(out, p)
	return append(out, i)
}

// Parent returns the path without its last index
func (p Path) Parent() Path {
	if len(p) == 0 {
		return nil
	}
	return p[:len(p)-1].Clone()
}

// Last returns the final index, or -1 for an empty path
func (p Path) Last() int {
	if len(p) == 0 {
		return -1
	}
	return p[len(p)-1]
}

// HasPrefix reports whether prefix addresses p itself or one of its ancestors.
func (p Path) HasPrefix(prefix Path) bool {
	if len(prefix) > len(p) {
		return false
	}
	for i := range prefix {
		if p[i] != prefix[i] {
			return false
		}
	}
	return true
}

// Equal reports whether both paths address the same position
func (p Path) Equal(other Path) bool {
	return len(p) == len(other) && p.HasPrefix(other)
}

func (p Path) String() string {
	parts := make([]string, len(p))
	for i, idx := range p {
		parts[i] = strconv.Itoa(idx)
	}
	return strings.Join(parts, ".")
}

// ParsePath parses the dotted form produced by Path.String, e.g. "0.2.1".
func ParsePath(s string) (Path, error) {
	if s == "" {
		return nil, ErrEmptyPath
	}
	parts := strings.Split(s, ".")
	path := make(Path, len(parts))
	for i, part := range parts {
		idx, err := strconv.Atoi(part)
		if err != nil || idx < 0 {
			return nil, fmt.Errorf("invalid path %q: %w", s, ErrPathNotFound)
		}
		path[i] = idx
	}
	return path, nil
}

// ResolveNode descends forest one index at a time and returns the addressed
// node. It never panics: out-of-range indices yield ErrPathNotFound.
func ResolveNode(forest []*Document, path Path) (*Document, error) {
	if len(path) == 0 {
		return nil, ErrEmptyPath
	}

	siblings := forest
	var node *Document
	for depth, idx := range path {
		if idx < 0 || idx >= len(siblings) || siblings[idx] == nil {
			return nil, fmt.Errorf("index %d at depth %d of %v: %w", idx, depth, path, ErrPathNotFound)
		}
		node = siblings[idx]
		siblings = node.Children
	}
	return node, nil
}

// ResolveParentSiblings returns the sibling list that owns the node at path.
// A path of length one yields forest itself. The final index is not checked.
func ResolveParentSiblings(forest *[]*Document, path Path) (*[]*Document, error) {
	if len(path) == 0 {
		return nil, ErrEmptyPath
	}
	if len(path) == 1 {
		return forest, nil
	}

	parent, err := ResolveNode(*forest, path.Parent())
	if err != nil {
		return nil, err
	}
	return &parent.Children, nil
}

// Section returns the section at index i
func (p *Project) Section(i int) (*Section, error) {
	if p == nil || i < 0 || i >= len(p.Sections) {
		return nil, fmt.Errorf("section %d: %w", i, ErrSectionNotFound)
	}
	return p.Sections[i], nil
}

// Document resolves the document at path inside section i
func (p *Project) Document(section int, path Path) (*Document, error) {
	s, err := p.Section(section)
	if err != nil {
		return nil, err
	}
	return ResolveNode(s.Docs, path)
}
