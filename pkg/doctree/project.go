package doctree

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// BlockKind tags the variant held by a ContentBlock
type BlockKind string

const (
	KindText      BlockKind = "text"
	KindCodeGroup BlockKind = "codegroup"
)

// Project is the root of a documentation tree
type Project struct {
	ProjectID string     `json:"project_id" yaml:"project_id"`
	Sections  []*Section `json:"sections" yaml:"sections"`
}

// Section owns a forest of top-level documents
type Section struct {
	SectionID *string     `json:"section_id" yaml:"section_id"`
	Title     string      `json:"title" yaml:"title"`
	Slug      string      `json:"slug" yaml:"slug"`
	Position  int         `json:"position" yaml:"position"`
	Docs      []*Document `json:"docs" yaml:"docs"`
}

// Document is a node of the documentation forest. Position always mirrors
// the node's 1-based index inside its sibling list.
type Document struct {
	DocumentationID *string        `json:"documentation_id" yaml:"documentation_id"`
	Title           string         `json:"title" yaml:"title"`
	Slug            *string        `json:"slug,omitempty" yaml:"slug,omitempty"`
	Position        int            `json:"position" yaml:"position"`
	Content         []ContentBlock `json:"content" yaml:"content"`
	Children        []*Document    `json:"children" yaml:"children"`
}

// CodeEntry is one language tab of a code group
type CodeEntry struct {
	Language string `json:"language" yaml:"language"`
	Code     string `json:"code" yaml:"code"`
}

// ContentBlock is either a text block (Value) or a code group (Entries),
// selected by Kind.
type ContentBlock struct {
	Kind    BlockKind   `json:"kind" yaml:"kind"`
	Value   string      `json:"value,omitempty" yaml:"value,omitempty"`
	Entries []CodeEntry `json:"entries,omitempty" yaml:"entries,omitempty"`
}

// NewTextBlock returns a text block holding value
func NewTextBlock(value string) ContentBlock {
	return ContentBlock{Kind: KindText, Value: value}
}

// NewCodeGroupBlock returns a code group holding a copy of entries
func NewCodeGroupBlock(entries ...CodeEntry) ContentBlock {
	return ContentBlock{Kind: KindCodeGroup, Entries: cloneEntries(entries)}
}

type textBlockJSON struct {
	Kind  BlockKind `json:"kind"`
	Value string    `json:"value"`
}

type codeGroupBlockJSON struct {
	Kind    BlockKind   `json:"kind"`
	Entries []CodeEntry `json:"entries"`
}

// MarshalJSON writes only the fields that belong to the block's variant.
func (b ContentBlock) MarshalJSON() ([]byte, error) {
	switch b.Kind {
	case KindText:
		return json.Marshal(textBlockJSON{Kind: b.Kind, Value: b.Value})
	case KindCodeGroup:
		entries := b.Entries
		if entries == nil {
			entries = []CodeEntry{}
		}
		return json.Marshal(codeGroupBlockJSON{Kind: b.Kind, Entries: entries})
	default:
		return nil, fmt.Errorf("marshal content block: %w: %q", ErrBlockKind, b.Kind)
	}
}

// UnmarshalJSON rejects unknown block kinds.
func (b *ContentBlock) UnmarshalJSON(data []byte) error {
	var raw struct {
		Kind    BlockKind   `json:"kind"`
		Value   string      `json:"value"`
		Entries []CodeEntry `json:"entries"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if err := b.set(raw.Kind, raw.Value, raw.Entries); err != nil {
		return fmt.Errorf("unmarshal content block: %w", err)
	}
	return nil
}

// UnmarshalYAML rejects unknown block kinds, as UnmarshalJSON does.
func (b *ContentBlock) UnmarshalYAML(node *yaml.Node) error {
	var raw struct {
		Kind    BlockKind   `yaml:"kind"`
		Value   string      `yaml:"value"`
		Entries []CodeEntry `yaml:"entries"`
	}
	if err := node.Decode(&raw); err != nil {
		return err
	}
	if err := b.set(raw.Kind, raw.Value, raw.Entries); err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	return nil
}

// set keeps only the fields of the variant named by kind.
func (b *ContentBlock) set(kind BlockKind, value string, entries []CodeEntry) error {
	switch kind {
	case KindText:
		*b = ContentBlock{Kind: KindText, Value: value}
	case KindCodeGroup:
		*b = ContentBlock{Kind: KindCodeGroup, Entries: entries}
	default:
		return fmt.Errorf("%w: %q", ErrBlockKind, kind)
	}
	return nil
}

func (s *Section) setPosition(p int)  { s.Position = p }
func (d *Document) setPosition(p int) { d.Position = p }

// Clone returns a deep copy of the project sharing no mutable state with p.
func (p *Project) Clone() *Project {
	if p == nil {
		return nil
	}
	out := &Project{
		ProjectID: p.ProjectID,
		Sections:  make([]*Section, len(p.Sections)),
	}
	for i, s := range p.Sections {
		out.Sections[i] = s.Clone()
	}
	return out
}

// Clone returns a deep copy of the section and its documents
func (s *Section) Clone() *Section {
	if s == nil {
		return nil
	}
	return &Section{
		SectionID: cloneString(s.SectionID),
		Title:     s.Title,
		Slug:      s.Slug,
		Position:  s.Position,
		Docs:      cloneDocs(s.Docs),
	}
}

// Clone returns a deep copy of the document subtree
func (d *Document) Clone() *Document {
	if d == nil {
		return nil
	}
	out := &Document{
		DocumentationID: cloneString(d.DocumentationID),
		Title:           d.Title,
		Slug:            cloneString(d.Slug),
		Position:        d.Position,
		Content:         make([]ContentBlock, len(d.Content)),
		Children:        cloneDocs(d.Children),
	}
	for i, b := range d.Content {
		out.Content[i] = b.Clone()
	}
	return out
}

// Clone copies the block, including its code entries
func (b ContentBlock) Clone() ContentBlock {
	b.Entries = cloneEntries(b.Entries)
	return b
}

func cloneDocs(docs []*Document) []*Document {
	out := make([]*Document, len(docs))
	for i, d := range docs {
		out[i] = d.Clone()
	}
	return out
}

func cloneEntries(entries []CodeEntry) []CodeEntry {
	if entries == nil {
		return nil
	}
	out := make([]CodeEntry, len(entries))
	copy(out, entries)
	return out
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

// StringPtr is a convenience for building ids and slugs.
func StringPtr(s string) *string {
	return &s
}
