package editor

import "docs-editor/pkg/doctree"

// Selection identifies the document open for editing and preview. It is not
// validated when set; Resolve reports whether it still points at a node.
type Selection struct {
	Section int          `json:"active_section"`
	Path    doctree.Path `json:"active_doc_path"`
}

// NoSelection never resolves to a document.
var NoSelection = Selection{Section: -1}

// IsEmpty reports whether the selection was cleared
func (s Selection) IsEmpty() bool {
	return s.Section < 0 || len(s.Path) == 0
}

// Resolve returns the selected document, or false when it does not exist.
func (s Selection) Resolve(p *doctree.Project) (*doctree.Document, bool) {
	if s.IsEmpty() {
		return nil, false
	}
	doc, err := p.Document(s.Section, s.Path)
	if err != nil {
		return nil, false
	}
	return doc, true
}

func (s Selection) clone() Selection {
	return Selection{Section: s.Section, Path: s.Path.Clone()}
}

// afterSectionRemoved re-targets the selection once section removed is gone.
func (s Selection) afterSectionRemoved(removed int) Selection {
	switch {
	case s.IsEmpty():
		return s
	case s.Section == removed:
		return NoSelection
	case s.Section > removed:
		return Selection{Section: s.Section - 1, Path: s.Path.Clone()}
	default:
		return s
	}
}

// afterDocumentRemoved re-targets the selection once the node at removed
// (and its subtree) is gone from section.
func (s Selection) afterDocumentRemoved(section int, removed doctree.Path) Selection {
	if s.IsEmpty() || s.Section != section || len(removed) == 0 {
		return s
	}
	if s.Path.HasPrefix(removed) {
		return NoSelection
	}

	level := len(removed) - 1
	if len(s.Path) <= level || !s.Path.HasPrefix(removed.Parent()) {
		return s
	}
	if s.Path[level] > removed[level] {
		path := s.Path.Clone()
		path[level]--
		return Selection{Section: s.Section, Path: path}
	}
	return s
}
