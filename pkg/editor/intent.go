package editor

import "docs-editor/pkg/doctree"

// IntentType names an operation of the editing surface
type IntentType string

const (
	IntentSetProject           IntentType = "set_project"
	IntentSelectDocument       IntentType = "select_document"
	IntentAddSection           IntentType = "add_section"
	IntentRenameSection        IntentType = "rename_section"
	IntentRemoveSection        IntentType = "remove_section"
	IntentAddDocument          IntentType = "add_document"
	IntentRenameDocument       IntentType = "rename_document"
	IntentRemoveDocument       IntentType = "remove_document"
	IntentAddTextBlock         IntentType = "add_text_block"
	IntentAddCodeGroupBlock    IntentType = "add_codegroup_block"
	IntentUpdateTextBlock      IntentType = "update_text_block"
	IntentUpdateCodeGroupBlock IntentType = "update_codegroup_block"
	IntentRemoveContentBlock   IntentType = "remove_content_block"
	IntentUndo                 IntentType = "undo"
	IntentRedo                 IntentType = "redo"
)

// Intent is one user action. Only the fields relevant to Type are read:
// Path is the document path, or the parent path for add_document (empty
// means top level).
type Intent struct {
	Type         IntentType          `json:"type"`
	SectionIndex int                 `json:"section_index"`
	Path         doctree.Path        `json:"path,omitempty"`
	BlockIndex   int                 `json:"block_index"`
	Title        string              `json:"title,omitempty"`
	Value        string              `json:"value,omitempty"`
	Entries      []doctree.CodeEntry `json:"entries,omitempty"`
	Project      *doctree.Project    `json:"project,omitempty"`
}

// Mutates reports whether the intent changes the document tree and so goes
// through the history. Selection changes and undo/redo do not.
func (i Intent) Mutates() bool {
	switch i.Type {
	case IntentSelectDocument, IntentUndo, IntentRedo:
		return false
	default:
		return true
	}
}
