// Package history keeps linear undo/redo stacks of whole-project snapshots.
//
// Every stored snapshot is a deep copy, so no entry shares mutable state with
// the live tree or with another entry. Recording a new snapshot discards the
// redo stack. Undo and redo on an empty stack are no-ops.
package history

import (
	"docs-editor/pkg/doctree"
)

// DefaultMaxEntries bounds the undo stack when no limit is configured.
const DefaultMaxEntries = 100

// History holds the undo and redo stacks. It is not safe for concurrent use;
// the owner serialises access.
type History struct {
	undoStack []*doctree.Project
	redoStack []*doctree.Project

	maxEntries int
}

// New creates a history keeping at most maxEntries undo snapshots.
func New(maxEntries int) *History {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	return &History{maxEntries: maxEntries}
}

// Record stores a copy of current as the state to return to on undo.
// Clears the redo stack.
func (h *History) Record(current *doctree.Project) {
	h.undoStack = append(h.undoStack, current.Clone())
	h.redoStack = nil

	if len(h.undoStack) > h.maxEntries {
		excess := len(h.undoStack) - h.maxEntries
		h.undoStack = h.undoStack[excess:]
	}
}

// Undo pops the most recent snapshot and pushes a copy of current onto the
// redo stack. It reports false and leaves both stacks untouched when there is
// nothing to undo.
func (h *History) Undo(current *doctree.Project) (*doctree.Project, bool) {
	if len(h.undoStack) == 0 {
		return nil, false
	}

	prev := h.undoStack[len(h.undoStack)-1]
	h.undoStack = h.undoStack[:len(h.undoStack)-1]
	h.redoStack = append(h.redoStack, current.Clone())
	return prev.Clone(), true
}

// Redo is the mirror of Undo.
func (h *History) Redo(current *doctree.Project) (*doctree.Project, bool) {
	if len(h.redoStack) == 0 {
		return nil, false
	}

	next := h.redoStack[len(h.redoStack)-1]
	h.redoStack = h.redoStack[:len(h.redoStack)-1]
	h.undoStack = append(h.undoStack, current.Clone())
	return next.Clone(), true
}

// CanUndo returns true if undo is available.
func (h *History) CanUndo() bool {
	return len(h.undoStack) > 0
}

// CanRedo returns true if redo is available.
func (h *History) CanRedo() bool {
	return len(h.redoStack) > 0
}

// UndoCount returns the number of undo snapshots available.
func (h *History) UndoCount() int {
	return len(h.undoStack)
}

// RedoCount returns the number of redo snapshots available.
func (h *History) RedoCount() int {
	return len(h.redoStack)
}

// MaxEntries returns the maximum number of undo snapshots.
func (h *History) MaxEntries() int {
	return h.maxEntries
}

// Clear removes all undo/redo history.
func (h *History) Clear() {
	h.undoStack = nil
	h.redoStack = nil
}
