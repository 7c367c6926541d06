// Package editor holds the editing state of one project: the document tree,
// the active selection and the undo/redo history. Intents are applied one at
// a time; the Editor itself is not safe for concurrent use.
package editor

import (
	"fmt"

	"docs-editor/pkg/doctree"
	"docs-editor/pkg/history"
)

// Editor applies intents to a project
type Editor struct {
	project   *doctree.Project
	selection Selection
	history   *history.History
	mutator   *doctree.Mutator
}

// Option configures an Editor
type Option func(*Editor)

// WithIDGenerator sets the source of ids for new sections and documents.
func WithIDGenerator(ids doctree.IDGenerator) Option {
	return func(e *Editor) {
		e.mutator = doctree.NewMutator(ids)
	}
}

// WithHistoryLimit bounds the number of undo snapshots.
func WithHistoryLimit(n int) Option {
	return func(e *Editor) {
		e.history = history.New(n)
	}
}

// New creates an editor over a copy of project with the first top-level
// document of the first section selected.
func New(project *doctree.Project, opts ...Option) *Editor {
	if project == nil {
		project = &doctree.Project{}
	}
	e := &Editor{
		project:   project.Clone(),
		selection: Selection{Section: 0, Path: doctree.Path{0}},
		history:   history.New(0),
		mutator:   doctree.NewMutator(nil),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Project returns a copy of the current tree.
func (e *Editor) Project() *doctree.Project {
	return e.project.Clone()
}

// Selection returns the active selection
func (e *Editor) Selection() Selection {
	return e.selection.clone()
}

// ActiveDocument returns a copy of the selected document, or false when the
// selection does not resolve.
func (e *Editor) ActiveDocument() (*doctree.Document, bool) {
	doc, ok := e.selection.Resolve(e.project)
	if !ok {
		return nil, false
	}
	return doc.Clone(), true
}

// CanUndo returns true if undo is available.
func (e *Editor) CanUndo() bool { return e.history.CanUndo() }

// CanRedo returns true if redo is available.
func (e *Editor) CanRedo() bool { return e.history.CanRedo() }

// Undo restores the tree recorded before the last mutation. It reports false
// when there is nothing to undo. The selection is left as is.
func (e *Editor) Undo() bool {
	prev, ok := e.history.Undo(e.project)
	if ok {
		e.project = prev
	}
	return ok
}

// Redo re-applies the last undone mutation.
func (e *Editor) Redo() bool {
	next, ok := e.history.Redo(e.project)
	if ok {
		e.project = next
	}
	return ok
}

// Dispatch applies one intent. A failed intent leaves tree, selection and
// history untouched and returns the error; callers report it and carry on.
// It returns true when the tree changed.
func (e *Editor) Dispatch(in Intent) (bool, error) {
	switch in.Type {
	case IntentSelectDocument:
		e.selection = Selection{Section: in.SectionIndex, Path: in.Path.Clone()}
		return false, nil
	case IntentUndo:
		return e.Undo(), nil
	case IntentRedo:
		return e.Redo(), nil
	}

	next, sel, err := e.apply(in)
	if err != nil {
		return false, fmt.Errorf("%s: %w", in.Type, err)
	}
	if next == e.project {
		return false, nil
	}

	e.history.Record(e.project)
	e.project = next
	e.selection = sel
	return true, nil
}

// apply computes the next tree and selection for a mutating intent.
func (e *Editor) apply(in Intent) (*doctree.Project, Selection, error) {
	m := e.mutator
	cur := e.project
	sel := e.selection

	var (
		next *doctree.Project
		err  error
	)
	switch in.Type {
	case IntentSetProject:
		if in.Project == nil {
			return cur, sel, ErrMissingProject
		}
		next = in.Project.Clone()
		if err := doctree.Normalize(next); err != nil {
			return cur, sel, err
		}
	case IntentAddSection:
		next = m.AddSection(cur)
	case IntentRenameSection:
		next, err = m.RenameSection(cur, in.SectionIndex, in.Title)
	case IntentRemoveSection:
		next, err = m.RemoveSection(cur, in.SectionIndex)
		sel = sel.afterSectionRemoved(in.SectionIndex)
	case IntentAddDocument:
		var path doctree.Path
		next, path, err = m.AddDocument(cur, in.SectionIndex, in.Path)
		sel = Selection{Section: in.SectionIndex, Path: path}
	case IntentRenameDocument:
		next, err = m.RenameDocument(cur, in.SectionIndex, in.Path, in.Title)
	case IntentRemoveDocument:
		next, err = m.RemoveDocument(cur, in.SectionIndex, in.Path)
		sel = sel.afterDocumentRemoved(in.SectionIndex, in.Path)
	case IntentAddTextBlock:
		next, err = m.AddTextBlock(cur, in.SectionIndex, in.Path)
	case IntentAddCodeGroupBlock:
		next, err = m.AddCodeGroupBlock(cur, in.SectionIndex, in.Path)
	case IntentUpdateTextBlock:
		next, err = m.UpdateTextBlock(cur, in.SectionIndex, in.Path, in.BlockIndex, in.Value)
	case IntentUpdateCodeGroupBlock:
		next, err = m.UpdateCodeGroupBlock(cur, in.SectionIndex, in.Path, in.BlockIndex, in.Entries)
	case IntentRemoveContentBlock:
		next, err = m.RemoveBlock(cur, in.SectionIndex, in.Path, in.BlockIndex)
	default:
		return cur, sel, fmt.Errorf("%w: %q", ErrUnknownIntent, in.Type)
	}
	if err != nil {
		return cur, e.selection, err
	}
	return next, sel, nil
}
