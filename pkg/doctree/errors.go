package doctree

import "errors"

// Errors returned by path resolution and tree mutations. None of them leave
// the tree modified.
var (
	// ErrEmptyPath indicates a document lookup was attempted without any index.
	ErrEmptyPath = errors.New("empty document path")

	// ErrPathNotFound indicates an index in the path is out of range at some depth.
	ErrPathNotFound = errors.New("document path not found")

	// ErrSectionNotFound indicates the section index is out of range.
	ErrSectionNotFound = errors.New("section not found")

	// ErrBlockNotFound indicates the content block index is out of range.
	ErrBlockNotFound = errors.New("content block not found")

	// ErrBlockKind indicates an operation was applied to the wrong block variant.
	ErrBlockKind = errors.New("wrong content block kind")

	// ErrMalformedTree indicates a tree from outside the editor holds null
	// sections or documents.
	ErrMalformedTree = errors.New("malformed project tree")
)
