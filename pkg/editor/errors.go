package editor

import "errors"

var (
	// ErrUnknownIntent indicates an intent type the editor does not handle.
	ErrUnknownIntent = errors.New("unknown intent")

	// ErrMissingProject indicates a set_project intent without a project.
	ErrMissingProject = errors.New("intent carries no project")
)
