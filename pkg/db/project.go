package db

import (
	"errors"
	"time"

	"docs-editor/pkg/doctree"
)

// ErrProjectNotFound is returned when no project has the requested id
var ErrProjectNotFound = errors.New("project not found")

// Project is a stored documentation tree
type Project struct {
	ID        string           `json:"id"`
	Tree      *doctree.Project `json:"tree"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
	Version   int              `json:"version"`
}

// IProjectStore persists project trees
type IProjectStore interface {
	// CreateProject stores tree under a fresh id when tree.ProjectID is empty.
	CreateProject(tree *doctree.Project) (*Project, error)
	GetProject(id string) (*Project, error)
	// SaveProject replaces the stored tree of tree.ProjectID and bumps its version.
	SaveProject(tree *doctree.Project) (*Project, error)
	DeleteProject(id string) error
	ListProjects() ([]*Project, error)
	Close() error
}
