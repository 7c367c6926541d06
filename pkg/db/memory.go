package db

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"docs-editor/pkg/doctree"

	"github.com/google/uuid"
)

// MemoryProjectStore keeps projects in process memory. Stored trees are
// copied on the way in and out.
type MemoryProjectStore struct {
	projects map[string]*Project
	mutex    sync.RWMutex
}

// NewMemoryProjectStore creates an empty in-memory store
func NewMemoryProjectStore() *MemoryProjectStore {
	return &MemoryProjectStore{projects: make(map[string]*Project)}
}

func (s *MemoryProjectStore) CreateProject(tree *doctree.Project) (*Project, error) {
	tree = tree.Clone()
	if tree == nil {
		tree = &doctree.Project{Sections: []*doctree.Section{}}
	}
	if tree.ProjectID == "" {
		tree.ProjectID = uuid.New().String()
	}
	if err := doctree.Normalize(tree); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	if _, ok := s.projects[tree.ProjectID]; ok {
		return nil, fmt.Errorf("failed to create project: id %q already exists", tree.ProjectID)
	}

	now := time.Now()
	project := &Project{
		ID:        tree.ProjectID,
		Tree:      tree,
		CreatedAt: now,
		UpdatedAt: now,
		Version:   1,
	}
	s.projects[project.ID] = project
	return copyProject(project), nil
}

func (s *MemoryProjectStore) GetProject(id string) (*Project, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	project, ok := s.projects[id]
	if !ok {
		return nil, ErrProjectNotFound
	}
	return copyProject(project), nil
}

func (s *MemoryProjectStore) SaveProject(tree *doctree.Project) (*Project, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	project, ok := s.projects[tree.ProjectID]
	if !ok {
		return nil, ErrProjectNotFound
	}
	project.Tree = tree.Clone()
	project.UpdatedAt = time.Now()
	project.Version++
	return copyProject(project), nil
}

func (s *MemoryProjectStore) DeleteProject(id string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if _, ok := s.projects[id]; !ok {
		return ErrProjectNotFound
	}
	delete(s.projects, id)
	return nil
}

// ListProjects returns projects most recently updated first
func (s *MemoryProjectStore) ListProjects() ([]*Project, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	projects := make([]*Project, 0, len(s.projects))
	for _, project := range s.projects {
		projects = append(projects, copyProject(project))
	}
	sort.Slice(projects, func(i, j int) bool {
		return projects[i].UpdatedAt.After(projects[j].UpdatedAt)
	})
	return projects, nil
}

func (s *MemoryProjectStore) Close() error {
	return nil
}

func copyProject(p *Project) *Project {
	out := *p
	out.Tree = p.Tree.Clone()
	return &out
}

var _ IProjectStore = (*MemoryProjectStore)(nil)
