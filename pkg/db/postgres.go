package db

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"docs-editor/pkg/doctree"

	"github.com/google/uuid"
	_ "github.com/lib/pq"
)

// PostgresProjectStore implements IProjectStore using PostgreSQL. Trees are
// stored as JSONB in the exchange format of package doctree.
type PostgresProjectStore struct {
	db *sql.DB
}

// NewPostgresProjectStore creates a new PostgreSQL project store
func NewPostgresProjectStore(connStr string) (*PostgresProjectStore, error) {
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Test the connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	store := &PostgresProjectStore{db: db}

	if err := store.createTable(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create table: %w", err)
	}

	return store, nil
}

// Close closes the database connection
func (s *PostgresProjectStore) Close() error {
	return s.db.Close()
}

func (s *PostgresProjectStore) CreateProject(tree *doctree.Project) (*Project, error) {
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

	data, err := json.Marshal(tree)
	if err != nil {
		return nil, fmt.Errorf("failed to encode project: %w", err)
	}
	now := time.Now()

	query := `
		INSERT INTO projects (id, tree, created_at, updated_at, version)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, tree, created_at, updated_at, version
	`

	project, err := scanProject(s.db.QueryRow(query, tree.ProjectID, data, now, now, 1))
	if err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	return project, nil
}

func (s *PostgresProjectStore) GetProject(id string) (*Project, error) {
	query := `
		SELECT id, tree, created_at, updated_at, version
		FROM projects
		WHERE id = $1
	`

	project, err := scanProject(s.db.QueryRow(query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	return project, nil
}

func (s *PostgresProjectStore) SaveProject(tree *doctree.Project) (*Project, error) {
	data, err := json.Marshal(tree)
	if err != nil {
		return nil, fmt.Errorf("failed to encode project: %w", err)
	}

	query := `
		UPDATE projects
		SET tree = $1, updated_at = $2, version = version + 1
		WHERE id = $3
		RETURNING id, tree, created_at, updated_at, version
	`

	project, err := scanProject(s.db.QueryRow(query, data, time.Now(), tree.ProjectID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to save project: %w", err)
	}

	return project, nil
}

func (s *PostgresProjectStore) DeleteProject(id string) error {
	query := `DELETE FROM projects WHERE id = $1`

	result, err := s.db.Exec(query, id)
	if err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrProjectNotFound
	}

	return nil
}

func (s *PostgresProjectStore) ListProjects() ([]*Project, error) {
	query := `
		SELECT id, tree, created_at, updated_at, version
		FROM projects
		ORDER BY updated_at DESC
	`

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	var projects []*Project
	for rows.Next() {
		project, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		projects = append(projects, project)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate rows: %w", err)
	}

	return projects, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProject(row rowScanner) (*Project, error) {
	var (
		project Project
		data    []byte
	)
	err := row.Scan(
		&project.ID,
		&data,
		&project.CreatedAt,
		&project.UpdatedAt,
		&project.Version,
	)
	if err != nil {
		return nil, err
	}

	project.Tree = &doctree.Project{}
	if err := json.Unmarshal(data, project.Tree); err != nil {
		return nil, fmt.Errorf("failed to decode project tree: %w", err)
	}
	return &project, nil
}

// Compile-time check to ensure PostgresProjectStore implements IProjectStore
var _ IProjectStore = (*PostgresProjectStore)(nil)
