package db

// createTable creates the projects table if it doesn't exist
func (s *PostgresProjectStore) createTable() error {
	query := `
	CREATE TABLE IF NOT EXISTS projects (
		id VARCHAR(64) PRIMARY KEY,
		tree JSONB NOT NULL,
		created_at TIMESTAMP WITH TIME ZONE NOT NULL,
		updated_at TIMESTAMP WITH TIME ZONE NOT NULL,
		version INTEGER NOT NULL DEFAULT 1
	);
	
	CREATE INDEX IF NOT EXISTS idx_projects_updated_at ON projects(updated_at);
	`

	_, err := s.db.Exec(query)
	return err
}
