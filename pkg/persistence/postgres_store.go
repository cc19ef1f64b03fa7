package persistence

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq" // PostgreSQL driver
)

// PostgresStore handles progress persistence using PostgreSQL
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore creates a new PostgreSQL storage manager
func NewPostgresStore(connectionString string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Test the connection
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	store := &PostgresStore{db: db}

	if err := store.initSchema(); err != nil {
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return store, nil
}

// initSchema initializes the database schema. Progress is a single row.
func (ps *PostgresStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS run_progress (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		floor INTEGER NOT NULL,
		seed BIGINT NOT NULL,
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	);
	`
	_, err := ps.db.Exec(schema)
	return err
}

// SaveProgress upserts the single progress row
func (ps *PostgresStore) SaveProgress(p Progress) error {
	query := `
	INSERT INTO run_progress (id, floor, seed, updated_at)
	VALUES (1, $1, $2, NOW())
	ON CONFLICT (id) DO UPDATE SET
		floor = EXCLUDED.floor,
		seed = EXCLUDED.seed,
		updated_at = NOW()
	`
	if _, err := ps.db.Exec(query, p.Floor, p.Seed); err != nil {
		return fmt.Errorf("failed to save progress: %w", err)
	}
	return nil
}

// LoadProgress loads the single progress row. A missing row reads as the
// zero progress, matching a fresh JSON store.
func (ps *PostgresStore) LoadProgress() (Progress, error) {
	var p Progress
	query := `SELECT floor, seed FROM run_progress WHERE id = 1`
	err := ps.db.QueryRow(query).Scan(&p.Floor, &p.Seed)
	if err == sql.ErrNoRows {
		return Progress{}, nil
	}
	if err != nil {
		return Progress{}, fmt.Errorf("failed to load progress: %w", err)
	}
	return p, nil
}

// Close closes the database connection
func (ps *PostgresStore) Close() error {
	return ps.db.Close()
}
