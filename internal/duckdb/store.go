// Package duckdb persists pipeline results to a DuckDB database so
// downstream dashboards can query depth and variant tables directly.
package duckdb

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/marcboeker/go-duckdb"
)

// Store manages a DuckDB connection for pipeline results.
type Store struct {
	db   *sql.DB
	path string
}

// Open opens or creates a DuckDB database at the given path.
// Use an empty string for an in-memory database.
func Open(path string) (*Store, error) {
	if path != "" {
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create output directory: %w", err)
		}
	}

	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, fmt.Errorf("open duckdb: %w", err)
	}

	s := &Store{db: db, path: path}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// DB returns the underlying *sql.DB for direct access.
func (s *Store) DB() *sql.DB {
	return s.db
}

// ensureSchema creates tables if they don't exist.
func (s *Store) ensureSchema() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS depth_rows (
		pos BIGINT PRIMARY KEY,
		depth_a DOUBLE,
		depth_t DOUBLE,
		depth_c DOUBLE,
		depth_g DOUBLE,
		no_variant DOUBLE,
		total_depth DOUBLE
	)`)
	if err != nil {
		return err
	}

	_, err = s.db.Exec(`CREATE TABLE IF NOT EXISTS variant_reports (
		view_name VARCHAR,
		pos BIGINT,
		a DOUBLE,
		t DOUBLE,
		c DOUBLE,
		g DOUBLE,
		PRIMARY KEY (view_name, pos)
	)`)
	return err
}
