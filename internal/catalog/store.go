// Package catalog keeps gene annotations, chromosome sequences and built
// marker sequences in a SQL database. DuckDB and SQLite are supported.
package catalog

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// Supported database drivers.
const (
	DriverDuckDB = "duckdb"
	DriverSQLite = "sqlite"
)

// Store manages a catalog database connection.
type Store struct {
	db     *sql.DB
	driver string
	path   string
}

// Open opens or creates a catalog database at the given path.
// Use an empty string for an in-memory database.
func Open(driverName, path string) (*Store, error) {
	dsn := path
	switch driverName {
	case DriverDuckDB:
	case DriverSQLite:
		if dsn == "" {
			dsn = ":memory:"
		}
	default:
		return nil, fmt.Errorf("open catalog: unknown driver %q", driverName)
	}

	if path != "" && path != ":memory:" {
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create catalog directory: %w", err)
		}
	}

	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driverName, err)
	}
	if path == "" || path == ":memory:" {
		// Each new connection to an in-memory database would see an empty one.
		db.SetMaxOpenConns(1)
	}

	s := &Store{db: db, driver: driverName, path: path}
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

// Driver returns the database driver name.
func (s *Store) Driver() string {
	return s.driver
}

// ensureSchema creates tables if they don't exist.
func (s *Store) ensureSchema() error {
	for _, stmt := range []string{
		`CREATE TABLE IF NOT EXISTS genes (
			genome_id VARCHAR,
			gene_id VARCHAR,
			name VARCHAR,
			chrom VARCHAR,
			start_pos BIGINT,
			end_pos BIGINT,
			strand INTEGER,
			biotype VARCHAR
		)`,
		`CREATE TABLE IF NOT EXISTS chromosomes (
			name VARCHAR PRIMARY KEY,
			sequence VARCHAR
		)`,
		`CREATE TABLE IF NOT EXISTS marker_seqs (
			genome_id VARCHAR,
			id VARCHAR,
			chrom VARCHAR,
			start_pos BIGINT,
			end_pos BIGINT,
			length BIGINT,
			sequence VARCHAR
		)`,
	} {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}
