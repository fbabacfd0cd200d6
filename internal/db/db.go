// Package db opens the SQLite stores orient reads. The probes never own
// these databases: they belong to other processes, so everything here
// opens read-only with a short busy timeout.
package db

import (
	"database/sql"
	"fmt"
	"os"

	_ "modernc.org/sqlite"
)

// OpenReadOnly opens an existing SQLite database without taking write
// locks. The caller is responsible for closing it.
func OpenReadOnly(path string, busyTimeoutMS int) (*sql.DB, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("store not found: %s", path)
	}

	dsn := fmt.Sprintf("file:%s?mode=ro&_busy_timeout=%d", path, busyTimeoutMS)
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening store %s: %w", path, err)
	}

	if err := sqlDB.Ping(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("pinging store %s: %w", path, err)
	}

	return sqlDB, nil
}

// Open opens (or creates) a SQLite database read-write. Used by test
// fixtures and tooling that seeds a guidance store; the scan path only
// ever uses OpenReadOnly.
func Open(path string) (*sql.DB, error) {
	sqlDB, err := sql.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := sqlDB.Ping(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	return sqlDB, nil
}
