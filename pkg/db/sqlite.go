package db

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// connString builds a SQLite connection string with the pragma settings the
// message store relies on: WAL journaling and immediate write transactions.
func connString(file string) string {
	params := make(url.Values)
	params.Add("_journal_mode", "WAL")
	params.Add("_busy_timeout", "5000")
	params.Add("_synchronous", "NORMAL")
	params.Add("_foreign_keys", "true")
	params.Add("_txlock", "immediate")
	params.Add("mode", "rwc")
	return "file:" + file + "?" + params.Encode()
}

// Open opens (creating if needed) the SQLite database at path. Writes are
// serialized through a single connection so concurrent puts never hit
// SQLITE_BUSY.
func Open(path string) (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create database directory: %w", err)
	}

	conn, err := sql.Open("sqlite", connString(path))
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if _, err := conn.Exec("PRAGMA temp_store=memory;"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("set temp_store pragma: %w", err)
	}

	conn.SetMaxOpenConns(1)
	conn.SetMaxIdleConns(1)
	return conn, nil
}

// WithTx runs fn inside a transaction, rolling back on error.
func WithTx(ctx context.Context, conn *sql.DB, fn func(*sql.Tx) error) error {
	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
