package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/goccy/go-json"
	_ "github.com/mattn/go-sqlite3"

	"github.com/hyperjump/pakar/internal/tabular"
)

// ErrEmpty is returned by ReadTable when nothing has been imported.
var ErrEmpty = errors.New("no catalog table imported")

// SQLiteStorage implements Storage using SQLite.
type SQLiteStorage struct {
	db *sql.DB
}

// NewSQLiteStorage opens or creates a SQLite database at dbPath and initializes the schema.
// Parent directories are created if they do not exist.
func NewSQLiteStorage(dbPath string) (*SQLiteStorage, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable WAL: %w", err)
	}

	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &SQLiteStorage{db: db}, nil
}

func initSchema(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS catalog_columns (
		position INTEGER PRIMARY KEY,
		name TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS catalog_rows (
		row_index INTEGER PRIMARY KEY,
		cells TEXT NOT NULL,
		imported_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);
	`
	_, err := db.Exec(schema)
	return err
}

// ImportTable replaces the stored header and rows with t in a single transaction.
func (s *SQLiteStorage) ImportTable(ctx context.Context, t *tabular.Table) error {
	if t == nil || len(t.Header) == 0 {
		return tabular.ErrNoHeader
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin import: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM catalog_columns`); err != nil {
		return fmt.Errorf("clear columns: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM catalog_rows`); err != nil {
		return fmt.Errorf("clear rows: %w", err)
	}

	colStmt, err := tx.PrepareContext(ctx, `INSERT INTO catalog_columns (position, name) VALUES (?, ?)`)
	if err != nil {
		return err
	}
	defer colStmt.Close()
	for i, name := range t.Header {
		if _, err := colStmt.ExecContext(ctx, i, name); err != nil {
			return fmt.Errorf("insert column %q: %w", name, err)
		}
	}

	rowStmt, err := tx.PrepareContext(ctx, `INSERT INTO catalog_rows (row_index, cells) VALUES (?, ?)`)
	if err != nil {
		return err
	}
	defer rowStmt.Close()
	for i, row := range t.Rows {
		cells, err := json.Marshal(row)
		if err != nil {
			return fmt.Errorf("failed to marshal row %d: %w", i, err)
		}
		if _, err := rowStmt.ExecContext(ctx, i, string(cells)); err != nil {
			return fmt.Errorf("insert row %d: %w", i, err)
		}
	}
	return tx.Commit()
}

// ReadTable returns the stored table. Returns ErrEmpty when no header was imported.
func (s *SQLiteStorage) ReadTable(ctx context.Context) (*tabular.Table, error) {
	header, err := s.readHeader(ctx)
	if err != nil {
		return nil, err
	}
	if len(header) == 0 {
		return nil, ErrEmpty
	}

	rows, err := s.db.QueryContext(ctx, `SELECT cells FROM catalog_rows ORDER BY row_index`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := [][]string{header}
	for rows.Next() {
		var cellsJSON string
		if err := rows.Scan(&cellsJSON); err != nil {
			return nil, err
		}
		var cells []string
		if err := json.Unmarshal([]byte(cellsJSON), &cells); err != nil {
			return nil, fmt.Errorf("failed to unmarshal row: %w", err)
		}
		records = append(records, cells)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return tabular.NewTable(records)
}

func (s *SQLiteStorage) readHeader(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT name FROM catalog_columns ORDER BY position`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var header []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		header = append(header, name)
	}
	return header, rows.Err()
}

// CountRows returns the number of stored catalog rows.
func (s *SQLiteStorage) CountRows(ctx context.Context) (int64, error) {
	var n int64
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM catalog_rows`).Scan(&n)
	return n, err
}

// SizeBytes returns the size of the main database file as reported by SQLite.
func (s *SQLiteStorage) SizeBytes(ctx context.Context) (int64, error) {
	var pageCount, pageSize int64
	if err := s.db.QueryRowContext(ctx, `PRAGMA page_count`).Scan(&pageCount); err != nil {
		return 0, err
	}
	if err := s.db.QueryRowContext(ctx, `PRAGMA page_size`).Scan(&pageSize); err != nil {
		return 0, err
	}
	return pageCount * pageSize, nil
}

// Close closes the database.
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}
