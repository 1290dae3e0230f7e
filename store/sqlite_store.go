package store

import (
	"context"
	"database/sql"
	"fmt"
)

// SQLiteStore reads and appends entity strings in a SQLite table. Entities
// are returned in insertion (id) order, which becomes the corpus order.
type SQLiteStore struct {
	db    *sql.DB
	table string
}

// NewSQLiteStore creates a store over table, ensuring its schema exists.
func NewSQLiteStore(ctx context.Context, db *sql.DB, table string) (*SQLiteStore, error) {
	if db == nil {
		return nil, fmt.Errorf("store: db is nil")
	}
	if table == "" {
		table = DefaultTable
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if err := EnsureSchema(ctx, db, table); err != nil {
		return nil, err
	}
	return &SQLiteStore{db: db, table: table}, nil
}

// Table returns the backing table name.
func (s *SQLiteStore) Table() string { return s.table }

// AddEntities appends entities in one transaction and returns how many were
// written. Empty strings are rejected.
func (s *SQLiteStore) AddEntities(ctx context.Context, entities []string) (int, error) {
	if len(entities) == 0 {
		return 0, nil
	}
	if ctx == nil {
		ctx = context.Background()
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, fmt.Sprintf(`INSERT INTO %s(value) VALUES(?)`, s.table))
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	for i, e := range entities {
		if e == "" {
			return 0, fmt.Errorf("store: entity %d is empty", i)
		}
		if _, err := stmt.ExecContext(ctx, e); err != nil {
			return 0, err
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return len(entities), nil
}

// Entities loads every entity in id order.
func (s *SQLiteStore) Entities(ctx context.Context) ([]string, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	rows, err := s.db.QueryContext(ctx, fmt.Sprintf(`SELECT value FROM %s ORDER BY id`, s.table))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Count returns the number of stored entities.
func (s *SQLiteStore) Count(ctx context.Context) (int, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	var n int
	err := s.db.QueryRowContext(ctx, fmt.Sprintf(`SELECT count(*) FROM %s`, s.table)).Scan(&n)
	return n, err
}
