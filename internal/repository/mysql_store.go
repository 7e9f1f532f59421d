package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// DefaultSnapshotName identifies the hotel row in hotel_snapshots.
const DefaultSnapshotName = "default"

// MySQLBackend keeps the snapshot as one row of the hotel_snapshots table.
// Each write replaces the row inside a transaction.
type MySQLBackend struct {
	db   *sql.DB
	name string
}

// NewMySQLBackend returns a backend bound to db.  Call EnsureSchema once
// before the first read or write.
func NewMySQLBackend(db *sql.DB, name string) *MySQLBackend {
	if name == "" {
		name = DefaultSnapshotName
	}
	return &MySQLBackend{db: db, name: name}
}

// EnsureSchema creates the hotel_snapshots table if it does not exist.
func (m *MySQLBackend) EnsureSchema(ctx context.Context) error {
	const q = `CREATE TABLE IF NOT EXISTS hotel_snapshots (
        name     VARCHAR(64) NOT NULL PRIMARY KEY,
        version  INT         NOT NULL,
        payload  LONGBLOB    NOT NULL,
        saved_at DATETIME(6) NOT NULL
    )`
	_, err := m.db.ExecContext(ctx, q)
	return err
}

func (m *MySQLBackend) Location() string { return "mysql:hotel_snapshots/" + m.name }

func (m *MySQLBackend) Read(ctx context.Context) ([]byte, error) {
	const q = `SELECT payload FROM hotel_snapshots WHERE name = ?`
	var payload []byte
	if err := m.db.QueryRowContext(ctx, q, m.name).Scan(&payload); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSnapshotNotFound
		}
		return nil, err
	}
	return payload, nil
}

func (m *MySQLBackend) Write(ctx context.Context, data []byte) error {
	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	const q = `INSERT INTO hotel_snapshots (name, version, payload, saved_at) VALUES (?, ?, ?, ?)
               ON DUPLICATE KEY UPDATE version = VALUES(version), payload = VALUES(payload), saved_at = VALUES(saved_at)`
	if _, err := tx.ExecContext(ctx, q, m.name, SnapshotVersion, data, time.Now().UTC()); err != nil {
		return fmt.Errorf("upsert snapshot: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
