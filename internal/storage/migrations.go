package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
)

// ExpectedSchemaVersion is the latest schema version that the application
// expects. If the database cannot be migrated to this version, it's a fatal
// error.
const ExpectedSchemaVersion = 3

// Migration represents a database schema migration.
type Migration struct {
	Up          func(*sql.Tx) error
	Description string
	Version     int
}

var migrations = []Migration{
	{
		Version:     1,
		Description: "Initial schema",
		Up: func(tx *sql.Tx) error {
			queries := []string{
				`CREATE TABLE IF NOT EXISTS imports (
					id TEXT PRIMARY KEY,
					work TEXT NOT NULL,
					created_at DATETIME DEFAULT CURRENT_TIMESTAMP
				)`,

				`CREATE TABLE IF NOT EXISTS lines (
					work TEXT NOT NULL,
					book_n TEXT NOT NULL,
					line_n TEXT NOT NULL,
					text TEXT NOT NULL,
					status TEXT NOT NULL,
					import_id TEXT REFERENCES imports(id)
				)`,
				`CREATE INDEX idx_lines_location ON lines(work, book_n, line_n)`,

				`CREATE TABLE IF NOT EXISTS word_records (
					work TEXT NOT NULL,
					book_n TEXT NOT NULL,
					line_n TEXT NOT NULL,
					word_n INTEGER NOT NULL,
					word TEXT NOT NULL,
					lemma TEXT,
					sedes TEXT,
					metrical_shape TEXT,
					import_id TEXT REFERENCES imports(id)
				)`,
				`CREATE INDEX idx_word_records_location ON word_records(work, book_n, line_n)`,
			}
			for _, q := range queries {
				if _, err := tx.Exec(q); err != nil {
					return fmt.Errorf("migration 1: %w", err)
				}
			}
			return nil
		},
	},
	{
		Version:     2,
		Description: "Index lemmas for expectancy queries",
		Up: func(tx *sql.Tx) error {
			if _, err := tx.Exec(`CREATE INDEX idx_word_records_lemma ON word_records(lemma)`); err != nil {
				return fmt.Errorf("migration 2: %w", err)
			}
			return nil
		},
	},
	{
		Version:     3,
		Description: "Store per-word tone shapes",
		Up: func(tx *sql.Tx) error {
			if _, err := tx.Exec(`ALTER TABLE word_records ADD COLUMN tone_shape TEXT`); err != nil {
				return fmt.Errorf("migration 3: %w", err)
			}
			return nil
		},
	},
}

// Migrate applies all pending migrations.
func (s *SQLiteStorage) Migrate(ctx context.Context) error {
	var version int
	if err := s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&version); err != nil {
		return fmt.Errorf("failed to get schema version: %w", err)
	}

	for _, m := range migrations {
		if m.Version <= version {
			continue
		}
		slog.Info("Applying migration", "version", m.Version, "description", m.Description)

		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("failed to begin migration %d: %w", m.Version, err)
		}
		if err := m.Up(tx); err != nil {
			_ = tx.Rollback()
			return err
		}
		if _, err := tx.Exec(fmt.Sprintf("PRAGMA user_version = %d", m.Version)); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to set schema version %d: %w", m.Version, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("failed to commit migration %d: %w", m.Version, err)
		}
	}
	return nil
}
