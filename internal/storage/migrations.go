package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
)

// ExpectedSchemaVersion is the latest schema version the application expects.
const ExpectedSchemaVersion = 2

// Migration represents a database schema migration.
type Migration struct {
	Up          func(*sql.Tx) error
	Description string
	Version     int
}

var migrations = []Migration{
	{
		Version:     1,
		Description: "Initial schema: buyers and source imports",
		Up: func(tx *sql.Tx) error {
			queries := []string{
				`CREATE TABLE IF NOT EXISTS buyers (
					id INTEGER PRIMARY KEY AUTOINCREMENT,
					hash TEXT NOT NULL,
					source TEXT NOT NULL,
					company_name TEXT NOT NULL,
					country TEXT,
					city TEXT,
					product_text TEXT,
					hs_code TEXT,
					contact_person TEXT,
					email TEXT,
					phone TEXT,
					website TEXT,
					date DATETIME,
					date_raw TEXT,
					created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
					UNIQUE(source, hash)
				)`,
				`CREATE INDEX idx_buyers_source ON buyers(source)`,
				`CREATE INDEX idx_buyers_email ON buyers(email)`,

				`CREATE TABLE IF NOT EXISTS source_imports (
					source TEXT PRIMARY KEY,
					status TEXT NOT NULL,
					detail TEXT,
					path TEXT,
					encoding TEXT,
					delimiter TEXT,
					row_count INTEGER DEFAULT 0,
					column_count INTEGER DEFAULT 0,
					imported_at DATETIME DEFAULT CURRENT_TIMESTAMP
				)`,
			}

			for _, query := range queries {
				if _, err := tx.Exec(query); err != nil {
					return fmt.Errorf("failed to execute query: %w", err)
				}
			}
			return nil
		},
	},
	{
		Version:     2,
		Description: "Persist match runs for export",
		Up: func(tx *sql.Tx) error {
			queries := []string{
				`CREATE TABLE IF NOT EXISTS match_runs (
					id TEXT PRIMARY KEY,
					industry TEXT NOT NULL,
					hs_code TEXT,
					countries TEXT,
					require_email BOOLEAN DEFAULT 0,
					created_at DATETIME DEFAULT CURRENT_TIMESTAMP
				)`,
				`CREATE TABLE IF NOT EXISTS match_results (
					run_id TEXT NOT NULL,
					rank INTEGER NOT NULL,
					company_name TEXT NOT NULL,
					domain TEXT,
					website TEXT,
					email TEXT,
					contact_person TEXT,
					raw_country TEXT,
					raw_city TEXT,
					raw_product_text TEXT,
					raw_hs_code TEXT,
					raw_phone TEXT,
					PRIMARY KEY (run_id, rank),
					FOREIGN KEY (run_id) REFERENCES match_runs(id)
				)`,
				`CREATE INDEX idx_match_results_run ON match_results(run_id)`,
			}

			for _, query := range queries {
				if _, err := tx.Exec(query); err != nil {
					return fmt.Errorf("failed to execute query: %w", err)
				}
			}
			return nil
		},
	},
}

// Migrate applies any pending schema migrations.
func (s *SQLiteStorage) Migrate(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	var current int
	if err := s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&current); err != nil {
		return fmt.Errorf("failed to get schema version: %w", err)
	}

	for _, m := range migrations {
		if m.Version <= current {
			continue
		}

		slog.Info("Applying migration",
			"version", m.Version,
			"description", m.Description)

		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("failed to begin migration transaction: %w", err)
		}

		if err := m.Up(tx); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("migration %d failed: %w", m.Version, err)
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
