package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/tradewise-kr/buyerscout/internal/cli"
	"github.com/tradewise-kr/buyerscout/internal/config"
	"github.com/tradewise-kr/buyerscout/internal/model"
	"github.com/tradewise-kr/buyerscout/internal/storage"
)

// openStorage opens the SQLite database and applies migrations.
func openStorage(ctx context.Context, cfg *config.Config) (*storage.SQLiteStorage, error) {
	store, err := storage.NewSQLiteStorage(cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database at %s: %w", cfg.DatabasePath, err)
	}

	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// openStorageOrNil opens storage but degrades to nil on failure: commands
// that only use the database as a cache keep working without one.
func openStorageOrNil(ctx context.Context, cfg *config.Config) *storage.SQLiteStorage {
	store, err := openStorage(ctx, cfg)
	if err != nil {
		slog.Warn("Running without record cache", "error", err)
		return nil
	}
	return store
}

// formatStatus renders one source status line.
func formatStatus(st model.SourceStatus) string {
	switch st.Status {
	case model.StatusOK:
		detail := fmt.Sprintf("%d rows, %d cols", st.Rows, st.Columns)
		if st.Detail == "cache" {
			detail = fmt.Sprintf("%d rows, cached", st.Rows)
		} else if st.Encoding != "" {
			detail += fmt.Sprintf(", %s, %q", st.Encoding, st.Delimiter)
		}
		return cli.FormatSuccess(fmt.Sprintf("%s (%s)", st.Source, detail))
	case model.StatusMissing:
		return cli.FormatWarning(fmt.Sprintf("%s (missing: %s)", st.Source, st.Detail))
	default:
		return cli.FormatError(fmt.Sprintf("%s (failed: %s)", st.Source, st.Detail))
	}
}
