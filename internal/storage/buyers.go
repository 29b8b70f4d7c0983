package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/tradewise-kr/buyerscout/internal/model"
)

// StoreRecords replaces the cached records for one source and records its
// import status. Implements the engine's RecordCache.
func (s *SQLiteStorage) StoreRecords(ctx context.Context, status model.SourceStatus, records []model.BuyerRecord) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if status.Source == "" {
		return fmt.Errorf("source cannot be empty")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM buyers WHERE source = ?`, status.Source); err != nil {
		return fmt.Errorf("failed to clear source %s: %w", status.Source, err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT OR IGNORE INTO buyers (
			hash, source, company_name, country, city, product_text, hs_code,
			contact_person, email, phone, website, date, date_raw
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, rec := range records {
		if rec.Hash == "" {
			rec.Hash = rec.GenerateHash()
		}

		var date any
		if rec.Date != nil {
			date = *rec.Date
		}

		if _, err := stmt.ExecContext(ctx,
			rec.Hash,
			status.Source,
			rec.CompanyName,
			rec.Country,
			rec.City,
			rec.ProductText,
			rec.HSCode,
			rec.ContactPerson,
			rec.Email,
			rec.Phone,
			rec.Website,
			date,
			rec.DateRaw,
		); err != nil {
			return fmt.Errorf("failed to insert buyer record: %w", err)
		}
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO source_imports (source, status, detail, path, encoding, delimiter, row_count, column_count, imported_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(source) DO UPDATE SET
			status = excluded.status,
			detail = excluded.detail,
			path = excluded.path,
			encoding = excluded.encoding,
			delimiter = excluded.delimiter,
			row_count = excluded.row_count,
			column_count = excluded.column_count,
			imported_at = excluded.imported_at
	`, status.Source, status.Status, status.Detail, status.Path, status.Encoding,
		status.Delimiter, status.Rows, status.Columns, time.Now().UTC()); err != nil {
		return fmt.Errorf("failed to record source import: %w", err)
	}

	return tx.Commit()
}

// CachedRecords returns the records cached for a source if they were
// imported within ttl. Implements the engine's RecordCache.
func (s *SQLiteStorage) CachedRecords(ctx context.Context, source string, ttl time.Duration) ([]model.BuyerRecord, bool) {
	if err := validateContext(ctx); err != nil {
		return nil, false
	}

	var importedAt time.Time
	err := s.db.QueryRowContext(ctx,
		`SELECT imported_at FROM source_imports WHERE source = ? AND status = ?`,
		source, model.StatusOK).Scan(&importedAt)
	if err != nil {
		return nil, false
	}
	if ttl > 0 && time.Since(importedAt) > ttl {
		return nil, false
	}

	records, err := s.RecordsBySource(ctx, source)
	if err != nil || len(records) == 0 {
		return nil, false
	}
	return records, true
}

// RecordsBySource returns all cached records for one source.
func (s *SQLiteStorage) RecordsBySource(ctx context.Context, source string) ([]model.BuyerRecord, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT hash, source, company_name, country, city, product_text, hs_code,
		       contact_person, email, phone, website, date, date_raw
		FROM buyers
		WHERE source = ?
		ORDER BY id
	`, source)
	if err != nil {
		return nil, fmt.Errorf("failed to query buyers for %s: %w", source, err)
	}
	defer func() { _ = rows.Close() }()

	var records []model.BuyerRecord
	for rows.Next() {
		var rec model.BuyerRecord
		var date sql.NullTime
		if err := rows.Scan(
			&rec.Hash,
			&rec.Source,
			&rec.CompanyName,
			&rec.Country,
			&rec.City,
			&rec.ProductText,
			&rec.HSCode,
			&rec.ContactPerson,
			&rec.Email,
			&rec.Phone,
			&rec.Website,
			&date,
			&rec.DateRaw,
		); err != nil {
			return nil, fmt.Errorf("failed to scan buyer record: %w", err)
		}
		if date.Valid {
			t := date.Time
			rec.Date = &t
		}
		records = append(records, rec)
	}

	return records, rows.Err()
}

// SourceImports returns the recorded import status of every source.
func (s *SQLiteStorage) SourceImports(ctx context.Context) ([]model.SourceStatus, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT source, status, detail, path, encoding, delimiter, row_count, column_count
		FROM source_imports
		ORDER BY source
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query source imports: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var statuses []model.SourceStatus
	for rows.Next() {
		var st model.SourceStatus
		if err := rows.Scan(&st.Source, &st.Status, &st.Detail, &st.Path,
			&st.Encoding, &st.Delimiter, &st.Rows, &st.Columns); err != nil {
			return nil, fmt.Errorf("failed to scan source import: %w", err)
		}
		statuses = append(statuses, st)
	}

	return statuses, rows.Err()
}
