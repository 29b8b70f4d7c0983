package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/mattn/go-sqlite3"

	"github.com/tradewise-kr/buyerscout/internal/common"
	"github.com/tradewise-kr/buyerscout/internal/model"
)

// SaveMatchRun persists one executed search and its display records.
func (s *SQLiteStorage) SaveMatchRun(ctx context.Context, run *model.MatchRun) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if run == nil || run.ID == "" {
		return fmt.Errorf("match run must have an id")
	}

	countriesJSON, err := json.Marshal(run.Countries)
	if err != nil {
		return fmt.Errorf("failed to encode countries: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO match_runs (id, industry, hs_code, countries, require_email, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, run.ID, run.Industry, run.HSCode, string(countriesJSON), run.RequireEmail, run.CreatedAt); err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.Code == sqlite3.ErrConstraint {
			return fmt.Errorf("%w: match run %s", common.ErrDuplicateEntry, run.ID)
		}
		return fmt.Errorf("failed to insert match run: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO match_results (
			run_id, rank, company_name, domain, website, email, contact_person,
			raw_country, raw_city, raw_product_text, raw_hs_code, raw_phone
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for i, b := range run.Buyers {
		if _, err := stmt.ExecContext(ctx,
			run.ID, i+1,
			b.CompanyName, b.Domain, b.Website, b.Email, b.ContactPerson,
			b.RawCountry, b.RawCity, b.RawProductText, b.RawHSCode, b.RawPhone,
		); err != nil {
			return fmt.Errorf("failed to insert match result %d: %w", i+1, err)
		}
	}

	return tx.Commit()
}

// LatestMatchRun returns the most recent persisted run, or ErrNotFound when
// no run has been saved yet.
func (s *SQLiteStorage) LatestMatchRun(ctx context.Context) (*model.MatchRun, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	run := &model.MatchRun{}
	var countriesJSON string
	var createdAt time.Time

	err := s.db.QueryRowContext(ctx, `
		SELECT id, industry, hs_code, countries, require_email, created_at
		FROM match_runs
		ORDER BY created_at DESC, id DESC
		LIMIT 1
	`).Scan(&run.ID, &run.Industry, &run.HSCode, &countriesJSON, &run.RequireEmail, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query latest match run: %w", err)
	}
	run.CreatedAt = createdAt

	if countriesJSON != "" {
		if err := json.Unmarshal([]byte(countriesJSON), &run.Countries); err != nil {
			return nil, fmt.Errorf("failed to decode countries: %w", err)
		}
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT company_name, domain, website, email, contact_person,
		       raw_country, raw_city, raw_product_text, raw_hs_code, raw_phone
		FROM match_results
		WHERE run_id = ?
		ORDER BY rank
	`, run.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to query match results: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var b model.DisplayBuyer
		if err := rows.Scan(&b.CompanyName, &b.Domain, &b.Website, &b.Email, &b.ContactPerson,
			&b.RawCountry, &b.RawCity, &b.RawProductText, &b.RawHSCode, &b.RawPhone); err != nil {
			return nil, fmt.Errorf("failed to scan match result: %w", err)
		}
		b.Industry = run.Industry
		b.CountryTargets = run.Countries
		run.Buyers = append(run.Buyers, b)
	}

	return run, rows.Err()
}
