package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// SaveScan persists a scan outcome and returns the stored record
func (db *DB) SaveScan(ctx context.Context, input *ScanCreateInput) (*Scan, error) {
	var requirementsJSON, matchJSON []byte
	var err error
	if input.Requirements != nil {
		requirementsJSON, err = json.Marshal(input.Requirements)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal requirements: %w", err)
		}
	}
	if input.MatchResult != nil {
		matchJSON, err = json.Marshal(input.MatchResult)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal match result: %w", err)
		}
	}

	var s Scan
	err = db.pool.QueryRow(ctx,
		`INSERT INTO scans (user_id, job_url, source_tag, confidence, score, requirements, match_result)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id, user_id, COALESCE(job_url, ''), COALESCE(source_tag, ''), confidence, score, created_at`,
		input.UserID, nullIfEmpty(input.JobURL), nullIfEmpty(input.SourceTag),
		input.Confidence, input.Score, requirementsJSON, matchJSON,
	).Scan(&s.ID, &s.UserID, &s.JobURL, &s.SourceTag, &s.Confidence, &s.Score, &s.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to save scan: %w", err)
	}
	s.Requirements = input.Requirements
	s.MatchResult = input.MatchResult
	return &s, nil
}

// GetScan retrieves a scan by ID. Returns nil when no scan exists.
func (db *DB) GetScan(ctx context.Context, id uuid.UUID) (*Scan, error) {
	var s Scan
	var requirementsJSON, matchJSON []byte

	err := db.pool.QueryRow(ctx,
		`SELECT id, user_id, COALESCE(job_url, ''), COALESCE(source_tag, ''), confidence, score,
		        requirements, match_result, created_at
		 FROM scans WHERE id = $1`,
		id,
	).Scan(&s.ID, &s.UserID, &s.JobURL, &s.SourceTag, &s.Confidence, &s.Score,
		&requirementsJSON, &matchJSON, &s.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get scan: %w", err)
	}

	// Parse JSONB fields
	if requirementsJSON != nil {
		_ = json.Unmarshal(requirementsJSON, &s.Requirements)
	}
	if matchJSON != nil {
		_ = json.Unmarshal(matchJSON, &s.MatchResult)
	}

	return &s, nil
}

// ListScans retrieves scans with optional filters, newest first
func (db *DB) ListScans(ctx context.Context, filters ScanFilters) ([]Scan, error) {
	if filters.Limit == 0 {
		filters.Limit = 50
	}

	query := `SELECT id, user_id, COALESCE(job_url, ''), COALESCE(source_tag, ''), confidence, score, created_at
		FROM scans WHERE 1=1`
	args := []any{}
	argNum := 1

	if filters.UserID != uuid.Nil {
		query += fmt.Sprintf(" AND user_id = $%d", argNum)
		args = append(args, filters.UserID)
		argNum++
	}
	if filters.JobURL != "" {
		query += fmt.Sprintf(" AND job_url = $%d", argNum)
		args = append(args, filters.JobURL)
		argNum++
	}

	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d", argNum)
	args = append(args, filters.Limit)

	rows, err := db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list scans: %w", err)
	}
	defer rows.Close()

	var scans []Scan
	for rows.Next() {
		var s Scan
		if err := rows.Scan(&s.ID, &s.UserID, &s.JobURL, &s.SourceTag, &s.Confidence, &s.Score, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		scans = append(scans, s)
	}
	return scans, nil
}

// DeleteScan deletes a scan record
func (db *DB) DeleteScan(ctx context.Context, id uuid.UUID) error {
	result, err := db.pool.Exec(ctx, `DELETE FROM scans WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete scan: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("scan not found: %s", id)
	}
	return nil
}

// nullIfEmpty maps "" to NULL for optional text columns
func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
