package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// SaveResume stores a user's resume text, replacing any previous one
func (db *DB) SaveResume(ctx context.Context, userID uuid.UUID, body string) (*Resume, error) {
	var r Resume
	err := db.pool.QueryRow(ctx,
		`INSERT INTO resumes (user_id, body)
		 VALUES ($1, $2)
		 ON CONFLICT (user_id) DO UPDATE SET body = $2, updated_at = NOW()
		 RETURNING id, user_id, body, created_at, updated_at`,
		userID, body,
	).Scan(&r.ID, &r.UserID, &r.Body, &r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to save resume: %w", err)
	}
	return &r, nil
}

// GetResume retrieves a user's saved resume. Returns nil when none is saved.
func (db *DB) GetResume(ctx context.Context, userID uuid.UUID) (*Resume, error) {
	var r Resume
	err := db.pool.QueryRow(ctx,
		`SELECT id, user_id, body, created_at, updated_at
		 FROM resumes WHERE user_id = $1`,
		userID,
	).Scan(&r.ID, &r.UserID, &r.Body, &r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get resume: %w", err)
	}
	return &r, nil
}

// DeleteResume removes a user's saved resume
func (db *DB) DeleteResume(ctx context.Context, userID uuid.UUID) error {
	result, err := db.pool.Exec(ctx, `DELETE FROM resumes WHERE user_id = $1`, userID)
	if err != nil {
		return fmt.Errorf("failed to delete resume: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("no saved resume for user: %s", userID)
	}
	return nil
}
