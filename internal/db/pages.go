package db

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// DefaultPageCacheTTL is how long a fetched posting page stays fresh.
const DefaultPageCacheTTL = 7 * 24 * time.Hour

const (
	// maxFetchFailures is the failure count after which a URL is skipped.
	maxFetchFailures = 3
	// failureBackoff is how long a repeatedly failing URL stays skipped.
	failureBackoff = 6 * time.Hour
)

// Fetch status values for cached pages.
const (
	FetchStatusSuccess = "success"
	FetchStatusFailed  = "failed"
)

// CachedPage is one row of the posting-page fetch cache, keyed by URL.
type CachedPage struct {
	ID          uuid.UUID  `json:"id"`
	URL         string     `json:"url"`
	RawHTML     *string    `json:"raw_html,omitempty"`
	ParsedText  *string    `json:"parsed_text,omitempty"`
	HTTPStatus  *int       `json:"http_status,omitempty"`
	FetchStatus string     `json:"fetch_status"`
	FailCount   int        `json:"fail_count"`
	LastError   *string    `json:"last_error,omitempty"`
	FetchedAt   time.Time  `json:"fetched_at"`
	ExpiresAt   *time.Time `json:"expires_at,omitempty"`
}

// GetFreshCachedPage returns the cached page for a URL when it was fetched
// successfully within the TTL and has not been invalidated. Returns nil when
// there is no usable entry.
func (db *DB) GetFreshCachedPage(ctx context.Context, url string, ttl time.Duration) (*CachedPage, error) {
	cutoff := time.Now().Add(-ttl)

	query := `
		SELECT id, url, raw_html, parsed_text, http_status, fetch_status,
		       fail_count, last_error, fetched_at, expires_at
		FROM cached_pages
		WHERE url = $1
		  AND fetch_status = $2
		  AND fetched_at > $3
		  AND (expires_at IS NULL OR expires_at > NOW())`

	var page CachedPage
	err := db.pool.QueryRow(ctx, query, url, FetchStatusSuccess, cutoff).Scan(
		&page.ID, &page.URL, &page.RawHTML, &page.ParsedText, &page.HTTPStatus,
		&page.FetchStatus, &page.FailCount, &page.LastError, &page.FetchedAt, &page.ExpiresAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get cached page: %w", err)
	}

	return &page, nil
}

// GetCachedPageByURL returns the cache entry for a URL regardless of
// freshness, or nil when none exists.
func (db *DB) GetCachedPageByURL(ctx context.Context, url string) (*CachedPage, error) {
	query := `
		SELECT id, url, raw_html, parsed_text, http_status, fetch_status,
		       fail_count, last_error, fetched_at, expires_at
		FROM cached_pages
		WHERE url = $1`

	var page CachedPage
	err := db.pool.QueryRow(ctx, query, url).Scan(
		&page.ID, &page.URL, &page.RawHTML, &page.ParsedText, &page.HTTPStatus,
		&page.FetchStatus, &page.FailCount, &page.LastError, &page.FetchedAt, &page.ExpiresAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get cached page: %w", err)
	}

	return &page, nil
}

// UpsertCachedPage stores a successful fetch, replacing any previous entry
// for the URL and resetting its failure count. The page's ID and FetchedAt
// are filled in.
func (db *DB) UpsertCachedPage(ctx context.Context, page *CachedPage) error {
	query := `
		INSERT INTO cached_pages (url, raw_html, parsed_text, http_status, fetch_status, fail_count, last_error, fetched_at, expires_at)
		VALUES ($1, $2, $3, $4, $5, 0, NULL, NOW(), $6)
		ON CONFLICT (url) DO UPDATE SET
			raw_html = EXCLUDED.raw_html,
			parsed_text = EXCLUDED.parsed_text,
			http_status = EXCLUDED.http_status,
			fetch_status = EXCLUDED.fetch_status,
			fail_count = 0,
			last_error = NULL,
			fetched_at = NOW(),
			expires_at = EXCLUDED.expires_at
		RETURNING id, fetched_at`

	status := page.FetchStatus
	if status == "" {
		status = FetchStatusSuccess
	}

	err := db.pool.QueryRow(ctx, query,
		page.URL, page.RawHTML, page.ParsedText, page.HTTPStatus, status, page.ExpiresAt,
	).Scan(&page.ID, &page.FetchedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert cached page: %w", err)
	}

	return nil
}

// RecordFailedFetch notes a fetch failure for a URL, incrementing its
// failure count.
func (db *DB) RecordFailedFetch(ctx context.Context, url string, httpStatus int, message string) error {
	var status *int
	if httpStatus != 0 {
		status = &httpStatus
	}

	query := `
		INSERT INTO cached_pages (url, http_status, fetch_status, fail_count, last_error, fetched_at)
		VALUES ($1, $2, $3, 1, $4, NOW())
		ON CONFLICT (url) DO UPDATE SET
			http_status = EXCLUDED.http_status,
			fetch_status = EXCLUDED.fetch_status,
			fail_count = cached_pages.fail_count + 1,
			last_error = EXCLUDED.last_error,
			fetched_at = NOW()`

	_, err := db.pool.Exec(ctx, query, url, status, FetchStatusFailed, nullIfEmpty(message))
	if err != nil {
		return fmt.Errorf("failed to record fetch failure: %w", err)
	}

	return nil
}

// ShouldSkipURL reports whether a URL is in failure backoff: it has failed
// at least maxFetchFailures times and the last attempt is recent. The reason
// carries the last recorded error.
func (db *DB) ShouldSkipURL(ctx context.Context, url string) (bool, string, error) {
	page, err := db.GetCachedPageByURL(ctx, url)
	if err != nil {
		return false, "", err
	}
	if page == nil || page.FetchStatus != FetchStatusFailed {
		return false, "", nil
	}

	if page.FailCount >= maxFetchFailures && time.Since(page.FetchedAt) < failureBackoff {
		reason := fmt.Sprintf("%d consecutive fetch failures", page.FailCount)
		if page.LastError != nil {
			reason = fmt.Sprintf("%s, last: %s", reason, *page.LastError)
		}
		return true, reason, nil
	}

	return false, "", nil
}
