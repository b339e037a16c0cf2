package db

import (
	"time"

	"github.com/google/uuid"
)

// User represents an account that owns a saved resume and scan history
type User struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-" db:"password_hash"` // Never serialize to JSON
	PasswordSet  bool      `json:"password_set" db:"password_set"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Resume is a user's saved resume text. Each user has at most one.
type Resume struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Scan is a persisted scan outcome: the structured requirements pulled from
// a posting plus the optional resume match computed alongside it.
type Scan struct {
	ID           uuid.UUID  `json:"id"`
	UserID       *uuid.UUID `json:"user_id,omitempty"`
	JobURL       string     `json:"job_url,omitempty"`
	SourceTag    string     `json:"source_tag,omitempty"`
	Confidence   int        `json:"confidence"`
	Score        *int       `json:"score,omitempty"`
	Requirements any        `json:"requirements,omitempty"`
	MatchResult  any        `json:"match_result,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

// ScanCreateInput holds the fields for persisting a new scan
type ScanCreateInput struct {
	UserID       *uuid.UUID
	JobURL       string
	SourceTag    string
	Confidence   int
	Score        *int
	Requirements any
	MatchResult  any
}

// ScanFilters holds optional filters for listing scans
type ScanFilters struct {
	UserID uuid.UUID
	JobURL string
	Limit  int
}
