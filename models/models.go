package models

import (
	"errors"
	"time"
)

// ErrLinkNotFound is returned when a link does not exist or is owned by another user.
var ErrLinkNotFound = errors.New("link not found")

// ErrUserNotFound is returned when an ingest key or email resolves no user.
var ErrUserNotFound = errors.New("user not found")

// ErrStatusFinal is returned when a status transition is attempted on a link
// that already reached completed or failed. Terminal statuses never regress.
var ErrStatusFinal = errors.New("link already in a terminal status")

// Link is a saved URL together with its enrichment result.
type Link struct {
	ID           string           `json:"id"`
	UserID       string           `json:"user_id"`
	URL          string           `json:"url"`
	Title        string           `json:"title"`
	Summary      *string          `json:"summary"`
	Tags         []string         `json:"tags"`
	Status       ProcessingStatus `json:"processing_status"`
	DateAccessed time.Time        `json:"date_accessed"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
}

type ProcessingStatus string

const (
	StatusPending    ProcessingStatus = "pending"
	StatusProcessing ProcessingStatus = "processing"
	StatusCompleted  ProcessingStatus = "completed"
	StatusFailed     ProcessingStatus = "failed"
)

// Terminal reports whether the status admits no further transitions.
func (s ProcessingStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// Summary is the parsed outcome of one summarization attempt.
type Summary struct {
	Title   string   `json:"title"`
	Summary string   `json:"summary"`
	Tags    []string `json:"tags"`
}

// PendingSummaryText is written into a link's summary field before processing.
const PendingSummaryText = "Generated summary will appear here once processed."
