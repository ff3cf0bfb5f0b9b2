package store

import (
	"context"
	"errors"

	"github.com/linkbrief/linkbrief/models"
)

// ErrDuplicateEmail reports a signup conflict. The Postgres implementation
// surfaces the driver's unique-violation error instead.
var ErrDuplicateEmail = errors.New("email already exists")

// LinkStore persists per-user link records. Implementations must scope reads,
// deletes and listings to the owning user.
type LinkStore interface {
	// CreateLink assigns an id and timestamps and persists the record.
	CreateLink(ctx context.Context, link models.Link) (models.Link, error)
	// MarkProcessing moves a pending link to the processing status.
	MarkProcessing(ctx context.Context, id string) error
	// FinishLink writes the terminal outcome of one processing attempt.
	FinishLink(ctx context.Context, id string, result models.Summary, status models.ProcessingStatus) (models.Link, error)
	// GetLink returns the record, or models.ErrLinkNotFound.
	GetLink(ctx context.Context, id, userID string) (models.Link, error)
	// ListLinks returns the user's records newest first.
	ListLinks(ctx context.Context, userID string) ([]models.Link, error)
	// DeleteLink removes the record, or returns models.ErrLinkNotFound.
	DeleteLink(ctx context.Context, id, userID string) error
}

// UserStore manages accounts and their ingest keys.
type UserStore interface {
	CreateUser(ctx context.Context, email, passwordHash string) error
	// GetUserByEmail returns the user id and password hash, or models.ErrUserNotFound.
	GetUserByEmail(ctx context.Context, email string) (id, hash string, err error)
	// SaveIngestKey binds a generated key to a user.
	SaveIngestKey(ctx context.Context, key, userID string) error
	// UserByIngestKey resolves the owning user id, or models.ErrUserNotFound.
	UserByIngestKey(ctx context.Context, key string) (string, error)
}

// Store is the full persistence surface of the service.
type Store interface {
	LinkStore
	UserStore
}
