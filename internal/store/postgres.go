package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"github.com/linkbrief/linkbrief/models"
)

// Postgres implements Store on top of a lib/pq connection pool.
type Postgres struct {
	DB *sql.DB
}

// NewPostgres opens and pings a Postgres connection.
func NewPostgres(ctx context.Context, dsn string) (*Postgres, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		return nil, err
	}
	return &Postgres{DB: db}, nil
}

func (s *Postgres) CreateLink(ctx context.Context, link models.Link) (models.Link, error) {
	err := s.DB.QueryRowContext(ctx,
		`INSERT INTO links (user_id, url, title, summary, tags, status, date_accessed)
 VALUES ($1,$2,$3,$4,$5,$6,$7)
 RETURNING id, created_at, updated_at`,
		link.UserID, link.URL, link.Title, link.Summary, pq.Array(link.Tags), link.Status, link.DateAccessed,
	).Scan(&link.ID, &link.CreatedAt, &link.UpdatedAt)
	return link, err
}

func (s *Postgres) MarkProcessing(ctx context.Context, id string) error {
	res, err := s.DB.ExecContext(ctx,
		`UPDATE links SET status=$2, updated_at=NOW()
 WHERE id=$1 AND status NOT IN ('completed','failed')`,
		id, models.StatusProcessing)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return s.statusConflict(ctx, id)
	}
	return nil
}

// statusConflict reports why a guarded status update matched no row: the link
// is missing, or it already reached a terminal status.
func (s *Postgres) statusConflict(ctx context.Context, id string) error {
	var status models.ProcessingStatus
	err := s.DB.QueryRowContext(ctx, `SELECT status FROM links WHERE id=$1`, id).Scan(&status)
	if errors.Is(err, sql.ErrNoRows) {
		return models.ErrLinkNotFound
	}
	if err != nil {
		return err
	}
	return models.ErrStatusFinal
}

func (s *Postgres) FinishLink(ctx context.Context, id string, result models.Summary, status models.ProcessingStatus) (models.Link, error) {
	var link models.Link
	var tags pq.StringArray
	err := s.DB.QueryRowContext(ctx,
		`UPDATE links SET title=$2, summary=$3, tags=$4, status=$5, updated_at=NOW()
 WHERE id=$1 AND status NOT IN ('completed','failed')
 RETURNING id, user_id, url, title, summary, tags, status, date_accessed, created_at, updated_at`,
		id, result.Title, result.Summary, pq.Array(result.Tags), status,
	).Scan(&link.ID, &link.UserID, &link.URL, &link.Title, &link.Summary, &tags, &link.Status, &link.DateAccessed, &link.CreatedAt, &link.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Link{}, s.statusConflict(ctx, id)
	}
	link.Tags = tags
	return link, err
}

func (s *Postgres) GetLink(ctx context.Context, id, userID string) (models.Link, error) {
	var link models.Link
	var tags pq.StringArray
	err := s.DB.QueryRowContext(ctx,
		`SELECT id, user_id, url, title, summary, tags, status, date_accessed, created_at, updated_at
 FROM links WHERE id=$1 AND user_id=$2`,
		id, userID,
	).Scan(&link.ID, &link.UserID, &link.URL, &link.Title, &link.Summary, &tags, &link.Status, &link.DateAccessed, &link.CreatedAt, &link.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Link{}, models.ErrLinkNotFound
	}
	link.Tags = tags
	return link, err
}

func (s *Postgres) ListLinks(ctx context.Context, userID string) ([]models.Link, error) {
	rows, err := s.DB.QueryContext(ctx,
		`SELECT id, user_id, url, title, summary, tags, status, date_accessed, created_at, updated_at
 FROM links WHERE user_id=$1 ORDER BY created_at DESC`,
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []models.Link
	for rows.Next() {
		var link models.Link
		var tags pq.StringArray
		if err := rows.Scan(&link.ID, &link.UserID, &link.URL, &link.Title, &link.Summary, &tags, &link.Status, &link.DateAccessed, &link.CreatedAt, &link.UpdatedAt); err != nil {
			return nil, err
		}
		link.Tags = tags
		out = append(out, link)
	}
	return out, rows.Err()
}

func (s *Postgres) DeleteLink(ctx context.Context, id, userID string) error {
	res, err := s.DB.ExecContext(ctx, `DELETE FROM links WHERE id=$1 AND user_id=$2`, id, userID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return models.ErrLinkNotFound
	}
	return nil
}

func (s *Postgres) CreateUser(ctx context.Context, email, passwordHash string) error {
	_, err := s.DB.ExecContext(ctx, `INSERT INTO users (email, password_hash) VALUES ($1,$2)`, email, passwordHash)
	return err
}

func (s *Postgres) GetUserByEmail(ctx context.Context, email string) (id, hash string, err error) {
	err = s.DB.QueryRowContext(ctx, `SELECT id, password_hash FROM users WHERE email=$1`, email).Scan(&id, &hash)
	if errors.Is(err, sql.ErrNoRows) {
		err = models.ErrUserNotFound
	}
	return
}

func (s *Postgres) SaveIngestKey(ctx context.Context, key, userID string) error {
	_, err := s.DB.ExecContext(ctx, `INSERT INTO ingest_keys (key, user_id) VALUES ($1,$2)`, key, userID)
	return err
}

func (s *Postgres) UserByIngestKey(ctx context.Context, key string) (string, error) {
	var id string
	err := s.DB.QueryRowContext(ctx, `SELECT user_id FROM ingest_keys WHERE key=$1`, key).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return "", models.ErrUserNotFound
	}
	return id, err
}
