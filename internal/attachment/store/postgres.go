package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"vouch/internal/attachment"
	"vouch/pkg/platform/sentinel"
)

// PostgresStore persists the attachment catalog in PostgreSQL. Deployments
// sync it from the platform's media library so resolution stays local.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed attachment catalog.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Put upserts an attachment catalog entry.
func (s *PostgresStore) Put(ctx context.Context, att *attachment.Attachment) error {
	if att == nil {
		return fmt.Errorf("attachment is required")
	}
	query := `
		INSERT INTO attachments (id, owner_id, url)
		VALUES ($1, $2, $3)
		ON CONFLICT (id) DO UPDATE SET
			owner_id = EXCLUDED.owner_id,
			url = EXCLUDED.url
	`
	_, err := s.db.ExecContext(ctx, query, att.ID, att.OwnerID, att.URL)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("attachment id already registered: %w", sentinel.ErrConflict)
		}
		return fmt.Errorf("put attachment: %w", err)
	}
	return nil
}

// Resolve retrieves an attachment by id.
func (s *PostgresStore) Resolve(ctx context.Context, id int64) (*attachment.Attachment, error) {
	query := `
		SELECT id, owner_id, url
		FROM attachments
		WHERE id = $1
	`
	var att attachment.Attachment
	err := s.db.QueryRowContext(ctx, query, id).Scan(&att.ID, &att.OwnerID, &att.URL)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("resolve attachment: %w", err)
	}
	return &att, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}
