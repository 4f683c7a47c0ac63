package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// PostgresStore backs metadata with the user_meta table.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Get(ctx context.Context, subjectID, key string) (string, error) {
	var value string
	err := s.db.QueryRowContext(ctx,
		`SELECT meta_value FROM user_meta WHERE user_id = $1 AND meta_key = $2`,
		subjectID, key,
	).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("get user meta: %w", err)
	}
	return value, nil
}

func (s *PostgresStore) Set(ctx context.Context, subjectID, key, value string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO user_meta (user_id, meta_key, meta_value)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (user_id, meta_key)
		 DO UPDATE SET meta_value = EXCLUDED.meta_value, updated_at = now()`,
		subjectID, key, value,
	)
	if err != nil {
		return fmt.Errorf("set user meta: %w", err)
	}
	return nil
}
