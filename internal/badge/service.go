// Package badge answers the public "is this seller verified" question. The
// flag is read far more often than it changes, so answers are cached in Redis
// and concurrent misses for the same subject are collapsed.
package badge

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"

	platformredis "vouch/internal/platform/redis"
	"vouch/internal/verification/models"
)

const keyPrefix = "badge:"

// RecordReader is the slice of the verification service the badge needs.
type RecordReader interface {
	Get(ctx context.Context, subjectID string) (*models.Record, error)
}

type Service struct {
	records RecordReader
	cache   *platformredis.Client
	ttl     time.Duration
	group   singleflight.Group
	logger  *slog.Logger
}

// New builds a badge service. cache may be nil, in which case every read goes
// to the record store.
func New(records RecordReader, cache *platformredis.Client, ttl time.Duration, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Service{records: records, cache: cache, ttl: ttl, logger: logger}
}

// IsVerified reports whether the subject currently holds the verified flag.
// A cache outage degrades to direct reads rather than failing the request.
func (s *Service) IsVerified(ctx context.Context, subjectID string) (bool, error) {
	if s.cache == nil {
		return s.load(ctx, subjectID)
	}

	cached, err := s.cache.Get(ctx, keyPrefix+subjectID).Result()
	switch {
	case err == nil:
		return cached == "1", nil
	case !errors.Is(err, redis.Nil):
		s.logger.WarnContext(ctx, "badge cache read failed", "subject_id", subjectID, "error", err)
	}

	v, err, _ := s.group.Do(subjectID, func() (any, error) {
		verified, err := s.load(ctx, subjectID)
		if err != nil {
			return false, err
		}
		value := "0"
		if verified {
			value = "1"
		}
		if err := s.cache.Set(ctx, keyPrefix+subjectID, value, s.ttl).Err(); err != nil {
			s.logger.WarnContext(ctx, "badge cache write failed", "subject_id", subjectID, "error", err)
		}
		return verified, nil
	})
	if err != nil {
		return false, err
	}
	return v.(bool), nil
}

// Invalidate drops the cached flag after an editor changes it.
func (s *Service) Invalidate(ctx context.Context, subjectID string) error {
	if s.cache == nil {
		return nil
	}
	if err := s.cache.Del(ctx, keyPrefix+subjectID).Err(); err != nil {
		return fmt.Errorf("invalidate badge cache: %w", err)
	}
	return nil
}

func (s *Service) load(ctx context.Context, subjectID string) (bool, error) {
	rec, err := s.records.Get(ctx, subjectID)
	if err != nil {
		return false, err
	}
	return rec.Verified, nil
}
