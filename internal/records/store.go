package records

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"mizman/internal/storage"
)

const DateLayout = "2006-01-02"

var ErrInvalidDate = errors.New("date must be YYYY-MM-DD")

// ValidDate reports whether s is a canonical ISO calendar date.
func ValidDate(s string) bool {
	t, err := time.Parse(DateLayout, s)
	return err == nil && t.Format(DateLayout) == s
}

// Store maps ISO dates to per-pillar records and persists the whole mapping
// as one JSON object under a single namespaced key.
type Store[R any] struct {
	kv  storage.KV
	key string
}

func New[R any](kv storage.KV, key string) *Store[R] {
	return &Store[R]{kv: kv, key: key}
}

// Load never fails: missing or malformed data yields an empty mapping.
// Entries whose key is not a valid date are dropped.
func (s *Store[R]) Load(ctx context.Context) map[string]R {
	m, ok := decodeOrEmpty[map[string]R](ctx, s.kv, s.key)
	if !ok || m == nil {
		return make(map[string]R)
	}
	for date := range m {
		if !ValidDate(date) {
			log.Printf("⚠️ Dropping %s entry with invalid date %q", s.key, date)
			delete(m, date)
		}
	}
	return m
}

// Save overwrites the stored mapping.
func (s *Store[R]) Save(ctx context.Context, m map[string]R) error {
	if m == nil {
		m = make(map[string]R)
	}
	data, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("encode %s: %w", s.key, err)
	}
	return s.kv.Set(ctx, s.key, string(data))
}

func (s *Store[R]) Get(ctx context.Context, date string) (R, bool) {
	r, ok := s.Load(ctx)[date]
	return r, ok
}

// Upsert replaces the record for date, keeps every other date, and persists
// through SaveOrLog. The returned snapshot includes the change even when the
// write was dropped.
func (s *Store[R]) Upsert(ctx context.Context, date string, rec R) (map[string]R, error) {
	if !ValidDate(date) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidDate, date)
	}
	m := s.Load(ctx)
	m[date] = rec

	data, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", s.key, err)
	}
	SaveOrLog(ctx, s.kv, s.key, string(data))
	return m, nil
}
