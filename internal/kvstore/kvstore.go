// Package kvstore stores typed values as JSON documents on top of a byte
// backend. Reads never fail: a missing, unreadable or corrupt entry yields
// the caller's fallback and a warning in the log.
package kvstore

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/cpower013/quickjobs-site-1/internal/common"
	"github.com/cpower013/quickjobs-site-1/internal/logging"
)

// Backend is the byte store the adapter writes through.
type Backend interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	SetMany(ctx context.Context, entries map[string][]byte) error
	Delete(ctx context.Context, key string) error
	List(ctx context.Context) (map[string][]byte, error)
	Clear(ctx context.Context) error
}

type Store struct {
	backend Backend
	log     logging.Logger
}

func New(b Backend, log logging.Logger) *Store {
	return &Store{backend: b, log: log}
}

// Get decodes the value stored under key into T.
func Get[T any](ctx context.Context, s *Store, key string, fallback T) T {
	raw, err := s.backend.Get(ctx, key)
	if err != nil {
		s.log.Warn(ctx, "read failed, using fallback", "key", key, "err", err)
		return fallback
	}
	if len(raw) == 0 {
		return fallback
	}

	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		s.log.Warn(ctx, "read failed, using fallback", "key", key,
			"err", fmt.Errorf("%w: %w", common.ErrDecodeFailure, err))
		return fallback
	}
	return v
}

func (s *Store) Set(ctx context.Context, key string, value any) error {
	b, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := s.backend.Set(ctx, key, b); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

// SetMany encodes every value first and then writes them in one backend
// call, so nothing is written if any value fails to encode.
func (s *Store) SetMany(ctx context.Context, values map[string]any) error {
	entries := make(map[string][]byte, len(values))
	for k, v := range values {
		b, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("encode %s: %w", k, err)
		}
		entries[k] = b
	}
	if err := s.backend.SetMany(ctx, entries); err != nil {
		return fmt.Errorf("write batch: %w", err)
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	if err := s.backend.Delete(ctx, key); err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}

// Export returns every stored document keyed by name. Entries that are not
// valid JSON are skipped with a warning.
func (s *Store) Export(ctx context.Context) (map[string]json.RawMessage, error) {
	all, err := s.backend.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}

	out := make(map[string]json.RawMessage, len(all))
	for k, v := range all {
		if !json.Valid(v) {
			s.log.Warn(ctx, "skipping undecodable entry", "key", k,
				"err", common.ErrDecodeFailure)
			continue
		}
		out[k] = json.RawMessage(v)
	}
	return out, nil
}

// Reset removes every stored document.
func (s *Store) Reset(ctx context.Context) error {
	if err := s.backend.Clear(ctx); err != nil {
		return fmt.Errorf("clear entries: %w", err)
	}
	s.log.Info(ctx, "store cleared")
	return nil
}
