package store

import (
	"bytes"
	"context"
	"encoding/gob"
	"errors"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

var (
	ErrNotFound = errors.New("value not found")
	ErrBadKey   = errors.New("bad key for store")
)

type entry struct {
	value   []byte
	touched time.Time
}

// Store keeps gob-encoded values in memory. Every Get hands out a fresh
// decoded copy, so callers never share state through the store. Entries
// that have not been touched for the configured TTL are dropped by Evict.
type Store[T any] struct {
	mu      sync.Mutex
	entries map[string]entry
	ttl     time.Duration
	now     func() time.Time
}

// New creates an empty store. A non-positive ttl disables eviction.
func New[T any](ttl time.Duration) *Store[T] {
	return &Store[T]{
		entries: make(map[string]entry),
		ttl:     ttl,
		now:     time.Now,
	}
}

func encode[T any](value T) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(value); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func decode[T any](data []byte, value *T) error {
	return gob.NewDecoder(bytes.NewReader(data)).Decode(value)
}

// Retrieve a value from the store. If key is not present, [ErrNotFound] is
// returned.
func (s *Store[T]) Get(key string, value *T) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	if !ok {
		return ErrNotFound
	}
	e.touched = s.now()
	s.entries[key] = e
	return decode(e.value, value)
}

// Inserts a new key-value pair or updates an existing one.
func (s *Store[T]) Set(key string, value T) error {
	if key == "" {
		return ErrBadKey
	}
	b, err := encode(value)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[key] = entry{value: b, touched: s.now()}
	return nil
}

// Update decodes the value under key, passes it to fn and stores the result.
// The store is locked for the duration of fn, so updates to one store are
// serialized. If fn returns an error nothing is stored and the error is
// returned as is.
func (s *Store[T]) Update(key string, fn func(value *T) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	if !ok {
		return ErrNotFound
	}
	var value T
	if err := decode(e.value, &value); err != nil {
		return err
	}
	if err := fn(&value); err != nil {
		return err
	}
	b, err := encode(value)
	if err != nil {
		return err
	}
	s.entries[key] = entry{value: b, touched: s.now()}
	return nil
}

// Deletes key from store without checking if it existed.
func (s *Store[T]) Delete(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.entries, key)
}

func (s *Store[T]) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.entries)
}

func (s *Store[T]) Keys() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return slices.Collect(maps.Keys(s.entries))
}

// Evict drops entries idle for longer than the TTL and returns how many were
// dropped.
func (s *Store[T]) Evict() int {
	if s.ttl <= 0 {
		return 0
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	deadline := s.now().Add(-s.ttl)
	n := 0
	for key, e := range s.entries {
		if e.touched.Before(deadline) {
			delete(s.entries, key)
			n++
		}
	}
	return n
}

// Run evicts idle entries every interval until ctx is done.
func (s *Store[T]) Run(ctx context.Context, interval time.Duration, log logrus.FieldLogger) error {
	if s.ttl <= 0 || interval <= 0 {
		log.Debug("session eviction disabled")
		<-ctx.Done()
		return nil
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if n := s.Evict(); n > 0 {
				log.WithFields(logrus.Fields{
					"evicted": n,
					"left":    s.Count(),
				}).Info("evicted idle sessions")
			}
		}
	}
}
