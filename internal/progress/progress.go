// Package progress persists the last submitted choice per question number.
//
// The whole mapping is stored as one JSON object {"<q_num>": "<letter>"}
// under a single namespace of a key-value Backend and is rewritten on every
// save.
package progress

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"

	"go.uber.org/zap"
)

// DefaultNamespace is the storage key the mapping is kept under.
const DefaultNamespace = "saa_solved"

// Backend is a persistent key-value store.
type Backend interface {
	// Get returns the value stored under key. ok is false when absent.
	Get(ctx context.Context, key string) (value string, ok bool, err error)

	// Put stores value under key, replacing any previous value.
	Put(ctx context.Context, key, value string) error
}

// Store holds the in-memory progress mapping and writes it through to a
// Backend.
type Store struct {
	backend   Backend
	namespace string
	entries   map[int]string
	log       *zap.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithNamespace overrides DefaultNamespace.
func WithNamespace(ns string) Option {
	return func(s *Store) {
		if ns != "" {
			s.namespace = ns
		}
	}
}

// WithLogger sets the logger used to report discarded state.
func WithLogger(log *zap.Logger) Option {
	return func(s *Store) {
		if log != nil {
			s.log = log
		}
	}
}

// Load reads persisted progress from backend. Unreadable or corrupted state
// is logged and replaced with an empty mapping; Load never fails.
func Load(ctx context.Context, backend Backend, opts ...Option) *Store {
	s := &Store{
		backend:   backend,
		namespace: DefaultNamespace,
		entries:   make(map[int]string),
		log:       zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	raw, ok, err := backend.Get(ctx, s.namespace)
	if err != nil {
		s.log.Warn("progress unreadable, starting empty",
			zap.String("namespace", s.namespace), zap.Error(err))
		return s
	}
	if !ok || raw == "" {
		return s
	}

	entries, err := decode(raw)
	if err != nil {
		s.log.Warn("progress corrupted, starting empty",
			zap.String("namespace", s.namespace), zap.Error(err))
		return s
	}
	s.entries = entries
	return s
}

// Get returns the saved choice for qNum, or "" if none.
func (s *Store) Get(qNum int) string {
	return s.entries[qNum]
}

// Save upserts the choice for qNum and persists the full mapping.
func (s *Store) Save(ctx context.Context, qNum int, choice string) error {
	s.entries[qNum] = choice

	raw, err := encode(s.entries)
	if err != nil {
		return fmt.Errorf("encode progress: %w", err)
	}
	if err := s.backend.Put(ctx, s.namespace, raw); err != nil {
		return fmt.Errorf("persist progress: %w", err)
	}
	return nil
}

// Len returns the number of answered questions.
func (s *Store) Len() int { return len(s.entries) }

// All returns a copy of the mapping.
func (s *Store) All() map[int]string {
	out := make(map[int]string, len(s.entries))
	for k, v := range s.entries {
		out[k] = v
	}
	return out
}

// Numbers returns the answered question numbers in ascending order.
func (s *Store) Numbers() []int {
	nums := make([]int, 0, len(s.entries))
	for k := range s.entries {
		nums = append(nums, k)
	}
	sort.Ints(nums)
	return nums
}

func encode(entries map[int]string) (string, error) {
	m := make(map[string]string, len(entries))
	for k, v := range entries {
		m[strconv.Itoa(k)] = v
	}
	b, err := json.Marshal(m)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// decode parses the persisted mapping. Keys that are not integers are
// dropped; a malformed document is an error.
func decode(raw string) (map[int]string, error) {
	var m map[string]string
	if err := json.Unmarshal([]byte(raw), &m); err != nil {
		return nil, err
	}
	out := make(map[int]string, len(m))
	for k, v := range m {
		n, err := strconv.Atoi(k)
		if err != nil {
			continue
		}
		out[n] = v
	}
	return out, nil
}
