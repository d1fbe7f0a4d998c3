// Package state owns the in-memory view of every persisted collection and the
// read-modify-write cycle that keeps it in step with the key-value store.
package state

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/Abdurahmanit/GroupProject/sharaya-service/internal/platform/logger"
	"github.com/Abdurahmanit/GroupProject/sharaya-service/internal/platform/metrics"
	"github.com/Abdurahmanit/GroupProject/sharaya-service/internal/repository"
)

var (
	ErrDecode = errors.New("stored collection is not valid JSON")
	ErrEncode = errors.New("collection could not be encoded")
)

// ChangeEvent is emitted after a collection is persisted.
type ChangeEvent struct {
	Key string    `json:"key"`
	At  time.Time `json:"at"`
}

type ChangePublisher interface {
	PublishChange(ctx context.Context, event ChangeEvent) error
}

type Store struct {
	kv        repository.KeyValueStore
	log       logger.Logger
	publisher ChangePublisher
	metrics   *metrics.MetricsManager
	now       func() time.Time

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

type StoreOption func(*Store)

func WithPublisher(p ChangePublisher) StoreOption {
	return func(s *Store) { s.publisher = p }
}

func WithMetrics(m *metrics.MetricsManager) StoreOption {
	return func(s *Store) { s.metrics = m }
}

func WithClock(now func() time.Time) StoreOption {
	return func(s *Store) { s.now = now }
}

func NewStore(kv repository.KeyValueStore, log logger.Logger, opts ...StoreOption) *Store {
	s := &Store{
		kv:    kv,
		log:   log,
		now:   time.Now,
		locks: make(map[string]*sync.Mutex),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Now is the store's clock, shared with services so timestamps are testable.
func (s *Store) Now() time.Time {
	return s.now().UTC()
}

// lock serialises read-modify-write cycles on one key within this process.
func (s *Store) lock(key string) func() {
	s.mu.Lock()
	l, ok := s.locks[key]
	if !ok {
		l = &sync.Mutex{}
		s.locks[key] = l
	}
	s.mu.Unlock()

	l.Lock()
	return l.Unlock
}

func (s *Store) afterWrite(ctx context.Context, key string) {
	if s.metrics != nil {
		s.metrics.CollectionUpdates.WithLabelValues(metricKey(key)).Inc()
	}
	if s.publisher == nil {
		return
	}
	event := ChangeEvent{Key: key, At: s.Now()}
	if err := s.publisher.PublishChange(ctx, event); err != nil {
		s.log.Warnf("Failed to publish change event for key %s: %v", key, err)
	}
}

// metricKey folds per-product review keys into one label value.
func metricKey(key string) string {
	if strings.HasPrefix(key, repository.ReviewsKey("")) {
		return repository.ReviewsKey("*")
	}
	return key
}
