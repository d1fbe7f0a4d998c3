package memory

import (
	"context"
	"sync"

	"github.com/Abdurahmanit/GroupProject/sharaya-service/internal/repository"
)

type kvStore struct {
	mu   sync.RWMutex
	data map[string]string
}

// NewKVStore returns a process-local store. Contents are lost on restart.
func NewKVStore() repository.KeyValueStore {
	return &kvStore{data: make(map[string]string)}
}

func (s *kvStore) Get(ctx context.Context, key string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", repository.NewStorageError(repository.OpRead, key, err)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.data[key]
	if !ok {
		return "", repository.ErrNotFound
	}
	return v, nil
}

func (s *kvStore) Set(ctx context.Context, key, value string) error {
	if err := ctx.Err(); err != nil {
		return repository.NewStorageError(repository.OpWrite, key, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data[key] = value
	return nil
}

func (s *kvStore) Remove(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return repository.NewStorageError(repository.OpRemove, key, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.data, key)
	return nil
}
