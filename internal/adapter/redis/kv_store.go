package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Abdurahmanit/GroupProject/sharaya-service/internal/app/config"
	"github.com/Abdurahmanit/GroupProject/sharaya-service/internal/repository"
	"github.com/redis/go-redis/v9"
)

const pingTimeout = 5 * time.Second

// KVStore keeps each key as a plain redis string with no expiry.
type KVStore struct {
	client redis.Cmdable
	prefix string
	owned  *redis.Client
}

func NewKVStore(client redis.Cmdable, keyPrefix string) *KVStore {
	return &KVStore{client: client, prefix: keyPrefix}
}

// Open dials cfg.Addr and returns a store that owns the client. The server
// must answer a PING before Open returns.
func Open(ctx context.Context, cfg config.RedisConfig, keyPrefix string) (*KVStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:        cfg.Addr,
		Password:    cfg.Password,
		DB:          cfg.DB,
		ClientName:  "sharaya-state",
		DialTimeout: pingTimeout,
	})

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis at %s did not answer ping: %w", cfg.Addr, err)
	}

	s := NewKVStore(client, keyPrefix)
	s.owned = client
	return s, nil
}

// Close releases a client opened by Open. Stores built with NewKVStore leave
// the client to the caller.
func (s *KVStore) Close() error {
	if s.owned == nil {
		return nil
	}
	if err := s.owned.Close(); err != nil && !errors.Is(err, redis.ErrClosed) {
		return err
	}
	return nil
}

func (s *KVStore) redisKey(key string) string {
	return s.prefix + key
}

func (s *KVStore) Get(ctx context.Context, key string) (string, error) {
	val, err := s.client.Get(ctx, s.redisKey(key)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", repository.ErrNotFound
		}
		return "", repository.NewStorageError(repository.OpRead, key, err)
	}
	return val, nil
}

func (s *KVStore) Set(ctx context.Context, key, value string) error {
	if err := s.client.Set(ctx, s.redisKey(key), value, 0).Err(); err != nil {
		return repository.NewStorageError(repository.OpWrite, key, err)
	}
	return nil
}

func (s *KVStore) Remove(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.redisKey(key)).Err(); err != nil {
		return repository.NewStorageError(repository.OpRemove, key, err)
	}
	return nil
}
