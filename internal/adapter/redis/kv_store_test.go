package redis

import (
	"context"
	"testing"
	"time"

	"github.com/Abdurahmanit/GroupProject/sharaya-service/internal/app/config"
	"github.com/Abdurahmanit/GroupProject/sharaya-service/internal/repository"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

func unreachableClient() *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
}

func TestKVStore_UnreachableServerIsStorageError(t *testing.T) {
	client := unreachableClient()
	defer client.Close()
	store := NewKVStore(client, "test:")
	ctx := context.Background()

	_, err := store.Get(ctx, repository.KeyCart)
	assert.ErrorIs(t, err, repository.ErrStorageRead)
	assert.NotErrorIs(t, err, repository.ErrNotFound)

	err = store.Set(ctx, repository.KeyCart, "[]")
	assert.ErrorIs(t, err, repository.ErrStorageWrite)

	err = store.Remove(ctx, repository.KeyCart)
	assert.ErrorIs(t, err, repository.ErrStorageRemove)
}

func TestKVStore_KeyPrefix(t *testing.T) {
	s := &KVStore{prefix: "sharaya:"}
	assert.Equal(t, "sharaya:cartItems", s.redisKey(repository.KeyCart))
}

func TestOpen_UnreachableServer(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	store, err := Open(ctx, config.RedisConfig{Addr: "127.0.0.1:1"}, "test:")
	assert.Nil(t, store)
	assert.ErrorContains(t, err, "redis at 127.0.0.1:1 did not answer ping")
}

func TestKVStore_CloseLeavesBorrowedClientOpen(t *testing.T) {
	client := unreachableClient()
	defer client.Close()

	assert.NoError(t, NewKVStore(client, "test:").Close())
	assert.NotErrorIs(t, client.Close(), redis.ErrClosed)
}
