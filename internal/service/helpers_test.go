package service

import (
	"context"
	"testing"
	"time"

	"github.com/Abdurahmanit/GroupProject/sharaya-service/internal/adapter/memory"
	"github.com/Abdurahmanit/GroupProject/sharaya-service/internal/catalog"
	"github.com/Abdurahmanit/GroupProject/sharaya-service/internal/domain/entity"
	"github.com/Abdurahmanit/GroupProject/sharaya-service/internal/platform/logger"
	"github.com/Abdurahmanit/GroupProject/sharaya-service/internal/repository"
	"github.com/Abdurahmanit/GroupProject/sharaya-service/internal/state"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

type MockKeyValueStore struct {
	mock.Mock
}

func (m *MockKeyValueStore) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockKeyValueStore) Set(ctx context.Context, key, value string) error {
	args := m.Called(ctx, key, value)
	return args.Error(0)
}

func (m *MockKeyValueStore) Remove(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

type testEnv struct {
	kv      repository.KeyValueStore
	cols    *state.Collections
	catalog *catalog.Catalog
	log     logger.Logger
}

func newTestEnv(t *testing.T) *testEnv {
	return newTestEnvWithStore(t, memory.NewKVStore())
}

func newTestEnvWithStore(t *testing.T, kv repository.KeyValueStore) *testEnv {
	t.Helper()
	cat, err := catalog.LoadDefault()
	require.NoError(t, err)
	store := state.NewStore(kv, logger.NewNop(), state.WithClock(func() time.Time { return fixedNow }))
	return &testEnv{
		kv:      kv,
		cols:    state.NewCollections(store),
		catalog: cat,
		log:     logger.NewNop(),
	}
}

var tenDollars = entity.MustParsePrice("$10")
