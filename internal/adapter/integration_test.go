//go:build integration

package adapter_test

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"testing"
	"time"

	mongoadapter "github.com/Abdurahmanit/GroupProject/sharaya-service/internal/adapter/mongo"
	natsadapter "github.com/Abdurahmanit/GroupProject/sharaya-service/internal/adapter/nats"
	redisadapter "github.com/Abdurahmanit/GroupProject/sharaya-service/internal/adapter/redis"
	"github.com/Abdurahmanit/GroupProject/sharaya-service/internal/app/config"
	"github.com/Abdurahmanit/GroupProject/sharaya-service/internal/catalog"
	"github.com/Abdurahmanit/GroupProject/sharaya-service/internal/domain/entity"
	"github.com/Abdurahmanit/GroupProject/sharaya-service/internal/platform/logger"
	"github.com/Abdurahmanit/GroupProject/sharaya-service/internal/repository"
	"github.com/Abdurahmanit/GroupProject/sharaya-service/internal/state"
	"github.com/nats-io/nats.go"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	testRedis   config.RedisConfig
	testMongo   config.MongoDBConfig
	testNatsURL string
	testLog     = logger.NewNop()
)

func TestMain(m *testing.M) {
	pool, err := dockertest.NewPool("")
	if err != nil {
		log.Fatalf("Could not construct pool: %s", err)
	}
	if err = pool.Client.Ping(); err != nil {
		log.Fatalf("Could not connect to Docker: %s", err)
	}

	hostConfig := func(config *docker.HostConfig) {
		config.AutoRemove = true
		config.RestartPolicy = docker.RestartPolicy{Name: "no"}
	}

	redisResource, err := pool.RunWithOptions(&dockertest.RunOptions{Repository: "redis", Tag: "7-alpine"}, hostConfig)
	if err != nil {
		log.Fatalf("Could not start Redis resource: %s", err)
	}
	mongoResource, err := pool.RunWithOptions(&dockertest.RunOptions{Repository: "mongo", Tag: "6.0"}, hostConfig)
	if err != nil {
		log.Fatalf("Could not start MongoDB resource: %s", err)
	}
	natsResource, err := pool.RunWithOptions(&dockertest.RunOptions{Repository: "nats", Tag: "2.10"}, hostConfig)
	if err != nil {
		log.Fatalf("Could not start NATS resource: %s", err)
	}
	testNatsURL = fmt.Sprintf("nats://%s", natsResource.GetHostPort("4222/tcp"))
	testRedis = config.RedisConfig{Addr: redisResource.GetHostPort("6379/tcp")}
	testMongo = config.MongoDBConfig{
		URI:      fmt.Sprintf("mongodb://%s", mongoResource.GetHostPort("27017/tcp")),
		Database: "sharaya_it",
	}

	ctx := context.Background()
	if err := pool.Retry(func() error {
		store, errRetry := redisadapter.Open(ctx, testRedis, "")
		if errRetry != nil {
			return errRetry
		}
		return store.Close()
	}); err != nil {
		log.Fatalf("Could not connect to Redis: %s", err)
	}
	if err := pool.Retry(func() error {
		store, errRetry := mongoadapter.Open(ctx, testMongo)
		if errRetry != nil {
			return errRetry
		}
		return store.Close(ctx)
	}); err != nil {
		log.Fatalf("Could not connect to MongoDB: %s", err)
	}
	if err := pool.Retry(func() error {
		nc, errRetry := nats.Connect(testNatsURL)
		if errRetry != nil {
			return errRetry
		}
		nc.Close()
		return nil
	}); err != nil {
		log.Fatalf("Could not connect to NATS: %s", err)
	}

	code := m.Run()

	for _, r := range []*dockertest.Resource{redisResource, mongoResource, natsResource} {
		if err := pool.Purge(r); err != nil {
			log.Printf("Could not purge resource: %s", err)
		}
	}
	os.Exit(code)
}

func backends(t *testing.T) map[string]repository.KeyValueStore {
	t.Helper()
	ctx := context.Background()

	r, err := redisadapter.Open(ctx, testRedis, fmt.Sprintf("it-%d:", time.Now().UnixNano()))
	require.NoError(t, err)
	t.Cleanup(func() { _ = r.Close() })

	mcfg := testMongo
	mcfg.Collection = fmt.Sprintf("kv_%d", time.Now().UnixNano())
	m, err := mongoadapter.Open(ctx, mcfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = m.Close(context.Background()) })

	return map[string]repository.KeyValueStore{"redis": r, "mongo": m}
}

func TestKeyValueStore_Contract(t *testing.T) {
	ctx := context.Background()
	for name, kv := range backends(t) {
		t.Run(name, func(t *testing.T) {
			_, err := kv.Get(ctx, repository.KeyFavorites)
			assert.ErrorIs(t, err, repository.ErrNotFound)

			require.NoError(t, kv.Set(ctx, repository.KeyFavorites, `[]`))
			require.NoError(t, kv.Set(ctx, repository.KeyFavorites, `[{"id":"1"}]`))
			v, err := kv.Get(ctx, repository.KeyFavorites)
			require.NoError(t, err)
			assert.Equal(t, `[{"id":"1"}]`, v)

			require.NoError(t, kv.Remove(ctx, repository.KeyFavorites))
			require.NoError(t, kv.Remove(ctx, repository.KeyFavorites))
			_, err = kv.Get(ctx, repository.KeyFavorites)
			assert.ErrorIs(t, err, repository.ErrNotFound)
		})
	}
}

func TestCollections_SurviveRestart(t *testing.T) {
	ctx := context.Background()
	cat, err := catalog.LoadDefault()
	require.NoError(t, err)
	lehenga, err := cat.Product("1")
	require.NoError(t, err)

	for name, kv := range backends(t) {
		t.Run(name, func(t *testing.T) {
			first := state.NewCollections(state.NewStore(kv, testLog))
			_, err := first.Cart.Update(ctx, func(c *entity.Cart) error {
				_, err := c.AddItem(lehenga, "M", time.Now())
				return err
			})
			require.NoError(t, err)
			_, err = first.Named.Update(ctx, func(cols *entity.Collections) error {
				_, err := cols.CreateWithItem("Wedding", lehenga, time.Now())
				return err
			})
			require.NoError(t, err)

			second := state.NewCollections(state.NewStore(kv, testLog))
			cart, err := second.Cart.Load(ctx)
			require.NoError(t, err)
			require.Len(t, cart.Lines, 1)
			assert.Equal(t, "$500.00", cart.Lines[0].Product.Price.String())

			cols, err := second.Named.Load(ctx)
			require.NoError(t, err)
			wedding, _ := cols.Find("wedding")
			require.NotNil(t, wedding)
			assert.True(t, wedding.Contains("1"))
		})
	}
}

func TestPublisher_ChangeEventsReachSubscribers(t *testing.T) {
	conn, err := nats.Connect(testNatsURL)
	require.NoError(t, err)
	defer conn.Close()

	sub, err := conn.SubscribeSync("sharaya-it.state.changed")
	require.NoError(t, err)
	require.NoError(t, conn.Flush())

	pub, err := natsadapter.Connect(config.NATSConfig{URL: testNatsURL, SubjectPrefix: "sharaya-it"}, testLog)
	require.NoError(t, err)
	defer pub.Close()

	cols := state.NewCollections(state.NewStore(backends(t)["redis"], testLog, state.WithPublisher(pub)))
	_, err = cols.LikedPosts.Update(context.Background(), func(l *entity.LikedPosts) error {
		l.Toggle("post-1")
		return nil
	})
	require.NoError(t, err)

	msg, err := sub.NextMsg(5 * time.Second)
	require.NoError(t, err)
	var event state.ChangeEvent
	require.NoError(t, json.Unmarshal(msg.Data, &event))
	assert.Equal(t, repository.KeyLikedPosts, event.Key)
}
