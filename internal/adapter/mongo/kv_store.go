package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Abdurahmanit/GroupProject/sharaya-service/internal/app/config"
	"github.com/Abdurahmanit/GroupProject/sharaya-service/internal/repository"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const openTimeout = 10 * time.Second

type kvDocument struct {
	Key       string    `bson:"_id"`
	Value     string    `bson:"value"`
	UpdatedAt time.Time `bson:"updated_at"`
}

// KVStore stores one document per key, using the key as _id.
type KVStore struct {
	collection *mongo.Collection
	owned      *mongo.Client
}

func NewKVStore(db *mongo.Database, collectionName string) *KVStore {
	return &KVStore{collection: db.Collection(collectionName)}
}

// Open connects to cfg.URI and returns a store on cfg.Database and
// cfg.Collection that owns the client. The primary must answer before Open
// returns.
func Open(ctx context.Context, cfg config.MongoDBConfig) (*KVStore, error) {
	opts := options.Client().
		ApplyURI(cfg.URI).
		SetAppName("sharaya-state").
		SetServerSelectionTimeout(openTimeout)
	if cfg.User != "" {
		opts.SetAuth(options.Credential{Username: cfg.User, Password: cfg.Password})
	}

	openCtx, cancel := context.WithTimeout(ctx, openTimeout)
	defer cancel()

	client, err := mongo.Connect(openCtx, opts)
	if err != nil {
		return nil, fmt.Errorf("mongodb client for %s: %w", cfg.Database, err)
	}
	if err := client.Ping(openCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongodb primary did not answer ping: %w", err)
	}

	s := NewKVStore(client.Database(cfg.Database), cfg.Collection)
	s.owned = client
	return s, nil
}

// Close disconnects a client opened by Open.
func (s *KVStore) Close(ctx context.Context) error {
	if s.owned == nil {
		return nil
	}
	if err := s.owned.Disconnect(ctx); err != nil && !errors.Is(err, mongo.ErrClientDisconnected) {
		return err
	}
	return nil
}

func (s *KVStore) Get(ctx context.Context, key string) (string, error) {
	var doc kvDocument
	err := s.collection.FindOne(ctx, bson.M{"_id": key}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return "", repository.ErrNotFound
		}
		return "", repository.NewStorageError(repository.OpRead, key, err)
	}
	return doc.Value, nil
}

func (s *KVStore) Set(ctx context.Context, key, value string) error {
	update := bson.M{
		"$set": bson.M{
			"value":      value,
			"updated_at": time.Now().UTC(),
		},
	}
	opts := options.Update().SetUpsert(true)
	if _, err := s.collection.UpdateOne(ctx, bson.M{"_id": key}, update, opts); err != nil {
		return repository.NewStorageError(repository.OpWrite, key, err)
	}
	return nil
}

func (s *KVStore) Remove(ctx context.Context, key string) error {
	if _, err := s.collection.DeleteOne(ctx, bson.M{"_id": key}); err != nil {
		return repository.NewStorageError(repository.OpRemove, key, err)
	}
	return nil
}
