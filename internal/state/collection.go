package state

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/Abdurahmanit/GroupProject/sharaya-service/internal/repository"
)

// Collection is a typed view of the JSON value stored under one key.
type Collection[T any] struct {
	store *Store
	key   string
	def   func() T

	mu     sync.RWMutex
	cached T
	loaded bool

	subsMu sync.Mutex
	subs   map[int]func(key string, v T)
	nextID int
}

// NewCollection binds a key to a default constructor used when the key is absent.
func NewCollection[T any](store *Store, key string, def func() T) *Collection[T] {
	return &Collection[T]{
		store: store,
		key:   key,
		def:   def,
		subs:  make(map[int]func(string, T)),
	}
}

func (c *Collection[T]) Key() string {
	return c.key
}

// Load reads the stored value. A missing key yields the default and writes nothing.
func (c *Collection[T]) Load(ctx context.Context) (T, error) {
	v, err := c.read(ctx)
	if err != nil {
		var zero T
		return zero, err
	}
	c.setCached(v)
	return v, nil
}

// Cached returns the last value seen by Load or a successful write.
func (c *Collection[T]) Cached() (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.cached, c.loaded
}

// Update runs fn on a freshly decoded value and persists the result. If fn,
// encoding or the store fails, nothing is written and the cached value is kept.
func (c *Collection[T]) Update(ctx context.Context, fn func(v *T) error) (T, error) {
	v, err := c.update(ctx, fn)
	if err != nil {
		var zero T
		return zero, err
	}
	c.notify(v)
	return v, nil
}

func (c *Collection[T]) update(ctx context.Context, fn func(v *T) error) (T, error) {
	unlock := c.store.lock(c.key)
	defer unlock()

	var zero T
	v, err := c.read(ctx)
	if err != nil {
		return zero, err
	}
	if err := fn(&v); err != nil {
		return zero, err
	}
	if err := c.write(ctx, v); err != nil {
		return zero, err
	}
	return v, nil
}

// Save replaces the stored value wholesale.
func (c *Collection[T]) Save(ctx context.Context, v T) error {
	unlock := c.store.lock(c.key)
	err := c.write(ctx, v)
	unlock()
	if err != nil {
		return err
	}
	c.notify(v)
	return nil
}

// Reset removes the key and caches the default value.
func (c *Collection[T]) Reset(ctx context.Context) error {
	unlock := c.store.lock(c.key)
	if err := c.store.kv.Remove(ctx, c.key); err != nil {
		unlock()
		c.store.log.Errorf("Failed to reset collection %s: %v", c.key, err)
		return err
	}
	v := c.def()
	c.setCached(v)
	c.store.afterWrite(ctx, c.key)
	unlock()

	c.notify(v)
	return nil
}

// Seed writes v only when nothing is stored under the key yet.
func (c *Collection[T]) Seed(ctx context.Context, v T) (bool, error) {
	written, err := c.seed(ctx, v)
	if err != nil || !written {
		return false, err
	}
	c.notify(v)
	return true, nil
}

func (c *Collection[T]) seed(ctx context.Context, v T) (bool, error) {
	unlock := c.store.lock(c.key)
	defer unlock()

	_, err := c.store.kv.Get(ctx, c.key)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return false, err
	}
	if err := c.write(ctx, v); err != nil {
		return false, err
	}
	return true, nil
}

// Subscribe registers fn to run after every successful write of this
// collection. fn runs on the writing goroutine once the key is unlocked, so it
// may read or write the same collection; the writer waits for fn to return.
// The returned func removes the subscription.
func (c *Collection[T]) Subscribe(fn func(key string, v T)) func() {
	c.subsMu.Lock()
	defer c.subsMu.Unlock()

	id := c.nextID
	c.nextID++
	c.subs[id] = fn
	return func() {
		c.subsMu.Lock()
		defer c.subsMu.Unlock()
		delete(c.subs, id)
	}
}

func (c *Collection[T]) read(ctx context.Context) (T, error) {
	raw, err := c.store.kv.Get(ctx, c.key)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.def(), nil
		}
		c.store.log.Errorf("Failed to read collection %s: %v", c.key, err)
		var zero T
		return zero, err
	}

	v := c.def()
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		c.store.log.Errorf("Failed to decode collection %s: %v", c.key, err)
		var zero T
		return zero, repository.NewStorageError(repository.OpRead, c.key, fmt.Errorf("%w: %v", ErrDecode, err))
	}
	return v, nil
}

func (c *Collection[T]) write(ctx context.Context, v T) error {
	data, err := json.Marshal(v)
	if err != nil {
		return repository.NewStorageError(repository.OpWrite, c.key, fmt.Errorf("%w: %v", ErrEncode, err))
	}
	if err := c.store.kv.Set(ctx, c.key, string(data)); err != nil {
		c.store.log.Errorf("Failed to persist collection %s: %v", c.key, err)
		return err
	}

	c.setCached(v)
	c.store.afterWrite(ctx, c.key)
	return nil
}

func (c *Collection[T]) setCached(v T) {
	c.mu.Lock()
	c.cached = v
	c.loaded = true
	c.mu.Unlock()
}

func (c *Collection[T]) notify(v T) {
	c.subsMu.Lock()
	subs := make([]func(string, T), 0, len(c.subs))
	for _, fn := range c.subs {
		subs = append(subs, fn)
	}
	c.subsMu.Unlock()

	for _, fn := range subs {
		fn(c.key, v)
	}
}
