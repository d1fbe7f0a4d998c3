package state

import (
	"sync"

	"github.com/Abdurahmanit/GroupProject/sharaya-service/internal/domain/entity"
	"github.com/Abdurahmanit/GroupProject/sharaya-service/internal/repository"
)

// Collections is the fixed set of typed collections the app persists.
type Collections struct {
	store *Store

	Favorites   *Collection[entity.Favorites]
	Cart        *Collection[entity.Cart]
	Named       *Collection[entity.Collections]
	ChatHistory *Collection[entity.ChatHistory]
	User        *Collection[entity.User]
	Posts       *Collection[[]entity.Product]
	LikedPosts  *Collection[entity.LikedPosts]
	SavedItems  *Collection[entity.SavedItems]
	Orders      *Collection[entity.Orders]
	Settings    *Collection[entity.Settings]

	reviewsMu sync.Mutex
	reviews   map[string]*Collection[entity.Reviews]
}

func NewCollections(store *Store) *Collections {
	return &Collections{
		store:       store,
		Favorites:   NewCollection(store, repository.KeyFavorites, func() entity.Favorites { return entity.Favorites{} }),
		Cart:        NewCollection(store, repository.KeyCart, func() entity.Cart { return *entity.NewCart() }),
		Named:       NewCollection(store, repository.KeyCollections, func() entity.Collections { return entity.Collections{} }),
		ChatHistory: NewCollection(store, repository.KeyChatHistory, func() entity.ChatHistory { return entity.ChatHistory{} }),
		User:        NewCollection(store, repository.KeyUser, func() entity.User { return entity.User{} }),
		Posts:       NewCollection(store, repository.KeyPosts, func() []entity.Product { return []entity.Product{} }),
		LikedPosts:  NewCollection(store, repository.KeyLikedPosts, func() entity.LikedPosts { return entity.LikedPosts{} }),
		SavedItems:  NewCollection(store, repository.KeySavedItems, func() entity.SavedItems { return entity.SavedItems{} }),
		Orders:      NewCollection(store, repository.KeyOrders, func() entity.Orders { return entity.Orders{} }),
		Settings:    NewCollection(store, repository.KeySettings, entity.DefaultSettings),
		reviews:     make(map[string]*Collection[entity.Reviews]),
	}
}

func (c *Collections) Store() *Store {
	return c.store
}

// Reviews returns the per-product review collection, creating it on first use.
func (c *Collections) Reviews(productID string) *Collection[entity.Reviews] {
	c.reviewsMu.Lock()
	defer c.reviewsMu.Unlock()

	col, ok := c.reviews[productID]
	if !ok {
		col = NewCollection(c.store, repository.ReviewsKey(productID), func() entity.Reviews { return entity.Reviews{} })
		c.reviews[productID] = col
	}
	return col
}
