package entity

import (
	"fmt"
	"strings"
	"time"
)

type NamedCollection struct {
	Name      string    `json:"name"`
	Items     []Product `json:"items"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
}

func (nc NamedCollection) Contains(productID string) bool {
	for _, p := range nc.Items {
		if p.ID == productID {
			return true
		}
	}
	return false
}

// Collections is the list of user-named collections. Names are unique,
// compared case-insensitively after trimming.
type Collections []NamedCollection

func (cs Collections) Find(name string) (*NamedCollection, int) {
	name = strings.TrimSpace(name)
	for i := range cs {
		if strings.EqualFold(cs[i].Name, name) {
			return &cs[i], i
		}
	}
	return nil, -1
}

func (cs *Collections) Create(name string, now time.Time) (NamedCollection, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return NamedCollection{}, NewValidationError("collection.name", "please enter a collection name")
	}
	if existing, _ := cs.Find(name); existing != nil {
		return NamedCollection{}, fmt.Errorf("collection %q: %w", existing.Name, ErrDuplicate)
	}

	nc := NamedCollection{Name: name, Items: make([]Product, 0), CreatedAt: now.UTC()}
	*cs = append(*cs, nc)
	return nc, nil
}

// CreateWithItem creates a collection holding a single product.
func (cs *Collections) CreateWithItem(name string, product Product, now time.Time) (NamedCollection, error) {
	if err := product.Validate(); err != nil {
		return NamedCollection{}, err
	}
	if _, err := cs.Create(name, now); err != nil {
		return NamedCollection{}, err
	}
	nc, _ := cs.Find(name)
	nc.Items = append(nc.Items, product)
	return *nc, nil
}

func (cs *Collections) AddItem(name string, product Product) (NamedCollection, error) {
	if err := product.Validate(); err != nil {
		return NamedCollection{}, err
	}
	nc, _ := cs.Find(name)
	if nc == nil {
		return NamedCollection{}, fmt.Errorf("collection %q: %w", strings.TrimSpace(name), ErrNotFound)
	}
	if nc.Contains(product.ID) {
		return NamedCollection{}, fmt.Errorf("%s is already in %s: %w", displayName(product), nc.Name, ErrDuplicate)
	}
	nc.Items = append(nc.Items, product)
	return *nc, nil
}

func (cs *Collections) RemoveItem(name, productID string) (NamedCollection, error) {
	nc, _ := cs.Find(name)
	if nc == nil {
		return NamedCollection{}, fmt.Errorf("collection %q: %w", strings.TrimSpace(name), ErrNotFound)
	}
	for i, p := range nc.Items {
		if p.ID == productID {
			nc.Items = append(nc.Items[:i], nc.Items[i+1:]...)
			return *nc, nil
		}
	}
	return NamedCollection{}, fmt.Errorf("product %s in collection %q: %w", productID, nc.Name, ErrNotFound)
}

func (cs *Collections) Delete(name string) error {
	_, index := cs.Find(name)
	if index == -1 {
		return fmt.Errorf("collection %q: %w", strings.TrimSpace(name), ErrNotFound)
	}
	*cs = append((*cs)[:index], (*cs)[index+1:]...)
	return nil
}
