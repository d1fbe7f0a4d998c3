package entity

import "fmt"

// Favorites is a set of product snapshots keyed by product id.
type Favorites []Product

func (f Favorites) Contains(productID string) bool {
	for _, p := range f {
		if p.ID == productID {
			return true
		}
	}
	return false
}

func (f *Favorites) Add(product Product) error {
	if err := product.Validate(); err != nil {
		return err
	}
	if f.Contains(product.ID) {
		return fmt.Errorf("%s is already in Favorites: %w", displayName(product), ErrDuplicate)
	}
	*f = append(*f, product)
	return nil
}

func (f *Favorites) Remove(productID string) error {
	for i, p := range *f {
		if p.ID == productID {
			*f = append((*f)[:i], (*f)[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("favorite %s: %w", productID, ErrNotFound)
}

func displayName(p Product) string {
	if p.Caption != "" {
		return p.Caption
	}
	return "product " + p.ID
}
