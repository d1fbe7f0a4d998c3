package service

import (
	"context"
	"fmt"

	"github.com/Abdurahmanit/GroupProject/sharaya-service/internal/catalog"
	"github.com/Abdurahmanit/GroupProject/sharaya-service/internal/domain/entity"
	"github.com/Abdurahmanit/GroupProject/sharaya-service/internal/platform/logger"
	"github.com/Abdurahmanit/GroupProject/sharaya-service/internal/pricing"
	"github.com/Abdurahmanit/GroupProject/sharaya-service/internal/state"
)

type CartView struct {
	Lines []entity.CartLine `json:"lines"`
	Total pricing.Total     `json:"total"`
}

type CartService interface {
	GetCart(ctx context.Context) (*CartView, error)
	AddItem(ctx context.Context, productID, size string) (*entity.CartLine, error)
	UpdateQuantity(ctx context.Context, productID, size string, delta int) (*entity.CartLine, error)
	ToggleSelection(ctx context.Context, productID, size string) (*entity.CartLine, error)
	RemoveItem(ctx context.Context, productID, size string) error
	Total(ctx context.Context, usePickupPoint bool) (*pricing.Total, error)
	Clear(ctx context.Context) error
	ItemCount(ctx context.Context) (int, error)
}

type CartServiceConfig struct {
	DeliveryFee entity.Money
}

type cartService struct {
	cols    *state.Collections
	catalog *catalog.Catalog
	log     logger.Logger
	fee     entity.Money
}

func NewCartService(cols *state.Collections, cat *catalog.Catalog, log logger.Logger, cfg CartServiceConfig) CartService {
	return &cartService{
		cols:    cols,
		catalog: cat,
		log:     log,
		fee:     cfg.DeliveryFee,
	}
}

func (s *cartService) GetCart(ctx context.Context) (*CartView, error) {
	cart, err := s.cols.Cart.Load(ctx)
	if err != nil {
		s.log.Errorf("Error loading cart: %v", err)
		return nil, fmt.Errorf("could not retrieve cart: %w", err)
	}
	total, err := pricing.ComputeTotal(cart.Lines, pricing.Options{DefaultDeliveryFee: s.fee})
	if err != nil {
		return nil, fmt.Errorf("could not price cart: %w", err)
	}
	lines := cart.Lines
	if lines == nil {
		lines = []entity.CartLine{}
	}
	return &CartView{Lines: lines, Total: total}, nil
}

// AddItem adds one unit of a catalog product. An empty size falls back to the
// product's listed size.
func (s *cartService) AddItem(ctx context.Context, productID, size string) (*entity.CartLine, error) {
	s.log.Infof("Adding item to cart: ProductID=%s, Size=%s", productID, size)
	product, err := s.catalog.Product(productID)
	if err != nil {
		return nil, err
	}
	if size == "" {
		size = product.Size
	}

	var added entity.CartLine
	now := s.cols.Store().Now()
	_, err = s.cols.Cart.Update(ctx, func(c *entity.Cart) error {
		line, err := c.AddItem(product, size, now)
		added = line
		return err
	})
	if err != nil {
		s.log.Errorf("Error adding product %s to cart: %v", productID, err)
		return nil, fmt.Errorf("could not add item to cart: %w", err)
	}
	s.log.Infof("Item added to cart: ProductID=%s, Quantity=%d", productID, added.Quantity)
	return &added, nil
}

func (s *cartService) UpdateQuantity(ctx context.Context, productID, size string, delta int) (*entity.CartLine, error) {
	s.log.Infof("Updating cart quantity: ProductID=%s, Size=%s, Delta=%d", productID, size, delta)
	var updated entity.CartLine
	_, err := s.cols.Cart.Update(ctx, func(c *entity.Cart) error {
		line, err := c.UpdateQuantity(productID, size, delta)
		updated = line
		return err
	})
	if err != nil {
		s.log.Errorf("Error updating quantity for product %s: %v", productID, err)
		return nil, fmt.Errorf("could not update item quantity: %w", err)
	}
	return &updated, nil
}

func (s *cartService) ToggleSelection(ctx context.Context, productID, size string) (*entity.CartLine, error) {
	var toggled entity.CartLine
	_, err := s.cols.Cart.Update(ctx, func(c *entity.Cart) error {
		line, err := c.ToggleSelection(productID, size)
		toggled = line
		return err
	})
	if err != nil {
		s.log.Errorf("Error toggling selection for product %s: %v", productID, err)
		return nil, fmt.Errorf("could not toggle item selection: %w", err)
	}
	return &toggled, nil
}

func (s *cartService) RemoveItem(ctx context.Context, productID, size string) error {
	s.log.Infof("Removing item from cart: ProductID=%s, Size=%s", productID, size)
	_, err := s.cols.Cart.Update(ctx, func(c *entity.Cart) error {
		return c.RemoveItem(productID, size)
	})
	if err != nil {
		s.log.Errorf("Error removing product %s from cart: %v", productID, err)
		return fmt.Errorf("could not remove item from cart: %w", err)
	}
	return nil
}

func (s *cartService) Total(ctx context.Context, usePickupPoint bool) (*pricing.Total, error) {
	cart, err := s.cols.Cart.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("could not retrieve cart: %w", err)
	}
	total, err := pricing.ComputeTotal(cart.Lines, pricing.Options{
		DefaultDeliveryFee: s.fee,
		UsePickupPoint:     usePickupPoint,
	})
	if err != nil {
		return nil, fmt.Errorf("could not price cart: %w", err)
	}
	return &total, nil
}

func (s *cartService) Clear(ctx context.Context) error {
	s.log.Info("Clearing cart")
	if err := s.cols.Cart.Reset(ctx); err != nil {
		return fmt.Errorf("could not clear cart: %w", err)
	}
	return nil
}

// ItemCount backs the cart badge. It answers from the in-memory copy once the
// cart has been loaded or written.
func (s *cartService) ItemCount(ctx context.Context) (int, error) {
	if cart, ok := s.cols.Cart.Cached(); ok {
		return cart.ItemCount(), nil
	}
	cart, err := s.cols.Cart.Load(ctx)
	if err != nil {
		return 0, fmt.Errorf("could not count cart items: %w", err)
	}
	return cart.ItemCount(), nil
}
