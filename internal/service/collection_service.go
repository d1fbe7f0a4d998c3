package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/Abdurahmanit/GroupProject/sharaya-service/internal/catalog"
	"github.com/Abdurahmanit/GroupProject/sharaya-service/internal/domain/entity"
	"github.com/Abdurahmanit/GroupProject/sharaya-service/internal/platform/logger"
	"github.com/Abdurahmanit/GroupProject/sharaya-service/internal/state"
)

type CollectionService interface {
	List(ctx context.Context) (entity.Collections, error)
	Get(ctx context.Context, name string) (*entity.NamedCollection, error)
	// Create makes an empty collection, or one holding productID when it is set.
	Create(ctx context.Context, name, productID string) (*entity.NamedCollection, error)
	AddItem(ctx context.Context, name, productID string) (*entity.NamedCollection, error)
	RemoveItem(ctx context.Context, name, productID string) (*entity.NamedCollection, error)
	Delete(ctx context.Context, name string) error
}

type collectionService struct {
	cols    *state.Collections
	catalog *catalog.Catalog
	log     logger.Logger
}

func NewCollectionService(cols *state.Collections, cat *catalog.Catalog, log logger.Logger) CollectionService {
	return &collectionService{cols: cols, catalog: cat, log: log}
}

func (s *collectionService) List(ctx context.Context) (entity.Collections, error) {
	cs, err := s.cols.Named.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("could not retrieve collections: %w", err)
	}
	return cs, nil
}

func (s *collectionService) Get(ctx context.Context, name string) (*entity.NamedCollection, error) {
	cs, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	nc, _ := cs.Find(name)
	if nc == nil {
		return nil, fmt.Errorf("collection %q: %w", strings.TrimSpace(name), entity.ErrNotFound)
	}
	return nc, nil
}

func (s *collectionService) Create(ctx context.Context, name, productID string) (*entity.NamedCollection, error) {
	var product *entity.Product
	if productID != "" {
		p, err := s.catalog.Product(productID)
		if err != nil {
			return nil, err
		}
		product = &p
	}

	var created entity.NamedCollection
	now := s.cols.Store().Now()
	_, err := s.cols.Named.Update(ctx, func(cs *entity.Collections) error {
		var err error
		if product != nil {
			created, err = cs.CreateWithItem(name, *product, now)
		} else {
			created, err = cs.Create(name, now)
		}
		return err
	})
	if err != nil {
		s.log.Warnf("Could not create collection %q: %v", name, err)
		return nil, err
	}
	s.log.Infof("Collection %q created", created.Name)
	return &created, nil
}

func (s *collectionService) AddItem(ctx context.Context, name, productID string) (*entity.NamedCollection, error) {
	product, err := s.catalog.Product(productID)
	if err != nil {
		return nil, err
	}

	var updated entity.NamedCollection
	_, err = s.cols.Named.Update(ctx, func(cs *entity.Collections) error {
		var err error
		updated, err = cs.AddItem(name, product)
		return err
	})
	if err != nil {
		s.log.Warnf("Could not add product %s to collection %q: %v", productID, name, err)
		return nil, err
	}
	s.log.Infof("Product %s saved to collection %q", productID, updated.Name)
	return &updated, nil
}

func (s *collectionService) RemoveItem(ctx context.Context, name, productID string) (*entity.NamedCollection, error) {
	var updated entity.NamedCollection
	_, err := s.cols.Named.Update(ctx, func(cs *entity.Collections) error {
		var err error
		updated, err = cs.RemoveItem(name, productID)
		return err
	})
	if err != nil {
		s.log.Warnf("Could not remove product %s from collection %q: %v", productID, name, err)
		return nil, err
	}
	return &updated, nil
}

func (s *collectionService) Delete(ctx context.Context, name string) error {
	_, err := s.cols.Named.Update(ctx, func(cs *entity.Collections) error {
		return cs.Delete(name)
	})
	if err != nil {
		s.log.Warnf("Could not delete collection %q: %v", name, err)
		return err
	}
	s.log.Infof("Collection %q deleted", name)
	return nil
}
