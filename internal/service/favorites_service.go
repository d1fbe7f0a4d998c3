package service

import (
	"context"
	"fmt"

	"github.com/Abdurahmanit/GroupProject/sharaya-service/internal/catalog"
	"github.com/Abdurahmanit/GroupProject/sharaya-service/internal/domain/entity"
	"github.com/Abdurahmanit/GroupProject/sharaya-service/internal/platform/logger"
	"github.com/Abdurahmanit/GroupProject/sharaya-service/internal/state"
)

type FavoritesService interface {
	List(ctx context.Context) (entity.Favorites, error)
	Add(ctx context.Context, productID string) (*entity.Product, error)
	Remove(ctx context.Context, productID string) error
}

type favoritesService struct {
	cols    *state.Collections
	catalog *catalog.Catalog
	log     logger.Logger
}

func NewFavoritesService(cols *state.Collections, cat *catalog.Catalog, log logger.Logger) FavoritesService {
	return &favoritesService{cols: cols, catalog: cat, log: log}
}

func (s *favoritesService) List(ctx context.Context) (entity.Favorites, error) {
	favs, err := s.cols.Favorites.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("could not retrieve favorites: %w", err)
	}
	return favs, nil
}

func (s *favoritesService) Add(ctx context.Context, productID string) (*entity.Product, error) {
	product, err := s.catalog.Product(productID)
	if err != nil {
		return nil, err
	}

	_, err = s.cols.Favorites.Update(ctx, func(f *entity.Favorites) error {
		return f.Add(product)
	})
	if err != nil {
		s.log.Warnf("Could not add product %s to favorites: %v", productID, err)
		return nil, err
	}
	s.log.Infof("Product %s added to favorites", productID)
	return &product, nil
}

func (s *favoritesService) Remove(ctx context.Context, productID string) error {
	_, err := s.cols.Favorites.Update(ctx, func(f *entity.Favorites) error {
		return f.Remove(productID)
	})
	if err != nil {
		s.log.Warnf("Could not remove product %s from favorites: %v", productID, err)
		return err
	}
	s.log.Infof("Product %s removed from favorites", productID)
	return nil
}
