package service

import (
	"context"

	"github.com/Abdurahmanit/GroupProject/sharaya-service/internal/catalog"
	"github.com/Abdurahmanit/GroupProject/sharaya-service/internal/domain/entity"
	"github.com/Abdurahmanit/GroupProject/sharaya-service/internal/platform/logger"
	"github.com/Abdurahmanit/GroupProject/sharaya-service/internal/search"
)

type SearchService interface {
	Catalog(ctx context.Context) []entity.Product
	Product(ctx context.Context, id string) (*entity.Product, error)
	Sellers(ctx context.Context) []catalog.Seller
	Search(ctx context.Context, f search.Filter) []entity.Product
	Similar(ctx context.Context, color, kind string) []entity.Product
}

type searchService struct {
	catalog *catalog.Catalog
	log     logger.Logger
}

func NewSearchService(cat *catalog.Catalog, log logger.Logger) SearchService {
	return &searchService{catalog: cat, log: log}
}

func (s *searchService) Catalog(_ context.Context) []entity.Product {
	return s.catalog.Products()
}

func (s *searchService) Product(_ context.Context, id string) (*entity.Product, error) {
	p, err := s.catalog.Product(id)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *searchService) Sellers(_ context.Context) []catalog.Seller {
	return s.catalog.Sellers()
}

func (s *searchService) Search(_ context.Context, f search.Filter) []entity.Product {
	results := search.Apply(s.catalog.Products(), f)
	s.log.Debugf("Search query=%q size=%q color=%q sellers=%v returned %d products", f.Query, f.Size, f.Color, f.Sellers, len(results))
	return results
}

func (s *searchService) Similar(_ context.Context, color, kind string) []entity.Product {
	return search.Similar(s.catalog.Products(), color, kind)
}
