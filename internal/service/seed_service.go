package service

import (
	"context"
	"fmt"

	"github.com/Abdurahmanit/GroupProject/sharaya-service/internal/catalog"
	"github.com/Abdurahmanit/GroupProject/sharaya-service/internal/platform/logger"
	"github.com/Abdurahmanit/GroupProject/sharaya-service/internal/state"
)

type SeedResult struct {
	Favorites   bool `json:"favorites"`
	Collections bool `json:"collections"`
	Posts       bool `json:"posts"`
}

type SeedService interface {
	Seed(ctx context.Context) (*SeedResult, error)
}

type seedService struct {
	cols    *state.Collections
	catalog *catalog.Catalog
	log     logger.Logger
}

func NewSeedService(cols *state.Collections, cat *catalog.Catalog, log logger.Logger) SeedService {
	return &seedService{cols: cols, catalog: cat, log: log}
}

// Seed writes the demo fixture into collections that have never been written.
// Collections that exist, even empty, are left alone.
func (s *seedService) Seed(ctx context.Context) (*SeedResult, error) {
	demo := s.catalog.Demo()
	res := &SeedResult{}
	var err error

	if res.Favorites, err = s.cols.Favorites.Seed(ctx, demo.Favorites); err != nil {
		return nil, fmt.Errorf("could not seed favorites: %w", err)
	}
	if res.Collections, err = s.cols.Named.Seed(ctx, demo.Collections); err != nil {
		return nil, fmt.Errorf("could not seed collections: %w", err)
	}
	if res.Posts, err = s.cols.Posts.Seed(ctx, s.catalog.Posts()); err != nil {
		return nil, fmt.Errorf("could not seed posts: %w", err)
	}

	s.log.Infof("Demo seed finished: favorites=%t collections=%t posts=%t", res.Favorites, res.Collections, res.Posts)
	return res, nil
}
