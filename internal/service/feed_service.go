package service

import (
	"context"
	"fmt"

	"github.com/Abdurahmanit/GroupProject/sharaya-service/internal/catalog"
	"github.com/Abdurahmanit/GroupProject/sharaya-service/internal/domain/entity"
	"github.com/Abdurahmanit/GroupProject/sharaya-service/internal/platform/logger"
	"github.com/Abdurahmanit/GroupProject/sharaya-service/internal/state"
)

type FeedPost struct {
	entity.Product
	Liked   bool   `json:"liked"`
	SavedTo string `json:"savedTo,omitempty"`
}

type LikeResult struct {
	PostID string `json:"postId"`
	Liked  bool   `json:"liked"`
	Likes  int    `json:"likes"`
}

type FeedService interface {
	List(ctx context.Context) ([]FeedPost, error)
	ToggleLike(ctx context.Context, postID string) (*LikeResult, error)
	Save(ctx context.Context, postID, board string) error
	Unsave(ctx context.Context, postID string) error
}

type feedService struct {
	cols    *state.Collections
	catalog *catalog.Catalog
	log     logger.Logger
}

func NewFeedService(cols *state.Collections, cat *catalog.Catalog, log logger.Logger) FeedService {
	return &feedService{cols: cols, catalog: cat, log: log}
}

// posts prefers a persisted feed snapshot and falls back to the catalog.
func (s *feedService) posts(ctx context.Context) ([]entity.Product, error) {
	stored, err := s.cols.Posts.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("could not retrieve posts: %w", err)
	}
	if len(stored) > 0 {
		return stored, nil
	}
	return s.catalog.Posts(), nil
}

func (s *feedService) findPost(ctx context.Context, postID string) (entity.Product, error) {
	posts, err := s.posts(ctx)
	if err != nil {
		return entity.Product{}, err
	}
	for _, p := range posts {
		if p.ID == postID {
			return p, nil
		}
	}
	return entity.Product{}, fmt.Errorf("post %s: %w", postID, entity.ErrNotFound)
}

func (s *feedService) List(ctx context.Context) ([]FeedPost, error) {
	posts, err := s.posts(ctx)
	if err != nil {
		return nil, err
	}
	liked, err := s.cols.LikedPosts.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("could not retrieve liked posts: %w", err)
	}
	saved, err := s.cols.SavedItems.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("could not retrieve saved items: %w", err)
	}

	out := make([]FeedPost, 0, len(posts))
	for _, p := range posts {
		fp := FeedPost{Product: p, Liked: liked.Contains(p.ID), SavedTo: saved[p.ID]}
		if fp.Liked {
			fp.Likes++
		}
		out = append(out, fp)
	}
	return out, nil
}

func (s *feedService) ToggleLike(ctx context.Context, postID string) (*LikeResult, error) {
	post, err := s.findPost(ctx, postID)
	if err != nil {
		return nil, err
	}

	var liked bool
	_, err = s.cols.LikedPosts.Update(ctx, func(l *entity.LikedPosts) error {
		liked = l.Toggle(postID)
		return nil
	})
	if err != nil {
		s.log.Errorf("Error toggling like on post %s: %v", postID, err)
		return nil, fmt.Errorf("could not update like: %w", err)
	}

	likes := post.Likes
	if liked {
		likes++
	}
	return &LikeResult{PostID: postID, Liked: liked, Likes: likes}, nil
}

func (s *feedService) Save(ctx context.Context, postID, board string) error {
	if _, err := s.findPost(ctx, postID); err != nil {
		return err
	}
	_, err := s.cols.SavedItems.Update(ctx, func(si *entity.SavedItems) error {
		return si.Save(postID, board)
	})
	if err != nil {
		s.log.Warnf("Could not save post %s to %q: %v", postID, board, err)
		return err
	}
	s.log.Infof("Post %s saved to %q", postID, board)
	return nil
}

func (s *feedService) Unsave(ctx context.Context, postID string) error {
	_, err := s.cols.SavedItems.Update(ctx, func(si *entity.SavedItems) error {
		return si.Unsave(postID)
	})
	return err
}
