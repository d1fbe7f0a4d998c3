package service

import (
	"context"
	"fmt"

	"github.com/Abdurahmanit/GroupProject/sharaya-service/internal/catalog"
	"github.com/Abdurahmanit/GroupProject/sharaya-service/internal/domain/entity"
	"github.com/Abdurahmanit/GroupProject/sharaya-service/internal/platform/logger"
	"github.com/Abdurahmanit/GroupProject/sharaya-service/internal/state"
	"github.com/google/uuid"
)

type SubmitReviewInput struct {
	ReviewerName string `json:"reviewerName,omitempty"`
	Rating       int    `json:"rating"`
	Text         string `json:"text"`
}

type ReviewSummary struct {
	Reviews       entity.Reviews `json:"reviews"`
	AverageRating float64        `json:"averageRating"`
}

type ReviewService interface {
	List(ctx context.Context, productID string) (*ReviewSummary, error)
	Submit(ctx context.Context, productID string, in SubmitReviewInput) (*entity.Review, error)
}

type reviewService struct {
	cols    *state.Collections
	catalog *catalog.Catalog
	log     logger.Logger
}

func NewReviewService(cols *state.Collections, cat *catalog.Catalog, log logger.Logger) ReviewService {
	return &reviewService{cols: cols, catalog: cat, log: log}
}

func (s *reviewService) List(ctx context.Context, productID string) (*ReviewSummary, error) {
	if _, err := s.catalog.Product(productID); err != nil {
		return nil, err
	}
	reviews, err := s.cols.Reviews(productID).Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("could not retrieve reviews: %w", err)
	}
	return &ReviewSummary{Reviews: reviews, AverageRating: reviews.AverageRating()}, nil
}

func (s *reviewService) Submit(ctx context.Context, productID string, in SubmitReviewInput) (*entity.Review, error) {
	if _, err := s.catalog.Product(productID); err != nil {
		return nil, err
	}
	review, err := entity.NewReview(uuid.NewString(), in.ReviewerName, in.Rating, in.Text, s.cols.Store().Now())
	if err != nil {
		return nil, err
	}

	_, err = s.cols.Reviews(productID).Update(ctx, func(rs *entity.Reviews) error {
		*rs = append(*rs, *review)
		return nil
	})
	if err != nil {
		s.log.Errorf("Error saving review for product %s: %v", productID, err)
		return nil, fmt.Errorf("could not save review: %w", err)
	}
	s.log.Infof("Review %s submitted for product %s", review.ID, productID)
	return review, nil
}
