package entity

import (
	"strings"
	"time"
)

const (
	DefaultReviewerName = "Customer"
	MinRating           = 1
	MaxRating           = 5
)

type Review struct {
	ID           string    `json:"id"`
	ReviewerName string    `json:"reviewerName"`
	Rating       int       `json:"rating"`
	Text         string    `json:"text"`
	Date         time.Time `json:"date"`
}

func NewReview(id, reviewerName string, rating int, text string, now time.Time) (*Review, error) {
	if rating < MinRating || rating > MaxRating {
		return nil, NewValidationError("rating", "please select a rating between 1 and 5")
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, NewValidationError("text", "please write a review")
	}
	reviewerName = strings.TrimSpace(reviewerName)
	if reviewerName == "" {
		reviewerName = DefaultReviewerName
	}
	return &Review{
		ID:           id,
		ReviewerName: reviewerName,
		Rating:       rating,
		Text:         text,
		Date:         now.UTC(),
	}, nil
}

type Reviews []Review

func (rs Reviews) AverageRating() float64 {
	if len(rs) == 0 {
		return 0
	}
	sum := 0
	for _, r := range rs {
		sum += r.Rating
	}
	return float64(sum) / float64(len(rs))
}
