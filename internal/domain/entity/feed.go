package entity

import (
	"fmt"
	"strings"
)

// LikedPosts is the set of post ids the user has liked on the Home feed.
type LikedPosts []string

func (l LikedPosts) Contains(postID string) bool {
	for _, id := range l {
		if id == postID {
			return true
		}
	}
	return false
}

// Toggle flips the like state of a post and reports whether it is now liked.
func (l *LikedPosts) Toggle(postID string) bool {
	for i, id := range *l {
		if id == postID {
			*l = append((*l)[:i], (*l)[i+1:]...)
			return false
		}
	}
	*l = append(*l, postID)
	return true
}

// SavedItems maps a post id to the board it was saved to.
type SavedItems map[string]string

func (s *SavedItems) Save(postID, board string) error {
	if postID == "" {
		return NewValidationError("postId", "post id cannot be empty")
	}
	board = strings.TrimSpace(board)
	if board == "" {
		return NewValidationError("board", "please choose a board")
	}
	if *s == nil {
		*s = make(SavedItems)
	}
	if existing, ok := (*s)[postID]; ok && existing == board {
		return fmt.Errorf("post already saved to %s: %w", board, ErrDuplicate)
	}
	(*s)[postID] = board
	return nil
}

func (s *SavedItems) Unsave(postID string) error {
	if _, ok := (*s)[postID]; !ok {
		return fmt.Errorf("saved post %s: %w", postID, ErrNotFound)
	}
	delete(*s, postID)
	return nil
}
