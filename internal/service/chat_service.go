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

type SendMessageInput struct {
	Text      string        `json:"text"`
	Sender    entity.Sender `json:"sender,omitempty"`
	ProductID string        `json:"productId,omitempty"`
}

type ChatService interface {
	Threads(ctx context.Context) ([]entity.ThreadSummary, error)
	Thread(ctx context.Context, username string) ([]entity.Message, error)
	Send(ctx context.Context, username string, in SendMessageInput) (*entity.Message, error)
}

type chatService struct {
	cols    *state.Collections
	catalog *catalog.Catalog
	log     logger.Logger
}

func NewChatService(cols *state.Collections, cat *catalog.Catalog, log logger.Logger) ChatService {
	return &chatService{cols: cols, catalog: cat, log: log}
}

func (s *chatService) Threads(ctx context.Context) ([]entity.ThreadSummary, error) {
	h, err := s.cols.ChatHistory.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("could not retrieve chat history: %w", err)
	}
	return h.Summaries(), nil
}

func (s *chatService) Thread(ctx context.Context, username string) ([]entity.Message, error) {
	h, err := s.cols.ChatHistory.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("could not retrieve chat history: %w", err)
	}
	return h.Thread(username), nil
}

// Send appends a message to the thread with username. Messages default to
// being from the local user; a product reference is attached as a snapshot.
func (s *chatService) Send(ctx context.Context, username string, in SendMessageInput) (*entity.Message, error) {
	msg := entity.Message{
		ID:        uuid.NewString(),
		Text:      in.Text,
		Sender:    in.Sender,
		Timestamp: s.cols.Store().Now(),
	}
	if msg.Sender == "" {
		msg.Sender = entity.SenderUser
	}
	if in.ProductID != "" {
		p, err := s.catalog.Product(in.ProductID)
		if err != nil {
			return nil, err
		}
		msg.Product = &p
	}

	_, err := s.cols.ChatHistory.Update(ctx, func(h *entity.ChatHistory) error {
		return h.Append(username, msg)
	})
	if err != nil {
		s.log.Warnf("Could not append message to thread %s: %v", username, err)
		return nil, err
	}
	s.log.Debugf("Message %s appended to thread %s", msg.ID, username)
	return &msg, nil
}
