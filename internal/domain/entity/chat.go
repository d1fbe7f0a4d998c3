package entity

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

type Sender string

const (
	SenderUser         Sender = "user"
	SenderCounterparty Sender = "counterparty"
)

func (s Sender) Valid() bool {
	return s == SenderUser || s == SenderCounterparty
}

type Message struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Sender    Sender    `json:"sender"`
	Timestamp time.Time `json:"timestamp"`
	Product   *Product  `json:"product,omitempty"`
}

// ChatHistory maps a counterparty username to its append-only thread.
type ChatHistory map[string][]Message

type ThreadSummary struct {
	Username    string  `json:"username"`
	LastMessage Message `json:"lastMessage"`
	Count       int     `json:"count"`
}

func (h *ChatHistory) Append(username string, msg Message) error {
	username = strings.TrimSpace(username)
	if username == "" {
		return NewValidationError("username", "username cannot be empty")
	}
	if strings.TrimSpace(msg.Text) == "" && msg.Product == nil {
		return NewValidationError("message.text", "message cannot be empty")
	}
	if !msg.Sender.Valid() {
		return NewValidationError("message.sender", fmt.Sprintf("unknown sender %q", msg.Sender))
	}

	if *h == nil {
		*h = make(ChatHistory)
	}
	(*h)[username] = append((*h)[username], msg)
	return nil
}

func (h ChatHistory) Thread(username string) []Message {
	thread := h[strings.TrimSpace(username)]
	if thread == nil {
		return []Message{}
	}
	return thread
}

// Summaries lists non-empty threads, most recent activity first.
func (h ChatHistory) Summaries() []ThreadSummary {
	out := make([]ThreadSummary, 0, len(h))
	for username, thread := range h {
		if len(thread) == 0 {
			continue
		}
		out = append(out, ThreadSummary{
			Username:    username,
			LastMessage: thread[len(thread)-1],
			Count:       len(thread),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		ti, tj := out[i].LastMessage.Timestamp, out[j].LastMessage.Timestamp
		if ti.Equal(tj) {
			return out[i].Username < out[j].Username
		}
		return ti.After(tj)
	})
	return out
}
