package models

import (
	"strings"
	"time"
)

// Message is one post in a stream topic.
type Message struct {
	ID        int64     `json:"id"`
	StreamID  int64     `json:"stream_id"`
	Topic     string    `json:"topic"`
	Sender    string    `json:"sender"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// Validate checks the message fields.
func (m *Message) Validate() error {
	var problems ValidationErrors
	problems.require(m.StreamID > 0, "stream_id", "stream is required")
	problems.check("topic", ValidateTopicName(m.Topic))
	problems.require(strings.TrimSpace(m.Sender) != "", "sender", "sender is required")
	if strings.TrimSpace(m.Content) == "" {
		problems.check("content", ErrEmptyMessage)
	}
	return problems.Err()
}

// TopicSummary describes one topic of a stream, newest activity first.
type TopicSummary struct {
	StreamID int64  `json:"stream_id"`
	Name     string `json:"name"`
	// MaxID is the id of the newest message in the topic.
	MaxID    int64 `json:"max_id"`
	Messages int   `json:"messages"`
}

// MutedTopic records that the user muted a topic.
type MutedTopic struct {
	StreamID int64     `json:"stream_id"`
	Topic    string    `json:"topic"`
	MutedAt  time.Time `json:"muted_at"`
}
