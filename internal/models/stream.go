package models

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// Length limits for names shown in the sidebar.
const (
	MaxStreamNameLength = 60
	MaxTopicNameLength  = 60
)

var (
	ErrInvalidStreamName = errors.New("invalid stream name")
	ErrInvalidTopicName  = errors.New("invalid topic name")
	ErrEmptyMessage      = errors.New("message content is required")
)

// Stream is a channel of conversation that messages are posted to.
type Stream struct {
	// ID is the database identifier.
	ID int64 `json:"id"`

	// Name is the display name. Names are unique ignoring case.
	Name string `json:"name"`

	// Description is free text shown next to the stream.
	Description string `json:"description,omitempty"`

	// CreatedAt is when the stream was created.
	CreatedAt time.Time `json:"created_at"`
}

// Validate checks the stream fields.
func (s *Stream) Validate() error {
	var problems ValidationErrors
	problems.check("name", ValidateStreamName(s.Name))
	return problems.Err()
}

// ValidateStreamName checks that a stream name is usable.
func ValidateStreamName(name string) error {
	trimmed := strings.TrimSpace(name)
	switch {
	case trimmed == "":
		return fmt.Errorf("%w: name is empty", ErrInvalidStreamName)
	case trimmed != name:
		return fmt.Errorf("%w: leading or trailing spaces", ErrInvalidStreamName)
	case utf8.RuneCountInString(name) > MaxStreamNameLength:
		return fmt.Errorf("%w: longer than %d characters", ErrInvalidStreamName, MaxStreamNameLength)
	}
	return nil
}

// ValidateTopicName checks that a topic name is usable.
func ValidateTopicName(topic string) error {
	trimmed := strings.TrimSpace(topic)
	switch {
	case trimmed == "":
		return fmt.Errorf("%w: topic is empty", ErrInvalidTopicName)
	case utf8.RuneCountInString(trimmed) > MaxTopicNameLength:
		return fmt.Errorf("%w: longer than %d characters", ErrInvalidTopicName, MaxTopicNameLength)
	}
	return nil
}
