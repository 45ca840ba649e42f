// Package narrow tracks which stream/topic the message view is filtered to.
package narrow

import (
	"strconv"
	"strings"
)

// Operators understood by the navigator.
const (
	OperatorStream = "stream"
	OperatorTopic  = "topic"
)

// Term is one filter of a narrow, e.g. stream:general.
type Term struct {
	Operator string
	Operand  string
}

// Options carries metadata about how a narrow was triggered.
type Options struct {
	// Trigger names the UI surface that asked for the narrow ("sidebar", "cli").
	Trigger string
}

// State is the current narrow. The zero value means "all messages".
type State struct {
	StreamID   int64
	StreamName string
	TopicName  string
	Trigger    string
}

// IsEmpty reports whether no stream is selected.
func (s State) IsEmpty() bool {
	return s.StreamID == 0
}

// Topic returns the narrowed topic, or "" when narrowed to a whole stream.
func (s State) Topic() string {
	return s.TopicName
}

// Terms converts the state back into filter terms.
func (s State) Terms() []Term {
	if s.IsEmpty() {
		return nil
	}
	terms := []Term{{Operator: OperatorStream, Operand: s.StreamName}}
	if s.TopicName != "" {
		terms = append(terms, Term{Operator: OperatorTopic, Operand: s.TopicName})
	}
	return terms
}

// TopicPermalink builds the navigation hash for a stream/topic pair.
func TopicPermalink(streamID int64, streamName, topic string) string {
	var b strings.Builder
	b.WriteString("#narrow/stream/")
	b.WriteString(encodeStream(streamID, streamName))
	if topic != "" {
		b.WriteString("/topic/")
		b.WriteString(encodeHashComponent(topic))
	}
	return b.String()
}

// StreamPermalink builds the navigation hash for a whole stream.
func StreamPermalink(streamID int64, streamName string) string {
	return TopicPermalink(streamID, streamName, "")
}

func encodeStream(streamID int64, streamName string) string {
	slug := strings.ReplaceAll(strings.TrimSpace(streamName), " ", "-")
	return encodeHashComponent(strconv.FormatInt(streamID, 10) + "-" + slug)
}

// encodeHashComponent percent-encodes like encodeURIComponent and then swaps
// '%' for '.', so hashes survive browsers that decode them eagerly.
func encodeHashComponent(value string) string {
	const hex = "0123456789ABCDEF"
	var b strings.Builder
	b.Grow(len(value) * 3)
	for i := 0; i < len(value); i++ {
		c := value[i]
		if isUnreserved(c) && c != '.' {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('.')
		b.WriteByte(hex[c>>4])
		b.WriteByte(hex[c&0x0f])
	}
	return b.String()
}

func isUnreserved(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}
	switch c {
	case '-', '_', '.', '!', '~', '*', '\'', '(', ')':
		return true
	}
	return false
}
