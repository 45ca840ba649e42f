package topiclist

import "golang.org/x/text/cases"

// TopicKey is the case-folded identity of a topic name. Two names with the
// same key are the same topic; the original casing is kept for display.
type TopicKey string

// FoldTopic returns the identity key for a topic name.
func FoldTopic(name string) TopicKey {
	// cases.Caser is stateful, so each call gets its own.
	return TopicKey(cases.Fold().String(name))
}

// SameTopic reports whether two names refer to the same topic.
func SameTopic(a, b string) bool {
	return FoldTopic(a) == FoldTopic(b)
}
