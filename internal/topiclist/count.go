package topiclist

import "strconv"

// CountTarget addresses either one topic row or the aggregate
// "more topics" row.
type CountTarget struct {
	topic string
	more  bool
}

// MoreTopics targets the aggregate row.
var MoreTopics = CountTarget{more: true}

// TopicCount targets the row of a single topic.
func TopicCount(topic string) CountTarget {
	return CountTarget{topic: topic}
}

func (t CountTarget) IsMoreTopics() bool { return t.more }

func (t CountTarget) Topic() string { return t.topic }

// CountUpdate is the visual instruction for one unread badge.
type CountUpdate struct {
	Target CountTarget
	Count  int
	// Value is the text shown in the badge; empty for zero.
	Value string
	// Zero hides the badge.
	Zero bool
}

// FormatCount turns an unread count into a badge update.
func FormatCount(target CountTarget, count int) CountUpdate {
	if count <= 0 {
		return CountUpdate{Target: target, Zero: true}
	}
	return CountUpdate{Target: target, Count: count, Value: strconv.Itoa(count)}
}

// CountBadge is the displayed unread count of a row.
type CountBadge struct {
	Count int
	Value string
	Zero  bool
}

// Apply overwrites the badge with an update.
func (b *CountBadge) Apply(u CountUpdate) {
	b.Count = u.Count
	b.Value = u.Value
	b.Zero = u.Zero
}

func newBadge(target CountTarget, count int) CountBadge {
	var b CountBadge
	b.Apply(FormatCount(target, count))
	return b
}
