package topiclist

const (
	// DefaultMaxTopics is how many recent topics are always shown.
	DefaultMaxTopics = 5
	// DefaultMaxTopicsWithUnread caps the rows shown when not zoomed.
	DefaultMaxTopicsWithUnread = 8
)

// Limits are the truncation caps of the unzoomed view.
type Limits struct {
	MaxTopics           int
	MaxTopicsWithUnread int
}

func DefaultLimits() Limits {
	return Limits{
		MaxTopics:           DefaultMaxTopics,
		MaxTopicsWithUnread: DefaultMaxTopicsWithUnread,
	}
}

func (l Limits) normalize() Limits {
	if l.MaxTopics <= 0 {
		l.MaxTopics = DefaultMaxTopics
	}
	if l.MaxTopicsWithUnread < l.MaxTopics {
		l.MaxTopicsWithUnread = l.MaxTopics
	}
	return l
}

// TopicView is one topic chosen for individual display.
type TopicView struct {
	Name   string
	Key    TopicKey
	Unread int
	IsZero bool
	Muted  bool
	Active bool
	URL    string
}

// SelectionInput is everything Select looks at. The funcs may be nil.
type SelectionInput struct {
	// TopicNames is ordered most recent first.
	TopicNames  []string
	UnreadCount func(topic string) int
	IsMuted     func(topic string) bool
	Permalink   func(topic string) string
	// ActiveTopic is the key of the open topic; empty for none.
	ActiveTopic TopicKey
	Zoomed      bool
	Limits      Limits
}

// Selection is the outcome of Select: shown rows plus the unread total of
// everything folded into "more topics".
type Selection struct {
	Shown      []TopicView
	MoreUnread int
}

// Select decides which topics get their own row.
//
// Zoomed, every topic is shown. Otherwise a topic is shown while fewer than
// MaxTopicsWithUnread rows are taken, if it is among the MaxTopics most recent,
// has unreads, or is active. The active topic skips the row cap, so a late
// active topic can push the list to MaxTopicsWithUnread+1 rows.
func Select(in SelectionInput) Selection {
	limits := in.Limits.normalize()
	var out Selection
	selected := 0

	for idx, name := range in.TopicNames {
		unread := 0
		if in.UnreadCount != nil {
			unread = in.UnreadCount(name)
		}
		key := FoldTopic(name)
		active := in.ActiveTopic != "" && in.ActiveTopic == key

		if !in.Zoomed {
			if selected >= limits.MaxTopicsWithUnread && !active {
				if unread > 0 {
					out.MoreUnread += unread
				}
				continue
			}
			if !(idx < limits.MaxTopics || unread > 0 || active) {
				continue
			}
		}

		view := TopicView{
			Name:   name,
			Key:    key,
			Unread: unread,
			IsZero: unread <= 0,
			Active: active,
		}
		if in.IsMuted != nil {
			view.Muted = in.IsMuted(name)
		}
		if in.Permalink != nil {
			view.URL = in.Permalink(name)
		}
		out.Shown = append(out.Shown, view)
		selected++
	}
	return out
}
