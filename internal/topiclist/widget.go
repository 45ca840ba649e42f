package topiclist

// RowKind distinguishes the rows a widget renders.
type RowKind int

const (
	RowTopic RowKind = iota
	RowMoreTopics
	RowNewTopic
)

func (k RowKind) String() string {
	switch k {
	case RowMoreTopics:
		return "more-topics"
	case RowNewTopic:
		return "new-topic"
	default:
		return "topic"
	}
}

// Row is the display state of one line of a topic list.
type Row struct {
	Kind  RowKind
	Topic string
	Key   TopicKey
	Count CountBadge
	Muted bool
	// Active is the highlight applied by ActivateTopic.
	Active bool
	URL    string
}

// Widget is the topic list of one stream. Registry creates it; it is
// discarded after Remove.
type Widget struct {
	streamID StreamID
	parent   Container
	deps     *Deps
	zoom     *Zoom
	limits   Limits

	activeTopic  TopicKey
	rows         []*Row
	topicItems   map[TopicKey]*Row
	more         *Row
	noMoreTopics bool
	searching    bool
	attached     bool
}

func newWidget(parent Container, streamID StreamID, deps *Deps, zoom *Zoom, limits Limits) *Widget {
	return &Widget{
		streamID:   streamID,
		parent:     parent,
		deps:       deps,
		zoom:       zoom,
		limits:     limits,
		topicItems: make(map[TopicKey]*Row),
	}
}

func (w *Widget) StreamID() StreamID { return w.streamID }

func (w *Widget) Parent() Container { return w.parent }

// Build computes the rows and attaches them to the parent. noMoreTopics
// carries the sticky "no more topics" state across rebuilds.
func (w *Widget) Build(activeTopic string, noMoreTopics bool) {
	w.noMoreTopics = false
	w.searching = false

	w.activeTopic = ""
	if activeTopic != "" {
		w.activeTopic = FoldTopic(activeTopic)
	}

	w.buildList()
	w.parent.AttachTopicList(w)
	w.attached = true

	if noMoreTopics {
		w.ShowNoMoreTopics()
	}
	if w.activeTopic != "" {
		w.ActivateTopic()
	}
}

func (w *Widget) buildList() {
	names := w.deps.recentTopicNames(w.streamID)
	sel := Select(SelectionInput{
		TopicNames:  names,
		UnreadCount: func(topic string) int { return w.deps.unreadCount(w.streamID, topic) },
		IsMuted:     func(topic string) bool { return w.deps.isMuted(w.streamID, topic) },
		Permalink:   func(topic string) string { return w.deps.permalink(w.streamID, topic) },
		ActiveTopic: w.activeTopic,
		Zoomed:      w.zoom.Expanded(),
		Limits:      w.limits,
	})

	w.rows = w.rows[:0]
	w.topicItems = make(map[TopicKey]*Row, len(sel.Shown))
	w.more = nil

	for _, view := range sel.Shown {
		row := &Row{
			Kind:  RowTopic,
			Topic: view.Name,
			Key:   view.Key,
			Count: newBadge(TopicCount(view.Name), view.Unread),
			Muted: view.Muted,
			URL:   view.URL,
		}
		w.topicItems[view.Key] = row
		w.rows = append(w.rows, row)
	}

	// The aggregate row is needed when topics were cut, or when the local
	// cache may be missing older topics.
	sub, ok := w.deps.subscription(w.streamID)
	complete := ok && sub.HasCompleteHistory
	if len(names) > w.limits.MaxTopics || !complete {
		w.more = &Row{
			Kind:  RowMoreTopics,
			Count: newBadge(MoreTopics, sel.MoreUnread),
		}
		w.rows = append(w.rows, w.more)
	}

	w.rows = append(w.rows, &Row{Kind: RowNewTopic})
}

// Remove detaches the widget from its parent.
func (w *Widget) Remove() {
	if !w.attached {
		return
	}
	w.parent.DetachTopicList(w)
	w.attached = false
}

// Attached reports whether the widget is currently hung under its parent.
func (w *Widget) Attached() bool { return w.attached }

// NumItems is the number of topics with their own row.
func (w *Widget) NumItems() int { return len(w.topicItems) }

// SetCount updates a badge in place. It returns true only when the topic is
// folded into "more topics", telling the caller to roll the count into the
// aggregate itself.
func (w *Widget) SetCount(target CountTarget, count int) bool {
	if target.IsMoreTopics() {
		if w.zoom.Expanded() {
			return false
		}
		if w.more == nil {
			// A nonzero count here would need a new aggregate row. Every
			// caller that adds unreads rebuilds right after, so leave it.
			return false
		}
		w.more.Count.Apply(FormatCount(target, count))
		return false
	}

	row, ok := w.topicItems[FoldTopic(target.Topic())]
	if !ok {
		return true
	}
	row.Count.Apply(FormatCount(target, count))
	return false
}

// ActivateTopic highlights the active topic when it has a row.
func (w *Widget) ActivateTopic() {
	if row, ok := w.topicItems[w.activeTopic]; ok {
		row.Active = true
	}
}

// ActiveTopic returns the folded key of the active topic.
func (w *Widget) ActiveTopic() TopicKey { return w.activeTopic }

// ShowSpinner marks the list as waiting for history. The next Build clears it.
func (w *Widget) ShowSpinner() { w.searching = true }

func (w *Widget) Searching() bool { return w.searching }

// ShowNoMoreTopics records that a history fetch found nothing new.
func (w *Widget) ShowNoMoreTopics() { w.noMoreTopics = true }

func (w *Widget) NoMoreTopics() bool { return w.noMoreTopics }

// HasMoreTopicsRow reports whether the aggregate row exists.
func (w *Widget) HasMoreTopicsRow() bool { return w.more != nil }

// MoreUnread is the count currently shown on the aggregate row.
func (w *Widget) MoreUnread() int {
	if w.more == nil {
		return 0
	}
	return w.more.Count.Count
}

// Rows returns a copy of the rows in display order.
func (w *Widget) Rows() []Row {
	out := make([]Row, len(w.rows))
	for i, row := range w.rows {
		out[i] = *row
	}
	return out
}

// TopicRow returns the row shown for a topic, if any.
func (w *Widget) TopicRow(topic string) (Row, bool) {
	row, ok := w.topicItems[FoldTopic(topic)]
	if !ok {
		return Row{}, false
	}
	return *row, true
}
