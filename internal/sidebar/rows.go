package sidebar

import "github.com/tOgg1/streambar/internal/topiclist"

// streamRow is a stream entry of the sidebar. The expanded stream's topic
// list hangs under it.
type streamRow struct {
	id   topiclist.StreamID
	list *topiclist.Widget
}

func (r *streamRow) AttachTopicList(w *topiclist.Widget) {
	r.list = w
}

func (r *streamRow) DetachTopicList(w *topiclist.Widget) {
	if r.list == w {
		r.list = nil
	}
}

type itemKind int

const (
	itemStream itemKind = iota
	itemTopic
)

// item is one selectable line of the sidebar.
type item struct {
	kind     itemKind
	streamID topiclist.StreamID
	row      topiclist.Row
}

func (i item) isTopicRow() bool {
	return i.kind == itemTopic && i.row.Kind == topiclist.RowTopic
}
