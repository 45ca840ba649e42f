package topiclist

import (
	"context"
	"fmt"

	"github.com/tOgg1/streambar/internal/narrow"
)

type fakeData struct {
	names    map[StreamID][]string
	unread   map[StreamID]map[TopicKey]int
	muted    map[StreamID]map[TopicKey]bool
	streams  map[StreamID]string
	complete map[StreamID]bool
}

func newFakeData() *fakeData {
	return &fakeData{
		names:    make(map[StreamID][]string),
		unread:   make(map[StreamID]map[TopicKey]int),
		muted:    make(map[StreamID]map[TopicKey]bool),
		streams:  make(map[StreamID]string),
		complete: make(map[StreamID]bool),
	}
}

func (f *fakeData) addStream(id StreamID, name string, topics ...string) {
	f.streams[id] = name
	f.names[id] = append([]string(nil), topics...)
}

func (f *fakeData) setUnread(id StreamID, topic string, n int) {
	if f.unread[id] == nil {
		f.unread[id] = make(map[TopicKey]int)
	}
	f.unread[id][FoldTopic(topic)] = n
}

func (f *fakeData) RecentTopicNames(id StreamID) []string {
	return append([]string(nil), f.names[id]...)
}

func (f *fakeData) UnreadCount(id StreamID, topic string) int {
	return f.unread[id][FoldTopic(topic)]
}

func (f *fakeData) IsTopicMuted(id StreamID, topic string) bool {
	return f.muted[id][FoldTopic(topic)]
}

func (f *fakeData) Subscription(id StreamID) (Subscription, bool) {
	name, ok := f.streams[id]
	if !ok {
		return Subscription{}, false
	}
	return Subscription{StreamID: id, Name: name, HasCompleteHistory: f.complete[id]}, true
}

func (f *fakeData) TopicPermalink(id StreamID, topic string) string {
	return narrow.TopicPermalink(int64(id), f.streams[id], topic)
}

type fakeHistory struct {
	data  *fakeData
	older map[StreamID][]string
	err   error
	calls int
}

func (h *fakeHistory) FetchFullerHistory(_ context.Context, id StreamID) (func(), error) {
	h.calls++
	if h.err != nil {
		return nil, h.err
	}
	older := append([]string(nil), h.older[id]...)
	return func() {
		h.data.names[id] = append(h.data.names[id], older...)
		h.data.complete[id] = true
	}, nil
}

type fakeContainer struct {
	name     string
	attached []*Widget
}

func (c *fakeContainer) AttachTopicList(w *Widget) {
	c.attached = append(c.attached, w)
}

func (c *fakeContainer) DetachTopicList(w *Widget) {
	for i, cur := range c.attached {
		if cur == w {
			c.attached = append(c.attached[:i], c.attached[i+1:]...)
			return
		}
	}
}

type recordingDiagnostics struct {
	errors   []string
	warnings []string
}

func (d *recordingDiagnostics) ReportError(msg string)   { d.errors = append(d.errors, msg) }
func (d *recordingDiagnostics) ReportWarning(msg string) { d.warnings = append(d.warnings, msg) }

type recordingNarrower struct {
	calls []narrowCall
}

type narrowCall struct {
	terms []narrow.Term
	opts  narrow.Options
}

func (n *recordingNarrower) ActivateNarrow(terms []narrow.Term, opts narrow.Options) {
	n.calls = append(n.calls, narrowCall{terms: terms, opts: opts})
}

type countingPopovers struct{ hidden int }

func (p *countingPopovers) HideTopicPopover() { p.hidden++ }

type fixture struct {
	data     *fakeData
	history  *fakeHistory
	diag     *recordingDiagnostics
	narrower *recordingNarrower
	popovers *countingPopovers
	active   string
	registry *Registry
}

func newFixture() *fixture {
	f := &fixture{
		data:     newFakeData(),
		diag:     &recordingDiagnostics{},
		narrower: &recordingNarrower{},
		popovers: &countingPopovers{},
	}
	f.history = &fakeHistory{data: f.data, older: make(map[StreamID][]string)}
	f.registry = NewRegistry(Deps{
		Topics:      f.data,
		History:     f.history,
		Unread:      f.data,
		Muting:      f.data,
		Subs:        f.data,
		Links:       f.data,
		Narrow:      f.narrower,
		Popovers:    f.popovers,
		Diagnostics: f.diag,
		ActiveTopic: func() string { return f.active },
	}, RegistryConfig{})
	return f
}

func topicNames(prefix string, n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("%s%d", prefix, i)
	}
	return out
}

func shownTopics(w *Widget) []string {
	var out []string
	for _, row := range w.Rows() {
		if row.Kind == RowTopic {
			out = append(out, row.Topic)
		}
	}
	return out
}
