package sidebar

import (
	"context"

	"github.com/tOgg1/streambar/internal/narrow"
	"github.com/tOgg1/streambar/internal/store"
	"github.com/tOgg1/streambar/internal/topiclist"
)

// topicData is the client-side view of the store the topic lists read from.
// It is only touched on the UI goroutine.
type topicData struct {
	order   []topiclist.StreamID
	streams map[topiclist.StreamID]store.StreamSnapshot
}

func newTopicData() *topicData {
	return &topicData{streams: make(map[topiclist.StreamID]store.StreamSnapshot)}
}

// replace swaps in a full snapshot, keeping the store's stream order.
func (d *topicData) replace(snaps []store.StreamSnapshot) {
	d.order = d.order[:0]
	d.streams = make(map[topiclist.StreamID]store.StreamSnapshot, len(snaps))
	for _, snap := range snaps {
		id := snap.Subscription.StreamID
		d.order = append(d.order, id)
		d.streams[id] = snap
	}
}

// replaceStream swaps in the snapshot of one stream.
func (d *topicData) replaceStream(snap store.StreamSnapshot) {
	id := snap.Subscription.StreamID
	if _, ok := d.streams[id]; !ok {
		d.order = append(d.order, id)
	}
	d.streams[id] = snap
}

// mergeHistory records a fetched topic list and completeness flag. Unread
// and muted state may have been refreshed by a poll since the fetch began,
// so they are kept.
func (d *topicData) mergeHistory(sub topiclist.Subscription, topics []string) {
	snap, ok := d.streams[sub.StreamID]
	if !ok {
		d.replaceStream(store.StreamSnapshot{Subscription: sub, Topics: topics})
		return
	}
	snap.Topics = topics
	snap.Subscription.HasCompleteHistory = sub.HasCompleteHistory
	d.streams[sub.StreamID] = snap
}

func (d *topicData) streamIDs() []topiclist.StreamID {
	return d.order
}

func (d *topicData) snapshot(id topiclist.StreamID) (store.StreamSnapshot, bool) {
	snap, ok := d.streams[id]
	return snap, ok
}

func (d *topicData) unreadTotal(id topiclist.StreamID) int {
	return d.streams[id].UnreadTotal()
}

func (d *topicData) RecentTopicNames(id topiclist.StreamID) []string {
	return d.streams[id].Topics
}

func (d *topicData) UnreadCount(id topiclist.StreamID, topic string) int {
	return d.streams[id].Unread[topiclist.FoldTopic(topic)]
}

func (d *topicData) IsTopicMuted(id topiclist.StreamID, topic string) bool {
	return d.streams[id].Muted[topiclist.FoldTopic(topic)]
}

func (d *topicData) Subscription(id topiclist.StreamID) (topiclist.Subscription, bool) {
	snap, ok := d.streams[id]
	if !ok {
		return topiclist.Subscription{}, false
	}
	return snap.Subscription, true
}

func (d *topicData) TopicPermalink(id topiclist.StreamID, topic string) string {
	snap, ok := d.streams[id]
	if !ok {
		return ""
	}
	return narrow.TopicPermalink(int64(id), snap.Subscription.Name, topic)
}

// ResolveStream implements narrow.StreamResolver.
func (d *topicData) ResolveStream(name string) (int64, string, bool) {
	key := topiclist.FoldTopic(name)
	for _, id := range d.order {
		sub := d.streams[id].Subscription
		if topiclist.FoldTopic(sub.Name) == key {
			return int64(id), sub.Name, true
		}
	}
	return 0, "", false
}

// storeHistory fetches full topic history from the store. The fetch runs
// off the UI goroutine and only touches the store; the returned commit
// merges the result into topicData.
type storeHistory struct {
	store *store.Store
	data  *topicData
}

func (h *storeHistory) FetchFullerHistory(ctx context.Context, id topiclist.StreamID) (func(), error) {
	if _, err := h.store.FetchFullerHistory(ctx, int64(id)); err != nil {
		return nil, err
	}
	sub, err := h.store.Subscription(ctx, int64(id))
	if err != nil {
		return nil, err
	}
	topics, err := h.store.RecentTopicNames(ctx, int64(id))
	if err != nil {
		return nil, err
	}
	data := h.data
	return func() { data.mergeHistory(sub, topics) }, nil
}
